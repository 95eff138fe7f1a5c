package birthdate

import (
	"go.uber.org/zap"

	"github.com/twiced-technology-gmbh/agegate/internal/date"
	"github.com/twiced-technology-gmbh/agegate/internal/dom"
)

const msgTooYoung = "Sorry, you're not old enough yet."

// onSubmit runs once native validation let the form through. Invalid values
// stay in the field for correction; valid ones are checked and cleared.
func (b *BirthDate) onSubmit(ev *dom.Event) {
	ev.PreventDefault()
	b.Validate()

	if b.invalidPart != date.PartNone {
		b.logger.Debug("submit blocked",
			zap.String("session", b.session), zap.Stringer("invalid_part", b.invalidPart))
		b.SelectInvalidPart()
		return
	}
	b.acceptDate()
}

func (b *BirthDate) acceptDate() {
	b.checkAge()
	b.Reset()
}

func (b *BirthDate) checkAge() {
	if b.birthDate == nil {
		return
	}
	age := date.YearsBetween(*b.birthDate, date.FromTime(b.now()))
	out := Outcome{Session: b.session, Age: age}
	if age >= b.minAge {
		out.Accepted = true
		out.Message = b.output.Format(*b.birthDate)
	} else {
		out.Message = msgTooYoung
	}
	b.logger.Debug("age checked",
		zap.String("session", b.session), zap.Bool("accepted", out.Accepted))
	b.reporter.Report(out)
}

// Reset clears the value, the parsed date, the message and the visual state.
func (b *BirthDate) Reset() {
	b.birthDate = nil
	b.invalidPart = date.PartNone
	if b.input == nil {
		return
	}
	b.input.SetValue("")
	b.input.ClassList().Remove(ClassValid, ClassInvalid)
	b.message.SetText("")
}

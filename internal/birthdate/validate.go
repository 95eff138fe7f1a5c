package birthdate

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/twiced-technology-gmbh/agegate/internal/date"
)

// Validation messages.
const (
	msgNotExist = "This %s does not exist."
	msgFuture   = "Seems like you're from the future. Did you just invent time travel?"
	msgTooOld   = "Seems like you're quite old. Are you sure you're human?"
)

// sanitize strips invalid characters whether they were typed or pasted.
func (b *BirthDate) sanitize() {
	value := b.input.Value()
	clean, err := b.invalidChars.Replace(value, "", -1, -1)
	if err != nil || clean == value {
		return
	}
	b.input.SetValue(clean)
}

// Validate sanitizes the input, classifies the value and updates the visual
// state, the message and the selection. Results are only shown once the
// value is complete so users can type without error flashes.
func (b *BirthDate) Validate() {
	if b.input == nil {
		return
	}
	b.sanitize()

	// Layouts parse to midnight UTC, so the date entered is the date kept
	// whatever the local zone.
	parsed, err := b.format.Parse(b.input.Value())
	today := date.FromTime(b.now())

	b.birthDate = nil
	b.invalidPart = date.PartNone
	message := ""
	b.input.ClassList().Remove(ClassValid, ClassInvalid)

	var perr *date.ParseError
	switch {
	case errors.As(err, &perr):
		b.invalidPart = perr.Part
		if b.invalidPart == date.PartNone {
			b.invalidPart = date.PartYear
		}
		message = fmt.Sprintf(msgNotExist, b.invalidPart)
	case err != nil:
		b.invalidPart = date.PartYear
		message = fmt.Sprintf(msgNotExist, b.invalidPart)
	case date.DaysBetween(parsed, today) < 0:
		b.invalidPart = date.PartYear
		message = msgFuture
	case date.YearsBetween(parsed, today) > b.maxAge:
		b.invalidPart = date.PartYear
		message = msgTooOld
	}
	if err == nil {
		b.birthDate = &parsed
	}

	if b.complete() {
		if b.invalidPart != date.PartNone {
			b.input.ClassList().Add(ClassInvalid)
		} else {
			b.input.ClassList().Add(ClassValid)
		}
	} else {
		message = ""
	}
	b.message.SetText(message)

	b.logger.Debug("validated",
		zap.String("session", b.session),
		zap.Int("length", b.input.Len()),
		zap.Bool("complete", b.complete()),
		zap.Stringer("invalid_part", b.invalidPart))

	b.SelectInvalidPart()
}

// SelectInvalidPart focuses the input and selects the invalid sub-field so
// the user sees exactly what to fix. It only acts on complete values.
func (b *BirthDate) SelectInvalidPart() {
	if b.invalidPart == date.PartNone {
		return
	}
	b.selectPart(b.invalidPart)
}

func (b *BirthDate) selectPart(part date.Part) {
	if !b.complete() {
		return
	}
	// Selection is only visible on the focused element.
	if b.input.Document().ActiveElement() != b.input {
		b.input.Focus()
	}
	if r, ok := b.ranges[part]; ok && r.Start >= 0 {
		b.input.SetSelectionRange(r.Start, r.End)
	}
}

// Package birthdate implements a birth date form field: it sanitizes and
// validates a fixed-format date while it is typed, highlights the sub-field
// that needs fixing, and on submit checks the age against a minimum.
package birthdate

import (
	"errors"
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/twiced-technology-gmbh/agegate/internal/component"
	"github.com/twiced-technology-gmbh/agegate/internal/date"
	"github.com/twiced-technology-gmbh/agegate/internal/dom"
)

// DefaultMaxAge is used when Config.MaxAge is zero.
const DefaultMaxAge = 130

// ErrConfig is returned by New for configurations that cannot be compiled.
var ErrConfig = errors.New("invalid birth date configuration")

// Config is the immutable configuration of a field.
type Config struct {
	MinAge int
	MaxAge int
	// Format is the expected input, e.g. "YYYYMMDD".
	Format string
	// OutputFormat renders accepted dates, e.g. "YYYY-MM-DD".
	OutputFormat string
	// Pattern is mirrored to the input for native validation before submit.
	Pattern string
	// InvalidCharacters matches characters stripped from the input.
	InvalidCharacters string
}

// Range is a half-open character range [Start, End) within the input.
type Range struct {
	Start int
	End   int
}

// BirthDate is the controller of one mounted birth date field.
type BirthDate struct {
	mount    *component.Component
	session  string
	reporter Reporter
	now      func() time.Time
	logger   *zap.Logger

	minAge       int
	maxAge       int
	format       date.Layout
	output       date.Layout
	length       int
	pattern      string
	invalidChars *regexp2.Regexp
	ranges       map[date.Part]Range

	ui      *dom.Element
	input   *dom.Element
	message *dom.Element

	birthDate   *date.Date
	invalidPart date.Part
}

// Option configures a BirthDate.
type Option func(*BirthDate)

// WithReporter sets where submit outcomes are delivered.
func WithReporter(r Reporter) Option {
	return func(b *BirthDate) { b.reporter = r }
}

// WithClock overrides the clock used for "now" (for testing).
func WithClock(now func() time.Time) Option {
	return func(b *BirthDate) { b.now = now }
}

// WithLogger sets the debug logger.
func WithLogger(l *zap.Logger) Option {
	return func(b *BirthDate) { b.logger = l }
}

// New creates a field from the birth date template registered in doc.
// Nothing is bound until Mount.
func New(doc *dom.Document, cfg Config, opts ...Option) (*BirthDate, error) {
	format, err := date.NewLayout(cfg.Format)
	if err != nil {
		return nil, fmt.Errorf("%w: format: %w", ErrConfig, err)
	}
	output, err := date.NewLayout(cfg.OutputFormat)
	if err != nil {
		return nil, fmt.Errorf("%w: output format: %w", ErrConfig, err)
	}
	invalidChars, err := regexp2.Compile(cfg.InvalidCharacters, regexp2.ECMAScript)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid characters: %w", ErrConfig, err)
	}

	maxAge := cfg.MaxAge
	if maxAge == 0 {
		maxAge = DefaultMaxAge
	}

	b := &BirthDate{
		mount:        component.New(doc, "#"+TemplateID),
		session:      uuid.NewString(),
		reporter:     ReporterFunc(func(Outcome) {}),
		now:          time.Now,
		logger:       zap.NewNop(),
		minAge:       cfg.MinAge,
		maxAge:       maxAge,
		format:       format,
		output:       output,
		length:       format.Len(),
		pattern:      cfg.Pattern,
		invalidChars: invalidChars,
		ranges:       SelectionRanges(cfg.Format),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.addContent()
	return b, nil
}

// SelectionRanges locates each sub-field in format from the first to the
// last occurrence of its marker (Y, M or D). Markers must be contiguous;
// otherwise the ranges are meaningless.
func SelectionRanges(format string) map[date.Part]Range {
	runes := []rune(format)
	span := func(marker rune) Range {
		r := Range{Start: -1, End: 0}
		for i, c := range runes {
			if c != marker {
				continue
			}
			if r.Start < 0 {
				r.Start = i
			}
			r.End = i + 1
		}
		return r
	}
	return map[date.Part]Range{
		date.PartYear:  span('Y'),
		date.PartMonth: span('M'),
		date.PartDay:   span('D'),
	}
}

// addContent prepares the detached fragment so each instance carries its own
// format.
func (b *BirthDate) addContent() {
	fragment := b.mount.Fragment()
	if fragment == nil {
		return
	}
	input := fragment.QuerySelector(inputSelector)
	if input == nil {
		return
	}
	input.SetTitle(b.format.String())
	input.SetMaxLength(b.length)
	if parent := input.ParentElement(); parent != nil {
		parent.Dataset()[PlaceholderKey] = b.format.String()
	}
	input.SetPattern(b.pattern)
}

// Mount attaches the field to the element matched by target and binds it.
func (b *BirthDate) Mount(target string) {
	if !b.mount.Mount(target, b.bindUI) {
		b.logger.Warn("birth date field not mounted",
			zap.String("session", b.session), zap.String("target", target))
	}
}

// Unmount removes the field from its document.
func (b *BirthDate) Unmount() {
	b.mount.Unmount()
}

func (b *BirthDate) bindUI(ui *dom.Element) {
	b.ui = ui
	b.message = ui.QuerySelector(messageSelector)
	b.input = ui.QuerySelector(inputSelector)
	if b.input == nil || b.message == nil {
		b.logger.Warn("birth date template is missing its input or message",
			zap.String("session", b.session))
		b.input, b.message = nil, nil
		return
	}

	b.input.AddEventListener(dom.EventInput, func(*dom.Event) { b.Validate() })
	// Show the part to fix even when focus was lost since the last validation.
	b.input.AddEventListener(dom.EventFocusIn, func(*dom.Event) { b.SelectInvalidPart() })
	b.input.AddEventListener(dom.EventMouseUp, func(ev *dom.Event) {
		// Keep the highlighted part instead of moving the caret to the click.
		if b.complete() && b.invalidPart != date.PartNone {
			ev.PreventDefault()
		}
	})
	ui.AddEventListener(dom.EventSubmit, b.onSubmit)
}

// UI returns the mounted form, or nil.
func (b *BirthDate) UI() *dom.Element { return b.ui }

// Input returns the mounted date input, or nil.
func (b *BirthDate) Input() *dom.Element { return b.input }

// Message returns the mounted validation message element, or nil.
func (b *BirthDate) Message() *dom.Element { return b.message }

// InvalidPart returns the sub-field responsible for the current invalid or
// incomplete value, or date.PartNone.
func (b *BirthDate) InvalidPart() date.Part { return b.invalidPart }

// Parsed returns the date parsed from a complete, well-formed value.
func (b *BirthDate) Parsed() (date.Date, bool) {
	if b.birthDate == nil {
		return date.Date{}, false
	}
	return *b.birthDate, true
}

// Session returns the id of this field instance.
func (b *BirthDate) Session() string { return b.session }

// Format returns the expected input format.
func (b *BirthDate) Format() string { return b.format.String() }

// Ranges returns the selection range of each sub-field.
func (b *BirthDate) Ranges() map[date.Part]Range { return b.ranges }

func (b *BirthDate) complete() bool {
	return b.input != nil && b.input.Len() == b.length
}

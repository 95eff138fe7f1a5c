package birthdate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/agegate/internal/date"
	"github.com/twiced-technology-gmbh/agegate/internal/dom"
)

var testConfig = Config{
	MinAge:            18,
	Format:            "YYYYMMDD",
	Pattern:           `\d{8}`,
	InvalidCharacters: `[^\d]`,
	OutputFormat:      "YYYY-MM-DD",
}

func fixedNow() time.Time {
	return time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC)
}

type recorder struct {
	outcomes []Outcome
}

func (r *recorder) Report(o Outcome) { r.outcomes = append(r.outcomes, o) }

func (r *recorder) messages() []string {
	var out []string
	for _, o := range r.outcomes {
		out = append(out, o.Message)
	}
	return out
}

func newPage() *dom.Document {
	doc := dom.NewDocument()
	app := doc.CreateElement("div")
	app.SetID("app")
	doc.Body().AppendChild(app)
	RegisterTemplate(doc, "Birth date")
	return doc
}

func mountField(t *testing.T, cfg Config) (*BirthDate, *recorder) {
	t.Helper()
	rec := &recorder{}
	b, err := New(newPage(), cfg, WithReporter(rec), WithClock(fixedNow))
	require.NoError(t, err)
	b.Mount("#app")
	require.NotNil(t, b.Input(), "field should be mounted")
	return b, rec
}

// addInput sets the value programmatically and fires an input event, the way
// a paste or autofill reaches the field.
func addInput(b *BirthDate, value string) {
	b.Input().SetValue(value)
	b.Input().Dispatch(dom.NewEvent(dom.EventInput))
}

func typeKeys(b *BirthDate, keys string) {
	b.Input().Focus()
	for _, r := range keys {
		b.Input().InsertText(string(r))
	}
}

func clickContinue(b *BirthDate) {
	b.UI().QuerySelector("." + ClassContinue).Click()
}

func hasClass(b *BirthDate, class string) bool {
	return b.Input().ClassList().Contains(class)
}

func TestNewPreparesInput(t *testing.T) {
	b, _ := mountField(t, testConfig)

	input := b.Input()
	assert.Equal(t, "YYYYMMDD", input.Title())
	assert.Equal(t, 8, input.MaxLength())
	assert.Equal(t, `\d{8}`, input.Pattern())
	require.NotNil(t, input.ParentElement())
	assert.Len(t, input.ParentElement().Dataset()[PlaceholderKey], len(testConfig.Format))
	assert.NotEmpty(t, b.Session())
}

func TestNewRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"bad format", func(c *Config) { c.Format = "YYY" }},
		{"bad output format", func(c *Config) { c.OutputFormat = "" }},
		{"bad invalid characters", func(c *Config) { c.InvalidCharacters = "(" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig
			tt.modify(&cfg)
			_, err := New(newPage(), cfg)
			assert.ErrorIs(t, err, ErrConfig)
		})
	}
}

func TestSelectionRanges(t *testing.T) {
	assert.Equal(t, map[date.Part]Range{
		date.PartYear:  {0, 4},
		date.PartMonth: {4, 6},
		date.PartDay:   {6, 8},
	}, SelectionRanges("YYYYMMDD"))

	assert.Equal(t, map[date.Part]Range{
		date.PartYear:  {6, 10},
		date.PartMonth: {3, 5},
		date.PartDay:   {0, 2},
	}, SelectionRanges("DD.MM.YYYY"))
}

func TestBlankSubmitIsBlockedNatively(t *testing.T) {
	b, rec := mountField(t, testConfig)

	clickContinue(b)

	assert.True(t, b.Input().Invalid())
	assert.Empty(t, rec.outcomes)
}

func TestIncompleteValueShowsNothing(t *testing.T) {
	b, _ := mountField(t, testConfig)

	addInput(b, "2018541")

	assert.Equal(t, date.PartMonth, b.InvalidPart())
	assert.False(t, hasClass(b, ClassInvalid))
	assert.False(t, hasClass(b, ClassValid))
	assert.Empty(t, b.Message().Text())
	assert.Nil(t, b.Input().Document().ActiveElement(), "incomplete values never grab focus")
}

func TestShorterInputsStayNeutral(t *testing.T) {
	b, _ := mountField(t, testConfig)

	for _, v := range []string{"", "9", "99", "2018", "201813", "2018133"} {
		addInput(b, v)
		assert.False(t, hasClass(b, ClassInvalid), v)
		assert.False(t, hasClass(b, ClassValid), v)
		assert.Empty(t, b.Message().Text(), v)
	}
}

func TestValidateClassifiesCompleteValues(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		part     date.Part
		contains string
		selected string
	}{
		{name: "invalid month", input: "20185412", part: date.PartMonth, contains: "month", selected: "54"},
		{name: "invalid day", input: "20180399", part: date.PartDay, contains: "day", selected: "99"},
		{name: "no leap day", input: "20150229", part: date.PartDay, contains: "day", selected: "29"},
		{name: "future", input: "99990212", part: date.PartYear, contains: "future", selected: "9999"},
		{name: "tomorrow", input: "20261018", part: date.PartYear, contains: "future", selected: "2026"},
		{name: "very old", input: "10000212", part: date.PartYear, contains: "quite old", selected: "1000"},
		{name: "just over max age", input: "18951017", part: date.PartYear, contains: "quite old", selected: "1895"},
		{name: "calendar error wins over future", input: "99991312", part: date.PartMonth, contains: "month", selected: "13"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := mountField(t, testConfig)

			addInput(b, tt.input)

			assert.Equal(t, tt.part, b.InvalidPart())
			assert.True(t, hasClass(b, ClassInvalid))
			assert.False(t, hasClass(b, ClassValid))
			assert.Contains(t, b.Message().Text(), tt.contains)
			assert.Same(t, b.Input(), b.Input().Document().ActiveElement())
			assert.Equal(t, tt.selected, b.Input().SelectedText())
		})
	}
}

func TestValidDateIsMarkedValid(t *testing.T) {
	for _, v := range []string{"19970302", "18961017", "20261017"} {
		b, _ := mountField(t, testConfig)

		addInput(b, v)

		assert.True(t, hasClass(b, ClassValid), v)
		assert.False(t, hasClass(b, ClassInvalid), v)
		assert.Equal(t, date.PartNone, b.InvalidPart(), v)
		assert.Empty(t, b.Message().Text(), v)
	}

	b, _ := mountField(t, testConfig)
	addInput(b, "19970302")
	parsed, ok := b.Parsed()
	require.True(t, ok)
	assert.Equal(t, date.New(1997, time.March, 2), parsed)
}

func TestSanitize(t *testing.T) {
	t.Run("typed keystrokes", func(t *testing.T) {
		b, _ := mountField(t, testConfig)
		typeKeys(b, "1aaaaaaa2")
		assert.Equal(t, "12", b.Input().Value())
	})

	t.Run("pasted value", func(t *testing.T) {
		b, _ := mountField(t, testConfig)
		addInput(b, "1aaaaaaa2")
		assert.Equal(t, "12", b.Input().Value())
	})

	t.Run("idempotent", func(t *testing.T) {
		b, _ := mountField(t, testConfig)
		for _, v := range []string{"1a2b", "1997-03-02", "abc", "19970302", "１２3", " 4 5 "} {
			addInput(b, v)
			once := b.Input().Value()
			assert.Regexp(t, `^[0-9]*$`, once)

			addInput(b, once)
			assert.Equal(t, once, b.Input().Value(), v)
		}
	})
}

func TestFocusReselectsInvalidPart(t *testing.T) {
	b, _ := mountField(t, testConfig)
	addInput(b, "20150229")

	b.Input().Blur()
	b.Input().SetCaret(0)
	b.Input().Focus()

	assert.Equal(t, "29", b.Input().SelectedText())
}

func TestPointerUpKeepsHighlight(t *testing.T) {
	b, _ := mountField(t, testConfig)
	addInput(b, "20185412")
	require.Equal(t, "54", b.Input().SelectedText())

	b.Input().PointerDown()
	b.Input().PointerUp(1)
	assert.Equal(t, "54", b.Input().SelectedText())

	addInput(b, "19970302")
	b.Input().PointerUp(2)
	assert.Equal(t, 2, b.Input().SelectionStart())
	assert.Equal(t, 2, b.Input().SelectionEnd())
}

func TestTypingOverHighlightFixesValue(t *testing.T) {
	b, _ := mountField(t, testConfig)
	typeKeys(b, "20185412")
	require.Equal(t, "54", b.Input().SelectedText())

	b.Input().InsertText("0")
	b.Input().InsertText("3")

	assert.Equal(t, "20180312", b.Input().Value())
	assert.True(t, hasClass(b, ClassValid))
	assert.Empty(t, b.Message().Text())
}

func TestSubmitAcceptsAndResets(t *testing.T) {
	b, rec := mountField(t, testConfig)
	addInput(b, "19970302")

	clickContinue(b)

	require.Len(t, rec.outcomes, 1)
	assert.True(t, rec.outcomes[0].Accepted)
	assert.Equal(t, "1997-03-02", rec.outcomes[0].Message)
	assert.Equal(t, 29, rec.outcomes[0].Age)
	assert.Equal(t, b.Session(), rec.outcomes[0].Session)

	assert.Empty(t, b.Input().Value())
	assert.False(t, hasClass(b, ClassValid))
	assert.False(t, hasClass(b, ClassInvalid))
	assert.Equal(t, date.PartNone, b.InvalidPart())
	_, ok := b.Parsed()
	assert.False(t, ok)
}

func TestSubmitRejectsUnderage(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"child", "20150101"},
		{"one day short", "20081018"},
		{"born today", "20261017"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, rec := mountField(t, testConfig)
			addInput(b, tt.input)

			clickContinue(b)

			assert.Equal(t, []string{"Sorry, you're not old enough yet."}, rec.messages())
			assert.False(t, rec.outcomes[0].Accepted)
			assert.Empty(t, b.Input().Value(), "field resets after the age check either way")
		})
	}
}

func TestSubmitAcceptsExactMinimumAge(t *testing.T) {
	b, rec := mountField(t, testConfig)
	addInput(b, "20081017")

	clickContinue(b)

	assert.Equal(t, []string{"2008-10-17"}, rec.messages())
}

func TestSubmitInvalidSelectsPart(t *testing.T) {
	b, rec := mountField(t, testConfig)
	addInput(b, "15650101")
	b.Input().Blur()

	clickContinue(b)

	assert.Empty(t, rec.outcomes)
	assert.Equal(t, "15650101", b.Input().Value())
	assert.Equal(t, date.PartYear, b.InvalidPart())
	assert.Same(t, b.Input(), b.Input().Document().ActiveElement())
	assert.Equal(t, "1565", b.Input().SelectedText())
}

func TestSubmitPatternMismatchIsBlockedNatively(t *testing.T) {
	b, rec := mountField(t, testConfig)
	addInput(b, "1997")

	clickContinue(b)

	assert.Empty(t, rec.outcomes)
	assert.Equal(t, "1997", b.Input().Value())
}

func TestCustomFormat(t *testing.T) {
	cfg := Config{
		MinAge:            21,
		MaxAge:            100,
		Format:            "DD.MM.YYYY",
		Pattern:           `\d{2}\.\d{2}\.\d{4}`,
		InvalidCharacters: `[^\d.]`,
		OutputFormat:      "YYYY/MM/DD",
	}

	b, rec := mountField(t, cfg)
	addInput(b, "31.04.1997")
	assert.Equal(t, date.PartDay, b.InvalidPart())
	assert.Equal(t, "31", b.Input().SelectedText())

	addInput(b, "02.03.1937")
	assert.Equal(t, date.PartNone, b.InvalidPart())

	addInput(b, "02.03.1900")
	assert.Contains(t, b.Message().Text(), "quite old")

	addInput(b, "0a2.03.19x97")
	assert.Equal(t, "02.03.1997", b.Input().Value())
	clickContinue(b)
	assert.Equal(t, []string{"1997/03/02"}, rec.messages())
}

func TestUnmountedFieldIsInert(t *testing.T) {
	b, err := New(newPage(), testConfig)
	require.NoError(t, err)

	b.Mount("#missing")

	assert.Nil(t, b.Input())
	assert.NotPanics(t, b.Validate)
	assert.NotPanics(t, b.SelectInvalidPart)
	assert.NotPanics(t, b.Reset)
}

func TestUnmount(t *testing.T) {
	b, _ := mountField(t, testConfig)
	doc := b.Input().Document()

	b.Unmount()

	assert.Nil(t, doc.QuerySelector("."+ClassInput))
}

package date

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// ErrLayout is returned for format strings that cannot be compiled.
var ErrLayout = errors.New("invalid date layout")

type tokenKind int

const (
	tokLiteral tokenKind = iota
	tokYear4
	tokYear2
	tokMonth2
	tokMonth1
	tokDay2
	tokDay1
)

// twoDigitPivot splits two-digit years: values above it are 19xx, the rest 20xx.
const twoDigitPivot = 68

type token struct {
	kind tokenKind
	text string
}

// width returns the minimum and maximum number of digits the token accepts.
func (t token) width() (int, int) {
	switch t.kind {
	case tokYear4:
		return 4, 4 //nolint:mnd // YYYY
	case tokYear2, tokMonth2, tokDay2:
		return 2, 2 //nolint:mnd // YY, MM, DD
	case tokMonth1, tokDay1:
		return 1, 2 //nolint:mnd // M, D
	default:
		return 0, 0
	}
}

// position is the token's slot in year, month, day order, or -1 for literals.
func (t token) position() int {
	switch t.kind {
	case tokYear4, tokYear2:
		return 0
	case tokMonth2, tokMonth1:
		return 1
	case tokDay2, tokDay1:
		return 2
	default:
		return -1
	}
}

func (t token) part() Part {
	return PartAt(t.position())
}

// Layout is a compiled moment-style date format such as "YYYYMMDD" or
// "DD.MM.YYYY". Recognised tokens are YYYY, YY, MM, M, DD and D; every other
// character is matched literally.
type Layout struct {
	source string
	tokens []token
}

// NewLayout compiles a format string.
func NewLayout(format string) (Layout, error) {
	if format == "" {
		return Layout{}, fmt.Errorf("%w: empty format", ErrLayout)
	}
	var tokens []token
	runes := []rune(format)
	for i := 0; i < len(runes); {
		r := runes[i]
		j := i
		for j < len(runes) && runes[j] == r {
			j++
		}
		run := j - i

		if r != 'Y' && r != 'M' && r != 'D' {
			if n := len(tokens); n > 0 && tokens[n-1].kind == tokLiteral {
				tokens[n-1].text += string(runes[i:j])
			} else {
				tokens = append(tokens, token{kind: tokLiteral, text: string(runes[i:j])})
			}
			i = j
			continue
		}

		kind, ok := tokenFor(r, run)
		if !ok {
			return Layout{}, fmt.Errorf("%w: unsupported token %q in %q", ErrLayout, string(runes[i:j]), format)
		}
		tokens = append(tokens, token{kind: kind, text: string(runes[i:j])})
		i = j
	}
	return Layout{source: format, tokens: tokens}, nil
}

// MustLayout is like NewLayout but panics on error.
func MustLayout(format string) Layout {
	l, err := NewLayout(format)
	if err != nil {
		panic(err)
	}
	return l
}

func tokenFor(r rune, run int) (tokenKind, bool) {
	switch {
	case r == 'Y' && run == 4:
		return tokYear4, true
	case r == 'Y' && run == 2:
		return tokYear2, true
	case r == 'M' && run == 2:
		return tokMonth2, true
	case r == 'M' && run == 1:
		return tokMonth1, true
	case r == 'D' && run == 2:
		return tokDay2, true
	case r == 'D' && run == 1:
		return tokDay1, true
	}
	return tokLiteral, false
}

// String returns the format the layout was compiled from.
func (l Layout) String() string {
	return l.source
}

// Len returns the length of the format in characters.
func (l Layout) Len() int {
	return utf8.RuneCountInString(l.source)
}

// ParseError reports a strict parse failure and the first rejected sub-field.
type ParseError struct {
	Input  string
	Part   Part
	Reason string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s in %q: %s", e.Part, e.Input, e.Reason)
}

// fields collects the values matched so far during a parse.
type fields struct {
	year, month, day          int
	hasYear, hasMonth, hasDay bool
}

// overflow returns the first sub-field whose value is out of calendar range.
func (f fields) overflow() (Part, string) {
	if f.hasMonth && (f.month < 1 || f.month > 12) {
		return PartMonth, "month out of range"
	}
	if f.hasDay {
		maxDay := 31
		if f.hasMonth && f.hasYear {
			maxDay = DaysIn(f.year, time.Month(f.month))
		} else if f.hasMonth {
			maxDay = DaysIn(2000, time.Month(f.month)) //nolint:mnd // leap year allows Feb 29
		}
		if f.day < 1 || f.day > maxDay {
			return PartDay, "day out of range"
		}
	}
	return PartNone, ""
}

// Parse strictly parses s. The whole input must be consumed, every token must
// match its exact width and the result must be a real calendar date. On
// failure the returned *ParseError names the first rejected sub-field; an
// out-of-range value already matched takes precedence over a token that
// could not be matched at all.
func (l Layout) Parse(s string) (Date, error) {
	rs := []rune(s)
	pos := 0
	var f fields

	fail := func(part Part, reason string) (Date, error) {
		if over, why := f.overflow(); over != PartNone {
			part, reason = over, why
		}
		return Date{}, &ParseError{Input: s, Part: part, Reason: reason}
	}

	for i, t := range l.tokens {
		if t.kind == tokLiteral {
			lit := []rune(t.text)
			if len(rs)-pos < len(lit) || string(rs[pos:pos+len(lit)]) != t.text {
				return fail(l.partNear(i), fmt.Sprintf("expected %q", t.text))
			}
			pos += len(lit)
			continue
		}

		minW, maxW := t.width()
		n := 0
		for n < maxW && pos+n < len(rs) && rs[pos+n] >= '0' && rs[pos+n] <= '9' {
			n++
		}
		if n < minW {
			return fail(t.part(), "missing digits")
		}
		v, _ := strconv.Atoi(string(rs[pos : pos+n]))
		pos += n

		switch t.kind {
		case tokYear4:
			f.year, f.hasYear = v, true
		case tokYear2:
			f.year, f.hasYear = expandYear(v), true
		case tokMonth2, tokMonth1:
			f.month, f.hasMonth = v, true
		case tokDay2, tokDay1:
			f.day, f.hasDay = v, true
		}
	}

	if pos != len(rs) {
		return fail(l.partNear(len(l.tokens)-1), "unexpected trailing input")
	}
	if part, reason := f.overflow(); part != PartNone {
		return Date{}, &ParseError{Input: s, Part: part, Reason: reason}
	}
	if !f.hasMonth {
		f.month = 1
	}
	if !f.hasDay {
		f.day = 1
	}
	return New(f.year, time.Month(f.month), f.day), nil
}

// partNear returns the part of the token at index i, or of the nearest
// following token, or of the nearest preceding one for trailing literals.
func (l Layout) partNear(i int) Part {
	for j := i; j < len(l.tokens); j++ {
		if p := l.tokens[j].part(); p != PartNone {
			return p
		}
	}
	for j := min(i, len(l.tokens)-1); j >= 0; j-- {
		if p := l.tokens[j].part(); p != PartNone {
			return p
		}
	}
	return PartNone
}

// Format renders d using the layout.
func (l Layout) Format(d Date) string {
	var b strings.Builder
	for _, t := range l.tokens {
		switch t.kind {
		case tokLiteral:
			b.WriteString(t.text)
		case tokYear4:
			fmt.Fprintf(&b, "%04d", d.Year())
		case tokYear2:
			fmt.Fprintf(&b, "%02d", d.Year()%100) //nolint:mnd // two-digit year
		case tokMonth2:
			fmt.Fprintf(&b, "%02d", int(d.Month()))
		case tokMonth1:
			b.WriteString(strconv.Itoa(int(d.Month())))
		case tokDay2:
			fmt.Fprintf(&b, "%02d", d.Day())
		case tokDay1:
			b.WriteString(strconv.Itoa(d.Day()))
		}
	}
	return b.String()
}

func expandYear(v int) int {
	if v > twoDigitPivot {
		return 1900 + v //nolint:mnd // 19xx
	}
	return 2000 + v //nolint:mnd // 20xx
}

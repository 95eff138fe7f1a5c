package dom

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// Value returns the current value of an input.
func (e *Element) Value() string { return string(e.value) }

// SetValue replaces the value programmatically. The caret moves to the end.
// No input event is fired and maxLength is not applied, as in browsers.
func (e *Element) SetValue(v string) {
	e.value = []rune(v)
	e.selStart, e.selEnd = len(e.value), len(e.value)
}

// MaxLength returns the maximum number of characters a user may enter, or -1.
func (e *Element) MaxLength() int { return e.maxLength }

// SetMaxLength limits user edits to n characters; n < 0 removes the limit.
func (e *Element) SetMaxLength(n int) {
	if n < 0 {
		n = -1
	}
	e.maxLength = n
}

// Title returns the advisory title of the element.
func (e *Element) Title() string { return e.title }

// SetTitle sets the advisory title of the element.
func (e *Element) SetTitle(s string) { e.title = s }

// Required reports whether an empty value fails validation.
func (e *Element) Required() bool { return e.required }

// SetRequired marks the input as required.
func (e *Element) SetRequired(v bool) { e.required = v }

// Pattern returns the validation pattern of the input.
func (e *Element) Pattern() string { return e.pattern }

// SetPattern sets an ECMAScript pattern the whole value must match. A pattern
// that does not compile is kept but ignored during validation.
func (e *Element) SetPattern(p string) {
	e.pattern = p
	e.patternRe = nil
	if p == "" {
		return
	}
	re, err := regexp2.Compile("^(?:"+p+")$", regexp2.ECMAScript)
	if err == nil {
		e.patternRe = re
	}
}

// Validity describes the native constraint validation state of an input.
type Validity struct {
	ValueMissing    bool
	PatternMismatch bool
}

// Valid reports whether no constraint is violated.
func (v Validity) Valid() bool {
	return !v.ValueMissing && !v.PatternMismatch
}

// Validity evaluates the input's required and pattern constraints.
func (e *Element) Validity() Validity {
	var v Validity
	if e.tag != TagInput {
		return v
	}
	if len(e.value) == 0 {
		v.ValueMissing = e.required
		return v
	}
	if e.patternRe != nil {
		ok, err := e.patternRe.MatchString(string(e.value))
		v.PatternMismatch = err != nil || !ok
	}
	return v
}

// SelectionStart returns the start offset of the selection.
func (e *Element) SelectionStart() int { return e.selStart }

// SelectionEnd returns the end offset of the selection.
func (e *Element) SelectionEnd() int { return e.selEnd }

// SelectedText returns the selected part of the value.
func (e *Element) SelectedText() string {
	return string(e.value[e.selStart:e.selEnd])
}

// SetSelectionRange selects [start, end) clamped to the value.
func (e *Element) SetSelectionRange(start, end int) {
	n := len(e.value)
	start = max(0, min(start, n))
	end = max(start, min(end, n))
	e.selStart, e.selEnd = start, end
}

// SetCaret collapses the selection at pos.
func (e *Element) SetCaret(pos int) {
	e.SetSelectionRange(pos, pos)
}

// SelectAll selects the whole value.
func (e *Element) SelectAll() {
	e.SetSelectionRange(0, len(e.value))
}

// MoveCaret moves the caret by delta characters. A non-empty selection
// collapses to its start or end instead.
func (e *Element) MoveCaret(delta int) {
	switch {
	case e.selStart != e.selEnd && delta < 0:
		e.SetCaret(e.selStart)
	case e.selStart != e.selEnd && delta > 0:
		e.SetCaret(e.selEnd)
	default:
		e.SetCaret(e.selStart + delta)
	}
}

// Focusable reports whether the element can take focus.
func (e *Element) Focusable() bool {
	return e.tag == TagInput || e.tag == TagButton
}

// Focus makes e the active element and fires focusin. It does nothing when e
// is already focused, cannot take focus, or is not connected.
func (e *Element) Focus() {
	if !e.Focusable() || !e.IsConnected() || e.doc.active == e {
		return
	}
	prev := e.doc.active
	e.doc.active = e
	if prev != nil {
		prev.Dispatch(NewEvent(EventFocusOut))
	}
	e.Dispatch(NewEvent(EventFocusIn))
}

// Blur drops focus from e.
func (e *Element) Blur() {
	if e.doc.active != e {
		return
	}
	e.doc.active = nil
	e.Dispatch(NewEvent(EventFocusOut))
}

// InsertText replaces the selection with s as if typed or pasted by the
// user, truncated to fit maxLength, and fires an input event when the value
// changed. Line breaks are dropped.
func (e *Element) InsertText(s string) {
	if e.tag != TagInput {
		return
	}
	s = strings.NewReplacer("\r", "", "\n", "").Replace(s)
	ins := []rune(s)
	kept := len(e.value) - (e.selEnd - e.selStart)
	if e.maxLength >= 0 {
		room := max(0, e.maxLength-kept)
		if len(ins) > room {
			ins = ins[:room]
		}
	}
	if len(ins) == 0 && e.selStart == e.selEnd {
		return
	}
	e.splice(e.selStart, e.selEnd, ins)
}

// DeleteBackward removes the selection, or the character before the caret.
func (e *Element) DeleteBackward() {
	switch {
	case e.selStart != e.selEnd:
		e.splice(e.selStart, e.selEnd, nil)
	case e.selStart > 0:
		e.splice(e.selStart-1, e.selStart, nil)
	}
}

// DeleteForward removes the selection, or the character after the caret.
func (e *Element) DeleteForward() {
	switch {
	case e.selStart != e.selEnd:
		e.splice(e.selStart, e.selEnd, nil)
	case e.selStart < len(e.value):
		e.splice(e.selStart, e.selStart+1, nil)
	}
}

func (e *Element) splice(start, end int, ins []rune) {
	next := make([]rune, 0, len(e.value)-(end-start)+len(ins))
	next = append(next, e.value[:start]...)
	next = append(next, ins...)
	next = append(next, e.value[end:]...)
	e.value = next
	e.SetCaret(start + len(ins))
	e.Dispatch(NewEvent(EventInput))
}

// PointerDown focuses the element as a primary pointer press would.
func (e *Element) PointerDown() {
	e.Focus()
}

// PointerUp fires mouseup for a release over character offset. Unless a
// listener prevents it, the selection collapses to that offset.
func (e *Element) PointerUp(offset int) {
	if e.Dispatch(NewEvent(EventMouseUp)) && e.tag == TagInput {
		e.SetCaret(offset)
	}
}

// Len returns the length of the value in characters.
func (e *Element) Len() int {
	return len(e.value)
}

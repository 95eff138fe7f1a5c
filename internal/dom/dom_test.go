package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newPage builds a document with an #app target and a mounted form holding
// one input and one submit button.
func newPage(t *testing.T) (*Document, *Element, *Element, *Element) {
	t.Helper()
	doc := NewDocument()
	app := doc.CreateElement("div")
	app.SetID("app")
	doc.Body().AppendChild(app)

	form := doc.CreateElement(TagForm)
	input := doc.CreateElement(TagInput)
	input.ClassList().Add("date")
	button := doc.CreateElement(TagButton)
	button.SetType("submit")
	form.AppendChild(input)
	form.AppendChild(button)
	app.AppendChild(form)
	return doc, form, input, button
}

func TestQuerySelector(t *testing.T) {
	doc, form, input, _ := newPage(t)

	assert.Same(t, form, doc.QuerySelector("form"))
	assert.Same(t, input, doc.QuerySelector(".date"))
	assert.Same(t, input, doc.QuerySelector("input.date"))
	assert.Same(t, doc.Body(), doc.QuerySelector("body"))
	assert.NotNil(t, doc.QuerySelector("#app"))
	assert.Nil(t, doc.QuerySelector("#missing"))
	assert.Nil(t, doc.QuerySelector("button.date"))
	assert.Len(t, form.QuerySelectorAll("input"), 1)
}

func TestTemplateImportAndFragmentAppend(t *testing.T) {
	doc := NewDocument()
	doc.CreateTemplate("tpl", func(content *Element) {
		p := doc.CreateElement("p")
		p.ClassList().Add("message")
		p.Dataset()["kind"] = "hint"
		content.AppendChild(p)
	})

	tpl := doc.QuerySelector("#tpl")
	require.NotNil(t, tpl)
	assert.Nil(t, doc.QuerySelector(".message"), "template content is not part of the tree")

	frag := doc.ImportNode(tpl.Content(), true)
	frag.QuerySelector(".message").SetText("copied")
	assert.Empty(t, tpl.Content().QuerySelector(".message").Text(), "import must be a deep copy")

	target := doc.CreateElement("div")
	doc.Body().AppendChild(target)
	target.AppendChild(frag)

	assert.Empty(t, frag.Children())
	last := target.LastElementChild()
	require.NotNil(t, last)
	assert.Equal(t, "copied", last.Text())
	assert.Equal(t, "hint", last.Dataset()["kind"])
	assert.Same(t, target, last.ParentElement())
}

func TestFocusFiresFocusInOnce(t *testing.T) {
	doc, _, input, button := newPage(t)
	var events []string
	input.AddEventListener(EventFocusIn, func(*Event) { events = append(events, "in") })
	input.AddEventListener(EventFocusOut, func(*Event) { events = append(events, "out") })

	input.Focus()
	input.Focus()
	assert.Same(t, input, doc.ActiveElement())

	button.Focus()
	assert.Same(t, button, doc.ActiveElement())
	assert.Equal(t, []string{"in", "out"}, events)

	detached := doc.CreateElement(TagInput)
	detached.Focus()
	assert.Same(t, button, doc.ActiveElement())
}

func TestInsertTextHonoursMaxLengthAndSelection(t *testing.T) {
	_, _, input, _ := newPage(t)
	input.SetMaxLength(4)
	inputs := 0
	input.AddEventListener(EventInput, func(*Event) { inputs++ })

	input.InsertText("12345")
	assert.Equal(t, "1234", input.Value())
	assert.Equal(t, 4, input.SelectionStart())

	input.InsertText("9")
	assert.Equal(t, "1234", input.Value())
	assert.Equal(t, 1, inputs, "no input event when nothing changed")

	input.SetSelectionRange(1, 3)
	assert.Equal(t, "23", input.SelectedText())
	input.InsertText("ab\n")
	assert.Equal(t, "1ab4", input.Value())
	assert.Equal(t, 3, input.SelectionStart())
	assert.Equal(t, 2, inputs)
}

func TestDeleteAndCaret(t *testing.T) {
	_, _, input, _ := newPage(t)
	input.SetValue("1234")
	assert.Equal(t, 4, input.SelectionEnd())

	input.DeleteBackward()
	assert.Equal(t, "123", input.Value())

	input.SetCaret(0)
	input.DeleteBackward()
	assert.Equal(t, "123", input.Value())
	input.DeleteForward()
	assert.Equal(t, "23", input.Value())

	input.SelectAll()
	input.MoveCaret(-1)
	assert.Equal(t, 0, input.SelectionEnd())
	input.MoveCaret(5)
	assert.Equal(t, 2, input.SelectionStart())

	input.SetSelectionRange(5, 1)
	assert.Equal(t, 2, input.SelectionStart())
	assert.Equal(t, 2, input.SelectionEnd())
}

func TestPointerUpCollapsesUnlessPrevented(t *testing.T) {
	doc, _, input, _ := newPage(t)
	input.SetValue("19970302")

	input.PointerDown()
	assert.Same(t, input, doc.ActiveElement())

	input.SetSelectionRange(0, 4)
	input.PointerUp(6)
	assert.Equal(t, 6, input.SelectionStart())
	assert.Equal(t, 6, input.SelectionEnd())

	input.AddEventListener(EventMouseUp, func(ev *Event) { ev.PreventDefault() })
	input.SetSelectionRange(0, 4)
	input.PointerUp(6)
	assert.Equal(t, "1997", input.SelectedText())
}

func TestValidity(t *testing.T) {
	_, _, input, _ := newPage(t)
	input.SetRequired(true)
	input.SetPattern(`\d{8}`)

	assert.True(t, input.Validity().ValueMissing)
	assert.True(t, input.Invalid())

	input.SetValue("1234")
	assert.True(t, input.Validity().PatternMismatch)

	input.SetValue("123456789")
	assert.True(t, input.Validity().PatternMismatch, "pattern is anchored")

	input.SetValue("19970302")
	assert.True(t, input.Validity().Valid())

	input.SetPattern("(")
	input.SetValue("anything")
	assert.True(t, input.Validity().Valid(), "broken patterns are ignored")
}

func TestRequestSubmit(t *testing.T) {
	doc, form, input, button := newPage(t)
	input.SetRequired(true)
	submits := 0
	form.AddEventListener(EventSubmit, func(*Event) { submits++ })

	button.Click()
	assert.Equal(t, 0, submits, "blank required input blocks submit")
	assert.Same(t, input, doc.ActiveElement())

	input.SetValue("x")
	button.Click()
	assert.Equal(t, 1, submits)
	assert.Empty(t, input.Value(), "default action clears the form")

	form.AddEventListener(EventSubmit, func(ev *Event) { ev.PreventDefault() })
	input.SetValue("y")
	assert.True(t, form.RequestSubmit())
	assert.Equal(t, "y", input.Value())
}

func TestRemoveDropsFocus(t *testing.T) {
	doc, form, input, _ := newPage(t)
	input.Focus()
	form.Remove()
	assert.Nil(t, doc.ActiveElement())
	assert.False(t, input.IsConnected())
	assert.Nil(t, doc.QuerySelector("form"))
}

func TestClassList(t *testing.T) {
	var c ClassList
	c.Add("valid", "valid", "x")
	assert.Equal(t, []string{"valid", "x"}, c.Values())
	c.Remove("valid", "invalid")
	assert.False(t, c.Contains("valid"))
	assert.True(t, c.Contains("x"))
}

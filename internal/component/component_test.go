package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/agegate/internal/dom"
)

func newDocument() *dom.Document {
	doc := dom.NewDocument()
	app := doc.CreateElement("div")
	app.SetID("app")
	doc.Body().AppendChild(app)
	doc.CreateTemplate("greeting-template", func(content *dom.Element) {
		p := doc.CreateElement("p")
		p.ClassList().Add("greeting")
		p.SetText("hello")
		content.AppendChild(p)
	})
	return doc
}

func TestMountAppendsAndBindsOnce(t *testing.T) {
	doc := newDocument()
	app := doc.QuerySelector("#app")
	existing := doc.CreateElement("p")
	app.AppendChild(existing)

	c := New(doc, "#greeting-template")
	require.NotNil(t, c.Fragment())
	c.Fragment().QuerySelector(".greeting").SetText("prepared")

	var bound []*dom.Element
	ok := c.Mount("#app", func(ui *dom.Element) { bound = append(bound, ui) })

	require.True(t, ok)
	require.Len(t, bound, 1)
	assert.Same(t, c.UI(), bound[0])
	assert.Same(t, app.LastElementChild(), c.UI())
	assert.Len(t, app.Children(), 2, "mount appends without replacing")
	assert.Equal(t, "prepared", c.UI().Text())
	assert.Nil(t, c.Fragment())
	assert.True(t, c.UI().IsConnected())

	assert.False(t, c.Mount("#app", func(ui *dom.Element) { bound = append(bound, ui) }))
	assert.Len(t, bound, 1)
}

func TestMountUnresolvedIsNoop(t *testing.T) {
	doc := newDocument()

	missingTemplate := New(doc, "#nope")
	assert.Nil(t, missingTemplate.Fragment())
	assert.False(t, missingTemplate.Mount("#app", func(*dom.Element) { t.Fatal("bind must not run") }))

	missingTarget := New(doc, "#greeting-template")
	assert.False(t, missingTarget.Mount("#nowhere", func(*dom.Element) { t.Fatal("bind must not run") }))
	assert.Nil(t, missingTarget.UI())

	notATemplate := New(doc, "#app")
	assert.Nil(t, notATemplate.Fragment())
}

func TestUnmount(t *testing.T) {
	doc := newDocument()
	c := New(doc, "#greeting-template")
	require.True(t, c.Mount("#app", nil))

	c.Unmount()
	assert.Nil(t, doc.QuerySelector(".greeting"))
}

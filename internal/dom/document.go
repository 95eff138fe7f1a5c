// Package dom is a small in-memory document model: elements, templates,
// focus, text selection, events and native form validation. It gives
// components a page to mount into without depending on how that page is
// drawn.
package dom

// Tag names with built-in behaviour.
const (
	TagBody     = "body"
	TagTemplate = "template"
	TagFragment = "#document-fragment"
	TagForm     = "form"
	TagInput    = "input"
	TagButton   = "button"
)

// Document owns a tree of elements rooted at its body and tracks focus.
type Document struct {
	body   *Element
	active *Element
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	d := &Document{}
	d.body = d.CreateElement(TagBody)
	return d
}

// Body returns the root element.
func (d *Document) Body() *Element {
	return d.body
}

// ActiveElement returns the focused element, or nil.
func (d *Document) ActiveElement() *Element {
	return d.active
}

// CreateElement creates a detached element owned by d.
func (d *Document) CreateElement(tag string) *Element {
	return &Element{doc: d, tag: tag, maxLength: -1}
}

// CreateFragment creates an empty detached fragment. Appending a fragment
// moves its children instead of the fragment itself.
func (d *Document) CreateFragment() *Element {
	return d.CreateElement(TagFragment)
}

// CreateTemplate appends a template with the given id to the body. build
// fills the template's content fragment.
func (d *Document) CreateTemplate(id string, build func(content *Element)) *Element {
	t := d.CreateElement(TagTemplate)
	t.id = id
	t.content = d.CreateFragment()
	if build != nil {
		build(t.content)
	}
	d.body.AppendChild(t)
	return t
}

// ImportNode returns a copy of n owned by d. With deep set, descendants are
// copied too. Event listeners are never copied.
func (d *Document) ImportNode(n *Element, deep bool) *Element {
	if n == nil {
		return nil
	}
	return n.clone(d, deep)
}

// QuerySelector returns the first element in the body's subtree matching sel.
func (d *Document) QuerySelector(sel string) *Element {
	if parseSelector(sel).matches(d.body) {
		return d.body
	}
	return d.body.QuerySelector(sel)
}

// Package component instantiates UI fragments from templates and mounts them
// into a document.
package component

import "github.com/twiced-technology-gmbh/agegate/internal/dom"

// Binder wires behaviour to a freshly mounted element.
type Binder func(ui *dom.Element)

// Component is a template instance. Before Mount its content lives in a
// detached fragment that can be prepared freely; after Mount, UI returns the
// live element.
type Component struct {
	doc      *dom.Document
	fragment *dom.Element
	ui       *dom.Element
}

// New imports the content of the template matched by templateSelector.
// An unresolvable template leaves the component without a fragment, which
// makes Mount a no-op.
func New(doc *dom.Document, templateSelector string) *Component {
	return &Component{doc: doc, fragment: FromTemplate(doc, templateSelector)}
}

// FromTemplate returns a detached deep copy of a template's content, or nil
// when templateSelector does not resolve to a template.
func FromTemplate(doc *dom.Document, templateSelector string) *dom.Element {
	tpl := doc.QuerySelector(templateSelector)
	if tpl == nil || tpl.Tag() != dom.TagTemplate {
		return nil
	}
	return doc.ImportNode(tpl.Content(), true)
}

// Fragment returns the detached content, or nil once mounted.
func (c *Component) Fragment() *dom.Element {
	return c.fragment
}

// UI returns the live element, or nil before a successful Mount.
func (c *Component) UI() *dom.Element {
	return c.ui
}

// Mount appends the fragment to the element matched by targetSelector and
// calls bind once with the target's new last element child. It reports
// whether anything was mounted; unresolvable targets are ignored.
func (c *Component) Mount(targetSelector string, bind Binder) bool {
	if c.fragment == nil {
		return false
	}
	target := c.doc.QuerySelector(targetSelector)
	if target == nil {
		return false
	}
	target.AppendChild(c.fragment)
	c.fragment = nil
	c.ui = target.LastElementChild()
	if bind != nil && c.ui != nil {
		bind(c.ui)
	}
	return true
}

// Unmount removes the live element from the document.
func (c *Component) Unmount() {
	if c.ui != nil {
		c.ui.Remove()
	}
}

package dom

import (
	"maps"
	"slices"

	"github.com/dlclark/regexp2"
)

// Element is a node of a Document. Inputs, buttons, forms and templates
// carry the extra state their tag needs; other tags are plain containers.
type Element struct {
	doc       *Document
	tag       string
	id        string
	classes   ClassList
	dataset   map[string]string
	text      string
	parent    *Element
	children  []*Element
	content   *Element
	listeners map[string][]Listener

	// input and button state
	kind      string
	value     []rune
	selStart  int
	selEnd    int
	maxLength int
	title     string
	required  bool
	pattern   string
	patternRe *regexp2.Regexp
}

// Tag returns the element's tag name.
func (e *Element) Tag() string { return e.tag }

// ID returns the element's id.
func (e *Element) ID() string { return e.id }

// SetID sets the element's id.
func (e *Element) SetID(id string) { e.id = id }

// ClassList returns the element's classes.
func (e *Element) ClassList() *ClassList { return &e.classes }

// Text returns the element's own text content.
func (e *Element) Text() string { return e.text }

// SetText replaces the element's own text content.
func (e *Element) SetText(s string) { e.text = s }

// Type returns the type attribute of inputs and buttons.
func (e *Element) Type() string { return e.kind }

// SetType sets the type attribute of inputs and buttons.
func (e *Element) SetType(kind string) { e.kind = kind }

// Dataset returns the element's data attributes.
func (e *Element) Dataset() map[string]string {
	if e.dataset == nil {
		e.dataset = make(map[string]string)
	}
	return e.dataset
}

// Content returns a template's content fragment, or nil for other tags.
func (e *Element) Content() *Element { return e.content }

// Document returns the owning document.
func (e *Element) Document() *Document { return e.doc }

// ParentElement returns the parent, or nil when detached or when the parent
// is a fragment.
func (e *Element) ParentElement() *Element {
	if e.parent == nil || e.parent.tag == TagFragment {
		return nil
	}
	return e.parent
}

// Children returns a copy of the element's children.
func (e *Element) Children() []*Element {
	return slices.Clone(e.children)
}

// LastElementChild returns the last child, or nil.
func (e *Element) LastElementChild() *Element {
	if len(e.children) == 0 {
		return nil
	}
	return e.children[len(e.children)-1]
}

// AppendChild appends child as the last child of e, detaching it from any
// previous parent. Appending a fragment moves all of its children and leaves
// it empty.
func (e *Element) AppendChild(child *Element) {
	if child == nil || child == e {
		return
	}
	if child.tag == TagFragment {
		moved := child.children
		child.children = nil
		for _, c := range moved {
			c.parent = nil
			e.AppendChild(c)
		}
		return
	}
	child.detach()
	child.parent = e
	e.children = append(e.children, child)
}

// Remove detaches e from its parent. Focus inside the removed subtree is
// dropped.
func (e *Element) Remove() {
	if a := e.doc.active; a != nil && e.Contains(a) {
		a.Blur()
	}
	e.detach()
}

func (e *Element) detach() {
	if e.parent == nil {
		return
	}
	p := e.parent
	p.children = slices.DeleteFunc(p.children, func(c *Element) bool { return c == e })
	e.parent = nil
}

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	for n := other; n != nil; n = n.parent {
		if n == e {
			return true
		}
	}
	return false
}

// IsConnected reports whether e is attached to its document's body.
func (e *Element) IsConnected() bool {
	return e.doc.body.Contains(e)
}

// Closest returns the nearest inclusive ancestor matching sel.
func (e *Element) Closest(sel string) *Element {
	s := parseSelector(sel)
	for n := e; n != nil; n = n.parent {
		if s.matches(n) {
			return n
		}
	}
	return nil
}

// QuerySelector returns the first descendant matching sel in document order.
func (e *Element) QuerySelector(sel string) *Element {
	s := parseSelector(sel)
	var found *Element
	e.walk(func(n *Element) bool {
		if s.matches(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

// QuerySelectorAll returns all descendants matching sel in document order.
func (e *Element) QuerySelectorAll(sel string) []*Element {
	s := parseSelector(sel)
	var found []*Element
	e.walk(func(n *Element) bool {
		if s.matches(n) {
			found = append(found, n)
		}
		return true
	})
	return found
}

// walk visits descendants depth-first until fn returns false.
// Template contents are not part of the tree and are skipped.
func (e *Element) walk(fn func(*Element) bool) bool {
	for _, c := range e.children {
		if !fn(c) || !c.walk(fn) {
			return false
		}
	}
	return true
}

// AddEventListener registers fn for events of type typ.
func (e *Element) AddEventListener(typ string, fn Listener) {
	if e.listeners == nil {
		e.listeners = make(map[string][]Listener)
	}
	e.listeners[typ] = append(e.listeners[typ], fn)
}

// Dispatch delivers ev to e's listeners in registration order and reports
// whether the default action should run.
func (e *Element) Dispatch(ev *Event) bool {
	ev.Target = e
	for _, fn := range slices.Clone(e.listeners[ev.Type]) {
		fn(ev)
	}
	return !ev.DefaultPrevented()
}

func (e *Element) clone(doc *Document, deep bool) *Element {
	c := &Element{
		doc:       doc,
		tag:       e.tag,
		id:        e.id,
		classes:   ClassList{names: e.classes.Values()},
		dataset:   maps.Clone(e.dataset),
		text:      e.text,
		kind:      e.kind,
		value:     slices.Clone(e.value),
		selStart:  e.selStart,
		selEnd:    e.selEnd,
		maxLength: e.maxLength,
		title:     e.title,
		required:  e.required,
		pattern:   e.pattern,
		patternRe: e.patternRe,
	}
	if e.content != nil {
		c.content = e.content.clone(doc, true)
	}
	if deep {
		for _, child := range e.children {
			cc := child.clone(doc, true)
			cc.parent = c
			c.children = append(c.children, cc)
		}
	}
	return c
}

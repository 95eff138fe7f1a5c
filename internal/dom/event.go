package dom

// Event types delivered by the document.
const (
	EventInput    = "input"
	EventFocusIn  = "focusin"
	EventFocusOut = "focusout"
	EventMouseUp  = "mouseup"
	EventClick    = "click"
	EventSubmit   = "submit"
)

// Event is dispatched to the listeners of a single element.
type Event struct {
	Type   string
	Target *Element

	defaultPrevented bool
}

// NewEvent creates an event of the given type.
func NewEvent(typ string) *Event {
	return &Event{Type: typ}
}

// PreventDefault cancels the element's default action for this event.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether a listener called PreventDefault.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// Listener handles an event.
type Listener func(*Event)

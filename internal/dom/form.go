package dom

// RequestSubmit submits a form the way a user would: inputs are checked
// against their required and pattern constraints first, and when one fails
// it is focused and no submit event fires. Otherwise submit is dispatched
// and, unless prevented, the default action clears the form's inputs.
// It reports whether the submit event was dispatched.
func (e *Element) RequestSubmit() bool {
	if e.tag != TagForm {
		return false
	}
	inputs := e.QuerySelectorAll(TagInput)
	for _, in := range inputs {
		if !in.Validity().Valid() {
			in.Focus()
			return false
		}
	}
	if e.Dispatch(NewEvent(EventSubmit)) {
		for _, in := range inputs {
			in.SetValue("")
		}
	}
	return true
}

// Click fires a click event. A submit button whose click is not prevented
// requests submission of its form.
func (e *Element) Click() {
	if !e.Dispatch(NewEvent(EventClick)) {
		return
	}
	if e.tag == TagButton && (e.kind == "" || e.kind == "submit") {
		if f := e.Closest(TagForm); f != nil {
			f.RequestSubmit()
		}
	}
}

// Invalid reports whether e matches the :invalid pseudo-class.
func (e *Element) Invalid() bool {
	return e.tag == TagInput && !e.Validity().Valid()
}

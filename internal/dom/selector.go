package dom

import "strings"

// selector is a compound selector: an optional tag followed by any number of
// #id and .class parts, e.g. "form.birth-date" or "#app".
type selector struct {
	tag     string
	id      string
	classes []string
}

func parseSelector(s string) selector {
	var sel selector
	s = strings.TrimSpace(s)

	i := strings.IndexAny(s, "#.")
	if i < 0 {
		sel.tag = s
		return sel
	}
	sel.tag = s[:i]
	s = s[i:]

	for s != "" {
		kind := s[0]
		s = s[1:]
		end := strings.IndexAny(s, "#.")
		if end < 0 {
			end = len(s)
		}
		name := s[:end]
		s = s[end:]
		if kind == '#' {
			sel.id = name
		} else {
			sel.classes = append(sel.classes, name)
		}
	}
	return sel
}

func (sel selector) matches(e *Element) bool {
	if sel.tag != "" && sel.tag != e.tag {
		return false
	}
	if sel.id != "" && sel.id != e.id {
		return false
	}
	for _, c := range sel.classes {
		if !e.classes.Contains(c) {
			return false
		}
	}
	return sel.tag != "" || sel.id != "" || len(sel.classes) > 0
}

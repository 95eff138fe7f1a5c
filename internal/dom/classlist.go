package dom

import "slices"

// ClassList is the ordered set of class names of an element.
type ClassList struct {
	names []string
}

// Add adds names that are not already present.
func (c *ClassList) Add(names ...string) {
	for _, n := range names {
		if !c.Contains(n) {
			c.names = append(c.names, n)
		}
	}
}

// Remove removes names if present.
func (c *ClassList) Remove(names ...string) {
	c.names = slices.DeleteFunc(c.names, func(n string) bool {
		return slices.Contains(names, n)
	})
}

// Contains reports whether name is present.
func (c *ClassList) Contains(name string) bool {
	return slices.Contains(c.names, name)
}

// Values returns a copy of the class names in insertion order.
func (c *ClassList) Values() []string {
	return slices.Clone(c.names)
}

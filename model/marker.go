package model

import "sort"

// Marker is a named range tracked alongside a document or fragment. Markers
// are relocated, never copied, when their content moves between trees.
type Marker struct {
	Name  string
	Range Range
}

// MarkerCollection is an owned map of markers. It is attached explicitly to
// a Document or DocumentFragment; trees without a collection cannot track
// markers and inserted markers are dropped with a warning.
type MarkerCollection struct {
	markers map[string]*Marker
}

// NewMarkerCollection returns an empty collection.
func NewMarkerCollection() *MarkerCollection {
	return &MarkerCollection{markers: make(map[string]*Marker)}
}

// Set adds or moves the named marker to the given range.
func (c *MarkerCollection) Set(name string, r Range) *Marker {
	m := &Marker{Name: name, Range: r}
	c.markers[name] = m
	return m
}

// Get returns the named marker.
func (c *MarkerCollection) Get(name string) (*Marker, bool) {
	m, ok := c.markers[name]
	return m, ok
}

// Delete removes the named marker, reporting whether it existed.
func (c *MarkerCollection) Delete(name string) bool {
	_, ok := c.markers[name]
	delete(c.markers, name)
	return ok
}

// Len returns the number of markers.
func (c *MarkerCollection) Len() int {
	return len(c.markers)
}

// Names returns the marker names in sorted order.
func (c *MarkerCollection) Names() []string {
	names := make([]string, 0, len(c.markers))
	for name := range c.markers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

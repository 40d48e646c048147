package catalog

import "fmt"

// Catalog holds every panel in discovery order.
type Catalog struct {
	panels []Panel
	index  map[string]int
}

// New builds a catalog. Panels without an ID get DefaultID of their position;
// a duplicate ID is an error.
func New(panels []Panel) (*Catalog, error) {
	c := &Catalog{
		panels: make([]Panel, 0, len(panels)),
		index:  make(map[string]int, len(panels)),
	}
	for i, p := range panels {
		if p.ID == "" {
			p.ID = DefaultID(i)
		}
		if _, dup := c.index[p.ID]; dup {
			return nil, fmt.Errorf("duplicate panel id %q", p.ID)
		}
		c.index[p.ID] = len(c.panels)
		c.panels = append(c.panels, p)
	}
	return c, nil
}

// Len returns the number of panels.
func (c *Catalog) Len() int {
	return len(c.panels)
}

// Panels returns a copy of the panels in catalog order.
func (c *Catalog) Panels() []Panel {
	out := make([]Panel, len(c.panels))
	copy(out, c.panels)
	return out
}

// Get returns the panel with the given id.
func (c *Catalog) Get(id string) (Panel, bool) {
	i, ok := c.index[id]
	if !ok {
		return Panel{}, false
	}
	return c.panels[i], true
}

// Has reports whether id belongs to the catalog.
func (c *Catalog) Has(id string) bool {
	_, ok := c.index[id]
	return ok
}

// HasTag reports whether any panel carries tag.
func (c *Catalog) HasTag(tag string) bool {
	for _, p := range c.panels {
		if p.HasTag(tag) {
			return true
		}
	}
	return false
}

// Update applies fn to every panel in place.
func (c *Catalog) Update(fn func(p *Panel)) {
	for i := range c.panels {
		fn(&c.panels[i])
	}
}

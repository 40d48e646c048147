package schedule

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"radcon-schedule/internal/catalog"
	"radcon-schedule/internal/filter"
)

var (
	ErrUnknownPanel  = errors.New("unknown panel")
	ErrUnknownFilter = errors.New("unknown filter")
)

// View is the rendering surface driven by the controller. Implementations
// must not call back into the controller.
type View interface {
	Render(res filter.Result)
	SetFavorite(id string, favorited bool)
}

// FavoriteStore is the favorites API the controller needs.
type FavoriteStore interface {
	filter.Lookup
	Toggle(id string) (bool, error)
}

// Controller owns the FilterState of one schedule view and re-applies the
// filter on every user event.
type Controller struct {
	catalog *catalog.Catalog
	favs    FavoriteStore
	view    View
	search  *filter.Debouncer

	mu    sync.Mutex
	state filter.State
	last  filter.Result
}

// NewController builds a controller; a zero debounce uses filter.DefaultDebounce.
func NewController(cat *catalog.Catalog, favs FavoriteStore, view View, debounce time.Duration) *Controller {
	c := &Controller{
		catalog: cat,
		favs:    favs,
		view:    view,
		state:   filter.State{Category: filter.All},
	}
	c.search = filter.NewDebouncer(debounce, func() { c.Refresh() })
	return c
}

// Start paints the favorite icons of the loaded favorites and the initial
// filter result.
func (c *Controller) Start() filter.Result {
	for _, p := range c.catalog.Panels() {
		if c.favs.IsFavorited(p.ID) {
			c.view.SetFavorite(p.ID, true)
		}
	}
	return c.Refresh()
}

// SelectFilter activates one category filter, replacing the previous one.
// room narrows it to a room when non-empty.
func (c *Controller) SelectFilter(category, room string) (filter.Result, error) {
	if !filter.Selectable(category, c.catalog) {
		return filter.Result{}, fmt.Errorf("%w: %q", ErrUnknownFilter, category)
	}
	c.mu.Lock()
	c.state.Category = category
	c.state.Room = room
	c.mu.Unlock()
	return c.Refresh(), nil
}

// Search records the latest query text and schedules a debounced refresh.
func (c *Controller) Search(query string) {
	c.mu.Lock()
	c.state.Query = query
	c.mu.Unlock()
	c.search.Trigger()
}

// ClearSearch empties the query and refreshes immediately.
func (c *Controller) ClearSearch() filter.Result {
	c.search.Stop()
	c.mu.Lock()
	c.state.Query = ""
	c.mu.Unlock()
	return c.Refresh()
}

// ToggleFavorite flips a panel's favorite state. The store has persisted the
// change before the filter is re-applied.
func (c *Controller) ToggleFavorite(id string) (bool, error) {
	if !c.catalog.Has(id) {
		return false, fmt.Errorf("%w: %q", ErrUnknownPanel, id)
	}
	on, err := c.favs.Toggle(id)
	if err != nil {
		return on, err
	}
	c.view.SetFavorite(id, on)
	c.Refresh()
	return on, nil
}

// Refresh applies the current state and renders the result. A favorites
// selection that fell back to all is adopted as the new state.
func (c *Controller) Refresh() filter.Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	res := filter.Apply(c.catalog.Panels(), c.state, c.favs)
	c.state.Category = res.State.Category
	c.last = res
	c.view.Render(res)
	return res
}

// State returns the current filter selection.
func (c *Controller) State() filter.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Last returns the most recently rendered result.
func (c *Controller) Last() filter.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// SearchPending reports whether a debounced search is waiting to run.
func (c *Controller) SearchPending() bool {
	return c.search.Pending()
}

// Close cancels a pending search.
func (c *Controller) Close() {
	c.search.Stop()
}

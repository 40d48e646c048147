package filter

import "radcon-schedule/internal/catalog"

// Category filter selections besides the primary categories.
const (
	All       = "all"
	Favorites = "favorites"
	Adult     = "adult"
	Family    = "family"
)

// State is the active filter selection. Category holds exactly one selection;
// Room and Query narrow it further.
type State struct {
	Category string `json:"filter" form:"filter"`
	Room     string `json:"room,omitempty" form:"room"`
	Query    string `json:"q,omitempty" form:"q"`
}

// Normalized returns the state with an empty category replaced by All.
func (s State) Normalized() State {
	if s.Category == "" {
		s.Category = All
	}
	return s
}

// ValidCategory reports whether name is a selectable category filter.
func ValidCategory(name string) bool {
	switch name {
	case All, Favorites, Adult, Family:
		return true
	}
	return catalog.IsPrimary(name)
}

// Selectable reports whether name can be chosen as the category filter of
// cat: a category filter or a tag some panel carries.
func Selectable(name string, cat *catalog.Catalog) bool {
	return ValidCategory(name) || cat.HasTag(name)
}

// Lookup answers favorite membership questions.
type Lookup interface {
	IsFavorited(id string) bool
	HasAny() bool
}

type noFavorites struct{}

func (noFavorites) IsFavorited(string) bool { return false }
func (noFavorites) HasAny() bool            { return false }

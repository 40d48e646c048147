package catalog

import "fmt"

// Category is the primary classification of a panel.
type Category string

const (
	Workshop    Category = "workshop"
	Performance Category = "performance"
	Gaming      Category = "gaming"
	Art         Category = "art"
	Writing     Category = "writing"
	Science     Category = "science"
	Social      Category = "social"
	General     Category = "panel" // Fallback when no keyword matches
)

// Categories lists the primary categories in classification priority order.
var Categories = []Category{Workshop, Performance, Gaming, Art, Writing, Science, Social, General}

// IsPrimary reports whether s names one of the primary categories.
func IsPrimary(s string) bool {
	for _, c := range Categories {
		if string(c) == s {
			return true
		}
	}
	return false
}

// Day is a convention day.
type Day string

const (
	Friday   Day = "friday"
	Saturday Day = "saturday"
	Sunday   Day = "sunday"
)

// Days are the convention days in calendar order.
var Days = []Day{Friday, Saturday, Sunday}

// Panel is one schedule entry.
type Panel struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Presenter   string   `json:"presenter" yaml:"presenter"`
	Category    Category `json:"category" yaml:"category"`
	Adult       bool     `json:"adult" yaml:"adult"`
	Room        string   `json:"room" yaml:"room"`
	Day         Day      `json:"day" yaml:"day"`
	TimeBlock   string   `json:"time_block" yaml:"time_block"`
	Time        string   `json:"time,omitempty" yaml:"time"`

	// Tags are extra card labels such as "featured"; they can be selected
	// like categories.
	Tags []string `json:"tags,omitempty" yaml:"tags"`

	// FavoriteToggle is set once the favorite affordance exists for the panel.
	FavoriteToggle bool `json:"favorite_toggle" yaml:"-"`
}

// DefaultID is the identifier given to the panel discovered at index i.
func DefaultID(i int) string {
	return fmt.Sprintf("panel-%d", i)
}

// HasTag reports whether the panel carries tag.
func (p Panel) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

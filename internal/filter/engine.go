package filter

import (
	"strings"

	"radcon-schedule/internal/catalog"

	"github.com/prometheus/client_golang/prometheus"
)

// TheAnswer is the visible count that earns the highlight.
const TheAnswer = 42

var applications = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "schedule_filter_applications_total",
		Help: "Filter evaluations by effective category filter",
	},
	[]string{"filter"},
)

func init() {
	prometheus.MustRegister(applications)
}

// Result is the visibility of every panel and container for one State.
type Result struct {
	// State is the effective state, which differs from the requested one
	// after the favorites fallback.
	State        State       `json:"state"`
	VisibleIDs   []string    `json:"visible"`
	VisibleCount int         `json:"visible_count"`
	Answer       bool        `json:"answer"`
	AfterDark    bool        `json:"after_dark"`
	Days         []DayResult `json:"days"`

	// FavoritesAvailable tells whether the favorites filter can be offered.
	FavoritesAvailable bool `json:"favorites_available"`

	visible map[string]bool
}

// IsVisible reports whether the panel passed every predicate.
func (r Result) IsVisible(id string) bool {
	return r.visible[id]
}

// Day returns the result for one day.
func (r Result) Day(d catalog.Day) (DayResult, bool) {
	for _, dr := range r.Days {
		if dr.Day == d {
			return dr, true
		}
	}
	return DayResult{}, false
}

type DayResult struct {
	Day          catalog.Day   `json:"day"`
	TabVisible   bool          `json:"tab_visible"`
	NoEvents     bool          `json:"no_events"`
	VisibleCount int           `json:"visible_count"`
	Blocks       []BlockResult `json:"blocks"`
}

type BlockResult struct {
	ID           string `json:"id"`
	Time         string `json:"time,omitempty"`
	Visible      bool   `json:"visible"`
	VisibleCount int    `json:"visible_count"`
}

// Apply evaluates state against every panel. When the favorites filter is
// selected but nothing is favorited it falls back to All.
func Apply(panels []catalog.Panel, state State, favs Lookup) Result {
	if favs == nil {
		favs = noFavorites{}
	}
	state = state.Normalized()

	res := evaluate(panels, state, favs)
	if state.Category == Favorites && !res.FavoritesAvailable {
		state.Category = All
		res = evaluate(panels, state, favs)
	}

	applications.WithLabelValues(metricLabel(res.State.Category)).Inc()
	return res
}

// metricLabel keeps the label set bounded: tags and unknown names count
// as "other".
func metricLabel(category string) string {
	if ValidCategory(category) {
		return category
	}
	return "other"
}

func evaluate(panels []catalog.Panel, state State, favs Lookup) Result {
	res := Result{
		State:              state,
		VisibleIDs:         []string{},
		AfterDark:          state.Category == Adult,
		FavoritesAvailable: favs.HasAny(),
		visible:            make(map[string]bool, len(panels)),
	}

	room := strings.ToLower(state.Room)
	query := strings.ToLower(state.Query)

	for _, p := range panels {
		show := matchCategory(p, state.Category, favs)
		if show && room != "" {
			show = strings.Contains(strings.ToLower(p.Room), room)
		}
		if show && query != "" {
			show = matchQuery(p, query)
		}
		if show {
			res.visible[p.ID] = true
			res.VisibleIDs = append(res.VisibleIDs, p.ID)
		}
	}

	res.VisibleCount = len(res.VisibleIDs)
	res.Answer = res.VisibleCount == TheAnswer
	res.Days = foldDays(panels, res.visible)
	return res
}

func matchCategory(p catalog.Panel, filter string, favs Lookup) bool {
	switch filter {
	case All:
		return true
	case Favorites:
		return favs.IsFavorited(p.ID)
	case Adult:
		return p.Adult
	case Family:
		return !p.Adult
	default:
		return string(p.Category) == filter || p.HasTag(filter)
	}
}

func matchQuery(p catalog.Panel, query string) bool {
	return strings.Contains(strings.ToLower(p.Title), query) ||
		strings.Contains(strings.ToLower(p.Description), query) ||
		strings.Contains(strings.ToLower(p.Presenter), query)
}

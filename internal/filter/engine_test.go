package filter

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"radcon-schedule/internal/catalog"
)

type favSet map[string]bool

func (f favSet) IsFavorited(id string) bool { return f[id] }
func (f favSet) HasAny() bool               { return len(f) > 0 }

func fixture() []catalog.Panel {
	return []catalog.Panel{
		{ID: "f1", Title: "Robot Combat", Category: catalog.Science, Room: "Main Hall", Day: catalog.Friday, TimeBlock: "fri-1"},
		{ID: "f2", Title: "Filk Circle", Category: catalog.Performance, Room: "Room B", Day: catalog.Friday, TimeBlock: "fri-1"},
		{ID: "f3", Title: "Burlesque After Dark", Category: catalog.Performance, Adult: true, Room: "Main Hall", Day: catalog.Friday, TimeBlock: "fri-2"},
		{ID: "s1", Title: "Nuclear Fusion Today", Description: "Reactors explained", Category: catalog.Science, Room: "Room B", Day: catalog.Saturday, TimeBlock: "sat-1", Presenter: "Dr. Ada Quill"},
		{ID: "s2", Title: "Tabletop Tournament", Category: catalog.Gaming, Room: "Gaming Room", Day: catalog.Saturday, TimeBlock: "sat-2"},
		{ID: "u1", Title: "Closing Ceremonies", Category: catalog.General, Room: "Main Hall", Day: catalog.Sunday, TimeBlock: "sun-1"},
	}
}

func TestApply_CategoryPredicates(t *testing.T) {
	favs := favSet{"s2": true, "u1": true}

	tests := []struct {
		filter string
		want   []string
	}{
		{All, []string{"f1", "f2", "f3", "s1", "s2", "u1"}},
		{Favorites, []string{"s2", "u1"}},
		{Adult, []string{"f3"}},
		{Family, []string{"f1", "f2", "s1", "s2", "u1"}},
		{"science", []string{"f1", "s1"}},
		{"performance", []string{"f2", "f3"}},
		{"writing", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			res := Apply(fixture(), State{Category: tt.filter}, favs)
			assertVisible(t, res, tt.want)
		})
	}
}

func TestApply_AllShowsEverything(t *testing.T) {
	for n := 1; n <= 50; n += 7 {
		panels := make([]catalog.Panel, n)
		for i := range panels {
			panels[i] = catalog.Panel{ID: catalog.DefaultID(i)}
		}
		res := Apply(panels, State{Category: All}, nil)
		if res.VisibleCount != n {
			t.Errorf("n=%d: VisibleCount = %d", n, res.VisibleCount)
		}
	}
}

func TestApply_EmptyCategoryMeansAll(t *testing.T) {
	res := Apply(fixture(), State{}, nil)
	if res.VisibleCount != 6 || res.State.Category != All {
		t.Errorf("got count=%d state=%+v", res.VisibleCount, res.State)
	}
}

func TestApply_RoomFilter(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  []string
	}{
		{"Room only", State{Category: All, Room: "Main Hall"}, []string{"f1", "f3", "u1"}},
		{"Room is case insensitive", State{Category: All, Room: "main hall"}, []string{"f1", "f3", "u1"}},
		{"Room substring", State{Category: All, Room: "Room"}, []string{"f2", "s1", "s2"}},
		{"Room AND category", State{Category: "science", Room: "Room B"}, []string{"s1"}},
		{"Room AND adult", State{Category: Adult, Room: "Room B"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertVisible(t, Apply(fixture(), tt.state, nil), tt.want)
		})
	}
}

func TestApply_Search(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  []string
	}{
		{"Title", State{Category: All, Query: "robot"}, []string{"f1"}},
		{"Uppercase query", State{Category: All, Query: "TOURNAMENT"}, []string{"s2"}},
		{"Description", State{Category: All, Query: "reactors"}, []string{"s1"}},
		{"Presenter", State{Category: All, Query: "ada quill"}, []string{"s1"}},
		{"Narrows category", State{Category: "performance", Query: "filk"}, []string{"f2"}},
		{"No match in category", State{Category: "science", Query: "xyz-no-match"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertVisible(t, Apply(fixture(), tt.state, nil), tt.want)
		})
	}
}

func TestApply_FavoritesFallback(t *testing.T) {
	panels := fixture()

	got := Apply(panels, State{Category: Favorites, Query: "robot"}, favSet{})
	want := Apply(panels, State{Category: All, Query: "robot"}, favSet{})

	if got.State.Category != All {
		t.Errorf("effective filter = %q, want all", got.State.Category)
	}
	if got.State.Query != "robot" {
		t.Errorf("fallback dropped the query: %+v", got.State)
	}
	if got.VisibleCount != want.VisibleCount {
		t.Errorf("fallback count = %d, want %d", got.VisibleCount, want.VisibleCount)
	}
	if got.FavoritesAvailable {
		t.Error("favorites should not be available with an empty store")
	}

	// A nil lookup behaves like an empty store.
	if res := Apply(panels, State{Category: Favorites}, nil); res.State.Category != All || res.VisibleCount != len(panels) {
		t.Errorf("nil lookup: state=%+v count=%d", res.State, res.VisibleCount)
	}
}

func TestApply_FavoritesKeptWhenAvailable(t *testing.T) {
	res := Apply(fixture(), State{Category: Favorites}, favSet{"ghost": true})
	if res.State.Category != Favorites {
		t.Errorf("effective filter = %q, want favorites", res.State.Category)
	}
	// Favorites exist but none are in the catalog: an empty result is valid.
	if res.VisibleCount != 0 || !res.FavoritesAvailable {
		t.Errorf("count=%d available=%v", res.VisibleCount, res.FavoritesAvailable)
	}
}

func TestApply_Containers(t *testing.T) {
	res := Apply(fixture(), State{Category: "science"}, nil)

	fri, _ := res.Day(catalog.Friday)
	if !fri.TabVisible || fri.NoEvents || fri.VisibleCount != 1 {
		t.Errorf("friday: %+v", fri)
	}
	if len(fri.Blocks) != 2 || !fri.Blocks[0].Visible || fri.Blocks[1].Visible {
		t.Errorf("friday blocks: %+v", fri.Blocks)
	}

	sun, _ := res.Day(catalog.Sunday)
	if sun.TabVisible || !sun.NoEvents {
		t.Errorf("sunday should be flagged empty: %+v", sun)
	}

	if len(res.Days) != 3 || res.Days[0].Day != catalog.Friday || res.Days[2].Day != catalog.Sunday {
		t.Errorf("days out of order: %+v", res.Days)
	}
}

func TestApply_EmptyCatalogDays(t *testing.T) {
	res := Apply(nil, State{Category: All}, nil)
	if res.VisibleCount != 0 {
		t.Errorf("VisibleCount = %d", res.VisibleCount)
	}
	for _, d := range res.Days {
		if d.TabVisible || !d.NoEvents {
			t.Errorf("%s should be empty: %+v", d.Day, d)
		}
	}
}

func TestApply_ExtraDayFollowsConventionDays(t *testing.T) {
	panels := append(fixture(), catalog.Panel{ID: "x1", Day: "thursday", TimeBlock: "thu-1"})
	res := Apply(panels, State{Category: All}, nil)

	if len(res.Days) != 4 || res.Days[3].Day != "thursday" || !res.Days[3].TabVisible {
		t.Errorf("days: %+v", res.Days)
	}
}

func TestApply_TheAnswer(t *testing.T) {
	for _, n := range []int{0, 41, 42, 43} {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			panels := make([]catalog.Panel, n)
			for i := range panels {
				panels[i] = catalog.Panel{ID: catalog.DefaultID(i)}
			}
			res := Apply(panels, State{Category: All}, nil)
			if res.Answer != (n == 42) {
				t.Errorf("count %d: Answer = %v", n, res.Answer)
			}
		})
	}
}

func TestApply_AfterDark(t *testing.T) {
	if !Apply(fixture(), State{Category: Adult}, nil).AfterDark {
		t.Error("adult filter should enable after dark mode")
	}
	if Apply(fixture(), State{Category: Family}, nil).AfterDark {
		t.Error("family filter should not enable after dark mode")
	}
}

func TestValidCategory(t *testing.T) {
	for _, ok := range []string{"all", "favorites", "adult", "family", "gaming", "panel"} {
		if !ValidCategory(ok) {
			t.Errorf("%q should be valid", ok)
		}
	}
	for _, bad := range []string{"", "ALL", "kids"} {
		if ValidCategory(bad) {
			t.Errorf("%q should be invalid", bad)
		}
	}
}

func TestApply_TagFilter(t *testing.T) {
	panels := fixture()
	panels[1].Tags = []string{"featured"}
	panels[4].Tags = []string{"featured", "new"}

	assertVisible(t, Apply(panels, State{Category: "featured"}, nil), []string{"f2", "s2"})
	assertVisible(t, Apply(panels, State{Category: "featured", Room: "gaming"}, nil), []string{"s2"})
	assertVisible(t, Apply(panels, State{Category: "new"}, nil), []string{"s2"})
}

func TestSelectable(t *testing.T) {
	cat, err := catalog.New([]catalog.Panel{{ID: "p1", Tags: []string{"featured"}}})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	for _, ok := range []string{"all", "science", "featured"} {
		if !Selectable(ok, cat) {
			t.Errorf("%q should be selectable", ok)
		}
	}
	for _, bad := range []string{"kids", "p1", ""} {
		if Selectable(bad, cat) {
			t.Errorf("%q should not be selectable", bad)
		}
	}
}

func TestApply_MetricLabelsStayBounded(t *testing.T) {
	before := testutil.ToFloat64(applications.WithLabelValues("other"))
	Apply(fixture(), State{Category: "no-such-filter-1"}, nil)
	Apply(fixture(), State{Category: "no-such-filter-2"}, nil)

	if got := testutil.ToFloat64(applications.WithLabelValues("other")) - before; got != 2 {
		t.Errorf("other applications = %v, want 2", got)
	}
	if got := testutil.CollectAndCount(applications, "schedule_filter_applications_total"); got > len(catalog.Categories)+5 {
		t.Errorf("filter metric has %d series", got)
	}
	if metricLabel("science") != "science" || metricLabel("featured") != "other" {
		t.Error("metricLabel should keep known filters and fold the rest")
	}
}

func assertVisible(t *testing.T, res Result, want []string) {
	t.Helper()
	if res.VisibleCount != len(want) {
		t.Fatalf("VisibleCount = %d (%v), want %d (%v)", res.VisibleCount, res.VisibleIDs, len(want), want)
	}
	for i, id := range want {
		if res.VisibleIDs[i] != id || !res.IsVisible(id) {
			t.Errorf("visible = %v, want %v", res.VisibleIDs, want)
			return
		}
	}
}

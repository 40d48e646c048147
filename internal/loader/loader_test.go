package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"radcon-schedule/internal/catalog"
	"radcon-schedule/internal/classifier"
	"radcon-schedule/internal/storage"
)

func openFixture(t *testing.T, name string) *os.File {
	t.Helper()
	f, err := os.Open(filepath.Join("testdata", name))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestFromHTML(t *testing.T) {
	panels, err := FromHTML(openFixture(t, "schedule.html"))
	require.NoError(t, err)
	require.Len(t, panels, 4)

	robotics := panels[0]
	assert.Equal(t, "", robotics.ID)
	assert.Equal(t, "Intro to Robotics 101", robotics.Title)
	assert.Equal(t, "Build a line-following bot.", robotics.Description)
	assert.Equal(t, "Dr. Ada Quill", robotics.Presenter)
	assert.Equal(t, "Room B", robotics.Room)
	assert.Equal(t, catalog.Friday, robotics.Day)
	assert.Equal(t, "fri-4pm", robotics.TimeBlock)
	assert.Equal(t, "4:00 PM", robotics.Time)
	assert.Empty(t, robotics.Category)
	assert.False(t, robotics.Adult)

	dnd := panels[1]
	assert.Equal(t, "D&D One-Shot", dnd.Title)
	assert.Equal(t, catalog.Gaming, dnd.Category)
	assert.Equal(t, "fri-4pm", dnd.TimeBlock)

	burlesque := panels[2]
	assert.Equal(t, "burlesque", burlesque.ID)
	assert.True(t, burlesque.FavoriteToggle)
	assert.Equal(t, "Burlesque After Dark", burlesque.Title)
	assert.Equal(t, catalog.Performance, burlesque.Category)
	assert.True(t, burlesque.Adult)
	assert.Equal(t, "friday-2", burlesque.TimeBlock)
	assert.Equal(t, "9:00 PM", burlesque.Time)

	cosplay := panels[3]
	assert.Equal(t, catalog.Saturday, cosplay.Day)
	assert.Equal(t, "saturday-1", cosplay.TimeBlock)
	assert.Equal(t, []string{"featured"}, cosplay.Tags)

	// Category, adult and layout classes are not tags.
	assert.Empty(t, burlesque.Tags)
	assert.Empty(t, dnd.Tags)
}

func TestFromHTML_ClassifiedCatalog(t *testing.T) {
	panels, err := FromHTML(openFixture(t, "schedule.html"))
	require.NoError(t, err)

	cat, err := catalog.New(panels)
	require.NoError(t, err)
	classifier.New().Classify(cat)

	want := map[string]catalog.Category{
		"panel-0":   catalog.Workshop,
		"panel-1":   catalog.Gaming,
		"burlesque": catalog.Performance,
		"panel-3":   catalog.Workshop,
	}
	for id, category := range want {
		p, ok := cat.Get(id)
		require.True(t, ok, id)
		assert.Equal(t, category, p.Category, id)
		assert.True(t, p.FavoriteToggle, id)
	}
}

func TestFromHTML_NoPanels(t *testing.T) {
	panels, err := FromHTML(strings.NewReader("<html><body><p>Nothing here</p></body></html>"))
	require.NoError(t, err)
	assert.Empty(t, panels)
}

func TestFromYAML(t *testing.T) {
	panels, err := FromYAML(openFixture(t, "schedule.yaml"))
	require.NoError(t, err)
	require.Len(t, panels, 4)

	// Friday is listed before Sunday regardless of file order.
	assert.Equal(t, "opening", panels[0].ID)
	assert.Equal(t, catalog.Friday, panels[0].Day)
	assert.Equal(t, "friday-1", panels[0].TimeBlock)
	assert.Equal(t, "4:00 PM", panels[0].Time)

	assert.Equal(t, catalog.Gaming, panels[1].Category)
	assert.True(t, panels[2].Adult)
	assert.Equal(t, "friday-2", panels[2].TimeBlock)

	assert.Equal(t, catalog.Sunday, panels[3].Day)
	assert.Equal(t, "sun-1", panels[3].TimeBlock)
}

func TestFromYAML_Errors(t *testing.T) {
	_, err := FromYAML(strings.NewReader("schedule: [not, a, map"))
	assert.Error(t, err)

	_, err = FromYAML(strings.NewReader("schedule:\n  friday:\n    - panels:\n        - title: x\n          category: karaoke\n"))
	assert.ErrorContains(t, err, "unknown category")

	panels, err := FromYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, panels)
}

func TestParse_UnknownFormat(t *testing.T) {
	_, err := Parse("schedule.csv", strings.NewReader(""))
	assert.ErrorContains(t, err, "unsupported catalog format")
}

func TestLoad_FromStorage(t *testing.T) {
	store := storage.NewWithProvider(storage.NewLocalProvider(t.TempDir()), "site", "favorites")
	require.NoError(t, store.UploadCatalog("index.html", openFixture(t, "schedule.html"), "text/html"))

	cat, err := Load(store, "index.html")
	require.NoError(t, err)
	assert.Equal(t, 4, cat.Len())

	_, err = Load(store, "missing.html")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

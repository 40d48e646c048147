package catalog

import "testing"

func TestNew_AssignsDefaultIDs(t *testing.T) {
	c, err := New([]Panel{
		{Title: "First"},
		{ID: "custom", Title: "Second"},
		{Title: "Third"},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	want := []string{"panel-0", "custom", "panel-2"}
	for i, p := range c.Panels() {
		if p.ID != want[i] {
			t.Errorf("panel %d: got id %q, want %q", i, p.ID, want[i])
		}
	}
	if !c.Has("custom") || c.Has("panel-1") {
		t.Error("index does not match assigned ids")
	}
}

func TestNew_DuplicateID(t *testing.T) {
	_, err := New([]Panel{{ID: "a"}, {ID: "a"}})
	if err == nil {
		t.Fatal("expected duplicate id error, got nil")
	}
}

func TestPanels_ReturnsCopy(t *testing.T) {
	c, _ := New([]Panel{{Title: "Original"}})

	ps := c.Panels()
	ps[0].Title = "Mutated"

	got, _ := c.Get("panel-0")
	if got.Title != "Original" {
		t.Errorf("catalog mutated through Panels(): %q", got.Title)
	}
}

func TestIsPrimary(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"workshop", true},
		{"panel", true},
		{"adult", false},
		{"", false},
		{"Workshop", false},
	}
	for _, tt := range tests {
		if got := IsPrimary(tt.in); got != tt.want {
			t.Errorf("IsPrimary(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

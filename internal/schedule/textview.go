package schedule

import (
	"fmt"
	"io"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"radcon-schedule/internal/catalog"
	"radcon-schedule/internal/filter"
)

var titleCase = cases.Title(language.English)

// TextView renders schedule results as plain text.
type TextView struct {
	w       io.Writer
	catalog *catalog.Catalog
}

func NewTextView(w io.Writer, cat *catalog.Catalog) *TextView {
	return &TextView{w: w, catalog: cat}
}

// CountLabel is the panel counter text.
func CountLabel(res filter.Result) string {
	if res.Answer {
		return fmt.Sprintf("%d — The Answer!", res.VisibleCount)
	}
	return fmt.Sprintf("%d", res.VisibleCount)
}

func (v *TextView) Render(res filter.Result) {
	mode := ""
	if res.AfterDark {
		mode = " [after dark]"
	}
	fmt.Fprintf(v.w, "filter=%s room=%q q=%q%s\n", res.State.Category, res.State.Room, res.State.Query, mode)
	fmt.Fprintf(v.w, "panels: %s\n", CountLabel(res))

	panels := v.catalog.Panels()
	for _, d := range res.Days {
		if d.NoEvents {
			fmt.Fprintf(v.w, "  %s: no events\n", titleCase.String(string(d.Day)))
			continue
		}
		fmt.Fprintf(v.w, "  %s (%d)\n", titleCase.String(string(d.Day)), d.VisibleCount)
		for _, b := range d.Blocks {
			if !b.Visible {
				continue
			}
			label := b.Time
			if label == "" {
				label = b.ID
			}
			fmt.Fprintf(v.w, "    %s\n", label)
			for _, p := range panels {
				if p.Day == d.Day && p.TimeBlock == b.ID && res.IsVisible(p.ID) {
					v.panelLine(p)
				}
			}
		}
	}

	for _, p := range panels {
		if p.Day == "" && res.IsVisible(p.ID) {
			v.panelLine(p)
		}
	}
}

func (v *TextView) panelLine(p catalog.Panel) {
	fmt.Fprintf(v.w, "      [%s] %s (%s)", p.ID, p.Title, p.Category)
	if p.Room != "" {
		fmt.Fprintf(v.w, " @ %s", p.Room)
	}
	fmt.Fprintln(v.w)
}

func (v *TextView) SetFavorite(id string, favorited bool) {
	mark := "♡"
	if favorited {
		mark = "♥"
	}
	fmt.Fprintf(v.w, "%s %s\n", mark, id)
}

package filter

import "radcon-schedule/internal/catalog"

type blockGroup struct {
	id     string
	time   string
	panels []string
}

type dayGroup struct {
	day    catalog.Day
	blocks []*blockGroup
	byID   map[string]*blockGroup
}

// foldDays groups panels by day and time block, then reduces leaf visibility
// upward. The convention days always come first, in calendar order.
func foldDays(panels []catalog.Panel, visible map[string]bool) []DayResult {
	var order []*dayGroup
	byDay := make(map[catalog.Day]*dayGroup)

	group := func(d catalog.Day) *dayGroup {
		g, ok := byDay[d]
		if !ok {
			g = &dayGroup{day: d, byID: make(map[string]*blockGroup)}
			byDay[d] = g
			order = append(order, g)
		}
		return g
	}
	for _, d := range catalog.Days {
		group(d)
	}

	for _, p := range panels {
		if p.Day == "" {
			continue
		}
		g := group(p.Day)
		b, ok := g.byID[p.TimeBlock]
		if !ok {
			b = &blockGroup{id: p.TimeBlock, time: p.Time}
			g.byID[p.TimeBlock] = b
			g.blocks = append(g.blocks, b)
		}
		b.panels = append(b.panels, p.ID)
	}

	days := make([]DayResult, 0, len(order))
	for _, g := range order {
		dr := DayResult{Day: g.day, Blocks: make([]BlockResult, 0, len(g.blocks))}
		for _, b := range g.blocks {
			br := BlockResult{ID: b.id, Time: b.time}
			for _, id := range b.panels {
				if visible[id] {
					br.VisibleCount++
				}
			}
			br.Visible = br.VisibleCount > 0
			dr.VisibleCount += br.VisibleCount
			dr.Blocks = append(dr.Blocks, br)
		}
		hasEvents := dr.VisibleCount > 0
		dr.TabVisible = hasEvents
		dr.NoEvents = !hasEvents
		days = append(days, dr)
	}
	return days
}

package loader

import (
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"

	"radcon-schedule/internal/catalog"
)

// ScheduleFile matches the YAML catalog layout:
//
//	schedule:
//	  friday:
//	    - id: fri-1
//	      time: "10:00 AM"
//	      panels:
//	        - title: "Opening Ceremonies"
//	          room: "Main Hall"
type ScheduleFile struct {
	Schedule map[string][]TimeBlock `yaml:"schedule"`
}

type TimeBlock struct {
	ID     string          `yaml:"id"`
	Time   string          `yaml:"time"`
	Panels []catalog.Panel `yaml:"panels"`
}

// FromYAML reads panels from a YAML schedule file. Convention days come first
// in calendar order, any other day follows alphabetically.
func FromYAML(r io.Reader) ([]catalog.Panel, error) {
	var f ScheduleFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parse schedule yaml: %w", err)
	}

	var panels []catalog.Panel
	for _, day := range dayOrder(f.Schedule) {
		for i, block := range f.Schedule[day] {
			id := block.ID
			if id == "" {
				id = fmt.Sprintf("%s-%d", day, i+1)
			}
			for _, p := range block.Panels {
				p.Day = catalog.Day(day)
				p.TimeBlock = id
				p.Time = block.Time
				if p.Category != "" && !catalog.IsPrimary(string(p.Category)) {
					return nil, fmt.Errorf("panel %q: unknown category %q", p.Title, p.Category)
				}
				panels = append(panels, p)
			}
		}
	}
	return panels, nil
}

func dayOrder(schedule map[string][]TimeBlock) []string {
	var order []string
	known := make(map[string]bool)
	for _, d := range catalog.Days {
		known[string(d)] = true
		if _, ok := schedule[string(d)]; ok {
			order = append(order, string(d))
		}
	}

	var extra []string
	for d := range schedule {
		if !known[d] {
			extra = append(extra, d)
		}
	}
	sort.Strings(extra)
	return append(order, extra...)
}

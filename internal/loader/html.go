package loader

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"radcon-schedule/internal/catalog"
)

// FromHTML reads the panels of the schedule page markup. Each .panel-card is
// one panel, in document order; its day comes from the enclosing
// #<day>-schedule column and its time block from the enclosing .time-block.
func FromHTML(r io.Reader) ([]catalog.Panel, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse schedule markup: %w", err)
	}

	var panels []catalog.Panel
	blockSeq := make(map[catalog.Day]int)
	blockNames := make(map[*html.Node]string)

	doc.Find(".panel-card").Each(func(i int, card *goquery.Selection) {
		p := catalog.Panel{
			Title:       text(card.Find("h5").First()),
			Description: text(card.Find("p").Not(".presenter, .room-tag").First()),
			Presenter:   text(card.Find(".presenter").First()),
			Room:        text(card.Find(".room-tag").First()),
		}

		if id, ok := card.Find(".favorite-btn").Attr("data-panel-id"); ok {
			p.ID = id
			p.FavoriteToggle = true
		} else if id, ok := card.Attr("data-panel-id"); ok {
			p.ID = id
		}

		for _, class := range strings.Fields(card.AttrOr("class", "")) {
			switch {
			case class == "adult":
				p.Adult = true
			case catalog.IsPrimary(class):
				if p.Category == "" {
					p.Category = catalog.Category(class)
				}
			case class != "panel-card":
				p.Tags = append(p.Tags, class)
			}
		}

		if day := card.Closest(".schedule-day"); day.Length() > 0 {
			id := day.AttrOr("id", "")
			p.Day = catalog.Day(strings.TrimSuffix(id, "-schedule"))
		}

		if block := card.Closest(".time-block"); block.Length() > 0 {
			node := block.Get(0)
			name, ok := blockNames[node]
			if !ok {
				blockSeq[p.Day]++
				name = block.AttrOr("id", "")
				if name == "" {
					name = fmt.Sprintf("%s-%d", p.Day, blockSeq[p.Day])
				}
				blockNames[node] = name
			}
			p.TimeBlock = name
			p.Time = text(block.Find(".time-label").First())
		}

		panels = append(panels, p)
	})

	return panels, nil
}

// text returns the element text with whitespace collapsed.
func text(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.Text()), " ")
}

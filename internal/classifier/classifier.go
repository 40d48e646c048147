package classifier

import (
	"regexp"

	"radcon-schedule/internal/catalog"

	"github.com/prometheus/client_golang/prometheus"
)

var classified = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "schedule_panels_classified_total",
		Help: "Panels assigned a category, by category and source (keyword, fallback)",
	},
	[]string{"category", "source"},
)

func init() {
	prometheus.MustRegister(classified)
}

// Rule maps a keyword pattern to a category.
type Rule struct {
	Category catalog.Category
	Pattern  *regexp.Regexp
}

// DefaultRules are evaluated in this exact order; the first match wins.
// "demo" is shared by workshop and performance on purpose.
var DefaultRules = []Rule{
	{catalog.Workshop, regexp.MustCompile(`(?i)workshop|hands-on|learn to|how to|create your|make your|demo|101|basics|beginner|introduction to`)},
	{catalog.Performance, regexp.MustCompile(`(?i)dance|show|competition|concert|reading|demo|extravaganza|filk|sing|perform|display`)},
	{catalog.Gaming, regexp.MustCompile(`(?i)d&d|dungeons|game|rpg|tournament|magic|tabletop|quest|starfinder|traveler`)},
	{catalog.Art, regexp.MustCompile(`(?i)art|draw|paint|cosplay|costume|fabric|craft|airbrush|pewter|chainmail|metal paint`)},
	{catalog.Writing, regexp.MustCompile(`(?i)writ|author|publish|story|fiction|book|manuscript|novel|podcast|edit|cover`)},
	{catalog.Science, regexp.MustCompile(`(?i)science|space|physics|tech|ai|robot|nasa|nuclear|energy|genetics|aerospace|fusion|reactor`)},
	{catalog.Social, regexp.MustCompile(`(?i)social|community|fandom|culture|history|etiquette|japanese|filipino|starfleet|religion|belief`)},
	{catalog.General, regexp.MustCompile(`(?i)discuss|panel|talk|history|analysis|debate|define|prophecy|influences`)},
}

// Stats summarizes one Classify pass.
type Stats struct {
	Classified     int // Panels given a category by this pass
	Explicit       int // Panels that already carried a category
	TogglesCreated int
}

// Classifier assigns categories with an ordered rule list.
type Classifier struct {
	rules    []Rule
	fallback catalog.Category
}

// New returns a classifier using DefaultRules.
func New() *Classifier {
	return NewWithRules(DefaultRules)
}

func NewWithRules(rules []Rule) *Classifier {
	return &Classifier{rules: rules, fallback: catalog.General}
}

// Category returns the category for a panel. A panel with a category keeps it.
func (c *Classifier) Category(p catalog.Panel) catalog.Category {
	if p.Category != "" {
		return p.Category
	}
	cat, _ := c.match(p.Title + " " + p.Description)
	return cat
}

func (c *Classifier) match(text string) (catalog.Category, bool) {
	for _, r := range c.rules {
		if r.Pattern.MatchString(text) {
			return r.Category, true
		}
	}
	return c.fallback, false
}

// Classify categorizes every uncategorized panel of the catalog and makes sure
// each panel has its favorite toggle. Running it again is a no-op.
func (c *Classifier) Classify(cat *catalog.Catalog) Stats {
	var st Stats
	cat.Update(func(p *catalog.Panel) {
		if p.Category != "" {
			st.Explicit++
		} else {
			category, matched := c.match(p.Title + " " + p.Description)
			p.Category = category

			source := "keyword"
			if !matched {
				source = "fallback"
			}
			classified.WithLabelValues(string(category), source).Inc()
			st.Classified++
		}

		if !p.FavoriteToggle {
			p.FavoriteToggle = true
			st.TogglesCreated++
		}
	})
	return st
}

package mood

import (
	"sort"
	"time"

	"github.com/desertthunder/moodx/internal/models"
)

// HistoryTopN is how many of a user's most-watched moods drive personalized ranking.
const HistoryTopN = 3

// Curator builds mood playlists and suggestions from a catalog.
type Curator struct {
	classifier *Classifier
	now        func() time.Time
	unified    bool
}

// Option configures a [Curator].
type Option func(*Curator)

// WithClassifier sets the classifier used to tag content.
func WithClassifier(c *Classifier) Option {
	return func(cu *Curator) {
		if c != nil {
			cu.classifier = c
		}
	}
}

// WithClock sets the wall clock consulted when no period is given.
func WithClock(now func() time.Time) Option {
	return func(cu *Curator) {
		if now != nil {
			cu.now = now
		}
	}
}

// WithUnifiedPeriods makes explicit periods and clock hours share the label table,
// restricted to enumerated moods. The default keeps the two tables distinct.
func WithUnifiedPeriods(enabled bool) Option {
	return func(cu *Curator) {
		cu.unified = enabled
	}
}

// NewCurator creates a Curator with the default classifier and [time.Now].
func NewCurator(opts ...Option) *Curator {
	c := &Curator{classifier: NewClassifier(), now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify returns the moods for a single item. See [Classifier.Classify].
func (c *Curator) Classify(item models.ContentItem) []models.MoodTag {
	return c.classifier.Classify(item)
}

// Generate returns exactly one playlist per mood, in enumeration order.
//
// Each playlist holds the first [models.MaxPlaylistItems] items of catalog, in catalog order,
// whose moods include the playlist's mood. Moods with no matches yield an empty playlist.
func (c *Curator) Generate(catalog []models.ContentItem) []models.MoodPlaylist {
	tagged := make([][]models.MoodTag, len(catalog))
	for i, item := range catalog {
		tagged[i] = c.classifier.Classify(item)
	}

	playlists := make([]models.MoodPlaylist, 0, len(templates))
	for _, t := range templates {
		p := t.playlist()
		for i, item := range catalog {
			if len(p.Content) == models.MaxPlaylistItems {
				break
			}
			if containsMood(tagged[i], t.mood) {
				p.Content = append(p.Content, item)
			}
		}
		playlists = append(playlists, p)
	}
	return playlists
}

// SuggestedMoods returns the mood labels suggested for period. An empty period uses the
// clock hour. Unknown periods suggest nothing. Labels may include non-enumerated values
// unless the curator uses unified periods.
func (c *Curator) SuggestedMoods(period models.TimeOfDay) []models.MoodTag {
	var moods []models.MoodTag
	if period == "" {
		moods = c.periodTable(false)[models.PeriodForHour(c.now().Hour())]
	} else {
		moods = c.periodTable(true)[period]
	}
	out := make([]models.MoodTag, len(moods))
	copy(out, moods)
	return out
}

// ForTimeOfDay returns the templates suggested for period, in template order, with empty content.
func (c *Curator) ForTimeOfDay(period models.TimeOfDay) []models.MoodPlaylist {
	return filterTemplates(c.SuggestedMoods(period))
}

// Personalized ranks templates by history, blended with the period of at.
//
// With no history it is equivalent to ForTimeOfDay(""). Otherwise the three most frequent
// history moods are combined with the clock moods for at's hour; matching templates are
// returned with the history moods first, each group in template order. A zero at means now.
func (c *Curator) Personalized(history []models.ContentItem, at time.Time) []models.MoodPlaylist {
	if len(history) == 0 {
		return c.ForTimeOfDay("")
	}
	if at.IsZero() {
		at = c.now()
	}

	top := c.TopMoods(history, HistoryTopN)
	timed := c.periodTable(false)[models.PeriodForHour(at.Hour())]

	union := make([]models.MoodTag, 0, len(top)+len(timed))
	for _, m := range append(append([]models.MoodTag{}, top...), timed...) {
		if !containsMood(union, m) {
			union = append(union, m)
		}
	}

	result := filterTemplates(union)
	sort.SliceStable(result, func(i, j int) bool {
		return containsMood(top, result[i].Mood) && !containsMood(top, result[j].Mood)
	})
	return result
}

// TopMoods returns up to n moods from history ordered by descending frequency.
// Ties keep the order in which moods were first seen.
func (c *Curator) TopMoods(history []models.ContentItem, n int) []models.MoodTag {
	counts := make(map[models.MoodTag]int)
	var seen []models.MoodTag
	for _, item := range history {
		for _, m := range c.classifier.Classify(item) {
			if counts[m] == 0 {
				seen = append(seen, m)
			}
			counts[m]++
		}
	}

	sort.SliceStable(seen, func(i, j int) bool {
		return counts[seen[i]] > counts[seen[j]]
	})

	if n < len(seen) {
		seen = seen[:n]
	}
	return seen
}

// periodTable picks the table for an explicit label (label=true) or a clock hour.
func (c *Curator) periodTable(label bool) map[models.TimeOfDay][]models.MoodTag {
	if !c.unified {
		if label {
			return labelMoods
		}
		return clockMoods
	}
	unified := make(map[models.TimeOfDay][]models.MoodTag, len(labelMoods))
	for period, moods := range labelMoods {
		unified[period] = validOnly(moods)
	}
	return unified
}

func filterTemplates(moods []models.MoodTag) []models.MoodPlaylist {
	out := []models.MoodPlaylist{}
	for _, t := range templates {
		if containsMood(moods, t.mood) {
			out = append(out, t.playlist())
		}
	}
	return out
}

func containsMood(moods []models.MoodTag, m models.MoodTag) bool {
	for _, mood := range moods {
		if mood == m {
			return true
		}
	}
	return false
}

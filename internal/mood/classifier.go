package mood

import (
	"strings"
	"unicode"

	"github.com/desertthunder/moodx/internal/models"
)

// Classifier tags content with moods using a keyword table.
//
// The table is copied on construction and never modified, so a Classifier may be shared.
type Classifier struct {
	keywords   map[models.MoodTag][]string
	wholeWords bool
}

// ClassifierOption configures a [Classifier].
type ClassifierOption func(*Classifier)

// WithKeywords replaces [DefaultKeywords]. Keywords are lowercased; moods missing from
// table never match (but relaxed is still the fallback).
func WithKeywords(table map[models.MoodTag][]string) ClassifierOption {
	return func(c *Classifier) {
		c.keywords = copyKeywords(table)
	}
}

// WithWholeWords switches free-text matching from unanchored substrings to whole-word
// token sequences, so "love" no longer matches "glove". Genre matching is unaffected.
func WithWholeWords(enabled bool) ClassifierOption {
	return func(c *Classifier) {
		c.wholeWords = enabled
	}
}

// NewClassifier creates a Classifier using [DefaultKeywords] unless overridden.
func NewClassifier(opts ...ClassifierOption) *Classifier {
	c := &Classifier{keywords: copyKeywords(DefaultKeywords)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify returns the moods that apply to item in enumeration order.
// The result is never empty: an item matching no keyword is relaxed.
func (c *Classifier) Classify(item models.ContentItem) []models.MoodTag {
	text := newItemText(item, c.wholeWords)

	var moods []models.MoodTag
	for _, mood := range models.AllMoods() {
		if c.matches(text, mood) {
			moods = append(moods, mood)
		}
	}

	if len(moods) == 0 {
		return []models.MoodTag{models.MoodRelaxed}
	}
	return moods
}

// Keywords returns a copy of the keywords configured for mood.
func (c *Classifier) Keywords(mood models.MoodTag) []string {
	kw := c.keywords[mood]
	out := make([]string, len(kw))
	copy(out, kw)
	return out
}

func (c *Classifier) matches(text itemText, mood models.MoodTag) bool {
	for _, kw := range c.keywords[mood] {
		if _, ok := text.genres[kw]; ok {
			return true
		}
		if c.wholeWords {
			words := tokenize(kw)
			if containsRun(text.descriptionTokens, words) || containsRun(text.titleTokens, words) {
				return true
			}
			continue
		}
		if strings.Contains(text.description, kw) || strings.Contains(text.title, kw) {
			return true
		}
	}
	return false
}

// itemText is the lowercased view of an item that keywords are matched against.
type itemText struct {
	genres            map[string]struct{}
	description       string
	title             string
	descriptionTokens []string
	titleTokens       []string
}

func newItemText(item models.ContentItem, tokens bool) itemText {
	text := itemText{
		genres:      make(map[string]struct{}, len(item.Genres)),
		description: strings.ToLower(item.Description),
		title:       strings.ToLower(item.Title),
	}
	for _, g := range item.Genres {
		text.genres[strings.ToLower(g)] = struct{}{}
	}
	if tokens {
		text.descriptionTokens = tokenize(text.description)
		text.titleTokens = tokenize(text.title)
	}
	return text
}

// tokenize splits s into words. Hyphens stay inside words so "sci-fi" is one token.
func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
	})
}

// containsRun reports whether words appears as a contiguous run inside tokens.
func containsRun(tokens, words []string) bool {
	if len(words) == 0 || len(words) > len(tokens) {
		return false
	}
	for i := 0; i+len(words) <= len(tokens); i++ {
		match := true
		for j, w := range words {
			if tokens[i+j] != w {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func copyKeywords(table map[models.MoodTag][]string) map[models.MoodTag][]string {
	out := make(map[models.MoodTag][]string, len(table))
	for mood, kws := range table {
		lowered := make([]string, 0, len(kws))
		for _, kw := range kws {
			if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
				lowered = append(lowered, kw)
			}
		}
		out[mood] = lowered
	}
	return out
}

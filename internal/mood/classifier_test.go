package mood

import (
	"testing"

	"github.com/desertthunder/moodx/internal/models"
)

func assertMoods(t *testing.T, got []models.MoodTag, want ...models.MoodTag) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected moods %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected moods %v, got %v", want, got)
			return
		}
	}
}

func hasMood(moods []models.MoodTag, m models.MoodTag) bool {
	for _, mood := range moods {
		if mood == m {
			return true
		}
	}
	return false
}

func TestClassifier(t *testing.T) {
	c := NewClassifier()

	t.Run("matches genre and free text", func(t *testing.T) {
		item := models.ContentItem{ID: "1", Title: "Joy", Description: "a happy tale", Genres: []string{"comedy"}}
		assertMoods(t, c.Classify(item), models.MoodHappy)
	})

	t.Run("falls back to relaxed", func(t *testing.T) {
		item := models.ContentItem{ID: "2", Title: "Zzz", Description: "nothing here", Genres: []string{"misc"}}
		assertMoods(t, c.Classify(item), models.MoodRelaxed)
	})

	t.Run("empty item falls back to relaxed", func(t *testing.T) {
		assertMoods(t, c.Classify(models.ContentItem{}), models.MoodRelaxed)
	})

	t.Run("horror with supernatural description is scary", func(t *testing.T) {
		item := models.ContentItem{ID: "3", Title: "The Manor", Description: "A supernatural presence stirs", Genres: []string{"horror"}}
		if !hasMood(c.Classify(item), models.MoodScary) {
			t.Errorf("expected scary in %v", c.Classify(item))
		}
	})

	t.Run("multiple moods follow enumeration order", func(t *testing.T) {
		item := models.ContentItem{ID: "4", Genres: []string{"romance", "comedy"}}
		assertMoods(t, c.Classify(item), models.MoodHappy, models.MoodRomantic)
	})

	t.Run("case insensitive", func(t *testing.T) {
		assertMoods(t, c.Classify(models.ContentItem{Genres: []string{"HORROR"}}), models.MoodScary)
		assertMoods(t, c.Classify(models.ContentItem{Title: "A LOVE Story"}), models.MoodRomantic)
	})

	t.Run("genres match exactly", func(t *testing.T) {
		item := models.ContentItem{Genres: []string{"romantic comedy"}}
		assertMoods(t, c.Classify(item), models.MoodRelaxed)
	})

	t.Run("free text matches mid-word", func(t *testing.T) {
		item := models.ContentItem{Title: "Glove Factory"}
		assertMoods(t, c.Classify(item), models.MoodRomantic)
	})

	t.Run("results are valid and ordered", func(t *testing.T) {
		items := []models.ContentItem{
			{Title: "Haunted Wedding", Description: "a comedy of terror and love on an epic quest", Genres: []string{"drama"}},
			{Title: "Race to the Summit", Description: "a true story of courage", Genres: []string{"documentary", "sport"}},
		}
		order := make(map[models.MoodTag]int)
		for i, m := range models.AllMoods() {
			order[m] = i
		}
		for _, item := range items {
			moods := c.Classify(item)
			for i, m := range moods {
				if !m.Valid() {
					t.Errorf("invalid mood %s", m)
				}
				if i > 0 && order[moods[i-1]] >= order[m] {
					t.Errorf("moods out of order: %v", moods)
				}
			}
		}
	})

	t.Run("Keywords returns a copy", func(t *testing.T) {
		kw := c.Keywords(models.MoodHappy)
		kw[0] = "mutated"
		if c.Keywords(models.MoodHappy)[0] == "mutated" {
			t.Error("Keywords should return a copy")
		}
	})
}

func TestClassifierOptions(t *testing.T) {
	t.Run("WithWholeWords", func(t *testing.T) {
		c := NewClassifier(WithWholeWords(true))

		assertMoods(t, c.Classify(models.ContentItem{Title: "Glove Factory"}), models.MoodRelaxed)
		assertMoods(t, c.Classify(models.ContentItem{Description: "Based on a true story"}), models.MoodInspirational)
		assertMoods(t, c.Classify(models.ContentItem{Description: "A sci-fi romp"}), models.MoodAdventurous)
		assertMoods(t, c.Classify(models.ContentItem{Genres: []string{"Horror"}}), models.MoodScary)
	})

	t.Run("WithKeywords", func(t *testing.T) {
		c := NewClassifier(WithKeywords(map[models.MoodTag][]string{
			models.MoodHappy: {"Sunny", "  "},
		}))

		assertMoods(t, c.Classify(models.ContentItem{Title: "sunny days"}), models.MoodHappy)
		assertMoods(t, c.Classify(models.ContentItem{Genres: []string{"horror"}}), models.MoodRelaxed)
		assertMoods(t, c.Classify(models.ContentItem{Title: "anything"}), models.MoodRelaxed)
	})

	t.Run("custom table is copied", func(t *testing.T) {
		table := map[models.MoodTag][]string{models.MoodSad: {"rain"}}
		c := NewClassifier(WithKeywords(table))
		table[models.MoodSad][0] = "sun"

		assertMoods(t, c.Classify(models.ContentItem{Title: "rain"}), models.MoodSad)
	})
}

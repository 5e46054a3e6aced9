package models

import (
	"testing"
	"time"
)

func TestMoodTag(t *testing.T) {
	t.Run("AllMoods returns fixed order", func(t *testing.T) {
		want := []MoodTag{"happy", "sad", "excited", "relaxed", "adventurous", "romantic", "scary", "inspirational"}
		got := AllMoods()
		if len(got) != len(want) {
			t.Fatalf("expected %d moods, got %d", len(want), len(got))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("position %d: expected %s, got %s", i, want[i], got[i])
			}
		}
	})

	t.Run("AllMoods returns a copy", func(t *testing.T) {
		moods := AllMoods()
		moods[0] = "mutated"
		if AllMoods()[0] != MoodHappy {
			t.Error("mutating the returned slice should not affect the enumeration")
		}
	})

	t.Run("Valid", func(t *testing.T) {
		for _, m := range AllMoods() {
			if !m.Valid() {
				t.Errorf("expected %s to be valid", m)
			}
		}
		for _, m := range []MoodTag{"thriller", "emotional", "", "Happy"} {
			if m.Valid() {
				t.Errorf("expected %q to be invalid", m)
			}
		}
	})

	t.Run("ParseMoodTag", func(t *testing.T) {
		m, err := ParseMoodTag(" Scary ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m != MoodScary {
			t.Errorf("expected scary, got %s", m)
		}

		if _, err := ParseMoodTag("thriller"); err == nil {
			t.Error("expected error for non-enumerated mood")
		}
	})
}

func TestTimeOfDay(t *testing.T) {
	t.Run("ParseTimeOfDay", func(t *testing.T) {
		tests := []struct {
			input   string
			want    TimeOfDay
			wantErr bool
		}{
			{"morning", Morning, false},
			{"AFTERNOON", Afternoon, false},
			{" evening", Evening, false},
			{"night", Night, false},
			{"", "", false},
			{"dawn", "", true},
		}

		for _, tt := range tests {
			got, err := ParseTimeOfDay(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseTimeOfDay(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				continue
			}
			if got != tt.want {
				t.Errorf("ParseTimeOfDay(%q) = %q, want %q", tt.input, got, tt.want)
			}
		}
	})

	t.Run("PeriodForHour boundaries", func(t *testing.T) {
		tests := map[int]TimeOfDay{
			0:  Night,
			4:  Night,
			5:  Morning,
			11: Morning,
			12: Afternoon,
			16: Afternoon,
			17: Evening,
			21: Evening,
			22: Night,
			23: Night,
		}
		for hour, want := range tests {
			if got := PeriodForHour(hour); got != want {
				t.Errorf("PeriodForHour(%d) = %s, want %s", hour, got, want)
			}
		}
	})
}

func TestPersistentEntities(t *testing.T) {
	t.Run("CatalogEntry", func(t *testing.T) {
		entry := NewCatalogEntry(1, "file", ContentItem{ID: "m1", Kind: KindMovie, Title: "Joy"})
		if err := entry.Validate(); err != nil {
			t.Errorf("expected valid entry, got %v", err)
		}
		if entry.ItemID() != "m1" {
			t.Errorf("expected item ID m1, got %s", entry.ItemID())
		}
		if entry.CreatedAt().IsZero() {
			t.Error("expected created_at to be set")
		}

		if err := NewCatalogEntry(1, "", ContentItem{ID: "m1"}).Validate(); err == nil {
			t.Error("expected error for missing source")
		}
		if err := NewCatalogEntry(1, "file", ContentItem{}).Validate(); err == nil {
			t.Error("expected error for missing item ID")
		}
		if err := NewCatalogEntry(1, "file", ContentItem{ID: "x", Kind: "podcast"}).Validate(); err == nil {
			t.Error("expected error for invalid kind")
		}
	})

	t.Run("HistoryEntry", func(t *testing.T) {
		now := time.Now()
		entry := NewHistoryEntry(1, "user-1", "m1", now)
		if err := entry.Validate(); err != nil {
			t.Errorf("expected valid entry, got %v", err)
		}
		if entry.IsDeleted() {
			t.Error("new entry should not be deleted")
		}
		entry.SetDeletedAt(&now)
		if !entry.IsDeleted() {
			t.Error("entry should be deleted after SetDeletedAt")
		}

		if err := NewHistoryEntry(1, "", "m1", now).Validate(); err == nil {
			t.Error("expected error for missing user")
		}
		if err := NewHistoryEntry(1, "u", "m1", time.Time{}).Validate(); err == nil {
			t.Error("expected error for zero watched_at")
		}
	})
}

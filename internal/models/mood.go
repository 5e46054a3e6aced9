package models

import (
	"fmt"
	"strings"
)

// MoodTag is one of the fixed mood categories content can be classified into.
type MoodTag string

const (
	MoodHappy         MoodTag = "happy"
	MoodSad           MoodTag = "sad"
	MoodExcited       MoodTag = "excited"
	MoodRelaxed       MoodTag = "relaxed"
	MoodAdventurous   MoodTag = "adventurous"
	MoodRomantic      MoodTag = "romantic"
	MoodScary         MoodTag = "scary"
	MoodInspirational MoodTag = "inspirational"
)

var moodOrder = [...]MoodTag{
	MoodHappy,
	MoodSad,
	MoodExcited,
	MoodRelaxed,
	MoodAdventurous,
	MoodRomantic,
	MoodScary,
	MoodInspirational,
}

// AllMoods returns the eight mood tags in their fixed enumeration order.
//
// The returned slice is a fresh copy and may be modified by the caller.
func AllMoods() []MoodTag {
	moods := make([]MoodTag, len(moodOrder))
	copy(moods, moodOrder[:])
	return moods
}

// Valid reports whether m is one of the eight enumerated moods.
func (m MoodTag) Valid() bool {
	for _, mood := range moodOrder {
		if m == mood {
			return true
		}
	}
	return false
}

func (m MoodTag) String() string { return string(m) }

// ParseMoodTag parses a case-insensitive mood name.
func ParseMoodTag(s string) (MoodTag, error) {
	m := MoodTag(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("unknown mood %q", s)
	}
	return m, nil
}

// TimeOfDay is a coarse period of the day used for mood suggestions.
type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
	Night     TimeOfDay = "night"
)

// ParseTimeOfDay parses a case-insensitive period label.
// The empty string parses to the empty TimeOfDay, meaning "detect from the clock".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	switch t := TimeOfDay(strings.ToLower(strings.TrimSpace(s))); t {
	case "", Morning, Afternoon, Evening, Night:
		return t, nil
	default:
		return "", fmt.Errorf("unknown time of day %q", s)
	}
}

// PeriodForHour maps a 24-hour clock hour to its period:
// [5,12) morning, [12,17) afternoon, [17,22) evening, otherwise night.
func PeriodForHour(hour int) TimeOfDay {
	switch {
	case hour >= 5 && hour < 12:
		return Morning
	case hour >= 12 && hour < 17:
		return Afternoon
	case hour >= 17 && hour < 22:
		return Evening
	default:
		return Night
	}
}

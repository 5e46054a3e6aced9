package mood

import "github.com/desertthunder/moodx/internal/models"

// Two period tables exist and deliberately differ in the evening and night rows.
// labelMoods answers an explicit period; clockMoods answers a detected hour and feeds
// personalized suggestions. "thriller" and "emotional" are not enumerated moods and
// match no template.
var (
	labelMoods = map[models.TimeOfDay][]models.MoodTag{
		models.Morning:   {models.MoodInspirational, models.MoodHappy, models.MoodRelaxed},
		models.Afternoon: {models.MoodAdventurous, models.MoodExcited, models.MoodRomantic},
		models.Evening:   {models.MoodRelaxed, models.MoodRomantic, models.MoodScary},
		models.Night:     {models.MoodScary, "thriller", "emotional"},
	}

	clockMoods = map[models.TimeOfDay][]models.MoodTag{
		models.Morning:   {models.MoodInspirational, models.MoodHappy, models.MoodRelaxed},
		models.Afternoon: {models.MoodAdventurous, models.MoodExcited, models.MoodRomantic},
		models.Evening:   {models.MoodRelaxed, models.MoodRomantic, models.MoodSad},
		models.Night:     {models.MoodScary, "emotional", models.MoodRelaxed},
	}
)

// validOnly drops labels outside the mood enumeration.
func validOnly(moods []models.MoodTag) []models.MoodTag {
	out := make([]models.MoodTag, 0, len(moods))
	for _, m := range moods {
		if m.Valid() {
			out = append(out, m)
		}
	}
	return out
}

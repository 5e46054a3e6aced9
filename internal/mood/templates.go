package mood

import "github.com/desertthunder/moodx/internal/models"

// template is the fixed presentation of one mood playlist.
type template struct {
	id          string
	name        string
	description string
	emoji       string
	color       string
	mood        models.MoodTag
}

// templates holds one entry per mood in enumeration order. It is never extended or mutated.
var templates = [...]template{
	{"feel-good", "Feel Good Favorites", "Uplifting stories guaranteed to brighten your day", "😊", "#FFD93D", models.MoodHappy},
	{"good-cry", "Have a Good Cry", "Emotional journeys that tug at your heartstrings", "😢", "#6C8EBF", models.MoodSad},
	{"adrenaline-rush", "Adrenaline Rush", "High-octane action that keeps your pulse racing", "⚡", "#FF6B35", models.MoodExcited},
	{"cozy-night-in", "Cozy Night In", "Easygoing picks for winding down", "😌", "#7BC8A4", models.MoodRelaxed},
	{"epic-quests", "Epic Quests", "Journeys to faraway worlds and uncharted lands", "🗺️", "#F4A261", models.MoodAdventurous},
	{"date-night", "Date Night", "Love stories for every kind of heart", "💕", "#E56B9F", models.MoodRomantic},
	{"lights-off", "Lights Off", "Horror and suspense to keep you up at night", "👻", "#5B2A86", models.MoodScary},
	{"rise-up", "Rise Up", "True stories of courage and triumph", "✨", "#9D8DF1", models.MoodInspirational},
}

// playlist returns a fresh playlist for t with an empty, non-nil content list.
func (t template) playlist() models.MoodPlaylist {
	return models.MoodPlaylist{
		ID:          t.id,
		Name:        t.name,
		Description: t.description,
		Emoji:       t.emoji,
		Color:       t.color,
		Mood:        t.mood,
		Content:     []models.ContentItem{},
	}
}

// Templates returns fresh copies of the eight playlist templates with no content.
func Templates() []models.MoodPlaylist {
	out := make([]models.MoodPlaylist, 0, len(templates))
	for _, t := range templates {
		out = append(out, t.playlist())
	}
	return out
}

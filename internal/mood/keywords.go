package mood

import "github.com/desertthunder/moodx/internal/models"

// DefaultKeywords maps each mood to the genre names and descriptive words that signal it.
//
// Keys and values are lowercase. Callers must treat the map as read-only;
// [NewClassifier] copies it.
var DefaultKeywords = map[models.MoodTag][]string{
	models.MoodHappy: {
		"comedy", "family", "animation", "musical", "happy", "joy", "funny", "laugh", "cheerful", "heartwarming",
	},
	models.MoodSad: {
		"drama", "tragedy", "sad", "grief", "tears", "heartbreak", "loss", "melancholy",
	},
	models.MoodExcited: {
		"action", "thriller", "explosive", "chase", "heist", "race", "battle", "adrenaline",
	},
	models.MoodRelaxed: {
		"documentary", "slice of life", "calm", "peaceful", "cozy", "gentle", "nature", "relax",
	},
	models.MoodAdventurous: {
		"adventure", "fantasy", "sci-fi", "science fiction", "quest", "journey", "explore", "expedition", "epic",
	},
	models.MoodRomantic: {
		"romance", "love", "romantic", "wedding", "passion", "relationship",
	},
	models.MoodScary: {
		"horror", "supernatural", "ghost", "haunted", "terror", "scary", "monster", "nightmare",
	},
	models.MoodInspirational: {
		"biography", "history", "sport", "inspiring", "triumph", "true story", "overcome", "courage", "hope",
	},
}

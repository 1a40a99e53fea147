package engine

import (
	"strings"

	"Moodfeed/mood"
)

// Keywords are matched as lower-case substrings, so "art" also hits "start".
var moodKeywords = map[mood.Mood][]string{
	mood.Happy:     {"funny", "comedy", "laugh", "joke", "humor", "fun"},
	mood.Relaxed:   {"calm", "peaceful", "relax", "chill", "asmr", "nature"},
	mood.Focused:   {"tutorial", "learn", "education", "how to", "guide", "tips"},
	mood.Energetic: {"workout", "fitness", "energy", "motivation", "sports", "dance"},
	mood.Curious:   {"science", "discovery", "mystery", "explore", "facts", "amazing"},
	mood.Creative:  {"art", "creative", "diy", "craft", "design", "make"},
}

var (
	ventingKeywords  = []string{"rant", "angry", "frustrated"}
	calmingKeywords  = []string{"calm", "peaceful", "positive", "happy"}
	positiveKeywords = []string{"amazing", "awesome", "great", "best", "love"}
	negativeKeywords = []string{"boring", "stupid", "hate", "worst", "terrible"}
)

const (
	moodMatchBonus  = 10
	ventingBonus    = 3
	calmingBonus    = 15
	positiveBonus   = 8
	negativePenalty = -10
	failPenalty     = -10
)

// textScore adds up every keyword rule that matches title and description.
// While Mad, a little venting is tolerated but calming content wins more,
// and only one of the two applies.
func textScore(current mood.Mood, title, description string) int {
	text := strings.ToLower(title + " " + description)
	score := 0

	if current == mood.Mad {
		switch {
		case containsAny(text, ventingKeywords):
			score += ventingBonus
		case containsAny(text, calmingKeywords):
			score += calmingBonus
		}
	} else if containsAny(text, moodKeywords[current]) {
		score += moodMatchBonus
	}

	if containsAny(text, positiveKeywords) {
		score += positiveBonus
	}
	if containsAny(text, negativeKeywords) {
		score += negativePenalty
	}
	if strings.Contains(strings.ToLower(title), "fail") || strings.Contains(strings.ToLower(description), "fail") {
		score += failPenalty
	}
	return score
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

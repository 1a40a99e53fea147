// Package mood defines the fixed set of session moods and the rules that
// move between them without user input.
package mood

import "time"

type Mood string

const (
	Neutral   Mood = "Neutral"
	Happy     Mood = "Happy"
	Relaxed   Mood = "Relaxed"
	Focused   Mood = "Focused"
	Energetic Mood = "Energetic"
	Curious   Mood = "Curious"
	Creative  Mood = "Creative"
	Mad       Mood = "Mad"
)

var all = []Mood{Neutral, Happy, Relaxed, Focused, Energetic, Curious, Creative, Mad}

// All returns every recognised mood in a stable order.
func All() []Mood {
	out := make([]Mood, len(all))
	copy(out, all)
	return out
}

// Parse matches names exactly, the way they are stored and sent by clients.
func Parse(name string) (Mood, bool) {
	m := Mood(name)
	return m, m.Valid()
}

func (m Mood) Valid() bool {
	for _, known := range all {
		if m == known {
			return true
		}
	}
	return false
}

func (m Mood) String() string {
	return string(m)
}

const (
	madToHappy   = 600 * time.Second
	madToRelaxed = 480 * time.Second
	madToNeutral = 180 * time.Second
)

// DecayFromMad reports the mood a Mad session should fall back to after
// elapsed time in it. Bands are checked longest first and only one applies.
func DecayFromMad(elapsed time.Duration) (Mood, bool) {
	switch {
	case elapsed > madToHappy:
		return Happy, true
	case elapsed > madToRelaxed:
		return Relaxed, true
	case elapsed > madToNeutral:
		return Neutral, true
	}
	return Mad, false
}

// Suggestion pools offered by the mood heuristic.
var (
	Uplifting = []Mood{Happy, Relaxed, Curious}
	Enhancing = []Mood{Happy, Energetic, Curious}
)

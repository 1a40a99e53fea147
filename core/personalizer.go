package core

import "Moodfeed/mood"

// Event is an interaction reported by the feed client.
type Event struct {
	VideoID        string
	ChannelID      string
	Title          string
	Description    string
	Captions       string
	Type           string
	WatchedPercent float64
	// Mood is the mood the client believes is active. Names that do not
	// parse leave the current mood unchanged.
	Mood string
}

type EventResult struct {
	CorrectionsMade int
}

// Candidate is a video the client is about to show.
type Candidate struct {
	VideoID     string
	ChannelID   string
	Title       string
	Description string
	Captions    string
}

type Prediction struct {
	Score          int
	MoodSuggestion mood.Mood
}

type ChannelStatus struct {
	Trusted bool
	Blocked bool
}

// Personalizer is the set of operations transports expose.
type Personalizer interface {
	ProcessEvent(ev Event) EventResult
	PredictScore(c Candidate) Prediction
	ChannelStatus(channelID string) ChannelStatus
	BufferSize() int
	CurrentMood() mood.Mood
	SetMood(name string)
	SuggestMoodChange() mood.Mood
}

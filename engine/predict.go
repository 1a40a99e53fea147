package engine

import (
	"log/slog"
	"math"
	"time"

	"Moodfeed/core"
	"Moodfeed/metrics"
	"Moodfeed/mood"
)

const (
	generalWeight = 0.3
	moodWeight    = 0.7

	recentWatchWindow = 24 * time.Hour
	staleWatchAge     = 7 * 24 * time.Hour
	recentWatchBias   = -5
	staleWatchBias    = 2

	trustedBonus   = 20
	blockedPenalty = -30

	minScore = -100
	maxScore = 100
)

// PredictScore rates a candidate between -100 and 100. Captions are
// accepted but not scored yet.
func (e *Engine) PredictScore(c core.Candidate) core.Prediction {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	current := e.currentMood()
	now := e.now()

	videoScore := e.store.VideoScore(c.VideoID)
	channelScore := e.store.ChannelScore(c.ChannelID)
	moodVideoScore := e.store.MoodVideoScore(current, c.VideoID)
	moodChannelScore := e.store.MoodChannelScore(current, c.ChannelID)

	combined := videoScore*generalWeight + moodVideoScore*moodWeight +
		channelScore*generalWeight + moodChannelScore*moodWeight

	status := "new"
	if rec, ok := e.store.Watched(c.VideoID); ok {
		status = "previously_watched"
		age := now.Sub(rec.At)
		switch {
		case age < recentWatchWindow:
			combined += recentWatchBias
		case age > staleWatchAge:
			combined += staleWatchBias
		}
	}

	trusted, blocked := e.store.ChannelStatus(c.ChannelID)
	switch {
	case trusted:
		combined += trustedBonus
	case blocked:
		combined += blockedPenalty
	}

	text := textScore(current, c.Title, c.Description)
	final := clamp(combined+float64(text), minScore, maxScore)
	// half-to-even, matching the scores clients were tuned against
	score := int(math.RoundToEven(final))

	metrics.PredictionsTotal.Inc()
	metrics.PredictedScore.Observe(float64(score))
	e.log.With(
		slog.String("video", c.VideoID),
		slog.String("status", status),
		slog.String("mood", current.String()),
		slog.Float64("video_score", videoScore),
		slog.Float64("channel_score", channelScore),
		slog.Float64("mood_video_score", moodVideoScore),
		slog.Float64("mood_channel_score", moodChannelScore),
		slog.Int("text_score", text),
		slog.Int("score", score),
	).Debug("score predicted")

	return core.Prediction{
		Score:          score,
		MoodSuggestion: e.suggestMoodChange(),
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// SuggestMoodChange offers a mood based on recent interactions, or the
// current mood when there is nothing to suggest. It never changes the mood.
func (e *Engine) SuggestMoodChange() mood.Mood {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.suggestMoodChange()
}

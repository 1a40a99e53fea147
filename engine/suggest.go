package engine

import (
	"log/slog"
	"strconv"
	"time"

	"Moodfeed/metrics"
	"Moodfeed/mood"
)

const (
	moodCheckInterval = 300 * time.Second
	recentEventWindow = 300 * time.Second
	minRecentEvents   = 3
)

// suggestMoodChange runs at most once per moodCheckInterval; calls inside
// the interval return the stored mood without looking at the buffer.
func (e *Engine) suggestMoodChange() mood.Mood {
	now := e.now()
	current := e.store.CurrentMood()

	if now.Sub(e.lastMoodCheck) <= moodCheckInterval {
		return current
	}
	e.lastMoodCheck = now

	var recent, positive, negative int
	for _, ev := range e.buffer.Items() {
		if now.Sub(ev.at) >= recentEventWindow {
			continue
		}
		recent++
		switch {
		case ev.kind.positive():
			positive++
		case ev.kind.negative():
			negative++
		}
	}
	if recent < minRecentEvents {
		return current
	}

	suggestion := current
	switch {
	case negative > positive*2:
		suggestion = e.pick(mood.Uplifting)
	case positive > negative*2 && current == mood.Neutral:
		suggestion = e.pick(mood.Enhancing)
	}

	metrics.MoodSuggestionsTotal.WithLabelValues(strconv.FormatBool(suggestion != current)).Inc()
	e.log.With(
		slog.Int("recent", recent),
		slog.Int("positive", positive),
		slog.Int("negative", negative),
		slog.String("suggested", suggestion.String()),
	).Debug("mood suggestion checked")
	return suggestion
}

func (e *Engine) pick(pool []mood.Mood) mood.Mood {
	return pool[e.rng.IntN(len(pool))]
}

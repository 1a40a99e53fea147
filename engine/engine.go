// Package engine turns feed interactions into preference scores and scores
// candidate videos against them, taking the session mood into account.
package engine

import (
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"Moodfeed/core"
	"Moodfeed/holder"
	"Moodfeed/lib/ring"
	"Moodfeed/lib/sl"
	"Moodfeed/metrics"
	"Moodfeed/mood"
)

const (
	learningRate    = 0.3
	eventBufferSize = 20
	// events at or below this watch percentage do not mark a video as watched
	minWatchPercent = 10
)

// bufferedEvent is kept only for the mood suggestion heuristic.
type bufferedEvent struct {
	videoID        string
	channelID      string
	kind           EventKind
	watchedPercent float64
	at             time.Time
	mood           mood.Mood
}

// Engine serialises every operation with one mutex: even reads may decay
// the mood or advance the suggestion clock.
type Engine struct {
	store *holder.PreferenceStore
	log   *slog.Logger
	mutex sync.Mutex

	buffer        *ring.Ring[bufferedEvent]
	lastMoodCheck time.Time

	now func() time.Time
	rng *rand.Rand
}

var _ core.Personalizer = (*Engine)(nil)

func New(store *holder.PreferenceStore, log *slog.Logger) *Engine {
	now := time.Now()
	return &Engine{
		store:         store,
		log:           log.With(sl.Module("engine")),
		buffer:        ring.New[bufferedEvent](eventBufferSize),
		lastMoodCheck: now,
		now:           time.Now,
		rng:           rand.New(rand.NewPCG(uint64(now.UnixNano()), uint64(now.Unix()))),
	}
}

// ProcessEvent applies one interaction. The order matters: the reported
// mood is applied first, then decay, so the scores land in the ledger of the
// mood that is actually current.
func (e *Engine) ProcessEvent(ev core.Event) core.EventResult {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	kind := ParseEventKind(ev.Type)
	requested := ev.Mood
	log := e.log.With(
		slog.String("video", ev.VideoID),
		slog.String("channel", ev.ChannelID),
		slog.String("event", ev.Type),
	)
	log.Debug("processing event", sl.Mood(requested), slog.Float64("watched", ev.WatchedPercent))

	if requested != e.store.CurrentMood().String() {
		e.setMood(requested)
	}
	current := e.currentMood()
	now := e.now()

	if kind.recordsWatch() && ev.WatchedPercent > minWatchPercent {
		e.store.RecordWatch(ev.VideoID, ev.WatchedPercent, now, current)
	}

	e.buffer.Push(bufferedEvent{
		videoID:        ev.VideoID,
		channelID:      ev.ChannelID,
		kind:           kind,
		watchedPercent: ev.WatchedPercent,
		at:             now,
		mood:           current,
	})
	metrics.EventBufferSize.Set(float64(e.buffer.Len()))
	metrics.EventsTotal.WithLabelValues(kind.String()).Inc()

	switch kind {
	case KindTrustChannel:
		e.store.Trust(ev.ChannelID)
	case KindUntrustChannel:
		e.store.Untrust(ev.ChannelID)
	case KindBlockChannel:
		e.store.Block(ev.ChannelID)
	case KindUnblockChannel:
		e.store.Unblock(ev.ChannelID)
	case KindUnknown:
		log.Debug("ignoring unknown event type")
	default:
		if delta := kind.baseDelta(ev.WatchedPercent) * learningRate; delta != 0 {
			e.updateScores(ev.VideoID, ev.ChannelID, delta, current)
			log.With(
				slog.Float64("change", delta),
				slog.Float64("video_score", e.store.VideoScore(ev.VideoID)),
				slog.Float64("channel_score", e.store.ChannelScore(ev.ChannelID)),
				sl.Mood(current.String()),
			).Info("scores updated")
		}
	}

	e.store.Persist()

	// corrections are not implemented; the counter stays in the contract
	return core.EventResult{CorrectionsMade: 0}
}

func (e *Engine) updateScores(videoID, channelID string, delta float64, m mood.Mood) {
	e.store.UpdateScores(videoID, channelID, delta, m)
	metrics.ScoreUpdatesTotal.Inc()
}

func (e *Engine) ChannelStatus(channelID string) core.ChannelStatus {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	trusted, blocked := e.store.ChannelStatus(channelID)
	e.log.With(
		slog.String("channel", channelID),
		slog.Bool("trusted", trusted),
		slog.Bool("blocked", blocked),
	).Debug("channel status")
	return core.ChannelStatus{Trusted: trusted, Blocked: blocked}
}

func (e *Engine) BufferSize() int {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.buffer.Len()
}

// CurrentMood returns the session mood, decaying Mad first if it has
// lasted long enough.
func (e *Engine) CurrentMood() mood.Mood {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.currentMood()
}

// SetMood switches to the named mood. Unknown names are ignored.
func (e *Engine) SetMood(name string) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.setMood(name)
}

func (e *Engine) setMood(name string) {
	m, ok := mood.Parse(name)
	if !ok {
		e.log.Debug("ignoring unknown mood", sl.Mood(name))
		return
	}
	previous, _ := e.store.SetMood(m, e.now())
	metrics.MoodTransitionsTotal.WithLabelValues(previous.String(), m.String()).Inc()
	e.log.With(
		slog.String("from", previous.String()),
		slog.String("to", m.String()),
	).Info("mood changed")
	e.store.Persist()
}

// currentMood fires at most one decay step per call; the step restarts the
// mood clock, so later bands need later reads.
func (e *Engine) currentMood() mood.Mood {
	current := e.store.CurrentMood()
	if current != mood.Mad {
		return current
	}
	elapsed := e.now().Sub(e.store.MoodChangedAt())
	next, ok := mood.DecayFromMad(elapsed)
	if !ok {
		return current
	}
	metrics.MoodDecaysTotal.WithLabelValues(next.String()).Inc()
	e.log.With(
		slog.Duration("elapsed", elapsed),
		slog.String("to", next.String()),
	).Info("mad mood decayed")
	e.setMood(next.String())
	return e.store.CurrentMood()
}

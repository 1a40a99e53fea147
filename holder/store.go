// Package holder keeps the preference state of the single feed session in
// memory and mirrors it to a snapshot storage after every change.
package holder

import (
	"errors"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"Moodfeed/lib/ring"
	"Moodfeed/lib/sl"
	"Moodfeed/metrics"
	"Moodfeed/mood"
	"Moodfeed/storage"
)

const moodHistorySize = 10

// Ledger holds the scores accumulated while the session was in one mood.
type Ledger struct {
	Videos   map[string]float64
	Channels map[string]float64
}

func newLedger() *Ledger {
	return &Ledger{
		Videos:   make(map[string]float64),
		Channels: make(map[string]float64),
	}
}

// WatchRecord describes the last substantial watch of a video.
type WatchRecord struct {
	WatchPercent float64
	At           time.Time
	Mood         mood.Mood
}

// PreferenceStore owns all durable preference state. Mutators change memory
// only; callers decide when to Persist.
type PreferenceStore struct {
	storage storage.SnapshotStorage
	log     *slog.Logger
	mutex   sync.RWMutex

	videoScores   map[string]float64
	channelScores map[string]float64
	moodLedgers   map[mood.Mood]*Ledger
	trusted       map[string]struct{}
	blocked       map[string]struct{}
	currentMood   mood.Mood
	moodChangedAt time.Time
	moodHistory   *ring.Ring[mood.Mood]
	watched       map[string]WatchRecord
}

// Open loads the last snapshot from store. A missing or unreadable snapshot
// is not an error: the default state is used and written out immediately.
func Open(store storage.SnapshotStorage, log *slog.Logger) *PreferenceStore {
	ps := &PreferenceStore{
		storage: store,
		log:     log.With(sl.Module("preferences")),
	}
	ps.reset(time.Now())

	snapshot, err := store.Load()
	switch {
	case errors.Is(err, storage.ErrNoSnapshot):
		ps.log.Info("no existing snapshot, starting fresh")
		ps.Persist()
	case err != nil:
		ps.log.Error("loading snapshot, starting fresh", sl.Err(err))
		ps.Persist()
	default:
		ps.restore(snapshot, time.Now())
		ps.log.With(
			slog.Int("videos", len(ps.videoScores)),
			slog.Int("channels", len(ps.channelScores)),
			slog.Int("watched", len(ps.watched)),
			sl.Mood(ps.currentMood.String()),
		).Info("snapshot loaded")
	}
	return ps
}

func (ps *PreferenceStore) reset(now time.Time) {
	ps.videoScores = make(map[string]float64)
	ps.channelScores = make(map[string]float64)
	ps.moodLedgers = make(map[mood.Mood]*Ledger)
	for _, m := range mood.All() {
		ps.moodLedgers[m] = newLedger()
	}
	ps.trusted = make(map[string]struct{})
	ps.blocked = make(map[string]struct{})
	ps.currentMood = mood.Neutral
	ps.moodChangedAt = now
	ps.moodHistory = ring.New[mood.Mood](moodHistorySize)
	ps.watched = make(map[string]WatchRecord)
}

// restore replaces the default state with the snapshot contents. Entries
// naming unknown moods are dropped, and a channel listed as both trusted
// and blocked stays blocked.
func (ps *PreferenceStore) restore(s *storage.Snapshot, now time.Time) {
	for id, v := range s.VideoScores {
		ps.videoScores[id] = v
	}
	for id, v := range s.ChannelScores {
		ps.channelScores[id] = v
	}
	for name, ledger := range s.MoodPreferences {
		m, ok := mood.Parse(name)
		if !ok {
			ps.log.Debug("dropping ledger of unknown mood", sl.Mood(name))
			continue
		}
		for id, v := range ledger.VideoScores {
			ps.moodLedgers[m].Videos[id] = v
		}
		for id, v := range ledger.ChannelScores {
			ps.moodLedgers[m].Channels[id] = v
		}
	}
	for _, id := range s.BlockedChannels {
		ps.blocked[id] = struct{}{}
	}
	for _, id := range s.TrustedChannels {
		if _, ok := ps.blocked[id]; !ok {
			ps.trusted[id] = struct{}{}
		}
	}
	if m, ok := mood.Parse(s.CurrentMood); ok {
		ps.currentMood = m
	}
	if s.MoodLastChanged != nil {
		ps.moodChangedAt = storage.FromEpochSeconds(*s.MoodLastChanged)
	} else {
		ps.moodChangedAt = now
	}
	for _, name := range s.MoodHistory {
		if m, ok := mood.Parse(name); ok {
			ps.moodHistory.Push(m)
		}
	}
	for id, rec := range s.PreviouslyWatched {
		m, ok := mood.Parse(rec.Mood)
		if !ok {
			m = mood.Neutral
		}
		ps.watched[id] = WatchRecord{
			WatchPercent: rec.WatchTime,
			At:           storage.FromEpochSeconds(rec.Timestamp),
			Mood:         m,
		}
	}
}

// Snapshot returns the full state in its persisted form.
func (ps *PreferenceStore) Snapshot() *storage.Snapshot {
	ps.mutex.RLock()
	defer ps.mutex.RUnlock()
	return ps.snapshotLocked()
}

func (ps *PreferenceStore) snapshotLocked() *storage.Snapshot {
	changed := storage.EpochSeconds(ps.moodChangedAt)
	s := &storage.Snapshot{
		VideoScores:       maps.Clone(ps.videoScores),
		ChannelScores:     maps.Clone(ps.channelScores),
		TrustedChannels:   sortedMembers(ps.trusted),
		BlockedChannels:   sortedMembers(ps.blocked),
		MoodPreferences:   make(map[string]storage.MoodLedger, len(ps.moodLedgers)),
		CurrentMood:       ps.currentMood.String(),
		MoodLastChanged:   &changed,
		MoodHistory:       make([]string, 0, ps.moodHistory.Len()),
		PreviouslyWatched: make(map[string]storage.WatchRecord, len(ps.watched)),
	}
	for m, ledger := range ps.moodLedgers {
		s.MoodPreferences[m.String()] = storage.MoodLedger{
			VideoScores:   maps.Clone(ledger.Videos),
			ChannelScores: maps.Clone(ledger.Channels),
		}
	}
	for _, m := range ps.moodHistory.Items() {
		s.MoodHistory = append(s.MoodHistory, m.String())
	}
	for id, rec := range ps.watched {
		s.PreviouslyWatched[id] = storage.WatchRecord{
			WatchTime: rec.WatchPercent,
			Timestamp: storage.EpochSeconds(rec.At),
			Mood:      rec.Mood.String(),
		}
	}
	return s
}

// sortedMembers never returns nil so empty sets persist as [] rather than null
func sortedMembers(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	out = append(out, slices.Sorted(maps.Keys(set))...)
	return out
}

// Persist writes the full state. A failed write is logged and otherwise
// ignored; memory stays authoritative until the next successful save.
func (ps *PreferenceStore) Persist() {
	snapshot := ps.Snapshot()
	if err := ps.storage.Save(snapshot); err != nil {
		metrics.SnapshotSavesTotal.WithLabelValues("error").Inc()
		ps.log.Error("saving snapshot", sl.Err(err))
		return
	}
	metrics.SnapshotSavesTotal.WithLabelValues("ok").Inc()
	ps.log.Debug("snapshot saved")
}

func (ps *PreferenceStore) Close() error {
	return ps.storage.Close()
}

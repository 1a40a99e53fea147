package storage

import (
	"errors"
	"math"
	"time"
)

// ErrNoSnapshot is returned by Load when nothing has been saved yet.
var ErrNoSnapshot = errors.New("no snapshot")

type MoodLedger struct {
	VideoScores   map[string]float64 `json:"video_scores" bson:"video_scores"`
	ChannelScores map[string]float64 `json:"channel_scores" bson:"channel_scores"`
}

type WatchRecord struct {
	WatchTime float64 `json:"watch_time" bson:"watch_time"` // percent of the video watched
	Timestamp float64 `json:"timestamp" bson:"timestamp"`   // epoch seconds
	Mood      string  `json:"mood" bson:"mood"`
}

// Snapshot is the persisted preference state. Timestamps are epoch seconds
// so files written by earlier versions of the service load unchanged.
type Snapshot struct {
	VideoScores       map[string]float64     `json:"video_scores" bson:"video_scores"`
	ChannelScores     map[string]float64     `json:"channel_scores" bson:"channel_scores"`
	TrustedChannels   []string               `json:"trusted_channels" bson:"trusted_channels"`
	BlockedChannels   []string               `json:"blocked_channels" bson:"blocked_channels"`
	MoodPreferences   map[string]MoodLedger  `json:"mood_preferences" bson:"mood_preferences"`
	CurrentMood       string                 `json:"current_mood,omitempty" bson:"current_mood,omitempty"`
	MoodLastChanged   *float64               `json:"mood_last_changed,omitempty" bson:"mood_last_changed,omitempty"`
	MoodHistory       []string               `json:"mood_history" bson:"mood_history"`
	PreviouslyWatched map[string]WatchRecord `json:"previously_watched_videos" bson:"previously_watched_videos"`
}

// SnapshotStorage persists a single snapshot. Save replaces whatever was
// stored before.
type SnapshotStorage interface {
	Load() (*Snapshot, error)
	Save(snapshot *Snapshot) error
	Close() error
}

// Clone returns a deep copy.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	cc := &Snapshot{
		VideoScores:     cloneScores(s.VideoScores),
		ChannelScores:   cloneScores(s.ChannelScores),
		TrustedChannels: cloneStrings(s.TrustedChannels),
		BlockedChannels: cloneStrings(s.BlockedChannels),
		CurrentMood:     s.CurrentMood,
		MoodHistory:     cloneStrings(s.MoodHistory),
	}
	if s.MoodLastChanged != nil {
		v := *s.MoodLastChanged
		cc.MoodLastChanged = &v
	}
	if s.MoodPreferences != nil {
		cc.MoodPreferences = make(map[string]MoodLedger, len(s.MoodPreferences))
		for name, ledger := range s.MoodPreferences {
			cc.MoodPreferences[name] = MoodLedger{
				VideoScores:   cloneScores(ledger.VideoScores),
				ChannelScores: cloneScores(ledger.ChannelScores),
			}
		}
	}
	if s.PreviouslyWatched != nil {
		cc.PreviouslyWatched = make(map[string]WatchRecord, len(s.PreviouslyWatched))
		for id, rec := range s.PreviouslyWatched {
			cc.PreviouslyWatched[id] = rec
		}
	}
	return cc
}

func cloneScores(m map[string]float64) map[string]float64 {
	if m == nil {
		return nil
	}
	cc := make(map[string]float64, len(m))
	for k, v := range m {
		cc[k] = v
	}
	return cc
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	cc := make([]string, len(s))
	copy(cc, s)
	return cc
}

func EpochSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

func FromEpochSeconds(sec float64) time.Time {
	whole, frac := math.Modf(sec)
	return time.Unix(int64(whole), int64(frac*float64(time.Second)))
}

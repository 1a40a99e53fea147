package holder

import (
	"time"

	"Moodfeed/mood"
)

// channelImpact is the share of a video delta credited to its channel
const channelImpact = 0.5

// Lookups below default to zero and never create entries.

func (ps *PreferenceStore) VideoScore(videoID string) float64 {
	ps.mutex.RLock()
	defer ps.mutex.RUnlock()
	return ps.videoScores[videoID]
}

func (ps *PreferenceStore) ChannelScore(channelID string) float64 {
	ps.mutex.RLock()
	defer ps.mutex.RUnlock()
	return ps.channelScores[channelID]
}

func (ps *PreferenceStore) MoodVideoScore(m mood.Mood, videoID string) float64 {
	ps.mutex.RLock()
	defer ps.mutex.RUnlock()
	if ledger, ok := ps.moodLedgers[m]; ok {
		return ledger.Videos[videoID]
	}
	return 0
}

func (ps *PreferenceStore) MoodChannelScore(m mood.Mood, channelID string) float64 {
	ps.mutex.RLock()
	defer ps.mutex.RUnlock()
	if ledger, ok := ps.moodLedgers[m]; ok {
		return ledger.Channels[channelID]
	}
	return 0
}

// UpdateScores adds delta to the video and half of it to the channel, in
// both the global ledger and the ledger of mood m.
func (ps *PreferenceStore) UpdateScores(videoID, channelID string, delta float64, m mood.Mood) {
	ps.mutex.Lock()
	defer ps.mutex.Unlock()

	ps.videoScores[videoID] += delta
	ps.channelScores[channelID] += delta * channelImpact

	if ledger, ok := ps.moodLedgers[m]; ok {
		ledger.Videos[videoID] += delta
		ledger.Channels[channelID] += delta * channelImpact
	}
}

// SetMood switches the session mood and restarts its clock, even when m is
// already current. Unknown moods are ignored; ok reports whether m was applied.
func (ps *PreferenceStore) SetMood(m mood.Mood, at time.Time) (previous mood.Mood, ok bool) {
	ps.mutex.Lock()
	defer ps.mutex.Unlock()

	previous = ps.currentMood
	if !m.Valid() {
		return previous, false
	}
	ps.currentMood = m
	ps.moodChangedAt = at
	ps.moodHistory.Push(m)
	return previous, true
}

func (ps *PreferenceStore) CurrentMood() mood.Mood {
	ps.mutex.RLock()
	defer ps.mutex.RUnlock()
	return ps.currentMood
}

func (ps *PreferenceStore) MoodChangedAt() time.Time {
	ps.mutex.RLock()
	defer ps.mutex.RUnlock()
	return ps.moodChangedAt
}

// MoodHistory returns recent mood changes, oldest first.
func (ps *PreferenceStore) MoodHistory() []mood.Mood {
	ps.mutex.RLock()
	defer ps.mutex.RUnlock()
	return ps.moodHistory.Items()
}

// RecordWatch remembers a substantial watch of a video, replacing any
// earlier record.
func (ps *PreferenceStore) RecordWatch(videoID string, watchPercent float64, at time.Time, m mood.Mood) {
	ps.mutex.Lock()
	defer ps.mutex.Unlock()
	ps.watched[videoID] = WatchRecord{WatchPercent: watchPercent, At: at, Mood: m}
}

func (ps *PreferenceStore) Watched(videoID string) (WatchRecord, bool) {
	ps.mutex.RLock()
	defer ps.mutex.RUnlock()
	rec, ok := ps.watched[videoID]
	return rec, ok
}

func (ps *PreferenceStore) Trust(channelID string) {
	ps.mutex.Lock()
	defer ps.mutex.Unlock()
	ps.trusted[channelID] = struct{}{}
	delete(ps.blocked, channelID)
}

func (ps *PreferenceStore) Untrust(channelID string) {
	ps.mutex.Lock()
	defer ps.mutex.Unlock()
	delete(ps.trusted, channelID)
}

func (ps *PreferenceStore) Block(channelID string) {
	ps.mutex.Lock()
	defer ps.mutex.Unlock()
	ps.blocked[channelID] = struct{}{}
	delete(ps.trusted, channelID)
}

func (ps *PreferenceStore) Unblock(channelID string) {
	ps.mutex.Lock()
	defer ps.mutex.Unlock()
	delete(ps.blocked, channelID)
}

func (ps *PreferenceStore) ChannelStatus(channelID string) (trusted, blocked bool) {
	ps.mutex.RLock()
	defer ps.mutex.RUnlock()
	_, trusted = ps.trusted[channelID]
	_, blocked = ps.blocked[channelID]
	return trusted, blocked
}

package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"Moodfeed/core"
	"Moodfeed/mood"
)

func candidate(title string) core.Candidate {
	return core.Candidate{VideoID: "a", ChannelID: "x", Title: title}
}

func TestPredictScore_FailTitle(t *testing.T) {
	f := setupTestEngine(t)

	p := f.engine.PredictScore(candidate("This is a FAIL compilation"))

	assert.Equal(t, -10, p.Score)
	assert.Equal(t, mood.Neutral, p.MoodSuggestion)
}

func TestPredictScore_FreshVideoIsZero(t *testing.T) {
	f := setupTestEngine(t)

	p := f.engine.PredictScore(core.Candidate{VideoID: "new", ChannelID: "new", Captions: "amazing awesome"})
	assert.Equal(t, 0, p.Score, "captions are not scored")
}

func TestPredictScore_PreviouslyWatched(t *testing.T) {
	f := setupTestEngine(t)
	// 7.5 video and 3.75 channel in both ledgers combine to 11.25
	f.engine.ProcessEvent(event("user_like", 50))

	assert.Equal(t, 6, f.engine.PredictScore(candidate("")).Score, "watched within a day")

	f.clock.advance(2 * 24 * time.Hour)
	assert.Equal(t, 11, f.engine.PredictScore(candidate("")).Score, "watched a few days ago")

	f.clock.advance(6 * 24 * time.Hour)
	assert.Equal(t, 13, f.engine.PredictScore(candidate("")).Score, "watched over a week ago")
}

func TestPredictScore_MoodWeighting(t *testing.T) {
	f := setupTestEngine(t)
	ev := event("like", 0)
	ev.Mood = "Happy"
	f.engine.ProcessEvent(ev)

	// 5.4 video and 2.7 channel, all of it in the Happy ledger
	assert.Equal(t, 8, f.engine.PredictScore(candidate("")).Score)

	f.engine.SetMood("Neutral")
	assert.Equal(t, 2, f.engine.PredictScore(candidate("")).Score)
}

func TestPredictScore_ChannelStatus(t *testing.T) {
	f := setupTestEngine(t)

	f.engine.ProcessEvent(event("trust_channel", 0))
	assert.Equal(t, 20, f.engine.PredictScore(candidate("")).Score)

	f.engine.ProcessEvent(event("block_channel", 0))
	assert.Equal(t, -30, f.engine.PredictScore(candidate("")).Score)

	f.engine.ProcessEvent(event("unblock_channel", 0))
	assert.Equal(t, 0, f.engine.PredictScore(candidate("")).Score)
}

func TestPredictScore_Clamped(t *testing.T) {
	f := setupTestEngine(t)

	for i := 0; i < 30; i++ {
		f.engine.ProcessEvent(event("user_intent_to_stay", 0))
	}
	f.engine.ProcessEvent(event("trust_channel", 0))
	assert.Equal(t, 100, f.engine.PredictScore(candidate("best video")).Score)

	for i := 0; i < 60; i++ {
		f.engine.ProcessEvent(event("ai_scroll_against_user_intent", 0))
	}
	f.engine.ProcessEvent(event("block_channel", 0))
	assert.Equal(t, -100, f.engine.PredictScore(candidate("boring fail")).Score)
}

func TestPredictScore_AlwaysInRange(t *testing.T) {
	f := setupTestEngine(t)
	kinds := []string{"like", "dislike", "ai_scroll_against_user_intent", "user_intent_to_stay", "completed", "block_channel", "trust_channel"}
	titles := []string{"", "funny fail", "boring", "amazing tutorial", "angry rant"}

	for i := 0; i < 200; i++ {
		ev := event(kinds[i%len(kinds)], float64(i%101))
		ev.VideoID = fmt.Sprintf("v%d", i%7)
		ev.ChannelID = fmt.Sprintf("c%d", i%3)
		ev.Mood = mood.All()[i%8].String()
		f.engine.ProcessEvent(ev)

		p := f.engine.PredictScore(core.Candidate{VideoID: ev.VideoID, ChannelID: ev.ChannelID, Title: titles[i%len(titles)]})
		assert.GreaterOrEqual(t, p.Score, -100)
		assert.LessOrEqual(t, p.Score, 100)
		assert.True(t, p.MoodSuggestion.Valid())
		f.clock.advance(17 * time.Second)
	}
}

func TestPredictScore_DecaysMood(t *testing.T) {
	f := setupTestEngine(t)
	f.engine.SetMood("Mad")
	f.clock.advance(200 * time.Second)

	// Neutral has no keyword set; Mad would have scored "calm" +15
	p := f.engine.PredictScore(candidate("calm waves"))
	assert.Equal(t, 0, p.Score)
	assert.Equal(t, mood.Neutral, f.store.CurrentMood())
}

func TestTextScore(t *testing.T) {
	tests := []struct {
		mood        mood.Mood
		title       string
		description string
		want        int
	}{
		{mood.Neutral, "", "", 0},
		{mood.Neutral, "This is a FAIL compilation", "", -10},
		{mood.Neutral, "cat video", "epic fails", -10},
		{mood.Neutral, "Amazing cats", "", 8},
		{mood.Happy, "Funny cats", "", 10},
		{mood.Happy, "calm lake", "", 0},
		{mood.Relaxed, "ASMR rain", "", 10},
		{mood.Focused, "Best Go tutorial", "", 18},
		{mood.Focused, "How to cook", "", 10},
		{mood.Energetic, "", "morning workout", 10},
		{mood.Curious, "Amazing facts", "", 18},
		{mood.Creative, "Start here", "", 10},
		{mood.Mad, "angry rant", "", 3},
		{mood.Mad, "calm and happy", "", 15},
		{mood.Mad, "angry then calm", "", 3},
		{mood.Mad, "funny", "", 0},
		{mood.Neutral, "stupid boring", "", -10},
		{mood.Neutral, "I hate this fail", "", -20},
		{mood.Happy, "funny fail, love it", "worst", 10 + 8 - 10 - 10},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%s", tt.mood, tt.title), func(t *testing.T) {
			assert.Equal(t, tt.want, textScore(tt.mood, tt.title, tt.description))
		})
	}
}

func TestTextScore_FailNotAcrossJoin(t *testing.T) {
	// "fa" + " " + "il" never forms the word across title and description
	assert.Equal(t, 0, textScore(mood.Neutral, "fa", "il"))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 100.0, clamp(250, -100, 100))
	assert.Equal(t, -100.0, clamp(-250, -100, 100))
	assert.Equal(t, 12.5, clamp(12.5, -100, 100))
}

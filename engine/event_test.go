package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEventKind(t *testing.T) {
	for k, name := range kindNames {
		if k == KindUnknown {
			continue
		}
		assert.Equal(t, k, ParseEventKind(name), name)
		assert.Equal(t, name, k.String())
	}

	assert.Equal(t, KindUnknown, ParseEventKind("unknown"))
	assert.Equal(t, KindUnknown, ParseEventKind("super_like"))
	assert.Equal(t, KindUnknown, ParseEventKind(""))
	assert.Equal(t, KindUnknown, ParseEventKind("USER_LIKE"))
	assert.Equal(t, "unknown", EventKind(999).String())
}

func TestBaseDelta(t *testing.T) {
	tests := []struct {
		kind    string
		watched float64
		want    float64
	}{
		{"ai_scroll_against_user_intent", 0, -100},
		{"ai_scroll_blocked_by_user_intent", 0, -100},
		{"ai_scroll_blocked_user_recent_activity", 0, -50},
		{"user_like", 0, 25},
		{"user_dislike", 0, -25},
		{"user_intent_to_stay", 0, 30},
		{"undo_auto_like", 0, -25},
		{"undo_auto_dislike", 0, 25},
		{"auto_like_confirmed", 0, 15},
		{"auto_dislike_confirmed", 0, -15},
		{"like", 0, 18},
		{"dislike", 0, -18},
		{"manual_skip_previously_watched", 19.9, -3},
		{"manual_skip_previously_watched", 20, 0},
		{"user_scroll_away_previously_watched", 0, 0},
		{"user_early_scroll_away", 0, -5},
		{"manual_skip", 29.9, -10},
		{"manual_skip", 30, 0},
		{"manual_skip", 50, 0},
		{"completed", 79.9, 0},
		{"completed", 80, 12},
		{"completed", 100, 12},
		{"ai_scroll", 0, -2},
		{"ai_scroll_previously_watched", 0, 0},
		{"trust_channel", 0, 0},
		{"untrust_channel", 0, 0},
		{"block_channel", 0, 0},
		{"unblock_channel", 0, 0},
		{"something_else", 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseEventKind(tt.kind).baseDelta(tt.watched), "%s at %.1f%%", tt.kind, tt.watched)
	}
}

func TestEventClassifiers(t *testing.T) {
	positives := []EventKind{KindLike, KindUserLike, KindCompleted, KindUserIntentToStay}
	negatives := []EventKind{KindDislike, KindUserDislike, KindManualSkip, KindAIScrollAgainstUserIntent}

	for k := range kindNames {
		assert.Equal(t, contains(positives, k), k.positive(), k.String())
		assert.Equal(t, contains(negatives, k), k.negative(), k.String())
	}

	assert.True(t, KindCompleted.recordsWatch())
	assert.True(t, KindUserLike.recordsWatch())
	assert.True(t, KindUserDislike.recordsWatch())
	assert.False(t, KindLike.recordsWatch())
}

func contains(kinds []EventKind, k EventKind) bool {
	for _, c := range kinds {
		if c == k {
			return true
		}
	}
	return false
}

package engine

// EventKind is the closed set of interaction events the engine understands.
// Anything else parses to KindUnknown and changes no score.
type EventKind int

const (
	KindUnknown EventKind = iota
	KindAIScrollAgainstUserIntent
	KindAIScrollBlockedByUserIntent
	KindAIScrollBlockedUserRecentActivity
	KindUserLike
	KindUserDislike
	KindUserIntentToStay
	KindUndoAutoLike
	KindUndoAutoDislike
	KindAutoLikeConfirmed
	KindAutoDislikeConfirmed
	KindLike
	KindDislike
	KindManualSkipPreviouslyWatched
	KindUserScrollAwayPreviouslyWatched
	KindUserEarlyScrollAway
	KindManualSkip
	KindCompleted
	KindAIScroll
	KindAIScrollPreviouslyWatched
	KindTrustChannel
	KindUntrustChannel
	KindBlockChannel
	KindUnblockChannel
)

var kindNames = map[EventKind]string{
	KindUnknown:                           "unknown",
	KindAIScrollAgainstUserIntent:         "ai_scroll_against_user_intent",
	KindAIScrollBlockedByUserIntent:       "ai_scroll_blocked_by_user_intent",
	KindAIScrollBlockedUserRecentActivity: "ai_scroll_blocked_user_recent_activity",
	KindUserLike:                          "user_like",
	KindUserDislike:                       "user_dislike",
	KindUserIntentToStay:                  "user_intent_to_stay",
	KindUndoAutoLike:                      "undo_auto_like",
	KindUndoAutoDislike:                   "undo_auto_dislike",
	KindAutoLikeConfirmed:                 "auto_like_confirmed",
	KindAutoDislikeConfirmed:              "auto_dislike_confirmed",
	KindLike:                              "like",
	KindDislike:                           "dislike",
	KindManualSkipPreviouslyWatched:       "manual_skip_previously_watched",
	KindUserScrollAwayPreviouslyWatched:   "user_scroll_away_previously_watched",
	KindUserEarlyScrollAway:               "user_early_scroll_away",
	KindManualSkip:                        "manual_skip",
	KindCompleted:                         "completed",
	KindAIScroll:                          "ai_scroll",
	KindAIScrollPreviouslyWatched:         "ai_scroll_previously_watched",
	KindTrustChannel:                      "trust_channel",
	KindUntrustChannel:                    "untrust_channel",
	KindBlockChannel:                      "block_channel",
	KindUnblockChannel:                    "unblock_channel",
}

var kindsByName = func() map[string]EventKind {
	m := make(map[string]EventKind, len(kindNames))
	for k, name := range kindNames {
		if k != KindUnknown {
			m[name] = k
		}
	}
	return m
}()

func ParseEventKind(name string) EventKind {
	if k, ok := kindsByName[name]; ok {
		return k
	}
	return KindUnknown
}

func (k EventKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindUnknown]
}

// baseDelta is the score change an event carries before the learning rate
// is applied. Some kinds only count below or above a watch threshold.
func (k EventKind) baseDelta(watchedPercent float64) float64 {
	switch k {
	case KindAIScrollAgainstUserIntent, KindAIScrollBlockedByUserIntent:
		return -100
	case KindAIScrollBlockedUserRecentActivity:
		return -50
	case KindUserLike, KindUndoAutoDislike:
		return 25
	case KindUserDislike, KindUndoAutoLike:
		return -25
	case KindUserIntentToStay:
		return 30
	case KindAutoLikeConfirmed:
		return 15
	case KindAutoDislikeConfirmed:
		return -15
	case KindLike:
		return 18
	case KindDislike:
		return -18
	case KindManualSkipPreviouslyWatched:
		if watchedPercent < 20 {
			return -3
		}
		return 0
	case KindUserEarlyScrollAway:
		return -5
	case KindManualSkip:
		if watchedPercent < 30 {
			return -10
		}
		return 0
	case KindCompleted:
		if watchedPercent >= 80 {
			return 12
		}
		return 0
	case KindAIScroll:
		return -2
	case KindUserScrollAwayPreviouslyWatched, KindAIScrollPreviouslyWatched:
		return 0
	case KindTrustChannel, KindUntrustChannel, KindBlockChannel, KindUnblockChannel:
		return 0
	case KindUnknown:
		return 0
	default:
		return 0
	}
}

// recordsWatch reports whether the event marks a video as previously watched.
func (k EventKind) recordsWatch() bool {
	return k == KindCompleted || k == KindUserLike || k == KindUserDislike
}

func (k EventKind) positive() bool {
	switch k {
	case KindLike, KindUserLike, KindCompleted, KindUserIntentToStay:
		return true
	}
	return false
}

func (k EventKind) negative() bool {
	switch k {
	case KindDislike, KindUserDislike, KindManualSkip, KindAIScrollAgainstUserIntent:
		return true
	}
	return false
}

package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"Moodfeed/core"
	"Moodfeed/mood"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type eventRequest struct {
	VideoID        string  `json:"video_id" validate:"required"`
	ChannelID      string  `json:"channel_id" validate:"required"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Captions       string  `json:"captions"`
	EventType      string  `json:"event_type" validate:"required"`
	WatchedPercent float64 `json:"watched_percent"`
	// nil when the key is absent; an explicit "" is passed on as is
	Mood           *string `json:"mood"`
}

func (r *eventRequest) toEvent() core.Event {
	m := mood.Neutral.String()
	if r.Mood != nil {
		m = *r.Mood
	}
	return core.Event{
		VideoID:        r.VideoID,
		ChannelID:      r.ChannelID,
		Title:          r.Title,
		Description:    r.Description,
		Captions:       r.Captions,
		Type:           r.EventType,
		WatchedPercent: r.WatchedPercent,
		Mood:           m,
	}
}

type predictionRequest struct {
	VideoID     string `json:"video_id" validate:"required"`
	ChannelID   string `json:"channel_id" validate:"required"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Captions    string `json:"captions"`
}

func (r *predictionRequest) toCandidate() core.Candidate {
	return core.Candidate{
		VideoID:     r.VideoID,
		ChannelID:   r.ChannelID,
		Title:       r.Title,
		Description: r.Description,
		Captions:    r.Captions,
	}
}

type eventResponse struct {
	Status          string `json:"status"`
	CorrectionsMade int    `json:"corrections_made"`
}

type predictionResponse struct {
	Score          int    `json:"score"`
	MoodSuggestion string `json:"mood_suggestion"`
}

type channelStatusResponse struct {
	Trusted bool `json:"trusted"`
	Blocked bool `json:"blocked"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// describeValidation turns validator errors into one readable line.
func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", fe.Field()))
		default:
			parts = append(parts, fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		}
	}
	return strings.Join(parts, "; ")
}

package api

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"

	"Moodfeed/lib/sl"
)

const maxBodyBytes = 1 << 20

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"message": "Moodfeed personalization engine",
		"status":  "running",
	})
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	result := s.service.ProcessEvent(req.toEvent())
	s.writeJSON(w, http.StatusOK, eventResponse{
		Status:          "success",
		CorrectionsMade: result.CorrectionsMade,
	})
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	var req predictionRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	prediction := s.service.PredictScore(req.toCandidate())
	s.writeJSON(w, http.StatusOK, predictionResponse{
		Score:          prediction.Score,
		MoodSuggestion: prediction.MoodSuggestion.String(),
	})
}

func (s *Server) handleChannelStatus(w http.ResponseWriter, r *http.Request) {
	channelID := r.URL.Query().Get("channel_id")
	if channelID == "" {
		s.writeError(w, http.StatusUnprocessableEntity, "channel_id is required")
		return
	}
	status := s.service.ChannelStatus(channelID)
	s.writeJSON(w, http.StatusOK, channelStatusResponse{
		Trusted: status.Trusted,
		Blocked: status.Blocked,
	})
}

func (s *Server) handleBufferSize(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]int{"buffer_size": s.service.BufferSize()})
}

func (s *Server) handleGetMood(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"current_mood": s.service.CurrentMood().String()})
}

// handleSetMood accepts any value; unknown moods leave the current mood as is.
func (s *Server) handleSetMood(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("mood")
	if name == "" {
		s.writeError(w, http.StatusUnprocessableEntity, "mood is required")
		return
	}
	s.service.SetMood(name)
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":       "success",
		"current_mood": s.service.CurrentMood().String(),
	})
}

func (s *Server) handleSuggestMood(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"suggested_mood": s.service.SuggestMoodChange().String()})
}

// decodeBody reads and validates a JSON body, answering 422 itself on failure.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "cannot read request body")
		return false
	}
	if err := json.Unmarshal(body, dst); err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, "invalid JSON body")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, describeValidation(err))
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.log.Error("encode response", sl.Err(err))
		http.Error(w, `{"detail":"internal error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		s.log.Debug("write response", sl.Err(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, detail string) {
	s.log.Debug("request rejected", slog.Int("status", status), slog.String("detail", detail))
	s.writeJSON(w, status, errorResponse{Detail: detail})
}

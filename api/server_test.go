package api

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Moodfeed/core"
	"Moodfeed/mood"
)

type fakePersonalizer struct {
	events     []core.Event
	candidates []core.Candidate
	current    mood.Mood
	suggested  mood.Mood
	score      int
	trusted    map[string]bool
}

func (f *fakePersonalizer) ProcessEvent(ev core.Event) core.EventResult {
	f.events = append(f.events, ev)
	return core.EventResult{}
}

func (f *fakePersonalizer) PredictScore(c core.Candidate) core.Prediction {
	f.candidates = append(f.candidates, c)
	return core.Prediction{Score: f.score, MoodSuggestion: f.current}
}

func (f *fakePersonalizer) ChannelStatus(id string) core.ChannelStatus {
	return core.ChannelStatus{Trusted: f.trusted[id]}
}

func (f *fakePersonalizer) BufferSize() int { return len(f.events) }

func (f *fakePersonalizer) CurrentMood() mood.Mood { return f.current }

func (f *fakePersonalizer) SetMood(name string) {
	if m, ok := mood.Parse(name); ok {
		f.current = m
	}
}

func (f *fakePersonalizer) SuggestMoodChange() mood.Mood { return f.suggested }

func setupTestServer(t *testing.T) (*fakePersonalizer, http.Handler) {
	t.Helper()
	conf := &core.Config{}
	conf.Cors.AllowedOrigins = []string{"*"}
	fake := &fakePersonalizer{
		current:   mood.Neutral,
		suggested: mood.Neutral,
		trusted:   map[string]bool{},
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return fake, NewServer(conf, fake, log).Router()
}

func do(t *testing.T, h http.Handler, method, target, body string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec.Code, out
}

func TestRoot(t *testing.T) {
	_, h := setupTestServer(t)
	code, body := do(t, h, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "running", body["status"])
}

func TestEvent(t *testing.T) {
	fake, h := setupTestServer(t)

	code, body := do(t, h, http.MethodPost, "/event",
		`{"video_id":"v1","channel_id":"c1","title":"t","event_type":"like","watched_percent":42.5}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, float64(0), body["corrections_made"])

	require.Len(t, fake.events, 1)
	ev := fake.events[0]
	assert.Equal(t, "v1", ev.VideoID)
	assert.Equal(t, "c1", ev.ChannelID)
	assert.Equal(t, "like", ev.Type)
	assert.Equal(t, 42.5, ev.WatchedPercent)
	assert.Equal(t, "Neutral", ev.Mood)
}

func TestEventRejectsInvalidBodies(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing video", `{"channel_id":"c","event_type":"like"}`},
		{"missing channel", `{"video_id":"v","event_type":"like"}`},
		{"missing event type", `{"video_id":"v","channel_id":"c"}`},
		{"not json", `nope`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake, h := setupTestServer(t)
			code, body := do(t, h, http.MethodPost, "/event", tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, code)
			assert.NotEmpty(t, body["detail"])
			assert.Empty(t, fake.events)
		})
	}
}

func TestEventPassesValuesThrough(t *testing.T) {
	fake, h := setupTestServer(t)

	code, _ := do(t, h, http.MethodPost, "/event",
		`{"video_id":"v","channel_id":"c","event_type":"completed","watched_percent":-5,"mood":""}`)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, fake.events, 1)
	assert.Equal(t, -5.0, fake.events[0].WatchedPercent)
	assert.Equal(t, "", fake.events[0].Mood, "only a missing mood defaults to Neutral")

	code, _ = do(t, h, http.MethodPost, "/event",
		`{"video_id":"v","channel_id":"c","event_type":"like","mood":"Mad"}`)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, fake.events, 2)
	assert.Equal(t, "Mad", fake.events[1].Mood)
}

func TestNext(t *testing.T) {
	fake, h := setupTestServer(t)
	fake.score = -37
	fake.current = mood.Curious

	code, body := do(t, h, http.MethodPost, "/next", `{"video_id":"v","channel_id":"c","title":"how it works"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(-37), body["score"])
	assert.Equal(t, "Curious", body["mood_suggestion"])
	require.Len(t, fake.candidates, 1)
	assert.Equal(t, "how it works", fake.candidates[0].Title)
}

func TestChannelStatus(t *testing.T) {
	fake, h := setupTestServer(t)
	fake.trusted["c1"] = true

	code, body := do(t, h, http.MethodGet, "/channel_status?channel_id=c1", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["trusted"])
	assert.Equal(t, false, body["blocked"])

	code, _ = do(t, h, http.MethodGet, "/channel_status", "")
	assert.Equal(t, http.StatusUnprocessableEntity, code)
}

func TestBufferSize(t *testing.T) {
	fake, h := setupTestServer(t)
	fake.events = make([]core.Event, 3)

	code, body := do(t, h, http.MethodGet, "/buffer_size", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(3), body["buffer_size"])
}

func TestMoodRoutes(t *testing.T) {
	fake, h := setupTestServer(t)
	fake.suggested = mood.Relaxed

	code, body := do(t, h, http.MethodGet, "/mood", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Neutral", body["current_mood"])

	code, body = do(t, h, http.MethodPost, "/mood?mood=Happy", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "Happy", body["current_mood"])

	code, body = do(t, h, http.MethodPost, "/mood?mood=Grumpy", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Happy", body["current_mood"])

	code, _ = do(t, h, http.MethodPost, "/mood", "")
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	code, body = do(t, h, http.MethodGet, "/mood/suggest", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Relaxed", body["suggested_mood"])
}

func TestMetricsEndpoint(t *testing.T) {
	_, h := setupTestServer(t)
	do(t, h, http.MethodGet, "/buffer_size", "")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "moodfeed_http_requests_total")
}

func TestUnknownRoute(t *testing.T) {
	_, h := setupTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/krishna45-ux/DC-Physics-3/internal/models"
)

func tutorUpstream(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestTutorAskSuccess(t *testing.T) {
	var gotAuth string
	var gotReq chatCompletionRequest
	server := tutorUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "F = ma relates force to acceleration."}},
			},
		})
	})

	svc := NewTutorService(TutorConfig{BaseURL: server.URL, APIKey: "test-key"}, nil, zap.NewNop())
	reply, err := svc.Ask(context.Background(), models.AskTutorRequest{
		Question: "What does Newton's second law say?",
		Context:  "Laws of Motion",
	})
	require.NoError(t, err)
	assert.Equal(t, "F = ma relates force to acceleration.", reply.Answer)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "gpt-4o-mini", gotReq.Model)
	require.NotEmpty(t, gotReq.Messages)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Contains(t, gotReq.Messages[0].Content, "Physics tutor")
	assert.Contains(t, gotReq.Messages[0].Content, "Laws of Motion")
}

func TestTutorAskUnconfiguredGoesOffline(t *testing.T) {
	svc := NewTutorService(TutorConfig{}, nil, zap.NewNop())

	reply, err := svc.Ask(context.Background(), models.AskTutorRequest{Question: "What is torque?"})
	require.NoError(t, err)
	assert.Equal(t, tutorOfflineReply, reply.Answer)
}

func TestTutorAskUpstreamErrorDegrades(t *testing.T) {
	server := tutorUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})
	svc := NewTutorService(TutorConfig{BaseURL: server.URL, APIKey: "test-key"}, nil, zap.NewNop())

	reply, err := svc.Ask(context.Background(), models.AskTutorRequest{Question: "What is torque?"})
	require.NoError(t, err)
	assert.Equal(t, tutorErrorReply, reply.Answer)
}

func TestTutorAskMalformedBodyDegrades(t *testing.T) {
	server := tutorUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})
	svc := NewTutorService(TutorConfig{BaseURL: server.URL, APIKey: "test-key"}, nil, zap.NewNop())

	reply, err := svc.Ask(context.Background(), models.AskTutorRequest{Question: "What is torque?"})
	require.NoError(t, err)
	assert.Equal(t, tutorErrorReply, reply.Answer)
}

func TestTutorAskEmptyChoices(t *testing.T) {
	server := tutorUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	})
	svc := NewTutorService(TutorConfig{BaseURL: server.URL, APIKey: "test-key"}, nil, zap.NewNop())

	reply, err := svc.Ask(context.Background(), models.AskTutorRequest{Question: "What is torque?"})
	require.NoError(t, err)
	assert.Equal(t, tutorEmptyReply, reply.Answer)
}

func TestTutorAskValidatesQuestion(t *testing.T) {
	svc := NewTutorService(TutorConfig{BaseURL: "http://localhost:0", APIKey: "k"}, nil, zap.NewNop())

	_, err := svc.Ask(context.Background(), models.AskTutorRequest{Question: ""})
	require.Error(t, err)
}

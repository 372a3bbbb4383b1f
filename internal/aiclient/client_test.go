package aiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateProgram(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/generate-program", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req GenerateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "intermediate", req.Experience)
		assert.Equal(t, 4, req.WorkoutDays)

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"program": []map[string]any{
				{
					"day": "Day 1 - Upper Body",
					"exercises": []map[string]any{
						{"name": "Bench Press", "sets": 4, "reps": "6-10", "rir": "2-3"},
						{"name": "Overhead Press", "sets": "3", "reps": "8-12", "rir": "2-3"},
					},
				},
			},
		})
	}))
	defer server.Close()

	client := New(server.URL, time.Second)
	resp, err := client.GenerateProgram(context.Background(), GenerateRequest{
		Gender:      "Male",
		Experience:  "intermediate",
		Goal:        "Build Muscle",
		WorkoutDays: 4,
		UserID:      "abc123",
	})
	require.NoError(t, err)
	require.Len(t, resp.Program, 1)
	require.Len(t, resp.Program[0].Exercises, 2)
	assert.Equal(t, 4, resp.Program[0].Exercises[0].SetsValue())
	assert.Equal(t, 3, resp.Program[0].Exercises[1].SetsValue())
}

func TestGenerateProgram_UnsuccessfulReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "model overloaded"})
	}))
	defer server.Close()

	client := New(server.URL, time.Second)
	_, err := client.GenerateProgram(context.Background(), GenerateRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model overloaded")
}

func TestGenerateProgram_Non2xxStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(server.URL, time.Second)
	_, err := client.GenerateProgram(context.Background(), GenerateRequest{})
	assert.Error(t, err)
}

func TestGenerateProgram_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	client := New(server.URL, 50*time.Millisecond)
	start := time.Now()
	_, err := client.GenerateProgram(context.Background(), GenerateRequest{})
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestChat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat", r.URL.Path)

		var req ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "I want a 3 day program", req.Message)
		assert.Len(t, req.ConversationHistory, 2)

		json.NewEncoder(w).Encode(map[string]any{
			"success":         true,
			"response":        "Here is your program.",
			"program_created": true,
			"program": []map[string]any{
				{"day": "Day 1", "exercises": []map[string]any{
					{"name": "Squat", "sets": 3, "reps": "8-12", "rir": "2-3"},
				}},
			},
		})
	}))
	defer server.Close()

	client := New(server.URL, time.Second)
	resp, err := client.Chat(context.Background(), ChatRequest{
		Message:             "I want a 3 day program",
		ConversationHistory: []string{"hi", "hello, how can I help?"},
		UserID:              "abc123",
		Timestamp:           time.Now().UTC().Format(time.RFC3339),
	})
	require.NoError(t, err)
	assert.Equal(t, "Here is your program.", resp.Response)
	assert.True(t, resp.ProgramCreated)
	require.Len(t, resp.Program, 1)
}

func TestChat_UnsuccessfulReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": false})
	}))
	defer server.Close()

	client := New(server.URL, time.Second)
	_, err := client.Chat(context.Background(), ChatRequest{Message: "hi"})
	assert.Error(t, err)
}

func TestSetsValue(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{`4`, 4},
		{`"3"`, 3},
		{`"three"`, 0},
		{`null`, 0},
		{`{}`, 0},
	}
	for _, tc := range cases {
		e := ResponseExercise{Sets: json.RawMessage(tc.raw)}
		assert.Equal(t, tc.want, e.SetsValue(), "sets=%s", tc.raw)
	}
	assert.Equal(t, 0, ResponseExercise{}.SetsValue())
}

// Package aiclient is the HTTP client for the external AI service that backs
// program generation and the chat assistant. Callers treat every error from
// this package the same way: fall back (generation) or surface it (chat).
package aiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// GenerateRequest is the body of POST /generate-program.
type GenerateRequest struct {
	Gender      string `json:"gender"`
	Experience  string `json:"experience"`
	Goal        string `json:"goal"`
	WorkoutDays int    `json:"workout_days"`
	UserID      string `json:"user_id"`
}

// GenerateResponse is the expected shape of the generation reply. Day and
// exercise fields are loosely typed on purpose; the program service sanitizes
// them before anything is persisted.
type GenerateResponse struct {
	Success bool           `json:"success"`
	Error   string         `json:"error,omitempty"`
	Program []ResponseDay  `json:"program"`
	Note    string         `json:"note,omitempty"`
	User    map[string]any `json:"user_info,omitempty"`
}

type ResponseDay struct {
	Day       string             `json:"day"`
	Exercises []ResponseExercise `json:"exercises"`
}

type ResponseExercise struct {
	Name string          `json:"name"`
	Sets json.RawMessage `json:"sets"` // Number or numeric string, varies by model
	Reps string          `json:"reps"`
	RIR  string          `json:"rir"`
}

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message             string   `json:"message"`
	ConversationHistory []string `json:"conversation_history"`
	UserID              string   `json:"user_id"`
	Timestamp           string   `json:"timestamp"`
}

// ChatResponse is the reply of POST /chat. Program is present only when the
// assistant created a program during the exchange.
type ChatResponse struct {
	Success        bool           `json:"success"`
	Response       string         `json:"response"`
	ProgramCreated bool           `json:"program_created,omitempty"`
	Program        []ResponseDay  `json:"program,omitempty"`
	UserInfo       map[string]any `json:"user_info,omitempty"`
}

// Client talks to the AI service. The timeout is applied per call through a
// context deadline; there are no retries.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// New creates a Client for the service at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		timeout:    timeout,
		httpClient: &http.Client{},
	}
}

// GenerateProgram calls POST /generate-program. Transport failures, non-2xx
// statuses, unsuccessful replies, and undecodable bodies are all returned as
// errors so the caller can fall back to local generation.
func (c *Client) GenerateProgram(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	var resp GenerateResponse
	if err := c.post(ctx, "/generate-program", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("aiclient: generation unsuccessful: %s", resp.Error)
	}
	return &resp, nil
}

// Chat calls POST /chat.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	var resp ChatResponse
	if err := c.post(ctx, "/chat", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("aiclient: chat unsuccessful")
	}
	return &resp, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("aiclient: encode request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("aiclient: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("aiclient: %s: %w", path, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return fmt.Errorf("aiclient: %s: unexpected status %d", path, httpResp.StatusCode)
	}

	if err := json.NewDecoder(httpResp.Body).Decode(out); err != nil {
		return fmt.Errorf("aiclient: %s: decode response: %w", path, err)
	}
	return nil
}

// SetsValue decodes the loosely-typed sets field: a JSON number, a numeric
// string, or absent. Returns 0 when the value cannot be interpreted; the
// sanitizer substitutes its default.
func (e ResponseExercise) SetsValue() int {
	if len(e.Sets) == 0 {
		return 0
	}
	var n int
	if err := json.Unmarshal(e.Sets, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(e.Sets, &s); err == nil {
		var parsed int
		if _, err := fmt.Sscanf(s, "%d", &parsed); err == nil {
			return parsed
		}
	}
	return 0
}

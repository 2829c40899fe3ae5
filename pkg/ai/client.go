package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrEmptyOutput is returned when the backend answers with no text.
var ErrEmptyOutput = errors.New("ai: backend returned empty output")

// Client calls the ai-service chat endpoint. The service takes a single
// prompt and answers with free text.
type Client struct {
	BaseURL     string
	HTTP        *http.Client
	MaxAttempts int
	Log         *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, maxAttempts int, log *slog.Logger) *Client {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		BaseURL:     strings.TrimRight(baseURL, "/"),
		HTTP:        &http.Client{Timeout: timeout},
		MaxAttempts: maxAttempts,
		Log:         log,
	}
}

type chatRequest struct {
	Agent string `json:"agent"`
	Input string `json:"input"`
}

type chatResponse struct {
	Agent  string `json:"agent"`
	Output string `json:"output"`
}

// Generate sends prompt to /v1/chat and returns the output text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	rid := uuid.New().String()
	start := time.Now()

	b, err := json.Marshal(chatRequest{Agent: "auto", Input: prompt})
	if err != nil {
		return "", err
	}
	c.Log.Debug("ai.chat.start", "req_id", rid, "url", c.BaseURL+"/v1/chat", "prompt_len", len(prompt))

	resp, err := c.doPostWithRetry(ctx, "/v1/chat", b)
	if err != nil {
		c.Log.Error("ai.chat.http_error", "req_id", rid, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return "", err
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		c.Log.Error("ai.chat.bad_status", "req_id", rid, "status", resp.StatusCode, "body_len", len(respBytes))
		return "", fmt.Errorf("ai-service returned non-200 status: %d", resp.StatusCode)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBytes, &chatResp); err != nil {
		return "", fmt.Errorf("decode ai-service response: %w", err)
	}
	c.Log.Info("ai.chat.done", "req_id", rid, "agent", chatResp.Agent, "output_len", len(chatResp.Output), "elapsed_ms", time.Since(start).Milliseconds())

	if strings.TrimSpace(chatResp.Output) == "" {
		return "", ErrEmptyOutput
	}
	return chatResp.Output, nil
}

// doPostWithRetry performs an HTTP POST to the given path. Transport errors
// are retried with exponential backoff up to MaxAttempts.
func (c *Client) doPostWithRetry(ctx context.Context, path string, body []byte) (*http.Response, error) {
	var lastErr error
	for i := 0; i < c.MaxAttempts; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.HTTP.Do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if i < c.MaxAttempts-1 {
			backoff := time.Duration(1<<i) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, lastErr
}

// ExtractJSONObject decodes s as a JSON object. Models often wrap JSON in
// prose or code fences, so on failure the outermost {...} block is tried.
func ExtractJSONObject(s string) (map[string]interface{}, error) {
	var out map[string]interface{}
	err := json.Unmarshal([]byte(s), &out)
	if err == nil {
		return out, nil
	}
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start >= 0 && end > start {
		if err2 := json.Unmarshal([]byte(s[start:end+1]), &out); err2 == nil {
			return out, nil
		}
	}
	return nil, fmt.Errorf("ai: non-json content: %w", err)
}

package intelligence

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	scoreSystemPrompt = "You are an expert bid analyst for a school connectivity procurement programme. " +
		"Evaluate the bid attributes you are given and respond with a JSON object of the form " +
		`{"score": <number between 0 and 100>}. Respond with JSON only.`

	insightSystemPrompt = "You are an expert bid analyst for a school connectivity procurement programme. " +
		"Carefully analyze the following bid details and generate a comprehensive JSON report " +
		"covering technical capabilities, financial analysis and cost-effectiveness, risk " +
		"evaluation, strategic recommendations, and compliance review. Respond with a single JSON object."
)

// Client talks to an OpenAI-compatible chat-completions endpoint (Groq and
// friends). Responses are parsed strictly: anything that is not the expected
// JSON shape is an error, never a fabricated score.
type Client struct {
	httpClient *http.Client
	apiURL     string
	apiKey     string
	model      string
	logger     *zap.Logger
}

func NewClient(apiURL, apiKey, model string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		apiURL:     apiURL,
		apiKey:     apiKey,
		model:      model,
		logger:     logger,
	}
}

func (c *Client) Score(ctx context.Context, req ScoreRequest) (float64, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return 0, err
	}

	content, err := c.complete(ctx, scoreSystemPrompt, string(payload))
	if err != nil {
		return 0, err
	}

	var parsed struct {
		Score *float64 `json:"score"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return 0, fmt.Errorf("model returned a non-JSON score: %w", err)
	}
	if parsed.Score == nil {
		return 0, fmt.Errorf("model response has no numeric score field")
	}

	return *parsed.Score, nil
}

func (c *Client) GenerateInsight(ctx context.Context, bid map[string]interface{}) (map[string]interface{}, error) {
	payload, err := json.Marshal(bid)
	if err != nil {
		return nil, err
	}

	content, err := c.complete(ctx, insightSystemPrompt, string(payload))
	if err != nil {
		return nil, err
	}

	var insight map[string]interface{}
	if err := json.Unmarshal([]byte(content), &insight); err != nil {
		return nil, fmt.Errorf("model returned a non-object insight: %w", err)
	}

	return insight, nil
}

type chatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	Messages    []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (c *Client) complete(ctx context.Context, system string, user string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Temperature: 0,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("ai scorer request rejected",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", raw))

		return "", fmt.Errorf("ai endpoint responded with status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("malformed ai response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("ai response carries no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}

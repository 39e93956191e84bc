package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxAttempts caps the send loop: one initial attempt plus one retry after
// a credential refresh.
const maxAttempts = 2

// Response is what the messaging channel answered.
type Response struct {
	StatusCode int
	Body       string
	OK         bool
}

// Notifier is the outbound surface report jobs depend on.
type Notifier interface {
	NotifyText(ctx context.Context, text string) (Response, error)
	MessageText(ctx context.Context, text, replyToken string) (Response, error)
}

// Client sends report text to the messaging channel with bearer-token
// auth. On a 401 the cached token is invalidated and the request retried
// exactly once with fresh credentials.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     *TokenSource
}

func NewClient(baseURL string, tokens *TokenSource) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
		tokens:     tokens,
	}
}

// NotifyText broadcasts a message to the channel.
func (c *Client) NotifyText(ctx context.Context, text string) (Response, error) {
	return c.send(ctx, "/bot/v1/notify/text", map[string]string{"message": text})
}

// MessageText replies to a conversation identified by replyToken.
func (c *Client) MessageText(ctx context.Context, text, replyToken string) (Response, error) {
	return c.send(ctx, "/bot/v1/message/text", map[string]string{
		"message":    text,
		"replyToken": replyToken,
	})
}

func (c *Client) send(ctx context.Context, path string, body map[string]string) (Response, error) {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		resp, err := c.sendOnce(ctx, path, body)
		if err != nil {
			return Response{}, err
		}

		if resp.StatusCode == http.StatusUnauthorized {
			c.tokens.Invalidate()
			continue
		}
		return resp, nil
	}

	return Response{
		StatusCode: http.StatusInternalServerError,
		Body:       "Request re-attempt reached its limit.",
	}, nil
}

func (c *Client) sendOnce(ctx context.Context, path string, body map[string]string) (Response, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return Response{}, fmt.Errorf("failed to authenticate with the messaging channel: %w", err)
	}

	data, err := json.Marshal(body)
	if err != nil {
		return Response{}, fmt.Errorf("failed to encode message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return Response{}, fmt.Errorf("failed to build message request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("message request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return Response{
		StatusCode: resp.StatusCode,
		Body:       string(raw),
		OK:         resp.StatusCode/100 == 2,
	}, nil
}

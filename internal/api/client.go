// Package api is the client for the remote practice service: fetching
// practice prompts and submitting session results. The server side is an
// opaque collaborator; any non-2xx response is treated the same as a
// transport failure by callers that queue retries.
package api

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrNoItems is returned when the service responds successfully but has no
// practice items for the requested deck. This is a content/availability
// problem, distinct from a transport error, and is surfaced to the user.
var ErrNoItems = errors.New("api: no practice items available")

// PromptItem is a single practice item.
type PromptItem struct {
	ID       string `json:"id"`
	Front    string `json:"front"`
	Back     string `json:"back"`
	AudioURL string `json:"audioUrl,omitempty"`
}

// PromptsMeta describes the fetched item set.
type PromptsMeta struct {
	DeckType string `json:"deckType"`
	Total    int    `json:"total"`
}

// PromptsResponse is the remote prompt-fetch response body.
type PromptsResponse struct {
	Items []PromptItem `json:"items"`
	Meta  PromptsMeta  `json:"meta"`
}

// CompletionPayload is the session result summary submitted on completion.
type CompletionPayload struct {
	DeckType    string    `json:"deckType"`
	Mode        string    `json:"mode"`
	Correct     int       `json:"correct"`
	Total       int       `json:"total"`
	Accuracy    float64   `json:"accuracy"`
	XPEarned    int       `json:"xpEarned"`
	DurationMs  int64     `json:"durationMs"`
	CompletedAt time.Time `json:"completedAt"`
	FromQueue   bool      `json:"fromQueue,omitempty"`
}

// Client calls the remote practice service.
type Client struct {
	client  *resty.Client
	baseURL string
}

// NewClient creates a Client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		client:  resty.New(),
		baseURL: baseURL,
	}
}

// FetchPrompts fetches up to limit practice items for a deck and mode.
// An empty item set is ErrNoItems, not a transport error.
func (c *Client) FetchPrompts(ctx context.Context, deck, mode string, limit int) (PromptsResponse, error) {
	var response PromptsResponse
	res, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("deck", deck).
		SetQueryParam("mode", mode).
		SetQueryParam("limit", strconv.Itoa(limit)).
		SetResult(&response).
		Get(c.baseURL + "/v1/prompts")
	if err != nil {
		return response, fmt.Errorf("client.R().Get(prompts) > %w", err)
	}
	if res.StatusCode() < 200 || res.StatusCode() >= 300 {
		return response, fmt.Errorf("status code: %d, body: %s", res.StatusCode(), string(res.Body()))
	}
	if len(response.Items) == 0 {
		return response, ErrNoItems
	}
	return response, nil
}

// SubmitCompletion posts a session result. Success is any 2xx; any other
// status or transport error is returned as a failure.
func (c *Client) SubmitCompletion(ctx context.Context, payload CompletionPayload) error {
	res, err := c.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post(c.baseURL + "/v1/completions")
	if err != nil {
		return fmt.Errorf("client.R().Post(completions) > %w", err)
	}
	if res.StatusCode() < 200 || res.StatusCode() >= 300 {
		return fmt.Errorf("status code: %d, body: %s", res.StatusCode(), string(res.Body()))
	}
	return nil
}

package api

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

func TestClient_FetchPrompts(t *testing.T) {
	tests := []struct {
		name          string
		handler       http.HandlerFunc
		expectedItems int
		expectedErr   error
		expectError   bool
	}{
		{
			name: "successful fetch",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/v1/prompts", r.URL.Path)
				assert.Equal(t, "curated", r.URL.Query().Get("deck"))
				assert.Equal(t, "typing", r.URL.Query().Get("mode"))
				assert.Equal(t, "10", r.URL.Query().Get("limit"))
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{
					"items": [
						{"id": "p1", "front": "break the ice", "back": "start a conversation", "audioUrl": "https://cdn.example.com/p1.mp3"},
						{"id": "p2", "front": "call it a day", "back": "stop working"}
					],
					"meta": {"deckType": "curated", "total": 2}
				}`))
			},
			expectedItems: 2,
		},
		{
			name: "empty item set is ErrNoItems",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"items": [], "meta": {"deckType": "curated", "total": 0}}`))
			},
			expectedErr: ErrNoItems,
			expectError: true,
		},
		{
			name: "server error is a transport failure",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := NewClient(server.URL)
			response, err := client.FetchPrompts(context.Background(), "curated", "typing", 10)

			if tt.expectError {
				require.Error(t, err)
				if tt.expectedErr != nil {
					assert.ErrorIs(t, err, tt.expectedErr)
				}
				return
			}
			require.NoError(t, err)
			assert.Len(t, response.Items, tt.expectedItems)
			assert.Equal(t, "curated", response.Meta.DeckType)
		})
	}
}

func TestClient_SubmitCompletion(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		expectError bool
	}{
		{name: "200 is success", status: http.StatusOK},
		{name: "204 is success", status: http.StatusNoContent},
		{name: "500 is failure", status: http.StatusInternalServerError, expectError: true},
		{name: "401 is failure", status: http.StatusUnauthorized, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var received CompletionPayload
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/v1/completions", r.URL.Path)
				require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := NewClient(server.URL)
			payload := CompletionPayload{
				DeckType:    "curated",
				Mode:        "typing",
				Correct:     8,
				Total:       10,
				Accuracy:    80,
				XPEarned:    80,
				DurationMs:  123456,
				CompletedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
			}
			err := client.SubmitCompletion(context.Background(), payload)

			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "curated", received.DeckType)
			assert.Equal(t, 8, received.Correct)
			assert.False(t, received.FromQueue)
		})
	}
}

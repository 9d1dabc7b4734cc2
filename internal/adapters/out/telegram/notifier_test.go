package telegram

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Notifier_Notify_Success(t *testing.T) {
	var received sendMessageRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier := NewNotifier("test-token", slog.Default())
	notifier.apiURL = server.URL

	ok := notifier.Notify(context.Background(), "12345", "Order Order 01/09/26 #1 is completed: 10 packed")

	assert.True(t, ok)
	assert.Equal(t, "12345", received.ChatID)
	assert.Contains(t, received.Text, "completed")
}

func Test_Notifier_Notify_ServerError_ReturnsFalse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	notifier := NewNotifier("test-token", slog.Default())
	notifier.apiURL = server.URL

	assert.False(t, notifier.Notify(context.Background(), "12345", "text"))
}

func Test_Notifier_Notify_Unreachable_ReturnsFalse(t *testing.T) {
	notifier := NewNotifier("test-token", slog.Default())
	notifier.apiURL = "http://127.0.0.1:1"

	assert.False(t, notifier.Notify(context.Background(), "12345", "text"))
}

// internal/infra/waha/client_test.go
package waha

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

func TestSendText_Success(t *testing.T) {
	var received sendTextRequest
	var authHeader string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/sendText", r.URL.Path)
		authHeader = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "queued"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret-token", "default-sender", 5*time.Second)
	detail, err := client.SendText(context.Background(), "+55 (11) 9999-0000", "Ola Ana", "")
	require.NoError(t, err)

	assert.Equal(t, "queued", detail)
	assert.Equal(t, "Bearer secret-token", authHeader)
	assert.Equal(t, "+551199990000", received.Phone, "recipient must be sanitized before dispatch")
	assert.Equal(t, "Ola Ana", received.Message)
	assert.Equal(t, "default-sender", received.Sender, "empty sender falls back to the configured default")
}

func TestSendText_ExplicitSenderWins(t *testing.T) {
	var received sendTextRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", "default-sender", 5*time.Second)
	_, err := client.SendText(context.Background(), "11999990000", "Ola", "override-sender")
	require.NoError(t, err)
	assert.Equal(t, "override-sender", received.Sender)
}

func TestSendText_NonJSONBodyYieldsEmptyDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", "", 5*time.Second)
	detail, err := client.SendText(context.Background(), "11999990000", "Ola", "")
	require.NoError(t, err)
	assert.Equal(t, "", detail)
}

func TestSendText_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "session not started", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", "", 5*time.Second)
	_, err := client.SendText(context.Background(), "11999990000", "Ola", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WAHA respondeu com status 500")
	assert.Contains(t, err.Error(), "session not started")
}

func TestSendText_ConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := NewClient(server.URL, "", "", time.Second)
	_, err := client.SendText(context.Background(), "11999990000", "Ola", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Falha ao contatar WAHA")
}

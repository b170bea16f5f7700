// internal/infra/email/client_test.go
package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sendGridClient(apiKey, url string) *Client {
	client := NewClient(Config{
		Provider:  ProviderSendGrid,
		APIKey:    apiKey,
		FromEmail: "noreply@example.com",
		FromName:  "API Services",
	})
	client.sendGridURL = url
	return client
}

func resendClient(apiKey, url string) *Client {
	client := NewClient(Config{
		Provider:  ProviderResend,
		APIKey:    apiKey,
		FromEmail: "noreply@example.com",
		FromName:  "API Services",
	})
	client.resendURL = url
	return client
}

func TestSend_SendGrid(t *testing.T) {
	var received map[string]any
	var authHeader, contentType string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		authHeader = r.Header.Get("Authorization")
		contentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	client := sendGridClient("sg-key", server.URL)
	detail, err := client.Send(context.Background(), "ana@example.com", "Lembrete", "<p>oi</p>", "oi")
	require.NoError(t, err)

	assert.Equal(t, "Email enviado com sucesso via SendGrid.", detail)
	assert.Equal(t, "Bearer sg-key", authHeader)
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, "Lembrete", received["subject"])

	from, ok := received["from"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "noreply@example.com", from["email"])
	assert.Equal(t, "API Services", from["name"])

	personalizations, ok := received["personalizations"].([]any)
	require.True(t, ok)
	require.Len(t, personalizations, 1)
	to := personalizations[0].(map[string]any)["to"].([]any)
	require.Len(t, to, 1)
	assert.Equal(t, "ana@example.com", to[0].(map[string]any)["email"])

	content, ok := received["content"].([]any)
	require.True(t, ok)
	require.Len(t, content, 2)
	assert.Equal(t, "text/plain", content[0].(map[string]any)["type"], "plain text part must come first")
	assert.Equal(t, "text/html", content[1].(map[string]any)["type"])
}

func TestSend_SendGridWithoutTextPart(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	client := sendGridClient("sg-key", server.URL)
	_, err := client.Send(context.Background(), "ana@example.com", "Lembrete", "<p>oi</p>", "")
	require.NoError(t, err)

	content := received["content"].([]any)
	require.Len(t, content, 1)
	assert.Equal(t, "text/html", content[0].(map[string]any)["type"])
}

func TestSend_SendGridErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errors":[{"message":"bad key"}]}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := sendGridClient("wrong-key", server.URL)
	_, err := client.Send(context.Background(), "ana@example.com", "Lembrete", "<p>oi</p>", "oi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SendGrid respondeu com status 401")
	assert.Contains(t, err.Error(), "bad key")
}

func TestSend_Resend(t *testing.T) {
	var received map[string]any
	var authHeader string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "re_123"})
	}))
	defer server.Close()

	client := resendClient("re-key", server.URL)
	detail, err := client.Send(context.Background(), "ana@example.com", "Lembrete", "<p>oi</p>", "oi")
	require.NoError(t, err)

	assert.Equal(t, "Email enviado com sucesso via Resend (ID: re_123).", detail)
	assert.Equal(t, "Bearer re-key", authHeader)
	assert.Equal(t, "API Services <noreply@example.com>", received["from"])
	assert.Equal(t, []any{"ana@example.com"}, received["to"])
	assert.Equal(t, "Lembrete", received["subject"])
	assert.Equal(t, "<p>oi</p>", received["html"])
	assert.Equal(t, "oi", received["text"])
}

func TestSend_ResendWithoutIDInResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	}))
	defer server.Close()

	client := resendClient("re-key", server.URL)
	detail, err := client.Send(context.Background(), "ana@example.com", "Lembrete", "<p>oi</p>", "")
	require.NoError(t, err)
	assert.Equal(t, "Email enviado com sucesso via Resend (ID: N/A).", detail)
}

func TestSend_ConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := resendClient("re-key", server.URL)
	_, err := client.Send(context.Background(), "ana@example.com", "Lembrete", "<p>oi</p>", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Falha ao contatar Resend")
}

func TestSend_MissingAPIKey(t *testing.T) {
	_, err := sendGridClient("", "http://unused").Send(context.Background(), "a@b.com", "s", "<p></p>", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key não configurada")

	_, err = resendClient("", "http://unused").Send(context.Background(), "a@b.com", "s", "<p></p>", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key não configurada")
}

func TestSend_UnknownProvider(t *testing.T) {
	client := NewClient(Config{Provider: "pombo-correio"})
	_, err := client.Send(context.Background(), "a@b.com", "s", "<p></p>", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Provedor de API não suportado: pombo-correio")
}

func TestSend_EmptyProviderFallsBackToSMTP(t *testing.T) {
	// No SMTP host configured, so the SMTP path must be the one that errors.
	client := NewClient(Config{Provider: ""})
	_, err := client.Send(context.Background(), "a@b.com", "s", "<p></p>", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SMTP não configurado")
}

func TestBuildMIMEMessage(t *testing.T) {
	message := string(buildMIMEMessage(`"API Services" <noreply@example.com>`, "ana@example.com", "Lembrete", "<p>oi</p>", "oi"))

	assert.Contains(t, message, "From: \"API Services\" <noreply@example.com>\r\n")
	assert.Contains(t, message, "To: ana@example.com\r\n")
	assert.Contains(t, message, "Subject: Lembrete\r\n")
	assert.Contains(t, message, "MIME-Version: 1.0\r\n")
	assert.Contains(t, message, "Content-Type: multipart/alternative;")

	textIdx := strings.Index(message, "Content-Type: text/plain")
	htmlIdx := strings.Index(message, "Content-Type: text/html")
	require.GreaterOrEqual(t, textIdx, 0)
	require.GreaterOrEqual(t, htmlIdx, 0)
	assert.Less(t, textIdx, htmlIdx, "plain text part must precede the HTML part")

	assert.True(t, strings.HasSuffix(message, "--\r\n"), "message must end with the closing boundary")
}

func TestBuildMIMEMessage_NoTextPart(t *testing.T) {
	message := string(buildMIMEMessage("noreply@example.com", "ana@example.com", "Lembrete", "<p>oi</p>", ""))
	assert.NotContains(t, message, "text/plain")
	assert.Contains(t, message, "text/html")
}

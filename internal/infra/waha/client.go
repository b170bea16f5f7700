// internal/infra/waha/client.go
package waha

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is a small HTTP client for the WAHA (WhatsApp HTTP API) server.
// It implements the channel.ChatSender interface.
type Client struct {
	baseURL       string
	apiToken      string
	defaultSender string
	httpClient    *http.Client
}

func NewClient(baseURL, apiToken, defaultSender string, timeout time.Duration) *Client {
	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		apiToken:      apiToken,
		defaultSender: defaultSender,
		httpClient:    &http.Client{Timeout: timeout},
	}
}

type sendTextRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
	Sender  string `json:"sender,omitempty"`
}

// SendText sends a WhatsApp text message through WAHA's /api/sendText
// endpoint. The returned detail is WAHA's own message field when the response
// carries one. Errors wrap a human-readable description suitable for run
// summaries.
func (c *Client) SendText(ctx context.Context, recipient, message, sender string) (string, error) {
	if sender == "" {
		sender = c.defaultSender
	}
	payload := sendTextRequest{
		Phone:   sanitizePhone(recipient),
		Message: message,
		Sender:  sender,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("falha ao montar payload para o WAHA: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/sendText", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("falha ao montar requisicao para o WAHA: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("Falha ao contatar WAHA: %v", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("WAHA respondeu com status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	return detailFrom(respBody), nil
}

// detailFrom extracts WAHA's message field when the body is a JSON object.
func detailFrom(body []byte) string {
	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}
	if message, ok := parsed["message"].(string); ok {
		return message
	}
	return ""
}

// sanitizePhone mirrors the spreadsheet loader's normalization so recipients
// coming straight from callers are also dispatch-ready.
func sanitizePhone(phone string) string {
	var digits strings.Builder
	for _, ch := range phone {
		if ch >= '0' && ch <= '9' {
			digits.WriteRune(ch)
		}
	}
	if strings.HasPrefix(strings.TrimSpace(phone), "+") && digits.Len() > 0 {
		return "+" + digits.String()
	}
	return digits.String()
}

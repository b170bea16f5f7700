// internal/infra/email/client.go
package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/smtp"
	"strings"
	"time"
)

// Providers understood by the client. An empty provider falls back to SMTP.
const (
	ProviderSMTP     = "smtp"
	ProviderSendGrid = "sendgrid"
	ProviderResend   = "resend"
)

const (
	sendGridURL    = "https://api.sendgrid.com/v3/mail/send"
	resendURL      = "https://api.resend.com/emails"
	apiSendTimeout = 30 * time.Second
)

// Config carries the delivery settings for the email channel.
type Config struct {
	Provider string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPUseTLS   bool

	APIKey string

	FromEmail string
	FromName  string
}

// Client sends reminder emails via SMTP or a transactional HTTP provider.
// It implements the channel.EmailSender interface.
type Client struct {
	cfg        Config
	httpClient *http.Client

	// Provider endpoints, kept on the client so tests can point them at a
	// local server.
	sendGridURL string
	resendURL   string
}

func NewClient(cfg Config) *Client {
	return &Client{
		cfg:         cfg,
		httpClient:  &http.Client{Timeout: apiSendTimeout},
		sendGridURL: sendGridURL,
		resendURL:   resendURL,
	}
}

// Send delivers one email and returns a human-readable delivery detail.
func (c *Client) Send(ctx context.Context, to, subject, html, text string) (string, error) {
	switch strings.ToLower(c.cfg.Provider) {
	case "", ProviderSMTP:
		return c.sendViaSMTP(to, subject, html, text)
	case ProviderSendGrid:
		return c.sendViaSendGrid(ctx, to, subject, html, text)
	case ProviderResend:
		return c.sendViaResend(ctx, to, subject, html, text)
	default:
		return "", fmt.Errorf("Provedor de API não suportado: %s", c.cfg.Provider)
	}
}

func (c *Client) sendViaSMTP(to, subject, html, text string) (string, error) {
	if c.cfg.SMTPHost == "" {
		return "", fmt.Errorf("SMTP não configurado. Defina API_EMAIL_SMTP_HOST ou use API_EMAIL_PROVIDER.")
	}

	message := buildMIMEMessage(c.fromHeader(), to, subject, html, text)
	addr := fmt.Sprintf("%s:%d", c.cfg.SMTPHost, c.cfg.SMTPPort)

	client, err := smtp.Dial(addr)
	if err != nil {
		return "", fmt.Errorf("Erro SMTP: %v", err)
	}
	defer client.Close()

	if c.cfg.SMTPUseTLS {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(&tls.Config{ServerName: c.cfg.SMTPHost}); err != nil {
				return "", fmt.Errorf("Erro SMTP: %v", err)
			}
		}
	}
	if c.cfg.SMTPUser != "" && c.cfg.SMTPPassword != "" {
		auth := smtp.PlainAuth("", c.cfg.SMTPUser, c.cfg.SMTPPassword, c.cfg.SMTPHost)
		if err := client.Auth(auth); err != nil {
			return "", fmt.Errorf("Erro SMTP: %v", err)
		}
	}

	if err := client.Mail(c.cfg.FromEmail); err != nil {
		return "", fmt.Errorf("Erro SMTP: %v", err)
	}
	if err := client.Rcpt(to); err != nil {
		return "", fmt.Errorf("Erro SMTP: %v", err)
	}
	writer, err := client.Data()
	if err != nil {
		return "", fmt.Errorf("Erro SMTP: %v", err)
	}
	if _, err := writer.Write(message); err != nil {
		return "", fmt.Errorf("Erro SMTP: %v", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("Erro SMTP: %v", err)
	}
	_ = client.Quit()

	return "Email enviado com sucesso via SMTP.", nil
}

func (c *Client) sendViaSendGrid(ctx context.Context, to, subject, html, text string) (string, error) {
	if c.cfg.APIKey == "" {
		return "", fmt.Errorf("API key não configurada para sendgrid.")
	}

	content := []map[string]string{}
	if text != "" {
		content = append(content, map[string]string{"type": "text/plain", "value": text})
	}
	content = append(content, map[string]string{"type": "text/html", "value": html})

	payload := map[string]any{
		"personalizations": []map[string]any{
			{"to": []map[string]string{{"email": to}}},
		},
		"from": map[string]string{
			"email": c.cfg.FromEmail,
			"name":  c.fromName(),
		},
		"subject": subject,
		"content": content,
	}

	_, err := c.postJSON(ctx, "SendGrid", c.sendGridURL, payload)
	if err != nil {
		return "", err
	}
	return "Email enviado com sucesso via SendGrid.", nil
}

func (c *Client) sendViaResend(ctx context.Context, to, subject, html, text string) (string, error) {
	if c.cfg.APIKey == "" {
		return "", fmt.Errorf("API key não configurada para resend.")
	}

	payload := map[string]any{
		"from":    fmt.Sprintf("%s <%s>", c.fromName(), c.cfg.FromEmail),
		"to":      []string{to},
		"subject": subject,
		"html":    html,
	}
	if text != "" {
		payload["text"] = text
	}

	body, err := c.postJSON(ctx, "Resend", c.resendURL, payload)
	if err != nil {
		return "", err
	}

	id := "N/A"
	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err == nil {
		if v, ok := parsed["id"].(string); ok {
			id = v
		}
	}
	return fmt.Sprintf("Email enviado com sucesso via Resend (ID: %s).", id), nil
}

func (c *Client) postJSON(ctx context.Context, provider, url string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("falha ao montar payload para %s: %w", provider, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("falha ao montar requisicao para %s: %w", provider, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Falha ao contatar %s: %v", provider, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s respondeu com status %d: %s", provider, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	return respBody, nil
}

func (c *Client) fromName() string {
	if c.cfg.FromName != "" {
		return c.cfg.FromName
	}
	return "API Services"
}

func (c *Client) fromHeader() string {
	if c.cfg.FromName != "" {
		return fmt.Sprintf("%q <%s>", c.cfg.FromName, c.cfg.FromEmail)
	}
	return c.cfg.FromEmail
}

// buildMIMEMessage assembles a multipart/alternative message with the plain
// text part first so capable clients prefer the HTML rendering.
func buildMIMEMessage(from, to, subject, html, text string) []byte {
	const boundary = "billing-reminder-boundary"

	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	b.WriteString("\r\n")

	if text != "" {
		fmt.Fprintf(&b, "--%s\r\n", boundary)
		b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
		b.WriteString(text)
		b.WriteString("\r\n")
	}
	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	b.WriteString(html)
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "--%s--\r\n", boundary)

	return b.Bytes()
}

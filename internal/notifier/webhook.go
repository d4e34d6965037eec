package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// WebhookNotifier posts messages as JSON to a configured endpoint.
type WebhookNotifier struct {
	URL    string
	Client *http.Client
}

// NewWebhookNotifier creates a notifier with optional proxy support.
func NewWebhookNotifier(webhookURL, proxyURL string) *WebhookNotifier {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &WebhookNotifier{
		URL: webhookURL,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (w *WebhookNotifier) Name() string { return "webhook" }

// Send posts {"text": ...} to the endpoint.
func (w *WebhookNotifier) Send(text string) error {
	if w.URL == "" {
		return fmt.Errorf("webhook notifier not configured: url is required")
	}
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	resp, err := w.Client.Post(w.URL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("post message: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("webhook error: status %d, body: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

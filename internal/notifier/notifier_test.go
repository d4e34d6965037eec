package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// flakyNotifier fails a fixed number of times before succeeding.
type flakyNotifier struct {
	failures int
	calls    int
}

func (f *flakyNotifier) Send(text string) error {
	f.calls++
	if f.calls <= f.failures {
		return errors.New("transient failure")
	}
	return nil
}

func (f *flakyNotifier) Name() string { return "flaky" }

func TestSendWithRetry_EventualSuccess(t *testing.T) {
	n := &flakyNotifier{failures: 2}
	if err := SendWithRetry(context.Background(), n, "hello", 3); err != nil {
		t.Fatalf("SendWithRetry: %v", err)
	}
	if n.calls != 3 {
		t.Errorf("made %d attempts, want 3", n.calls)
	}
}

func TestSendWithRetry_Exhausted(t *testing.T) {
	n := &flakyNotifier{failures: 100}
	err := SendWithRetry(context.Background(), n, "hello", 1)
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if n.calls != 2 {
		t.Errorf("made %d attempts, want 2", n.calls)
	}
}

func TestSendWithRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n := &flakyNotifier{failures: 100}
	if err := SendWithRetry(ctx, n, "hello", 5); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestMultiNotifier(t *testing.T) {
	good := &flakyNotifier{}
	bad := &flakyNotifier{failures: 100}
	m := MultiNotifier{good, bad}

	err := m.Send("hello")
	if err == nil {
		t.Fatal("expected the failing channel's error to surface")
	}
	if good.calls != 1 {
		t.Errorf("good channel called %d times, want 1", good.calls)
	}
	if m.Name() != "flaky+flaky" {
		t.Errorf("Name() = %s", m.Name())
	}
}

func TestNoopNotifier(t *testing.T) {
	if err := (NoopNotifier{}).Send("anything"); err != nil {
		t.Errorf("noop Send: %v", err)
	}
}

func TestEmailBuildMessage(t *testing.T) {
	e := NewEmailNotifier("smtp.example.com", 587, "user", "pass", "bot@example.com",
		[]string{"a@example.com", "b@example.com"})
	msg := string(e.buildMessage("report body"))

	for _, want := range []string{
		"From: bot@example.com\r\n",
		"To: a@example.com, b@example.com\r\n",
		"Subject: SwingSentinel Alert\r\n",
		"Content-Type: text/plain; charset=\"UTF-8\"\r\n",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing header %q", want)
		}
	}
	if !strings.HasSuffix(msg, "\r\n\r\nreport body") {
		t.Error("body not separated from headers by a blank line")
	}
}

func TestEmailSend_Unconfigured(t *testing.T) {
	e := &EmailNotifier{}
	if err := e.Send("hello"); err == nil {
		t.Error("expected error for an unconfigured email notifier")
	}
}

func TestWebhookSend(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL, "")
	if err := n.Send("scan report"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if got["text"] != "scan report" {
		t.Errorf("payload text = %q, want %q", got["text"], "scan report")
	}
}

func TestWebhookSend_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL, "")
	if err := n.Send("scan report"); err == nil {
		t.Error("expected error for a 500 response")
	}
}

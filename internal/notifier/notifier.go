// Package notifier delivers scan and exit reports over email and
// webhooks.
package notifier

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
)

// Notifier sends a plain-text message to one channel.
type Notifier interface {
	Send(text string) error
	Name() string
}

// SendWithRetry sends a message with exponential backoff retry.
func SendWithRetry(ctx context.Context, n Notifier, text string, maxRetries int) error {
	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		if err := n.Send(text); err != nil {
			lastErr = err
			backoff := time.Duration(1<<uint(i)) * time.Second
			log.Printf("[WARN] %s send failed (attempt %d/%d): %v, retrying in %v", n.Name(), i+1, maxRetries+1, err, backoff)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
				continue
			}
		}
		return nil
	}
	return fmt.Errorf("all %d retries exhausted: %w", maxRetries+1, lastErr)
}

// NoopNotifier drops every message. Used when no channel is configured.
type NoopNotifier struct{}

func (NoopNotifier) Send(text string) error { return nil }
func (NoopNotifier) Name() string           { return "noop" }

// MultiNotifier fans a message out to every channel and joins their
// errors, so one failing channel does not silence the others.
type MultiNotifier []Notifier

func (m MultiNotifier) Send(text string) error {
	var errs []error
	for _, n := range m {
		if err := n.Send(text); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", n.Name(), err))
		}
	}
	return errors.Join(errs...)
}

func (m MultiNotifier) Name() string {
	names := make([]string, len(m))
	for i, n := range m {
		names[i] = n.Name()
	}
	return strings.Join(names, "+")
}

package tracker

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"SwingSentinel/internal/model"
)

// Book manages the JSON position book with concurrency safety. Positions
// loaded without their own exit policy inherit the book's default.
type Book struct {
	mu            sync.Mutex
	state         *State
	filePath      string
	defaultPolicy model.ExitPolicy
}

// NewBook creates a Book, loading existing positions from disk. Entries
// that fail validation are dropped with a warning rather than poisoning
// the book.
func NewBook(filePath string, defaultPolicy model.ExitPolicy) (*Book, error) {
	if err := defaultPolicy.Validate(); err != nil {
		return nil, fmt.Errorf("default exit policy: %w", err)
	}
	state, err := LoadState(filePath)
	if err != nil {
		return nil, fmt.Errorf("load position book: %w", err)
	}

	kept := state.Positions[:0]
	for _, p := range state.Positions {
		policy := p.Policy
		if policy.IsZero() {
			policy = defaultPolicy
		}
		pos, err := model.NewPosition(p.Ticker, p.EntryPrice, p.EntryDate, policy)
		if err != nil {
			log.Printf("[WARN] dropping invalid position %q: %v", p.Ticker, err)
			continue
		}
		kept = append(kept, pos)
	}
	state.Positions = kept

	return &Book{state: state, filePath: filePath, defaultPolicy: defaultPolicy}, nil
}

// Positions returns a copy of the open positions.
func (b *Book) Positions() []model.Position {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]model.Position, len(b.state.Positions))
	copy(out, b.state.Positions)
	return out
}

// Add opens a position with the book's default policy, replacing any
// existing position for the same ticker.
func (b *Book) Add(ticker string, entryPrice float64, entryDate time.Time) (model.Position, error) {
	pos, err := model.NewPosition(ticker, entryPrice, entryDate, b.defaultPolicy)
	if err != nil {
		return model.Position{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	replaced := false
	for i, p := range b.state.Positions {
		if p.Ticker == pos.Ticker {
			b.state.Positions[i] = pos
			replaced = true
			break
		}
	}
	if !replaced {
		b.state.Positions = append(b.state.Positions, pos)
	}
	if err := b.save(); err != nil {
		return model.Position{}, fmt.Errorf("save position book: %w", err)
	}
	return pos, nil
}

// Remove closes a position. It reports whether the ticker was present.
func (b *Book) Remove(ticker string) (bool, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))

	b.mu.Lock()
	defer b.mu.Unlock()
	for i, p := range b.state.Positions {
		if p.Ticker == ticker {
			b.state.Positions = append(b.state.Positions[:i], b.state.Positions[i+1:]...)
			if err := b.save(); err != nil {
				return true, fmt.Errorf("save position book: %w", err)
			}
			return true, nil
		}
	}
	return false, nil
}

func (b *Book) save() error {
	return SaveState(b.filePath, b.state)
}

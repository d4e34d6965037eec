package provider

import (
	"fmt"
	"log"
	"sync"
	"time"

	"SwingSentinel/internal/model"
)

// Prefetcher decorates a BarProvider with a warmable cache so a sequential
// scan over hundreds of tickers never pays for the same series twice.
// Failed fetches are cached too; the scan sees the same error the warm-up
// saw instead of retrying mid-pass.
type Prefetcher struct {
	inner   BarProvider
	workers int

	mu    sync.Mutex
	cache map[string]fetchResult
}

type fetchResult struct {
	bars model.BarSeries
	err  error
}

// NewPrefetcher wraps inner with a cache filled by up to workers
// concurrent fetches.
func NewPrefetcher(inner BarProvider, workers int) *Prefetcher {
	if workers <= 0 {
		workers = 4
	}
	return &Prefetcher{
		inner:   inner,
		workers: workers,
		cache:   make(map[string]fetchResult),
	}
}

func (p *Prefetcher) Name() string { return p.inner.Name() }

func cacheKey(symbol string, days int) string {
	return fmt.Sprintf("%s:%d", symbol, days)
}

// Warm fetches the given symbols concurrently and caches the results.
// Symbols already cached for the same window are skipped.
func (p *Prefetcher) Warm(symbols []string, days int) {
	pending := make([]string, 0, len(symbols))
	p.mu.Lock()
	for _, s := range symbols {
		if _, ok := p.cache[cacheKey(s, days)]; !ok {
			pending = append(pending, s)
		}
	}
	p.mu.Unlock()
	if len(pending) == 0 {
		return
	}

	start := time.Now()
	jobs := make(chan string)
	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sym := range jobs {
				bars, err := p.inner.FetchDailyBars(sym, days)
				p.mu.Lock()
				p.cache[cacheKey(sym, days)] = fetchResult{bars: bars, err: err}
				p.mu.Unlock()
			}
		}()
	}
	for _, s := range pending {
		jobs <- s
	}
	close(jobs)
	wg.Wait()

	log.Printf("[INFO] prefetched %d symbols with %d workers in %v",
		len(pending), p.workers, time.Since(start).Round(time.Millisecond))
}

// FetchDailyBars serves from the cache when possible and falls through to
// the inner provider otherwise.
func (p *Prefetcher) FetchDailyBars(symbol string, days int) (model.BarSeries, error) {
	p.mu.Lock()
	res, ok := p.cache[cacheKey(symbol, days)]
	p.mu.Unlock()
	if ok {
		return res.bars, res.err
	}
	return p.inner.FetchDailyBars(symbol, days)
}

func (p *Prefetcher) FetchLatestClose(symbol string) (float64, time.Time, error) {
	return p.inner.FetchLatestClose(symbol)
}

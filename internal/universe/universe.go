// Package universe supplies the ticker lists a scan sweeps over.
package universe

import "log"

// Provider lists the symbols to scan.
type Provider interface {
	List() ([]string, error)
	Name() string
}

// Dedupe drops repeated symbols, keeping the first occurrence so index
// ordering survives when lists overlap.
func Dedupe(symbols []string) []string {
	seen := make(map[string]struct{}, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// Fallback tries a primary provider and falls back to a second one when
// the primary errors or comes back empty. A scheduled scan should degrade
// to the configured static list, not abort, when a scrape breaks.
type Fallback struct {
	Primary  Provider
	Fallback Provider
}

func (f *Fallback) Name() string { return f.Primary.Name() }

func (f *Fallback) List() ([]string, error) {
	symbols, err := f.Primary.List()
	if err == nil && len(symbols) > 0 {
		return symbols, nil
	}
	if err != nil {
		log.Printf("[WARN] universe %s failed: %v, falling back to %s",
			f.Primary.Name(), err, f.Fallback.Name())
	} else {
		log.Printf("[WARN] universe %s returned no symbols, falling back to %s",
			f.Primary.Name(), f.Fallback.Name())
	}
	return f.Fallback.List()
}

package universe

import (
	"fmt"
	"os"
	"strings"
)

// Static serves a fixed symbol list from configuration.
type Static struct {
	Symbols []string
}

func (p *Static) Name() string { return "static" }

func (p *Static) List() ([]string, error) {
	if len(p.Symbols) == 0 {
		return nil, fmt.Errorf("static universe is empty")
	}
	out := make([]string, 0, len(p.Symbols))
	for _, s := range p.Symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return Dedupe(out), nil
}

// File reads one symbol per line from a plain text file. Blank lines and
// lines starting with # are ignored.
type File struct {
	Path string
}

func (p *File) Name() string { return "file" }

func (p *File) List() ([]string, error) {
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, fmt.Errorf("read universe file: %w", err)
	}
	var symbols []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		symbols = append(symbols, strings.ToUpper(line))
	}
	if len(symbols) == 0 {
		return nil, fmt.Errorf("universe file %s has no symbols", p.Path)
	}
	return Dedupe(symbols), nil
}

package universe

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Index list slugs on stockanalysis.com.
const (
	SP500Slug     = "sp-500-stocks"
	Nasdaq100Slug = "nasdaq-100-stocks"
)

// StockAnalysis scrapes index constituent tables from stockanalysis.com.
// Symbols come back in page order, deduplicated across lists, with share
// classes normalized to dash notation (BRK.B becomes BRK-B).
type StockAnalysis struct {
	Client *http.Client
	Slugs  []string
}

// NewStockAnalysis builds a scraper for the given list slugs, defaulting
// to the S&P 500 when none are given.
func NewStockAnalysis(slugs []string, proxyURL string) *StockAnalysis {
	if len(slugs) == 0 {
		slugs = []string{SP500Slug}
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &StockAnalysis{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		Slugs: slugs,
	}
}

func (p *StockAnalysis) Name() string { return "stockanalysis" }

func (p *StockAnalysis) List() ([]string, error) {
	var combined []string
	for _, slug := range p.Slugs {
		symbols, err := p.fetchList(slug)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", slug, err)
		}
		combined = append(combined, symbols...)
	}
	return Dedupe(combined), nil
}

func (p *StockAnalysis) fetchList(slug string) ([]string, error) {
	u := fmt.Sprintf("https://stockanalysis.com/list/%s/", slug)
	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	symbols := parseSymbols(doc)
	if len(symbols) == 0 {
		return nil, fmt.Errorf("no symbols found in %s table", slug)
	}
	return symbols, nil
}

// parseSymbols pulls the second column out of the constituents table.
// Header rows carry th cells, so they fall out of the td selection.
func parseSymbols(doc *goquery.Document) []string {
	var symbols []string
	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		symbol := strings.TrimSpace(cells.Eq(1).Text())
		if symbol == "" {
			return
		}
		symbols = append(symbols, strings.ReplaceAll(symbol, ".", "-"))
	})
	return symbols
}

package provider

import (
	"context"
	"fmt"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"

	"SwingSentinel/internal/model"
)

// PolygonProvider implements BarProvider using split-adjusted daily
// aggregates from the Polygon REST API.
type PolygonProvider struct {
	client *polygon.Client
}

// NewPolygonProvider creates a Polygon-backed provider.
func NewPolygonProvider(apiKey string) *PolygonProvider {
	return &PolygonProvider{client: polygon.New(apiKey)}
}

func (p *PolygonProvider) Name() string { return "polygon" }

func (p *PolygonProvider) FetchDailyBars(symbol string, days int) (model.BarSeries, error) {
	to := time.Now().UTC()
	// trading days to calendar days, with slack for holidays
	from := to.AddDate(0, 0, -(days*7/5 + 10))

	params := models.ListAggsParams{
		Ticker:     symbol,
		Multiplier: 1,
		Timespan:   models.Timespan("day"),
		From:       models.Millis(from),
		To:         models.Millis(to),
	}.
		WithAdjusted(true).
		WithOrder(models.Order("asc")).
		WithLimit(50000)

	it := p.client.ListAggs(context.Background(), params)
	bars := make(model.BarSeries, 0, days)
	for it.Next() {
		agg := it.Item()
		bars = append(bars, model.Bar{
			Date:   model.Day(time.Time(agg.Timestamp)),
			Open:   agg.Open,
			High:   agg.High,
			Low:    agg.Low,
			Close:  agg.Close,
			Volume: agg.Volume,
		})
	}
	if err := it.Err(); err != nil {
		return nil, fmt.Errorf("polygon aggs %s: %w", symbol, err)
	}

	bars = bars.Normalize()
	if len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return bars, nil
}

func (p *PolygonProvider) FetchLatestClose(symbol string) (float64, time.Time, error) {
	bars, err := p.FetchDailyBars(symbol, 5)
	if err != nil {
		return 0, time.Time{}, err
	}
	last, ok := bars.Last()
	if !ok {
		return 0, time.Time{}, fmt.Errorf("polygon: no price data for %s", symbol)
	}
	return last.Close, last.Date, nil
}

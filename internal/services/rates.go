package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/gw-p2p-payments/internal/exchange"
	"github.com/sbilibin2017/gw-p2p-payments/internal/logger"
	"github.com/sbilibin2017/gw-p2p-payments/internal/models"
)

//go:generate mockgen -source=rates.go -destination=mock_rates_test.go -package=services

// ReferenceRateReader fetches units of each currency per one base unit.
type ReferenceRateReader interface {
	GetReferenceRates(ctx context.Context) (map[models.Currency]decimal.Decimal, error)
}

// ReferenceRateCache caches reference rates.
type ReferenceRateCache interface {
	GetReferenceRates(ctx context.Context) (map[models.Currency]decimal.Decimal, error)
	SetReferenceRates(ctx context.Context, rates map[models.Currency]decimal.Decimal) error
}

// RateLoader builds the rate table used by every conversion of the process.
type RateLoader struct {
	cache  ReferenceRateCache
	reader ReferenceRateReader
}

// NewRateLoader creates a RateLoader. Both sources are optional.
func NewRateLoader(cache ReferenceRateCache, reader ReferenceRateReader) *RateLoader {
	return &RateLoader{cache: cache, reader: reader}
}

// Load returns a rate table from the first usable source: the cache, the
// remote reader, then the built-in defaults. Rates read remotely are cached.
func (l *RateLoader) Load(ctx context.Context) (*exchange.RateTable, error) {
	if l.cache != nil {
		rates, err := l.cache.GetReferenceRates(ctx)
		if err == nil {
			table, err := exchange.NewRateTableFromReference(rates)
			if err == nil {
				logger.Log.Infow("exchange rates loaded", "source", "cache", "rates", rates)
				return table, nil
			}
			logger.Log.Warnw("cached exchange rates unusable", "error", err)
		} else {
			logger.Log.Infow("exchange rates not cached", "error", err)
		}
	}

	if l.reader != nil {
		rates, err := l.reader.GetReferenceRates(ctx)
		if err == nil {
			table, err := exchange.NewRateTableFromReference(rates)
			if err == nil {
				if l.cache != nil {
					if err := l.cache.SetReferenceRates(ctx, rates); err != nil {
						logger.Log.Errorw("failed to cache exchange rates", "error", err)
					}
				}
				logger.Log.Infow("exchange rates loaded", "source", "exchanger", "rates", rates)
				return table, nil
			}
			logger.Log.Warnw("exchanger rates unusable", "error", err)
		} else {
			logger.Log.Warnw("failed to fetch exchange rates", "error", err)
		}
	}

	rates := exchange.DefaultReferenceRates()
	logger.Log.Infow("exchange rates loaded", "source", "defaults", "rates", rates)
	return exchange.NewRateTableFromReference(rates)
}

package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/gw-p2p-payments/internal/logger"
	"github.com/sbilibin2017/gw-p2p-payments/internal/models"
)

const exchangeRatesKey = "exchange_rates"

// ErrCacheMiss is returned when nothing usable is cached.
var ErrCacheMiss = errors.New("cache miss")

// ExchangeRateCacheRepository caches reference exchange rates in a Redis hash.
type ExchangeRateCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration of the whole rate set
}

// NewExchangeRateCacheRepository creates a new repository instance with the given TTL
func NewExchangeRateCacheRepository(client *redis.Client, expiration time.Duration) *ExchangeRateCacheRepository {
	return &ExchangeRateCacheRepository{
		client: client,
		exp:    expiration,
	}
}

// GetReferenceRates returns the cached units-per-base rate of every currency.
func (r *ExchangeRateCacheRepository) GetReferenceRates(ctx context.Context) (map[models.Currency]decimal.Decimal, error) {
	vals, err := r.client.HGetAll(ctx, exchangeRatesKey).Result()
	logger.Log.Infow("cache get",
		"key", exchangeRatesKey,
		"result", vals,
		"error", err,
	)
	if err != nil {
		return nil, err
	}
	if len(vals) == 0 {
		return nil, ErrCacheMiss
	}

	rates := make(map[models.Currency]decimal.Decimal, len(vals))
	for currency, val := range vals {
		rate, err := decimal.NewFromString(val)
		if err != nil {
			logger.Log.Warnw("invalid cached exchange rate", "currency", currency, "value", val, "error", err)
			return nil, ErrCacheMiss
		}
		rates[models.Currency(currency)] = rate
	}
	return rates, nil
}

// SetReferenceRates replaces the cached rates and resets their expiration.
func (r *ExchangeRateCacheRepository) SetReferenceRates(ctx context.Context, rates map[models.Currency]decimal.Decimal) error {
	fields := make(map[string]any, len(rates))
	for currency, rate := range rates {
		fields[string(currency)] = rate.String()
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, exchangeRatesKey)
		pipe.HSet(ctx, exchangeRatesKey, fields)
		pipe.Expire(ctx, exchangeRatesKey, r.exp)
		return nil
	})

	logger.Log.Infow("cache set",
		"key", exchangeRatesKey,
		"rates", fields,
		"error", err,
	)
	return err
}

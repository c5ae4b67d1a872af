package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/sbilibin2017/gw-p2p-payments/internal/logger"
)

// HintRepository keeps, per account, the id of the last request that could
// not be accepted for lack of funds. Hints expire on their own.
type HintRepository struct {
	client *redis.Client
	exp    time.Duration
}

func NewHintRepository(client *redis.Client, expiration time.Duration) *HintRepository {
	return &HintRepository{client: client, exp: expiration}
}

func hintKey(accountID uuid.UUID) string {
	return fmt.Sprintf("insufficient_balance:%s", accountID)
}

// SetInsufficientBalance records requestID as the hint for accountID.
func (r *HintRepository) SetInsufficientBalance(ctx context.Context, accountID, requestID uuid.UUID) error {
	key := hintKey(accountID)
	err := r.client.Set(ctx, key, requestID.String(), r.exp).Err()

	logger.Log.Infow("cache set",
		"key", key,
		"value", requestID,
		"error", err,
	)
	return err
}

// PopInsufficientBalance returns and removes the hint for accountID.
// It returns nil when there is none.
func (r *HintRepository) PopInsufficientBalance(ctx context.Context, accountID uuid.UUID) (*uuid.UUID, error) {
	key := hintKey(accountID)
	val, err := r.client.GetDel(ctx, key).Result()

	logger.Log.Infow("cache getdel",
		"key", key,
		"result", val,
		"error", err,
	)

	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	requestID, err := uuid.Parse(val)
	if err != nil {
		return nil, fmt.Errorf("invalid hint %q: %w", val, err)
	}
	return &requestID, nil
}

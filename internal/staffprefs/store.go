package staffprefs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/moonjaehyun/shiftroster-backend/pkg/redis"
)

// OrderStore persists the per-store staff display order.
type OrderStore interface {
	GetOrder(ctx context.Context, storeID string) ([]string, error)
	SetOrder(ctx context.Context, storeID string, names []string) error
}

type redisOrderStore struct {
	client *redis.Client
}

// NewOrderStore builds a Redis-backed order store.
func NewOrderStore(client *redis.Client) (OrderStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return &redisOrderStore{client: client}, nil
}

// GetOrder returns the saved order, or nil when no preference exists.
func (s *redisOrderStore) GetOrder(ctx context.Context, storeID string) ([]string, error) {
	raw, err := s.client.Get(ctx, s.client.StaffOrderKey(storeID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading staff order: %w", err)
	}

	var names []string
	if err := json.Unmarshal([]byte(raw), &names); err != nil {
		// A corrupt preference is not worth failing the roster view over.
		return nil, nil
	}
	return names, nil
}

func (s *redisOrderStore) SetOrder(ctx context.Context, storeID string, names []string) error {
	payload, err := json.Marshal(names)
	if err != nil {
		return fmt.Errorf("encoding staff order: %w", err)
	}
	if err := s.client.Set(ctx, s.client.StaffOrderKey(storeID), payload, 0); err != nil {
		return fmt.Errorf("writing staff order: %w", err)
	}
	return nil
}

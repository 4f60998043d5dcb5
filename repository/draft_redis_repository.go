package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"tienda-admin/orderbuilder"
)

const draftKeyPrefix = "draft:"

// RedisDraftRepository keeps order drafts as JSON values with a TTL
type RedisDraftRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisDraftRepository creates a RedisDraftRepository and checks the connection
func NewRedisDraftRepository(ctx context.Context, rdb *redis.Client, ttl time.Duration) (*RedisDraftRepository, error) {
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return &RedisDraftRepository{rdb: rdb, ttl: ttl}, nil
}

// Ensure RedisDraftRepository implements DraftRepositoryInterface
var _ DraftRepositoryInterface = (*RedisDraftRepository)(nil)

// Save writes the draft and refreshes its TTL
func (r *RedisDraftRepository) Save(ctx context.Context, draft orderbuilder.Draft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}
	if err := r.rdb.Set(ctx, draftKeyPrefix+draft.ID, data, r.ttl).Err(); err != nil {
		zap.L().Error("❌ SaveDraft: redis set failed", zap.String("draftId", draft.ID), zap.Error(err))
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

func (r *RedisDraftRepository) Get(ctx context.Context, id string) (orderbuilder.Draft, error) {
	data, err := r.rdb.Get(ctx, draftKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return orderbuilder.Draft{}, fmt.Errorf("draft %s: %w", id, ErrNotFound)
		}
		return orderbuilder.Draft{}, fmt.Errorf("failed to get draft: %w", err)
	}

	var draft orderbuilder.Draft
	if err := json.Unmarshal(data, &draft); err != nil {
		return orderbuilder.Draft{}, fmt.Errorf("failed to decode draft: %w", err)
	}
	return draft, nil
}

func (r *RedisDraftRepository) Delete(ctx context.Context, id string) error {
	if err := r.rdb.Del(ctx, draftKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}

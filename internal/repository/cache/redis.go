package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/phalkmin/WP-AutoInsight/internal/models"
	"github.com/phalkmin/WP-AutoInsight/internal/service/generation/catalog"
)

const (
	// Cache key prefixes
	KeyPrefixPost       = "post:"
	KeyAvailableModels  = "available_models"
	KeyPrefixRecentRuns = "recent_runs"

	// Default TTL for cached items
	DefaultTTL = 1 * time.Hour
)

// Repository represents a Redis cache repository
type Repository struct {
	client *redis.Client
	ctx    context.Context
}

// NewRepository creates a new Redis cache repository
func NewRepository(client *redis.Client) *Repository {
	return &Repository{
		client: client,
		ctx:    context.Background(),
	}
}

// CacheAvailableModels stores the credential-filtered model catalog
func (r *Repository) CacheAvailableModels(descriptors []catalog.ModelDescriptor) error {
	if r.client == nil {
		return nil // Skip if Redis is not available
	}

	data, err := json.Marshal(descriptors)
	if err != nil {
		return fmt.Errorf("failed to marshal model catalog: %w", err)
	}

	return r.client.Set(r.ctx, KeyAvailableModels, data, DefaultTTL).Err()
}

// GetAvailableModels retrieves the cached model catalog
func (r *Repository) GetAvailableModels() ([]catalog.ModelDescriptor, error) {
	if r.client == nil {
		return nil, fmt.Errorf("redis client not available")
	}

	data, err := r.client.Get(r.ctx, KeyAvailableModels).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss, not an error
		}
		return nil, err
	}

	var descriptors []catalog.ModelDescriptor
	if err := json.Unmarshal(data, &descriptors); err != nil {
		return nil, fmt.Errorf("failed to unmarshal model catalog: %w", err)
	}

	return descriptors, nil
}

// InvalidateAvailableModels removes the cached model catalog. Called when
// credentials or the custom endpoint change.
func (r *Repository) InvalidateAvailableModels() error {
	if r.client == nil {
		return nil
	}
	return r.client.Del(r.ctx, KeyAvailableModels).Err()
}

// CachePost stores a post in the cache
func (r *Repository) CachePost(post *models.Post) error {
	if r.client == nil {
		return nil
	}

	data, err := json.Marshal(post)
	if err != nil {
		return fmt.Errorf("failed to marshal post: %w", err)
	}

	key := KeyPrefixPost + post.ID.String()
	return r.client.Set(r.ctx, key, data, DefaultTTL).Err()
}

// GetPost retrieves a post from the cache
func (r *Repository) GetPost(id uuid.UUID) (*models.Post, error) {
	if r.client == nil {
		return nil, fmt.Errorf("redis client not available")
	}

	key := KeyPrefixPost + id.String()
	data, err := r.client.Get(r.ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss, not an error
		}
		return nil, err
	}

	var post models.Post
	if err := json.Unmarshal(data, &post); err != nil {
		return nil, fmt.Errorf("failed to unmarshal post: %w", err)
	}

	return &post, nil
}

// InvalidatePost removes a post from the cache
func (r *Repository) InvalidatePost(id uuid.UUID) error {
	if r.client == nil {
		return nil
	}

	key := KeyPrefixPost + id.String()
	return r.client.Del(r.ctx, key).Err()
}

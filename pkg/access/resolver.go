package access

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"horeca-board/pkg/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Resolver maps an authenticated subject to its current identity.
type Resolver interface {
	Resolve(ctx context.Context, userID string) (*Identity, error)
}

// ProfileResolver reads the role from the profiles table, with a short redis cache in front.
type ProfileResolver struct {
	db          *gorm.DB
	redisClient *redis.Client
	ttl         time.Duration
}

func NewProfileResolver(db *gorm.DB, redisClient *redis.Client, ttl time.Duration) *ProfileResolver {
	return &ProfileResolver{db: db, redisClient: redisClient, ttl: ttl}
}

func profileCacheKey(userID string) string {
	return fmt.Sprintf("identity:%s", userID)
}

func (r *ProfileResolver) Resolve(ctx context.Context, userID string) (*Identity, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	if r.redisClient != nil && r.ttl > 0 {
		if cached, err := r.redisClient.Get(ctx, profileCacheKey(userID)).Result(); err == nil {
			var id Identity
			if json.Unmarshal([]byte(cached), &id) == nil {
				return &id, nil
			}
		}
	}

	var profile models.Profile
	err := r.db.WithContext(ctx).Where("id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	id := &Identity{
		UserID: profile.ID,
		Email:  profile.Email,
		Name:   profile.Name,
		Role:   Role(profile.Role),
	}

	if r.redisClient != nil && r.ttl > 0 {
		if data, err := json.Marshal(id); err == nil {
			r.redisClient.Set(ctx, profileCacheKey(userID), data, r.ttl)
		}
	}

	return id, nil
}

// Forget drops the cached identity so the next request sees a role change immediately.
func (r *ProfileResolver) Forget(ctx context.Context, userID string) {
	if r.redisClient != nil {
		r.redisClient.Del(ctx, profileCacheKey(userID))
	}
}

// StaticResolver serves identities from a map. Useful for tests and local tooling.
type StaticResolver map[string]*Identity

func (s StaticResolver) Resolve(_ context.Context, userID string) (*Identity, error) {
	if id, ok := s[userID]; ok {
		return id, nil
	}
	return nil, ErrProfileNotFound
}

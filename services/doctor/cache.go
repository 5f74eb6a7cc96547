package doctor

import (
	"context"
	"time"

	"clinicbook/models"
	"clinicbook/utils"

	"github.com/go-redis/redis/v8"
)

const doctorListKey = "doctors:list"

// ListCache caches the public doctor list. A nil *ListCache or nil Redis client disables it.
type ListCache struct {
	cache *utils.JSONCache
}

func NewListCache(client *redis.Client, ttl time.Duration) *ListCache {
	return &ListCache{cache: utils.NewJSONCache(client, ttl)}
}

func (c *ListCache) get(ctx context.Context) ([]models.Doctor, bool) {
	if c == nil {
		return nil, false
	}
	var doctors []models.Doctor
	if !c.cache.Get(ctx, doctorListKey, &doctors) {
		return nil, false
	}
	return doctors, true
}

func (c *ListCache) set(ctx context.Context, doctors []models.Doctor) {
	if c == nil {
		return
	}
	c.cache.Set(ctx, doctorListKey, doctors)
}

// InvalidateList drops the cached list after any doctor or ledger change.
func (c *ListCache) InvalidateList(ctx context.Context) {
	if c == nil {
		return
	}
	c.cache.Invalidate(ctx, doctorListKey)
}

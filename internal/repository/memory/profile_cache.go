package memory

import (
	"time"

	"ai-advisor-be/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// ProfileCache keeps recently fetched profiles in memory so that each chat
// turn does not hit the database for a snapshot that rarely changes.
type ProfileCache struct {
	cache *cache.Cache
}

func NewProfileCache() *ProfileCache {
	// Profiles expire after 10 minutes; expired entries are purged every
	// 5 minutes.
	c := cache.New(10*time.Minute, 5*time.Minute)
	return &ProfileCache{
		cache: c,
	}
}

func (r *ProfileCache) Save(profile *entity.Profile) {
	r.cache.Set(profile.UserId.String(), profile, cache.DefaultExpiration)
}

func (r *ProfileCache) Get(userId uuid.UUID) (*entity.Profile, bool) {
	if x, found := r.cache.Get(userId.String()); found {
		return x.(*entity.Profile), true
	}
	return nil, false
}

func (r *ProfileCache) Invalidate(userId uuid.UUID) {
	r.cache.Delete(userId.String())
}

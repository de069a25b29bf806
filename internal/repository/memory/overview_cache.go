package memory

import (
	"sync"
	"time"

	"notepad-be/internal/dto"

	"github.com/patrickmn/go-cache"
)

const overviewKey = "folders:overview"

// OverviewCache holds the last computed folder overview. Every mutation bumps
// the generation so a snapshot computed before the change is never stored.
type OverviewCache struct {
	mu         sync.Mutex
	cache      *cache.Cache
	generation uint64
	enabled    bool
}

// NewOverviewCache returns a cache whose entries live for ttl. A zero ttl
// disables caching entirely.
func NewOverviewCache(ttl time.Duration) *OverviewCache {
	cleanup := 2 * ttl
	if cleanup <= 0 {
		cleanup = time.Minute
	}
	return &OverviewCache{
		cache:   cache.New(ttl, cleanup),
		enabled: ttl > 0,
	}
}

func (c *OverviewCache) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

func (c *OverviewCache) Get() (*dto.FoldersOverviewResponse, bool) {
	if !c.enabled {
		return nil, false
	}
	if x, found := c.cache.Get(overviewKey); found {
		return x.(*dto.FoldersOverviewResponse), true
	}
	return nil, false
}

// SaveIfCurrent stores the snapshot only when no invalidation happened since
// gen was read.
func (c *OverviewCache) SaveIfCurrent(gen uint64, overview *dto.FoldersOverviewResponse) bool {
	if !c.enabled {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return false
	}
	c.cache.Set(overviewKey, overview, cache.DefaultExpiration)
	return true
}

func (c *OverviewCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.cache.Delete(overviewKey)
}

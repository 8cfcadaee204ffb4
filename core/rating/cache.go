package rating

import "sync"

// Cache holds the in-memory external score per entity key for one app
// session. It is an explicit dependency, constructed and torn down by the
// caller; there is no package-level instance.
//
// Each fetch completion writes only its own key (last write wins), so a
// plain RWMutex around the map is all the discipline needed.
type Cache struct {
	mu     sync.RWMutex
	scores map[string]Score
}

func NewCache() *Cache {
	return &Cache{scores: make(map[string]Score)}
}

// Key builds the cache key for an entity.
func Key(entityType, entityID string) string {
	return entityType + ":" + entityID
}

// Get returns the cached score for key; a zero Score (StatusNone) when the
// entity was never fetched.
func (c *Cache) Get(key string) Score {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.scores[key]
}

func (c *Cache) set(key string, s Score) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scores[key] = s
}

// Reset drops every cached score, returning all entities to StatusNone.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scores = make(map[string]Score)
}

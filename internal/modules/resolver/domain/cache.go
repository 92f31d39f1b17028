package domain

import "time"

// TTL is the channel cache freshness window: a full refresh is good
// for 24 hours.
const TTL = 24 * time.Hour

// Cache is the persisted channel name → ID mapping. LastUpdated is nil
// until the first full refresh; incremental single-name additions do
// not touch it, so a partial add never extends overall validity.
type Cache struct {
	Channels    map[string]string `json:"channels"`
	LastUpdated *time.Time        `json:"last_updated"`
}

// Empty returns the never-valid default cache.
func Empty() *Cache {
	return &Cache{Channels: map[string]string{}}
}

// Valid reports whether the cache as a whole is inside the freshness
// window at now.
func (c *Cache) Valid(now time.Time) bool {
	if c.LastUpdated == nil {
		return false
	}
	return now.Sub(*c.LastUpdated) < TTL
}

// Plan decides which resolution path a lookup takes. It is a pure
// function of the cache document, the requested name and the clock, so
// the branching is testable without any network access.
func Plan(c *Cache, name string, now time.Time) CacheState {
	if !c.Valid(now) {
		return CacheStateExpired
	}
	if _, ok := c.Channels[name]; ok {
		return CacheStateFresh
	}
	return CacheStateStaleMiss
}

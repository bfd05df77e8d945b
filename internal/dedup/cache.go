// Package dedup guards against Slack's at-least-once event delivery with an
// in-memory TTL cache keyed by event identity.
package dedup

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Cache records event keys that are in flight or recently completed. A key
// stays claimed for the TTL window; redeliveries inside the window are
// rejected. All access goes through one mutex — the single-writer
// discipline that keeps check-and-claim atomic.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	sweep   time.Duration
	entries map[string]time.Time // key → claim deadline
	now     func() time.Time
}

// New creates a Cache with the given claim TTL and sweep interval.
func New(ttl, sweep time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		sweep:   sweep,
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Acquire claims key for processing. It returns false when the key is
// already claimed and not yet expired — the caller must drop the event.
func (c *Cache) Acquire(key string) bool {
	if key == "" {
		return true
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if deadline, ok := c.entries[key]; ok && now.Before(deadline) {
		return false
	}
	c.entries[key] = now.Add(c.ttl)
	return true
}

// Sweep evicts expired claims. Called periodically; Acquire stays correct
// without it, Sweep only bounds memory.
func (c *Cache) Sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, deadline := range c.entries {
		if !now.Before(deadline) {
			delete(c.entries, key)
			removed++
		}
	}
	if removed > 0 {
		slog.Debug("dedup sweep", "evicted", removed, "remaining", len(c.entries))
	}
}

// Len reports the number of live claims.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Run schedules periodic sweeps until ctx is cancelled.
func (c *Cache) Run(ctx context.Context) error {
	sched := cron.New()
	if _, err := sched.AddFunc("@every "+c.sweep.String(), c.Sweep); err != nil {
		return err
	}
	sched.Start()

	<-ctx.Done()
	<-sched.Stop().Done()
	return ctx.Err()
}

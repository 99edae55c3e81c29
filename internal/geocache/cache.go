// Package geocache caches CSG evaluation results keyed by a fingerprint
// of the feature geometry that produced them, avoiding redundant
// subtraction work for repeated or symmetric features (§4.K).
package geocache

import (
	"container/list"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"math"
	"sync"
	"time"

	"github.com/piwi3910/dstvcut/internal/csg"
)

// EvictionPolicy selects which entry is dropped when the cache is full.
type EvictionPolicy string

const (
	LRU  EvictionPolicy = "lru"
	LFU  EvictionPolicy = "lfu"
	FIFO EvictionPolicy = "fifo"
)

// Config tunes cache capacity and eviction behaviour (§4.K).
type Config struct {
	MaxSizeBytes   int64
	MaxEntries     int
	TTL            time.Duration // 0 disables expiry
	EvictionPolicy EvictionPolicy
}

// DefaultConfig matches the §4.K defaults: 100MiB, 1000 entries, 300s TTL,
// LRU eviction.
func DefaultConfig() Config {
	return Config{
		MaxSizeBytes:   100 * 1024 * 1024,
		MaxEntries:     1000,
		TTL:            300 * time.Second,
		EvictionPolicy: LRU,
	}
}

// Stats summarizes cache activity for monitoring (§4.K).
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Entries   int
	SizeBytes int64
}

// HitRate returns Hits/(Hits+Misses), or 0 when there have been no
// lookups yet.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// AvgEntryBytes returns SizeBytes/Entries, or 0 when empty.
func (s Stats) AvgEntryBytes() float64 {
	if s.Entries == 0 {
		return 0
	}
	return float64(s.SizeBytes) / float64(s.Entries)
}

type entry struct {
	key       string
	mesh      csg.Mesh
	size      int64
	hits      int64
	createdAt time.Time
	elem      *list.Element // position in the eviction list
}

// Cache stores cloned csg.Mesh results under a fingerprint key (§4.K).
// A Clone is taken on both Set and Get so stored entries and caller
// copies can never alias (§8 property 8).
type Cache struct {
	mu     sync.Mutex
	cfg    Config
	items  map[string]*entry
	order  *list.List // front = most-recently-used/most-recently-inserted
	stats  Stats
	stopCh chan struct{}
}

// New constructs a Cache and starts its 60s background cleanup loop
// (§4.K). Call Close to stop the loop.
func New(cfg Config) *Cache {
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = DefaultConfig().MaxEntries
	}
	if cfg.MaxSizeBytes <= 0 {
		cfg.MaxSizeBytes = DefaultConfig().MaxSizeBytes
	}
	if cfg.EvictionPolicy == "" {
		cfg.EvictionPolicy = DefaultConfig().EvictionPolicy
	}
	c := &Cache{
		cfg:    cfg,
		items:  make(map[string]*entry),
		order:  list.New(),
		stopCh: make(chan struct{}),
	}
	go c.cleanupLoop()
	return c
}

// Close stops the background cleanup goroutine.
func (c *Cache) Close() {
	close(c.stopCh)
}

func (c *Cache) cleanupLoop() {
	ticker := time.NewTicker(60 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.evictExpired()
		case <-c.stopCh:
			return
		}
	}
}

func (c *Cache) evictExpired() {
	if c.cfg.TTL <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.items {
		if now.Sub(e.createdAt) > c.cfg.TTL {
			c.removeLocked(k)
		}
	}
}

// Key is the data fingerprinted into a cache key: the feature kind, the
// cut-engine-detected kind, and whatever extra scalars/points matter for
// the operation (e.g. handler Solid parameters).
type Key struct {
	FeatureKind string
	Kind        string
	Scalars     map[string]float64
	Points      [][2]float64
	Extra       map[string]string
}

// GenerateKey canonicalizes a Key into a stable string: scalars rounded
// to 3 decimals, point lists to 2 decimals, then hashed with FNV-1a
// (§4.K generateKey). Rounding absorbs floating-point noise so
// geometrically-identical features collide.
func GenerateKey(k Key) string {
	canon := struct {
		FeatureKind string             `json:"featureKind"`
		Kind        string             `json:"kind"`
		Scalars     map[string]float64 `json:"scalars,omitempty"`
		Points      [][2]float64       `json:"points,omitempty"`
		Extra       map[string]string  `json:"extra,omitempty"`
	}{
		FeatureKind: k.FeatureKind,
		Kind:        k.Kind,
	}
	if len(k.Scalars) > 0 {
		canon.Scalars = make(map[string]float64, len(k.Scalars))
		for name, v := range k.Scalars {
			canon.Scalars[name] = roundTo(v, 3)
		}
	}
	for _, p := range k.Points {
		canon.Points = append(canon.Points, [2]float64{roundTo(p[0], 2), roundTo(p[1], 2)})
	}
	canon.Extra = k.Extra

	buf, _ := json.Marshal(canon)
	h := fnv.New64a()
	_, _ = h.Write(buf)
	return fmt.Sprintf("%x", h.Sum64())
}

func roundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}

func meshSize(m csg.Mesh) int64 {
	n := int64(len(m.Positions)+len(m.Normals)+len(m.UV)+len(m.Colors)) * 8
	n += int64(len(m.Indices)) * 4
	return n
}

// Get returns a clone of the cached mesh for key, if present and
// unexpired.
func (c *Cache) Get(key string) (csg.Mesh, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.items[key]
	if !ok {
		c.stats.Misses++
		return csg.Mesh{}, false
	}
	if c.cfg.TTL > 0 && time.Since(e.createdAt) > c.cfg.TTL {
		c.removeLocked(key)
		c.stats.Misses++
		return csg.Mesh{}, false
	}
	e.hits++
	if c.cfg.EvictionPolicy == LRU {
		c.order.MoveToFront(e.elem)
	}
	c.stats.Hits++
	return e.mesh.Clone(), true
}

// Set stores a clone of mesh under key, evicting as needed to respect
// MaxEntries and MaxSizeBytes. Entries larger than 10% of MaxSizeBytes
// are rejected outright (§4.K).
func (c *Cache) Set(key string, mesh csg.Mesh) bool {
	size := meshSize(mesh)
	if size > c.cfg.MaxSizeBytes/10 {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.items[key]; ok {
		c.removeLocked(key)
		_ = old
	}

	for len(c.items) >= c.cfg.MaxEntries || c.stats.SizeBytes+size > c.cfg.MaxSizeBytes {
		if !c.evictOneLocked() {
			break
		}
	}

	e := &entry{key: key, mesh: mesh.Clone(), size: size, createdAt: time.Now()}
	e.elem = c.order.PushFront(e)
	c.items[key] = e
	c.stats.SizeBytes += size
	return true
}

func (c *Cache) evictOneLocked() bool {
	if len(c.items) == 0 {
		return false
	}
	var victim *entry
	switch c.cfg.EvictionPolicy {
	case LFU:
		for _, e := range c.items {
			if victim == nil || e.hits < victim.hits {
				victim = e
			}
		}
	case FIFO:
		back := c.order.Back()
		if back != nil {
			victim = back.Value.(*entry)
		}
	default: // LRU
		back := c.order.Back()
		if back != nil {
			victim = back.Value.(*entry)
		}
	}
	if victim == nil {
		return false
	}
	c.removeLocked(victim.key)
	c.stats.Evictions++
	return true
}

// removeLocked deletes key's entry; caller must hold c.mu.
func (c *Cache) removeLocked(key string) {
	e, ok := c.items[key]
	if !ok {
		return
	}
	c.order.Remove(e.elem)
	delete(c.items, key)
	c.stats.SizeBytes -= e.size
}

// Evict removes a single key, reporting whether it was present.
func (c *Cache) Evict(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[key]
	if ok {
		c.removeLocked(key)
	}
	return ok
}

// Clear empties the cache without affecting cumulative hit/miss/eviction
// counters.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*entry)
	c.order = list.New()
	c.stats.SizeBytes = 0
}

// StatsSnapshot returns the cache's current statistics.
func (c *Cache) StatsSnapshot() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.stats
	s.Entries = len(c.items)
	return s
}

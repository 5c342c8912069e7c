package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"mealprint/internal/infrastructure/config"
	"mealprint/internal/pkg/common"

	"go.uber.org/zap"
)

// Manager is an in-memory TTL cache with LRU eviction. The engine uses it to
// memoize per-line match results during bulk runs.
type Manager struct {
	config *config.Config
	mu     sync.RWMutex
	store  map[string]cacheEntry
	stats  cacheStats
}

type cacheEntry struct {
	value       string
	expiresAt   time.Time
	createdAt   time.Time
	lastAccess  time.Time
	accessCount int
}

type cacheStats struct {
	hits      int64
	misses    int64
	evictions int64
	errors    int64
}

// NewManager creates the cache manager, or nil when caching is disabled.
func NewManager(cfg *config.Config) *Manager {
	if !cfg.Cache.Enabled {
		common.LogInfo("cache disabled")
		return nil
	}

	m := &Manager{
		config: cfg,
		store:  make(map[string]cacheEntry),
		stats:  cacheStats{},
	}

	go m.startCleanup()

	common.LogInfo("cache manager initialized",
		zap.Int("max_size", cfg.Cache.MaxSize),
		zap.Duration("ttl", cfg.Cache.TTL),
		zap.Duration("cleanup_interval", cfg.Cache.CleanupInterval),
	)

	return m
}

// Get returns a cached value. The boolean is false on miss or expiry.
func (m *Manager) Get(ctx context.Context, category, key string) (string, bool) {
	if m == nil {
		return "", false
	}

	cacheKey := m.generateKey(category, key)

	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.store[cacheKey]
	if !exists {
		m.stats.misses++
		return "", false
	}

	if time.Now().After(entry.expiresAt) {
		delete(m.store, cacheKey)
		m.stats.evictions++
		m.stats.misses++
		return "", false
	}

	entry.lastAccess = time.Now()
	entry.accessCount++
	m.store[cacheKey] = entry
	m.stats.hits++
	common.LogCacheHit(category, cacheKey)
	return entry.value, true
}

// Set stores a value under the category/key pair.
func (m *Manager) Set(ctx context.Context, category, key, value string) error {
	if m == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.store) >= m.config.Cache.MaxSize {
		evicted := m.cleanupLocked()
		common.LogDebug("cache cleanup executed", zap.Int("evicted", evicted))

		if len(m.store) >= m.config.Cache.MaxSize {
			m.evictLRULocked()
		}

		if len(m.store) >= m.config.Cache.MaxSize {
			m.stats.errors++
			common.LogWarn("cache full", zap.Int("size", len(m.store)))
			return common.ErrCacheFull
		}
	}

	now := time.Now()
	m.store[m.generateKey(category, key)] = cacheEntry{
		value:      value,
		expiresAt:  now.Add(m.config.Cache.TTL),
		createdAt:  now,
		lastAccess: now,
	}

	return nil
}

func (m *Manager) generateKey(category, key string) string {
	hash := sha256.Sum256([]byte(key))
	return fmt.Sprintf("%s:%s", category, hex.EncodeToString(hash[:]))
}

func (m *Manager) startCleanup() {
	ticker := time.NewTicker(m.config.Cache.CleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		m.mu.Lock()
		m.cleanupLocked()
		m.mu.Unlock()
	}
}

func (m *Manager) cleanupLocked() int {
	now := time.Now()
	count := 0

	for key, entry := range m.store {
		if now.After(entry.expiresAt) {
			delete(m.store, key)
			count++
			m.stats.evictions++
		}
	}

	return count
}

// evictLRULocked drops the least-used entry, oldest access breaking ties.
func (m *Manager) evictLRULocked() {
	var oldestKey string
	var oldestAccess time.Time
	var lowestAccessCount int

	for key, entry := range m.store {
		if oldestKey == "" ||
			entry.accessCount < lowestAccessCount ||
			(entry.accessCount == lowestAccessCount && entry.lastAccess.Before(oldestAccess)) {
			oldestKey = key
			oldestAccess = entry.lastAccess
			lowestAccessCount = entry.accessCount
		}
	}

	if oldestKey != "" {
		delete(m.store, oldestKey)
		m.stats.evictions++
	}
}

// Flush drops every entry. Used when the data the cached values were derived
// from is replaced, e.g. on a catalog reload.
func (m *Manager) Flush() {
	if m == nil {
		return
	}

	m.mu.Lock()
	flushed := len(m.store)
	m.store = make(map[string]cacheEntry)
	m.mu.Unlock()

	common.LogInfo("cache flushed", zap.Int("entries", flushed))
}

// GetStats returns cache statistics.
func (m *Manager) GetStats() map[string]interface{} {
	if m == nil {
		return map[string]interface{}{"enabled": false}
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	total := m.stats.hits + m.stats.misses
	hitRatio := 0.0
	if total > 0 {
		hitRatio = float64(m.stats.hits) / float64(total)
	}

	return map[string]interface{}{
		"size":      len(m.store),
		"max_size":  m.config.Cache.MaxSize,
		"hits":      m.stats.hits,
		"misses":    m.stats.misses,
		"evictions": m.stats.evictions,
		"errors":    m.stats.errors,
		"hit_ratio": hitRatio,
	}
}

// Close clears the cache.
func (m *Manager) Close() error {
	if m == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.store = make(map[string]cacheEntry)
	common.LogInfo("cache manager closed",
		zap.Int64("hits", m.stats.hits),
		zap.Int64("misses", m.stats.misses),
		zap.Int64("evictions", m.stats.evictions),
	)
	return nil
}

// Package assets loads model and map files from disk or GRF archives.
package assets

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/Faultbox/grf-graphics/pkg/encoding"
	"github.com/Faultbox/grf-graphics/pkg/formats"
	"github.com/Faultbox/grf-graphics/pkg/grf"
)

// Manager reads files from GRF archives, optionally falling back to disk
// first. Archives are searched in reverse order (last added = highest
// priority). Results are cached by normalized path.
type Manager struct {
	archives   []*grf.Archive
	cache      *Cache
	preferDisk bool
	mu         sync.RWMutex
}

// NewManager creates a new asset manager. With preferDisk, a path that
// exists on disk is read from there before any archive is consulted.
func NewManager(preferDisk bool) *Manager {
	return &Manager{
		cache:      NewCache(),
		preferDisk: preferDisk,
	}
}

// AddArchive adds a GRF archive to the manager.
func (m *Manager) AddArchive(path string) error {
	archive, err := grf.Open(path)
	if err != nil {
		return fmt.Errorf("opening archive %s: %w", path, err)
	}

	m.mu.Lock()
	m.archives = append(m.archives, archive)
	m.mu.Unlock()
	return nil
}

// Archives returns the number of open archives.
func (m *Manager) Archives() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.archives)
}

// Load returns the contents of path. A missing file yields an error
// wrapping grf.ErrNotFound; a file that exists but cannot be read returns
// that read error rather than falling through to lower-priority archives.
func (m *Manager) Load(path string) ([]byte, error) {
	key := encoding.NormalizeGRFPath(path)
	if data, ok := m.cache.Get(key); ok {
		return data, nil
	}

	if m.preferDisk {
		data, err := os.ReadFile(path)
		if err == nil {
			m.cache.Set(key, data)
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.archives) - 1; i >= 0; i-- {
		if !m.archives[i].Contains(path) {
			continue
		}
		data, err := m.archives[i].Read(path)
		if err != nil {
			return nil, err
		}
		m.cache.Set(key, data)
		return data, nil
	}
	return nil, fmt.Errorf("%w: %s", grf.ErrNotFound, path)
}

// LoadRSM loads and parses a model.
func (m *Manager) LoadRSM(path string) (*formats.RSM, error) {
	data, err := m.Load(path)
	if err != nil {
		return nil, err
	}
	rsm, err := formats.ParseRSM(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return rsm, nil
}

// LoadRSW loads and parses a map world file.
func (m *Manager) LoadRSW(path string) (*formats.RSW, error) {
	data, err := m.Load(path)
	if err != nil {
		return nil, err
	}
	rsw, err := formats.ParseRSW(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return rsw, nil
}

// CacheStats returns cache hit and miss counts.
func (m *Manager) CacheStats() (hits, misses int) {
	return m.cache.Stats()
}

// Close closes all archives.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, archive := range m.archives {
		archive.Close()
	}
	m.archives = nil
	m.cache.Clear()
}

// Cache is a simple in-memory cache for loaded files.
type Cache struct {
	data map[string][]byte
	mu   sync.Mutex

	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear clears the cache and its statistics.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

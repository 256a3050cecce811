package server

import (
	"container/list"
	"sync"

	"github.com/rcrowley/go-metrics"
)

// DefaultFrameCacheSize is the number of encoded frames kept by a Server.
const DefaultFrameCacheSize = 64

// frameKey identifies a rendered frame. Requests that pin the time with
// t= are deterministic and can be served from the cache.
type frameKey struct {
	scene      string
	width      int
	height     int
	millis     int64
	frequency  int
	saturation int
	background string
}

type frameEntry struct {
	key frameKey
	png []byte
}

// frameCache is an LRU of encoded PNG frames.
type frameCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[frameKey]*list.Element
	order    *list.List // front is most recent

	hits      metrics.Counter
	misses    metrics.Counter
	evictions metrics.Counter
}

func newFrameCache(capacity int, r metrics.Registry) *frameCache {
	return &frameCache{
		capacity:  capacity,
		entries:   make(map[frameKey]*list.Element),
		order:     list.New(),
		hits:      metrics.GetOrRegisterCounter("server.cache.hits", r),
		misses:    metrics.GetOrRegisterCounter("server.cache.misses", r),
		evictions: metrics.GetOrRegisterCounter("server.cache.evictions", r),
	}
}

func (c *frameCache) get(k frameKey) ([]byte, bool) {
	if c.capacity <= 0 {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[k]
	if !ok {
		c.misses.Inc(1)
		return nil, false
	}
	c.order.MoveToFront(e)
	c.hits.Inc(1)
	return e.Value.(*frameEntry).png, true
}

// set stores png under k. The slice must not be modified afterwards.
func (c *frameCache) set(k frameKey, png []byte) {
	if c.capacity <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[k]; ok {
		e.Value.(*frameEntry).png = png
		c.order.MoveToFront(e)
		return
	}
	for c.order.Len() >= c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*frameEntry).key)
		c.evictions.Inc(1)
	}
	c.entries[k] = c.order.PushFront(&frameEntry{key: k, png: png})
}

func (c *frameCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

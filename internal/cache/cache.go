package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Entry is a rendered page body and its ETag.
type Entry struct {
	Body []byte
	ETag string
}

type item struct {
	entry Entry
	exp   time.Time
}

// Cache holds rendered pages by name. A ttl of zero or less keeps entries
// until they are invalidated.
type Cache struct {
	mu    sync.RWMutex
	items map[string]item
	ttl   time.Duration
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		items: make(map[string]item),
		ttl:   ttl,
	}
}

func (c *Cache) Get(name string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	it, ok := c.items[name]
	if !ok || c.expired(it) {
		return Entry{}, false
	}
	return it.entry, true
}

// Set stores a copy of body under name and returns the stored entry.
func (c *Cache) Set(name string, body []byte) Entry {
	e := Entry{
		Body: append([]byte(nil), body...),
		ETag: ETag(body),
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	it := item{entry: e}
	if c.ttl > 0 {
		it.exp = time.Now().Add(c.ttl)
	}
	c.items[name] = it
	return e
}

func (c *Cache) Invalidate(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, name)
}

func (c *Cache) expired(it item) bool {
	return !it.exp.IsZero() && time.Now().After(it.exp)
}

// ETag returns a weak entity tag for body. It is weak because the same body
// goes out both identity and gzip encoded.
func ETag(body []byte) string {
	return fmt.Sprintf(`W/"%016x"`, xxhash.Sum64(body))
}

package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// MemoryCache держит результаты решателя в памяти процесса. Записи
// упорядочены по давности обращения: двусвязный список даёт O(1)
// вытеснение самой старой записи при переполнении. Протухшие записи
// удаляются лениво при обращении и периодической фоновой уборкой.
//
// Кэш безопасен для конкурентного использования.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]*list.Element
	order   *list.List // front - самое свежее обращение
	closed  bool

	defaultTTL time.Duration
	maxEntries int

	hits   int64
	misses int64

	stop chan struct{}
	done chan struct{}
}

// memoryEntry - значение элемента списка. Ключ дублируется, чтобы при
// вытеснении с хвоста не искать его по карте.
type memoryEntry struct {
	key       string
	value     []byte
	expiresAt time.Time // нулевое время - без срока
}

func (e *memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// NewMemoryCache создаёт кэш и запускает фоновую уборку протухших записей.
func NewMemoryCache(opts *Options) *MemoryCache {
	if opts == nil {
		opts = DefaultOptions()
	}

	maxEntries := opts.MaxEntries
	if maxEntries <= 0 {
		maxEntries = 100000
	}
	sweep := opts.CleanupInterval
	if sweep <= 0 {
		sweep = time.Minute
	}

	c := &MemoryCache{
		entries:    make(map[string]*list.Element),
		order:      list.New(),
		defaultTTL: opts.DefaultTTL,
		maxEntries: maxEntries,
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}

	go c.sweepLoop(sweep)

	return c
}

// lookup возвращает живую запись и освежает её позицию.
// Протухшая запись удаляется на месте. Вызывается под блокировкой.
func (c *MemoryCache) lookup(key string) *memoryEntry {
	el, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil
	}
	entry := el.Value.(*memoryEntry)
	if entry.expired(time.Now()) {
		c.removeElement(el)
		c.misses++
		return nil
	}
	c.order.MoveToFront(el)
	c.hits++
	return entry
}

// removeElement выбрасывает запись из списка и карты. Вызывается под
// блокировкой.
func (c *MemoryCache) removeElement(el *list.Element) {
	c.order.Remove(el)
	delete(c.entries, el.Value.(*memoryEntry).key)
}

func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrCacheClosed
	}
	entry := c.lookup(key)
	if entry == nil {
		return nil, ErrKeyNotFound
	}

	// Отдаём копию: решение принадлежит кэшу, вызывающий может менять своё
	result := make([]byte, len(entry.value))
	copy(result, entry.value)
	return result, nil
}

func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	var deadline time.Time
	if ttl > 0 {
		deadline = time.Now().Add(ttl)
	}

	stored := make([]byte, len(value))
	copy(stored, value)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrCacheClosed
	}

	if el, ok := c.entries[key]; ok {
		// Перезапись освежает и значение, и срок, и позицию
		entry := el.Value.(*memoryEntry)
		entry.value = stored
		entry.expiresAt = deadline
		c.order.MoveToFront(el)
		return nil
	}

	c.entries[key] = c.order.PushFront(&memoryEntry{
		key:       key,
		value:     stored,
		expiresAt: deadline,
	})

	// Вытесняем с хвоста, пока не влезем в лимит
	for len(c.entries) > c.maxEntries {
		if tail := c.order.Back(); tail != nil {
			c.removeElement(tail)
		}
	}
	return nil
}

func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrCacheClosed
	}
	if el, ok := c.entries[key]; ok {
		c.removeElement(el)
	}
	return nil
}

func (c *MemoryCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false, ErrCacheClosed
	}
	el, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	if el.Value.(*memoryEntry).expired(time.Now()) {
		c.removeElement(el)
		return false, nil
	}
	return true, nil
}

func (c *MemoryCache) Stats(ctx context.Context) (*Stats, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrCacheClosed
	}

	var hitRate float64
	if lookups := c.hits + c.misses; lookups > 0 {
		hitRate = float64(c.hits) / float64(lookups)
	}
	return &Stats{
		TotalKeys: int64(len(c.entries)),
		Hits:      c.hits,
		Misses:    c.misses,
		HitRate:   hitRate,
		Backend:   BackendMemory,
	}, nil
}

func (c *MemoryCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrCacheClosed
	}
	c.entries = make(map[string]*list.Element)
	c.order.Init()
	return nil
}

// Close останавливает уборку и освобождает записи. Повторный вызов
// безопасен.
func (c *MemoryCache) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.entries = nil
	c.order.Init()
	c.mu.Unlock()

	close(c.stop)
	<-c.done
	return nil
}

// sweepLoop периодически выбрасывает протухшие записи, чтобы память не
// держали ключи, к которым больше не обращаются.
func (c *MemoryCache) sweepLoop(interval time.Duration) {
	defer close(c.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.sweep()
		}
	}
}

func (c *MemoryCache) sweep() {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	var next *list.Element
	for el := c.order.Front(); el != nil; el = next {
		next = el.Next()
		if el.Value.(*memoryEntry).expired(now) {
			c.removeElement(el)
		}
	}
}

// cache.go — LRU-кэш собранных представлений страниц с TTL.
// Обёртка над hashicorp/golang-lru/v2/expirable.
package service

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigkaa/labportal/internal/i18n"
)

// Prometheus-метрики кэша.
var (
	cacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lp_view_cache_hits_total",
		Help: "Общее количество попаданий в кэш представлений.",
	})
	cacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lp_view_cache_misses_total",
		Help: "Общее количество промахов кэша представлений.",
	})
)

// ViewCache — кэш представлений (ключ view:slug:lang).
// У каждого экземпляра свой кэш; любая редакторская запись очищает его целиком.
type ViewCache struct {
	cache *expirable.LRU[string, any]

	mu         sync.Mutex
	generation uint64 // растёт при каждом Purge
}

// NewViewCache создаёт кэш на maxSize записей со временем жизни ttl.
func NewViewCache(maxSize int, ttl time.Duration) *ViewCache {
	return &ViewCache{cache: expirable.NewLRU[string, any](maxSize, nil, ttl)}
}

// viewKey формирует ключ кэша.
func viewKey(view, slug string, lang i18n.Lang) string {
	return view + ":" + slug + ":" + string(lang)
}

// Get возвращает представление по ключу и обновляет метрики hit/miss.
func (c *ViewCache) Get(key string) (any, bool) {
	val, ok := c.cache.Get(key)
	if ok {
		cacheHitsTotal.Inc()
		return val, true
	}
	cacheMissesTotal.Inc()
	return nil, false
}

// Purge очищает кэш. Представления, собранные до очистки, больше не попадут в кэш.
func (c *ViewCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.cache.Purge()
}

// Generation возвращает номер текущего поколения кэша.
func (c *ViewCache) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// SetIfGeneration добавляет представление, только если с момента gen
// не было Purge. Возвращает false, если представление устарело.
func (c *ViewCache) SetIfGeneration(key string, view any, gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != gen {
		return false
	}
	c.cache.Add(key, view)
	return true
}

// Len возвращает число записей.
func (c *ViewCache) Len() int {
	return c.cache.Len()
}

// cached достаёт представление из кэша или строит его через build.
// Ошибки build не кэшируются, как и представления, во время сборки которых
// кэш был очищен. c == nil отключает кэш.
func cached[T any](c *ViewCache, key string, build func() (T, error)) (T, error) {
	var gen uint64
	if c != nil {
		if v, ok := c.Get(key); ok {
			if typed, ok := v.(T); ok {
				return typed, nil
			}
		}
		gen = c.Generation()
	}

	v, err := build()
	if err != nil {
		return v, err
	}
	if c != nil {
		c.SetIfGeneration(key, v, gen)
	}
	return v, nil
}

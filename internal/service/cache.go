// Пакет service — бизнес-логика files-manager.
// CacheService — LRU-кэш записей, найденных по владельцу, с TTL.
// Обёртка над hashicorp/golang-lru/v2/expirable.
package service

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigkaa/goartstore/files-manager/internal/domain/model"
)

// Prometheus-метрики кэша.
var (
	cacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fm_cache_hits_total",
		Help: "Общее количество попаданий в LRU-кэш метаданных.",
	})
	cacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fm_cache_misses_total",
		Help: "Общее количество промахов LRU-кэша метаданных.",
	})
	cacheStaleFillsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fm_cache_stale_fills_total",
		Help: "Заполнения кэша, отброшенные из-за изменения записи во время чтения.",
	})
)

// CacheService — LRU-кэш записей с автоматическим TTL.
//
// Кэш локален для экземпляра: изменение на другой реплике его не
// инвалидирует. При нескольких репликах кэш должен быть выключен
// (FM_CACHE_ENABLED=false, значение по умолчанию).
//
// Заполнение после чтения из хранилища идёт через Generation/Fill:
// если между ними была инвалидация, прочитанная запись могла устареть
// и в кэш не попадает.
type CacheService struct {
	mu    sync.Mutex
	cache *expirable.LRU[string, model.FileRecord]
	gen   uint64
}

// NewCacheService создаёт LRU-кэш с указанным максимальным размером и TTL.
func NewCacheService(maxSize int, ttl time.Duration) *CacheService {
	cache := expirable.NewLRU[string, model.FileRecord](maxSize, nil, ttl)
	return &CacheService{cache: cache}
}

// cacheKey — ключ записи владельца.
func cacheKey(ownerID, id string) string {
	return ownerID + "/" + id
}

// Get возвращает копию записи из кэша.
// Обновляет Prometheus-метрики hit/miss.
func (c *CacheService) Get(ownerID, id string) (*model.FileRecord, bool) {
	val, ok := c.cache.Get(cacheKey(ownerID, id))
	if ok {
		cacheHitsTotal.Inc()
		return &val, true
	}
	cacheMissesTotal.Inc()
	return nil, false
}

// Generation возвращает номер поколения. Берётся до чтения из хранилища
// и передаётся в Fill.
func (c *CacheService) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// Fill добавляет прочитанную запись, если с момента gen не было инвалидаций.
// Возвращает false, если запись отброшена.
func (c *CacheService) Fill(record *model.FileRecord, gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		cacheStaleFillsTotal.Inc()
		return false
	}
	c.cache.Add(cacheKey(record.OwnerID, record.ID), *record)
	return true
}

// Set добавляет или обновляет запись в кэше без проверки поколения.
func (c *CacheService) Set(record *model.FileRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.Add(cacheKey(record.OwnerID, record.ID), *record)
}

// Delete удаляет запись и начинает новое поколение.
// Вызывается после изменения записи в хранилище.
func (c *CacheService) Delete(ownerID, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.cache.Remove(cacheKey(ownerID, id))
}

// Len возвращает количество записей в кэше.
func (c *CacheService) Len() int {
	return c.cache.Len()
}

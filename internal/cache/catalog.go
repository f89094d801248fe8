package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/biteflow/restaurant-service/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	versionKey    = "catalog:version"
	categoriesKey = "catalog:categories"
	menuKey       = "catalog:menu"

	// unknownVersion is returned when the version could not be read; fills at it are dropped
	unknownVersion int64 = -1
)

// CatalogCache keeps the public category and menu listings in Redis.
// Every failure is logged and reported as a miss so reads fall through to the database.
//
// Listings are stored under the catalog version current at lookup time. Invalidate
// bumps the version, so a fill computed from a read that raced a write lands on a
// key no reader looks at and expires with its TTL.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCatalogCache creates a catalog cache whose entries live for ttl
func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	return &CatalogCache{client: client, ttl: ttl}
}

// Categories returns the cached category listing and the version it was looked up at
func (c *CatalogCache) Categories(ctx context.Context) ([]models.Category, int64, bool) {
	var categories []models.Category
	version, ok := c.get(ctx, categoriesKey, &categories)
	return categories, version, ok
}

// SetCategories stores the category listing read at version
func (c *CatalogCache) SetCategories(ctx context.Context, version int64, categories []models.Category) {
	c.set(ctx, categoriesKey, version, categories)
}

// MenuItems returns the cached menu listing and the version it was looked up at
func (c *CatalogCache) MenuItems(ctx context.Context) ([]models.MenuItem, int64, bool) {
	var items []models.MenuItem
	version, ok := c.get(ctx, menuKey, &items)
	return items, version, ok
}

// SetMenuItems stores the menu listing read at version
func (c *CatalogCache) SetMenuItems(ctx context.Context, version int64, items []models.MenuItem) {
	c.set(ctx, menuKey, version, items)
}

// Invalidate retires both listings. Menu items embed category names, so any catalog write clears both.
func (c *CatalogCache) Invalidate(ctx context.Context) {
	if err := c.client.Incr(ctx, versionKey).Err(); err != nil {
		log.Printf("Failed to invalidate catalog cache: %v", err)
	}
}

func (c *CatalogCache) version(ctx context.Context) (int64, error) {
	version, err := c.client.Get(ctx, versionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return version, err
}

func (c *CatalogCache) get(ctx context.Context, key string, dst any) (int64, bool) {
	version, err := c.version(ctx)
	if err != nil {
		log.Printf("Redis error on %s (continuing with DB): %v", versionKey, err)
		return unknownVersion, false
	}

	data, err := c.client.Get(ctx, versioned(key, version)).Bytes()
	switch {
	case err == nil:
	case errors.Is(err, redis.Nil):
		return version, false
	default:
		log.Printf("Redis error on %s (continuing with DB): %v", key, err)
		return version, false
	}

	if err := json.Unmarshal(data, dst); err != nil {
		log.Printf("Failed to unmarshal cached %s (continuing with DB): %v", key, err)
		return version, false
	}

	return version, true
}

func (c *CatalogCache) set(ctx context.Context, key string, version int64, value any) {
	if version == unknownVersion {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("Failed to marshal %s: %v", key, err)
		return
	}

	if err := c.client.Set(ctx, versioned(key, version), data, c.ttl).Err(); err != nil {
		log.Printf("Failed to cache %s: %v", key, err)
	}
}

func versioned(key string, version int64) string {
	return key + ":" + strconv.FormatInt(version, 10)
}

// Nop is used when no Redis address is configured
type Nop struct{}

func (Nop) Categories(context.Context) ([]models.Category, int64, bool) { return nil, 0, false }
func (Nop) SetCategories(context.Context, int64, []models.Category) {}
func (Nop) MenuItems(context.Context) ([]models.MenuItem, int64, bool) { return nil, 0, false }
func (Nop) SetMenuItems(context.Context, int64, []models.MenuItem) {}
func (Nop) Invalidate(context.Context) {}

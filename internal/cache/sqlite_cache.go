package cache

import (
	"errors"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/bytedance/sonic"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"profile-roast/internal/database"
	"profile-roast/internal/logger"
	"profile-roast/internal/models"
)

// SQLiteOptions controls construction of a SQLiteCache.
type SQLiteOptions struct {
	// ExpireMinutes is the expiration window applied to every entry.
	ExpireMinutes int

	// Clock defaults to the wall clock.
	Clock clock.Clock

	// Logger defaults to a no-op logger.
	Logger *zap.Logger
}

// SQLiteCache is a file-backed cache with a fixed expiration window.
// Expired rows are removed lazily by Get or in bulk by ClearExpired;
// there is no background sweeper.
type SQLiteCache struct {
	db            *gorm.DB
	expireMinutes int
	expireSeconds int64
	clock         clock.Clock
	log           *zap.Logger
}

// Open opens the cache file at path, creating the schema if needed.
func Open(path string, opts SQLiteOptions) (*SQLiteCache, error) {
	debug := opts.Logger != nil && logger.IsDebug(opts.Logger)
	db, err := database.Open(path, debug)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	c, err := NewSQLiteCache(db, opts)
	if err != nil {
		_ = database.Close(db)
		return nil, err
	}
	c.log.Info("cache initialized",
		zap.String("path", path),
		zap.Int("expire_minutes", c.expireMinutes))
	return c, nil
}

// NewSQLiteCache wraps an already opened database. The schema is ensured
// on every call.
func NewSQLiteCache(db *gorm.DB, opts SQLiteOptions) (*SQLiteCache, error) {
	if opts.ExpireMinutes < 1 {
		return nil, ErrInvalidWindow
	}
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	clk := opts.Clock
	if clk == nil {
		clk = clock.New()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &SQLiteCache{
		db:            db,
		expireMinutes: opts.ExpireMinutes,
		expireSeconds: int64(opts.ExpireMinutes) * 60,
		clock:         clk,
		log:           log.Named("cache"),
	}, nil
}

// Get implements Cache.Get.
func (c *SQLiteCache) Get(key string) (map[string]any, bool, error) {
	var entry models.CacheEntry
	res := c.db.Where("cache_key = ?", key).Limit(1).Find(&entry)
	if res.Error != nil {
		return nil, false, fmt.Errorf("%w: read %q: %w", ErrUnavailable, key, res.Error)
	}
	if res.RowsAffected == 0 {
		c.log.Debug("cache miss", zap.String("key", key))
		return nil, false, nil
	}

	now := c.clock.Now().Unix()
	age := time.Duration(now-entry.Timestamp) * time.Second
	if c.expired(entry.Timestamp, now) {
		c.log.Debug("cache entry expired",
			zap.String("key", key),
			zap.Duration("age", age),
			zap.Int("expire_minutes", c.expireMinutes))
		if err := c.evict(entry); err != nil {
			return nil, false, err
		}
		return nil, false, nil
	}

	var value map[string]any
	if err := sonic.UnmarshalString(entry.Data, &value); err != nil {
		c.log.Warn("dropping undecodable cache entry", zap.String("key", key), zap.Error(err))
		if err := c.evict(entry); err != nil {
			return nil, false, err
		}
		return nil, false, nil
	}

	c.log.Debug("cache hit", zap.String("key", key), zap.Duration("age", age))
	return value, true, nil
}

// Set implements Cache.Set.
func (c *SQLiteCache) Set(key string, value map[string]any) error {
	data, err := sonic.MarshalString(value)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrNotSerializable, key, err)
	}

	entry := models.CacheEntry{
		Key:       key,
		Data:      data,
		Timestamp: c.clock.Now().Unix(),
	}
	err = c.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cache_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "timestamp"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("%w: write %q: %w", ErrUnavailable, key, err)
	}

	c.log.Debug("cache stored", zap.String("key", key), zap.Int("expire_minutes", c.expireMinutes))
	return nil
}

// Delete implements Cache.Delete.
func (c *SQLiteCache) Delete(key string) error {
	if err := c.db.Where("cache_key = ?", key).Delete(&models.CacheEntry{}).Error; err != nil {
		return fmt.Errorf("%w: delete %q: %w", ErrUnavailable, key, err)
	}
	c.log.Debug("cache deleted", zap.String("key", key))
	return nil
}

// ClearExpired implements Cache.ClearExpired. All rows are judged against
// one snapshot of the clock.
func (c *SQLiteCache) ClearExpired() error {
	cutoff := c.clock.Now().Unix() - c.expireSeconds
	res := c.db.Where("timestamp <= ?", cutoff).Delete(&models.CacheEntry{})
	if res.Error != nil {
		return fmt.Errorf("%w: clear expired: %w", ErrUnavailable, res.Error)
	}
	if res.RowsAffected > 0 {
		c.log.Info("cleared expired cache entries",
			zap.Int64("count", res.RowsAffected),
			zap.Int("expire_minutes", c.expireMinutes))
	}
	return nil
}

// ClearAll implements Cache.ClearAll.
func (c *SQLiteCache) ClearAll() error {
	res := c.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.CacheEntry{})
	if res.Error != nil {
		return fmt.Errorf("%w: clear all: %w", ErrUnavailable, res.Error)
	}
	c.log.Info("cleared all cache entries", zap.Int64("count", res.RowsAffected))
	return nil
}

// Close releases the database handle.
func (c *SQLiteCache) Close() error {
	return database.Close(c.db)
}

func (c *SQLiteCache) expired(storedAt, now int64) bool {
	return now-storedAt >= c.expireSeconds
}

// evict removes entry only if it still carries the timestamp that was read,
// so a Set racing between the read and the delete survives.
func (c *SQLiteCache) evict(entry models.CacheEntry) error {
	err := c.db.
		Where("cache_key = ? AND timestamp = ?", entry.Key, entry.Timestamp).
		Delete(&models.CacheEntry{}).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: evict %q: %w", ErrUnavailable, entry.Key, err)
	}
	return nil
}

var _ Cache = (*SQLiteCache)(nil)

// Package orm holds the sqlite-backed cache for upstream API responses.
package orm

import (
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// APICache stores cached API responses keyed by request signature.
type APICache struct {
	Key       string `gorm:"primaryKey"`
	Value     []byte // Raw JSON
	CreatedAt time.Time
	ExpiresAt time.Time `gorm:"index"`
}

// Setup opens the sqlite database at path, migrates the cache table and
// drops expired entries.
func Setup(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&APICache{}); err != nil {
		return nil, err
	}
	if err := CleanupCache(db); err != nil {
		return nil, err
	}
	return db, nil
}

// GetCacheEntry retrieves a valid cache entry
func GetCacheEntry(db *gorm.DB, key string) (*APICache, error) {
	var entry APICache
	// Check for existence and expiry
	err := db.Where("key = ? AND expires_at > ?", key, time.Now()).First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// SetCacheEntry upserts a cache entry
func SetCacheEntry(db *gorm.DB, key string, value []byte, ttl time.Duration) error {
	entry := APICache{
		Key:       key,
		Value:     value,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(ttl),
	}
	// Upsert (On Conflict Do Update)
	return db.Save(&entry).Error
}

// CleanupCache removes expired entries
func CleanupCache(db *gorm.DB) error {
	return db.Where("expires_at < ?", time.Now()).Delete(&APICache{}).Error
}

package models

// CacheEntry is one cached provider response.
type CacheEntry struct {
	Key       string `gorm:"column:cache_key;primaryKey"`
	Data      string `gorm:"column:data"`
	Timestamp int64  `gorm:"column:timestamp"` // unix seconds at write time
}

// TableName specifies the table name for CacheEntry Model
func (CacheEntry) TableName() string {
	return "response_cache"
}

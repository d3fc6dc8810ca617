package cache

import (
	"errors"
	"strings"
)

var (
	// ErrUnavailable wraps any failure of the backing store.
	ErrUnavailable = errors.New("cache unavailable")
	// ErrNotSerializable is returned by Set when the value cannot be encoded.
	ErrNotSerializable = errors.New("value not serializable")
	// ErrInvalidWindow is returned when an expiration window is not positive.
	ErrInvalidWindow = errors.New("expiration window must be at least one minute")
)

// Cache is the contract shared by the persistent and the null cache.
// Callers never branch on which one they hold.
type Cache interface {
	// Get returns the stored value and true if present and not expired.
	// Missing, expired and undecodable entries are a miss, not an error.
	Get(key string) (map[string]any, bool, error)

	// Set stores value under key, replacing any previous entry and
	// restarting its expiration clock.
	Set(key string, value map[string]any) error

	// Delete removes key if present. Deleting a missing key is not an error.
	Delete(key string) error

	// ClearExpired removes every entry older than the expiration window.
	ClearExpired() error

	// ClearAll removes every entry.
	ClearAll() error
}

// KeySeparator joins the parts of a cache key.
const KeySeparator = ":"

// Key builds a cache key from a request tag and its arguments,
// e.g. Key("user_info", "alice") == "user_info:alice".
func Key(parts ...string) string {
	return strings.Join(parts, KeySeparator)
}

package cache

import "go.uber.org/zap"

// NullCache satisfies Cache without retaining anything. It is used when
// caching is disabled and never fails.
type NullCache struct {
	log *zap.Logger
}

// NewNullCache returns a NullCache. A nil logger is allowed.
func NewNullCache(log *zap.Logger) *NullCache {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("cache")
	log.Info("cache disabled, using null cache")
	return &NullCache{log: log}
}

func (n *NullCache) Get(key string) (map[string]any, bool, error) {
	n.logger().Debug("cache disabled, skipping read", zap.String("key", key))
	return nil, false, nil
}

func (n *NullCache) Set(key string, _ map[string]any) error {
	n.logger().Debug("cache disabled, skipping write", zap.String("key", key))
	return nil
}

func (n *NullCache) Delete(string) error { return nil }

func (n *NullCache) ClearExpired() error { return nil }

func (n *NullCache) ClearAll() error { return nil }

// logger tolerates the zero value NullCache{}.
func (n *NullCache) logger() *zap.Logger {
	if n == nil || n.log == nil {
		return zap.NewNop()
	}
	return n.log
}

var _ Cache = (*NullCache)(nil)

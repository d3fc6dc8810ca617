package cache

import "profile-roast/internal/metrics"

// Instrumented counts operations of the wrapped cache by result.
type Instrumented struct {
	inner Cache
}

// WithMetrics wraps c so that every call is recorded in metrics.CacheOperations.
func WithMetrics(c Cache) *Instrumented {
	return &Instrumented{inner: c}
}

func (i *Instrumented) Get(key string) (map[string]any, bool, error) {
	v, ok, err := i.inner.Get(key)
	switch {
	case err != nil:
		record("get", err)
	case ok:
		metrics.CacheOperations.WithLabelValues("get", "hit").Inc()
	default:
		metrics.CacheOperations.WithLabelValues("get", "miss").Inc()
	}
	return v, ok, err
}

func (i *Instrumented) Set(key string, value map[string]any) error {
	err := i.inner.Set(key, value)
	record("set", err)
	return err
}

func (i *Instrumented) Delete(key string) error {
	err := i.inner.Delete(key)
	record("delete", err)
	return err
}

func (i *Instrumented) ClearExpired() error {
	err := i.inner.ClearExpired()
	record("clear_expired", err)
	return err
}

func (i *Instrumented) ClearAll() error {
	err := i.inner.ClearAll()
	record("clear_all", err)
	return err
}

func record(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.CacheOperations.WithLabelValues(op, result).Inc()
}

var _ Cache = (*Instrumented)(nil)

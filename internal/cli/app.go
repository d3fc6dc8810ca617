package cli

import (
	"net/http"

	"go.uber.org/zap"

	"profile-roast/internal/analyzer"
	"profile-roast/internal/cache"
	"profile-roast/internal/config"
	"profile-roast/internal/llm"
	"profile-roast/internal/logger"
	"profile-roast/internal/xapi"
)

// completionTitle is sent as X-Title to the completion endpoint.
const completionTitle = "Profile Roast"

// app holds everything a command needs, built once per invocation.
type app struct {
	cfg    *config.Config
	log    *zap.Logger
	cache  cache.Cache
	closer func() error
}

func newApp(cfg *config.Config, useCache bool) (*app, error) {
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, log: log, closer: func() error { return nil }}
	if !useCache {
		a.cache = cache.NewNullCache(log)
		return a, nil
	}

	store, err := openStore(cfg, log)
	if err != nil {
		return nil, err
	}
	a.cache = cache.WithMetrics(store)
	a.closer = store.Close
	return a, nil
}

func openStore(cfg *config.Config, log *zap.Logger) (*cache.SQLiteCache, error) {
	return cache.Open(cfg.CacheDBPath, cache.SQLiteOptions{
		ExpireMinutes: cfg.CacheExpireMinutes,
		Logger:        log,
	})
}

func (a *app) analyzer(notifier analyzer.Notifier) *analyzer.Analyzer {
	httpClient := &http.Client{Timeout: a.cfg.HTTPTimeout}

	source := xapi.NewClient(xapi.Options{
		BaseURL:    a.cfg.XAPIBaseURL,
		APIKey:     a.cfg.XAPIKey,
		HTTPClient: httpClient,
		Cache:      a.cache,
		Logger:     a.log,
	})
	completer := llm.NewClient(llm.Options{
		BaseURL:    a.cfg.OpenAIURL,
		APIKey:     a.cfg.OpenAIKey,
		Model:      a.cfg.OpenAIModel,
		Title:      completionTitle,
		HTTPClient: httpClient,
		Logger:     a.log,
	})
	return analyzer.New(source, completer, analyzer.Options{Notifier: notifier, Logger: a.log})
}

func (a *app) close() {
	if err := a.closer(); err != nil {
		a.log.Warn("closing cache failed", zap.Error(err))
	}
	_ = a.log.Sync()
}

package handlers

import (
	"context"

	"go.uber.org/zap"

	"profile-roast/internal/cache"
	"profile-roast/internal/models"
	"profile-roast/internal/realtime"
)

// Runner runs one analysis, normally *analyzer.Analyzer.
type Runner interface {
	Run(ctx context.Context, subject, username string) (models.Analysis, error)
}

// Handler holds the dependencies shared by the HTTP handlers.
type Handler struct {
	runner Runner
	cache  cache.Cache
	hub    *realtime.Hub
	log    *zap.Logger
}

// New returns a Handler.
func New(runner Runner, c cache.Cache, hub *realtime.Hub, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{runner: runner, cache: c, hub: hub, log: log.Named("http")}
}

package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"profile-roast/internal/auth"
	"profile-roast/internal/handlers"
	"profile-roast/internal/logger"
	"profile-roast/internal/maintenance"
	"profile-roast/internal/metrics"
	"profile-roast/internal/realtime"
	"profile-roast/internal/routes"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(load ConfigLoader) *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve analyses and cache maintenance over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			a, err := newApp(cfg, cfg.EnableCache && !noCache)
			if err != nil {
				return err
			}
			defer a.close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, a)
		},
	}
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the response cache")
	return cmd
}

func serve(ctx context.Context, a *app) error {
	if !logger.IsDebug(a.log) {
		gin.SetMode(gin.ReleaseMode)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics.Setup(reg)

	hub := realtime.NewHub()
	h := handlers.New(a.analyzer(hub), a.cache, hub, a.log)
	tokens := auth.NewManager(a.cfg.JWTSecret, a.cfg.JWTIssuer, a.cfg.JWTAudience)

	srv := &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           routes.SetupRoutes(h, tokens, reg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	var sweeper *maintenance.Sweeper
	if spec := a.cfg.CacheSweepSchedule; spec != "" {
		var err error
		if sweeper, err = maintenance.NewSweeper(a.cache, spec, a.log); err != nil {
			return err
		}
		a.log.Info("scheduled cache sweeps enabled", zap.String("schedule", spec))
	}

	g, gCtx := errgroup.WithContext(ctx)

	if sweeper != nil {
		g.Go(func() error { return sweeper.Run(gCtx) })
	}

	g.Go(func() error {
		a.log.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.log.Info("server shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

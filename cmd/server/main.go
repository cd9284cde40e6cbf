package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Clark-Hu/courtside/internal/auth"
	"github.com/Clark-Hu/courtside/internal/checkout"
	"github.com/Clark-Hu/courtside/internal/config"
	httpserver "github.com/Clark-Hu/courtside/internal/http"
	"github.com/Clark-Hu/courtside/internal/metrics"
	"github.com/Clark-Hu/courtside/internal/repository"
	"github.com/Clark-Hu/courtside/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("config error")
	}

	logger := newLogger(cfg)

	dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	storeOpts := store.OptionsFromConfig(cfg, logger)

	st, err := store.New(dbCtx, cfg.DBURL, storeOpts)
	if err != nil {
		logger.WithError(err).Fatal("connect database")
	}
	defer st.Close()

	checkoutClient, err := checkout.NewHTTPClient(cfg.CheckoutURL, time.Duration(cfg.CheckoutTimeoutSecs)*time.Second, logger)
	if err != nil {
		logger.WithError(err).Fatal("init checkout client")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := metrics.New(reg)
	server := httpserver.New(cfg, httpserver.Deps{
		Store:    st,
		Repo:     repository.New(st),
		Checkout: checkoutClient,
		Verifier: auth.NewVerifier(cfg.JWTSecret),
		Metrics:  m,
		Logger:   logger,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Start(gctx)
	})
	g.Go(func() error {
		return reportPoolStats(gctx, st, m, logger)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, http.ErrServerClosed) && !errors.Is(err, context.Canceled) {
		logger.WithError(err).Error("server error")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Error("graceful shutdown error")
	}
	logger.Info("server stopped")
}

func newLogger(cfg config.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	if cfg.LogFormat == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.WithError(err).Warn("unknown LOG_LEVEL, using info")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// reportPoolStats publishes connection pool usage every 15s until ctx ends.
func reportPoolStats(ctx context.Context, st *store.Store, m *metrics.Metrics, logger logrus.FieldLogger) error {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			stats := st.Stats()
			m.SetPoolConns(stats.Total, stats.Idle, stats.Acquired)
			logger.WithFields(logrus.Fields{
				"total":    stats.Total,
				"idle":     stats.Idle,
				"acquired": stats.Acquired,
			}).Debug("db pool stats")
		}
	}
}

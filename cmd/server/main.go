package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mamadbah2/feedration/internal/bootstrap"
	"github.com/mamadbah2/feedration/internal/catalog"
	"github.com/mamadbah2/feedration/internal/config"
	"github.com/mamadbah2/feedration/internal/metrics"
	"github.com/mamadbah2/feedration/internal/scheduler"
	"github.com/mamadbah2/feedration/internal/server/handlers"
	"github.com/mamadbah2/feedration/internal/server/router"
	"github.com/mamadbah2/feedration/internal/service/pricing"
	"github.com/mamadbah2/feedration/internal/service/rations"
	"github.com/mamadbah2/feedration/internal/service/reporting"
	"github.com/mamadbah2/feedration/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	base, err := bootstrap.LoadCatalog(cfg.Catalog)
	if err != nil {
		baseLogger.Fatal("failed to load catalog", zap.Error(err))
	}
	holder := catalog.NewHolder(base)

	store, closeStore, err := bootstrap.OpenStore(ctx, cfg, baseLogger)
	if err != nil {
		baseLogger.Fatal("failed to open record store", zap.Error(err), zap.String("driver", cfg.Store.Driver))
	}
	defer closeStore()

	ledger, err := bootstrap.NewLedger(ctx, cfg, baseLogger.Named("repo.sheets"))
	if err != nil {
		baseLogger.Fatal("failed to init sheets ledger", zap.Error(err))
	}

	adv, err := bootstrap.NewAdvisor(ctx, cfg.AI, baseLogger.Named("svc.advisory"))
	if err != nil {
		baseLogger.Fatal("failed to init advisory client", zap.Error(err))
	}

	// Typed nils must not leak into the interfaces.
	var (
		advisor     rations.Advisor
		priceSource pricing.PriceSource
	)
	if adv != nil {
		advisor, priceSource = adv, adv
	}

	loc := cfg.Server.Location()
	rationSvc := rations.NewService(store, holder, advisor, ledger, loc, baseLogger.Named("svc.rations"))
	pricingSvc := pricing.NewService(holder, priceSource, loc, baseLogger.Named("svc.pricing"))
	reportingSvc := reporting.NewService(store, loc, baseLogger.Named("svc.reporting"))

	collector := metrics.NewCollector("feedration")
	engine := router.New(router.Handlers{
		Catalog: handlers.NewCatalogHandler(holder, pricingSvc, baseLogger.Named("handlers.catalog")),
		Rations: handlers.NewRationHandler(rationSvc, collector, baseLogger.Named("handlers.rations")),
		Records: handlers.NewRecordHandler(rationSvc, reportingSvc, baseLogger.Named("handlers.records")),
	}, collector, baseLogger.Named("router"))

	if priceSource != nil {
		sched := scheduler.NewScheduler(cfg.Pricing.CronSchedule, loc, pricingSvc, baseLogger.Named("scheduler"))
		if err := sched.Start(); err != nil {
			baseLogger.Fatal("failed to start scheduler", zap.Error(err))
		}
		defer sched.Stop()
		go sched.RunNow()
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		baseLogger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		baseLogger.Error("server stopped with error", zap.Error(err))
	}
}

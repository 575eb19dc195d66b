package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mamadbah2/feedration/internal/bootstrap"
	"github.com/mamadbah2/feedration/internal/catalog"
	"github.com/mamadbah2/feedration/internal/config"
	"github.com/mamadbah2/feedration/internal/repository"
	"github.com/mamadbah2/feedration/internal/service/rations"
	"github.com/mamadbah2/feedration/pkg/logger"
)

// app holds what the commands share. The store is opened on first use so that
// catalog-only commands work without a database.
type app struct {
	envFile string
	verbose bool

	cfg     *config.Config
	logger  *zap.Logger
	holder  *catalog.Holder
	store   repository.RecordStore
	svc     *rations.Service
	closers []func()
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "rationctl",
		Short: "Plan and archive livestock feed rations",
		Long: `rationctl evaluates feed rations against an animal's nutrient requirements
and manages the archive of saved rations.

It reads the same environment configuration as the server.`,
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.init()
		},
	}

	root.PersistentFlags().StringVar(&a.envFile, "env", "", "path to an env file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose logging")

	root.AddCommand(
		newEvaluateCmd(a),
		newBreedsCmd(a),
		newFeedsCmd(a),
		newRecordsCmd(a),
	)
	return root
}

func (a *app) init() error {
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	log, err := logger.NewConsole(a.verbose)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	a.logger = log
	a.closers = append(a.closers, func() { _ = log.Sync() })

	base, err := bootstrap.LoadCatalog(cfg.Catalog)
	if err != nil {
		return err
	}
	a.holder = catalog.NewHolder(base)
	return nil
}

// service opens the record store and builds the ration service.
func (a *app) service(ctx context.Context) (*rations.Service, error) {
	if a.svc != nil {
		return a.svc, nil
	}

	store, closeStore, err := bootstrap.OpenStore(ctx, a.cfg, a.logger)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, closeStore)
	a.store = store

	ledger, err := bootstrap.NewLedger(ctx, a.cfg, logger.Named(a.logger, "repo.sheets"))
	if err != nil {
		return nil, err
	}

	a.svc = rations.NewService(store, a.holder, nil, ledger, a.cfg.Server.Location(), logger.Named(a.logger, "svc.rations"))
	return a.svc, nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

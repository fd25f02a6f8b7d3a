package main

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"rabbitcare/internal/catalog"
	"rabbitcare/internal/config"
	"rabbitcare/internal/game"
	"rabbitcare/internal/remote"
	"rabbitcare/internal/store"
	"rabbitcare/internal/telemetry"
	"rabbitcare/internal/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the interactive care screen",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		cfg := loadConfig(logger)

		cat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}

		fileStore, err := store.NewFileStore(flagDataDir, "save", logger)
		if err != nil {
			return fmt.Errorf("open save store: %w", err)
		}

		var initial *game.State
		if st, ok, err := fileStore.Load(); err != nil {
			return fmt.Errorf("load save: %w", err)
		} else if ok {
			initial = &st
		}

		events := telemetry.NewMemoryRepository()

		var coord *remote.Coordinator
		engine := game.NewEngine(game.Options{
			Catalog: cat,
			Tuning:  cfg.Tuning,
			Store:   fileStore,
			Logger:  logger,
			Events:  events,
			Initial: initial,
			OnChange: func() {
				if coord != nil {
					coord.Notify()
				}
			},
		})

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		if flagServerURL != "" {
			client := remote.NewClient(flagServerURL, remote.DeviceID(flagDataDir), logger)
			client.SetTimeout(cfg.Tuning.RemoteTimeout())
			coord = remote.NewCoordinator(remote.CoordinatorOptions{
				Client:   client,
				Engine:   engine,
				Interval: cfg.Tuning.SyncInterval(),
				Logger:   logger,
			})
			coord.Reconcile(ctx)
			coord.Start(ctx)
			defer func() {
				coord.Stop()
				flushCtx, flushCancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer flushCancel()
				coord.Flush(flushCtx)
			}()
		}

		engine.Start(ctx)
		defer engine.Stop()

		if err := tui.Run(engine, cat); err != nil {
			return err
		}

		logSessionStats(logger, events)
		return nil
	},
}

func loadCatalog(cfg config.Config) (*catalog.Catalog, error) {
	if cfg.Catalog == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.Load(cfg.Catalog)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return cat, nil
}

func logSessionStats(logger *log.Logger, events *telemetry.MemoryRepository) {
	all, err := events.GetEvents(time.Time{}, nil)
	if err != nil || len(all) == 0 {
		return
	}
	stats, err := telemetry.CalculateStats(all, time.Time{})
	if err != nil {
		return
	}
	logger.Info("session summary",
		"care_actions", stats.CareActions,
		"hearts_earned", stats.HeartsEarned,
		"hearts_spent", stats.HeartsSpent,
		"gifts", stats.GiftsClaimed,
		"level_ups", stats.LevelUps,
		"decay_ticks", stats.DecayTicks,
	)
}

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"rabbitcare/internal/game"
	"rabbitcare/internal/remote"
	"rabbitcare/internal/store"
)

var flagPull bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Push the local save to the remote service now",
	Long: `sync pushes the local save to the remote save service immediately,
outside the background debounce. With --pull it instead fetches the
remote snapshot and overwrites the local save when the remote copy
is newer.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		if flagServerURL == "" {
			return fmt.Errorf("no remote server configured (--server or RABBITCARE_SERVER)")
		}

		fileStore, err := store.NewFileStore(flagDataDir, "save", logger)
		if err != nil {
			return err
		}
		st, ok, err := fileStore.Load()
		if err != nil {
			return err
		}
		if !ok && !flagPull {
			return fmt.Errorf("no local save to push")
		}

		var initial *game.State
		if ok {
			initial = &st
		}
		engine := game.NewEngine(game.Options{
			Store:   fileStore,
			Logger:  logger,
			Initial: initial,
		})

		client := remote.NewClient(flagServerURL, remote.DeviceID(flagDataDir), logger)
		coord := remote.NewCoordinator(remote.CoordinatorOptions{
			Client: client,
			Engine: engine,
			Logger: logger,
		})

		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()

		if flagPull {
			if coord.Reconcile(ctx) {
				logger.Info("local save replaced with newer remote snapshot")
			} else {
				logger.Info("local save is already current")
			}
			return nil
		}

		coord.Notify()
		if !coord.Flush(ctx) {
			return fmt.Errorf("push to %s failed", flagServerURL)
		}
		logger.Info("local save pushed", "server", flagServerURL)
		return nil
	},
}

func init() {
	syncCmd.Flags().BoolVar(&flagPull, "pull", false, "Fetch the remote snapshot instead of pushing")
}

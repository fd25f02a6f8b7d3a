package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"rabbitcare/internal/game"
	"rabbitcare/internal/remote"
	"rabbitcare/internal/store"
)

var flagResetRemote bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Start the game over",
	Long: `reset replaces the local save with a fresh first-run state. With
--remote it also deletes the save held by the remote service, so the
old progress cannot come back through reconciliation.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		fileStore, err := store.NewFileStore(flagDataDir, "save", logger)
		if err != nil {
			return err
		}

		engine := game.NewEngine(game.Options{Store: fileStore, Logger: logger})
		engine.Reset()
		logger.Info("local save reset")

		if flagResetRemote && flagServerURL != "" {
			client := remote.NewClient(flagServerURL, remote.DeviceID(flagDataDir), logger)
			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()
			if client.Delete(ctx) {
				logger.Info("remote save deleted", "server", flagServerURL)
			} else {
				logger.Warn("remote save delete failed", "server", flagServerURL)
			}
		}
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVar(&flagResetRemote, "remote", false, "Also delete the remote save")
}

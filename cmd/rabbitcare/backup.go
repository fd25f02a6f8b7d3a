package main

import (
	"github.com/spf13/cobra"

	"rabbitcare/internal/ops"
)

var backupCmd = &cobra.Command{
	Use:   "backup <archive>",
	Short: "Archive the save data directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		if err := ops.BackupDataDir(flagDataDir, args[0]); err != nil {
			return err
		}
		logger.Info("backup written", "data", flagDataDir, "archive", args[0])
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <archive>",
	Short: "Restore a save archive into the data directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		if err := ops.RestoreDataDir(args[0], flagDataDir); err != nil {
			return err
		}
		logger.Info("backup restored", "archive", args[0], "data", flagDataDir)
		return nil
	},
}

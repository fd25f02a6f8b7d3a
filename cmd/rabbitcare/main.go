// rabbitcare is a virtual pet that lives in your terminal.
//
// Usage:
//
//	rabbitcare play              - Open the interactive care screen
//	rabbitcare serve             - Run the remote save service
//	rabbitcare sync              - Push the local save to the remote service now
//	rabbitcare reset             - Start the game over
//	rabbitcare backup <archive>  - Archive the save data directory
//	rabbitcare restore <archive> - Restore a save archive
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"rabbitcare/internal/config"
)

var (
	flagDataDir    string
	flagConfigPath string
	flagServerURL  string
	flagVerbose    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rabbitcare",
	Short: "Care for a rabbit in your terminal",
	Long: `rabbitcare is a virtual pet. Feed it, keep its room clean, pet it,
and earn hearts to unlock outfits and backgrounds. The pet keeps living
while the screen is open: stats decay on a timer, so check in daily for
the gift box.

The game saves locally after every action and syncs to a remote save
service in the background when one is configured.`,
}

func init() {
	env, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data", env.DataDir, "Save data directory")
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Tuning config file (yaml)")
	rootCmd.PersistentFlags().StringVar(&flagServerURL, "server", env.ServerURL, "Remote save service URL (empty = local only)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
}

func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "rabbitcare",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

func loadConfig(logger *log.Logger) config.Config {
	cfg, err := config.Load(flagConfigPath)
	if err != nil {
		logger.Warn("config load failed, using defaults", "path", flagConfigPath, "err", err)
		cfg = &config.Config{Tuning: config.Default()}
	}
	cfg.Tuning = config.FromEnv(cfg.Tuning)
	return *cfg
}

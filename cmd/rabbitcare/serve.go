package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"rabbitcare/internal/config"
	"rabbitcare/internal/serverapp"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the remote save service",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		env, err := config.LoadEnv()
		if err != nil {
			return err
		}
		addr := flagAddr
		if addr == "" {
			addr = env.Addr
		}

		handler, closeStore, err := serverapp.NewHandler(serverapp.Options{
			DBPath: env.DBPath,
			Logger: logger,
		})
		if err != nil {
			return err
		}
		defer closeStore()

		srv := &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info("save service listening", "addr", addr, "db", env.DBPath)
			errCh <- srv.ListenAndServe()
		}()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-stop:
			logger.Info("shutting down")
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (default from RABBITCARE_ADDR)")
}

// Package serverapp assembles the save service into a ready http.Handler.
package serverapp

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"rabbitcare/internal/game"
	"rabbitcare/internal/httpmw"
	"rabbitcare/internal/server"
)

type Options struct {
	DBPath string
	Logger *log.Logger
	Clock  game.Clock
}

// NewHandler wires the save store and API behind the middleware chain. The
// returned close func releases the database; call it on shutdown.
func NewHandler(opts Options) (http.Handler, func() error, error) {
	if opts.DBPath == "" {
		opts.DBPath = "data/rabbitcare.db"
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Clock == nil {
		opts.Clock = game.RealClock{}
	}

	store, err := server.OpenSaveStore(opts.DBPath)
	if err != nil {
		return nil, nil, err
	}

	mux := http.NewServeMux()
	server.NewHandler(store, opts.Clock, opts.Logger).Register(mux)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"ok":true,"service":"rabbitcare","time":"` +
			time.Now().UTC().Format(time.RFC3339) + `"}`))
	})

	handler := httpmw.Chain(
		mux,
		httpmw.WithAccessLog(opts.Logger),
		httpmw.WithRequestID,
		httpmw.WithRecover(opts.Logger),
	)
	return handler, store.Close, nil
}

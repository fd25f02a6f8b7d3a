package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"rabbitcare/internal/game"
)

const defaultTimeout = 8 * time.Second

// envelope is the wire shape every remote response uses.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Client talks to the remote save service. Every method degrades to a
// boolean outcome: the game runs local-only when the network is down, so
// transport errors are logged, never propagated.
type Client struct {
	baseURL  string
	deviceID string
	http     *http.Client
	logger   *log.Logger
}

func NewClient(baseURL, deviceID string, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		deviceID: deviceID,
		http:     &http.Client{Timeout: defaultTimeout},
		logger:   logger,
	}
}

// SetTimeout overrides the default request timeout.
func (c *Client) SetTimeout(d time.Duration) {
	if d > 0 {
		c.http.Timeout = d
	}
}

func (c *Client) url() string {
	return c.baseURL + "/api/game/" + c.deviceID
}

// Load pulls the remote snapshot. ok is false on any transport or decode
// failure; the service returns a default-valued state rather than 404 when
// no record exists yet, so ok=true does not imply a prior save.
func (c *Client) Load(ctx context.Context) (game.State, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(), nil)
	if err != nil {
		return game.State{}, false
	}

	env, ok := c.do(req)
	if !ok || env.Data == nil {
		return game.State{}, false
	}

	var st game.State
	if err := json.Unmarshal(env.Data, &st); err != nil {
		c.logger.Warn("remote state decode failed", "err", err)
		return game.State{}, false
	}
	return st, true
}

// Save pushes the full state snapshot, upsert semantics.
func (c *Client) Save(ctx context.Context, st game.State) bool {
	body, err := json.Marshal(st)
	if err != nil {
		return false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(), bytes.NewReader(body))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	_, ok := c.do(req)
	return ok
}

// Delete removes the remote save record.
func (c *Client) Delete(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.url(), nil)
	if err != nil {
		return false
	}
	_, ok := c.do(req)
	return ok
}

func (c *Client) do(req *http.Request) (envelope, bool) {
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("remote request failed", "method", req.Method, "err", err)
		return envelope{}, false
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		c.logger.Warn("remote response decode failed", "status", resp.StatusCode, "err", err)
		return envelope{}, false
	}
	if !env.Success {
		if env.Error == "" {
			env.Error = fmt.Sprintf("status %d", resp.StatusCode)
		}
		c.logger.Warn("remote request rejected", "method", req.Method, "reason", env.Error)
		return envelope{}, false
	}
	return env, true
}

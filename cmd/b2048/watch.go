package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/vovakirdan/b2048/internal/platform/spectate"
	"github.com/vovakirdan/b2048/internal/platform/tui"
)

// spectateAddress returns the --watch flag or the configured address.
func spectateAddress() string {
	if flagWatch != "" {
		return flagWatch
	}
	return appConfig.Spectate.Address
}

// startSpectate serves the spectator feed when an address is configured and
// makes env publish to it. The returned stop function is never nil.
func startSpectate(env *tui.Env) (stop func(), err error) {
	addr := spectateAddress()
	if addr == "" {
		return func() {}, nil
	}

	hub := spectate.NewHub(env.Logger)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("spectate: %w", err)
	}

	srv := &http.Server{
		Handler:           hub.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			env.Logger.Error("spectate server error", "error", err)
		}
	}()

	env.Logger.Info("spectator feed listening", "address", ln.Addr().String())
	env.Publisher = hub

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			env.Logger.Warn("spectate shutdown", "error", err)
		}
	}, nil
}

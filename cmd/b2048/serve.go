package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/b2048/internal/platform/tui"
	"github.com/vovakirdan/b2048/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with the menu, the game and
the scoreboard. All users share the same leaderboard.

Host key handling:
  - --host-key or ssh.host_key picks the key file
  - a missing key file is generated on first start

Examples:
  b2048 serve                           # Listen on the configured address
  b2048 serve --ssh :2222               # Listen on port 2222
  b2048 serve --host-key ./my_host_key  # Use a specific host key
  b2048 serve --watch :8080             # Also serve the spectator feed

Users can connect with:
  ssh -t localhost -p 2048`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (default from config)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Disconnect idle sessions after this long (default from config)")
	serveCmd.Flags().StringVar(&flagWatch, "watch", "", "Serve the spectator feed on this address (default from config)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}

	sshCfg := appConfig.SSH
	if cmd.Flags().Changed("ssh") {
		sshCfg.Address = flagSSHAddr
	}
	if cmd.Flags().Changed("host-key") {
		sshCfg.HostKey = flagHostKey
	}
	if cmd.Flags().Changed("idle-timeout") {
		sshCfg.IdleTimeout = flagIdleTimeout
	}

	hostKey, err := expandHome(sshCfg.HostKey)
	if err != nil {
		return err
	}

	store, err := storage.Open(appConfig.DBPath)
	if err != nil {
		// Serve anyway, results are just not kept.
		logger.Warn("could not open scores database", "path", appConfig.DBPath, "error", err)
		store = nil
	} else {
		defer store.Close()
	}

	env := tui.Env{Store: store, Logger: logger}
	stop, err := startSpectate(&env)
	if err != nil {
		return err
	}
	defer stop()

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     sshCfg.Address,
		HostKeyPath: hostKey,
		IdleTimeout: sshCfg.IdleTimeout,
		TickRate:    appConfig.TickRate,
	}, env)
	if err != nil {
		return err
	}

	logger.Info("press Ctrl+C to stop", "connect", "ssh -t localhost -p "+port(sshCfg.Address))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return server.ListenAndServe(ctx)
}

// port returns the port part of a listen address.
func port(addr string) string {
	if _, p, err := net.SplitHostPort(addr); err == nil {
		return p
	}
	return addr
}

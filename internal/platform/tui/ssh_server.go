package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/goldminer/internal/config"
	"github.com/vovakirdan/goldminer/internal/core"
	"github.com/vovakirdan/goldminer/internal/progress"
	"github.com/vovakirdan/goldminer/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.goldminer/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the simulation rate for every session.
	TickRate int

	// Game is the tuning every session plays with.
	Game config.GoldMinerConfig
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
		Game:        config.DefaultGoldMinerConfig(),
	}
}

// SSHServer wraps a Wish SSH server that gives every connection its own mine.
// Profiles are keyed by the SSH user name, so progress follows the login.
// A player has at most one live game; their autosaves would overwrite each
// other otherwise.
type SSHServer struct {
	config   SSHServerConfig
	server   *ssh.Server
	store    *storage.Store
	logger   *log.Logger
	sessions sync.Map // ssh session id -> *progress.Session
	players  sync.Map // player -> ssh session id
}

// NewSSHServer creates a new SSH server. store may be nil to serve without
// persistence.
func NewSSHServer(cfg SSHServerConfig, store *storage.Store, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "goldminer-ssh",
		})
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".goldminer", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	// Middlewares run last to first: logging wraps the whole session so it
	// can close the game after the program exits.
	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("No PTY requested", "user", sshSession.User())
		wish.Fatalln(sshSession, "goldminer needs an interactive terminal, connect with ssh -t")
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
	}

	player, id := sshSession.User(), sshSession.Context().SessionID()
	if !s.claim(player, id) {
		s.logger.Warn("Player already connected", "user", player)
		wish.Fatalln(sshSession, "you already have a game running, finish it first")
		return nil, nil
	}

	model, sess, err := NewSession(s.store, s.config.Game, cfg, player, s.logger)
	if err != nil {
		s.release(player, id)
		s.logger.Error("Cannot open session", "user", player, "error", err)
		wish.Fatalln(sshSession, "could not start a game, try again later")
		return nil, nil
	}
	s.sessions.Store(id, sess)

	return model.WithRenderer(bubbletea.MakeRenderer(sshSession)), []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events and ends the game once the
// connection is gone, whether the player quit or dropped.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("Connection opened",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)

		id := sshSession.Context().SessionID()
		if v, ok := s.sessions.LoadAndDelete(id); ok {
			if err := v.(*progress.Session).Close(); err != nil {
				s.logger.Error("Cannot close session", "user", sshSession.User(), "error", err)
			}
		}
		s.release(sshSession.User(), id)
		s.logger.Info("Connection closed",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// claim reserves player for the connection id. It fails while another
// connection holds the player.
func (s *SSHServer) claim(player, id string) bool {
	holder, loaded := s.players.LoadOrStore(player, id)
	return !loaded || holder == id
}

// release frees player if id still holds it.
func (s *SSHServer) release(player, id string) {
	s.players.CompareAndDelete(player, id)
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("Starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-done:
		s.logger.Info("Shutting down...")
		return s.Shutdown()
	case err := <-errCh:
		s.logger.Error("Server error", "error", err)
		return err
	}
}

// Shutdown gracefully stops the server and ends every open session.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)

	var errs []error
	s.players.Clear()
	s.sessions.Range(func(k, v any) bool {
		s.sessions.Delete(k)
		if closeErr := v.(*progress.Session).Close(); closeErr != nil {
			errs = append(errs, closeErr)
		}
		return true
	})
	return errors.Join(append(errs, err)...)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// ActiveSessions returns the number of games currently being played.
func (s *SSHServer) ActiveSessions() int {
	n := 0
	s.sessions.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

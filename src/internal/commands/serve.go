package commands

import (
	"context"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"time"

	"golang.org/x/sys/unix"

	"github.com/merretbuurman/iptables-stats-comparison/src/internal/api"
	"github.com/merretbuurman/iptables-stats-comparison/src/internal/capture"
	"github.com/merretbuurman/iptables-stats-comparison/src/internal/config"
	"github.com/merretbuurman/iptables-stats-comparison/src/internal/log"
)

func CreateServeCommand() *ServeCommand {
	sc := &ServeCommand{
		fs: flag.NewFlagSet("serve", flag.ExitOnError),
	}

	sc.fs.StringVar(&sc.ListenAddr, "listen", "", "Address to bind the HTTP API (overrides api.listen_addr)")
	sc.fs.IntVar(&sc.MaxRestarts, "max-restarts", 0, "Give up after this many server crashes (0 = never)")

	return sc
}

// ServeCommand exposes the comparison over HTTP.
type ServeCommand struct {
	fs  *flag.FlagSet
	cfg *config.Config

	ListenAddr  string
	MaxRestarts int

	source capture.Source
}

func (s *ServeCommand) Name() string {
	return s.fs.Name()
}

func (s *ServeCommand) Init(args []string, ctx *AppContext) error {
	if err := s.fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadAndValidateConfigOrFail(ctx.ConfigPath)
	if err != nil {
		return err
	}
	s.cfg = cfg

	if s.ListenAddr != "" {
		s.cfg.API.ListenAddr = s.ListenAddr
		if err := s.cfg.ValidateConfig(); err != nil {
			return fmt.Errorf("invalid arguments: %v", err)
		}
	}
	log.SetTimestamps(s.cfg.General.Timestamps)

	s.source, err = newSource(s.cfg.General)
	return err
}

func (s *ServeCommand) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), unix.SIGINT, unix.SIGTERM)
	defer stop()

	log.Infof("Starting API server on %s", s.cfg.API.ListenAddr)
	log.Infof("Counters are read with: %s", s.source.Describe())
	log.Infof("Access restricted to loopback and private subnets only")

	supervisor := NewSupervisor(SupervisorConfig{
		Name:        "api-server",
		MaxRestarts: s.MaxRestarts,
	}, s.serve)

	return supervisor.Run(ctx)
}

// serve runs one HTTP server until ctx is cancelled.
func (s *ServeCommand) serve(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.cfg.API.ListenAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.API.ListenAddr, err)
	}

	return serveOn(ctx, listener, api.NewRouter(s.cfg, s.source))
}

// serveOn serves handler on listener and shuts the server down gracefully
// once ctx is cancelled.
func serveOn(ctx context.Context, listener net.Listener, handler http.Handler) error {
	server := &http.Server{
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		// Sampling holds a request open for up to five minutes.
		WriteTimeout: 6 * time.Minute,
		IdleTimeout:  60 * time.Second,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Infof("API server listening on http://%s/api/v1", listener.Addr())
		serverErrors <- server.Serve(listener)
	}()

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil

	case <-ctx.Done():
		log.Infof("Shutting down API server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Errorf("Error during server shutdown: %v", err)
			if err := server.Close(); err != nil {
				return fmt.Errorf("failed to close server: %w", err)
			}
		}

		log.Infof("Server stopped gracefully")
		return ctx.Err()
	}
}

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campushub/campushub/collection"
	"github.com/campushub/campushub/internal/app/stores"
	"github.com/campushub/campushub/internal/bootstrap"
	"github.com/campushub/campushub/internal/config"
)

// Server holds the state for the HTTP server.
type Server struct {
	config        *config.Config
	router        *gin.Engine
	stores        *stores.Stores
	logger        zerolog.Logger
	http          *http.Server
	pollers       []*collection.Poller
	cancelPollers context.CancelFunc
}

// NewServer creates and initializes a new server instance by calling
// the bootstrap functions in order.
func NewServer() (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	st, err := bootstrap.SetupStores(cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup stores: %w", err)
	}

	deps, err := bootstrap.BuildDependencies(cfg, st, lgr)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to setup dependencies: %w", err)
	}

	router := bootstrap.SetupRouter(cfg, deps, lgr)

	ensureStorageDir(cfg, lgr)

	s := &Server{
		config: cfg,
		router: router,
		stores: st,
		logger: lgr,
	}
	return s, nil
}

// ensureStorageDir creates the uploads directory if it does not exist yet.
func ensureStorageDir(cfg *config.Config, lgr zerolog.Logger) {
	uploadPath := cfg.Server.StoragePath
	if _, err := os.Stat(uploadPath); os.IsNotExist(err) {
		if err := os.MkdirAll(uploadPath, os.ModePerm); err != nil {
			lgr.Error().Err(err).Str("path", uploadPath).Msg("Failed to create uploads directory")
		}
	}
}

// Run starts the HTTP server and blocks until shutdown.
func (s *Server) Run() error {
	s.logger.Info().Str("port", s.config.Server.Port).Msg("Starting server...")

	s.http = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	pollerCtx, cancelPollers := context.WithCancel(context.Background())
	s.cancelPollers = cancelPollers
	s.pollers = bootstrap.StartBackgroundPollers(pollerCtx, s.config, s.stores, s.logger)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		serverErrors <- s.http.ListenAndServe()
	}()

	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("error starting server: %w", err)
		}
	case sig := <-osSignals:
		s.logger.Info().Str("signal", sig.String()).Msg("Received OS signal, initiating shutdown...")
	}

	return s.Shutdown(context.Background())
}

// Shutdown gracefully stops the server and closes the store backend.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	shutdownError := false

	if s.cancelPollers != nil {
		s.cancelPollers()
		for _, p := range s.pollers {
			<-p.Done()
		}
		s.logger.Info().Msg("Background pollers stopped.")
	}

	if s.http != nil {
		s.logger.Info().Msg("Shutting down HTTP server...")
		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error().Err(err).Msg("HTTP server shutdown error")
			shutdownError = true
		} else {
			s.logger.Info().Msg("HTTP server gracefully stopped.")
		}
	}

	if s.stores != nil {
		s.logger.Info().Msg("Closing store backend...")
		s.stores.Close()
		s.logger.Info().Msg("Store backend closed.")
	}

	s.logger.Info().Msg("Server shutdown process complete.")
	if shutdownError {
		return errors.New("server shutdown completed with errors")
	}
	return nil
}

package service

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"bulletin/app/auth"
	"bulletin/app/config"
	apperrors "bulletin/app/errors"
	"bulletin/app/repositories"
	"bulletin/app/routes"

	"go.uber.org/zap"
)

// OpenStore opens the badger store described by the storage settings.
func OpenStore(cfg config.Storage, logger *zap.Logger) (*repositories.Store, error) {
	return repositories.Open(repositories.Options{
		Path:     cfg.Path,
		InMemory: cfg.InMemory,
		Logger:   logger,
	})
}

// NewServer builds the HTTP server for the board API on top of store.
func NewServer(cfg *config.Config, store *repositories.Store, logger *zap.Logger) *http.Server {
	router := routes.SetupRoutes(routes.Dependencies{
		Posts:        store.Posts(),
		Comments:     store.Comments(),
		Hasher:       auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		Logger:       logger,
		MaxBodyBytes: cfg.HTTP.MaxBodyBytes,
	})

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		ErrorLog:     zap.NewStdLog(logger),
	}
}

// RunAppServer opens the store and serves the board API until ctx is done.
func RunAppServer(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	store, err := OpenStore(cfg.Storage, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	srv := NewServer(cfg, store, logger)
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return apperrors.Wrapf(err, "listen on %s", srv.Addr)
	}
	return Serve(ctx, srv, ln, cfg.HTTP.ShutdownTimeout, logger)
}

// Serve runs srv on ln. When ctx is done the server drains in-flight
// requests for at most shutdownTimeout.
func Serve(ctx context.Context, srv *http.Server, ln net.Listener, shutdownTimeout time.Duration, logger *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting board service", zap.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if apperrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return apperrors.Wrap(err, "server error")
	case <-ctx.Done():
	}

	logger.Info("shutting down board service")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return apperrors.Wrap(err, "graceful shutdown")
	}
	return nil
}

package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

const SHUTDOWN_TIMEOUT = 5 * time.Second

type EventSpendHttpServer struct {
	router         *Router
	muxRouter      *mux.Router
	addr           string
	allowedOrigins []string
	logger         *zap.Logger
}

func NewEventSpendHttpServer(
	router *Router,
	muxRouter *mux.Router,
	addr string,
	allowedOrigins []string,
	logger *zap.Logger) *EventSpendHttpServer {

	return &EventSpendHttpServer{
		router:         router,
		muxRouter:      muxRouter,
		addr:           addr,
		allowedOrigins: allowedOrigins,
		logger:         logger,
	}
}

// Handler registers the routes and wraps them with logging, panic recovery
// and CORS.
func (s *EventSpendHttpServer) Handler() http.Handler {
	s.router.RegisterRoutes()
	s.muxRouter.Use(RequestLogger(s.logger), Recoverer(s.logger))

	c := cors.New(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Disposition", "Warning"},
	})
	return c.Handler(s.muxRouter)
}

// Start serves until SIGINT or SIGTERM, then shuts down gracefully.
func (s *EventSpendHttpServer) Start() error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("[Server] Starting server", zap.String("addr", s.addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}
	s.logger.Info("[Server] Shutting down the server")

	ctx, cancel := context.WithTimeout(context.Background(), SHUTDOWN_TIMEOUT)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}

	s.logger.Info("[Server] Server exiting")
	return nil
}

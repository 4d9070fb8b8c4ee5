package server

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/franckalain/nutriscan/internal/estimate"
	"github.com/franckalain/nutriscan/internal/logger"
	"github.com/franckalain/nutriscan/internal/models"
	"github.com/franckalain/nutriscan/internal/nutrition"
	"github.com/gorilla/websocket"
)

const maxUploadBytes = 10 << 20

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // In production, this should be more restrictive
	},
}

// Pipeline runs one estimation; *estimate.Service implements it.
type Pipeline interface {
	Estimate(ctx context.Context, kind estimate.Kind, input string) (*models.NutritionRecord, error)
}

type Server struct {
	service Pipeline
	timeout time.Duration
	clients sync.Map
	debug   bool
}

func New(service Pipeline, timeout time.Duration, debug bool) *Server {
	if debug {
		logger.Log.SetDebug(true)
		logger.Log.Info("Debug logging enabled")
	}
	return &Server{
		service: service,
		timeout: timeout,
		debug:   debug,
	}
}

// Handler returns the HTTP routes. staticDir is served at "/" when not empty.
func (s *Server) Handler(staticDir string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("/ws", s.handleWebSocket)

	mux.HandleFunc("POST /api/estimate", s.handleEstimate)
	mux.HandleFunc("POST /api/estimate/text", s.handleEstimateText)
	mux.HandleFunc("POST /api/estimate/dish", s.handleUpload(estimate.KindDish))
	mux.HandleFunc("POST /api/extract", s.handleExtract)
	mux.HandleFunc("POST /api/extract/label", s.handleUpload(estimate.KindLabel))
	mux.HandleFunc("POST /api/rescale", s.handleRescale)
	mux.HandleFunc("OPTIONS /api/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Serve static files
	if staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	}

	return withRequestID(withCORS(mux))
}

func (s *Server) Start(port, staticDir string) error {
	// Setup signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           s.Handler(staticDir),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Infof("Starting server on port %s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	// Wait for shutdown signal
	logger.Log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.timeout+5*time.Second)
	defer cancel()

	s.clients.Range(func(key, value any) bool {
		if conn, ok := value.(*websocket.Conn); ok {
			conn.Close()
		}
		return true
	})
	return srv.Shutdown(shutdownCtx)
}

// requestContext bounds a single estimation; the pipeline itself has no timeout.
func (s *Server) requestContext(parent context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, s.timeout)
}

// statusFor maps pipeline errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, estimate.ErrInvalidInput), errors.Is(err, nutrition.ErrInvalidQuantity):
		return http.StatusBadRequest
	case errors.Is(err, estimate.ErrExtraction):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, estimate.ErrEngine), errors.Is(err, estimate.ErrTextDetection):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage is the error text shown to clients. Engine and OCR service
// causes stay in the logs.
func publicMessage(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "the estimation took too long, please try again"
	case errors.Is(err, estimate.ErrEngine):
		return estimate.ErrEngine.Error()
	case errors.Is(err, estimate.ErrTextDetection):
		return estimate.ErrTextDetection.Error()
	case errors.Is(err, estimate.ErrExtraction):
		return estimate.ErrExtraction.Error()
	}
	return err.Error()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// Package web serves the upload form and a JSON endpoint on top of batch.Processor.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/batch"
)

const (
	// DefaultMaxUploadBytes caps the whole multipart body.
	DefaultMaxUploadBytes int64 = 32 << 20

	shutdownTimeout = 5 * time.Second
)

//go:embed templates/*.html
var templatesFS embed.FS

// Processor is the part of batch.Processor used by the handlers.
type Processor interface {
	ProcessUploads(ctx context.Context, uploads []batch.Upload, jobTitle string) ([]batch.Result, error)
}

type Config struct {
	MaxUploadBytes int64
}

type Server struct {
	engine    *gin.Engine
	processor Processor
	logger    *zap.Logger
	maxUpload int64
}

// New builds the gin engine with middleware and routes registered.
func New(processor Processor, cfg Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	maxUpload := cfg.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = DefaultMaxUploadBytes
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.MaxMultipartMemory = maxUpload
	engine.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))

	engine.Use(
		RequestID(),
		Recovery(logger),
		RequestLogger(logger),
	)

	s := &Server{
		engine:    engine,
		processor: processor,
		logger:    logger,
		maxUpload: maxUpload,
	}

	engine.GET("/", s.index)
	engine.POST("/analyze", s.analyzeForm)
	engine.GET("/healthz", s.healthz)

	api := engine.Group("/api/v1")
	api.POST("/analyze", s.analyzeAPI)

	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("listen", addr))
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

	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	return <-errCh
}

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	stego "github.com/yyyoichi/nibble_stego"
	"github.com/yyyoichi/nibble_stego/internal/imageio"
)

// Server exposes encode and decode over HTTP. Uploads arrive as multipart
// forms and results are returned as PNG downloads.
type Server struct {
	stego     *stego.Stego
	logger    *zap.Logger
	maxUpload int64
	maxPixels int64
	name      func() string
}

// New returns a Server. maxUpload bounds each request body in bytes and
// maxPixels bounds the declared size of each uploaded image.
func New(s *stego.Stego, logger *zap.Logger, maxUpload, maxPixels int64) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		stego:     s,
		logger:    logger,
		maxUpload: maxUpload,
		maxPixels: maxPixels,
		name:      imageio.RandomName,
	}
}

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/encode", s.encodeHandler)
	mux.HandleFunc("/decode", s.decodeHandler)
	mux.HandleFunc("/healthz", s.healthHandler)
	return mux
}

// Handler returns the routes wrapped in request logging.
func (s *Server) Handler() http.Handler {
	return LoggingMiddleware(s.logger, s.ServeMux())
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware logs method, path, status, and duration
func LoggingMiddleware(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", lrw.statusCode),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func (s *Server) encodeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if err := s.parseForm(w, r); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	carrier, err := s.formImage(r, "carrier")
	if err != nil {
		s.writeUploadError(w, err)
		return
	}
	secret, err := s.formImage(r, "secret")
	if err != nil {
		s.writeUploadError(w, err)
		return
	}

	// secret is scaled to the carrier's size
	b := carrier.Bounds()
	out, err := s.stego.EncodeImage(r.Context(), carrier, imageio.Resize(secret, b.Dx(), b.Dy()))
	if err != nil {
		s.writeCodecError(w, err)
		return
	}
	s.writePNG(w, out)
}

func (s *Server) decodeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if err := s.parseForm(w, r); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	src, err := s.formImage(r, "image")
	if err != nil {
		s.writeUploadError(w, err)
		return
	}
	out, err := s.stego.DecodeImage(r.Context(), src)
	if err != nil {
		s.writeCodecError(w, err)
		return
	}
	s.writePNG(w, out)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	io.WriteString(w, "ok")
}

func (s *Server) parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		return fmt.Errorf("invalid multipart form: %w", err)
	}
	return nil
}

func (s *Server) formImage(r *http.Request, field string) (image.Image, error) {
	f, _, err := r.FormFile(field)
	if err != nil {
		return nil, fmt.Errorf("missing file field %q", field)
	}
	defer f.Close()
	img, _, err := imageio.DecodeLimit(f, s.maxPixels)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", field, err)
	}
	return img, nil
}

func (s *Server) writeUploadError(w http.ResponseWriter, err error) {
	if errors.Is(err, imageio.ErrTooLarge) {
		s.writeJSONError(w, http.StatusRequestEntityTooLarge, err.Error())
		return
	}
	s.writeJSONError(w, http.StatusBadRequest, err.Error())
}

func (s *Server) writePNG(w http.ResponseWriter, img image.Image) {
	var buf bytes.Buffer
	if err := imageio.EncodePNG(&buf, img); err != nil {
		s.logger.Error("png encode failed", zap.Error(err))
		s.writeJSONError(w, http.StatusInternalServerError, "Failed to encode result")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", s.name()))
	w.Write(buf.Bytes())
}

func (s *Server) writeCodecError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, stego.ErrDimensionMismatch),
		errors.Is(err, stego.ErrInvalidChannelCount),
		errors.Is(err, stego.ErrInvalidShape):
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("codec failed", zap.Error(err))
		s.writeJSONError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

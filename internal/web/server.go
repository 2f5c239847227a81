package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"deblinger/internal/decklist"
	"deblinger/internal/resolver"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

//go:embed static
var staticFiles embed.FS

// maxDecklistBytes caps request bodies.
const maxDecklistBytes = 1 << 20

// ConvertRequest is the JSON body accepted by POST /api/convert.
type ConvertRequest struct {
	Decklist string `json:"decklist"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server serves the conversion page and JSON API.
type Server struct {
	converter *decklist.Converter
	resolver  *resolver.Resolver
	version   string
	mux       *http.ServeMux
}

// NewServer creates a server resolving against r.
func NewServer(r *resolver.Resolver, version string) *Server {
	s := &Server{
		converter: decklist.NewConverter(r),
		resolver:  r,
		version:   version,
		mux:       http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	staticFS, _ := fs.Sub(staticFiles, "static")

	s.mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		f, err := staticFS.Open("index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		io.Copy(w, f)
	})

	s.mux.HandleFunc("POST /api/convert", s.handleConvert)
	s.mux.HandleFunc("GET /api/resolve", s.handleResolve)
	s.mux.HandleFunc("GET /api/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
	})
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		state := "ok"
		if !s.resolver.Ready() {
			status = http.StatusServiceUnavailable
			state = "reprint data not loaded"
		}
		writeJSON(w, status, map[string]any{"status": state, "groups": s.resolver.Table().Len()})
	})
}

// Handler returns the HTTP handler with request ids and access logging.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", id)

		s.mux.ServeHTTP(w, r)

		log.Debug().
			Str("request_id", id).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("HTTP request")
	})
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	log.Info().Str("addr", addr).Msg("HTTP server listening")

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

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDecklistBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "decklist too large"})
			return
		}
		log.Warn().Err(err).Str("request_id", w.Header().Get("X-Request-ID")).Msg("Failed to read request body")
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "could not read request body"})
		return
	}

	text := string(body)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req ConvertRequest
		if err := json.Unmarshal(body, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
			return
		}
		text = req.Decklist
	}

	result, err := s.converter.Convert(text)
	if err != nil {
		log.Error().Err(err).Str("request_id", w.Header().Get("X-Request-ID")).Msg("Conversion failed")
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: decklist.TableNotLoadedMessage})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	name, set, number := q.Get("name"), q.Get("set"), q.Get("number")
	if name == "" || set == "" || number == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "name, set and number are required"})
		return
	}

	cardType := resolver.Pokemon
	if raw := q.Get("type"); raw != "" {
		t, err := resolver.ParseCardType(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		cardType = t
	}

	writeJSON(w, http.StatusOK, s.resolver.Explain(name, set, number, cardType))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("Failed to write JSON response")
	}
}

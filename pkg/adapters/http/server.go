// Package http exposes wizard sessions as a JSON API with server-sent
// events for state diffs.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"

	"github.com/aretw0/stepwise"
	"github.com/aretw0/stepwise/internal/logging"
	"github.com/aretw0/stepwise/pkg/adapters/codec"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/ports"
	"github.com/aretw0/stepwise/pkg/session"
)

// DefaultMaxUploadMemory bounds the in-memory part of a multipart upload.
const DefaultMaxUploadMemory = 8 << 20

// Server serves one form. Sessions are serialized through the manager.
type Server struct {
	engine   ports.WizardEngine
	sessions *session.Manager
	streams  *StreamManager
	text     *textSanitizer
	logger   *slog.Logger
	metrics  http.Handler
	newID    func() string
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics mounts a Prometheus handler at /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithIDGenerator replaces the random session ID generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Server) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// NewServer creates a server for engine backed by sessions.
func NewServer(engine ports.WizardEngine, sessions *session.Manager, opts ...Option) *Server {
	s := &Server{
		engine:   engine,
		sessions: sessions,
		text:     newTextSanitizer(),
		logger:   logging.NewNop(),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.streams = NewStreamManager(s.logger)
	return s
}

// NewHandler creates the HTTP handler for engine.
func NewHandler(engine ports.WizardEngine, sessions *session.Manager, opts ...Option) http.Handler {
	return enableCORS(NewServer(engine, sessions, opts...).Routes())
}

// Routes builds the router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.getHealth)
	r.Get("/info", s.getInfo)
	r.Get("/form", s.getForm)
	r.Get("/openapi.yaml", s.getOpenAPI)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Post("/sessions", s.createSession)
	r.Route("/sessions/{id}", func(r chi.Router) {
		r.Get("/", s.getSession)
		r.Delete("/", s.deleteSession)
		r.Get("/events", s.subscribeEvents)

		r.Put("/fields/{key}", s.updateField)
		r.Post("/fields/{key}/toggle", s.toggleField)
		r.Post("/fields/{key}/files", s.uploadFiles)

		r.Post("/advance", s.navigate(s.engine.Advance))
		r.Post("/retreat", s.navigate(s.engine.Retreat))
		r.Post("/reset", s.navigate(s.engine.Reset))
		r.Post("/jump", s.toStep(s.engine.JumpTo))
		r.Post("/edit", s.toStep(s.engine.Edit))
		r.Post("/submit", s.submit)
	})
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// viewResponse is the body of every session endpoint.
type viewResponse struct {
	SessionID string `json:"session_id"`
	*domain.View
	Receipt *domain.Receipt `json:"receipt,omitempty"`
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, status int, state *domain.State, receipt *domain.Receipt) {
	view, err := s.engine.Render(r.Context(), state)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("render: %w", err))
		return
	}
	s.writeJSON(w, status, viewResponse{SessionID: state.SessionID, View: view, Receipt: receipt})
}

// apply runs op on the stored session, persists the result and publishes
// the diff to subscribers while the session is still locked.
func (s *Server) apply(ctx context.Context, id string, op func(context.Context, *domain.State) (*domain.State, error)) (*domain.State, error) {
	return s.sessions.UpdateAndNotify(ctx, id, func(current *domain.State) (*domain.State, error) {
		return op(ctx, current)
	}, func(prev, next *domain.State) {
		s.publish(id, prev, next)
	})
}

func (s *Server) publish(id string, prev, next *domain.State) {
	diff := domain.Diff(prev, next)
	if diff == nil {
		return
	}
	payload, err := json.Marshal(diff)
	if err != nil {
		s.logger.Error("diff encode failed", "session_id", id, "err", err)
		return
	}
	s.streams.Broadcast(id, payload)
}

func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if doc, err := Spec(); err == nil && doc.Info != nil {
		apiVersion = doc.Info.Version
	} else if err != nil {
		s.logger.Warn("openapi document unavailable", "err", err)
	}
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "stepwise-http",
		"version":     strings.TrimSpace(stepwise.Version),
		"api_version": apiVersion,
	})
}

func (s *Server) getForm(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.engine.Inspect())
}

func (s *Server) getOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/yaml")
	_, _ = w.Write(rawSpec)
}

type createRequest struct {
	SessionID string `json:"session_id"`
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var body createRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		s.writeError(w, r, fmt.Errorf("%w: invalid request body: %v", errBadRequest, err))
		return
	}
	id := strings.TrimSpace(body.SessionID)
	if id == "" {
		id = s.newID()
	}

	state, created, err := s.sessions.LoadOrStart(r.Context(), id, s.engine)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
		s.logger.InfoContext(r.Context(), "session created", "session_id", id)
	}
	s.respond(w, r, status, state, nil)
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	state, err := s.sessions.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, state, nil)
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type updateRequest struct {
	Value any `json:"value"`
}

func (s *Server) field(r *http.Request) (*domain.Field, error) {
	key := chi.URLParam(r, "key")
	field, ok := s.engine.Inspect().Field(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownField, key)
	}
	return field, nil
}

func (s *Server) updateField(w http.ResponseWriter, r *http.Request) {
	field, err := s.field(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var body updateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: invalid request body: %v", errBadRequest, err))
		return
	}
	value, err := codec.DecodeValue(field, body.Value)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if value, err = s.text.Value(field, value); err != nil {
		s.writeError(w, r, err)
		return
	}

	state, err := s.apply(r.Context(), chi.URLParam(r, "id"), func(ctx context.Context, st *domain.State) (*domain.State, error) {
		return s.engine.Update(ctx, st, field.Key, value)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, state, nil)
}

func (s *Server) toggleField(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	state, err := s.apply(r.Context(), chi.URLParam(r, "id"), func(ctx context.Context, st *domain.State) (*domain.State, error) {
		return s.engine.Toggle(ctx, st, key)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, state, nil)
}

// uploadFiles records the names, sizes and content types of the parts named
// "file". Contents are discarded.
func (s *Server) uploadFiles(w http.ResponseWriter, r *http.Request) {
	field, err := s.field(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if field.Kind != domain.FieldFile {
		s.writeError(w, r, fmt.Errorf("%w: %q is %s, not file", domain.ErrValueShape, field.Key, field.Kind))
		return
	}
	if err := r.ParseMultipartForm(DefaultMaxUploadMemory); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: invalid multipart body: %v", errBadRequest, err))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	headers := r.MultipartForm.File["file"]
	refs := make([]domain.FileRef, 0, len(headers))
	for _, h := range headers {
		refs = append(refs, domain.FileRef{
			Name:        h.Filename,
			Size:        h.Size,
			ContentType: h.Header.Get("Content-Type"),
		})
	}

	var value domain.Value
	switch {
	case field.Multiple:
		value = domain.FilesValue(refs...)
	case len(refs) == 1:
		value = domain.FileValue(refs[0])
	default:
		s.writeError(w, r, fmt.Errorf("%w: %q accepts exactly one file, got %d", errBadRequest, field.Key, len(refs)))
		return
	}

	state, err := s.apply(r.Context(), chi.URLParam(r, "id"), func(ctx context.Context, st *domain.State) (*domain.State, error) {
		return s.engine.Update(ctx, st, field.Key, value)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, state, nil)
}

func (s *Server) navigate(op func(context.Context, *domain.State) (*domain.State, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := s.apply(r.Context(), chi.URLParam(r, "id"), op)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.respond(w, r, http.StatusOK, state, nil)
	}
}

func (s *Server) toStep(op func(context.Context, *domain.State, int) (*domain.State, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var step int
		if err := runtime.BindQueryParameter("form", true, true, "step", r.URL.Query(), &step); err != nil {
			s.writeError(w, r, fmt.Errorf("%w: invalid format for parameter step: %v", errBadRequest, err))
			return
		}
		state, err := s.apply(r.Context(), chi.URLParam(r, "id"), func(ctx context.Context, st *domain.State) (*domain.State, error) {
			return op(ctx, st, step)
		})
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.respond(w, r, http.StatusOK, state, nil)
	}
}

func (s *Server) submit(w http.ResponseWriter, r *http.Request) {
	var receipt *domain.Receipt
	state, err := s.apply(r.Context(), chi.URLParam(r, "id"), func(ctx context.Context, st *domain.State) (*domain.State, error) {
		next, rc, err := s.engine.Submit(ctx, st)
		receipt = rc
		return next, err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, state, receipt)
}

// subscribeEvents streams state diffs of one session as server-sent events.
// The optional watch list keeps only diffs touching the named parts.
func (s *Server) subscribeEvents(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var watch []string
	if err := runtime.BindQueryParameter("form", false, false, "watch", r.URL.Query(), &watch); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: invalid format for parameter watch: %v", errBadRequest, err))
		return
	}
	if _, err := s.sessions.Load(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		s.writeError(w, r, errors.New("streaming not supported"))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.streams.Subscribe(id)
	defer cancel()

	s.logger.DebugContext(r.Context(), "sse subscribed", "session_id", id, "watch", watch)
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.DebugContext(r.Context(), "sse client disconnected", "session_id", id)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if !matchesWatch(msg, watch) {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func matchesWatch(msg []byte, watch []string) bool {
	if len(watch) == 0 {
		return true
	}
	var diff domain.StateDiff
	if err := json.Unmarshal(msg, &diff); err != nil {
		return true
	}
	for _, part := range watch {
		switch strings.TrimSpace(part) {
		case "values":
			if len(diff.Values) > 0 {
				return true
			}
		case "step":
			if diff.CurrentStep != nil {
				return true
			}
		case "status":
			if diff.Status != nil {
				return true
			}
		case "history":
			if len(diff.History) > 0 {
				return true
			}
		}
	}
	return false
}

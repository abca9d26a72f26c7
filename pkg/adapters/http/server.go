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
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/inkling"
	"github.com/aretw0/inkling/api"
	"github.com/aretw0/inkling/internal/compiler"
	"github.com/aretw0/inkling/pkg/path"
	"github.com/aretw0/inkling/pkg/ports"
)

// maxDocumentSize bounds PUT /stories/{id} bodies.
const maxDocumentSize = 4 << 20

// Config wires the server to its collaborators. Only Loader is required.
type Config struct {
	Loader ports.StoryLoader
	// Writer enables PUT /stories/{id}. Defaults to Loader when it
	// also implements ports.StoryWriter.
	Writer ports.StoryWriter
	// Counters returns the counter store for a story. Nil keeps counts in memory.
	Counters func(storyID string) ports.CounterStore
	// Hooks are attached to every loaded story, next to the event stream.
	Hooks inkling.Hooks
	// Gatherer enables GET /metrics.
	Gatherer prometheus.Gatherer
	// ValidateRequests checks parameters and JSON bodies against the
	// OpenAPI document before they reach a handler.
	ValidateRequests bool
	Logger           *slog.Logger
}

// Server exposes stories from a loader as a JSON API.
type Server struct {
	cfg     Config
	logger  *slog.Logger
	Streams *StreamManager

	mu      sync.Mutex
	stories map[string]*inkling.Story
}

// NewServer creates a Server. Use Handler to obtain its routes.
func NewServer(cfg Config) *Server {
	if cfg.Writer == nil {
		if w, ok := cfg.Loader.(ports.StoryWriter); ok {
			cfg.Writer = w
		}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Server{
		cfg:     cfg,
		logger:  logger,
		Streams: NewStreamManager(logger),
		stories: make(map[string]*inkling.Story),
	}
}

// NewHandler is a shorthand for NewServer(cfg).Handler().
func NewHandler(cfg Config) http.Handler {
	return NewServer(cfg).Handler()
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	return enableCORS(s.routes())
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	if s.cfg.ValidateRequests {
		if validate, err := s.openAPIValidator(); err != nil {
			s.logger.Error("Request validation disabled", "error", err)
		} else {
			r.Use(validate)
		}
	}

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	if s.cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/stories", func(r chi.Router) {
		r.Get("/", s.ListStories)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetStory)
			r.Put("/", s.PutStory)
			r.Get("/hierarchy", s.GetHierarchy)
			r.Get("/resolve", s.Resolve)
			r.Get("/leaf", s.LandingPoint)
			r.Get("/visits", s.GetVisits)
			r.Post("/visits", s.PostVisit)
			r.Post("/turns", s.PostTurn)
			r.Get("/events", s.SubscribeEvents)
		})
	})

	return r
}

func (s *Server) openAPIValidator() (func(http.Handler) http.Handler, error) {
	doc, err := api.Load(context.Background())
	if err != nil {
		return nil, err
	}
	return requestValidator(doc, s.logger)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, http.StatusOK, map[string]string{
		"app":     "inkling-http",
		"version": strings.TrimSpace(inkling.Version),
	})
}

// GetOpenAPI handles the GET /openapi.yaml request.
func (s *Server) GetOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/yaml")
	if _, err := w.Write(api.Spec); err != nil {
		s.logger.Error("GetOpenAPI response write failed", "error", err)
	}
}

// ListStories handles the GET /stories request.
func (s *Server) ListStories(w http.ResponseWriter, r *http.Request) {
	ids, err := s.cfg.Loader.ListStories(r.Context())
	if err != nil {
		s.fail(w, "ListStories", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, s.logger, http.StatusOK, map[string][]string{"stories": ids})
}

// GetStory handles the GET /stories/{id} request and returns the raw document.
func (s *Server) GetStory(w http.ResponseWriter, r *http.Request) {
	id, ok := storyID(w, r)
	if !ok {
		return
	}
	data, err := s.cfg.Loader.LoadStory(r.Context(), id)
	if err != nil {
		s.fail(w, "GetStory", err)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	if _, err := w.Write(data); err != nil {
		s.logger.Error("GetStory response write failed", "error", err)
	}
}

// PutStory handles the PUT /stories/{id} request. The document must compile
// before it is stored.
func (s *Server) PutStory(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Writer == nil {
		http.Error(w, "Story storage is read-only", http.StatusMethodNotAllowed)
		return
	}
	id, ok := storyID(w, r)
	if !ok {
		return
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxDocumentSize+1))
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("PutStory: Invalid request body", "error", err)
		return
	}
	if len(data) > maxDocumentSize {
		http.Error(w, "Document too large", http.StatusRequestEntityTooLarge)
		return
	}
	if _, err := compiler.Parse(data); err != nil {
		s.fail(w, "PutStory", fmt.Errorf("story %q rejected: %w", id, err))
		return
	}
	if err := s.cfg.Writer.SaveStory(r.Context(), id, data); err != nil {
		s.fail(w, "PutStory", err)
		return
	}

	s.mu.Lock()
	delete(s.stories, id)
	s.mu.Unlock()

	s.logger.Info("Story saved", "story", id, "size", len(data))
	w.WriteHeader(http.StatusNoContent)
}

// GetHierarchy handles the GET /stories/{id}/hierarchy request.
// The optional "point" query parameter marks an object in the dump.
func (s *Server) GetHierarchy(w http.ResponseWriter, r *http.Request) {
	story, ok := s.story(w, r)
	if !ok {
		return
	}

	raw, ok := queryParam(w, r, "point")
	if !ok {
		return
	}
	var out string
	if raw != "" {
		p, ok := queryPath(w, raw)
		if !ok {
			return
		}
		out = story.Hierarchy(story.ContentAtPath(r.Context(), p).Obj)
	} else {
		out = story.Hierarchy(nil)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := io.WriteString(w, out); err != nil {
		s.logger.Error("GetHierarchy response write failed", "error", err)
	}
}

// Resolve handles the GET /stories/{id}/resolve?path=... request.
func (s *Server) Resolve(w http.ResponseWriter, r *http.Request) {
	story, ok := s.story(w, r)
	if !ok {
		return
	}
	p, ok := pathParam(w, r)
	if !ok {
		return
	}

	res := story.ContentAtPath(r.Context(), p)
	writeJSON(w, s.logger, http.StatusOK, ResolveResponse{
		Path:        p.String(),
		Approximate: res.Approximate,
		Object:      describeObject(res.Obj),
	})
}

// LandingPoint handles the GET /stories/{id}/leaf?path=... request.
func (s *Server) LandingPoint(w http.ResponseWriter, r *http.Request) {
	story, ok := s.story(w, r)
	if !ok {
		return
	}
	p, ok := pathParam(w, r)
	if !ok {
		return
	}

	obj, exact := story.LandingPoint(r.Context(), p)
	writeJSON(w, s.logger, http.StatusOK, ResolveResponse{
		Path:        p.String(),
		Approximate: !exact,
		Object:      describeObject(obj),
	})
}

// GetVisits handles the GET /stories/{id}/visits?path=... request.
func (s *Server) GetVisits(w http.ResponseWriter, r *http.Request) {
	story, ok := s.story(w, r)
	if !ok {
		return
	}
	raw, ok := queryParam(w, r, "path")
	if !ok {
		return
	}
	c, ok := s.container(w, r, story, raw)
	if !ok {
		return
	}

	resp := VisitsResponse{Path: c.Path().String(), Turn: story.CurrentTurn()}
	if n, err := story.VisitCount(r.Context(), c); err == nil {
		resp.Visits = &n
	} else if !errors.Is(err, inkling.ErrNotCounted) {
		s.fail(w, "GetVisits", err)
		return
	}
	if since, err := story.TurnsSince(r.Context(), c); err == nil {
		resp.TurnsSince = &since
	} else if !errors.Is(err, inkling.ErrNotCounted) {
		s.fail(w, "GetVisits", err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, resp)
}

// PostVisit handles the POST /stories/{id}/visits request.
func (s *Server) PostVisit(w http.ResponseWriter, r *http.Request) {
	story, ok := s.story(w, r)
	if !ok {
		return
	}

	var body VisitRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("PostVisit: Invalid request body", "error", err)
		return
	}
	c, ok := s.container(w, r, story, body.Path)
	if !ok {
		return
	}
	if err := story.Visit(r.Context(), c, body.AtStart); err != nil {
		s.fail(w, "PostVisit", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PostTurn handles the POST /stories/{id}/turns request.
func (s *Server) PostTurn(w http.ResponseWriter, r *http.Request) {
	story, ok := s.story(w, r)
	if !ok {
		return
	}
	writeJSON(w, s.logger, http.StatusOK, map[string]int{"turn": story.NextTurn()})
}

// story returns the compiled story named by the {id} URL parameter,
// loading it on first use.
func (s *Server) story(w http.ResponseWriter, r *http.Request) (*inkling.Story, bool) {
	id, ok := storyID(w, r)
	if !ok {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if st, ok := s.stories[id]; ok {
		return st, true
	}

	opts := []inkling.Option{
		inkling.WithLogger(s.logger),
		inkling.WithHooks(inkling.Combine(s.cfg.Hooks, s.streamHooks(id))),
	}
	if s.cfg.Counters != nil {
		opts = append(opts, inkling.WithCounterStore(s.cfg.Counters(id)))
	}

	st, err := inkling.Load(r.Context(), s.cfg.Loader, id, opts...)
	if err != nil {
		s.fail(w, "LoadStory", err)
		return nil, false
	}
	s.stories[id] = st
	s.logger.Info("Story loaded", "story", id)
	return st, true
}

func (s *Server) streamHooks(id string) inkling.Hooks {
	return inkling.Hooks{
		OnVisit: func(_ context.Context, e *inkling.VisitEvent) {
			if bytes, err := json.Marshal(e); err == nil {
				s.Streams.Broadcast(id, string(bytes))
			}
		},
	}
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	var docErr *compiler.DocumentError
	switch {
	case errors.Is(err, ports.ErrStoryNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.As(err, &docErr):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		s.logger.Warn(op+" failed", "error", err)
	default:
		http.Error(w, fmt.Sprintf("%s error: %v", op, err), http.StatusInternalServerError)
		s.logger.Error(op+" failed", "error", err)
	}
}

func queryPath(w http.ResponseWriter, raw string) (path.Path, bool) {
	p, err := path.Parse(raw)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid path: %v", err), http.StatusBadRequest)
		return path.Path{}, false
	}
	return p, true
}

// pathParam binds the "path" query parameter as a content path.
func pathParam(w http.ResponseWriter, r *http.Request) (path.Path, bool) {
	raw, ok := queryParam(w, r, "path")
	if !ok {
		return path.Path{}, false
	}
	return queryPath(w, raw)
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Response encode failed", "error", err)
	}
}

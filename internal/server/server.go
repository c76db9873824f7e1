package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ChicagoDave/fieldplanner/pkg/cost"
	"github.com/ChicagoDave/fieldplanner/pkg/errors"
	"github.com/ChicagoDave/fieldplanner/pkg/render"
	"github.com/ChicagoDave/fieldplanner/pkg/scene"
	"github.com/ChicagoDave/fieldplanner/pkg/spec"
	"github.com/ChicagoDave/fieldplanner/pkg/store"
	"github.com/ChicagoDave/fieldplanner/pkg/validation"
	"github.com/ChicagoDave/fieldplanner/pkg/wiring"
)

// ProjectScenario is the name under which the project directory's scenario
// is served, alongside the built-in catalog.
const ProjectScenario = "project"

// Server is the local development server for interactive design. Every
// request builds a fresh result; nothing computed is shared between
// requests.
type Server struct {
	projectPath string
	port        int
	logger      *log.Logger
	store       *store.Store
}

// New creates a server. projectPath may be empty, in which case only the
// built-in scenarios are served.
func New(projectPath string, port int, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		projectPath: projectPath,
		port:        port,
		logger:      logger,
	}
}

// SetStore records every wiring request in st.
func (s *Server) SetStore(st *store.Store) {
	s.store = st
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handleIndex)
	r.Route("/api", func(r chi.Router) {
		r.Get("/scenarios", s.handleScenarios)
		r.Route("/scenarios/{name}", func(r chi.Router) {
			r.Get("/", s.handleScenario)
			r.Get("/wiring", s.handleWiring)
			r.Get("/scene", s.handleScene)
			r.Get("/cost", s.handleCost)
			r.Get("/diagram.svg", s.handleDiagram)
		})
		r.Get("/runs", s.handleRuns)
		r.Get("/runs/{id}", s.handleRun)
	})
	return r
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("fieldplanner server starting", "url", fmt.Sprintf("http://localhost:%d", s.port))
	if s.projectPath != "" {
		s.logger.Info("serving project", "path", s.projectPath)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"elapsed", time.Since(start).Round(time.Microsecond),
		)
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<!DOCTYPE html>
<html><head><title>FieldPlanner</title></head>
<body style="margin:0;background:#111;color:#fff;font-family:system-ui;display:flex;align-items:center;justify-content:center;height:100vh">
<div style="text-align:center">
<h1>FieldPlanner</h1>
<p>Scenarios are listed at <a style="color:#6cf" href="/api/scenarios">/api/scenarios</a>.</p>
</div>
</body></html>`)
}

type scenarioSummary struct {
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	Modules       int    `json:"modules"`
	MaxStringSize int    `json:"max_string_size"`
	Strategy      string `json:"strategy"`
}

func summarize(name string, sc *spec.Scenario) scenarioSummary {
	strategy := sc.Strategy
	if strategy == "" {
		strategy = wiring.StrategyInsertion
	}
	return scenarioSummary{
		Name:          name,
		Description:   sc.Description,
		Modules:       sc.ModuleCount(),
		MaxStringSize: sc.MaxStringSize,
		Strategy:      strategy,
	}
}

func (s *Server) handleScenarios(w http.ResponseWriter, _ *http.Request) {
	out := []scenarioSummary{}
	if s.projectPath != "" {
		if sc, err := spec.LoadProject(s.projectPath); err == nil {
			out = append(out, summarize(ProjectScenario, sc))
		} else {
			s.logger.Warn("project scenario unavailable", "err", err)
		}
	}
	for _, name := range spec.Names() {
		sc, _ := spec.Lookup(name)
		out = append(out, summarize(name, sc))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleScenario(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	sc, err := s.scenario(name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"scenario":   sc,
		"validation": validation.ValidateScenario(sc),
	})
}

func (s *Server) handleWiring(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	res, err := s.build(r, name)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if s.store != nil {
		run := store.NewRun(name, res)
		if err := s.store.Save(r.Context(), run); err != nil {
			s.logger.Error("recording run", "err", err)
		} else {
			w.Header().Set("X-Run-ID", run.ID)
		}
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	res, err := s.build(r, name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	g := scene.Assemble(res)
	g.Metadata.Scenario = name
	writeJSON(w, http.StatusOK, g)
}

func (s *Server) handleCost(w http.ResponseWriter, r *http.Request) {
	res, err := s.build(r, chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	report, err := cost.Estimate(res, cost.DefaultRates())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleDiagram(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	res, err := s.build(r, name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	detailed := r.URL.Query().Get("detailed") == "true"
	svg, err := render.RenderSVG(r.Context(), render.ToDOT(res, render.Options{Detailed: detailed}))
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(svg)
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusOK, []*store.Run{})
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			s.writeError(w, errors.New(errors.ErrCodeInvalidArgument, "limit must be an integer, got %q", v))
			return
		}
		limit = n
	}
	runs, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.store == nil {
		s.writeError(w, errors.New(errors.ErrCodeNotFound, "run %s not found", id))
		return
	}
	run, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// scenario resolves name against the project and the built-in catalog.
func (s *Server) scenario(name string) (*spec.Scenario, error) {
	if name == ProjectScenario && s.projectPath != "" {
		return spec.LoadProject(s.projectPath)
	}
	return spec.Lookup(name)
}

// build resolves the scenario, applies the k and strategy query overrides,
// validates and wires it.
func (s *Server) build(r *http.Request, name string) (*wiring.Result, error) {
	sc, err := s.scenario(name)
	if err != nil {
		return nil, err
	}

	q := r.URL.Query()
	if v := q.Get("k"); v != "" {
		k, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidArgument, "k must be an integer, got %q", v)
		}
		sc.MaxStringSize = k
	}
	if v := q.Get("strategy"); v != "" {
		sc.Strategy = v
	}

	if err := validation.ValidateScenario(sc).Err(); err != nil {
		return nil, err
	}
	res, err := sc.Build()
	if err != nil {
		return nil, err
	}
	s.logger.Debug("wired scenario", "scenario", name, "strategy", res.Strategy,
		"strings", len(res.Strings), "total", res.Total)
	return res, nil
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeInvalidArgument, errors.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	default:
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, map[string]string{
		"error": errors.UserMessage(err),
		"code":  string(errors.GetCode(err)),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

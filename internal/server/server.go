// Package server exposes the tracker over HTTP: problem and contest
// CRUD, solution markdown, dataset export/import, git sync, and static
// frontend hosting.
package server

import (
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/acmcompass/compass/internal/config"
	"github.com/acmcompass/compass/internal/gitsync"
	"github.com/acmcompass/compass/internal/store"
)

// Server wires the stores and the sync orchestrator into an HTTP
// handler.
type Server struct {
	cfg      *config.Config
	logger   *zap.Logger
	problems *store.ProblemStore
	contests *store.ContestStore
	syncer   *gitsync.Syncer
}

// New builds a Server over the data paths derived from cfg.
func New(cfg *config.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	solutions := store.NewSolutionStore(cfg.SolutionsDir())
	return &Server{
		cfg:      cfg,
		logger:   logger,
		problems: store.NewProblemStore(cfg.ProblemsFile(), solutions, logger),
		contests: store.NewContestStore(cfg.ContestsFile(), logger),
		syncer:   gitsync.New(cfg.DataDir(), cfg.SyncConfigFile(), nil, logger),
	}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(api chi.Router) {
		problemHandler := NewProblemHandler(s.problems, s.logger)
		api.Route("/problems", problemHandler.RegisterRoutes)
		api.Get("/export", problemHandler.exportDataset)
		api.Post("/import", problemHandler.importDataset)

		contestHandler := NewContestHandler(s.contests)
		api.Route("/contests", contestHandler.RegisterRoutes)

		syncHandler := NewSyncHandler(s.syncer)
		api.Route("/git", syncHandler.RegisterRoutes)
	})

	// serve the frontend when its directory exists; API-only otherwise
	if info, err := os.Stat(s.cfg.FrontendDir); err == nil && info.IsDir() {
		r.Handle("/*", http.FileServer(http.Dir(s.cfg.FrontendDir)))
	}

	return r
}

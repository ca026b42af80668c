// Package daemon is the HTTP server behind the crucible CLI. It wires the
// question bank, interview orchestration, roster, and intake services and
// exposes them under /v1.
package daemon

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crucible-hq/crucible/internal/config"
	"github.com/crucible-hq/crucible/internal/intake"
	"github.com/crucible-hq/crucible/internal/interview"
	"github.com/crucible-hq/crucible/internal/questionbank"
	"github.com/crucible-hq/crucible/internal/queue"
	"github.com/crucible-hq/crucible/internal/roster"
	"github.com/crucible-hq/crucible/internal/scorer"
	"github.com/crucible-hq/crucible/internal/storage/local"
	"github.com/crucible-hq/crucible/internal/storage/sqlite"
)

// Version is the daemon version reported by /v1/status.
const Version = "0.1.0"

// Server is the crucible daemon HTTP server.
type Server struct {
	cfg    *config.LocalConfig
	server *http.Server
	router *http.ServeMux

	bank      *questionbank.Bank
	interview *interview.Service
	roster    *roster.Service
	extractor *intake.Extractor

	db      *sqlite.DB
	pool    *pgxpool.Pool
	mq      *queue.Connection
	started time.Time
}

// ServerConfig holds configuration for creating a new server.
type ServerConfig struct {
	Config *config.LocalConfig
	Server *config.ServerConfig
	// DataDir overrides the storage location. Empty uses ~/.crucible.
	DataDir string
}

// NewServer creates a daemon server with all services wired up.
func NewServer(ctx context.Context, cfg ServerConfig) (*Server, error) {
	s := &Server{
		cfg:     cfg.Config,
		router:  http.NewServeMux(),
		started: time.Now(),
	}

	bank, err := loadBank(cfg.Config.Interview.BankPath)
	if err != nil {
		return nil, err
	}
	s.bank = bank

	dataDir := cfg.DataDir
	if dataDir == "" {
		dir, err := config.EnsureCrucibleDir()
		if err != nil {
			return nil, fmt.Errorf("get crucible dir: %w", err)
		}
		dataDir = dir
	}

	rosterStore, snapshots, err := s.setupStorage(ctx, cfg, dataDir)
	if err != nil {
		return nil, err
	}

	s.roster = roster.NewService(rosterStore, slog.Default())
	s.extractor = intake.NewExtractor()

	var opts []interview.ServiceOption
	if cfg.Server != nil && cfg.Server.RabbitMQURL != "" {
		mq, err := queue.NewConnection(cfg.Server.RabbitMQURL)
		if err != nil {
			slog.Warn("RabbitMQ unavailable, event publishing disabled", "error", err)
		} else {
			s.mq = mq
			opts = append(opts, interview.WithPublisher(queue.NewProducer(mq, slog.Default())))
		}
	}

	s.interview = interview.NewService(bank, scorer.NewDefault(), snapshots, s.roster, slog.Default(), opts...)

	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", cfg.Config.Daemon.Bind, cfg.Config.Daemon.Port)
	handler := recoveryMiddleware(loggingMiddleware(correlationIDMiddleware(s.router)))
	s.server = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s, nil
}

// loadBank loads the question bank, falling back to the built-in catalog.
func loadBank(path string) (*questionbank.Bank, error) {
	if path == "" {
		return questionbank.Default(), nil
	}
	bank, err := questionbank.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load question bank: %w", err)
	}
	return bank, nil
}

// setupStorage selects the persistence backend: PostgreSQL for the roster
// when a database URL is configured, otherwise SQLite or JSON files per
// the storage config.
func (s *Server) setupStorage(ctx context.Context, cfg ServerConfig, dataDir string) (roster.Store, interview.SnapshotStore, error) {
	if cfg.Server != nil && cfg.Server.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.Server.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to postgres: %w", err)
		}
		s.pool = pool

		pgStore := roster.NewPostgresStore(pool)
		if err := pgStore.EnsureSchema(ctx); err != nil {
			return nil, nil, err
		}

		// The snapshot is daemon-local state either way.
		fileStore, err := local.NewStore(filepath.Join(dataDir, "data"))
		if err != nil {
			return nil, nil, err
		}
		slog.Info("using postgres roster storage")
		return pgStore, interview.NewFileSnapshotStore(fileStore), nil
	}

	switch s.cfg.Storage.Backend {
	case "sqlite":
		path := s.cfg.Storage.Path
		if path == "" {
			path = filepath.Join(dataDir, "crucible.db")
		}
		db, err := sqlite.Open(path)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(); err != nil {
			db.Close()
			return nil, nil, err
		}
		s.db = db
		slog.Info("using sqlite storage", "path", path)
		return sqlite.NewRosterStore(db), sqlite.NewSnapshotStore(db), nil

	default:
		path := s.cfg.Storage.Path
		if path == "" {
			path = filepath.Join(dataDir, "data")
		}
		store, err := local.NewStore(path)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("using json storage", "path", path)
		return roster.NewFileStore(store), interview.NewFileSnapshotStore(store), nil
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health & status
	s.router.HandleFunc("GET /v1/health", s.handleHealth)
	s.router.HandleFunc("GET /v1/status", s.handleStatus)

	// Interview flow
	s.router.HandleFunc("POST /v1/interview", s.handleBeginInterview)
	s.router.HandleFunc("GET /v1/interview", s.handleInterviewStatus)
	s.router.HandleFunc("DELETE /v1/interview", s.handleAbandonInterview)
	s.router.HandleFunc("POST /v1/interview/answer", s.handleSubmitAnswer)
	s.router.HandleFunc("POST /v1/interview/pause", s.handlePauseTimer)
	s.router.HandleFunc("POST /v1/interview/resume-timer", s.handleResumeTimer)
	s.router.HandleFunc("POST /v1/interview/retry-scoring", s.handleRetryScoring)
	s.router.HandleFunc("GET /v1/interview/resumable", s.handleResumable)
	s.router.HandleFunc("POST /v1/interview/resume", s.handleResumeInterview)

	// Resume intake
	s.router.HandleFunc("POST /v1/intake", s.handleIntake)

	// Candidate roster
	s.router.HandleFunc("POST /v1/candidates", s.handleCreateCandidate)
	s.router.HandleFunc("GET /v1/candidates", s.handleListCandidates)
	s.router.HandleFunc("GET /v1/candidates/stats", s.handleCandidateStats)
	s.router.HandleFunc("GET /v1/candidates/{id}", s.handleGetCandidate)
	s.router.HandleFunc("DELETE /v1/candidates/{id}", s.handleDeleteCandidate)
	s.router.HandleFunc("POST /v1/candidates/bulk-delete", s.handleBulkDeleteCandidates)

	// Question bank
	s.router.HandleFunc("GET /v1/questions/stats", s.handleQuestionStats)
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	slog.Info("starting crucible daemon",
		"addr", s.server.Addr,
		"storage", s.cfg.Storage.Backend,
		"questions", s.bank.Stats().Total,
	)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server and closes its backends.
func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("shutting down daemon")

	if s.mq != nil {
		s.mq.Close()
	}
	if s.pool != nil {
		s.pool.Close()
	}
	if s.db != nil {
		s.db.Close()
	}

	return s.server.Shutdown(ctx)
}

// Helper methods

func (s *Server) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func (s *Server) jsonError(w http.ResponseWriter, status int, message string, err error) {
	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}
	if err != nil {
		response["details"] = err.Error()
	}
	s.jsonResponse(w, status, response)
}

package daemon

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/crucible-hq/crucible/internal/domain"
	"github.com/crucible-hq/crucible/internal/intake"
	"github.com/crucible-hq/crucible/internal/roster"
)

// Health & status

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"status":    "running",
		"version":   Version,
		"uptime":    time.Since(s.started).Round(time.Second).String(),
		"storage":   s.cfg.Storage.Backend,
		"questions": s.bank.Stats(),
		"interview": s.interview.Status(),
	})
}

// Interview handlers

func (s *Server) handleBeginInterview(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CandidateID string `json:"candidateId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.jsonError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.CandidateID == "" {
		s.jsonError(w, http.StatusBadRequest, "candidateId is required", nil)
		return
	}

	candidate, err := s.roster.Get(r.Context(), req.CandidateID)
	if err != nil {
		if errors.Is(err, domain.ErrCandidateNotFound) {
			s.jsonError(w, http.StatusNotFound, "candidate not found", nil)
			return
		}
		s.jsonError(w, http.StatusInternalServerError, "failed to load candidate", err)
		return
	}

	if err := s.interview.Begin(r.Context(), candidate); err != nil {
		switch {
		case errors.Is(err, domain.ErrSessionActive):
			s.jsonError(w, http.StatusConflict, "an interview is already in progress", nil)
		case errors.Is(err, domain.ErrMissingIdentity):
			s.jsonError(w, http.StatusBadRequest, "candidate profile is incomplete", err)
		default:
			s.jsonError(w, http.StatusInternalServerError, "failed to start interview", err)
		}
		return
	}

	s.jsonResponse(w, http.StatusCreated, s.interview.Status())
}

func (s *Server) handleInterviewStatus(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.interview.Status())
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Answer string `json:"answer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.jsonError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := s.interview.SubmitAnswer(r.Context(), req.Answer); err != nil {
		switch {
		case errors.Is(err, domain.ErrNoActiveSession):
			s.jsonError(w, http.StatusConflict, "no active interview", nil)
		case errors.Is(err, domain.ErrAlreadyAnswered):
			s.jsonError(w, http.StatusConflict, "question already answered", nil)
		default:
			s.jsonError(w, http.StatusInternalServerError, "failed to submit answer", err)
		}
		return
	}

	s.jsonResponse(w, http.StatusOK, s.interview.Status())
}

func (s *Server) handlePauseTimer(w http.ResponseWriter, r *http.Request) {
	if err := s.interview.PauseTimer(); err != nil {
		s.jsonError(w, http.StatusConflict, "no active interview", nil)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.interview.Status())
}

func (s *Server) handleResumeTimer(w http.ResponseWriter, r *http.Request) {
	if err := s.interview.ResumeTimer(); err != nil {
		s.jsonError(w, http.StatusConflict, "no active interview", nil)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.interview.Status())
}

func (s *Server) handleRetryScoring(w http.ResponseWriter, r *http.Request) {
	if err := s.interview.RetryScoring(r.Context()); err != nil {
		if errors.Is(err, domain.ErrNoActiveSession) {
			s.jsonError(w, http.StatusConflict, "no interview awaiting scoring", nil)
			return
		}
		s.jsonError(w, http.StatusBadRequest, "scoring retry not applicable", err)
		return
	}
	s.jsonResponse(w, http.StatusAccepted, s.interview.Status())
}

func (s *Server) handleAbandonInterview(w http.ResponseWriter, r *http.Request) {
	if err := s.interview.Abandon(r.Context()); err != nil {
		if errors.Is(err, domain.ErrNoActiveSession) {
			s.jsonError(w, http.StatusConflict, "no active interview", nil)
			return
		}
		s.jsonError(w, http.StatusInternalServerError, "failed to abandon interview", err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]interface{}{"abandoned": true})
}

func (s *Server) handleResumable(w http.ResponseWriter, r *http.Request) {
	snap, err := s.interview.Resumable(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrSnapshotNotFound) || errors.Is(err, domain.ErrSnapshotNotUsable) {
			s.jsonResponse(w, http.StatusOK, map[string]interface{}{"resumable": false})
			return
		}
		s.jsonError(w, http.StatusInternalServerError, "failed to check for resumable interview", err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"resumable": true,
		"snapshot":  snap,
	})
}

func (s *Server) handleResumeInterview(w http.ResponseWriter, r *http.Request) {
	if err := s.interview.Resume(r.Context()); err != nil {
		switch {
		case errors.Is(err, domain.ErrSessionActive):
			s.jsonError(w, http.StatusConflict, "an interview is already in progress", nil)
		case errors.Is(err, domain.ErrSnapshotNotFound), errors.Is(err, domain.ErrSnapshotNotUsable):
			s.jsonError(w, http.StatusNotFound, "no resumable interview", nil)
		default:
			s.jsonError(w, http.StatusInternalServerError, "failed to resume interview", err)
		}
		return
	}
	s.jsonResponse(w, http.StatusOK, s.interview.Status())
}

// Intake handler

func (s *Server) handleIntake(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Filename string `json:"filename"`
		FileSize int64  `json:"fileSize"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.jsonError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	extraction, err := s.extractor.Extract(req.Filename, req.FileSize)
	if err != nil {
		s.jsonError(w, http.StatusBadRequest, "resume rejected", err)
		return
	}

	s.jsonResponse(w, http.StatusOK, extraction)
}

// Candidate handlers

func (s *Server) handleCreateCandidate(w http.ResponseWriter, r *http.Request) {
	var form intake.CandidateForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		s.jsonError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := form.Validate(); err != nil {
		s.jsonError(w, http.StatusUnprocessableEntity, "validation failed", err)
		return
	}

	candidate := form.Candidate()
	if err := s.roster.Add(r.Context(), candidate); err != nil {
		s.jsonError(w, http.StatusInternalServerError, "failed to save candidate", err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, candidate)
}

func (s *Server) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	q := roster.Query{
		Search:     r.URL.Query().Get("search"),
		Status:     domain.CandidateStatus(r.URL.Query().Get("status")),
		SortBy:     roster.SortField(r.URL.Query().Get("sort")),
		Descending: r.URL.Query().Get("order") != "asc",
	}

	candidates, err := s.roster.List(r.Context(), q)
	if err != nil {
		s.jsonError(w, http.StatusInternalServerError, "failed to list candidates", err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"candidates": candidates,
		"count":      len(candidates),
	})
}

func (s *Server) handleCandidateStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.roster.Stats(r.Context())
	if err != nil {
		s.jsonError(w, http.StatusInternalServerError, "failed to compute stats", err)
		return
	}
	s.jsonResponse(w, http.StatusOK, stats)
}

func (s *Server) handleGetCandidate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	candidate, err := s.roster.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrCandidateNotFound) {
			s.jsonError(w, http.StatusNotFound, "candidate not found", nil)
			return
		}
		s.jsonError(w, http.StatusInternalServerError, "failed to load candidate", err)
		return
	}

	s.jsonResponse(w, http.StatusOK, candidate)
}

func (s *Server) handleDeleteCandidate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := s.roster.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrCandidateNotFound) {
			s.jsonError(w, http.StatusNotFound, "candidate not found", nil)
			return
		}
		s.jsonError(w, http.StatusInternalServerError, "failed to delete candidate", err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]interface{}{"deleted": true})
}

func (s *Server) handleBulkDeleteCandidates(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []string `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.jsonError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if len(req.IDs) == 0 {
		s.jsonError(w, http.StatusBadRequest, "ids is required", nil)
		return
	}

	deleted, err := s.roster.DeleteMany(r.Context(), req.IDs)
	if err != nil {
		s.jsonError(w, http.StatusInternalServerError, "failed to delete candidates", err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"requested": len(req.IDs),
		"deleted":   deleted,
	})
}

// Question bank handler

func (s *Server) handleQuestionStats(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.bank.Stats())
}

package interview

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/crucible-hq/crucible/internal/domain"
	"github.com/crucible-hq/crucible/internal/questionbank"
	"github.com/crucible-hq/crucible/internal/roster"
	"github.com/crucible-hq/crucible/internal/scorer"
	"github.com/crucible-hq/crucible/internal/timer"
)

const (
	// advanceDelay is the pause between recording an answer and showing
	// the next question.
	advanceDelay = time.Second
	// scoringDelay simulates the latency of the scoring pass.
	scoringDelay = 2 * time.Second
)

// CompletionEvent is published when an interview finishes scoring.
type CompletionEvent struct {
	CandidateID string    `json:"candidateId"`
	SessionID   string    `json:"sessionId"`
	FinalScore  int       `json:"finalScore"`
	Summary     string    `json:"summary"`
	CompletedAt time.Time `json:"completedAt"`
}

// Publisher emits completion events to interested consumers. It is
// optional; a nil publisher disables event publishing.
type Publisher interface {
	Publish(ctx context.Context, event CompletionEvent) error
}

// Service orchestrates interview sessions. At most one session is active
// at a time; all operations are serialized behind a single mutex. Timer
// callbacks and the scoring goroutine carry an epoch token so that work
// scheduled for an earlier question, or an abandoned session, is discarded
// instead of mutating newer state.
type Service struct {
	mu        sync.Mutex
	bank      *questionbank.Bank
	scorer    *scorer.Scorer
	snapshots SnapshotStore
	roster    *roster.Service
	publisher Publisher
	logger    *slog.Logger

	sess    *Session
	clock   *timer.Controller
	epoch   uint64
	advance *time.Timer

	scoringErr error

	advanceDelay time.Duration
	scoringDelay time.Duration
	timerOpts    []timer.Option
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithPublisher sets the completion event publisher.
func WithPublisher(p Publisher) ServiceOption {
	return func(s *Service) { s.publisher = p }
}

// WithDelays overrides the advance and scoring delays. Used by tests to
// avoid real waits.
func WithDelays(advance, scoring time.Duration) ServiceOption {
	return func(s *Service) {
		s.advanceDelay = advance
		s.scoringDelay = scoring
	}
}

// WithTimerOptions passes options through to each question clock.
func WithTimerOptions(opts ...timer.Option) ServiceOption {
	return func(s *Service) { s.timerOpts = opts }
}

// NewService creates an interview service.
func NewService(bank *questionbank.Bank, sc *scorer.Scorer, snapshots SnapshotStore, rosterSvc *roster.Service, logger *slog.Logger, opts ...ServiceOption) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		bank:         bank,
		scorer:       sc,
		snapshots:    snapshots,
		roster:       rosterSvc,
		logger:       logger,
		advanceDelay: advanceDelay,
		scoringDelay: scoringDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Begin starts a new interview for the candidate. The candidate must have
// an identity (name and email) and no other session may be active.
func (s *Service) Begin(ctx context.Context, c *domain.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sess != nil && (s.sess.State == StateActive || s.sess.State == StateScoring) {
		return domain.ErrSessionActive
	}
	if c == nil || !c.HasIdentity() {
		return domain.ErrMissingIdentity
	}

	s.epoch++
	s.sess = newSession(c)
	s.scoringErr = nil

	if err := s.presentQuestion(); err != nil {
		s.sess = nil
		return err
	}

	c.StartInterview()
	if err := s.roster.Save(ctx, c); err != nil {
		s.logger.Warn("mark candidate in progress", "id", c.ID, "error", err)
	}

	s.logger.Info("interview started",
		"session", s.sess.ID, "candidate", c.ID, "name", c.Name)
	return nil
}

// SubmitAnswer records the answer for the current question and either
// schedules the next question or, after the last one, starts scoring.
// An empty answer is valid; timer expiry submits one on the candidate's
// behalf.
func (s *Service) SubmitAnswer(ctx context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitLocked(ctx, text)
}

func (s *Service) submitLocked(ctx context.Context, text string) error {
	if s.sess == nil || s.sess.State != StateActive {
		return domain.ErrNoActiveSession
	}
	if s.sess.Current == nil {
		return domain.ErrNoActiveSession
	}
	if s.sess.Answered(s.sess.QuestionIndex) {
		return domain.ErrAlreadyAnswered
	}

	q := s.sess.Current
	remaining := 0
	if s.clock != nil {
		s.clock.Stop()
		remaining = s.clock.Remaining()
	}

	s.sess.Answers = append(s.sess.Answers, domain.Answer{
		QuestionIndex: s.sess.QuestionIndex,
		Question:      q.Text,
		Answer:        text,
		Difficulty:    s.sess.Difficulty(),
		TimeUsed:      q.TimeLimit - remaining,
		TimeLimit:     q.TimeLimit,
		SubmittedAt:   time.Now(),
	})

	s.logger.Info("answer recorded",
		"session", s.sess.ID, "question", s.sess.QuestionIndex,
		"length", len(text), "remaining", remaining)

	if s.sess.QuestionIndex >= domain.TotalQuestions-1 {
		s.beginScoring(ctx)
		return nil
	}

	s.saveSnapshot(remaining)
	s.scheduleAdvance()
	return nil
}

// scheduleAdvance arms the delayed move to the next question. The epoch
// token makes the callback a no-op if the session changed in the interim.
func (s *Service) scheduleAdvance() {
	if s.advance != nil {
		s.advance.Stop()
	}
	epoch := s.epoch
	s.advance = time.AfterFunc(s.advanceDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.epoch != epoch || s.sess == nil || s.sess.State != StateActive {
			return
		}
		s.sess.QuestionIndex++
		if err := s.presentQuestion(); err != nil {
			s.logger.Error("advance question", "error", err)
		}
	})
}

// presentQuestion selects the question for the current index and starts a
// fresh clock for it. Caller holds the lock.
func (s *Service) presentQuestion() error {
	q, err := s.bank.SelectQuestion(s.sess.Candidate, s.sess.QuestionIndex)
	if err != nil {
		return fmt.Errorf("select question %d: %w", s.sess.QuestionIndex, err)
	}
	s.sess.Current = &q

	s.startClock(q.TimeLimit, q.TimeLimit, false)
	s.saveSnapshot(q.TimeLimit)

	s.logger.Info("question presented",
		"session", s.sess.ID, "index", s.sess.QuestionIndex,
		"difficulty", s.sess.Difficulty(), "limit", q.TimeLimit)
	return nil
}

// startClock replaces the question clock. The epoch advances so callbacks
// from the previous clock cannot touch the new question.
func (s *Service) startClock(limit, remaining int, paused bool) {
	if s.clock != nil {
		s.clock.Stop()
	}
	s.epoch++
	epoch := s.epoch

	c := timer.New(limit, s.timerOpts...)
	c.SetRemaining(remaining)
	c.OnTick(func(left int) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.epoch != epoch || s.sess == nil || s.sess.State != StateActive {
			return
		}
		s.saveSnapshot(left)
	})
	c.OnExpire(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.epoch != epoch || s.sess == nil || s.sess.State != StateActive {
			return
		}
		s.logger.Info("time expired", "session", s.sess.ID, "question", s.sess.QuestionIndex)
		if err := s.submitLocked(context.Background(), ""); err != nil {
			s.logger.Error("submit on expiry", "error", err)
		}
	})
	s.clock = c
	if !paused {
		c.Start()
	}
}

// beginScoring moves the session to the scoring state and runs the scoring
// pass in the background. Caller holds the lock.
func (s *Service) beginScoring(ctx context.Context) {
	s.sess.State = StateScoring
	s.sess.Current = nil
	s.scoringErr = nil
	s.saveSnapshot(0)
	s.logger.Info("scoring started", "session", s.sess.ID, "answers", len(s.sess.Answers))

	epoch := s.epoch
	answers := s.sess.Answers
	go s.runScoring(ctx, epoch, answers)
}

func (s *Service) runScoring(ctx context.Context, epoch uint64, answers []domain.Answer) {
	time.Sleep(s.scoringDelay)

	result := s.scorer.Score(answers)
	summary := s.scorer.Summarize(answers, result.FinalScore)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch || s.sess == nil || s.sess.State != StateScoring {
		s.logger.Info("discarding stale scoring result")
		return
	}

	c := s.sess.Candidate
	c.CompleteInterview(result.FinalScore, summary, answers, time.Now())
	if err := s.roster.Save(ctx, c); err != nil {
		s.scoringErr = fmt.Errorf("record result: %w", err)
		s.logger.Error("record interview result", "candidate", c.ID, "error", err)
		return
	}

	s.sess.State = StateCompleted
	if err := s.snapshots.Clear(); err != nil {
		s.logger.Warn("clear snapshot", "error", err)
	}

	s.logger.Info("interview completed",
		"session", s.sess.ID, "candidate", c.ID, "score", result.FinalScore)

	if s.publisher != nil {
		event := CompletionEvent{
			CandidateID: c.ID,
			SessionID:   s.sess.ID,
			FinalScore:  result.FinalScore,
			Summary:     summary,
			CompletedAt: time.Now(),
		}
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("publish completion event", "error", err)
		}
	}
}

// RetryScoring reruns the scoring pass after a failed attempt to record
// the result.
func (s *Service) RetryScoring(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sess == nil || s.sess.State != StateScoring {
		return domain.ErrNoActiveSession
	}
	if s.scoringErr == nil {
		return fmt.Errorf("%w: scoring already in progress", domain.ErrInvalidInput)
	}

	s.scoringErr = nil
	go s.runScoring(ctx, s.epoch, s.sess.Answers)
	return nil
}

// PauseTimer pauses the question clock.
func (s *Service) PauseTimer() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess == nil || s.sess.State != StateActive {
		return domain.ErrNoActiveSession
	}
	s.clock.Pause()
	return nil
}

// ResumeTimer resumes a paused question clock.
func (s *Service) ResumeTimer() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess == nil || s.sess.State != StateActive {
		return domain.ErrNoActiveSession
	}
	if s.clock.Status() == timer.StatusStopped {
		s.clock.Start()
	} else {
		s.clock.Resume()
	}
	return nil
}

// Abandon discards the current session and its snapshot. A scoring pass
// already in flight will find the epoch changed and drop its result.
func (s *Service) Abandon(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sess == nil || s.sess.State == StateCompleted || s.sess.State == StateAbandoned {
		return domain.ErrNoActiveSession
	}

	s.epoch++
	if s.advance != nil {
		s.advance.Stop()
	}
	if s.clock != nil {
		s.clock.Stop()
	}
	s.sess.State = StateAbandoned
	if err := s.snapshots.Clear(); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}

	s.logger.Info("interview abandoned", "session", s.sess.ID)
	s.sess = nil
	return nil
}

// Resumable returns the stored snapshot if one exists and describes a
// session that can be continued.
func (s *Service) Resumable(ctx context.Context) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.snapshots.Load()
	if err != nil {
		return nil, err
	}
	if !snap.Usable() {
		s.snapshots.Clear()
		return nil, domain.ErrSnapshotNotUsable
	}
	return snap, nil
}

// Resume restores the interview from its snapshot. The question clock is
// restored at the saved remaining time but left paused; the candidate
// resumes it explicitly.
func (s *Service) Resume(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sess != nil && (s.sess.State == StateActive || s.sess.State == StateScoring) {
		return domain.ErrSessionActive
	}

	snap, err := s.snapshots.Load()
	if err != nil {
		return err
	}
	if !snap.Usable() {
		s.snapshots.Clear()
		return domain.ErrSnapshotNotUsable
	}

	s.sess = restoreSession(snap)
	s.scoringErr = nil

	// A session interrupted during the scoring phase has nothing left to
	// ask; rerun the scoring pass on the recorded answers instead of
	// restoring a question clock.
	if s.sess.State == StateScoring {
		if s.clock != nil {
			s.clock.Stop()
		}
		s.epoch++
		go s.runScoring(ctx, s.epoch, s.sess.Answers)

		s.logger.Info("interview resumed into scoring",
			"session", s.sess.ID, "answers", len(s.sess.Answers))
		return nil
	}

	limit := snap.TimeRemaining
	if snap.CurrentQuestion != nil {
		limit = snap.CurrentQuestion.TimeLimit
	}
	s.startClock(limit, snap.TimeRemaining, true)

	s.logger.Info("interview resumed",
		"session", s.sess.ID, "question", s.sess.QuestionIndex,
		"remaining", snap.TimeRemaining)
	return nil
}

// Status is a read-only view of the current session for the API.
type Status struct {
	Active        bool              `json:"active"`
	State         State             `json:"state,omitempty"`
	SessionID     string            `json:"sessionId,omitempty"`
	Candidate     *domain.Candidate `json:"candidate,omitempty"`
	QuestionIndex int               `json:"questionIndex"`
	Question      *domain.Question  `json:"question,omitempty"`
	Difficulty    domain.Difficulty `json:"difficulty,omitempty"`
	Answered      int               `json:"answered"`
	TimeRemaining int               `json:"timeRemaining"`
	TimerStatus   timer.Status      `json:"timerStatus,omitempty"`
	ScoringError  string            `json:"scoringError,omitempty"`
}

// Status reports the current session state.
func (s *Service) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sess == nil {
		return Status{Active: false}
	}

	st := Status{
		Active:        s.sess.State == StateActive || s.sess.State == StateScoring,
		State:         s.sess.State,
		SessionID:     s.sess.ID,
		Candidate:     s.sess.Candidate,
		QuestionIndex: s.sess.QuestionIndex,
		Question:      s.sess.Current,
		Difficulty:    s.sess.Difficulty(),
		Answered:      len(s.sess.Answers),
	}
	if s.clock != nil {
		st.TimeRemaining = s.clock.Remaining()
		st.TimerStatus = s.clock.Status()
	}
	if s.scoringErr != nil {
		st.ScoringError = s.scoringErr.Error()
	}
	return st
}

// saveSnapshot persists the current session state. Persistence failures
// are logged, not fatal; the interview keeps running.
func (s *Service) saveSnapshot(remaining int) {
	if err := s.snapshots.Save(s.sess.snapshot(remaining)); err != nil {
		s.logger.Warn("save snapshot", "error", err)
	}
}

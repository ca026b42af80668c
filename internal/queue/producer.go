package queue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/crucible-hq/crucible/internal/interview"
	"github.com/felixgeelhaar/fortify/circuitbreaker"
	"github.com/felixgeelhaar/fortify/retry"
)

// Producer publishes interview completion events. Publishes are retried
// with backoff and guarded by a circuit breaker so a flapping broker does
// not stall interview completion.
type Producer struct {
	conn    *Connection
	retrier retry.Retry[struct{}]
	breaker circuitbreaker.CircuitBreaker[struct{}]
	logger  *slog.Logger
}

// NewProducer creates a queue producer.
func NewProducer(conn *Connection, logger *slog.Logger) *Producer {
	if logger == nil {
		logger = slog.Default()
	}

	p := &Producer{conn: conn, logger: logger}

	p.retrier = retry.New[struct{}](retry.Config{
		MaxAttempts:   3,
		InitialDelay:  500 * time.Millisecond,
		MaxDelay:      5 * time.Second,
		Multiplier:    2.0,
		BackoffPolicy: retry.BackoffExponential,
		Jitter:        true,
	})

	p.breaker = circuitbreaker.New[struct{}](circuitbreaker.Config{
		MaxRequests: 2,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(from, to circuitbreaker.State) {
			p.logger.Warn("completion publisher circuit breaker state change",
				"from", from.String(), "to", to.String())
		},
	})

	return p
}

// Publish emits a completion event. Implements interview.Publisher.
func (p *Producer) Publish(ctx context.Context, event interview.CompletionEvent) error {
	_, err := p.breaker.Execute(ctx, func(ctx context.Context) (struct{}, error) {
		return p.retrier.Do(ctx, func(ctx context.Context) (struct{}, error) {
			if err := p.conn.PublishJSON(ctx, CompletionQueueName, event); err != nil {
				return struct{}{}, fmt.Errorf("publish completion event: %w", err)
			}
			return struct{}{}, nil
		})
	})
	if err != nil {
		return err
	}

	p.logger.Info("published completion event",
		"candidate", event.CandidateID,
		"session", event.SessionID,
		"score", event.FinalScore,
	)
	return nil
}

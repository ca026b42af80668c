//go:build integration

package queue_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/crucible-hq/crucible/internal/interview"
	"github.com/crucible-hq/crucible/internal/queue"
	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/rabbitmq"
)

// setupRabbitMQ starts a RabbitMQ container and returns its AMQP URL.
func setupRabbitMQ(t *testing.T) (string, func()) {
	ctx := context.Background()

	container, err := rabbitmq.Run(ctx, "rabbitmq:3.12-management")
	if err != nil {
		t.Fatalf("failed to start RabbitMQ container: %v", err)
	}

	amqpURL, err := container.AmqpURL(ctx)
	if err != nil {
		container.Terminate(ctx)
		t.Fatalf("failed to get AMQP URL: %v", err)
	}

	cleanup := func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return amqpURL, cleanup
}

func testEvent() interview.CompletionEvent {
	return interview.CompletionEvent{
		CandidateID: uuid.New().String(),
		SessionID:   uuid.New().String(),
		FinalScore:  78,
		Summary:     "Solid technical foundation with room for growth.",
		CompletedAt: time.Now(),
	}
}

func TestIntegration_Connection_ConnectAndClose(t *testing.T) {
	amqpURL, cleanup := setupRabbitMQ(t)
	defer cleanup()

	conn, err := queue.NewConnection(amqpURL)
	if err != nil {
		t.Fatalf("NewConnection() error = %v", err)
	}

	if !conn.IsConnected() {
		t.Error("IsConnected() = false; want true")
	}

	if err := conn.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestIntegration_Connection_InvalidURL(t *testing.T) {
	if _, err := queue.NewConnection("amqp://invalid:5672"); err == nil {
		t.Error("NewConnection() = nil error for unreachable broker")
	}
}

func TestIntegration_Producer_Publish(t *testing.T) {
	amqpURL, cleanup := setupRabbitMQ(t)
	defer cleanup()

	conn, err := queue.NewConnection(amqpURL)
	if err != nil {
		t.Fatalf("NewConnection() error = %v", err)
	}
	defer conn.Close()

	producer := queue.NewProducer(conn, nil)
	if err := producer.Publish(context.Background(), testEvent()); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	q, err := conn.Channel().QueueInspect(queue.CompletionQueueName)
	if err != nil {
		t.Fatalf("QueueInspect() error = %v", err)
	}
	if q.Messages != 1 {
		t.Errorf("queue depth = %d; want 1", q.Messages)
	}
}

func TestIntegration_Consumer_ProcessEvents(t *testing.T) {
	amqpURL, cleanup := setupRabbitMQ(t)
	defer cleanup()

	conn, err := queue.NewConnection(amqpURL)
	if err != nil {
		t.Fatalf("NewConnection() error = %v", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var mu sync.Mutex
	var received []*interview.CompletionEvent
	receivedCh := make(chan struct{}, 8)

	handler := func(ctx context.Context, event *interview.CompletionEvent) error {
		mu.Lock()
		received = append(received, event)
		mu.Unlock()
		receivedCh <- struct{}{}
		return nil
	}

	consumer := queue.NewConsumer(conn, handler, queue.ConsumerConfig{Workers: 2, Prefetch: 1})
	if err := consumer.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer consumer.Stop()

	producer := queue.NewProducer(conn, nil)
	const eventCount = 3
	for i := 0; i < eventCount; i++ {
		if err := producer.Publish(ctx, testEvent()); err != nil {
			t.Fatalf("Publish(%d) error = %v", i, err)
		}
	}

	for i := 0; i < eventCount; i++ {
		select {
		case <-receivedCh:
		case <-ctx.Done():
			t.Fatalf("timeout waiting for event %d", i)
		}
	}

	mu.Lock()
	defer mu.Unlock()
	if len(received) != eventCount {
		t.Errorf("received %d events; want %d", len(received), eventCount)
	}
	for _, e := range received {
		if e.CandidateID == "" || e.FinalScore != 78 {
			t.Errorf("event = %+v; want populated completion", e)
		}
	}
}

func TestIntegration_Consumer_MalformedMessageDropped(t *testing.T) {
	amqpURL, cleanup := setupRabbitMQ(t)
	defer cleanup()

	conn, err := queue.NewConnection(amqpURL)
	if err != nil {
		t.Fatalf("NewConnection() error = %v", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	receivedCh := make(chan struct{}, 1)
	handler := func(ctx context.Context, event *interview.CompletionEvent) error {
		receivedCh <- struct{}{}
		return nil
	}

	consumer := queue.NewConsumer(conn, handler, queue.DefaultConsumerConfig())
	if err := consumer.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer consumer.Stop()

	// Garbage on the queue is rejected without redelivery; the valid
	// event behind it still arrives.
	if err := conn.PublishJSON(ctx, queue.CompletionQueueName, "not an event"); err != nil {
		t.Fatalf("PublishJSON() error = %v", err)
	}
	if err := queue.NewProducer(conn, nil).Publish(ctx, testEvent()); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	select {
	case <-receivedCh:
	case <-ctx.Done():
		t.Fatal("timeout waiting for valid event")
	}

	time.Sleep(200 * time.Millisecond)
	q, err := conn.Channel().QueueInspect(queue.CompletionQueueName)
	if err != nil {
		t.Fatalf("QueueInspect() error = %v", err)
	}
	if q.Messages != 0 {
		t.Errorf("queue depth = %d; want 0 after drain", q.Messages)
	}
}

func TestIntegration_Connection_PublishJSON(t *testing.T) {
	amqpURL, cleanup := setupRabbitMQ(t)
	defer cleanup()

	conn, err := queue.NewConnection(amqpURL)
	if err != nil {
		t.Fatalf("NewConnection() error = %v", err)
	}
	defer conn.Close()

	if err := conn.PublishJSON(context.Background(), queue.CompletionQueueName, testEvent()); err != nil {
		t.Fatalf("PublishJSON() error = %v", err)
	}

	q, err := conn.Channel().QueueInspect(queue.CompletionQueueName)
	if err != nil {
		t.Fatalf("QueueInspect() error = %v", err)
	}
	if q.Messages != 1 {
		t.Errorf("queue depth = %d; want 1", q.Messages)
	}
}

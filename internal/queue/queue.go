package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/streadway/amqp"

	appErrors "leadflow-backend/internal/errors"
	"leadflow-backend/internal/service"
)

// DispatchTopic is the queue all dispatch jobs flow through.
const DispatchTopic = "followup_dispatch"

// Queue interface
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue fans published payloads out to in-process subscribers.
// It backs single-process deployments where no broker is configured.
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]func(payload any) error
}

func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		handlers: make(map[string][]func(payload any) error),
	}
}

// Publish sends a message to all subscribers.
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	for _, handler := range handlers {
		go func(h func(payload any) error) {
			if err := h(payload); err != nil {
				log.Printf("queue: job failed on topic %s: %v", topic, err)
			}
		}(handler)
	}

	return nil
}

// Subscribe adds a handler for a topic.
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// DispatchJob is the wire shape published for every queued dispatch.
type DispatchJob struct {
	FollowUpID string `json:"follow_up_id"`
}

// AMQPQueue publishes dispatch jobs to RabbitMQ for cmd/worker to consume.
type AMQPQueue struct {
	Channel *amqp.Channel
}

var _ Queue = (*AMQPQueue)(nil)

// NewAMQPQueue opens a channel and declares the durable dispatch queue.
func NewAMQPQueue(conn *amqp.Connection, queueName string) (*AMQPQueue, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	return &AMQPQueue{Channel: ch}, nil
}

func (q *AMQPQueue) Publish(topic string, payload any) error {
	id, ok := payload.(string)
	if !ok {
		return fmt.Errorf("expected follow-up id string, got %T", payload)
	}

	body, err := json.Marshal(DispatchJob{FollowUpID: id})
	if err != nil {
		return err
	}

	return q.Channel.Publish(
		"",
		topic,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

// Subscribe is not supported on the publisher side; cmd/worker consumes the
// broker queue directly.
func (q *AMQPQueue) Subscribe(topic string, handler func(payload any) error) error {
	return fmt.Errorf("amqp queue does not support in-process subscription")
}

// StartDispatchSubscriber wires the in-memory dispatch path: every published
// follow-up id is handed to the lifecycle manager. FAILED is terminal, so a
// delivery error is logged but never requeued.
func StartDispatchSubscriber(q Queue, svc *service.FollowUpService) {
	err := q.Subscribe(DispatchTopic, func(payload any) error {
		id, ok := payload.(string)
		if !ok {
			log.Printf("queue: invalid payload type %T, expected string", payload)
			return nil
		}

		log.Println("processing queued follow-up dispatch:", id)

		if _, err := svc.Dispatch(id); err != nil {
			var invalid *appErrors.ErrInvalidTransition
			switch {
			case errors.Is(err, appErrors.ErrNotApproved):
				log.Println("queue: follow-up no longer approved, dropping:", id)
			case errors.As(err, &invalid):
				log.Println("queue: stale dispatch job, dropping:", err)
			default:
				log.Println("queue: dispatch failed:", err)
			}
			return nil
		}

		log.Println("follow-up dispatched:", id)
		return nil
	})

	if err != nil {
		log.Println("failed to start dispatch subscriber:", err)
	}
}

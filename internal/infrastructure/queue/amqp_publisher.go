package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/streadway/amqp"

	"github.com/Sirpyerre/social-network/internal/core/domain"
)

const defaultActivityQueue = "social.activity"

// AMQPConfig holds RabbitMQ connection details.
type AMQPConfig struct {
	URL   string
	Queue string
}

// AMQPPublisher publishes activities as persistent JSON messages to a durable
// queue on the default exchange.
type AMQPPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string

	mu sync.Mutex // amqp.Channel is not safe for concurrent publishes
}

// activityMessage is the wire format of a published activity.
type activityMessage struct {
	Type         string    `json:"type"`
	ActorID      string    `json:"actorId"`
	TargetUserID string    `json:"targetUserId,omitempty"`
	PostID       string    `json:"postId,omitempty"`
	At           time.Time `json:"at"`
}

// NewAMQPPublisher dials the broker, opens a channel and declares the queue.
func NewAMQPPublisher(cfg AMQPConfig) (*AMQPPublisher, error) {
	queue := cfg.Queue
	if queue == "" {
		queue = defaultActivityQueue
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("amqp declare %s: %w", queue, err)
	}

	return &AMQPPublisher{conn: conn, channel: ch, queue: queue}, nil
}

func (p *AMQPPublisher) Publish(_ context.Context, a domain.Activity) error {
	body, err := encodeActivity(a)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.Publish("", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    a.At,
		Type:         string(a.Type),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("amqp publish: %w", err)
	}
	return nil
}

// Close closes the channel and then the connection.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var first error
	if err := p.channel.Close(); err != nil {
		first = fmt.Errorf("close channel: %w", err)
	}
	if err := p.conn.Close(); err != nil && first == nil {
		first = fmt.Errorf("close connection: %w", err)
	}
	return first
}

func encodeActivity(a domain.Activity) ([]byte, error) {
	body, err := json.Marshal(activityMessage{
		Type:         string(a.Type),
		ActorID:      a.ActorID,
		TargetUserID: a.TargetUserID,
		PostID:       a.PostID,
		At:           a.At.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("encode activity: %w", err)
	}
	return body, nil
}

// NopPublisher discards activities. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, domain.Activity) error { return nil }

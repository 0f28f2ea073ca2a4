package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/mmttc/workshop-registration/pkg/logger"
)

const (
	RegistrationCreated = "registration.created"
	RegistrationDeleted = "registration.deleted"
)

// RegistrationCreatedEvent is the payload published after a registration is
// persisted. The notify worker consumes it to send the confirmation email.
type RegistrationCreatedEvent struct {
	RegistrationID string    `json:"registration_id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Affiliation    string    `json:"affiliation"`
	Department     string    `json:"department"`
	Designation    string    `json:"designation"`
	ContactMethod  string    `json:"contact_method"`
	CreatedAt      time.Time `json:"created_at"`
}

type RegistrationDeletedEvent struct {
	RegistrationID string    `json:"registration_id"`
	Email          string    `json:"email"`
	DeletedAt      time.Time `json:"deleted_at"`
}

type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

type Subscriber interface {
	Subscribe(subject string, handler func(msg *Message)) error
	QueueSubscribe(subject, queue string, handler func(msg *Message)) error
	Close() error
}

type EventBus interface {
	Publisher
	Subscriber
}

type Message struct {
	Subject   string
	Data      []byte
	Timestamp time.Time
}

type NATSEventBus struct {
	conn *nats.Conn
}

func NewNATSEventBus(url string) (*NATSEventBus, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSEventBus{conn: conn}, nil
}

func (n *NATSEventBus) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	logger.DebugContext(ctx, "Publishing event", "subject", subject, "data", string(payload))

	return n.conn.Publish(subject, payload)
}

func (n *NATSEventBus) Subscribe(subject string, handler func(msg *Message)) error {
	_, err := n.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(&Message{
			Subject:   msg.Subject,
			Data:      msg.Data,
			Timestamp: time.Now(),
		})
	})
	return err
}

func (n *NATSEventBus) QueueSubscribe(subject, queue string, handler func(msg *Message)) error {
	_, err := n.conn.QueueSubscribe(subject, queue, func(msg *nats.Msg) {
		handler(&Message{
			Subject:   msg.Subject,
			Data:      msg.Data,
			Timestamp: time.Now(),
		})
	})
	return err
}

func (n *NATSEventBus) Close() error {
	n.conn.Close()
	return nil
}

// NoopBus is used when the broker is unreachable at startup. Registrations
// must not fail because eventing is down, so publishes become debug logs.
type NoopBus struct{}

func (NoopBus) Publish(ctx context.Context, subject string, data interface{}) error {
	logger.DebugContext(ctx, "Event bus disabled, dropping event", "subject", subject)
	return nil
}

func (NoopBus) Subscribe(string, func(msg *Message)) error              { return nil }
func (NoopBus) QueueSubscribe(string, string, func(msg *Message)) error { return nil }
func (NoopBus) Close() error                                           { return nil }

var (
	_ EventBus = (*NATSEventBus)(nil)
	_ EventBus = NoopBus{}
)

// Package events publishes booking lifecycle events to Kafka. Publishing is
// best-effort, exactly like email notification: a broker outage must never
// fail a booking that is already persisted.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/compress"

	"consultly/pkg/model"
)

const (
	HeaderEventID   = "event-id"
	HeaderEventType = "event-type"
	HeaderSource    = "source"

	EventBookingCreated = "booking.created"
)

type Publisher interface {
	Enabled() bool
	BookingCreated(ctx context.Context, booking *model.StoredBooking) error
	Close() error
}

type kafkaPublisher struct {
	writer *kafka.Writer
	source string
}

// NewPublisher returns a Kafka-backed publisher, or a disabled one when no
// brokers are configured.
func NewPublisher(brokers []string, topic, source string) Publisher {
	if len(brokers) == 0 || topic == "" {
		return disabledPublisher{}
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{}, // key by email so a visitor's events stay ordered
		RequiredAcks: kafka.RequireAll,
		Compression:  compress.Snappy,
		BatchTimeout: 50 * time.Millisecond,
		Logger:       kafka.LoggerFunc(func(string, ...any) {}),
	}

	return &kafkaPublisher{writer: writer, source: source}
}

func (p *kafkaPublisher) Enabled() bool {
	return true
}

func (p *kafkaPublisher) BookingCreated(ctx context.Context, booking *model.StoredBooking) error {
	value, err := json.Marshal(booking)
	if err != nil {
		return fmt.Errorf("marshal booking event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(booking.Email),
		Value: value,
		Headers: []kafka.Header{
			{Key: HeaderEventID, Value: []byte(uuid.NewString())},
			{Key: HeaderEventType, Value: []byte(EventBookingCreated)},
			{Key: HeaderSource, Value: []byte(p.source)},
		},
		Time: time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s: %w", EventBookingCreated, err)
	}
	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}

type disabledPublisher struct{}

func (disabledPublisher) Enabled() bool { return false }

func (disabledPublisher) BookingCreated(context.Context, *model.StoredBooking) error {
	return nil
}

func (disabledPublisher) Close() error { return nil }

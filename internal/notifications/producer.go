package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"

	"ticketly/internal/tickets"
	"ticketly/pkg/logger"
)

// Producer publishes ticket lifecycle events to Kafka.
type Producer interface {
	PublishTicketEvent(ctx context.Context, event *TicketEvent) error
	Close() error
}

// KafkaProducerConfig contains configuration for the Kafka producer
type KafkaProducerConfig struct {
	Brokers          []string
	Topic            string
	RetryMax         int
	TimeoutMs        int
	RequiredAcks     sarama.RequiredAcks
	CompressionType  sarama.CompressionCodec
	IdempotentWrites bool
}

// DefaultKafkaProducerConfig returns a default producer configuration
func DefaultKafkaProducerConfig() *KafkaProducerConfig {
	return &KafkaProducerConfig{
		Brokers:          []string{"localhost:9092"},
		Topic:            "ticket-events",
		RetryMax:         3,
		TimeoutMs:        10000,
		RequiredAcks:     sarama.WaitForAll,
		CompressionType:  sarama.CompressionSnappy,
		IdempotentWrites: true,
	}
}

type kafkaProducer struct {
	producer sarama.SyncProducer
	config   *KafkaProducerConfig
}

// NewKafkaProducer creates a Kafka producer for ticket lifecycle events.
func NewKafkaProducer(config *KafkaProducerConfig) (Producer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = config.RequiredAcks
	saramaConfig.Producer.Compression = config.CompressionType
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = time.Duration(config.TimeoutMs) * time.Millisecond
	saramaConfig.Producer.Idempotent = config.IdempotentWrites
	if config.IdempotentWrites {
		saramaConfig.Net.MaxOpenRequests = 1
	}
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Info("Kafka ticket-event producer created")
	return &kafkaProducer{producer: producer, config: config}, nil
}

func (p *kafkaProducer) PublishTicketEvent(ctx context.Context, event *TicketEvent) error {
	messageBytes, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal ticket event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     p.config.Topic,
		Key:       sarama.StringEncoder(event.GetPartitionKey()),
		Value:     sarama.ByteEncoder(messageBytes),
		Timestamp: event.OccurredAt,
	}

	_, _, err = p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to send ticket event to Kafka: %w", err)
	}
	return nil
}

func (p *kafkaProducer) Close() error {
	return p.producer.Close()
}

// LifecycleNotifier adapts the producer to the coordinators' notifier
// interfaces. Publishing is best effort: Kafka being down degrades to a
// warning, never to a failed booking. A nil producer disables publishing.
type LifecycleNotifier struct {
	producer Producer
}

func NewLifecycleNotifier(producer Producer) *LifecycleNotifier {
	return &LifecycleNotifier{producer: producer}
}

func (n *LifecycleNotifier) TicketBooked(ctx context.Context, ticket *tickets.Ticket) {
	n.publish(ctx, EventTicketBooked, ticket)
}

func (n *LifecycleNotifier) TicketCancelled(ctx context.Context, ticket *tickets.Ticket) {
	n.publish(ctx, EventTicketCancelled, ticket)
}

func (n *LifecycleNotifier) TicketCheckedIn(ctx context.Context, ticket *tickets.Ticket) {
	n.publish(ctx, EventTicketCheckedIn, ticket)
}

func (n *LifecycleNotifier) publish(ctx context.Context, eventType TicketEventType, ticket *tickets.Ticket) {
	if n == nil || n.producer == nil {
		return
	}

	event := &TicketEvent{
		ID:            uuid.New(),
		Type:          eventType,
		TicketID:      ticket.ID,
		TicketNumber:  ticket.TicketNumber,
		EventID:       ticket.EventID,
		UserID:        ticket.UserID,
		SeatNumber:    ticket.SeatNumber,
		AttendeeEmail: ticket.AttendeeEmail,
		OccurredAt:    time.Now(),
	}

	if err := n.producer.PublishTicketEvent(ctx, event); err != nil {
		logger.Warn(fmt.Sprintf("failed to publish %s for ticket %s: %v", eventType, ticket.TicketNumber, err))
	}
}

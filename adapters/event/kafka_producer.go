package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/rediet/portfolio/internal/application/service"
	"github.com/rediet/portfolio/internal/config"
	"github.com/rediet/portfolio/pkg/logger"
)

const (
	TopicViewEvents    = "view.events"
	TopicContactEvents = "contact.events"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaProducerClient struct {
	ViewEventsWriter    messageWriter
	ContactEventsWriter messageWriter
	logger              logger.Logger
}

var _ service.EventPublisher = (*KafkaProducerClient)(nil)

func NewKafkaProducerClient(cfg config.Config, log logger.Logger) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	c := &KafkaProducerClient{logger: log}
	c.ViewEventsWriter = c.newWriter(brokers, TopicViewEvents)
	c.ContactEventsWriter = c.newWriter(brokers, TopicContactEvents)

	log.Info("Initialize Kafka Producers successfully.", zap.Strings("brokers", brokers))
	return c, nil
}

// Writers are async. Delivery failures only surface in the completion log.
func (c *KafkaProducerClient) newWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		BatchTimeout:           50 * time.Millisecond,
		Async:                  true,
		AllowAutoTopicCreation: true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				c.logger.Error("Kafka delivery failed", err, zap.String("topic", topic), zap.Int("messages", len(messages)))
			}
		},
	}
}

func (c *KafkaProducerClient) PublishPageViewed(ctx context.Context, e service.PageViewedEvent) error {
	e.EventType = service.EventTypePageViewed
	return c.publish(ctx, c.ViewEventsWriter, e.Username, e)
}

func (c *KafkaProducerClient) PublishContactComposed(ctx context.Context, e service.ContactComposedEvent) error {
	e.EventType = service.EventTypeContactComposed
	return c.publish(ctx, c.ContactEventsWriter, e.RequestID, e)
}

func (c *KafkaProducerClient) publish(ctx context.Context, w messageWriter, key string, payload any) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := w.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: value}); err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	return nil
}

func (c *KafkaProducerClient) Close() error {
	var errs []error
	if c.ViewEventsWriter != nil {
		errs = append(errs, c.ViewEventsWriter.Close())
	}
	if c.ContactEventsWriter != nil {
		errs = append(errs, c.ContactEventsWriter.Close())
	}
	c.logger.Info("Closed Kafka Producers")
	return errors.Join(errs...)
}

// NoopPublisher drops every event. Used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishPageViewed(context.Context, service.PageViewedEvent) error { return nil }

func (NoopPublisher) PublishContactComposed(context.Context, service.ContactComposedEvent) error {
	return nil
}

func (NoopPublisher) Close() error { return nil }

// NewPublisher returns a Kafka producer when brokers are configured and a
// NoopPublisher otherwise.
func NewPublisher(cfg config.Config, log logger.Logger) (service.EventPublisher, error) {
	if len(cfg.Kafka.Brokers) == 0 {
		log.Info("Kafka brokers not set, events are dropped")
		return NoopPublisher{}, nil
	}
	return NewKafkaProducerClient(cfg, log)
}

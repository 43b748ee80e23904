package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"job-match/internal/config"
	"job-match/internal/domain/match"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

var errPublisherClosed = errors.New("publisher closed")

type Publisher struct {
	mu     sync.Mutex
	conn   *amqp.Connection
	ch     *amqp.Channel
	queue  string
	logger *zap.Logger
}

func NewPublisher(cfg config.RabbitMQConfig, logger *zap.Logger) (*Publisher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	conn, ch, err := dial(cfg.URL, cfg.JobQueue)
	if err != nil {
		return nil, err
	}
	return &Publisher{
		conn:   conn,
		ch:     ch,
		queue:  cfg.JobQueue,
		logger: logger.Named("publisher"),
	}, nil
}

// PublishJobPublished sends evt to the job queue through the default exchange.
func (p *Publisher) PublishJobPublished(ctx context.Context, evt match.JobPublished) error {
	body, err := jsonBody(evt)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch == nil {
		return errPublisherClosed
	}

	err = p.ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    evt.EventID.String(),
			Type:         evt.Type,
			Timestamp:    evt.PublishedAt,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", evt.Type, err)
	}

	p.logger.Info("event published",
		zap.String("event_id", evt.EventID.String()),
		zap.String("job_id", evt.JobID),
	)
	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	err := closeAll(p.ch, p.conn)
	p.ch, p.conn = nil, nil
	return err
}

func jsonBody(evt match.JobPublished) ([]byte, error) {
	b, err := json.Marshal(evt)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return b, nil
}

package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"job-match/internal/config"
	"job-match/internal/domain/match"
	"job-match/internal/usecase"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

var ErrDeliveriesClosed = errors.New("rabbitmq deliveries channel closed")

type JobRefresher interface {
	RefreshJobMatches(ctx context.Context, jobID string, minPercentage int) (int, error)
}

type action int

const (
	actionAck action = iota
	actionDrop
	actionRequeue
)

func (a action) String() string {
	switch a {
	case actionAck:
		return "ack"
	case actionDrop:
		return "drop"
	default:
		return "requeue"
	}
}

type Consumer struct {
	conn       *amqp.Connection
	ch         *amqp.Channel
	queue      string
	prefetch   int
	defaultMin int
	refresher  JobRefresher
	logger     *zap.Logger
}

func NewConsumer(cfg config.RabbitMQConfig, defaultMin int, refresher JobRefresher, log *zap.Logger) (*Consumer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	conn, ch, err := dial(cfg.URL, cfg.JobQueue)
	if err != nil {
		return nil, err
	}

	prefetch := cfg.Prefetch
	if prefetch <= 0 {
		prefetch = 1
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		_ = closeAll(ch, conn)
		return nil, fmt.Errorf("set qos: %w", err)
	}

	return &Consumer{
		conn:       conn,
		ch:         ch,
		queue:      cfg.JobQueue,
		prefetch:   prefetch,
		defaultMin: defaultMin,
		refresher:  refresher,
		logger:     log.Named("consumer"),
	}, nil
}

// Run consumes until ctx is cancelled or the broker closes the channel.
func (c *Consumer) Run(ctx context.Context) error {
	msgs, err := c.ch.ConsumeWithContext(ctx,
		c.queue,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("consume %s: %w", c.queue, err)
	}

	c.logger.Info("consumer started", zap.String("queue", c.queue), zap.Int("prefetch", c.prefetch))

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return ErrDeliveriesClosed
			}
			c.settle(d, c.handle(ctx, d.Body))
		}
	}
}

func (c *Consumer) settle(d amqp.Delivery, a action) {
	var err error
	switch a {
	case actionAck:
		err = d.Ack(false)
	case actionDrop:
		err = d.Nack(false, false)
	default:
		err = d.Nack(false, true)
	}
	if err != nil {
		c.logger.Warn("settle delivery failed", zap.Stringer("action", a), zap.Error(err))
	}
}

// handle decides the fate of one message body.
func (c *Consumer) handle(ctx context.Context, body []byte) action {
	evt, err := decodeJobPublished(body)
	if err != nil {
		c.logger.Warn("malformed event dropped", zap.Error(err))
		return actionDrop
	}

	threshold := c.defaultMin
	if evt.MinPercentage != nil {
		threshold = *evt.MinPercentage
	}

	n, err := c.refresher.RefreshJobMatches(ctx, evt.JobID, threshold)
	if err != nil {
		fields := []zap.Field{zap.String("job_id", evt.JobID), zap.Error(err)}
		switch {
		case errors.Is(err, usecase.ErrInvalidInput), errors.Is(err, usecase.ErrJobNotFound):
			c.logger.Warn("event rejected", fields...)
			return actionDrop
		default:
			c.logger.Error("refresh failed, requeueing", fields...)
			return actionRequeue
		}
	}

	c.logger.Info("job matches refreshed",
		zap.String("event_id", evt.EventID.String()),
		zap.String("job_id", evt.JobID),
		zap.Int("matches", n),
		zap.Int("min_percentage", threshold),
	)
	return actionAck
}

func decodeJobPublished(body []byte) (match.JobPublished, error) {
	var evt match.JobPublished
	if err := json.Unmarshal(body, &evt); err != nil {
		return evt, fmt.Errorf("decode event: %w", err)
	}
	if evt.Type != "" && evt.Type != match.EventTypeJobPublished {
		return evt, fmt.Errorf("unexpected event type %q", evt.Type)
	}
	evt.JobID = strings.TrimSpace(evt.JobID)
	if evt.JobID == "" {
		return evt, errors.New("event has no job_id")
	}
	return evt, nil
}

func (c *Consumer) Close() error {
	return closeAll(c.ch, c.conn)
}

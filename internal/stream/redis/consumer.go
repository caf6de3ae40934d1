package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/povarna/generative-ai-agents/legal-advisor/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Executor runs one assessment request
type Executor interface {
	Execute(ctx context.Context, req models.AssessmentRequest) models.AssessmentResult
}

type Consumer struct {
	client       redis.Cmdable
	stream       string
	groupID      string
	consumerName string
	resultStream string
	executor     Executor
	logger       *zerolog.Logger
}

func NewConsumer(client redis.Cmdable, cfg *RedisStreamConfig, exec Executor, logger *zerolog.Logger) *Consumer {
	return &Consumer{
		client:       client,
		stream:       cfg.Stream,
		groupID:      cfg.Group,
		consumerName: cfg.ConsumerName,
		resultStream: cfg.ResultStream,
		executor:     exec,
		logger:       logger,
	}
}

func (c *Consumer) Setup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.stream, c.groupID, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("failed to create consumer group %s: %w", c.groupID, err)
	}
	return nil
}

func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("stream", c.stream).
		Str("group", c.groupID).
		Str("consumer", c.consumerName).
		Msg("Consumer started")

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		msgs, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.groupID,
			Consumer: c.consumerName,
			Streams:  []string{c.stream, ">"},
			Count:    1,
			Block:    2 * time.Second,
		}).Result()

		if err != nil {
			if errors.Is(err, redis.Nil) {
				// timeout, no message -> loop again
				continue
			}

			if ctx.Err() != nil {
				return ctx.Err() // context cancelled during block
			}

			c.logger.Error().Err(err).Msg("Failed to read from stream")
			continue
		}

		for _, msg := range msgs[0].Messages {
			c.process(ctx, msg)
		}
	}
}

// Stop closes the underlying client when the consumer owns one.
func (c *Consumer) Stop() error {
	if closer, ok := c.client.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (c *Consumer) process(ctx context.Context, msg redis.XMessage) {
	c.logger.Info().Str("id", msg.ID).Msg("Message received")

	req, err := decodeMessage(msg)
	if err != nil {
		c.logger.Error().Err(err).Str("id", msg.ID).Msg("Failed to decode message")
		c.ack(ctx, msg.ID) // bad message, ACK to skip it
		return
	}

	result := c.executor.Execute(ctx, req)

	c.logger.Info().
		Str("id", msg.ID).
		Str("status", string(result.Status)).
		Str("category", result.Scope.Category).
		Msg("Assessment complete")

	if c.resultStream != "" {
		if err := c.publishResult(ctx, result); err != nil {
			c.logger.Error().Err(err).Str("id", msg.ID).Msg("Failed to publish result")
		}
	}

	c.ack(ctx, msg.ID)
}

func (c *Consumer) publishResult(ctx context.Context, result models.AssessmentResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.client.XAdd(ctx, &redis.XAddArgs{
		Stream: c.resultStream,
		Values: map[string]any{"payload": string(data)},
	}).Err()
}

func (c *Consumer) ack(ctx context.Context, msgID string) {
	if err := c.client.XAck(ctx, c.stream, c.groupID, msgID).Err(); err != nil {
		c.logger.Error().Err(err).Str("id", msgID).Msg("Failed to ACK message")
	}
}

func decodeMessage(msg redis.XMessage) (models.AssessmentRequest, error) {
	payload, ok := msg.Values["payload"].(string)
	if !ok {
		return models.AssessmentRequest{}, fmt.Errorf("missing payload field")
	}

	var event models.AssessmentEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		return models.AssessmentRequest{}, err
	}

	if event.EventType != "" && event.EventType != models.EventTypeAssessmentRequest {
		return models.AssessmentRequest{}, fmt.Errorf("unsupported event type: %s", event.EventType)
	}

	return normalize(event), nil
}

func normalize(event models.AssessmentEvent) models.AssessmentRequest {
	return models.AssessmentRequest{
		RequestID: event.EventID,
		SessionID: event.SessionID,
		Text:      event.Specification,
		CreatedAt: time.Now(),
	}
}

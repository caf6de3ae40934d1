package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/povarna/generative-ai-agents/legal-advisor/internal/models"
	"github.com/redis/go-redis/v9"
)

// Publish appends an assessment request to the stream and returns the
// message ID.
func Publish(ctx context.Context, client redis.Cmdable, stream string, event models.AssessmentEvent) (string, error) {
	if event.EventType == "" {
		event.EventType = models.EventTypeAssessmentRequest
	}

	data, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("failed to encode event %s: %w", event.EventID, err)
	}

	id, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]any{"payload": string(data)},
	}).Result()
	if err != nil {
		return "", fmt.Errorf("failed to publish event %s: %w", event.EventID, err)
	}
	return id, nil
}

package stream

import "github.com/povarna/generative-ai-agents/legal-advisor/internal/stream/redis"

type StreamConfig struct {
	Provider    string // redis
	RedisConfig *redis.RedisStreamConfig
}

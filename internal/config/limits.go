package config

import (
	"time"
)

type Limits struct {
	MaxConcurrentSessions int             `yaml:"max_concurrent_sessions" validate:"required,min=1,max=100"`
	MaxPromptSize         int             `yaml:"max_prompt_size" validate:"required,min=1000,max=1000000"`
	MaxRetries            int             `yaml:"max_retries" validate:"required,min=0,max=10"`
	TotalTimeout          time.Duration   `yaml:"total_timeout" validate:"required,min=1m,max=24h"`
	SceneTimeout          time.Duration   `yaml:"scene_timeout" validate:"omitempty,min=1m,max=6h"`
	RateLimit             RateLimitConfig `yaml:"rate_limit" validate:"required"`
}

type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute" validate:"required,min=1,max=1000"`
	BurstSize         int `yaml:"burst_size" validate:"required,min=1,max=100"`
}

func DefaultLimits() Limits {
	return Limits{
		MaxConcurrentSessions: 4,
		MaxPromptSize:         200000,
		MaxRetries:            5,
		TotalTimeout:          6 * time.Hour,
		SceneTimeout:          30 * time.Minute,
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 30,
			BurstSize:         15,
		},
	}
}

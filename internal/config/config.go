// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type ServerConfig struct {
	Port           int           `yaml:"port"`
	RequestTimeout time.Duration `yaml:"request_timeout"` // whole-request budget incl. polling
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type RedisConfig struct {
	URL      string        `yaml:"url"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"` // retrieval cache TTL
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
	Audience  string `yaml:"audience"`
}

type GladiaConfig struct {
	APIKey           string        `yaml:"api_key"`
	UploadURL        string        `yaml:"upload_url"`
	TranscriptionURL string        `yaml:"transcription_url"`
	PollInterval     time.Duration `yaml:"poll_interval"`
	MaxPollAttempts  int           `yaml:"max_poll_attempts"`
}

type LLMConfig struct {
	DashScopeKey     string  `yaml:"dashscope_key"`
	DashScopeBaseURL string  `yaml:"dashscope_base_url"`
	GeminiKey        string  `yaml:"gemini_key"`
	GeminiURL        string  `yaml:"gemini_url"`
	OpenAIKey        string  `yaml:"openai_key"`
	Model            string  `yaml:"model"`
	Temperature      float64 `yaml:"temperature"`
	MaxTokens        int     `yaml:"max_tokens"`
	ConcurrentLimit  int     `yaml:"concurrent_limit"` // max concurrent AI calls
}

type RetrievalConfig struct {
	TopK             int `yaml:"top_k"`
	MinKeywordLength int `yaml:"min_keyword_length"`
}

type RateLimitConfig struct {
	PerUser int           `yaml:"per_user"`
	Window  time.Duration `yaml:"window"`
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Auth      AuthConfig      `yaml:"auth"`
	Gladia    GladiaConfig    `yaml:"gladia"`
	LLM       LLMConfig       `yaml:"llm"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()

	// Minimal validation
	if cfg.Gladia.APIKey == "" {
		return nil, errors.New("gladia.api_key is required")
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("auth.jwt_secret is required")
	}
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is required")
	}
	if cfg.Redis.URL == "" {
		return nil, errors.New("redis.url is required")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Server.RequestTimeout <= 0 {
		// polling alone may take up to 2 minutes
		cfg.Server.RequestTimeout = 4 * time.Minute
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Redis.TTL <= 0 {
		cfg.Redis.TTL = 5 * time.Minute
	}
	if cfg.Auth.Audience == "" {
		cfg.Auth.Audience = "authenticated"
	}
	if cfg.Gladia.UploadURL == "" {
		cfg.Gladia.UploadURL = "https://api.gladia.io/v2/upload"
	}
	if cfg.Gladia.TranscriptionURL == "" {
		cfg.Gladia.TranscriptionURL = "https://api.gladia.io/v2/pre-recorded"
	}
	if cfg.Gladia.PollInterval <= 0 {
		cfg.Gladia.PollInterval = 2 * time.Second
	}
	if cfg.Gladia.MaxPollAttempts <= 0 {
		cfg.Gladia.MaxPollAttempts = 60
	}
	if cfg.LLM.DashScopeBaseURL == "" {
		cfg.LLM.DashScopeBaseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "qwen-turbo"
	}
	if cfg.LLM.Temperature <= 0 {
		cfg.LLM.Temperature = 0.7
	}
	if cfg.LLM.MaxTokens <= 0 {
		cfg.LLM.MaxTokens = 2000
	}
	if cfg.LLM.ConcurrentLimit <= 0 {
		cfg.LLM.ConcurrentLimit = 16
	}
	if cfg.Retrieval.TopK <= 0 {
		cfg.Retrieval.TopK = 3
	}
	if cfg.Retrieval.MinKeywordLength <= 0 {
		cfg.Retrieval.MinKeywordLength = 3
	}
	if cfg.RateLimit.PerUser <= 0 {
		cfg.RateLimit.PerUser = 10
	}
	if cfg.RateLimit.Window <= 0 {
		cfg.RateLimit.Window = time.Minute
	}
}

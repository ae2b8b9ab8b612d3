package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Backend names accepted in the config file.
const (
	BackendPostgres = "postgres"
	BackendSupabase = "supabase"
)

// Config top-level struct
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Backend   string          `yaml:"backend"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	Supabase  SupabaseConfig  `yaml:"supabase"`
	Redis     RedisConfig     `yaml:"redis"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	Auth      AuthConfig      `yaml:"auth"`
	Rates     RatesConfig     `yaml:"rates"`
	RateLimit RateLimitConfig `yaml:"ratelimit"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

type SupabaseConfig struct {
	URL string `yaml:"url"`
	Key string `yaml:"key"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
	TokenTTLH int    `yaml:"token_ttl_hours"`
}

type RatesConfig struct {
	BaseURL string `yaml:"base_url"`
}

type RateLimitConfig struct {
	RPS   int `yaml:"rps"`
	Burst int `yaml:"burst"`
}

// Load reads the yaml file; secrets come from env so they never live in
// the file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if cfg.Backend == "" {
		cfg.Backend = BackendPostgres
	}
	if pw := os.Getenv("POSTGRES_PASSWORD"); pw != "" {
		cfg.Postgres.DSN = cfg.Postgres.DSN + " password=" + pw
	}
	if key := os.Getenv("SUPABASE_KEY"); key != "" {
		cfg.Supabase.Key = key
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.Auth.JWTSecret = secret
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("auth.jwt_secret (or JWT_SECRET) is required")
	}
	if cfg.Auth.TokenTTLH <= 0 {
		cfg.Auth.TokenTTLH = 24
	}
	if cfg.Rates.BaseURL == "" {
		cfg.Rates.BaseURL = "https://api.frankfurter.app"
	}
	return &cfg, nil
}

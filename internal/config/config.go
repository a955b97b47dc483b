package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// DB stores database connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN renders the postgres connection string.
func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Pass, d.Host, d.Port, d.Name)
}

// Kafka stores event-consumer settings. Empty brokers disable the consumer.
type Kafka struct {
	Brokers []string
	Topic   string
	GroupID string
}

// Push stores push-delivery gateway settings.
type Push struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Retention stores archival sweep settings.
type Retention struct {
	Days          int
	SweepSchedule string
}

// RateLimit stores message-submission rate limit settings.
type RateLimit struct {
	Limit  int
	Window time.Duration
}

// Pprof stores debug listener settings. Empty addr disables the listener.
type Pprof struct {
	Addr string
	User string
	Pass string
}

// Config stores service settings.
type Config struct {
	Port             int
	DB               DB
	Kafka            Kafka
	Push             Push
	OperationTimeout time.Duration
	Retention        Retention
	RateLimit        RateLimit
	Pprof            Pprof
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:             envInt("PORT", DefaultPort()),
		DB:               DefaultDB(),
		Kafka:            DefaultKafka(),
		Push:             DefaultPush(),
		OperationTimeout: envDuration("OPERATION_TIMEOUT", DefaultOperationTimeout()),
		Retention:        DefaultRetention(),
		RateLimit:        DefaultRateLimit(),
		Pprof:            DefaultPprof(),
	}

	cfg.DB.Host = envStr("DB_HOST", cfg.DB.Host)
	cfg.DB.Port = envStr("DB_PORT", cfg.DB.Port)
	cfg.DB.User = envStr("DB_USER", cfg.DB.User)
	cfg.DB.Pass = envStr("DB_PASS", cfg.DB.Pass)
	cfg.DB.Name = envStr("DB_NAME", cfg.DB.Name)

	if v := envStr("KAFKA_BROKERS", ""); v != "" {
		cfg.Kafka.Brokers = splitCSV(v)
	}
	cfg.Kafka.Topic = envStr("KAFKA_TOPIC", cfg.Kafka.Topic)
	cfg.Kafka.GroupID = envStr("KAFKA_GROUP_ID", cfg.Kafka.GroupID)

	cfg.Push.BaseURL = envStr("PUSH_BASE_URL", cfg.Push.BaseURL)
	cfg.Push.APIKey = envStr("PUSH_API_KEY", cfg.Push.APIKey)
	cfg.Push.Timeout = envDuration("PUSH_TIMEOUT", cfg.Push.Timeout)

	cfg.Retention.Days = envInt("RETENTION_DAYS", cfg.Retention.Days)
	cfg.Retention.SweepSchedule = envStr("RETENTION_SWEEP_SCHEDULE", cfg.Retention.SweepSchedule)

	cfg.RateLimit.Limit = envInt("RATE_LIMIT", cfg.RateLimit.Limit)
	cfg.RateLimit.Window = envDuration("RATE_LIMIT_WINDOW", cfg.RateLimit.Window)

	cfg.Pprof.Addr = envStr("PPROF_ADDR", cfg.Pprof.Addr)
	cfg.Pprof.User = envStr("PPROF_USER", cfg.Pprof.User)
	cfg.Pprof.Pass = envStr("PPROF_PASS", cfg.Pprof.Pass)

	fs := pflag.NewFlagSet("transportmarket", pflag.ContinueOnError)
	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", cfg.Port)
	}
	if cfg.Retention.Days <= 0 {
		return nil, fmt.Errorf("invalid retention days: %d", cfg.Retention.Days)
	}
	return cfg, nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("warning: %s is not an int, using default", key)
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("warning: %s is not a duration, using default", key)
	}
	return fallback
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Package config loads runtime settings from configs/config.yml, an optional
// .env file and CRM_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "CRM"

var ErrMissingSecret = errors.New("jwt.secret is not set (CRM_JWT_SECRET)")

type Config struct {
	Port     string
	LogLevel string
	DB       DB
	JWT      JWT
	CORS     CORS
	Rate     RateLimit
	Notifier Notifier
	Server   Server
}

type DB struct {
	Driver string
	DSN    string
}

type JWT struct {
	Secret string
	TTL    time.Duration
}

type CORS struct {
	AllowOrigins []string
}

type RateLimit struct {
	RPS   float64
	Burst int
}

type Notifier struct {
	Schedule string
	// FeedInterval is the default period of websocket dashboard snapshots.
	FeedInterval time.Duration
}

type Server struct {
	ShutdownTimeout time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "crm.db")
	v.SetDefault("jwt.ttl", "168h")
	v.SetDefault("cors.allow_origins", []string{"*"})
	v.SetDefault("ratelimit.rps", 5)
	v.SetDefault("ratelimit.burst", 10)
	v.SetDefault("notifier.schedule", "@every 1m")
	v.SetDefault("notifier.feed_interval", "30s")
	v.SetDefault("server.shutdown_timeout", "10s")
}

// Load reads configuration. An empty path searches ./configs and . for
// config.yml; a missing file is not an error, defaults and env still apply.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("configs")
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Port:     v.GetString("port"),
		LogLevel: v.GetString("log.level"),
		DB: DB{
			Driver: v.GetString("db.driver"),
			DSN:    v.GetString("db.dsn"),
		},
		JWT: JWT{
			Secret: v.GetString("jwt.secret"),
			TTL:    v.GetDuration("jwt.ttl"),
		},
		CORS: CORS{AllowOrigins: splitList(v.GetStringSlice("cors.allow_origins"))},
		Rate: RateLimit{
			RPS:   v.GetFloat64("ratelimit.rps"),
			Burst: v.GetInt("ratelimit.burst"),
		},
		Notifier: Notifier{
			Schedule:     v.GetString("notifier.schedule"),
			FeedInterval: v.GetDuration("notifier.feed_interval"),
		},
		Server: Server{ShutdownTimeout: v.GetDuration("server.shutdown_timeout")},
	}
	return cfg, nil
}

// Validate checks the settings needed to serve traffic.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return ErrMissingSecret
	}
	switch c.DB.Driver {
	case "sqlite", "pgx":
	default:
		return fmt.Errorf("db.driver must be sqlite or pgx, got %q", c.DB.Driver)
	}
	if c.Rate.RPS <= 0 || c.Rate.Burst <= 0 {
		return fmt.Errorf("ratelimit.rps and ratelimit.burst must be positive")
	}
	return nil
}

// splitList accepts both YAML lists and comma-separated env values.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

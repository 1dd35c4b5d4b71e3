// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Storage driver names accepted by STORAGE_DRIVER.
const (
	DriverSpanner = "spanner"
	DriverMemory  = "memory"
)

// Config holds the full application configuration.
type Config struct {
	HTTP         HTTP
	Storage      Storage
	Security     Security
	Tokenization Tokenization
	Payment      Payment
	Email        Email
	Worker       Worker
}

type HTTP struct {
	Host string
	Port int
}

type Storage struct {
	Driver     string // "spanner" or "memory"
	ProjectID  string
	InstanceID string
	DatabaseID string
}

type Security struct {
	// APIKey guards all endpoints except /health when non-empty.
	APIKey string
	// CardAESKey encrypts card fields at rest. Must be 16, 24 or 32 bytes.
	CardAESKey string
}

type Tokenization struct {
	RejectionProbability float64
	SecretKey            string
}

type Payment struct {
	RejectionProbability float64
	MaxRetries           int
}

type Email struct {
	SendGridAPIKey string
	SenderAddress  string
	SenderAlias    string
}

type Worker struct {
	PoolSize  int
	QueueSize int
}

// Load reads configuration from environment variables with sane defaults.
// Keys use dots internally and underscores in the environment, e.g.
// payment.max_retries <- PAYMENT_MAX_RETRIES.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("http.host", "")
	v.SetDefault("http.port", 8080)

	v.SetDefault("storage.driver", DriverMemory)
	v.SetDefault("spanner.project.id", "local-project")
	v.SetDefault("spanner.instance.id", "local-instance")
	v.SetDefault("spanner.database.id", "commerce-db")

	v.SetDefault("api.key", "")
	v.SetDefault("card.aes.key", "0123456789abcdef")

	v.SetDefault("tokenization.rejection.probability", 0.1)
	v.SetDefault("tokenization.secret.key", "dev-tokenization-secret")

	v.SetDefault("payment.rejection.probability", 0.3)
	v.SetDefault("payment.max.retries", 2)

	v.SetDefault("sendgrid.api.key", "")
	v.SetDefault("email.sender.address", "no-reply@commerce.local")
	v.SetDefault("email.sender.alias", "Commerce")

	v.SetDefault("worker.pool.size", 4)
	v.SetDefault("worker.queue.size", 64)

	cfg := &Config{
		HTTP: HTTP{
			Host: v.GetString("http.host"),
			Port: v.GetInt("http.port"),
		},
		Storage: Storage{
			Driver:     v.GetString("storage.driver"),
			ProjectID:  v.GetString("spanner.project.id"),
			InstanceID: v.GetString("spanner.instance.id"),
			DatabaseID: v.GetString("spanner.database.id"),
		},
		Security: Security{
			APIKey:     v.GetString("api.key"),
			CardAESKey: v.GetString("card.aes.key"),
		},
		Tokenization: Tokenization{
			RejectionProbability: v.GetFloat64("tokenization.rejection.probability"),
			SecretKey:            v.GetString("tokenization.secret.key"),
		},
		Payment: Payment{
			RejectionProbability: v.GetFloat64("payment.rejection.probability"),
			MaxRetries:           v.GetInt("payment.max.retries"),
		},
		Email: Email{
			SendGridAPIKey: v.GetString("sendgrid.api.key"),
			SenderAddress:  v.GetString("email.sender.address"),
			SenderAlias:    v.GetString("email.sender.alias"),
		},
		Worker: Worker{
			PoolSize:  v.GetInt("worker.pool.size"),
			QueueSize: v.GetInt("worker.queue.size"),
		},
	}

	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.Storage.Driver != DriverSpanner && c.Storage.Driver != DriverMemory {
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if p := c.Tokenization.RejectionProbability; p < 0 || p > 1 {
		return fmt.Errorf("tokenization rejection probability %v out of [0,1]", p)
	}
	if p := c.Payment.RejectionProbability; p < 0 || p > 1 {
		return fmt.Errorf("payment rejection probability %v out of [0,1]", p)
	}
	if c.Payment.MaxRetries < 0 {
		return fmt.Errorf("payment max retries must be non-negative, got %d", c.Payment.MaxRetries)
	}
	switch len(c.Security.CardAESKey) {
	case 16, 24, 32:
	default:
		return fmt.Errorf("card AES key must be 16, 24 or 32 bytes, got %d", len(c.Security.CardAESKey))
	}
	if c.Worker.PoolSize <= 0 {
		return fmt.Errorf("worker pool size must be positive, got %d", c.Worker.PoolSize)
	}
	return nil
}

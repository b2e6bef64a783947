package config

import (
	"crypto/tls"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/go-playground/validator/v10"
	"github.com/partnerflow/partnerflow/internal/types"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment    DeploymentConfig    `validate:"required"`
	Server        ServerConfig        `validate:"required"`
	Logging       LoggingConfig       `validate:"required"`
	Postgres      PostgresConfig      `validate:"required"`
	ClickHouse    ClickHouseConfig    `validate:"required"`
	Redis         RedisConfig         `validate:"required"`
	Stripe        StripeConfig        `mapstructure:"stripe"`
	Webhook       Webhook             `mapstructure:"webhook"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
	Billing       BillingConfig       `mapstructure:"billing"`
	Cache         CacheConfig         `mapstructure:"cache"`
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type ClickHouseConfig struct {
	Address  string
	TLS      bool
	Username string
	Password string
	Database string
}

type RedisConfig struct {
	URL string
}

type StripeConfig struct {
	APIKey        string `mapstructure:"api_key"`
	WebhookSecret string `mapstructure:"webhook_secret"`
}

type NotificationsConfig struct {
	ResendAPIKey string `mapstructure:"resend_api_key"`
	FromAddress  string `mapstructure:"from_address"`
}

type BillingConfig struct {
	// DedupTTL is the retention window of the invoice idempotency claim.
	// A duplicate delivery after the window lapses can record a second sale.
	DedupTTL time.Duration `mapstructure:"dedup_ttl"`
}

type CacheConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// setDefaults registers the fallback values applied when a key is absent from
// both the config file and the environment
func setDefaults(v *viper.Viper) {
	v.SetDefault("webhook.topic", "webhooks")
	v.SetDefault("webhook.pubsub", string(types.MemoryPubSub))
	v.SetDefault("billing.dedup_ttl", "168h")
	v.SetDefault("cache.enabled", true)
	v.SetDefault("notifications.from_address", "partners@partnerflow.io")
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/partnerflow")

	v.SetEnvPrefix("PARTNERFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for local development
// This is useful for running scripts or other non-web applications
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Webhook:    Webhook{Topic: "webhooks", PubSub: types.MemoryPubSub},
		Billing:    BillingConfig{DedupTTL: 168 * time.Hour},
		Cache:      CacheConfig{Enabled: true},
	}
}

func (c ClickHouseConfig) GetClientOptions() *clickhouse.Options {
	options := &clickhouse.Options{
		Addr: []string{c.Address},
		Auth: clickhouse.Auth{
			Database: c.Database,
			Username: c.Username,
			Password: c.Password,
		},
		ConnOpenStrategy: clickhouse.ConnOpenInOrder,
	}
	if c.TLS {
		options.TLS = &tls.Config{}
	}
	return options
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User, c.Password, c.DBName, c.Host, c.Port, c.SSLMode,
	)
}

func (c RedisConfig) GetClientOptions() (*redis.Options, error) {
	if strings.HasPrefix(c.URL, "redis://") || strings.HasPrefix(c.URL, "rediss://") {
		return redis.ParseURL(c.URL)
	}
	return &redis.Options{Addr: c.URL}, nil
}

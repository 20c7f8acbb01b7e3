package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultConfigFile is read when no explicit path is given and the file exists.
const DefaultConfigFile = "configs/config.yaml"

// Config is the main struct that holds all configuration for the application.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Postgres  PostgresConfig  `mapstructure:"postgres"`
	RabbitMQ  RabbitMQConfig  `mapstructure:"rabbitmq"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Async     AsyncConfig     `mapstructure:"async"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Notifiers NotifiersConfig `mapstructure:"notifiers"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
}

// LoggerConfig holds logging-specific settings.
type LoggerConfig struct {
	Level string `mapstructure:"level"`
	// Format is "console" for human readable output or "json".
	Format string `mapstructure:"format"`
}

// HTTPConfig holds HTTP server-specific settings.
type HTTPConfig struct {
	Port            string        `mapstructure:"port"`
	GinMode         string        `mapstructure:"gin_mode"`
	StaticDir       string        `mapstructure:"static_dir"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	// TrustedProxies lists the proxy addresses or CIDRs whose forwarding
	// headers set the client IP. Empty trusts none.
	TrustedProxies  []string      `mapstructure:"trusted_proxies"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// AuthConfig holds token and password hashing settings.
type AuthConfig struct {
	JWTSecret     string        `mapstructure:"jwt_secret"`
	JWTExpiry     time.Duration `mapstructure:"jwt_expiry"`
	BcryptCost    int           `mapstructure:"bcrypt_cost"`
	ResetTokenTTL time.Duration `mapstructure:"reset_token_ttl"`
	// ResetURL is the frontend page the reset token is appended to.
	ResetURL string `mapstructure:"reset_url"`
}

// PostgresConfig holds all settings for the PostgreSQL database connection.
type PostgresConfig struct {
	DSN  string     `mapstructure:"dsn"`
	Pool PoolConfig `mapstructure:"pool"`
}

// PoolConfig defines the connection pool settings for the database.
type PoolConfig struct {
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// RabbitMQConfig holds all settings for the RabbitMQ connection.
type RabbitMQConfig struct {
	DSN string `mapstructure:"dsn"`
}

// RedisConfig holds all settings for the Redis connection.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// AsyncConfig sizes the background job worker pool.
type AsyncConfig struct {
	Workers     int           `mapstructure:"workers"`
	MaxAttempts int           `mapstructure:"max_attempts"`
	RetryBase   time.Duration `mapstructure:"retry_base"`
}

// SchedulerConfig holds the intervals of the periodic maintenance tasks.
type SchedulerConfig struct {
	MembershipExpiryInterval time.Duration `mapstructure:"membership_expiry_interval"`
	ResetTokenPurgeInterval  time.Duration `mapstructure:"reset_token_purge_interval"`
}

// NotifiersConfig holds configurations for all outbound channels.
type NotifiersConfig struct {
	// Mode can be "development" or "production".
	// In "development" mode, all notifiers will be replaced by the LogNotifier.
	Mode     string         `mapstructure:"mode"`
	Email    EmailConfig    `mapstructure:"email"`
	Telegram TelegramConfig `mapstructure:"telegram"`
}

// EmailConfig holds SMTP settings for the email notifier.
type EmailConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	// AdminAddress receives contact form copies. Defaults to From.
	AdminAddress string `mapstructure:"admin_address"`
}

// Enabled reports whether enough SMTP settings are present to send mail.
func (e EmailConfig) Enabled() bool {
	return e.Host != "" && e.Username != "" && e.Password != ""
}

// Admin returns the address contact form copies are sent to.
func (e EmailConfig) Admin() string {
	if e.AdminAddress != "" {
		return e.AdminAddress
	}
	if e.From != "" {
		return e.From
	}
	return e.Username
}

// TelegramConfig holds settings for the Telegram notifier.
type TelegramConfig struct {
	BotToken    string `mapstructure:"bot_token"`
	AdminChatID int64  `mapstructure:"admin_chat_id"`
}

// RateLimitConfig holds per-client request budgets for sensitive routes.
type RateLimitConfig struct {
	AuthPerMinute    int `mapstructure:"auth_per_minute"`
	ChatbotPerMinute int `mapstructure:"chatbot_per_minute"`
	Burst            int `mapstructure:"burst"`
}

// Load reads config from the YAML file at path, then overlays environment
// variables with the FITGENIUS_ prefix (e.g. FITGENIUS_AUTH_JWT_SECRET).
// An empty path falls back to DefaultConfigFile when it exists.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("FITGENIUS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			path = DefaultConfigFile
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// Validate checks the values the process cannot start without.
func (c *Config) Validate() error {
	var errs []error

	if len(c.Auth.JWTSecret) < 32 {
		errs = append(errs, errors.New("auth.jwt_secret must be at least 32 characters"))
	}
	if c.Auth.JWTExpiry <= 0 {
		errs = append(errs, errors.New("auth.jwt_expiry must be positive"))
	}
	if c.HTTP.Port == "" {
		errs = append(errs, errors.New("http.port is required"))
	}
	if c.Postgres.DSN == "" {
		errs = append(errs, errors.New("postgres.dsn is required"))
	}
	if c.RabbitMQ.DSN == "" {
		errs = append(errs, errors.New("rabbitmq.dsn is required"))
	}
	if c.Redis.Addr == "" {
		errs = append(errs, errors.New("redis.addr is required"))
	}
	if c.Async.Workers < 1 {
		errs = append(errs, errors.New("async.workers must be at least 1"))
	}
	if c.Async.MaxAttempts < 1 {
		errs = append(errs, errors.New("async.max_attempts must be at least 1"))
	}
	if c.Scheduler.MembershipExpiryInterval <= 0 || c.Scheduler.ResetTokenPurgeInterval <= 0 {
		errs = append(errs, errors.New("scheduler intervals must be positive"))
	}
	if c.Notifiers.Mode != "development" && c.Notifiers.Mode != "production" {
		errs = append(errs, fmt.Errorf("notifiers.mode must be development or production, got %q", c.Notifiers.Mode))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")

	v.SetDefault("http.port", ":3000")
	v.SetDefault("http.gin_mode", "release")
	v.SetDefault("http.allowed_origins", []string{"*"})
	v.SetDefault("http.read_timeout", 15*time.Second)
	v.SetDefault("http.write_timeout", 15*time.Second)
	v.SetDefault("http.shutdown_timeout", 30*time.Second)

	v.SetDefault("auth.jwt_expiry", 7*24*time.Hour)
	v.SetDefault("auth.bcrypt_cost", 12)
	v.SetDefault("auth.reset_token_ttl", 10*time.Minute)
	v.SetDefault("auth.reset_url", "http://localhost:3000/reset-password/")

	v.SetDefault("postgres.pool.max_conns", 20)
	v.SetDefault("postgres.pool.min_conns", 2)
	v.SetDefault("postgres.pool.conn_max_lifetime", time.Hour)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.cache_ttl", 24*time.Hour)

	v.SetDefault("async.workers", 5)
	v.SetDefault("async.max_attempts", 5)
	v.SetDefault("async.retry_base", 5*time.Second)

	v.SetDefault("scheduler.membership_expiry_interval", time.Hour)
	v.SetDefault("scheduler.reset_token_purge_interval", time.Hour)

	v.SetDefault("notifiers.mode", "development")
	v.SetDefault("notifiers.email.port", 587)

	v.SetDefault("ratelimit.auth_per_minute", 10)
	v.SetDefault("ratelimit.chatbot_per_minute", 30)
	v.SetDefault("ratelimit.burst", 5)

	// Keys without a default must be bound for Unmarshal to see env overrides.
	for _, key := range []string{
		"auth.jwt_secret",
		"postgres.dsn",
		"rabbitmq.dsn",
		"redis.password",
		"http.static_dir",
		"http.trusted_proxies",
		"notifiers.email.host",
		"notifiers.email.username",
		"notifiers.email.password",
		"notifiers.email.from",
		"notifiers.email.admin_address",
		"notifiers.telegram.bot_token",
		"notifiers.telegram.admin_chat_id",
	} {
		_ = v.BindEnv(key)
	}
}

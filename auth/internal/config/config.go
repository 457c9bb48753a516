package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"community-server/shared/utils"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/crypto/bcrypt"
)

// Notifier drivers.
const (
	NotifierAMQP = "amqp"
	NotifierSMTP = "smtp"
	NotifierLog  = "log"
)

// Config holds the application configuration.
type Config struct {
	Env        string `envconfig:"ENV" default:"development"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
	ServerPort string `envconfig:"SERVER_PORT" default:"8081"`
	ServiceID  string `envconfig:"SERVICE_ID" default:"auth-service"`

	// Database
	DBHost        string        `envconfig:"DB_HOST" required:"true"`
	DBPort        string        `envconfig:"DB_PORT" default:"5432"`
	DBUser        string        `envconfig:"DB_USER" required:"true"`
	DBName        string        `envconfig:"DB_NAME" required:"true"`
	DBSSLMode     string        `envconfig:"DB_SSL_MODE" default:"disable"`
	DBMaxConns    int32         `envconfig:"DB_MAX_CONNS" default:"10"`
	DBIdleTimeout time.Duration `envconfig:"DB_IDLE_TIMEOUT" default:"5m"`
	// Секретное поле без envconfig тега
	DBPassword string `ignored:"true"`

	// Redis
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
	RedisPassword string `ignored:"true"`

	// Session & passwords
	JWTSecret        string        `ignored:"true"`
	PasswordPepper   string        `ignored:"true"`
	SessionTTL       time.Duration `envconfig:"JWT_SESSION_TTL" default:"168h"`
	PasswordHashCost int           `envconfig:"PASSWORD_HASH_COST" default:"10"`

	// Email verification
	EmailVerifyTTLSeconds int    `envconfig:"EMAIL_VERIFY_TTL" default:"86400"`
	RedirectURL           string `envconfig:"REDIRECT_URL" default:"http://localhost:3000"`

	// Bootstrap system admin
	SysadminEmail    string `envconfig:"SYSADMIN_EMAIL"`
	SysadminName     string `envconfig:"SYSADMIN_NAME" default:"System Administrator"`
	SysadminPassword string `ignored:"true"`

	// Notifier
	NotifierDriver string `envconfig:"NOTIFIER_DRIVER" default:"log"`
	RabbitMQURL    string `envconfig:"RABBITMQ_URL"`
	MailQueueName  string `envconfig:"MAIL_QUEUE_NAME" default:"mail_outbox"`
	SMTPHost       string `envconfig:"SMTP_HOST"`
	SMTPPort       int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUser       string `envconfig:"SMTP_USER"`
	SMTPFrom       string `envconfig:"SMTP_FROM" default:"no-reply@localhost"`
	SMTPPassword   string `ignored:"true"`

	// HTTP
	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
	RateLimitPerMinute uint   `envconfig:"RATE_LIMIT_PER_MINUTE" default:"10"`
}

// GetAllowedOrigins splits the CORSAllowedOrigins string into a slice.
func (c *Config) GetAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(c.CORSAllowedOrigins, " ", ""), ",")
}

// DatabaseURL builds the postgres DSN.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// EmailVerifyTTL is the lifetime of a verification token.
func (c *Config) EmailVerifyTTL() time.Duration {
	return time.Duration(c.EmailVerifyTTLSeconds) * time.Second
}

// SysadminConfigured reports whether the bootstrap admin can be created.
func (c *Config) SysadminConfigured() bool {
	return c.SysadminEmail != "" && c.SysadminPassword != ""
}

// Validate checks invariants envconfig cannot express.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("jwt secret is not configured (secret 'jwt_secret' or JWT_SECRET)"))
	}
	if c.PasswordHashCost < bcrypt.MinCost || c.PasswordHashCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("PASSWORD_HASH_COST must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, c.PasswordHashCost))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("JWT_SESSION_TTL must be positive"))
	}
	if c.EmailVerifyTTLSeconds <= 0 {
		errs = append(errs, errors.New("EMAIL_VERIFY_TTL must be positive"))
	}
	switch c.NotifierDriver {
	case NotifierLog:
	case NotifierAMQP:
		if c.RabbitMQURL == "" {
			errs = append(errs, errors.New("RABBITMQ_URL is required for the amqp notifier"))
		}
	case NotifierSMTP:
		if c.SMTPHost == "" {
			errs = append(errs, errors.New("SMTP_HOST is required for the smtp notifier"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown NOTIFIER_DRIVER %q", c.NotifierDriver))
	}
	return errors.Join(errs...)
}

// LoadConfig loads configuration from an optional .env file, environment variables and secrets.
func LoadConfig(envFilePath string) (*Config, error) {
	if envFilePath != "" {
		if _, err := os.Stat(envFilePath); err == nil {
			if err := godotenv.Load(envFilePath); err != nil {
				log.Printf("Warning: Could not load %s file: %v", envFilePath, err)
			} else {
				log.Printf("Loaded configuration from %s", envFilePath)
			}
		} else if !os.IsNotExist(err) {
			log.Printf("Warning: Error checking %s file: %v", envFilePath, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("error processing env vars: %w", err)
	}

	var ok bool
	if cfg.DBPassword, ok = utils.LookupSecret("db_password", "DB_PASSWORD"); !ok {
		return nil, errors.New("database password is not configured (secret 'db_password' or DB_PASSWORD)")
	}
	// Без секрета JWT сервис не стартует.
	cfg.JWTSecret, _ = utils.LookupSecret("jwt_secret", "JWT_SECRET")

	// Необязательные секреты
	cfg.PasswordPepper, _ = utils.LookupSecret("password_pepper", "PASSWORD_PEPPER")
	cfg.RedisPassword, _ = utils.LookupSecret("redis_password", "REDIS_PASSWORD")
	cfg.SysadminPassword, _ = utils.LookupSecret("sysadmin_password", "SYSADMIN_PASSWORD")
	cfg.SMTPPassword, _ = utils.LookupSecret("smtp_password", "SMTP_PASSWORD")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log.Println("Configuration loaded successfully.")
	return &cfg, nil
}

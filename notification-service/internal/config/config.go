package config

import (
	"errors"
	"fmt"
	"log"
	"os"

	"community-server/shared/messaging"
	"community-server/shared/utils"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	RabbitMQ          RabbitMQConfig
	SMTP              SMTPConfig
	Log               LogConfig
	MailQueueName     string `yaml:"mail_queue_name" env:"MAIL_QUEUE_NAME" env-default:"mail_outbox"`
	WorkerConcurrency int    `yaml:"worker_concurrency" env:"WORKER_CONCURRENCY" env-default:"4"`
	HealthCheckPort   string `yaml:"health_check_port" env:"HEALTH_CHECK_PORT" env-default:"8088"`
}

type RabbitMQConfig struct {
	URI string `yaml:"uri" env:"RABBITMQ_URL" env-required:"true"`
}

type SMTPConfig struct {
	Host     string `yaml:"host" env:"SMTP_HOST" env-required:"true"`
	Port     int    `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	Username string `yaml:"username" env:"SMTP_USER"`
	From     string `yaml:"from" env:"SMTP_FROM" env-default:"no-reply@localhost"`
	// Пароль читается из секрета smtp_password
	Password string `yaml:"-"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Env   string `yaml:"env" env:"ENV" env-default:"production"`
}

// LoadConfig reads config.yml when present and environment variables otherwise.
func LoadConfig(configPath string) (*Config, error) {
	var cfg Config

	if _, statErr := os.Stat(configPath); statErr == nil {
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", configPath, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read config from environment: %w", err)
	}

	cfg.SMTP.Password, _ = utils.LookupSecret("smtp_password", "SMTP_PASSWORD")
	if cfg.MailQueueName == "" {
		cfg.MailQueueName = messaging.MailQueueName
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Printf("Configuration loaded. Mail queue: %s, workers: %d", cfg.MailQueueName, cfg.WorkerConcurrency)
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.WorkerConcurrency < 1 {
		errs = append(errs, fmt.Errorf("WORKER_CONCURRENCY must be positive, got %d", c.WorkerConcurrency))
	}
	if c.SMTP.Port <= 0 || c.SMTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("SMTP_PORT is out of range: %d", c.SMTP.Port))
	}
	if c.SMTP.Username != "" && c.SMTP.Password == "" {
		errs = append(errs, errors.New("SMTP_USER is set but smtp_password is missing"))
	}
	return errors.Join(errs...)
}

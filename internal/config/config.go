package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "config/config.yaml"

// Config объединяет все аспекты настройки приложения.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http"`
	Timeouts    TimeoutConfig     `yaml:"timeouts"`
	Logging     LoggingConfig     `yaml:"logging"`
	Swagger     SwaggerConfig     `yaml:"swagger"`
	Derangement DerangementConfig `yaml:"derangement"`
	Limits      LimitsConfig      `yaml:"limits"`
}

// HTTPConfig описывает HTTP-сервер.
type HTTPConfig struct {
	Port         string        `yaml:"port" env:"HTTP_PORT"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT"`
}

// TimeoutConfig содержит таймауты разного уровня.
type TimeoutConfig struct {
	Operation time.Duration `yaml:"operation" env:"OPERATION_TIMEOUT"`
	Shutdown  time.Duration `yaml:"shutdown" env:"SHUTDOWN_TIMEOUT"`
}

// LoggingConfig описывает формат и место логов.
type LoggingConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Output string `yaml:"output" env:"LOG_OUTPUT"`
}

// SwaggerConfig задаёт путь до OpenAPI-спецификации.
type SwaggerConfig struct {
	SpecPath string `yaml:"spec_path" env:"SWAGGER_SPEC_PATH"`
}

// DerangementConfig управляет генератором перестановок.
type DerangementConfig struct {
	// MaxAttempts: потолок попыток перемешивания до перехода на алгоритм Саттоло.
	MaxAttempts int `yaml:"max_attempts" env:"DERANGEMENT_MAX_ATTEMPTS"`
}

// LimitsConfig ограничивает размер входящих запросов.
type LimitsConfig struct {
	MaxParticipants int   `yaml:"max_participants" env:"MAX_PARTICIPANTS"`
	MaxBodyBytes    int64 `yaml:"max_body_bytes" env:"MAX_BODY_BYTES"`
}

// MustLoad загружает конфигурацию из YAML + ENV и паникует при ошибке.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load загружает конфигурацию, отдавая предпочтение пути из CONFIG_PATH.
func Load() (Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = defaultConfigPath
	}

	cfg := Config{}
	if err := readYAML(path, &cfg); err != nil {
		return Config{}, err
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env vars: %w", err)
	}
	cfg.Normalize()
	return cfg, nil
}

func readYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("config file %s not found", path)
		}
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("decode config yaml: %w", err)
	}
	return nil
}

// Normalize устанавливает значения по умолчанию для незаданных полей.
func (c *Config) Normalize() {
	if c.HTTP.Port == "" {
		c.HTTP.Port = "8080"
	}
	if c.HTTP.ReadTimeout <= 0 {
		c.HTTP.ReadTimeout = 5 * time.Second
	}
	if c.HTTP.WriteTimeout <= 0 {
		c.HTTP.WriteTimeout = 5 * time.Second
	}
	if c.HTTP.IdleTimeout <= 0 {
		c.HTTP.IdleTimeout = 5 * time.Minute
	}

	if c.Timeouts.Operation <= 0 {
		c.Timeouts.Operation = 3 * time.Second
	}
	if c.Timeouts.Shutdown <= 0 {
		c.Timeouts.Shutdown = 10 * time.Second
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}

	if c.Swagger.SpecPath == "" {
		c.Swagger.SpecPath = "openapi.yml"
	}

	if c.Derangement.MaxAttempts <= 0 {
		c.Derangement.MaxAttempts = 1000
	}

	if c.Limits.MaxParticipants <= 0 {
		c.Limits.MaxParticipants = 10000
	}
	if c.Limits.MaxBodyBytes <= 0 {
		c.Limits.MaxBodyBytes = 1 << 20
	}
}

package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Options задает, откуда читать конфигурацию. Заполняется флагами командной строки.
type Options struct {
	EnvFile    string
	ConfigFile string
	Port       string
}

// AppConfig содержит конфигурацию приложения
type AppConfig struct {
	ServerPort string          `yaml:"server_port"`
	GinMode    string          `yaml:"gin_mode"`
	Kafka      KafkaConfig     `yaml:"kafka"`
	Rotaprint  RotaprintConfig `yaml:"rotaprint"`
	Logging    LoggerConfig    `yaml:"logging"`
}

// KafkaConfig содержит настройки публикации событий консоли
type KafkaConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Broker      string `yaml:"broker"`
	Topic       string `yaml:"topic"`
	Encoding    string `yaml:"encoding"`    // json или cbor
	Compression string `yaml:"compression"` // none, gzip, snappy, lz4, zstd
}

// RotaprintConfig содержит параметры подключения к бэкенду принтера
type RotaprintConfig struct {
	URL           string `yaml:"url"`
	DialTimeoutMs int    `yaml:"dial_timeout_ms"`
	Page          string `yaml:"page"`
	CallTimeoutMs int    `yaml:"call_timeout_ms"`
}

// LoggerConfig содержит настройки логгера
type LoggerConfig struct {
	Enable     bool   `yaml:"enable"`
	LogsDir    string `yaml:"logs_dir"`
	Level      string `yaml:"level"`
	SavingDays int    `yaml:"saving_days"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *AppConfig {
	return &AppConfig{
		ServerPort: "8082",
		GinMode:    "debug",
		Kafka: KafkaConfig{
			Enabled:     true,
			Broker:      "localhost:9092",
			Topic:       "rotaprint_events",
			Encoding:    "json",
			Compression: "none",
		},
		Rotaprint: RotaprintConfig{
			URL:           "ws://localhost:8765",
			DialTimeoutMs: 5000,
			Page:          "overview",
			CallTimeoutMs: 5000,
		},
		Logging: LoggerConfig{
			Enable:     true,
			LogsDir:    "./logs",
			Level:      "DEBUG",
			SavingDays: 7,
		},
	}
}

// LoadConfiguration собирает конфигурацию: значения по умолчанию, затем YAML-файл,
// затем .env файл и переменные окружения, затем флаги.
func LoadConfiguration(opts *Options) (*AppConfig, error) {
	if opts == nil {
		opts = &Options{}
	}

	config := Default()

	if opts.ConfigFile != "" {
		data, err := os.ReadFile(opts.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", opts.ConfigFile, err)
		}
	}

	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil {
			return nil, fmt.Errorf("load env file: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}

	config.ServerPort = getEnv("APP_PORT", config.ServerPort)
	config.GinMode = getEnv("GIN_MODE", config.GinMode)
	config.Kafka = KafkaConfig{
		Enabled:     getEnvAsBool("KAFKA_ENABLE", config.Kafka.Enabled),
		Broker:      getEnv("KAFKA_BROKER", config.Kafka.Broker),
		Topic:       getEnv("KAFKA_TOPIC", config.Kafka.Topic),
		Encoding:    getEnv("KAFKA_ENCODING", config.Kafka.Encoding),
		Compression: getEnv("KAFKA_COMPRESSION", config.Kafka.Compression),
	}
	config.Rotaprint = RotaprintConfig{
		URL:           getEnv("ROTAPRINT_URL", config.Rotaprint.URL),
		DialTimeoutMs: getEnvAsInt("ROTAPRINT_DIAL_TIMEOUT", config.Rotaprint.DialTimeoutMs),
		Page:          getEnv("ROTAPRINT_PAGE", config.Rotaprint.Page),
		CallTimeoutMs: getEnvAsInt("ROTAPRINT_CALL_TIMEOUT", config.Rotaprint.CallTimeoutMs),
	}
	config.Logging = LoggerConfig{
		Enable:     getEnvAsBool("LOGGER_ENABLE", config.Logging.Enable),
		LogsDir:    getEnv("LOGGER_LOGS_DIR", config.Logging.LogsDir),
		Level:      getEnv("LOGGER_LOG_LEVEL", config.Logging.Level),
		SavingDays: getEnvAsInt("LOGGER_SAVING_DAYS", config.Logging.SavingDays),
	}

	if opts.Port != "" {
		config.ServerPort = opts.Port
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate проверяет значения, которые нельзя исправить молча.
func (c *AppConfig) Validate() error {
	switch c.Kafka.Encoding {
	case "json", "cbor":
	default:
		return fmt.Errorf("unsupported kafka encoding %q", c.Kafka.Encoding)
	}
	switch c.Kafka.Compression {
	case "", "none", "gzip", "snappy", "lz4", "zstd":
	default:
		return fmt.Errorf("unsupported kafka compression %q", c.Kafka.Compression)
	}
	if c.Rotaprint.DialTimeoutMs <= 0 {
		c.Rotaprint.DialTimeoutMs = 5000
	}
	if c.Rotaprint.CallTimeoutMs <= 0 {
		c.Rotaprint.CallTimeoutMs = 5000
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(name string, defaultValue int) int {
	valueStr := getEnv(name, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	val, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return val
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	ModePolling = "polling"
	ModeWebhook = "webhook"

	StorageMemory   = "memory"
	StorageJSON     = "json"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port string `yaml:"port" validate:"required"`
	} `yaml:"server"`
	TelegramBot struct {
		Token       string        `yaml:"token" validate:"required"`
		Mode        string        `yaml:"mode" validate:"oneof=polling webhook"`
		PollTimeout time.Duration `yaml:"poll_timeout" validate:"gt=0"`
		WebhookURL  string        `yaml:"webhook_url" validate:"required_if=Mode webhook"`
		ListenAddr  string        `yaml:"listen_addr" validate:"required_if=Mode webhook"`
	} `yaml:"telegram_bot"`
	Interview struct {
		QuestionCount int           `yaml:"question_count" validate:"gt=0"`
		TimeLimit     time.Duration `yaml:"time_limit" validate:"gt=0"`
		Seed          int64         `yaml:"seed"`
	} `yaml:"interview"`
	Questions struct {
		Dir    string   `yaml:"dir" validate:"required"`
		Topics []string `yaml:"topics" validate:"required,min=1,unique,dive,required"`
	} `yaml:"questions"`
	Messages struct {
		Path string `yaml:"path"`
	} `yaml:"messages"`
	Storage struct {
		Type     string `yaml:"type" validate:"oneof=memory json postgres redis"`
		JSONPath string `yaml:"json_path" validate:"required_if=Type json"`
		Database string `yaml:"database" validate:"required_if=Type postgres"`
		Redis    struct {
			URL    string        `yaml:"url"`
			Prefix string        `yaml:"prefix"`
			TTL    time.Duration `yaml:"ttl" validate:"gte=0"`
		} `yaml:"redis"`
	} `yaml:"storage"`
	Report struct {
		PDF bool `yaml:"pdf"`
	} `yaml:"report"`
	Log struct {
		Level  string `yaml:"level" validate:"oneof=debug info warn error"`
		Format string `yaml:"format" validate:"oneof=text json"`
	} `yaml:"log"`
	Debug bool `yaml:"debug"`
}

// defaults значения, которые используются, если в файле их нет
func defaults() *Config {
	cfg := &Config{}
	cfg.Server.Port = "8080"
	cfg.TelegramBot.Mode = ModePolling
	cfg.TelegramBot.PollTimeout = 10 * time.Second
	cfg.TelegramBot.ListenAddr = ":8443"
	cfg.Interview.QuestionCount = 5
	cfg.Interview.TimeLimit = 120 * time.Second
	cfg.Questions.Dir = "data/questions"
	cfg.Questions.Topics = []string{"typescript", "qa", "playwright"}
	cfg.Storage.Type = StorageMemory
	cfg.Storage.JSONPath = "results.json"
	cfg.Storage.Redis.Prefix = "prepbot"
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	return cfg
}

// LoadConfig читает YAML-файл, применяет переменные окружения (и .env, если он есть) и проверяет результат.
// Если filename пуст, используются значения по умолчанию.
func LoadConfig(filename string) (*Config, error) {
	config := defaults()

	if filename != "" {
		f, err := os.Open(filename)
		if err != nil {
			return nil, err
		}

		defer func(f *os.File) {
			_ = f.Close()
		}(f)

		// Topics из файла заменяют список по умолчанию, а не дополняют его
		config.Questions.Topics = nil
		if err := yaml.NewDecoder(f).Decode(config); err != nil {
			return nil, fmt.Errorf("failed to decode config %s: %w", filename, err)
		}
		if len(config.Questions.Topics) == 0 {
			config.Questions.Topics = defaults().Questions.Topics
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	if err := config.applyEnv(); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

// applyEnv переопределяет значения переменными окружения
func (c *Config) applyEnv() error {
	setString(&c.TelegramBot.Token, "TELEGRAM_BOT_TOKEN")
	setString(&c.TelegramBot.Mode, "BOT_MODE")
	setString(&c.TelegramBot.WebhookURL, "WEBHOOK_URL")
	setString(&c.TelegramBot.ListenAddr, "LISTEN_ADDR")
	setString(&c.Storage.Type, "STORAGE_TYPE")
	setString(&c.Storage.Database, "DATABASE_URL")
	setString(&c.Storage.Redis.URL, "REDIS_URL")
	setString(&c.Log.Level, "LOG_LEVEL")

	if v := os.Getenv("DEBUG"); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid DEBUG value %q: %w", v, err)
		}
		c.Debug = debug
	}
	if v := os.Getenv("QUESTION_COUNT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid QUESTION_COUNT value %q: %w", v, err)
		}
		c.Interview.QuestionCount = n
	}
	if v := os.Getenv("TIME_LIMIT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid TIME_LIMIT value %q: %w", v, err)
		}
		c.Interview.TimeLimit = d
	}

	c.TelegramBot.Mode = strings.ToLower(c.TelegramBot.Mode)
	c.Storage.Type = strings.ToLower(c.Storage.Type)
	c.Log.Level = strings.ToLower(c.Log.Level)
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

// Addr адрес HTTP-сервера
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

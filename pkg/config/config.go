package config

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageDriverFile     = "file"
	StorageDriverPostgres = "postgres"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development"`
		SentryUrl string `env:"SENTRY_URL"`
	}
	API struct {
		BaseURL string        `env:"API_BASE_URL" env-default:"https://reels-backend-4qdr.onrender.com"`
		Timeout time.Duration `env:"API_TIMEOUT" env-default:"30s"`
	}
	Storage struct {
		Driver string `env:"STORAGE_DRIVER" env-default:"file" env-description:"file or postgres"`
		Path   string `env:"STORAGE_PATH" env-default:"./reels-session.json"`
	}
	Postgres struct {
		Port    int    `env:"POSTGRES_PORT" env-default:"5432"`
		Host    string `env:"POSTGRES_HOST" env-default:"localhost"`
		User    string `env:"POSTGRES_USER"`
		Pass    string `env:"POSTGRES_PASS"`
		Name    string `env:"POSTGRES_NAME"`
		SslMode string `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	}
	Telegram struct {
		Token  string `env:"TELEGRAM_TOKEN"`
		ChatID int64  `env:"TELEGRAM_CHAT_ID"`
	}
	Upload struct {
		MaxSizeMB  int64  `env:"UPLOAD_MAX_SIZE_MB" env-default:"15"`
		FFmpegPath string `env:"FFMPEG_PATH" env-default:"ffmpeg"`
		Workers    int    `env:"UPLOAD_FRAME_WORKERS" env-default:"4"`
	}
	Feed struct {
		LikeTaps     int           `env:"FEED_LIKE_TAPS" env-default:"1"`
		LikeInterval time.Duration `env:"FEED_LIKE_INTERVAL" env-default:"1s"`
		LikeBurst    int           `env:"FEED_LIKE_BURST" env-default:"2"`
	}
}

var (
	once    sync.Once
	cfg     *Config
	loadErr error
)

// New reads the configuration once per process. A .env file in the working
// directory is honoured when present; the environment always wins.
func New() (*Config, error) {
	once.Do(func() {
		c := &Config{}
		if err := read(c); err != nil {
			help, _ := cleanenv.GetDescription(c, nil)
			loadErr = fmt.Errorf("failed to read configuration: %w\n%s", err, help)
			return
		}
		if err := c.Validate(); err != nil {
			loadErr = err
			return
		}
		cfg = c
	})
	return cfg, loadErr
}

func read(c *Config) error {
	if _, err := os.Stat(".env"); err == nil {
		return cleanenv.ReadConfig(".env", c)
	}
	return cleanenv.ReadEnv(c)
}

func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageDriverFile, StorageDriverPostgres:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.API.BaseURL == "" {
		return errors.New("API_BASE_URL must not be empty")
	}
	return nil
}

// GetDSN returns the postgres connection string.
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Postgres.User,
		c.Postgres.Pass,
		c.Postgres.Host,
		c.Postgres.Port,
		c.Postgres.Name,
		c.Postgres.SslMode,
	)
}

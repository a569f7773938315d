// Package config reads the connection settings of the exhctl tool from
// the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/631086083/tairclient"
)

// Config holds the settings used to build a tairclient.Client.
type Config struct {
	Addr           string        `env:"TAIR_ADDR" envDefault:"127.0.0.1:6379"`
	Password       string        `env:"TAIR_PASSWORD"`
	Database       int           `env:"TAIR_DATABASE" envDefault:"0"`
	ConnectTimeout time.Duration `env:"TAIR_CONNECT_TIMEOUT" envDefault:"5s"`
	ReadTimeout    time.Duration `env:"TAIR_READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout   time.Duration `env:"TAIR_WRITE_TIMEOUT" envDefault:"5s"`
	PoolCapacity   int           `env:"TAIR_POOL_CAPACITY" envDefault:"10"`
	BorrowTimeout  time.Duration `env:"TAIR_BORROW_TIMEOUT" envDefault:"0"` // 0 waits forever
	MaxRetries     int           `env:"TAIR_MAX_RETRIES" envDefault:"3"`
	ReadReplicas   []string      `env:"TAIR_READ_REPLICAS" envSeparator:","`
	LogLevel       string        `env:"TAIR_LOG_LEVEL" envDefault:"info"`
}

// LoadEnv loads variables from the given .env files (or ./.env when none
// are named) without overriding variables that are already set. Missing
// files are not an error.
func LoadEnv(filenames ...string) error {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env: %w", err)
	}

	return nil
}

// Parse reads the configuration from the process environment.
func Parse() (Config, error) {
	return parse(env.Options{})
}

// ParseEnvironment reads the configuration from the given variables
// instead of the process environment.
func ParseEnvironment(environment map[string]string) (Config, error) {
	return parse(env.Options{Environment: environment})
}

func parse(opts env.Options) (Config, error) {
	var config Config
	if err := env.ParseWithOptions(&config, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	return config, nil
}

// ClientOptions converts the configuration into client options.
func (c Config) ClientOptions() []tairclient.ConfigFunc {
	configs := []tairclient.ConfigFunc{
		tairclient.WithPassword(c.Password),
		tairclient.WithDatabase(c.Database),
		tairclient.WithConnectTimeout(c.ConnectTimeout),
		tairclient.WithReadTimeout(c.ReadTimeout),
		tairclient.WithWriteTimeout(c.WriteTimeout),
		tairclient.WithPoolCapacity(c.PoolCapacity),
		tairclient.WithMaxRetries(c.MaxRetries),
	}

	if c.BorrowTimeout > 0 {
		configs = append(configs, tairclient.WithBorrowTimeout(c.BorrowTimeout))
	}

	if len(c.ReadReplicas) > 0 {
		configs = append(configs, tairclient.WithReadReplicaAddrs(c.ReadReplicas...))
	}

	return configs
}

// Level converts LogLevel to a slog level. Unknown names fall back to
// info.
func (c Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	return slog.LevelInfo
}

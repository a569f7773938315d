// Package cli implements exhctl, a command-line tool that issues
// TairHash commands against a single server.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
	"github.com/urfave/cli/v2"

	"github.com/631086083/tairclient"
	"github.com/631086083/tairclient/exhash"
	"github.com/631086083/tairclient/iface"
	"github.com/631086083/tairclient/internal/config"
)

type (
	// Session is a connection used for the duration of one command.
	Session interface {
		iface.Executor
		Close()
	}

	// Connector opens a session for the given configuration.
	Connector func(cfg config.Config, logger tairclient.Logger) (Session, error)
)

const (
	configKey = "config"
	loggerKey = "logger"
)

var errUsage = errors.New("wrong number of arguments")

// Connect opens a pooled tairclient.Client.
func Connect(cfg config.Config, logger tairclient.Logger) (Session, error) {
	configs := append(cfg.ClientOptions(), tairclient.WithLogger(logger))
	return tairclient.NewClient(cfg.Addr, configs...), nil
}

// App creates the exhctl application. Sessions are opened with connect.
func App(connect Connector) *cli.App {
	return &cli.App{
		Name:     "exhctl",
		Usage:    "Issue TairHash commands",
		Flags:    globalFlags(),
		Commands: commands(connect),
		Before:   before,
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "addr",
			Aliases: []string{"a"},
			Usage:   "server address (overrides TAIR_ADDR)",
		},
		&cli.StringFlag{
			Name:  "password",
			Usage: "server password (overrides TAIR_PASSWORD)",
		},
		&cli.IntFlag{
			Name:  "db",
			Usage: "database index (overrides TAIR_DATABASE)",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "connect, read and write timeout",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "debug, info, warn or error (overrides TAIR_LOG_LEVEL)",
		},
		&cli.StringFlag{
			Name:  "env-file",
			Usage: "load variables from this file instead of .env",
		},
	}
}

func before(c *cli.Context) error {
	var files []string
	if c.IsSet("env-file") {
		files = append(files, c.String("env-file"))
	}

	if err := config.LoadEnv(files...); err != nil {
		return err
	}

	cfg, err := config.Parse()
	if err != nil {
		return err
	}

	applyFlags(c, &cfg)

	handler := tint.NewHandler(c.App.ErrWriter, &tint.Options{
		Level:      cfg.Level(),
		TimeFormat: time.Kitchen,
	})

	if c.App.Metadata == nil {
		c.App.Metadata = map[string]interface{}{}
	}

	c.App.Metadata[configKey] = cfg
	c.App.Metadata[loggerKey] = slog.New(handler)
	return nil
}

func applyFlags(c *cli.Context, cfg *config.Config) {
	if c.IsSet("addr") {
		cfg.Addr = c.String("addr")
	}

	if c.IsSet("password") {
		cfg.Password = c.String("password")
	}

	if c.IsSet("db") {
		cfg.Database = c.Int("db")
	}

	if c.IsSet("timeout") {
		timeout := c.Duration("timeout")
		cfg.ConnectTimeout = timeout
		cfg.ReadTimeout = timeout
		cfg.WriteTimeout = timeout
	}

	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
}

// action opens a session, runs f with a TairHash client on it and
// closes the session.
func action(connect Connector, args int, variadic bool, f func(c *cli.Context, client *exhash.Client) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		if n := c.NArg(); n < args || (!variadic && n > args) {
			return fmt.Errorf("%s: %w", c.Command.Name, errUsage)
		}

		cfg, _ := c.App.Metadata[configKey].(config.Config)
		logger, _ := c.App.Metadata[loggerKey].(*slog.Logger)
		if logger == nil {
			logger = slog.Default()
		}

		session, err := connect(cfg, tairclient.NewSlogLogger(logger))
		if err != nil {
			return err
		}
		defer session.Close()

		logger.Debug("running command", "command", c.Command.Name, "addr", cfg.Addr)
		return f(c, exhash.New(session))
	}
}

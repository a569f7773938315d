package tairclient

import (
	"fmt"
	"log"
	"log/slog"

	"github.com/631086083/tairclient/iface"
)

type (
	// Logger is an interface to the logger the client writes to.
	Logger = iface.Logger

	defaultLogger struct{}
	nilLogger     struct{}

	slogLogger struct {
		logger *slog.Logger
	}
)

// NilLogger discards every message.
var NilLogger = NewNilLogger()

// NewNilLogger creates a logger that discards every message.
func NewNilLogger() Logger {
	return &nilLogger{}
}

// NewSlogLogger creates a logger that writes each message to the given
// structured logger at debug level.
func NewSlogLogger(logger *slog.Logger) Logger {
	return &slogLogger{logger: logger}
}

func (l *defaultLogger) Printf(format string, args ...interface{}) {
	log.Printf(format, args...)
}

func (l *nilLogger) Printf(format string, args ...interface{}) {
}

func (l *slogLogger) Printf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...), "component", "tairclient")
}

package tairclient

import (
	"errors"
	"fmt"
	"io"

	"github.com/gomodule/redigo/redis"

	"github.com/631086083/tairclient/iface"
)

type (
	// Conn abstracts a single, feature-minimal connection to the server.
	Conn = iface.Conn

	// DialFunc creates a connection to the server or returns an error.
	DialFunc func() (Conn, error)

	// DialerFactory creates a DialFunc that connects to one of the given
	// addresses. The client builds one dialer for the primary address and
	// one for the set of read replicas.
	DialerFactory func(addrs []string) DialFunc

	redigoShim struct {
		conn redis.Conn
	}

	// connErr marks an error raised by the connection itself (as opposed
	// to an error reply sent by the server). The client retries commands
	// that fail with a connErr on a fresh connection.
	connErr struct{ error }
)

func (e connErr) Unwrap() error {
	return e.error
}

func makeDialerFactory(config *clientConfig) DialerFactory {
	return func(addrs []string) DialFunc {
		return func() (Conn, error) {
			addr := chooseRandom(addrs)

			conn, err := redis.Dial(
				"tcp",
				addr,
				redis.DialPassword(config.password),
				redis.DialDatabase(config.database),
				redis.DialConnectTimeout(config.connectTimeout),
				redis.DialReadTimeout(config.readTimeout),
				redis.DialWriteTimeout(config.writeTimeout),
			)

			if err != nil {
				return nil, fmt.Errorf("dial %s: %w", addr, err)
			}

			return &redigoShim{conn}, nil
		}
	}
}

func (s *redigoShim) Close() error {
	return s.conn.Close()
}

func (s *redigoShim) Do(command string, args ...interface{}) (interface{}, error) {
	result, err := s.conn.Do(command, args...)
	return result, s.wrapError(err)
}

func (s *redigoShim) Send(command string, args ...interface{}) error {
	return s.wrapError(s.conn.Send(command, args...))
}

// A broken connection is flagged through Err; an error reply from the
// server leaves the connection usable and is returned untouched.
func (s *redigoShim) wrapError(err error) error {
	if err := s.conn.Err(); err != nil {
		return connErr{err}
	}

	return err
}

// Given an error, determine if we should try to re-invoke the
// command on another (possibly fresh) connection. The TCP connection
// may have been reaped by a proxy while it sat idle in the pool.
func shouldRetry(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}

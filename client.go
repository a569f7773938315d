package tairclient

import (
	"errors"
	"time"

	"github.com/bradhe/stopwatch"
	"github.com/efritz/backoff"
	"github.com/efritz/glock"
	"github.com/efritz/overcurrent"
	"github.com/gomodule/redigo/redis"

	"github.com/631086083/tairclient/iface"
)

type (
	// Client is a goroutine-safe, minimal, and pooled client. It satisfies
	// iface.Executor, so it can back the exhash and exstring command sets.
	Client = iface.Client

	client struct {
		pool              Pool
		readReplicaClient *client
		borrowTimeout     *time.Duration
		backoffFactory    BackoffFactory
		maxRetries        int
		clock             glock.Clock
		logger            Logger
		metrics           *Metrics
	}

	clientConfig struct {
		password         string
		database         int
		connectTimeout   time.Duration
		readTimeout      time.Duration
		writeTimeout     time.Duration
		poolCapacity     int
		breakerFunc      BreakerFunc
		clock            glock.Clock
		borrowTimeout    *time.Duration
		backoffFactory   BackoffFactory
		maxRetries       int
		logger           Logger
		metrics          *Metrics
		readReplicaAddrs []string
		dialerFactory    DialerFactory
	}

	// ConfigFunc is a function used to initialize a new client.
	ConfigFunc func(*clientConfig)

	// BackoffFactory creates the backoff consulted between retries of a
	// single command. A fresh backoff is created for every command.
	BackoffFactory func() backoff.Backoff
)

// ErrNoConnection is returned when the borrow timeout elapses.
var ErrNoConnection = errors.New("no connection available in pool")

func defaultBackoffFactory() backoff.Backoff {
	return backoff.NewExponentialBackoff(time.Millisecond, time.Second)
}

// NewClient creates a new Client connected to the server at addr.
func NewClient(addr string, configs ...ConfigFunc) Client {
	config := &clientConfig{
		password:       "",
		database:       0,
		connectTimeout: time.Second * 5,
		writeTimeout:   time.Second * 5,
		readTimeout:    time.Second * 5,
		poolCapacity:   10,
		breakerFunc:    noopBreakerFunc,
		clock:          glock.NewRealClock(),
		borrowTimeout:  nil,
		backoffFactory: defaultBackoffFactory,
		maxRetries:     3,
		logger:         &defaultLogger{},
	}

	for _, f := range configs {
		f(config)
	}

	if config.dialerFactory == nil {
		config.dialerFactory = makeDialerFactory(config)
	}

	c := newClient([]string{addr}, config)

	if len(config.readReplicaAddrs) > 0 {
		c.readReplicaClient = newClient(config.readReplicaAddrs, config)
	}

	return c
}

func newClient(addrs []string, config *clientConfig) *client {
	dialer := config.dialerFactory(addrs)
	metrics := config.metrics

	instrumented := func() (Conn, error) {
		conn, err := dialer()
		metrics.observeDial(err)
		return conn, err
	}

	return &client{
		pool: NewPool(
			instrumented,
			config.poolCapacity,
			config.logger,
			config.breakerFunc,
			config.clock,
		),
		borrowTimeout:  config.borrowTimeout,
		backoffFactory: config.backoffFactory,
		maxRetries:     config.maxRetries,
		clock:          config.clock,
		logger:         config.logger,
		metrics:        config.metrics,
	}
}

// WithPassword sets the password (default is "").
func WithPassword(password string) ConfigFunc {
	return func(c *clientConfig) { c.password = password }
}

// WithDatabase sets the database index (default is 0).
func WithDatabase(database int) ConfigFunc {
	return func(c *clientConfig) { c.database = database }
}

// WithConnectTimeout sets the connect timeout for new connections
// (default is 5 seconds).
func WithConnectTimeout(timeout time.Duration) ConfigFunc {
	return func(c *clientConfig) { c.connectTimeout = timeout }
}

// WithReadTimeout sets the read timeout for all connections in the
// pool (default is 5 seconds).
func WithReadTimeout(timeout time.Duration) ConfigFunc {
	return func(c *clientConfig) { c.readTimeout = timeout }
}

// WithWriteTimeout sets the write timeout for all connections in the
// pool (default is 5 seconds).
func WithWriteTimeout(timeout time.Duration) ConfigFunc {
	return func(c *clientConfig) { c.writeTimeout = timeout }
}

// WithPoolCapacity sets the maximum number of concurrent connections
// that can be in use at once (default is 10).
func WithPoolCapacity(capacity int) ConfigFunc {
	return func(c *clientConfig) { c.poolCapacity = capacity }
}

// WithBreaker sets the circuit breaker instance to use around new
// connections. The default uses a no-op circuit breaker.
func WithBreaker(breaker overcurrent.CircuitBreaker) ConfigFunc {
	return func(c *clientConfig) { c.breakerFunc = breaker.Call }
}

// WithBreakerRegistry sets the overcurrent registry to use and the
// name of the circuit breaker config to use around new connections.
// The default uses a no-op circuit breaker.
func WithBreakerRegistry(registry overcurrent.Registry, name string) ConfigFunc {
	return func(c *clientConfig) {
		c.breakerFunc = func(f overcurrent.BreakerFunc) error {
			return registry.Call(name, f, nil)
		}
	}
}

// WithBorrowTimeout sets the maximum time to wait for a pooled connection
// before failing with ErrNoConnection (default is to wait forever).
func WithBorrowTimeout(timeout time.Duration) ConfigFunc {
	return func(c *clientConfig) { c.borrowTimeout = &timeout }
}

// WithBackoff sets the backoff factory used between retries of a command
// that failed on a stale connection (default is exponential, 1ms to 1s).
func WithBackoff(factory BackoffFactory) ConfigFunc {
	return func(c *clientConfig) { c.backoffFactory = factory }
}

// WithMaxRetries sets how many times a command that failed on a stale
// connection is retried on another connection (default is 3).
func WithMaxRetries(retries int) ConfigFunc {
	return func(c *clientConfig) { c.maxRetries = retries }
}

// WithLogger sets the logger instance (the default will use Go's
// builtin logging library).
func WithLogger(logger Logger) ConfigFunc {
	return func(c *clientConfig) { c.logger = logger }
}

// WithMetrics sets the collector that records command outcomes, dial
// outcomes and borrow latency (default records nothing).
func WithMetrics(metrics *Metrics) ConfigFunc {
	return func(c *clientConfig) { c.metrics = metrics }
}

// WithReadReplicaAddrs sets the addresses of read replicas. Each new
// replica connection dials one of the addresses at random.
func WithReadReplicaAddrs(addrs ...string) ConfigFunc {
	return func(c *clientConfig) { c.readReplicaAddrs = append(c.readReplicaAddrs, addrs...) }
}

// WithDialerFactory replaces the function that builds dialers for the
// primary and replica pools (default dials TCP with redigo).
func WithDialerFactory(factory DialerFactory) ConfigFunc {
	return func(c *clientConfig) { c.dialerFactory = factory }
}

func withClock(clock glock.Clock) ConfigFunc {
	return func(c *clientConfig) { c.clock = clock }
}

//
// Client Implementation

func (c *client) Close() {
	c.pool.Close()

	if c.readReplicaClient != nil {
		c.readReplicaClient.Close()
	}
}

func (c *client) ReadReplica() Client {
	if c.readReplicaClient == nil {
		return c
	}

	return c.readReplicaClient
}

func (c *client) Do(command string, args ...interface{}) (interface{}, error) {
	result, err := c.withRetry(shouldRetry, func() (interface{}, error) {
		conn, ok := c.timedBorrow()
		if !ok {
			return nil, ErrNoConnection
		}

		return c.doWithConn(conn, command, args)
	})

	c.metrics.observeCommand(command, err)
	return result, err
}

func (c *client) Pipeline() Pipeline {
	return newPipeline(c)
}

// runPipeline sends the commands between MULTI and EXEC on a single
// connection. Send only buffers, so a failed Send means EXEC never
// reached the server and the block is retried on another connection.
// Once EXEC has been written the server may have run the transaction,
// and a failure reading its reply is returned as is.
func (c *client) runPipeline(commands []commandPair) ([]interface{}, error) {
	executed := false

	canRetry := func(err error) bool {
		return !executed && shouldRetry(err)
	}

	result, err := c.withRetry(canRetry, func() (interface{}, error) {
		conn, ok := c.timedBorrow()
		if !ok {
			return nil, ErrNoConnection
		}

		if err := conn.Send("MULTI"); err != nil {
			c.release(conn, err)
			return nil, err
		}

		for _, command := range commands {
			if err := conn.Send(command.command, command.args...); err != nil {
				c.release(conn, err)
				return nil, err
			}
		}

		executed = true
		return c.doWithConn(conn, "EXEC", nil)
	})

	c.metrics.observeCommand("EXEC", err)
	return redis.Values(result, err)
}

//
// Client Helper Functions

// withRetry invokes f until it succeeds, fails with an error canRetry
// rejects, or exhausts the configured retries.
func (c *client) withRetry(canRetry func(error) bool, f func() (interface{}, error)) (interface{}, error) {
	var (
		b       = c.backoffFactory()
		attempt = 0
	)

	for {
		result, err := f()
		if err == nil || !canRetry(err) || attempt >= c.maxRetries {
			return result, err
		}

		attempt++
		interval := b.NextInterval()
		c.logger.Printf("Connection from pool was stale, retrying in %s", interval)
		<-c.clock.After(interval)
	}
}

// Invoke a command and release the connection back to the pool.
func (c *client) doWithConn(conn Conn, command string, args []interface{}) (interface{}, error) {
	result, err := conn.Do(command, args...)
	c.release(conn, err)
	return result, err
}

// Borrows and logs the time it took to return from blocking on the
// pool's borrow method.
func (c *client) timedBorrow() (Conn, bool) {
	start := c.clock.Now()
	watch := stopwatch.Start()
	conn, ok := c.borrow()
	elapsed := watch.Stop().Milliseconds()
	c.metrics.observeBorrow(c.clock.Now().Sub(start).Seconds())

	if ok {
		c.logger.Printf("Received connection after %dms", int64(elapsed))
	} else {
		c.logger.Printf("Could not borrow connection after %dms", int64(elapsed))
	}

	return conn, ok
}

// Borrows from the pool using the correct method (depending on if
// a borrow timeout was configured on this client).
func (c *client) borrow() (Conn, bool) {
	if c.borrowTimeout == nil {
		return c.pool.Borrow()
	}

	return c.pool.BorrowTimeout(*c.borrowTimeout)
}

// Close the connection on a connection error and release it back to
// the pool. Broken connections never go back to the pool: a nil is
// released in their place so the pool keeps its capacity. An error
// reply from the server leaves the connection healthy.
func (c *client) release(conn Conn, err error) {
	var serverErr redis.Error
	if err != nil && !errors.As(err, &serverErr) {
		conn.Close()
		conn = nil
	}

	c.pool.Release(conn)
}

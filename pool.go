package tairclient

import (
	"context"
	"sync"
	"time"

	"github.com/efritz/glock"
	"github.com/efritz/overcurrent"

	"github.com/631086083/tairclient/iface"
)

type (
	// Pool abstracts a fixed-size connection pool.
	Pool = iface.Pool

	pool struct {
		dialer      DialFunc
		capacity    int
		logger      Logger
		breakerFunc BreakerFunc
		clock       glock.Clock
		live        chan Conn
		vacant      chan Conn
		dialMutex   sync.Mutex
	}

	// BreakerFunc bridges the interface between the Call function of
	// an overcurrent breaker and an overcurrent registry.
	BreakerFunc func(overcurrent.BreakerFunc) error
)

func noopBreakerFunc(f overcurrent.BreakerFunc) error {
	return f(context.Background())
}

// NewPool creates a pool of the given capacity. Every slot starts out
// vacant; a connection is dialed the first time a vacant slot is
// borrowed.
func NewPool(
	dialer DialFunc,
	capacity int,
	logger Logger,
	breakerFunc BreakerFunc,
	clock glock.Clock,
) Pool {
	p := &pool{
		dialer:      dialer,
		capacity:    capacity,
		logger:      logger,
		breakerFunc: breakerFunc,
		clock:       clock,
		live:        make(chan Conn, capacity),
		vacant:      make(chan Conn, capacity),
	}

	for i := 0; i < p.capacity; i++ {
		p.vacant <- nil
	}

	return p
}

func (p *pool) Close() {
	for i := 0; i < p.capacity; i++ {
		conn, _ := p.get(nil)
		if conn == nil {
			continue
		}

		if err := conn.Close(); err != nil {
			p.logger.Printf("Could not close connection (%s)", err.Error())
		}
	}

	close(p.live)
	close(p.vacant)
}

func (p *pool) Borrow() (Conn, bool) {
	if conn, _ := p.get(nil); conn != nil {
		return conn, true
	}

	return p.dial()
}

func (p *pool) BorrowTimeout(timeout time.Duration) (Conn, bool) {
	conn, ok := p.get(&timeout)
	if conn != nil || !ok {
		return conn, ok
	}

	return p.dial()
}

func (p *pool) Release(conn Conn) {
	if conn == nil {
		p.vacant <- nil
		return
	}

	p.live <- conn
}

// get takes a slot from the pool, preferring live connections over
// vacant slots so that an idle pool keeps as few sockets open as it
// can. A nil timeout blocks until a slot is released.
func (p *pool) get(timeout *time.Duration) (Conn, bool) {
	select {
	case conn := <-p.live:
		return conn, true
	default:
	}

	select {
	case conn := <-p.live:
		return conn, true

	case conn := <-p.vacant:
		return conn, true

	case <-makeTimeoutChan(timeout, p.clock):
		return nil, false
	}
}

// dial fills a vacant slot. The dialer runs inside the circuit breaker
// so an unreachable server is not hammered with connection attempts.
func (p *pool) dial() (Conn, bool) {
	p.dialMutex.Lock()
	defer p.dialMutex.Unlock()

	var conn Conn
	err := p.breakerFunc(func(ctx context.Context) error {
		temp, err := p.dialer()
		conn = temp
		return err
	})

	if err != nil {
		// Hand the slot back, otherwise every failed dial would
		// permanently shrink the pool.
		p.vacant <- nil

		p.logger.Printf("Could not connect to server (%s)", err.Error())
		return nil, false
	}

	p.logger.Printf("Established a new connection with server")
	return conn, true
}

var blockingChan = make(chan time.Time)

// makeTimeoutChan returns a channel that fires after the timeout on the
// given clock, or a channel that never fires when timeout is nil.
func makeTimeoutChan(timeout *time.Duration, clock glock.Clock) <-chan time.Time {
	if timeout == nil {
		return blockingChan
	}

	return clock.After(*timeout)
}

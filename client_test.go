package tairclient

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aphistic/sweet"
	"github.com/efritz/glock"
	. "github.com/efritz/go-mockgen/matchers"
	"github.com/gomodule/redigo/redis"
	. "github.com/onsi/gomega"

	"github.com/631086083/tairclient/exhash"
)

type ClientSuite struct{}

func (s *ClientSuite) TestConfigureReadReplica(t sweet.T) {
	client := NewClient(
		"master",
		WithLogger(testLogger),
		WithReadReplicaAddrs("replica"),
		WithDialerFactory(func(addrs []string) DialFunc {
			return func() (Conn, error) {
				c := NewMockConn()
				c.DoFunc.SetDefaultHook(func(command string, args ...interface{}) (interface{}, error) {
					return addrs[0], nil
				})

				return c, nil
			}
		}),
	)

	Expect(client.Do("ping")).To(Equal("master"))
	Expect(client.ReadReplica().Do("ping")).To(Equal("replica"))
}

func (s *ClientSuite) TestReadReplica(t sweet.T) {
	var (
		pool1   = NewMockPool()
		pool2   = NewMockPool()
		conn1   = NewMockConn()
		conn2   = NewMockConn()
		client1 = makeClient(pool1, nil)
		client2 = makeClient(pool2, nil)
	)

	client1.readReplicaClient = client2

	pool1.BorrowFunc.SetDefaultReturn(conn1, true)
	pool2.BorrowFunc.SetDefaultReturn(conn2, true)

	client1.Do("foo")
	Expect(conn1.DoFunc).To(BeCalledN(1))
	Expect(conn1.DoFunc).To(BeCalledWith("foo"))
	Expect(conn2.DoFunc).NotTo(BeCalled())

	replica := client1.ReadReplica()
	replica.Do("foo")
	Expect(replica).To(Equal(client2))
	Expect(conn1.DoFunc).To(BeCalledN(1))
	Expect(conn2.DoFunc).To(BeCalledN(1))
	Expect(conn2.DoFunc).To(BeCalledWith("foo"))
}

func (s *ClientSuite) TestCloseReadReplica(t sweet.T) {
	var (
		pool1   = NewMockPool()
		pool2   = NewMockPool()
		client1 = makeClient(pool1, nil)
		client2 = makeClient(pool2, nil)
	)

	client1.readReplicaClient = client2

	client1.Close()
	Expect(pool1.CloseFunc).To(BeCalledN(1))
	Expect(pool2.CloseFunc).To(BeCalledN(1))
}

func (s *ClientSuite) TestNilReadReplica(t sweet.T) {
	c := makeClient(nil, nil)
	Expect(c.ReadReplica()).To(Equal(c))
}

func (s *ClientSuite) TestClose(t sweet.T) {
	var (
		pool = NewMockPool()
		c    = makeClient(pool, nil)
	)

	c.Close()
	Expect(pool.CloseFunc).To(BeCalledN(1))
}

func (s *ClientSuite) TestDo(t sweet.T) {
	var (
		pool     = NewMockPool()
		conn     = NewMockConn()
		released = make(chan Conn, 1)
		c        = makeClient(pool, nil)
	)

	defer close(released)

	pool.BorrowFunc.SetDefaultHook(func() (Conn, bool) {
		return conn, true
	})

	pool.ReleaseFunc.SetDefaultHook(func(conn Conn) {
		released <- conn
	})

	conn.DoFunc.SetDefaultHook(func(command string, args ...interface{}) (interface{}, error) {
		return []string{"BAR", "BAZ", "QUUX"}, nil
	})

	result, err := c.Do("upper", "bar", "baz", "quux")
	Expect(err).To(BeNil())
	Expect(result).To(Equal([]string{"BAR", "BAZ", "QUUX"}))
	Expect(released).To(Receive(Equal(conn)))
}

func (s *ClientSuite) TestDoNoConnection(t sweet.T) {
	var (
		pool     = NewMockPool()
		released = make(chan Conn, 1)
		c        = makeClient(pool, nil)
	)

	defer close(released)

	pool.BorrowFunc.SetDefaultHook(func() (Conn, bool) {
		return nil, false
	})

	pool.ReleaseFunc.SetDefaultHook(func(conn Conn) {
		released <- conn
	})

	_, err := c.Do("upper", "bar", "baz", "quux")
	Expect(err).To(Equal(ErrNoConnection))

	// Nothing to release
	Consistently(released).ShouldNot(Receive())
}

func (s *ClientSuite) TestDoError(t sweet.T) {
	var (
		pool     = NewMockPool()
		conn     = NewMockConn()
		released = make(chan Conn, 1)
		c        = makeClient(pool, nil)
	)

	defer close(released)

	pool.BorrowFunc.SetDefaultHook(func() (Conn, bool) {
		return conn, true
	})

	pool.ReleaseFunc.SetDefaultHook(func(conn Conn) {
		released <- conn
	})

	conn.DoFunc.SetDefaultHook(func(command string, args ...interface{}) (interface{}, error) {
		return nil, errors.New("utoh")
	})

	_, err := c.Do("upper", "bar", "baz", "quux")
	Expect(err).To(MatchError("utoh"))
	Expect(released).To(Receive(BeNil()))
}

func (s *ClientSuite) TestDoRetryableError(t sweet.T) {
	var (
		pool     = NewMockPool()
		conn1    = NewMockConn()
		conn2    = NewMockConn()
		clock    = glock.NewMockClock()
		released = make(chan Conn, 2)
		c        = makeClient(pool, clock)
	)

	defer close(released)

	pool.BorrowFunc.PushReturn(conn1, true)
	pool.BorrowFunc.PushReturn(conn2, true)

	pool.ReleaseFunc.SetDefaultHook(func(conn Conn) {
		released <- conn
	})

	conn1.DoFunc.SetDefaultHook(func(command string, args ...interface{}) (interface{}, error) {
		return nil, connErr{io.EOF}
	})

	conn2.DoFunc.SetDefaultHook(func(command string, args ...interface{}) (interface{}, error) {
		return []string{"BAR", "BAZ", "QUUX"}, nil
	})

	go func() {
		// Unlock the after call in client
		clock.BlockingAdvance(time.Second)
	}()

	result, err := c.Do("upper", "bar", "baz", "quux")
	Expect(err).To(BeNil())
	Expect(result).To(Equal([]string{"BAR", "BAZ", "QUUX"}))
	Expect(released).To(Receive(BeNil()))
	Expect(released).To(Receive(Equal(conn2)))
}

func (s *ClientSuite) TestPipeline(t sweet.T) {
	var (
		pool     = NewMockPool()
		conn     = NewMockConn()
		released = make(chan Conn, 1)
		commands = make(chan commandPair, 5)
		c        = makeClient(pool, nil)
	)

	defer close(released)
	defer close(commands)

	pool.BorrowFunc.SetDefaultHook(func() (Conn, bool) {
		return conn, true
	})

	pool.ReleaseFunc.SetDefaultHook(func(conn Conn) {
		released <- conn
	})

	conn.DoFunc.SetDefaultHook(func(command string, args ...interface{}) (interface{}, error) {
		commands <- commandPair{command, args}
		return []interface{}{int64(1), int64(2), int64(3)}, nil
	})

	conn.SendFunc.SetDefaultHook(func(command string, args ...interface{}) error {
		commands <- commandPair{command, args}
		return nil
	})

	pipeline := c.Pipeline()
	pipeline.Add("foo", 1, 2, 3)
	pipeline.Add("bar", 2, 3, 4)
	pipeline.Add("baz", 3, 4, 5)

	result, err := pipeline.Run()
	Expect(err).To(BeNil())
	Expect(result).To(Equal([]interface{}{int64(1), int64(2), int64(3)}))

	Eventually(released).Should(Receive(Equal(conn)))
	Eventually(commands).Should(Receive(Equal(commandPair{"MULTI", nil})))
	Eventually(commands).Should(Receive(Equal(commandPair{"foo", []interface{}{1, 2, 3}})))
	Eventually(commands).Should(Receive(Equal(commandPair{"bar", []interface{}{2, 3, 4}})))
	Eventually(commands).Should(Receive(Equal(commandPair{"baz", []interface{}{3, 4, 5}})))
	Eventually(commands).Should(Receive(Equal(commandPair{"EXEC", nil})))
	Consistently(commands).ShouldNot(Receive())
}

func (s *ClientSuite) TestPipelineNoConnection(t sweet.T) {
	var (
		pool     = NewMockPool()
		released = make(chan Conn, 1)
		c        = makeClient(pool, nil)
	)

	defer close(released)

	pool.BorrowFunc.SetDefaultHook(func() (Conn, bool) {
		return nil, false
	})

	pool.ReleaseFunc.SetDefaultHook(func(conn Conn) {
		released <- conn
	})

	pipeline := c.Pipeline()
	pipeline.Add("foo")

	_, err := pipeline.Run()
	Expect(err).To(Equal(ErrNoConnection))

	// Nothing to release
	Consistently(released).ShouldNot(Receive())
}

func (s *ClientSuite) TestPipelineError(t sweet.T) {
	var (
		pool     = NewMockPool()
		conn     = NewMockConn()
		released = make(chan Conn, 1)
		c        = makeClient(pool, nil)
	)

	defer close(released)

	pool.BorrowFunc.SetDefaultHook(func() (Conn, bool) {
		return conn, true
	})

	pool.ReleaseFunc.SetDefaultHook(func(conn Conn) {
		released <- conn
	})

	conn.SendFunc.SetDefaultHook(func(command string, args ...interface{}) error {
		if command == "bar" {
			return errors.New("utoh")
		}

		return nil
	})

	pipeline := c.Pipeline()
	pipeline.Add("foo", 1, 2, 3)
	pipeline.Add("bar", 2, 3, 4)
	pipeline.Add("baz", 3, 4, 5)
	_, err := pipeline.Run()

	Expect(err).To(MatchError("utoh"))
	Eventually(released).Should(Receive(BeNil()))
}

func (s *ClientSuite) TestPipelineRetryableError(t sweet.T) {
	var (
		pool     = NewMockPool()
		conn1    = NewMockConn()
		clock    = glock.NewMockClock()
		conn2    = NewMockConn()
		released = make(chan Conn, 2)
		c        = makeClient(pool, clock)
	)

	defer close(released)

	pool.BorrowFunc.PushReturn(conn1, true)
	pool.BorrowFunc.PushReturn(conn2, true)

	pool.ReleaseFunc.SetDefaultHook(func(conn Conn) {
		released <- conn
	})

	conn2.DoFunc.SetDefaultHook(func(command string, args ...interface{}) (interface{}, error) {
		return []interface{}{int64(1), int64(2), int64(3)}, nil
	})

	conn1.SendFunc.SetDefaultHook(func(command string, args ...interface{}) error {
		if command == "MULTI" {
			return connErr{io.ErrUnexpectedEOF}
		}

		return nil
	})

	go func() {
		// Unlock the after call in client
		clock.BlockingAdvance(time.Second)
	}()

	pipeline := c.Pipeline()
	pipeline.Add("foo", 1, 2, 3)
	pipeline.Add("bar", 2, 3, 4)
	pipeline.Add("baz", 3, 4, 5)
	result, err := pipeline.Run()

	Expect(err).To(BeNil())
	Expect(result).To(Equal([]interface{}{int64(1), int64(2), int64(3)}))
	Eventually(released).Should(Receive(BeNil()))
	Eventually(released).Should(Receive(Equal(conn2)))
}

func (s *ClientSuite) TestPipelineRetryableErrorAfterMulti(t sweet.T) {
	var (
		pool     = NewMockPool()
		conn1    = NewMockConn()
		clock    = glock.NewMockClock()
		conn2    = NewMockConn()
		released = make(chan Conn, 2)
		c        = makeClient(pool, clock)
	)

	defer close(released)

	pool.BorrowFunc.PushReturn(conn1, true)
	pool.BorrowFunc.PushReturn(conn2, true)

	pool.ReleaseFunc.SetDefaultHook(func(conn Conn) {
		released <- conn
	})

	conn2.DoFunc.SetDefaultHook(func(command string, args ...interface{}) (interface{}, error) {
		return []interface{}{int64(1), int64(2), int64(3)}, nil
	})

	conn1.SendFunc.SetDefaultHook(func(command string, args ...interface{}) error {
		if command == "bar" {
			return connErr{io.ErrUnexpectedEOF}
		}

		return nil
	})

	go func() {
		// Unlock the after call in client
		clock.BlockingAdvance(time.Second)
	}()

	pipeline := c.Pipeline()
	pipeline.Add("foo", 1, 2, 3)
	pipeline.Add("bar", 2, 3, 4)
	pipeline.Add("baz", 3, 4, 5)

	result, err := pipeline.Run()
	Expect(err).To(BeNil())
	Expect(result).To(Equal([]interface{}{int64(1), int64(2), int64(3)}))

	Eventually(released).Should(Receive(BeNil()))
	Eventually(released).Should(Receive(Equal(conn2)))
}

func (s *ClientSuite) TestPipelineExecErrorNotRetried(t sweet.T) {
	var (
		pool     = NewMockPool()
		conn1    = NewMockConn()
		conn2    = NewMockConn()
		released = make(chan Conn, 2)
		c        = makeClient(pool, glock.NewMockClock())
	)

	defer close(released)

	pool.BorrowFunc.PushReturn(conn1, true)
	pool.BorrowFunc.PushReturn(conn2, true)

	pool.ReleaseFunc.SetDefaultHook(func(conn Conn) {
		released <- conn
	})

	conn1.DoFunc.SetDefaultHook(func(command string, args ...interface{}) (interface{}, error) {
		return nil, connErr{io.EOF}
	})

	pipeline := c.Pipeline()
	pipeline.Add("EXHINCRBY", "key", "field", int64(1))

	_, err := pipeline.Run()
	Expect(errors.Is(err, io.EOF)).To(BeTrue())
	Expect(pool.BorrowFunc).To(BeCalledN(1))
	Expect(conn1.DoFunc).To(BeCalledN(1))
	Expect(conn1.DoFunc).To(BeCalledWith("EXEC"))
	Expect(conn1.CloseFunc).To(BeCalledN(1))
	Expect(conn2.SendFunc).NotTo(BeCalled())
	Expect(conn2.DoFunc).NotTo(BeCalled())
	Expect(released).To(Receive(BeNil()))
	Consistently(released).ShouldNot(Receive())
}

func (s *ClientSuite) TestBorrowLogsWholeMilliseconds(t sweet.T) {
	var (
		pool   = NewMockPool()
		conn   = NewMockConn()
		logger = &recordingLogger{}
		c      = makeClient(pool, nil)
	)

	c.logger = logger
	pool.BorrowFunc.PushReturn(conn, true)
	pool.BorrowFunc.PushReturn(nil, false)

	c.Do("EXHLEN", "key")
	c.Do("EXHLEN", "key")

	Expect(logger.messages).To(HaveLen(2))
	Expect(logger.messages[0]).To(MatchRegexp(`^Received connection after \d+ms$`))
	Expect(logger.messages[1]).To(MatchRegexp(`^Could not borrow connection after \d+ms$`))
}

func (s *ClientSuite) TestDoServerErrorKeepsConnection(t sweet.T) {
	var (
		pool     = NewMockPool()
		conn     = NewMockConn()
		released = make(chan Conn, 1)
		c        = makeClient(pool, nil)
	)

	defer close(released)

	pool.BorrowFunc.SetDefaultHook(func() (Conn, bool) {
		return conn, true
	})

	pool.ReleaseFunc.SetDefaultHook(func(conn Conn) {
		released <- conn
	})

	conn.DoFunc.SetDefaultHook(func(command string, args ...interface{}) (interface{}, error) {
		return nil, redis.Error("ERR update version is stale")
	})

	_, err := c.Do("EXHSET", "key", "field", "value", "VER", 1)
	Expect(err).To(Equal(redis.Error("ERR update version is stale")))
	Expect(released).To(Receive(Equal(conn)))
	Expect(conn.CloseFunc).NotTo(BeCalled())
	Expect(pool.BorrowFunc).To(BeCalledN(1))
}

func (s *ClientSuite) TestDoRetriesExhausted(t sweet.T) {
	var (
		pool     = NewMockPool()
		conn     = NewMockConn()
		clock    = glock.NewMockClock()
		released = make(chan Conn, 3)
		c        = makeClient(pool, clock)
	)

	defer close(released)
	c.maxRetries = 2

	pool.BorrowFunc.SetDefaultHook(func() (Conn, bool) {
		return conn, true
	})

	pool.ReleaseFunc.SetDefaultHook(func(conn Conn) {
		released <- conn
	})

	conn.DoFunc.SetDefaultHook(func(command string, args ...interface{}) (interface{}, error) {
		return nil, connErr{io.EOF}
	})

	go func() {
		clock.BlockingAdvance(time.Second)
		clock.BlockingAdvance(time.Second)
	}()

	_, err := c.Do("EXHGET", "key", "field")
	Expect(errors.Is(err, io.EOF)).To(BeTrue())
	Expect(pool.BorrowFunc).To(BeCalledN(3))
	Expect(conn.CloseFunc).To(BeCalledN(3))
}

func (s *ClientSuite) TestBorrowTimeout(t sweet.T) {
	var (
		pool    = NewMockPool()
		timeout = time.Second * 3
		c       = makeClient(pool, nil)
	)

	c.borrowTimeout = &timeout

	_, err := c.Do("EXHGET", "key", "field")
	Expect(err).To(Equal(ErrNoConnection))
	Expect(pool.BorrowFunc).NotTo(BeCalled())
	Expect(pool.BorrowTimeoutFunc).To(BeCalledN(1))
	Expect(pool.BorrowTimeoutFunc).To(BeCalledWith(timeout))
}

func (s *ClientSuite) TestPipelineEmpty(t sweet.T) {
	var (
		pool = NewMockPool()
		c    = makeClient(pool, nil)
	)

	result, err := c.Pipeline().Run()
	Expect(err).To(BeNil())
	Expect(result).To(BeEmpty())
	Expect(pool.BorrowFunc).NotTo(BeCalled())
}

func (s *ClientSuite) TestPipelineExHash(t sweet.T) {
	var (
		pool = NewMockPool()
		conn = NewMockConn()
		c    = makeClient(pool, nil)
	)

	pool.BorrowFunc.SetDefaultHook(func() (Conn, bool) {
		return conn, true
	})

	conn.DoFunc.SetDefaultHook(func(command string, args ...interface{}) (interface{}, error) {
		return []interface{}{int64(1), []byte("v")}, nil
	})

	pipeline := c.Pipeline()
	p := exhash.NewPipeline(pipeline)
	p.ExHSet("key", "field", "v")
	p.ExHGet("key", "field")
	Expect(pipeline.Len()).To(Equal(2))

	result, err := pipeline.Run()
	Expect(err).To(BeNil())
	Expect(result).To(Equal([]interface{}{int64(1), []byte("v")}))
	Expect(conn.SendFunc).To(BeCalledN(3))
	Expect(conn.SendFunc).To(BeCalledWith("MULTI"))
	Expect(conn.SendFunc).To(BeCalledWith("EXHSET", "key", "field", "v"))
	Expect(conn.SendFunc).To(BeCalledWith("EXHGET", "key", "field"))
	Expect(conn.DoFunc).To(BeCalledN(1))
	Expect(conn.DoFunc).To(BeCalledWith("EXEC"))
}

func (s *ClientSuite) TestExHashClient(t sweet.T) {
	var (
		pool = NewMockPool()
		conn = NewMockConn()
		c    = makeClient(pool, nil)
	)

	pool.BorrowFunc.SetDefaultHook(func() (Conn, bool) {
		return conn, true
	})

	conn.DoFunc.SetDefaultHook(func(command string, args ...interface{}) (interface{}, error) {
		return int64(7), nil
	})

	n, err := exhash.New(c).ExHIncrBy("key", "field", 2)
	Expect(err).To(BeNil())
	Expect(n).To(Equal(int64(7)))
	Expect(conn.DoFunc).To(BeCalledN(1))
	Expect(conn.DoFunc).To(BeCalledWith("EXHINCRBY", "key", "field", int64(2)))
}

//
// Helpers

func makeClient(pool Pool, clock glock.Clock) *client {
	if clock == nil {
		clock = glock.NewMockClock()
	}

	return &client{
		pool:           pool,
		backoffFactory: testBackoff,
		maxRetries:     3,
		clock:          clock,
		logger:         testLogger,
	}
}

type recordingLogger struct {
	messages []string
}

func (l *recordingLogger) Printf(format string, args ...interface{}) {
	l.messages = append(l.messages, fmt.Sprintf(format, args...))
}

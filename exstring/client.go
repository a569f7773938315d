package exstring

import (
	"github.com/gomodule/redigo/redis"

	"github.com/631086083/tairclient/command"
	"github.com/631086083/tairclient/iface"
)

// Client issues TairString commands through an executor.
type Client struct {
	executor iface.Executor
}

// New creates a Client that sends its commands to executor.
func New(executor iface.Executor) *Client {
	return &Client{executor: executor}
}

func (c *Client) do(b *command.Builder) (interface{}, error) {
	return c.executor.Do(b.Name(), b.Args()...)
}

// CAS sets key to newValue if its current value equals oldValue. The
// server answers 1 on success, 0 on mismatch and -1 when the key is
// missing. Honors EX, EXAT, PX and PXAT.
func (c *Client) CAS(key string, oldValue, newValue interface{}, opts ...command.Option) (int64, error) {
	return redis.Int64(c.do(cas(key, oldValue, newValue, opts)))
}

// CAD deletes key if its current value equals value. The reply has the
// same meaning as CAS.
func (c *Client) CAD(key string, value interface{}) (int64, error) {
	return redis.Int64(c.do(cad(key, value)))
}

// ExSet stores a value and reports whether it was written; NX or XX may
// prevent the write. Honors EX, EXAT, PX, PXAT, NX, XX, Ver, Abs and
// Flags.
func (c *Client) ExSet(key string, value interface{}, opts ...command.Option) (bool, error) {
	return applied(c.do(exset(key, value, opts)))
}

// ExSetWithVersion is ExSet returning the version assigned to the value.
// It returns ErrNil when NX or XX prevented the write.
func (c *Client) ExSetWithVersion(key string, value interface{}, opts ...command.Option) (int64, error) {
	return redis.Int64(c.do(exset(key, value, withVersion(opts))))
}

// ExGet returns the value and version of key, or ErrNil.
func (c *Client) ExGet(key string) (Value, error) {
	return value(c.do(exget(key, false)))
}

// ExGetWithFlags returns the value, version and flags of key, or ErrNil.
func (c *Client) ExGetWithFlags(key string) (Value, error) {
	return value(c.do(exget(key, true)))
}

// ExSetVer overwrites the version of key. It reports false if the key
// does not exist.
func (c *Client) ExSetVer(key string, version int64) (bool, error) {
	return redis.Bool(c.do(exsetver(key, version)))
}

// ExIncrBy adds delta to an integer value and returns the result.
// Honors EX, EXAT, PX, PXAT, NX, XX, Ver, Abs, Min, Max and NoNegative.
func (c *Client) ExIncrBy(key string, delta int64, opts ...command.Option) (int64, error) {
	m := command.Apply(opts)
	if m.WithVersion {
		n, _, err := versioned(c.do(exincrby(key, delta, opts)))
		return n, err
	}

	return redis.Int64(c.do(exincrby(key, delta, opts)))
}

// ExIncrByWithVersion is ExIncrBy returning the new value and version.
func (c *Client) ExIncrByWithVersion(key string, delta int64, opts ...command.Option) (int64, int64, error) {
	return versioned(c.do(exincrby(key, delta, withVersion(opts))))
}

// ExIncrByFloat adds delta to a float value and returns the result.
// Honors EX, EXAT, PX, PXAT, NX, XX, Ver, Abs, MinFloat and MaxFloat.
func (c *Client) ExIncrByFloat(key string, delta float64, opts ...command.Option) (float64, error) {
	return redis.Float64(c.do(exincrbyfloat(key, delta, opts)))
}

// ExCAS sets key to value if its version equals version. A stale
// version is reported through the result rather than as an error.
func (c *Client) ExCAS(key string, value interface{}, version int64) (CASResult, error) {
	return casResult(c.do(excas(key, value, version)))
}

// ExCAD deletes key if its version equals version. The server answers
// 1 on success, 0 on mismatch and -1 when the key is missing.
func (c *Client) ExCAD(key string, version int64) (int64, error) {
	return redis.Int64(c.do(excad(key, version)))
}

// ExAppend appends value to key and reports whether it was written.
// Honors NX, XX, Ver and Abs.
func (c *Client) ExAppend(key string, value interface{}, opts ...command.Option) (bool, error) {
	return applied(c.do(affix(CmdExAppend, key, value, opts)))
}

// ExPrepend prepends value to key and reports whether it was written.
// Honors NX, XX, Ver and Abs.
func (c *Client) ExPrepend(key string, value interface{}, opts ...command.Option) (bool, error) {
	return applied(c.do(affix(CmdExPrepend, key, value, opts)))
}

// ExGAE returns the value, version and flags of key and updates its
// expiration without changing the version. Honors EX, EXAT, PX and PXAT.
func (c *Client) ExGAE(key string, opts ...command.Option) (Value, error) {
	return value(c.do(exgae(key, opts)))
}

package exhash

import (
	"github.com/gomodule/redigo/redis"

	"github.com/631086083/tairclient/command"
	"github.com/631086083/tairclient/iface"
	"github.com/631086083/tairclient/internal/reply"
)

// Client issues TairHash commands through an executor such as a
// tairclient.Client, a redigo connection or a goredis.Executor. It is
// safe for concurrent use when the executor is.
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

// ExHSet sets the value of a field, creating the hash if needed. It
// returns 1 if the field was created, 0 if it was updated and -1 if NX
// or XX prevented the write. Honors EX, EXAT, PX, PXAT, NX, XX, Ver, Abs
// and NoActive.
func (c *Client) ExHSet(key, field string, value interface{}, opts ...command.Option) (int64, error) {
	return redis.Int64(c.do(exhset(key, field, value, opts)))
}

// ExHMSet sets several fields at once. An empty mapping fails with
// command.ErrEmptyMapping without contacting the server.
func (c *Client) ExHMSet(key string, fields map[string]interface{}) error {
	b, err := exhmset(key, fields)
	if err != nil {
		return err
	}

	return reply.OK(c.do(b))
}

// ExHPExpireAt sets the absolute expiration of a field in milliseconds.
// It reports false if the field does not exist. Honors Ver, Abs and
// NoActive.
func (c *Client) ExHPExpireAt(key, field string, pxat command.Expiry, opts ...command.Option) (bool, error) {
	return redis.Bool(c.do(exhpexpireat(key, field, pxat, opts)))
}

// ExHPExpire sets the relative expiration of a field in milliseconds.
func (c *Client) ExHPExpire(key, field string, px command.Expiry, opts ...command.Option) (bool, error) {
	return redis.Bool(c.do(exhpexpire(key, field, px, opts)))
}

// ExHExpireAt sets the absolute expiration of a field in seconds.
func (c *Client) ExHExpireAt(key, field string, exat command.Expiry, opts ...command.Option) (bool, error) {
	return redis.Bool(c.do(exhexpireat(key, field, exat, opts)))
}

// ExHExpire sets the relative expiration of a field in seconds.
func (c *Client) ExHExpire(key, field string, ex command.Expiry, opts ...command.Option) (bool, error) {
	return redis.Bool(c.do(exhexpire(key, field, ex, opts)))
}

// ExHPTTL returns the remaining time to live of a field in milliseconds.
// The server answers -1 for a field without expiration and a negative
// value below that when the field or key does not exist.
func (c *Client) ExHPTTL(key, field string) (int64, error) {
	return redis.Int64(c.do(command.New(CmdExHPTTL, key, field)))
}

// ExHTTL returns the remaining time to live of a field in seconds.
func (c *Client) ExHTTL(key, field string) (int64, error) {
	return redis.Int64(c.do(command.New(CmdExHTTL, key, field)))
}

// ExHVer returns the version of a field.
func (c *Client) ExHVer(key, field string) (int64, error) {
	return redis.Int64(c.do(command.New(CmdExHVer, key, field)))
}

// ExHSetVer overwrites the version of a field. It reports false if the
// field does not exist.
func (c *Client) ExHSetVer(key, field string, version int64) (bool, error) {
	return redis.Bool(c.do(command.New(CmdExHSetVer, key, field, version)))
}

// ExHIncrBy adds delta to an integer field, creating it at zero if
// needed, and returns the new value. Honors EX, EXAT, PX, PXAT, NX, XX,
// Ver, Abs, Min and Max.
func (c *Client) ExHIncrBy(key, field string, delta int64, opts ...command.Option) (int64, error) {
	return redis.Int64(c.do(exhincrby(key, field, delta, opts)))
}

// ExHIncrByFloat adds delta to a float field and returns the new value.
// Honors the same modifiers as ExHIncrBy, with MinFloat and MaxFloat as
// the bounds.
func (c *Client) ExHIncrByFloat(key, field string, delta float64, opts ...command.Option) (float64, error) {
	return redis.Float64(c.do(exhincrbyfloat(key, field, delta, opts)))
}

// ExHGet returns the value of a field, or ErrNil.
func (c *Client) ExHGet(key, field string) ([]byte, error) {
	return redis.Bytes(c.do(command.New(CmdExHGet, key, field)))
}

// ExHGetWithVer returns the value and version of a field, or ErrNil.
func (c *Client) ExHGetWithVer(key, field string) (VersionedValue, error) {
	return versionedValue(c.do(command.New(CmdExHGetWithVer, key, field)))
}

// ExHMGet returns the values of the given fields in the order requested.
// Missing fields are nil.
func (c *Client) ExHMGet(key string, fields ...string) ([][]byte, error) {
	b, err := keyFields(CmdExHMGet, key, fields)
	if err != nil {
		return nil, err
	}

	return reply.ByteSlices(c.do(b))
}

// ExHMGetWithVer returns the values and versions of the given fields in
// the order requested. Missing fields are nil.
func (c *Client) ExHMGetWithVer(key string, fields ...string) ([]*VersionedValue, error) {
	b, err := keyFields(CmdExHMGetWithVer, key, fields)
	if err != nil {
		return nil, err
	}

	return versionedValues(c.do(b))
}

// ExHDel deletes fields and returns how many existed.
func (c *Client) ExHDel(key string, fields ...string) (int64, error) {
	b, err := keyFields(CmdExHDel, key, fields)
	if err != nil {
		return 0, err
	}

	return redis.Int64(c.do(b))
}

// ExHLen returns the number of fields. The count may include expired
// fields that have not been evicted yet unless noExp is set.
func (c *Client) ExHLen(key string, noExp bool) (int64, error) {
	return redis.Int64(c.do(exhlen(key, noExp)))
}

// ExHExists reports whether a field exists.
func (c *Client) ExHExists(key, field string) (bool, error) {
	return redis.Bool(c.do(command.New(CmdExHExists, key, field)))
}

// ExHStrLen returns the length of a field's value.
func (c *Client) ExHStrLen(key, field string) (int64, error) {
	return redis.Int64(c.do(command.New(CmdExHStrLen, key, field)))
}

// ExHKeys returns every field name.
func (c *Client) ExHKeys(key string) ([]string, error) {
	return redis.Strings(c.do(command.New(CmdExHKeys, key)))
}

// ExHVals returns every field value.
func (c *Client) ExHVals(key string) ([][]byte, error) {
	return reply.ByteSlices(c.do(command.New(CmdExHVals, key)))
}

// ExHGetAll returns every field and value in the order the server
// reports them.
func (c *Client) ExHGetAll(key string) ([]FieldValue, error) {
	return fieldValues(c.do(command.New(CmdExHGetAll, key)))
}

// ExHScan returns one step of a cursor scan. Honors Match and Count.
func (c *Client) ExHScan(key, cursor string, opts ...command.Option) (ScanResult, error) {
	return scanResult(c.do(exhscan(key, cursor, opts)))
}

// ExHScanEE returns one step of an enterprise-edition scan, which starts
// at subkey according to op. Honors Match and Count.
func (c *Client) ExHScanEE(key string, op ScanOp, subkey string, opts ...command.Option) (ScanResult, error) {
	return scanResult(c.do(exhscanEE(key, op, subkey, opts)))
}

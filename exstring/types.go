package exstring

import (
	"fmt"

	"github.com/gomodule/redigo/redis"

	"github.com/631086083/tairclient/internal/reply"
)

type (
	// Value is a TairString value with its version. Flags is only filled
	// in when the server includes it in the reply.
	Value struct {
		Value   []byte
		Version int64
		Flags   uint32
	}

	// CASResult is the reply to ExCAS. Status is "OK" when the swap was
	// applied; otherwise it carries the server's reason, and Value holds
	// the current value.
	CASResult struct {
		Status  string
		Value   []byte
		Version int64
	}
)

// ErrNil is returned when the key does not exist.
var ErrNil = redis.ErrNil

// Applied reports whether the swap succeeded.
func (r CASResult) Applied() bool {
	return r.Status == "OK"
}

func value(r interface{}, err error) (Value, error) {
	values, err := reply.Tuple(r, err, 2)
	if err != nil {
		return Value{}, err
	}

	data, err := redis.Bytes(values[0], nil)
	if err != nil {
		return Value{}, fmt.Errorf("value: %w", err)
	}

	version, err := redis.Int64(values[1], nil)
	if err != nil {
		return Value{}, fmt.Errorf("version: %w", err)
	}

	v := Value{Value: data, Version: version}
	if len(values) > 2 {
		flags, err := redis.Int64(values[2], nil)
		if err != nil {
			return Value{}, fmt.Errorf("flags: %w", err)
		}

		v.Flags = uint32(flags)
	}

	return v, nil
}

// applied decodes a write that answers OK or a version on success and
// nil when NX or XX prevented it.
func applied(r interface{}, err error) (bool, error) {
	if err != nil {
		return false, err
	}

	switch r := r.(type) {
	case nil:
		return false, nil
	case int64:
		return true, nil
	case redis.Error:
		return false, r
	}

	if err := reply.OK(r, nil); err != nil {
		return false, err
	}

	return true, nil
}

func versioned(r interface{}, err error) (int64, int64, error) {
	values, err := reply.Tuple(r, err, 2)
	if err != nil {
		return 0, 0, err
	}

	n, err := redis.Int64(values[0], nil)
	if err != nil {
		return 0, 0, fmt.Errorf("value: %w", err)
	}

	version, err := redis.Int64(values[1], nil)
	if err != nil {
		return 0, 0, fmt.Errorf("version: %w", err)
	}

	return n, version, nil
}

// The server answers -1 instead of an array when the key is missing.
func casResult(r interface{}, err error) (CASResult, error) {
	if err != nil {
		return CASResult{}, err
	}

	if n, ok := r.(int64); ok {
		if n == -1 {
			return CASResult{}, ErrNil
		}

		return CASResult{}, fmt.Errorf("tairclient: unexpected integer reply %d", n)
	}

	values, err := reply.Tuple(r, nil, 3)
	if err != nil {
		return CASResult{}, err
	}

	status, err := redis.String(values[0], nil)
	if err != nil {
		return CASResult{}, fmt.Errorf("status: %w", err)
	}

	data, err := redis.Bytes(values[1], nil)
	if err != nil && err != redis.ErrNil {
		return CASResult{}, fmt.Errorf("value: %w", err)
	}

	version, err := redis.Int64(values[2], nil)
	if err != nil {
		return CASResult{}, fmt.Errorf("version: %w", err)
	}

	return CASResult{Status: status, Value: data, Version: version}, nil
}

// Package goredis runs the exhash and exstring command sets on top of a
// go-redis client. Replies are normalized to the shapes redigo produces,
// so the same reply decoding applies to both transports.
package goredis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	redigo "github.com/gomodule/redigo/redis"
	redisv9 "github.com/redis/go-redis/v9"

	"github.com/631086083/tairclient/iface"
)

type (
	// Doer is the part of a go-redis client used by Executor. It is
	// satisfied by *redis.Client, *redis.ClusterClient, *redis.Ring and
	// redis.UniversalClient.
	Doer interface {
		Do(ctx context.Context, args ...interface{}) *redisv9.Cmd
	}

	// Executor sends commands through a go-redis client.
	Executor struct {
		doer Doer
		ctx  context.Context
	}
)

var _ iface.Executor = &Executor{}

// NewExecutor creates an Executor that sends commands through doer with
// a background context.
func NewExecutor(doer Doer) *Executor {
	return &Executor{doer: doer, ctx: context.Background()}
}

// WithContext returns a copy of the executor that sends its commands
// with ctx.
func (e *Executor) WithContext(ctx context.Context) *Executor {
	return &Executor{doer: e.doer, ctx: ctx}
}

func (e *Executor) Do(command string, args ...interface{}) (interface{}, error) {
	return normalizeResult(e.doer.Do(e.ctx, commandArgs(command, args)...).Result())
}

func commandArgs(command string, args []interface{}) []interface{} {
	return append([]interface{}{command}, args...)
}

// normalizeResult maps a go-redis result onto redigo's conventions. A
// nil reply is returned as a nil value, an error reply as redigo's
// redis.Error and simple values as the types redigo decodes.
func normalizeResult(val interface{}, err error) (interface{}, error) {
	if err != nil {
		if errors.Is(err, redisv9.Nil) {
			return nil, nil
		}

		var serverErr redisv9.Error
		if errors.As(err, &serverErr) {
			return nil, redigo.Error(serverErr.Error())
		}

		return nil, err
	}

	return normalize(val), nil
}

func normalize(val interface{}) interface{} {
	switch v := val.(type) {
	case string:
		return []byte(v)

	case float64:
		return []byte(strconv.FormatFloat(v, 'f', -1, 64))

	case bool:
		if v {
			return int64(1)
		}
		return int64(0)

	case []interface{}:
		values := make([]interface{}, len(v))
		for i, elem := range v {
			values[i] = normalize(elem)
		}
		return values

	case map[interface{}]interface{}:
		return flatten(v)

	case map[string]interface{}:
		m := make(map[interface{}]interface{}, len(v))
		for key, elem := range v {
			m[key] = elem
		}
		return flatten(m)
	}

	return val
}

// flatten turns a map reply into the alternating key and value array a
// RESP2 server would send. Keys are ordered so the result is stable.
func flatten(m map[interface{}]interface{}) []interface{} {
	keys := make([]interface{}, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i]) < fmt.Sprint(keys[j])
	})

	values := make([]interface{}, 0, len(m)*2)
	for _, key := range keys {
		values = append(values, normalize(key), normalize(m[key]))
	}

	return values
}

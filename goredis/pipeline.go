package goredis

import (
	"context"
	"errors"
	"fmt"

	redigo "github.com/gomodule/redigo/redis"
	redisv9 "github.com/redis/go-redis/v9"

	"github.com/631086083/tairclient/iface"
)

type (
	// Pipeliner is the part of a go-redis pipeline used by Pipeline. Use
	// the client's TxPipeline for MULTI/EXEC semantics.
	Pipeliner interface {
		Do(ctx context.Context, args ...interface{}) *redisv9.Cmd
		Exec(ctx context.Context) ([]redisv9.Cmder, error)
		Len() int
	}

	// Pipeline queues commands on a go-redis pipeline and returns their
	// replies in redigo's shapes. A per-command error reply is returned
	// in place as a redis.Error value, as redigo does for EXEC.
	Pipeline struct {
		pipeliner Pipeliner
		ctx       context.Context
	}
)

var _ iface.Pipeline = &Pipeline{}

// NewPipeline creates a Pipeline that queues commands on pipeliner.
func NewPipeline(pipeliner Pipeliner) *Pipeline {
	return &Pipeline{pipeliner: pipeliner, ctx: context.Background()}
}

// WithContext returns a copy of the pipeline that runs with ctx. Both
// copies share the underlying go-redis pipeline.
func (p *Pipeline) WithContext(ctx context.Context) *Pipeline {
	return &Pipeline{pipeliner: p.pipeliner, ctx: ctx}
}

func (p *Pipeline) Add(command string, args ...interface{}) {
	p.pipeliner.Do(p.ctx, commandArgs(command, args)...)
}

func (p *Pipeline) Len() int {
	return p.pipeliner.Len()
}

func (p *Pipeline) Run() ([]interface{}, error) {
	if p.pipeliner.Len() == 0 {
		return []interface{}{}, nil
	}

	cmds, err := p.pipeliner.Exec(p.ctx)
	if err != nil && !isReplyError(err) {
		return nil, err
	}

	results := make([]interface{}, 0, len(cmds))
	for i, cmder := range cmds {
		cmd, ok := cmder.(*redisv9.Cmd)
		if !ok {
			return nil, fmt.Errorf("tairclient: unexpected command type %T at %d", cmder, i)
		}

		result, err := normalizeResult(cmd.Result())
		if err != nil {
			var replyErr redigo.Error
			if !errors.As(err, &replyErr) {
				return nil, err
			}

			result = replyErr
		}

		results = append(results, result)
	}

	return results, nil
}

// isReplyError reports whether err came from the server rather than the
// transport. Exec returns the first failed command's error, which is
// not fatal when it is an error reply.
func isReplyError(err error) bool {
	var serverErr redisv9.Error
	return errors.Is(err, redisv9.Nil) || errors.As(err, &serverErr)
}

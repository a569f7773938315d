package exstring

import (
	"github.com/631086083/tairclient/command"
	"github.com/631086083/tairclient/iface"
)

// Pipeline attaches TairString commands to a queue. Replies are returned
// by the queue when it runs, in the order the commands were attached.
type Pipeline struct {
	queue iface.Queue
}

// NewPipeline creates a Pipeline that attaches commands to queue.
func NewPipeline(queue iface.Queue) *Pipeline {
	return &Pipeline{queue: queue}
}

func (p *Pipeline) add(b *command.Builder) {
	p.queue.Add(b.Name(), b.Args()...)
}

func (p *Pipeline) CAS(key string, oldValue, newValue interface{}, opts ...command.Option) {
	p.add(cas(key, oldValue, newValue, opts))
}

func (p *Pipeline) CAD(key string, value interface{}) {
	p.add(cad(key, value))
}

func (p *Pipeline) ExSet(key string, value interface{}, opts ...command.Option) {
	p.add(exset(key, value, opts))
}

func (p *Pipeline) ExGet(key string) {
	p.add(exget(key, false))
}

func (p *Pipeline) ExGetWithFlags(key string) {
	p.add(exget(key, true))
}

func (p *Pipeline) ExSetVer(key string, version int64) {
	p.add(exsetver(key, version))
}

func (p *Pipeline) ExIncrBy(key string, delta int64, opts ...command.Option) {
	p.add(exincrby(key, delta, opts))
}

func (p *Pipeline) ExIncrByFloat(key string, delta float64, opts ...command.Option) {
	p.add(exincrbyfloat(key, delta, opts))
}

func (p *Pipeline) ExCAS(key string, value interface{}, version int64) {
	p.add(excas(key, value, version))
}

func (p *Pipeline) ExCAD(key string, version int64) {
	p.add(excad(key, version))
}

func (p *Pipeline) ExAppend(key string, value interface{}, opts ...command.Option) {
	p.add(affix(CmdExAppend, key, value, opts))
}

func (p *Pipeline) ExPrepend(key string, value interface{}, opts ...command.Option) {
	p.add(affix(CmdExPrepend, key, value, opts))
}

func (p *Pipeline) ExGAE(key string, opts ...command.Option) {
	p.add(exgae(key, opts))
}

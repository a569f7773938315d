package exhash

import (
	"github.com/631086083/tairclient/command"
	"github.com/631086083/tairclient/iface"
)

// Pipeline attaches TairHash commands to a queue, such as the pipeline
// returned by tairclient.Client.Pipeline. Replies are returned by the
// queue when it runs, in the order the commands were attached. Methods
// that validate their arguments return the local error and attach
// nothing.
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

func (p *Pipeline) addChecked(b *command.Builder, err error) error {
	if err != nil {
		return err
	}

	p.add(b)
	return nil
}

func (p *Pipeline) ExHSet(key, field string, value interface{}, opts ...command.Option) {
	p.add(exhset(key, field, value, opts))
}

func (p *Pipeline) ExHMSet(key string, fields map[string]interface{}) error {
	return p.addChecked(exhmset(key, fields))
}

func (p *Pipeline) ExHPExpireAt(key, field string, pxat command.Expiry, opts ...command.Option) {
	p.add(exhpexpireat(key, field, pxat, opts))
}

func (p *Pipeline) ExHPExpire(key, field string, px command.Expiry, opts ...command.Option) {
	p.add(exhpexpire(key, field, px, opts))
}

func (p *Pipeline) ExHExpireAt(key, field string, exat command.Expiry, opts ...command.Option) {
	p.add(exhexpireat(key, field, exat, opts))
}

func (p *Pipeline) ExHExpire(key, field string, ex command.Expiry, opts ...command.Option) {
	p.add(exhexpire(key, field, ex, opts))
}

func (p *Pipeline) ExHPTTL(key, field string) {
	p.add(command.New(CmdExHPTTL, key, field))
}

func (p *Pipeline) ExHTTL(key, field string) {
	p.add(command.New(CmdExHTTL, key, field))
}

func (p *Pipeline) ExHVer(key, field string) {
	p.add(command.New(CmdExHVer, key, field))
}

func (p *Pipeline) ExHSetVer(key, field string, version int64) {
	p.add(command.New(CmdExHSetVer, key, field, version))
}

func (p *Pipeline) ExHIncrBy(key, field string, delta int64, opts ...command.Option) {
	p.add(exhincrby(key, field, delta, opts))
}

func (p *Pipeline) ExHIncrByFloat(key, field string, delta float64, opts ...command.Option) {
	p.add(exhincrbyfloat(key, field, delta, opts))
}

func (p *Pipeline) ExHGet(key, field string) {
	p.add(command.New(CmdExHGet, key, field))
}

func (p *Pipeline) ExHGetWithVer(key, field string) {
	p.add(command.New(CmdExHGetWithVer, key, field))
}

func (p *Pipeline) ExHMGet(key string, fields ...string) error {
	return p.addChecked(keyFields(CmdExHMGet, key, fields))
}

func (p *Pipeline) ExHMGetWithVer(key string, fields ...string) error {
	return p.addChecked(keyFields(CmdExHMGetWithVer, key, fields))
}

func (p *Pipeline) ExHDel(key string, fields ...string) error {
	return p.addChecked(keyFields(CmdExHDel, key, fields))
}

func (p *Pipeline) ExHLen(key string, noExp bool) {
	p.add(exhlen(key, noExp))
}

func (p *Pipeline) ExHExists(key, field string) {
	p.add(command.New(CmdExHExists, key, field))
}

func (p *Pipeline) ExHStrLen(key, field string) {
	p.add(command.New(CmdExHStrLen, key, field))
}

func (p *Pipeline) ExHKeys(key string) {
	p.add(command.New(CmdExHKeys, key))
}

func (p *Pipeline) ExHVals(key string) {
	p.add(command.New(CmdExHVals, key))
}

func (p *Pipeline) ExHGetAll(key string) {
	p.add(command.New(CmdExHGetAll, key))
}

func (p *Pipeline) ExHScan(key, cursor string, opts ...command.Option) {
	p.add(exhscan(key, cursor, opts))
}

func (p *Pipeline) ExHScanEE(key string, op ScanOp, subkey string, opts ...command.Option) {
	p.add(exhscanEE(key, op, subkey, opts))
}

// Package exhash issues TairHash commands. TairHash is a hash whose fields
// each carry their own expiration time and a version number used for
// optimistic concurrency control.
//
// Every method builds one command and hands it to an executor in a
// single round trip. The client validates nothing the server checks
// itself: version conflicts, overflow and type mismatches come back as
// server errors (see command.IsStaleVersion and friends).
package exhash

import (
	"sort"

	"github.com/631086083/tairclient/command"
)

// TairHash command names.
const (
	CmdExHSet         = "EXHSET"
	CmdExHMSet        = "EXHMSET"
	CmdExHPExpireAt   = "EXHPEXPIREAT"
	CmdExHPExpire     = "EXHPEXPIRE"
	CmdExHExpireAt    = "EXHEXPIREAT"
	CmdExHExpire      = "EXHEXPIRE"
	CmdExHPTTL        = "EXHPTTL"
	CmdExHTTL         = "EXHTTL"
	CmdExHVer         = "EXHVER"
	CmdExHSetVer      = "EXHSETVER"
	CmdExHIncrBy      = "EXHINCRBY"
	CmdExHIncrByFloat = "EXHINCRBYFLOAT"
	CmdExHGet         = "EXHGET"
	CmdExHGetWithVer  = "EXHGETWITHVER"
	CmdExHMGet        = "EXHMGET"
	CmdExHMGetWithVer = "EXHMGETWITHVER"
	CmdExHDel         = "EXHDEL"
	CmdExHLen         = "EXHLEN"
	CmdExHExists      = "EXHEXISTS"
	CmdExHStrLen      = "EXHSTRLEN"
	CmdExHKeys        = "EXHKEYS"
	CmdExHVals        = "EXHVALS"
	CmdExHGetAll      = "EXHGETALL"
	CmdExHScan        = "EXHSCAN"
)

func exhset(key, field string, value interface{}, opts []command.Option) *command.Builder {
	m := command.Apply(opts)

	return command.New(CmdExHSet, key, field, value).
		AppendExpire(m.EX, m.EXAT, m.PX, m.PXAT).
		AppendExists(m.NX, m.XX).
		AppendVer(m.Ver).
		AppendAbs(m.Abs).
		AppendNoActive(m.NoActive)
}

// Fields are emitted in sorted order so the same mapping always yields
// the same command.
func exhmset(key string, fields map[string]interface{}) (*command.Builder, error) {
	if len(fields) == 0 {
		return nil, command.ErrEmptyMapping
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	b := command.New(CmdExHMSet, key)
	for _, name := range names {
		b.Append(name, fields[name])
	}

	return b, nil
}

func expireCommand(name, key, field string, at int64, opts []command.Option) *command.Builder {
	m := command.Apply(opts)

	return command.New(name, key, field, at).
		AppendVer(m.Ver).
		AppendAbs(m.Abs).
		AppendNoActive(m.NoActive)
}

func exhpexpireat(key, field string, pxat command.Expiry, opts []command.Option) *command.Builder {
	return expireCommand(CmdExHPExpireAt, key, field, pxat.Milliseconds(), opts)
}

func exhpexpire(key, field string, px command.Expiry, opts []command.Option) *command.Builder {
	return expireCommand(CmdExHPExpire, key, field, px.Milliseconds(), opts)
}

func exhexpireat(key, field string, exat command.Expiry, opts []command.Option) *command.Builder {
	return expireCommand(CmdExHExpireAt, key, field, exat.Seconds(), opts)
}

func exhexpire(key, field string, ex command.Expiry, opts []command.Option) *command.Builder {
	return expireCommand(CmdExHExpire, key, field, ex.Seconds(), opts)
}

func incrCommand(name, key, field string, delta interface{}, opts []command.Option) *command.Builder {
	m := command.Apply(opts)

	return command.New(name, key, field, delta).
		AppendExpire(m.EX, m.EXAT, m.PX, m.PXAT).
		AppendExists(m.NX, m.XX).
		AppendVer(m.Ver).
		AppendAbs(m.Abs).
		AppendMinVal(m.Min).
		AppendMaxVal(m.Max)
}

func exhincrby(key, field string, delta int64, opts []command.Option) *command.Builder {
	return incrCommand(CmdExHIncrBy, key, field, delta, opts)
}

func exhincrbyfloat(key, field string, delta float64, opts []command.Option) *command.Builder {
	return incrCommand(CmdExHIncrByFloat, key, field, delta, opts)
}

func keyFields(name, key string, fields []string) (*command.Builder, error) {
	if len(fields) == 0 {
		return nil, command.ErrNoFields
	}

	b := command.New(name, key)
	for _, field := range fields {
		b.Append(field)
	}

	return b, nil
}

func exhlen(key string, noExp bool) *command.Builder {
	return command.New(CmdExHLen, key).AppendKeyword("NOEXP", noExp)
}

func exhscan(key, cursor string, opts []command.Option) *command.Builder {
	m := command.Apply(opts)
	return command.New(CmdExHScan, key, cursor).AppendMatch(m.Match).AppendCount(m.Count)
}

// The enterprise edition starts a scan from an operator and subkey
// instead of a cursor.
func exhscanEE(key string, op ScanOp, subkey string, opts []command.Option) *command.Builder {
	m := command.Apply(opts)
	return command.New(CmdExHScan, key, string(op), subkey).AppendMatch(m.Match).AppendCount(m.Count)
}

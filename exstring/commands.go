// Package exstring issues TairString commands. TairString is a string
// that carries a version number and a memcached-compatible flags word,
// and supports compare-and-set and compare-and-delete by value or by
// version.
//
// The TairString module is not loaded on every deployment, so this
// package is kept apart from exhash: nothing else in tairclient imports
// it, and programs only depend on it by importing it explicitly.
package exstring

import "github.com/631086083/tairclient/command"

// TairString command names.
const (
	CmdCAS           = "CAS"
	CmdCAD           = "CAD"
	CmdExSet         = "EXSET"
	CmdExGet         = "EXGET"
	CmdExSetVer      = "EXSETVER"
	CmdExIncrBy      = "EXINCRBY"
	CmdExIncrByFloat = "EXINCRBYFLOAT"
	CmdExCAS         = "EXCAS"
	CmdExCAD         = "EXCAD"
	CmdExAppend      = "EXAPPEND"
	CmdExPrepend     = "EXPREPEND"
	CmdExGAE         = "EXGAE"
)

func expiring(b *command.Builder, m command.Modifiers) *command.Builder {
	return b.AppendExpire(m.EX, m.EXAT, m.PX, m.PXAT)
}

func cas(key string, oldValue, newValue interface{}, opts []command.Option) *command.Builder {
	return expiring(command.New(CmdCAS, key, oldValue, newValue), command.Apply(opts))
}

func cad(key string, value interface{}) *command.Builder {
	return command.New(CmdCAD, key, value)
}

func exset(key string, value interface{}, opts []command.Option) *command.Builder {
	m := command.Apply(opts)

	return expiring(command.New(CmdExSet, key, value), m).
		AppendExists(m.NX, m.XX).
		AppendVer(m.Ver).
		AppendAbs(m.Abs).
		AppendFlags(m.Flags).
		AppendWithVersion(m.WithVersion)
}

func exget(key string, withFlags bool) *command.Builder {
	return command.New(CmdExGet, key).AppendWithFlags(withFlags)
}

func exsetver(key string, version int64) *command.Builder {
	return command.New(CmdExSetVer, key, version)
}

func exincrby(key string, delta int64, opts []command.Option) *command.Builder {
	m := command.Apply(opts)

	return expiring(command.New(CmdExIncrBy, key, delta), m).
		AppendExists(m.NX, m.XX).
		AppendVer(m.Ver).
		AppendAbs(m.Abs).
		AppendMinVal(m.Min).
		AppendMaxVal(m.Max).
		AppendNoNegative(m.NoNegative).
		AppendWithVersion(m.WithVersion)
}

func exincrbyfloat(key string, delta float64, opts []command.Option) *command.Builder {
	m := command.Apply(opts)

	return expiring(command.New(CmdExIncrByFloat, key, delta), m).
		AppendExists(m.NX, m.XX).
		AppendVer(m.Ver).
		AppendAbs(m.Abs).
		AppendMinVal(m.Min).
		AppendMaxVal(m.Max)
}

func excas(key string, value interface{}, version int64) *command.Builder {
	return command.New(CmdExCAS, key, value, version)
}

func excad(key string, version int64) *command.Builder {
	return command.New(CmdExCAD, key, version)
}

func affix(name, key string, value interface{}, opts []command.Option) *command.Builder {
	m := command.Apply(opts)

	return command.New(name, key, value).
		AppendExists(m.NX, m.XX).
		AppendVer(m.Ver).
		AppendAbs(m.Abs)
}

func exgae(key string, opts []command.Option) *command.Builder {
	return expiring(command.New(CmdExGAE, key), command.Apply(opts))
}

// withVersion forces WITHVERSION regardless of the caller's options.
func withVersion(opts []command.Option) []command.Option {
	return append(append([]command.Option(nil), opts...), command.WithVersion())
}

package command

// Builder accumulates the tokens of a single command. Positional
// arguments are given to New; each Append method adds its keyword (and
// value) only when the modifier is present. Callers invoke the appenders
// in the order the server documents, which fixes the token order no
// matter how the modifiers were supplied.
type Builder struct {
	name string
	args []interface{}
}

// New starts a command with its positional arguments.
func New(name string, args ...interface{}) *Builder {
	return &Builder{
		name: name,
		args: append(make([]interface{}, 0, len(args)+8), args...),
	}
}

// Name returns the command name.
func (b *Builder) Name() string {
	return b.name
}

// Args returns a copy of the tokens following the command name.
func (b *Builder) Args() []interface{} {
	return append([]interface{}(nil), b.args...)
}

// Append adds tokens unconditionally.
func (b *Builder) Append(args ...interface{}) *Builder {
	b.args = append(b.args, args...)
	return b
}

// AppendKeyword adds keyword when set is true.
func (b *Builder) AppendKeyword(keyword string, set bool) *Builder {
	if set {
		b.args = append(b.args, keyword)
	}

	return b
}

// AppendExpire adds EX, EXAT, PX and PXAT, in that order, for each
// expiry that is non-nil. Combinations are not rejected here.
func (b *Builder) AppendExpire(ex, exat, px, pxat *Expiry) *Builder {
	if ex != nil {
		b.args = append(b.args, "EX", ex.Seconds())
	}
	if exat != nil {
		b.args = append(b.args, "EXAT", exat.Seconds())
	}
	if px != nil {
		b.args = append(b.args, "PX", px.Milliseconds())
	}
	if pxat != nil {
		b.args = append(b.args, "PXAT", pxat.Milliseconds())
	}

	return b
}

// AppendExists adds NX then XX. Both are emitted when both are set.
func (b *Builder) AppendExists(nx, xx bool) *Builder {
	return b.AppendKeyword("NX", nx).AppendKeyword("XX", xx)
}

// AppendVer adds the expected version.
func (b *Builder) AppendVer(ver *int64) *Builder {
	if ver != nil {
		b.args = append(b.args, "VER", *ver)
	}

	return b
}

// AppendAbs adds the absolute version to assign.
func (b *Builder) AppendAbs(abs *int64) *Builder {
	if abs != nil {
		b.args = append(b.args, "Abs", *abs)
	}

	return b
}

func (b *Builder) AppendNoActive(noActive bool) *Builder {
	return b.AppendKeyword("NOACTIVE", noActive)
}

// AppendFlags adds the memcached-compatible flags word.
func (b *Builder) AppendFlags(flags *uint32) *Builder {
	if flags != nil {
		b.args = append(b.args, "FLAGS", *flags)
	}

	return b
}

// AppendMinVal adds the lower bound of an increment. The value is an
// int64 or a float64; nil means no bound.
func (b *Builder) AppendMinVal(minVal interface{}) *Builder {
	if minVal != nil {
		b.args = append(b.args, "Min", minVal)
	}

	return b
}

// AppendMaxVal adds the upper bound of an increment. The value is an
// int64 or a float64; nil means no bound.
func (b *Builder) AppendMaxVal(maxVal interface{}) *Builder {
	if maxVal != nil {
		b.args = append(b.args, "Max", maxVal)
	}

	return b
}

func (b *Builder) AppendWithVersion(withVersion bool) *Builder {
	return b.AppendKeyword("WITHVERSION", withVersion)
}

func (b *Builder) AppendWithFlags(withFlags bool) *Builder {
	return b.AppendKeyword("WITHFLAGS", withFlags)
}

func (b *Builder) AppendNoNegative(noNegative bool) *Builder {
	return b.AppendKeyword("NONEGATIVE", noNegative)
}

func (b *Builder) AppendMatch(pattern *string) *Builder {
	if pattern != nil {
		b.args = append(b.args, "MATCH", *pattern)
	}

	return b
}

func (b *Builder) AppendCount(count *int64) *Builder {
	if count != nil {
		b.args = append(b.args, "COUNT", *count)
	}

	return b
}

package command

type (
	// Modifiers is the set of optional arguments a caller supplied to a
	// single command. A nil pointer or false flag means absent. Each
	// command reads only the modifiers its grammar accepts.
	Modifiers struct {
		EX, EXAT, PX, PXAT *Expiry
		NX, XX             bool
		Ver, Abs           *int64
		Flags              *uint32
		Min, Max           interface{}
		NoActive           bool
		NoNegative         bool
		WithVersion        bool
		WithFlags          bool
		Match              *string
		Count              *int64
	}

	// Option sets one modifier.
	Option func(*Modifiers)
)

// Apply collects options into a Modifiers value. Later options overwrite
// earlier options that set the same modifier.
func Apply(opts []Option) Modifiers {
	m := Modifiers{}
	for _, opt := range opts {
		opt(&m)
	}

	return m
}

// EX sets a relative expiration in seconds.
func EX(e Expiry) Option {
	return func(m *Modifiers) { m.EX = ptr(e) }
}

// EXAT sets an absolute expiration as a Unix time in seconds.
func EXAT(e Expiry) Option {
	return func(m *Modifiers) { m.EXAT = ptr(e) }
}

// PX sets a relative expiration in milliseconds.
func PX(e Expiry) Option {
	return func(m *Modifiers) { m.PX = ptr(e) }
}

// PXAT sets an absolute expiration as a Unix time in milliseconds.
func PXAT(e Expiry) Option {
	return func(m *Modifiers) { m.PXAT = ptr(e) }
}

// NX applies the write only if the target does not exist.
func NX() Option {
	return func(m *Modifiers) { m.NX = true }
}

// XX applies the write only if the target already exists.
func XX() Option {
	return func(m *Modifiers) { m.XX = true }
}

// Ver applies the write only if the target's current version equals ver.
func Ver(ver int64) Option {
	return func(m *Modifiers) { m.Ver = ptr(ver) }
}

// Abs sets the target's version to abs when the write succeeds.
func Abs(abs int64) Option {
	return func(m *Modifiers) { m.Abs = ptr(abs) }
}

// Flags stores a memcached-compatible flags word with the value.
func Flags(flags uint32) Option {
	return func(m *Modifiers) { m.Flags = ptr(flags) }
}

// Min rejects an integer increment whose result would fall below min.
func Min(min int64) Option {
	return func(m *Modifiers) { m.Min = min }
}

// Max rejects an integer increment whose result would exceed max.
func Max(max int64) Option {
	return func(m *Modifiers) { m.Max = max }
}

// MinFloat rejects a float increment whose result would fall below min.
func MinFloat(min float64) Option {
	return func(m *Modifiers) { m.Min = min }
}

// MaxFloat rejects a float increment whose result would exceed max.
func MaxFloat(max float64) Option {
	return func(m *Modifiers) { m.Max = max }
}

// NoActive exempts the target from active expiration; it is only
// removed when it is accessed after expiring.
func NoActive() Option {
	return func(m *Modifiers) { m.NoActive = true }
}

// NoNegative clamps a negative increment result to zero.
func NoNegative() Option {
	return func(m *Modifiers) { m.NoNegative = true }
}

// WithVersion asks the server to include the version in its reply.
func WithVersion() Option {
	return func(m *Modifiers) { m.WithVersion = true }
}

// WithFlags asks the server to include the flags word in its reply.
func WithFlags() Option {
	return func(m *Modifiers) { m.WithFlags = true }
}

// Match filters scan results by a glob-style pattern.
func Match(pattern string) Option {
	return func(m *Modifiers) { m.Match = ptr(pattern) }
}

// Count hints how many elements a scan step returns.
func Count(count int64) Option {
	return func(m *Modifiers) { m.Count = ptr(count) }
}

// ptr copies v so that an Option applied more than once never shares
// storage between the resulting Modifiers.
func ptr[T any](v T) *T {
	return &v
}

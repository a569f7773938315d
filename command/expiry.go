package command

import "time"

type expiryKind int

const (
	rawExpiry expiryKind = iota
	durationExpiry
	instantExpiry
)

// Expiry is an expiration argument given either as the integer the
// server expects, as a duration, or as a point in time. It is resolved
// to a single integer token when the command is built.
type Expiry struct {
	kind     expiryKind
	raw      int64
	duration time.Duration
	instant  time.Time
}

// Raw is an expiration already expressed in the unit of the keyword it
// is attached to (seconds for EX and EXAT, milliseconds for PX and PXAT).
func Raw(value int64) Expiry {
	return Expiry{kind: rawExpiry, raw: value}
}

// Duration is a relative expiration, for use with EX and PX.
func Duration(d time.Duration) Expiry {
	return Expiry{kind: durationExpiry, duration: d}
}

// Instant is an absolute expiration, for use with EXAT and PXAT.
func Instant(t time.Time) Expiry {
	return Expiry{kind: instantExpiry, instant: t}
}

// Seconds resolves the expiry to whole seconds. Durations are truncated
// and instants are converted to Unix time.
func (e Expiry) Seconds() int64 {
	switch e.kind {
	case durationExpiry:
		return int64(e.duration / time.Second)
	case instantExpiry:
		return e.instant.Unix()
	default:
		return e.raw
	}
}

// Milliseconds resolves the expiry to whole milliseconds. Durations are
// truncated and instants are converted to Unix time in milliseconds.
func (e Expiry) Milliseconds() int64 {
	switch e.kind {
	case durationExpiry:
		return int64(e.duration / time.Millisecond)
	case instantExpiry:
		return e.instant.UnixMilli()
	default:
		return e.raw
	}
}

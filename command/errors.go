package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gomodule/redigo/redis"
)

var (
	// ErrInvalidArgument is the root of every error raised locally,
	// before a command reaches the server.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrEmptyMapping is returned when a multi-set is given no pairs.
	ErrEmptyMapping = fmt.Errorf("%w: mapping of length 0", ErrInvalidArgument)

	// ErrNoFields is returned when a multi-field command is given no fields.
	ErrNoFields = fmt.Errorf("%w: at least one field is required", ErrInvalidArgument)
)

// Fragments of the error replies sent by the TairHash and TairString
// modules.
const (
	staleVersionText = "update version is stale"
	notIntegerText   = "value is not an integer"
	notFloatText     = "value is not an float"
	overflowText     = "increment or decrement would overflow"
)

// IsServerError reports whether err is an error reply sent by the server.
func IsServerError(err error) bool {
	var serverErr redis.Error
	return errors.As(err, &serverErr)
}

// IsStaleVersion reports whether the server rejected a write because the
// expected version did not match.
func IsStaleVersion(err error) bool {
	return serverErrorContains(err, staleVersionText)
}

// IsNotInteger reports whether the server rejected an integer operation
// on a value that does not hold an integer.
func IsNotInteger(err error) bool {
	return serverErrorContains(err, notIntegerText)
}

// IsNotFloat reports whether the server rejected a float operation on a
// value that does not hold a float.
func IsNotFloat(err error) bool {
	return serverErrorContains(err, notFloatText)
}

// IsOverflow reports whether an increment was rejected because its result
// would leave the configured bounds or the numeric range.
func IsOverflow(err error) bool {
	return serverErrorContains(err, overflowText)
}

func serverErrorContains(err error, text string) bool {
	var serverErr redis.Error
	if !errors.As(err, &serverErr) {
		return false
	}

	return strings.Contains(string(serverErr), text)
}

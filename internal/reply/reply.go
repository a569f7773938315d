// Package reply converts decoded replies into the shapes returned by the
// command sets. It builds on the redigo reply helpers and accepts both
// string and []byte bulk values.
package reply

import (
	"fmt"

	"github.com/gomodule/redigo/redis"
)

// OK checks for a status reply of "OK".
func OK(reply interface{}, err error) error {
	status, err := redis.String(reply, err)
	if err != nil {
		return err
	}

	if status != "OK" {
		return fmt.Errorf("tairclient: unexpected status reply %q", status)
	}

	return nil
}

// ByteSlices converts an array reply to a slice of values. A nil element
// stays nil in the result, so positions line up with the request.
func ByteSlices(reply interface{}, err error) ([][]byte, error) {
	values, err := redis.Values(reply, err)
	if err != nil {
		return nil, err
	}

	result := make([][]byte, len(values))
	for i, value := range values {
		if value == nil {
			continue
		}

		b, err := redis.Bytes(value, nil)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}

		result[i] = b
	}

	return result, nil
}

// Pairs converts a flat array reply of alternating names and values.
func Pairs(reply interface{}, err error) ([]string, [][]byte, error) {
	values, err := ByteSlices(reply, err)
	if err != nil {
		return nil, nil, err
	}

	if len(values)%2 != 0 {
		return nil, nil, fmt.Errorf("tairclient: expected an even number of elements, got %d", len(values))
	}

	names := make([]string, 0, len(values)/2)
	data := make([][]byte, 0, len(values)/2)

	for i := 0; i < len(values); i += 2 {
		names = append(names, string(values[i]))
		data = append(data, values[i+1])
	}

	return names, data, nil
}

// Tuple converts an array reply holding at least n elements.
func Tuple(reply interface{}, err error, n int) ([]interface{}, error) {
	values, err := redis.Values(reply, err)
	if err != nil {
		return nil, err
	}

	if len(values) < n {
		return nil, fmt.Errorf("tairclient: expected at least %d elements, got %d", n, len(values))
	}

	return values, nil
}

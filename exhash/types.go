package exhash

import (
	"fmt"

	"github.com/gomodule/redigo/redis"

	"github.com/631086083/tairclient/internal/reply"
)

type (
	// VersionedValue is a field value together with its version.
	VersionedValue struct {
		Value   []byte
		Version int64
	}

	// FieldValue is one field of a hash.
	FieldValue struct {
		Field string
		Value []byte
	}

	// ScanResult is one step of a scan. Pass Cursor to the next call; a
	// plain scan is complete when Cursor is "0".
	ScanResult struct {
		Cursor string
		Fields []FieldValue
	}

	// ScanOp positions an enterprise-edition scan relative to a subkey.
	ScanOp string
)

// Enterprise-edition scan operators.
const (
	ScanGreater      ScanOp = ">"
	ScanGreaterEqual ScanOp = ">="
	ScanLess         ScanOp = "<"
	ScanLessEqual    ScanOp = "<="
	ScanEqual        ScanOp = "=="
	ScanFirst        ScanOp = "^"
	ScanLast         ScanOp = "$"
)

// ErrNil is returned when the requested field or key does not exist.
var ErrNil = redis.ErrNil

func versionedValue(r interface{}, err error) (VersionedValue, error) {
	values, err := reply.Tuple(r, err, 2)
	if err != nil {
		return VersionedValue{}, err
	}

	value, err := redis.Bytes(values[0], nil)
	if err != nil {
		return VersionedValue{}, fmt.Errorf("value: %w", err)
	}

	version, err := redis.Int64(values[1], nil)
	if err != nil {
		return VersionedValue{}, fmt.Errorf("version: %w", err)
	}

	return VersionedValue{Value: value, Version: version}, nil
}

func versionedValues(r interface{}, err error) ([]*VersionedValue, error) {
	values, err := redis.Values(r, err)
	if err != nil {
		return nil, err
	}

	result := make([]*VersionedValue, len(values))
	for i, value := range values {
		if value == nil {
			continue
		}

		vv, err := versionedValue(value, nil)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}

		result[i] = &vv
	}

	return result, nil
}

func fieldValues(r interface{}, err error) ([]FieldValue, error) {
	names, values, err := reply.Pairs(r, err)
	if err != nil {
		return nil, err
	}

	fields := make([]FieldValue, len(names))
	for i := range names {
		fields[i] = FieldValue{Field: names[i], Value: values[i]}
	}

	return fields, nil
}

func scanResult(r interface{}, err error) (ScanResult, error) {
	values, err := reply.Tuple(r, err, 2)
	if err != nil {
		return ScanResult{}, err
	}

	cursor, err := redis.String(values[0], nil)
	if err != nil {
		return ScanResult{}, fmt.Errorf("cursor: %w", err)
	}

	fields, err := fieldValues(values[1], nil)
	if err != nil {
		return ScanResult{}, fmt.Errorf("fields: %w", err)
	}

	return ScanResult{Cursor: cursor, Fields: fields}, nil
}

package store

import (
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// Record is one stored item: a mapping of attribute name to value. Values
// may be strings, numbers, booleans or nested maps/slices, anything the
// attributevalue marshaller accepts.
type Record map[string]any

// Key is the minimal attribute mapping identifying one item uniquely
// (partition key, optionally composed with a sort key).
type Key map[string]any

// timestampFormat selects how createdAt/updatedAt are stamped.
type timestampFormat int

const (
	// formatEpochMillis stamps integer epoch milliseconds (create family).
	formatEpochMillis timestampFormat = iota

	// formatISO8601 stamps RFC 3339 strings (append family).
	formatISO8601
)

// enrichOptions parameterizes the single enrichment pipeline shared by the
// create and append families.
type enrichOptions struct {
	generateID     bool
	format         timestampFormat
	skipTimestamps bool
}

// enrich returns a copy of rec with a generated identifier attached when
// requested and missing, and createdAt/updatedAt stamped from the same
// instant. The caller's map is never mutated.
func (s *Store) enrich(rec Record, opts enrichOptions) Record {
	out := make(Record, len(rec)+3)
	for k, v := range rec {
		out[k] = v
	}

	if opts.generateID && !hasValue(out, s.config.IDAttribute) {
		out[s.config.IDAttribute] = uuid.NewString()
	}

	if !opts.skipTimestamps {
		stamp := timestamp(s.config.Clock(), opts.format)
		out[s.config.CreatedAtAttribute] = stamp
		out[s.config.UpdatedAtAttribute] = stamp
	}

	return out
}

// hasValue reports whether rec carries a usable value for attr. Absent, nil
// and empty-string values all count as missing.
func hasValue(rec Record, attr string) bool {
	v, ok := rec[attr]
	if !ok || v == nil {
		return false
	}
	if str, ok := v.(string); ok && str == "" {
		return false
	}
	return true
}

func timestamp(now time.Time, format timestampFormat) any {
	if format == formatISO8601 {
		return now.UTC().Format(time.RFC3339)
	}
	return now.UnixMilli()
}

// marshalRecord converts a Record to a DynamoDB item.
func marshalRecord(rec Record) (map[string]types.AttributeValue, error) {
	item, err := attributevalue.MarshalMap(map[string]any(rec))
	if err != nil {
		return nil, invalidf("marshal record: %v", err)
	}
	return item, nil
}

// marshalKey converts a Key to DynamoDB key attributes.
func marshalKey(key Key) (map[string]types.AttributeValue, error) {
	avs, err := attributevalue.MarshalMap(map[string]any(key))
	if err != nil {
		return nil, invalidf("marshal key: %v", err)
	}
	return avs, nil
}

// unmarshalRecord converts a DynamoDB item back to a Record.
func unmarshalRecord(item map[string]types.AttributeValue) (Record, error) {
	var rec Record
	if err := attributevalue.UnmarshalMap(item, &rec); err != nil {
		return nil, fmt.Errorf("dynamoninja: unmarshal item: %w", err)
	}
	return rec, nil
}

// Package docenc normalizes driver-native column values into the neutral
// JSON-compatible document encoding.
//
// Every cell value must be resolvable to a string, number, boolean, null,
// or a nested mapping/sequence before it enters the document encoding.
// Normalize handles the recognized special cases (timestamps, missing-time
// markers, LOB handles, labeled rows, object identifiers); Marshal applies
// it recursively and fails loudly on anything still unencodable.
package docenc

import (
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"

	"github.com/grupocolav/UkuPacha/internal/errs"
)

// compactDateFormat is the wire form for date/time values carrying no
// subsecond component, matching the upstream document model.
const compactDateFormat = "20060102"

// Normalize maps a driver-native value to a JSON-representable one.
//
// The boolean return reports whether v was one of the recognized special
// cases; when false, v passes through to the encoding's generic behavior
// unchanged. An error is only returned for LOB handles whose content could
// not be read.
//
// Recognized cases:
//   - time.Time with subsecond precision → canonical RFC 3339 string
//   - zero time.Time (the missing-time marker) and nil *time.Time → null
//   - time.Time on a whole second → "YYYYMMDD"; unrenderable years → null
//   - Lob handle → full content as one string (via the registered codec)
//   - []byte (LOB content already materialized by the driver) → string
//   - Series → mapping from label to value
//   - uuid.UUID → canonical string form
func Normalize(v any) (any, bool, error) {
	switch t := v.(type) {
	case time.Time:
		return normalizeTime(t), true, nil

	case *time.Time:
		if t == nil {
			return nil, true, nil
		}
		return normalizeTime(*t), true, nil

	case Lob:
		content, err := lobCodec.Inbound(t)
		if err != nil {
			return nil, true, errs.Wrap(errs.ErrKindEncodingFailed, "failed to read LOB content", err)
		}
		return content, true, nil

	case []byte:
		return string(t), true, nil

	case Series:
		return t.ToDict(), true, nil

	case uuid.UUID:
		return t.String(), true, nil

	default:
		return v, false, nil
	}
}

// normalizeTime renders a time value for the document encoding.
// Formatting failures are swallowed: anything unrenderable becomes nil,
// never an error.
func normalizeTime(t time.Time) any {
	if t.IsZero() {
		// Missing-time marker.
		return nil
	}
	if t.Year() < 0 || t.Year() > 9999 {
		// Cannot be rendered as a four-digit year.
		return nil
	}
	if t.Nanosecond() != 0 {
		// Subsecond precision: keep the full canonical form.
		return t.Format(time.RFC3339Nano)
	}
	return t.Format(compactDateFormat)
}

// Marshal encodes v into the neutral document encoding, applying Normalize
// to every value it can reach through mappings and sequences. Values that
// are still unencodable after normalization fail with ErrKindEncodingFailed.
func Marshal(v any) ([]byte, error) {
	norm, err := normalizeTree(v)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(norm)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindEncodingFailed,
			fmt.Sprintf("value of type %T is not representable in the document encoding", v), err)
	}
	return data, nil
}

// Unmarshal decodes document-encoded data produced by Marshal.
func Unmarshal(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return errs.Wrap(errs.ErrKindEncodingFailed, "failed to decode document", err)
	}
	return nil
}

// normalizeTree applies Normalize depth-first through mappings and sequences.
func normalizeTree(v any) (any, error) {
	norm, special, err := Normalize(v)
	if err != nil {
		return nil, err
	}
	if special {
		// A special case may expand into a container holding further
		// special values (a Series row with timestamp cells).
		if isContainer(norm) {
			return normalizeTree(norm)
		}
		return norm, nil
	}

	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			nv, err := normalizeTree(val)
			if err != nil {
				return nil, err
			}
			out[k] = nv
		}
		return out, nil

	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			nv, err := normalizeTree(val)
			if err != nil {
				return nil, err
			}
			out[i] = nv
		}
		return out, nil
	}

	// Generic mappings and sequences of concrete element types.
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return v, nil
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			nv, err := normalizeTree(iter.Value().Interface())
			if err != nil {
				return nil, err
			}
			out[iter.Key().String()] = nv
		}
		return out, nil

	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			nv, err := normalizeTree(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			out[i] = nv
		}
		return out, nil
	}

	return v, nil
}

func isContainer(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return true
	}
	return false
}

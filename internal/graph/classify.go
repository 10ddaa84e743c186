// Package graph fills a nested document model from flat per-table row data:
// it classifies row values, places each table's rows into the slot the model
// reserves for it, and rewrites model-level fields after assembly.
package graph

import "reflect"

// Kind partitions values into the three shapes the slot filler distinguishes.
// Every value belongs to exactly one Kind.
type Kind int

const (
	// KindMapping covers map values of any key/element type.
	KindMapping Kind = iota

	// KindSequence covers slices and arrays.
	KindSequence

	// KindScalar covers everything else: plain scalars and record types
	// that expose their own mapping conversion (e.g. a labeled row).
	KindScalar
)

// Classify reports which of the three shapes v has.
func Classify(v any) Kind {
	if v == nil {
		return KindScalar
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Map:
		return KindMapping
	case reflect.Slice, reflect.Array:
		return KindSequence
	default:
		return KindScalar
	}
}

// IsMapping reports whether v is a mapping.
func IsMapping(v any) bool { return Classify(v) == KindMapping }

// IsSequence reports whether v is a slice or array.
func IsSequence(v any) bool { return Classify(v) == KindSequence }

// IsScalar reports whether v is neither a mapping nor a sequence.
func IsScalar(v any) bool { return Classify(v) == KindScalar }

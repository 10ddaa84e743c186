package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grupocolav/UkuPacha/internal/docenc"
)

func TestClassify_Partition(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want Kind
	}{
		{"string map", map[string]any{"a": 1}, KindMapping},
		{"typed map", map[string]int{"a": 1}, KindMapping},
		{"slice", []any{1, 2}, KindSequence},
		{"typed slice", []string{"a"}, KindSequence},
		{"array", [2]int{1, 2}, KindSequence},
		{"string", "scalar", KindScalar},
		{"int", 42, KindScalar},
		{"bool", true, KindScalar},
		{"nil", nil, KindScalar},
		{"labeled row", docenc.NewSeries([]string{"A"}, []any{1}), KindScalar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.in))

			// Exactly one predicate holds for every input.
			count := 0
			for _, p := range []bool{IsMapping(tt.in), IsSequence(tt.in), IsScalar(tt.in)} {
				if p {
					count++
				}
			}
			assert.Equal(t, 1, count, "predicates must partition the input")
		})
	}
}

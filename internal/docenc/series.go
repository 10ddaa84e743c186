package docenc

// Series is a single row viewed as an ordered sequence of labeled values —
// the shape a tabular result hands over before it becomes a document
// fragment. Labels are unique within a Series.
type Series struct {
	Labels []string
	Values []any
}

// NewSeries pairs labels with values. Panics if the lengths differ, since a
// row and its column list always come from the same result set.
func NewSeries(labels []string, values []any) Series {
	if len(labels) != len(values) {
		panic("docenc: label/value length mismatch")
	}
	return Series{Labels: labels, Values: values}
}

// ToDict converts the series into a mapping from label to value.
// With unique labels this is a bijection: every label becomes exactly one
// key and no values are lost.
func (s Series) ToDict() map[string]any {
	m := make(map[string]any, len(s.Labels))
	for i, label := range s.Labels {
		m[label] = s.Values[i]
	}
	return m
}

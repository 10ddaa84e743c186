package graph

import "reflect"

// dbField is the model-level field naming the database a document fragment
// came from; placeholders like "__CVLAC__" are swapped for the resolved
// name after the document is otherwise fully assembled.
const dbField = "DB"

// ReplaceField returns a copy of doc in which every mapping entry — at any
// depth — whose key equals field and whose value equals old is rewritten to
// new. All other values, including equal-looking values under other keys,
// are left untouched. If no entry matches, the result is structurally
// identical to doc.
//
// The walk is structural, so an old value appearing as a substring of some
// other field's value can never be clobbered.
func ReplaceField(doc any, field string, old, new any) any {
	switch t := doc.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, v := range t {
			if k == field && reflect.DeepEqual(v, old) {
				out[k] = new
				continue
			}
			out[k] = ReplaceField(v, field, old, new)
		}
		return out

	case []any:
		out := make([]any, len(t))
		for i, v := range t {
			out[i] = ReplaceField(v, field, old, new)
		}
		return out

	default:
		return doc
	}
}

// ReplaceDB rewrites the model's "DB" field from old to new across the
// whole document. Example: ReplaceDB(graph, "__CVLAC__", "UDEA_CV").
func ReplaceDB(doc any, old, new string) any {
	return ReplaceField(doc, dbField, old, new)
}

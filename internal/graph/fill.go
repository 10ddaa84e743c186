package graph

import (
	"fmt"
	"reflect"

	"github.com/grupocolav/UkuPacha/internal/errs"
)

// FilterFunc transforms a row before it is committed into a slot.
// It is caller-supplied and treated as opaque: whatever it returns becomes
// the working row.
type FilterFunc func(table string, row any) any

// Dicter is the record-to-mapping conversion a non-mapping row must expose.
// docenc.Series satisfies it.
type Dicter interface {
	ToDict() map[string]any
}

// Filler places per-table row data into document slots.
//
// Unknown tables are dropped leniently — the fill is a no-op — but every
// drop is counted and named so callers can surface the mismatch instead of
// silently losing data.
type Filler struct {
	dropped []string
}

// NewFiller returns a Filler with no drops recorded.
func NewFiller() *Filler {
	return &Filler{}
}

// Fill returns the row as the slot contents for table.
//
// If table is not a known participant in fields, Fill records the drop and
// returns an empty mapping. Otherwise the filter (when non-nil) is applied
// first; a mapping result is used as-is, and any other row must expose a
// Dicter conversion. One call fills exactly one table's slot — composing
// multiple tables into a full document is the caller's job (see Builder).
func (f *Filler) Fill(fields Fields, table string, row any, filter FilterFunc) (map[string]any, error) {
	if !fields.Has(table) {
		f.dropped = append(f.dropped, table)
		return map[string]any{}, nil
	}

	if filter != nil {
		row = filter(table, row)
	}

	return rowToMapping(row)
}

// FillAliased is Fill with the shape's column→alias projection applied:
// only columns listed in the shape's Fields map survive, renamed to their
// aliases. When removeNulls is set, columns whose value is nil are skipped.
// A shape without a Fields map falls back to the verbatim Fill behavior.
func (f *Filler) FillAliased(fields Fields, table string, row any, removeNulls bool, filter FilterFunc) (map[string]any, error) {
	shape, ok := fields[table]
	if !ok {
		f.dropped = append(f.dropped, table)
		return map[string]any{}, nil
	}

	if filter != nil {
		row = filter(table, row)
	}

	m, err := rowToMapping(row)
	if err != nil {
		return nil, err
	}
	if len(shape.Fields) == 0 {
		return m, nil
	}

	out := make(map[string]any, len(shape.Fields))
	for column, alias := range shape.Fields {
		v := m[column]
		if removeNulls && v == nil {
			continue
		}
		out[alias] = v
	}
	return out, nil
}

// Dropped returns the table names rejected so far, in fill order.
// Repeated drops of the same table appear repeatedly.
func (f *Filler) Dropped() []string {
	return f.dropped
}

// rowToMapping resolves a working row into the mapping that becomes the
// slot's contents.
func rowToMapping(row any) (map[string]any, error) {
	if IsMapping(row) {
		if m, ok := row.(map[string]any); ok {
			return m, nil
		}
		// Mapping of a concrete value type — rebuild with any values.
		rv := reflect.ValueOf(row)
		if rv.Type().Key().Kind() != reflect.String {
			return nil, errs.New(errs.ErrKindInvalidInput,
				fmt.Sprintf("row mapping must have string keys, got %T", row))
		}
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = iter.Value().Interface()
		}
		return m, nil
	}

	if d, ok := row.(Dicter); ok {
		return d.ToDict(), nil
	}

	return nil, errs.New(errs.ErrKindInvalidInput,
		fmt.Sprintf("row of type %T is neither a mapping nor convertible to one", row))
}

// Builder accumulates per-table slots into one document instance.
// It is the repeated-invocation composition implied by Fill's contract.
type Builder struct {
	fields      Fields
	filler      *Filler
	doc         map[string]any
	overwritten []string
}

// NewBuilder starts an empty document governed by fields.
func NewBuilder(fields Fields) *Builder {
	return &Builder{
		fields: fields,
		filler: NewFiller(),
		doc:    make(map[string]any),
	}
}

// Place fills table's slot and commits it into the document under the
// shape's slot name. Filling the same slot twice overwrites the previous
// contents (last write wins) and records the collision — retrievable via
// Overwritten — since the downstream document model does not merge slots.
func (b *Builder) Place(table string, row any, filter FilterFunc) error {
	if !b.fields.Has(table) {
		// Delegate so the drop is recorded exactly once.
		_, err := b.filler.Fill(b.fields, table, row, filter)
		return err
	}

	slot, err := b.filler.Fill(b.fields, table, row, filter)
	if err != nil {
		return err
	}

	name := b.fields.SlotName(table)
	if _, exists := b.doc[name]; exists {
		b.overwritten = append(b.overwritten, name)
	}
	b.doc[name] = slot
	return nil
}

// Document returns the assembled document.
func (b *Builder) Document() map[string]any {
	return b.doc
}

// Dropped returns the table names dropped during placement.
func (b *Builder) Dropped() []string {
	return b.filler.Dropped()
}

// Overwritten returns the slot names that were filled more than once.
func (b *Builder) Overwritten() []string {
	return b.overwritten
}

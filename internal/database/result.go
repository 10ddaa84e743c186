package database

import "github.com/grupocolav/UkuPacha/internal/errs"

// Result is a fully materialized tabular query result: an ordered sequence
// of rows, each a mapping from column name to the Go-native value the driver
// produced. Column names are unique within a result.
//
// Results are transient — produced by one query, consumed once by the
// normalization / slot-filling stage, then discarded.
type Result struct {
	Columns []string
	Rows    []map[string]any
}

// Len returns the number of rows.
func (r *Result) Len() int {
	return len(r.Rows)
}

// Column returns all values of one named column, in row order.
// Returns nil when the column does not exist in the result.
func (r *Result) Column(name string) []any {
	found := false
	for _, c := range r.Columns {
		if c == name {
			found = true
			break
		}
	}
	if !found {
		return nil
	}

	vals := make([]any, len(r.Rows))
	for i, row := range r.Rows {
		vals[i] = row[name]
	}
	return vals
}

// ScanRows reads all rows from the result set and materializes them into a
// *Result.
//
// The Rows slice is always non-nil (empty on zero rows). ScanRows always
// closes the Rows — callers do not need to call Close().
func ScanRows(rows Rows) (*Result, error) {
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindQueryFailed, "failed to read column names", err)
	}

	result := &Result{
		Columns: columns,
		Rows:    make([]map[string]any, 0),
	}

	for rows.Next() {
		// Allocate scan targets as *any so the driver can write any type.
		dest := make([]any, len(columns))
		destPtrs := make([]any, len(columns))
		for i := range dest {
			destPtrs[i] = &dest[i]
		}

		if err := rows.Scan(destPtrs...); err != nil {
			return nil, errs.Wrap(errs.ErrKindQueryFailed, "failed to scan row", err)
		}

		row := make(map[string]any, len(columns))
		for i, col := range columns {
			row[col] = dest[i]
		}
		result.Rows = append(result.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(errs.ErrKindQueryFailed, "error during row iteration", err)
	}

	return result, nil
}

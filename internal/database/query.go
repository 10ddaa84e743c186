package database

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/grupocolav/UkuPacha/internal/errs"
)

// Dialect controls which SQL placeholder style the query builder emits.
type Dialect int

const (
	// DialectPostgres uses $1, $2, … placeholders.
	DialectPostgres Dialect = iota

	// DialectMySQL uses ? placeholders.
	DialectMySQL
)

// validOps is the allowlist of comparison operators for WHERE clauses.
// Any operator not in this list is rejected to prevent SQL injection
// through the operator position (which cannot be parameterized).
var validOps = map[string]bool{
	"=":     true,
	"!=":    true,
	"<>":    true,
	"<":     true,
	">":     true,
	"<=":    true,
	">=":    true,
	"LIKE":  true,
	"ILIKE": true,
}

// identPattern is the allowlist for table, owner, and column names.
// Identifiers cannot be bound as query parameters, so anything that will be
// spliced into the SQL text must match this pattern. $ and # appear in
// legacy schema names (e.g. SciELO / scienti exports), so they are allowed
// in non-leading positions.
var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$#]*$`)

// ValidIdent reports whether name is safe to use as a SQL identifier.
func ValidIdent(name string) bool {
	return identPattern.MatchString(name)
}

// SelectBuilder constructs a parameterized SELECT query using a fluent API.
// Values are never interpolated into the SQL string — always passed as args.
// Identifiers are validated against a strict allowlist at Build time.
//
// Usage (Postgres):
//
//	sql, args, err := Select("EN_PRODUCTO", DialectPostgres).
//	    Owner("UDEA_CV").
//	    Where("COD_RH", "=", "0000172057").
//	    OrderBy("COD_PRODUCTO", Asc).
//	    Build()
type SelectBuilder struct {
	owner   string
	table   string
	dialect Dialect
	columns []string
	where   []whereClause
	orderBy []orderClause
	limit   *int
}

// SortDirection controls the ORDER BY direction.
type SortDirection bool

const (
	Asc  SortDirection = false
	Desc SortDirection = true
)

type whereClause struct {
	column string
	op     string
	value  any
}

type orderClause struct {
	column string
	dir    SortDirection
}

// Select starts a new SelectBuilder for the given table and dialect.
func Select(table string, d Dialect) *SelectBuilder {
	return &SelectBuilder{table: table, dialect: d}
}

// Owner qualifies the table with a schema / owner name.
func (b *SelectBuilder) Owner(owner string) *SelectBuilder {
	b.owner = owner
	return b
}

// Columns restricts the SELECT to the specified columns.
// If not called, SELECT * is used.
func (b *SelectBuilder) Columns(cols ...string) *SelectBuilder {
	b.columns = cols
	return b
}

// Where adds a WHERE condition. op must be one of the allowed comparison
// operators (=, !=, <, >, <=, >=, LIKE, ILIKE).
// Multiple calls are combined with AND.
func (b *SelectBuilder) Where(column, op string, value any) *SelectBuilder {
	b.where = append(b.where, whereClause{column, op, value})
	return b
}

// OrderBy appends an ORDER BY clause for the given column and direction.
func (b *SelectBuilder) OrderBy(column string, dir SortDirection) *SelectBuilder {
	b.orderBy = append(b.orderBy, orderClause{column, dir})
	return b
}

// Limit sets the maximum number of rows to return.
func (b *SelectBuilder) Limit(n int) *SelectBuilder {
	b.limit = &n
	return b
}

// Build produces the final SQL string and argument slice.
// Returns an error if any identifier fails validation or any WHERE operator
// is not in the allowlist.
func (b *SelectBuilder) Build() (string, []any, error) {
	if !ValidIdent(b.table) {
		return "", nil, errs.New(errs.ErrKindInvalidInput,
			fmt.Sprintf("invalid table name: %q", b.table))
	}
	if b.owner != "" && !ValidIdent(b.owner) {
		return "", nil, errs.New(errs.ErrKindInvalidInput,
			fmt.Sprintf("invalid owner name: %q", b.owner))
	}

	// --- column list ---
	cols := "*"
	if len(b.columns) > 0 {
		quoted := make([]string, len(b.columns))
		for i, c := range b.columns {
			if !ValidIdent(c) {
				return "", nil, errs.New(errs.ErrKindInvalidInput,
					fmt.Sprintf("invalid column name: %q", c))
			}
			quoted[i] = b.quoteIdent(c)
		}
		cols = strings.Join(quoted, ", ")
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(cols)
	sb.WriteString(" FROM ")
	if b.owner != "" {
		sb.WriteString(b.quoteIdent(b.owner))
		sb.WriteString(".")
	}
	sb.WriteString(b.quoteIdent(b.table))

	var args []any
	argIdx := 1

	// --- WHERE ---
	if len(b.where) > 0 {
		parts := make([]string, 0, len(b.where))
		for _, w := range b.where {
			op := strings.ToUpper(w.op)
			if !validOps[op] {
				return "", nil, errs.New(errs.ErrKindInvalidInput,
					fmt.Sprintf("unsupported WHERE operator: %q", w.op))
			}
			if !ValidIdent(w.column) {
				return "", nil, errs.New(errs.ErrKindInvalidInput,
					fmt.Sprintf("invalid column name: %q", w.column))
			}
			parts = append(parts, fmt.Sprintf("%s %s %s", b.quoteIdent(w.column), op, b.placeholder(argIdx)))
			args = append(args, w.value)
			argIdx++
		}
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(parts, " AND "))
	}

	// --- ORDER BY ---
	if len(b.orderBy) > 0 {
		parts := make([]string, len(b.orderBy))
		for i, o := range b.orderBy {
			if !ValidIdent(o.column) {
				return "", nil, errs.New(errs.ErrKindInvalidInput,
					fmt.Sprintf("invalid column name: %q", o.column))
			}
			dir := "ASC"
			if o.dir == Desc {
				dir = "DESC"
			}
			parts[i] = fmt.Sprintf("%s %s", b.quoteIdent(o.column), dir)
		}
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(parts, ", "))
	}

	// --- LIMIT ---
	if b.limit != nil {
		sb.WriteString(fmt.Sprintf(" LIMIT %s", b.placeholder(argIdx)))
		args = append(args, *b.limit)
	}

	return sb.String(), args, nil
}

// placeholder returns the correct parameter placeholder for the dialect.
// Postgres: $1, $2, …   MySQL: ? (index is ignored)
func (b *SelectBuilder) placeholder(idx int) string {
	if b.dialect == DialectMySQL {
		return "?"
	}
	return fmt.Sprintf("$%d", idx)
}

// quoteIdent returns the identifier quoted for the builder's dialect.
// MySQL's default sql_mode does not include ANSI_QUOTES, so it gets
// backticks; Postgres gets ANSI double quotes. The embedded quote
// character is doubled in both styles.
func (b *SelectBuilder) quoteIdent(name string) string {
	if b.dialect == DialectMySQL {
		return "`" + strings.ReplaceAll(name, "`", "``") + "`"
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

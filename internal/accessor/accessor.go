// Package accessor provides ad-hoc read access to a relational source: it
// executes queries into tabular results and composes the fixed query shapes
// document extraction needs (table lists, key metadata, per-table rows).
//
// All identifiers are validated and all values parameter-bound before they
// reach the SQL text. Driver failures come back as typed errors — the
// caller decides whether to exit, retry, or degrade.
package accessor

import (
	"context"
	"sort"
	"time"

	"github.com/grupocolav/UkuPacha/internal/database"
	"github.com/grupocolav/UkuPacha/internal/errs"
	"github.com/grupocolav/UkuPacha/internal/logger"
)

// KeyType selects which constraint class ListKeys returns.
type KeyType string

const (
	KeyPrimary KeyType = "primary"
	KeyForeign KeyType = "foreign"
)

// constraintType maps a KeyType to its information_schema constraint name.
func (k KeyType) constraintType() (string, bool) {
	switch k {
	case KeyPrimary:
		return "PRIMARY KEY", true
	case KeyForeign:
		return "FOREIGN KEY", true
	}
	return "", false
}

// Config tunes an Accessor.
type Config struct {
	// Dialect controls placeholder style and must match the DB driver.
	Dialect database.Dialect

	// RetryAttempts is the number of extra attempts made when a query fails
	// with a connection-kind error. The default 0 preserves the no-retry
	// policy: the first failure is returned to the caller.
	RetryAttempts int

	// QueryTimeout is the deadline applied to each query attempt.
	// Zero means no deadline beyond the caller's context.
	QueryTimeout time.Duration

	// Logger receives per-query debug output. Nil means silent.
	Logger *logger.Logger
}

// Accessor executes queries against one relational source.
// It is as safe for concurrent use as the DB it wraps.
type Accessor struct {
	db      database.DB
	dialect database.Dialect
	retries int
	timeout time.Duration
	log     *logger.Logger
}

// New wraps db. A nil cfg uses the Postgres dialect, no retries, and no
// logging.
func New(db database.DB, cfg *Config) *Accessor {
	if cfg == nil {
		cfg = &Config{}
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Accessor{
		db:      db,
		dialect: cfg.Dialect,
		retries: cfg.RetryAttempts,
		timeout: cfg.QueryTimeout,
		log:     log,
	}
}

// queryContext derives the per-query context. With no configured timeout
// the caller's context is used as-is.
func (a *Accessor) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.timeout > 0 {
		return context.WithTimeout(ctx, a.timeout)
	}
	return ctx, func() {}
}

// Execute runs query with the given bound arguments and materializes the
// result. Connection-kind failures are retried up to the configured number
// of extra attempts; every other failure returns immediately.
func (a *Accessor) Execute(ctx context.Context, query string, args ...any) (*database.Result, error) {
	var lastErr error

	for attempt := 0; attempt <= a.retries; attempt++ {
		if attempt > 0 {
			a.log.WarnWith("retrying query after connection failure", map[string]any{
				"attempt": attempt,
			})
		}

		result, err := a.runQuery(ctx, query, args...)
		if err != nil {
			lastErr = err
			if errs.IsConnectionFailed(err) && attempt < a.retries {
				continue
			}
			return nil, err
		}

		a.log.With().Str("query", query).Int("rows", result.Len()).Logger().
			Debug("query executed")
		return result, nil
	}

	return nil, lastErr
}

// runQuery performs one query attempt under the configured deadline.
func (a *Accessor) runQuery(ctx context.Context, query string, args ...any) (*database.Result, error) {
	ctx, cancel := a.queryContext(ctx)
	defer cancel()

	rows, err := a.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return database.ScanRows(rows)
}

// listKeysSQL joins constraint metadata with constraint-column metadata,
// filtered by table and constraint type, ordered by table then column
// position. Table name and constraint type are bound parameters.
const (
	listKeysSQLPostgres = `
		SELECT kcu.table_name,
		       kcu.column_name,
		       kcu.ordinal_position AS position,
		       tc.constraint_name,
		       tc.table_schema AS owner
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
		  ON tc.constraint_name = kcu.constraint_name
		 AND tc.table_schema    = kcu.table_schema
		WHERE kcu.table_name      = $1
		  AND tc.constraint_type  = $2
		ORDER BY kcu.table_name, kcu.ordinal_position`

	listKeysSQLMySQL = `
		SELECT kcu.table_name,
		       kcu.column_name,
		       kcu.ordinal_position AS position,
		       tc.constraint_name,
		       tc.table_schema AS owner
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
		  ON tc.constraint_name = kcu.constraint_name
		 AND tc.table_schema    = kcu.table_schema
		WHERE kcu.table_name      = ?
		  AND tc.constraint_type  = ?
		ORDER BY kcu.table_name, kcu.ordinal_position`
)

// ListKeys returns the key columns of table for the requested key type
// (primary or foreign), ordered by table then column position.
func (a *Accessor) ListKeys(ctx context.Context, table string, keyType KeyType) (*database.Result, error) {
	constraint, ok := keyType.constraintType()
	if !ok {
		return nil, errs.New(errs.ErrKindInvalidInput, "key type must be primary or foreign")
	}
	if !database.ValidIdent(table) {
		return nil, errs.New(errs.ErrKindInvalidInput, "invalid table name")
	}

	q := listKeysSQLPostgres
	if a.dialect == database.DialectMySQL {
		q = listKeysSQLMySQL
	}
	return a.Execute(ctx, q, table, constraint)
}

const (
	listTablesSQLPostgres = `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = $1
		  AND table_type   = 'BASE TABLE'
		ORDER BY table_name`

	listTablesSQLMySQL = `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = ?
		  AND table_type   = 'BASE TABLE'
		ORDER BY table_name`
)

// ListTables returns the names of the tables owned by the given schema.
func (a *Accessor) ListTables(ctx context.Context, owner string) ([]string, error) {
	if !database.ValidIdent(owner) {
		return nil, errs.New(errs.ErrKindInvalidInput, "invalid owner name")
	}

	q := listTablesSQLPostgres
	if a.dialect == database.DialectMySQL {
		q = listTablesSQLMySQL
	}

	qctx, cancel := a.queryContext(ctx)
	defer cancel()

	rows, err := a.db.Query(qctx, q, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errs.Wrap(errs.ErrKindQueryFailed, "failed to scan table name", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(errs.ErrKindQueryFailed, "error iterating tables", err)
	}
	return tables, nil
}

// FetchTableRows selects all rows and columns of one table.
func (a *Accessor) FetchTableRows(ctx context.Context, owner, table string) (*database.Result, error) {
	sql, args, err := database.Select(table, a.dialect).Owner(owner).Build()
	if err != nil {
		return nil, err
	}
	return a.Execute(ctx, sql, args...)
}

// FetchAllTables returns every table owned by the schema, mapped to its
// full contents. Unbounded by design: no pagination, no row cap — the
// caller owns the memory tradeoff.
func (a *Accessor) FetchAllTables(ctx context.Context, owner string) (map[string]*database.Result, error) {
	tables, err := a.ListTables(ctx, owner)
	if err != nil {
		return nil, err
	}

	data := make(map[string]*database.Result, len(tables))
	for _, table := range tables {
		result, err := a.FetchTableRows(ctx, owner, table)
		if err != nil {
			return nil, err
		}
		data[table] = result
	}
	return data, nil
}

// FetchRowByKeys selects the rows of table matching every key/value pair
// (conjunctive equality). Keys are applied in sorted column order so the
// generated SQL is deterministic.
func (a *Accessor) FetchRowByKeys(ctx context.Context, owner string, keys map[string]any, table string) (*database.Result, error) {
	if len(keys) == 0 {
		return nil, errs.New(errs.ErrKindInvalidInput, "at least one key is required")
	}

	columns := make([]string, 0, len(keys))
	for col := range keys {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	b := database.Select(table, a.dialect).Owner(owner)
	for _, col := range columns {
		b.Where(col, "=", keys[col])
	}

	sql, args, err := b.Build()
	if err != nil {
		return nil, err
	}
	return a.Execute(ctx, sql, args...)
}

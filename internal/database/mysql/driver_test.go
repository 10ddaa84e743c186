package mysql

import (
	"context"
	"database/sql"
	"errors"
	"net"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	gomysql "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grupocolav/UkuPacha/internal/database"
	"github.com/grupocolav/UkuPacha/internal/errs"
)

func newMockDriver(t *testing.T) (*Driver, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewFromDB(db), mock
}

func TestDriver_Query(t *testing.T) {
	d, mock := newMockDriver(t)

	rows := sqlmock.NewRows([]string{"ID", "TXT_NME_PROD"}).
		AddRow(int64(1), "articulo").
		AddRow(int64(2), "ponencia")
	mock.ExpectQuery("SELECT \\* FROM `EN_PRODUCTO`").WillReturnRows(rows)

	got, err := d.Query(context.Background(), "SELECT * FROM `EN_PRODUCTO`")
	require.NoError(t, err)

	result, err := database.ScanRows(got)
	require.NoError(t, err)

	assert.Equal(t, []string{"ID", "TXT_NME_PROD"}, result.Columns)
	assert.Equal(t, 2, result.Len())
	assert.Equal(t, "articulo", result.Rows[0]["TXT_NME_PROD"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDriver_QueryError(t *testing.T) {
	d, mock := newMockDriver(t)

	mock.ExpectQuery("SELECT").WillReturnError(&gomysql.MySQLError{
		Number:  errNoSuchTable,
		Message: "Table 'UDEA_CV.MISSING' doesn't exist",
	})

	_, err := d.Query(context.Background(), "SELECT * FROM MISSING")
	require.Error(t, err)
	assert.True(t, errs.IsQueryFailed(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		pred func(error) bool
	}{
		{
			name: "access denied",
			err:  &gomysql.MySQLError{Number: errAccessDenied, Message: "denied"},
			pred: errs.IsPermissionDenied,
		},
		{
			name: "unknown database",
			err:  &gomysql.MySQLError{Number: errUnknownDatabase, Message: "unknown db"},
			pred: errs.IsConnectionFailed,
		},
		{
			name: "bad field",
			err:  &gomysql.MySQLError{Number: errBadFieldError, Message: "bad field"},
			pred: errs.IsQueryFailed,
		},
		{
			name: "no rows",
			err:  sql.ErrNoRows,
			pred: errs.IsNotFound,
		},
		{
			name: "deadline",
			err:  context.DeadlineExceeded,
			pred: errs.IsTimeout,
		},
		{
			name: "network error",
			err:  &net.OpError{Op: "dial", Err: errors.New("connection refused")},
			pred: errs.IsConnectionFailed,
		},
		{
			name: "network timeout",
			err:  netTimeoutError{},
			pred: errs.IsTimeout,
		},
		{
			name: "invalid conn",
			err:  gomysql.ErrInvalidConn,
			pred: errs.IsConnectionFailed,
		},
		{
			name: "unrecognized error",
			err:  errors.New("malformed packet"),
			pred: errs.IsQueryFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := mapError(tt.err, "op failed")
			assert.True(t, tt.pred(mapped))
		})
	}

	assert.Nil(t, mapError(nil, "no error"))
}

type netTimeoutError struct{}

func (netTimeoutError) Error() string   { return "i/o timeout" }
func (netTimeoutError) Timeout() bool   { return true }
func (netTimeoutError) Temporary() bool { return true }

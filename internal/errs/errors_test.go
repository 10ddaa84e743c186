package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPredicates(t *testing.T) {
	tests := []struct {
		name string
		err  error
		pred func(error) bool
		want bool
	}{
		{"not found", New(ErrKindNotFound, "no rows"), IsNotFound, true},
		{"timeout", Wrap(ErrKindTimeout, "deadline", errors.New("ctx")), IsTimeout, true},
		{"connection", New(ErrKindConnectionFailed, "refused"), IsConnectionFailed, true},
		{"query", New(ErrKindQueryFailed, "syntax"), IsQueryFailed, true},
		{"invalid input", New(ErrKindInvalidInput, "bad table"), IsInvalidInput, true},
		{"permission", New(ErrKindPermissionDenied, "denied"), IsPermissionDenied, true},
		{"encoding", New(ErrKindEncodingFailed, "chan"), IsEncodingFailed, true},
		{"kind mismatch", New(ErrKindNotFound, "no rows"), IsTimeout, false},
		{"plain error", errors.New("plain"), IsNotFound, false},
		{"nil", nil, IsNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pred(tt.err))
		})
	}
}

func TestPredicates_WrappedChain(t *testing.T) {
	inner := Wrap(ErrKindConnectionFailed, "dial failed", errors.New("refused"))
	outer := fmt.Errorf("executing query: %w", inner)

	assert.True(t, IsConnectionFailed(outer))
	assert.False(t, IsQueryFailed(outer))
}

func TestError_Message(t *testing.T) {
	withCause := Wrap(ErrKindQueryFailed, "query failed", errors.New("syntax error"))
	assert.Equal(t, "[query_failed] query failed: syntax error", withCause.Error())

	noCause := New(ErrKindNotFound, "record not found")
	assert.Equal(t, "[not_found] record not found", noCause.Error())
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(ErrKindUnknown, "wrapped", cause)
	assert.True(t, errors.Is(err, cause))
}

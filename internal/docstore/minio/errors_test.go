package minio

import (
	"context"
	"errors"
	"net/http"
	"testing"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"

	"github.com/grupocolav/UkuPacha/internal/errs"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		pred func(error) bool
	}{
		{
			name: "status not found",
			err:  miniogo.ErrorResponse{StatusCode: http.StatusNotFound, Code: "NoSuchKey"},
			pred: errs.IsNotFound,
		},
		{
			name: "status forbidden",
			err:  miniogo.ErrorResponse{StatusCode: http.StatusForbidden, Code: "AccessDenied"},
			pred: errs.IsPermissionDenied,
		},
		{
			name: "code no such bucket",
			err:  miniogo.ErrorResponse{Code: "NoSuchBucket"},
			pred: errs.IsNotFound,
		},
		{
			name: "code slow down",
			err:  miniogo.ErrorResponse{Code: "SlowDown"},
			pred: errs.IsTimeout,
		},
		{
			name: "context deadline",
			err:  context.DeadlineExceeded,
			pred: errs.IsTimeout,
		},
		{
			name: "plain network error",
			err:  errors.New("connection reset"),
			pred: errs.IsConnectionFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.pred(mapError(tt.err, "op failed")))
		})
	}

	assert.Nil(t, mapError(nil, "no error"))
}

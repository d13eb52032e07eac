package http

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"net/http"
	"testing"

	"homeoffice/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"required", errs.NewValueIsRequiredError("id"), http.StatusBadRequest},
		{"invalid", errs.NewValueIsInvalidError("locationId"), http.StatusBadRequest},
		{"joined validation", errors.Join(errs.NewValueIsRequiredError("start"), errs.NewValueIsRequiredError("end")), http.StatusBadRequest},
		{"not found", errs.NewObjectNotFoundError("order", "o-1"), http.StatusNotFound},
		{"already exists", errs.NewObjectAlreadyExistsError("order", "o-1"), http.StatusConflict},
		{"bad connection", fmt.Errorf("query: %w", driver.ErrBadConn), http.StatusServiceUnavailable},
		{"deadline", context.DeadlineExceeded, http.StatusServiceUnavailable},
		{"network", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusCode(tt.err))
		})
	}
}

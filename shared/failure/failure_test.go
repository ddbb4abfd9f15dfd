package failure_test

import (
	"errors"
	"fmt"
	"hotel/shared/failure"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{
			name:     "bad request from error",
			err:      failure.BadRequest(errors.New("failed to decode request body: EOF")),
			wantCode: http.StatusBadRequest,
			wantMsg:  "failed to decode request body: EOF",
		},
		{
			name:     "bad request from string",
			err:      failure.BadRequestFromString("check_out_date must be after check_in_date"),
			wantCode: http.StatusBadRequest,
			wantMsg:  "check_out_date must be after check_in_date",
		},
		{
			name:     "unauthorized",
			err:      failure.Unauthorized("Invalid email or password"),
			wantCode: http.StatusUnauthorized,
			wantMsg:  "Invalid email or password",
		},
		{
			name:     "not found",
			err:      failure.NotFound("Room with id=4 not found"),
			wantCode: http.StatusNotFound,
			wantMsg:  "Room with id=4 not found",
		},
		{
			name:     "conflict",
			err:      failure.Conflict("Room number 101 already exists"),
			wantCode: http.StatusConflict,
			wantMsg:  "Room number 101 already exists",
		},
		{
			name:     "invalid state",
			err:      failure.InvalidState("Room not available for the selected dates"),
			wantCode: http.StatusUnprocessableEntity,
			wantMsg:  "Room not available for the selected dates",
		},
		{
			name:     "forbidden",
			err:      failure.ForbiddenError,
			wantCode: http.StatusForbidden,
			wantMsg:  "You don't have the required permissions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.err)
			assert.Equal(t, tt.wantMsg, tt.err.Error())
			assert.Equal(t, tt.wantCode, failure.GetCode(tt.err))
		})
	}
}

func TestBadRequest_NilStaysNil(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "plain error is internal",
			err:  errors.New("connection refused"),
			want: http.StatusInternalServerError,
		},
		{
			name: "wrapped failure keeps its code",
			err:  fmt.Errorf("failed to create booking: %w", failure.InvalidState("Room not available for the selected dates")),
			want: http.StatusUnprocessableEntity,
		},
		{
			name: "doubly wrapped failure keeps its code",
			err:  fmt.Errorf("handler: %w", fmt.Errorf("service: %w", failure.NotFound("Booking not found"))),
			want: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, failure.GetCode(tt.err))
		})
	}
}

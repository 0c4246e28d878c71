package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", NewValidation("bad", nil), http.StatusBadRequest},
		{"not found", NewNotFound("cart", "s-1"), http.StatusNotFound},
		{"conflict", NewConflict("busy"), http.StatusConflict},
		{"order cancelled", &AppError{Code: CodeOrderCancelled}, http.StatusConflict},
		{"upstream", NewUpstream("down", nil), http.StatusBadGateway},
		{"unavailable", NewUnavailable("open", nil), http.StatusServiceUnavailable},
		{"wrapped", fmt.Errorf("saving: %w", NewConflict("race")), http.StatusConflict},
		{"plain", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestToJSON_HidesInternalErrors(t *testing.T) {
	code, body := ToJSON(fmt.Errorf("pq: connection refused"), "trace-1")

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, CodeInternal, resp.Error.Code)
	assert.Equal(t, "An internal error occurred", resp.Error.Message)
	assert.Equal(t, "trace-1", resp.TraceID)
}

func TestToJSON_KeepsDetails(t *testing.T) {
	_, body := ToJSON(NewValidation("adjust", map[string]interface{}{"chargeable_amount": "1.00"}), "")

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, map[string]interface{}{"chargeable_amount": "1.00"}, resp.Error.Details)
}

func TestGRPCStatus_RoundTrip(t *testing.T) {
	for _, code := range []string{CodeValidation, CodeNotFound, CodeConflict, CodeOrderCancelled, CodeUpstream, CodeUnavailable} {
		t.Run(code, func(t *testing.T) {
			err := GRPCStatus(&AppError{Code: code, Message: "m"})

			back := FromGRPCStatus(err)
			assert.Equal(t, code, back.Code)
			assert.Equal(t, "m", back.Message)
		})
	}
}

func TestGRPCStatus_Unknown(t *testing.T) {
	err := GRPCStatus(fmt.Errorf("boom"))

	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewNotFound("checkout attempt", "a-1"))

	assert.True(t, Is(err, CodeNotFound))
	assert.False(t, Is(err, CodeConflict))
	assert.False(t, Is(nil, CodeNotFound))
}

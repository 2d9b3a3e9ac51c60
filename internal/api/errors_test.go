package api

import (
	"net/http"
	"testing"

	"evalgo.org/emulium/internal/validation"
)

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		name     string
		apiError *APIError
		want     string
	}{
		{
			name: "error with details",
			apiError: &APIError{
				Code:    400,
				Message: "Bad Request",
				Details: "Invalid JSON format",
			},
			want: "Bad Request: Invalid JSON format",
		},
		{
			name: "error without details",
			apiError: &APIError{
				Code:    404,
				Message: "Not Found",
			},
			want: "Not Found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.apiError.Error(); got != tt.want {
				t.Errorf("APIError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBadRequestError(t *testing.T) {
	err := BadRequestError("Invalid input", "Field 'name' is required")

	if err.Code != http.StatusBadRequest {
		t.Errorf("BadRequestError().Code = %v, want %v", err.Code, http.StatusBadRequest)
	}
	if err.Message != "Invalid input" {
		t.Errorf("BadRequestError().Message = %v, want %v", err.Message, "Invalid input")
	}
	if err.Details != "Field 'name' is required" {
		t.Errorf("BadRequestError().Details = %v, want %v", err.Details, "Field 'name' is required")
	}
}

func TestNotFoundError(t *testing.T) {
	err := NotFoundError("Scenario", "scenario:abc123")

	if err.Code != http.StatusNotFound {
		t.Errorf("NotFoundError().Code = %v, want %v", err.Code, http.StatusNotFound)
	}
	if err.Message != "Scenario not found" {
		t.Errorf("NotFoundError().Message = %v, want %v", err.Message, "Scenario not found")
	}
	if err.Context == nil {
		t.Error("NotFoundError().Context is nil, want non-nil")
	}
	if id, ok := err.Context["id"].(string); !ok || id != "scenario:abc123" {
		t.Errorf("NotFoundError().Context['id'] = %v, want 'scenario:abc123'", id)
	}
}

func TestValidationFailedError(t *testing.T) {
	findings := []validation.ValidationError{
		{Field: "name", Message: "This field is required"},
		{Field: "definition.layout", Message: "Layout must be 'grid', 'circle' or 'row'", Value: "spiral"},
	}
	err := ValidationFailedError("Scenario validation failed", findings)

	if err.Code != http.StatusBadRequest {
		t.Errorf("ValidationFailedError().Code = %v, want %v", err.Code, http.StatusBadRequest)
	}
	if err.Message != "Scenario validation failed" {
		t.Errorf("ValidationFailedError().Message = %v, want %v", err.Message, "Scenario validation failed")
	}
	got, ok := err.Context["errors"].([]validation.ValidationError)
	if !ok {
		t.Fatalf("ValidationFailedError().Context['errors'] = %T, want []validation.ValidationError", err.Context["errors"])
	}
	if len(got) != 2 {
		t.Errorf("ValidationFailedError() carried %v findings, want 2", len(got))
	}
	if got[0].Field != "name" {
		t.Errorf("ValidationFailedError() first finding field = %v, want 'name'", got[0].Field)
	}
}

func TestInternalError(t *testing.T) {
	err := InternalError("Database connection failed", "Connection timeout")

	if err.Code != http.StatusInternalServerError {
		t.Errorf("InternalError().Code = %v, want %v", err.Code, http.StatusInternalServerError)
	}
	if err.Message != "Database connection failed" {
		t.Errorf("InternalError().Message = %v, want %v", err.Message, "Database connection failed")
	}
	if err.Details != "Connection timeout" {
		t.Errorf("InternalError().Details = %v, want %v", err.Details, "Connection timeout")
	}
}

func TestConflictError(t *testing.T) {
	err := ConflictError("Resource conflict", "Resource already exists")

	if err.Code != http.StatusConflict {
		t.Errorf("ConflictError().Code = %v, want %v", err.Code, http.StatusConflict)
	}
	if err.Message != "Resource conflict" {
		t.Errorf("ConflictError().Message = %v, want %v", err.Message, "Resource conflict")
	}
	if err.Details != "Resource already exists" {
		t.Errorf("ConflictError().Details = %v, want %v", err.Details, "Resource already exists")
	}
}

func TestBadGatewayError(t *testing.T) {
	err := BadGatewayError("GNS3 server unreachable", "dial tcp: connection refused")

	if err.Code != http.StatusBadGateway {
		t.Errorf("BadGatewayError().Code = %v, want %v", err.Code, http.StatusBadGateway)
	}
	if err.Message != "GNS3 server unreachable" {
		t.Errorf("BadGatewayError().Message = %v, want %v", err.Message, "GNS3 server unreachable")
	}
}

func TestGetHTTPMessage(t *testing.T) {
	tests := []struct {
		name string
		code int
		want string
	}{
		{"Bad Request", http.StatusBadRequest, "Bad request"},
		{"Not Found", http.StatusNotFound, "Resource not found"},
		{"Bad Gateway", http.StatusBadGateway, "Bad gateway"},
		{"Internal Server Error", http.StatusInternalServerError, "Internal server error"},
		{"Unknown Code", 999, http.StatusText(999)}, // Falls back to http.StatusText for unknown codes
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := getHTTPMessage(tt.code); got != tt.want {
				t.Errorf("getHTTPMessage() = %v, want %v", got, tt.want)
			}
		})
	}
}

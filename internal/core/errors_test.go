package core

import (
	"errors"
	"net/http"
	"testing"
)

func TestGatewayErrorStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  *GatewayError
		want int
	}{
		{"InvalidRequest", NewInvalidRequestError("bad", nil), http.StatusBadRequest},
		{"InvalidCategory", NewInvalidCategoryError("zzz-unknown"), http.StatusBadRequest},
		{"NotFound", NewNotFoundError("city not found"), http.StatusNotFound},
		{"Upstream", NewUpstreamError("geoapify", "timeout", nil), http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.HTTPStatusCode(); got != tt.want {
				t.Errorf("expected status %d, got %d", tt.want, got)
			}
		})
	}
}

func TestGatewayErrorMessageIncludesProvider(t *testing.T) {
	err := NewUpstreamError("geoapify", "connection refused", nil)
	want := "[geoapify] upstream_error: connection refused"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestGatewayErrorUnwrap(t *testing.T) {
	inner := errors.New("dial tcp: timeout")
	err := NewUpstreamError("geoapify", "request failed", inner)
	if !errors.Is(err, inner) {
		t.Error("expected wrapped error to be reachable via errors.Is")
	}
}

func TestGatewayErrorToJSON(t *testing.T) {
	err := NewInvalidCategoryError("zzz-unknown")
	body := err.ToJSON()
	inner, ok := body["error"].(map[string]interface{})
	if !ok {
		t.Fatal("expected nested error object")
	}
	if inner["type"] != ErrorTypeInvalidRequest {
		t.Errorf("unexpected type: %v", inner["type"])
	}
	if inner["message"] != "invalid category: zzz-unknown" {
		t.Errorf("unexpected message: %v", inner["message"])
	}
}

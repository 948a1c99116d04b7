package errhttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	stuffdomain "github.com/ghuser/stuffkeeper/services/stuff/domain"
)

func TestWriteError_ValidationErrorBody(t *testing.T) {
	v := stuffdomain.NewViolations()
	v.Add("name", "can't be blank")
	v.Add("tags[0].color_code", "is invalid")

	rr := httptest.NewRecorder()
	WriteError(rr, stuffdomain.NewValidationError(v))

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}
	var body map[string][]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := body["name"]; len(got) != 1 || got[0] != "can't be blank" {
		t.Errorf("unexpected name messages: %v", body)
	}
	if got := body["tags[0].color_code"]; len(got) != 1 || got[0] != "is invalid" {
		t.Errorf("unexpected tag messages: %v", body)
	}
}

func TestWriteError_WrappedValidationError(t *testing.T) {
	v := stuffdomain.NewViolations()
	v.Add("name", "can't be blank")
	wrapped := fmt.Errorf("create stuff: %w", stuffdomain.NewValidationError(v))

	rr := httptest.NewRecorder()
	WriteError(rr, wrapped)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}
}

func TestWriteError_StatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"stuff not found", stuffdomain.ErrStuffNotFound, http.StatusNotFound},
		{"tag not found", stuffdomain.ErrTagNotFound, http.StatusNotFound},
		{"unknown scope", stuffdomain.ErrUnknownScope, http.StatusBadRequest},
		{"wrapped sentinel", fmt.Errorf("get: %w", stuffdomain.ErrStuffNotFound), http.StatusNotFound},
		{"unrecognized", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			WriteError(rr, tt.err)
			if rr.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, rr.Code)
			}
		})
	}
}

func TestWriteError_InternalDetailsAreMasked(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, errors.New("pq: connection refused on 10.0.0.5"))

	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != http.StatusText(http.StatusInternalServerError) {
		t.Errorf("internal error text leaked: %q", body["error"])
	}
}

package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		err  *Error
		want int
	}{
		{NotFound("x"), http.StatusNotFound},
		{Validation("x"), http.StatusBadRequest},
		{BadRequest("x"), http.StatusBadRequest},
		{Conflict("x"), http.StatusConflict},
		{Forbidden("x"), http.StatusForbidden},
		{Unauthorized("x"), http.StatusUnauthorized},
		{Internal(errors.New("x")), http.StatusInternalServerError},
		{New(KindUnknown, "x"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := tc.err.HTTPStatus(); got != tc.want {
			t.Fatalf("kind %d: expected %d, got %d", tc.err.Kind, tc.want, got)
		}
	}
}

func TestGetKindFindsWrappedError(t *testing.T) {
	err := fmt.Errorf("get product: %w", NotFound("product not found"))
	if !Is(err, KindNotFound) {
		t.Fatalf("expected wrapped not found to be detected, got kind %d", GetKind(err))
	}
	if GetKind(errors.New("plain")) != KindUnknown {
		t.Fatal("expected plain error to have unknown kind")
	}
}

func TestInternalKeepsMessage(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal(cause)
	if err.Message != "connection refused" {
		t.Fatalf("unexpected message %q", err.Message)
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected cause to be unwrappable")
	}
}

func TestWithDetails(t *testing.T) {
	err := Validation("bad status").WithDetails([]string{"pending"})
	if err.Details == nil || err.Error() != "bad status" {
		t.Fatalf("unexpected error %+v", err)
	}
}

package apperr

import (
	"errors"
	"net/http"
	"testing"
)

func TestHTTPStatusPerKind(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want int
	}{
		{"not found", NotFound("user not found"), http.StatusNotFound},
		{"validation", Validation("email is required"), http.StatusBadRequest},
		{"conflict", Conflict("email already registered"), http.StatusConflict},
		{"unauthorized", Unauthorized("invalid credentials"), http.StatusUnauthorized},
		{"internal", Internal("something went wrong"), http.StatusInternalServerError},
		{"unknown", New(KindUnknown, "odd"), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.HTTPStatus(); got != tt.want {
				t.Fatalf("HTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWrapKeepsCauseOutOfMessage(t *testing.T) {
	cause := errors.New("pq: deadlock detected")
	err := Wrap(KindInternal, "could not complete signup", cause)

	if err.Error() != "could not complete signup" {
		t.Fatalf("Error() leaked cause: %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected errors.Is to find the wrapped cause")
	}
}

func TestGetKindOnUntypedError(t *testing.T) {
	if GetKind(errors.New("plain")) != KindUnknown {
		t.Fatal("untyped error should map to KindUnknown")
	}
	if !Is(Conflict("dup"), KindConflict) {
		t.Fatal("Is should match the error kind")
	}
}

func TestWithOpPrefixesOperation(t *testing.T) {
	err := NotFound("member not found").WithOp("membership.Remove")
	if err.Error() != "membership.Remove: member not found" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

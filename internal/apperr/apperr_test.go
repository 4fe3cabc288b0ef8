package apperr

import (
	"net/http"
	"testing"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err    *Error
		status int
	}{
		{BadRequest("x"), http.StatusBadRequest},
		{Unauthorized("x"), http.StatusUnauthorized},
		{NotFound("x"), http.StatusNotFound},
		{Conflict("x"), http.StatusConflict},
		{Unprocessable("x"), http.StatusUnprocessableEntity},
		{Validation(FieldError{Field: "f", Message: "m"}), http.StatusUnprocessableEntity},
	}

	for _, tc := range cases {
		if got := tc.err.Status(); got != tc.status {
			t.Fatalf("Status() = %d, want %d (kind %v)", got, tc.status, tc.err.Kind)
		}
	}
}

func TestValidationJoinsFieldMessages(t *testing.T) {
	err := Validation(
		FieldError{Field: "email", Message: "must contain '@' and domain part"},
		FieldError{Field: "password", Message: "must include letters and digits"},
	)

	want := "email: must contain '@' and domain part; password: must include letters and digits"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
	if len(err.Fields) != 2 {
		t.Fatalf("Fields length = %d, want 2", len(err.Fields))
	}
}

package problem

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/recipe-box/internal/apperr"
)

var errDatabaseDown = errors.New("pq: connection refused at 10.0.0.3:5432")

func respond(t *testing.T, err error) Document {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	Respond(c, err)

	var doc Document
	if decodeErr := json.Unmarshal(rec.Body.Bytes(), &doc); decodeErr != nil {
		t.Fatalf("failed to decode problem document %q: %v", rec.Body.String(), decodeErr)
	}
	return doc
}

func TestRespondDomainError(t *testing.T) {
	doc := respond(t, apperr.NotFound("Recipe not found"))

	if doc.Status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", doc.Status)
	}
	if doc.Title != "HTTP 404" {
		t.Fatalf("title = %q, want %q", doc.Title, "HTTP 404")
	}
	if doc.Detail != "Recipe not found" {
		t.Fatalf("detail = %q, want %q", doc.Detail, "Recipe not found")
	}
	if doc.Type != "about:blank" {
		t.Fatalf("type = %q, want %q", doc.Type, "about:blank")
	}
}

func TestRespondValidationError(t *testing.T) {
	doc := respond(t, apperr.Validation(
		apperr.FieldError{Field: "email", Message: "must contain '@' and domain part"},
		apperr.FieldError{Field: "password", Message: "must include letters and digits"},
	))

	if doc.Status != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", doc.Status)
	}
	if doc.Title != "Validation Error" {
		t.Fatalf("title = %q, want %q", doc.Title, "Validation Error")
	}
	if doc.Detail != "email: must contain '@' and domain part; password: must include letters and digits" {
		t.Fatalf("detail = %q (semicolon-joined field messages expected)", doc.Detail)
	}
	if len(doc.ValidationErrors) != 2 {
		t.Fatalf("validation_errors length = %d, want 2", len(doc.ValidationErrors))
	}
}

func TestRespondMasksUnexpectedErrors(t *testing.T) {
	doc := respond(t, errDatabaseDown)

	if doc.Status != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", doc.Status)
	}
	if doc.Detail != maskedDetail {
		t.Fatalf("detail = %q, internal error text must be masked", doc.Detail)
	}
}

func TestCorrelationIDsNeverRepeat(t *testing.T) {
	first := respond(t, apperr.NotFound("Recipe not found"))
	second := respond(t, apperr.NotFound("Recipe not found"))

	if first.CorrelationID == "" || first.CorrelationID == second.CorrelationID {
		t.Fatalf("correlation ids must be unique per response: %q vs %q",
			first.CorrelationID, second.CorrelationID)
	}
}

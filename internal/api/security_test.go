package api

import (
	"net/http"
	"testing"
)

func TestMissingAuthorizationHeaderRejected(t *testing.T) {
	router, _ := testRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/ingredients",
		map[string]string{"name": "Salt"}, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if detail := decodeBody(t, rec)["detail"]; detail != "Authorization header missing" {
		t.Fatalf("detail = %v, want %q", detail, "Authorization header missing")
	}
}

func TestInvalidTokenRejected(t *testing.T) {
	router, _ := testRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/ingredients",
		map[string]string{"name": "Salt"},
		map[string]string{"Authorization": "Bearer not-a-token"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if detail := decodeBody(t, rec)["detail"]; detail != "Invalid or expired token" {
		t.Fatalf("detail = %v, want %q", detail, "Invalid or expired token")
	}
}

func TestNonBearerSchemeRejected(t *testing.T) {
	router, _ := testRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/ingredients",
		map[string]string{"name": "Salt"},
		map[string]string{"Authorization": "Basic abc"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	// Basicスキームと欠落ヘッダーは同じメッセージで区別しない
	if detail := decodeBody(t, rec)["detail"]; detail != "Authorization header missing" {
		t.Fatalf("detail = %v, want %q", detail, "Authorization header missing")
	}
}

func TestBearerSchemeIsCaseInsensitive(t *testing.T) {
	router, _ := testRouter(t)
	token := registerAndLogin(t, router, "alice@example.com", "Str0ngPass123")

	rec := doJSON(t, router, http.MethodGet, "/auth/me", nil,
		map[string]string{"Authorization": "bearer " + token})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (scheme must be case-insensitive)", rec.Code)
	}
}

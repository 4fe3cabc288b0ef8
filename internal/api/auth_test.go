package api

import (
	"context"
	"net/http"
	"strings"
	"testing"
)

func TestUserCanRegisterAndLogin(t *testing.T) {
	router, _ := testRouter(t)
	payload := map[string]string{"email": "alice@example.com", "password": "Str0ngPass123"}

	register := doJSON(t, router, http.MethodPost, "/auth/register", payload, nil)
	if register.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body = %s", register.Code, register.Body.String())
	}
	registerBody := decodeBody(t, register)
	if registerBody["email"] != "alice@example.com" {
		t.Fatalf("registered email = %v, want alice@example.com", registerBody["email"])
	}
	if _, hasDigest := registerBody["password_digest"]; hasDigest {
		t.Fatal("register response must never include the password digest")
	}

	login := doJSON(t, router, http.MethodPost, "/auth/login", payload, nil)
	if login.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", login.Code, login.Body.String())
	}
	loginBody := decodeBody(t, login)
	token, _ := loginBody["access_token"].(string)
	if token == "" {
		t.Fatalf("login response missing access_token: %s", login.Body.String())
	}
	if loginBody["token_type"] != "bearer" {
		t.Fatalf("token_type = %v, want bearer", loginBody["token_type"])
	}

	me := doJSON(t, router, http.MethodGet, "/auth/me", nil, authHeaders(token))
	if me.Code != http.StatusOK {
		t.Fatalf("me status = %d, body = %s", me.Code, me.Body.String())
	}
	meBody := decodeBody(t, me)
	if meBody["email"] != "alice@example.com" {
		t.Fatalf("me email = %v, want alice@example.com", meBody["email"])
	}
	if _, hasID := meBody["id"]; !hasID {
		t.Fatalf("me response missing id: %s", me.Body.String())
	}
}

func TestRegisterNormalizesEmail(t *testing.T) {
	router, _ := testRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/auth/register",
		map[string]string{"email": " Alice@Example.COM ", "password": "Str0ngPass123"}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if email := decodeBody(t, rec)["email"]; email != "alice@example.com" {
		t.Fatalf("normalized email = %v, want alice@example.com", email)
	}
}

func TestDuplicateRegistrationRejected(t *testing.T) {
	router, _ := testRouter(t)

	first := doJSON(t, router, http.MethodPost, "/auth/register",
		map[string]string{"email": "dup@example.com", "password": "DupPass123"}, nil)
	if first.Code != http.StatusCreated {
		t.Fatalf("first register status = %d", first.Code)
	}

	// 正規化すると同一のメールアドレス
	second := doJSON(t, router, http.MethodPost, "/auth/register",
		map[string]string{"email": "DUP@example.com ", "password": "DupPass123"}, nil)
	if second.Code != http.StatusConflict {
		t.Fatalf("second register status = %d, want 409", second.Code)
	}
	if detail := decodeBody(t, second)["detail"]; detail != "User already exists" {
		t.Fatalf("detail = %v, want %q", detail, "User already exists")
	}
}

func TestLoginFailuresShareOneMessage(t *testing.T) {
	router, _ := testRouter(t)
	registerAndLogin(t, router, "bob@example.com", "Secure123")

	wrongPass := doJSON(t, router, http.MethodPost, "/auth/login",
		map[string]string{"email": "bob@example.com", "password": "WrongPass123"}, nil)
	unknownEmail := doJSON(t, router, http.MethodPost, "/auth/login",
		map[string]string{"email": "ghost@example.com", "password": "WrongPass123"}, nil)

	if wrongPass.Code != http.StatusUnauthorized || unknownEmail.Code != http.StatusUnauthorized {
		t.Fatalf("statuses = (%d, %d), want (401, 401)", wrongPass.Code, unknownEmail.Code)
	}

	wrongDetail := decodeBody(t, wrongPass)["detail"]
	unknownDetail := decodeBody(t, unknownEmail)["detail"]
	if wrongDetail != "Invalid credentials" {
		t.Fatalf("detail = %v, want %q", wrongDetail, "Invalid credentials")
	}
	if wrongDetail != unknownDetail {
		t.Fatalf("details differ: %v vs %v", wrongDetail, unknownDetail)
	}
}

func TestPasswordPolicyEnforced(t *testing.T) {
	router, _ := testRouter(t)

	// 数字を含まないパスワード
	rec := doJSON(t, router, http.MethodPost, "/auth/register",
		map[string]string{"email": "weak@example.com", "password": "password"}, nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("register status = %d, want 422", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("validation response does not mention password: %s", rec.Body.String())
	}
}

func TestEmailShapeEnforced(t *testing.T) {
	router, _ := testRouter(t)

	for _, email := range []string{"not-an-email", "user@localhost", "@example.com"} {
		rec := doJSON(t, router, http.MethodPost, "/auth/register",
			map[string]string{"email": email, "password": "Str0ngPass123"}, nil)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("register(%q) status = %d, want 422", email, rec.Code)
		}
	}
}

func TestSessionResetInvalidatesTokens(t *testing.T) {
	router, deps := testRouter(t)
	token := registerAndLogin(t, router, "alice@example.com", "Str0ngPass123")

	me := doJSON(t, router, http.MethodGet, "/auth/me", nil, authHeaders(token))
	if me.Code != http.StatusOK {
		t.Fatalf("me status before reset = %d, want 200", me.Code)
	}

	if err := deps.Sessions.Reset(context.Background()); err != nil {
		t.Fatalf("session reset returned error: %v", err)
	}

	after := doJSON(t, router, http.MethodGet, "/auth/me", nil, authHeaders(token))
	if after.Code != http.StatusUnauthorized {
		t.Fatalf("me status after reset = %d, want 401", after.Code)
	}
	if detail := decodeBody(t, after)["detail"]; detail != "Invalid or expired token" {
		t.Fatalf("detail = %v, want %q", detail, "Invalid or expired token")
	}
}

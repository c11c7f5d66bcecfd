package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestSeededPasswordsAreHashed(t *testing.T) {
	_, _, db := newApp(t)

	var hashes []string
	if err := db.Select(&hashes, `SELECT password_hash FROM accounts`); err != nil {
		t.Fatalf("select hashes: %v", err)
	}
	if len(hashes) == 0 {
		t.Fatal("no accounts seeded")
	}
	for _, h := range hashes {
		if strings.Contains(h, "Passw0rd!") {
			t.Fatal("hash contains plaintext password")
		}
		if !strings.HasPrefix(h, "$2") {
			t.Fatalf("unexpected hash format: %s", h)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(h), []byte("Passw0rd!")); err != nil {
			t.Fatalf("seed hash does not validate known password: %v", err)
		}
	}
}

func TestRegisterAndDuplicateEmail(t *testing.T) {
	app, _, _ := newApp(t)

	body := map[string]any{"email": "new@craftroots.test", "name": "New", "password": "Str0ng!pass"}
	resp := doJSON(t, app, "POST", "/api/v1/auth/register", "", body, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", resp.StatusCode)
	}

	// same email, different case, still taken
	body["email"] = "NEW@craftroots.test"
	resp = doJSON(t, app, "POST", "/api/v1/auth/register", "", body, nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate register: expected 409, got %d", resp.StatusCode)
	}
}

func TestRegisterRejectsBadName(t *testing.T) {
	app, _, _ := newApp(t)

	for _, name := range []string{"", "   ", strings.Repeat("x", 51)} {
		body := map[string]any{"email": "named@craftroots.test", "name": name, "password": "Str0ng!pass"}
		resp := doJSON(t, app, "POST", "/api/v1/auth/register", "", body, nil)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("name %q: expected 400, got %d", name, resp.StatusCode)
		}
	}
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	app, _, _ := newApp(t)

	body := map[string]any{"email": "weak@craftroots.test", "name": "Weak", "password": "alllowercase"}
	resp := doJSON(t, app, "POST", "/api/v1/auth/register", "", body, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for weak password, got %d", resp.StatusCode)
	}
}

func TestLoginSuccessAndFailure(t *testing.T) {
	app, _, _ := newApp(t)

	bad := map[string]any{"email": "asha@craftroots.test", "password": "wrongpass!"}
	resp := doJSON(t, app, "POST", "/api/v1/auth/login", "", bad, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad creds: expected 401, got %d", resp.StatusCode)
	}

	good := map[string]any{"email": "asha@craftroots.test", "password": "Passw0rd!"}
	var acct map[string]any
	resp = doJSON(t, app, "POST", "/api/v1/auth/login", "", good, &acct)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("good creds: expected 200, got %d", resp.StatusCode)
	}
	if acct["email"] != "asha@craftroots.test" {
		t.Fatalf("unexpected account payload: %v", acct)
	}
	if _, leaked := acct["passwordHash"]; leaked {
		t.Fatal("password hash leaked in login response")
	}
}

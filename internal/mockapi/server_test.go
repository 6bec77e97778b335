package mockapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"stuma/internal/domain"
	"stuma/internal/mockapi"
)

func newTestServer(t *testing.T) *mockapi.Server {
	t.Helper()
	store, err := mockapi.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return mockapi.NewServer(store)
}

func postJSON(t *testing.T, srv *mockapi.Server, path, token, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.App().Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func login(t *testing.T, srv *mockapi.Server, email, password string) string {
	t.Helper()
	resp := postJSON(t, srv, "/api/auth/login", "", `{"email":"`+email+`","password":"`+password+`"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", resp.StatusCode)
	}
	var out domain.LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Token == "" {
		t.Fatal("login returned empty token")
	}
	return out.Token
}

func TestItemsRequireAuth(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest("GET", "/api/items", nil)
	resp, err := srv.App().Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	srv := newTestServer(t)
	resp := postJSON(t, srv, "/api/auth/login", "", `{"email":"alya@campus.test","password":"wrongpass"}`)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestSeededItemsListed(t *testing.T) {
	srv := newTestServer(t)
	tok := login(t, srv, "alya@campus.test", "Passw0rd!")

	req := httptest.NewRequest("GET", "/api/items", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := srv.App().Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var env struct {
		Message string        `json:"message"`
		Data    []domain.Item `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatal(err)
	}
	if len(env.Data) == 0 {
		t.Fatal("no seeded items")
	}
	for _, it := range env.Data {
		if it.SellerName == "" {
			t.Fatalf("item %d missing seller name", it.ID)
		}
	}
}

func TestRegisterLoginSellFlow(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv, "/api/auth/register", "",
		`{"name":"Citra","phone":"+628133333333","address":"Dorm C","email":"citra@campus.test","password":"Passw0rd1"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", resp.StatusCode)
	}

	// duplicate email rejected
	resp = postJSON(t, srv, "/api/auth/register", "",
		`{"name":"Citra","phone":"+628133333333","address":"Dorm C","email":"citra@campus.test","password":"Passw0rd1"}`)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate register: expected 409, got %d", resp.StatusCode)
	}

	tok := login(t, srv, "citra@campus.test", "Passw0rd1")

	resp = postJSON(t, srv, "/api/items", tok,
		`{"items_name":"Calculus Textbook","category":"Stationery","description":"3rd edition","stock":1,"price":120000}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("sell: expected 201, got %d", resp.StatusCode)
	}

	resp = postJSON(t, srv, "/api/items", tok, `{"items_name":"","category":"Nope","stock":-1,"price":-5}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("invalid sell: expected 400, got %d", resp.StatusCode)
	}
}

func TestProfileRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	tok := login(t, srv, "budi@campus.test", "Passw0rd!")

	req := httptest.NewRequest("GET", "/api/profile", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := srv.App().Test(req)
	if err != nil {
		t.Fatal(err)
	}
	var p domain.Profile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		t.Fatal(err)
	}
	if p.Email != "budi@campus.test" {
		t.Fatalf("unexpected profile: %+v", p)
	}

	upd := httptest.NewRequest("PUT", "/api/profile", strings.NewReader(`{"name":"Budi S.","phone":"+628122222222","address":"Dorm B2"}`))
	upd.Header.Set("Content-Type", "application/json")
	upd.Header.Set("Authorization", "Bearer "+tok)
	resp, err = srv.App().Test(upd)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update: expected 200, got %d", resp.StatusCode)
	}
}

func TestChangePassword(t *testing.T) {
	srv := newTestServer(t)
	tok := login(t, srv, "alya@campus.test", "Passw0rd!")

	resp := postJSON(t, srv, "/api/profile/change-password", tok,
		`{"email":"alya@campus.test","oldPassword":"nope","newPassword":"NewPassw0rd"}`)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("wrong old password: expected 401, got %d", resp.StatusCode)
	}

	resp = postJSON(t, srv, "/api/profile/change-password", tok,
		`{"email":"alya@campus.test","oldPassword":"Passw0rd!","newPassword":"NewPassw0rd"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("change password: expected 200, got %d", resp.StatusCode)
	}

	// old credential no longer works, new one does
	bad := postJSON(t, srv, "/api/auth/login", "", `{"email":"alya@campus.test","password":"Passw0rd!"}`)
	if bad.StatusCode != http.StatusUnauthorized {
		t.Fatalf("old password still accepted: %d", bad.StatusCode)
	}
	login(t, srv, "alya@campus.test", "NewPassw0rd")
}

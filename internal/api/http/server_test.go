package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spec-kit/adoption-client/internal/config"
	"github.com/spec-kit/adoption-client/internal/service"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	srv, err := NewServer(context.Background(), &config.Config{
		App: config.AppConfig{Name: "mockapi-test", Version: "test"},
		Mock: config.MockConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 5,
			RefreshTTLHours:       1,
			BcryptCost:            4,
			Seed:                  true,
		},
	}, nil)
	if err != nil {
		t.Fatalf("NewServer() unexpected error: %v", err)
	}
	return srv
}

func do(t *testing.T, srv *Server, method, path, body, token string) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.App.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	var payload map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	return resp, payload
}

func login(t *testing.T, srv *Server, email, password string) (string, *http.Cookie) {
	t.Helper()
	resp, payload := do(t, srv, http.MethodPost, "/api/auth/login", `{"email":"`+email+`","password":"`+password+`"}`, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d, body = %v", resp.StatusCode, payload)
	}
	token, _ := payload["token"].(string)
	for _, c := range resp.Cookies() {
		if c.Name == "refresh_token" {
			return token, c
		}
	}
	t.Fatal("login did not set the refresh cookie")
	return "", nil
}

func TestAuthRoutes(t *testing.T) {
	srv := newTestServer(t)

	resp, payload := do(t, srv, http.MethodPost, "/api/auth/login", `{"email":"ana@adocao.dev","password":"errada"}`, "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("wrong password status = %d", resp.StatusCode)
	}
	if errBody, _ := payload["error"].(map[string]any); errBody["code"] != "UNAUTHORIZED" {
		t.Errorf("error body = %v", payload)
	}

	token, cookie := login(t, srv, service.SeedUserEmail, service.SeedUserPassword)
	if !cookie.HttpOnly || cookie.Path != "/api/auth" {
		t.Errorf("refresh cookie = %+v", cookie)
	}

	resp, payload = do(t, srv, http.MethodGet, "/api/auth/me", "", token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/auth/me status = %d", resp.StatusCode)
	}
	if data, _ := payload["data"].(map[string]any); data["email"] != service.SeedUserEmail {
		t.Errorf("/auth/me body = %v", payload)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req.AddCookie(cookie)
	refreshResp, err := srv.App.Test(req, -1)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	refreshResp.Body.Close()
	if refreshResp.StatusCode != http.StatusOK {
		t.Fatalf("refresh status = %d", refreshResp.StatusCode)
	}

	resp, _ = do(t, srv, http.MethodPost, "/api/auth/refresh", "", "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("refresh without cookie status = %d", resp.StatusCode)
	}
}

func TestValidationErrorsCarryDetails(t *testing.T) {
	srv := newTestServer(t)
	resp, payload := do(t, srv, http.MethodPost, "/api/contact", `{"name":"A1","email":"x","subject":"Oi","message":"curta"}`, "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	errBody, _ := payload["error"].(map[string]any)
	details, _ := errBody["details"].(map[string]any)
	for _, field := range []string{"name", "email", "subject", "message"} {
		if _, ok := details[field]; !ok {
			t.Errorf("missing detail for %s in %v", field, details)
		}
	}
}

func TestResourceRoutesRequireRoles(t *testing.T) {
	srv := newTestServer(t)

	if resp, _ := do(t, srv, http.MethodGet, "/api/animals", "", ""); resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous list status = %d", resp.StatusCode)
	}

	userToken, _ := login(t, srv, service.SeedUserEmail, service.SeedUserPassword)
	resp, payload := do(t, srv, http.MethodGet, "/api/animals?species=gato", "", userToken)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d", resp.StatusCode)
	}
	if items, _ := payload["data"].([]any); len(items) != 1 {
		t.Errorf("cats = %v", payload["data"])
	}
	if resp, _ := do(t, srv, http.MethodDelete, "/api/animals/whatever", "", userToken); resp.StatusCode != http.StatusForbidden {
		t.Errorf("user delete status = %d", resp.StatusCode)
	}

	adminToken, _ := login(t, srv, service.SeedAdminEmail, service.SeedAdminPassword)
	if resp, _ := do(t, srv, http.MethodDelete, "/api/animals/missing", "", adminToken); resp.StatusCode != http.StatusNotFound {
		t.Errorf("admin delete missing status = %d", resp.StatusCode)
	}
	if resp, _ := do(t, srv, http.MethodGet, "/api/nowhere", "", ""); resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown route status = %d", resp.StatusCode)
	}
}

func TestVerifyEmailRoute(t *testing.T) {
	srv := newTestServer(t)
	resp, payload := do(t, srv, http.MethodPost, "/api/auth/register", `{"name":"Bia Souza","email":"bia@adocao.dev","password":"12345678"}`, "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status = %d, body = %v", resp.StatusCode, payload)
	}
	token, _ := payload["verificationToken"].(string)
	if token == "" {
		t.Fatalf("register body lacks verificationToken: %v", payload)
	}

	resp, payload = do(t, srv, http.MethodPost, "/api/auth/verify-email", `{"token":"`+token+`"}`, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("verify status = %d, body = %v", resp.StatusCode, payload)
	}
	if data, _ := payload["data"].(map[string]any); data["emailVerified"] != true {
		t.Errorf("verify body = %v", payload)
	}
	if resp, _ := do(t, srv, http.MethodPost, "/api/auth/verify-email", `{"token":"`+token+`"}`, ""); resp.StatusCode != http.StatusBadRequest {
		t.Errorf("second verify status = %d", resp.StatusCode)
	}
}

func TestAdoptionReviewRoutes(t *testing.T) {
	srv := newTestServer(t)
	userToken, _ := login(t, srv, service.SeedUserEmail, service.SeedUserPassword)
	adminToken, _ := login(t, srv, service.SeedAdminEmail, service.SeedAdminPassword)

	_, payload := do(t, srv, http.MethodGet, "/api/animals?species=gato", "", userToken)
	items, _ := payload["data"].([]any)
	if len(items) == 0 {
		t.Fatal("no seeded cat")
	}
	animalID, _ := items[0].(map[string]any)["id"].(string)

	resp, payload := do(t, srv, http.MethodPost, "/api/adoptions", `{"animalId":"`+animalID+`","message":"Tenho quintal e tempo livre"}`, userToken)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, body = %v", resp.StatusCode, payload)
	}
	data, _ := payload["data"].(map[string]any)
	id, _ := data["id"].(string)

	if resp, _ := do(t, srv, http.MethodPatch, "/api/adoptions/"+id+"/approve", "", userToken); resp.StatusCode != http.StatusForbidden {
		t.Errorf("user approve status = %d", resp.StatusCode)
	}
	if resp, _ := do(t, srv, http.MethodGet, "/api/adoptions/stats", "", userToken); resp.StatusCode != http.StatusForbidden {
		t.Errorf("user stats status = %d", resp.StatusCode)
	}
	if resp, _ := do(t, srv, http.MethodPatch, "/api/adoptions/"+id+"/reject", `{"reason":"x"}`, adminToken); resp.StatusCode != http.StatusBadRequest {
		t.Errorf("short rejection reason status = %d", resp.StatusCode)
	}

	resp, payload = do(t, srv, http.MethodPatch, "/api/adoptions/"+id+"/approve", "", adminToken)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("approve status = %d, body = %v", resp.StatusCode, payload)
	}
	resp, payload = do(t, srv, http.MethodPatch, "/api/adoptions/"+id+"/complete", `{"documents":["termo.pdf"]}`, adminToken)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("complete status = %d, body = %v", resp.StatusCode, payload)
	}
	if data, _ := payload["data"].(map[string]any); data["status"] != "completed" {
		t.Errorf("complete body = %v", payload)
	}

	resp, payload = do(t, srv, http.MethodGet, "/api/adoptions/mine", "", userToken)
	if mine, _ := payload["data"].([]any); resp.StatusCode != http.StatusOK || len(mine) != 1 {
		t.Errorf("mine = %d %v", resp.StatusCode, payload)
	}
	resp, payload = do(t, srv, http.MethodGet, "/api/adoptions/stats", "", adminToken)
	if stats, _ := payload["data"].(map[string]any); resp.StatusCode != http.StatusOK || stats["completed"] != float64(1) {
		t.Errorf("stats = %d %v", resp.StatusCode, payload)
	}
	if resp, _ := do(t, srv, http.MethodDelete, "/api/adoptions/"+id, `{"reason":"mudança"}`, userToken); resp.StatusCode != http.StatusConflict {
		t.Errorf("cancel completed status = %d", resp.StatusCode)
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, payload := do(t, srv, http.MethodGet, "/health/ready", "", "")
	if resp.StatusCode != http.StatusOK || payload["status"] != "ready" {
		t.Fatalf("ready = %d %v", resp.StatusCode, payload)
	}
}

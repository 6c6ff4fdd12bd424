package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/adoption-client/internal/adoption"
	httptransport "github.com/spec-kit/adoption-client/internal/api/http"
	"github.com/spec-kit/adoption-client/internal/config"
	"github.com/spec-kit/adoption-client/internal/service"
	apperrors "github.com/spec-kit/adoption-client/pkg/util"
)

func newCLIClient(t *testing.T) *adoption.Client {
	t.Helper()
	srv, err := httptransport.NewServer(context.Background(), &config.Config{
		App:  config.AppConfig{Name: "mockapi-test"},
		Mock: config.MockConfig{JWTSecret: "cli-secret", AccessTokenTTLMinutes: 5, RefreshTTLHours: 1, BcryptCost: 4, Seed: true},
	}, nil)
	if err != nil {
		t.Fatalf("mock api: %v", err)
	}
	ts := httptest.NewServer(adaptor.FiberApp(srv.App))
	t.Cleanup(ts.Close)

	client, err := adoption.New(context.Background(), &config.Config{
		API:   config.APIConfig{BaseURL: ts.URL + "/api", TimeoutSeconds: 5},
		Store: config.StoreConfig{KeyPrefix: "cli:"},
	}, adoption.Options{})
	if err != nil {
		t.Fatalf("adoption.New() unexpected error: %v", err)
	}
	return client
}

func TestRun_LoginThenListAnimals(t *testing.T) {
	client := newCLIClient(t)
	ctx := context.Background()

	var out bytes.Buffer
	if err := run(ctx, client, "login", []string{"-email", service.SeedUserEmail, "-password", service.SeedUserPassword}, &out); err != nil {
		t.Fatalf("login: %v", err)
	}
	out.Reset()
	if err := run(ctx, client, "animals", []string{"list", "-species", "gato"}, &out); err != nil {
		t.Fatalf("animals list: %v", err)
	}
	var page struct {
		Items []struct{ Name string } `json:"items"`
	}
	if err := json.Unmarshal(out.Bytes(), &page); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].Name != "Mia" {
		t.Fatalf("cats = %s", out.String())
	}
}

func TestRun_Errors(t *testing.T) {
	client := newCLIClient(t)
	ctx := context.Background()

	if err := run(ctx, client, "dance", nil, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error for unknown command")
	}
	if err := run(ctx, client, "animals", []string{"get"}, &bytes.Buffer{}); err != errMissingID {
		t.Fatalf("animals get without id error = %v", err)
	}

	err := run(ctx, client, "contact", []string{"-name", "Ana", "-email", "nope", "-subject", "Oi", "-message", "curta"}, &bytes.Buffer{})
	if !apperrors.IsKind(err, apperrors.KindValidation) {
		t.Fatalf("contact error = %v, want validation", err)
	}
	if msg := describe(err); !strings.Contains(msg, "email:") || !strings.Contains(msg, "subject:") {
		t.Errorf("describe() = %q", msg)
	}
}

func TestRealMain_Usage(t *testing.T) {
	if code := realMain(nil); code != 2 {
		t.Fatalf("realMain(nil) = %d, want 2", code)
	}
}

func TestRealMain_FailingCommandReturnsCode(t *testing.T) {
	t.Setenv("ADOPTION_API_URL", "http://127.0.0.1:1/api")
	t.Setenv("TOKEN_REDIS_ADDR", "")
	t.Setenv("LOG_LEVEL", "fatal")
	if code := realMain([]string{"dance"}); code != 1 {
		t.Fatalf("realMain(dance) = %d, want 1", code)
	}
}

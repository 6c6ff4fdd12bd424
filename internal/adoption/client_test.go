package adoption

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	jwt "github.com/golang-jwt/jwt/v5"

	httptransport "github.com/spec-kit/adoption-client/internal/api/http"
	"github.com/spec-kit/adoption-client/internal/config"
	"github.com/spec-kit/adoption-client/internal/domain"
	"github.com/spec-kit/adoption-client/internal/events"
	"github.com/spec-kit/adoption-client/internal/resource"
	"github.com/spec-kit/adoption-client/internal/service"
	"github.com/spec-kit/adoption-client/internal/tokenstore"
	apperrors "github.com/spec-kit/adoption-client/pkg/util"
)

func startMockAPI(t *testing.T) *httptest.Server {
	t.Helper()
	srv, err := httptransport.NewServer(context.Background(), &config.Config{
		App: config.AppConfig{Name: "mockapi-test", Version: "test"},
		Mock: config.MockConfig{
			JWTSecret:             "e2e-secret",
			AccessTokenTTLMinutes: 5,
			RefreshTTLHours:       1,
			BcryptCost:            4,
			Seed:                  true,
		},
	}, nil)
	if err != nil {
		t.Fatalf("mock api: %v", err)
	}
	ts := httptest.NewServer(adaptor.FiberApp(srv.App))
	t.Cleanup(ts.Close)
	return ts
}

func clientConfig(baseURL string) *config.Config {
	return &config.Config{
		App:   config.AppConfig{Name: "adoption-client-test"},
		API:   config.APIConfig{BaseURL: baseURL, TimeoutSeconds: 5},
		Store: config.StoreConfig{KeyPrefix: "adoption:"},
	}
}

func newClient(t *testing.T, cfg *config.Config, opts Options) *Client {
	t.Helper()
	c, err := New(context.Background(), cfg, opts)
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = c.Close(context.Background()) })
	return c
}

func foreignToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "someone",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("not-the-server-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func signIn(t *testing.T, c *Client, email, password string, remember bool) *domain.User {
	t.Helper()
	user, err := c.Session.Login(context.Background(), domain.LoginRequest{Email: email, Password: password}, remember)
	if err != nil {
		t.Fatalf("Login() unexpected error: %v", err)
	}
	return user
}

func TestLoginAndBrowse(t *testing.T) {
	api := startMockAPI(t)
	c := newClient(t, clientConfig(api.URL+"/api"), Options{})
	ctx := context.Background()

	user := signIn(t, c, service.SeedUserEmail, service.SeedUserPassword, false)
	if user.Email != service.SeedUserEmail || !c.Session.IsAuthenticated(ctx) {
		t.Fatalf("unexpected session state: %+v", user)
	}

	page, err := c.Animals.BySpecies(ctx, domain.SpeciesDog)
	if err != nil {
		t.Fatalf("BySpecies() unexpected error: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].Name != "Thor" || page.Total != 1 {
		t.Fatalf("dogs = %+v", page)
	}

	animal, err := c.Animals.Get(ctx, page.Items[0].ID)
	if err != nil || animal.ID != page.Items[0].ID {
		t.Fatalf("Get() = %+v, %v", animal, err)
	}

	_, err = c.Animals.Get(ctx, "missing")
	if !apperrors.IsKind(err, apperrors.KindNotFound) {
		t.Fatalf("Get(missing) error = %v, want not_found", err)
	}

	if !apperrors.IsKind(c.Animals.Delete(ctx, animal.ID), apperrors.KindUnauthorized) {
		t.Fatal("non-admin delete should be rejected as unauthorized")
	}

	adoption, err := c.Adoptions.Create(ctx, domain.AdoptionInput{
		AnimalID: animal.ID,
		Message:  "Tenho quintal grande e muito tempo livre para passear.",
	})
	if err != nil {
		t.Fatalf("Adoptions.Create() unexpected error: %v", err)
	}
	if adoption.Status != domain.AdoptionStatusPending {
		t.Errorf("adoption status = %q", adoption.Status)
	}
	if err := c.Adoptions.Cancel(ctx, adoption.ID, "changed my mind"); err != nil {
		t.Fatalf("Cancel() unexpected error: %v", err)
	}

	if stats := c.Stats(); len(stats.Requests) == 0 || len(stats.Errors) == 0 {
		t.Errorf("stats not recorded: %+v", stats)
	}
}

func TestExpiredCredentialIsRenewed(t *testing.T) {
	api := startMockAPI(t)
	c := newClient(t, clientConfig(api.URL+"/api"), Options{})
	ctx := context.Background()
	signIn(t, c, service.SeedUserEmail, service.SeedUserPassword, false)

	var refreshed atomic.Int32
	c.Events().Subscribe(events.EventCredentialRefreshed, func(context.Context, events.Event) error {
		refreshed.Add(1)
		return nil
	})

	cases := map[string]string{
		"expired locally":     foreignToken(t, time.Now().Add(-time.Minute)),
		"rejected by the api": foreignToken(t, time.Now().Add(time.Hour)),
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			before := refreshed.Load()
			if err := c.Store.Set(ctx, tokenstore.NewCredential(token), false); err != nil {
				t.Fatalf("Set() unexpected error: %v", err)
			}
			if _, err := c.Shelters.List(ctx, resource.ShelterQuery{}); err != nil {
				t.Fatalf("List() unexpected error: %v", err)
			}
			cred, ok := c.Store.Get(ctx)
			if !ok || cred.Token == token || !cred.Persistent {
				t.Fatalf("credential not replaced durably: %+v, %v", cred, ok)
			}
			if refreshed.Load() != before+1 {
				t.Errorf("refresh events = %d, want %d", refreshed.Load(), before+1)
			}
		})
	}
}

func TestUnreachableAPI_KeepsCredential(t *testing.T) {
	api := startMockAPI(t)
	baseURL := api.URL + "/api"
	api.Close()

	c := newClient(t, clientConfig(baseURL), Options{})
	ctx := context.Background()
	token := foreignToken(t, time.Now().Add(time.Hour))
	if err := c.Store.Set(ctx, tokenstore.NewCredential(token), true); err != nil {
		t.Fatalf("Set() unexpected error: %v", err)
	}

	var expired atomic.Int32
	c.Events().Subscribe(events.EventSessionExpired, func(context.Context, events.Event) error {
		expired.Add(1)
		return nil
	})

	_, err := c.Animals.List(ctx, resource.AnimalQuery{})
	if !apperrors.IsKind(err, apperrors.KindNetwork) {
		t.Fatalf("List() error = %v, want network", err)
	}
	if cred, ok := c.Store.Get(ctx); !ok || cred.Token != token {
		t.Fatal("network failure must not clear the credential")
	}
	if expired.Load() != 0 {
		t.Error("network failure must not end the session")
	}
}

// recordingTransport keeps the Authorization header of every request by path.
type recordingTransport struct {
	mu   sync.Mutex
	auth map[string][]string
}

func (r *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r.mu.Lock()
	if r.auth == nil {
		r.auth = make(map[string][]string)
	}
	r.auth[req.URL.Path] = append(r.auth[req.URL.Path], req.Header.Get("Authorization"))
	r.mu.Unlock()
	return http.DefaultTransport.RoundTrip(req)
}

func (r *recordingTransport) headers(path string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.auth[path]...)
}

func TestLogout(t *testing.T) {
	api := startMockAPI(t)
	recorder := &recordingTransport{}
	c := newClient(t, clientConfig(api.URL+"/api"), Options{Transport: recorder})
	ctx := context.Background()
	signIn(t, c, service.SeedUserEmail, service.SeedUserPassword, true)

	if err := c.Session.Logout(ctx); err != nil {
		t.Fatalf("Logout() unexpected error: %v", err)
	}
	if _, ok := c.Store.Get(ctx); ok {
		t.Fatal("credential survived logout")
	}
	if c.Session.User() != nil || c.Session.IsAuthenticated(ctx) {
		t.Fatal("session still authenticated")
	}

	_, err := c.Animals.List(ctx, resource.AnimalQuery{})
	if !apperrors.IsKind(err, apperrors.KindUnauthorized) {
		t.Fatalf("List() after logout error = %v, want unauthorized", err)
	}
	sent := recorder.headers("/api/animals")
	if len(sent) == 0 {
		t.Fatal("animals request was not sent")
	}
	for _, header := range sent {
		if header != "" {
			t.Errorf("request after logout carried Authorization %q", header)
		}
	}
	for _, header := range recorder.headers("/api/auth/refresh") {
		if header != "" {
			t.Errorf("refresh after logout carried Authorization %q", header)
		}
	}
}

func TestRememberedSessionSurvivesRestart(t *testing.T) {
	api := startMockAPI(t)
	redisSrv := miniredis.RunT(t)
	cfg := clientConfig(api.URL + "/api")
	cfg.Redis = config.RedisConfig{Addr: redisSrv.Addr()}
	ctx := context.Background()

	first := newClient(t, cfg, Options{})
	signIn(t, first, service.SeedAdminEmail, service.SeedAdminPassword, true)
	if !redisSrv.Exists("adoption:auth_token") || !redisSrv.Exists("adoption:user_data") {
		t.Fatal("remembered credential not written to redis")
	}

	second := newClient(t, cfg, Options{})
	if err := second.Session.Hydrate(ctx); err != nil {
		t.Fatalf("Hydrate() unexpected error: %v", err)
	}
	user := second.Session.User()
	if user == nil || user.Email != service.SeedAdminEmail || user.Role != domain.RoleAdmin {
		t.Fatalf("hydrated user = %+v", user)
	}

	created, page, err := second.Animals.CreateAndList(ctx, domain.AnimalInput{
		Name:         "Bolota",
		Species:      domain.SpeciesHamster,
		Breed:        "Sírio",
		Age:          1,
		Size:         domain.SizeSmall,
		Gender:       domain.GenderMale,
		Description:  "Hamster dorminhoco que adora sementes de girassol.",
		Temperament:  []string{"dorminhoco"},
		HealthStatus: "Saudável, sem restrições",
		ShelterID:    mustShelterID(t, second),
	}, resource.AnimalQuery{Species: domain.SpeciesHamster})
	if err != nil {
		t.Fatalf("CreateAndList() unexpected error: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].ID != created.ID {
		t.Fatalf("list after create = %+v", page.Items)
	}
}

func mustShelterID(t *testing.T, c *Client) string {
	t.Helper()
	page, err := c.Shelters.List(context.Background(), resource.ShelterQuery{})
	if err != nil || len(page.Items) == 0 {
		t.Fatalf("Shelters.List() = %+v, %v", page, err)
	}
	return page.Items[0].ID
}

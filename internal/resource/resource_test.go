package resource

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/spec-kit/adoption-client/internal/domain"
	"github.com/spec-kit/adoption-client/internal/transport"
	apperrors "github.com/spec-kit/adoption-client/pkg/util"
)

type recorded struct {
	method string
	path   string
	query  string
	body   map[string]any
}

type recorder struct {
	mu       sync.Mutex
	requests []recorded
	respond  func(w http.ResponseWriter, r *http.Request)
}

func (rec *recorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	entry := recorded{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&entry.body)
	}
	rec.mu.Lock()
	rec.requests = append(rec.requests, entry)
	rec.mu.Unlock()
	rec.respond(w, r)
}

func (rec *recorder) calls() []recorded {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return append([]recorded(nil), rec.requests...)
}

func newTestClient(t *testing.T, respond func(w http.ResponseWriter, r *http.Request)) (*transport.Client, *recorder) {
	t.Helper()
	rec := &recorder{respond: respond}
	srv := httptest.NewServer(rec)
	t.Cleanup(srv.Close)
	client, err := transport.NewClient(transport.Options{BaseURL: srv.URL + "/api"})
	if err != nil {
		t.Fatalf("NewClient() unexpected error: %v", err)
	}
	return client, rec
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func validAnimal() domain.AnimalInput {
	return domain.AnimalInput{
		Name:         "Rex",
		Species:      domain.SpeciesDog,
		Breed:        "Vira-lata",
		Age:          3,
		Size:         domain.SizeMedium,
		Gender:       domain.GenderMale,
		Description:  "Cão dócil e brincalhão, adora crianças.",
		Temperament:  []string{"dócil"},
		HealthStatus: "Saudável e vermifugado",
		ShelterID:    "shelter-1",
	}
}

func TestAnimals_CreateValidationBeforeNetwork(t *testing.T) {
	client, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, map[string]any{"id": "1"})
	})
	animals := NewAnimals(client)

	in := validAnimal()
	in.Name = ""
	_, err := animals.Create(context.Background(), in)

	var apiErr *apperrors.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Kind != apperrors.KindValidation || apiErr.Status != apperrors.StatusLocal {
		t.Errorf("kind/status = %s/%d", apiErr.Kind, apiErr.Status)
	}
	if _, ok := apiErr.Fields["name"]; !ok || len(apiErr.Fields) != 1 {
		t.Errorf("fields = %v, want only name", apiErr.Fields)
	}
	if n := len(rec.calls()); n != 0 {
		t.Fatalf("validation failure made %d network calls", n)
	}
}

func TestAnimals_ListQueryAndEnvelope(t *testing.T) {
	client, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"success":    true,
			"data":       []map[string]any{{"id": "a1", "name": "Mia", "species": "gato"}},
			"pagination": map[string]any{"page": 2, "limit": 1, "total": 3, "totalPages": 3},
		})
	})
	animals := NewAnimals(client)

	page, err := animals.List(context.Background(), AnimalQuery{Species: domain.SpeciesCat, Status: domain.AnimalStatusAvailable, Page: 2, Limit: 1})
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].Name != "Mia" || page.Total != 3 || page.TotalPages != 3 {
		t.Fatalf("unexpected page: %+v", page)
	}
	call := rec.calls()[0]
	if call.path != "/api/animals" || call.query != "limit=1&page=2&species=gato&status=available" {
		t.Errorf("request = %s?%s", call.path, call.query)
	}
}

func TestAnimals_FilterHelpers(t *testing.T) {
	client, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []any{})
	})
	animals := NewAnimals(client)
	ctx := context.Background()

	if _, err := animals.BySpecies(ctx, domain.SpeciesRabbit); err != nil {
		t.Fatal(err)
	}
	if _, err := animals.BySize(ctx, domain.SizeLarge); err != nil {
		t.Fatal(err)
	}
	if _, err := animals.ByStatus(ctx, domain.AnimalStatusAdopted); err != nil {
		t.Fatal(err)
	}
	page, err := animals.Search(ctx, "labrador")
	if err != nil {
		t.Fatal(err)
	}
	if page.Items == nil || page.Total != 0 {
		t.Errorf("empty list should decode to an empty page: %+v", page)
	}

	want := []string{"species=coelho", "size=grande", "status=adopted", "search=labrador"}
	for i, call := range rec.calls() {
		if call.query != want[i] {
			t.Errorf("call %d query = %q, want %q", i, call.query, want[i])
		}
	}
}

func TestCRUD_RawAndWrappedRecords(t *testing.T) {
	client, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, map[string]any{"id": "s1", "name": "Abrigo"})
		case http.MethodPut:
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": map[string]any{"id": "s1", "name": "Novo"}})
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		}
	})
	shelters := NewShelters(client)
	ctx := context.Background()

	got, err := shelters.Get(ctx, "s1")
	if err != nil || got.Name != "Abrigo" {
		t.Fatalf("Get() = %+v, %v", got, err)
	}
	name := "Novo Abrigo"
	updated, err := shelters.Update(ctx, "s1", domain.ShelterUpdate{Name: &name})
	if err != nil || updated.Name != "Novo" {
		t.Fatalf("Update() = %+v, %v", updated, err)
	}
	if err := shelters.Delete(ctx, "s1"); err != nil {
		t.Fatalf("Delete() unexpected error: %v", err)
	}

	calls := rec.calls()
	if calls[1].method != http.MethodPut || calls[1].body["name"] != "Novo Abrigo" {
		t.Errorf("update request = %+v", calls[1])
	}
	if _, sent := calls[1].body["email"]; sent {
		t.Error("nil fields must be omitted from updates")
	}
	if calls[2].method != http.MethodDelete || calls[2].path != "/api/shelters/s1" {
		t.Errorf("delete request = %+v", calls[2])
	}
}

func TestCRUD_EmptyID(t *testing.T) {
	client, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	if _, err := NewShelters(client).Get(context.Background(), " "); !apperrors.IsKind(err, apperrors.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(rec.calls()) != 0 {
		t.Fatal("empty id reached the network")
	}
}

func TestCRUD_ServerErrorsPropagate(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/adoptions/missing" {
			writeJSON(w, http.StatusNotFound, map[string]any{"message": "Adoption not found"})
			return
		}
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"message": "invalid",
			"errors":  map[string]any{"animalId": "animal is not available"},
		})
	})
	adoptions := NewAdoptions(client)
	ctx := context.Background()

	_, err := adoptions.Get(ctx, "missing")
	var apiErr *apperrors.APIError
	if !errors.As(err, &apiErr) || apiErr.Kind != apperrors.KindNotFound || apiErr.Message != "Adoption not found" {
		t.Fatalf("Get() error = %v", err)
	}

	_, err = adoptions.Create(ctx, domain.AdoptionInput{AnimalID: "a1"})
	if !errors.As(err, &apiErr) || apiErr.Kind != apperrors.KindValidation || apiErr.Fields["animalId"] == "" {
		t.Fatalf("Create() error = %v (%+v)", err, apiErr)
	}
}

func TestAdoptions_Cancel(t *testing.T) {
	client, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	})
	adoptions := NewAdoptions(client)
	if err := adoptions.Cancel(context.Background(), "ad-1", ""); err != nil {
		t.Fatalf("Cancel() unexpected error: %v", err)
	}
	if err := adoptions.Cancel(context.Background(), "ad-2", " found another home "); err != nil {
		t.Fatalf("Cancel() with reason unexpected error: %v", err)
	}
	calls := rec.calls()
	if call := calls[0]; call.method != http.MethodDelete || call.path != "/api/adoptions/ad-1" || call.body != nil {
		t.Errorf("request = %+v", call)
	}
	if call := calls[1]; call.path != "/api/adoptions/ad-2" || call.body["reason"] != "found another home" {
		t.Errorf("request with reason = %+v", call)
	}
}

func TestAdoptions_Review(t *testing.T) {
	client, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data":    map[string]any{"id": "ad-1", "status": "approved"},
		})
	})
	adoptions := NewAdoptions(client)
	ctx := context.Background()

	got, err := adoptions.Approve(ctx, "ad-1", "home visit went well")
	if err != nil {
		t.Fatalf("Approve() unexpected error: %v", err)
	}
	if got.ID != "ad-1" || got.Status != domain.AdoptionStatusApproved {
		t.Errorf("Approve() = %+v", got)
	}
	if _, err := adoptions.Reject(ctx, "ad-1", "yard is not fenced"); err != nil {
		t.Fatalf("Reject() unexpected error: %v", err)
	}
	if _, err := adoptions.Complete(ctx, "ad-1", []string{"contract.pdf"}); err != nil {
		t.Fatalf("Complete() unexpected error: %v", err)
	}

	calls := rec.calls()
	want := []struct{ path, key string }{
		{"/api/adoptions/ad-1/approve", "notes"},
		{"/api/adoptions/ad-1/reject", "reason"},
		{"/api/adoptions/ad-1/complete", "documents"},
	}
	for i, w := range want {
		if calls[i].method != http.MethodPatch || calls[i].path != w.path {
			t.Errorf("call %d = %s %s", i, calls[i].method, calls[i].path)
		}
		if _, ok := calls[i].body[w.key]; !ok {
			t.Errorf("call %d body %v lacks %q", i, calls[i].body, w.key)
		}
	}
}

func TestAdoptions_RejectNeedsReason(t *testing.T) {
	client, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	_, err := NewAdoptions(client).Reject(context.Background(), "ad-1", "  ")
	var apiErr *apperrors.APIError
	if !errors.As(err, &apiErr) || apiErr.Kind != apperrors.KindValidation || apiErr.Fields["reason"] == "" {
		t.Fatalf("Reject() error = %v", err)
	}
	if len(rec.calls()) != 0 {
		t.Fatal("invalid rejection reached the network")
	}
}

func TestAdoptions_MineAndStats(t *testing.T) {
	client, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/adoptions/stats" {
			writeJSON(w, http.StatusOK, map[string]any{
				"success": true,
				"data":    map[string]any{"total": 3, "pending": 2, "completed": 1, "byMonth": map[string]int{"2026-10": 3}},
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success":    true,
			"data":       []map[string]any{{"id": "ad-1"}},
			"pagination": map[string]any{"page": 2, "limit": 5, "total": 6, "totalPages": 2},
		})
	})
	adoptions := NewAdoptions(client)
	ctx := context.Background()

	page, err := adoptions.Mine(ctx, 2, 5)
	if err != nil {
		t.Fatalf("Mine() unexpected error: %v", err)
	}
	if len(page.Items) != 1 || page.Page != 2 || page.Total != 6 {
		t.Errorf("Mine() = %+v", page)
	}
	stats, err := adoptions.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() unexpected error: %v", err)
	}
	if stats.Total != 3 || stats.Pending != 2 || stats.Completed != 1 || stats.ByMonth["2026-10"] != 3 {
		t.Errorf("Stats() = %+v", stats)
	}

	calls := rec.calls()
	if calls[0].path != "/api/adoptions/mine" || calls[0].query != "limit=5&page=2" {
		t.Errorf("Mine request = %+v", calls[0])
	}
}

func TestCreateAndList_Sequential(t *testing.T) {
	var mu sync.Mutex
	created := false
	client, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		if r.Method == http.MethodPost {
			created = true
			writeJSON(w, http.StatusCreated, map[string]any{"id": "c1", "name": "Ana"})
			return
		}
		if !created {
			t.Error("list issued before create resolved")
		}
		writeJSON(w, http.StatusOK, []map[string]any{{"id": "c1", "name": "Ana"}})
	})
	contact := NewContact(client)

	msg, page, err := contact.CreateAndList(context.Background(), domain.ContactInput{
		Name: "Ana", Email: "ana@example.com", Subject: "Visita", Message: "Posso visitar no sábado?",
	}, ContactQuery{Limit: 10})
	if err != nil {
		t.Fatalf("CreateAndList() unexpected error: %v", err)
	}
	if msg.ID != "c1" || len(page.Items) != 1 {
		t.Fatalf("unexpected result: %+v %+v", msg, page)
	}
	calls := rec.calls()
	if len(calls) != 2 || calls[0].method != http.MethodPost || calls[1].query != "limit=10" {
		t.Errorf("calls = %+v", calls)
	}
}

func TestCreateAndList_CreateFailureSkipsList(t *testing.T) {
	client, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"message": "boom"})
	})
	_, _, err := NewContact(client).CreateAndList(context.Background(), domain.ContactInput{
		Name: "Ana", Email: "ana@example.com", Subject: "Visita", Message: "Posso visitar no sábado?",
	}, ContactQuery{})
	if !apperrors.IsKind(err, apperrors.KindServer) {
		t.Fatalf("expected server error, got %v", err)
	}
	if n := len(rec.calls()); n != 1 {
		t.Errorf("calls = %d, want 1", n)
	}
}

func TestQueryValues_OmitEmpty(t *testing.T) {
	age := 0
	if got := (AnimalQuery{Age: &age}).Values().Encode(); got != "age=0" {
		t.Errorf("AnimalQuery = %q", got)
	}
	if got := (ShelterQuery{}).Values().Encode(); got != "" {
		t.Errorf("ShelterQuery = %q", got)
	}
	if got := (AdoptionQuery{UserID: "u1", Status: domain.AdoptionStatusPending}).Values().Encode(); got != "status=pending&userId=u1" {
		t.Errorf("AdoptionQuery = %q", got)
	}
}

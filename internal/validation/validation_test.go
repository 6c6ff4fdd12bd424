package validation

import (
	"errors"
	"testing"

	"github.com/spec-kit/adoption-client/internal/domain"
	apperrors "github.com/spec-kit/adoption-client/pkg/util"
)

func validShelter() domain.ShelterInput {
	return domain.ShelterInput{
		Name:  "Lar dos Bichos",
		Email: "contato@lar.org",
		Phone: "(11) 98765-4321",
		Address: domain.Address{
			Street:       "Rua das Flores",
			Number:       "100",
			Neighborhood: "Centro",
			City:         "São Paulo",
			State:        "SP",
			ZipCode:      "01001-000",
		},
		Description:    "Abrigo dedicado ao resgate e cuidado de cães e gatos abandonados na cidade.",
		Capacity:       40,
		OperatingHours: "Seg a Sex, 9h as 18h",
	}
}

func TestStruct_Valid(t *testing.T) {
	if err := Struct(validShelter()); err != nil {
		t.Fatalf("Struct() unexpected error: %v", err)
	}
}

func TestStruct_NestedFieldPath(t *testing.T) {
	in := validShelter()
	in.Address.City = ""
	in.Address.ZipCode = "abc"

	err := Struct(in)
	var apiErr *apperrors.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Kind != apperrors.KindValidation || apiErr.Status != apperrors.StatusLocal {
		t.Fatalf("unexpected kind/status: %s/%d", apiErr.Kind, apiErr.Status)
	}
	if _, ok := apiErr.Fields["address.city"]; !ok {
		t.Errorf("missing address.city in %v", apiErr.Fields)
	}
	if _, ok := apiErr.Fields["address.zipCode"]; !ok {
		t.Errorf("missing address.zipCode in %v", apiErr.Fields)
	}
}

func TestStruct_CustomRules(t *testing.T) {
	tests := []struct {
		name  string
		input domain.ContactInput
		field string
	}{
		{"digits in name", domain.ContactInput{Name: "Ana 2", Email: "a@b.com", Subject: "Olá mundo", Message: "Quero adotar um gato"}, "name"},
		{"bad phone", domain.ContactInput{Name: "Ana", Email: "a@b.com", Phone: "11999999999", Subject: "Olá mundo", Message: "Quero adotar um gato"}, "phone"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var apiErr *apperrors.APIError
			if err := Struct(tt.input); !errors.As(err, &apiErr) {
				t.Fatalf("expected *APIError, got %v", err)
			}
			if _, ok := apiErr.Fields[tt.field]; !ok || len(apiErr.Fields) != 1 {
				t.Errorf("fields = %v, want only %q", apiErr.Fields, tt.field)
			}
		})
	}
}

func TestStruct_AccentedLetters(t *testing.T) {
	in := domain.ContactInput{Name: "João Érico", Email: "j@e.com", Phone: "(21) 3333-4444", Subject: "Adoção", Message: "Gostaria de visitar o abrigo"}
	if err := Struct(in); err != nil {
		t.Fatalf("Struct() unexpected error: %v", err)
	}
}

package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/adoption-client/internal/domain"
)

// Fixture accounts created by Seed.
const (
	SeedAdminEmail    = "admin@adocao.dev"
	SeedAdminPassword = "admin12345"
	SeedUserEmail     = "ana@adocao.dev"
	SeedUserPassword  = "senha12345"
)

// Seed loads fixture accounts, shelters and animals.
func Seed(ctx context.Context, authSvc *AuthService, shelters *ShelterService, animals *AnimalService, logger *zap.Logger) error {
	if _, err := authSvc.CreateUser(ctx, "Administrador", SeedAdminEmail, SeedAdminPassword, "(11) 4002-8922", domain.RoleAdmin); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if _, err := authSvc.CreateUser(ctx, "Ana Souza", SeedUserEmail, SeedUserPassword, "(21) 98888-7777", domain.RoleUser); err != nil {
		return fmt.Errorf("seed user: %w", err)
	}

	shelter, err := shelters.Create(ctx, domain.ShelterInput{
		Name:  "Abrigo Patas Felizes",
		Email: "contato@patasfelizes.org",
		Phone: "(11) 3456-7890",
		Address: domain.Address{
			Street:       "Rua dos Girassóis",
			Number:       "250",
			Neighborhood: "Vila Mariana",
			City:         "São Paulo",
			State:        "SP",
			ZipCode:      "04101-000",
		},
		Description:    "Abrigo sem fins lucrativos que resgata, trata e encaminha cães e gatos para adoção responsável.",
		Capacity:       80,
		OperatingHours: "Terça a domingo, das 10h às 17h",
	})
	if err != nil {
		return fmt.Errorf("seed shelter: %w", err)
	}

	fixtures := []domain.AnimalInput{
		{
			Name: "Thor", Species: domain.SpeciesDog, Breed: "Labrador", Age: 3,
			Size: domain.SizeLarge, Gender: domain.GenderMale,
			Description:  "Cão brincalhão e muito carinhoso, se dá bem com crianças.",
			Temperament:  []string{"brincalhão", "carinhoso"},
			HealthStatus: "Vacinado e vermifugado", IsVaccinated: true, IsNeutered: true,
		},
		{
			Name: "Mia", Species: domain.SpeciesCat, Breed: "Siamês", Age: 2,
			Size: domain.SizeSmall, Gender: domain.GenderFemale,
			Description:  "Gata tranquila que adora colo e janelas ensolaradas.",
			Temperament:  []string{"calma", "independente"},
			HealthStatus: "Saudável, castrada", IsVaccinated: true, IsNeutered: true,
		},
		{
			Name: "Pipoca", Species: domain.SpeciesRabbit, Breed: "Mini Lop", Age: 1,
			Size: domain.SizeSmall, Gender: domain.GenderFemale,
			Description:  "Coelha curiosa, precisa de espaço para correr todos os dias.",
			Temperament:  []string{"curiosa"},
			HealthStatus: "Saudável, em acompanhamento",
		},
	}
	for _, in := range fixtures {
		in.ShelterID = shelter.ID
		if _, err := animals.Create(ctx, in); err != nil {
			return fmt.Errorf("seed animal %s: %w", in.Name, err)
		}
	}

	if logger != nil {
		logger.Info("fixtures loaded", zap.Int("animals", len(fixtures)), zap.String("shelter_id", shelter.ID))
	}
	return nil
}

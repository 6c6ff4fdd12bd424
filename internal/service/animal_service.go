package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/adoption-client/internal/domain"
	"github.com/spec-kit/adoption-client/internal/repository"
	apperrors "github.com/spec-kit/adoption-client/pkg/util"
)

// AnimalFilter narrows the animal listing.
type AnimalFilter struct {
	Species   domain.Species
	Size      domain.Size
	Gender    domain.Gender
	Status    domain.AnimalStatus
	ShelterID string
	Age       *int
	Search    string
	Page      int
	Limit     int
}

// AnimalService manages the animal catalog.
type AnimalService struct {
	catalog *repository.Catalog
}

func NewAnimalService(catalog *repository.Catalog) *AnimalService {
	return &AnimalService{catalog: catalog}
}

// List returns animals matching filter, paginated.
func (s *AnimalService) List(ctx context.Context, filter AnimalFilter) ([]domain.Animal, PageInfo) {
	term := strings.ToLower(strings.TrimSpace(filter.Search))
	items := s.catalog.Animals.Filter(ctx, func(a domain.Animal) bool {
		switch {
		case filter.Species != "" && a.Species != filter.Species,
			filter.Size != "" && a.Size != filter.Size,
			filter.Gender != "" && a.Gender != filter.Gender,
			filter.Status != "" && a.Status != filter.Status,
			filter.ShelterID != "" && a.ShelterID != filter.ShelterID,
			filter.Age != nil && a.Age != *filter.Age:
			return false
		}
		return term == "" || containsFold(term, a.Name, a.Breed, a.Description)
	})
	return paginate(items, filter.Page, filter.Limit)
}

// Get returns one animal with its shelter attached.
func (s *AnimalService) Get(ctx context.Context, id string) (*domain.Animal, error) {
	animal, err := s.catalog.Animals.Get(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "animal")
	}
	if shelter, err := s.catalog.Shelters.Get(ctx, animal.ShelterID); err == nil {
		shelter.Animals = nil
		animal.Shelter = &shelter
	}
	return &animal, nil
}

// Create adds an animal to an existing shelter.
func (s *AnimalService) Create(ctx context.Context, in domain.AnimalInput) (*domain.Animal, error) {
	if _, err := s.catalog.Shelters.Get(ctx, in.ShelterID); err != nil {
		return nil, apperrors.NewValidationError("unknown shelter", map[string]any{"shelterId": "shelter does not exist"})
	}
	now := time.Now().UTC()
	animal := domain.Animal{
		ID:             uuid.NewString(),
		Name:           in.Name,
		Species:        in.Species,
		Breed:          in.Breed,
		Age:            in.Age,
		Size:           in.Size,
		Gender:         in.Gender,
		Description:    in.Description,
		Temperament:    in.Temperament,
		HealthStatus:   in.HealthStatus,
		IsVaccinated:   in.IsVaccinated,
		IsNeutered:     in.IsNeutered,
		IsSpecialNeeds: in.IsSpecialNeeds,
		Requirements:   in.Requirements,
		Images:         in.Images,
		ShelterID:      in.ShelterID,
		Status:         domain.AnimalStatusAvailable,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if animal.Images == nil {
		animal.Images = []string{}
	}
	if err := s.catalog.Animals.Insert(ctx, animal); err != nil {
		return nil, mapRepoError(err, "animal")
	}
	return &animal, nil
}

// Update applies the non-nil fields of in.
func (s *AnimalService) Update(ctx context.Context, id string, in domain.AnimalUpdate) (*domain.Animal, error) {
	animal, err := s.catalog.Animals.Get(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "animal")
	}
	if in.ShelterID != nil {
		if _, err := s.catalog.Shelters.Get(ctx, *in.ShelterID); err != nil {
			return nil, apperrors.NewValidationError("unknown shelter", map[string]any{"shelterId": "shelter does not exist"})
		}
		animal.ShelterID = *in.ShelterID
	}
	patch(&animal.Name, in.Name)
	patch(&animal.Species, in.Species)
	patch(&animal.Breed, in.Breed)
	patch(&animal.Age, in.Age)
	patch(&animal.Size, in.Size)
	patch(&animal.Gender, in.Gender)
	patch(&animal.Description, in.Description)
	patch(&animal.HealthStatus, in.HealthStatus)
	patch(&animal.IsVaccinated, in.IsVaccinated)
	patch(&animal.IsNeutered, in.IsNeutered)
	patch(&animal.IsSpecialNeeds, in.IsSpecialNeeds)
	patch(&animal.Requirements, in.Requirements)
	patch(&animal.Status, in.Status)
	if in.Temperament != nil {
		animal.Temperament = in.Temperament
	}
	if in.Images != nil {
		animal.Images = in.Images
	}
	animal.UpdatedAt = time.Now().UTC()
	if err := s.catalog.Animals.Replace(ctx, animal); err != nil {
		return nil, mapRepoError(err, "animal")
	}
	return &animal, nil
}

// Delete removes an animal.
func (s *AnimalService) Delete(ctx context.Context, id string) error {
	return mapRepoError(s.catalog.Animals.Delete(ctx, id), "animal")
}

func (s *AnimalService) setStatus(ctx context.Context, id string, status domain.AnimalStatus) {
	animal, err := s.catalog.Animals.Get(ctx, id)
	if err != nil {
		return
	}
	animal.Status = status
	animal.UpdatedAt = time.Now().UTC()
	_ = s.catalog.Animals.Replace(ctx, animal)
}

func patch[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func containsFold(term string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

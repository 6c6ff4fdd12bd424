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

// ShelterFilter narrows the shelter listing.
type ShelterFilter struct {
	City   string
	State  string
	Search string
	Page   int
	Limit  int
}

// ShelterService manages shelters.
type ShelterService struct {
	catalog *repository.Catalog
}

func NewShelterService(catalog *repository.Catalog) *ShelterService {
	return &ShelterService{catalog: catalog}
}

func (s *ShelterService) List(ctx context.Context, filter ShelterFilter) ([]domain.Shelter, PageInfo) {
	term := strings.ToLower(strings.TrimSpace(filter.Search))
	items := s.catalog.Shelters.Filter(ctx, func(sh domain.Shelter) bool {
		if filter.City != "" && !strings.EqualFold(sh.Address.City, filter.City) {
			return false
		}
		if filter.State != "" && !strings.EqualFold(sh.Address.State, filter.State) {
			return false
		}
		return term == "" || containsFold(term, sh.Name, sh.Description, sh.Address.City)
	})
	return paginate(items, filter.Page, filter.Limit)
}

// Get returns a shelter with the animals it houses.
func (s *ShelterService) Get(ctx context.Context, id string) (*domain.Shelter, error) {
	shelter, err := s.catalog.Shelters.Get(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "shelter")
	}
	shelter.Animals = s.catalog.Animals.Filter(ctx, func(a domain.Animal) bool { return a.ShelterID == id })
	return &shelter, nil
}

func (s *ShelterService) Create(ctx context.Context, in domain.ShelterInput) (*domain.Shelter, error) {
	now := time.Now().UTC()
	shelter := domain.Shelter{
		ID:             uuid.NewString(),
		Name:           in.Name,
		Email:          in.Email,
		Phone:          in.Phone,
		Address:        in.Address,
		Description:    in.Description,
		Capacity:       in.Capacity,
		Website:        in.Website,
		SocialMedia:    in.SocialMedia,
		OperatingHours: in.OperatingHours,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.catalog.Shelters.Insert(ctx, shelter); err != nil {
		return nil, mapRepoError(err, "shelter")
	}
	return &shelter, nil
}

func (s *ShelterService) Update(ctx context.Context, id string, in domain.ShelterUpdate) (*domain.Shelter, error) {
	shelter, err := s.catalog.Shelters.Get(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "shelter")
	}
	patch(&shelter.Name, in.Name)
	patch(&shelter.Email, in.Email)
	patch(&shelter.Phone, in.Phone)
	patch(&shelter.Address, in.Address)
	patch(&shelter.Description, in.Description)
	patch(&shelter.Capacity, in.Capacity)
	patch(&shelter.Website, in.Website)
	patch(&shelter.OperatingHours, in.OperatingHours)
	if in.SocialMedia != nil {
		shelter.SocialMedia = in.SocialMedia
	}
	shelter.UpdatedAt = time.Now().UTC()
	if err := s.catalog.Shelters.Replace(ctx, shelter); err != nil {
		return nil, mapRepoError(err, "shelter")
	}
	return &shelter, nil
}

// Delete removes a shelter that no longer houses animals.
func (s *ShelterService) Delete(ctx context.Context, id string) error {
	if housed := s.catalog.Animals.Filter(ctx, func(a domain.Animal) bool { return a.ShelterID == id }); len(housed) > 0 {
		return apperrors.NewConflict("shelter still houses animals")
	}
	return mapRepoError(s.catalog.Shelters.Delete(ctx, id), "shelter")
}

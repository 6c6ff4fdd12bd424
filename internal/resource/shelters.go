package resource

import (
	"context"

	"github.com/spec-kit/adoption-client/internal/domain"
	"github.com/spec-kit/adoption-client/internal/transport"
)

// Shelters is the client for /shelters.
type Shelters struct {
	crud[domain.Shelter, domain.ShelterInput, domain.ShelterUpdate]
}

func NewShelters(client *transport.Client) *Shelters {
	return &Shelters{newCRUD[domain.Shelter, domain.ShelterInput, domain.ShelterUpdate](client, "/shelters")}
}

func (s *Shelters) List(ctx context.Context, q ShelterQuery) (*Page[domain.Shelter], error) {
	return s.list(ctx, q.Values())
}

func (s *Shelters) CreateAndList(ctx context.Context, in domain.ShelterInput, q ShelterQuery) (*domain.Shelter, *Page[domain.Shelter], error) {
	return s.createAndList(ctx, in, q.Values())
}

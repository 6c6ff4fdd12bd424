package resource

import (
	"context"

	"github.com/spec-kit/adoption-client/internal/domain"
	"github.com/spec-kit/adoption-client/internal/transport"
)

// Animals is the client for /animals. Writes need an admin account.
type Animals struct {
	crud[domain.Animal, domain.AnimalInput, domain.AnimalUpdate]
}

func NewAnimals(client *transport.Client) *Animals {
	return &Animals{newCRUD[domain.Animal, domain.AnimalInput, domain.AnimalUpdate](client, "/animals")}
}

// List returns animals matching q.
func (a *Animals) List(ctx context.Context, q AnimalQuery) (*Page[domain.Animal], error) {
	return a.list(ctx, q.Values())
}

// CreateAndList creates an animal and then reloads the list for q.
func (a *Animals) CreateAndList(ctx context.Context, in domain.AnimalInput, q AnimalQuery) (*domain.Animal, *Page[domain.Animal], error) {
	return a.createAndList(ctx, in, q.Values())
}

func (a *Animals) BySpecies(ctx context.Context, species domain.Species) (*Page[domain.Animal], error) {
	return a.List(ctx, AnimalQuery{Species: species})
}

func (a *Animals) BySize(ctx context.Context, size domain.Size) (*Page[domain.Animal], error) {
	return a.List(ctx, AnimalQuery{Size: size})
}

func (a *Animals) ByStatus(ctx context.Context, status domain.AnimalStatus) (*Page[domain.Animal], error) {
	return a.List(ctx, AnimalQuery{Status: status})
}

// Search matches term against name, breed and description server side.
func (a *Animals) Search(ctx context.Context, term string) (*Page[domain.Animal], error) {
	return a.List(ctx, AnimalQuery{Search: term})
}

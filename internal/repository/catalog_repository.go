package repository

import "github.com/spec-kit/adoption-client/internal/domain"

// Catalog groups the resource collections served by the mock API.
type Catalog struct {
	Animals   *Collection[domain.Animal]
	Shelters  *Collection[domain.Shelter]
	Adoptions *Collection[domain.Adoption]
	Contact   *Collection[domain.ContactMessage]
}

// NewCatalog creates empty collections.
func NewCatalog() *Catalog {
	return &Catalog{
		Animals:   NewCollection(func(a domain.Animal) string { return a.ID }),
		Shelters:  NewCollection(func(s domain.Shelter) string { return s.ID }),
		Adoptions: NewCollection(func(a domain.Adoption) string { return a.ID }),
		Contact:   NewCollection(func(m domain.ContactMessage) string { return m.ID }),
	}
}

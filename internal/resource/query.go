package resource

import (
	"net/url"
	"strconv"

	"github.com/spec-kit/adoption-client/internal/domain"
)

// AnimalQuery filters the animal list. Zero values are omitted.
type AnimalQuery struct {
	Species   domain.Species
	Size      domain.Size
	Age       *int
	Gender    domain.Gender
	Status    domain.AnimalStatus
	ShelterID string
	Search    string
	Page      int
	Limit     int
}

// Values encodes the query string.
func (q AnimalQuery) Values() url.Values {
	v := url.Values{}
	set(v, "species", string(q.Species))
	set(v, "size", string(q.Size))
	if q.Age != nil {
		v.Set("age", strconv.Itoa(*q.Age))
	}
	set(v, "gender", string(q.Gender))
	set(v, "status", string(q.Status))
	set(v, "shelterId", q.ShelterID)
	set(v, "search", q.Search)
	paginate(v, q.Page, q.Limit)
	return v
}

// ShelterQuery filters the shelter list.
type ShelterQuery struct {
	City   string
	State  string
	Search string
	Page   int
	Limit  int
}

func (q ShelterQuery) Values() url.Values {
	v := url.Values{}
	set(v, "city", q.City)
	set(v, "state", q.State)
	set(v, "search", q.Search)
	paginate(v, q.Page, q.Limit)
	return v
}

// AdoptionQuery filters the adoption list.
type AdoptionQuery struct {
	UserID   string
	AnimalID string
	Status   domain.AdoptionStatus
	Page     int
	Limit    int
}

func (q AdoptionQuery) Values() url.Values {
	v := url.Values{}
	set(v, "userId", q.UserID)
	set(v, "animalId", q.AnimalID)
	set(v, "status", string(q.Status))
	paginate(v, q.Page, q.Limit)
	return v
}

// ContactQuery filters stored contact messages.
type ContactQuery struct {
	Search string
	Page   int
	Limit  int
}

func (q ContactQuery) Values() url.Values {
	v := url.Values{}
	set(v, "search", q.Search)
	paginate(v, q.Page, q.Limit)
	return v
}

func set(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}

func paginate(v url.Values, page, limit int) {
	if page > 0 {
		v.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
}

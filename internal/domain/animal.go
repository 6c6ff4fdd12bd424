package domain

import "time"

// Species of an animal.
type Species string

const (
	SpeciesDog     Species = "cachorro"
	SpeciesCat     Species = "gato"
	SpeciesRabbit  Species = "coelho"
	SpeciesHamster Species = "hamster"
	SpeciesOther   Species = "outro"
)

// Size of an animal.
type Size string

const (
	SizeSmall  Size = "pequeno"
	SizeMedium Size = "médio"
	SizeLarge  Size = "grande"
)

// Gender of an animal.
type Gender string

const (
	GenderMale   Gender = "macho"
	GenderFemale Gender = "fêmea"
)

// AnimalStatus tracks adoption availability.
type AnimalStatus string

const (
	AnimalStatusAvailable AnimalStatus = "available"
	AnimalStatusAdopted   AnimalStatus = "adopted"
	AnimalStatusReserved  AnimalStatus = "reserved"
)

// Animal is a pet listed for adoption.
type Animal struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Species        Species      `json:"species"`
	Breed          string       `json:"breed"`
	Age            int          `json:"age"`
	Size           Size         `json:"size"`
	Gender         Gender       `json:"gender"`
	Description    string       `json:"description"`
	Temperament    []string     `json:"temperament"`
	HealthStatus   string       `json:"healthStatus"`
	IsVaccinated   bool         `json:"isVaccinated"`
	IsNeutered     bool         `json:"isNeutered"`
	IsSpecialNeeds bool         `json:"isSpecialNeeds"`
	Requirements   string       `json:"requirements,omitempty"`
	Images         []string     `json:"images"`
	ShelterID      string       `json:"shelterId"`
	Shelter        *Shelter     `json:"shelter,omitempty"`
	Status         AnimalStatus `json:"status"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// AnimalInput is the payload for creating an animal.
type AnimalInput struct {
	Name           string   `json:"name" validate:"required,min=2,max=30"`
	Species        Species  `json:"species" validate:"required,oneof=cachorro gato coelho hamster outro"`
	Breed          string   `json:"breed" validate:"required,min=2,max=50"`
	Age            int      `json:"age" validate:"gte=0,lte=30"`
	Size           Size     `json:"size" validate:"required,oneof=pequeno médio grande"`
	Gender         Gender   `json:"gender" validate:"required,oneof=macho fêmea"`
	Description    string   `json:"description" validate:"required,min=20,max=500"`
	Temperament    []string `json:"temperament" validate:"required,min=1,dive,required"`
	HealthStatus   string   `json:"healthStatus" validate:"required,min=10,max=200"`
	IsVaccinated   bool     `json:"isVaccinated"`
	IsNeutered     bool     `json:"isNeutered"`
	IsSpecialNeeds bool     `json:"isSpecialNeeds"`
	Requirements   string   `json:"requirements,omitempty" validate:"omitempty,max=300"`
	Images         []string `json:"images,omitempty" validate:"omitempty,dive,url"`
	ShelterID      string   `json:"shelterId" validate:"required"`
}

// AnimalUpdate is a partial update; nil fields are left untouched.
type AnimalUpdate struct {
	Name           *string       `json:"name,omitempty" validate:"omitempty,min=2,max=30"`
	Species        *Species      `json:"species,omitempty" validate:"omitempty,oneof=cachorro gato coelho hamster outro"`
	Breed          *string       `json:"breed,omitempty" validate:"omitempty,min=2,max=50"`
	Age            *int          `json:"age,omitempty" validate:"omitempty,gte=0,lte=30"`
	Size           *Size         `json:"size,omitempty" validate:"omitempty,oneof=pequeno médio grande"`
	Gender         *Gender       `json:"gender,omitempty" validate:"omitempty,oneof=macho fêmea"`
	Description    *string       `json:"description,omitempty" validate:"omitempty,min=20,max=500"`
	Temperament    []string      `json:"temperament,omitempty" validate:"omitempty,min=1,dive,required"`
	HealthStatus   *string       `json:"healthStatus,omitempty" validate:"omitempty,min=10,max=200"`
	IsVaccinated   *bool         `json:"isVaccinated,omitempty"`
	IsNeutered     *bool         `json:"isNeutered,omitempty"`
	IsSpecialNeeds *bool         `json:"isSpecialNeeds,omitempty"`
	Requirements   *string       `json:"requirements,omitempty" validate:"omitempty,max=300"`
	Images         []string      `json:"images,omitempty" validate:"omitempty,dive,url"`
	ShelterID      *string       `json:"shelterId,omitempty" validate:"omitempty,min=1"`
	Status         *AnimalStatus `json:"status,omitempty" validate:"omitempty,oneof=available adopted reserved"`
}

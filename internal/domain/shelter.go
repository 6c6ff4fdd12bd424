package domain

import "time"

// Address of a shelter.
type Address struct {
	Street       string `json:"street" validate:"required,min=5,max=100"`
	Number       string `json:"number" validate:"required"`
	Neighborhood string `json:"neighborhood" validate:"required,min=2,max=50"`
	City         string `json:"city" validate:"required,min=2,max=50"`
	State        string `json:"state" validate:"required,len=2"`
	ZipCode      string `json:"zipCode" validate:"required,zipcode_br"`
}

// SocialMedia handles of a shelter.
type SocialMedia struct {
	Instagram string `json:"instagram,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
}

// Shelter houses animals available for adoption.
type Shelter struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Email          string       `json:"email"`
	Phone          string       `json:"phone"`
	Address        Address      `json:"address"`
	Description    string       `json:"description"`
	Capacity       int          `json:"capacity"`
	Website        string       `json:"website,omitempty"`
	SocialMedia    *SocialMedia `json:"socialMedia,omitempty"`
	OperatingHours string       `json:"operatingHours"`
	Animals        []Animal     `json:"animals,omitempty"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// ShelterInput is the payload for creating a shelter.
type ShelterInput struct {
	Name           string       `json:"name" validate:"required,min=3,max=100"`
	Email          string       `json:"email" validate:"required,email"`
	Phone          string       `json:"phone" validate:"required,phone_br"`
	Address        Address      `json:"address"`
	Description    string       `json:"description" validate:"required,min=50,max=1000"`
	Capacity       int          `json:"capacity" validate:"gte=1,lte=1000"`
	Website        string       `json:"website,omitempty" validate:"omitempty,url"`
	SocialMedia    *SocialMedia `json:"socialMedia,omitempty"`
	OperatingHours string       `json:"operatingHours" validate:"required,min=10,max=200"`
}

// ShelterUpdate is a partial update; nil fields are left untouched.
type ShelterUpdate struct {
	Name           *string      `json:"name,omitempty" validate:"omitempty,min=3,max=100"`
	Email          *string      `json:"email,omitempty" validate:"omitempty,email"`
	Phone          *string      `json:"phone,omitempty" validate:"omitempty,phone_br"`
	Address        *Address     `json:"address,omitempty" validate:"omitempty"`
	Description    *string      `json:"description,omitempty" validate:"omitempty,min=50,max=1000"`
	Capacity       *int         `json:"capacity,omitempty" validate:"omitempty,gte=1,lte=1000"`
	Website        *string      `json:"website,omitempty" validate:"omitempty,url"`
	SocialMedia    *SocialMedia `json:"socialMedia,omitempty"`
	OperatingHours *string      `json:"operatingHours,omitempty" validate:"omitempty,min=10,max=200"`
}

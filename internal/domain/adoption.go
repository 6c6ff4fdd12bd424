package domain

import "time"

// AdoptionStatus tracks the review of an adoption request.
type AdoptionStatus string

const (
	AdoptionStatusPending   AdoptionStatus = "pending"
	AdoptionStatusApproved  AdoptionStatus = "approved"
	AdoptionStatusRejected  AdoptionStatus = "rejected"
	AdoptionStatusCompleted AdoptionStatus = "completed"
)

// Adoption is a request by a user to adopt an animal.
type Adoption struct {
	ID              string         `json:"id"`
	UserID          string         `json:"userId"`
	AnimalID        string         `json:"animalId"`
	User            *User          `json:"user,omitempty"`
	Animal          *Animal        `json:"animal,omitempty"`
	Status          AdoptionStatus `json:"status"`
	Message         string         `json:"message,omitempty"`
	PreferredDate   string         `json:"preferredDate,omitempty"`
	ApprovedAt      *time.Time     `json:"approvedAt,omitempty"`
	RejectedAt      *time.Time     `json:"rejectedAt,omitempty"`
	CompletedAt     *time.Time     `json:"completedAt,omitempty"`
	Notes           string         `json:"notes,omitempty"`
	RejectionReason string         `json:"rejectionReason,omitempty"`
	Documents       []string       `json:"documents,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// AdoptionInput is the payload for requesting an adoption.
type AdoptionInput struct {
	AnimalID      string `json:"animalId" validate:"required"`
	Message       string `json:"message,omitempty" validate:"omitempty,max=1000"`
	PreferredDate string `json:"preferredDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// AdoptionUpdate is used by reviewers to change a request.
type AdoptionUpdate struct {
	Status *AdoptionStatus `json:"status,omitempty" validate:"omitempty,oneof=pending approved rejected completed"`
	Notes  *string         `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// AdoptionApproval is the body of PATCH /adoptions/{id}/approve.
type AdoptionApproval struct {
	Notes string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// AdoptionRejection is the body of PATCH /adoptions/{id}/reject.
type AdoptionRejection struct {
	Reason string `json:"reason" validate:"required,min=5,max=500"`
}

// AdoptionCompletion is the body of PATCH /adoptions/{id}/complete.
type AdoptionCompletion struct {
	Documents []string `json:"documents,omitempty" validate:"omitempty,dive,required,max=200"`
}

// AdoptionCancellation is the optional body of DELETE /adoptions/{id}.
type AdoptionCancellation struct {
	Reason string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// AdoptionStats counts requests by status and by creation month (YYYY-MM).
type AdoptionStats struct {
	Total     int            `json:"total"`
	Pending   int            `json:"pending"`
	Approved  int            `json:"approved"`
	Rejected  int            `json:"rejected"`
	Completed int            `json:"completed"`
	ByMonth   map[string]int `json:"byMonth"`
}

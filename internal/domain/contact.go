package domain

import "time"

// ContactMessage is a message sent through the contact form.
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// ContactInput is the payload for POST /contact.
type ContactInput struct {
	Name    string `json:"name" validate:"required,min=2,max=50,letters"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone,omitempty" validate:"omitempty,phone_br"`
	Subject string `json:"subject" validate:"required,min=5,max=100"`
	Message string `json:"message" validate:"required,min=10,max=1000"`
}

// ContactUpdate is a partial update of a stored message.
type ContactUpdate struct {
	Subject *string `json:"subject,omitempty" validate:"omitempty,min=5,max=100"`
	Message *string `json:"message,omitempty" validate:"omitempty,min=10,max=1000"`
}

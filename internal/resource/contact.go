package resource

import (
	"context"

	"github.com/spec-kit/adoption-client/internal/domain"
	"github.com/spec-kit/adoption-client/internal/transport"
)

// Contact is the client for /contact. Sending is public; reading stored
// messages needs an admin account.
type Contact struct {
	crud[domain.ContactMessage, domain.ContactInput, domain.ContactUpdate]
}

func NewContact(client *transport.Client) *Contact {
	return &Contact{newCRUD[domain.ContactMessage, domain.ContactInput, domain.ContactUpdate](client, "/contact")}
}

// Send submits the contact form.
func (c *Contact) Send(ctx context.Context, in domain.ContactInput) (*domain.ContactMessage, error) {
	return c.Create(ctx, in)
}

func (c *Contact) List(ctx context.Context, q ContactQuery) (*Page[domain.ContactMessage], error) {
	return c.list(ctx, q.Values())
}

func (c *Contact) CreateAndList(ctx context.Context, in domain.ContactInput, q ContactQuery) (*domain.ContactMessage, *Page[domain.ContactMessage], error) {
	return c.createAndList(ctx, in, q.Values())
}

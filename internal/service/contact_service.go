package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/adoption-client/internal/domain"
	"github.com/spec-kit/adoption-client/internal/repository"
)

// ContactService stores contact form submissions.
type ContactService struct {
	catalog *repository.Catalog
}

func NewContactService(catalog *repository.Catalog) *ContactService {
	return &ContactService{catalog: catalog}
}

func (s *ContactService) Create(ctx context.Context, in domain.ContactInput) (*domain.ContactMessage, error) {
	msg := domain.ContactMessage{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Subject:   in.Subject,
		Message:   in.Message,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.catalog.Contact.Insert(ctx, msg); err != nil {
		return nil, mapRepoError(err, "contact message")
	}
	return &msg, nil
}

func (s *ContactService) List(ctx context.Context, search string, page, limit int) ([]domain.ContactMessage, PageInfo) {
	term := strings.ToLower(strings.TrimSpace(search))
	items := s.catalog.Contact.Filter(ctx, func(m domain.ContactMessage) bool {
		return term == "" || containsFold(term, m.Name, m.Email, m.Subject, m.Message)
	})
	return paginate(items, page, limit)
}

func (s *ContactService) Get(ctx context.Context, id string) (*domain.ContactMessage, error) {
	msg, err := s.catalog.Contact.Get(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "contact message")
	}
	return &msg, nil
}

func (s *ContactService) Update(ctx context.Context, id string, in domain.ContactUpdate) (*domain.ContactMessage, error) {
	msg, err := s.catalog.Contact.Get(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "contact message")
	}
	patch(&msg.Subject, in.Subject)
	patch(&msg.Message, in.Message)
	if err := s.catalog.Contact.Replace(ctx, msg); err != nil {
		return nil, mapRepoError(err, "contact message")
	}
	return &msg, nil
}

func (s *ContactService) Delete(ctx context.Context, id string) error {
	return mapRepoError(s.catalog.Contact.Delete(ctx, id), "contact message")
}

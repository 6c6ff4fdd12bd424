package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/adoption-client/internal/auth"
	"github.com/spec-kit/adoption-client/internal/domain"
	"github.com/spec-kit/adoption-client/internal/repository"
	apperrors "github.com/spec-kit/adoption-client/pkg/util"
)

// AdoptionFilter narrows the adoption listing.
type AdoptionFilter struct {
	UserID   string
	AnimalID string
	Status   domain.AdoptionStatus
	Page     int
	Limit    int
}

// AdoptionService runs the adoption request workflow. A request reserves
// the animal while pending or approved; completion marks it adopted;
// rejection or cancellation makes it available again.
type AdoptionService struct {
	catalog *repository.Catalog
	animals *AnimalService
	users   repository.UserRepository
	logger  *zap.Logger
}

func NewAdoptionService(catalog *repository.Catalog, animals *AnimalService, users repository.UserRepository, logger *zap.Logger) *AdoptionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdoptionService{catalog: catalog, animals: animals, users: users, logger: logger}
}

// transitions lists the statuses each status may move to. Rejected and
// completed requests are final.
var transitions = map[domain.AdoptionStatus][]domain.AdoptionStatus{
	domain.AdoptionStatusPending:  {domain.AdoptionStatusApproved, domain.AdoptionStatusRejected},
	domain.AdoptionStatusApproved: {domain.AdoptionStatusCompleted, domain.AdoptionStatusRejected, domain.AdoptionStatusPending},
}

// List returns every request for reviewers and only their own for users.
func (s *AdoptionService) List(ctx context.Context, principal *auth.Principal, filter AdoptionFilter) ([]domain.Adoption, PageInfo) {
	if !isReviewer(principal) {
		filter.UserID = principal.UserID
	}
	items := s.catalog.Adoptions.Filter(ctx, func(a domain.Adoption) bool {
		switch {
		case filter.UserID != "" && a.UserID != filter.UserID,
			filter.AnimalID != "" && a.AnimalID != filter.AnimalID,
			filter.Status != "" && a.Status != filter.Status:
			return false
		}
		return true
	})
	return paginate(items, filter.Page, filter.Limit)
}

func (s *AdoptionService) Get(ctx context.Context, principal *auth.Principal, id string) (*domain.Adoption, error) {
	adoption, err := s.visible(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	if animal, err := s.catalog.Animals.Get(ctx, adoption.AnimalID); err == nil {
		adoption.Animal = &animal
	}
	if user, err := s.users.GetByID(ctx, adoption.UserID); err == nil {
		adoption.User = &user.User
	}
	return adoption, nil
}

// Create files a request for an available animal.
func (s *AdoptionService) Create(ctx context.Context, principal *auth.Principal, in domain.AdoptionInput) (*domain.Adoption, error) {
	animal, err := s.catalog.Animals.Get(ctx, in.AnimalID)
	if err != nil {
		return nil, apperrors.NewValidationError("unknown animal", map[string]any{"animalId": "animal does not exist"})
	}
	if animal.Status != domain.AnimalStatusAvailable {
		return nil, apperrors.NewValidationError("animal is not available", map[string]any{"animalId": "animal is not available"})
	}
	now := time.Now().UTC()
	adoption := domain.Adoption{
		ID:            uuid.NewString(),
		UserID:        principal.UserID,
		AnimalID:      in.AnimalID,
		Status:        domain.AdoptionStatusPending,
		Message:       in.Message,
		PreferredDate: in.PreferredDate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.catalog.Adoptions.Insert(ctx, adoption); err != nil {
		return nil, mapRepoError(err, "adoption")
	}
	s.animals.setStatus(ctx, animal.ID, domain.AnimalStatusReserved)
	return &adoption, nil
}

// Update lets reviewers change status or notes.
func (s *AdoptionService) Update(ctx context.Context, id string, in domain.AdoptionUpdate) (*domain.Adoption, error) {
	return s.modify(ctx, id, func(adoption *domain.Adoption, now time.Time) error {
		if in.Status != nil && *in.Status != adoption.Status {
			if err := s.transition(ctx, adoption, *in.Status, now); err != nil {
				return err
			}
		}
		patch(&adoption.Notes, in.Notes)
		return nil
	})
}

// Approve accepts a pending request.
func (s *AdoptionService) Approve(ctx context.Context, id string, in domain.AdoptionApproval) (*domain.Adoption, error) {
	return s.modify(ctx, id, func(adoption *domain.Adoption, now time.Time) error {
		if in.Notes != "" {
			adoption.Notes = in.Notes
		}
		return s.transition(ctx, adoption, domain.AdoptionStatusApproved, now)
	})
}

// Reject declines a pending or approved request.
func (s *AdoptionService) Reject(ctx context.Context, id string, in domain.AdoptionRejection) (*domain.Adoption, error) {
	return s.modify(ctx, id, func(adoption *domain.Adoption, now time.Time) error {
		adoption.RejectionReason = in.Reason
		return s.transition(ctx, adoption, domain.AdoptionStatusRejected, now)
	})
}

// Complete finalizes an approved request; the animal becomes adopted.
func (s *AdoptionService) Complete(ctx context.Context, id string, in domain.AdoptionCompletion) (*domain.Adoption, error) {
	return s.modify(ctx, id, func(adoption *domain.Adoption, now time.Time) error {
		adoption.Documents = append(adoption.Documents, in.Documents...)
		return s.transition(ctx, adoption, domain.AdoptionStatusCompleted, now)
	})
}

// Mine lists the caller's own requests whatever their role.
func (s *AdoptionService) Mine(ctx context.Context, principal *auth.Principal, page, limit int) ([]domain.Adoption, PageInfo) {
	items := s.catalog.Adoptions.Filter(ctx, func(a domain.Adoption) bool {
		return a.UserID == principal.UserID
	})
	return paginate(items, page, limit)
}

// Stats counts every request by status and by creation month.
func (s *AdoptionService) Stats(ctx context.Context) domain.AdoptionStats {
	stats := domain.AdoptionStats{ByMonth: map[string]int{}}
	for _, a := range s.catalog.Adoptions.Filter(ctx, func(domain.Adoption) bool { return true }) {
		stats.Total++
		stats.ByMonth[a.CreatedAt.Format("2006-01")]++
		switch a.Status {
		case domain.AdoptionStatusPending:
			stats.Pending++
		case domain.AdoptionStatusApproved:
			stats.Approved++
		case domain.AdoptionStatusRejected:
			stats.Rejected++
		case domain.AdoptionStatusCompleted:
			stats.Completed++
		}
	}
	return stats
}

// Cancel withdraws a request. Owners may cancel their own pending requests;
// reviewers may cancel anything not yet completed.
func (s *AdoptionService) Cancel(ctx context.Context, principal *auth.Principal, id string, in domain.AdoptionCancellation) error {
	adoption, err := s.visible(ctx, principal, id)
	if err != nil {
		return err
	}
	switch {
	case adoption.Status == domain.AdoptionStatusCompleted:
		return apperrors.NewConflict("completed adoptions cannot be cancelled")
	case !isReviewer(principal) && adoption.Status != domain.AdoptionStatusPending:
		return apperrors.NewConflict("only pending requests can be cancelled")
	}
	if err := s.catalog.Adoptions.Delete(ctx, id); err != nil {
		return mapRepoError(err, "adoption")
	}
	if adoption.Status != domain.AdoptionStatusRejected {
		s.animals.setStatus(ctx, adoption.AnimalID, domain.AnimalStatusAvailable)
	}
	s.logger.Info("adoption cancelled",
		zap.String("adoption_id", id),
		zap.String("by", principal.UserID),
		zap.String("reason", in.Reason),
	)
	return nil
}

func (s *AdoptionService) modify(ctx context.Context, id string, apply func(*domain.Adoption, time.Time) error) (*domain.Adoption, error) {
	adoption, err := s.catalog.Adoptions.Get(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "adoption")
	}
	now := time.Now().UTC()
	if err := apply(&adoption, now); err != nil {
		return nil, err
	}
	adoption.UpdatedAt = now
	if err := s.catalog.Adoptions.Replace(ctx, adoption); err != nil {
		return nil, mapRepoError(err, "adoption")
	}
	return &adoption, nil
}

// transition moves adoption to status and keeps the animal in step.
func (s *AdoptionService) transition(ctx context.Context, adoption *domain.Adoption, to domain.AdoptionStatus, now time.Time) error {
	if !slices.Contains(transitions[adoption.Status], to) {
		return apperrors.NewConflict(fmt.Sprintf("adoption cannot move from %s to %s", adoption.Status, to))
	}
	adoption.Status = to
	switch to {
	case domain.AdoptionStatusApproved:
		adoption.ApprovedAt = &now
		s.animals.setStatus(ctx, adoption.AnimalID, domain.AnimalStatusReserved)
	case domain.AdoptionStatusRejected:
		adoption.RejectedAt = &now
		s.animals.setStatus(ctx, adoption.AnimalID, domain.AnimalStatusAvailable)
	case domain.AdoptionStatusCompleted:
		adoption.CompletedAt = &now
		s.animals.setStatus(ctx, adoption.AnimalID, domain.AnimalStatusAdopted)
	case domain.AdoptionStatusPending:
		s.animals.setStatus(ctx, adoption.AnimalID, domain.AnimalStatusReserved)
	}
	return nil
}

// visible hides other users' requests behind a not-found error.
func (s *AdoptionService) visible(ctx context.Context, principal *auth.Principal, id string) (*domain.Adoption, error) {
	adoption, err := s.catalog.Adoptions.Get(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "adoption")
	}
	if !isReviewer(principal) && adoption.UserID != principal.UserID {
		return nil, apperrors.NewNotFound("adoption")
	}
	return &adoption, nil
}

func isReviewer(p *auth.Principal) bool {
	return p != nil && (p.Role == domain.RoleAdmin || p.Role == domain.RoleShelter)
}

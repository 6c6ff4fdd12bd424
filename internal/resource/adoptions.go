package resource

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/spec-kit/adoption-client/internal/domain"
	"github.com/spec-kit/adoption-client/internal/transport"
	"github.com/spec-kit/adoption-client/internal/validation"
)

// Adoptions is the client for /adoptions. Regular users only see their own
// requests; reviewers update status.
type Adoptions struct {
	crud[domain.Adoption, domain.AdoptionInput, domain.AdoptionUpdate]
}

func NewAdoptions(client *transport.Client) *Adoptions {
	return &Adoptions{newCRUD[domain.Adoption, domain.AdoptionInput, domain.AdoptionUpdate](client, "/adoptions")}
}

func (a *Adoptions) List(ctx context.Context, q AdoptionQuery) (*Page[domain.Adoption], error) {
	return a.list(ctx, q.Values())
}

func (a *Adoptions) CreateAndList(ctx context.Context, in domain.AdoptionInput, q AdoptionQuery) (*domain.Adoption, *Page[domain.Adoption], error) {
	return a.createAndList(ctx, in, q.Values())
}

func (a *Adoptions) ByStatus(ctx context.Context, status domain.AdoptionStatus) (*Page[domain.Adoption], error) {
	return a.List(ctx, AdoptionQuery{Status: status})
}

func (a *Adoptions) ByAnimal(ctx context.Context, animalID string) (*Page[domain.Adoption], error) {
	return a.List(ctx, AdoptionQuery{AnimalID: animalID})
}

// Mine lists the signed-in account's own requests.
func (a *Adoptions) Mine(ctx context.Context, page, limit int) (*Page[domain.Adoption], error) {
	q := url.Values{}
	paginate(q, page, limit)
	return a.listAt(ctx, a.path+"/mine", q)
}

// Stats returns request counts. Reviewers only.
func (a *Adoptions) Stats(ctx context.Context) (*domain.AdoptionStats, error) {
	var out domain.AdoptionStats
	if err := a.call(ctx, http.MethodGet, a.path+"/stats", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Approve moves a pending request to approved; the animal stays reserved.
func (a *Adoptions) Approve(ctx context.Context, id, notes string) (*domain.Adoption, error) {
	return a.review(ctx, id, "approve", domain.AdoptionApproval{Notes: strings.TrimSpace(notes)})
}

// Reject closes a request with a reason and frees the animal.
func (a *Adoptions) Reject(ctx context.Context, id, reason string) (*domain.Adoption, error) {
	return a.review(ctx, id, "reject", domain.AdoptionRejection{Reason: strings.TrimSpace(reason)})
}

// Complete finalises an approved request; the animal becomes adopted.
func (a *Adoptions) Complete(ctx context.Context, id string, documents []string) (*domain.Adoption, error) {
	return a.review(ctx, id, "complete", domain.AdoptionCompletion{Documents: documents})
}

// Cancel withdraws an adoption request. reason may be empty.
func (a *Adoptions) Cancel(ctx context.Context, id, reason string) error {
	target, err := a.item(id)
	if err != nil {
		return err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return a.client.Do(ctx, http.MethodDelete, target, nil, nil, nil)
	}
	in := domain.AdoptionCancellation{Reason: reason}
	if err := validation.Struct(in); err != nil {
		return err
	}
	return a.client.Do(ctx, http.MethodDelete, target, nil, in, nil)
}

func (a *Adoptions) review(ctx context.Context, id, action string, in any) (*domain.Adoption, error) {
	target, err := a.item(id)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	var out domain.Adoption
	if err := a.call(ctx, http.MethodPatch, target+"/"+action, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

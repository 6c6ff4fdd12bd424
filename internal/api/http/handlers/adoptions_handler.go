package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/adoption-client/internal/api/dto"
	"github.com/spec-kit/adoption-client/internal/domain"
	"github.com/spec-kit/adoption-client/internal/service"
)

// AdoptionsHandler exposes adoption requests.
type AdoptionsHandler struct {
	adoptions *service.AdoptionService
}

func NewAdoptionsHandler(adoptions *service.AdoptionService) *AdoptionsHandler {
	return &AdoptionsHandler{adoptions: adoptions}
}

func (h *AdoptionsHandler) List(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	items, info := h.adoptions.List(c.UserContext(), p, service.AdoptionFilter{
		UserID:   c.Query("userId"),
		AnimalID: c.Query("animalId"),
		Status:   domain.AdoptionStatus(c.Query("status")),
		Page:     c.QueryInt("page"),
		Limit:    c.QueryInt("limit"),
	})
	return c.JSON(dto.List(items, info))
}

func (h *AdoptionsHandler) Get(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	adoption, err := h.adoptions.Get(c.UserContext(), p, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(adoption))
}

func (h *AdoptionsHandler) Create(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var in domain.AdoptionInput
	if err := bind(c, &in); err != nil {
		return err
	}
	adoption, err := h.adoptions.Create(c.UserContext(), p, in)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.OK(adoption))
}

func (h *AdoptionsHandler) Update(c *fiber.Ctx) error {
	var in domain.AdoptionUpdate
	if err := bind(c, &in); err != nil {
		return err
	}
	adoption, err := h.adoptions.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(adoption))
}

// Approve handles PATCH /api/adoptions/:id/approve.
func (h *AdoptionsHandler) Approve(c *fiber.Ctx) error {
	var in domain.AdoptionApproval
	if err := bindOptional(c, &in); err != nil {
		return err
	}
	adoption, err := h.adoptions.Approve(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(adoption))
}

// Reject handles PATCH /api/adoptions/:id/reject.
func (h *AdoptionsHandler) Reject(c *fiber.Ctx) error {
	var in domain.AdoptionRejection
	if err := bind(c, &in); err != nil {
		return err
	}
	adoption, err := h.adoptions.Reject(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(adoption))
}

// Complete handles PATCH /api/adoptions/:id/complete.
func (h *AdoptionsHandler) Complete(c *fiber.Ctx) error {
	var in domain.AdoptionCompletion
	if err := bindOptional(c, &in); err != nil {
		return err
	}
	adoption, err := h.adoptions.Complete(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(adoption))
}

// Mine handles GET /api/adoptions/mine.
func (h *AdoptionsHandler) Mine(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	items, info := h.adoptions.Mine(c.UserContext(), p, c.QueryInt("page"), c.QueryInt("limit"))
	return c.JSON(dto.List(items, info))
}

// Stats handles GET /api/adoptions/stats.
func (h *AdoptionsHandler) Stats(c *fiber.Ctx) error {
	return c.JSON(dto.OK(h.adoptions.Stats(c.UserContext())))
}

// Cancel handles DELETE /api/adoptions/:id with an optional reason.
func (h *AdoptionsHandler) Cancel(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var in domain.AdoptionCancellation
	if err := bindOptional(c, &in); err != nil {
		return err
	}
	if err := h.adoptions.Cancel(c.UserContext(), p, c.Params("id"), in); err != nil {
		return err
	}
	return c.JSON(dto.Message("adoption cancelled"))
}

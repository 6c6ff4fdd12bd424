package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/adoption-client/internal/api/dto"
	"github.com/spec-kit/adoption-client/internal/domain"
	"github.com/spec-kit/adoption-client/internal/service"
)

// SheltersHandler exposes shelters.
type SheltersHandler struct {
	shelters *service.ShelterService
}

func NewSheltersHandler(shelters *service.ShelterService) *SheltersHandler {
	return &SheltersHandler{shelters: shelters}
}

func (h *SheltersHandler) List(c *fiber.Ctx) error {
	items, info := h.shelters.List(c.UserContext(), service.ShelterFilter{
		City:   c.Query("city"),
		State:  c.Query("state"),
		Search: c.Query("search"),
		Page:   c.QueryInt("page"),
		Limit:  c.QueryInt("limit"),
	})
	return c.JSON(dto.List(items, info))
}

func (h *SheltersHandler) Get(c *fiber.Ctx) error {
	shelter, err := h.shelters.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(shelter))
}

func (h *SheltersHandler) Create(c *fiber.Ctx) error {
	var in domain.ShelterInput
	if err := bind(c, &in); err != nil {
		return err
	}
	shelter, err := h.shelters.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.OK(shelter))
}

func (h *SheltersHandler) Update(c *fiber.Ctx) error {
	var in domain.ShelterUpdate
	if err := bind(c, &in); err != nil {
		return err
	}
	shelter, err := h.shelters.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(shelter))
}

func (h *SheltersHandler) Delete(c *fiber.Ctx) error {
	if err := h.shelters.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.Message("shelter deleted"))
}

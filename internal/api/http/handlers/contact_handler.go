package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/adoption-client/internal/api/dto"
	"github.com/spec-kit/adoption-client/internal/domain"
	"github.com/spec-kit/adoption-client/internal/service"
)

// ContactHandler exposes the contact form and its inbox.
type ContactHandler struct {
	contact *service.ContactService
}

func NewContactHandler(contact *service.ContactService) *ContactHandler {
	return &ContactHandler{contact: contact}
}

// Send handles the public POST /api/contact.
func (h *ContactHandler) Send(c *fiber.Ctx) error {
	var in domain.ContactInput
	if err := bind(c, &in); err != nil {
		return err
	}
	msg, err := h.contact.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.OK(msg))
}

func (h *ContactHandler) List(c *fiber.Ctx) error {
	items, info := h.contact.List(c.UserContext(), c.Query("search"), c.QueryInt("page"), c.QueryInt("limit"))
	return c.JSON(dto.List(items, info))
}

func (h *ContactHandler) Get(c *fiber.Ctx) error {
	msg, err := h.contact.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(msg))
}

func (h *ContactHandler) Update(c *fiber.Ctx) error {
	var in domain.ContactUpdate
	if err := bind(c, &in); err != nil {
		return err
	}
	msg, err := h.contact.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(msg))
}

func (h *ContactHandler) Delete(c *fiber.Ctx) error {
	if err := h.contact.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.Message("message deleted"))
}

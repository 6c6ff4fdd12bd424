package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/adoption-client/internal/api/dto"
	"github.com/spec-kit/adoption-client/internal/domain"
	"github.com/spec-kit/adoption-client/internal/service"
)

// AnimalsHandler exposes the animal catalog.
type AnimalsHandler struct {
	animals *service.AnimalService
}

func NewAnimalsHandler(animals *service.AnimalService) *AnimalsHandler {
	return &AnimalsHandler{animals: animals}
}

// List handles GET /api/animals.
func (h *AnimalsHandler) List(c *fiber.Ctx) error {
	age, err := queryIntPtr(c, "age")
	if err != nil {
		return err
	}
	items, info := h.animals.List(c.UserContext(), service.AnimalFilter{
		Species:   domain.Species(c.Query("species")),
		Size:      domain.Size(c.Query("size")),
		Gender:    domain.Gender(c.Query("gender")),
		Status:    domain.AnimalStatus(c.Query("status")),
		ShelterID: c.Query("shelterId"),
		Age:       age,
		Search:    c.Query("search"),
		Page:      c.QueryInt("page"),
		Limit:     c.QueryInt("limit"),
	})
	return c.JSON(dto.List(items, info))
}

func (h *AnimalsHandler) Get(c *fiber.Ctx) error {
	animal, err := h.animals.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(animal))
}

func (h *AnimalsHandler) Create(c *fiber.Ctx) error {
	var in domain.AnimalInput
	if err := bind(c, &in); err != nil {
		return err
	}
	animal, err := h.animals.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.OK(animal))
}

func (h *AnimalsHandler) Update(c *fiber.Ctx) error {
	var in domain.AnimalUpdate
	if err := bind(c, &in); err != nil {
		return err
	}
	animal, err := h.animals.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(animal))
}

func (h *AnimalsHandler) Delete(c *fiber.Ctx) error {
	if err := h.animals.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.Message("animal deleted"))
}

package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/adoption-client/internal/auth"
	"github.com/spec-kit/adoption-client/internal/validation"
	apperrors "github.com/spec-kit/adoption-client/pkg/util"
)

// bind parses the JSON body into out and validates it.
func bind(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validation.Struct(out); err != nil {
		var apiErr *apperrors.APIError
		if errors.As(err, &apiErr) {
			details := make(map[string]any, len(apiErr.Fields))
			for field, msg := range apiErr.Fields {
				details[field] = msg
			}
			return apperrors.NewValidationError("validation failed", details)
		}
		return err
	}
	return nil
}

// bindOptional is bind for endpoints whose body may be empty.
func bindOptional(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	return bind(c, out)
}

func principal(c *fiber.Ctx) (*auth.Principal, error) {
	p, ok := auth.PrincipalFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	return p, nil
}

func queryIntPtr(c *fiber.Ctx, key string) (*int, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid query parameter", map[string]any{key: "must be a number"})
	}
	return &val, nil
}

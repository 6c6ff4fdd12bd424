package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/adoption-client/internal/api/dto"
	"github.com/spec-kit/adoption-client/internal/domain"
	"github.com/spec-kit/adoption-client/internal/service"
)

const (
	refreshCookieName = "refresh_token"
	refreshCookiePath = "/api/auth"
)

// AuthHandler exposes account and session endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req domain.RegisterRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	sess, err := h.auth.Register(c.UserContext(), req)
	if err != nil {
		return err
	}
	return h.respond(c, http.StatusCreated, "account created", sess)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req domain.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	sess, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return h.respond(c, http.StatusOK, "signed in", sess)
}

// Refresh handles POST /api/auth/refresh using the refresh cookie.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	sess, err := h.auth.Refresh(c.UserContext(), c.Cookies(refreshCookieName))
	if err != nil {
		clearRefreshCookie(c)
		return err
	}
	return h.respond(c, http.StatusOK, "", sess)
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.auth.Logout(c.UserContext(), c.Cookies(refreshCookieName)); err != nil {
		return err
	}
	clearRefreshCookie(c)
	return c.JSON(dto.Message("signed out"))
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	user, err := h.auth.Me(c.UserContext(), p.UserID)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(user))
}

// UpdateProfile handles PUT /api/auth/profile.
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req domain.ProfileUpdate
	if err := bind(c, &req); err != nil {
		return err
	}
	user, err := h.auth.UpdateProfile(c.UserContext(), p.UserID, req)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(user))
}

// ChangePassword handles PUT /api/auth/change-password.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req domain.PasswordChange
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.auth.ChangePassword(c.UserContext(), p.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(dto.Message("password changed"))
}

// ForgotPassword handles POST /api/auth/forgot-password. The answer is the
// same whether or not the address exists.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	token, err := h.auth.RequestPasswordReset(c.UserContext(), req.Email)
	if err != nil {
		return err
	}
	resp := dto.Envelope{Success: true, Message: "if the address exists a reset link was sent"}
	if token != nil {
		resp.Data = dto.ResetTokenResponse{ResetToken: token.Token}
	}
	return c.Status(http.StatusAccepted).JSON(resp)
}

// ResetPassword handles POST /api/auth/reset-password.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req domain.PasswordReset
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.auth.ConfirmPasswordReset(c.UserContext(), req.Token, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(dto.Message("password reset"))
}

// VerifyEmail handles POST /api/auth/verify-email.
func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	var req domain.EmailVerification
	if err := bind(c, &req); err != nil {
		return err
	}
	user, err := h.auth.VerifyEmail(c.UserContext(), req.Token)
	if err != nil {
		return err
	}
	return c.JSON(dto.Envelope{Success: true, Message: "email verified", Data: user})
}

func (h *AuthHandler) respond(c *fiber.Ctx, status int, msg string, sess *service.AuthSession) error {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    sess.RefreshToken,
		Path:     refreshCookiePath,
		Expires:  sess.RefreshExpiresAt,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	user := sess.User
	return c.Status(status).JSON(dto.AuthResponse{
		Success:           true,
		Message:           msg,
		Token:             sess.AccessToken,
		User:              &user,
		VerificationToken: sess.VerificationToken,
	})
}

func clearRefreshCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     refreshCookiePath,
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

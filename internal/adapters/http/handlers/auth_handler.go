package handlers

import (
	"errors"
	"time"

	"clinicdesk/internal/adapters/http/middleware"
	"clinicdesk/internal/config"
	"clinicdesk/internal/core/domain"
	"clinicdesk/internal/core/services"
	"clinicdesk/internal/pkg/flash"
	"clinicdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles login, registration and password reset pages
type AuthHandler struct {
	authService *services.AuthService
	flashes     *flash.Store
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, flashes *flash.Store, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		flashes:     flashes,
		cfg:         cfg,
	}
}

// Index sends signed-in users to their dashboard
// @Summary Landing page
// @Description Redirects to the role dashboard when signed in
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Page
// @Success 302
// @Router / [get]
func (h *AuthHandler) Index(c *fiber.Ctx) error {
	if p, ok := middleware.Principal(c); ok {
		return c.Redirect(dashboardPath(p.Role), fiber.StatusFound)
	}
	return response.Render(c, "index", h.flashes.Pop(c), nil)
}

// LoginPage renders the login form
// @Summary Login page
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Page
// @Router /login [get]
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	return response.Render(c, "login", h.flashes.Pop(c), nil)
}

// Login handles user login
// @Summary Login user
// @Description Verify credentials and set the session cookie
// @Tags Auth
// @Accept x-www-form-urlencoded
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Success 302
// @Router /login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input services.LoginInput
	if err := c.BodyParser(&input); err != nil {
		_ = h.flashes.Add(c, flash.Danger, "Invalid request body")
		return c.Redirect("/login", fiber.StatusFound)
	}

	session, err := h.authService.Login(c.UserContext(), input)
	if err != nil {
		_ = h.flashes.Add(c, flash.Danger, errorMessage(err))
		return c.Redirect("/login", fiber.StatusFound)
	}

	h.setSessionCookie(c, session.Token, session.ExpiresAt)
	_ = h.flashes.Add(c, flash.Success, "Login successful!")
	return c.Redirect("/", fiber.StatusFound)
}

// Logout clears the session
// @Summary Logout user
// @Tags Auth
// @Success 302
// @Router /logout [get]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.clearSessionCookie(c)
	_ = h.flashes.Add(c, flash.Info, "You have been logged out")
	return c.Redirect("/", fiber.StatusFound)
}

// ForgotPasswordPage renders the reset request form
// @Summary Forgot password page
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Page
// @Router /forgot-password [get]
func (h *AuthHandler) ForgotPasswordPage(c *fiber.Ctx) error {
	return response.Render(c, "forgot_password", h.flashes.Pop(c), nil)
}

// ForgotPassword issues a reset link for an email address
// @Summary Request password reset
// @Tags Auth
// @Accept x-www-form-urlencoded
// @Param email formData string true "Account email"
// @Success 302
// @Router /forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	err := h.authService.RequestPasswordReset(c.UserContext(), c.FormValue("email"))
	switch {
	case err == nil:
		_ = h.flashes.Add(c, flash.Info, "Password reset instructions have been sent to your email.")
	case errors.Is(err, domain.ErrEmailNotFound):
		_ = h.flashes.Add(c, flash.Danger, errorMessage(err))
	default:
		_ = h.flashes.Add(c, flash.Danger, "Failed to send email. Please try again.")
	}
	return c.Redirect("/login", fiber.StatusFound)
}

// ResetPasswordPage renders the new password form for a live token
// @Summary Reset password page
// @Tags Auth
// @Produce json
// @Param token path string true "Reset token"
// @Success 200 {object} response.Page
// @Success 302
// @Router /reset-password/{token} [get]
func (h *AuthHandler) ResetPasswordPage(c *fiber.Ctx) error {
	token := c.Params("token")
	if _, err := h.authService.ValidateResetToken(c.UserContext(), token); err != nil {
		_ = h.flashes.Add(c, flash.Danger, errorMessage(err))
		return c.Redirect("/forgot-password", fiber.StatusFound)
	}
	return response.Render(c, "reset_password", h.flashes.Pop(c), fiber.Map{"token": token})
}

// ResetPassword sets a new password
// @Summary Reset password
// @Tags Auth
// @Accept x-www-form-urlencoded
// @Param token path string true "Reset token"
// @Param new_password formData string true "New password"
// @Param confirm_password formData string true "Confirmation"
// @Success 302
// @Router /reset-password/{token} [post]
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var input services.ResetPasswordInput
	if err := c.BodyParser(&input); err != nil {
		_ = h.flashes.Add(c, flash.Danger, "Invalid request body")
		return c.Redirect(c.OriginalURL(), fiber.StatusFound)
	}
	input.Token = c.Params("token")

	err := h.authService.ResetPassword(c.UserContext(), input)
	switch {
	case err == nil:
		_ = h.flashes.Add(c, flash.Success, "Password reset successfully! You can now login with your new password.")
		return c.Redirect("/login", fiber.StatusFound)
	case errors.Is(err, domain.ErrResetTokenInvalid):
		_ = h.flashes.Add(c, flash.Danger, errorMessage(err))
		return c.Redirect("/forgot-password", fiber.StatusFound)
	default:
		// the token is still live so the form can be retried
		_ = h.flashes.Add(c, flash.Danger, errorMessage(err))
		return c.Redirect(c.OriginalURL(), fiber.StatusFound)
	}
}

// RegisterPage renders the patient registration form
// @Summary Patient registration page
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Page
// @Router /register/patient [get]
func (h *AuthHandler) RegisterPage(c *fiber.Ctx) error {
	return response.Render(c, "register_patient", h.flashes.Pop(c), fiber.Map{
		"today": time.Now().Format(domain.DateLayout),
	})
}

// RegisterPatient handles patient self-registration
// @Summary Register patient
// @Tags Auth
// @Accept x-www-form-urlencoded
// @Param username formData string true "Username"
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Param dob formData string false "Date of birth (YYYY-MM-DD)"
// @Success 302
// @Router /register/patient [post]
func (h *AuthHandler) RegisterPatient(c *fiber.Ctx) error {
	var input services.RegisterPatientInput
	if err := c.BodyParser(&input); err != nil {
		_ = h.flashes.Add(c, flash.Danger, "Invalid request body")
		return c.Redirect("/register/patient", fiber.StatusFound)
	}

	if _, err := h.authService.RegisterPatient(c.UserContext(), input); err != nil {
		_ = h.flashes.Add(c, flash.Danger, errorMessage(err))
		return c.Redirect("/register/patient", fiber.StatusFound)
	}

	_ = h.flashes.Add(c, flash.Success, "Registration successful! Please login.")
	return c.Redirect("/login", fiber.StatusFound)
}

// setSessionCookie stores the session token in an HttpOnly cookie
func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, token string, expiresAt time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   h.cfg.JWT.SessionHours * 60 * 60,
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
}

// clearSessionCookie expires the session cookie
func (h *AuthHandler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-1 * time.Hour),
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
}

package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/inkpad/webapps/internal/api/view"
	"github.com/inkpad/webapps/internal/core/ports"
)

// SessionCookies moves the session token between the response and the client.
type SessionCookies interface {
	Issue(c echo.Context, token string) error
	Clear(c echo.Context)
}

type AuthHandler struct {
	authService ports.AuthService
	cookies     SessionCookies
	home        string
}

// NewAuthHandler builds the account handlers. home is where a successful
// login lands.
func NewAuthHandler(authService ports.AuthService, cookies SessionCookies, home string) *AuthHandler {
	return &AuthHandler{authService: authService, cookies: cookies, home: home}
}

// RegisterForm renders the registration page.
//
// @Summary      Registration page
// @Tags         auth
// @Produce      html
// @Success      200
// @Router       /register [get]
func (h *AuthHandler) RegisterForm(c echo.Context) error {
	return render(c, "register", view.Page{Title: "Register"})
}

// Register creates a new account and sends the client to the login page.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      plain
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  true  "Password (at most 72 bytes)"
// @Success      303
// @Failure      409  {string}  string  "user already exists"
// @Failure      422  {string}  string  "validation failure"
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var form credentialsForm
	if err := bindForm(c, &form); err != nil {
		return err
	}

	if _, err := h.authService.Register(c.Request().Context(), form.Username, form.Password); err != nil {
		return err
	}
	return seeOther(c, "/login")
}

// LoginForm renders the login page.
//
// @Summary      Login page
// @Tags         auth
// @Produce      html
// @Success      200
// @Router       /login [get]
func (h *AuthHandler) LoginForm(c echo.Context) error {
	return render(c, "login", view.Page{Title: "Log in"})
}

// Login starts a session and sets the session cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      plain
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  true  "Password"
// @Success      303
// @Failure      401  {string}  string  "invalid credentials"
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var form credentialsForm
	if err := bindForm(c, &form); err != nil {
		return err
	}

	token, _, err := h.authService.Login(c.Request().Context(), form.Username, form.Password)
	if err != nil {
		return err
	}
	if err := h.cookies.Issue(c, token); err != nil {
		_ = h.authService.Logout(c.Request().Context(), token)
		return err
	}
	return seeOther(c, h.home)
}

// Logout ends the current session, if any, and clears the cookie. Calling it
// without a session is not an error.
//
// @Summary      Logout
// @Tags         auth
// @Success      303
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if token := sessionToken(c); token != "" {
		if err := h.authService.Logout(c.Request().Context(), token); err != nil {
			return err
		}
	}
	h.cookies.Clear(c)
	return seeOther(c, "/login")
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkpad/webapps/internal/api/view"
	"github.com/inkpad/webapps/internal/core/ports"
)

// actorFrom reads the identity injected by the Session middleware. Requests
// without a resolved session yield the anonymous actor.
func actorFrom(c echo.Context) ports.Actor {
	userID, _ := c.Get("user_id").(string)
	username, _ := c.Get("username").(string)
	return ports.Actor{UserID: userID, Username: username}
}

func sessionToken(c echo.Context) string {
	token, _ := c.Get("session_token").(string)
	return token
}

func render(c echo.Context, name string, page view.Page) error {
	page.Actor = actorFrom(c)
	return c.Render(http.StatusOK, name, page)
}

// seeOther redirects after a form post so a reload does not resubmit it.
func seeOther(c echo.Context, to string) error {
	return c.Redirect(http.StatusSeeOther, to)
}

// bindForm decodes the request form into dst and validates it.
func bindForm(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	return c.Validate(dst)
}

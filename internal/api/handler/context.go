package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// identity is the authenticated principal as injected by the Auth middleware.
type identity struct {
	ID       string
	Username string
	Email    string
	Roles    []string
}

// ctxIdentity extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: a missing username
// means the middleware never ran for this route.
func ctxIdentity(c echo.Context) (identity, error) {
	username, _ := c.Get("username").(string)
	if username == "" {
		return identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	id, _ := c.Get("user_id").(string)
	email, _ := c.Get("email").(string)
	roles, _ := c.Get("roles").([]string)

	return identity{ID: id, Username: username, Email: email, Roles: roles}, nil
}

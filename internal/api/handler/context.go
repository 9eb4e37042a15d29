package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ContextUserID is the echo context key the Auth middleware stores the
// caller's id under.
const ContextUserID = "user_id"

// currentUserID returns the authenticated caller. An empty id means the route
// was mounted without the Auth middleware; treat it as unauthenticated.
func currentUserID(c echo.Context) (string, error) {
	id, _ := c.Get(ContextUserID).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}

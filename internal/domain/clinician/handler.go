package clinician

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/users", h.ListUsers)
}

func (h *Handler) ListUsers(c echo.Context) error {
	items, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list users").SetInternal(err)
	}
	return c.JSON(http.StatusOK, items)
}

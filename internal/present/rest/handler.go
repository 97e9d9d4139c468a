package rest

import (
	"context"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/totegamma/oairepo"
	"github.com/totegamma/oairepo/internal/present/rest/presenter"
)

// Dispatcher answers one OAI-PMH request.
type Dispatcher interface {
	Handle(ctx context.Context, params url.Values) (*oairepo.Response, error)
}

type Handler struct {
	oai Dispatcher
}

func NewHandler(oai Dispatcher) *Handler {
	return &Handler{oai: oai}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/oai", h.handleOAI)
	e.POST("/oai", h.handleOAI)
}

func (h *Handler) handleOAI(c echo.Context) error {
	ctx := c.Request().Context()

	params := c.QueryParams()
	if c.Request().Method == http.MethodPost {
		// arguments of a POST request come from the form body only
		if err := c.Request().ParseForm(); err != nil {
			return presenter.BadRequest(c, err)
		}
		params = c.Request().PostForm
	}

	resp, err := h.oai.Handle(ctx, params)
	if err != nil {
		return presenter.InternalError(c, err)
	}

	return presenter.OAI(c, resp)
}

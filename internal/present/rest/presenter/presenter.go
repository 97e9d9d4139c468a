package presenter

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/totegamma/oairepo"
)

const ContentTypeXML = "text/xml; charset=UTF-8"

// OAI writes a protocol response. Protocol errors travel inside the envelope,
// so the status is always 200.
func OAI(c echo.Context, resp *oairepo.Response) error {
	body, err := resp.Marshal()
	if err != nil {
		return InternalError(c, err)
	}
	return c.Blob(http.StatusOK, ContentTypeXML, body)
}

func BadRequest(c echo.Context, err error) error {
	slog.DebugContext(
		c.Request().Context(), "Bad request",
		slog.String("error", err.Error()),
		slog.String("module", "rest"),
	)
	return c.String(http.StatusBadRequest, http.StatusText(http.StatusBadRequest))
}

// InternalError answers with a plain text 500. Details stay in the log.
func InternalError(c echo.Context, err error) error {
	slog.ErrorContext(
		c.Request().Context(), "Internal error",
		slog.String("error", err.Error()),
		slog.String("module", "rest"),
	)
	return c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

package httpapi

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v5"

	"clubvenue/internal/domain"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

var errBadRequest = errors.New("bad request")

func statusFor(kind domain.Kind) int {
	switch kind {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindPermission:
		return http.StatusForbidden
	case domain.KindStatus:
		return http.StatusUnprocessableEntity
	case domain.KindTransient:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// translate renders err for the caller's Accept-Language, fallback when no translator is wired.
func (h *Handler) translate(c echo.Context, err error, fallback string) string {
	if h.Translator == nil {
		return fallback
	}
	return h.Translator.ErrorMessage(c.Request().Header.Get("Accept-Language"), err)
}

// fail writes err as a JSON error with the status of its domain kind.
func (h *Handler) fail(c echo.Context, err error) error {
	code := domain.Code(err)
	if code == "" {
		code = "internal"
		log.Printf("❌ %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	}
	return c.JSON(statusFor(domain.KindOf(err)), errorResponse{Error: code, Message: h.translate(c, err, err.Error())})
}

func (h *Handler) badRequest(c echo.Context, detail string) error {
	msg := h.translate(c, &domain.Error{Code: "bad_request"}, detail)
	return c.JSON(http.StatusBadRequest, errorResponse{Error: "bad_request", Message: msg})
}

func (h *Handler) unauthenticated(c echo.Context) error {
	msg := h.translate(c, &domain.Error{Code: "unauthenticated"}, "missing or invalid "+userIDHeader+" header")
	return c.JSON(http.StatusUnauthorized, errorResponse{Error: "unauthenticated", Message: msg})
}

func pathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.PathParam("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errBadRequest
	}
	return uint(id), nil
}

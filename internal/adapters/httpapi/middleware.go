package httpapi

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v5"

	"clubvenue/internal/domain/entities"
)

const (
	userIDHeader = "X-User-ID"
	actorKey     = "actor"
)

// requireActor resolves the caller from X-User-ID. Token issuance happens upstream.
func (h *Handler) requireActor(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := strings.TrimSpace(c.Request().Header.Get(userIDHeader))
		id, err := strconv.ParseUint(raw, 10, 64)
		if raw == "" || err != nil || id == 0 {
			return h.unauthenticated(c)
		}
		actor, err := h.Actors.ResolveActor(c.Request().Context(), uint(id))
		if err != nil {
			return h.fail(c, err)
		}
		c.Set(actorKey, actor)
		return next(c)
	}
}

func actorFrom(c echo.Context) entities.Actor {
	actor, _ := c.Get(actorKey).(entities.Actor)
	return actor
}

func recoverer(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("❌ panic in %s %s: %v", c.Request().Method, c.Request().URL.Path, r)
				err = c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal", Message: "internal error"})
			}
		}()
		return next(c)
	}
}

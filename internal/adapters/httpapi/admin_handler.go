package httpapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v5"

	"clubvenue/internal/application"
	"clubvenue/internal/domain"
)

// RunSweep triggers one expiry pass. Super admins only.
func (h *Handler) RunSweep(c echo.Context) error {
	if !application.CapabilitiesFor(actorFrom(c)).CanSweep() {
		return h.fail(c, domain.ErrNotAllowed)
	}
	report, ran, err := h.Sweeper.RunOnce(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	// Item failures are counted in the report, not returned as err.
	return c.JSON(http.StatusOK, sweepResponse{
		Ran:           ran,
		TopicsClosed:  report.TopicsClosed,
		EventsClosed:  report.EventsClosed,
		EventsSkipped: report.EventsSkipped,
		Failures:      report.Failures,
	})
}

// ListNotifications returns the caller's inbox, newest first.
func (h *Handler) ListNotifications(c echo.Context) error {
	limit := 50
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 200 {
			return h.badRequest(c, "invalid limit")
		}
		limit = n
	}
	items, err := h.Inbox.ListForUser(c.Request().Context(), actorFrom(c).UserID, limit)
	if err != nil {
		return h.fail(c, err)
	}
	out := make([]notificationResponse, 0, len(items))
	for _, n := range items {
		out = append(out, notificationResponse{
			ID:                n.ID,
			Title:             n.Title,
			Message:           n.Message,
			Kind:              n.Kind,
			RelatedEntityID:   n.RelatedEntityID,
			RelatedEntityType: n.RelatedEntityType,
			CreatedAt:         n.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, out)
}

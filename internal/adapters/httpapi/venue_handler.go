package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v5"

	"clubvenue/internal/domain"
	"clubvenue/internal/ports/input"
	"clubvenue/pkg/datetime"
)

func (h *Handler) ListVenues(c echo.Context) error {
	venues, err := h.Venues.ListActive(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, toVenueList(venues))
}

func (h *Handler) GetVenue(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.badRequest(c, "invalid venue id")
	}
	venue, err := h.Venues.GetVenue(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, toVenueResponse(*venue))
}

// availabilityQuery reads ?capacity=&start=&end=&exclude=. A missing bound yields an empty result.
func (h *Handler) availabilityQuery(c echo.Context) (input.AvailabilityQuery, error) {
	var q input.AvailabilityQuery
	// capacities are int4 in storage
	capacity, err := strconv.ParseInt(strings.TrimSpace(c.QueryParam("capacity")), 10, 32)
	if err != nil {
		return q, domain.ErrInvalidCapacity
	}
	q.RequiredCapacity = int(capacity)
	if q.Start, err = datetime.ParseOptional(c.QueryParam("start"), h.Location); err != nil {
		return q, err
	}
	if q.End, err = datetime.ParseOptional(c.QueryParam("end"), h.Location); err != nil {
		return q, err
	}
	if raw := c.QueryParam("exclude"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return q, errBadRequest
		}
		exclude := uint(id)
		q.ExcludeEventID = &exclude
	}
	return q, nil
}

func (h *Handler) AvailableVenues(c echo.Context) error {
	q, err := h.availabilityQuery(c)
	if errors.Is(err, errBadRequest) {
		return h.badRequest(c, "invalid exclude id")
	}
	if err != nil {
		return h.fail(c, err)
	}
	venues, err := h.Venues.FindAvailable(c.Request().Context(), q)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, toVenueList(venues))
}

func (h *Handler) BestFitVenue(c echo.Context) error {
	q, err := h.availabilityQuery(c)
	if errors.Is(err, errBadRequest) {
		return h.badRequest(c, "invalid exclude id")
	}
	if err != nil {
		return h.fail(c, err)
	}
	venue, err := h.Venues.BestFit(c.Request().Context(), q.RequiredCapacity, q.Start, q.End)
	if err != nil {
		return h.fail(c, err)
	}
	if venue == nil {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, toVenueResponse(*venue))
}

func (h *Handler) CreateVenue(c echo.Context) error {
	var req venueRequest
	if err := c.Bind(&req); err != nil {
		return h.badRequest(c, "invalid venue payload")
	}
	venue, err := h.Venues.CreateVenue(c.Request().Context(), actorFrom(c), req.toInput())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, toVenueResponse(*venue))
}

func (h *Handler) UpdateVenue(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.badRequest(c, "invalid venue id")
	}
	var req venueRequest
	if err := c.Bind(&req); err != nil {
		return h.badRequest(c, "invalid venue payload")
	}
	venue, err := h.Venues.UpdateVenue(c.Request().Context(), actorFrom(c), id, req.toInput())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, toVenueResponse(*venue))
}

func (h *Handler) DeactivateVenue(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.badRequest(c, "invalid venue id")
	}
	if err := h.Venues.DeactivateVenue(c.Request().Context(), actorFrom(c), id); err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

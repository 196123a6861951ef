package discord

import (
	"time"

	"clubvenue/internal/ports/input"
	"clubvenue/internal/ports/output"
)

// Handler handles Discord interactions using use cases.
type Handler struct {
	venueUseCase input.VenueUseCase
	translator   output.Translator
	loc          *time.Location
	locale       string
}

// NewHandler creates a Handler.
func NewHandler(venueUseCase input.VenueUseCase, translator output.Translator, loc *time.Location, locale string) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		venueUseCase: venueUseCase,
		translator:   translator,
		loc:          loc,
		locale:       locale,
	}
}

func (h *Handler) translate(key string, data map[string]any) string {
	if h.translator == nil {
		return key
	}
	return h.translator.T(h.locale, key, data)
}

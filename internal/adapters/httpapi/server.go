package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"

	"clubvenue/internal/domain/entities"
	"clubvenue/internal/ports/input"
)

// ErrorTranslator renders a domain error for a locale or Accept-Language value.
type ErrorTranslator interface {
	ErrorMessage(locale string, err error) string
}

// SweepRunner performs one locked sweep; ran is false when another instance holds the lock.
type SweepRunner interface {
	RunOnce(ctx context.Context) (report input.SweepReport, ran bool, err error)
}

// Inbox lists stored notifications of a user.
type Inbox interface {
	ListForUser(ctx context.Context, userID uint, limit int) ([]entities.Notification, error)
}

// Deps groups what the HTTP handlers need.
type Deps struct {
	Venues     input.VenueUseCase
	Approvals  input.ApprovalUseCase
	Actors     input.ActorResolver
	Sweeper    SweepRunner
	Inbox      Inbox
	Translator ErrorTranslator
	Metrics    http.Handler
	Location   *time.Location
	PosterDir  string
	PosterPath string
}

// Handler serves the REST API on top of the use cases.
type Handler struct {
	Deps
}

// NewRouter builds the echo instance with every route registered.
func NewRouter(deps Deps) *echo.Echo {
	if deps.Location == nil {
		deps.Location = time.UTC
	}
	h := &Handler{Deps: deps}

	e := echo.New()
	e.Use(recoverer)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	if deps.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(deps.Metrics))
	}
	if deps.PosterDir != "" && deps.PosterPath != "" {
		e.Static(deps.PosterPath, deps.PosterDir)
	}

	api := e.Group("/api")
	api.GET("/venues", h.ListVenues)
	api.GET("/venues/available", h.AvailableVenues)
	api.GET("/venues/best-fit", h.BestFitVenue)
	api.GET("/venues/:id", h.GetVenue)

	authed := api.Group("", h.requireActor)
	authed.POST("/venues", h.CreateVenue)
	authed.PUT("/venues/:id", h.UpdateVenue)
	authed.DELETE("/venues/:id", h.DeactivateVenue)

	authed.GET("/proposals/pending", h.ListPending)
	authed.GET("/proposals/rejected", h.ListRejected)
	authed.POST("/proposals", h.CreateProposal)
	authed.GET("/proposals/:id", h.GetProposal)
	authed.GET("/proposals/:id/history", h.ProposalHistory)
	authed.POST("/proposals/:id/submit", h.SubmitProposal)
	authed.POST("/proposals/:id/approve", h.ApproveProposal)
	authed.POST("/proposals/:id/reject", h.RejectProposal)
	authed.POST("/proposals/:id/resubmit", h.ResubmitProposal)
	authed.POST("/proposals/:id/cancel", h.CancelProposal)

	authed.GET("/notifications", h.ListNotifications)
	authed.POST("/admin/sweep", h.RunSweep)

	return e
}

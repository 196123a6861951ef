package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v5"

	"clubvenue/internal/ports/input"
	"clubvenue/pkg/datetime"
)

const maxMultipartMemory = 8 << 20

func (h *Handler) CreateProposal(c echo.Context) error {
	var req createProposalRequest
	if err := c.Bind(&req); err != nil {
		return h.badRequest(c, "invalid proposal payload")
	}
	ideaDeadline, err := datetime.ParseOptional(req.IdeaSubmissionDeadline, h.Location)
	if err != nil {
		return h.fail(c, err)
	}
	regDeadline, err := datetime.ParseOptional(req.RegistrationDeadline, h.Location)
	if err != nil {
		return h.fail(c, err)
	}
	proposal, err := h.Approvals.CreateProposal(c.Request().Context(), actorFrom(c), input.CreateProposalInput{
		ClubID:                 req.ClubID,
		Title:                  req.Title,
		Description:            req.Description,
		IdeaSubmissionDeadline: ideaDeadline,
		RegistrationDeadline:   regDeadline,
		MaxParticipants:        req.MaxParticipants,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, toProposalResponse(*proposal))
}

func (h *Handler) GetProposal(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.badRequest(c, "invalid proposal id")
	}
	view, err := h.Approvals.Get(c.Request().Context(), actorFrom(c), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, toProposalView(*view))
}

func (h *Handler) ProposalHistory(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.badRequest(c, "invalid proposal id")
	}
	records, err := h.Approvals.History(c.Request().Context(), actorFrom(c), id)
	if err != nil {
		return h.fail(c, err)
	}
	out := make([]historyResponse, 0, len(records))
	for _, r := range records {
		out = append(out, historyResponse{ID: r.ID, Action: r.Action, ActorID: r.ActorID, Reason: r.Reason, At: r.At})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) ListPending(c echo.Context) error {
	proposals, err := h.Approvals.ListPending(c.Request().Context(), actorFrom(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, toProposalList(proposals))
}

func (h *Handler) ListRejected(c echo.Context) error {
	var clubID *uint
	if raw := c.QueryParam("club_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return h.badRequest(c, "invalid club id")
		}
		v := uint(id)
		clubID = &v
	}
	proposals, err := h.Approvals.ListRejected(c.Request().Context(), actorFrom(c), clubID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, toProposalList(proposals))
}

func (h *Handler) SubmitProposal(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.badRequest(c, "invalid proposal id")
	}
	var req submitRequest
	if err := c.Bind(&req); err != nil {
		return h.badRequest(c, "invalid submit payload")
	}
	proposal, err := h.Approvals.Submit(c.Request().Context(), actorFrom(c), id, req.VenueID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, toProposalResponse(*proposal))
}

// ApproveProposal accepts JSON, or multipart/form-data when a poster file is attached.
func (h *Handler) ApproveProposal(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.badRequest(c, "invalid proposal id")
	}

	in := input.ApproveInput{ProposalID: id}
	if isMultipart(c) {
		req, err := scheduleFromForm(c)
		if err != nil {
			return h.badRequest(c, "invalid approval form")
		}
		in.ScheduleInput = req.toInput()

		fh, err := c.FormFile("poster")
		switch {
		case err == nil:
			f, err := fh.Open()
			if err != nil {
				return h.badRequest(c, "unreadable poster")
			}
			defer f.Close()
			in.Poster = &input.Poster{Filename: fh.Filename, Content: f}
		case !errors.Is(err, http.ErrMissingFile):
			return h.badRequest(c, "invalid poster upload")
		}
	} else {
		var req scheduleRequest
		if err := c.Bind(&req); err != nil {
			return h.badRequest(c, "invalid approval payload")
		}
		in.ScheduleInput = req.toInput()
	}

	proposal, err := h.Approvals.Approve(c.Request().Context(), actorFrom(c), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, toProposalResponse(*proposal))
}

func (h *Handler) RejectProposal(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.badRequest(c, "invalid proposal id")
	}
	var req reasonRequest
	if err := c.Bind(&req); err != nil {
		return h.badRequest(c, "invalid reject payload")
	}
	proposal, err := h.Approvals.Reject(c.Request().Context(), actorFrom(c), id, req.Reason)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, toProposalResponse(*proposal))
}

func (h *Handler) ResubmitProposal(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.badRequest(c, "invalid proposal id")
	}
	var req scheduleRequest
	if err := c.Bind(&req); err != nil {
		return h.badRequest(c, "invalid resubmit payload")
	}
	proposal, err := h.Approvals.Resubmit(c.Request().Context(), actorFrom(c), input.ResubmitInput{
		ProposalID:    id,
		ScheduleInput: req.toInput(),
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, toProposalResponse(*proposal))
}

func (h *Handler) CancelProposal(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.badRequest(c, "invalid proposal id")
	}
	var req reasonRequest
	if err := c.Bind(&req); err != nil {
		return h.badRequest(c, "invalid cancel payload")
	}
	proposal, err := h.Approvals.Cancel(c.Request().Context(), actorFrom(c), id, req.Reason)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, toProposalResponse(*proposal))
}

func isMultipart(c echo.Context) bool {
	return strings.HasPrefix(c.Request().Header.Get("Content-Type"), "multipart/form-data")
}

func scheduleFromForm(c echo.Context) (scheduleRequest, error) {
	if err := c.Request().ParseMultipartForm(maxMultipartMemory); err != nil {
		return scheduleRequest{}, err
	}
	req := scheduleRequest{
		EventName:       c.FormValue("event_name"),
		EventType:       c.FormValue("event_type"),
		StartDateTime:   c.FormValue("start_date_time"),
		EndDateTime:     c.FormValue("end_date_time"),
		Location:        c.FormValue("location"),
		RegistrationFee: c.FormValue("registration_fee"),
		Description:     c.FormValue("description"),
		SlidesURL:       c.FormValue("slides_url"),
	}
	if raw := strings.TrimSpace(c.FormValue("max_participants")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return scheduleRequest{}, err
		}
		req.MaxParticipants = &n
	}
	if raw := strings.TrimSpace(c.FormValue("venue_id")); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return scheduleRequest{}, err
		}
		v := uint(n)
		req.VenueID = &v
	}
	return req, nil
}

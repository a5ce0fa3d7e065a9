package controllers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	h "eventlottery/internal/delivery/http/helpers"
	"eventlottery/internal/delivery/http/middleware"
	"eventlottery/internal/domain"
)

// EntrantController handles the entrant-facing operations: waitlist signup,
// invitation responses, and the derived status read.
type EntrantController struct {
	Logger      *slog.Logger
	Waitlist    domain.WaitlistService
	Invitations domain.InvitationService
}

func NewEntrantController(logger *slog.Logger, waitlist domain.WaitlistService, invitations domain.InvitationService) *EntrantController {
	return &EntrantController{
		Logger:      logger,
		Waitlist:    waitlist,
		Invitations: invitations,
	}
}

// JoinWaitlistRequest is the optional request body for POST /events/{eventID}/waitlist.
type JoinWaitlistRequest struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

// JoinWaitlist godoc
// @Summary Join an event's waitlist
// @Description Adds the authenticated user to the event's waitlist. Joining twice is a no-op the second time. Optional body carries the signup location.
// @Tags entrant
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body controllers.JoinWaitlistRequest false "Signup location"
// @Success 204 "Joined"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/waitlist [post]
func (c *EntrantController) JoinWaitlist(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req JoinWaitlistRequest
	if r.ContentLength > 0 {
		if !h.DecodeAndValidate(w, r, &req) {
			return
		}
	}
	if err := c.Waitlist.Join(r.Context(), eventID, userID, req.Lat, req.Lng); err != nil {
		c.writeError(w, r, err, "event not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// LeaveWaitlist godoc
// @Summary Leave an event's waitlist
// @Description Removes the authenticated user from the event's waitlist. Leaving while absent is a no-op, never an error.
// @Tags entrant
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 204 "Left"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/waitlist [delete]
func (c *EntrantController) LeaveWaitlist(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Waitlist.Leave(r.Context(), eventID, userID); err != nil {
		c.writeError(w, r, err, "event not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StatusResponse is the payload for GET /events/{eventID}/status.
type StatusResponse struct {
	State domain.EntrantState `json:"state"`
}

// Status godoc
// @Summary Get the authenticated entrant's state for an event
// @Description Derives the display state (waiting, invited, final, cancelled, unlisted) from invitation list membership.
// @Tags entrant
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains state"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/status [get]
func (c *EntrantController) Status(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	state, err := c.Invitations.State(r.Context(), eventID, userID)
	if err != nil {
		c.writeError(w, r, err, "event not found")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, StatusResponse{State: state})
}

// AcceptInvitation godoc
// @Summary Accept a lottery invitation
// @Description Moves the authenticated user from the invited list to the final list.
// @Tags entrant
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 204 "Accepted"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/invitation/accept [post]
func (c *EntrantController) AcceptInvitation(w http.ResponseWriter, r *http.Request) {
	c.respond(w, r, c.Invitations.Accept)
}

// DeclineInvitation godoc
// @Summary Decline a lottery invitation
// @Description Moves the authenticated user from the invited list to the cancelled list.
// @Tags entrant
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 204 "Declined"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/invitation/decline [post]
func (c *EntrantController) DeclineInvitation(w http.ResponseWriter, r *http.Request) {
	c.respond(w, r, c.Invitations.Decline)
}

func (c *EntrantController) respond(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, eventID, userID string) error) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := op(r.Context(), eventID, userID); err != nil {
		c.writeError(w, r, err, "event not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *EntrantController) writeError(w http.ResponseWriter, r *http.Request, err error, notFoundMsg string) {
	if errors.Is(err, domain.ErrNotFound) {
		h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, notFoundMsg)
		return
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
		return
	}
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
}

package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	h "eventlottery/internal/delivery/http/helpers"
	"eventlottery/internal/delivery/http/middleware"
	"eventlottery/internal/domain"
)

// uuidRegex matches a canonical UUID string (8-4-4-4-12 hex).
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// EventController handles event CRUD and the organizer-side operations:
// lottery draw, invitation revocation, and rating requests.
type EventController struct {
	Logger      *slog.Logger
	Events      domain.EventService
	Lottery     domain.LotteryService
	Invitations domain.InvitationService
	Ratings     domain.RatingService
}

func NewEventController(logger *slog.Logger, events domain.EventService, lottery domain.LotteryService, invitations domain.InvitationService, ratings domain.RatingService) *EventController {
	return &EventController{
		Logger:      logger,
		Events:      events,
		Lottery:     lottery,
		Invitations: invitations,
		Ratings:     ratings,
	}
}

// CreateEventRequest is the request body for POST /events
type CreateEventRequest struct {
	Name           string     `json:"name"`
	Capacity       int        `json:"capacity"`
	EntrantsToDraw int        `json:"entrants_to_draw"`
	StartTime      time.Time  `json:"start_time"`
	EndTime        time.Time  `json:"end_time"`
	SelectionDate  *time.Time `json:"selection_date"`
}

// Validate implements helpers.Validator.
func (r *CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, "name is required")
	}
	if r.Capacity < 0 {
		errs = append(errs, "capacity must not be negative")
	}
	if r.EntrantsToDraw < 0 {
		errs = append(errs, "entrants_to_draw must not be negative")
	}
	if r.StartTime.IsZero() || r.EndTime.IsZero() {
		errs = append(errs, "start_time and end_time are required")
	}
	return errs
}

// CreateEvent godoc
// @Summary Create an event
// @Description Creates a capacity-limited event owned by the authenticated organizer.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.CreateEventRequest true "Event data"
// @Success 201 {object} helpers.APIResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req CreateEventRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	event := &domain.Event{
		OrganizerID:    userID,
		Name:           strings.TrimSpace(req.Name),
		Capacity:       req.Capacity,
		EntrantsToDraw: req.EntrantsToDraw,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		SelectionDate:  req.SelectionDate,
	}
	if err := c.Events.CreateEvent(r.Context(), event); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "failed to create event")
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, event)
}

// GetEvent godoc
// @Summary Fetch an event
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	event, err := c.Events.GetEvent(r.Context(), eventID)
	if err != nil {
		c.writeServiceError(w, r, err, "event not found")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, event)
}

// RunLotteryResponse is the success payload for POST /events/{eventID}/lottery.
type RunLotteryResponse struct {
	SelectedCount int `json:"selected_count"`
}

// RunLottery godoc
// @Summary Run the lottery draw for an event
// @Description Promotes a bounded random subset of waiting entrants to invited and fans out one lottery-win notification. Only the event organizer may draw. An empty waiting list yields selected_count 0.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains selected_count"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/lottery [post]
func (c *EventController) RunLottery(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	if !c.requireOrganizer(w, r, eventID) {
		return
	}
	count, err := c.Lottery.RunLottery(r.Context(), eventID)
	if err != nil {
		c.writeServiceError(w, r, err, "event not found")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, RunLotteryResponse{SelectedCount: count})
}

// RevokeInvitation godoc
// @Summary Remove an entrant from the invited list
// @Description Admin revocation: removes the user from the invited and all lists and prunes them from lottery-win notification recipients. Idempotent.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param userID path string true "User ID (UUID)"
// @Success 204 "Revoked"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/invited/{userID} [delete]
func (c *EventController) RevokeInvitation(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	userID, ok := pathUUID(w, r, "userID")
	if !ok {
		return
	}
	if !c.requireOrganizer(w, r, eventID) {
		return
	}
	if err := c.Invitations.LeaveInvitedList(r.Context(), eventID, userID); err != nil {
		c.writeServiceError(w, r, err, "event not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SendRatingRequests godoc
// @Summary Send post-event rating requests
// @Description Creates one rating-request notification addressed to the event's final entrants, once the event has ended. An event still in progress and an empty final list are both successful no-ops.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 204 "Requests sent (or nothing to send)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/rating-requests [post]
func (c *EventController) SendRatingRequests(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	if !c.requireOrganizer(w, r, eventID) {
		return
	}
	if err := c.Ratings.SendRatingRequests(r.Context(), eventID); err != nil {
		c.writeServiceError(w, r, err, "event not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// requireOrganizer loads the event and checks the authenticated user owns
// it. Writes the error response and returns false when the check fails.
func (c *EventController) requireOrganizer(w http.ResponseWriter, r *http.Request, eventID string) bool {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return false
	}
	event, err := c.Events.GetEvent(r.Context(), eventID)
	if err != nil {
		c.writeServiceError(w, r, err, "event not found")
		return false
	}
	if event.OrganizerID != userID {
		c.writeServiceError(w, r, fmt.Errorf("%w: only the event organizer may perform this operation", domain.ErrForbidden), "")
		return false
	}
	return true
}

func (c *EventController) writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFoundMsg string) {
	if errors.Is(err, domain.ErrNotFound) {
		h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, notFoundMsg)
		return
	}
	if errors.Is(err, domain.ErrForbidden) {
		h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, err.Error())
		return
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
		return
	}
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
}

// pathUUID reads and validates a UUID path parameter, writing a 400 response
// when it is missing or malformed.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	v := r.PathValue(name)
	if v == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing "+name)
		return "", false
	}
	if !uuidRegex.MatchString(v) {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid "+name)
		return "", false
	}
	return v, true
}

package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	h "eventlottery/internal/delivery/http/helpers"
	"eventlottery/internal/delivery/http/middleware"
	"eventlottery/internal/domain"
)

// RatingController handles organizer reputation: rating submission and the
// public average.
type RatingController struct {
	Logger  *slog.Logger
	Service domain.RatingService
}

func NewRatingController(logger *slog.Logger, svc domain.RatingService) *RatingController {
	return &RatingController{
		Logger:  logger,
		Service: svc,
	}
}

// SubmitRatingRequest is the request body for POST /organizers/{organizerID}/ratings
type SubmitRatingRequest struct {
	Rating         float64 `json:"rating"`
	NotificationID string  `json:"notification_id"`
}

// Validate implements helpers.Validator.
func (s *SubmitRatingRequest) Validate() []string {
	var errs []string
	if s.Rating < 1 || s.Rating > 5 {
		errs = append(errs, "rating must be between 1 and 5")
	}
	if s.NotificationID == "" {
		errs = append(errs, "notification_id is required")
	} else if !uuidRegex.MatchString(s.NotificationID) {
		errs = append(errs, "invalid notification_id")
	}
	return errs
}

// SubmitRating godoc
// @Summary Rate an organizer after an event
// @Description Folds a 1-5 rating into the organizer's running average and consumes the triggering rating-request notification, atomically.
// @Tags ratings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param organizerID path string true "Organizer ID (UUID)"
// @Param body body controllers.SubmitRatingRequest true "Rating and notification id"
// @Success 204 "Rating applied"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizers/{organizerID}/ratings [post]
func (c *RatingController) SubmitRating(w http.ResponseWriter, r *http.Request) {
	organizerID, ok := pathUUID(w, r, "organizerID")
	if !ok {
		return
	}
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req SubmitRatingRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.SubmitRating(r.Context(), organizerID, req.Rating, req.NotificationID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "organizer not found")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "failed to submit rating")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetRatingResponse is the payload for GET /organizers/{organizerID}/rating.
type GetRatingResponse struct {
	Rating float64 `json:"rating"`
}

// GetRating godoc
// @Summary Fetch an organizer's average rating
// @Description Returns the organizer's current running average; 0.0 when no rating has been recorded yet.
// @Tags ratings
// @Produce json
// @Param organizerID path string true "Organizer ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains rating"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizers/{organizerID}/rating [get]
func (c *RatingController) GetRating(w http.ResponseWriter, r *http.Request) {
	organizerID, ok := pathUUID(w, r, "organizerID")
	if !ok {
		return
	}
	rating, err := c.Service.FetchRating(r.Context(), organizerID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "failed to fetch rating")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, GetRatingResponse{Rating: rating})
}

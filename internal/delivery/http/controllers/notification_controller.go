package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	h "eventlottery/internal/delivery/http/helpers"
	"eventlottery/internal/delivery/http/middleware"
	"eventlottery/internal/domain"
)

// NotificationController exposes the authenticated user's notification inbox
// and the admin hard-delete.
type NotificationController struct {
	Logger  *slog.Logger
	Service domain.NotificationService
}

func NewNotificationController(logger *slog.Logger, svc domain.NotificationService) *NotificationController {
	return &NotificationController{
		Logger:  logger,
		Service: svc,
	}
}

// ListNotificationsResponse is the payload for GET /notifications.
type ListNotificationsResponse struct {
	Notifications []*domain.Notification `json:"notifications"`
	Pagination    h.PaginationMeta       `json:"pagination"`
}

// List godoc
// @Summary List notifications addressed to the authenticated user
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains notifications and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /notifications [get]
func (c *NotificationController) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	p := h.ParsePagination(r)
	notifications, total, err := c.Service.ListForUser(r.Context(), userID, p)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "failed to list notifications")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, ListNotificationsResponse{
		Notifications: notifications,
		Pagination:    h.NewPaginationMeta(p.Page, p.PageSize, total),
	})
}

// Delete godoc
// @Summary Delete a notification
// @Description Hard-deletes the notification document and its recipient set.
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param notificationID path string true "Notification ID (UUID)"
// @Success 204 "Deleted"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /notifications/{notificationID} [delete]
func (c *NotificationController) Delete(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	notificationID, ok := pathUUID(w, r, "notificationID")
	if !ok {
		return
	}
	if err := c.Service.Delete(r.Context(), notificationID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "notification not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "failed to delete notification")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

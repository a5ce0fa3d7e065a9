package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventlottery/internal/delivery/http/controllers"
	"eventlottery/internal/delivery/http/middleware"
	"eventlottery/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(
	verifier domain.TokenVerifier,
	authController *controllers.AuthController,
	eventController *controllers.EventController,
	entrantController *controllers.EntrantController,
	ratingController *controllers.RatingController,
	notificationController *controllers.NotificationController,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier)

	// Auth
	mux.HandleFunc("POST /auth/request-code", authController.RequestCode)
	mux.HandleFunc("POST /auth/login", authController.Login)

	// Events (organizer side)
	mux.HandleFunc("POST /events", auth(eventController.CreateEvent))
	mux.HandleFunc("GET /events/{eventID}", eventController.GetEvent)
	mux.HandleFunc("POST /events/{eventID}/lottery", auth(eventController.RunLottery))
	mux.HandleFunc("DELETE /events/{eventID}/invited/{userID}", auth(eventController.RevokeInvitation))
	mux.HandleFunc("POST /events/{eventID}/rating-requests", auth(eventController.SendRatingRequests))

	// Entrant operations
	mux.HandleFunc("POST /events/{eventID}/waitlist", auth(entrantController.JoinWaitlist))
	mux.HandleFunc("DELETE /events/{eventID}/waitlist", auth(entrantController.LeaveWaitlist))
	mux.HandleFunc("GET /events/{eventID}/status", auth(entrantController.Status))
	mux.HandleFunc("POST /events/{eventID}/invitation/accept", auth(entrantController.AcceptInvitation))
	mux.HandleFunc("POST /events/{eventID}/invitation/decline", auth(entrantController.DeclineInvitation))

	// Organizer reputation
	mux.HandleFunc("POST /organizers/{organizerID}/ratings", auth(ratingController.SubmitRating))
	mux.HandleFunc("GET /organizers/{organizerID}/rating", ratingController.GetRating)

	// Notifications
	mux.HandleFunc("GET /notifications", auth(notificationController.List))
	mux.HandleFunc("DELETE /notifications/{notificationID}", auth(notificationController.Delete))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	h "eventlottery/internal/delivery/http/helpers"
	"eventlottery/internal/domain"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type AuthController struct {
	Logger  *slog.Logger
	Service domain.UserService
}

func NewAuthController(logger *slog.Logger, svc domain.UserService) *AuthController {
	return &AuthController{
		Logger:  logger,
		Service: svc,
	}
}

// RequestCodeRequest is the request body for POST /auth/request-code
type RequestCodeRequest struct {
	Email string `json:"email"`
}

// Validate implements helpers.Validator.
func (r *RequestCodeRequest) Validate() []string {
	email := strings.TrimSpace(strings.ToLower(r.Email))
	if email == "" {
		return []string{"email is required"}
	}
	if !emailRegexp.MatchString(email) {
		return []string{"invalid email format"}
	}
	r.Email = email
	return nil
}

// RequestCode godoc
// @Summary Request a one-time login code
// @Description Sends a 6-digit login code to the given email.
// @Tags auth
// @Accept json
// @Param body body controllers.RequestCodeRequest true "Email"
// @Success 204 "Code sent"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/request-code [post]
func (c *AuthController) RequestCode(w http.ResponseWriter, r *http.Request) {
	var req RequestCodeRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.RequestLoginCode(r.Context(), req.Email); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "failed to send login code")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// LoginRequest is the request body for POST /auth/login
type LoginRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// Validate implements helpers.Validator.
func (l *LoginRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(l.Email) == "" {
		errs = append(errs, "email is required")
	}
	if strings.TrimSpace(l.Code) == "" {
		errs = append(errs, "code is required")
	}
	return errs
}

// LoginResponse is the response body for POST /auth/login
type LoginResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	User      *domain.User `json:"user"`
}

// Login godoc
// @Summary Verify a login code and issue a token
// @Description Consumes the one-time code and returns a bearer token plus the user profile. A first login creates the profile.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body controllers.LoginRequest true "Email and code"
// @Success 200 {object} helpers.APIResponse "data contains token and user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/login [post]
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	token, user, err := c.Service.VerifyLoginCode(r.Context(), req.Email, req.Code)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "login failed")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		User:      user,
	})
}

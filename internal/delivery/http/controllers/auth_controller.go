package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"volunteerhub/internal/delivery/http/helpers"
	"volunteerhub/internal/domain"
)

// RegisterRequest is the request body for POST /api/auth/register
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Validate implements helpers.Validator.
func (req RegisterRequest) Validate() []string {
	return helpers.MissingStrings(
		"email", req.Email,
		"password", req.Password,
		"firstName", req.FirstName,
		"lastName", req.LastName,
	)
}

// LoginRequest is the request body for POST /api/auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate implements helpers.Validator.
func (req LoginRequest) Validate() []string {
	return helpers.MissingStrings("email", req.Email, "password", req.Password)
}

// TokenData is the data of a successful registration.
type TokenData struct {
	Token string `json:"token"`
}

// RegisterSuccessResponse is the success response envelope for POST /api/auth/register (200).
type RegisterSuccessResponse struct {
	Type    string    `json:"type" example:"success"`
	Message string    `json:"message"`
	Data    TokenData `json:"data"`
}

// LoginResponse is the response body for POST /api/auth/login. Token and user sit at the top level.
type LoginResponse struct {
	Type    string       `json:"type" example:"success"`
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *domain.User `json:"user"`
}

// AuthController handles self-registration and login.
type AuthController struct {
	Logger  *slog.Logger
	Service domain.AuthService
}

func NewAuthController(logger *slog.Logger, svc domain.AuthService) *AuthController {
	return &AuthController{
		Logger:  logger,
		Service: svc,
	}
}

// trimEmail strips surrounding whitespace. Case is preserved: emails match exactly as stored.
func trimEmail(email string) string {
	return strings.TrimSpace(email)
}

// Register godoc
// @Summary Register a new user
// @Description Create a user with role "user" and return a bearer token valid for 24 hours.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Registration data"
// @Success 200 {object} controllers.RegisterSuccessResponse "data contains the token"
// @Failure 400 {object} helpers.APIResponse "code: missing_field or conflict (email taken)"
// @Failure 500 {object} helpers.APIResponse "code: internal_error"
// @Router /api/auth/register [post]
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	token, err := c.Service.Register(r.Context(),
		trimEmail(req.Email), req.Password,
		strings.TrimSpace(req.FirstName), strings.TrimSpace(req.LastName))
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, "User registered successfully", TokenData{Token: token})
}

// Login godoc
// @Summary Log in
// @Description Authenticate with email and password. Returns a bearer token and the user profile.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} controllers.LoginResponse "token and user at the top level"
// @Failure 400 {object} helpers.APIResponse "code: missing_field"
// @Failure 401 {object} helpers.APIResponse "code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "code: internal_error"
// @Router /api/auth/login [post]
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	token, user, err := c.Service.Login(r.Context(), trimEmail(req.Email), req.Password)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, LoginResponse{
		Type:    helpers.TypeSuccess,
		Message: "Login successful",
		Token:   token,
		User:    user,
	})
}

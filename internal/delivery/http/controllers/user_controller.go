package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"volunteerhub/internal/delivery/http/helpers"
	"volunteerhub/internal/domain"
)

// EditUserRequest is the request body for POST /api/user/edit. Blank fields are left unchanged.
type EditUserRequest struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Validate implements helpers.Validator.
func (req EditUserRequest) Validate() []string {
	return helpers.MissingStrings("id", req.ID)
}

func (req EditUserRequest) update() domain.ProfileUpdate {
	var upd domain.ProfileUpdate
	if v := trimEmail(req.Email); v != "" {
		upd.Email = &v
	}
	if v := strings.TrimSpace(req.FirstName); v != "" {
		upd.FirstName = &v
	}
	if v := strings.TrimSpace(req.LastName); v != "" {
		upd.LastName = &v
	}
	return upd
}

// UserController handles profile edits and per-user event listings.
type UserController struct {
	Logger         *slog.Logger
	Service        domain.UserService
	StrictIdentity bool
	Now            func() time.Time
}

// NewUserController creates a UserController with the given logger and service.
func NewUserController(logger *slog.Logger, svc domain.UserService, strictIdentity bool) *UserController {
	return &UserController{
		Logger:         logger,
		Service:        svc,
		StrictIdentity: strictIdentity,
		Now:            time.Now,
	}
}

// Edit godoc
// @Summary Update a user's profile
// @Description Updates email, firstName and/or lastName of the user named by id. Email must stay unique.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body EditUserRequest true "Fields to update"
// @Success 200 {object} helpers.APIResponse{data=domain.User}
// @Failure 400 {object} helpers.APIResponse "code: missing_field, bad_request or conflict"
// @Failure 401 {object} helpers.APIResponse "code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "code: forbidden"
// @Failure 404 {object} helpers.APIResponse "code: not_found"
// @Failure 500 {object} helpers.APIResponse "code: internal_error"
// @Router /api/user/edit [post]
func (c *UserController) Edit(w http.ResponseWriter, r *http.Request) {
	var req EditUserRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if !authorizeSelf(w, r, c.StrictIdentity, req.ID) {
		return
	}
	user, err := c.Service.UpdateProfile(r.Context(), req.ID, req.update())
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, "User information updated successfully", user)
}

// Attending godoc
// @Summary Events a user is attending
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} helpers.APIResponse{data=[]domain.Event}
// @Failure 401 {object} helpers.APIResponse "code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "code: forbidden"
// @Failure 404 {object} helpers.APIResponse "code: not_found"
// @Failure 500 {object} helpers.APIResponse "code: internal_error"
// @Router /api/user/{id}/events/attending [get]
func (c *UserController) Attending(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	if !authorizeSelf(w, r, c.StrictIdentity, userID) {
		return
	}
	events, err := c.Service.ListAttending(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, "", events)
}

// Past godoc
// @Summary Events a user has attended
// @Description Attended events dated before now.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} helpers.APIResponse{data=[]domain.Event}
// @Failure 401 {object} helpers.APIResponse "code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "code: forbidden"
// @Failure 404 {object} helpers.APIResponse "code: not_found"
// @Failure 500 {object} helpers.APIResponse "code: internal_error"
// @Router /api/user/{id}/events/past [get]
func (c *UserController) Past(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	if !authorizeSelf(w, r, c.StrictIdentity, userID) {
		return
	}
	events, err := c.Service.ListPast(r.Context(), userID, c.Now())
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, "", events)
}

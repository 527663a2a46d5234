package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"volunteerhub/internal/delivery/http/helpers"
	"volunteerhub/internal/domain"
)

// LocationRequest is the location part of CreateEventRequest.
type LocationRequest struct {
	Country string `json:"country"`
	City    string `json:"city"`
	Address string `json:"address"`
}

// CreateEventRequest is the request body for POST /api/events.
// createdBy is accepted for compatibility; the authenticated admin is recorded instead.
type CreateEventRequest struct {
	Title       string          `json:"title"`
	Date        string          `json:"date" example:"2030-01-15"`
	Location    LocationRequest `json:"location"`
	StartTime   string          `json:"startTime" example:"09:00"`
	EndTime     string          `json:"endTime" example:"11:30"`
	Description string          `json:"description"`
	CreatedBy   string          `json:"createdBy,omitempty"`
}

// Validate implements helpers.Validator.
func (req CreateEventRequest) Validate() []string {
	return helpers.MissingStrings(
		"title", req.Title,
		"date", req.Date,
		"location.country", req.Location.Country,
		"location.city", req.Location.City,
		"location.address", req.Location.Address,
		"startTime", req.StartTime,
		"endTime", req.EndTime,
		"description", req.Description,
	)
}

// MembershipRequest is the request body for register and unregister.
type MembershipRequest struct {
	UserID string `json:"userId"`
}

// Validate implements helpers.Validator.
func (req MembershipRequest) Validate() []string {
	return helpers.MissingStrings("userId", req.UserID)
}

// EventController handles event listing, creation, detail, registration and completion.
type EventController struct {
	Logger         *slog.Logger
	Events         domain.EventService
	Registrations  domain.RegistrationService
	Completion     domain.CompletionService
	StrictIdentity bool
}

// NewEventController creates an EventController. With strictIdentity set, register and
// unregister only accept the caller's own user id.
func NewEventController(
	logger *slog.Logger,
	events domain.EventService,
	registrations domain.RegistrationService,
	completion domain.CompletionService,
	strictIdentity bool,
) *EventController {
	return &EventController{
		Logger:         logger,
		Events:         events,
		Registrations:  registrations,
		Completion:     completion,
		StrictIdentity: strictIdentity,
	}
}

// List godoc
// @Summary List events
// @Description Returns every event ordered by date.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse{data=[]domain.Event}
// @Failure 401 {object} helpers.APIResponse "code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "code: internal_error"
// @Router /api/events [get]
func (c *EventController) List(w http.ResponseWriter, r *http.Request) {
	events, err := c.Events.List(r.Context())
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, "", events)
}

// Create godoc
// @Summary Create an event
// @Description Admin only. date is RFC 3339 or YYYY-MM-DD; startTime and endTime are HH:MM with endTime after startTime.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateEventRequest true "Event data"
// @Success 201 {object} helpers.APIResponse{data=domain.Event}
// @Failure 400 {object} helpers.APIResponse "code: missing_field or bad_request"
// @Failure 401 {object} helpers.APIResponse "code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "code: forbidden"
// @Failure 500 {object} helpers.APIResponse "code: internal_error"
// @Router /api/events [post]
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	date, err := domain.ParseEventDate(req.Date)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	event, err := c.Events.Create(r.Context(), actor, domain.CreateEventInput{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Date:        date,
		Location: domain.Location{
			Country: strings.TrimSpace(req.Location.Country),
			City:    strings.TrimSpace(req.Location.City),
			Address: strings.TrimSpace(req.Location.Address),
		},
		StartTime: strings.TrimSpace(req.StartTime),
		EndTime:   strings.TrimSpace(req.EndTime),
	})
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, "Event created successfully", event)
}

// Get godoc
// @Summary Get event detail
// @Description Returns the event with registeredVolunteers expanded to {id, firstName, lastName}.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} helpers.APIResponse{data=domain.EventDetail}
// @Failure 401 {object} helpers.APIResponse "code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "code: not_found"
// @Failure 500 {object} helpers.APIResponse "code: internal_error"
// @Router /api/events/{id} [get]
func (c *EventController) Get(w http.ResponseWriter, r *http.Request) {
	detail, err := c.Events.GetDetail(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, "", detail)
}

// Register godoc
// @Summary Register a user for an event
// @Description Adds userId to the event roster and the event to the user's attending set.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param body body MembershipRequest true "User to register"
// @Success 200 {object} helpers.APIResponse{data=domain.Event}
// @Failure 400 {object} helpers.APIResponse "code: missing_field, conflict or cannot_modify_completed"
// @Failure 401 {object} helpers.APIResponse "code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "code: forbidden"
// @Failure 404 {object} helpers.APIResponse "code: not_found"
// @Failure 500 {object} helpers.APIResponse "code: internal_error"
// @Router /api/events/{id}/register [post]
func (c *EventController) Register(w http.ResponseWriter, r *http.Request) {
	var req MembershipRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if !authorizeSelf(w, r, c.StrictIdentity, req.UserID) {
		return
	}
	event, err := c.Registrations.Register(r.Context(), req.UserID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, "Successfully registered for event", event)
}

// Unregister godoc
// @Summary Cancel a registration
// @Description Removes userId from the event roster and the event from the user's attending set.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param body body MembershipRequest true "User to unregister"
// @Success 200 {object} helpers.APIResponse{data=domain.Event}
// @Failure 400 {object} helpers.APIResponse "code: missing_field, conflict or cannot_modify_completed"
// @Failure 401 {object} helpers.APIResponse "code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "code: forbidden"
// @Failure 404 {object} helpers.APIResponse "code: not_found"
// @Failure 500 {object} helpers.APIResponse "code: internal_error"
// @Router /api/events/{id}/unregister [post]
func (c *EventController) Unregister(w http.ResponseWriter, r *http.Request) {
	var req MembershipRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if !authorizeSelf(w, r, c.StrictIdentity, req.UserID) {
		return
	}
	event, err := c.Registrations.Unregister(r.Context(), req.UserID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, "Successfully canceled event registration", event)
}

// Complete godoc
// @Summary Complete an event
// @Description Admin only. Marks the event completed and credits every registered volunteer with its duration.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} helpers.APIResponse{data=domain.CompletionResult}
// @Failure 400 {object} helpers.APIResponse "code: conflict (already completed)"
// @Failure 401 {object} helpers.APIResponse "code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "code: forbidden"
// @Failure 404 {object} helpers.APIResponse "code: not_found"
// @Failure 500 {object} helpers.APIResponse "code: internal_error"
// @Router /api/events/{id}/complete [post]
func (c *EventController) Complete(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}
	result, err := c.Completion.Complete(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, "Event marked as completed", result)
}

package event

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/jdmarsh-dev/fieldhouse/config"
	"github.com/jdmarsh-dev/fieldhouse/internal/common"
	"github.com/jdmarsh-dev/fieldhouse/pkg/responses"
	"github.com/jdmarsh-dev/fieldhouse/pkg/validator"
)

// EventController handles calendar HTTP requests.
type EventController struct {
	repo   EventRepository
	config *config.Config
}

// NewEventController creates a new EventController.
func NewEventController(repo EventRepository, cfg *config.Config) *EventController {
	return &EventController{
		repo:   repo,
		config: cfg,
	}
}

// --- DTOs ---

type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required,min=2,max=200"`
	Description string    `json:"description" binding:"omitempty,max=5000"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	Location    string    `json:"location" binding:"omitempty,max=200"`
	Category    string    `json:"category" binding:"omitempty,max=50"`
}

type UpdateEventRequest struct {
	Title       string     `json:"title" binding:"omitempty,min=2,max=200"`
	Description *string    `json:"description" binding:"omitempty,max=5000"`
	StartTime   *time.Time `json:"start_time"`
	Location    *string    `json:"location" binding:"omitempty,max=200"`
	Category    *string    `json:"category" binding:"omitempty,max=50"`
}

func canManageSchool(ident *common.AdminIdentity, schoolID uint) bool {
	if strings.EqualFold(ident.Role, common.RoleSuperAdmin) {
		return true
	}
	return ident.SchoolID != nil && *ident.SchoolID == schoolID
}

// requireEventAccess loads an event and enforces tenant scoping in one step.
func (ec *EventController) requireEventAccess(c *gin.Context, eventID uint) (*Event, bool) {
	e, err := ec.repo.GetEventByID(eventID)
	if err != nil {
		log.Error().Err(err).Uint("event_id", eventID).Msg("event lookup failed")
		responses.InternalServerError(c, "Failed to fetch event")
		return nil, false
	}
	if e == nil {
		responses.NotFound(c, "Event")
		return nil, false
	}

	ident, err := common.GetAdminFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return nil, false
	}
	if !canManageSchool(ident, e.SchoolID) {
		responses.Forbidden(c, "You don't have access to this event")
		return nil, false
	}
	return e, true
}

// --- Handlers ---

// ListEvents godoc
// @Summary List a school's events ordered by start time
// @Tags Events
// @Produce json
// @Param school_id path int true "School ID"
// @Param category query string false "Filter by category"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(50)
// @Success 200 {object} responses.PaginatedResponse{data=[]Event}
// @Router /schools/{school_id}/events [get]
// @Security BearerAuth
func (ec *EventController) ListEvents(c *gin.Context) {
	schoolID, err := common.ParseEntityID(c, "school_id")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}

	events, total, err := ec.repo.GetEventsBySchool(schoolID, c.Query("category"), page, limit)
	if err != nil {
		log.Error().Err(err).Str("action", "ListEvents").Uint("school_id", schoolID).Msg("query failed")
		responses.InternalServerError(c, "Failed to list events")
		return
	}

	responses.SendPaginated(c, http.StatusOK, "", events, total, page, limit)
}

// CreateEvent godoc
// @Summary Create a calendar event
// @Tags Events
// @Accept json
// @Produce json
// @Param school_id path int true "School ID"
// @Param event body CreateEventRequest true "Event creation request"
// @Success 201 {object} responses.SuccessResponse{data=Event}
// @Failure 400 {object} responses.ErrorResponse
// @Router /schools/{school_id}/events [post]
// @Security BearerAuth
func (ec *EventController) CreateEvent(c *gin.Context) {
	schoolID, err := common.ParseEntityID(c, "school_id")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	ident, err := common.GetAdminFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}
	if !canManageSchool(ident, schoolID) {
		responses.Forbidden(c, "You don't have access to this school")
		return
	}

	e := Event{
		SchoolID:    schoolID,
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		Location:    req.Location,
		Category:    req.Category,
	}

	if err := ec.repo.CreateEvent(&e); err != nil {
		log.Error().Err(err).Str("action", "CreateEvent").Msg("insert failed")
		responses.InternalServerError(c, "Failed to create event")
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Event created successfully", e)
}

// UpdateEvent godoc
// @Summary Update a calendar event
// @Tags Events
// @Accept json
// @Produce json
// @Param event_id path int true "Event ID"
// @Param event body UpdateEventRequest true "Event update request"
// @Success 200 {object} responses.SuccessResponse{data=Event}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /events/{event_id} [put]
// @Security BearerAuth
func (ec *EventController) UpdateEvent(c *gin.Context) {
	eventID, err := common.ParseEntityID(c, "event_id")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	e, ok := ec.requireEventAccess(c, eventID)
	if !ok {
		return
	}

	if req.Title != "" {
		e.Title = req.Title
	}
	if req.Description != nil {
		e.Description = *req.Description
	}
	if req.StartTime != nil {
		e.StartTime = *req.StartTime
	}
	if req.Location != nil {
		e.Location = *req.Location
	}
	if req.Category != nil {
		e.Category = *req.Category
	}

	if err := ec.repo.UpdateEvent(e); err != nil {
		log.Error().Err(err).Str("action", "UpdateEvent").Uint("event_id", e.ID).Msg("update failed")
		responses.InternalServerError(c, "Failed to update event")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Event updated successfully", e)
}

// DeleteEvent godoc
// @Summary Delete a calendar event
// @Tags Events
// @Produce json
// @Param event_id path int true "Event ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /events/{event_id} [delete]
// @Security BearerAuth
func (ec *EventController) DeleteEvent(c *gin.Context) {
	eventID, err := common.ParseEntityID(c, "event_id")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	e, ok := ec.requireEventAccess(c, eventID)
	if !ok {
		return
	}

	if err := ec.repo.DeleteEvent(e.ID); err != nil {
		log.Error().Err(err).Str("action", "DeleteEvent").Uint("event_id", e.ID).Msg("delete failed")
		responses.InternalServerError(c, "Failed to delete event")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Event deleted", gin.H{"event_id": e.ID})
}

// ListPublicEvents godoc
// @Summary Public event calendar for a school
// @Tags Public
// @Produce json
// @Param slug path string true "School subdomain slug"
// @Param category query string false "Filter by category"
// @Success 200 {object} responses.PaginatedResponse{data=[]Event}
// @Router /public/schools/{slug}/events [get]
func (ec *EventController) ListPublicEvents(c *gin.Context) {
	slug := strings.ToLower(strings.TrimSpace(c.Param("slug")))
	schoolID, err := ec.repo.ResolveSchoolIDBySlug(slug)
	if err != nil {
		log.Error().Err(err).Str("action", "ListPublicEvents").Str("slug", slug).Msg("school resolution failed")
		responses.SendPaginated(c, http.StatusOK, "", []Event{}, 0, 1, 200)
		return
	}
	if schoolID == 0 {
		responses.NotFound(c, "School")
		return
	}

	events, total, err := ec.repo.GetEventsBySchool(schoolID, c.Query("category"), 1, 200)
	if err != nil {
		// Fail soft for the public calendar page.
		log.Error().Err(err).Str("action", "ListPublicEvents").Uint("school_id", schoolID).Msg("query failed")
		responses.SendPaginated(c, http.StatusOK, "", []Event{}, 0, 1, 200)
		return
	}

	responses.SendPaginated(c, http.StatusOK, "", events, total, 1, 200)
}

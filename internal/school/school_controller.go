package school

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/jdmarsh-dev/fieldhouse/config"
	"github.com/jdmarsh-dev/fieldhouse/internal/common"
	"github.com/jdmarsh-dev/fieldhouse/internal/models"
	"github.com/jdmarsh-dev/fieldhouse/pkg/responses"
	"github.com/jdmarsh-dev/fieldhouse/pkg/validator"
)

// SchoolController handles tenant provisioning and branding requests.
type SchoolController struct {
	repo   SchoolRepository
	config *config.Config
}

// NewSchoolController creates a new SchoolController.
func NewSchoolController(repo SchoolRepository, cfg *config.Config) *SchoolController {
	return &SchoolController{
		repo:   repo,
		config: cfg,
	}
}

// --- DTOs (Data Transfer Objects) for requests/responses ---

type CreateSchoolRequest struct {
	Slug      string                 `json:"slug" binding:"required,min=2,max=63"`
	Name      string                 `json:"name" binding:"required,min=2,max=100"`
	Tagline   string                 `json:"tagline" binding:"omitempty,max=200"`
	NavLabels []string               `json:"nav_labels" binding:"omitempty,max=10"`
	Theme     map[string]interface{} `json:"theme"`
	Contact   *models.ContactInfo    `json:"contact"`
	IsDemo    bool                   `json:"is_demo"`
}

type UpdateBrandingRequest struct {
	Tagline             *string                `json:"tagline" binding:"omitempty,max=200"`
	NavLabels           []string               `json:"nav_labels" binding:"omitempty,max=10"`
	Theme               map[string]interface{} `json:"theme"`
	LogoURL             string                 `json:"logo_url" binding:"omitempty,url|uri,max=500"`
	BackgroundURL       string                 `json:"background_url" binding:"omitempty,url|uri,max=500"`
	BackgroundMediaType string                 `json:"background_media_type" binding:"omitempty,oneof=image video"`
}

type UpdateSchoolInfoRequest struct {
	Name    string              `json:"name" binding:"omitempty,min=2,max=100"`
	Contact *models.ContactInfo `json:"contact"`
}

type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

type SlugCheckResponse struct {
	Slug      string `json:"slug"`
	Hostname  string `json:"hostname"` // the subdomain the slug would claim
	Available bool   `json:"available"`
}

// --- Handlers ---

// CreateSchool godoc
// @Summary Provision a new school
// @Description Super admin creates a new tenant with slug, name and initial branding
// @Tags Schools
// @Accept json
// @Produce json
// @Param school body CreateSchoolRequest true "School provisioning request"
// @Success 201 {object} responses.SuccessResponse{data=School}
// @Failure 400 {object} responses.ErrorResponse "Validation error"
// @Failure 409 {object} responses.ErrorResponse "Slug already taken"
// @Failure 500 {object} responses.ErrorResponse
// @Router /schools [post]
// @Security BearerAuth
func (sc *SchoolController) CreateSchool(c *gin.Context) {
	var req CreateSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	slug := NormalizeSlug(req.Slug)
	if err := ValidateSlug(slug); err != nil {
		responses.SendError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	// Friendly pre-check; the unique index is what actually closes the race.
	exists, err := sc.repo.SlugExists(slug)
	if err != nil {
		log.Error().Err(err).Str("action", "CreateSchool").Msg("slug existence check failed")
		responses.InternalServerError(c, "Failed to verify slug availability")
		return
	}
	if exists {
		responses.Conflict(c, "A school with the subdomain '"+slug+"' already exists")
		return
	}

	s := School{
		Slug:      slug,
		Name:      req.Name,
		Tagline:   req.Tagline,
		NavLabels: models.StringSlice(req.NavLabels),
		Theme:     datatypes.JSONMap(req.Theme),
		IsDemo:    req.IsDemo,
		Active:    true,
	}
	if req.Contact != nil {
		s.Contact = *req.Contact
	}

	if err := sc.repo.CreateSchool(&s); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			responses.Conflict(c, "A school with the subdomain '"+slug+"' already exists")
			return
		}
		log.Error().Err(err).Str("action", "CreateSchool").Msg("insert failed")
		responses.InternalServerError(c, "Failed to create school")
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "School created successfully", s)
}

// CheckSlug godoc
// @Summary Check slug availability
// @Description Live availability check used by the provisioning wizard
// @Tags Schools
// @Produce json
// @Param slug query string true "Candidate subdomain slug"
// @Success 200 {object} responses.SuccessResponse{data=SlugCheckResponse}
// @Failure 400 {object} responses.ErrorResponse
// @Router /schools/slug-check [get]
// @Security BearerAuth
func (sc *SchoolController) CheckSlug(c *gin.Context) {
	slug := NormalizeSlug(c.Query("slug"))
	if err := ValidateSlug(slug); err != nil {
		responses.SendError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	exists, err := sc.repo.SlugExists(slug)
	if err != nil {
		log.Error().Err(err).Str("action", "CheckSlug").Msg("slug existence check failed")
		responses.InternalServerError(c, "Failed to verify slug availability")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "", SlugCheckResponse{
		Slug:      slug,
		Hostname:  slug + "." + sc.config.App.BaseDomain,
		Available: !exists,
	})
}

// GetAllSchools godoc
// @Summary List schools
// @Description Super admin listing of all tenants
// @Tags Schools
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Param include_inactive query bool false "Include deactivated schools"
// @Success 200 {object} responses.PaginatedResponse{data=[]School}
// @Failure 500 {object} responses.ErrorResponse
// @Router /schools [get]
// @Security BearerAuth
func (sc *SchoolController) GetAllSchools(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	includeInactive := c.Query("include_inactive") == "true"

	schools, total, err := sc.repo.GetAllSchools(page, limit, includeInactive)
	if err != nil {
		log.Error().Err(err).Str("action", "GetAllSchools").Msg("query failed")
		responses.InternalServerError(c, "Failed to list schools")
		return
	}

	responses.SendPaginated(c, http.StatusOK, "", schools, total, page, limit)
}

// GetSchool godoc
// @Summary Get one school
// @Tags Schools
// @Produce json
// @Param school_id path int true "School ID"
// @Success 200 {object} responses.SuccessResponse{data=School}
// @Failure 404 {object} responses.ErrorResponse
// @Router /schools/{school_id} [get]
// @Security BearerAuth
func (sc *SchoolController) GetSchool(c *gin.Context) {
	id, err := common.ParseEntityID(c, "school_id")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	s, err := sc.repo.GetSchoolByID(id)
	if err != nil {
		log.Error().Err(err).Str("action", "GetSchool").Uint("school_id", id).Msg("query failed")
		responses.InternalServerError(c, "Failed to fetch school")
		return
	}
	if s == nil {
		responses.NotFound(c, "School")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "", s)
}

// UpdateBranding godoc
// @Summary Update school branding
// @Description Updates theme, nav labels and media. Media URLs are only overwritten when a new non-empty value is supplied.
// @Tags Schools
// @Accept json
// @Produce json
// @Param school_id path int true "School ID"
// @Param branding body UpdateBrandingRequest true "Branding update"
// @Success 200 {object} responses.SuccessResponse{data=School}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /schools/{school_id}/branding [put]
// @Security BearerAuth
func (sc *SchoolController) UpdateBranding(c *gin.Context) {
	id, err := common.ParseEntityID(c, "school_id")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	var req UpdateBrandingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	s, err := sc.repo.GetSchoolByID(id)
	if err != nil {
		log.Error().Err(err).Str("action", "UpdateBranding").Uint("school_id", id).Msg("query failed")
		responses.InternalServerError(c, "Failed to fetch school")
		return
	}
	if s == nil {
		responses.NotFound(c, "School")
		return
	}

	if req.Tagline != nil {
		s.Tagline = *req.Tagline
	}
	if req.NavLabels != nil {
		s.NavLabels = models.StringSlice(req.NavLabels)
	}
	if req.Theme != nil {
		s.Theme = datatypes.JSONMap(req.Theme)
	}
	// Existing media survives when the admin doesn't re-upload.
	if req.LogoURL != "" {
		s.LogoURL = req.LogoURL
	}
	if req.BackgroundURL != "" {
		s.BackgroundURL = req.BackgroundURL
	}
	if req.BackgroundMediaType != "" {
		s.BackgroundMediaType = req.BackgroundMediaType
	}

	if err := sc.repo.UpdateSchool(s); err != nil {
		log.Error().Err(err).Str("action", "UpdateBranding").Uint("school_id", id).Msg("update failed")
		responses.InternalServerError(c, "Failed to update branding")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Branding updated successfully", s)
}

// UpdateInfo godoc
// @Summary Update school name and contact details
// @Tags Schools
// @Accept json
// @Produce json
// @Param school_id path int true "School ID"
// @Param info body UpdateSchoolInfoRequest true "Info update"
// @Success 200 {object} responses.SuccessResponse{data=School}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /schools/{school_id}/info [put]
// @Security BearerAuth
func (sc *SchoolController) UpdateInfo(c *gin.Context) {
	id, err := common.ParseEntityID(c, "school_id")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	var req UpdateSchoolInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	s, err := sc.repo.GetSchoolByID(id)
	if err != nil {
		log.Error().Err(err).Str("action", "UpdateInfo").Uint("school_id", id).Msg("query failed")
		responses.InternalServerError(c, "Failed to fetch school")
		return
	}
	if s == nil {
		responses.NotFound(c, "School")
		return
	}

	if req.Name != "" {
		s.Name = req.Name
	}
	if req.Contact != nil {
		s.Contact = *req.Contact
	}

	if err := sc.repo.UpdateSchool(s); err != nil {
		log.Error().Err(err).Str("action", "UpdateInfo").Uint("school_id", id).Msg("update failed")
		responses.InternalServerError(c, "Failed to update school info")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "School info updated successfully", s)
}

// SetActive godoc
// @Summary Activate or deactivate a school
// @Tags Schools
// @Accept json
// @Produce json
// @Param school_id path int true "School ID"
// @Param body body SetActiveRequest true "Desired active flag"
// @Success 200 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse
// @Router /schools/{school_id}/active [patch]
// @Security BearerAuth
func (sc *SchoolController) SetActive(c *gin.Context) {
	id, err := common.ParseEntityID(c, "school_id")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	if err := sc.repo.SetActive(id, *req.Active); err != nil {
		log.Error().Err(err).Str("action", "SetActive").Uint("school_id", id).Msg("update failed")
		responses.InternalServerError(c, "Failed to update school status")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "School status updated", gin.H{"school_id": id, "active": *req.Active})
}

// PurgeSchool godoc
// @Summary Permanently delete a school and everything it owns
// @Description Cascading hard delete of programs, seasons, events, inductees, media and admins inside one transaction
// @Tags Schools
// @Produce json
// @Param school_id path int true "School ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /schools/{school_id} [delete]
// @Security BearerAuth
func (sc *SchoolController) PurgeSchool(c *gin.Context) {
	id, err := common.ParseEntityID(c, "school_id")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	s, err := sc.repo.GetSchoolByID(id)
	if err != nil {
		log.Error().Err(err).Str("action", "PurgeSchool").Uint("school_id", id).Msg("query failed")
		responses.InternalServerError(c, "Failed to fetch school")
		return
	}
	if s == nil {
		responses.NotFound(c, "School")
		return
	}

	if err := sc.repo.PurgeSchool(id); err != nil {
		log.Error().Err(err).Str("action", "PurgeSchool").Uint("school_id", id).Msg("purge transaction failed")
		responses.InternalServerError(c, "Failed to delete school")
		return
	}

	log.Info().Uint("school_id", id).Str("slug", s.Slug).Msg("school purged")
	responses.SendSuccess(c, http.StatusOK, "School and all owned data deleted", gin.H{"school_id": id})
}

// GetSchoolBySlug godoc
// @Summary Resolve a tenant by subdomain slug
// @Description Public endpoint used by tenant-specific sites; only active schools resolve
// @Tags Public
// @Produce json
// @Param slug path string true "Subdomain slug"
// @Success 200 {object} responses.SuccessResponse{data=School}
// @Failure 404 {object} responses.ErrorResponse
// @Router /public/schools/{slug} [get]
func (sc *SchoolController) GetSchoolBySlug(c *gin.Context) {
	slug := NormalizeSlug(c.Param("slug"))
	if err := ValidateSlug(slug); err != nil {
		responses.NotFound(c, "School")
		return
	}

	s, err := sc.repo.GetSchoolBySlug(slug)
	if err != nil {
		log.Error().Err(err).Str("action", "GetSchoolBySlug").Str("slug", slug).Msg("query failed")
		responses.InternalServerError(c, "Failed to resolve school")
		return
	}
	if s == nil || !s.Active {
		responses.NotFound(c, "School")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "", s)
}

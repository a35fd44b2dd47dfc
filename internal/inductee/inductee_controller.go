package inductee

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/jdmarsh-dev/fieldhouse/config"
	"github.com/jdmarsh-dev/fieldhouse/internal/common"
	"github.com/jdmarsh-dev/fieldhouse/internal/models"
	"github.com/jdmarsh-dev/fieldhouse/pkg/responses"
	"github.com/jdmarsh-dev/fieldhouse/pkg/validator"
)

// InducteeController handles hall-of-fame HTTP requests.
type InducteeController struct {
	repo   InducteeRepository
	config *config.Config
}

// NewInducteeController creates a new InducteeController.
func NewInducteeController(repo InducteeRepository, cfg *config.Config) *InducteeController {
	return &InducteeController{
		repo:   repo,
		config: cfg,
	}
}

// --- DTOs ---

type CreateInducteeRequest struct {
	Name          string   `json:"name" binding:"required,min=2,max=100"`
	Year          int      `json:"year" binding:"omitempty,gte=1900,lte=2100"`
	Category      string   `json:"category" binding:"omitempty,max=50"`
	PhotoURL      string   `json:"photo_url" binding:"omitempty,url|uri,max=500"`
	VideoURL      string   `json:"video_url" binding:"omitempty,url|uri,max=500"`
	Bio           string   `json:"bio" binding:"omitempty,max=10000"`
	Achievements  []string `json:"achievements"`
	InductionYear int      `json:"induction_year" binding:"omitempty,gte=1900,lte=2100"`
}

type UpdateInducteeRequest struct {
	Name          string   `json:"name" binding:"omitempty,min=2,max=100"`
	Year          *int     `json:"year" binding:"omitempty,gte=1900,lte=2100"`
	Category      *string  `json:"category" binding:"omitempty,max=50"`
	PhotoURL      string   `json:"photo_url" binding:"omitempty,url|uri,max=500"`
	VideoURL      string   `json:"video_url" binding:"omitempty,url|uri,max=500"`
	Bio           *string  `json:"bio" binding:"omitempty,max=10000"`
	Achievements  []string `json:"achievements"`
	InductionYear *int     `json:"induction_year" binding:"omitempty,gte=1900,lte=2100"`
}

func canManageSchool(ident *common.AdminIdentity, schoolID uint) bool {
	if strings.EqualFold(ident.Role, common.RoleSuperAdmin) {
		return true
	}
	return ident.SchoolID != nil && *ident.SchoolID == schoolID
}

func (ic *InducteeController) requireInducteeAccess(c *gin.Context, id uint) (*Inductee, bool) {
	i, err := ic.repo.GetInducteeByID(id)
	if err != nil {
		log.Error().Err(err).Uint("inductee_id", id).Msg("inductee lookup failed")
		responses.InternalServerError(c, "Failed to fetch inductee")
		return nil, false
	}
	if i == nil {
		responses.NotFound(c, "Inductee")
		return nil, false
	}

	ident, err := common.GetAdminFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return nil, false
	}
	if !canManageSchool(ident, i.SchoolID) {
		responses.Forbidden(c, "You don't have access to this inductee")
		return nil, false
	}
	return i, true
}

// --- Handlers ---

// ListInductees godoc
// @Summary List a school's hall-of-fame inductees
// @Tags HallOfFame
// @Produce json
// @Param school_id path int true "School ID"
// @Param category query string false "Filter by category"
// @Success 200 {object} responses.SuccessResponse{data=[]Inductee}
// @Router /schools/{school_id}/inductees [get]
// @Security BearerAuth
func (ic *InducteeController) ListInductees(c *gin.Context) {
	schoolID, err := common.ParseEntityID(c, "school_id")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	inductees, err := ic.repo.GetInducteesBySchool(schoolID, c.Query("category"))
	if err != nil {
		log.Error().Err(err).Str("action", "ListInductees").Uint("school_id", schoolID).Msg("query failed")
		responses.InternalServerError(c, "Failed to list inductees")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "", inductees)
}

// CreateInductee godoc
// @Summary Add a hall-of-fame inductee
// @Tags HallOfFame
// @Accept json
// @Produce json
// @Param school_id path int true "School ID"
// @Param inductee body CreateInducteeRequest true "Inductee creation request"
// @Success 201 {object} responses.SuccessResponse{data=Inductee}
// @Failure 400 {object} responses.ErrorResponse
// @Router /schools/{school_id}/inductees [post]
// @Security BearerAuth
func (ic *InducteeController) CreateInductee(c *gin.Context) {
	schoolID, err := common.ParseEntityID(c, "school_id")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	var req CreateInducteeRequest
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

	i := Inductee{
		SchoolID:      schoolID,
		Name:          req.Name,
		Year:          req.Year,
		Category:      req.Category,
		PhotoURL:      req.PhotoURL,
		VideoURL:      req.VideoURL,
		Bio:           req.Bio,
		Achievements:  models.StringSlice(req.Achievements),
		InductionYear: req.InductionYear,
	}

	if err := ic.repo.CreateInductee(&i); err != nil {
		log.Error().Err(err).Str("action", "CreateInductee").Msg("insert failed")
		responses.InternalServerError(c, "Failed to create inductee")
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Inductee created successfully", i)
}

// UpdateInductee godoc
// @Summary Update a hall-of-fame inductee
// @Description Media URLs are only overwritten when a new non-empty value is supplied.
// @Tags HallOfFame
// @Accept json
// @Produce json
// @Param inductee_id path int true "Inductee ID"
// @Param inductee body UpdateInducteeRequest true "Inductee update request"
// @Success 200 {object} responses.SuccessResponse{data=Inductee}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /inductees/{inductee_id} [put]
// @Security BearerAuth
func (ic *InducteeController) UpdateInductee(c *gin.Context) {
	inducteeID, err := common.ParseEntityID(c, "inductee_id")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	var req UpdateInducteeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	i, ok := ic.requireInducteeAccess(c, inducteeID)
	if !ok {
		return
	}

	if req.Name != "" {
		i.Name = req.Name
	}
	if req.Year != nil {
		i.Year = *req.Year
	}
	if req.Category != nil {
		i.Category = *req.Category
	}
	if req.Bio != nil {
		i.Bio = *req.Bio
	}
	if req.Achievements != nil {
		i.Achievements = models.StringSlice(req.Achievements)
	}
	if req.InductionYear != nil {
		i.InductionYear = *req.InductionYear
	}
	// Media survives when the admin doesn't re-upload.
	if req.PhotoURL != "" {
		i.PhotoURL = req.PhotoURL
	}
	if req.VideoURL != "" {
		i.VideoURL = req.VideoURL
	}

	if err := ic.repo.UpdateInductee(i); err != nil {
		log.Error().Err(err).Str("action", "UpdateInductee").Uint("inductee_id", i.ID).Msg("update failed")
		responses.InternalServerError(c, "Failed to update inductee")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Inductee updated successfully", i)
}

// DeleteInductee godoc
// @Summary Remove a hall-of-fame inductee
// @Tags HallOfFame
// @Produce json
// @Param inductee_id path int true "Inductee ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /inductees/{inductee_id} [delete]
// @Security BearerAuth
func (ic *InducteeController) DeleteInductee(c *gin.Context) {
	inducteeID, err := common.ParseEntityID(c, "inductee_id")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	i, ok := ic.requireInducteeAccess(c, inducteeID)
	if !ok {
		return
	}

	if err := ic.repo.DeleteInductee(i.ID); err != nil {
		log.Error().Err(err).Str("action", "DeleteInductee").Uint("inductee_id", i.ID).Msg("delete failed")
		responses.InternalServerError(c, "Failed to delete inductee")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Inductee deleted", gin.H{"inductee_id": i.ID})
}

// ListPublicInductees godoc
// @Summary Public hall of fame for a school
// @Tags Public
// @Produce json
// @Param slug path string true "School subdomain slug"
// @Param category query string false "Filter by category"
// @Success 200 {object} responses.SuccessResponse{data=[]Inductee}
// @Router /public/schools/{slug}/hall-of-fame [get]
func (ic *InducteeController) ListPublicInductees(c *gin.Context) {
	slug := strings.ToLower(strings.TrimSpace(c.Param("slug")))
	schoolID, err := ic.repo.ResolveSchoolIDBySlug(slug)
	if err != nil {
		log.Error().Err(err).Str("action", "ListPublicInductees").Str("slug", slug).Msg("school resolution failed")
		responses.SendSuccess(c, http.StatusOK, "", []Inductee{})
		return
	}
	if schoolID == 0 {
		responses.NotFound(c, "School")
		return
	}

	inductees, err := ic.repo.GetInducteesBySchool(schoolID, c.Query("category"))
	if err != nil {
		// Fail soft for the public page.
		log.Error().Err(err).Str("action", "ListPublicInductees").Uint("school_id", schoolID).Msg("query failed")
		responses.SendSuccess(c, http.StatusOK, "", []Inductee{})
		return
	}

	responses.SendSuccess(c, http.StatusOK, "", inductees)
}

package media

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/jdmarsh-dev/fieldhouse/config"
	"github.com/jdmarsh-dev/fieldhouse/internal/common"
	"github.com/jdmarsh-dev/fieldhouse/pkg/responses"
	"github.com/jdmarsh-dev/fieldhouse/pkg/validator"
)

const maxUploadBytes = 25 << 20

// MediaController handles file uploads and screensaver rotation management.
type MediaController struct {
	repo    MediaRepository
	storage Storage
	config  *config.Config
}

func NewMediaController(repo MediaRepository, storage Storage, cfg *config.Config) *MediaController {
	return &MediaController{
		repo:    repo,
		storage: storage,
		config:  cfg,
	}
}

// --- DTOs ---

type UploadResult struct {
	URL       string `json:"url"`
	MediaType string `json:"media_type"`
}

type AddScreensaverImageRequest struct {
	URL       string `json:"url" binding:"required,url|uri,max=500"`
	Caption   string `json:"caption" binding:"omitempty,max=200"`
	SortOrder int    `json:"sort_order"`
}

type UpdateScreensaverImageRequest struct {
	Caption   *string `json:"caption" binding:"omitempty,max=200"`
	SortOrder *int    `json:"sort_order"`
	Active    *bool   `json:"active"`
}

func canManageSchool(ident *common.AdminIdentity, schoolID uint) bool {
	if strings.EqualFold(ident.Role, common.RoleSuperAdmin) {
		return true
	}
	return ident.SchoolID != nil && *ident.SchoolID == schoolID
}

func (mc *MediaController) requireSchoolAccess(c *gin.Context) (uint, bool) {
	schoolID, err := common.ParseEntityID(c, "school_id")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return 0, false
	}
	ident, err := common.GetAdminFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return 0, false
	}
	if !canManageSchool(ident, schoolID) {
		responses.Forbidden(c, "You don't have access to this school")
		return 0, false
	}
	return schoolID, true
}

// --- Handlers ---

// UploadMedia godoc
// @Summary Upload a media file for a school
// @Description Accepts images and short videos. Returns the public URL which
// @Description can then be attached to branding, seasons, inductees, or the screensaver.
// @Tags Media
// @Accept multipart/form-data
// @Produce json
// @Param school_id path int true "School ID"
// @Param file formData file true "Media file"
// @Success 201 {object} responses.SuccessResponse{data=UploadResult}
// @Failure 400 {object} responses.ErrorResponse
// @Router /schools/{school_id}/media [post]
// @Security BearerAuth
func (mc *MediaController) UploadMedia(c *gin.Context) {
	schoolID, ok := mc.requireSchoolAccess(c)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		responses.BadRequest(c, "A file field is required")
		return
	}
	if file.Size > maxUploadBytes {
		responses.BadRequest(c, "File exceeds the 25MB upload limit")
		return
	}
	mediaType := MediaTypeForFilename(file.Filename)
	if mediaType == "" {
		responses.BadRequest(c, "Unsupported file type")
		return
	}

	url, err := mc.storage.Save(file, fmt.Sprintf("schools/%d", schoolID))
	if err != nil {
		log.Error().Err(err).Str("action", "UploadMedia").Uint("school_id", schoolID).Msg("save failed")
		responses.InternalServerError(c, "Failed to store upload")
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "File uploaded", UploadResult{
		URL:       url,
		MediaType: mediaType,
	})
}

// ListScreensaverImages godoc
// @Summary List a school's screensaver slides
// @Tags Media
// @Produce json
// @Param school_id path int true "School ID"
// @Success 200 {object} responses.SuccessResponse{data=[]ScreensaverImage}
// @Router /schools/{school_id}/screensaver [get]
// @Security BearerAuth
func (mc *MediaController) ListScreensaverImages(c *gin.Context) {
	schoolID, ok := mc.requireSchoolAccess(c)
	if !ok {
		return
	}

	images, err := mc.repo.GetScreensaverImagesBySchool(schoolID, false)
	if err != nil {
		log.Error().Err(err).Str("action", "ListScreensaverImages").Uint("school_id", schoolID).Msg("query failed")
		responses.InternalServerError(c, "Failed to list screensaver images")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "", images)
}

// AddScreensaverImage godoc
// @Summary Add a screensaver slide
// @Tags Media
// @Accept json
// @Produce json
// @Param school_id path int true "School ID"
// @Param image body AddScreensaverImageRequest true "Slide to add"
// @Success 201 {object} responses.SuccessResponse{data=ScreensaverImage}
// @Failure 400 {object} responses.ErrorResponse
// @Router /schools/{school_id}/screensaver [post]
// @Security BearerAuth
func (mc *MediaController) AddScreensaverImage(c *gin.Context) {
	schoolID, ok := mc.requireSchoolAccess(c)
	if !ok {
		return
	}

	var req AddScreensaverImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	img := ScreensaverImage{
		SchoolID:  schoolID,
		URL:       req.URL,
		Caption:   req.Caption,
		SortOrder: req.SortOrder,
		Active:    true,
	}
	if err := mc.repo.CreateScreensaverImage(&img); err != nil {
		log.Error().Err(err).Str("action", "AddScreensaverImage").Msg("insert failed")
		responses.InternalServerError(c, "Failed to add screensaver image")
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Screensaver image added", img)
}

// UpdateScreensaverImage godoc
// @Summary Update a screensaver slide
// @Tags Media
// @Accept json
// @Produce json
// @Param image_id path int true "Image ID"
// @Param image body UpdateScreensaverImageRequest true "Fields to change"
// @Success 200 {object} responses.SuccessResponse{data=ScreensaverImage}
// @Failure 404 {object} responses.ErrorResponse
// @Router /screensaver/{image_id} [put]
// @Security BearerAuth
func (mc *MediaController) UpdateScreensaverImage(c *gin.Context) {
	imageID, err := common.ParseEntityID(c, "image_id")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	var req UpdateScreensaverImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	img, ok := mc.requireImageAccess(c, imageID)
	if !ok {
		return
	}

	if req.Caption != nil {
		img.Caption = *req.Caption
	}
	if req.SortOrder != nil {
		img.SortOrder = *req.SortOrder
	}
	if req.Active != nil {
		img.Active = *req.Active
	}

	if err := mc.repo.UpdateScreensaverImage(img); err != nil {
		log.Error().Err(err).Str("action", "UpdateScreensaverImage").Uint("image_id", img.ID).Msg("update failed")
		responses.InternalServerError(c, "Failed to update screensaver image")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Screensaver image updated", img)
}

// DeleteScreensaverImage godoc
// @Summary Remove a screensaver slide
// @Description The slide row is removed and, for locally stored files, the
// @Description underlying object is deleted as well.
// @Tags Media
// @Produce json
// @Param image_id path int true "Image ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /screensaver/{image_id} [delete]
// @Security BearerAuth
func (mc *MediaController) DeleteScreensaverImage(c *gin.Context) {
	imageID, err := common.ParseEntityID(c, "image_id")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	img, ok := mc.requireImageAccess(c, imageID)
	if !ok {
		return
	}

	if err := mc.repo.DeleteScreensaverImage(img.ID); err != nil {
		log.Error().Err(err).Str("action", "DeleteScreensaverImage").Uint("image_id", img.ID).Msg("delete failed")
		responses.InternalServerError(c, "Failed to delete screensaver image")
		return
	}
	if err := mc.storage.Remove(img.URL); err != nil {
		log.Warn().Err(err).Str("url", img.URL).Msg("failed to remove stored object")
	}

	responses.SendSuccess(c, http.StatusOK, "Screensaver image deleted", gin.H{"image_id": img.ID})
}

func (mc *MediaController) requireImageAccess(c *gin.Context, id uint) (*ScreensaverImage, bool) {
	img, err := mc.repo.GetScreensaverImageByID(id)
	if err != nil {
		log.Error().Err(err).Uint("image_id", id).Msg("screensaver image lookup failed")
		responses.InternalServerError(c, "Failed to fetch screensaver image")
		return nil, false
	}
	if img == nil {
		responses.NotFound(c, "Screensaver image")
		return nil, false
	}

	ident, err := common.GetAdminFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return nil, false
	}
	if !canManageSchool(ident, img.SchoolID) {
		responses.Forbidden(c, "You don't have access to this image")
		return nil, false
	}
	return img, true
}

// ListPublicScreensaver godoc
// @Summary Public screensaver rotation for a school
// @Tags Public
// @Produce json
// @Param slug path string true "School subdomain slug"
// @Success 200 {object} responses.SuccessResponse{data=[]ScreensaverImage}
// @Router /public/schools/{slug}/screensaver [get]
func (mc *MediaController) ListPublicScreensaver(c *gin.Context) {
	slug := strings.ToLower(strings.TrimSpace(c.Param("slug")))
	schoolID, err := mc.repo.ResolveSchoolIDBySlug(slug)
	if err != nil {
		log.Error().Err(err).Str("action", "ListPublicScreensaver").Str("slug", slug).Msg("school resolution failed")
		responses.SendSuccess(c, http.StatusOK, "", []ScreensaverImage{})
		return
	}
	if schoolID == 0 {
		responses.NotFound(c, "School")
		return
	}

	images, err := mc.repo.GetScreensaverImagesBySchool(schoolID, true)
	if err != nil {
		log.Error().Err(err).Str("action", "ListPublicScreensaver").Uint("school_id", schoolID).Msg("query failed")
		responses.SendSuccess(c, http.StatusOK, "", []ScreensaverImage{})
		return
	}

	responses.SendSuccess(c, http.StatusOK, "", images)
}

package program

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/jdmarsh-dev/fieldhouse/config"
	"github.com/jdmarsh-dev/fieldhouse/internal/common"
	"github.com/jdmarsh-dev/fieldhouse/internal/models"
	"github.com/jdmarsh-dev/fieldhouse/pkg/responses"
	"github.com/jdmarsh-dev/fieldhouse/pkg/validator"
)

// ProgramController handles program, season and roster HTTP requests.
type ProgramController struct {
	repo      ProgramRepository
	appConfig *config.Config
}

// NewProgramController creates a new program controller.
func NewProgramController(repo ProgramRepository, appConfig *config.Config) *ProgramController {
	return &ProgramController{
		repo:      repo,
		appConfig: appConfig,
	}
}

// --- DTOs for requests ---

type PlayerInput struct {
	ID           string `json:"id"`
	Name         string `json:"name" binding:"omitempty,max=100"`
	Position     string `json:"position" binding:"omitempty,max=50"`
	Grade        string `json:"grade" binding:"omitempty,max=30"`
	JerseyNumber string `json:"jersey_number" binding:"omitempty,max=10"`
}

type InitialSeasonRequest struct {
	Year            int           `json:"year" binding:"omitempty,gte=1900,lte=2100"`
	StateChampions  bool          `json:"state_champions"`
	RegionChampions bool          `json:"region_champions"`
	Summary         string        `json:"summary" binding:"omitempty,max=5000"`
	Roster          []PlayerInput `json:"roster" binding:"omitempty,dive"`
}

type CreateProgramRequest struct {
	Name          string                `json:"name" binding:"required,min=2,max=100"`
	Gender        string                `json:"gender" binding:"required,oneof=boys girls coed"`
	SportCategory string                `json:"sport_category" binding:"omitempty,max=50"`
	HeadCoach     string                `json:"head_coach" binding:"omitempty,max=100"`
	PhotoURL      string                `json:"photo_url" binding:"omitempty,url|uri,max=500"`
	BackgroundURL string                `json:"background_url" binding:"omitempty,url|uri,max=500"`
	MediaType     string                `json:"media_type" binding:"omitempty,oneof=image video"`
	CreateSeason  bool                  `json:"create_season"`
	InitialSeason *InitialSeasonRequest `json:"initial_season"`
}

type UpdateProgramRequest struct {
	Name          string       `json:"name" binding:"omitempty,min=2,max=100"`
	Gender        string       `json:"gender" binding:"omitempty,oneof=boys girls coed"`
	SportCategory string       `json:"sport_category" binding:"omitempty,max=50"`
	HeadCoach     *string      `json:"head_coach" binding:"omitempty,max=100"`
	PhotoURL      string       `json:"photo_url" binding:"omitempty,url|uri,max=500"`
	BackgroundURL string       `json:"background_url" binding:"omitempty,url|uri,max=500"`
	MediaType     string       `json:"media_type" binding:"omitempty,oneof=image video"`
	Records       []RecordEntry `json:"records"`
	TrophyCase    []string     `json:"trophy_case_items"`
}

// ProgramWithLatestSeason is the directory projection: each program annotated
// with its most recent season, if any.
type ProgramWithLatestSeason struct {
	Program
	LatestSeason *Season `json:"latest_season"`
}

// CreateProgramResult carries the ids the caller needs to pivot straight to
// season management after a create.
type CreateProgramResult struct {
	ProgramID  uint   `json:"program_id"`
	Name       string `json:"name"`
	SeasonID   *uint  `json:"season_id,omitempty"`
	SeasonYear *int   `json:"season_year,omitempty"`
}

// canManageSchool reports whether the authenticated admin may mutate rows
// owned by the given school.
func canManageSchool(ident *common.AdminIdentity, schoolID uint) bool {
	if strings.EqualFold(ident.Role, common.RoleSuperAdmin) {
		return true
	}
	return ident.SchoolID != nil && *ident.SchoolID == schoolID
}

// requireProgramAccess loads a program and enforces tenant scoping in one step.
func (pc *ProgramController) requireProgramAccess(c *gin.Context, programID uint) (*Program, bool) {
	p, err := pc.repo.GetProgramByID(programID)
	if err != nil {
		log.Error().Err(err).Uint("program_id", programID).Msg("program lookup failed")
		responses.InternalServerError(c, "Failed to fetch program")
		return nil, false
	}
	if p == nil {
		responses.NotFound(c, "Program")
		return nil, false
	}

	ident, err := common.GetAdminFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return nil, false
	}
	if !canManageSchool(ident, p.SchoolID) {
		responses.Forbidden(c, "You don't have access to this program")
		return nil, false
	}
	return p, true
}

// --- Program Handlers ---

// GetProgramDirectory godoc
// @Summary List a school's programs with their most recent season
// @Description Each program is annotated with its highest-year season. Query failures degrade to an empty list rather than an error page.
// @Tags Programs
// @Produce json
// @Param school_id path int true "School ID"
// @Param include_latest_season query bool false "Annotate each program with its latest season" default(true)
// @Success 200 {object} responses.SuccessResponse{data=[]ProgramWithLatestSeason}
// @Router /schools/{school_id}/programs [get]
// @Security BearerAuth
func (pc *ProgramController) GetProgramDirectory(c *gin.Context) {
	schoolID, err := common.ParseEntityID(c, "school_id")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}
	includeLatest := c.DefaultQuery("include_latest_season", "true") == "true"

	ident, err := common.GetAdminFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}
	if !canManageSchool(ident, schoolID) {
		responses.Forbidden(c, "You don't have access to this school")
		return
	}

	programs, err := pc.repo.GetProgramsBySchool(schoolID)
	if err != nil {
		// Fail soft: the admin console renders an empty directory instead of
		// an error page.
		log.Error().Err(err).Str("action", "GetProgramDirectory").Uint("school_id", schoolID).Msg("program list query failed")
		responses.SendSuccess(c, http.StatusOK, "", []ProgramWithLatestSeason{})
		return
	}

	directory := make([]ProgramWithLatestSeason, 0, len(programs))
	for _, p := range programs {
		entry := ProgramWithLatestSeason{Program: p}
		if includeLatest {
			// One query per program. N is tens at most for an admin console,
			// so the simple shape wins over a join.
			latest, err := pc.repo.GetLatestSeason(p.ID)
			if err != nil {
				log.Warn().Err(err).Uint("program_id", p.ID).Msg("latest season lookup failed, projecting null")
			} else {
				entry.LatestSeason = latest
			}
		}
		directory = append(directory, entry)
	}

	responses.SendSuccess(c, http.StatusOK, "", directory)
}

// GetProgram godoc
// @Summary Get one program with all of its seasons
// @Tags Programs
// @Produce json
// @Param program_id path int true "Program ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /programs/{program_id} [get]
// @Security BearerAuth
func (pc *ProgramController) GetProgram(c *gin.Context) {
	programID, err := common.ParseEntityID(c, "program_id")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	p, ok := pc.requireProgramAccess(c, programID)
	if !ok {
		return
	}

	seasons, err := pc.repo.GetSeasonsByProgram(p.ID)
	if err != nil {
		log.Warn().Err(err).Uint("program_id", p.ID).Msg("season list query failed, returning program only")
		seasons = []Season{}
	}

	responses.SendSuccess(c, http.StatusOK, "", gin.H{
		"program": p,
		"seasons": seasons,
	})
}

// CreateProgram godoc
// @Summary Create a program
// @Description Creates a program and, when requested, an initial season in the same transaction. The (school, name, gender) pair must be unique.
// @Tags Programs
// @Accept json
// @Produce json
// @Param school_id path int true "School ID"
// @Param program body CreateProgramRequest true "Program creation request"
// @Success 201 {object} responses.SuccessResponse{data=CreateProgramResult}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse "Program with this name and gender already exists"
// @Failure 500 {object} responses.ErrorResponse
// @Router /schools/{school_id}/programs [post]
// @Security BearerAuth
func (pc *ProgramController) CreateProgram(c *gin.Context) {
	schoolID, err := common.ParseEntityID(c, "school_id")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	var req CreateProgramRequest
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

	// Pre-check so the conflict message can name the collision; the unique
	// index covers the concurrent case.
	existing, err := pc.repo.FindProgramByNameAndGender(schoolID, req.Name, req.Gender)
	if err != nil {
		log.Error().Err(err).Str("action", "CreateProgram").Msg("uniqueness pre-check failed")
		responses.InternalServerError(c, "Failed to verify program uniqueness")
		return
	}
	if existing != nil {
		responses.Conflict(c, "A program named '"+existing.Name+"' ("+existing.Gender+") already exists for this school")
		return
	}

	p := Program{
		SchoolID:      schoolID,
		Name:          req.Name,
		Gender:        req.Gender,
		SportCategory: req.SportCategory,
		HeadCoach:     req.HeadCoach,
		PhotoURL:      req.PhotoURL,
		BackgroundURL: req.BackgroundURL,
		MediaType:     req.MediaType,
	}
	if p.MediaType == "" {
		p.MediaType = MediaTypeImage
	}

	result := CreateProgramResult{Name: p.Name}

	if req.CreateSeason {
		season := buildInitialSeason(req.InitialSeason)
		if err := pc.repo.CreateProgramWithSeason(&p, season); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				responses.Conflict(c, "A program named '"+req.Name+"' ("+req.Gender+") already exists for this school")
				return
			}
			log.Error().Err(err).Str("action", "CreateProgram").Msg("transactional insert failed")
			responses.InternalServerError(c, "Failed to create program")
			return
		}
		result.SeasonID = &season.ID
		result.SeasonYear = &season.Year
	} else {
		if err := pc.repo.CreateProgram(&p); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				responses.Conflict(c, "A program named '"+req.Name+"' ("+req.Gender+") already exists for this school")
				return
			}
			log.Error().Err(err).Str("action", "CreateProgram").Msg("insert failed")
			responses.InternalServerError(c, "Failed to create program")
			return
		}
	}

	result.ProgramID = p.ID
	responses.SendSuccess(c, http.StatusCreated, "Program created successfully", result)
}

// buildInitialSeason derives the optional first season from the create
// request. Championship flags become achievement tags.
func buildInitialSeason(req *InitialSeasonRequest) *Season {
	season := &Season{
		Year:         time.Now().Year(),
		Achievements: models.StringSlice{},
		Roster:       PlayerList{},
	}
	if req == nil {
		return season
	}
	if req.Year != 0 {
		season.Year = req.Year
	}
	if req.StateChampions {
		season.Achievements = append(season.Achievements, "State Champions")
	}
	if req.RegionChampions {
		season.Achievements = append(season.Achievements, "Region Champions")
	}
	season.Summary = req.Summary
	season.Roster = playersFromInput(req.Roster)
	return season
}

// playersFromInput converts request entries to roster entries, assigning ids
// where the client didn't send one and dropping nameless rows.
func playersFromInput(in []PlayerInput) PlayerList {
	out := make(PlayerList, 0, len(in))
	for _, pi := range in {
		name := strings.TrimSpace(pi.Name)
		if name == "" {
			continue
		}
		id := strings.TrimSpace(pi.ID)
		if id == "" {
			id = uuid.NewString()
		}
		out = append(out, Player{
			ID:           id,
			Name:         name,
			Position:     strings.TrimSpace(pi.Position),
			Grade:        strings.TrimSpace(pi.Grade),
			JerseyNumber: strings.TrimSpace(pi.JerseyNumber),
		})
	}
	return out
}

// UpdateProgram godoc
// @Summary Update a program
// @Description Full-row update. Photo and background URLs are only overwritten when a new non-empty value is supplied.
// @Tags Programs
// @Accept json
// @Produce json
// @Param program_id path int true "Program ID"
// @Param program body UpdateProgramRequest true "Program update request"
// @Success 200 {object} responses.SuccessResponse{data=Program}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /programs/{program_id} [put]
// @Security BearerAuth
func (pc *ProgramController) UpdateProgram(c *gin.Context) {
	programID, err := common.ParseEntityID(c, "program_id")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	var req UpdateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	p, ok := pc.requireProgramAccess(c, programID)
	if !ok {
		return
	}

	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Gender != "" {
		p.Gender = req.Gender
	}
	if req.SportCategory != "" {
		p.SportCategory = req.SportCategory
	}
	if req.HeadCoach != nil {
		p.HeadCoach = *req.HeadCoach
	}
	if req.MediaType != "" {
		p.MediaType = req.MediaType
	}
	// Media survives when the admin doesn't re-upload.
	if req.PhotoURL != "" {
		p.PhotoURL = req.PhotoURL
	}
	if req.BackgroundURL != "" {
		p.BackgroundURL = req.BackgroundURL
	}
	if req.Records != nil {
		p.Records = RecordList(req.Records)
	}
	if req.TrophyCase != nil {
		p.TrophyCaseItems = models.StringSlice(req.TrophyCase)
	}

	if err := pc.repo.UpdateProgram(p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			responses.Conflict(c, "A program named '"+p.Name+"' ("+p.Gender+") already exists for this school")
			return
		}
		log.Error().Err(err).Str("action", "UpdateProgram").Uint("program_id", p.ID).Msg("update failed")
		responses.InternalServerError(c, "Failed to update program")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Program updated successfully", p)
}

// DeleteProgram godoc
// @Summary Delete a program and all of its seasons
// @Description Seasons then program, inside one transaction.
// @Tags Programs
// @Produce json
// @Param program_id path int true "Program ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /programs/{program_id} [delete]
// @Security BearerAuth
func (pc *ProgramController) DeleteProgram(c *gin.Context) {
	programID, err := common.ParseEntityID(c, "program_id")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	p, ok := pc.requireProgramAccess(c, programID)
	if !ok {
		return
	}

	if err := pc.repo.DeleteProgramWithSeasons(p.ID); err != nil {
		log.Error().Err(err).Str("action", "DeleteProgram").Uint("program_id", p.ID).Msg("delete transaction failed")
		responses.InternalServerError(c, "Failed to delete program")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Program and its seasons deleted", gin.H{"program_id": p.ID})
}

// GetPublicProgramDetail godoc
// @Summary Public program display composition
// @Description Program detail plus seasons ordered by year descending, for tenant-facing pages.
// @Tags Public
// @Produce json
// @Param program_id path int true "Program ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /public/programs/{program_id} [get]
func (pc *ProgramController) GetPublicProgramDetail(c *gin.Context) {
	programID, err := common.ParseEntityID(c, "program_id")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	p, err := pc.repo.GetProgramByID(programID)
	if err != nil {
		log.Error().Err(err).Str("action", "GetPublicProgramDetail").Uint("program_id", programID).Msg("query failed")
		responses.InternalServerError(c, "Failed to fetch program")
		return
	}
	if p == nil {
		responses.NotFound(c, "Program")
		return
	}

	seasons, err := pc.repo.GetSeasonsByProgram(p.ID)
	if err != nil {
		log.Warn().Err(err).Uint("program_id", p.ID).Msg("season list query failed, rendering program only")
		seasons = []Season{}
	}

	responses.SendSuccess(c, http.StatusOK, "", gin.H{
		"program": p,
		"seasons": seasons,
	})
}

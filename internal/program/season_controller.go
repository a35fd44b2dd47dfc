package program

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/jdmarsh-dev/fieldhouse/internal/common"
	"github.com/jdmarsh-dev/fieldhouse/internal/models"
	"github.com/jdmarsh-dev/fieldhouse/pkg/responses"
	"github.com/jdmarsh-dev/fieldhouse/pkg/validator"
)

// --- DTOs ---

// SeasonUpsertRequest covers both insert (no id) and update (id set). The two
// achievements fields exist because older clients still send the stringly
// form; the typed list wins when both are present.
type SeasonUpsertRequest struct {
	ID                        *uint         `json:"id"`
	Year                      int           `json:"year" binding:"required,gte=1900,lte=2100"`
	Record                    string        `json:"record" binding:"omitempty,max=50"`
	Coach                     string        `json:"coach" binding:"omitempty,max=100"`
	Achievements              []string      `json:"achievements"`
	AchievementsRaw           string        `json:"achievements_raw"` // JSON array string or newline-separated text
	IndividualAccomplishments string        `json:"individual_accomplishments" binding:"omitempty,max=5000"`
	Summary                   string        `json:"summary" binding:"omitempty,max=5000"`
	PhotoURL                  string        `json:"photo_url" binding:"omitempty,url|uri,max=500"`
	Roster                    []PlayerInput `json:"roster" binding:"omitempty,dive"`
}

type BootstrapSeasonResult struct {
	Season  *Season `json:"season"`
	Created bool    `json:"created"`
}

// requireSeasonAccess loads a season and enforces tenant scoping through its
// owning program.
func (pc *ProgramController) requireSeasonAccess(c *gin.Context, seasonID uint) (*Season, bool) {
	s, err := pc.repo.GetSeasonByID(seasonID)
	if err != nil {
		log.Error().Err(err).Uint("season_id", seasonID).Msg("season lookup failed")
		responses.InternalServerError(c, "Failed to fetch season")
		return nil, false
	}
	if s == nil {
		responses.NotFound(c, "Season")
		return nil, false
	}
	if _, ok := pc.requireProgramAccess(c, s.ProgramID); !ok {
		return nil, false
	}
	return s, true
}

// resolveAchievements picks the typed list when present, otherwise normalizes
// the raw form. Unparseable raw input degrades to an empty list with a
// warning, never a hard failure.
func resolveAchievements(req *SeasonUpsertRequest) models.StringSlice {
	if req.Achievements != nil {
		return models.StringSlice(cleanTags(req.Achievements))
	}
	tags, ok := NormalizeAchievements(req.AchievementsRaw)
	if !ok {
		log.Warn().Str("raw", req.AchievementsRaw).Msg("unparseable achievements input, defaulting to empty list")
	}
	return models.StringSlice(tags)
}

// --- Season Handlers ---

// ListSeasons godoc
// @Summary List a program's seasons, newest year first
// @Tags Seasons
// @Produce json
// @Param program_id path int true "Program ID"
// @Success 200 {object} responses.SuccessResponse{data=[]Season}
// @Failure 404 {object} responses.ErrorResponse
// @Router /programs/{program_id}/seasons [get]
// @Security BearerAuth
func (pc *ProgramController) ListSeasons(c *gin.Context) {
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
		log.Error().Err(err).Str("action", "ListSeasons").Uint("program_id", p.ID).Msg("query failed")
		responses.InternalServerError(c, "Failed to list seasons")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "", seasons)
}

// UpsertSeason godoc
// @Summary Create or update a season
// @Description Insert when no id is supplied, full-row update otherwise. Achievements accept a typed list or legacy newline/JSON text. One season per (program, year).
// @Tags Seasons
// @Accept json
// @Produce json
// @Param program_id path int true "Program ID"
// @Param season body SeasonUpsertRequest true "Season payload"
// @Success 200 {object} responses.SuccessResponse{data=Season}
// @Success 201 {object} responses.SuccessResponse{data=Season}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse "A season for this year already exists"
// @Router /programs/{program_id}/seasons [post]
// @Security BearerAuth
func (pc *ProgramController) UpsertSeason(c *gin.Context) {
	programID, err := common.ParseEntityID(c, "program_id")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	var req SeasonUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	p, ok := pc.requireProgramAccess(c, programID)
	if !ok {
		return
	}

	achievements := resolveAchievements(&req)
	roster := playersFromInput(req.Roster)

	if req.ID != nil {
		// Update path.
		s, err := pc.repo.GetSeasonByID(*req.ID)
		if err != nil {
			log.Error().Err(err).Str("action", "UpsertSeason").Uint("season_id", *req.ID).Msg("lookup failed")
			responses.InternalServerError(c, "Failed to fetch season")
			return
		}
		if s == nil || s.ProgramID != p.ID {
			responses.NotFound(c, "Season")
			return
		}

		s.Year = req.Year
		s.Record = req.Record
		s.Coach = req.Coach
		s.Achievements = achievements
		s.IndividualAccomplishments = req.IndividualAccomplishments
		s.Summary = req.Summary
		if req.PhotoURL != "" {
			s.PhotoURL = req.PhotoURL
		}
		if req.Roster != nil {
			s.Roster = roster
		}

		if err := pc.repo.UpdateSeason(s); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				responses.Conflict(c, "A season for year "+itoa(req.Year)+" already exists for this program")
				return
			}
			log.Error().Err(err).Str("action", "UpsertSeason").Uint("season_id", s.ID).Msg("update failed")
			responses.InternalServerError(c, "Failed to update season")
			return
		}
		responses.SendSuccess(c, http.StatusOK, "Season updated successfully", s)
		return
	}

	// Insert path. Friendly pre-check; the unique index backs it up.
	existing, err := pc.repo.GetSeasonByProgramAndYear(p.ID, req.Year)
	if err != nil {
		log.Error().Err(err).Str("action", "UpsertSeason").Msg("year uniqueness pre-check failed")
		responses.InternalServerError(c, "Failed to verify season uniqueness")
		return
	}
	if existing != nil {
		responses.Conflict(c, "A season for year "+itoa(req.Year)+" already exists for this program")
		return
	}

	s := &Season{
		ProgramID:                 p.ID,
		Year:                      req.Year,
		Record:                    req.Record,
		Coach:                     req.Coach,
		Achievements:              achievements,
		IndividualAccomplishments: req.IndividualAccomplishments,
		Summary:                   req.Summary,
		PhotoURL:                  req.PhotoURL,
		Roster:                    roster,
	}
	if err := pc.repo.CreateSeason(s); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			responses.Conflict(c, "A season for year "+itoa(req.Year)+" already exists for this program")
			return
		}
		log.Error().Err(err).Str("action", "UpsertSeason").Msg("insert failed")
		responses.InternalServerError(c, "Failed to create season")
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Season created successfully", s)
}

// BootstrapSeason godoc
// @Summary Ensure a program has a season to manage
// @Description Returns the latest season when one exists; otherwise creates an empty season for the current calendar year. Idempotent.
// @Tags Seasons
// @Produce json
// @Param program_id path int true "Program ID"
// @Success 200 {object} responses.SuccessResponse{data=BootstrapSeasonResult}
// @Success 201 {object} responses.SuccessResponse{data=BootstrapSeasonResult}
// @Failure 404 {object} responses.ErrorResponse
// @Router /programs/{program_id}/seasons/bootstrap [post]
// @Security BearerAuth
func (pc *ProgramController) BootstrapSeason(c *gin.Context) {
	programID, err := common.ParseEntityID(c, "program_id")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	p, ok := pc.requireProgramAccess(c, programID)
	if !ok {
		return
	}

	latest, err := pc.repo.GetLatestSeason(p.ID)
	if err != nil {
		log.Error().Err(err).Str("action", "BootstrapSeason").Uint("program_id", p.ID).Msg("latest season lookup failed")
		responses.InternalServerError(c, "Failed to check existing seasons")
		return
	}
	if latest != nil {
		responses.SendSuccess(c, http.StatusOK, "", BootstrapSeasonResult{Season: latest, Created: false})
		return
	}

	s := &Season{
		ProgramID:    p.ID,
		Year:         time.Now().Year(),
		Achievements: models.StringSlice{},
		Roster:       PlayerList{},
	}
	if err := pc.repo.CreateSeason(s); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a race with a concurrent bootstrap; return the winner.
			existing, ferr := pc.repo.GetSeasonByProgramAndYear(p.ID, s.Year)
			if ferr == nil && existing != nil {
				responses.SendSuccess(c, http.StatusOK, "", BootstrapSeasonResult{Season: existing, Created: false})
				return
			}
		}
		log.Error().Err(err).Str("action", "BootstrapSeason").Uint("program_id", p.ID).Msg("insert failed")
		responses.InternalServerError(c, "Failed to create season")
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Season created for current year", BootstrapSeasonResult{Season: s, Created: true})
}

// DeleteSeason godoc
// @Summary Delete a season
// @Tags Seasons
// @Produce json
// @Param season_id path int true "Season ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /seasons/{season_id} [delete]
// @Security BearerAuth
func (pc *ProgramController) DeleteSeason(c *gin.Context) {
	seasonID, err := common.ParseEntityID(c, "season_id")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	s, ok := pc.requireSeasonAccess(c, seasonID)
	if !ok {
		return
	}

	if err := pc.repo.DeleteSeason(s.ID); err != nil {
		log.Error().Err(err).Str("action", "DeleteSeason").Uint("season_id", s.ID).Msg("delete failed")
		responses.InternalServerError(c, "Failed to delete season")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Season deleted", gin.H{"season_id": s.ID, "program_id": s.ProgramID})
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

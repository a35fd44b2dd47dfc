package program

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jdmarsh-dev/fieldhouse/internal/common"
	"github.com/jdmarsh-dev/fieldhouse/pkg/responses"
	"github.com/jdmarsh-dev/fieldhouse/pkg/validator"
)

const maxImportBytes = 1 << 20 // uploaded roster files are small text blobs

var (
	errNoImportInput     = errors.New("no import input: provide a non-empty \"text\" field or upload a file")
	errBadImportFileType = errors.New("unsupported file type: only .csv and .txt uploads are accepted")
)

// --- DTOs ---

type BulkImportRequest struct {
	Text string `json:"text"`
}

type BulkImportResult struct {
	Imported int        `json:"imported"`
	Roster   PlayerList `json:"roster"`
}

// --- Roster Handlers ---

// AddPlayer godoc
// @Summary Add a player to a season's roster
// @Description Submitting an empty name is treated as "nothing to add" and succeeds without changing the roster.
// @Tags Roster
// @Accept json
// @Produce json
// @Param season_id path int true "Season ID"
// @Param player body PlayerInput true "Player fields"
// @Success 200 {object} responses.SuccessResponse{data=PlayerList}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /seasons/{season_id}/roster [post]
// @Security BearerAuth
func (pc *ProgramController) AddPlayer(c *gin.Context) {
	seasonID, err := common.ParseEntityID(c, "season_id")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	var req PlayerInput
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	s, ok := pc.requireSeasonAccess(c, seasonID)
	if !ok {
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		// Nothing to add; the roster is returned unchanged.
		responses.SendSuccess(c, http.StatusOK, "", s.Roster)
		return
	}

	player := Player{
		ID:           uuid.NewString(),
		Name:         name,
		Position:     strings.TrimSpace(req.Position),
		Grade:        strings.TrimSpace(req.Grade),
		JerseyNumber: strings.TrimSpace(req.JerseyNumber),
	}
	s.Roster = append(s.Roster, player)

	if err := pc.repo.UpdateSeason(s); err != nil {
		log.Error().Err(err).Str("action", "AddPlayer").Uint("season_id", s.ID).Msg("roster save failed")
		responses.InternalServerError(c, "Failed to save roster")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Player added", s.Roster)
}

// UpdatePlayer godoc
// @Summary Update a roster entry by id
// @Tags Roster
// @Accept json
// @Produce json
// @Param season_id path int true "Season ID"
// @Param player_id path string true "Player ID"
// @Param player body PlayerInput true "Updated player fields"
// @Success 200 {object} responses.SuccessResponse{data=PlayerList}
// @Failure 404 {object} responses.ErrorResponse
// @Router /seasons/{season_id}/roster/{player_id} [put]
// @Security BearerAuth
func (pc *ProgramController) UpdatePlayer(c *gin.Context) {
	seasonID, err := common.ParseEntityID(c, "season_id")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}
	playerID := strings.TrimSpace(c.Param("player_id"))

	var req PlayerInput
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		responses.BadRequest(c, "Player name cannot be empty")
		return
	}

	s, ok := pc.requireSeasonAccess(c, seasonID)
	if !ok {
		return
	}

	found := false
	for i := range s.Roster {
		if s.Roster[i].ID == playerID {
			s.Roster[i].Name = strings.TrimSpace(req.Name)
			s.Roster[i].Position = strings.TrimSpace(req.Position)
			s.Roster[i].Grade = strings.TrimSpace(req.Grade)
			s.Roster[i].JerseyNumber = strings.TrimSpace(req.JerseyNumber)
			found = true
			break
		}
	}
	if !found {
		responses.NotFound(c, "Player")
		return
	}

	if err := pc.repo.UpdateSeason(s); err != nil {
		log.Error().Err(err).Str("action", "UpdatePlayer").Uint("season_id", s.ID).Msg("roster save failed")
		responses.InternalServerError(c, "Failed to save roster")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Player updated", s.Roster)
}

// RemovePlayer godoc
// @Summary Remove a roster entry by id
// @Tags Roster
// @Produce json
// @Param season_id path int true "Season ID"
// @Param player_id path string true "Player ID"
// @Success 200 {object} responses.SuccessResponse{data=PlayerList}
// @Failure 404 {object} responses.ErrorResponse
// @Router /seasons/{season_id}/roster/{player_id} [delete]
// @Security BearerAuth
func (pc *ProgramController) RemovePlayer(c *gin.Context) {
	seasonID, err := common.ParseEntityID(c, "season_id")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}
	playerID := strings.TrimSpace(c.Param("player_id"))

	s, ok := pc.requireSeasonAccess(c, seasonID)
	if !ok {
		return
	}

	kept := make(PlayerList, 0, len(s.Roster))
	removed := false
	for _, p := range s.Roster {
		if p.ID == playerID {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	if !removed {
		responses.NotFound(c, "Player")
		return
	}
	s.Roster = kept

	if err := pc.repo.UpdateSeason(s); err != nil {
		log.Error().Err(err).Str("action", "RemovePlayer").Uint("season_id", s.ID).Msg("roster save failed")
		responses.InternalServerError(c, "Failed to save roster")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Player removed", s.Roster)
}

// ReplaceRoster godoc
// @Summary Replace a season's entire roster
// @Tags Roster
// @Accept json
// @Produce json
// @Param season_id path int true "Season ID"
// @Param roster body []PlayerInput true "Full roster"
// @Success 200 {object} responses.SuccessResponse{data=PlayerList}
// @Failure 400 {object} responses.ErrorResponse
// @Router /seasons/{season_id}/roster [put]
// @Security BearerAuth
func (pc *ProgramController) ReplaceRoster(c *gin.Context) {
	seasonID, err := common.ParseEntityID(c, "season_id")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	var req []PlayerInput
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	s, ok := pc.requireSeasonAccess(c, seasonID)
	if !ok {
		return
	}

	s.Roster = playersFromInput(req)

	if err := pc.repo.UpdateSeason(s); err != nil {
		log.Error().Err(err).Str("action", "ReplaceRoster").Uint("season_id", s.ID).Msg("roster save failed")
		responses.InternalServerError(c, "Failed to save roster")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Roster replaced", s.Roster)
}

// BulkImportRoster godoc
// @Summary Bulk import roster entries from CSV/TSV text
// @Description Accepts either a JSON body with a "text" field or a multipart upload under "file" (.csv/.txt). Parsed entries are appended to the existing roster in one batch.
// @Tags Roster
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Param season_id path int true "Season ID"
// @Success 200 {object} responses.SuccessResponse{data=BulkImportResult}
// @Failure 400 {object} responses.ErrorResponse
// @Router /seasons/{season_id}/roster/import [post]
// @Security BearerAuth
func (pc *ProgramController) BulkImportRoster(c *gin.Context) {
	seasonID, err := common.ParseEntityID(c, "season_id")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	text, err := readImportText(c)
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	s, ok := pc.requireSeasonAccess(c, seasonID)
	if !ok {
		return
	}

	players := ParseRosterImport(text)
	if len(players) == 0 {
		responses.SendSuccess(c, http.StatusOK, "No importable rows found", BulkImportResult{Imported: 0, Roster: s.Roster})
		return
	}

	s.Roster = append(s.Roster, players...)

	if err := pc.repo.UpdateSeason(s); err != nil {
		log.Error().Err(err).Str("action", "BulkImportRoster").Uint("season_id", s.ID).Msg("roster save failed")
		responses.InternalServerError(c, "Failed to save imported roster")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Roster imported", BulkImportResult{
		Imported: len(players),
		Roster:   s.Roster,
	})
}

// readImportText extracts the import blob from either a JSON body or an
// uploaded .csv/.txt file.
func readImportText(c *gin.Context) (string, error) {
	contentType := c.ContentType()
	if strings.HasPrefix(contentType, "multipart/form-data") {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return "", errNoImportInput
		}
		ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
		if ext != ".csv" && ext != ".txt" {
			return "", errBadImportFileType
		}
		f, err := fileHeader.Open()
		if err != nil {
			return "", err
		}
		defer f.Close()
		data, err := io.ReadAll(io.LimitReader(f, maxImportBytes))
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	var req BulkImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return "", errNoImportInput
	}
	if strings.TrimSpace(req.Text) == "" {
		return "", errNoImportInput
	}
	return req.Text, nil
}

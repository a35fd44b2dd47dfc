// program/model.go
package program

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/jdmarsh-dev/fieldhouse/internal/models"
)

const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"

	GenderBoys  = "boys"
	GenderGirls = "girls"
	GenderCoed  = "coed"
)

// Program is one athletic offering owned by a school, e.g. "Varsity
// Basketball, Boys". The legacy table name "teams" is kept.
type Program struct {
	gorm.Model
	SchoolID        uint               `json:"school_id" gorm:"index;not null;uniqueIndex:idx_programs_school_name_gender"`
	Name            string             `json:"name" gorm:"not null;uniqueIndex:idx_programs_school_name_gender"`
	Gender          string             `json:"gender" gorm:"not null;uniqueIndex:idx_programs_school_name_gender"`
	SportCategory   string             `json:"sport_category"`
	HeadCoach       string             `json:"head_coach"`
	PhotoURL        string             `json:"photo_url"`
	BackgroundURL   string             `json:"background_url"`
	MediaType       string             `json:"media_type" gorm:"default:'image'"` // image | video
	Records         RecordList         `json:"records" gorm:"type:jsonb"`
	TrophyCaseItems models.StringSlice `json:"trophy_case_items" gorm:"type:jsonb"`
}

func (Program) TableName() string {
	return "teams"
}

// Season is one year's entry for a program. Legacy table name "team_seasons".
type Season struct {
	gorm.Model
	ProgramID                 uint               `json:"program_id" gorm:"index;not null;uniqueIndex:idx_seasons_program_year"`
	Year                      int                `json:"year" gorm:"not null;uniqueIndex:idx_seasons_program_year"`
	Record                    string             `json:"record"` // free text, e.g. "12-4"
	Coach                     string             `json:"coach"`
	Achievements              models.StringSlice `json:"achievements" gorm:"type:jsonb"`
	IndividualAccomplishments string             `json:"individual_accomplishments"`
	Summary                   string             `json:"summary"`
	PhotoURL                  string             `json:"photo_url"`
	Roster                    PlayerList         `json:"roster" gorm:"type:jsonb"`
}

func (Season) TableName() string {
	return "team_seasons"
}

// Player is a roster entry. It has no backing table; the whole roster lives
// inside the season row.
type Player struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Position     string `json:"position"`
	Grade        string `json:"grade"`
	JerseyNumber string `json:"jersey_number"`
}

// Valid reports whether a stored entry carries the two fields every roster
// operation relies on.
func (p Player) Valid() bool {
	return p.ID != "" && p.Name != ""
}

// PlayerList is the JSONB roster column.
type PlayerList []Player

func (pl PlayerList) Value() (driver.Value, error) {
	if pl == nil {
		return json.Marshal([]Player{})
	}
	return json.Marshal(pl)
}

// Scan unmarshals the roster column, silently dropping malformed legacy
// entries that lack an id or name.
func (pl *PlayerList) Scan(src interface{}) error {
	if src == nil {
		*pl = PlayerList{}
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("PlayerList: expected []byte, got %T", src)
	}
	if len(b) == 0 {
		*pl = PlayerList{}
		return nil
	}
	var raw []Player
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("PlayerList: malformed JSON column: %w", err)
	}
	*pl = filterValidPlayers(raw)
	return nil
}

func filterValidPlayers(raw []Player) PlayerList {
	out := make(PlayerList, 0, len(raw))
	for _, p := range raw {
		if p.Valid() {
			out = append(out, p)
		}
	}
	return out
}

// RecordEntry is one named record, e.g. "Most points in a game".
type RecordEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// RecordList is the JSONB records column on a program.
type RecordList []RecordEntry

func (rl RecordList) Value() (driver.Value, error) {
	if rl == nil {
		return json.Marshal([]RecordEntry{})
	}
	return json.Marshal(rl)
}

// Scan unmarshals the records column.
func (rl *RecordList) Scan(src interface{}) error {
	if src == nil {
		*rl = RecordList{}
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		if s, isStr := src.(string); isStr {
			b = []byte(s)
		} else {
			return fmt.Errorf("RecordList: expected []byte, got %T", src)
		}
	}
	if len(b) == 0 {
		*rl = RecordList{}
		return nil
	}
	return json.Unmarshal(b, rl)
}

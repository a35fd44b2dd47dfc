// inductee/model.go
package inductee

import (
	"gorm.io/gorm"

	"github.com/jdmarsh-dev/fieldhouse/internal/models"
)

// Inductee is one hall-of-fame entry owned by a school. The achievements
// column tolerates double-JSON-encoded legacy values on load.
type Inductee struct {
	gorm.Model
	SchoolID      uint               `json:"school_id" gorm:"index;not null"`
	Name          string             `json:"name" gorm:"not null"`
	Year          int                `json:"year"` // graduation/active year
	Category      string             `json:"category" gorm:"index"`
	PhotoURL      string             `json:"photo_url"`
	VideoURL      string             `json:"video_url"`
	Bio           string             `json:"bio"`
	Achievements  models.StringSlice `json:"achievements" gorm:"type:jsonb"`
	InductionYear int                `json:"induction_year" gorm:"index"`
}

func (Inductee) TableName() string {
	return "hall_of_fame"
}

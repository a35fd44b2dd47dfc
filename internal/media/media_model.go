package media

import "github.com/jdmarsh-dev/fieldhouse/internal/models"

// ScreensaverImage is one slide of a school's idle-display rotation.
type ScreensaverImage struct {
	models.BaseModel
	SchoolID  uint   `gorm:"not null;index" json:"school_id"`
	URL       string `gorm:"size:500;not null" json:"url"`
	Caption   string `gorm:"size:200" json:"caption"`
	SortOrder int    `gorm:"default:0" json:"sort_order"`
	Active    bool   `gorm:"default:true" json:"active"`
}

func (ScreensaverImage) TableName() string {
	return "screensaver_images"
}

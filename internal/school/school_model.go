// school/model.go
package school

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/jdmarsh-dev/fieldhouse/internal/models"
)

// School is one tenant. Every owned row carries its id; the slug doubles as
// the tenant subdomain.
type School struct {
	gorm.Model
	Slug                string             `json:"slug" gorm:"uniqueIndex;size:63;not null"`
	Name                string             `json:"name" gorm:"not null"`
	Tagline             string             `json:"tagline"`
	NavLabels           models.StringSlice `json:"nav_labels" gorm:"type:jsonb"`
	Theme               datatypes.JSONMap  `json:"theme" gorm:"type:jsonb"` // free-form color/branding keys
	LogoURL             string             `json:"logo_url"`
	BackgroundURL       string             `json:"background_url"`
	BackgroundMediaType string             `json:"background_media_type" gorm:"default:'image'"` // image | video
	Contact             models.ContactInfo `json:"contact" gorm:"type:jsonb"`
	IsDemo              bool               `json:"is_demo" gorm:"default:false"`
	Active              bool               `json:"active" gorm:"default:true;index"`
}

func (School) TableName() string {
	return "schools"
}

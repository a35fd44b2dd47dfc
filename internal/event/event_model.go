// event/model.go
package event

import (
	"time"

	"gorm.io/gorm"
)

// Event is one calendar entry owned by a school. No relation to programs.
type Event struct {
	gorm.Model
	SchoolID    uint      `json:"school_id" gorm:"index;not null"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time" gorm:"index;not null"`
	Location    string    `json:"location"`
	Category    string    `json:"category" gorm:"index"`
}

func (Event) TableName() string {
	return "events"
}

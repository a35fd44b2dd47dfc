package admin

import "time"

// Admin is a console operator. The primary key is the Clerk user id
// (subject claim), not an auto-increment integer.
type Admin struct {
	ID        string     `gorm:"primaryKey;size:64" json:"id"`
	SchoolID  *uint      `gorm:"index" json:"school_id"` // nil means super admin
	Role      string     `gorm:"size:20;not null;default:'school_admin'" json:"role"`
	Email     string     `gorm:"size:255;not null;index" json:"email"`
	FullName  string     `gorm:"size:100" json:"full_name"`
	AvatarURL string     `gorm:"size:500" json:"avatar_url"`
	Active    bool       `gorm:"default:true" json:"active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	LastSeen  *time.Time `json:"last_seen,omitempty"`
}

func (Admin) TableName() string {
	return "admins"
}

// AdminInvite is a pending invitation. The signed token travels by email,
// the short code is stored bcrypt-hashed and compared on acceptance.
type AdminInvite struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Email     string     `gorm:"size:255;not null;index" json:"email"`
	SchoolID  *uint      `gorm:"index" json:"school_id"`
	Role      string     `gorm:"size:20;not null;default:'school_admin'" json:"role"`
	CodeHash  string     `gorm:"size:100;not null" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func (AdminInvite) TableName() string {
	return "admin_invites"
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// SocialLinks holds a profile's optional social network URLs.
// Stored as a single JSON column; the set of networks is fixed.
type SocialLinks struct {
	Youtube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// Profile is a user's public developer profile. At most one exists per user.
type Profile struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	UserID         uint         `gorm:"not null;uniqueIndex" json:"user_id"`
	User           User         `gorm:"foreignKey:UserID" json:"user"`
	Company        string       `json:"company"`
	Website        string       `json:"website"`
	Location       string       `json:"location"`
	Status         string       `gorm:"not null" json:"status"`
	Skills         []string     `gorm:"serializer:json" json:"skills"`
	Bio            string       `gorm:"type:text" json:"bio"`
	GithubUsername string       `json:"github_username"`
	Social         SocialLinks  `gorm:"serializer:json" json:"social"`
	Experience     []Experience `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"experience"`
	Education      []Education  `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"education"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// Experience is a work-history entry embedded in a profile.
// Entries are returned newest-insert-first.
type Experience struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	ProfileID   uint       `gorm:"not null;index" json:"-"`
	Title       string     `gorm:"not null" json:"title"`
	Company     string     `gorm:"not null" json:"company"`
	Location    string     `json:"location"`
	From        time.Time  `gorm:"not null" json:"from"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description string     `gorm:"type:text" json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Education is a study-history entry embedded in a profile.
type Education struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	ProfileID    uint       `gorm:"not null;index" json:"-"`
	School       string     `gorm:"not null" json:"school"`
	Degree       string     `gorm:"not null" json:"degree"`
	FieldOfStudy string     `gorm:"not null" json:"fieldofstudy"`
	From         time.Time  `gorm:"not null" json:"from"`
	To           *time.Time `json:"to,omitempty"`
	Current      bool       `json:"current"`
	Description  string     `gorm:"type:text" json:"description"`
	CreatedAt    time.Time  `json:"created_at"`
}

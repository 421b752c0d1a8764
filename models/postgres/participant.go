package postgres

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/*
 * 'Participant' is a person on the imported roster. A participant without a
 * photo has not finished registration and is excluded from the game.
 */
type Participant struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PhotoURL  *string   `gorm:"size:500" json:"photo_url"`
	Artist1   string    `gorm:"column:artist_1;size:255;not null" json:"artist_1"`
	Artist2   string    `gorm:"column:artist_2;size:255;not null" json:"artist_2"`
	Artist3   string    `gorm:"column:artist_3;size:255;not null" json:"artist_3"`
	IsAdmin   bool      `gorm:"default:false" json:"is_admin"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// Emails are matched case-insensitively, so they are stored folded
func (p *Participant) BeforeSave(tx *gorm.DB) error {
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	return nil
}

func (p *Participant) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// HasPhoto reports whether the participant finished registration.
func (p *Participant) HasPhoto() bool {
	return p.PhotoURL != nil && *p.PhotoURL != ""
}

// Artists returns the participant's hidden Top 3 list in card form.
func (p *Participant) Artists() [3]string {
	return [3]string{p.Artist1, p.Artist2, p.Artist3}
}

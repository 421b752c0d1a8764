package postgres

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/*
 * 'Guess' is a player's current answer for one card. There is at most one
 * row per (session, card participant): saving again overwrites the guessed
 * identity, withdrawing deletes the row.
 */
type Guess struct {
	ID                   string    `gorm:"primaryKey;type:uuid" json:"id"`
	SessionID            string    `gorm:"type:uuid;not null;uniqueIndex:idx_guesses_session_card" json:"session_id"`
	CardParticipantID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_guesses_session_card" json:"card_participant_id"`
	GuessedParticipantID string    `gorm:"type:uuid;not null" json:"guessed_participant_id"`
	CardIndex            int       `gorm:"not null" json:"card_index"`
	CreatedAt            time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	// Relationship with the owning game session
	Session GameSession `gorm:"foreignKey:SessionID" json:"-"`
}

func (g *Guess) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}

// IsCorrect reports whether the guessed identity is the card's actual owner.
func (g *Guess) IsCorrect() bool {
	return g.CardParticipantID == g.GuessedParticipantID
}

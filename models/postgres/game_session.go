package postgres

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/*
 * 'GameSession' is the per-player game state: the fixed order in which the
 * other participants' cards are shown, plus the completion flag. The card
 * order is generated exactly once and never recomputed, otherwise the
 * player's saved guesses would drift out of line with the card positions.
 */
type GameSession struct {
	ID          string         `gorm:"primaryKey;type:uuid" json:"id"`
	PlayerID    string         `gorm:"type:uuid;not null;uniqueIndex" json:"player_id"`
	CardOrder   datatypes.JSON `gorm:"type:jsonb;not null" json:"card_order"`
	IsCompleted bool           `gorm:"default:false" json:"is_completed"`
	CompletedAt *time.Time     `json:"completed_at"`
	CreatedAt   time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	// Relationships
	Player  Participant `gorm:"foreignKey:PlayerID;constraint:OnDelete:CASCADE" json:"-"`
	Guesses []*Guess    `gorm:"foreignKey:SessionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (s *GameSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// Cards decodes the stored JSONB card order into participant ids.
func (s *GameSession) Cards() ([]string, error) {
	var ids []string
	if err := json.Unmarshal(s.CardOrder, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// EncodeCardOrder serializes a card order for storage.
func EncodeCardOrder(ids []string) (datatypes.JSON, error) {
	raw, err := json.Marshal(ids)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

package game

import (
	models "Mixtape/models/postgres"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetOrCreateSession returns the player's game session, creating it on first
// access. An existing session is returned exactly as stored: the card order
// is never recomputed, even if the eligible roster changed since it was
// generated, so in-progress guesses keep lining up with card positions.
//
// Creation is idempotent under concurrent first requests. The unique index
// on player_id is the backstop: the conflict loser fetches and returns the
// winner's row instead of erroring.
func GetOrCreateSession(db *gorm.DB, playerID string, eligibleIDs []string) (*models.GameSession, bool, error) {
	var player models.Participant
	if err := db.First(&player, "id = ?", playerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrParticipantNotFound
		}
		return nil, false, err
	}

	var existing models.GameSession
	err := db.First(&existing, "player_id = ?", playerID).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	cardOrder, err := models.EncodeCardOrder(ShuffledCopy(WithoutID(eligibleIDs, playerID)))
	if err != nil {
		return nil, false, err
	}

	session := models.GameSession{
		PlayerID:  playerID,
		CardOrder: cardOrder,
	}
	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "player_id"}},
		DoNothing: true,
	}).Create(&session)
	if result.Error != nil {
		return nil, false, result.Error
	}

	if result.RowsAffected == 0 {
		// Lost the race against another first request, use the winner's row
		var winner models.GameSession
		if err := db.First(&winner, "player_id = ?", playerID).Error; err != nil {
			return nil, false, err
		}
		return &winner, false, nil
	}

	return &session, true, nil
}

// SessionForPlayer returns the player's session without creating one.
func SessionForPlayer(db *gorm.DB, playerID string) (*models.GameSession, error) {
	var session models.GameSession
	if err := db.First(&session, "player_id = ?", playerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

package game

import (
	models "Mixtape/models/postgres"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SaveGuess records the player's current answer for one card. It is an
// upsert keyed on (session, card participant): guessing the same card again
// overwrites the previous guessed identity, the row count stays at one.
// The card index is stored for ordering but is not part of the key.
func SaveGuess(db *gorm.DB, sessionID, cardParticipantID, guessedParticipantID string, cardIndex int) (*models.Guess, error) {
	if cardParticipantID == "" || guessedParticipantID == "" {
		return nil, ErrInvalidInput
	}

	session, err := sessionByID(db, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsCompleted {
		return nil, ErrAlreadyCompleted
	}

	guess := models.Guess{
		SessionID:            sessionID,
		CardParticipantID:    cardParticipantID,
		GuessedParticipantID: guessedParticipantID,
		CardIndex:            cardIndex,
	}
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "card_participant_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"guessed_participant_id", "card_index"}),
	}).Create(&guess).Error
	if err != nil {
		return nil, err
	}

	// Re-read so the caller sees the surviving row, not the insert attempt
	var saved models.Guess
	err = db.First(&saved, "session_id = ? AND card_participant_id = ?", sessionID, cardParticipantID).Error
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// RemoveGuess withdraws the player's answer for one card. Removing a guess
// that was never made is a no-op, not an error.
func RemoveGuess(db *gorm.DB, sessionID, cardParticipantID string) error {
	session, err := sessionByID(db, sessionID)
	if err != nil {
		return err
	}
	if session.IsCompleted {
		return ErrAlreadyCompleted
	}

	return db.Where("session_id = ? AND card_participant_id = ?", sessionID, cardParticipantID).
		Delete(&models.Guess{}).Error
}

// GuessesForSession lists the session's guesses in card order.
func GuessesForSession(db *gorm.DB, sessionID string) ([]models.Guess, error) {
	var guesses []models.Guess
	err := db.Where("session_id = ?", sessionID).Order("card_index ASC").Find(&guesses).Error
	if err != nil {
		return nil, err
	}
	return guesses, nil
}

func sessionByID(db *gorm.DB, sessionID string) (*models.GameSession, error) {
	var session models.GameSession
	if err := db.First(&session, "id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

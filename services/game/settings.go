package game

import (
	models "Mixtape/models/postgres"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RevealDate returns the admin-configured instant from which correct answers
// become visible, or nil when no reveal is scheduled.
func RevealDate(db *gorm.DB) (*time.Time, error) {
	var setting models.GameSetting
	err := db.First(&setting, "key = ?", models.SettingRevealAt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	at, err := time.Parse(time.RFC3339, setting.Value)
	if err != nil {
		return nil, err
	}
	return &at, nil
}

// SetRevealDate schedules (or, with nil, cancels) the reveal.
func SetRevealDate(db *gorm.DB, at *time.Time) error {
	if at == nil {
		return db.Where("key = ?", models.SettingRevealAt).Delete(&models.GameSetting{}).Error
	}

	setting := models.GameSetting{
		Key:       models.SettingRevealAt,
		Value:     at.UTC().Format(time.RFC3339),
		UpdatedAt: time.Now(),
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
}

// RevealEnabled reports whether the reveal window has started.
func RevealEnabled(db *gorm.DB, now time.Time) (bool, error) {
	at, err := RevealDate(db)
	if err != nil {
		return false, err
	}
	return at != nil && !now.Before(*at), nil
}

// CorrectAnswer is the post-reveal verdict for one card.
type CorrectAnswer struct {
	IsCorrect            bool   `json:"isCorrect"`
	CorrectParticipantID string `json:"correctParticipantId"`
}

// CorrectAnswers maps each guessed card to its verdict. The card's owner is
// the card participant itself, so the verdict is just an equality check per
// stored guess.
func CorrectAnswers(db *gorm.DB, sessionID string) (map[string]CorrectAnswer, error) {
	guesses, err := GuessesForSession(db, sessionID)
	if err != nil {
		return nil, err
	}

	answers := make(map[string]CorrectAnswer, len(guesses))
	for _, g := range guesses {
		answers[g.CardParticipantID] = CorrectAnswer{
			IsCorrect:            g.IsCorrect(),
			CorrectParticipantID: g.CardParticipantID,
		}
	}
	return answers, nil
}

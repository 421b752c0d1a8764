package game

import (
	models "Mixtape/models/postgres"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RosterEntry is one line of an imported participant roster.
type RosterEntry struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Artist1 string `json:"artist_1"`
	Artist2 string `json:"artist_2"`
	Artist3 string `json:"artist_3"`
}

func (e *RosterEntry) normalize() {
	e.Name = strings.TrimSpace(e.Name)
	e.Email = strings.ToLower(strings.TrimSpace(e.Email))
	e.Artist1 = strings.TrimSpace(e.Artist1)
	e.Artist2 = strings.TrimSpace(e.Artist2)
	e.Artist3 = strings.TrimSpace(e.Artist3)
}

// Complete reports whether the entry carries every required field.
func (e *RosterEntry) Complete() bool {
	return e.Name != "" && e.Email != "" && e.Artist1 != "" && e.Artist2 != "" && e.Artist3 != ""
}

// UpsertRosterEntry imports one roster line, keyed by email. Re-importing
// refreshes the name and artist list but leaves the photo (and therefore the
// registration state) alone.
func UpsertRosterEntry(db *gorm.DB, entry RosterEntry) (*models.Participant, error) {
	entry.normalize()
	if !entry.Complete() {
		return nil, ErrInvalidInput
	}

	participant := models.Participant{
		Name:    entry.Name,
		Email:   entry.Email,
		Artist1: entry.Artist1,
		Artist2: entry.Artist2,
		Artist3: entry.Artist3,
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "artist_1", "artist_2", "artist_3"}),
	}).Create(&participant).Error
	if err != nil {
		return nil, err
	}

	var saved models.Participant
	if err := db.First(&saved, "email = ?", entry.Email).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

// ResetGame wipes all guesses, sessions and non-admin participants. Admin
// rows survive with their photo cleared, so they re-register like everyone
// else on the next run.
func ResetGame(db *gorm.DB) error {
	if err := db.Where("1 = 1").Delete(&models.Guess{}).Error; err != nil {
		return err
	}
	if err := db.Where("1 = 1").Delete(&models.GameSession{}).Error; err != nil {
		return err
	}
	if err := db.Where("is_admin = ?", false).Delete(&models.Participant{}).Error; err != nil {
		return err
	}
	return db.Model(&models.Participant{}).
		Where("is_admin = ?", true).
		Update("photo_url", nil).Error
}

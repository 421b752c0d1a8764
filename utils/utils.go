package utils

import (
	models "Mixtape/models/postgres"
	"Mixtape/services/game"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// FindParticipantByEmail looks a participant up case-insensitively.
func FindParticipantByEmail(db *gorm.DB, email string) (*models.Participant, error) {
	var participant models.Participant
	err := db.First(&participant, "email = ?", strings.ToLower(strings.TrimSpace(email))).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, game.ErrParticipantNotFound
		}
		return nil, err
	}
	return &participant, nil
}

// FindParticipantByID resolves an id from a verified token.
func FindParticipantByID(db *gorm.DB, id string) (*models.Participant, error) {
	var participant models.Participant
	err := db.First(&participant, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, game.ErrParticipantNotFound
		}
		return nil, err
	}
	return &participant, nil
}

// ListEligible returns the photo-registered participants, ordered by name.
// These are the people who can appear as cards.
func ListEligible(db *gorm.DB) ([]models.Participant, error) {
	var participants []models.Participant
	err := db.Where("photo_url IS NOT NULL").Order("name ASC").Find(&participants).Error
	if err != nil {
		return nil, err
	}
	return participants, nil
}

// RespondError turns a domain error into the matching HTTP response. Every
// error is terminal; nothing here is retried.
func RespondError(c *gin.Context, err error) {
	var incomplete *game.IncompleteGuessesError
	switch {
	case errors.As(err, &incomplete):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   incomplete.Error(),
			"missing": incomplete.Missing,
		})
	case errors.Is(err, game.ErrParticipantNotFound), errors.Is(err, game.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, game.ErrAlreadyCompleted):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Game has already been submitted"})
	case errors.Is(err, game.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

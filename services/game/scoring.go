package game

import (
	models "Mixtape/models/postgres"
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"
)

// CompleteSession locks the session once every card has a guess. The
// transition is one-way; submitting an already completed session fails, and
// submitting with unanswered cards fails with the number still missing.
func CompleteSession(db *gorm.DB, sessionID string) error {
	session, err := sessionByID(db, sessionID)
	if err != nil {
		return err
	}
	if session.IsCompleted {
		return ErrAlreadyCompleted
	}

	cards, err := session.Cards()
	if err != nil {
		return err
	}

	var guessCount int64
	err = db.Model(&models.Guess{}).Where("session_id = ?", sessionID).Count(&guessCount).Error
	if err != nil {
		return err
	}

	if int(guessCount) < len(cards) {
		return &IncompleteGuessesError{Missing: len(cards) - int(guessCount)}
	}

	now := time.Now()
	// Conditional update keeps the flip one-way under concurrent submits
	return db.Model(&models.GameSession{}).
		Where("id = ? AND is_completed = ?", sessionID, false).
		Updates(map[string]interface{}{"is_completed": true, "completed_at": now}).Error
}

// Score counts the guesses whose guessed identity is the card's actual
// owner. It is recomputed on every call, never stored: an in-progress
// session always scores against its latest guesses, and a completed one is
// frozen because its guesses are.
func Score(db *gorm.DB, sessionID string) (int, error) {
	var count int64
	err := db.Model(&models.Guess{}).
		Where("session_id = ? AND card_participant_id = guessed_participant_id", sessionID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// ScoreRow is one scoreboard line for the admin view and exports.
type ScoreRow struct {
	ParticipantID string     `json:"participant_id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	PhotoURL      *string    `json:"photo_url"`
	Score         int        `json:"score"`
	TotalCards    int        `json:"total_cards"`
	IsCompleted   bool       `json:"is_completed"`
	CompletedAt   *time.Time `json:"completed_at"`
}

// AllScores builds the scoreboard over every registered participant, ordered
// by score descending, earliest completion first. A participant without a
// session shows 0/0, which the reporting layer renders as "not started".
func AllScores(db *gorm.DB) ([]ScoreRow, error) {
	var participants []models.Participant
	err := db.Where("photo_url IS NOT NULL").Order("name ASC").Find(&participants).Error
	if err != nil {
		return nil, err
	}

	rows := make([]ScoreRow, 0, len(participants))
	for _, p := range participants {
		row := ScoreRow{
			ParticipantID: p.ID,
			Name:          p.Name,
			Email:         p.Email,
			PhotoURL:      p.PhotoURL,
		}

		session, err := SessionForPlayer(db, p.ID)
		if err == nil {
			score, err := Score(db, session.ID)
			if err != nil {
				return nil, err
			}
			cards, err := session.Cards()
			if err != nil {
				return nil, err
			}
			row.Score = score
			row.TotalCards = len(cards)
			row.IsCompleted = session.IsCompleted
			row.CompletedAt = session.CompletedAt
		} else if !errors.Is(err, ErrSessionNotFound) {
			return nil, err
		}

		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Score != rows[j].Score {
			return rows[i].Score > rows[j].Score
		}
		a, b := rows[i].CompletedAt, rows[j].CompletedAt
		switch {
		case a != nil && b != nil:
			return a.Before(*b)
		case a != nil:
			return true
		default:
			return false
		}
	})

	return rows, nil
}

// GameStats is the headline counter block on the admin dashboard.
type GameStats struct {
	TotalParticipants   int `json:"totalParticipants"`
	RegisteredWithPhoto int `json:"registeredWithPhoto"`
	CompletedGames      int `json:"completedGames"`
	InProgress          int `json:"inProgress"`
}

// Stats recomputes the headline counters.
func Stats(db *gorm.DB) (*GameStats, error) {
	var stats GameStats

	counts := []struct {
		query *gorm.DB
		dst   *int
	}{
		{db.Model(&models.Participant{}), &stats.TotalParticipants},
		{db.Model(&models.Participant{}).Where("photo_url IS NOT NULL"), &stats.RegisteredWithPhoto},
		{db.Model(&models.GameSession{}).Where("is_completed = ?", true), &stats.CompletedGames},
		{db.Model(&models.GameSession{}).Where("is_completed = ?", false), &stats.InProgress},
	}
	for _, c := range counts {
		var n int64
		if err := c.query.Count(&n).Error; err != nil {
			return nil, err
		}
		*c.dst = int(n)
	}

	return &stats, nil
}

// RegistrationStatus summarizes how far roster registration has come.
// Admins also play, but they do not gate the game start, so they are left
// out of these counts.
type RegistrationStatus struct {
	Total         int  `json:"total"`
	WithPhoto     int  `json:"withPhoto"`
	MissingPhoto  int  `json:"missingPhoto"`
	AllRegistered bool `json:"allRegistered"`
}

func GetRegistrationStatus(db *gorm.DB) (*RegistrationStatus, error) {
	var total, withPhoto int64
	err := db.Model(&models.Participant{}).Where("is_admin = ?", false).Count(&total).Error
	if err != nil {
		return nil, err
	}
	err = db.Model(&models.Participant{}).
		Where("is_admin = ? AND photo_url IS NOT NULL", false).Count(&withPhoto).Error
	if err != nil {
		return nil, err
	}

	return &RegistrationStatus{
		Total:         int(total),
		WithPhoto:     int(withPhoto),
		MissingPhoto:  int(total - withPhoto),
		AllRegistered: total > 0 && total == withPhoto,
	}, nil
}

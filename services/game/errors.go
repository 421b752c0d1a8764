package game

import (
	"errors"
	"fmt"
)

// Terminal domain errors. Every operation either succeeds or returns one of
// these; nothing in the game is retryable.
var (
	ErrParticipantNotFound = errors.New("participant not found")
	ErrSessionNotFound     = errors.New("game session not found")
	ErrAlreadyCompleted    = errors.New("game session already completed")
	ErrInvalidInput        = errors.New("invalid input")
)

// IncompleteGuessesError rejects a submit attempted before every card has a
// guess. Missing is how many cards are still unanswered.
type IncompleteGuessesError struct {
	Missing int
}

func (e *IncompleteGuessesError) Error() string {
	return fmt.Sprintf("%d cards are still missing a guess", e.Missing)
}

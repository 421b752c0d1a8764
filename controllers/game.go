package controllers

import (
	"Mixtape/middleware"
	"Mixtape/services/game"
	"Mixtape/utils"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type cardView struct {
	ID      string    `json:"id"`
	Index   int       `json:"index"`
	Artists [3]string `json:"artists"`
}

type gridParticipant struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	PhotoURL *string `json:"photoUrl"`
}

// @Summary Fetch or create the player's game session
// @Description Returns the fixed card order, current guesses and the participant grid. Creates the session on first access; the card order is never regenerated afterwards.
// @Tags game
// @Produce json
// @Success 200 {object} object{sessionId=string,isCompleted=bool,cards=array,guesses=object,participants=array,totalCards=integer,revealEnabled=bool,correctAnswers=object}
// @Failure 401 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Router /auth/game/session [get]
// @Security ApiKeyAuth
func GetGameSession(db *gorm.DB, window game.WindowPolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID := c.GetString(middleware.CtxParticipantID)

		if status := window(time.Now()); !status.Open {
			c.JSON(http.StatusForbidden, gin.H{"error": status.Message, "gameStatus": status})
			return
		}

		// The game starts for everyone at once: hold players back until the
		// whole roster has registered
		registration, err := game.GetRegistrationStatus(db)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		if !registration.AllRegistered {
			c.JSON(http.StatusForbidden, gin.H{
				"error":              "Waiting for every participant to register with a photo",
				"registrationStatus": registration,
			})
			return
		}

		eligible, err := utils.ListEligible(db)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		eligibleIDs := make([]string, len(eligible))
		byID := make(map[string]int, len(eligible))
		for i, p := range eligible {
			eligibleIDs[i] = p.ID
			byID[p.ID] = i
		}

		session, _, err := game.GetOrCreateSession(db, playerID, eligibleIDs)
		if err != nil {
			utils.RespondError(c, err)
			return
		}

		cardOrder, err := session.Cards()
		if err != nil {
			utils.RespondError(c, err)
			return
		}

		guesses, err := game.GuessesForSession(db, session.ID)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		guessMap := make(map[string]string, len(guesses))
		for _, g := range guesses {
			guessMap[g.CardParticipantID] = g.GuessedParticipantID
		}

		cards := make([]cardView, len(cardOrder))
		for i, id := range cardOrder {
			card := cardView{ID: id, Index: i, Artists: [3]string{"?", "?", "?"}}
			if idx, ok := byID[id]; ok {
				card.Artists = eligible[idx].Artists()
			}
			cards[i] = card
		}

		grid := make([]gridParticipant, 0, len(eligible))
		for _, p := range eligible {
			if p.ID == playerID {
				continue
			}
			grid = append(grid, gridParticipant{ID: p.ID, Name: p.Name, PhotoURL: p.PhotoURL})
		}

		// Admins preview answers early; everyone else waits for the reveal
		revealEnabled, err := game.RevealEnabled(db, time.Now())
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		canSeeAnswers := revealEnabled || c.GetBool(middleware.CtxIsAdmin)

		correctAnswers := map[string]game.CorrectAnswer{}
		if canSeeAnswers && session.IsCompleted {
			correctAnswers, err = game.CorrectAnswers(db, session.ID)
			if err != nil {
				utils.RespondError(c, err)
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"sessionId":      session.ID,
			"isCompleted":    session.IsCompleted,
			"cards":          cards,
			"guesses":        guessMap,
			"participants":   grid,
			"totalCards":     len(cardOrder),
			"revealEnabled":  canSeeAnswers,
			"correctAnswers": correctAnswers,
		})
	}
}

type guessRequest struct {
	CardParticipantID    string  `json:"cardParticipantId"`
	GuessedParticipantID *string `json:"guessedParticipantId"`
	CardIndex            *int    `json:"cardIndex"`
}

// @Summary Save or withdraw a guess
// @Description Upserts the guess for one card; a null guessed participant withdraws it. Rejected once the game has been submitted.
// @Tags game
// @Accept json
// @Produce json
// @Param body body object{cardParticipantId=string,guessedParticipantId=string,cardIndex=integer} true "Guess"
// @Success 200 {object} object{success=bool}
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/game/guess [post]
// @Security ApiKeyAuth
func SaveGuess(db *gorm.DB, window game.WindowPolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		if status := window(time.Now()); !status.Open {
			c.JSON(http.StatusForbidden, gin.H{"error": status.Message})
			return
		}

		var req guessRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.CardParticipantID == "" || req.CardIndex == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		session, err := game.SessionForPlayer(db, c.GetString(middleware.CtxParticipantID))
		if err != nil {
			utils.RespondError(c, err)
			return
		}

		// A null guess is a deselection
		if req.GuessedParticipantID == nil || *req.GuessedParticipantID == "" {
			if err := game.RemoveGuess(db, session.ID, req.CardParticipantID); err != nil {
				utils.RespondError(c, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"success": true, "removed": true})
			return
		}

		guess, err := game.SaveGuess(db, session.ID, req.CardParticipantID, *req.GuessedParticipantID, *req.CardIndex)
		if err != nil {
			utils.RespondError(c, err)
			return
		}

		middleware.RecordGuessSaved()
		c.JSON(http.StatusOK, gin.H{"success": true, "guess": guess})
	}
}

// @Summary Submit the game
// @Description Locks the session once every card has a guess. One-way: a submitted game cannot be reopened.
// @Tags game
// @Produce json
// @Success 200 {object} object{success=bool,message=string}
// @Failure 400 {object} object{error=string,missing=integer}
// @Failure 401 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/game/submit [post]
// @Security ApiKeyAuth
func SubmitGame(db *gorm.DB, window game.WindowPolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		if status := window(time.Now()); !status.Open {
			c.JSON(http.StatusForbidden, gin.H{"error": status.Message})
			return
		}

		session, err := game.SessionForPlayer(db, c.GetString(middleware.CtxParticipantID))
		if err != nil {
			utils.RespondError(c, err)
			return
		}

		if err := game.CompleteSession(db, session.ID); err != nil {
			utils.RespondError(c, err)
			return
		}

		middleware.RecordSessionCompleted()
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Game submitted!"})
	}
}

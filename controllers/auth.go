package controllers

import (
	"Mixtape/middleware"
	"Mixtape/services/game"
	redis "Mixtape/services/redis"
	"Mixtape/utils"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Participants authenticate with their roster email only; the roster import
// is the access control. Throttled per email so the endpoint cannot be used
// to probe the roster.
const (
	loginAttemptLimit  = 10
	loginAttemptWindow = time.Minute
)

type loginRequest struct {
	Email string `json:"email" binding:"required"`
}

// @Summary Log in with a roster email
// @Description Validates the email against the imported roster and issues a signed session token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body object{email=string} true "Corporate email"
// @Success 200 {object} object{success=bool,token=string,participant=object,needsRegistration=bool}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Failure 429 {object} object{error=string}
// @Router /login [post]
func Login(db *gorm.DB, rc *redis.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Email) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
			return
		}
		email := strings.ToLower(strings.TrimSpace(req.Email))

		if rc != nil && !rc.AllowLogin(email, loginAttemptLimit, loginAttemptWindow) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many login attempts, try again later"})
			return
		}

		participant, err := utils.FindParticipantByEmail(db, email)
		if err != nil {
			if errors.Is(err, game.ErrParticipantNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Email not found on the participant list"})
				return
			}
			utils.RespondError(c, err)
			return
		}

		token, err := middleware.GenerateToken(participant)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
			return
		}

		session := sessions.Default(c)
		session.Set("token", token)
		if err := session.Save(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"token":   token,
			"participant": gin.H{
				"id":       participant.ID,
				"name":     participant.Name,
				"email":    participant.Email,
				"photoUrl": participant.PhotoURL,
				"isAdmin":  participant.IsAdmin,
			},
			"needsRegistration": !participant.HasPhoto(),
		})
	}
}

// @Summary Log out
// @Description Clears the session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} object{message=string}
// @Router /auth/logout [delete]
// @Security ApiKeyAuth
func Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Delete("token")
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

// @Summary Current participant
// @Description Returns the authenticated participant and registration state
// @Tags auth
// @Produce json
// @Success 200 {object} object{id=string,name=string,email=string,photoUrl=string,isAdmin=bool,needsRegistration=bool}
// @Failure 401 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/me [get]
// @Security ApiKeyAuth
func Me(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		participant, err := utils.FindParticipantByID(db, c.GetString(middleware.CtxParticipantID))
		if err != nil {
			utils.RespondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"id":                participant.ID,
			"name":              participant.Name,
			"email":             participant.Email,
			"photoUrl":          participant.PhotoURL,
			"isAdmin":           c.GetBool(middleware.CtxIsAdmin),
			"needsRegistration": !participant.HasPhoto(),
		})
	}
}

package controllers

import (
	"Mixtape/middleware"
	models "Mixtape/models/postgres"
	"Mixtape/services/game"
	"Mixtape/services/live"
	"Mixtape/utils"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary List participants
// @Description Returns the registered participant grid. With ?all=true it returns everyone plus the registration status, for the waiting screen. Artist lists are never exposed here.
// @Tags participants
// @Produce json
// @Param all query bool false "Include unregistered participants"
// @Success 200 {object} object{participants=array}
// @Failure 401 {object} object{error=string}
// @Router /auth/participants [get]
// @Security ApiKeyAuth
func ListParticipants(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Query("all") == "true" {
			var all []models.Participant
			if err := db.Order("name ASC").Find(&all).Error; err != nil {
				utils.RespondError(c, err)
				return
			}

			registration, err := game.GetRegistrationStatus(db)
			if err != nil {
				utils.RespondError(c, err)
				return
			}

			sanitized := make([]gin.H, len(all))
			for i, p := range all {
				sanitized[i] = gin.H{
					"id":       p.ID,
					"name":     p.Name,
					"photoUrl": p.PhotoURL,
					"hasPhoto": p.HasPhoto(),
				}
			}

			c.JSON(http.StatusOK, gin.H{
				"participants":       sanitized,
				"registrationStatus": registration,
			})
			return
		}

		eligible, err := utils.ListEligible(db)
		if err != nil {
			utils.RespondError(c, err)
			return
		}

		sanitized := make([]gin.H, len(eligible))
		for i, p := range eligible {
			sanitized[i] = gin.H{
				"id":       p.ID,
				"name":     p.Name,
				"photoUrl": p.PhotoURL,
			}
		}

		c.JSON(http.StatusOK, gin.H{"participants": sanitized})
	}
}

type profileRequest struct {
	Name     string `json:"name"`
	PhotoURL string `json:"photoUrl"`
}

// @Summary Complete registration
// @Description Updates the participant's display name and/or photo. Setting the photo is what flips a participant to "registered"; the waiting room is notified over the live feed.
// @Tags participants
// @Accept json
// @Produce json
// @Param body body object{name=string,photoUrl=string} true "Profile fields"
// @Success 200 {object} object{success=bool,participant=object}
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Router /auth/profile [put]
// @Security ApiKeyAuth
func UpdateProfile(db *gorm.DB, hub *live.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req profileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		updates := map[string]interface{}{}
		if name := strings.TrimSpace(req.Name); name != "" {
			updates["name"] = name
		}
		if url := strings.TrimSpace(req.PhotoURL); url != "" {
			updates["photo_url"] = url
		}
		if len(updates) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
			return
		}

		participantID := c.GetString(middleware.CtxParticipantID)
		err := db.Model(&models.Participant{}).Where("id = ?", participantID).Updates(updates).Error
		if err != nil {
			utils.RespondError(c, err)
			return
		}

		participant, err := utils.FindParticipantByID(db, participantID)
		if err != nil {
			utils.RespondError(c, err)
			return
		}

		if hub != nil {
			if registration, err := game.GetRegistrationStatus(db); err == nil {
				hub.Broadcast(live.Message{Type: "registration", Data: registration})
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"participant": gin.H{
				"id":       participant.ID,
				"name":     participant.Name,
				"photoUrl": participant.PhotoURL,
			},
		})
	}
}

package controllers

import (
	"Mixtape/services/game"
	redis "Mixtape/services/redis"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"Mixtape/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Chart aggregates are expensive and only feed dashboards, so they may lag
// a little. Scores are never cached: they must always reflect the ledger.
const chartsCacheTTL = 30 * time.Second

// @Summary Scoreboard
// @Description Returns every registered participant's score, card total and completion state, plus headline stats
// @Tags admin
// @Produce json
// @Success 200 {object} object{scores=array,stats=object}
// @Failure 401 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Router /auth/admin/scores [get]
// @Security ApiKeyAuth
func GetScores(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		scores, err := game.AllScores(db)
		if err != nil {
			utils.RespondError(c, err)
			return
		}

		stats, err := game.Stats(db)
		if err != nil {
			utils.RespondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"scores": scores, "stats": stats})
	}
}

// @Summary Dashboard charts
// @Description Returns aggregate breakdowns (top artists, score distribution, completions per day, registration and progress). Cached for a short TTL.
// @Tags admin
// @Produce json
// @Success 200 {object} object{topArtists=array,scoreDistribution=array,completionByDay=array,registrationStatus=array,gameProgress=array}
// @Failure 401 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Router /auth/admin/stats [get]
// @Security ApiKeyAuth
func GetStats(db *gorm.DB, rc *redis.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rc != nil {
			if cached := rc.GetCached(redis.KeyAdminCharts); cached != nil {
				c.Data(http.StatusOK, "application/json", cached)
				return
			}
		}

		charts, err := game.Charts(db)
		if err != nil {
			utils.RespondError(c, err)
			return
		}

		if rc != nil {
			if payload, err := json.Marshal(charts); err == nil {
				rc.SetCached(redis.KeyAdminCharts, payload, chartsCacheTTL)
			}
		}

		c.JSON(http.StatusOK, charts)
	}
}

type importRequest struct {
	Participants []game.RosterEntry `json:"participants"`
}

// @Summary Import the roster
// @Description Upserts participants by email, either from a CSV file upload (name,email,artist_1,artist_2,artist_3) or a JSON body. Re-imports refresh names and artists but keep photos.
// @Tags admin
// @Accept json
// @Produce json
// @Success 200 {object} object{imported=integer,errors=array}
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Router /auth/admin/import [post]
// @Security ApiKeyAuth
func ImportParticipants(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var entries []game.RosterEntry

		if header, err := c.FormFile("file"); err == nil {
			file, err := header.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read CSV file"})
				return
			}
			defer file.Close()

			entries, err = parseRosterCSV(file)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid CSV: %v", err)})
				return
			}
		} else {
			var req importRequest
			if err := c.ShouldBindJSON(&req); err != nil || req.Participants == nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
				return
			}
			entries = req.Participants
		}

		imported := 0
		importErrors := []string{}
		for _, entry := range entries {
			if _, err := game.UpsertRosterEntry(db, entry); err != nil {
				label := entry.Email
				if label == "" {
					label = "missing email"
				}
				importErrors = append(importErrors, fmt.Sprintf("failed to import %s: %v", label, err))
				continue
			}
			imported++
		}

		c.JSON(http.StatusOK, gin.H{"imported": imported, "errors": importErrors})
	}
}

// parseRosterCSV reads a roster with a name,email,artist_1,artist_2,artist_3
// header line.
func parseRosterCSV(r io.Reader) ([]game.RosterEntry, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("no data rows")
	}

	var entries []game.RosterEntry
	for _, record := range records[1:] {
		if len(record) < 5 {
			return nil, fmt.Errorf("row has %d columns, want 5", len(record))
		}
		entries = append(entries, game.RosterEntry{
			Name:    record[0],
			Email:   record[1],
			Artist1: record[2],
			Artist2: record[3],
			Artist3: record[4],
		})
	}
	return entries, nil
}

// @Summary Export results
// @Description Downloads the scoreboard as CSV or JSON
// @Tags admin
// @Produce json
// @Param format query string false "csv or json" default(json)
// @Success 200 {object} object{scores=array}
// @Failure 401 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Router /auth/admin/export [get]
// @Security ApiKeyAuth
func ExportScores(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		scores, err := game.AllScores(db)
		if err != nil {
			utils.RespondError(c, err)
			return
		}

		if c.DefaultQuery("format", "json") != "csv" {
			c.JSON(http.StatusOK, gin.H{"scores": scores})
			return
		}

		var buf bytes.Buffer
		writer := csv.NewWriter(&buf)
		writer.Write([]string{"Name", "Email", "Score", "Total Cards", "Completed", "Completed At"})
		for _, s := range scores {
			completedAt := ""
			if s.CompletedAt != nil {
				completedAt = s.CompletedAt.Format("02/01/2006 15:04")
			}
			completed := "No"
			if s.IsCompleted {
				completed = "Yes"
			}
			writer.Write([]string{
				s.Name,
				s.Email,
				strconv.Itoa(s.Score),
				strconv.Itoa(s.TotalCards),
				completed,
				completedAt,
			})
		}
		writer.Flush()

		filename := fmt.Sprintf("mixtape-results-%s.csv", time.Now().Format("2006-01-02"))
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Data(http.StatusOK, "text/csv", buf.Bytes())
	}
}

type revealRequest struct {
	RevealAt *string `json:"revealAt"`
}

// @Summary Reveal gate
// @Description GET returns the scheduled reveal date and whether it has passed; POST sets or clears it
// @Tags admin
// @Produce json
// @Success 200 {object} object{revealDate=string,isEnabled=bool}
// @Failure 401 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Router /auth/admin/reveal [get]
// @Security ApiKeyAuth
func GetReveal(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		at, err := game.RevealDate(db)
		if err != nil {
			utils.RespondError(c, err)
			return
		}

		enabled, err := game.RevealEnabled(db, time.Now())
		if err != nil {
			utils.RespondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"revealDate": at, "isEnabled": enabled})
	}
}

// @Summary Schedule the reveal
// @Tags admin
// @Accept json
// @Produce json
// @Param body body object{revealAt=string} true "RFC 3339 instant, null to cancel"
// @Success 200 {object} object{success=bool,revealDate=string,isEnabled=bool}
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Router /auth/admin/reveal [post]
// @Security ApiKeyAuth
func SetReveal(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req revealRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		var at *time.Time
		if req.RevealAt != nil && *req.RevealAt != "" {
			parsed, err := time.Parse(time.RFC3339, *req.RevealAt)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "revealAt must be RFC 3339"})
				return
			}
			at = &parsed
		}

		if err := game.SetRevealDate(db, at); err != nil {
			utils.RespondError(c, err)
			return
		}

		enabled, err := game.RevealEnabled(db, time.Now())
		if err != nil {
			utils.RespondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "revealDate": at, "isEnabled": enabled})
	}
}

// @Summary Reset the game
// @Description Deletes all guesses, sessions and non-admin participants. Admins survive with their photo cleared.
// @Tags admin
// @Produce json
// @Success 200 {object} object{success=bool,message=string}
// @Failure 401 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Router /auth/admin/reset [post]
// @Security ApiKeyAuth
func ResetGame(db *gorm.DB, rc *redis.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := game.ResetGame(db); err != nil {
			utils.RespondError(c, err)
			return
		}

		if rc != nil {
			rc.InvalidateCached(redis.KeyAdminCharts)
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Database cleared. Admins preserved, ready for a new roster.",
		})
	}
}

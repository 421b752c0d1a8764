package controllers

import (
	"Mixtape/middleware"
	"Mixtape/services/storage"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Photos above this size are rejected before touching the store.
const maxPhotoSize = 5 << 20

// @Summary Upload a registration photo
// @Description Accepts an image up to 5MB and returns its public URL. The URL is only stored once the participant saves their profile.
// @Tags participants
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Photo"
// @Success 200 {object} object{url=string}
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Router /auth/upload [post]
// @Security ApiKeyAuth
func UploadPhoto(store storage.PhotoStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		header, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
			return
		}

		if header.Size > maxPhotoSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File too large (max. 5MB)"})
			return
		}

		contentType := header.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "image/") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Only images are allowed"})
			return
		}

		file, err := header.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload"})
			return
		}
		defer file.Close()

		url, err := store.Save(c.GetString(middleware.CtxParticipantID), header.Filename, file)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store photo"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"url": url})
	}
}

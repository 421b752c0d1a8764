package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Session cookie key holding the signed token.
const sessionTokenKey = "token"

// Context keys set for downstream handlers.
const (
	CtxParticipantID = "participantID"
	CtxEmail         = "email"
	CtxName          = "name"
	CtxIsAdmin       = "isAdmin"
)

// tokenFromRequest accepts the token either as a bearer header (API
// clients) or inside the session cookie (the browser).
func tokenFromRequest(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
	}

	session := sessions.Default(c)
	if token, ok := session.Get(sessionTokenKey).(string); ok {
		return token
	}
	return ""
}

// AuthRequired rejects unauthenticated requests and exposes the verified
// claims to the handlers.
func AuthRequired(c *gin.Context) {
	token := tokenFromRequest(c)
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	claims, err := ValidateToken(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
		return
	}

	c.Set(CtxParticipantID, claims.ParticipantID)
	c.Set(CtxEmail, claims.Email)
	c.Set(CtxName, claims.Name)
	c.Set(CtxIsAdmin, claims.IsAdmin)

	c.Next()
}

// AdminRequired goes on top of AuthRequired and gates the admin surface.
func AdminRequired(c *gin.Context) {
	if !c.GetBool(CtxIsAdmin) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}
	c.Next()
}

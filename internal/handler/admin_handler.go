package handler

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/auth"
)

// sessionAuthKey is the cookie-session flag set by a successful login.
const sessionAuthKey = "admin_authenticated"

type authRequest struct {
	Password string `json:"password"`
}

// Authenticate checks the admin password and marks the session.
func (a *API) Authenticate(c *gin.Context) {
	var payload authRequest
	if !bindJSON(c, &payload, "Invalid request") {
		return
	}

	if err := a.verifier.Verify(payload.Password); err != nil {
		switch {
		case errors.Is(err, auth.ErrSecretNotConfigured):
			respondError(c, http.StatusInternalServerError, "Server configuration error")
		case errors.Is(err, auth.ErrInvalidPassword):
			respondError(c, http.StatusUnauthorized, "Invalid password")
		default:
			respondInternal(c, err, "Authentication failed")
		}
		return
	}

	session := sessions.Default(c)
	session.Set(sessionAuthKey, true)
	if err := session.Save(); err != nil {
		respondInternal(c, err, "Authentication failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"authenticated": true})
}

// SessionStatus reports whether the caller's session is authenticated.
func (a *API) SessionStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"authenticated": isAuthenticated(c)})
}

// Logout clears the session.
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		respondInternal(c, err, "Logout failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"authenticated": false})
}

// AuthRequired rejects requests without an authenticated session.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isAuthenticated(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}

func isAuthenticated(c *gin.Context) bool {
	flag, ok := sessions.Default(c).Get(sessionAuthKey).(bool)
	return ok && flag
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/service"
)

// HealthCheck pings the database.
func (a *API) HealthCheck(c *gin.Context) {
	sqlDB, err := a.db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "database handle unavailable",
		})
		return
	}

	if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "error",
			"message": "database unreachable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"database": "up",
	})
}

type settingsPayload struct {
	InstagramURL string `json:"instagramUrl"`
	LinkedinURL  string `json:"linkedinUrl"`
	YoutubeURL   string `json:"youtubeUrl"`
}

// GetSettings returns the social links.
func (a *API) GetSettings(c *gin.Context) {
	settings, err := a.settings.Get(c.Request.Context())
	if err != nil {
		respondInternal(c, err, "Failed to fetch settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateSettings replaces the social links.
func (a *API) UpdateSettings(c *gin.Context) {
	var payload settingsPayload
	if !bindJSON(c, &payload, "Invalid request") {
		return
	}

	settings, err := a.settings.Update(c.Request.Context(), service.SettingsInput{
		InstagramURL: payload.InstagramURL,
		LinkedinURL:  payload.LinkedinURL,
		YoutubeURL:   payload.YoutubeURL,
	})
	if err != nil {
		respondInternal(c, err, "Failed to update settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

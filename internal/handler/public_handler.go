package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ShowWork returns the showcase as seen from ?tab= and ?gallery=.
func (a *API) ShowWork(c *gin.Context) {
	view, err := a.work.View(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		respondInternal(c, err, "Failed to load work")
		return
	}
	c.JSON(http.StatusOK, view)
}

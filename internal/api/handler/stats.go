package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// KarmaLeaderboard повертає топ-10 користувачів за кармою.
func (h *Handler) KarmaLeaderboard(c *gin.Context) {
	users, err := h.Complaints.KarmaLeaderboard()
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// FlatStats повертає статистику скарг квартири за типами.
func (h *Handler) FlatStats(c *gin.Context) {
	stats, err := h.Complaints.TypeStats()
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

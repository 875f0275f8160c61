package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type fileComplaintRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Type        string `json:"type" binding:"required,oneof=Noise Cleanliness Bills Pets"`
	Severity    string `json:"severity" binding:"required,oneof=Mild Annoying Major Nuclear"`
}

// FileComplaint створює нову скаргу від імені автентифікованого користувача.
func (h *Handler) FileComplaint(c *gin.Context) {
	var req fileComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.Complaints.File(c.GetString("userID"), req.Title, req.Description, req.Type, req.Severity)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Complaint filed successfully!", "complaint": created})
}

// ListComplaints повертає всі активні скарги з іменами авторів.
func (h *Handler) ListComplaints(c *gin.Context) {
	complaints, err := h.Complaints.ListActive()
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, complaints)
}

type voteRequest struct {
	Vote string `json:"vote" binding:"required,oneof=up down"`
}

// VoteComplaint реєструє один голос "up" або "down".
func (h *Handler) VoteComplaint(c *gin.Context) {
	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.Complaints.Vote(c.Param("id"), req.Vote)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vote registered", "complaint": updated})
}

// ResolveComplaint закриває скаргу та нараховує карму тому, хто її вирішив.
func (h *Handler) ResolveComplaint(c *gin.Context) {
	resolved, resolver, err := h.Complaints.Resolve(c.Param("id"), c.GetString("userID"))
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Complaint resolved! You earned 10 karma points.",
		"complaint": resolved,
		"resolver":  resolver,
	})
}

// BestFlatmate повертає користувача з найбільшою кармою.
func (h *Handler) BestFlatmate(c *gin.Context) {
	best, err := h.Complaints.BestFlatmate()
	if err != nil {
		renderError(c, err)
		return
	}
	if best == nil {
		c.JSON(http.StatusOK, gin.H{"message": "No flatmate has karma points yet."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": best.Name, "karmaPoints": best.KarmaPoints})
}

// Trending повертає найпідтриманішу активну скаргу за останній тиждень.
func (h *Handler) Trending(c *gin.Context) {
	top, err := h.Complaints.Trending()
	if err != nil {
		renderError(c, err)
		return
	}
	if top == nil {
		c.JSON(http.StatusOK, gin.H{"message": "No trending complaint this week."})
		return
	}
	c.JSON(http.StatusOK, top)
}

// Leaderboard повертає топ флетмейтів, на яких найбільше скаржаться.
func (h *Handler) Leaderboard(c *gin.Context) {
	board, err := h.Complaints.Leaderboard()
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

// TypeStats повертає кількість скарг за типами.
func (h *Handler) TypeStats(c *gin.Context) {
	stats, err := h.Complaints.TypeStats()
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

package handler

import (
	"errors"
	"net/http"

	"flatfeud/backend/internal/complaint"
	"flatfeud/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

// Handler містить посилання на сервіси скарг та сховище.
type Handler struct {
	Complaints *complaint.Service
	Storage    storage.Storage
}

func NewHandler(cs *complaint.Service, s storage.Storage) *Handler {
	return &Handler{Complaints: cs, Storage: s}
}

// renderError maps service errors onto HTTP responses: missing records are
// 404, disallowed transitions and bad input are 400, everything else is 500.
func renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, storage.ErrComplaintNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Complaint not found"})
	case errors.Is(err, storage.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
	case errors.Is(err, storage.ErrAlreadyResolved):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Complaint is already resolved!"})
	case errors.Is(err, complaint.ErrInvalidDirection),
		errors.Is(err, complaint.ErrInvalidType),
		errors.Is(err, complaint.ErrInvalidSeverity):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

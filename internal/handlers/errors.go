package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"dice-nft-backend/internal/models"
)

// respondError maps service errors onto HTTP statuses. Anything that is not a
// validation or lookup failure is reported as a 500.
func respondError(c *gin.Context, err error) {
	var vErr *models.ValidationError

	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Reason})
	case errors.Is(err, models.ErrGameNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
	case errors.Is(err, models.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	default:
		log.Printf("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"details": err.Error(),
		})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Invalid request",
		"details": err.Error(),
	})
}

func parseLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(models.DefaultListLimit)))
	if err != nil {
		return models.DefaultListLimit
	}
	return limit
}

// bindQueryAndBody accepts parameters from the query string and lets a JSON
// body, when present, override them.
func bindQueryAndBody(c *gin.Context, obj any) error {
	if err := c.ShouldBindQuery(obj); err != nil {
		return err
	}
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}
	return c.ShouldBindJSON(obj)
}

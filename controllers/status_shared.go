package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"charter-api/services"

	"github.com/gin-gonic/gin"
)

// The quote and contact status endpoints share their handler bodies; only
// the backing StatusService differs.

type statusUpdateRequest struct {
	Status string  `json:"status" binding:"required"`
	Note   *string `json:"note"`
}

type bulkStatusUpdateRequest struct {
	EntityIDs []int   `json:"entity_ids" binding:"required"`
	Status    string  `json:"status" binding:"required"`
	Note      *string `json:"note"`
}

func entityIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return 0, false
	}
	return id, true
}

// respondStatusError maps service errors onto HTTP statuses: validation and
// transition problems are 400, missing entities 404, anything else a
// generic 500 with the cause kept in the server log.
func respondStatusError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Entity not found"})
		return
	}

	var transitionErr *services.InvalidTransitionError
	if errors.As(err, &transitionErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": transitionErr.Error(),
			"from":  transitionErr.From,
			"to":    transitionErr.To,
		})
		return
	}

	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Reason})
		return
	}

	log.Printf("status operation failed: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

func updateEntityStatus(c *gin.Context, svc *services.StatusService) {
	id, ok := entityIDParam(c)
	if !ok {
		return
	}

	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	newStatus, err := services.ParseStatus(svc.Kind(), req.Status)
	if err != nil {
		respondStatusError(c, err)
		return
	}

	record, err := svc.UpdateStatus(id, newStatus, c.GetString("email"), req.Note)
	if err != nil {
		respondStatusError(c, err)
		return
	}

	current, err := svc.CurrentStatus(id)
	if err != nil {
		respondStatusError(c, err)
		return
	}
	history, err := svc.History(id)
	if err != nil {
		respondStatusError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"record":         record,
		"current_status": current,
		"history":        history,
	})
}

func getEntityStatusHistory(c *gin.Context, svc *services.StatusService) {
	id, ok := entityIDParam(c)
	if !ok {
		return
	}

	current, err := svc.CurrentStatus(id)
	if err != nil {
		respondStatusError(c, err)
		return
	}
	history, err := svc.History(id)
	if err != nil {
		respondStatusError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"current_status": current,
		"history":        history,
		"total":          len(history),
	})
}

func bulkUpdateEntityStatus(c *gin.Context, svc *services.StatusService) {
	var req bulkStatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.EntityIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "entity_ids must not be empty"})
		return
	}

	newStatus, err := services.ParseStatus(svc.Kind(), req.Status)
	if err != nil {
		respondStatusError(c, err)
		return
	}

	outcomes := svc.BulkUpdateStatus(req.EntityIDs, newStatus, c.GetString("email"), req.Note)

	succeeded := 0
	for _, outcome := range outcomes {
		if outcome.Error == "" {
			succeeded++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"results":   outcomes,
		"succeeded": succeeded,
		"failed":    len(outcomes) - succeeded,
		"total":     len(outcomes),
	})
}

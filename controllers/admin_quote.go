package controllers

import (
	"net/http"
	"time"

	"charter-api/config"
	"charter-api/models"
	"charter-api/services"
	"charter-api/utils"

	"github.com/gin-gonic/gin"
)

// QuoteListFilter is the full set of filters the quote list supports. Bound
// from the query string; unknown statuses and ranges are rejected instead of
// silently ignored.
type QuoteListFilter struct {
	Status string `form:"status"`
	Range  string `form:"range"`
	Search string `form:"search"`
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=20"`
}

// GetQuotes lists quote requests for the admin dashboard.
// GET /api/v1/quotes
func GetQuotes(c *gin.Context) {
	var filter QuoteListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	svc := services.NewQuoteStatusService(config.DB)

	query := config.DB.Model(&models.Quote{}).Where("delete_at IS NULL")

	cutoff, err := utils.ParseTimeRange(filter.Range, time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if cutoff != nil {
		query = query.Where("create_at >= ?", *cutoff)
	}

	if filter.Search != "" {
		term := "%" + utils.SanitizeInput(filter.Search) + "%"
		query = query.Where(
			"reference LIKE ? OR full_name LIKE ? OR email LIKE ? OR origin LIKE ? OR destination LIKE ?",
			term, term, term, term, term)
	}

	if filter.Status != "" {
		status, err := services.ParseStatus(services.KindQuote, filter.Status)
		if err != nil {
			respondStatusError(c, err)
			return
		}
		ids, err := svc.EntityIDsWithCurrentStatus(status)
		if err != nil {
			respondStatusError(c, err)
			return
		}
		if len(ids) == 0 {
			ids = []int{-1}
		}
		query = query.Where("quote_id IN ?", ids)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count quotes"})
		return
	}

	var quotes []models.Quote
	if err := query.Order("create_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&quotes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch quotes"})
		return
	}

	ids := make([]int, len(quotes))
	for i, q := range quotes {
		ids[i] = q.QuoteID
	}
	statuses, err := svc.CurrentStatusMap(ids)
	if err != nil {
		respondStatusError(c, err)
		return
	}

	items := make([]gin.H, len(quotes))
	for i, q := range quotes {
		items[i] = gin.H{
			"quote":          q,
			"current_status": statuses[q.QuoteID],
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"quotes": items,
		"total":  total,
		"page":   filter.Page,
		"limit":  filter.Limit,
	})
}

// GetQuote returns one quote with its derived status and full history.
// GET /api/v1/quotes/:id
func GetQuote(c *gin.Context) {
	id, ok := entityIDParam(c)
	if !ok {
		return
	}

	var quote models.Quote
	if err := config.DB.Where("quote_id = ? AND delete_at IS NULL", id).First(&quote).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Quote not found"})
		return
	}

	svc := services.NewQuoteStatusService(config.DB)
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
		"quote":          quote,
		"current_status": current,
		"history":        history,
	})
}

// UpdateQuoteStatus applies one validated status transition.
// PATCH /api/v1/quotes/:id/status
func UpdateQuoteStatus(c *gin.Context) {
	updateEntityStatus(c, services.NewQuoteStatusService(config.DB))
}

// GetQuoteStatusHistory returns the quote's audit trail.
// GET /api/v1/quotes/:id/status-history
func GetQuoteStatusHistory(c *gin.Context) {
	getEntityStatusHistory(c, services.NewQuoteStatusService(config.DB))
}

// BulkUpdateQuoteStatus applies one status change across many quotes.
// POST /api/v1/quotes/bulk-status
func BulkUpdateQuoteStatus(c *gin.Context) {
	bulkUpdateEntityStatus(c, services.NewQuoteStatusService(config.DB))
}

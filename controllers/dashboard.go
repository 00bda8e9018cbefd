package controllers

import (
	"net/http"
	"time"

	"charter-api/config"
	"charter-api/services"
	"charter-api/utils"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats returns the admin landing-page numbers: current status
// tallies for both entity kinds plus payment totals.
// GET /api/v1/dashboard/stats
func GetDashboardStats(c *gin.Context) {
	quoteStats, err := services.NewQuoteStatusService(config.DB).Statistics()
	if err != nil {
		respondStatusError(c, err)
		return
	}

	contactStats, err := services.NewContactStatusService(config.DB).Statistics()
	if err != nil {
		respondStatusError(c, err)
		return
	}

	var paymentSummary struct {
		Count int64   `json:"count"`
		Total float64 `json:"total"`
	}
	err = config.DB.Table("payments").
		Where("delete_at IS NULL").
		Select("COUNT(*) AS count, COALESCE(SUM(amount),0) AS total").
		Scan(&paymentSummary).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payment summary"})
		return
	}

	weekAgo := time.Now().AddDate(0, 0, -7)
	var recentQuotes int64
	config.DB.Table("quotes").
		Where("delete_at IS NULL AND create_at >= ?", weekAgo).
		Count(&recentQuotes)

	c.JSON(http.StatusOK, gin.H{
		"stats": gin.H{
			"quotes":         quoteStats,
			"contacts":       contactStats,
			"payments":       paymentSummary,
			"quotes_last_7d": recentQuotes,
			"generated_at":   time.Now().Format(time.RFC3339),
		},
	})
}

// GetStatusDistribution tallies current status over entities created in the
// requested window.
// GET /api/v1/dashboard/status-distribution?kind=quote&range=30d
func GetStatusDistribution(c *gin.Context) {
	var svc *services.StatusService
	switch c.DefaultQuery("kind", "quote") {
	case "quote":
		svc = services.NewQuoteStatusService(config.DB)
	case "contact":
		svc = services.NewContactStatusService(config.DB)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be quote or contact"})
		return
	}

	rangeValue := c.DefaultQuery("range", "all")
	cutoff, err := utils.ParseTimeRange(rangeValue, time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	distribution, err := svc.StatusDistribution(cutoff)
	if err != nil {
		respondStatusError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"kind":         svc.Kind(),
		"range":        rangeValue,
		"distribution": distribution,
	})
}

package controllers

import (
	"net/http"
	"time"

	"charter-api/config"
	"charter-api/models"

	"github.com/gin-gonic/gin"
)

// PaymentListFilter narrows the payment list by quote or receipt window.
type PaymentListFilter struct {
	QuoteID int    `form:"quote_id"`
	Method  string `form:"method"`
	Page    int    `form:"page,default=1"`
	Limit   int    `form:"limit,default=20"`
}

// GetPayments lists recorded payments.
// GET /api/v1/payments
func GetPayments(c *gin.Context) {
	var filter PaymentListFilter
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

	query := config.DB.Model(&models.Payment{}).Where("delete_at IS NULL")
	if filter.QuoteID > 0 {
		query = query.Where("quote_id = ?", filter.QuoteID)
	}
	if filter.Method != "" {
		query = query.Where("method = ?", filter.Method)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count payments"})
		return
	}

	var payments []models.Payment
	if err := query.Preload("Quote").
		Order("received_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payments": payments,
		"total":    total,
		"page":     filter.Page,
		"limit":    filter.Limit,
	})
}

type CreatePaymentRequest struct {
	QuoteID    int     `json:"quote_id" binding:"required"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
	Currency   string  `json:"currency"`
	Method     string  `json:"method" binding:"required,oneof=wire card other"`
	Reference  *string `json:"reference"`
	ReceivedAt string  `json:"received_at" binding:"required"`
}

// CreatePayment records a payment received against a quote. Gateway
// integration is external; this is bookkeeping only.
// POST /api/v1/payments
func CreatePayment(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	receivedAt, err := time.Parse("2006-01-02", req.ReceivedAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "received_at must be YYYY-MM-DD"})
		return
	}

	var quote models.Quote
	if err := config.DB.Where("quote_id = ? AND delete_at IS NULL", req.QuoteID).First(&quote).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Quote not found"})
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	now := time.Now()
	payment := models.Payment{
		QuoteID:    req.QuoteID,
		Amount:     req.Amount,
		Currency:   currency,
		Method:     req.Method,
		Reference:  req.Reference,
		RecordedBy: c.GetString("email"),
		ReceivedAt: receivedAt,
		CreateAt:   now,
		UpdateAt:   now,
	}

	if err := config.DB.Create(&payment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Payment recorded",
		"payment": payment,
	})
}

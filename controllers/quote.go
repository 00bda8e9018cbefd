package controllers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"charter-api/config"
	"charter-api/models"
	"charter-api/services"
	"charter-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// analyticsQueue is injected from main so its lifetime (flush on shutdown)
// is owned there, not by this package.
var analyticsQueue *services.EventQueue

// UseAnalyticsQueue wires the shared event queue into the public handlers.
func UseAnalyticsQueue(q *services.EventQueue) {
	analyticsQueue = q
}

func trackEvent(name, dedupKey string, page, locale string) {
	if analyticsQueue == nil {
		return
	}
	event := models.AnalyticsEvent{
		EventName: name,
		DedupKey:  dedupKey,
	}
	if page != "" {
		event.Page = &page
	}
	if locale != "" {
		event.Locale = &locale
	}
	if err := analyticsQueue.Track(event); err != nil {
		log.Printf("Warning: failed to track %s event: %v", name, err)
	}
}

// newReference builds a short public reference like Q-3F2A9C81.
func newReference(prefix string) string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return prefix + "-" + id[:8]
}

type CreateQuoteRequest struct {
	FullName      string  `json:"full_name" binding:"required"`
	Email         string  `json:"email" binding:"required,email"`
	Phone         *string `json:"phone"`
	Origin        string  `json:"origin" binding:"required"`
	Destination   string  `json:"destination" binding:"required"`
	DepartureDate string  `json:"departure_date" binding:"required"`
	ReturnDate    *string `json:"return_date"`
	Passengers    int     `json:"passengers" binding:"required,min=1,max=100"`
	AircraftType  *string `json:"aircraft_type"`
	Message       *string `json:"message"`
	Locale        string  `json:"locale"`
}

// CreateQuote handles the public quote request form.
// POST /api/v1/quotes
func CreateQuote(c *gin.Context) {
	var req CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	departure, err := time.Parse("2006-01-02", req.DepartureDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "departure_date must be YYYY-MM-DD"})
		return
	}

	var returnDate *time.Time
	if req.ReturnDate != nil && *req.ReturnDate != "" {
		parsed, err := time.Parse("2006-01-02", *req.ReturnDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "return_date must be YYYY-MM-DD"})
			return
		}
		if parsed.Before(departure) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "return_date must not be before departure_date"})
			return
		}
		returnDate = &parsed
	}

	locale := req.Locale
	if locale == "" {
		locale = "en"
	}

	now := time.Now()
	quote := models.Quote{
		Reference:     newReference("Q"),
		FullName:      utils.SanitizeInput(req.FullName),
		Email:         utils.SanitizeInput(req.Email),
		Phone:         req.Phone,
		Origin:        utils.SanitizeInput(req.Origin),
		Destination:   utils.SanitizeInput(req.Destination),
		DepartureDate: departure,
		ReturnDate:    returnDate,
		Passengers:    req.Passengers,
		AircraftType:  req.AircraftType,
		Message:       req.Message,
		Locale:        locale,
		CreateAt:      now,
		UpdateAt:      now,
	}

	if err := config.DB.Create(&quote).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save quote request"})
		return
	}

	trackEvent("quote_submitted", "quote:"+quote.Reference, "/quote", locale)

	go func(q models.Quote) {
		if err := services.NotifyNewQuote(q); err != nil {
			log.Printf("Warning: failed to send quote notification for %s: %v", q.Reference, err)
		}
	}(quote)

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"message":   "Quote request received",
		"reference": quote.Reference,
		"status":    services.StatusPending,
	})
}

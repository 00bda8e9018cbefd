package controllers

import (
	"log"
	"net/http"
	"time"

	"charter-api/config"
	"charter-api/models"
	"charter-api/services"
	"charter-api/utils"

	"github.com/gin-gonic/gin"
)

type CreateContactRequest struct {
	FullName string  `json:"full_name" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
	Phone    *string `json:"phone"`
	Subject  string  `json:"subject" binding:"required"`
	Message  string  `json:"message" binding:"required"`
	Locale   string  `json:"locale"`
}

// CreateContact handles the public contact form.
// POST /api/v1/contacts
func CreateContact(c *gin.Context) {
	var req CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	locale := req.Locale
	if locale == "" {
		locale = "en"
	}

	now := time.Now()
	contact := models.Contact{
		Reference: newReference("C"),
		FullName:  utils.SanitizeInput(req.FullName),
		Email:     utils.SanitizeInput(req.Email),
		Phone:     req.Phone,
		Subject:   utils.SanitizeInput(req.Subject),
		Message:   utils.SanitizeInput(req.Message),
		Locale:    locale,
		CreateAt:  now,
		UpdateAt:  now,
	}

	if err := config.DB.Create(&contact).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save contact message"})
		return
	}

	trackEvent("contact_submitted", "contact:"+contact.Reference, "/contact", locale)

	go func(ct models.Contact) {
		if err := services.NotifyNewContact(ct); err != nil {
			log.Printf("Warning: failed to send contact notification for %s: %v", ct.Reference, err)
		}
	}(contact)

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"message":   "Message received",
		"reference": contact.Reference,
		"status":    services.StatusPending,
	})
}

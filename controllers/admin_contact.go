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

// ContactListFilter mirrors QuoteListFilter for contact submissions.
type ContactListFilter struct {
	Status string `form:"status"`
	Range  string `form:"range"`
	Search string `form:"search"`
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=20"`
}

// GetContacts lists contact submissions for the admin dashboard.
// GET /api/v1/contacts
func GetContacts(c *gin.Context) {
	var filter ContactListFilter
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

	svc := services.NewContactStatusService(config.DB)

	query := config.DB.Model(&models.Contact{}).Where("delete_at IS NULL")

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
			"reference LIKE ? OR full_name LIKE ? OR email LIKE ? OR subject LIKE ?",
			term, term, term, term)
	}

	if filter.Status != "" {
		status, err := services.ParseStatus(services.KindContact, filter.Status)
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
		query = query.Where("contact_id IN ?", ids)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count contacts"})
		return
	}

	var contacts []models.Contact
	if err := query.Order("create_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&contacts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch contacts"})
		return
	}

	ids := make([]int, len(contacts))
	for i, ct := range contacts {
		ids[i] = ct.ContactID
	}
	statuses, err := svc.CurrentStatusMap(ids)
	if err != nil {
		respondStatusError(c, err)
		return
	}

	items := make([]gin.H, len(contacts))
	for i, ct := range contacts {
		items[i] = gin.H{
			"contact":        ct,
			"current_status": statuses[ct.ContactID],
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"contacts": items,
		"total":    total,
		"page":     filter.Page,
		"limit":    filter.Limit,
	})
}

// GetContact returns one contact with its derived status and full history.
// GET /api/v1/contacts/:id
func GetContact(c *gin.Context) {
	id, ok := entityIDParam(c)
	if !ok {
		return
	}

	var contact models.Contact
	if err := config.DB.Where("contact_id = ? AND delete_at IS NULL", id).First(&contact).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contact not found"})
		return
	}

	svc := services.NewContactStatusService(config.DB)
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
		"contact":        contact,
		"current_status": current,
		"history":        history,
	})
}

// UpdateContactStatus applies one validated status transition.
// PATCH /api/v1/contacts/:id/status
func UpdateContactStatus(c *gin.Context) {
	updateEntityStatus(c, services.NewContactStatusService(config.DB))
}

// GetContactStatusHistory returns the contact's audit trail.
// GET /api/v1/contacts/:id/status-history
func GetContactStatusHistory(c *gin.Context) {
	getEntityStatusHistory(c, services.NewContactStatusService(config.DB))
}

// BulkUpdateContactStatus applies one status change across many contacts.
// POST /api/v1/contacts/bulk-status
func BulkUpdateContactStatus(c *gin.Context) {
	bulkUpdateEntityStatus(c, services.NewContactStatusService(config.DB))
}

package routes

import (
	"charter-api/controllers"
	"charter-api/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers the API route table. publicLimiter guards the
// unauthenticated lead-capture endpoints.
func SetupRoutes(router *gin.Engine, publicLimiter gin.HandlerFunc) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/login", controllers.Login)

			// Lead capture (rate limited)
			public.POST("/quotes", publicLimiter, controllers.CreateQuote)
			public.POST("/contacts", publicLimiter, controllers.CreateContact)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Charter API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Quote management: agents can read, only admins change status
			quotes := protected.Group("/quotes", middleware.RequireRole(middleware.RoleAgent, middleware.RoleAdmin))
			{
				quotes.GET("", controllers.GetQuotes)
				quotes.GET("/:id", controllers.GetQuote)
				quotes.GET("/:id/status-history", controllers.GetQuoteStatusHistory)
				quotes.PATCH("/:id/status", middleware.RequireRole(middleware.RoleAdmin), controllers.UpdateQuoteStatus)
				quotes.POST("/bulk-status", middleware.RequireRole(middleware.RoleAdmin), controllers.BulkUpdateQuoteStatus)
			}

			// Contact management
			contacts := protected.Group("/contacts", middleware.RequireRole(middleware.RoleAgent, middleware.RoleAdmin))
			{
				contacts.GET("", controllers.GetContacts)
				contacts.GET("/:id", controllers.GetContact)
				contacts.GET("/:id/status-history", controllers.GetContactStatusHistory)
				contacts.PATCH("/:id/status", middleware.RequireRole(middleware.RoleAdmin), controllers.UpdateContactStatus)
				contacts.POST("/bulk-status", middleware.RequireRole(middleware.RoleAdmin), controllers.BulkUpdateContactStatus)
			}

			// Payments are admin only
			payments := protected.Group("/payments", middleware.RequireRole(middleware.RoleAdmin))
			{
				payments.GET("", controllers.GetPayments)
				payments.POST("", controllers.CreatePayment)
			}

			// Dashboard
			dashboard := protected.Group("/dashboard", middleware.RequireRole(middleware.RoleAgent, middleware.RoleAdmin))
			{
				dashboard.GET("/stats", controllers.GetDashboardStats)
				dashboard.GET("/status-distribution", controllers.GetStatusDistribution)
			}
		}
	}
}

package routes

import (
	"time"

	"github.com/edgarmtz-git/multt-sub003/handlers"
	"github.com/edgarmtz-git/multt-sub003/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Initialize handlers
	authHandler := &handlers.AuthHandler{DB: db}
	availabilityHandler := &handlers.AvailabilityHandler{DB: db}
	checkoutHandler := &handlers.CheckoutHandler{DB: db}
	configHandler := &handlers.StoreConfigHandler{DB: db}

	// Storefront pollers hit the availability endpoints hard; cap them
	// per client IP so checkout traffic keeps breathing room.
	publicLimiter := middleware.NewRateLimiter(120, time.Minute)

	// Public routes
	api := r.Group("/api")
	{
		// Auth routes
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// Storefront availability routes
		public := api.Group("")
		public.Use(publicLimiter.Middleware())
		public.GET("/stores/:slug/availability", availabilityHandler.GetAvailability)
		public.GET("/stores/:slug/availability/slots", availabilityHandler.GetSlots)
		public.GET("/stores/:slug/zones", availabilityHandler.GetZones)

		// Checkout quote
		public.POST("/checkout/quote", checkoutHandler.QuoteCheckout)
	}

	// Protected routes (require authentication)
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		// User profile
		protected.GET("/auth/profile", authHandler.GetProfile)
	}

	// Store owner routes (require store_owner role with an assigned store)
	store := api.Group("/store")
	store.Use(middleware.AuthMiddleware())
	store.Use(middleware.StoreOwnerMiddleware())
	{
		// Weekly schedule aggregate
		store.GET("/schedule", configHandler.GetSchedule)
		store.PUT("/schedule", configHandler.UpdateSchedule)

		// Calendar-date exceptions
		store.GET("/exceptions", configHandler.GetExceptions)
		store.POST("/exceptions", configHandler.CreateException)
		store.DELETE("/exceptions/:id", configHandler.DeleteException)

		// Delivery zones
		store.GET("/zones", configHandler.GetZones)
		store.POST("/zones", configHandler.CreateZone)
		store.PUT("/zones/:id", configHandler.UpdateZone)
		store.DELETE("/zones/:id", configHandler.DeleteZone)
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}

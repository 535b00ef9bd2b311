package routes

import (
	"net/http"
	"time"

	"fieldbook/handlers"
	"fieldbook/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterFieldRoutes registers field catalogue endpoints. Listing and
// lookup are public; creation requires an authenticated caller.
func RegisterFieldRoutes(r *gin.Engine, fieldHandler *handlers.FieldHandler) {
	fields := r.Group("/api/fields")
	{
		fields.GET("", fieldHandler.ListFields)
		fields.GET("/:id", fieldHandler.GetField)
		fields.POST("", middleware.JWTAuthMiddleware(), fieldHandler.CreateField)
	}
}

// RegisterBookingRoutes registers the scheduling session endpoints and
// the user's booking history endpoints.
func RegisterBookingRoutes(r *gin.Engine, bookingHandler *handlers.BookingHandler) {
	session := r.Group("/api/booking/session")
	session.Use(middleware.JWTAuthMiddleware())
	{
		session.POST("", bookingHandler.InitiateSession)
		session.GET("/:sessionID", bookingHandler.GetSession)
		session.POST("/:sessionID/select", bookingHandler.SelectSlot)
		session.POST("/:sessionID/confirm", bookingHandler.ConfirmBooking)
		session.DELETE("/:sessionID", bookingHandler.CancelSession)
	}

	bookings := r.Group("/api/bookings")
	bookings.Use(middleware.JWTAuthMiddleware())
	{
		bookings.GET("", bookingHandler.ListMyBookings)
		bookings.DELETE("/:id", bookingHandler.CancelBooking)
	}
}

// RegisterHealthRoute registers a simple health check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, bookingHandler *handlers.BookingHandler, fieldHandler *handlers.FieldHandler) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterFieldRoutes(r, fieldHandler)
	RegisterBookingRoutes(r, bookingHandler)
}

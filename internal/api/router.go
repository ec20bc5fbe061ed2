package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/singhnaman320/Meeting-Room-Booking-System-Backend/internal/booking"
	"github.com/singhnaman320/Meeting-Room-Booking-System-Backend/internal/mw"
	"github.com/singhnaman320/Meeting-Room-Booking-System-Backend/internal/store"
)

// RouterOptions carries the tunables the router needs from config.
type RouterOptions struct {
	RateLimitPerSec float64
	RateLimitBurst  int
	CacheTTL        time.Duration
}

// NewRouter creates and configures a new Gin router.
func NewRouter(svc *booking.Service, s store.Store, webpushOptions *webpush.Options, opts RouterOptions) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(svc, s, webpushOptions)

	rateLimiter := mw.RateLimiter(rate.Limit(opts.RateLimitPerSec), opts.RateLimitBurst)

	cacheStore := cache.New(opts.CacheTTL, 2*opts.CacheTTL)
	caching := mw.Cache(cacheStore, opts.CacheTTL)

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Server is running!"})
	})

	api := r.Group("/api")
	api.Use(rateLimiter, mw.Identity())
	{
		api.GET("/rooms", caching, handler.GetRooms)
		api.GET("/rooms/:id", handler.GetRoom)
		api.GET("/rooms/:id/availability", handler.GetRoomAvailability)
		api.POST("/rooms", mw.RequireAdmin(), handler.PostRoom)
		api.PUT("/rooms/:id", mw.RequireAdmin(), handler.PutRoom)
		api.DELETE("/rooms/:id", mw.RequireAdmin(), handler.DeleteRoom)

		api.GET("/bookings/my-bookings", handler.GetMyBookings)
		api.GET("/bookings", mw.RequireAdmin(), handler.GetAllBookings)
		api.GET("/bookings/:id", handler.GetBooking)
		api.POST("/bookings", handler.PostBooking)
		api.PUT("/bookings/:id", handler.PutBooking)
		api.PATCH("/bookings/:id/cancel", handler.CancelBooking)
		api.DELETE("/bookings/:id", handler.DeleteBooking)

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}

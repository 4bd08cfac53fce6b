// Package router defines how HTTP routes are registered for the API. The
// /api paths and methods are the binding public contract of the service.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/restaurant-table-reservation/internal/config"
	"github.com/iliyamo/restaurant-table-reservation/internal/handler"
	"github.com/iliyamo/restaurant-table-reservation/internal/middleware"
)

// Handlers groups the handler sets the router wires up.
type Handlers struct {
	Slots    *handler.SlotHandler
	Bookings *handler.BookingHandler
	OTP      *handler.OTPHandler
	Admin    *handler.AdminHandler
}

// Register wires every route. Redis-backed middleware degrades to
// pass-through when rdb is nil. The availability summary and slot listing
// sit behind the response cache; booking creation and OTP issuance sit
// behind the rate limiter.
func Register(e *echo.Echo, cfg config.Config, h Handlers, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.ResponseCache(config.LoadCacheConfig(), rdb)

	api := e.Group("/api")

	// Slot catalog
	api.POST("/bkgSession", h.Slots.CreateSession)
	api.GET("/getBkgSession", h.Slots.ListSessions, cache)
	api.GET("/bookingSummary", h.Slots.BookingSummary, cache)
	api.GET("/getSlotLimit", h.Slots.GetSlotLimit)

	// Bookings
	api.POST("/makeBooking", h.Bookings.MakeBooking, limiter)
	api.GET("/getBooking", h.Bookings.GetBooking)
	api.GET("/getAllBookings", h.Bookings.GetAllBookings)
	api.PUT("/updateBooking", h.Bookings.UpdateBooking)
	api.DELETE("/cancelBooking", h.Bookings.CancelBooking)

	// Email verification
	api.POST("/request-otp", h.OTP.RequestOTP, limiter)
	api.POST("/verify-otp", h.OTP.VerifyOTP, limiter)

	// Admin
	api.POST("/admin/login", h.Admin.Login)
	admin := api.Group("/admin", middleware.AdminAuth(cfg.JWTSecret))
	admin.GET("/bookings", h.Admin.Bookings)
}

// Package router registers the HTTP routes for the staff reservation API.
package router

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/hirostaff/reservations/internal/handler"
	"github.com/hirostaff/reservations/internal/middleware"
)

// RegisterRoutes registers routes that require no authentication.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth wires the session-gate endpoints.  Unauthenticated
// operations live under /v1/auth; /v1/me sits behind the JWT middleware.
// The login endpoint carries the Redis throttle to slow credential
// guessing; rdb may be nil, which disables it.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, rdb *redis.Client, maxAttempts int, window time.Duration) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login, middleware.LoginThrottle(rdb, maxAttempts, window))
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("ADMIN", "STAFF"))
	auth.GET("/me", a.Me)
}

// RegisterReservations wires the calendar/day-list/form surface.  Every
// route requires a staff session.
func RegisterReservations(e *echo.Echo, r *handler.ReservationHandler, jwtSecret string) {
	g := e.Group("/v1/reservations")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("ADMIN", "STAFF"))

	g.GET("", r.ListDay)
	g.GET("/dates", r.ListDates)
	g.GET("/slots", r.ListSlots)
	g.POST("", r.Create)
	g.PATCH("/:id", r.Update)
	g.DELETE("/:id", r.Delete)
}

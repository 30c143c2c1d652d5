package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/livingroombaithaks/baithak-booking/internal/config"
	"github.com/livingroombaithaks/baithak-booking/internal/handler"    // import the handlers that implement business logic
	"github.com/livingroombaithaks/baithak-booking/internal/middleware" // import middleware for admin auth, caching and rate limiting
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the unauthenticated browse endpoints: the
// event feed, single-event lookup and the availability query.  These
// are the endpoints the booking wizard polls, so they sit behind the
// Redis response cache when one is configured.
func RegisterPublic(e *echo.Echo, ev *handler.EventHandler, av *handler.AvailabilityHandler, rdb *redis.Client) {
	g := e.Group("/v1")
	if rdb != nil {
		cacheCfg := config.LoadCacheConfig()
		g.Use(middleware.NewRedisCache(cacheCfg, rdb))
	}
	// Expose the list of events, upcoming first.
	g.GET("/events", ev.ListEvents)
	// Expose a single event by id.
	g.GET("/events/:id", ev.GetEvent)
	// Expose per-category seat availability for an event.
	g.GET("/events/:id/availability", av.GetAvailability)
}

// RegisterBooking registers the booking submission endpoint and the
// public booking lookup.  Submission is rate limited per client IP so
// a stuck retry loop in a browser cannot hammer the insert path.
func RegisterBooking(e *echo.Echo, b *handler.BookingHandler, rdb *redis.Client) {
	g := e.Group("/v1")
	if rdb != nil {
		rlCfg := config.LoadRateLimitConfig()
		g.Use(middleware.NewTokenBucket(rlCfg, rdb))
	}
	// Accept a completed booking from the wizard.
	g.POST("/bookings", b.CreateBooking)
}

// RegisterAdmin registers the admin login endpoint plus the protected
// verification and cancellation transitions.  The protected group
// requires a bearer token carrying the ADMIN role; tokens are minted
// by the login handler against a single environment-supplied
// credential.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, b *handler.BookingHandler, jwtSecret string) {
	// Login does not require a token.
	e.POST("/v1/admin/login", a.Login)

	// Everything else under /v1/admin does.
	g := e.Group("/v1/admin")
	g.Use(middleware.AdminAuth(jwtSecret))
	// Look up a booking with its attendees by reference.
	g.GET("/bookings/:ref", b.GetBooking)
	// Record the outcome of a manual payment check.
	g.POST("/bookings/:ref/verify", b.VerifyPayment)
	// Cancel a booking, releasing its seats back into availability.
	g.POST("/bookings/:ref/cancel", b.CancelBooking)
}

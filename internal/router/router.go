package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/avelik/schedesk/internal/handler"    // import the handlers that implement business logic
	"github.com/avelik/schedesk/internal/middleware" // import middleware for JWT authentication
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Load balancers and monitoring systems use this to verify the service
	// is up.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.  The rate limiter wraps the
// credential endpoints since sign-in is the only brute-forceable surface.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	g := e.Group("/v1/auth")
	if limiter != nil {
		g.Use(limiter)
	}
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Rotates the refresh token.
	g.POST("/refresh", a.Refresh)
	// Issues a new access token without rotating the refresh token.
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout accepts a JSON body containing a `refresh_token` or a bearer
	// token in the Authorization header; it does not require the JWT
	// middleware.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)

	// Same handler at the top level so clients can terminate a session
	// with either path.
	e.POST("/v1/logout", a.Logout)
}

// RegisterSchedule registers the customer and appointment tables, the
// lookup selectors and the reports.  Everything here requires a valid
// access token; the lookup routes additionally sit behind the response
// cache since reference data changes rarely.
func RegisterSchedule(e *echo.Echo, jwtSecret string, cache echo.MiddlewareFunc,
	cu *handler.CustomerHandler, ap *handler.AppointmentHandler,
	lu *handler.LookupHandler, rp *handler.ReportHandler) {

	v1 := e.Group("/v1", middleware.JWTAuth(jwtSecret))

	v1.GET("/customers", cu.List)
	v1.POST("/customers", cu.Create)
	v1.GET("/customers/:id", cu.Get)
	v1.PUT("/customers/:id", cu.Update)
	v1.DELETE("/customers/:id", cu.Delete)

	v1.GET("/appointments", ap.List)
	v1.GET("/appointments/years", ap.Years)
	v1.GET("/appointments/months", ap.Months)
	v1.GET("/appointments/weeks", ap.Weeks)
	v1.GET("/appointments/upcoming", ap.Upcoming)
	v1.POST("/appointments", ap.Create)
	v1.GET("/appointments/:id", ap.Get)
	v1.PUT("/appointments/:id", ap.Update)
	v1.DELETE("/appointments/:id", ap.Delete)

	lookups := v1.Group("/lookups")
	if cache != nil {
		lookups.Use(cache)
	}
	lookups.GET("/contacts", lu.Contacts)
	lookups.GET("/users", lu.Users)
	lookups.GET("/countries", lu.Countries)
	lookups.GET("/countries/:id/divisions", lu.Divisions)

	v1.GET("/reports/appointments-by-month-type", rp.CountsByMonthAndType)
	v1.GET("/reports/contact-schedule", rp.ContactSchedule)
	v1.GET("/reports/customers-by-division", rp.CustomersByDivision)
}

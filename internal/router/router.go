package router // package router defines how HTTP routes are registered for the application

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avezina/showbill/internal/handler"
)

// RegisterRoutes registers the public listing surface on the provided Echo
// instance.  The optional guard middleware wraps every mutating route
// (creates, edits, deletes); pass nil to leave the surface fully open,
// which is the default deployment mode.
func RegisterRoutes(e *echo.Echo, v *handler.VenueHandler, a *handler.ArtistHandler, s *handler.ShowHandler, guard echo.MiddlewareFunc) {
	mutating := func(h echo.HandlerFunc) echo.HandlerFunc {
		if guard == nil {
			return h
		}
		return guard(h)
	}

	e.GET("/", handler.Home)
	e.GET("/healthz", handler.Health)

	// Venues
	e.GET("/venues", v.List)
	e.POST("/venues/search", v.Search)
	e.GET("/venues/create", v.CreateForm)
	e.POST("/venues/create", mutating(v.Create))
	e.GET("/venues/:id", v.Get)
	e.DELETE("/venues/:id", mutating(v.Delete))
	e.GET("/venues/:id/edit", v.EditForm)
	e.POST("/venues/:id/edit", mutating(v.Edit))

	// Artists
	e.GET("/artists", a.List)
	e.POST("/artists/search", a.Search)
	e.GET("/artists/create", a.CreateForm)
	e.POST("/artists/create", mutating(a.Create))
	e.GET("/artists/:id", a.Get)
	e.GET("/artists/:id/edit", a.EditForm)
	e.POST("/artists/:id/edit", mutating(a.Edit))

	// Shows
	e.GET("/shows", s.List)
	e.GET("/shows/create", s.CreateForm)
	e.POST("/shows/create", mutating(s.Create))
}

// RegisterAuth registers the account endpoints.  These exist to mint the
// Bearer tokens consumed by the mutation guard; they are harmless when the
// guard is disabled.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	g := e.Group("/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
}

// ErrorHandler returns the fallback error handler: unmatched routes become
// a JSON 404 and anything unhandled becomes a generic JSON 500 with the
// cause logged server-side only, never leaked to the client.
func ErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		var he *echo.HTTPError
		if errors.As(err, &he) {
			msg := "request failed"
			switch he.Code {
			case http.StatusNotFound:
				msg = "not found"
			case http.StatusMethodNotAllowed:
				msg = "method not allowed"
			case http.StatusInternalServerError:
				msg = "internal server error"
			}
			_ = c.JSON(he.Code, echo.Map{"error": msg})
			return
		}
		log.Printf("unhandled error on %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
		_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
}

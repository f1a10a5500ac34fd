package http

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"agrifund-backend/internal/adapter/middleware"
)

// NewRouter wires the HTTP surface. idemp may be nil when no redis is
// configured; everything under /api sits behind the AuthGate.
func NewRouter(h *Handler, lh *LoanHandler, gate *middleware.AuthGate, idemp echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger(), echomw.Recover())
	e.Validator = NewValidator()

	e.GET("/health", h.Health)

	g := e.Group("/api", gate.Middleware())
	if idemp != nil {
		g.POST("/loans", lh.SubmitLoan, idemp)
	} else {
		g.POST("/loans", lh.SubmitLoan)
	}
	g.GET("/loans", lh.ListLoans)
	g.GET("/loans/latest", lh.GetLatestLoan)
	g.PUT("/loans/latest", lh.UpdateLatestLoan)

	return e
}

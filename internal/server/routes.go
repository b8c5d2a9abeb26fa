package server

import (
	"net/http"
	"time"

	"detention/internal/errors"
	"detention/internal/logger"
	"detention/internal/pages"

	"github.com/labstack/echo/v4"
)

// HealthPath is outside every path navi redirects visitors to
const HealthPath = "/_detention/health"

// setupRoutes configures the routes. navi redirects every failed request to
// an arbitrary path, so the page route is a wildcard.
func (s *Server) setupRoutes() {
	s.echo.GET(HealthPath, s.handleHealth)
	s.echo.GET("/*", s.handleNaviError, s.validateRequest, s.fetchInstance)
}

// handleHealth reports liveness to the load balancer
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": s.config.Version,
		"uptime":  time.Since(s.startTime).Round(time.Second).String(),
	})
}

// handleNaviError renders the page for a validated, resolved request
func (s *Server) handleNaviError(c echo.Context) error {
	req := naviRequest(c)
	instance := resolvedInstance(c)

	page, err := pages.Dispatch(req.Type, instance)
	if err != nil {
		return err
	}
	if page == nil {
		// ports requests have no page of their own
		return errors.RouteNotFound(c.Request().URL.Path)
	}

	logger.GetLogger(c).WithFields(logger.Fields{
		"type":   req.Type,
		"page":   page.Name,
		"status": page.StatusCode,
	}).Debug("handleNaviError: rendering page")

	vars := pages.BuildVars(s.baseVars(), req, instance, page)
	return c.Render(page.StatusCode, page.Name, vars)
}

package server

import (
	"net/http"

	"detention/internal/errors"
	"detention/internal/logger"
	"detention/internal/pages"
	"detention/internal/types"
	"detention/internal/validation"

	"github.com/labstack/echo/v4"
)

// Keys for request-scoped values on the echo context
const (
	contextKeyRequest  = "navi_request"
	contextKeyInstance = "instance"
)

// validateRequest checks the navi query parameters and stores them on the context
func (s *Server) validateRequest(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := pages.RequestFromQuery(c.QueryParams())
		log := logger.GetLogger(c).WithFields(logger.Fields{
			"type":      req.Type,
			"shortHash": req.ShortHash,
		})
		log.Trace("validateRequest")

		if err := validation.NaviRequest(req.Type, req.ShortHash); err != nil {
			log.WithError(err).Warn("validateRequest: invalid request")
			return err
		}

		c.Set(contextKeyRequest, req)
		return next(c)
	}
}

// fetchInstance resolves the instance for every request type but signin
func (s *Server) fetchInstance(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := naviRequest(c)
		if req.Type == validation.TypeSignin {
			return next(c)
		}

		log := logger.GetLogger(c).WithField("shortHash", req.ShortHash)
		log.Trace("fetchInstance")

		instance, err := s.fetcher.FetchInstance(c.Request().Context(), req.ShortHash)
		if err != nil {
			log.WithError(err).Warn("fetchInstance: lookup failed")
			return errors.InstanceNotFound(req.ShortHash, err)
		}

		c.Set(contextKeyInstance, instance)
		return next(c)
	}
}

// ErrorHandler is the single boundary where errors become pages. Clients only
// ever see the invalid page with the base variables; details go to the log.
func (s *Server) ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := errors.StatusCode(err)
	log := logger.GetLogger(c).WithError(err).WithFields(logger.Fields{
		"status": code,
		"code":   errors.GetCode(err),
	})
	if code >= http.StatusInternalServerError {
		log.Error("Request error")
	} else {
		log.Debug("Request error")
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}

	if rerr := c.Render(code, pages.Invalid, s.baseVars()); rerr != nil {
		log.WithField("render_error", rerr.Error()).Error("Failed to render invalid page")
		_ = c.String(code, http.StatusText(code))
	}
}

func naviRequest(c echo.Context) pages.Request {
	if req, ok := c.Get(contextKeyRequest).(pages.Request); ok {
		return req
	}
	return pages.RequestFromQuery(c.QueryParams())
}

func resolvedInstance(c echo.Context) *types.Instance {
	instance, _ := c.Get(contextKeyInstance).(*types.Instance)
	return instance
}

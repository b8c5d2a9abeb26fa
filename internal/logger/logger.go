package logger

import (
	"io"
	"os"
	"time"

	"detention/internal/constants"

	"github.com/labstack/echo/v4"
	"github.com/rs/xid"
	"github.com/sirupsen/logrus"
)

// Logger is the global logger instance
var Logger *logrus.Logger

// Fields is an alias for logrus.Fields
type Fields = logrus.Fields

const (
	requestIDKey = "request_id"
	loggerKey    = "logger"
)

// init initializes the global logger
func init() {
	Logger = logrus.New()
	Logger.SetOutput(os.Stdout)
	Logger.SetLevel(logrus.InfoLevel)

	if os.Getenv("DETENTION_ENV") == "production" {
		SetFormat("json")
	} else {
		SetFormat("text")
	}
}

// SetLevel sets the logging level. Unknown levels fall back to info.
func SetLevel(level string) {
	switch level {
	case "trace":
		Logger.SetLevel(logrus.TraceLevel)
	case "debug":
		Logger.SetLevel(logrus.DebugLevel)
	case "info":
		Logger.SetLevel(logrus.InfoLevel)
	case "warn":
		Logger.SetLevel(logrus.WarnLevel)
	case "error":
		Logger.SetLevel(logrus.ErrorLevel)
	case "fatal":
		Logger.SetLevel(logrus.FatalLevel)
	default:
		Logger.SetLevel(logrus.InfoLevel)
	}
}

// SetFormat switches between the "json" and "text" formatters
func SetFormat(format string) {
	if format == "json" {
		Logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
		})
		return
	}
	Logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
}

// SetOutput redirects log output, mostly for tests
func SetOutput(w io.Writer) {
	Logger.SetOutput(w)
}

// ForModule returns a child logger tagged with the component name
func ForModule(module string) *logrus.Entry {
	return Logger.WithFields(Fields{
		"name":   constants.AppName,
		"module": module,
	})
}

// RequestLogger returns a middleware for logging HTTP requests.
// The request id is echoed back in the X-Request-ID response header.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			reqID := c.Request().Header.Get(echo.HeaderXRequestID)
			if reqID == "" {
				reqID = xid.New().String()
			}
			c.Set(requestIDKey, reqID)
			c.Response().Header().Set(echo.HeaderXRequestID, reqID)

			reqLogger := ForModule("http").WithFields(Fields{
				requestIDKey: reqID,
				"method":     c.Request().Method,
				"path":       c.Request().URL.Path,
				"ip":         c.RealIP(),
				"user_agent": c.Request().UserAgent(),
			})
			c.Set(loggerKey, reqLogger)

			reqLogger.Trace("Request started")

			err := next(c)
			if err != nil {
				// Let the error handler write the response so the logged
				// status is the one the client sees.
				c.Error(err)
			}

			latency := time.Since(start)
			status := c.Response().Status

			fields := Fields{
				"status":     status,
				"latency_ms": latency.Milliseconds(),
				"latency":    latency.String(),
			}
			if err != nil {
				fields["error"] = err.Error()
			}
			entry := reqLogger.WithFields(fields)

			switch {
			case status >= 500:
				entry.Error("Request failed")
			case status >= 400:
				entry.Warn("Request error")
			default:
				entry.Info("Request completed")
			}

			return nil
		}
	}
}

// GetLogger extracts logger from echo context
func GetLogger(c echo.Context) *logrus.Entry {
	if logger, ok := c.Get(loggerKey).(*logrus.Entry); ok {
		return logger
	}
	if reqID, ok := c.Get(requestIDKey).(string); ok {
		return ForModule("http").WithField(requestIDKey, reqID)
	}
	return ForModule("http")
}

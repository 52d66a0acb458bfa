package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"parking-booking-gateway/internal/handler/httperr"
	"parking-booking-gateway/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

const (
	msgInternal    = "Something went wrong. Please try again."
	stackLogLength = 12
)

// ErrorHandler renders the last public error when a handler recorded one
// without writing, and logs the cause of every 5xx.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		for _, e := range c.Errors {
			resp, ok := e.Meta.(httperr.Response)
			if !ok || resp.Status >= http.StatusInternalServerError {
				logger.Error("request failed",
					"request_id", GetRequestID(c),
					"path", c.Request.URL.Path,
					"error", e.Err.Error(),
					"stack", errs.StackLines(e.Err, stackLogLength))
			}
		}

		if c.Writer.Written() {
			return
		}
		for i := len(c.Errors) - 1; i >= 0; i-- {
			if resp, ok := c.Errors[i].Meta.(httperr.Response); ok && c.Errors[i].IsType(gin.ErrorTypePublic) {
				c.JSON(resp.Status, resp)
				return
			}
		}
		if len(c.Errors) == 0 {
			return
		}
		c.JSON(http.StatusInternalServerError, internalResponse())
	}
}

// CustomRecovery turns a panic into the standard error envelope.
func CustomRecovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			attrs := []any{
				"request_id", GetRequestID(c),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"panic", fmt.Sprint(rec),
			}
			if ns, ok := GetNamespace(c); ok {
				attrs = append(attrs, "namespace", ns)
			}
			logger.Error("recovered from panic", attrs...)

			c.AbortWithStatusJSON(http.StatusInternalServerError, internalResponse())
		}()
		c.Next()
	}
}

func internalResponse() httperr.Response {
	resp := httperr.Response{Status: http.StatusInternalServerError}
	resp.Error.Message = msgInternal
	return resp
}

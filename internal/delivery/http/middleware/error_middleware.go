package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-portfolio-backend/internal/delivery/http/response"
	"go-portfolio-backend/pkg/apperror"
	"go-portfolio-backend/pkg/logger"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				// Wrapped detail stays in the log; the body carries only the
				// stable title/message pair and the typed kind.
				if appErr.Err != nil {
					logger.Log.Error("request failed", "kind", string(appErr.Kind), "error", appErr.Err)
				}
				response.Error(c, appErr.Code, string(appErr.Kind), appErr.Title(), appErr.Message)
			} else {
				logger.Log.Error("unhandled error", "error", err)
				response.Error(c, http.StatusInternalServerError, string(apperror.KindTransient),
					"Failed to send email", "An unexpected error occurred. Please try again later.")
			}
		}
	}
}

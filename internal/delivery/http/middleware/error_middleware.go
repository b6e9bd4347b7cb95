package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"go-recruitment-scheduler/internal/delivery/http/response"
	"go-recruitment-scheduler/pkg/apperror"

	"github.com/gin-gonic/gin"
)

func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Code >= http.StatusInternalServerError {
				logger.Error("request failed",
					"request_id", response.RequestID(c), "path", c.FullPath(), "kind", appErr.Kind, "error", err)
			}
			response.Error(c, appErr.Code, appErr.Message, response.ErrorBody{
				Kind:      string(appErr.Kind),
				Retryable: appErr.Retryable,
				Details:   appErr.Details,
			})
			return
		}

		// Internal details stay in the log.
		logger.Error("unhandled error", "request_id", response.RequestID(c), "path", c.FullPath(), "error", err)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", response.ErrorBody{
			Kind: string(apperror.KindInternal),
		})
	}
}

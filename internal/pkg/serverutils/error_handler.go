package serverutils

import (
	"errors"

	"notepad-be/internal/pkg/apperror"
	"notepad-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler renders domain errors, fiber errors and unknown failures as the
// JSON error envelope. Unknown errors never leak their message to the client.
func ErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		var httpErr apperror.HTTPError
		if errors.As(err, &httpErr) {
			if httpErr.StatusCode() >= fiber.StatusInternalServerError {
				log.Error("HTTP", "Request failed", map[string]interface{}{
					"method": ctx.Method(),
					"path":   ctx.Path(),
					"error":  err,
				})
			}
			return ctx.Status(httpErr.StatusCode()).JSON(ErrorResponse(httpErr.Code(), httpErr.Error()))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse("HTTP_ERROR", fiberErr.Message))
		}

		log.Error("HTTP", "Unhandled error", map[string]interface{}{
			"method": ctx.Method(),
			"path":   ctx.Path(),
			"error":  err,
		})
		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse("INTERNAL_ERROR", "Internal server error"))
	}
}

// ErrorHandlerMiddleware handles errors returned further down the chain so
// route groups render the same envelope as the app-level handler.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	handle := ErrorHandler(log)
	return func(ctx *fiber.Ctx) error {
		if err := ctx.Next(); err != nil {
			return handle(ctx, err)
		}
		return nil
	}
}

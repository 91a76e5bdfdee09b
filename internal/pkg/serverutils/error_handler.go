package serverutils

import (
	"errors"

	"ai-health-assistant-be/internal/pkg/logger"
	"ai-health-assistant-be/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

// partialResulter is implemented by errors that carry work completed before
// the failure.
type partialResulter interface {
	PartialResult() interface{}
}

const errorHandlerModule = "ErrorHandler"

const internalErrorMessage = "internal server error"

// ErrorHandlerMiddleware maps errors returned by downstream handlers onto the
// HTTP error taxonomy. Server-side failures are logged with log, which may be
// nil; their details never reach the client.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		if log != nil {
			if status, _ := StatusFor(err); status >= fiber.StatusInternalServerError {
				log.Error(errorHandlerModule, "Request failed", map[string]interface{}{
					"method": ctx.Method(),
					"path":   ctx.Path(),
					"status": status,
					"error":  err.Error(),
				})
			}
		}
		return WriteError(ctx, err)
	}
}

// WriteError renders err as a BaseResponse with the matching status code.
func WriteError(ctx *fiber.Ctx, err error) error {
	status, message := StatusFor(err)

	var partial partialResulter
	if errors.As(err, &partial) {
		return ctx.Status(status).JSON(ErrorResponseWithData(status, message, partial.PartialResult()))
	}
	return ctx.Status(status).JSON(ErrorResponse(status, message))
}

// StatusFor returns the HTTP status and client message for err.
func StatusFor(err error) (int, string) {
	var (
		validationErr  *apperror.ValidationError
		notFoundErr    *apperror.NotFoundError
		providerErr    *apperror.ProviderError
		persistenceErr *apperror.PersistenceError
		fiberErr       *fiber.Error
	)

	switch {
	case errors.As(err, &validationErr):
		return fiber.StatusBadRequest, validationErr.Error()
	case errors.As(err, &notFoundErr):
		return fiber.StatusNotFound, notFoundErr.Error()
	case errors.As(err, &providerErr):
		switch providerErr.Kind {
		case apperror.KindRateLimited:
			return fiber.StatusTooManyRequests, "AI provider rate limit reached, please retry later"
		case apperror.KindTimeout:
			return fiber.StatusGatewayTimeout, "AI provider timed out"
		case apperror.KindSafetyBlocked:
			return fiber.StatusUnprocessableEntity, "AI provider declined to answer for safety reasons"
		default:
			return fiber.StatusBadGateway, "AI provider failed"
		}
	case errors.As(err, &persistenceErr):
		return fiber.StatusInternalServerError, "failed to save result"
	case errors.As(err, &fiberErr):
		return fiberErr.Code, fiberErr.Message
	default:
		return fiber.StatusInternalServerError, internalErrorMessage
	}
}

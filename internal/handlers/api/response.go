package api

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"wordcharts/internal/extractor"
	"wordcharts/internal/fetcher"
	"wordcharts/internal/pipeline"
)

// jsonSuccess returns a 200 response with data wrapped in the standard envelope.
func jsonSuccess(c fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"data":   data,
	})
}

// jsonError returns an error response with the given HTTP status code.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "error",
		"error":  message,
	})
}

// jsonAnalysisError reports a failed analysis: the status follows the error
// class, error carries the user message and code the outcome label.
func jsonAnalysisError(c fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"status": "error",
		"error":  pipeline.UserMessage(err),
		"code":   pipeline.Outcome(err),
	})
}

// statusFor maps a pipeline failure to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, fetcher.ErrUnsupportedContent), errors.Is(err, extractor.ErrNoChineseText):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, fetcher.ErrNetwork):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

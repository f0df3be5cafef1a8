package handler

import (
	"github.com/gofiber/fiber/v2"

	"orderdocs/internal/http/middleware"
)

// errorResponse is the JSON body of every error the API returns:
// {"request_id": ..., "error": {"code": ..., "message": ...}}.
type errorResponse struct {
	RequestID string    `json:"request_id"`
	Error     errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError sends the standard error envelope. code is a machine-readable
// short code (e.g. "INVALID_TYPE", "NOT_FOUND"); message must stay safe to show
// a caller, internal error detail belongs in logs.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	rid, _ := c.Locals(middleware.RequestIDLocalKey).(string)
	return c.Status(status).JSON(errorResponse{
		RequestID: rid,
		Error:     errorBody{Code: code, Message: message},
	})
}

// ErrorHandler is the app-level fiber error handler; it maps errors that escape
// the route handlers onto the same envelope so callers never see fiber's
// default plain-text errors.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}

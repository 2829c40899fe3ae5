package http

import (
	"context"
	"errors"

	"resumatic/internal/domain"

	"github.com/gofiber/fiber/v2"
)

// ErrorBody is the standard error object.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse wraps the error body. Redirect names the page the client
// should move to; Fallback names an export that still works.
type ErrorResponse struct {
	Error    ErrorBody `json:"error"`
	Redirect string    `json:"redirect,omitempty"`
	Fallback string    `json:"fallback,omitempty"`
}

func respondError(c *fiber.Ctx, status int, body ErrorResponse) error {
	return c.Status(status).JSON(body)
}

// writeError maps pipeline errors onto HTTP responses.
func (h *Handler) writeError(c *fiber.Ctx, err error) error {
	f, _ := domain.AsFailure(err)
	var (
		status int
		body   ErrorResponse
	)
	switch {
	case errors.Is(err, domain.ErrValidation):
		status = fiber.StatusUnprocessableEntity
		body.Error = ErrorBody{Code: string(domain.KindValidation), Message: f.Message, Details: f.Fields}
	case errors.Is(err, domain.ErrGeneration):
		status = fiber.StatusBadGateway
		body.Error = ErrorBody{Code: string(domain.KindGeneration), Message: f.Message}
	case errors.Is(err, domain.ErrPdfRender):
		status = fiber.StatusBadGateway
		body.Error = ErrorBody{Code: string(domain.KindPdfRender), Message: f.Message}
		body.Fallback = routeExportHTML
	case errors.Is(err, domain.ErrLocked):
		status = fiber.StatusForbidden
		body.Error = ErrorBody{Code: "locked", Message: "Please complete payment to download your resume."}
		body.Redirect = domain.StepPayment.Path()
	case errors.Is(err, domain.ErrNoResume):
		status = fiber.StatusConflict
		body.Error = ErrorBody{Code: "no_resume", Message: "No resume has been generated yet. Please create one first."}
		body.Redirect = domain.StepCreate.Path()
	case errors.Is(err, domain.ErrStaleSession):
		status = fiber.StatusConflict
		body.Error = ErrorBody{Code: "session_conflict", Message: "Your session was changed by another request. Please reload and try again."}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = fiber.StatusServiceUnavailable
		body.Error = ErrorBody{Code: "cancelled", Message: "The request was cancelled. Please try again."}
	default:
		status = fiber.StatusInternalServerError
		body.Error = ErrorBody{Code: "internal", Message: "Something went wrong. Please try again."}
	}

	h.log.Warn("http.error",
		"request_id", requestID(c),
		"method", c.Method(),
		"path", c.Path(),
		"status", status,
		"code", body.Error.Code,
		"error", err,
	)
	return respondError(c, status, body)
}

// errorHandler renders errors that escape the handlers, such as unknown
// routes, in the standard shape.
func errorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	code := "internal"
	msg := "Something went wrong. Please try again."
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
		code = "http_" + httpCode(fe.Code)
		msg = fe.Message
	}
	return respondError(c, status, ErrorResponse{Error: ErrorBody{Code: code, Message: msg}})
}

func httpCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "not_found"
	case fiber.StatusMethodNotAllowed:
		return "method_not_allowed"
	case fiber.StatusRequestEntityTooLarge:
		return "too_large"
	case fiber.StatusBadRequest:
		return "bad_request"
	}
	return "error"
}

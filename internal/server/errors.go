package server

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/hashicorp/go-hclog"
)

const (
	CodeInvalidRequest      = "invalid_request"
	CodeMissingFields       = "missing_fields"
	CodeInvalidAddress      = "invalid_address"
	CodeInvalidAmount       = "invalid_amount"
	CodeAmountAboveCap      = "amount_above_cap"
	CodeMinterNotConfigured = "minter_not_configured"
	CodeWalletCodeNotLoaded = "wallet_code_unavailable"
	CodeInternal            = "internal_error"
	CodeNotFound            = "not_found"
)

// APIError is returned by handlers and rendered by the error handler.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e APIError) Error() string {
	return e.Message
}

func badRequest(code, format string, args ...any) APIError {
	return APIError{Status: fiber.StatusBadRequest, Code: code, Message: fmt.Sprintf(format, args...)}
}

func internalError(code, format string, args ...any) APIError {
	return APIError{Status: fiber.StatusInternalServerError, Code: code, Message: fmt.Sprintf(format, args...)}
}

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
} // @name ErrorResponse

func errorHandler(logger hclog.Logger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		var (
			apiErr   APIError
			fiberErr *fiber.Error
		)

		switch {
		case errors.As(err, &apiErr):
		case errors.As(err, &fiberErr):
			apiErr = APIError{Status: fiberErr.Code, Code: CodeInvalidRequest, Message: fiberErr.Message}
			if fiberErr.Code == fiber.StatusNotFound {
				apiErr.Code = CodeNotFound
			}
		default:
			apiErr = internalError(CodeInternal, "internal server error: %s", err.Error())
		}

		msg := strings.ReplaceAll(err.Error(), "\n", "\\n")
		if apiErr.Status >= fiber.StatusInternalServerError {
			logger.Error("request failed", "path", ctx.Path(), "status", apiErr.Status, "err", msg)
		} else {
			logger.Debug("request rejected", "path", ctx.Path(), "status", apiErr.Status, "err", msg)
		}

		return ctx.Status(apiErr.Status).JSON(ErrorResponse{
			Error: apiErr.Message,
			Code:  apiErr.Code,
		})
	}
}

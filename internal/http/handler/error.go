package handler

import (
	"github.com/gofiber/fiber/v2"

	"clouddocs/internal/docstore"
	"clouddocs/internal/http/middleware"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// RemediationURL is set only for INDEX_REQUIRED so the client can offer
	// a "create index, then retry" affordance.
	RemediationURL string `json:"remediation_url,omitempty"`
}

// requestIDFromCtx extracts the request_id stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking
// internal error details.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorPayload{
		RequestID: requestIDFromCtx(c),
		Error:     errorEnvelope{Code: code, Message: message},
	})
}

// writeStoreError maps a typed store failure onto a status, code, and safe
// message. The IndexRequired remediation link travels through unchanged.
func writeStoreError(c *fiber.Ctx, err error) error {
	kind := docstore.KindOf(err)
	status, code, message := storeErrorResponse(kind)

	payload := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error:     errorEnvelope{Code: code, Message: message},
	}
	if kind == docstore.KindIndexRequired {
		payload.Error.RemediationURL = docstore.RemediationURLOf(err)
	}
	return c.Status(status).JSON(payload)
}

func storeErrorResponse(kind docstore.Kind) (status int, code, message string) {
	switch kind {
	case docstore.KindNotAuthenticated:
		return fiber.StatusUnauthorized, "NOT_AUTHENTICATED", "sign in to manage documents"
	case docstore.KindIndexRequired:
		return fiber.StatusConflict, "INDEX_REQUIRED", "the query needs a backend index; create it, then retry"
	case docstore.KindNetwork:
		return fiber.StatusServiceUnavailable, "NETWORK_ERROR", "backend unavailable, retry manually"
	case docstore.KindNotFound:
		return fiber.StatusNotFound, "NOT_FOUND", "document not found"
	case docstore.KindNotAuthorized:
		return fiber.StatusForbidden, "NOT_AUTHORIZED", "document belongs to another user"
	case docstore.KindPermissionDenied:
		return fiber.StatusForbidden, "PERMISSION_DENIED", "storage rejected the upload"
	case docstore.KindCancelled:
		return fiber.StatusRequestTimeout, "CANCELLED", "operation was cancelled"
	case docstore.KindMalformedRecord:
		return fiber.StatusBadGateway, "MALFORMED_RECORD", "backend returned an invalid record"
	case docstore.KindPartialDelete:
		return fiber.StatusInternalServerError, "PARTIAL_DELETE_FAILURE", "file content was removed but its record remains"
	default:
		return fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error"
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error
// responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusUnauthorized:
			return writeError(c, status, "NOT_AUTHENTICATED", "sign in to manage documents")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}

package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/shelf-service/cmd/api/book"
)

type ErrorBody struct {
	Code       int    `json:"error_code"`
	MessageKey string `json:"message_key"`
	Message    string `json:"message"`
	Detail     string `json:"detail,omitempty"`
}

func statusFor(kind book.Kind) int {
	switch kind {
	case book.KindValidation:
		return http.StatusBadRequest
	case book.KindNotFound:
		return http.StatusNotFound
	case book.KindConflict:
		return http.StatusConflict
	case book.KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

/* Writes the error response matching err. Errors outside the catalog become a store failure. */
func (h *BookHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var errR book.ErrResponse
	detail := ""
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled), r.Context().Err() != nil:
		// Drivers do not always wrap the context error when they cancel a statement.
		errR = book.ErrResponseRequestTimeout
	case errors.As(err, &errR):
	default:
		errR = book.ErrResponseFromRepository
		detail = err.Error()
	}

	status := statusFor(errR.Kind)
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	} else {
		h.logger.InfoContext(r.Context(), "request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	}

	h.responseJSON(w, status, ErrorBody{
		Code:       errR.Code,
		MessageKey: errR.Key,
		Message:    h.messages.Text(errR.Key),
		Detail:     detail,
	})
}

/* Rejects a body that could not be decoded, keeping the decoder message as detail. */
func (h *BookHandler) handleInvalidJSON(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.InfoContext(r.Context(), "invalid json body", "method", r.Method, "path", r.URL.Path, "error", err)
	h.responseJSON(w, http.StatusBadRequest, ErrorBody{
		Code:       book.ErrResponseEntryInvalidJSON.Code,
		MessageKey: book.ErrResponseEntryInvalidJSON.Key,
		Message:    h.messages.Text(book.ErrResponseEntryInvalidJSON.Key),
		Detail:     err.Error(),
	})
}

package rest

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	domainerrors "github.com/leengari/jsonserver/internal/domain/errors"
)

// internalMessage is the only detail a client sees for unexpected failures
const internalMessage = "Something Went Wrong"

// Response is the body of every non-list reply
type Response struct {
	Message string `json:"message"`
	ID      *int64 `json:"id,omitempty"`
}

// BodyError means a request body was not a JSON object
type BodyError struct {
	Err error
}

func (e *BodyError) Error() string {
	return fmt.Sprintf("invalid request body: %v", e.Err)
}

func (e *BodyError) Unwrap() error {
	return e.Err
}

// statusOf maps an operation error to its HTTP status and client message
func statusOf(err error) (int, string) {
	var (
		coercion   *domainerrors.TypeCoercionError
		validation *domainerrors.ValidationError
		body       *BodyError
		notFound   *domainerrors.NotFoundError
		noTable    *domainerrors.TableNotFoundError
	)
	switch {
	case errors.As(err, &coercion), errors.As(err, &validation), errors.As(err, &body):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.As(err, &notFound), errors.As(err, &noTable):
		return http.StatusNotFound, err.Error()
	default:
		return http.StatusInternalServerError, internalMessage
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusOf(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
	}
	h.render.JSON(w, status, Response{Message: msg})
}

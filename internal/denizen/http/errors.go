package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/kotoed/denizen/internal/denizen/service"
	"github.com/kotoed/denizen/pkg/expect"
	"github.com/kotoed/denizen/pkg/profilesdk"
)

// writeServiceError maps service errors onto the wire error envelope.
func writeServiceError(w http.ResponseWriter, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		var ef *expect.ExpectationFailed
		if errors.As(err, &ef) {
			profilesdk.ErrInvalidRequest.WithDescription(ef.Message).WriteError(w)
			return
		}
		profilesdk.ErrInvalidRequest.WriteError(w)
	case errors.Is(err, service.ErrDenizenNotFound):
		profilesdk.ErrNotFound.WriteError(w)
	case errors.Is(err, service.ErrUsernameTaken):
		profilesdk.ErrAlreadyExists.WriteError(w)
	case errors.Is(err, service.ErrIncorrectPassword):
		profilesdk.ErrIncorrectOldPassword.WriteError(w)
	default:
		log.Error("request failed", slog.Any("err", err))
		profilesdk.ErrServerError.WriteError(w)
	}
}

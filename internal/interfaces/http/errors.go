package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dverdu/albaranes-api/internal/application/dto"
	"github.com/dverdu/albaranes-api/internal/domain"
	"github.com/dverdu/albaranes-api/internal/infrastructure/slack"
	"github.com/dverdu/albaranes-api/pkg/logger"
)

// ErrorResponder traduce los errores de dominio a respuestas HTTP en un único
// sitio. Los handlers devuelven el error tal cual y la clasificación vive aquí.
// Los 5xx se registran y se reportan a Slack sin bloquear la respuesta.
type ErrorResponder struct {
	log   *logger.Logger
	slack *slack.Notifier
}

// NewErrorResponder construye el traductor de errores.
func NewErrorResponder(log *logger.Logger, notifier *slack.Notifier) *ErrorResponder {
	return &ErrorResponder{log: log, slack: notifier}
}

// Respond clasifica el error y escribe la respuesta.
func (r *ErrorResponder) Respond(c *fiber.Ctx, err error) error {
	status, code := classify(err)
	if status >= fiber.StatusInternalServerError {
		r.log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
		r.slack.NotifyError(c.Method(), c.Path(), status, err)
		// El detalle interno no sale en la respuesta
		return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: "error interno"})
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

// RespondWithAttempts como Respond pero adjunta los intentos restantes del
// código de un solo uso cuando el fallo es por código incorrecto.
func (r *ErrorResponder) RespondWithAttempts(c *fiber.Ctx, attemptsLeft int, err error) error {
	if !errors.Is(err, domain.ErrCodeMismatch) {
		return r.Respond(c, err)
	}
	status, code := classify(err)
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error(), AttemptsLeft: &attemptsLeft})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrSignatureRequired):
		return fiber.StatusBadRequest, "SIGNATURE_REQUIRED"
	case errors.Is(err, domain.ErrAlreadySigned):
		return fiber.StatusBadRequest, "ALREADY_SIGNED"
	case errors.Is(err, domain.ErrNoteSigned):
		return fiber.StatusBadRequest, "NOTE_SIGNED"
	case errors.Is(err, domain.ErrAlreadyVerified):
		return fiber.StatusBadRequest, "ALREADY_VERIFIED"
	case errors.Is(err, domain.ErrCodeExpired):
		return fiber.StatusBadRequest, "CODE_EXPIRED"
	case errors.Is(err, domain.ErrCodeMismatch):
		return fiber.StatusBadRequest, "CODE_MISMATCH"
	case errors.Is(err, domain.ErrEmailNotVerified):
		return fiber.StatusUnauthorized, "EMAIL_NOT_VERIFIED"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict, "EMAIL_EXISTS"
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

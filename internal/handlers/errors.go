package handlers

import (
	"errors"
	"log/slog"

	"github.com/Dhaval523/WorkJunction/internal/apperr"
	"github.com/Dhaval523/WorkJunction/internal/dto"
	"github.com/Dhaval523/WorkJunction/internal/session"
	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ErrorHandler renders every error returned by a handler as
// {"error": true, "message": ...}. Server-side failures are logged and
// reported, and their cause never reaches the client.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var appErr *apperr.Error
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &appErr):
		code = appErr.Kind.Status()
		message = appErr.Message
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
	}

	if code >= fiber.StatusInternalServerError {
		attrs := []any{
			"method", c.Method(),
			"path", c.Path(),
			"error", err.Error(),
		}
		if rid, ok := c.Locals("requestid").(string); ok {
			attrs = append(attrs, "request_id", rid)
		}
		if uid, uerr := session.UserID(c); uerr == nil {
			attrs = append(attrs, "user_id", uid.String())
		}
		slog.Error("request failed", attrs...)

		if hub := sentryfiber.GetHubFromContext(c); hub != nil {
			hub.WithScope(func(scope *sentry.Scope) {
				scope.SetTag("path", c.Path())
				hub.CaptureException(err)
			})
		}

		// upstream messages name the failing step only
		if appErr == nil || appErr.Kind != apperr.KindUpstream {
			message = "Internal server error"
		}
	}

	return c.Status(code).JSON(dto.ErrorResponse{Error: true, Message: message})
}

// parseBody decodes the JSON body into out.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperr.Validation("Invalid request body")
	}
	return nil
}

// callerID returns the authenticated user id or a 401.
func callerID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := session.UserID(c)
	if err != nil {
		return uuid.Nil, apperr.Unauthorized("Unauthorized")
	}
	return id, nil
}

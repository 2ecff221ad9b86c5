package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/park285/Cheese-chesscore/internal/board"
	"github.com/park285/Cheese-chesscore/internal/game"
	"github.com/park285/Cheese-chesscore/internal/obslog"
	"github.com/park285/Cheese-chesscore/pkg/chessdto"
)

// badRequest marks request-shape problems found before the core is reached.
type badRequest string

func (e badRequest) Error() string { return string(e) }

// writeError maps err onto a status and DomainError body.
func writeError(c *fiber.Ctx, err error) error {
	status, body := classify(err)
	if status >= fiber.StatusInternalServerError && status != fiber.StatusServiceUnavailable {
		obslog.L().Error("http_handler_error", zap.String("path", c.Path()), zap.Error(err))
	}
	return c.Status(status).JSON(body)
}

func classify(err error) (int, chessdto.DomainError) {
	var (
		mse *board.MalformedStateError
		ime *board.IllegalMoveError
		br  badRequest
	)
	switch {
	case errors.As(err, &mse):
		return fiber.StatusBadRequest, chessdto.DomainError{Code: chessdto.CodeMalformedState, Message: err.Error(), Reason: mse.Reason}
	case errors.As(err, &ime):
		return fiber.StatusUnprocessableEntity, chessdto.DomainError{Code: chessdto.CodeIllegalMove, Message: err.Error(), Reason: string(ime.Reason)}
	case errors.As(err, &br):
		return fiber.StatusBadRequest, chessdto.DomainError{Code: chessdto.CodeBadRequest, Message: err.Error()}
	case errors.Is(err, game.ErrInvalidMove):
		return fiber.StatusBadRequest, chessdto.DomainError{Code: chessdto.CodeInvalidMove, Message: err.Error()}
	case errors.Is(err, game.ErrGameNotFound):
		return fiber.StatusNotFound, chessdto.DomainError{Code: chessdto.CodeNotFound, Message: err.Error()}
	case errors.Is(err, game.ErrConcurrentUpdate):
		return fiber.StatusConflict, chessdto.DomainError{Code: chessdto.CodeConflict, Message: err.Error(), Retryable: true}
	case errors.Is(err, game.ErrGameFinished):
		return fiber.StatusConflict, chessdto.DomainError{Code: chessdto.CodeGameFinished, Message: err.Error()}
	case errors.Is(err, game.ErrStoreDisabled):
		return fiber.StatusServiceUnavailable, chessdto.DomainError{Code: chessdto.CodeUnavailable, Message: err.Error()}
	}
	return fiber.StatusInternalServerError, chessdto.DomainError{Code: chessdto.CodeInternal, Message: "internal error"}
}

// fiberErrorHandler renders framework errors (unknown route, oversized
// body, malformed JSON) in the same shape as handler errors.
func fiberErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := chessdto.CodeBadRequest
		switch fe.Code {
		case fiber.StatusNotFound:
			code = chessdto.CodeNotFound
		case fiber.StatusInternalServerError:
			code = chessdto.CodeInternal
		}
		return c.Status(fe.Code).JSON(chessdto.DomainError{Code: code, Message: fe.Message})
	}
	return writeError(c, err)
}

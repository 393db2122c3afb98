package apperr

import (
	"context"
	"errors"

	"github.com/caucaconecta/caucaconecta/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
)

// Handle logs an error that is not returned to any caller. Validation errors
// are expected user mistakes and logged at warn level.
func Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}

	logger := ctxlog.From(ctx)
	if ve, ok := model.AsValidationError(err); ok {
		logger.Warn("validation error", "error", err, "fields", ve.Fields)
		return
	}
	if errors.Is(err, context.Canceled) {
		logger.Debug("operation cancelled", "error", err)
		return
	}
	logger.Error("application error", "error", err)
}

package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/invoicedash/internal/common"
	"github.com/dmitrijs2005/invoicedash/internal/logging"
)

// internalError logs err and hides it behind common.ErrorInternal. Context
// cancellation passes through untouched so callers can tell it apart.
func internalError(ctx context.Context, log logging.Logger, msg string, err error, args ...any) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	log.Error(ctx, msg, append(args, "error", err)...)
	return common.ErrorInternal
}

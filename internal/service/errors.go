package service

import (
	"errors"
	"strings"

	"github.com/lib/pq"

	"github.com/ignatzorin/hvacsite/internal/pkg/apperror"
)

// gatewayError переводит ошибку Gateway в UpstreamError.
// Текст PostgreSQL показывается как есть, сетевые и прочие ошибки получают fallback.
func gatewayError(err error, fallback string) error {
	if err == nil {
		return nil
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && strings.TrimSpace(pqErr.Message) != "" {
		return apperror.Upstream(err, pqErr.Message)
	}
	return apperror.Upstream(err, fallback)
}

package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/user-locations/internal/domain"
)

// LocationTransformer implements Transformer by flattening each user's location.
type LocationTransformer struct {
	logger *slog.Logger
}

// NewTransformer creates a LocationTransformer.
func NewTransformer(logger *slog.Logger) *LocationTransformer {
	return &LocationTransformer{logger: logger}
}

// Transform flattens every raw user. The whole batch fails on the first malformed record.
func (t *LocationTransformer) Transform(_ context.Context, raws []domain.RawUser) ([]domain.UserRecord, error) {
	records, err := domain.FlattenAll(raws)
	if err != nil {
		return nil, err
	}
	t.logger.Debug("flattened users", "count", len(records))
	return records, nil
}

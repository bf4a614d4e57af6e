package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/user-locations/internal/domain"
	"github.com/couchcryptid/user-locations/internal/observability"
)

// Extractor fetches one batch of raw users from the source.
type Extractor interface {
	FetchUsers(ctx context.Context) ([]domain.RawUser, error)
}

// Transformer converts raw users into flattened records.
type Transformer interface {
	Transform(ctx context.Context, raws []domain.RawUser) ([]domain.UserRecord, error)
}

// BatchLoader receives a loaded batch.
type BatchLoader interface {
	LoadBatch(ctx context.Context, batch domain.Batch) error
}

// Pipeline performs the initial extract-transform-load into the view.
// Run does its work exactly once per Pipeline; later calls return the first result.
type Pipeline struct {
	extractor   Extractor
	transformer Transformer
	view        BatchLoader
	sinks       []BatchLoader
	logger      *slog.Logger
	metrics     *observability.Metrics

	once sync.Once
	err  error
	done atomic.Bool
}

// New creates a Pipeline that loads into view and then into any optional sinks.
func New(e Extractor, t Transformer, view BatchLoader, logger *slog.Logger, metrics *observability.Metrics, sinks ...BatchLoader) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		view:        view,
		sinks:       sinks,
		logger:      logger,
		metrics:     metrics,
	}
}

// CheckReadiness returns nil once the initial load has finished, whether or
// not it produced any records.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.done.Load() {
		return errors.New("initial load has not completed")
	}
	return nil
}

// Run performs the initial load. A failed fetch or flatten is logged and
// returned; the view keeps its empty initial state.
func (p *Pipeline) Run(ctx context.Context) error {
	p.once.Do(func() {
		p.err = p.load(ctx)
		p.done.Store(true)
		p.metrics.LoadCompleted.Set(1)
	})
	return p.err
}

func (p *Pipeline) load(ctx context.Context) error {
	start := time.Now()
	p.logger.Info("initial load started")

	raws, err := p.extractor.FetchUsers(ctx)
	if err != nil {
		p.logger.Error("fetch users failed, view stays empty", "error", err)
		p.metrics.LoadFailures.WithLabelValues("fetch").Inc()
		return fmt.Errorf("fetch users: %w", err)
	}

	records, err := p.transformer.Transform(ctx, raws)
	if err != nil {
		p.logger.Error("flatten users failed, view stays empty", "error", err, "fetched", len(raws))
		p.metrics.LoadFailures.WithLabelValues("flatten").Inc()
		return fmt.Errorf("flatten users: %w", err)
	}

	batch := domain.NewBatch(records)
	if err := p.view.LoadBatch(ctx, batch); err != nil {
		return fmt.Errorf("load view: %w", err)
	}
	p.metrics.RecordsLoaded.Set(float64(len(records)))

	for _, sink := range p.sinks {
		if err := sink.LoadBatch(ctx, batch); err != nil {
			p.logger.Warn("export batch failed", "error", err, "batch_id", batch.ID)
			p.metrics.LoadFailures.WithLabelValues("export").Inc()
		}
	}

	p.logger.Info("initial load finished",
		"batch_id", batch.ID,
		"records", len(records),
		"duration", time.Since(start),
	)
	return nil
}

package batch

import (
	"context"
	"time"

	"github.com/povarna/generative-ai-agents/legal-advisor/internal/models"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type Executor interface {
	Execute(ctx context.Context, req models.AssessmentRequest) models.AssessmentResult
}

// Processor runs records through the executor with a bounded worker pool.
// Results arrive in completion order.
type Processor struct {
	executor Executor
	workers  int
	logger   *zerolog.Logger
}

func NewProcessor(executor Executor, workers int, logger *zerolog.Logger) *Processor {
	if workers <= 0 {
		workers = 1
	}
	return &Processor{
		executor: executor,
		workers:  workers,
		logger:   logger,
	}
}

func (p *Processor) Process(ctx context.Context, records []InputRecord) <-chan models.AssessmentResult {
	out := make(chan models.AssessmentResult, p.workers)

	go func() {
		defer close(out)

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(p.workers)

		for _, record := range records {
			if record.Error != nil {
				p.logger.Warn().Err(record.Error).Int("line", record.LineNumber).Msg("Skipping invalid record")
				continue
			}
			if gctx.Err() != nil {
				break
			}

			req := normalize(record.Request)
			g.Go(func() error {
				result := p.executor.Execute(gctx, req)
				select {
				case out <- result:
					return nil
				case <-gctx.Done():
					return gctx.Err()
				}
			})
		}

		if err := g.Wait(); err != nil {
			p.logger.Warn().Err(err).Msg("Batch processing interrupted")
		}
	}()

	return out
}

func normalize(req Request) models.AssessmentRequest {
	return models.AssessmentRequest{
		RequestID: req.EventID,
		SessionID: req.SessionID,
		Text:      req.Specification,
		CreatedAt: time.Now(),
	}
}

package risk

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/medilabo/medilabo/pkg/diabetesrisk"
)

const DefaultBatchConcurrency = 8

// Service evaluates diabetes risk and records metrics for every outcome.
type Service struct {
	evaluator   *diabetesrisk.Evaluator
	concurrency int
	logger      zerolog.Logger
}

func NewService(evaluator *diabetesrisk.Evaluator, concurrency int, logger zerolog.Logger) *Service {
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}
	return &Service{evaluator: evaluator, concurrency: concurrency, logger: logger}
}

// Evaluate classifies one patient.
func (s *Service) Evaluate(ctx context.Context, patientID string) (diabetesrisk.Assessment, error) {
	start := time.Now()
	a, err := s.evaluator.Evaluate(ctx, patientID)
	evaluationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		// A batch sibling's failure cancels ctx; only the original failure is counted.
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			s.logger.Debug().Str("patient_id", patientID).Msg("risk evaluation cancelled")
			return a, err
		}
		evaluationErrors.Inc()
		s.logger.Error().Err(err).Str("patient_id", patientID).Msg("risk evaluation failed")
		return a, err
	}
	evaluationsTotal.WithLabelValues(a.Tier.Code()).Inc()
	if a.Tier != diabetesrisk.TierPatientNotFound {
		evidenceCount.Observe(float64(a.Evidence))
	}
	return a, nil
}

// EvaluateBatch classifies several patients concurrently. Results keep the
// order of patientIDs. The first failing evaluation cancels the rest.
func (s *Service) EvaluateBatch(ctx context.Context, patientIDs []string) ([]diabetesrisk.Assessment, error) {
	results := make([]diabetesrisk.Assessment, len(patientIDs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, id := range patientIDs {
		i, id := i, id
		g.Go(func() error {
			a, err := s.Evaluate(gCtx, id)
			if err != nil {
				return fmt.Errorf("evaluate patient %s: %w", id, err)
			}
			results[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

package prober

import (
	"context"
	"errors"
	"fmt"

	"github.com/samvad-hq/placeholder-client/internal/domain"
	"github.com/samvad-hq/placeholder-client/internal/logger"
	"github.com/samvad-hq/placeholder-client/pkg/checks"
	"github.com/samvad-hq/placeholder-client/pkg/publishers"
)

// Summary counts what one pass over a suite did.
type Summary struct {
	Total     int
	Passed    int
	Failed    int
	Changed   int
	Published int
	Results   []domain.CheckResult
}

// Service runs suites, tracks status transitions and publishes changes.
type Service struct {
	runner    *Runner
	publisher EventPublisher
	store     StatusStore
	log       logger.Logger
}

// NewService wires a prober. publisher and store are optional.
func NewService(runner *Runner, publisher EventPublisher, log logger.Logger, store StatusStore) *Service {
	if log == nil {
		log = &logger.NopLogger{}
	}
	return &Service{
		runner:    runner,
		publisher: publisher,
		store:     store,
		log:       log,
	}
}

// Run executes every check once. Failing checks are reported in the
// Summary; the returned error only covers store and publish problems.
func (s *Service) Run(ctx context.Context, suite []checks.Check) (Summary, error) {
	if s == nil || s.runner == nil {
		return Summary{}, fmt.Errorf("prober service is not initialized")
	}
	if len(suite) == 0 {
		return Summary{}, fmt.Errorf("no checks configured for probing")
	}

	summary := Summary{Results: make([]domain.CheckResult, 0, len(suite))}
	var errs []error

	for _, check := range suite {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		res := s.runner.Run(ctx, check)
		summary.Total++
		summary.Results = append(summary.Results, res)
		if res.Passed() {
			summary.Passed++
		} else {
			summary.Failed++
		}
		s.logResult(res)

		changed, published, err := s.track(ctx, res)
		if changed {
			summary.Changed++
		}
		if published {
			summary.Published++
		}
		if err != nil {
			errs = append(errs, err)
			s.log.ErrorObj("check tracking failed", "check_error", map[string]any{
				"check_id": res.CheckID,
				"error":    err.Error(),
			})
		}
	}

	return summary, errors.Join(errs...)
}

// track compares res with the stored status, publishes on change and
// records the new status. A failed publish leaves the old status in place
// so the change is retried on the next pass.
func (s *Service) track(ctx context.Context, res domain.CheckResult) (changed, published bool, err error) {
	var (
		prev string
		seen bool
	)
	if s.store != nil {
		prev, seen, err = s.store.LastStatus(res.CheckID)
		if err != nil {
			return false, false, fmt.Errorf("read status for %s: %w", res.CheckID, err)
		}
	}

	changed = !seen || prev != res.Status
	if !changed {
		return false, false, nil
	}

	if s.publisher != nil {
		n, perr := s.publisher.Publish(ctx, publishers.NewEvent(res, prev))
		published = n > 0
		if perr != nil {
			return changed, published, fmt.Errorf("publish %s: %w", res.CheckID, perr)
		}
	}

	if s.store != nil {
		if rerr := s.store.RecordStatus(res.CheckID, res.Status); rerr != nil {
			return changed, published, fmt.Errorf("record status for %s: %w", res.CheckID, rerr)
		}
	}
	return changed, published, nil
}

func (s *Service) logResult(res domain.CheckResult) {
	fields := map[string]any{
		"check_id":    res.CheckID,
		"operation":   res.Operation,
		"status_code": res.StatusCode,
		"elapsed_ms":  res.Elapsed.Milliseconds(),
	}
	if res.Passed() {
		s.log.InfoObj("check passed", "check_result", fields)
		return
	}
	fields["failures"] = res.Failures
	if res.Error != "" {
		fields["error"] = res.Error
	}
	if res.Detail != "" {
		fields["detail"] = res.Detail
	}
	s.log.WarnObj("check failed", "check_result", fields)
}

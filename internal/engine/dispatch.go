package engine

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wyng-health/billaudit/internal/model"
)

// dispatch runs every catalog rule against the shared input. Each rule writes
// into its own result slot, so no locking is needed; a panicking rule is
// logged and contributes zero detections (fail-open per rule).
func (e *Engine) dispatch(ctx context.Context, in *Input) [][]model.Detection {
	rules := Catalog()
	results := make([][]model.Detection, len(rules))

	g, _ := errgroup.WithContext(ctx)
	for i, r := range rules {
		g.Go(func() error {
			results[i] = evalSafe(r, in)
			return nil
		})
	}
	// Evaluators never return errors; failures are absorbed per rule.
	_ = g.Wait()

	return results
}

// evalSafe runs one evaluator, recovering from panics and stamping the
// rule's fixed key and severity onto every detection it produced.
func evalSafe(r Rule, in *Input) (dets []model.Detection) {
	defer func() {
		if p := recover(); p != nil {
			zap.L().Error("engine: rule evaluator failed",
				zap.String("rule_key", r.Key),
				zap.Any("panic", p),
			)
			dets = nil
		}
	}()

	dets = r.Evaluate(in)
	for i := range dets {
		dets[i].RuleKey = r.Key
		dets[i].Severity = r.Severity
	}
	return dets
}

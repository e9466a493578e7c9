// Package engine implements the billing-compliance detection engine: a fixed
// catalog of independent rule evaluators run against a priced bill/EOB
// summary, producing deterministic, ordered detections.
package engine

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/wyng-health/billaudit/internal/config"
	"github.com/wyng-health/billaudit/internal/model"
	"github.com/wyng-health/billaudit/internal/normalize"
	"github.com/wyng-health/billaudit/internal/refdata"
)

// Precondition failures surfaced to the caller. Everything else is handled
// inside the engine (skipped lines, fail-open rules).
var (
	ErrNilSummary    = eris.New("engine: nil priced summary")
	ErrMissingTotals = eris.New("engine: priced summary has no totals")
)

// Input is the immutable evaluation context shared by every rule in one run.
// Lines is a normalized copy of the caller's line array in the same order, so
// indices emitted in evidence always identify positions in the caller's input.
type Input struct {
	Summary *model.PricedSummary
	Lines   []model.PricedLine
	Cfg     config.EngineConfig
	Tables  *refdata.Tables
}

// Engine evaluates the rule catalog. It holds only read-only configuration
// and reference tables and is safe for concurrent use across cases.
type Engine struct {
	cfg    config.EngineConfig
	tables *refdata.Tables
}

// New builds an Engine. A nil tables argument loads the embedded defaults.
func New(cfg config.EngineConfig, tables *refdata.Tables) (*Engine, error) {
	if err := config.ValidateEngineConfig(cfg); err != nil {
		return nil, err
	}
	if tables == nil {
		t, err := refdata.Default()
		if err != nil {
			return nil, err
		}
		tables = t
	}
	return &Engine{cfg: cfg, tables: tables}, nil
}

// Run evaluates every rule against the summary and returns the aggregated,
// deterministically ordered detections. The engine performs no I/O and keeps
// no state between invocations: identical input yields identical output.
func (e *Engine) Run(ctx context.Context, summary *model.PricedSummary) ([]model.Detection, error) {
	if summary == nil {
		return nil, ErrNilSummary
	}
	if summary.Totals == nil {
		return nil, ErrMissingTotals
	}

	in := &Input{
		Summary: summary,
		Lines:   normalize.Lines(summary.Lines),
		Cfg:     e.cfg,
		Tables:  e.tables,
	}

	perRule := e.dispatch(ctx, in)
	return aggregate(perRule), nil
}

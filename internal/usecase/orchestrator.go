package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/thesportspage/backend/internal/domain/report"
	"github.com/thesportspage/backend/internal/platform/logging"
)

// dateLabelLayout is the human heading printed at the top of the page.
const dateLabelLayout = "Monday, January 02, 2006"

// Adapter is one league's fetch surface. FetchAll never returns an error;
// partial upstream failures degrade to empty shapes inside the adapter.
type Adapter interface {
	Code() string
	FetchAll(ctx context.Context, refDate time.Time) report.LeagueReport
}

// Orchestrator fans a run out across every configured league adapter and
// assembles the single output document. League ordering in the document
// follows the configured adapter order, never completion order.
type Orchestrator struct {
	adapters    []Adapter
	workerCount int
	logger      *logging.Logger
	loc         *time.Location
	now         func() time.Time
}

type OrchestratorConfig struct {
	Adapters    []Adapter
	WorkerCount int
	Logger      *logging.Logger
	Location    *time.Location
}

func NewOrchestrator(cfg OrchestratorConfig) *Orchestrator {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	workerCount := cfg.WorkerCount
	if workerCount <= 0 {
		workerCount = len(cfg.Adapters)
	}
	if workerCount <= 0 {
		workerCount = 1
	}
	return &Orchestrator{
		adapters:    cfg.Adapters,
		workerCount: workerCount,
		logger:      logger,
		loc:         loc,
		now:         time.Now,
	}
}

// RunOnce fetches every league concurrently and assembles the run document.
// One league's total failure becomes an error-carrying empty report; it never
// aborts the run.
func (o *Orchestrator) RunOnce(ctx context.Context, refDate time.Time) (report.RunDocument, error) {
	start := time.Now()
	o.logger.InfoContext(ctx, "run started",
		"reference_date", refDate.Format("2006-01-02"), "leagues", len(o.adapters))

	pool, err := ants.NewPool(o.workerCount)
	if err != nil {
		return report.RunDocument{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	// Slot-indexed fan-in keeps assembly independent of completion order.
	results := make([]report.LeagueReport, len(o.adapters))

	var workers sync.WaitGroup
	for i, adapter := range o.adapters {
		i, adapter := i, adapter
		workers.Add(1)
		task := func() {
			defer workers.Done()
			results[i] = o.fetchLeague(ctx, adapter, refDate)
		}
		if err := pool.Submit(task); err != nil {
			workers.Done()
			return report.RunDocument{}, fmt.Errorf("submit league fetch: %w", err)
		}
	}
	workers.Wait()

	doc := report.RunDocument{
		GeneratedAt: o.now().In(o.loc),
		DateLabel:   o.now().In(o.loc).Format(dateLabelLayout),
		Leagues:     make(map[string]report.LeagueReport, len(o.adapters)),
		Order:       make([]string, 0, len(o.adapters)),
	}
	for i, adapter := range o.adapters {
		league := results[i]
		league.Normalize()
		doc.Leagues[adapter.Code()] = league
		doc.Order = append(doc.Order, adapter.Code())
	}

	o.logger.InfoContext(ctx, "run finished", "duration_ms", time.Since(start).Milliseconds())
	return doc, nil
}

// fetchLeague shields the run from a misbehaving adapter. An escaped panic
// becomes a league-level error report instead of a crashed process.
func (o *Orchestrator) fetchLeague(ctx context.Context, adapter Adapter, refDate time.Time) (out report.LeagueReport) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.ErrorContext(ctx, "league adapter panicked", "league", adapter.Code(), "panic", r)
			out = report.ErrorLeagueReport(fmt.Sprintf("adapter failure: %v", r))
		}
	}()

	start := time.Now()
	out = adapter.FetchAll(ctx, refDate)
	o.logger.InfoContext(ctx, "league fetched",
		"league", adapter.Code(), "duration_ms", time.Since(start).Milliseconds())
	return out
}

package main

import (
	"context"
	"os"
	"time"

	"github.com/thesportspage/backend/external/espn"
	"github.com/thesportspage/backend/external/fbdata"
	"github.com/thesportspage/backend/external/mlb"
	"github.com/thesportspage/backend/external/nhl"
	"github.com/thesportspage/backend/internal/artifact"
	"github.com/thesportspage/backend/internal/config"
	"github.com/thesportspage/backend/internal/platform/httpjson"
	"github.com/thesportspage/backend/internal/platform/logging"
	"github.com/thesportspage/backend/internal/platform/resilience"
	"github.com/thesportspage/backend/internal/usecase"
)

// cdnHeaders mimic a browser; the NBA CDN refuses anonymous clients.
var cdnHeaders = map[string]string{
	"User-Agent": "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36",
	"Accept":     "application/json",
	"Referer":    "https://www.nba.com/",
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer logger.Sync()

	ctx := context.Background()

	breaker := resilience.CircuitBreakerConfig{
		Enabled:          cfg.BreakerEnabled,
		FailureThreshold: cfg.BreakerFailureCount,
		OpenTimeout:      cfg.BreakerOpenTimeout,
	}
	newClient := func(headers map[string]string, redact []string) *httpjson.Client {
		return httpjson.NewClient(httpjson.ClientConfig{
			Timeout:        cfg.UpstreamTimeout,
			MaxRetries:     cfg.UpstreamMaxRetries,
			Headers:        headers,
			RedactValues:   redact,
			Logger:         logger,
			CircuitBreaker: breaker,
		})
	}

	mlbAdapter := mlb.NewAdapter(mlb.AdapterConfig{
		BaseURL:      cfg.MLBBaseURL,
		Client:       newClient(nil, nil),
		Logger:       logger,
		Location:     cfg.Location,
		ScheduleDays: cfg.ScheduleDays,
	})
	nhlAdapter := nhl.NewAdapter(nhl.AdapterConfig{
		BaseURL:      cfg.NHLBaseURL,
		Client:       newClient(nil, nil),
		Logger:       logger,
		Location:     cfg.Location,
		ScheduleDays: cfg.ScheduleDays,
	})
	nbaAdapter := espn.NewAdapter(espn.AdapterConfig{
		BaseURL:      cfg.NBABaseURL,
		CoreBaseURL:  cfg.NBACoreBaseURL,
		CDNBaseURL:   cfg.NBACDNBaseURL,
		ScoreSources: cfg.NBAScoreSources,
		Client:       newClient(nil, nil),
		CDNClient:    newClient(cdnHeaders, nil),
		Logger:       logger,
		Location:     cfg.Location,
		ScheduleDays: cfg.ScheduleDays,
	})
	var eplHeaders map[string]string
	if cfg.FootballDataToken != "" {
		eplHeaders = map[string]string{"X-Auth-Token": cfg.FootballDataToken}
	}
	eplAdapter := fbdata.NewAdapter(fbdata.AdapterConfig{
		BaseURL:       cfg.FootballDataBaseURL,
		CompetitionID: cfg.FootballCompetitionID,
		Token:         cfg.FootballDataToken,
		Client:        newClient(eplHeaders, []string{cfg.FootballDataToken}),
		Logger:        logger,
		Location:      cfg.Location,
		LookbackDays:  cfg.MatchdayLookbackDays,
	})

	orch := usecase.NewOrchestrator(usecase.OrchestratorConfig{
		Adapters:    []usecase.Adapter{mlbAdapter, nhlAdapter, nbaAdapter, eplAdapter},
		WorkerCount: cfg.WorkerCount,
		Logger:      logger,
		Location:    cfg.Location,
	})

	refDate := time.Now().In(cfg.Location).AddDate(0, 0, -1)
	doc, err := orch.RunOnce(ctx, refDate)
	if err != nil {
		logger.Error("run failed", "error", err)
		logger.Sync()
		os.Exit(1)
	}

	// Leagues may carry their own error fields; only a failed write is fatal.
	writer := artifact.NewWriter(cfg.OutputPath, logger)
	if err := writer.Write(doc); err != nil {
		logger.Error("write artifact failed", "path", cfg.OutputPath, "error", err)
		logger.Sync()
		os.Exit(1)
	}
}

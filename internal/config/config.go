package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/thesportspage/backend/internal/platform/logging"
)

// Config stores runtime configuration for one fetch run.
type Config struct {
	ServiceName string `validate:"required"`
	LogLevel    logging.Level

	// OutputPath is where the run artifact lands; the frontend reads it as-is.
	OutputPath string `validate:"required"`

	// DisplayTimezone is the audience's local zone; every rendered timestamp
	// is converted into it at the adapter boundary.
	DisplayTimezone string         `validate:"required"`
	Location        *time.Location `validate:"required"`

	MLBBaseURL     string `validate:"required,url"`
	NHLBaseURL     string `validate:"required,url"`
	NBABaseURL     string `validate:"required,url"`
	NBACoreBaseURL string `validate:"required,url"`
	NBACDNBaseURL  string `validate:"required,url"`

	// NBAScoreSources is the ordered scoreboard strategy list; sources are
	// tried in sequence until one yields games.
	NBAScoreSources []string `validate:"required,min=1,dive,oneof=espn cdn"`

	FootballDataBaseURL string `validate:"required,url"`
	// FootballDataToken is optional; when empty the soccer adapter degrades to
	// an empty report with a logged warning.
	FootballDataToken     string
	FootballCompetitionID int `validate:"gt=0"`

	UpstreamTimeout     time.Duration `validate:"gt=0"`
	UpstreamMaxRetries  int           `validate:"gte=0"`
	BreakerEnabled      bool
	BreakerFailureCount int           `validate:"gte=1"`
	BreakerOpenTimeout  time.Duration `validate:"gt=0"`

	WorkerCount          int `validate:"gte=1"`
	MatchdayLookbackDays int `validate:"gte=1,lte=60"`
	ScheduleDays         int `validate:"gte=1,lte=14"`
}

func Load() (Config, error) {
	timeout, err := time.ParseDuration(getEnv("UPSTREAM_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPSTREAM_TIMEOUT: %w", err)
	}

	maxRetries, err := getEnvAsInt("UPSTREAM_MAX_RETRIES", 0)
	if err != nil {
		return Config{}, fmt.Errorf("parse UPSTREAM_MAX_RETRIES: %w", err)
	}

	breakerEnabled, err := strconv.ParseBool(getEnv("UPSTREAM_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPSTREAM_CIRCUIT_ENABLED: %w", err)
	}
	breakerFailureCount, err := getEnvAsInt("UPSTREAM_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse UPSTREAM_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	breakerOpenTimeout, err := time.ParseDuration(getEnv("UPSTREAM_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPSTREAM_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}

	workerCount, err := getEnvAsInt("WORKER_COUNT", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse WORKER_COUNT: %w", err)
	}

	lookbackDays, err := getEnvAsInt("MATCHDAY_LOOKBACK_DAYS", 14)
	if err != nil {
		return Config{}, fmt.Errorf("parse MATCHDAY_LOOKBACK_DAYS: %w", err)
	}

	scheduleDays, err := getEnvAsInt("SCHEDULE_DAYS", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCHEDULE_DAYS: %w", err)
	}

	competitionID, err := getEnvAsInt("FOOTBALL_COMPETITION_ID", 2021)
	if err != nil {
		return Config{}, fmt.Errorf("parse FOOTBALL_COMPETITION_ID: %w", err)
	}

	timezone := getEnv("DISPLAY_TIMEZONE", "America/New_York")
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return Config{}, fmt.Errorf("load DISPLAY_TIMEZONE %q: %w", timezone, err)
	}

	cfg := Config{
		ServiceName:           getEnv("APP_SERVICE_NAME", "sportspage-fetcher"),
		LogLevel:              parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		OutputPath:            getEnv("OUTPUT_PATH", "frontend/data/sports_data.json"),
		DisplayTimezone:       timezone,
		Location:              location,
		MLBBaseURL:            getEnv("MLB_BASE_URL", "https://statsapi.mlb.com/api/v1"),
		NHLBaseURL:            getEnv("NHL_BASE_URL", "https://api-web.nhle.com/v1"),
		NBABaseURL:            getEnv("NBA_BASE_URL", "https://site.api.espn.com/apis/site/v2/sports/basketball/nba"),
		NBACoreBaseURL:        getEnv("NBA_CORE_BASE_URL", "https://sports.core.api.espn.com/v2/sports/basketball/leagues/nba"),
		NBACDNBaseURL:         getEnv("NBA_CDN_BASE_URL", "https://cdn.nba.com/static/json/liveData"),
		NBAScoreSources:       splitCSV(getEnv("NBA_SCORE_SOURCES", "espn,cdn")),
		FootballDataBaseURL:   getEnv("FOOTBALL_DATA_BASE_URL", "https://api.football-data.org/v4"),
		FootballDataToken:     strings.TrimSpace(os.Getenv("FOOTBALL_DATA_API_KEY")),
		FootballCompetitionID: competitionID,
		UpstreamTimeout:       timeout,
		UpstreamMaxRetries:    maxRetries,
		BreakerEnabled:        breakerEnabled,
		BreakerFailureCount:   breakerFailureCount,
		BreakerOpenTimeout:    breakerOpenTimeout,
		WorkerCount:           workerCount,
		MatchdayLookbackDays:  lookbackDays,
		ScheduleDays:          scheduleDays,
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

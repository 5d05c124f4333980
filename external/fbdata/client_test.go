package fbdata

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thesportspage/backend/internal/platform/httpjson"
	"github.com/thesportspage/backend/internal/platform/logging"
)

func newEPLAdapter(t *testing.T, handler http.Handler) *Adapter {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := httpjson.NewClient(httpjson.ClientConfig{
		Timeout: 2 * time.Second,
		Logger:  logging.NewNop(),
	})
	return NewAdapter(AdapterConfig{
		BaseURL: server.URL,
		Token:   "test-token",
		Client:  client,
		Logger:  logging.NewNop(),
	})
}

// matchdayHandler serves finished matches only on matchDate; every other
// probed date answers with an empty set.
func matchdayHandler(t *testing.T, matchDate string, probes *atomic.Int64) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/competitions/2021/matches", func(w http.ResponseWriter, r *http.Request) {
		probes.Add(1)
		if r.URL.Query().Get("dateFrom") != matchDate {
			_, _ = w.Write([]byte(`{"matches":[]}`))
			return
		}
		_, _ = w.Write([]byte(fmt.Sprintf(`{"matches":[
			{"id":497001,"utcDate":"%sT15:00:00Z","status":"FINISHED","matchday":22,
			 "homeTeam":{"name":"Arsenal FC"},"awayTeam":{"name":"Chelsea FC"},
			 "score":{"fullTime":{"home":3,"away":1},"halfTime":{"home":2,"away":0}}},
			{"id":497002,"utcDate":"%sT17:30:00Z","status":"FINISHED","matchday":22,
			 "homeTeam":{"name":"Everton FC"},"awayTeam":{"name":"Fulham FC"},
			 "score":{"fullTime":{"home":0,"away":0},"halfTime":{"home":0,"away":0}}}]}`, matchDate, matchDate)))
	})
	return mux
}

func TestResolveMatchdayWalksBack(t *testing.T) {
	t.Parallel()

	var probes atomic.Int64
	adapter := newEPLAdapter(t, matchdayHandler(t, "2026-01-10", &probes))
	refDate := time.Date(2026, 1, 14, 0, 0, 0, 0, time.UTC)

	matchday, ok := adapter.resolveMatchday(context.Background(), refDate)
	if !ok {
		t.Fatal("expected a resolved matchday")
	}
	if got := matchday.Date.Format("2006-01-02"); got != "2026-01-10" {
		t.Fatalf("resolved date = %s, want 2026-01-10", got)
	}
	// One probe per candidate day: 14th, 13th, 12th, 11th, 10th.
	if got := probes.Load(); got != 5 {
		t.Fatalf("probes = %d, want 5", got)
	}
	if len(matchday.Matches) != 2 {
		t.Fatalf("matches = %d", len(matchday.Matches))
	}
}

func TestResolveMatchdayExhaustsWindow(t *testing.T) {
	t.Parallel()

	var probes atomic.Int64
	adapter := newEPLAdapter(t, matchdayHandler(t, "2025-12-01", &probes))
	refDate := time.Date(2026, 1, 14, 0, 0, 0, 0, time.UTC)

	_, ok := adapter.resolveMatchday(context.Background(), refDate)
	if ok {
		t.Fatal("expected the empty sentinel, got a date")
	}
	if got := probes.Load(); got != 14 {
		t.Fatalf("probes = %d, want 14", got)
	}
}

func TestMapMatchdayHalfTimeLineScore(t *testing.T) {
	t.Parallel()

	var probes atomic.Int64
	adapter := newEPLAdapter(t, matchdayHandler(t, "2026-01-13", &probes))
	refDate := time.Date(2026, 1, 14, 0, 0, 0, 0, time.UTC)

	matchday, ok := adapter.resolveMatchday(context.Background(), refDate)
	if !ok {
		t.Fatal("expected a resolved matchday")
	}
	board := adapter.mapMatchday(matchday)
	if len(board.Games) != 2 {
		t.Fatalf("games = %d", len(board.Games))
	}

	game := board.Games[0]
	if game.Home.Abbr != "ARS" || game.Away.Abbr != "CHE" {
		t.Fatalf("teams = %s v %s", game.Home.Abbr, game.Away.Abbr)
	}
	if game.Home.Score != 3 || game.Away.Score != 1 {
		t.Fatalf("score = %d-%d", game.Home.Score, game.Away.Score)
	}
	if game.PeriodCount != 2 {
		t.Fatalf("periodCount = %d", game.PeriodCount)
	}
	if game.BoxScore == nil {
		t.Fatal("box score must not be nil")
	}
	if got := game.BoxScore.LineScore.Home; len(got) != 2 || got[0] != 2 || got[1] != 1 {
		t.Fatalf("home halves = %v, want [2 1]", got)
	}
	if got := game.BoxScore.LineScore.Away; got[0] != 0 || got[1] != 1 {
		t.Fatalf("away halves = %v, want [0 1]", got)
	}
}

func TestMissingTokenDegradesToEmptyReport(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	t.Cleanup(server.Close)

	client := httpjson.NewClient(httpjson.ClientConfig{Timeout: time.Second, Logger: logging.NewNop()})
	adapter := NewAdapter(AdapterConfig{BaseURL: server.URL, Client: client, Logger: logging.NewNop()})

	out := adapter.FetchAll(context.Background(), time.Date(2026, 1, 14, 0, 0, 0, 0, time.UTC))
	if calls.Load() != 0 {
		t.Fatalf("upstream calls = %d, want 0 without a credential", calls.Load())
	}
	if len(out.Yesterday.Games) != 0 || out.Yesterday.Games == nil {
		t.Fatalf("yesterday = %+v, want empty non-nil", out.Yesterday)
	}
	if out.Standings == nil || out.Leaders == nil || out.Schedule == nil {
		t.Fatal("collections must keep their empty shapes")
	}
}

// Full-report scenario: two finished matches on the resolved matchday, a
// populated table, and a single fixture two days after the reference date.
func TestFetchAllScenario(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/competitions/2021/matches", func(w http.ResponseWriter, r *http.Request) {
		from := r.URL.Query().Get("dateFrom")
		to := r.URL.Query().Get("dateTo")
		switch {
		case from == "2026-01-14" && to == "2026-01-14":
			_, _ = w.Write([]byte(`{"matches":[
				{"id":497001,"utcDate":"2026-01-14T15:00:00Z","status":"FINISHED",
				 "homeTeam":{"name":"Arsenal FC"},"awayTeam":{"name":"Chelsea FC"},
				 "score":{"fullTime":{"home":3,"away":1},"halfTime":{"home":2,"away":0}}},
				{"id":497002,"utcDate":"2026-01-14T17:30:00Z","status":"FINISHED",
				 "homeTeam":{"name":"Everton FC"},"awayTeam":{"name":"Fulham FC"},
				 "score":{"fullTime":{"home":0,"away":0},"halfTime":{"home":0,"away":0}}}]}`))
		case from == "2026-01-15":
			_, _ = w.Write([]byte(`{"matches":[
				{"id":497010,"utcDate":"2026-01-16T20:00:00Z","status":"TIMED",
				 "homeTeam":{"name":"Liverpool FC"},"awayTeam":{"name":"Manchester City FC"},
				 "score":{"fullTime":{"home":null,"away":null},"halfTime":{"home":null,"away":null}}}]}`))
		default:
			_, _ = w.Write([]byte(`{"matches":[]}`))
		}
	})
	mux.HandleFunc("/competitions/2021/standings", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"standings":[{"type":"TOTAL","table":[
			{"position":1,"team":{"name":"Arsenal FC"},"playedGames":22,"won":16,"draw":4,"lost":2,
			 "goalsFor":48,"goalsAgainst":18,"goalDifference":30,"points":52,"form":"W,W,D,W,W"}]}]}`))
	})
	mux.HandleFunc("/competitions/2021/scorers", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"scorers":[
			{"player":{"name":"Erling Haaland"},"team":{"name":"Manchester City FC"},"goals":19},
			{"player":{"name":"Mohamed Salah"},"team":{"name":"Liverpool FC"},"goals":15}]}`))
	})

	adapter := newEPLAdapter(t, mux)
	refDate := time.Date(2026, 1, 14, 0, 0, 0, 0, time.UTC)

	out := adapter.FetchAll(context.Background(), refDate)

	if out.Yesterday.Date != "2026-01-14" {
		t.Fatalf("yesterday date = %q", out.Yesterday.Date)
	}
	if len(out.Yesterday.Games) != 2 {
		t.Fatalf("yesterday games = %d, want 2", len(out.Yesterday.Games))
	}

	table := out.Standings["Premier League"]
	if len(table) == 0 {
		t.Fatal("standings must not be empty")
	}
	if table[0].Team != "ARS" || table[0].Points != 52 || table[0].GoalDiff != 30 {
		t.Fatalf("top row = %+v", table[0])
	}

	goals := out.Leaders["goals"]
	if len(goals) != 2 || goals[0].Player != "Erling Haaland" || goals[0].Rank != 1 || goals[0].Value != "19" {
		t.Fatalf("goal leaders = %+v", goals)
	}
	if len(out.Leaders["assists"]) != 0 {
		t.Fatalf("assists = %v, want empty", out.Leaders["assists"])
	}

	if len(out.Schedule) != 1 {
		t.Fatalf("schedule days = %d, want 1", len(out.Schedule))
	}
	day := out.Schedule[0]
	// Reference date +2 is Friday, January 16th.
	if day.Date != "2026-01-16" || day.DayLabel != "Fri" {
		t.Fatalf("schedule day = %s %s", day.Date, day.DayLabel)
	}
	if len(day.Games) != 1 || day.Games[0].Home != "LIV" || day.Games[0].Away != "MCI" {
		t.Fatalf("fixture = %+v", day.Games)
	}
	// Kickoff label carries the display zone's abbreviation.
	if day.Games[0].Time != "20:00" || day.Games[0].TimeLabel != "08:00 PM UTC" {
		t.Fatalf("kickoff = %q / %q", day.Games[0].Time, day.Games[0].TimeLabel)
	}
}

func TestUnknownTeamFallsBackToSynthesizedAbbr(t *testing.T) {
	t.Parallel()

	first := teams.Abbr("Wrexham AFC")
	second := teams.Abbr("Wrexham AFC")
	if first != second {
		t.Fatalf("fallback not deterministic: %q vs %q", first, second)
	}
	if first != "WRE" {
		t.Fatalf("fallback = %q, want WRE", first)
	}
}

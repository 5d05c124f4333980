package nhl

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/thesportspage/backend/internal/platform/httpjson"
	"github.com/thesportspage/backend/internal/platform/logging"
)

func newTestAdapter(t *testing.T, handler http.Handler) *Adapter {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := httpjson.NewClient(httpjson.ClientConfig{
		Timeout: 2 * time.Second,
		Logger:  logging.NewNop(),
	})
	return NewAdapter(AdapterConfig{
		BaseURL: server.URL,
		Client:  client,
		Logger:  logging.NewNop(),
	})
}

const scoreboardBody = `{"gamesByDate":[
	{"date":"2026-01-14","games":[
		{"id":2025020701,"gameState":"OFF","period":4,
		 "periodDescriptor":{"periodType":"OT"},
		 "awayTeam":{"abbrev":"NYR","name":{"default":"New York Rangers"},"score":3},
		 "homeTeam":{"abbrev":"BOS","name":{"default":"Boston Bruins"},"score":2}},
		{"id":2025020702,"gameState":"LIVE","period":2,
		 "periodDescriptor":{"periodType":"REG"},
		 "awayTeam":{"abbrev":"TOR","name":{"default":"Toronto Maple Leafs"},"score":1},
		 "homeTeam":{"abbrev":"MTL","name":{"default":"Montreal Canadiens"},"score":1}}]},
	{"date":"2026-01-15","games":[
		{"id":2025020710,"gameState":"FUT","period":0,
		 "startTimeUTC":"2026-01-16T00:00:00Z",
		 "tvBroadcasts":[{"network":"ESPN"}],
		 "awayTeam":{"abbrev":"EDM","name":{"default":"Edmonton Oilers"}},
		 "homeTeam":{"abbrev":"CGY","name":{"default":"Calgary Flames"}}}]},
	{"date":"2026-01-20","games":[
		{"id":2025020750,"gameState":"FUT","period":0,
		 "awayTeam":{"abbrev":"SEA"},"homeTeam":{"abbrev":"VAN"}}]}]}`

const boxscoreBody = `{
	"awayTeam":{"abbrev":"NYR","sog":31},
	"homeTeam":{"abbrev":"BOS","sog":28},
	"linescore":{"byPeriod":[
		{"away":1,"home":0},{"away":1,"home":1},{"away":0,"home":1},{"away":1,"home":0}]},
	"playerByGameStats":{
		"awayTeam":{
			"forwards":[
				{"name":{"default":"Artemi Panarin"},"goals":1,"assists":2},
				{"name":{"default":"Chris Kreider"},"goals":2,"assists":0},
				{"name":{"default":"Zero Line"},"goals":0,"assists":0}],
			"defense":[{"name":{"default":"Adam Fox"},"goals":0,"assists":1}],
			"goalies":[{"name":{"default":"Igor Shesterkin"},"saves":26,"shotsAgainst":28}]},
		"homeTeam":{
			"forwards":[{"name":{"default":"David Pastrnak"},"goals":2,"assists":1}],
			"defense":[],
			"goalies":[{"name":{"default":"Jeremy Swayman"},"saves":28,"shotsAgainst":31}]}}}`

const standingsBody = `{"standings":[
	{"divisionName":"Atlantic","divisionSequence":2,
	 "teamAbbrev":{"default":"BOS"},"teamName":{"default":"Boston Bruins"},
	 "gamesPlayed":45,"wins":28,"losses":12,"otLosses":5,"points":61,
	 "streakCode":"L","streakCount":1},
	{"divisionName":"Atlantic","divisionSequence":1,
	 "teamAbbrev":{"default":"FLA"},"teamName":{"default":"Florida Panthers"},
	 "gamesPlayed":44,"wins":30,"losses":10,"otLosses":4,"points":64,
	 "streakCode":"W","streakCount":4}]}`

func nhlHandler(t *testing.T, failBox bool) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/scoreboard/now", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(scoreboardBody))
	})
	mux.HandleFunc("/gamecenter/2025020701/boxscore", func(w http.ResponseWriter, r *http.Request) {
		if failBox {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(boxscoreBody))
	})
	mux.HandleFunc("/standings/now", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(standingsBody))
	})
	mux.HandleFunc("/player-spotlight", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"playerId":8478402,"position":"C","teamTriCode":"EDM"},
			{"playerId":8471679,"position":"G","teamTriCode":"NYR"},
			{"playerId":8479318,"position":"R","teamTriCode":"TOR"}]`))
	})
	mux.HandleFunc("/player/8478402/landing", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"firstName":{"default":"Connor"},"lastName":{"default":"McDavid"},
			"featuredStats":{"regularSeason":{"subSeason":{"goals":32,"assists":58,"points":90}}}}`))
	})
	mux.HandleFunc("/player/8479318/landing", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"firstName":{"default":"Auston"},"lastName":{"default":"Matthews"},
			"featuredStats":{"regularSeason":{"subSeason":{"goals":41,"assists":30,"points":71}}}}`))
	})
	return mux
}

func TestFetchAllMapsOvertimeFinal(t *testing.T) {
	t.Parallel()

	adapter := newTestAdapter(t, nhlHandler(t, false))
	refDate := time.Date(2026, 1, 14, 0, 0, 0, 0, time.UTC)

	out := adapter.FetchAll(context.Background(), refDate)
	if out.Yesterday.Date != "2026-01-14" {
		t.Fatalf("date = %q", out.Yesterday.Date)
	}
	if len(out.Yesterday.Games) != 1 {
		t.Fatalf("games = %d, want 1 (live game must be dropped)", len(out.Yesterday.Games))
	}

	game := out.Yesterday.Games[0]
	if game.Status != "Final/OT" {
		t.Fatalf("status = %q, want Final/OT", game.Status)
	}
	if game.PeriodCount != 4 {
		t.Fatalf("periodCount = %d, want 4", game.PeriodCount)
	}
	if game.Away.Abbr != "NYR" || game.Home.Abbr != "BOS" || game.Away.Score != 3 {
		t.Fatalf("teams = %+v / %+v", game.Away, game.Home)
	}
}

func TestBoxScoreScorersAndGoalies(t *testing.T) {
	t.Parallel()

	adapter := newTestAdapter(t, nhlHandler(t, false))
	box := adapter.fetchBoxScore(context.Background(), 2025020701)

	if len(box.LineScore.Away) != 4 || box.LineScore.Away[3] != 1 {
		t.Fatalf("away line = %v", box.LineScore.Away)
	}

	// Points descending, goals as tiebreak, zero-point skaters dropped.
	wantOrder := []string{"Artemi Panarin", "David Pastrnak", "Chris Kreider", "Adam Fox"}
	if len(box.Participants) != len(wantOrder) {
		t.Fatalf("participants = %d, want %d", len(box.Participants), len(wantOrder))
	}
	for i, name := range wantOrder {
		if box.Participants[i].Name != name {
			t.Fatalf("participant[%d] = %q, want %q", i, box.Participants[i].Name, name)
		}
	}
	if box.Participants[0].Stats["pts"] != 3 || box.Participants[0].Stats["g"] != 1 {
		t.Fatalf("panarin stats = %v", box.Participants[0].Stats)
	}

	labels := make(map[string][]string, len(box.Notes))
	for _, note := range box.Notes {
		labels[note.Label] = note.Entries
	}
	if got := labels["Shots on Goal"]; len(got) != 2 || got[0] != "NYR 31" || got[1] != "BOS 28" {
		t.Fatalf("shots note = %v", got)
	}
	goalies := labels["Goalies"]
	if len(goalies) != 2 {
		t.Fatalf("goalie entries = %v", goalies)
	}
	if goalies[0] != "NYR: Igor Shesterkin 26/28, 0.929" {
		t.Fatalf("away goalie = %q", goalies[0])
	}
}

func TestBoxScoreFailureKeepsGameRow(t *testing.T) {
	t.Parallel()

	adapter := newTestAdapter(t, nhlHandler(t, true))
	refDate := time.Date(2026, 1, 14, 0, 0, 0, 0, time.UTC)

	out := adapter.FetchAll(context.Background(), refDate)
	if len(out.Yesterday.Games) != 1 {
		t.Fatalf("games = %d, want 1", len(out.Yesterday.Games))
	}
	box := out.Yesterday.Games[0].BoxScore
	if box == nil {
		t.Fatal("box score must not be nil")
	}
	if len(box.LineScore.Away) != 0 || len(box.Participants) != 0 {
		t.Fatalf("box score must be empty shape, got %+v", box)
	}
}

func TestStandingsGamesBehindAndWinPct(t *testing.T) {
	t.Parallel()

	adapter := newTestAdapter(t, nhlHandler(t, false))
	standings, err := adapter.fetchStandings(context.Background())
	if err != nil {
		t.Fatalf("fetchStandings: %v", err)
	}
	rows := standings["Atlantic"]
	if len(rows) != 2 {
		t.Fatalf("rows = %d", len(rows))
	}
	// Division sequence orders the rows regardless of feed order.
	if rows[0].Team != "FLA" || rows[1].Team != "BOS" {
		t.Fatalf("order = %s, %s", rows[0].Team, rows[1].Team)
	}
	if rows[0].GamesBack != "-" {
		t.Fatalf("leader gamesBack = %q", rows[0].GamesBack)
	}
	if rows[1].GamesBack != "1.5" {
		t.Fatalf("gamesBack = %q, want 1.5", rows[1].GamesBack)
	}
	if rows[1].WinPct != 0.678 {
		t.Fatalf("winPct = %v, want 0.678", rows[1].WinPct)
	}
	if rows[0].Streak != "W4" || rows[1].Streak != "L1" {
		t.Fatalf("streaks = %q, %q", rows[0].Streak, rows[1].Streak)
	}
}

func TestLeadersSkipGoaliesAndSortByValue(t *testing.T) {
	t.Parallel()

	adapter := newTestAdapter(t, nhlHandler(t, false))
	leaders := adapter.fetchLeaders(context.Background())

	points := leaders["points"]
	if len(points) != 2 {
		t.Fatalf("points = %v", points)
	}
	if points[0].Player != "Connor McDavid" || points[0].Rank != 1 || points[0].Value != "90" {
		t.Fatalf("top points = %+v", points[0])
	}
	goals := leaders["goals"]
	if goals[0].Player != "Auston Matthews" || goals[0].Value != "41" {
		t.Fatalf("top goals = %+v", goals[0])
	}
	for _, leader := range append(points, goals...) {
		if leader.Team == "NYR" {
			t.Fatal("goalie must be skipped")
		}
	}
}

func TestScheduleWindowAndBroadcast(t *testing.T) {
	t.Parallel()

	adapter := newTestAdapter(t, nhlHandler(t, false))
	refDate := time.Date(2026, 1, 14, 0, 0, 0, 0, time.UTC)

	out := adapter.FetchAll(context.Background(), refDate)
	if len(out.Schedule) != 1 {
		t.Fatalf("schedule days = %d, want 1 (out-of-window day dropped)", len(out.Schedule))
	}
	day := out.Schedule[0]
	if day.Date != "2026-01-15" || day.DayLabel != "Thu" {
		t.Fatalf("day = %s %s", day.Date, day.DayLabel)
	}
	if len(day.Games) != 1 {
		t.Fatalf("games = %d", len(day.Games))
	}
	fixture := day.Games[0]
	if fixture.Broadcast != "ESPN" {
		t.Fatalf("broadcast = %q", fixture.Broadcast)
	}
	if fixture.Away != "EDM" || fixture.HomeName != "Calgary Flames" {
		t.Fatalf("fixture = %+v", fixture)
	}
	if fixture.TimeLabel != "12:00 AM UTC" {
		t.Fatalf("time label = %q, want zone-suffixed label", fixture.TimeLabel)
	}
}

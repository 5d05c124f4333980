package nhl

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/sourcegraph/conc/iter"

	"github.com/thesportspage/backend/internal/domain/report"
	"github.com/thesportspage/backend/internal/platform/httpjson"
	"github.com/thesportspage/backend/internal/platform/logging"
)

// Code is the league key under which this adapter reports.
const Code = "nhl"

const (
	dateLayout = "2006-01-02"

	// maxScorers caps the per-game skater list to what the page shows.
	maxScorers = 6
	maxLeaders = 10
)

// Adapter translates api-web.nhle.com into the canonical report model. The
// scoreboard endpoint is date-windowed by the provider, so both yesterday's
// scores and the forward schedule come from one feed filtered by date.
type Adapter struct {
	baseURL      string
	http         *httpjson.Client
	logger       *logging.Logger
	loc          *time.Location
	scheduleDays int
}

type AdapterConfig struct {
	BaseURL      string
	Client       *httpjson.Client
	Logger       *logging.Logger
	Location     *time.Location
	ScheduleDays int
}

func NewAdapter(cfg AdapterConfig) *Adapter {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	scheduleDays := cfg.ScheduleDays
	if scheduleDays <= 0 {
		scheduleDays = 3
	}
	return &Adapter{
		baseURL:      cfg.BaseURL,
		http:         cfg.Client,
		logger:       logger,
		loc:          loc,
		scheduleDays: scheduleDays,
	}
}

func (a *Adapter) Code() string { return Code }

// FetchAll performs the four retrievals. Each retrieval failure is logged and
// replaced by its empty shape; the report is best-effort, never an error.
func (a *Adapter) FetchAll(ctx context.Context, refDate time.Time) report.LeagueReport {
	out := report.EmptyLeagueReport()

	var board scoreboardEnvelope
	boardErr := a.http.GetJSON(ctx, a.baseURL+"/scoreboard/now", &board)
	if boardErr != nil {
		a.logger.WarnContext(ctx, "nhl: fetch scoreboard failed", "error", boardErr)
	}

	out.Yesterday = a.mapYesterday(ctx, board, refDate)
	if boardErr != nil {
		out.Yesterday = report.Scoreboard{Date: refDate.Format(dateLayout), Games: []report.Game{}}
	}

	standings, err := a.fetchStandings(ctx)
	if err != nil {
		a.logger.WarnContext(ctx, "nhl: fetch standings failed", "error", err)
		standings = map[string][]report.Standing{}
	}
	out.Standings = standings

	out.Leaders = a.fetchLeaders(ctx)

	if boardErr == nil {
		out.Schedule = a.mapSchedule(board, refDate)
	}

	return out
}

func (a *Adapter) mapYesterday(ctx context.Context, board scoreboardEnvelope, refDate time.Time) report.Scoreboard {
	dateStr := refDate.Format(dateLayout)

	type finished struct {
		id   int64
		game report.Game
	}
	rows := make([]finished, 0, 8)
	for _, day := range board.GamesByDate {
		if day.Date != dateStr {
			continue
		}
		for _, item := range day.Games {
			if !isFinished(item.GameState) {
				continue
			}
			rows = append(rows, finished{
				id: item.ID,
				game: report.Game{
					GameID: strconv.FormatInt(item.ID, 10),
					Away: report.TeamScore{
						Abbr:  item.AwayTeam.Abbrev,
						Name:  item.AwayTeam.Name.Default,
						Score: item.AwayTeam.Score,
					},
					Home: report.TeamScore{
						Abbr:  item.HomeTeam.Abbrev,
						Name:  item.HomeTeam.Name.Default,
						Score: item.HomeTeam.Score,
					},
					Status:      gameStatus(item),
					PeriodCount: periodCount(item),
				},
			})
		}
	}

	iter.ForEachIdx(rows, func(_ int, row *finished) {
		row.game.BoxScore = a.fetchBoxScore(ctx, row.id)
	})

	games := make([]report.Game, 0, len(rows))
	for _, row := range rows {
		games = append(games, row.game)
	}

	a.logger.InfoContext(ctx, "nhl: fetched yesterday scores", "date", dateStr, "games", len(games))
	return report.Scoreboard{Date: dateStr, Games: games}
}

// fetchBoxScore degrades to the empty shape on failure so a dead gamecenter
// feed never drops the score row itself.
func (a *Adapter) fetchBoxScore(ctx context.Context, gameID int64) *report.BoxScore {
	box := report.EmptyBoxScore()

	var data boxscoreEnvelope
	if err := a.http.GetJSON(ctx, fmt.Sprintf("%s/gamecenter/%d/boxscore", a.baseURL, gameID), &data); err != nil {
		a.logger.WarnContext(ctx, "nhl: fetch box score failed", "game_id", gameID, "error", err)
		return box
	}

	for _, period := range data.Linescore.ByPeriod {
		box.LineScore.Away = append(box.LineScore.Away, period.Away)
		box.LineScore.Home = append(box.LineScore.Home, period.Home)
	}

	box.Notes = append(box.Notes, report.Note{
		Label: "Shots on Goal",
		Entries: []string{
			fmt.Sprintf("%s %d", data.AwayTeam.Abbrev, data.AwayTeam.SOG),
			fmt.Sprintf("%s %d", data.HomeTeam.Abbrev, data.HomeTeam.SOG),
		},
	})

	sides := []struct {
		abbr    string
		players teamPlayers
	}{
		{data.AwayTeam.Abbrev, data.PlayerByGameStats.AwayTeam},
		{data.HomeTeam.Abbrev, data.PlayerByGameStats.HomeTeam},
	}

	goalieEntries := make([]string, 0, 4)
	for _, side := range sides {
		for _, goalie := range side.players.Goalies {
			savePct := 0.0
			if goalie.ShotsAgainst > 0 {
				savePct = float64(goalie.Saves) / float64(goalie.ShotsAgainst)
			}
			goalieEntries = append(goalieEntries, fmt.Sprintf("%s: %s %d/%d, %.3f",
				side.abbr, goalie.Name.Default, goalie.Saves, goalie.ShotsAgainst, savePct))
		}
	}
	if len(goalieEntries) > 0 {
		box.Notes = append(box.Notes, report.Note{Label: "Goalies", Entries: goalieEntries})
	}

	scorers := make([]report.Participant, 0, 12)
	for _, side := range sides {
		for _, group := range [][]skaterLine{side.players.Forwards, side.players.Defense} {
			for _, skater := range group {
				points := skater.Goals + skater.Assists
				if points == 0 {
					continue
				}
				scorers = append(scorers, report.Participant{
					Team: side.abbr,
					Name: skater.Name.Default,
					Stats: map[string]int{
						"g":   skater.Goals,
						"a":   skater.Assists,
						"pts": points,
					},
				})
			}
		}
	}
	sort.SliceStable(scorers, func(i, j int) bool {
		if scorers[i].Stats["pts"] != scorers[j].Stats["pts"] {
			return scorers[i].Stats["pts"] > scorers[j].Stats["pts"]
		}
		return scorers[i].Stats["g"] > scorers[j].Stats["g"]
	})
	if len(scorers) > maxScorers {
		scorers = scorers[:maxScorers]
	}
	box.Participants = scorers

	return box
}

func (a *Adapter) fetchStandings(ctx context.Context) (map[string][]report.Standing, error) {
	var envelope standingsEnvelope
	if err := a.http.GetJSON(ctx, a.baseURL+"/standings/now", &envelope); err != nil {
		return nil, err
	}

	out := make(map[string][]report.Standing, 4)
	for _, entry := range envelope.Standings {
		division := entry.DivisionName
		if division == "" {
			division = "Unknown Division"
		}

		winPct := 0.0
		if entry.GamesPlayed > 0 {
			winPct = roundTo3(float64(entry.Points) / float64(entry.GamesPlayed*2))
		}

		streak := entry.StreakCode
		if streak != "" && entry.StreakCount > 0 {
			streak = fmt.Sprintf("%s%d", entry.StreakCode, entry.StreakCount)
		}

		out[division] = append(out[division], report.Standing{
			Rank:     entry.DivisionSequence,
			Team:     entry.TeamAbbrev.Default,
			TeamName: entry.TeamName.Default,
			Played:   entry.GamesPlayed,
			Wins:     entry.Wins,
			Losses:   entry.Losses,
			OTLosses: entry.OTLosses,
			Points:   entry.Points,
			WinPct:   winPct,
			Streak:   streak,
		})
	}

	// Points behind the division leader, in game-equivalents.
	for division, rows := range out {
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Rank < rows[j].Rank })
		if len(rows) == 0 {
			continue
		}
		leaderPoints := rows[0].Points
		for i := range rows {
			rows[i].GamesBack = formatGamesBehind(float64(leaderPoints-rows[i].Points) / 2)
		}
		out[division] = rows
	}

	return out, nil
}

// fetchLeaders builds the skater boards from the player spotlight. A failed
// per-player landing fetch skips that player only.
func (a *Adapter) fetchLeaders(ctx context.Context) map[string][]report.Leader {
	out := map[string][]report.Leader{
		"goals":   {},
		"assists": {},
		"points":  {},
	}

	var spotlight []spotlightPlayer
	if err := a.http.GetJSON(ctx, a.baseURL+"/player-spotlight", &spotlight); err != nil {
		a.logger.WarnContext(ctx, "nhl: fetch player spotlight failed", "error", err)
		return out
	}

	count := 0
	for _, player := range spotlight {
		if player.Position == "G" || player.PlayerID == 0 {
			continue
		}

		var landing playerLanding
		if err := a.http.GetJSON(ctx, fmt.Sprintf("%s/player/%d/landing", a.baseURL, player.PlayerID), &landing); err != nil {
			a.logger.WarnContext(ctx, "nhl: fetch player landing failed", "player_id", player.PlayerID, "error", err)
			continue
		}
		stats := landing.FeaturedStats.RegularSeason.SubSeason
		if stats == nil {
			continue
		}

		count++
		name := landing.FirstName.Default + " " + landing.LastName.Default
		out["goals"] = append(out["goals"], report.Leader{Player: name, Team: player.TeamTriCode, Value: strconv.Itoa(stats.Goals)})
		out["assists"] = append(out["assists"], report.Leader{Player: name, Team: player.TeamTriCode, Value: strconv.Itoa(stats.Assists)})
		out["points"] = append(out["points"], report.Leader{Player: name, Team: player.TeamTriCode, Value: strconv.Itoa(stats.Points)})

		if count >= maxLeaders {
			break
		}
	}

	for key, rows := range out {
		sort.SliceStable(rows, func(i, j int) bool {
			return leaderValue(rows[i]) > leaderValue(rows[j])
		})
		report.Rerank(rows)
		out[key] = rows
	}

	return out
}

func (a *Adapter) mapSchedule(board scoreboardEnvelope, refDate time.Time) []report.ScheduleDay {
	today := refDate.AddDate(0, 0, 1)
	end := today.AddDate(0, 0, a.scheduleDays-1)

	out := make([]report.ScheduleDay, 0, a.scheduleDays)
	for _, day := range board.GamesByDate {
		date, err := time.Parse(dateLayout, day.Date)
		if err != nil {
			continue
		}
		if date.Before(truncateDay(today)) || date.After(truncateDay(end)) {
			continue
		}

		games := make([]report.Fixture, 0, len(day.Games))
		for _, item := range day.Games {
			if isFinished(item.GameState) {
				continue
			}

			startLocal := time.Time{}
			if parsed, err := time.Parse("2006-01-02T15:04:05Z", item.StartTimeUTC); err == nil {
				startLocal = parsed.In(a.loc)
			}

			broadcast := ""
			if len(item.TVBroadcasts) > 0 {
				broadcast = item.TVBroadcasts[0].Network
			}

			fixture := report.Fixture{
				Away:      item.AwayTeam.Abbrev,
				AwayName:  nameOrAbbr(item.AwayTeam),
				Home:      item.HomeTeam.Abbrev,
				HomeName:  nameOrAbbr(item.HomeTeam),
				Broadcast: broadcast,
			}
			if !startLocal.IsZero() {
				fixture.Time = startLocal.Format("15:04")
				fixture.TimeLabel = startLocal.Format("03:04 PM MST")
			}
			games = append(games, fixture)
		}

		if len(games) > 0 {
			out = append(out, report.ScheduleDay{
				Date:     day.Date,
				DayLabel: date.Format("Mon"),
				Games:    games,
			})
		}
	}

	return out
}

func isFinished(state string) bool {
	return state == "OFF" || state == "FINAL"
}

// gameStatus distinguishes regulation finals from overtime and shootout ones.
func gameStatus(game scoreboardGame) string {
	if !isFinished(game.GameState) {
		return game.GameState
	}
	if game.Period > 3 {
		switch game.PeriodDescriptor.PeriodType {
		case "OT":
			return report.StatusFinalOT
		case "SO":
			return report.StatusFinalSO
		}
	}
	return report.StatusFinal
}

func periodCount(game scoreboardGame) int {
	if game.Period > 0 {
		return game.Period
	}
	return 3
}

func nameOrAbbr(team scoreboardTeam) string {
	if team.Name.Default != "" {
		return team.Name.Default
	}
	return team.Abbrev
}

func leaderValue(leader report.Leader) int {
	value, _ := strconv.Atoi(leader.Value)
	return value
}

func formatGamesBehind(value float64) string {
	if value == 0 {
		return "-"
	}
	return strconv.FormatFloat(value, 'f', 1, 64)
}

func roundTo3(value float64) float64 {
	return float64(int(value*1000+0.5)) / 1000
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

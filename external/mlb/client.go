package mlb

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/sourcegraph/conc/iter"

	"github.com/thesportspage/backend/internal/domain/report"
	"github.com/thesportspage/backend/internal/platform/httpjson"
	"github.com/thesportspage/backend/internal/platform/logging"
)

// Code is the league key under which this adapter reports.
const Code = "mlb"

const dateLayout = "2006-01-02"

// Adapter translates statsapi.mlb.com into the canonical report model.
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
	season := refDate.Year()

	yesterday, err := a.fetchYesterday(ctx, refDate)
	if err != nil {
		a.logger.WarnContext(ctx, "mlb: fetch yesterday failed", "date", refDate.Format(dateLayout), "error", err)
		yesterday = report.Scoreboard{Date: refDate.Format(dateLayout), Games: []report.Game{}}
	}
	out.Yesterday = yesterday

	standings, err := a.fetchStandings(ctx, season)
	if err != nil {
		a.logger.WarnContext(ctx, "mlb: fetch standings failed", "season", season, "error", err)
		standings = map[string][]report.Standing{}
	}
	out.Standings = standings

	out.Leaders = a.fetchLeaders(ctx, season)

	schedule, err := a.fetchSchedule(ctx, refDate)
	if err != nil {
		a.logger.WarnContext(ctx, "mlb: fetch schedule failed", "error", err)
		schedule = []report.ScheduleDay{}
	}
	out.Schedule = schedule

	return out
}

func (a *Adapter) fetchYesterday(ctx context.Context, refDate time.Time) (report.Scoreboard, error) {
	dateStr := refDate.Format(dateLayout)
	query := url.Values{}
	query.Set("sportId", "1")
	query.Set("date", dateStr)

	var envelope scheduleEnvelope
	if err := a.http.GetJSON(ctx, a.baseURL+"/schedule?"+query.Encode(), &envelope); err != nil {
		return report.Scoreboard{}, err
	}

	type finished struct {
		id   int64
		game report.Game
	}
	rows := make([]finished, 0, 16)
	for _, date := range envelope.Dates {
		for _, item := range date.Games {
			if item.Status.DetailedState != "Final" {
				continue
			}
			rows = append(rows, finished{
				id: item.GamePk,
				game: report.Game{
					GameID: strconv.FormatInt(item.GamePk, 10),
					Away: report.TeamScore{
						Abbr:  teams.Abbr(item.Teams.Away.Team.Name),
						Name:  item.Teams.Away.Team.Name,
						Score: item.Teams.Away.Score,
					},
					Home: report.TeamScore{
						Abbr:  teams.Abbr(item.Teams.Home.Team.Name),
						Name:  item.Teams.Home.Team.Name,
						Score: item.Teams.Home.Score,
					},
					Status:      report.StatusFinal,
					PeriodCount: 9,
				},
			})
		}
	}

	// Per-game enrichment runs in parallel; a failed enrichment leaves the
	// game row intact with an empty box score.
	iter.ForEachIdx(rows, func(_ int, row *finished) {
		box, innings := a.enrich(ctx, row.id)
		row.game.BoxScore = box
		if innings > 0 {
			row.game.PeriodCount = innings
		}
	})

	games := make([]report.Game, 0, len(rows))
	for _, row := range rows {
		games = append(games, row.game)
	}

	a.logger.InfoContext(ctx, "mlb: fetched yesterday scores", "date", dateStr, "games", len(games))
	return report.Scoreboard{Date: dateStr, Games: games}, nil
}

func (a *Adapter) fetchStandings(ctx context.Context, season int) (map[string][]report.Standing, error) {
	query := url.Values{}
	query.Set("leagueId", "103,104")
	query.Set("season", strconv.Itoa(season))

	var envelope standingsEnvelope
	if err := a.http.GetJSON(ctx, a.baseURL+"/standings?"+query.Encode(), &envelope); err != nil {
		return nil, err
	}

	out := make(map[string][]report.Standing, len(envelope.Records))
	for _, record := range envelope.Records {
		division := shortenDivision(record.Division.Name)
		rows := make([]report.Standing, 0, len(record.TeamRecords))
		for _, team := range record.TeamRecords {
			pct, _ := strconv.ParseFloat(team.WinningPercentage, 64)
			rows = append(rows, report.Standing{
				Team:      teams.Abbr(team.Team.Name),
				TeamName:  team.Team.Name,
				Wins:      team.Wins,
				Losses:    team.Losses,
				WinPct:    pct,
				GamesBack: orDash(team.GamesBack),
				Streak:    orDash(team.Streak.StreakCode),
			})
		}
		report.RerankStandings(rows)
		out[division] = rows
	}

	return out, nil
}

var leaderCategories = []struct {
	key      string
	upstream string
}{
	{"batting_avg", "battingAverage"},
	{"home_runs", "homeRuns"},
	{"rbi", "runsBattedIn"},
	{"wins", "wins"},
	{"era", "earnedRunAverage"},
	{"strikeouts", "strikeouts"},
}

// fetchLeaders collects the six leader boards. A failed category stays empty
// without blanking out the others.
func (a *Adapter) fetchLeaders(ctx context.Context, season int) map[string][]report.Leader {
	out := make(map[string][]report.Leader, len(leaderCategories))
	for _, category := range leaderCategories {
		out[category.key] = []report.Leader{}

		query := url.Values{}
		query.Set("leaderCategories", category.upstream)
		query.Set("season", strconv.Itoa(season))
		query.Set("limit", "10")
		query.Set("playerPool", "qualified")

		var envelope leadersEnvelope
		if err := a.http.GetJSON(ctx, a.baseURL+"/stats/leaders?"+query.Encode(), &envelope); err != nil {
			a.logger.WarnContext(ctx, "mlb: fetch leaders failed", "category", category.key, "error", err)
			continue
		}

		for _, block := range envelope.LeagueLeaders {
			if block.LeaderCategory != category.upstream {
				continue
			}
			rows := make([]report.Leader, 0, 10)
			for i, leader := range block.Leaders {
				if i >= 10 {
					break
				}
				rows = append(rows, report.Leader{
					Player: leader.Person.FullName,
					Team:   teams.Abbr(leader.Team.Name),
					Value:  leader.Value,
				})
			}
			report.Rerank(rows)
			out[category.key] = rows
			break
		}
	}

	return out
}

func (a *Adapter) fetchSchedule(ctx context.Context, refDate time.Time) ([]report.ScheduleDay, error) {
	out := make([]report.ScheduleDay, 0, a.scheduleDays)
	today := refDate.AddDate(0, 0, 1)

	for offset := 0; offset < a.scheduleDays; offset++ {
		target := today.AddDate(0, 0, offset)
		dateStr := target.Format(dateLayout)

		query := url.Values{}
		query.Set("sportId", "1")
		query.Set("date", dateStr)

		var envelope scheduleEnvelope
		if err := a.http.GetJSON(ctx, a.baseURL+"/schedule?"+query.Encode(), &envelope); err != nil {
			a.logger.WarnContext(ctx, "mlb: fetch schedule day failed", "date", dateStr, "error", err)
			continue
		}

		games := make([]report.Fixture, 0, 16)
		for _, date := range envelope.Dates {
			for _, item := range date.Games {
				if item.Status.DetailedState == "Final" {
					continue
				}
				timeLabel := ""
				if parsed, err := time.Parse(time.RFC3339, item.GameDate); err == nil {
					timeLabel = parsed.In(a.loc).Format("03:04 PM")
				} else {
					timeLabel = item.Status.AbstractGameState
				}
				games = append(games, report.Fixture{
					Time:      item.GameDate,
					TimeLabel: timeLabel,
					Away:      teams.Abbr(item.Teams.Away.Team.Name),
					AwayName:  item.Teams.Away.Team.Name,
					Home:      teams.Abbr(item.Teams.Home.Team.Name),
					HomeName:  item.Teams.Home.Team.Name,
					Broadcast: "",
				})
			}
		}

		if len(games) > 0 {
			out = append(out, report.ScheduleDay{
				Date:     dateStr,
				DayLabel: target.Format("Mon"),
				Games:    games,
			})
		}
	}

	return out, nil
}

func shortenDivision(name string) string {
	if name == "" {
		return "Unknown"
	}
	replaced := name
	replaced = replacePrefix(replaced, "American League ", "AL ")
	replaced = replacePrefix(replaced, "National League ", "NL ")
	return replaced
}

func replacePrefix(value, prefix, with string) string {
	if len(value) >= len(prefix) && value[:len(prefix)] == prefix {
		return with + value[len(prefix):]
	}
	return value
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

func gamePath(base string, gameID int64, leaf string) string {
	return fmt.Sprintf("%s/game/%d/%s", base, gameID, leaf)
}

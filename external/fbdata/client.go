package fbdata

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/thesportspage/backend/internal/domain/report"
	"github.com/thesportspage/backend/internal/platform/httpjson"
	"github.com/thesportspage/backend/internal/platform/logging"
)

// Code is the league key under which this adapter reports.
const Code = "epl"

const (
	dateLayout = "2006-01-02"

	maxLeaders = 10
)

// Adapter translates api.football-data.org v4 into the canonical report
// model. Fixtures are not daily, so yesterday's results come from the
// matchday resolver rather than a literal date lookup.
type Adapter struct {
	baseURL       string
	competitionID int
	token         string
	http          *httpjson.Client
	logger        *logging.Logger
	loc           *time.Location
	scheduleDays  int
	lookbackDays  int
}

type AdapterConfig struct {
	BaseURL       string
	CompetitionID int
	Token         string
	Client        *httpjson.Client
	Logger        *logging.Logger
	Location      *time.Location
	ScheduleDays  int
	LookbackDays  int
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
		scheduleDays = 7
	}
	lookbackDays := cfg.LookbackDays
	if lookbackDays <= 0 {
		lookbackDays = 14
	}
	competitionID := cfg.CompetitionID
	if competitionID == 0 {
		competitionID = 2021
	}
	return &Adapter{
		baseURL:       cfg.BaseURL,
		competitionID: competitionID,
		token:         cfg.Token,
		http:          cfg.Client,
		logger:        logger,
		loc:           loc,
		scheduleDays:  scheduleDays,
		lookbackDays:  lookbackDays,
	}
}

func (a *Adapter) Code() string { return Code }

// FetchAll performs the four retrievals. A missing credential degrades the
// whole league to its empty shape with one warning; individual retrieval
// failures degrade only their own section.
func (a *Adapter) FetchAll(ctx context.Context, refDate time.Time) report.LeagueReport {
	out := report.EmptyLeagueReport()

	if a.token == "" {
		a.logger.WarnContext(ctx, "epl: credential not set, skipping league")
		return out
	}

	matchday, ok := a.resolveMatchday(ctx, refDate)
	if ok {
		out.Yesterday = a.mapMatchday(matchday)
	}

	standings, err := a.fetchStandings(ctx)
	if err != nil {
		a.logger.WarnContext(ctx, "epl: fetch standings failed", "error", err)
		standings = map[string][]report.Standing{}
	}
	out.Standings = standings

	out.Leaders = a.fetchScorers(ctx)

	schedule, err := a.fetchSchedule(ctx, refDate)
	if err != nil {
		a.logger.WarnContext(ctx, "epl: fetch schedule failed", "error", err)
		schedule = []report.ScheduleDay{}
	}
	out.Schedule = schedule

	return out
}

func (a *Adapter) fetchMatches(ctx context.Context, dateFrom, dateTo string) ([]match, error) {
	query := url.Values{}
	query.Set("dateFrom", dateFrom)
	query.Set("dateTo", dateTo)

	var envelope matchesEnvelope
	endpoint := fmt.Sprintf("%s/competitions/%d/matches?%s", a.baseURL, a.competitionID, query.Encode())
	if err := a.http.GetJSON(ctx, endpoint, &envelope); err != nil {
		return nil, err
	}
	return envelope.Matches, nil
}

func (a *Adapter) fetchStandings(ctx context.Context) (map[string][]report.Standing, error) {
	var envelope standingsEnvelope
	endpoint := fmt.Sprintf("%s/competitions/%d/standings", a.baseURL, a.competitionID)
	if err := a.http.GetJSON(ctx, endpoint, &envelope); err != nil {
		return nil, err
	}

	var table []standingsRow
	for _, group := range envelope.Standings {
		if group.Type == "TOTAL" || len(envelope.Standings) == 1 {
			table = group.Table
			break
		}
	}

	rows := make([]report.Standing, 0, len(table))
	for _, entry := range table {
		rows = append(rows, report.Standing{
			Rank:         entry.Position,
			Team:         teams.Abbr(entry.Team.Name),
			TeamName:     entry.Team.Name,
			Played:       entry.PlayedGames,
			Wins:         entry.Won,
			Draws:        entry.Draw,
			Losses:       entry.Lost,
			GoalsFor:     entry.GoalsFor,
			GoalsAgainst: entry.GoalsAgainst,
			GoalDiff:     entry.GoalDifference,
			Points:       entry.Points,
			Form:         entry.Form,
		})
	}

	return map[string][]report.Standing{"Premier League": rows}, nil
}

// fetchScorers builds the goals board. Assists are not exposed on the free
// tier, so that board stays empty by contract.
func (a *Adapter) fetchScorers(ctx context.Context) map[string][]report.Leader {
	out := map[string][]report.Leader{
		"goals":   {},
		"assists": {},
	}

	var envelope scorersEnvelope
	endpoint := fmt.Sprintf("%s/competitions/%d/scorers", a.baseURL, a.competitionID)
	if err := a.http.GetJSON(ctx, endpoint, &envelope); err != nil {
		a.logger.WarnContext(ctx, "epl: fetch scorers failed", "error", err)
		return out
	}

	rows := make([]report.Leader, 0, maxLeaders)
	for i, item := range envelope.Scorers {
		if i >= maxLeaders {
			break
		}
		rows = append(rows, report.Leader{
			Player: item.Player.Name,
			Team:   teams.Abbr(item.Team.Name),
			Value:  strconv.Itoa(item.Goals),
		})
	}
	report.Rerank(rows)
	out["goals"] = rows

	return out
}

func (a *Adapter) fetchSchedule(ctx context.Context, refDate time.Time) ([]report.ScheduleDay, error) {
	from := refDate.AddDate(0, 0, 1).Format(dateLayout)
	to := refDate.AddDate(0, 0, a.scheduleDays).Format(dateLayout)

	matches, err := a.fetchMatches(ctx, from, to)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string][]report.Fixture, a.scheduleDays)
	for _, item := range matches {
		if item.Status == "FINISHED" {
			continue
		}
		if len(item.UTCDate) < len(dateLayout) {
			continue
		}
		matchDate := item.UTCDate[:len(dateLayout)]

		fixture := report.Fixture{
			Away:     teams.Abbr(item.AwayTeam.Name),
			AwayName: item.AwayTeam.Name,
			Home:     teams.Abbr(item.HomeTeam.Name),
			HomeName: item.HomeTeam.Name,
		}
		if kickoff, err := time.Parse("2006-01-02T15:04:05Z", item.UTCDate); err == nil {
			local := kickoff.In(a.loc)
			fixture.Time = local.Format("15:04")
			fixture.TimeLabel = local.Format("03:04 PM MST")
		}
		byDate[matchDate] = append(byDate[matchDate], fixture)
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	out := make([]report.ScheduleDay, 0, len(dates))
	for _, date := range dates {
		parsed, err := time.Parse(dateLayout, date)
		if err != nil {
			continue
		}
		out = append(out, report.ScheduleDay{
			Date:     date,
			DayLabel: parsed.Format("Mon"),
			Games:    byDate[date],
		})
	}

	return out, nil
}

func sideScore(team matchTeam, score *int) report.TeamScore {
	return report.TeamScore{
		Abbr:  teams.Abbr(team.Name),
		Name:  team.Name,
		Score: intOrZero(score),
	}
}

func intOrZero(value *int) int {
	if value == nil {
		return 0
	}
	return *value
}

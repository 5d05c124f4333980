package espn

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/thesportspage/backend/internal/domain/report"
	"github.com/thesportspage/backend/internal/platform/httpjson"
	"github.com/thesportspage/backend/internal/platform/logging"
)

// Code is the league key under which this adapter reports.
const Code = "nba"

const (
	dateLayout    = "2006-01-02"
	espnDayLayout = "20060102"

	maxScorers = 6
	maxLeaders = 10
)

// Adapter translates ESPN's basketball feeds into the canonical report
// model. Scoreboard retrieval walks an ordered strategy list so the NBA CDN
// can back up the ESPN site API when it misbehaves.
type Adapter struct {
	baseURL      string
	coreURL      string
	cdnURL       string
	scoreSources []string
	http         *httpjson.Client
	cdn          *httpjson.Client
	logger       *logging.Logger
	loc          *time.Location
	scheduleDays int
}

type AdapterConfig struct {
	BaseURL      string
	CoreBaseURL  string
	CDNBaseURL   string
	ScoreSources []string
	Client       *httpjson.Client
	CDNClient    *httpjson.Client
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
	sources := cfg.ScoreSources
	if len(sources) == 0 {
		sources = []string{"espn", "cdn"}
	}
	cdn := cfg.CDNClient
	if cdn == nil {
		cdn = cfg.Client
	}
	return &Adapter{
		baseURL:      cfg.BaseURL,
		coreURL:      cfg.CoreBaseURL,
		cdnURL:       cfg.CDNBaseURL,
		scoreSources: sources,
		http:         cfg.Client,
		cdn:          cdn,
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

	out.Yesterday = a.fetchYesterday(ctx, refDate)

	standings, err := a.fetchStandings(ctx)
	if err != nil {
		a.logger.WarnContext(ctx, "nba: fetch standings failed", "error", err)
		standings = map[string][]report.Standing{}
	}
	out.Standings = standings

	out.Leaders = a.fetchLeaders(ctx, refDate)

	schedule, err := a.fetchSchedule(ctx, refDate)
	if err != nil {
		a.logger.WarnContext(ctx, "nba: fetch schedule failed", "error", err)
		schedule = []report.ScheduleDay{}
	}
	out.Schedule = schedule

	return out
}

// fetchYesterday walks the configured source list in order and keeps the
// first strategy that yields at least one finished game.
func (a *Adapter) fetchYesterday(ctx context.Context, refDate time.Time) report.Scoreboard {
	dateStr := refDate.Format(dateLayout)

	for _, source := range a.scoreSources {
		var (
			games []report.Game
			err   error
		)
		switch source {
		case "espn":
			games, err = a.scoresFromESPN(ctx, refDate)
		case "cdn":
			games, err = a.scoresFromCDN(ctx, refDate)
		default:
			err = crerr.Newf("unknown score source %q", source)
		}
		if err != nil {
			a.logger.WarnContext(ctx, "nba: score source failed", "source", source, "error", err)
			continue
		}
		if len(games) == 0 {
			a.logger.InfoContext(ctx, "nba: score source empty", "source", source, "date", dateStr)
			continue
		}
		return report.Scoreboard{Date: dateStr, Games: games}
	}

	return report.Scoreboard{Date: dateStr, Games: []report.Game{}}
}

func (a *Adapter) scoresFromESPN(ctx context.Context, refDate time.Time) ([]report.Game, error) {
	var envelope scoreboardEnvelope
	url := a.baseURL + "/scoreboard?dates=" + refDate.Format(espnDayLayout)
	if err := a.http.GetJSON(ctx, url, &envelope); err != nil {
		return nil, err
	}

	games := make([]report.Game, 0, len(envelope.Events))
	for _, item := range envelope.Events {
		if !item.Status.Type.Completed || len(item.Competitions) == 0 {
			continue
		}
		home, away, ok := splitCompetitors(item.Competitions[0].Competitors)
		if !ok {
			continue
		}

		game := report.Game{
			GameID:      item.ID,
			Away:        teamScore(away),
			Home:        teamScore(home),
			Status:      report.StatusFinal,
			PeriodCount: 4,
			BoxScore:    a.fetchBoxScore(ctx, item.ID),
		}
		games = append(games, game)
	}
	return games, nil
}

// scoresFromCDN reads the NBA CDN live scoreboard. The feed only ever holds
// the current slate, so any other requested date yields nothing.
func (a *Adapter) scoresFromCDN(ctx context.Context, refDate time.Time) ([]report.Game, error) {
	var envelope cdnEnvelope
	if err := a.cdn.GetJSON(ctx, a.cdnURL+"/scoreboard/todaysScoreboard_00.json", &envelope); err != nil {
		return nil, err
	}
	if envelope.Scoreboard.GameDate != refDate.Format(dateLayout) {
		return nil, nil
	}

	games := make([]report.Game, 0, len(envelope.Scoreboard.Games))
	for _, item := range envelope.Scoreboard.Games {
		// gameStatus 3 is final in the CDN feed.
		if item.GameStatus != 3 {
			continue
		}
		periods := item.Period
		if periods <= 0 {
			periods = 4
		}
		games = append(games, report.Game{
			GameID:      item.GameID,
			Away:        cdnTeamScore(item.AwayTeam),
			Home:        cdnTeamScore(item.HomeTeam),
			Status:      report.StatusFinal,
			PeriodCount: periods,
			BoxScore:    report.EmptyBoxScore(),
		})
	}
	return games, nil
}

// fetchBoxScore degrades to the empty shape; a missing summary never drops
// the score row itself.
func (a *Adapter) fetchBoxScore(ctx context.Context, eventID string) *report.BoxScore {
	box := report.EmptyBoxScore()

	var summary summaryEnvelope
	if err := a.http.GetJSON(ctx, a.baseURL+"/summary?event="+eventID, &summary); err != nil {
		a.logger.WarnContext(ctx, "nba: fetch summary failed", "event_id", eventID, "error", err)
		return box
	}

	for _, comp := range summary.Header.Competitions {
		for _, side := range comp.Competitors {
			quarters := make([]int, 0, len(side.Linescores))
			for _, entry := range side.Linescores {
				quarters = append(quarters, linescoreValue(entry))
			}
			if side.HomeAway == "home" {
				box.LineScore.Home = quarters
			} else {
				box.LineScore.Away = quarters
			}
		}
	}

	scorers := make([]report.Participant, 0, 16)
	for _, teamData := range summary.Boxscore.Players {
		abbr := teamData.Team.Abbreviation
		for _, group := range teamData.Statistics {
			for _, row := range group.Athletes {
				if len(row.Stats) == 0 {
					continue
				}
				line := statLine(group.Labels, row.Stats)
				points := line["PTS"]
				if points == 0 {
					continue
				}
				fgm, fga := splitMade(lineRaw(group.Labels, row.Stats, "FG"))
				fg3m, fg3a := splitMade(lineRaw(group.Labels, row.Stats, "3PT"))
				scorers = append(scorers, report.Participant{
					Team: abbr,
					Name: row.Athlete.DisplayName,
					Stats: map[string]int{
						"pts":  points,
						"reb":  line["REB"],
						"ast":  line["AST"],
						"fgm":  fgm,
						"fga":  fga,
						"fg3m": fg3m,
						"fg3a": fg3a,
					},
				})
			}
		}
	}
	sort.SliceStable(scorers, func(i, j int) bool {
		return scorers[i].Stats["pts"] > scorers[j].Stats["pts"]
	})
	if len(scorers) > maxScorers {
		scorers = scorers[:maxScorers]
	}
	box.Participants = scorers

	return box
}

func (a *Adapter) fetchStandings(ctx context.Context) (map[string][]report.Standing, error) {
	var envelope standingsEnvelope
	if err := a.http.GetJSON(ctx, a.baseURL+"/standings", &envelope); err != nil {
		return nil, err
	}

	out := map[string][]report.Standing{
		"Eastern": {},
		"Western": {},
	}
	for _, group := range envelope.Children {
		conference := ""
		switch {
		case strings.Contains(group.Name, "Eastern"):
			conference = "Eastern"
		case strings.Contains(group.Name, "Western"):
			conference = "Western"
		default:
			continue
		}

		rows := make([]report.Standing, 0, len(group.Standings.Entries))
		for _, entry := range group.Standings.Entries {
			values := make(map[string]float64, len(entry.Stats))
			display := make(map[string]string, len(entry.Stats))
			for _, stat := range entry.Stats {
				values[stat.Name] = stat.Value
				display[stat.Name] = stat.DisplayValue
			}

			gamesBack := display["gamesBehind"]
			if gamesBack == "" || gamesBack == "0" {
				gamesBack = "-"
			}
			streak := display["streak"]
			if streak == "" {
				streak = "-"
			}

			rows = append(rows, report.Standing{
				Team:      entry.Team.Abbreviation,
				TeamName:  entry.Team.DisplayName,
				Wins:      int(values["wins"]),
				Losses:    int(values["losses"]),
				WinPct:    values["winPercent"],
				GamesBack: gamesBack,
				Streak:    streak,
			})
		}

		sort.SliceStable(rows, func(i, j int) bool { return rows[i].WinPct > rows[j].WinPct })
		report.RerankStandings(rows)
		out[conference] = rows
	}

	return out, nil
}

var leaderCategoryKeys = map[string]string{
	"pointsPerGame":   "points",
	"reboundsPerGame": "rebounds",
	"assistsPerGame":  "assists",
}

// fetchLeaders reads the core leader boards and resolves every athlete and
// team through its $ref link. A dead link leaves placeholder fields rather
// than losing the row.
func (a *Adapter) fetchLeaders(ctx context.Context, refDate time.Time) map[string][]report.Leader {
	out := map[string][]report.Leader{
		"points":   {},
		"rebounds": {},
		"assists":  {},
	}

	season := seasonYear(refDate)
	url := a.coreURL + "/seasons/" + strconv.Itoa(season) + "/types/2/leaders"

	var envelope leadersEnvelope
	if err := a.http.GetJSON(ctx, url, &envelope); err != nil {
		a.logger.WarnContext(ctx, "nba: fetch leaders failed", "error", err)
		return out
	}

	for _, category := range envelope.Categories {
		key, ok := leaderCategoryKeys[category.Name]
		if !ok {
			continue
		}
		rows := make([]report.Leader, 0, maxLeaders)
		for i, leader := range category.Leaders {
			if i >= maxLeaders {
				break
			}
			rows = append(rows, report.Leader{
				Player: a.resolveAthlete(ctx, leader.Athlete.Ref),
				Team:   a.resolveTeam(ctx, leader.Team.Ref),
				Value:  strconv.FormatFloat(leader.Value, 'f', 1, 64),
			})
		}
		report.Rerank(rows)
		out[key] = rows
	}

	return out
}

func (a *Adapter) resolveAthlete(ctx context.Context, ref string) string {
	if ref == "" {
		return "Unknown"
	}
	var athlete refAthlete
	if err := a.http.GetJSON(ctx, ref, &athlete); err != nil || athlete.DisplayName == "" {
		return "Unknown"
	}
	return athlete.DisplayName
}

func (a *Adapter) resolveTeam(ctx context.Context, ref string) string {
	if ref == "" {
		return "UNK"
	}
	var team refTeam
	if err := a.http.GetJSON(ctx, ref, &team); err != nil || team.Abbreviation == "" {
		return "UNK"
	}
	return team.Abbreviation
}

func (a *Adapter) fetchSchedule(ctx context.Context, refDate time.Time) ([]report.ScheduleDay, error) {
	out := make([]report.ScheduleDay, 0, a.scheduleDays)
	today := refDate.AddDate(0, 0, 1)

	for offset := 0; offset < a.scheduleDays; offset++ {
		target := today.AddDate(0, 0, offset)

		var envelope scoreboardEnvelope
		url := a.baseURL + "/scoreboard?dates=" + target.Format(espnDayLayout)
		if err := a.http.GetJSON(ctx, url, &envelope); err != nil {
			a.logger.WarnContext(ctx, "nba: fetch schedule day failed", "date", target.Format(dateLayout), "error", err)
			continue
		}

		games := make([]report.Fixture, 0, len(envelope.Events))
		for _, item := range envelope.Events {
			if item.Status.Type.Completed || len(item.Competitions) == 0 {
				continue
			}
			home, away, ok := splitCompetitors(item.Competitions[0].Competitors)
			if !ok {
				continue
			}

			timeLabel := item.Status.Type.ShortDetail
			if timeLabel == "" {
				timeLabel = "TBD"
				if parsed, err := time.Parse("2006-01-02T15:04Z", item.Date); err == nil {
					timeLabel = parsed.In(a.loc).Format("03:04 PM")
				}
			}

			games = append(games, report.Fixture{
				Time:      timeLabel,
				TimeLabel: timeLabel,
				Away:      away.Team.Abbreviation,
				AwayName:  away.Team.DisplayName,
				Home:      home.Team.Abbreviation,
				HomeName:  home.Team.DisplayName,
			})
		}

		if len(games) > 0 {
			out = append(out, report.ScheduleDay{
				Date:     target.Format(dateLayout),
				DayLabel: target.Format("Mon"),
				Games:    games,
			})
		}
	}

	return out, nil
}

func splitCompetitors(competitors []competitor) (home, away competitor, ok bool) {
	found := 0
	for _, side := range competitors {
		if side.HomeAway == "home" {
			home = side
			found++
		} else {
			away = side
			found++
		}
	}
	return home, away, found >= 2
}

func teamScore(side competitor) report.TeamScore {
	score, _ := strconv.Atoi(side.Score)
	return report.TeamScore{
		Abbr:  side.Team.Abbreviation,
		Name:  side.Team.DisplayName,
		Score: score,
	}
}

func cdnTeamScore(team cdnTeam) report.TeamScore {
	name := strings.TrimSpace(team.TeamCity + " " + team.TeamName)
	return report.TeamScore{
		Abbr:  team.TeamTricode,
		Name:  name,
		Score: team.Score,
	}
}

func linescoreValue(entry linescoreEntry) int {
	if entry.DisplayValue != "" {
		if value, err := strconv.Atoi(entry.DisplayValue); err == nil {
			return value
		}
	}
	return int(entry.Value)
}

func statLine(labels, stats []string) map[string]int {
	out := make(map[string]int, len(labels))
	for i, label := range labels {
		if i >= len(stats) {
			break
		}
		value, err := strconv.Atoi(stats[i])
		if err != nil {
			continue
		}
		out[label] = value
	}
	return out
}

func lineRaw(labels, stats []string, label string) string {
	for i, candidate := range labels {
		if candidate == label && i < len(stats) {
			return stats[i]
		}
	}
	return ""
}

// splitMade parses ESPN's made-attempted strings such as "10-18".
func splitMade(value string) (made, attempted int) {
	parts := strings.SplitN(value, "-", 2)
	if len(parts) > 0 {
		made, _ = strconv.Atoi(parts[0])
	}
	if len(parts) > 1 {
		attempted, _ = strconv.Atoi(parts[1])
	}
	return made, attempted
}

// seasonYear maps a calendar date to the ESPN season identifier, which names
// the year the season ends in.
func seasonYear(now time.Time) int {
	if now.Month() >= time.October {
		return now.Year() + 1
	}
	return now.Year()
}

package report

import "time"

// Game status values as rendered in the output artifact.
const (
	StatusScheduled  = "Scheduled"
	StatusInProgress = "In Progress"
	StatusFinal      = "Final"
	StatusFinalOT    = "Final/OT"
	StatusFinalSO    = "Final/SO"
)

// TeamScore is one side of a game.
type TeamScore struct {
	Abbr  string `json:"abbr"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Game is one finished or in-progress contest. BoxScore is nil when
// enrichment was never attempted or the game is not finished; consumers must
// tolerate null, the key itself is always present.
type Game struct {
	GameID      string    `json:"game_id"`
	Away        TeamScore `json:"away"`
	Home        TeamScore `json:"home"`
	Status      string    `json:"status"`
	PeriodCount int       `json:"period_count"`
	BoxScore    *BoxScore `json:"box_score"`
}

// IsFinal reports whether a status string denotes a completed game.
func IsFinal(status string) bool {
	switch status {
	case StatusFinal, StatusFinalOT, StatusFinalSO:
		return true
	default:
		return false
	}
}

// LineScore holds ordered per-segment scores. A segment is a period, quarter
// or inning depending on the sport.
type LineScore struct {
	Away []int `json:"away"`
	Home []int `json:"home"`
}

// Participant is one player's stat line inside a box score. Stat keys are
// sport-specific (goals/assists/points, pts/reb/ast, ab/r/h/rbi, ...).
type Participant struct {
	Team  string         `json:"team"`
	Name  string         `json:"name"`
	Stats map[string]int `json:"stats"`
}

// Note is one sport-specific highlight group, e.g. the home-run log or the
// goalie save lines. Entries are pre-formatted display strings.
type Note struct {
	Label   string   `json:"label"`
	Entries []string `json:"entries"`
}

// BoxScore is the normalized enrichment payload for one completed game.
type BoxScore struct {
	LineScore    LineScore     `json:"line_score"`
	Participants []Participant `json:"participants"`
	Notes        []Note        `json:"notes,omitempty"`
}

// EmptyBoxScore is the degraded enrichment shape: present but carrying no
// data, so the game row itself still renders with its final score.
func EmptyBoxScore() *BoxScore {
	return &BoxScore{
		LineScore:    LineScore{Away: []int{}, Home: []int{}},
		Participants: []Participant{},
	}
}

// Standing is one row of a division, conference or table grouping.
// Sport-specific derived fields stay zero-valued where not applicable.
type Standing struct {
	Rank         int     `json:"rank"`
	Team         string  `json:"team"`
	TeamName     string  `json:"team_name"`
	Played       int     `json:"played,omitempty"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	Draws        int     `json:"draws,omitempty"`
	OTLosses     int     `json:"ot_losses,omitempty"`
	WinPct       float64 `json:"win_pct,omitempty"`
	GamesBack    string  `json:"games_back,omitempty"`
	Points       int     `json:"points,omitempty"`
	GoalsFor     int     `json:"goals_for,omitempty"`
	GoalsAgainst int     `json:"goals_against,omitempty"`
	GoalDiff     int     `json:"goal_diff,omitempty"`
	Streak       string  `json:"streak,omitempty"`
	Form         string  `json:"form,omitempty"`
}

// Leader is one ranked entry in a statistical category. Value keeps the
// upstream's category-specific formatting (".345", "2.08", "31").
type Leader struct {
	Rank   int    `json:"rank"`
	Player string `json:"player"`
	Team   string `json:"team"`
	Value  string `json:"value"`
}

// Rerank rewrites ranks to the contiguous sequence 1..N in slice order.
// Callers sort first; ties keep their upstream relative order.
func Rerank(leaders []Leader) {
	for i := range leaders {
		leaders[i].Rank = i + 1
	}
}

// RerankStandings rewrites standing ranks to 1..N in slice order.
func RerankStandings(rows []Standing) {
	for i := range rows {
		rows[i].Rank = i + 1
	}
}

// Fixture is one upcoming game. Broadcast is the empty string when unknown,
// never null.
type Fixture struct {
	Time      string `json:"time"`
	TimeLabel string `json:"time_label"`
	Away      string `json:"away"`
	AwayName  string `json:"away_name,omitempty"`
	Home      string `json:"home"`
	HomeName  string `json:"home_name,omitempty"`
	Broadcast string `json:"broadcast"`
}

// ScheduleDay groups upcoming fixtures under one calendar date.
type ScheduleDay struct {
	Date     string    `json:"date"`
	DayLabel string    `json:"day_label"`
	Games    []Fixture `json:"games"`
}

// Scoreboard is a dated collection of games, normally "yesterday". An empty
// Date with no games means no recent matchday was found (soccer).
type Scoreboard struct {
	Date  string `json:"date"`
	Games []Game `json:"games"`
}

// LeagueReport aggregates one league's sections. On total adapter failure
// Error is set and every collection is its empty shape, never nil.
type LeagueReport struct {
	Error     string                `json:"error,omitempty"`
	Yesterday Scoreboard            `json:"yesterday"`
	Standings map[string][]Standing `json:"standings"`
	Leaders   map[string][]Leader   `json:"leaders"`
	Schedule  []ScheduleDay         `json:"schedule"`
}

// EmptyLeagueReport returns a report with every collection initialized to its
// empty shape.
func EmptyLeagueReport() LeagueReport {
	return LeagueReport{
		Yesterday: Scoreboard{Games: []Game{}},
		Standings: map[string][]Standing{},
		Leaders:   map[string][]Leader{},
		Schedule:  []ScheduleDay{},
	}
}

// ErrorLeagueReport is the report shape for a league whose adapter failed
// entirely.
func ErrorLeagueReport(msg string) LeagueReport {
	out := EmptyLeagueReport()
	out.Error = msg
	return out
}

// Normalize backfills nil collections so the serialized report never carries
// a JSON null where the consumer expects an empty collection.
func (r *LeagueReport) Normalize() {
	if r.Yesterday.Games == nil {
		r.Yesterday.Games = []Game{}
	}
	if r.Standings == nil {
		r.Standings = map[string][]Standing{}
	}
	if r.Leaders == nil {
		r.Leaders = map[string][]Leader{}
	}
	if r.Schedule == nil {
		r.Schedule = []ScheduleDay{}
	}
}

// RunDocument is the artifact written once per run. League keys iterate in
// Order; the map alone would lose the declared ordering.
type RunDocument struct {
	GeneratedAt time.Time               `json:"generated_at"`
	DateLabel   string                  `json:"date_label"`
	Leagues     map[string]LeagueReport `json:"leagues"`

	Order []string `json:"-"`
}

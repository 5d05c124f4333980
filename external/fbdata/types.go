package fbdata

// Upstream envelope types for api-football-data.org v4. Score fields are
// nullable before kickoff, so they decode through pointers.

type matchesEnvelope struct {
	Matches []match `json:"matches"`
}

type match struct {
	ID       int64      `json:"id"`
	UTCDate  string     `json:"utcDate"`
	Status   string     `json:"status"`
	Matchday int        `json:"matchday"`
	HomeTeam matchTeam  `json:"homeTeam"`
	AwayTeam matchTeam  `json:"awayTeam"`
	Score    matchScore `json:"score"`
}

type matchTeam struct {
	Name string `json:"name"`
}

type matchScore struct {
	FullTime scorePair `json:"fullTime"`
	HalfTime scorePair `json:"halfTime"`
}

type scorePair struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

type standingsEnvelope struct {
	Standings []standingsTable `json:"standings"`
}

type standingsTable struct {
	Type  string         `json:"type"`
	Table []standingsRow `json:"table"`
}

type standingsRow struct {
	Position       int       `json:"position"`
	Team           matchTeam `json:"team"`
	PlayedGames    int       `json:"playedGames"`
	Won            int       `json:"won"`
	Draw           int       `json:"draw"`
	Lost           int       `json:"lost"`
	GoalsFor       int       `json:"goalsFor"`
	GoalsAgainst   int       `json:"goalsAgainst"`
	GoalDifference int       `json:"goalDifference"`
	Points         int       `json:"points"`
	Form           string    `json:"form"`
}

type scorersEnvelope struct {
	Scorers []scorer `json:"scorers"`
}

type scorer struct {
	Player scorerPlayer `json:"player"`
	Team   matchTeam    `json:"team"`
	Goals  int          `json:"goals"`
}

type scorerPlayer struct {
	Name string `json:"name"`
}

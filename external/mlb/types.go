package mlb

// Upstream envelope types for statsapi.mlb.com. Only the fields the mapping
// reads are declared; the provider sends far more.

type scheduleEnvelope struct {
	Dates []scheduleDate `json:"dates"`
}

type scheduleDate struct {
	Date  string         `json:"date"`
	Games []scheduleGame `json:"games"`
}

type scheduleGame struct {
	GamePk   int64      `json:"gamePk"`
	GameDate string     `json:"gameDate"`
	Status   gameStatus `json:"status"`
	Teams    gameTeams  `json:"teams"`
}

type gameStatus struct {
	DetailedState     string `json:"detailedState"`
	AbstractGameState string `json:"abstractGameState"`
}

type gameTeams struct {
	Away gameTeamSide `json:"away"`
	Home gameTeamSide `json:"home"`
}

type gameTeamSide struct {
	Score int      `json:"score"`
	Team  teamInfo `json:"team"`
}

type teamInfo struct {
	Name string `json:"name"`
}

type linescoreEnvelope struct {
	Innings []inningLine `json:"innings"`
}

type inningLine struct {
	Away inningSide `json:"away"`
	Home inningSide `json:"home"`
}

type inningSide struct {
	Runs int `json:"runs"`
}

type boxscoreEnvelope struct {
	Teams boxscoreTeams `json:"teams"`
}

type boxscoreTeams struct {
	Away boxscoreTeam `json:"away"`
	Home boxscoreTeam `json:"home"`
}

type boxscoreTeam struct {
	Team    teamInfo                  `json:"team"`
	Players map[string]boxscorePlayer `json:"players"`
}

type boxscorePlayer struct {
	Person       personInfo  `json:"person"`
	BattingOrder string      `json:"battingOrder"`
	Stats        playerStats `json:"stats"`
	SeasonStats  playerStats `json:"seasonStats"`
	GameStatus   playerGame  `json:"gameStatus"`
}

type personInfo struct {
	FullName string `json:"fullName"`
}

type playerStats struct {
	Batting  battingStats  `json:"batting"`
	Pitching pitchingStats `json:"pitching"`
}

type battingStats struct {
	AtBats      int `json:"atBats"`
	Runs        int `json:"runs"`
	Hits        int `json:"hits"`
	RBI         int `json:"rbi"`
	BaseOnBalls int `json:"baseOnBalls"`
	StrikeOuts  int `json:"strikeOuts"`
}

type pitchingStats struct {
	InningsPitched  string `json:"inningsPitched"`
	Hits            int    `json:"hits"`
	Runs            int    `json:"runs"`
	EarnedRuns      int    `json:"earnedRuns"`
	BaseOnBalls     int    `json:"baseOnBalls"`
	StrikeOuts      int    `json:"strikeOuts"`
	NumberOfPitches int    `json:"numberOfPitches"`
	Saves           int    `json:"saves"`
	Holds           int    `json:"holds"`
	Wins            int    `json:"wins"`
	Losses          int    `json:"losses"`
	ERA             string `json:"era"`
}

type playerGame struct {
	IsWinner bool `json:"isWinner"`
	IsLoser  bool `json:"isLoser"`
}

type playByPlayEnvelope struct {
	AllPlays []play `json:"allPlays"`
}

type play struct {
	Result  playResult   `json:"result"`
	Matchup playMatchup  `json:"matchup"`
	Runners []playRunner `json:"runners"`
}

type playResult struct {
	Event string `json:"event"`
	RBI   int    `json:"rbi"`
}

type playMatchup struct {
	Batter personInfo `json:"batter"`
}

type playRunner struct {
	Movement runnerMovement `json:"movement"`
	Details  runnerDetails  `json:"details"`
}

type runnerMovement struct {
	IsOut *bool `json:"isOut"`
}

type runnerDetails struct {
	Runner personInfo `json:"runner"`
}

type standingsEnvelope struct {
	Records []standingsRecord `json:"records"`
}

type standingsRecord struct {
	Division    divisionInfo `json:"division"`
	TeamRecords []teamRecord `json:"teamRecords"`
}

type divisionInfo struct {
	Name string `json:"name"`
}

type teamRecord struct {
	Team              teamInfo   `json:"team"`
	Wins              int        `json:"wins"`
	Losses            int        `json:"losses"`
	WinningPercentage string     `json:"winningPercentage"`
	GamesBack         string     `json:"gamesBack"`
	Streak            streakInfo `json:"streak"`
}

type streakInfo struct {
	StreakCode string `json:"streakCode"`
}

type leadersEnvelope struct {
	LeagueLeaders []leaderCategory `json:"leagueLeaders"`
}

type leaderCategory struct {
	LeaderCategory string       `json:"leaderCategory"`
	Leaders        []leaderItem `json:"leaders"`
}

type leaderItem struct {
	Rank   int        `json:"rank"`
	Person personInfo `json:"person"`
	Team   teamInfo   `json:"team"`
	Value  string     `json:"value"`
}

package nhl

// Upstream envelope types for api-web.nhle.com/v1. The provider wraps most
// display strings in a localized object; only the default variant is read.

type localized struct {
	Default string `json:"default"`
}

type scoreboardEnvelope struct {
	GamesByDate []scoreboardDate `json:"gamesByDate"`
}

type scoreboardDate struct {
	Date  string           `json:"date"`
	Games []scoreboardGame `json:"games"`
}

type scoreboardGame struct {
	ID               int64            `json:"id"`
	GameState        string           `json:"gameState"`
	Period           int              `json:"period"`
	PeriodDescriptor periodDescriptor `json:"periodDescriptor"`
	StartTimeUTC     string           `json:"startTimeUTC"`
	TVBroadcasts     []tvBroadcast    `json:"tvBroadcasts"`
	AwayTeam         scoreboardTeam   `json:"awayTeam"`
	HomeTeam         scoreboardTeam   `json:"homeTeam"`
}

type periodDescriptor struct {
	PeriodType string `json:"periodType"`
}

type tvBroadcast struct {
	Network string `json:"network"`
}

type scoreboardTeam struct {
	Abbrev string    `json:"abbrev"`
	Name   localized `json:"name"`
	Score  int       `json:"score"`
	Record string    `json:"record"`
}

type boxscoreEnvelope struct {
	AwayTeam          boxscoreTeam    `json:"awayTeam"`
	HomeTeam          boxscoreTeam    `json:"homeTeam"`
	Linescore         boxLinescore    `json:"linescore"`
	PlayerByGameStats playerGameStats `json:"playerByGameStats"`
}

type boxscoreTeam struct {
	Abbrev string `json:"abbrev"`
	SOG    int    `json:"sog"`
}

type boxLinescore struct {
	ByPeriod []periodScore `json:"byPeriod"`
}

type periodScore struct {
	Away int `json:"away"`
	Home int `json:"home"`
}

type playerGameStats struct {
	AwayTeam teamPlayers `json:"awayTeam"`
	HomeTeam teamPlayers `json:"homeTeam"`
}

type teamPlayers struct {
	Forwards []skaterLine `json:"forwards"`
	Defense  []skaterLine `json:"defense"`
	Goalies  []goalieLine `json:"goalies"`
}

type skaterLine struct {
	Name    localized `json:"name"`
	Goals   int       `json:"goals"`
	Assists int       `json:"assists"`
}

type goalieLine struct {
	Name         localized `json:"name"`
	Saves        int       `json:"saves"`
	ShotsAgainst int       `json:"shotsAgainst"`
}

type standingsEnvelope struct {
	Standings []standingEntry `json:"standings"`
}

type standingEntry struct {
	DivisionName     string    `json:"divisionName"`
	DivisionSequence int       `json:"divisionSequence"`
	TeamAbbrev       localized `json:"teamAbbrev"`
	TeamName         localized `json:"teamName"`
	GamesPlayed      int       `json:"gamesPlayed"`
	Wins             int       `json:"wins"`
	Losses           int       `json:"losses"`
	OTLosses         int       `json:"otLosses"`
	Points           int       `json:"points"`
	StreakCode       string    `json:"streakCode"`
	StreakCount      int       `json:"streakCount"`
}

type spotlightPlayer struct {
	PlayerID    int64  `json:"playerId"`
	Position    string `json:"position"`
	TeamTriCode string `json:"teamTriCode"`
}

type playerLanding struct {
	FirstName     localized     `json:"firstName"`
	LastName      localized     `json:"lastName"`
	FeaturedStats featuredStats `json:"featuredStats"`
}

type featuredStats struct {
	RegularSeason regularSeason `json:"regularSeason"`
}

type regularSeason struct {
	SubSeason *subSeasonStats `json:"subSeason"`
}

type subSeasonStats struct {
	Goals   int `json:"goals"`
	Assists int `json:"assists"`
	Points  int `json:"points"`
}

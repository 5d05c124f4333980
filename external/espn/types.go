package espn

// Upstream envelope types for the ESPN site, core and NBA CDN feeds. ESPN's
// site API is event-shaped; the core API links everything through $ref.

type scoreboardEnvelope struct {
	Events []event `json:"events"`
}

type event struct {
	ID           string        `json:"id"`
	Date         string        `json:"date"`
	Status       eventStatus   `json:"status"`
	Competitions []competition `json:"competitions"`
}

type eventStatus struct {
	Type statusType `json:"type"`
}

type statusType struct {
	Completed   bool   `json:"completed"`
	ShortDetail string `json:"shortDetail"`
}

type competition struct {
	Competitors []competitor `json:"competitors"`
}

type competitor struct {
	HomeAway   string           `json:"homeAway"`
	Score      string           `json:"score"`
	Team       teamInfo         `json:"team"`
	Linescores []linescoreEntry `json:"linescores"`
}

type teamInfo struct {
	Abbreviation string `json:"abbreviation"`
	DisplayName  string `json:"displayName"`
}

type linescoreEntry struct {
	DisplayValue string  `json:"displayValue"`
	Value        float64 `json:"value"`
}

type summaryEnvelope struct {
	Header   summaryHeader `json:"header"`
	Boxscore summaryBox    `json:"boxscore"`
}

type summaryHeader struct {
	Competitions []competition `json:"competitions"`
}

type summaryBox struct {
	Players []teamBox `json:"players"`
}

type teamBox struct {
	Team       teamInfo    `json:"team"`
	Statistics []statGroup `json:"statistics"`
}

type statGroup struct {
	Labels   []string     `json:"labels"`
	Athletes []athleteRow `json:"athletes"`
}

type athleteRow struct {
	Athlete athleteInfo `json:"athlete"`
	Stats   []string    `json:"stats"`
}

type athleteInfo struct {
	DisplayName string `json:"displayName"`
}

type standingsEnvelope struct {
	Children []standingsGroup `json:"children"`
}

type standingsGroup struct {
	Name      string         `json:"name"`
	Standings standingsTable `json:"standings"`
}

type standingsTable struct {
	Entries []standingsEntry `json:"entries"`
}

type standingsEntry struct {
	Team  teamInfo       `json:"team"`
	Stats []standingStat `json:"stats"`
}

type standingStat struct {
	Name         string  `json:"name"`
	Value        float64 `json:"value"`
	DisplayValue string  `json:"displayValue"`
}

type leadersEnvelope struct {
	Categories []leaderCategory `json:"categories"`
}

type leaderCategory struct {
	Name    string       `json:"name"`
	Leaders []leaderItem `json:"leaders"`
}

type leaderItem struct {
	Value   float64 `json:"value"`
	Athlete refLink `json:"athlete"`
	Team    refLink `json:"team"`
}

type refLink struct {
	Ref string `json:"$ref"`
}

type refAthlete struct {
	DisplayName string `json:"displayName"`
}

type refTeam struct {
	Abbreviation string `json:"abbreviation"`
}

type cdnEnvelope struct {
	Scoreboard cdnScoreboard `json:"scoreboard"`
}

type cdnScoreboard struct {
	GameDate string    `json:"gameDate"`
	Games    []cdnGame `json:"games"`
}

type cdnGame struct {
	GameID         string  `json:"gameId"`
	GameStatus     int     `json:"gameStatus"`
	GameStatusText string  `json:"gameStatusText"`
	Period         int     `json:"period"`
	AwayTeam       cdnTeam `json:"awayTeam"`
	HomeTeam       cdnTeam `json:"homeTeam"`
}

type cdnTeam struct {
	TeamTricode string `json:"teamTricode"`
	TeamCity    string `json:"teamCity"`
	TeamName    string `json:"teamName"`
	Score       int    `json:"score"`
}

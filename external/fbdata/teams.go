package fbdata

import "github.com/thesportspage/backend/internal/domain/teamabbr"

var teams = teamabbr.New(map[string]string{
	"Arsenal FC":                 "ARS",
	"Aston Villa FC":             "AVL",
	"AFC Bournemouth":            "BOU",
	"Brentford FC":               "BRE",
	"Brighton & Hove Albion FC":  "BHA",
	"Burnley FC":                 "BUR",
	"Chelsea FC":                 "CHE",
	"Crystal Palace FC":          "CRY",
	"Everton FC":                 "EVE",
	"Fulham FC":                  "FUL",
	"Ipswich Town FC":            "IPS",
	"Leicester City FC":          "LEI",
	"Liverpool FC":               "LIV",
	"Luton Town FC":              "LUT",
	"Manchester City FC":         "MCI",
	"Manchester United FC":       "MUN",
	"Newcastle United FC":        "NEW",
	"Nottingham Forest FC":       "NFO",
	"Sheffield United FC":        "SHU",
	"Southampton FC":             "SOU",
	"Tottenham Hotspur FC":       "TOT",
	"West Ham United FC":         "WHU",
	"Wolverhampton Wanderers FC": "WOL",
})

package mlb

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/thesportspage/backend/internal/domain/report"
)

// enrich performs the secondary retrievals for one finished game. Every
// sub-retrieval degrades independently: a dead play-by-play feed costs the
// highlight notes, nothing else. The returned box score is never nil.
func (a *Adapter) enrich(ctx context.Context, gameID int64) (*report.BoxScore, int) {
	box := report.EmptyBoxScore()
	innings := 0

	var line linescoreEnvelope
	if err := a.http.GetJSON(ctx, gamePath(a.baseURL, gameID, "linescore"), &line); err != nil {
		a.logger.WarnContext(ctx, "mlb: fetch linescore failed", "game_id", gameID, "error", err)
	} else {
		innings = len(line.Innings)
		box.LineScore = mapLineScore(line)
	}

	var boxData boxscoreEnvelope
	if err := a.http.GetJSON(ctx, gamePath(a.baseURL, gameID, "boxscore"), &boxData); err != nil {
		a.logger.WarnContext(ctx, "mlb: fetch boxscore failed", "game_id", gameID, "error", err)
	} else {
		box.Participants = mapBatters(boxData)
		if note, ok := pitchingNote(boxData); ok {
			box.Notes = append(box.Notes, note)
		}
	}

	var plays playByPlayEnvelope
	if err := a.http.GetJSON(ctx, gamePath(a.baseURL, gameID, "playByPlay"), &plays); err != nil {
		a.logger.WarnContext(ctx, "mlb: fetch play-by-play failed", "game_id", gameID, "error", err)
	} else {
		box.Notes = append(box.Notes, highlightNotes(plays)...)
	}

	return box, innings
}

func mapLineScore(line linescoreEnvelope) report.LineScore {
	away := make([]int, 0, len(line.Innings))
	home := make([]int, 0, len(line.Innings))
	for _, inning := range line.Innings {
		away = append(away, inning.Away.Runs)
		home = append(home, inning.Home.Runs)
	}
	return report.LineScore{Away: away, Home: home}
}

// mapBatters returns the batting lines in batting order, filtered to players
// with a scoring contribution. Batting order is the sport's upstream order;
// no merit re-sort applies.
func mapBatters(boxData boxscoreEnvelope) []report.Participant {
	out := make([]report.Participant, 0, 18)
	for _, side := range []boxscoreTeam{boxData.Teams.Away, boxData.Teams.Home} {
		abbr := teams.Abbr(side.Team.Name)

		type orderedBatter struct {
			order  int
			player boxscorePlayer
		}
		batters := make([]orderedBatter, 0, len(side.Players))
		for _, player := range side.Players {
			if player.BattingOrder == "" {
				continue
			}
			order, err := strconv.Atoi(player.BattingOrder)
			if err != nil {
				continue
			}
			batters = append(batters, orderedBatter{order: order, player: player})
		}
		sort.SliceStable(batters, func(i, j int) bool { return batters[i].order < batters[j].order })

		for _, item := range batters {
			batting := item.player.Stats.Batting
			if batting.Runs+batting.Hits+batting.RBI == 0 {
				continue
			}
			out = append(out, report.Participant{
				Team: abbr,
				Name: item.player.Person.FullName,
				Stats: map[string]int{
					"ab":  batting.AtBats,
					"r":   batting.Runs,
					"h":   batting.Hits,
					"rbi": batting.RBI,
					"bb":  batting.BaseOnBalls,
					"so":  batting.StrikeOuts,
				},
			})
		}
	}
	return out
}

func pitchingNote(boxData boxscoreEnvelope) (report.Note, bool) {
	entries := make([]string, 0, 8)
	for _, side := range []boxscoreTeam{boxData.Teams.Away, boxData.Teams.Home} {
		abbr := teams.Abbr(side.Team.Name)

		type appearance struct {
			innings float64
			line    string
		}
		appearances := make([]appearance, 0, len(side.Players))
		for _, player := range side.Players {
			pitching := player.Stats.Pitching
			if pitching.InningsPitched == "" {
				continue
			}
			ip, _ := strconv.ParseFloat(pitching.InningsPitched, 64)
			appearances = append(appearances, appearance{
				innings: ip,
				line:    pitchingLine(abbr, player),
			})
		}
		sort.SliceStable(appearances, func(i, j int) bool {
			if appearances[i].innings != appearances[j].innings {
				return appearances[i].innings > appearances[j].innings
			}
			return appearances[i].line < appearances[j].line
		})
		for _, item := range appearances {
			entries = append(entries, item.line)
		}
	}

	if len(entries) == 0 {
		return report.Note{}, false
	}
	return report.Note{Label: "Pitching", Entries: entries}, true
}

func pitchingLine(abbr string, player boxscorePlayer) string {
	pitching := player.Stats.Pitching
	season := player.SeasonStats.Pitching

	result := ""
	switch {
	case player.GameStatus.IsWinner:
		result = "W"
	case player.GameStatus.IsLoser:
		result = "L"
	case pitching.Saves > 0:
		result = "S"
	case pitching.Holds > 0:
		result = "H"
	}

	decorated := player.Person.FullName
	if result == "W" || result == "L" {
		decorated = fmt.Sprintf("%s (%s, %d-%d)", decorated, result, season.Wins, season.Losses)
	} else if result != "" {
		decorated = fmt.Sprintf("%s (%s)", decorated, result)
	}

	line := fmt.Sprintf("%s: %s %s IP, %d H, %d R, %d ER, %d BB, %d SO",
		abbr, decorated, pitching.InningsPitched, pitching.Hits, pitching.Runs,
		pitching.EarnedRuns, pitching.BaseOnBalls, pitching.StrikeOuts)
	if pitching.NumberOfPitches > 0 {
		line += fmt.Sprintf(", %d P", pitching.NumberOfPitches)
	}
	if season.ERA != "" {
		line += fmt.Sprintf(" (ERA %s)", season.ERA)
	}
	return line
}

// highlightNotes builds the newspaper footer lines from the play log:
// home runs with RBI counts, doubles, triples, stolen bases and the
// double-play count.
func highlightNotes(plays playByPlayEnvelope) []report.Note {
	homeRuns := make([]string, 0, 4)
	doubles := make([]string, 0, 4)
	triples := make([]string, 0, 2)
	stolenBases := make([]string, 0, 4)
	doublePlays := 0

	seenStealers := make(map[string]struct{}, 4)
	for _, item := range plays.AllPlays {
		event := item.Result.Event
		batter := item.Matchup.Batter.FullName

		switch {
		case strings.Contains(event, "Home Run"):
			rbi := item.Result.RBI
			if rbi <= 0 {
				rbi = 1
			}
			homeRuns = append(homeRuns, fmt.Sprintf("%s (%d)", batter, rbi))
		case event == "Double":
			doubles = append(doubles, batter)
		case event == "Triple":
			triples = append(triples, batter)
		case strings.Contains(event, "Stolen Base"):
			for _, runner := range item.Runners {
				if runner.Movement.IsOut != nil && *runner.Movement.IsOut {
					continue
				}
				name := runner.Details.Runner.FullName
				if name == "" {
					continue
				}
				if _, ok := seenStealers[name]; ok {
					continue
				}
				seenStealers[name] = struct{}{}
				stolenBases = append(stolenBases, name)
			}
		case strings.Contains(event, "Double Play") || strings.Contains(event, "DP"):
			doublePlays++
		}
	}

	out := make([]report.Note, 0, 5)
	if len(homeRuns) > 0 {
		out = append(out, report.Note{Label: "HR", Entries: homeRuns})
	}
	if len(doubles) > 0 {
		out = append(out, report.Note{Label: "2B", Entries: doubles})
	}
	if len(triples) > 0 {
		out = append(out, report.Note{Label: "3B", Entries: triples})
	}
	if len(stolenBases) > 0 {
		out = append(out, report.Note{Label: "SB", Entries: stolenBases})
	}
	if doublePlays > 0 {
		out = append(out, report.Note{Label: "DP", Entries: []string{strconv.Itoa(doublePlays)}})
	}
	return out
}

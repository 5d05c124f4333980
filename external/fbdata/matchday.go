package fbdata

import (
	"context"
	"strconv"
	"time"

	"github.com/thesportspage/backend/internal/domain/report"
)

// Matchday is the most recent calendar date with at least one finished
// fixture, together with that date's full result set.
type Matchday struct {
	Date    time.Time
	Matches []match
}

// resolveMatchday walks backward from the reference date, one same-day probe
// per candidate, and stops at the first date with a finished match. The
// second return is false when the lookback window is exhausted; callers must
// treat that as "no recent games", not as an empty date.
func (a *Adapter) resolveMatchday(ctx context.Context, refDate time.Time) (Matchday, bool) {
	for offset := 0; offset < a.lookbackDays; offset++ {
		candidate := refDate.AddDate(0, 0, -offset)
		dateStr := candidate.Format(dateLayout)

		matches, err := a.fetchMatches(ctx, dateStr, dateStr)
		if err != nil {
			a.logger.WarnContext(ctx, "epl: matchday probe failed", "date", dateStr, "error", err)
			continue
		}

		for _, item := range matches {
			if item.Status == "FINISHED" {
				a.logger.InfoContext(ctx, "epl: resolved matchday", "date", dateStr, "lookback_days", offset)
				return Matchday{Date: candidate, Matches: matches}, true
			}
		}
	}

	a.logger.InfoContext(ctx, "epl: no matchday within lookback window", "lookback_days", a.lookbackDays)
	return Matchday{}, false
}

// mapMatchday maps the selected date's results only; rejected probe dates
// never reach this point, so no speculative mapping work happens.
func (a *Adapter) mapMatchday(matchday Matchday) report.Scoreboard {
	games := make([]report.Game, 0, len(matchday.Matches))
	for _, item := range matchday.Matches {
		if item.Status != "FINISHED" && item.Status != "IN_PLAY" {
			continue
		}

		status := report.StatusFinal
		if item.Status == "IN_PLAY" {
			status = report.StatusInProgress
		}

		games = append(games, report.Game{
			GameID:      strconv.FormatInt(item.ID, 10),
			Away:        sideScore(item.AwayTeam, item.Score.FullTime.Away),
			Home:        sideScore(item.HomeTeam, item.Score.FullTime.Home),
			Status:      status,
			PeriodCount: 2,
			BoxScore:    halfBoxScore(item.Score),
		})
	}

	return report.Scoreboard{
		Date:  matchday.Date.Format(dateLayout),
		Games: games,
	}
}

// halfBoxScore splits the final score into two halves using the half-time
// score; the provider has no richer per-match feed on the free tier.
func halfBoxScore(score matchScore) *report.BoxScore {
	box := report.EmptyBoxScore()

	ftAway, ftHome := intOrZero(score.FullTime.Away), intOrZero(score.FullTime.Home)
	htAway, htHome := intOrZero(score.HalfTime.Away), intOrZero(score.HalfTime.Home)

	box.LineScore.Away = []int{htAway, ftAway - htAway}
	box.LineScore.Home = []int{htHome, ftHome - htHome}
	return box
}

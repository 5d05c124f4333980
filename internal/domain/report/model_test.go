package report

import "testing"

func TestRerankProducesContiguousRanks(t *testing.T) {
	t.Parallel()

	leaders := []Leader{
		{Rank: 7, Player: "A", Value: "31"},
		{Rank: 7, Player: "B", Value: "29"},
		{Rank: 0, Player: "C", Value: "29"},
	}
	Rerank(leaders)
	for i, leader := range leaders {
		if leader.Rank != i+1 {
			t.Fatalf("rank[%d] = %d, want %d", i, leader.Rank, i+1)
		}
	}

	rows := []Standing{{Team: "X"}, {Team: "Y"}, {Team: "Z"}}
	RerankStandings(rows)
	seen := make(map[int]bool, len(rows))
	for _, row := range rows {
		if seen[row.Rank] {
			t.Fatalf("duplicate rank %d", row.Rank)
		}
		seen[row.Rank] = true
	}
	if !seen[1] || !seen[2] || !seen[3] {
		t.Fatalf("ranks not contiguous: %v", rows)
	}
}

func TestIsFinal(t *testing.T) {
	t.Parallel()

	for _, status := range []string{StatusFinal, StatusFinalOT, StatusFinalSO} {
		if !IsFinal(status) {
			t.Fatalf("IsFinal(%q) = false", status)
		}
	}
	for _, status := range []string{StatusScheduled, StatusInProgress, "LIVE", ""} {
		if IsFinal(status) {
			t.Fatalf("IsFinal(%q) = true", status)
		}
	}
}

func TestNormalizeFillsNilCollections(t *testing.T) {
	t.Parallel()

	var league LeagueReport
	league.Normalize()
	if league.Yesterday.Games == nil {
		t.Fatal("games must not be nil")
	}
	if league.Standings == nil || league.Leaders == nil || league.Schedule == nil {
		t.Fatal("collections must not be nil")
	}
}

func TestErrorLeagueReportKeepsEmptyShapes(t *testing.T) {
	t.Parallel()

	league := ErrorLeagueReport("upstream unreachable")
	if league.Error != "upstream unreachable" {
		t.Fatalf("error = %q", league.Error)
	}
	if league.Yesterday.Games == nil || league.Standings == nil {
		t.Fatal("error report must carry empty collections, not nils")
	}
}

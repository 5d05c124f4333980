package teamabbr

import "testing"

func TestTable_AbbrUsesMappedValue(t *testing.T) {
	t.Parallel()

	table := New(map[string]string{
		"New York Yankees": "NYY",
		"Athletics":        "OAK",
	})

	if got := table.Abbr("New York Yankees"); got != "NYY" {
		t.Fatalf("expected NYY, got %s", got)
	}
	if got := table.Abbr("Athletics"); got != "OAK" {
		t.Fatalf("expected OAK, got %s", got)
	}
}

func TestTable_NameRoundTrip(t *testing.T) {
	t.Parallel()

	table := New(map[string]string{"Liverpool FC": "LIV"})

	if got := table.Name("LIV"); got != "Liverpool FC" {
		t.Fatalf("expected Liverpool FC, got %s", got)
	}
	if got := table.Name("XYZ"); got != "XYZ" {
		t.Fatalf("unmapped code should echo back, got %s", got)
	}
}

func TestTable_AbbrFallbackIsDeterministic(t *testing.T) {
	t.Parallel()

	table := New(map[string]string{})

	first := table.Abbr("Expansion City Nine")
	second := table.Abbr("Expansion City Nine")
	if first != second {
		t.Fatalf("fallback not deterministic: %s vs %s", first, second)
	}
	if first != "EXP" {
		t.Fatalf("expected EXP, got %s", first)
	}
}

func TestSynthesize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		want string
	}{
		{"Arsenal FC", "ARS"},
		{"  Fulham FC  ", "FUL"},
		{"AB", "AB"},
		{"", "UNK"},
	}
	for _, tc := range cases {
		if got := Synthesize(tc.name); got != tc.want {
			t.Fatalf("Synthesize(%q)=%s, want %s", tc.name, got, tc.want)
		}
	}
}

package fantaleague

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestListone(t *testing.T) {
	l, _ := newTestLeague(t)
	ctx := context.Background()
	a := mustClub(t, l, "Atletico Birsa", "div_a")
	b := mustClub(t, l, "Mamo United", "div_b")
	lautaro := mustPlayer(t, l, "Lautaro", 40, Forward)
	barella := mustPlayer(t, l, "Barella", 33)
	dimarco := mustPlayer(t, l, "Dimarco", 20, LeftBack)
	sommer := mustPlayer(t, l, "Sommer", 15, Goalkeeper)

	mustSign(t, l, a, lautaro, 3) // original in A
	mustSign(t, l, b, lautaro, 1) // duplicate in B
	mustSign(t, l, b, barella, 2) // original in B
	mustSign(t, l, a, dimarco, 2)
	if _, err := l.ReleasePlayer(ctx, a.ID, dimarco.ID, 2025); err != nil {
		t.Fatal(err)
	}

	type row struct {
		ID            string
		OriginalOther bool
	}
	rows := func(list []ListoneEntry) []row {
		var out []row
		for _, e := range list {
			out = append(out, row{e.Player.ID, e.OriginalOther})
		}
		return out
	}

	testCases := []struct {
		division string
		want     []row
	}{
		{"div_a", []row{{barella.ID, true}, {dimarco.ID, false}, {sommer.ID, false}}},
		{"div_b", []row{{dimarco.ID, false}, {sommer.ID, false}}},
		{"div_x", []row{{lautaro.ID, true}, {barella.ID, true}, {dimarco.ID, false}, {sommer.ID, false}}},
	}
	for _, tc := range testCases {
		t.Run(tc.division, func(t *testing.T) {
			got := rows(l.Catalog().Listone(tc.division))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Listone() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// A player originally signed in one division and free in another is flagged
// there.
func TestListone_OriginalOther(t *testing.T) {
	l, _ := newTestLeague(t)
	a := mustClub(t, l, "Atletico Birsa", "div_a")
	p := mustPlayer(t, l, "Lautaro", 40, Forward)
	mustSign(t, l, a, p, 2)

	for _, e := range l.Catalog().Listone("div_a") {
		if e.Player.ID == p.ID {
			t.Errorf("Listone(div_a) includes %s, active in div_a", p.ID)
		}
	}
	found := false
	for _, e := range l.Catalog().Listone("div_b") {
		if e.Player.ID == p.ID {
			found = true
			if !e.OriginalOther {
				t.Errorf("Listone(div_b) flags %s OriginalOther = false, want true", p.ID)
			}
		}
	}
	if !found {
		t.Errorf("Listone(div_b) misses %s", p.ID)
	}
}

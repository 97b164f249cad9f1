package fantaleague

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSignPlayer(t *testing.T) {
	l, mem := newTestLeague(t)
	ctx := context.Background()
	club := mustClub(t, l, "Atletico Birsa", "div_a")
	p := mustPlayer(t, l, "Barella", 33, Midfielder, Central)

	got, err := l.SignPlayer(ctx, club.ID, p.ID, 3, p.Quote)
	if err != nil {
		t.Fatalf("SignPlayer() failed: %v", err)
	}
	want := &RosterEntry{
		PlayerID:      p.ID,
		ContractYears: 3,
		Wage:          Cr(24.75),
		OriginalQuote: Cr(33),
		SignedAt:      testNow,
		StartSeason:   2025,
		EndSeason:     2027,
		Status:        Active,
		Original:      true,
	}
	if diff := cmp.Diff(want, got, cmp.Comparer(Credits.Equal)); diff != "" {
		t.Errorf("SignPlayer() mismatch (-want +got):\n%s", diff)
	}
	if !club.WageTotal.Equal(Cr(24.75)) {
		t.Errorf("WageTotal = %s, want 24.75", club.WageTotal)
	}

	saved := reload(t, mem)
	sc, err := saved.Club(club.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(sc.Roster) != 1 || !sc.WageTotal.Equal(Cr(24.75)) {
		t.Errorf("saved club has %d entries and wage %s, want 1 and 24.75", len(sc.Roster), sc.WageTotal)
	}
}

func TestSignPlayer_Errors(t *testing.T) {
	l, _ := newTestLeague(t)
	ctx := context.Background()
	club := mustClub(t, l, "Atletico Birsa", "div_a")
	other := mustClub(t, l, "Mamo United", "div_b")
	p := mustPlayer(t, l, "Lautaro", 40, Forward)
	mustSign(t, l, club, p, 2)

	testCases := []struct {
		name    string
		club    string
		player  string
		years   int
		wantErr []error
	}{
		{"zero years", club.ID, p.ID, 0, []error{ErrInvalidDuration, ErrInvalidInput}},
		{"five years", club.ID, p.ID, 5, []error{ErrInvalidDuration, ErrInvalidInput}},
		{"unknown club", "cl_nope", p.ID, 1, []error{ErrClubNotFound, ErrNotFound}},
		{"unknown player", club.ID, "pl_nope", 1, []error{ErrPlayerNotFound, ErrNotFound}},
		{"same club", club.ID, p.ID, 1, []error{ErrAlreadySigned, ErrConflict}},
		{"duplicate for two years", other.ID, p.ID, 2, []error{ErrInvalidDuration, ErrDuplicateOriginal, ErrConflict}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := l.SignPlayer(ctx, tc.club, tc.player, tc.years, Cr(40))
			for _, want := range tc.wantErr {
				if !errors.Is(err, want) {
					t.Errorf("SignPlayer() error = %v, want %v", err, want)
				}
			}
		})
	}
}

func TestSignPlayer_Duplicate(t *testing.T) {
	l, _ := newTestLeague(t)
	a := mustClub(t, l, "Atletico Birsa", "div_a")
	b := mustClub(t, l, "Mamo United", "div_b")
	p := mustPlayer(t, l, "Lautaro", 40, Forward)

	first := mustSign(t, l, a, p, 2)
	second := mustSign(t, l, b, p, 1)
	if !first.Original {
		t.Error("first signing is not original")
	}
	if second.Original {
		t.Error("second signing is original, want a duplicate")
	}
	if !second.Wage.Equal(Cr(10)) {
		t.Errorf("duplicate wage = %s, want 10", second.Wage)
	}

	// Once the original is released, the next signing is original again.
	if _, err := l.ReleasePlayer(context.Background(), a.ID, p.ID, 2025); err != nil {
		t.Fatal(err)
	}
	if _, err := l.DeleteRosterEntry(context.Background(), b.ID, p.ID); err != nil {
		t.Fatal(err)
	}
	c := mustClub(t, l, "Birsa Reserve", "div_b")
	if third := mustSign(t, l, c, p, 3); !third.Original {
		t.Error("signing a released player is not original")
	}
}

func TestSignPlayer_RosterFull(t *testing.T) {
	l, _ := newTestLeague(t)
	club := mustClub(t, l, "Atletico Birsa", "div_a")
	for i := range DefaultRosterMax {
		mustSign(t, l, club, mustPlayer(t, l, fmt.Sprintf("Player %d", i), 10), 1)
	}
	extra := mustPlayer(t, l, "Number 31", 10)
	_, err := l.SignPlayer(context.Background(), club.ID, extra.ID, 1, extra.Quote)
	if !errors.Is(err, ErrRosterFull) {
		t.Errorf("SignPlayer() error = %v, want %v", err, ErrRosterFull)
	}

	// A loaned player leaves room.
	if _, err := l.LoanOut(context.Background(), club.ID, club.Roster[0].PlayerID); err != nil {
		t.Fatalf("LoanOut() failed: %v", err)
	}
	if _, err := l.SignPlayer(context.Background(), club.ID, extra.ID, 1, extra.Quote); err != nil {
		t.Errorf("SignPlayer() after a loan failed: %v", err)
	}
	// And cannot come back.
	_, err = l.RecallLoan(context.Background(), club.ID, club.Roster[0].PlayerID)
	if !errors.Is(err, ErrRosterFull) {
		t.Errorf("RecallLoan() error = %v, want %v", err, ErrRosterFull)
	}
}

func TestSignPlayer_DivisionCaps(t *testing.T) {
	l, _ := newTestLeague(t)
	ctx := context.Background()
	d, err := l.AddDivision(ctx, DivisionInput{Name: "Tiny League", RosterMax: 2, PorMax: 1})
	if err != nil {
		t.Fatal(err)
	}
	club := mustClub(t, l, "Tiny FC", d.ID)
	mustSign(t, l, club, mustPlayer(t, l, "Keeper", 10, Goalkeeper), 1)

	keeper := mustPlayer(t, l, "Second keeper", 10, Goalkeeper)
	if _, err := l.SignPlayer(ctx, club.ID, keeper.ID, 1, keeper.Quote); !errors.Is(err, ErrPositionQuotaExceeded) {
		t.Errorf("SignPlayer() error = %v, want %v", err, ErrPositionQuotaExceeded)
	}
	mustSign(t, l, club, mustPlayer(t, l, "Field", 10), 1)
	third := mustPlayer(t, l, "Third", 10)
	if _, err := l.SignPlayer(ctx, club.ID, third.ID, 1, third.Quote); !errors.Is(err, ErrRosterFull) {
		t.Errorf("SignPlayer() error = %v, want %v", err, ErrRosterFull)
	}
}

func TestSignPlayer_GoalkeeperQuota(t *testing.T) {
	l, _ := newTestLeague(t)
	club := mustClub(t, l, "Atletico Birsa", "div_a")
	for i := range DefaultPorMax {
		mustSign(t, l, club, mustPlayer(t, l, fmt.Sprintf("Keeper %d", i), 5, Goalkeeper), 1)
	}
	fifth := mustPlayer(t, l, "Keeper 5", 5, Goalkeeper)
	_, err := l.SignPlayer(context.Background(), club.ID, fifth.ID, 1, fifth.Quote)
	if !errors.Is(err, ErrPositionQuotaExceeded) {
		t.Errorf("SignPlayer() error = %v, want %v", err, ErrPositionQuotaExceeded)
	}
	// Outfield players are not limited.
	mustSign(t, l, club, mustPlayer(t, l, "Defender", 5, CenterBack), 1)
}

func TestReleasePlayer(t *testing.T) {
	l, _ := newTestLeague(t)
	ctx := context.Background()
	club := mustClub(t, l, "Atletico Birsa", "div_a")
	p := mustPlayer(t, l, "Barella", 40)
	mustSign(t, l, club, p, 4) // wage 40, 2025-2028

	testCases := []struct {
		name    string
		player  string
		start   int
		wantErr error
	}{
		{"unknown contract", "pl_nope", 2025, ErrContractNotFound},
		{"before the current season", p.ID, 2024, ErrInvalidSeason},
		{"after the contract end", p.ID, 2029, ErrInvalidSeason},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := l.ReleasePlayer(ctx, club.ID, tc.player, tc.start); !errors.Is(err, tc.wantErr) {
				t.Errorf("ReleasePlayer() error = %v, want %v", err, tc.wantErr)
			}
		})
	}

	r, err := l.ReleasePlayer(ctx, club.ID, p.ID, 2025)
	if err != nil {
		t.Fatalf("ReleasePlayer() failed: %v", err)
	}
	if r.Status != Released || r.ReleaseStartSeason != 2025 {
		t.Errorf("ReleasePlayer() = %s from %d, want released from 2025", r.Status, r.ReleaseStartSeason)
	}
	if !club.WageTotal.Equal(Cr(20)) {
		t.Errorf("WageTotal = %s, want half wage 20", club.WageTotal)
	}

	// Releasing twice is a no-op.
	again, err := l.ReleasePlayer(ctx, club.ID, p.ID, 2027)
	if err != nil || again.ReleaseStartSeason != 2025 {
		t.Errorf("second ReleasePlayer() = %d, %v, want 2025 unchanged", again.ReleaseStartSeason, err)
	}
	// A released player frees the slot and can be deleted from the catalog.
	if !l.Catalog().CanDeletePlayer(p.ID) {
		t.Error("CanDeletePlayer() = false for a released player")
	}
}

func TestRecalcWage(t *testing.T) {
	club := &Club{Roster: []*RosterEntry{
		{PlayerID: "a", Wage: Cr(10), Status: Active, EndSeason: 2026},
		{PlayerID: "b", Wage: Cr(24.75), Status: Active, EndSeason: 2027},
		{PlayerID: "c", Wage: Cr(7), Status: Released, ReleaseStartSeason: 2025, EndSeason: 2026},
		{PlayerID: "d", Wage: Cr(9), Status: Released, ReleaseStartSeason: 2026, EndSeason: 2027},
		{PlayerID: "e", Wage: Cr(3), Status: LoanedOut, EndSeason: 2027},
	}}
	testCases := []struct {
		season int
		want   Credits
	}{
		{2024, Cr(34.75)},
		{2025, Cr(38.25)}, // + 3.5
		{2026, Cr(42.75)}, // + 3.5 + 4.5
		{2027, Cr(39.25)}, // + 4.5
	}
	for _, tc := range testCases {
		if got := club.RecalcWage(tc.season); !got.Equal(tc.want) {
			t.Errorf("RecalcWage(%d) = %s, want %s", tc.season, got, tc.want)
		}
	}
}

func TestEditContract(t *testing.T) {
	l, _ := newTestLeague(t)
	ctx := context.Background()
	club := mustClub(t, l, "Atletico Birsa", "div_a")
	p := mustPlayer(t, l, "Barella", 40)
	mustSign(t, l, club, p, 2)

	r, err := l.EditContract(ctx, club.ID, p.ID, Cr(0), 2026, 3)
	if err != nil {
		t.Fatalf("EditContract() failed: %v", err)
	}
	if r.StartSeason != 2026 || r.EndSeason != 2028 || !r.Wage.Equal(Cr(30)) || !r.OriginalQuote.Equal(Cr(40)) {
		t.Errorf("EditContract() = %d-%d wage %s quote %s, want 2026-2028 wage 30 quote 40",
			r.StartSeason, r.EndSeason, r.Wage, r.OriginalQuote)
	}

	r, err = l.EditContract(ctx, club.ID, p.ID, Cr(10), 0, 4)
	if err != nil {
		t.Fatalf("EditContract() failed: %v", err)
	}
	if r.StartSeason != 2025 || r.EndSeason != 2028 || !r.Wage.Equal(Cr(10)) {
		t.Errorf("EditContract() = %d-%d wage %s, want 2025-2028 wage 10", r.StartSeason, r.EndSeason, r.Wage)
	}
	if !club.WageTotal.Equal(Cr(10)) {
		t.Errorf("WageTotal = %s, want 10", club.WageTotal)
	}

	for _, years := range []int{0, 5} {
		if _, err := l.EditContract(ctx, club.ID, p.ID, Cr(10), 2025, years); !errors.Is(err, ErrInvalidDuration) {
			t.Errorf("EditContract(years=%d) error = %v, want %v", years, err, ErrInvalidDuration)
		}
	}
	if _, err := l.EditContract(ctx, club.ID, "pl_nope", Cr(10), 2025, 1); !errors.Is(err, ErrContractNotFound) {
		t.Errorf("EditContract(unknown) error = %v, want %v", err, ErrContractNotFound)
	}
}

func TestEditContract_Unrelease(t *testing.T) {
	testCases := []struct {
		name       string
		release    int
		newStart   int
		wantStatus ContractStatus
		wantFrom   int
	}{
		{"start after the release", 2025, 2026, Active, 0},
		{"start on the release", 2026, 2026, Released, 2026},
		{"start before the release", 2027, 2026, Released, 2027},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l, _ := newTestLeague(t)
			ctx := context.Background()
			club := mustClub(t, l, "Atletico Birsa", "div_a")
			p := mustPlayer(t, l, "Barella", 40)
			mustSign(t, l, club, p, 4)
			if _, err := l.ReleasePlayer(ctx, club.ID, p.ID, tc.release); err != nil {
				t.Fatal(err)
			}
			r, err := l.EditContract(ctx, club.ID, p.ID, Cr(40), tc.newStart, 2)
			if err != nil {
				t.Fatalf("EditContract() failed: %v", err)
			}
			if r.Status != tc.wantStatus || r.ReleaseStartSeason != tc.wantFrom {
				t.Errorf("EditContract() = %s from %d, want %s from %d", r.Status, r.ReleaseStartSeason, tc.wantStatus, tc.wantFrom)
			}
		})
	}
}

func TestDeleteRosterEntry(t *testing.T) {
	l, mem := newTestLeague(t)
	ctx := context.Background()
	club := mustClub(t, l, "Atletico Birsa", "div_a")
	p := mustPlayer(t, l, "Barella", 40)
	q := mustPlayer(t, l, "Dimarco", 20)
	mustSign(t, l, club, p, 2)
	mustSign(t, l, club, q, 4)

	removed, err := l.DeleteRosterEntry(ctx, club.ID, p.ID)
	if err != nil || !removed {
		t.Fatalf("DeleteRosterEntry() = %v, %v, want true", removed, err)
	}
	if !club.WageTotal.Equal(Cr(20)) {
		t.Errorf("WageTotal = %s, want 20", club.WageTotal)
	}
	removed, err = l.DeleteRosterEntry(ctx, club.ID, p.ID)
	if err != nil || removed {
		t.Errorf("second DeleteRosterEntry() = %v, %v, want false", removed, err)
	}
	if _, err := l.DeleteRosterEntry(ctx, "cl_nope", p.ID); !errors.Is(err, ErrClubNotFound) {
		t.Errorf("DeleteRosterEntry(unknown club) error = %v, want %v", err, ErrClubNotFound)
	}

	saved, _ := reload(t, mem).Club(club.ID)
	got := []string{}
	for _, r := range saved.Roster {
		got = append(got, r.PlayerID)
	}
	if diff := cmp.Diff([]string{q.ID}, got); diff != "" {
		t.Errorf("saved roster mismatch (-want +got):\n%s", diff)
	}
}

func TestLoanOut(t *testing.T) {
	l, _ := newTestLeague(t)
	ctx := context.Background()
	club := mustClub(t, l, "Atletico Birsa", "div_a")
	p := mustPlayer(t, l, "Barella", 40)
	mustSign(t, l, club, p, 4)

	r, err := l.LoanOut(ctx, club.ID, p.ID)
	if err != nil {
		t.Fatalf("LoanOut() failed: %v", err)
	}
	if r.Status != LoanedOut || !club.WageTotal.IsZero() {
		t.Errorf("LoanOut() = %s, wage %s, want loanedOut and 0", r.Status, club.WageTotal)
	}
	// Loaned players are free agents everywhere, for one season duplicates.
	if !l.Catalog().CanDeletePlayer(p.ID) {
		t.Error("CanDeletePlayer() = false for a loaned player")
	}

	r, err = l.RecallLoan(ctx, club.ID, p.ID)
	if err != nil {
		t.Fatalf("RecallLoan() failed: %v", err)
	}
	if r.Status != Active || !club.WageTotal.Equal(Cr(40)) {
		t.Errorf("RecallLoan() = %s, wage %s, want active and 40", r.Status, club.WageTotal)
	}

	if _, err := l.ReleasePlayer(ctx, club.ID, p.ID, 2025); err != nil {
		t.Fatal(err)
	}
	if _, err := l.LoanOut(ctx, club.ID, p.ID); !errors.Is(err, ErrConflict) {
		t.Errorf("LoanOut(released) error = %v, want %v", err, ErrConflict)
	}
}

func TestRecallLoan_SignedElsewhere(t *testing.T) {
	l, _ := newTestLeague(t)
	ctx := context.Background()
	birsa := mustClub(t, l, "Atletico Birsa", "div_a")
	mamo := mustClub(t, l, "Mamo United", "div_b")
	p := mustPlayer(t, l, "Barella", 40)
	mustSign(t, l, birsa, p, 3)

	if _, err := l.LoanOut(ctx, birsa.ID, p.ID); err != nil {
		t.Fatal(err)
	}
	signed := mustSign(t, l, mamo, p, 3)
	if !signed.Original {
		t.Fatal("SignPlayer() while loaned out is not the original contract")
	}

	_, err := l.RecallLoan(ctx, birsa.ID, p.ID)
	if !errors.Is(err, ErrDuplicateOriginal) {
		t.Fatalf("RecallLoan() error = %v, want %v", err, ErrDuplicateOriginal)
	}
	originals := 0
	for _, r := range l.Catalog().ActiveEntries(p.ID) {
		if r.Original {
			originals++
		}
	}
	if originals != 1 {
		t.Errorf("active original contracts = %d, want 1", originals)
	}

	// A single season contract comes back as a duplicate.
	other := mustPlayer(t, l, "Frattesi", 20)
	mustSign(t, l, birsa, other, 1)
	if _, err := l.LoanOut(ctx, birsa.ID, other.ID); err != nil {
		t.Fatal(err)
	}
	mustSign(t, l, mamo, other, 2)
	r, err := l.RecallLoan(ctx, birsa.ID, other.ID)
	if err != nil {
		t.Fatalf("RecallLoan() failed: %v", err)
	}
	if r.Status != Active || r.Original {
		t.Errorf("RecallLoan() = %s, original %v, want an active duplicate", r.Status, r.Original)
	}
}

func TestWageFor(t *testing.T) {
	testCases := []struct {
		quote float64
		years int
		want  string
	}{
		{40, 2, "20"},
		{33, 3, "24.75"},
		{10, 4, "10"},
		{7, 1, "1.75"},
		{1.001, 2, "0.501"}, // 0.5005 rounds away from zero
		{0.333, 1, "0.083"}, // 0.08325
		{13.5, 3, "10.125"},
	}
	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%v/%d", tc.quote, tc.years), func(t *testing.T) {
			got, err := WageFor(Cr(tc.quote), tc.years)
			if err != nil {
				t.Fatalf("WageFor() failed: %v", err)
			}
			if got.String() != tc.want {
				t.Errorf("WageFor(%v, %d) = %s, want %s", tc.quote, tc.years, got, tc.want)
			}
		})
	}
	if _, err := WageFor(Cr(10), 5); !errors.Is(err, ErrInvalidDuration) {
		t.Errorf("WageFor(5 years) error = %v, want %v", err, ErrInvalidDuration)
	}
}

func TestWagePercent(t *testing.T) {
	testCases := []struct {
		wages, cap Credits
		want       int
	}{
		{Cr(0), Cr(110), 0},
		{Cr(55), Cr(110), 50},
		{Cr(24.75), Cr(110), 23},
		{Cr(220), Cr(110), 100},
		{Cr(11), Cr(0), 10}, // default cap
	}
	for _, tc := range testCases {
		if got := WagePercent(tc.wages, tc.cap); got != tc.want {
			t.Errorf("WagePercent(%s, %s) = %d, want %d", tc.wages, tc.cap, got, tc.want)
		}
	}
}

package fantaleague

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAddPlayer(t *testing.T) {
	l, mem := newTestLeague(t)
	ctx := context.Background()

	p, err := l.AddPlayer(ctx, PlayerInput{Name: "  Lautaro Martinez ", RealClub: "Inter", Roles: []Role{"a", "PC", "A"}, Quote: Cr(40)})
	if err != nil {
		t.Fatalf("AddPlayer() failed: %v", err)
	}
	if p.Name != "Lautaro Martinez" {
		t.Errorf("Name = %q, want it trimmed", p.Name)
	}
	if diff := cmp.Diff([]Role{Forward, Striker}, p.Roles); diff != "" {
		t.Errorf("Roles mismatch (-want +got):\n%s", diff)
	}
	if p.ID != "pl_00000001" {
		t.Errorf("ID = %q, want pl_00000001", p.ID)
	}
	if _, err := reload(t, mem).Player(p.ID); err != nil {
		t.Errorf("player not saved: %v", err)
	}

	testCases := []struct {
		name string
		in   PlayerInput
		want error
	}{
		{"empty name", PlayerInput{Name: "  "}, ErrInvalidInput},
		{"unknown role", PlayerInput{Name: "X", Roles: []Role{"GK"}}, ErrInvalidRole},
		{"negative quote", PlayerInput{Name: "X", Quote: Cr(-1)}, ErrInvalidInput},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := l.AddPlayer(ctx, tc.in); !errors.Is(err, tc.want) {
				t.Errorf("AddPlayer() error = %v, want %v", err, tc.want)
			}
		})
	}
}

// Generated identities skip those already taken.
func TestAddPlayer_Collision(t *testing.T) {
	l, _ := newTestLeague(t)
	l.Catalog().Players = append(l.Catalog().Players, &Player{ID: "pl_00000001", Name: "Existing"})
	p := mustPlayer(t, l, "New", 1)
	if p.ID != "pl_00000002" {
		t.Errorf("ID = %q, want pl_00000002", p.ID)
	}
}

func TestRandomIDs(t *testing.T) {
	seen := map[string]bool{}
	taken := func(id string) bool { return seen[id] }
	for range 100 {
		id := RandomIDs.NewID(ClubPrefix, taken)
		if len(id) != len("cl_")+8 || id[:3] != "cl_" {
			t.Fatalf("NewID() = %q, want cl_ and 8 characters", id)
		}
		if seen[id] {
			t.Fatalf("NewID() returned a taken id %q", id)
		}
		seen[id] = true
	}
}

func TestUpdatePlayerQuote(t *testing.T) {
	l, _ := newTestLeague(t)
	ctx := context.Background()
	club := mustClub(t, l, "Atletico Birsa", "div_a")
	p := mustPlayer(t, l, "Barella", 33)
	r := mustSign(t, l, club, p, 3)

	if _, err := l.UpdatePlayerQuote(ctx, p.ID, Cr(50)); err != nil {
		t.Fatalf("UpdatePlayerQuote() failed: %v", err)
	}
	if !p.Quote.Equal(Cr(50)) || !r.OriginalQuote.Equal(Cr(33)) {
		t.Errorf("quote = %s, contract quote = %s, want 50 and 33", p.Quote, r.OriginalQuote)
	}
	if _, err := l.UpdatePlayerQuote(ctx, "pl_nope", Cr(1)); !errors.Is(err, ErrPlayerNotFound) {
		t.Errorf("UpdatePlayerQuote(unknown) error = %v, want %v", err, ErrPlayerNotFound)
	}
}

func TestDeletePlayer(t *testing.T) {
	l, _ := newTestLeague(t)
	ctx := context.Background()
	club := mustClub(t, l, "Atletico Birsa", "div_a")
	p := mustPlayer(t, l, "Barella", 33)
	mustSign(t, l, club, p, 1)

	if l.Catalog().CanDeletePlayer(p.ID) {
		t.Error("CanDeletePlayer() = true for a signed player")
	}
	if _, err := l.DeletePlayer(ctx, p.ID); !errors.Is(err, ErrPlayerAssigned) || !errors.Is(err, ErrConflict) {
		t.Errorf("DeletePlayer() error = %v, want %v", err, ErrPlayerAssigned)
	}

	if _, err := l.DeleteRosterEntry(ctx, club.ID, p.ID); err != nil {
		t.Fatal(err)
	}
	removed, err := l.DeletePlayer(ctx, p.ID)
	if err != nil || !removed {
		t.Errorf("DeletePlayer() = %v, %v, want true", removed, err)
	}
	removed, err = l.DeletePlayer(ctx, p.ID)
	if err != nil || removed {
		t.Errorf("second DeletePlayer() = %v, %v, want false", removed, err)
	}
}

func TestAddClub(t *testing.T) {
	l, _ := newTestLeague(t)
	ctx := context.Background()
	c, err := l.AddClub(ctx, ClubInput{Name: "Atletico Birsa", DivisionID: "div_a"})
	if err != nil {
		t.Fatalf("AddClub() failed: %v", err)
	}
	if diff := cmp.Diff(DefaultColors, c.Colors); diff != "" {
		t.Errorf("Colors mismatch (-want +got):\n%s", diff)
	}
	if c.Roster == nil || c.Transactions == nil || !c.Budget.IsZero() {
		t.Errorf("AddClub() = %+v, want an empty roster and ledger", c)
	}
	free, err := l.AddClub(ctx, ClubInput{Name: "Free FC", Colors: []string{"#000000"}})
	if err != nil {
		t.Fatalf("AddClub() without division failed: %v", err)
	}
	if free.DivisionID != "" || len(free.Colors) != 1 {
		t.Errorf("AddClub() = %q %v, want no division and one color", free.DivisionID, free.Colors)
	}
	if _, err := l.AddClub(ctx, ClubInput{Name: "Lost", DivisionID: "div_z"}); !errors.Is(err, ErrDivisionNotFound) {
		t.Errorf("AddClub(unknown division) error = %v, want %v", err, ErrDivisionNotFound)
	}
	if _, err := l.AddClub(ctx, ClubInput{}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("AddClub(no name) error = %v, want %v", err, ErrInvalidInput)
	}
}

func TestAddDivision(t *testing.T) {
	l, _ := newTestLeague(t)
	d, err := l.AddDivision(context.Background(), DivisionInput{Name: "Serie C", Code: "C"})
	if err != nil {
		t.Fatalf("AddDivision() failed: %v", err)
	}
	if !d.WageCap.Equal(Cr(DefaultWageCap)) || d.RosterMax != DefaultRosterMax || d.PorMax != DefaultPorMax {
		t.Errorf("AddDivision() = cap %s, %d/%d, want the defaults", d.WageCap, d.RosterMax, d.PorMax)
	}
	if l.Catalog().Division(d.ID) != d {
		t.Error("division not added to the catalog")
	}
}

func TestAddCompetition(t *testing.T) {
	l, _ := newTestLeague(t)
	ctx := context.Background()
	testCases := []struct {
		in      CompetitionInput
		want    CompetitionType
		wantErr error
	}{
		{CompetitionInput{Name: "Coppa"}, Cup, nil},
		{CompetitionInput{Name: "Super", Type: "SUPERCUP"}, Supercup, nil},
		{CompetitionInput{Name: "Friendly", Type: "other"}, Other, nil},
		{CompetitionInput{Name: "Bad", Type: "league"}, "", ErrInvalidInput},
		{CompetitionInput{}, "", ErrInvalidInput},
	}
	for _, tc := range testCases {
		got, err := l.AddCompetition(ctx, tc.in)
		if !errors.Is(err, tc.wantErr) {
			t.Errorf("AddCompetition(%+v) error = %v, want %v", tc.in, err, tc.wantErr)
			continue
		}
		if err == nil && got.Type != tc.want {
			t.Errorf("AddCompetition(%+v) type = %q, want %q", tc.in, got.Type, tc.want)
		}
	}
}

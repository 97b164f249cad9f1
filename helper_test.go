package fantaleague

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/etnz/fantaleague/store"
)

// seqIDs generates predictable identities: "pl_00000001", "pl_00000002"...
type seqIDs struct{ n int }

func (s *seqIDs) NewID(prefix string, taken func(string) bool) string {
	for {
		s.n++
		id := fmt.Sprintf("%s_%08d", prefix, s.n)
		if taken == nil || !taken(id) {
			return id
		}
	}
}

// testNow is the wall clock of every test league.
var testNow = time.Date(2025, time.August, 20, 10, 30, 0, 0, time.UTC)

// newTestLeague returns a league on the default catalog, season 2025, backed
// by a memory store.
func newTestLeague(t *testing.T) (*League, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	l, err := Open(context.Background(), NewRepository(mem),
		WithSeason(FixedSeason(2025)),
		WithClock(FixedClock(testNow)),
		WithIDs(&seqIDs{}),
	)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	return l, mem
}

// mustClub adds a club to a division.
func mustClub(t *testing.T, l *League, name, divisionID string) *Club {
	t.Helper()
	c, err := l.AddClub(context.Background(), ClubInput{Name: name, DivisionID: divisionID})
	if err != nil {
		t.Fatalf("AddClub(%q) failed: %v", name, err)
	}
	return c
}

// mustPlayer adds a player.
func mustPlayer(t *testing.T, l *League, name string, quote int, roles ...Role) *Player {
	t.Helper()
	if len(roles) == 0 {
		roles = []Role{Midfielder}
	}
	p, err := l.AddPlayer(context.Background(), PlayerInput{Name: name, Roles: roles, Quote: Cr(quote)})
	if err != nil {
		t.Fatalf("AddPlayer(%q) failed: %v", name, err)
	}
	return p
}

// mustSign signs a player at its quote.
func mustSign(t *testing.T, l *League, c *Club, p *Player, years int) *RosterEntry {
	t.Helper()
	r, err := l.SignPlayer(context.Background(), c.ID, p.ID, years, p.Quote)
	if err != nil {
		t.Fatalf("SignPlayer(%s, %s, %d) failed: %v", c.Name, p.Name, years, err)
	}
	return r
}

// reload decodes the catalog saved in mem.
func reload(t *testing.T, mem *store.Memory) *Catalog {
	t.Helper()
	c, err := NewRepository(mem).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	return c
}

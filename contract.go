package fantaleague

import (
	"context"
	"fmt"
)

// rosterCaps returns the roster size and goalkeeper caps applying to a club:
// those of its division, or the league defaults.
func (c *Catalog) rosterCaps(club *Club) (roster, goalkeepers int) {
	roster, goalkeepers = DefaultRosterMax, DefaultPorMax
	if d := c.Division(club.DivisionID); d != nil {
		if d.RosterMax > 0 {
			roster = d.RosterMax
		}
		if d.PorMax > 0 {
			goalkeepers = d.PorMax
		}
	}
	return roster, goalkeepers
}

// checkCaps verifies that the club can take one more active player.
func (c *Catalog) checkCaps(club *Club, player *Player) error {
	maxRoster, maxGoalkeepers := c.rosterCaps(club)
	active, goalkeepers := 0, 0
	for r := range club.ActiveEntries() {
		active++
		if p, err := c.Player(r.PlayerID); err == nil && p.IsGoalkeeper() {
			goalkeepers++
		}
	}
	if active >= maxRoster {
		return fmt.Errorf("%w (%d)", ErrRosterFull, maxRoster)
	}
	if player.IsGoalkeeper() && goalkeepers >= maxGoalkeepers {
		return fmt.Errorf("%w (%d)", ErrPositionQuotaExceeded, maxGoalkeepers)
	}
	return nil
}

func validYears(years int) error {
	if years < MinContractYears || years > MaxContractYears {
		return fmt.Errorf("%w, got %d", ErrInvalidDuration, years)
	}
	return nil
}

// SignPlayer signs a player to a club for 'years' seasons at the given quote.
//
// The first active contract of a player across the whole catalog is their
// original signing. Any further simultaneous contract, typically in the other
// division, is a duplicate and is limited to a single season.
func (l *League) SignPlayer(ctx context.Context, clubID, playerID string, years int, quote Credits) (*RosterEntry, error) {
	if err := validYears(years); err != nil {
		return nil, err
	}
	club, err := l.catalog.Club(clubID)
	if err != nil {
		return nil, err
	}
	player, err := l.catalog.Player(playerID)
	if err != nil {
		return nil, err
	}

	original := true
	for holder := range l.catalog.ActiveEntries(playerID) {
		original = false
		if holder == club {
			return nil, fmt.Errorf("%w: %q in %q", ErrAlreadySigned, playerID, clubID)
		}
	}
	if !original && years != 1 {
		return nil, durationError{years}
	}
	if err := l.catalog.checkCaps(club, player); err != nil {
		return nil, err
	}

	wage, err := WageFor(quote, years)
	if err != nil {
		return nil, err
	}
	season := l.Season()
	entry := &RosterEntry{
		PlayerID:      playerID,
		ContractYears: years,
		Wage:          wage,
		OriginalQuote: quote,
		SignedAt:      l.clock().UTC(),
		StartSeason:   season,
		EndSeason:     season + years - 1,
		Status:        Active,
		Original:      original,
	}
	club.Roster = append(club.Roster, entry)
	club.RecalcWage(season)
	return entry, l.commit(ctx)
}

// ReleasePlayer releases a player from 'startSeason' on. The contract stays on
// the books at half wage until it ends. Releasing a released player is a no-op.
func (l *League) ReleasePlayer(ctx context.Context, clubID, playerID string, startSeason int) (*RosterEntry, error) {
	club, err := l.catalog.Club(clubID)
	if err != nil {
		return nil, err
	}
	entry, err := club.Entry(playerID)
	if err != nil {
		return nil, err
	}
	if entry.Status == Released {
		return entry, nil
	}
	season := l.Season()
	if startSeason < season || startSeason > entry.EndSeason {
		return nil, fmt.Errorf("%w: release from %d must be within %d-%d", ErrInvalidSeason, startSeason, season, entry.EndSeason)
	}
	entry.Status = Released
	entry.ReleaseStartSeason = startSeason
	club.RecalcWage(season)
	return entry, l.commit(ctx)
}

// EditContract rewrites a contract's quote, start season and length, and
// recomputes its end season and wage. A zero quote keeps the current one, a
// zero start season means the current season.
//
// A released contract edited to start after its release season is active
// again: the release is cancelled.
func (l *League) EditContract(ctx context.Context, clubID, playerID string, quote Credits, startSeason, years int) (*RosterEntry, error) {
	club, err := l.catalog.Club(clubID)
	if err != nil {
		return nil, err
	}
	entry, err := club.Entry(playerID)
	if err != nil {
		return nil, err
	}
	if err := validYears(years); err != nil {
		return nil, err
	}
	season := l.Season()
	if startSeason == 0 {
		startSeason = season
	}
	if !quote.IsZero() {
		entry.OriginalQuote = quote
	}
	wage, err := WageFor(entry.OriginalQuote, years)
	if err != nil {
		return nil, err
	}
	entry.StartSeason = startSeason
	entry.EndSeason = startSeason + years - 1
	entry.ContractYears = years
	entry.Wage = wage
	if entry.Status == Released && entry.ReleaseStartSeason < entry.StartSeason {
		entry.Status = Active
		entry.ReleaseStartSeason = 0
	}
	club.RecalcWage(season)
	return entry, l.commit(ctx)
}

// DeleteRosterEntry removes a player's contract from a club altogether, unlike
// a release. It reports whether a contract was removed.
func (l *League) DeleteRosterEntry(ctx context.Context, clubID, playerID string) (bool, error) {
	club, err := l.catalog.Club(clubID)
	if err != nil {
		return false, err
	}
	entry, err := club.Entry(playerID)
	if err != nil {
		return false, nil
	}
	for i, r := range club.Roster {
		if r == entry {
			club.Roster = append(club.Roster[:i], club.Roster[i+1:]...)
			break
		}
	}
	club.RecalcWage(l.Season())
	return true, l.commit(ctx)
}

// LoanOut lends an active player: the contract stays with the club but no
// longer counts towards its roster, quotas and wages.
func (l *League) LoanOut(ctx context.Context, clubID, playerID string) (*RosterEntry, error) {
	club, err := l.catalog.Club(clubID)
	if err != nil {
		return nil, err
	}
	entry, err := club.Entry(playerID)
	if err != nil {
		return nil, err
	}
	switch entry.Status {
	case LoanedOut:
		return entry, nil
	case Released:
		return nil, fmt.Errorf("%w: %q is released", ErrConflict, playerID)
	}
	entry.Status = LoanedOut
	club.RecalcWage(l.Season())
	return entry, l.commit(ctx)
}

// RecallLoan brings a loaned player back, under the same rules as a signing:
// roster caps apply, and when another club signed the player meanwhile the
// recalled contract becomes a duplicate, which must last a single season.
func (l *League) RecallLoan(ctx context.Context, clubID, playerID string) (*RosterEntry, error) {
	club, err := l.catalog.Club(clubID)
	if err != nil {
		return nil, err
	}
	player, err := l.catalog.Player(playerID)
	if err != nil {
		return nil, err
	}
	entry, err := club.Entry(playerID)
	if err != nil {
		return nil, err
	}
	switch entry.Status {
	case Active:
		return entry, nil
	case Released:
		return nil, fmt.Errorf("%w: %q is released", ErrConflict, playerID)
	}
	duplicate := false
	for holder := range l.catalog.ActiveEntries(playerID) {
		if holder != club {
			duplicate = true
		}
	}
	if years := entry.EndSeason - entry.StartSeason + 1; duplicate && years != 1 {
		return nil, durationError{years}
	}
	if err := l.catalog.checkCaps(club, player); err != nil {
		return nil, err
	}
	entry.Status = Active
	if duplicate {
		entry.Original = false
	}
	club.RecalcWage(l.Season())
	return entry, l.commit(ctx)
}

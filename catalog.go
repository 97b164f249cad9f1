package fantaleague

import (
	"encoding/json"
	"fmt"
	"iter"
	"slices"
	"strings"
	"time"
)

// Catalog is the whole league data graph: the reference entities and, through
// the clubs, every roster entry and transaction.
//
// A Catalog is plain data. Mutations go through a League so that they are
// validated and persisted.
type Catalog struct {
	Meta         CatalogMeta     `json:"meta"`
	RolesOrder   []Role          `json:"rolesOrder"`
	Players      []*Player       `json:"players"`
	Clubs        []*Club         `json:"clubs"`
	Divisions    []*Division     `json:"divisions"`
	Competitions []*Competition  `json:"competitions"`
	Config       Config          `json:"config"`
	Seasons      json.RawMessage `json:"seasons,omitempty"`      // opaque, kept for round trips
	Transactions json.RawMessage `json:"transactions,omitempty"` // opaque league-level records
	Trophies     json.RawMessage `json:"trophies,omitempty"`     // opaque
}

// CatalogMeta describes the stored blob.
type CatalogMeta struct {
	Version      int             `json:"version"`
	CreatedAt    time.Time       `json:"createdAt"`
	Competitions json.RawMessage `json:"competitions,omitempty"` // competition branding, opaque
}

// Config holds league wide settings.
type Config struct {
	WageCap Credits `json:"wageCap"`
}

// Player is a real football player that clubs can sign.
type Player struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	RealClub string          `json:"realClub"`
	Roles    []Role          `json:"roles"`
	Quote    Credits         `json:"quote"`
	History  json.RawMessage `json:"history,omitempty"`
}

// HasRole reports whether the player can play role r.
func (p *Player) HasRole(r Role) bool { return slices.Contains(p.Roles, r) }

// IsGoalkeeper reports whether the player holds the goalkeeper tag.
func (p *Player) IsGoalkeeper() bool { return p.HasRole(Goalkeeper) }

// Club is a fantasy club: its branding, roster and finances.
type Club struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Logo         string            `json:"logo"`
	Founded      string            `json:"founded"`
	President    string            `json:"president"`
	Stadium      string            `json:"stadium"`
	City         string            `json:"city"`
	Colors       []string          `json:"colors"`
	DivisionID   string            `json:"divisionId"`
	Roster       []*RosterEntry    `json:"roster"`
	Budget       Credits           `json:"budget"`
	WageTotal    Credits           `json:"wageTotal"`
	Transactions []*Transaction    `json:"transactions"`
	Trophies     []json.RawMessage `json:"trophies"`
}

// UnmarshalJSON decodes a club. A club stored without a budget gets the budget
// derived from its transactions.
func (c *Club) UnmarshalJSON(data []byte) error {
	type club Club // no methods, no recursion
	var tmp struct {
		club
		Budget *Credits `json:"budget"`
	}
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*c = Club(tmp.club)
	if tmp.Budget != nil {
		c.Budget = *tmp.Budget
	} else {
		c.Budget = c.DeriveBudget()
	}
	return nil
}

// ContractStatus is the state of a roster entry.
type ContractStatus string

const (
	Active    ContractStatus = "active"
	Released  ContractStatus = "released"
	LoanedOut ContractStatus = "loanedOut"
)

// RosterEntry is a player's contract with a club.
type RosterEntry struct {
	PlayerID           string         `json:"playerId"`
	ContractYears      int            `json:"contractYears"`
	Wage               Credits        `json:"wage"`
	OriginalQuote      Credits        `json:"originalQuote"`
	SignedAt           time.Time      `json:"signedAt"`
	StartSeason        int            `json:"startSeason"`
	EndSeason          int            `json:"endSeason"`
	Status             ContractStatus `json:"status"`
	Original           bool           `json:"original"`
	ReleaseStartSeason int            `json:"releaseStartSeason,omitempty"` // 0 when not released
}

// IsActive reports whether the entry counts towards the roster.
func (r *RosterEntry) IsActive() bool { return r.Status == Active }

// Division groups clubs competing together.
type Division struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Code       string    `json:"code"`
	SeasonBase Credits   `json:"seasonBase"`
	WinterBase Credits   `json:"winterBase"`
	WageCap    Credits   `json:"wageCap"`
	RosterMax  int       `json:"rosterMax"`
	PorMax     int       `json:"porMax"`
	Prizes     []Credits `json:"prizes"`
}

// CompetitionType tags a competition.
type CompetitionType string

const (
	Cup      CompetitionType = "cup"
	Supercup CompetitionType = "supercup"
	Other    CompetitionType = "other"
)

// Competition is a cup-like competition with a prize.
type Competition struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Type  CompetitionType `json:"type"`
	Prize Credits         `json:"prize"`
}

// Club returns the club with this id.
func (c *Catalog) Club(id string) (*Club, error) {
	for _, club := range c.Clubs {
		if club.ID == id {
			return club, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrClubNotFound, id)
}

// Player returns the player with this id.
func (c *Catalog) Player(id string) (*Player, error) {
	for _, p := range c.Players {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrPlayerNotFound, id)
}

// Division returns the division with this id, or nil.
func (c *Catalog) Division(id string) *Division {
	for _, d := range c.Divisions {
		if d.ID == id {
			return d
		}
	}
	return nil
}

// FindClub returns the club with this id or, failing that, the club with this
// name, case insensitive.
func (c *Catalog) FindClub(ref string) (*Club, error) {
	if club, err := c.Club(ref); err == nil {
		return club, nil
	}
	ref = strings.TrimSpace(ref)
	for _, club := range c.Clubs {
		if strings.EqualFold(club.Name, ref) {
			return club, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrClubNotFound, ref)
}

// FindDivision returns the division with this id, code or name.
func (c *Catalog) FindDivision(ref string) (*Division, error) {
	ref = strings.TrimSpace(ref)
	if d := c.Division(ref); d != nil {
		return d, nil
	}
	for _, d := range c.Divisions {
		if strings.EqualFold(d.Code, ref) || strings.EqualFold(d.Name, ref) {
			return d, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrDivisionNotFound, ref)
}

// Competition returns the competition with this id, or nil.
func (c *Catalog) Competition(id string) *Competition {
	for _, cmp := range c.Competitions {
		if cmp.ID == id {
			return cmp
		}
	}
	return nil
}

// ClubsInDivision returns an iterator over the clubs of a division.
// The empty id iterates over clubs without a division.
func (c *Catalog) ClubsInDivision(divisionID string) iter.Seq[*Club] {
	return func(yield func(*Club) bool) {
		for _, club := range c.Clubs {
			if club.DivisionID != divisionID {
				continue
			}
			if !yield(club) {
				return
			}
		}
	}
}

// ActiveEntries returns an iterator over every active roster entry of the
// catalog, with the club holding it.
func (c *Catalog) ActiveEntries(playerID string) iter.Seq2[*Club, *RosterEntry] {
	return func(yield func(*Club, *RosterEntry) bool) {
		for _, club := range c.Clubs {
			for _, r := range club.Roster {
				if r.PlayerID != playerID || !r.IsActive() {
					continue
				}
				if !yield(club, r) {
					return
				}
			}
		}
	}
}

// ActiveEntries returns an iterator over the club's active roster entries.
func (c *Club) ActiveEntries() iter.Seq[*RosterEntry] {
	return func(yield func(*RosterEntry) bool) {
		for _, r := range c.Roster {
			if r.IsActive() && !yield(r) {
				return
			}
		}
	}
}

// Entry returns the club's contract with a player. An active contract is
// preferred over older released or loaned ones.
func (c *Club) Entry(playerID string) (*RosterEntry, error) {
	var found *RosterEntry
	for _, r := range c.Roster {
		if r.PlayerID != playerID {
			continue
		}
		if r.IsActive() {
			return r, nil
		}
		if found == nil {
			found = r
		}
	}
	if found == nil {
		return nil, fmt.Errorf("%w: player %q in club %q", ErrContractNotFound, playerID, c.ID)
	}
	return found, nil
}

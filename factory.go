package fantaleague

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// PlayerInput describes a player to create.
type PlayerInput struct {
	Name     string
	RealClub string
	Roles    []Role
	Quote    Credits
}

// ClubInput describes a club to create. Omitted colors get DefaultColors.
type ClubInput struct {
	Name       string
	Logo       string
	Founded    string
	President  string
	Stadium    string
	City       string
	Colors     []string
	DivisionID string // empty for a club outside any division
	Budget     Credits
}

// DivisionInput describes a division to create. Zero caps get the defaults.
type DivisionInput struct {
	Name       string
	Code       string
	SeasonBase Credits
	WinterBase Credits
	WageCap    Credits
	RosterMax  int
	PorMax     int
	Prizes     []Credits
}

// CompetitionInput describes a competition to create. The type defaults to Cup.
type CompetitionInput struct {
	Name  string
	Type  CompetitionType
	Prize Credits
}

func requireName(kind, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: %s name is required", ErrInvalidInput, kind)
	}
	return name, nil
}

// AddPlayer creates a player.
func (l *League) AddPlayer(ctx context.Context, in PlayerInput) (*Player, error) {
	name, err := requireName("player", in.Name)
	if err != nil {
		return nil, err
	}
	roles := []Role{}
	for _, r := range in.Roles {
		role, err := ParseRole(string(r))
		if err != nil {
			return nil, err
		}
		if !slices.Contains(roles, role) {
			roles = append(roles, role)
		}
	}
	if in.Quote.IsNegative() {
		return nil, fmt.Errorf("%w: quote must not be negative, got %s", ErrInvalidInput, in.Quote)
	}
	p := &Player{
		ID:       l.ids.NewID(PlayerPrefix, l.catalog.playerIDTaken()),
		Name:     name,
		RealClub: strings.TrimSpace(in.RealClub),
		Roles:    roles,
		Quote:    in.Quote,
	}
	l.catalog.Players = append(l.catalog.Players, p)
	return p, l.commit(ctx)
}

// UpdatePlayerQuote sets a player's quote. Existing contracts keep the quote
// they were signed at.
func (l *League) UpdatePlayerQuote(ctx context.Context, playerID string, quote Credits) (*Player, error) {
	p, err := l.catalog.Player(playerID)
	if err != nil {
		return nil, err
	}
	if quote.IsNegative() {
		return nil, fmt.Errorf("%w: quote must not be negative, got %s", ErrInvalidInput, quote)
	}
	p.Quote = quote
	return p, l.commit(ctx)
}

// CanDeletePlayer reports whether no club holds an active contract with the
// player.
func (c *Catalog) CanDeletePlayer(playerID string) bool {
	for range c.ActiveEntries(playerID) {
		return false
	}
	return true
}

// DeletePlayer removes a player from the catalog. It reports whether a player
// was removed, and fails while a club holds an active contract with the player.
func (l *League) DeletePlayer(ctx context.Context, playerID string) (bool, error) {
	if !l.catalog.CanDeletePlayer(playerID) {
		return false, fmt.Errorf("%w: %q", ErrPlayerAssigned, playerID)
	}
	n := len(l.catalog.Players)
	l.catalog.Players = slices.DeleteFunc(l.catalog.Players, func(p *Player) bool { return p.ID == playerID })
	if len(l.catalog.Players) == n {
		return false, nil
	}
	return true, l.commit(ctx)
}

// AddClub creates a club, with an empty roster and ledger.
func (l *League) AddClub(ctx context.Context, in ClubInput) (*Club, error) {
	name, err := requireName("club", in.Name)
	if err != nil {
		return nil, err
	}
	if in.DivisionID != "" && l.catalog.Division(in.DivisionID) == nil {
		return nil, fmt.Errorf("%w: %q", ErrDivisionNotFound, in.DivisionID)
	}
	colors := slices.Clone(in.Colors)
	if len(colors) == 0 {
		colors = slices.Clone(DefaultColors)
	}
	c := &Club{
		ID:           l.ids.NewID(ClubPrefix, l.catalog.clubIDTaken()),
		Name:         name,
		Logo:         in.Logo,
		Founded:      in.Founded,
		President:    in.President,
		Stadium:      in.Stadium,
		City:         in.City,
		Colors:       colors,
		DivisionID:   in.DivisionID,
		Roster:       []*RosterEntry{},
		Budget:       in.Budget,
		Transactions: []*Transaction{},
		Trophies:     []json.RawMessage{},
	}
	l.catalog.Clubs = append(l.catalog.Clubs, c)
	return c, l.commit(ctx)
}

// AddDivision creates a division.
func (l *League) AddDivision(ctx context.Context, in DivisionInput) (*Division, error) {
	name, err := requireName("division", in.Name)
	if err != nil {
		return nil, err
	}
	d := &Division{
		ID:         l.ids.NewID(DivisionPrefix, l.catalog.divisionIDTaken()),
		Name:       name,
		Code:       strings.TrimSpace(in.Code),
		SeasonBase: in.SeasonBase,
		WinterBase: in.WinterBase,
		WageCap:    in.WageCap,
		RosterMax:  in.RosterMax,
		PorMax:     in.PorMax,
		Prizes:     slices.Clone(in.Prizes),
	}
	if d.WageCap.IsZero() {
		d.WageCap = Cr(DefaultWageCap)
	}
	if d.RosterMax <= 0 {
		d.RosterMax = DefaultRosterMax
	}
	if d.PorMax <= 0 {
		d.PorMax = DefaultPorMax
	}
	if d.Prizes == nil {
		d.Prizes = []Credits{}
	}
	l.catalog.Divisions = append(l.catalog.Divisions, d)
	return d, l.commit(ctx)
}

// ParseCompetitionType parses a competition type, empty meaning Cup.
func ParseCompetitionType(s string) (CompetitionType, error) {
	switch t := CompetitionType(strings.ToLower(strings.TrimSpace(s))); t {
	case "":
		return Cup, nil
	case Cup, Supercup, Other:
		return t, nil
	default:
		return "", fmt.Errorf("%w: competition type %q", ErrInvalidInput, s)
	}
}

// AddCompetition creates a competition.
func (l *League) AddCompetition(ctx context.Context, in CompetitionInput) (*Competition, error) {
	name, err := requireName("competition", in.Name)
	if err != nil {
		return nil, err
	}
	typ, err := ParseCompetitionType(string(in.Type))
	if err != nil {
		return nil, err
	}
	cmp := &Competition{
		ID:    l.ids.NewID(CompetitionPrefix, l.catalog.competitionIDTaken()),
		Name:  name,
		Type:  typ,
		Prize: in.Prize,
	}
	l.catalog.Competitions = append(l.catalog.Competitions, cmp)
	return cmp, l.commit(ctx)
}

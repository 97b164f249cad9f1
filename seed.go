package fantaleague

import (
	"slices"
	"time"
)

// Defaults applied to omitted inputs.
const (
	DefaultWageCap   = 110
	DefaultRosterMax = 30
	DefaultPorMax    = 4

	// SchemaVersion is the catalog blob version written by this package.
	SchemaVersion = 1
)

// DefaultColors are the colors of a club created without any.
var DefaultColors = []string{"#003366", "#ffffff"}

func credits(values ...int) []Credits {
	out := make([]Credits, len(values))
	for i, v := range values {
		out[i] = Cr(v)
	}
	return out
}

// Default returns the initial catalog used when nothing is stored yet: the
// two league divisions and the two cups, without players nor clubs.
func Default(now time.Time) *Catalog {
	return &Catalog{
		Meta:       CatalogMeta{Version: SchemaVersion, CreatedAt: now.UTC()},
		RolesOrder: slices.Clone(RolesOrder),
		Players:    []*Player{},
		Clubs:      []*Club{},
		Divisions: []*Division{
			{
				ID: "div_a", Name: "Bar Birsa Super League", Code: "A",
				SeasonBase: Cr(400), WinterBase: Cr(150), WageCap: Cr(DefaultWageCap),
				RosterMax: DefaultRosterMax, PorMax: DefaultPorMax,
				Prizes: credits(150, 80, 70, 60, 50, 40, 30, 30),
			},
			{
				ID: "div_b", Name: "Mamo’s B League", Code: "B",
				SeasonBase: Cr(300), WinterBase: Cr(100), WageCap: Cr(DefaultWageCap),
				RosterMax: DefaultRosterMax, PorMax: DefaultPorMax,
				Prizes: credits(50, 40, 30, 20, 10, 0),
			},
		},
		Competitions: []*Competition{
			{ID: "cup_tbakery", Name: "T-Bakery Cup", Type: Cup, Prize: Cr(50)},
			{ID: "sup_olympus", Name: "Olympus Supercup", Type: Supercup, Prize: Cr(30)},
		},
		Config: Config{WageCap: Cr(DefaultWageCap)},
	}
}

// fillDefaults repairs a decoded catalog so that every collection is usable.
func (c *Catalog) fillDefaults() {
	if len(c.RolesOrder) == 0 {
		c.RolesOrder = slices.Clone(RolesOrder)
	}
	if c.Players == nil {
		c.Players = []*Player{}
	}
	if c.Clubs == nil {
		c.Clubs = []*Club{}
	}
	if c.Divisions == nil {
		c.Divisions = []*Division{}
	}
	if c.Competitions == nil {
		c.Competitions = []*Competition{}
	}
	if c.Config.WageCap.IsZero() {
		c.Config.WageCap = Cr(DefaultWageCap)
	}
	for _, club := range c.Clubs {
		if club.Roster == nil {
			club.Roster = []*RosterEntry{}
		}
		if club.Transactions == nil {
			club.Transactions = []*Transaction{}
		}
		if len(club.Colors) == 0 {
			club.Colors = slices.Clone(DefaultColors)
		}
	}
}

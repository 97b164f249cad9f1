package fantaleague

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Contract duration bounds, in seasons.
const (
	MinContractYears = 1
	MaxContractYears = 4
)

// wageRates is the share of the quote paid each season, by contract length.
var wageRates = map[int]decimal.Decimal{
	1: decimal.RequireFromString("0.25"),
	2: decimal.RequireFromString("0.50"),
	3: decimal.RequireFromString("0.75"),
	4: decimal.RequireFromString("1"),
}

var half = decimal.RequireFromString("0.5")

// WageFor returns the wage of a contract of 'years' seasons for a player
// valued 'quote', rounded to 3 decimals.
func WageFor(quote Credits, years int) (Credits, error) {
	rate, ok := wageRates[years]
	if !ok {
		return Credits{}, fmt.Errorf("%w, got %d", ErrInvalidDuration, years)
	}
	return quote.Mul(rate).Round3(), nil
}

// RecalcWage updates the club's wage total for the given season: full wage for
// active contracts plus half wage for released contracts whose release window
// covers the season.
func (c *Club) RecalcWage(season int) Credits {
	var active, released Credits
	for _, r := range c.Roster {
		switch {
		case r.Status == Active:
			active = active.Add(r.Wage)
		case r.Status == Released && r.ReleaseStartSeason != 0 &&
			r.ReleaseStartSeason <= season && season <= r.EndSeason:
			released = released.Add(r.Wage.Mul(half))
		}
	}
	c.WageTotal = active.Add(released).Round3()
	return c.WageTotal
}

// WagePercent returns the share of the wage cap used by wages, as a percentage
// capped at 100. A zero cap uses the default cap.
func WagePercent(wages, wageCap Credits) int {
	if wages.IsZero() {
		return 0
	}
	if !wageCap.GreaterThan(Credits{}) {
		wageCap = Cr(DefaultWageCap)
	}
	pct := wages.Decimal().Div(wageCap.Decimal()).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	return int(min(100, pct))
}

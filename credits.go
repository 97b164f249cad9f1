package fantaleague

import (
	"encoding/json"
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// CreditCode is the currency code registered for league credits.
const CreditCode = "CRD"

// creditFraction is the number of decimals kept on wages and balances.
const creditFraction = 3

func init() {
	decimal.MarshalJSONWithoutQuotes = true
	money.AddCurrency(CreditCode, "cr", "1 $", ".", ",", creditFraction)
}

// Credits is an amount of league credits: quotes, wages, budgets and ledger amounts.
//
// The zero value is 0 credits.
type Credits struct {
	value decimal.Decimal
}

// Cr creates credits from a number.
func Cr[T float64 | int | int64 | decimal.Decimal](value T) Credits {
	switch v := any(value).(type) {
	case float64:
		return Credits{decimal.NewFromFloat(v)}
	case int:
		return Credits{decimal.NewFromInt(int64(v))}
	case int64:
		return Credits{decimal.NewFromInt(v)}
	case decimal.Decimal:
		return Credits{v}
	}
	panic("unreachable")
}

// ParseCredits parses a decimal string such as "24.75".
func ParseCredits(s string) (Credits, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Credits{}, fmt.Errorf("invalid credits %q: %w", s, err)
	}
	return Credits{d}, nil
}

func (c Credits) Add(n Credits) Credits             { return Credits{c.value.Add(n.value)} }
func (c Credits) Sub(n Credits) Credits             { return Credits{c.value.Sub(n.value)} }
func (c Credits) Neg() Credits                      { return Credits{c.value.Neg()} }
func (c Credits) Mul(f decimal.Decimal) Credits     { return Credits{c.value.Mul(f)} }
func (c Credits) Equal(n Credits) bool              { return c.value.Equal(n.value) }
func (c Credits) IsZero() bool                      { return c.value.IsZero() }
func (c Credits) IsNegative() bool                  { return c.value.IsNegative() }
func (c Credits) LessThan(n Credits) bool           { return c.value.LessThan(n.value) }
func (c Credits) GreaterThan(n Credits) bool        { return c.value.GreaterThan(n.value) }
func (c Credits) Decimal() decimal.Decimal          { return c.value }
func (c Credits) Float() float64                    { return c.value.InexactFloat64() }
func (c Credits) Cmp(n Credits) int                 { return c.value.Cmp(n.value) }
func (c Credits) GreaterThanOrEqual(n Credits) bool { return c.value.GreaterThanOrEqual(n.value) }

// Round3 rounds to 3 decimal places, half away from zero.
func (c Credits) Round3() Credits { return Credits{c.value.Round(creditFraction)} }

// String returns the plain decimal representation, e.g. "24.75".
func (c Credits) String() string { return c.value.String() }

// Format returns the credits formatted with the credit currency, e.g. "24.750 cr".
func (c Credits) Format() string {
	cur := *money.New(0, CreditCode).Currency()
	return cur.Formatter().Format(c.value.Shift(creditFraction).Round(0).IntPart())
}

// SignedString returns the string representation with an explicit sign.
// 0 is represented as "-".
func (c Credits) SignedString() string {
	if c.value.IsZero() {
		return "-"
	}
	if c.value.IsPositive() {
		return "+" + c.Format()
	}
	return c.Format()
}

// MarshalJSON writes credits as a plain json number.
func (c Credits) MarshalJSON() ([]byte, error) {
	return c.value.MarshalJSON()
}

// UnmarshalJSON reads credits from a json number, a numeric string, or null (0).
func (c *Credits) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = Credits{}
		return nil
	}
	var d decimal.Decimal
	if err := json.Unmarshal(data, &d); err != nil {
		return fmt.Errorf("invalid credits %s: %w", data, err)
	}
	*c = Credits{d}
	return nil
}

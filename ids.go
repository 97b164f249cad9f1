package fantaleague

import (
	"strings"

	"github.com/google/uuid"
)

// Identity prefixes, one per collection.
const (
	PlayerPrefix      = "pl"
	ClubPrefix        = "cl"
	DivisionPrefix    = "div"
	CompetitionPrefix = "cmp"
	TransactionPrefix = "tx"
)

// IDGenerator creates identities. taken reports identities already in use in
// the target collection; the generator must not return one of them.
type IDGenerator interface {
	NewID(prefix string, taken func(string) bool) string
}

// randomIDs generates "<prefix>_<8 chars>" identities from random UUIDs,
// drawing again on collision.
type randomIDs struct{}

func (randomIDs) NewID(prefix string, taken func(string) bool) string {
	for {
		suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
		id := prefix + "_" + suffix
		if taken == nil || !taken(id) {
			return id
		}
	}
}

// RandomIDs is the default IDGenerator.
var RandomIDs IDGenerator = randomIDs{}

// takenIn returns a predicate reporting whether an id is used by one of items.
func takenIn[T any](items []T, id func(T) string) func(string) bool {
	return func(candidate string) bool {
		for _, it := range items {
			if id(it) == candidate {
				return true
			}
		}
		return false
	}
}

func (c *Catalog) playerIDTaken() func(string) bool {
	return takenIn(c.Players, func(p *Player) string { return p.ID })
}

func (c *Catalog) clubIDTaken() func(string) bool {
	return takenIn(c.Clubs, func(c *Club) string { return c.ID })
}

func (c *Catalog) divisionIDTaken() func(string) bool {
	return takenIn(c.Divisions, func(d *Division) string { return d.ID })
}

func (c *Catalog) competitionIDTaken() func(string) bool {
	return takenIn(c.Competitions, func(cmp *Competition) string { return cmp.ID })
}

// transactionIDTaken checks transaction identities across all clubs.
func (c *Catalog) transactionIDTaken() func(string) bool {
	return func(candidate string) bool {
		for _, club := range c.Clubs {
			for _, tx := range club.Transactions {
				if tx.ID == candidate {
					return true
				}
			}
		}
		return false
	}
}

package fantaleague

// ListoneEntry is a player available to a division.
type ListoneEntry struct {
	Player *Player
	// OriginalOther is set when the player's original contract is active in
	// another division: a signing would only be a one season duplicate.
	OriginalOther bool
}

// Listone returns the free agents of a division: every player without an
// active contract in one of the division's clubs, in catalog order.
func (c *Catalog) Listone(divisionID string) []ListoneEntry {
	taken := make(map[string]bool)
	originalElsewhere := make(map[string]bool)
	for _, club := range c.Clubs {
		for r := range club.ActiveEntries() {
			if club.DivisionID == divisionID {
				taken[r.PlayerID] = true
			} else if r.Original {
				originalElsewhere[r.PlayerID] = true
			}
		}
	}
	list := []ListoneEntry{}
	for _, p := range c.Players {
		if taken[p.ID] {
			continue
		}
		list = append(list, ListoneEntry{Player: p, OriginalOther: originalElsewhere[p.ID]})
	}
	return list
}

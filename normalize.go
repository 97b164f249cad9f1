package fantaleague

import "log"

// NormalizeLegacySchema completes the migration of ledgers written by older
// versions: every transaction gets an identity and a metadata record, legacy
// records (whose root fields were folded into the metadata when decoded) are
// marked as migrated, and every club ledger is replayed.
//
// It reports whether anything changed and needs to be saved.
func (c *Catalog) NormalizeLegacySchema(ids IDGenerator) bool {
	if ids == nil {
		ids = RandomIDs
	}
	changed := false
	for _, club := range c.Clubs {
		migrated := 0
		for _, tx := range club.Transactions {
			if tx.ID == "" {
				tx.ID = ids.NewID(TransactionPrefix, c.transactionIDTaken())
				migrated++
			}
			if tx.Meta == nil {
				tx.Meta = Manual{}
				migrated++
			}
			if tx.legacy {
				tx.legacy = false
				migrated++
			}
		}
		broken := club.CheckLedger() != nil
		club.RecomputeLedger()
		if migrated > 0 || broken {
			log.Printf("club %q: migrated %d transaction fields, ledger replayed", club.ID, migrated)
			changed = true
		}
	}
	return changed
}

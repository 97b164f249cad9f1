package fantaleague

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/fantaleague/date"
)

// TransactionInput describes a transaction to record.
type TransactionInput struct {
	Description string
	Sign        Sign
	Amount      Credits
	Meta        Meta // nil means an unlabelled manual record
}

// validate checks the input before anything is recorded.
func (in TransactionInput) validate() error {
	if _, err := ParseSign(string(in.Sign)); err != nil {
		return err
	}
	if in.Amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative, got %s", ErrInvalidInput, in.Amount)
	}
	return nil
}

// record appends tx to the club's ledger, chaining it after the current
// budget, and moves the budget to the new balance.
func (c *Club) record(tx *Transaction) {
	tx.Prev = c.Budget
	tx.Delta = tx.delta()
	tx.After = tx.Prev.Add(tx.Delta)
	c.Transactions = append(c.Transactions, tx)
	c.Budget = tx.After
}

// stableSort sorts the ledger by transaction date. The sort is stable, meaning
// transactions on the same day maintain their original relative order.
func (c *Club) stableSort() {
	slices.SortStableFunc(c.Transactions, func(a, b *Transaction) int {
		return a.Date.Compare(b.Date)
	})
}

// RecomputeLedger replays the whole ledger: transactions are sorted by date
// (same day transactions keep their order) and every balance is chained from
// the first transaction's opening balance. The budget becomes the last
// balance. A club without transactions is left untouched.
func (c *Club) RecomputeLedger() {
	if len(c.Transactions) == 0 {
		return
	}
	c.stableSort()
	prev := c.Transactions[0].Prev
	for _, tx := range c.Transactions {
		tx.Prev = prev
		tx.Delta = tx.delta()
		tx.After = tx.Prev.Add(tx.Delta)
		prev = tx.After
	}
	c.Budget = prev
}

// DeriveBudget returns the balance after the latest transaction, or the stored
// budget when there are none. Among transactions of the latest day the last
// one wins, which is the transaction a replay would end with.
func (c *Club) DeriveBudget() Credits {
	var last *Transaction
	for _, tx := range c.Transactions {
		if last == nil || !tx.Date.Before(last.Date) {
			last = tx
		}
	}
	if last == nil {
		return c.Budget
	}
	return last.After
}

// SyncBudgets sets every club's budget to its derived value. It reports
// whether any budget changed.
func (c *Catalog) SyncBudgets() bool {
	changed := false
	for _, club := range c.Clubs {
		if b := club.DeriveBudget(); !b.Equal(club.Budget) {
			club.Budget = b
			changed = true
		}
	}
	return changed
}

// CheckLedger returns an error naming the first transaction that breaks the
// running balance chain. A replayed ledger always checks.
func (c *Club) CheckLedger() error {
	for i, tx := range c.Transactions {
		if !tx.After.Equal(tx.Prev.Add(tx.Delta)) || !tx.Delta.Equal(tx.delta()) {
			return fmt.Errorf("transaction %q: %s %s%s does not give %s", tx.ID, tx.Prev, tx.Sign, tx.Amount, tx.After)
		}
		if i > 0 && !tx.Prev.Equal(c.Transactions[i-1].After) {
			return fmt.Errorf("transaction %q: opening %s does not follow %s", tx.ID, tx.Prev, c.Transactions[i-1].After)
		}
		if i > 0 && tx.Date.Before(c.Transactions[i-1].Date) {
			return fmt.Errorf("transaction %q: dated %s before %s", tx.ID, tx.Date, c.Transactions[i-1].Date)
		}
	}
	if n := len(c.Transactions); n > 0 && !c.Budget.Equal(c.Transactions[n-1].After) {
		return fmt.Errorf("budget %s does not match the last balance %s", c.Budget, c.Transactions[n-1].After)
	}
	return nil
}

// RecordTransaction appends a transaction dated today to a club's ledger and
// moves its budget accordingly.
func (l *League) RecordTransaction(ctx context.Context, clubID string, in TransactionInput) (*Transaction, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	club, err := l.catalog.Club(clubID)
	if err != nil {
		return nil, err
	}
	meta := in.Meta
	if meta == nil {
		meta = Manual{}
	}
	tx := &Transaction{
		ID:          l.ids.NewID(TransactionPrefix, l.catalog.transactionIDTaken()),
		Date:        date.Of(l.clock().UTC()),
		Description: strings.TrimSpace(in.Description),
		Sign:        in.Sign,
		Amount:      in.Amount,
		Meta:        meta,
	}
	club.record(tx)
	return tx, l.commit(ctx)
}

// RecomputeLedger replays a club's ledger and saves the result.
func (l *League) RecomputeLedger(ctx context.Context, clubID string) error {
	club, err := l.catalog.Club(clubID)
	if err != nil {
		return err
	}
	club.RecomputeLedger()
	return l.commit(ctx)
}

// Normalize migrates legacy ledgers. It reports whether anything changed, in
// which case the catalog has been saved.
func (l *League) Normalize(ctx context.Context) (bool, error) {
	if !l.catalog.NormalizeLegacySchema(l.ids) {
		return false, nil
	}
	return true, l.commit(ctx)
}

// SyncBudgets aligns every club budget with its ledger, saving when anything
// changed.
func (l *League) SyncBudgets(ctx context.Context) (bool, error) {
	if !l.catalog.SyncBudgets() {
		return false, nil
	}
	return true, l.commit(ctx)
}

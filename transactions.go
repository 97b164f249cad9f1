package fantaleague

import (
	"encoding/json"
	"fmt"

	"github.com/etnz/fantaleague/date"
)

// Sign tells whether a transaction credits or debits the club.
type Sign string

const (
	Plus  Sign = "+"
	Minus Sign = "-"
)

// ParseSign parses "+" or "-".
func ParseSign(s string) (Sign, error) {
	switch Sign(s) {
	case Plus, Minus:
		return Sign(s), nil
	}
	return "", fmt.Errorf("%w, got %q", ErrInvalidSign, s)
}

// Transaction is an entry of a club's financial ledger.
//
// Prev, Delta and After are derived: they are set when the transaction is
// recorded and recomputed when the ledger is replayed.
type Transaction struct {
	ID          string    `json:"id"`
	Date        date.Date `json:"date"`
	Description string    `json:"description"`
	Prev        Credits   `json:"prev"`
	Sign        Sign      `json:"sign"`
	Amount      Credits   `json:"amount"`
	Delta       Credits   `json:"delta"`
	After       Credits   `json:"after"`
	Meta        Meta      `json:"meta"`

	legacy bool // decoded from a record in a legacy shape
}

// delta returns the signed amount.
func (t *Transaction) delta() Credits {
	if t.Sign == Plus {
		return t.Amount
	}
	return t.Amount.Neg()
}

// MarshalJSON writes the transaction with its fields in a stable order.
func (t Transaction) MarshalJSON() ([]byte, error) {
	meta := t.Meta
	if meta == nil {
		meta = Manual{}
	}
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Append("date", t.Date)
	w.Append("description", t.Description)
	w.Append("prev", t.Prev)
	w.Append("sign", t.Sign)
	w.Append("amount", t.Amount)
	w.Append("delta", t.Delta)
	w.Append("after", t.After)
	w.Append("meta", metaJSON{meta})
	return w.MarshalJSON()
}

// UnmarshalJSON reads a transaction, including records written by older
// versions where the metadata lived on the transaction itself. Those legacy
// fields are folded into the typed metadata here, exactly once.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID          string          `json:"id"`
		Date        date.Date       `json:"date"`
		Description string          `json:"description"`
		Prev        Credits         `json:"prev"`
		Sign        Sign            `json:"sign"`
		Amount      Credits         `json:"amount"`
		Delta       Credits         `json:"delta"`
		After       Credits         `json:"after"`
		Meta        json.RawMessage `json:"meta"`

		// legacy root fields
		Type       json.RawMessage `json:"type"`
		PlayerID   json.RawMessage `json:"playerId"`
		DivisionID json.RawMessage `json:"divisionId"`
		Auction    json.RawMessage `json:"auction"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	// a missing or non-object meta is a legacy record.
	var fields map[string]json.RawMessage
	legacy := json.Unmarshal(raw.Meta, &fields) != nil || fields == nil
	if fields == nil {
		fields = make(map[string]json.RawMessage)
	}
	// root is authoritative over meta.
	for key, v := range map[string]json.RawMessage{
		"type":       raw.Type,
		"playerId":   raw.PlayerID,
		"divisionId": raw.DivisionID,
		"auction":    raw.Auction,
	} {
		if len(v) > 0 {
			fields[key] = v
			legacy = true
		}
	}
	meta, dropped := decodeMeta(fields)

	*t = Transaction{
		ID:          raw.ID,
		Date:        raw.Date,
		Description: raw.Description,
		Sign:        raw.Sign,
		Amount:      raw.Amount,
		Delta:       raw.Delta,
		After:       raw.After,
		Prev:        raw.Prev,
		Meta:        meta,
	}
	t.legacy = legacy || dropped
	return nil
}

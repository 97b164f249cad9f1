package fantaleague

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
)

// Metadata type labels with a dedicated variant.
const (
	TypePurchase = "acquisto"
	TypeWage     = "stipendi"
)

// Meta is the typed metadata of a transaction. It is one of Purchase,
// WageAdjustment or Manual.
type Meta interface {
	// Type returns the label stored in the "type" field.
	Type() string
	isMeta()
}

// Purchase records a player bought at auction.
type Purchase struct {
	PlayerID   string
	DivisionID string
	Auction    json.RawMessage // auction sub-record, opaque
	Extra      map[string]json.RawMessage
}

// WageAdjustment records wages paid or refunded for a season.
type WageAdjustment struct {
	PlayerID string
	Season   int
	Extra    map[string]json.RawMessage
}

// Manual is any other transaction: prizes, fines, manual corrections.
type Manual struct {
	Label      string // free type label, may be empty
	PlayerID   string
	DivisionID string
	Extra      map[string]json.RawMessage
}

func (Purchase) Type() string       { return TypePurchase }
func (WageAdjustment) Type() string { return TypeWage }
func (m Manual) Type() string       { return m.Label }

func (Purchase) isMeta()       {}
func (WageAdjustment) isMeta() {}
func (Manual) isMeta()         {}

// metaJSON marshals a Meta as a flat json object, "type" first and unknown
// fields last in key order.
type metaJSON struct{ Meta }

func (m metaJSON) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	var extra map[string]json.RawMessage
	switch v := m.Meta.(type) {
	case Purchase:
		w.Append("type", TypePurchase)
		w.Optional("playerId", v.PlayerID)
		w.Optional("divisionId", v.DivisionID)
		if len(v.Auction) > 0 {
			w.Append("auction", v.Auction)
		}
		extra = v.Extra
	case WageAdjustment:
		w.Append("type", TypeWage)
		w.Optional("playerId", v.PlayerID)
		w.Optional("season", v.Season)
		extra = v.Extra
	case Manual:
		w.Optional("type", v.Label)
		w.Optional("playerId", v.PlayerID)
		w.Optional("divisionId", v.DivisionID)
		extra = v.Extra
	default:
		return nil, fmt.Errorf("unsupported metadata %T", m.Meta)
	}
	for _, key := range slices.Sorted(maps.Keys(extra)) {
		w.Append(key, extra[key])
	}
	return w.MarshalJSON()
}

// decodeMeta converts a flat metadata mapping into its typed variant. It
// reports whether an auction sub-record was dropped because the record is
// not a purchase. Values of an unexpected shape are kept as unknown fields.
func decodeMeta(fields map[string]json.RawMessage) (meta Meta, dropped bool) {
	fields = maps.Clone(fields)
	label := takeString(fields, "type")
	switch label {
	case TypePurchase:
		p := Purchase{}
		p.PlayerID = takeLenient(fields, "playerId")
		p.DivisionID = takeLenient(fields, "divisionId")
		if a, ok := fields["auction"]; ok && string(a) != "null" {
			p.Auction = a
		}
		delete(fields, "auction")
		p.Extra = nonEmpty(fields)
		return p, false
	case TypeWage:
		w := WageAdjustment{}
		w.PlayerID = takeLenient(fields, "playerId")
		w.Season = takeInt(fields, "season")
		if _, ok := fields["auction"]; ok {
			dropped = true
			delete(fields, "auction")
		}
		w.Extra = nonEmpty(fields)
		return w, dropped
	default:
		m := Manual{Label: label}
		m.PlayerID = takeLenient(fields, "playerId")
		m.DivisionID = takeLenient(fields, "divisionId")
		if _, ok := fields["auction"]; ok {
			dropped = true
			delete(fields, "auction")
		}
		m.Extra = nonEmpty(fields)
		return m, dropped
	}
}

// takeString removes key from fields and returns it when it is a json string.
// Other values are left in place.
func takeString(fields map[string]json.RawMessage, key string) string {
	v, ok := fields[key]
	if !ok || string(v) == "null" {
		delete(fields, key)
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return ""
	}
	delete(fields, key)
	return s
}

// takeInt removes key from fields and returns it when it is an integer, as a
// json number or string. Other values, like a "2024/25" label, are left in
// place.
func takeInt(fields map[string]json.RawMessage, key string) int {
	v, ok := fields[key]
	if !ok {
		return 0
	}
	if string(v) == "null" {
		delete(fields, key)
		return 0
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		s = string(v)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	delete(fields, key)
	return n
}

// takeLenient removes key from fields and returns it as a string, accepting
// json strings and numbers. Other values are left in place.
func takeLenient(fields map[string]json.RawMessage, key string) string {
	v, ok := fields[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		delete(fields, key)
		return s
	}
	var n json.Number
	if err := json.Unmarshal(v, &n); err == nil {
		delete(fields, key)
		return n.String()
	}
	if string(v) == "null" {
		delete(fields, key)
	}
	return ""
}

func nonEmpty(fields map[string]json.RawMessage) map[string]json.RawMessage {
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// Package sandbox holds the private planning area of a league member: a
// formation, contract plans, a snapshot of the member's club and sets of
// auction notes.
//
// Sandboxes are stored per user next to the league data but are never part
// of it: they are neither exported with the catalog nor merged into it.
package sandbox

import (
	"encoding/json"
	"time"

	"github.com/etnz/fantaleague"
)

// SchemaVersion is the sandbox version written by this package.
const SchemaVersion = 2

// DefaultModule is the formation of a new sandbox.
const DefaultModule = "4-4-2"

// Sandbox is a user's planning data.
type Sandbox struct {
	SchemaVersion int                    `json:"schemaVersion"`
	UserID        string                 `json:"userId"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
	Formation     Formation              `json:"formation"`
	RosterPlans   map[string]*RosterPlan `json:"rosterPlans"` // by player id
	ClubSnapshot  *ClubSnapshot          `json:"clubSnapshot"`
	NoteSets      []*NoteSet             `json:"appuntiSets"`

	// Fields of the first schema, kept for old sandboxes.
	Notes      string          `json:"notes"`
	Watchlist  json.RawMessage `json:"watchlist"`
	Objectives map[string]int  `json:"objectives"`
}

// Formation is the planned line-up.
type Formation struct {
	Module    string     `json:"module"`
	Positions []Position `json:"positions"`
}

// Position assigns a player to a slot of the formation.
type Position struct {
	Slot     string `json:"slot"`
	PlayerID string `json:"playerId"`
}

// RosterPlan is a contract the user considers offering.
type RosterPlan struct {
	Years        int                 `json:"years"`
	Wage         fantaleague.Credits `json:"wage"`
	FromSnapshot bool                `json:"fromSnapshot"`
}

// ClubSnapshot is a copy of a club's active roster at some point in time.
type ClubSnapshot struct {
	ClubID     string           `json:"clubId"`
	CapturedAt time.Time        `json:"capturedAt"`
	Players    []SnapshotPlayer `json:"players"`
}

// SnapshotPlayer is a player of a ClubSnapshot.
type SnapshotPlayer struct {
	PlayerID string `json:"playerId"`
}

// NoteSet is a named board of auction notes, players sorted in columns.
type NoteSet struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Columns Columns `json:"columns"`
}

// Columns are the tiers of a NoteSet: first, second and third choices,
// starters and bets. Each lists player ids.
type Columns struct {
	Top       []string `json:"top"`
	Seconda   []string `json:"seconda"`
	Terza     []string `json:"terza"`
	Titolari  []string `json:"titolari"`
	Scommesse []string `json:"scommesse"`
}

// Default returns an empty sandbox for user.
func Default(user string, now time.Time) *Sandbox {
	sb := &Sandbox{
		SchemaVersion: SchemaVersion,
		UserID:        user,
		CreatedAt:     now.UTC(),
		UpdatedAt:     now.UTC(),
	}
	sb.fillDefaults()
	return sb
}

// fillDefaults gives every collection a usable value.
func (sb *Sandbox) fillDefaults() {
	if sb.Formation.Module == "" {
		sb.Formation.Module = DefaultModule
	}
	if sb.Formation.Positions == nil {
		sb.Formation.Positions = []Position{}
	}
	if sb.RosterPlans == nil {
		sb.RosterPlans = make(map[string]*RosterPlan)
	}
	if sb.NoteSets == nil {
		sb.NoteSets = []*NoteSet{}
	}
	if len(sb.Watchlist) == 0 || string(sb.Watchlist) == "null" {
		sb.Watchlist = json.RawMessage(`[]`)
	}
	if sb.Objectives == nil {
		sb.Objectives = map[string]int{"POR": 0, "DIF": 0, "CEN": 0, "ATT": 0}
	}
}

// migrate upgrades a decoded sandbox to the current schema. It reports whether
// anything was upgraded.
func (sb *Sandbox) migrate() bool {
	upgraded := sb.SchemaVersion < SchemaVersion
	if upgraded {
		sb.SchemaVersion = SchemaVersion
	}
	sb.fillDefaults()
	return upgraded
}

package sandbox

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/fantaleague"
)

// NoteSetPrefix is the identity prefix of note sets.
const NoteSetPrefix = "set"

// Column names of a NoteSet.
const (
	ColumnTop       = "top"
	ColumnSeconda   = "seconda"
	ColumnTerza     = "terza"
	ColumnTitolari  = "titolari"
	ColumnScommesse = "scommesse"
)

// PlanPlayer plans a contract of 'years' seasons for a player valued 'quote',
// replacing any previous plan for the player.
func (sb *Sandbox) PlanPlayer(playerID string, quote fantaleague.Credits, years int) (*RosterPlan, error) {
	if strings.TrimSpace(playerID) == "" {
		return nil, fmt.Errorf("%w: player id is required", fantaleague.ErrInvalidInput)
	}
	wage, err := fantaleague.WageFor(quote, years)
	if err != nil {
		return nil, err
	}
	plan := &RosterPlan{Years: years, Wage: wage}
	sb.RosterPlans[playerID] = plan
	return plan, nil
}

// Unplan removes a player's plan. It reports whether there was one.
func (sb *Sandbox) Unplan(playerID string) bool {
	_, ok := sb.RosterPlans[playerID]
	delete(sb.RosterPlans, playerID)
	return ok
}

// PlannedWages returns the sum of the planned wages.
func (sb *Sandbox) PlannedWages() fantaleague.Credits {
	var total fantaleague.Credits
	for _, id := range slices.Sorted(maps.Keys(sb.RosterPlans)) {
		total = total.Add(sb.RosterPlans[id].Wage)
	}
	return total.Round3()
}

// CaptureClub snapshots the active roster of a club. Every captured player
// without a plan gets one from their running contract, for the seasons left
// from 'season' on.
func (sb *Sandbox) CaptureClub(club *fantaleague.Club, season int, now time.Time) *ClubSnapshot {
	snap := &ClubSnapshot{ClubID: club.ID, CapturedAt: now.UTC(), Players: []SnapshotPlayer{}}
	for r := range club.ActiveEntries() {
		snap.Players = append(snap.Players, SnapshotPlayer{PlayerID: r.PlayerID})
		if _, planned := sb.RosterPlans[r.PlayerID]; planned {
			continue
		}
		sb.RosterPlans[r.PlayerID] = &RosterPlan{
			Years:        max(1, r.EndSeason-season+1),
			Wage:         r.Wage,
			FromSnapshot: true,
		}
	}
	sb.ClubSnapshot = snap
	return snap
}

// ParseModule checks a formation module such as "4-4-2" or "3-4-2-1": outfield
// lines adding up to ten players.
func ParseModule(module string) ([]int, error) {
	var lines []int
	total := 0
	for _, f := range strings.Split(strings.TrimSpace(module), "-") {
		n, err := strconv.Atoi(f)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%w: formation module %q", fantaleague.ErrInvalidInput, module)
		}
		lines = append(lines, n)
		total += n
	}
	if len(lines) < 2 || total != 10 {
		return nil, fmt.Errorf("%w: formation module %q must have 10 outfield players", fantaleague.ErrInvalidInput, module)
	}
	return lines, nil
}

// SetFormation sets the formation module and its positions.
func (sb *Sandbox) SetFormation(module string, positions []Position) error {
	if _, err := ParseModule(module); err != nil {
		return err
	}
	if len(positions) > 11 {
		return fmt.Errorf("%w: %d positions, at most 11", fantaleague.ErrInvalidInput, len(positions))
	}
	sb.Formation = Formation{Module: strings.TrimSpace(module), Positions: slices.Clone(positions)}
	if sb.Formation.Positions == nil {
		sb.Formation.Positions = []Position{}
	}
	return nil
}

// NoteSet returns the note set with this id.
func (sb *Sandbox) NoteSet(id string) (*NoteSet, error) {
	for _, s := range sb.NoteSets {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, fmt.Errorf("note set %w: %q", fantaleague.ErrNotFound, id)
}

// AddNoteSet creates an empty note set.
func (sb *Sandbox) AddNoteSet(name string, ids fantaleague.IDGenerator) (*NoteSet, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: note set name is required", fantaleague.ErrInvalidInput)
	}
	if ids == nil {
		ids = fantaleague.RandomIDs
	}
	taken := func(id string) bool {
		_, err := sb.NoteSet(id)
		return err == nil
	}
	s := &NoteSet{
		ID:   ids.NewID(NoteSetPrefix, taken),
		Name: name,
		Columns: Columns{
			Top: []string{}, Seconda: []string{}, Terza: []string{}, Titolari: []string{}, Scommesse: []string{},
		},
	}
	sb.NoteSets = append(sb.NoteSets, s)
	return s, nil
}

// column returns the column named name.
func (c *Columns) column(name string) (*[]string, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case ColumnTop:
		return &c.Top, nil
	case ColumnSeconda:
		return &c.Seconda, nil
	case ColumnTerza:
		return &c.Terza, nil
	case ColumnTitolari:
		return &c.Titolari, nil
	case ColumnScommesse:
		return &c.Scommesse, nil
	}
	return nil, fmt.Errorf("%w: unknown column %q", fantaleague.ErrInvalidInput, name)
}

// AddNote moves a player into a column of a note set. A player appears in at
// most one column of a set.
func (sb *Sandbox) AddNote(setID, column, playerID string) error {
	s, err := sb.NoteSet(setID)
	if err != nil {
		return err
	}
	col, err := s.Columns.column(column)
	if err != nil {
		return err
	}
	for _, name := range []string{ColumnTop, ColumnSeconda, ColumnTerza, ColumnTitolari, ColumnScommesse} {
		other, _ := s.Columns.column(name)
		*other = slices.DeleteFunc(*other, func(id string) bool { return id == playerID })
	}
	*col = append(*col, playerID)
	return nil
}

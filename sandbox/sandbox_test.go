package sandbox

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/etnz/fantaleague"
	"github.com/etnz/fantaleague/store"
	"github.com/google/go-cmp/cmp"
)

var (
	t0 = time.Date(2025, time.August, 1, 9, 0, 0, 0, time.UTC)
	t1 = time.Date(2025, time.August, 2, 9, 0, 0, 0, time.UTC)
)

// stepClock returns t0 first, then t1 forever.
func stepClock() fantaleague.Clock {
	calls := 0
	return func() time.Time {
		calls++
		if calls == 1 {
			return t0
		}
		return t1
	}
}

func TestLoad_Default(t *testing.T) {
	m := NewManager(store.NewMemory(), fantaleague.FixedClock(t0))
	sb, err := m.Load(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if sb.SchemaVersion != 2 || sb.UserID != "alice" || sb.Formation.Module != "4-4-2" {
		t.Errorf("Load() = v%d %q %q, want a v2 4-4-2 sandbox of alice", sb.SchemaVersion, sb.UserID, sb.Formation.Module)
	}
	if sb.RosterPlans == nil || sb.NoteSets == nil || sb.ClubSnapshot != nil {
		t.Errorf("Load() = %+v, want empty collections and no snapshot", sb)
	}
	if _, err := m.Load(context.Background(), " "); !errors.Is(err, ErrNoUser) {
		t.Errorf("Load(no user) error = %v, want %v", err, ErrNoUser)
	}
}

func TestLoad_Corrupt(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	if err := mem.Put(ctx, Key("alice"), []byte("{oops")); err != nil {
		t.Fatal(err)
	}
	sb, err := NewManager(mem, fantaleague.FixedClock(t0)).Load(ctx, "alice")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if sb.SchemaVersion != SchemaVersion || len(sb.RosterPlans) != 0 {
		t.Errorf("Load() = %+v, want a default sandbox", sb)
	}
}

func TestLoad_MigratesV1(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	v1 := `{"userId":"alice","notes":"buy strikers","watchlist":["pl_1"],"objectives":{"POR":2,"DIF":8,"CEN":8,"ATT":6}}`
	if err := mem.Put(ctx, Key("alice"), []byte(v1)); err != nil {
		t.Fatal(err)
	}
	sb, err := NewManager(mem, nil).Load(ctx, "alice")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if sb.SchemaVersion != 2 || sb.Formation.Module != DefaultModule || sb.RosterPlans == nil || sb.NoteSets == nil {
		t.Errorf("Load() = %+v, want a migrated v2 sandbox", sb)
	}
	if sb.Notes != "buy strikers" || sb.Objectives["ATT"] != 6 || string(sb.Watchlist) != `["pl_1"]` {
		t.Errorf("legacy fields lost: %q %v %s", sb.Notes, sb.Objectives, sb.Watchlist)
	}
}

func TestSave(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	m := NewManager(mem, stepClock())
	sb, err := m.Load(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := sb.PlanPlayer("pl_1", fantaleague.Cr(40), 2); err != nil {
		t.Fatal(err)
	}
	if err := m.Save(ctx, sb); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if !sb.CreatedAt.Equal(t0) || !sb.UpdatedAt.Equal(t1) {
		t.Errorf("Save() stamps = %s %s, want created %s updated %s", sb.CreatedAt, sb.UpdatedAt, t0, t1)
	}
	got, err := m.Load(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(sb, got, cmp.Comparer(fantaleague.Credits.Equal)); diff != "" {
		t.Errorf("Load() after Save() mismatch (-want +got):\n%s", diff)
	}
	// Sandboxes are per user.
	bob, _ := m.Load(ctx, "bob")
	if len(bob.RosterPlans) != 0 {
		t.Error("bob sees alice's plans")
	}
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	m := NewManager(mem, fantaleague.FixedClock(t0))
	sb, _ := m.Load(ctx, "alice")
	sb.Notes = "x"
	if err := m.Save(ctx, sb); err != nil {
		t.Fatal(err)
	}
	got, err := m.Reset(ctx, "alice")
	if err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	if got.Notes != "" {
		t.Errorf("Reset() kept the notes")
	}
	if keys := mem.Keys(); len(keys) != 0 {
		t.Errorf("stored keys = %v, want none", keys)
	}
}

func TestCurrentUser(t *testing.T) {
	ctx := context.Background()
	m := NewManager(store.NewMemory(), nil)
	if u, err := m.CurrentUser(ctx); err != nil || u != "" {
		t.Errorf("CurrentUser() = %q, %v, want none", u, err)
	}
	if err := m.SetCurrentUser(ctx, "alice"); err != nil {
		t.Fatalf("SetCurrentUser() failed: %v", err)
	}
	if u, err := m.CurrentUser(ctx); err != nil || u != "alice" {
		t.Errorf("CurrentUser() = %q, %v, want alice", u, err)
	}
	if err := m.SetCurrentUser(ctx, "../etc"); err == nil {
		t.Error("SetCurrentUser(../etc) succeeded")
	}
}

func TestExportImport(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	m := NewManager(mem, fantaleague.FixedClock(t0))
	sb, _ := m.Load(ctx, "alice")
	if _, err := sb.PlanPlayer("pl_1", fantaleague.Cr(33), 3); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := Export(&buf, sb); err != nil {
		t.Fatalf("Export() failed: %v", err)
	}
	if !strings.Contains(buf.String(), "\n  \"schemaVersion\": 2") {
		t.Errorf("Export() is not indented:\n%.200s", buf.String())
	}

	got, err := m.Import(ctx, &buf, "bob")
	if err != nil {
		t.Fatalf("Import() failed: %v", err)
	}
	if got.UserID != "bob" {
		t.Errorf("Import() user = %q, want bob", got.UserID)
	}
	if plan := got.RosterPlans["pl_1"]; plan == nil || !plan.Wage.Equal(fantaleague.Cr(24.75)) {
		t.Errorf("Import() plan = %+v, want wage 24.75", plan)
	}
	if _, err := mem.Get(ctx, Key("bob")); err != nil {
		t.Errorf("imported sandbox not saved: %v", err)
	}
}

func TestImport_Invalid(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	m := NewManager(mem, nil)
	if _, err := m.Import(ctx, strings.NewReader("not json"), "alice"); !errors.Is(err, fantaleague.ErrInvalidInput) {
		t.Errorf("Import() error = %v, want %v", err, fantaleague.ErrInvalidInput)
	}
	if len(mem.Keys()) != 0 {
		t.Errorf("a failed Import() stored %v", mem.Keys())
	}
}

func TestImport_V1(t *testing.T) {
	m := NewManager(store.NewMemory(), nil)
	sb, err := m.Import(context.Background(), strings.NewReader(`{"userId":"mallory","notes":"n"}`), "alice")
	if err != nil {
		t.Fatalf("Import() failed: %v", err)
	}
	if sb.SchemaVersion != 2 || sb.UserID != "alice" || sb.Notes != "n" {
		t.Errorf("Import() = v%d %q %q, want a v2 sandbox of alice", sb.SchemaVersion, sb.UserID, sb.Notes)
	}
}

func TestExportFilename(t *testing.T) {
	if got := ExportFilename("alice"); got != "sandbox-alice.json" {
		t.Errorf("ExportFilename() = %q", got)
	}
	if got := ExportFilename(""); got != "sandbox-user.json" {
		t.Errorf("ExportFilename() = %q", got)
	}
}

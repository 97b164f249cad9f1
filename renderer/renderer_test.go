package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/etnz/fantaleague"
	"github.com/etnz/fantaleague/date"
	"github.com/etnz/fantaleague/sandbox"
)

// testCatalog returns the default catalog with one club holding two
// contracts and two transactions.
func testCatalog() (*fantaleague.Catalog, *fantaleague.Club) {
	c := fantaleague.Default(time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC))
	c.Players = append(c.Players,
		&fantaleague.Player{ID: "pl_1", Name: "Lautaro", Roles: []fantaleague.Role{fantaleague.Forward, fantaleague.Striker}, Quote: fantaleague.Cr(40)},
		&fantaleague.Player{ID: "pl_2", Name: "Sommer", Roles: []fantaleague.Role{fantaleague.Goalkeeper}, Quote: fantaleague.Cr(15)},
		&fantaleague.Player{ID: "pl_3", Name: "Barella", Roles: []fantaleague.Role{fantaleague.Midfielder}, Quote: fantaleague.Cr(33)},
	)
	club := &fantaleague.Club{
		ID: "cl_a", Name: "Atletico Birsa", DivisionID: "div_a", City: "Trieste",
		Colors: []string{"#003366", "#ffffff"},
		Roster: []*fantaleague.RosterEntry{
			{PlayerID: "pl_1", ContractYears: 2, Wage: fantaleague.Cr(20), OriginalQuote: fantaleague.Cr(40),
				StartSeason: 2025, EndSeason: 2026, Status: fantaleague.Active, Original: true},
			{PlayerID: "pl_2", ContractYears: 4, Wage: fantaleague.Cr(15), OriginalQuote: fantaleague.Cr(15),
				StartSeason: 2025, EndSeason: 2028, Status: fantaleague.Released, Original: true, ReleaseStartSeason: 2025},
		},
		Transactions: []*fantaleague.Transaction{
			{ID: "tx_1", Date: date.MustParse("2025-08-01"), Description: "Opening", Sign: fantaleague.Plus, Amount: fantaleague.Cr(400), Meta: fantaleague.Manual{}},
			{ID: "tx_2", Date: date.MustParse("2025-08-02"), Description: "Auction", Sign: fantaleague.Minus, Amount: fantaleague.Cr(40), Meta: fantaleague.Purchase{PlayerID: "pl_1"}},
		},
	}
	club.RecomputeLedger()
	club.RecalcWage(2025)
	c.Clubs = append(c.Clubs, club)
	return c, club
}

func assertContains(t *testing.T, got string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(got, w) {
			t.Errorf("output misses %q:\n%s", w, got)
		}
	}
}

func TestRosterMarkdown(t *testing.T) {
	c, club := testCatalog()
	got := RosterMarkdown(c, club, 2025)
	assertContains(t, got,
		"Atletico Birsa roster, season 2025",
		"27.500 cr, 25% of the 110.000 cr cap",
		"Lautaro", "A/PC", "2025-2026",
		"released from 2025",
	)
}

func TestLedgerMarkdown(t *testing.T) {
	_, club := testCatalog()
	got := LedgerMarkdown(club, date.Range{})
	assertContains(t, got, "Atletico Birsa ledger", "360.000 cr", "2025-08-02", "acquisto", "-40.000 cr")
	if strings.Contains(got, "Warning") {
		t.Errorf("a replayed ledger is reported broken:\n%s", got)
	}

	period, err := date.ParseRange("2025-08-02", "")
	if err != nil {
		t.Fatal(err)
	}
	got = LedgerMarkdown(club, period)
	assertContains(t, got, "since 2025-08-02", "Auction")
	if strings.Contains(got, "Opening") {
		t.Errorf("LedgerMarkdown(since 2025-08-02) shows the opening transaction:\n%s", got)
	}

	club.Budget = fantaleague.Cr(1)
	assertContains(t, LedgerMarkdown(club, date.Range{}), "Warning")
}

func TestListoneMarkdown(t *testing.T) {
	c, _ := testCatalog()
	got := ListoneMarkdown(c, "div_b")
	assertContains(t, got, "Mamo’s B League", "Lautaro", "signed elsewhere", "Sommer", "Barella")
	got = ListoneMarkdown(c, "div_a")
	if strings.Contains(got, "Lautaro") {
		t.Errorf("Listone of div_a lists a player of div_a:\n%s", got)
	}
}

func TestClubsMarkdown(t *testing.T) {
	c, _ := testCatalog()
	got := ClubsMarkdown(c)
	assertContains(t, got, "Bar Birsa Super League", "cl_a", "25%")
	if strings.Contains(got, "Mamo’s B League") {
		t.Errorf("an empty division is listed:\n%s", got)
	}
}

func TestPlayersMarkdown(t *testing.T) {
	c, _ := testCatalog()
	assertContains(t, PlayersMarkdown(c), "pl_3", "Barella", "**Atletico Birsa**")
}

func TestRenderClubCard(t *testing.T) {
	c, club := testCatalog()
	got := RenderClubCard(NewClubCard(c, club))
	assertContains(t, got,
		"# Atletico Birsa",
		"Division: **Bar Birsa Super League**",
		"- City: Trieste",
		"- Colors: #003366, #ffffff",
		"| 360.000 cr | 27.500 cr | 25% of 110.000 cr | 1 / 30 |",
	)
	if strings.Contains(got, "error") {
		t.Errorf("RenderClubCard() failed:\n%s", got)
	}
}

func TestSandboxMarkdown(t *testing.T) {
	c, club := testCatalog()
	sb := sandbox.Default("alice", time.Date(2025, time.August, 3, 0, 0, 0, 0, time.UTC))
	if got := SandboxMarkdown(sb, c); strings.Contains(got, "Contract plans") || strings.Contains(got, "Snapshot") {
		t.Errorf("empty sections are rendered:\n%s", got)
	}

	sb.CaptureClub(club, 2025, time.Date(2025, time.August, 4, 0, 0, 0, 0, time.UTC))
	if _, err := sb.PlanPlayer("pl_3", fantaleague.Cr(33), 3); err != nil {
		t.Fatal(err)
	}
	set, err := sb.AddNoteSet("Summer auction", nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := sb.AddNote(set.ID, "top", "pl_3"); err != nil {
		t.Fatal(err)
	}
	assertContains(t, SandboxMarkdown(sb, c),
		"Sandbox of alice", "4-4-2",
		"Contract plans", "Barella", "24.75", "snapshot",
		"Snapshot of Atletico Birsa, 2025-08-04",
		"Summer auction", "Top",
	)
}

func TestHTML(t *testing.T) {
	c, club := testCatalog()
	got, err := HTML(RosterMarkdown(c, club, 2025))
	if err != nil {
		t.Fatalf("HTML() failed: %v", err)
	}
	assertContains(t, got, "<h1>", "<table>", "Lautaro</td>")

	page, err := HTMLPage("A & B", "# Title")
	if err != nil {
		t.Fatalf("HTMLPage() failed: %v", err)
	}
	assertContains(t, page, "<title>A &amp; B</title>", "<h1>Title</h1>")
}

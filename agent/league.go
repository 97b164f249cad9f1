package agent

import (
	"context"

	"github.com/etnz/fantaleague"
	"github.com/etnz/fantaleague/date"
	"github.com/etnz/fantaleague/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You assist the office of a fantasy football league: two divisions of clubs
			signing real Serie A players on contracts of 1 to 4 seasons, under a wage cap.

			The experts available as Tools keep the context of your previous questions.
			Devise a plan of questions to ask each expert, then answer the user's request.
			Amounts are in credits. Answer in the user's language, in markdown.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewScout returns the expert on real football: players' form, injuries and
// transfers, grounded on Google Search.
func NewScout() *Expert {
	return &Expert{
		Name: "Scout",
		Description: `The Scout follows real football closely: Serie A players, their form,
		injuries, transfers and news. Ask the Scout whenever a question needs recent facts
		about a real player or club.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are a football scout. Use Google Search to ground every assertion about
			players, clubs and matches. Relate the news to the question you are asked.
		`}}},
		},
	}
}

// NewSecretary returns the expert reading the league data: clubs, rosters,
// ledgers and free agents.
func NewSecretary(c *fantaleague.Catalog, season int) *Expert {
	lib := SecretaryFunctions(c, season)
	return &Expert{
		Name: "Secretary",
		Description: `The Secretary keeps the league books: clubs, rosters and contracts,
		wages against the wage cap, budgets and transactions, and the free agents
		(listone) of each division.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are the secretary of the league. Use the Tools to read the league data.
			Other experts may refer to clubs, players or divisions approximately: list
			the clubs or players first to find what they meant.
		`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func is a Function implemented by a Go func.
type Func struct {
	Decl *genai.FunctionDeclaration
	Func func(ctx context.Context, args map[string]any) (string, error)
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }

func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	text, err := f.Func(ctx, args)
	if err != nil {
		return failure(id, f.Decl.Name, err)
	}
	return output(id, f.Decl.Name, text)
}

// markdownReport declares a function returning a markdown report.
func markdownReport(name, description string, params map[string]string) *genai.FunctionDeclaration {
	d := &genai.FunctionDeclaration{
		Name:        name,
		Description: description,
		Response:    &genai.Schema{Type: genai.TypeString, Description: "A markdown report."},
	}
	if len(params) > 0 {
		d.Parameters = &genai.Schema{Type: genai.TypeObject, Properties: map[string]*genai.Schema{}}
		for p, desc := range params {
			d.Parameters.Properties[p] = &genai.Schema{Type: genai.TypeString, Description: desc}
			d.Parameters.Required = append(d.Parameters.Required, p)
		}
	}
	return d
}

// SecretaryFunctions returns the functions reading the catalog.
func SecretaryFunctions(c *fantaleague.Catalog, season int) []Function {
	clubParam := map[string]string{"club": "The club id or name."}
	return []Function{
		&Func{
			Decl: markdownReport("Clubs", "Clubs lists the clubs of each division with their roster size, wages and budget.", nil),
			Func: func(context.Context, map[string]any) (string, error) {
				return renderer.ClubsMarkdown(c), nil
			},
		},
		&Func{
			Decl: markdownReport("Players", "Players lists every player with roles, quote and the clubs holding a contract.", nil),
			Func: func(context.Context, map[string]any) (string, error) {
				return renderer.PlayersMarkdown(c), nil
			},
		},
		&Func{
			Decl: markdownReport("Roster", "Roster lists a club's contracts for the current season and its wage cap usage.", clubParam),
			Func: func(_ context.Context, args map[string]any) (string, error) {
				club, err := clubArg(c, args)
				if err != nil {
					return "", err
				}
				return renderer.RosterMarkdown(c, club, season), nil
			},
		},
		&Func{
			Decl: markdownReport("Ledger", "Ledger lists a club's transactions with the running budget.", clubParam),
			Func: func(_ context.Context, args map[string]any) (string, error) {
				club, err := clubArg(c, args)
				if err != nil {
					return "", err
				}
				return renderer.LedgerMarkdown(club, date.Range{}), nil
			},
		},
		&Func{
			Decl: markdownReport("Listone", "Listone lists the free agents a division's clubs can sign.",
				map[string]string{"division": "The division id, code (A or B) or name."}),
			Func: func(_ context.Context, args map[string]any) (string, error) {
				ref, err := stringArg(args, "division")
				if err != nil {
					return "", err
				}
				d, err := c.FindDivision(ref)
				if err != nil {
					return "", err
				}
				return renderer.ListoneMarkdown(c, d.ID), nil
			},
		},
	}
}

func clubArg(c *fantaleague.Catalog, args map[string]any) (*fantaleague.Club, error) {
	ref, err := stringArg(args, "club")
	if err != nil {
		return nil, err
	}
	return c.FindClub(ref)
}

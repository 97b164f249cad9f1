package fantaleague

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
)

// this file contains the save game format: the whole catalog as a single,
// human readable json file.

// ExportFilename is the conventional name of an exported save game.
const ExportFilename = "bbsl-savegame.json"

// Export writes the catalog as a save game.
func (l *League) Export(w io.Writer) error { return ExportCatalog(w, l.catalog) }

// Import replaces the whole catalog with the save game read from r.
//
// A save game that cannot be parsed leaves the league untouched. Once
// replaced, the catalog is saved and then budgets are re-synced with the
// ledgers; a failing re-sync is only logged.
func (l *League) Import(ctx context.Context, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("could not read save game: %w", err)
	}
	c, err := DecodeCatalog(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	l.catalog = c
	if err := l.commit(ctx); err != nil {
		return err
	}
	l.resync(ctx)
	log.Printf("imported %d players, %d clubs", len(c.Players), len(c.Clubs))
	return nil
}

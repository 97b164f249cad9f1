package fantaleague

import (
	"encoding/json"
	"fmt"
	"io"
)

// DecodeCatalog reads a catalog blob. Transactions in a legacy shape are
// converted on the fly, clubs stored without a budget get a derived one.
func DecodeCatalog(r io.Reader) (*Catalog, error) {
	var c Catalog
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("could not decode catalog: %w", err)
	}
	c.fillDefaults()
	return &c, nil
}

// EncodeCatalog writes the catalog as a single json document.
func EncodeCatalog(w io.Writer, c *Catalog) error {
	if err := json.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("could not encode catalog: %w", err)
	}
	return nil
}

// ExportCatalog writes the catalog as indented json, the format of exported
// save games.
func ExportCatalog(w io.Writer, c *Catalog) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("could not export catalog: %w", err)
	}
	return nil
}

package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// AliasTable maps alias category names to canonical category names. Lookups
// are single-hop: chains are not collapsed, so with A→B and B→C a lookup of
// A yields B.
type AliasTable map[string]string

// Resolve returns the mapped canonical name for category, or category itself
// when no alias is defined.
func (t AliasTable) Resolve(category string) string {
	if to, ok := t[category]; ok {
		return to
	}
	return category
}

// Aliases loads the project's category alias table. A missing alias file
// yields an empty table.
func (p *Project) Aliases() (AliasTable, error) {
	path := filepath.Join(p.Path, aliasFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return AliasTable{}, nil
		}
		return nil, fmt.Errorf("read aliases: %w", err)
	}
	var table AliasTable
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse aliases: %w", err)
	}
	if table == nil {
		table = AliasTable{}
	}
	return table, nil
}

// AddAlias maps the from category onto the to category, overwriting any
// existing mapping for from, and persists the table immediately.
func (p *Project) AddAlias(from, to string) error {
	table, err := p.Aliases()
	if err != nil {
		return err
	}
	table[from] = to
	data, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(p.Path, aliasFile), data, 0o644); err != nil {
		return fmt.Errorf("write aliases: %w", err)
	}
	return nil
}

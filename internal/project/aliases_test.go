package project_test

import (
	"testing"

	"fanvault/internal/testsupport"
)

func TestAliasResolveSingleHop(t *testing.T) {
	p := testsupport.NewProject(t)

	if err := p.AddAlias("X", "Y"); err != nil {
		t.Fatal(err)
	}
	if err := p.AddAlias("Y", "Z"); err != nil {
		t.Fatal(err)
	}

	table, err := p.Aliases()
	if err != nil {
		t.Fatal(err)
	}
	if got := table.Resolve("X"); got != "Y" {
		t.Errorf("Resolve(X) = %q, want Y (chains must not collapse)", got)
	}
	if got := table.Resolve("Y"); got != "Z" {
		t.Errorf("Resolve(Y) = %q, want Z", got)
	}
	if got := table.Resolve("unmapped"); got != "unmapped" {
		t.Errorf("Resolve(unmapped) = %q, want identity fallback", got)
	}
}

func TestAddAliasOverwrites(t *testing.T) {
	p := testsupport.NewProject(t)

	if err := p.AddAlias("X", "Y"); err != nil {
		t.Fatal(err)
	}
	if err := p.AddAlias("X", "Z"); err != nil {
		t.Fatal(err)
	}

	table, err := p.Aliases()
	if err != nil {
		t.Fatal(err)
	}
	if got := table.Resolve("X"); got != "Z" {
		t.Errorf("Resolve(X) = %q, want Z after overwrite", got)
	}
}

func TestAliasesEmptyWithoutFile(t *testing.T) {
	p := testsupport.NewProject(t)
	table, err := p.Aliases()
	if err != nil {
		t.Fatal(err)
	}
	if len(table) != 0 {
		t.Errorf("expected empty table, got %v", table)
	}
}

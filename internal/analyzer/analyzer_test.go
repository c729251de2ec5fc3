package analyzer

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/johndauphine/dbsize/internal/config"
)

func TestRunReportsAllTables(t *testing.T) {
	p := newTestPool(t)
	mustExec(t, p, `CREATE TABLE cache (payload TEXT)`)
	mustExec(t, p, `CREATE TABLE wallet (a INTEGER)`)
	mustExec(t, p, `INSERT INTO cache VALUES ('{"k":"v"}')`)
	mustExec(t, p, `INSERT INTO wallet VALUES (1)`)

	cfg := testConfig(map[string]*config.TableSchema{
		"cache": {JSONFields: []string{"payload"}},
	})

	a := New(p, cfg)
	var buf bytes.Buffer
	a.SetOutput(&buf)

	if err := a.Run(context.Background(), nil); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	// Whichever path produced the report, every user table must be in it.
	out := buf.String()
	for _, table := range []string{"cache", "wallet"} {
		if !strings.Contains(out, table) {
			t.Errorf("report missing table %q:\n%s", table, out)
		}
	}
}

func TestRunTableFilter(t *testing.T) {
	p := newTestPool(t)
	mustExec(t, p, `CREATE TABLE wallet (a INTEGER)`)
	mustExec(t, p, `CREATE TABLE swap (b INTEGER)`)
	mustExec(t, p, `INSERT INTO wallet VALUES (1)`)
	mustExec(t, p, `INSERT INTO swap VALUES (2)`)

	a := New(p, testConfig(nil))
	var buf bytes.Buffer
	a.SetOutput(&buf)

	if err := a.Run(context.Background(), []string{"wallet"}); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "wallet") {
		t.Errorf("report missing requested table:\n%s", out)
	}
	if strings.Contains(out, "swap") {
		t.Errorf("report contains filtered-out table:\n%s", out)
	}
}

func TestRunEmptyDatabase(t *testing.T) {
	p := newTestPool(t)

	a := New(p, testConfig(nil))
	var buf bytes.Buffer
	a.SetOutput(&buf)

	if err := a.Run(context.Background(), nil); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !strings.Contains(buf.String(), "No user tables found.") {
		t.Errorf("expected empty-database notice, got:\n%s", buf.String())
	}
}

func TestRunRendersCandidates(t *testing.T) {
	p := newTestPool(t)
	mustExec(t, p, `CREATE TABLE cache (payload TEXT)`)

	cfg := testConfig(nil)
	cfg.Candidates = []config.Candidate{
		{Table: "cache", Reason: "JSON payload column dominates storage"},
	}

	a := New(p, cfg)
	var buf bytes.Buffer
	a.SetOutput(&buf)

	if err := a.Run(context.Background(), nil); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Potential High Storage Candidates") {
		t.Errorf("expected candidates section, got:\n%s", out)
	}
	if !strings.Contains(out, "JSON payload column dominates storage") {
		t.Errorf("expected candidate reason, got:\n%s", out)
	}
}

func TestFallbackMatchesCatalog(t *testing.T) {
	p := newTestPool(t)
	mustExec(t, p, `CREATE TABLE alpha (x TEXT)`)
	mustExec(t, p, `CREATE TABLE beta (y INTEGER)`)
	mustExec(t, p, `CREATE TABLE gamma (z REAL)`)

	tables, err := p.ListTables(context.Background())
	if err != nil {
		t.Fatalf("ListTables() error: %v", err)
	}

	// The fallback must produce exactly the catalog's table set, schema
	// entries or not.
	results := NewEstimator(p, testConfig(nil)).EstimateTables(context.Background(), tables, nil)
	if len(results) != len(tables) {
		t.Fatalf("got %d results for %d tables", len(results), len(tables))
	}
	seen := map[string]bool{}
	for _, r := range results {
		seen[r.Name] = true
	}
	for _, table := range tables {
		if !seen[table] {
			t.Errorf("fallback results missing table %q", table)
		}
	}
}

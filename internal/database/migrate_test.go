package database

import (
	"strings"
	"testing"
)

func TestLoadMigrations(t *testing.T) {
	migs, err := loadMigrations()
	if err != nil {
		t.Fatalf("loadMigrations: %v", err)
	}
	if len(migs) == 0 {
		t.Fatalf("no embedded migrations")
	}
	if migs[0].version != 1 || migs[0].name != "init" {
		t.Fatalf("first migration = %+v", migs[0])
	}
	for i := 1; i < len(migs); i++ {
		if migs[i].version <= migs[i-1].version {
			t.Fatalf("migrations out of order: %d after %d", migs[i].version, migs[i-1].version)
		}
	}

	sql, err := migrationsFS.ReadFile(migs[0].file)
	if err != nil {
		t.Fatalf("read %s: %v", migs[0].file, err)
	}
	for _, table := range []string{"users", "reasons", "qrts", "action_items"} {
		if !strings.Contains(string(sql), "CREATE TABLE IF NOT EXISTS "+table) {
			t.Fatalf("init migration does not create %s", table)
		}
	}
}

func TestMigrationFilePattern(t *testing.T) {
	cases := map[string]bool{
		"0001_init.up.sql":      true,
		"0012_add_index.up.sql": true,
		"0001_init.down.sql":    false,
		"1_init.up.sql":         false,
		"README.md":             false,
	}
	for name, want := range cases {
		if got := migFileRe.MatchString(name); got != want {
			t.Fatalf("%s: match=%v, want %v", name, got, want)
		}
	}
}

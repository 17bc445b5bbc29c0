package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRosterMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_roster_tables.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no roster migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE schedule_entries",
		"CONSTRAINT idx_schedule_entries_cell UNIQUE (store_id, staff_name, schedule_date)",
		"CHECK (status IN ('work', 'off', 'half'))",
		"CHECK (position IN ('K', 'H', 'KH'))",
		"CREATE TABLE change_requests",
		"CHECK (status IN ('pending', 'approved', 'rejected'))",
		"CREATE INDEX idx_change_requests_store_status",
		"DROP TABLE change_requests",
		"DROP TABLE schedule_entries",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestMembershipMigrationContainsRoleChecks(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_core_tables.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no core tables migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE store_memberships",
		"CHECK (role IN ('owner', 'manager', 'staff'))",
		"CHECK (status IN ('active', 'invited', 'disabled'))",
		"CONSTRAINT idx_memberships_store_user UNIQUE (store_id, user_id)",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

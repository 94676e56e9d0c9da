package service

import (
	"context"
	"reflect"
	"testing"

	"github.com/mpetrov/teamdrop/internal/storage"
)

func TestBuildReport_OrderedByTeamNumber(t *testing.T) {
	provider := storage.NewMemoryProvider()
	submissions := NewSubmissionService(provider)
	ctx := context.Background()

	for _, team := range []string{"Team 12", "Team 3", "Team 40", "Team 7"} {
		if _, err := provider.CreateFolder(ctx, team); err != nil {
			t.Fatalf("CreateFolder failed: %v", err)
		}
	}

	entries, err := submissions.BuildReport(ctx)
	if err != nil {
		t.Fatalf("BuildReport failed: %v", err)
	}

	var order []string
	for _, entry := range entries {
		order = append(order, entry.Team)
	}
	expected := []string{"Team 3", "Team 7", "Team 12", "Team 40"}
	if !reflect.DeepEqual(order, expected) {
		t.Errorf("Report order = %v, expected %v", order, expected)
	}
}

func TestBuildReport_EntryFields(t *testing.T) {
	provider := storage.NewMemoryProvider()
	submissions := NewSubmissionService(provider)
	ctx := context.Background()

	folder, err := provider.CreateFolder(ctx, "Team 1")
	if err != nil {
		t.Fatalf("CreateFolder failed: %v", err)
	}
	alice, err := provider.UploadFile(ctx, folder.ID, "alice_hw1.zip", "application/zip", []byte("a"))
	if err != nil {
		t.Fatalf("UploadFile failed: %v", err)
	}
	bob, err := provider.UploadFile(ctx, folder.ID, "bob_hw2.zip", "application/zip", []byte("b"))
	if err != nil {
		t.Fatalf("UploadFile failed: %v", err)
	}
	provider.SetModifiedTime(alice.ID, "2026-03-01T10:00:00Z")
	provider.SetModifiedTime(bob.ID, "2026-03-02T09:30:00Z")

	entries, err := submissions.BuildReport(ctx)
	if err != nil {
		t.Fatalf("BuildReport failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}

	entry := entries[0]
	if entry.Team != "Team 1" {
		t.Errorf("Unexpected team: %s", entry.Team)
	}
	if entry.FileCount != 2 {
		t.Errorf("Expected file_count 2, got %d", entry.FileCount)
	}
	if !reflect.DeepEqual(entry.LoginIDs, []string{"alice", "bob"}) {
		t.Errorf("Unexpected login_ids: %v", entry.LoginIDs)
	}
	if entry.LastModified == nil || *entry.LastModified != "2026-03-02T09:30:00Z" {
		t.Errorf("Unexpected last_modified: %v", entry.LastModified)
	}
}

func TestBuildReport_EmptyFolder(t *testing.T) {
	provider := storage.NewMemoryProvider()
	submissions := NewSubmissionService(provider)
	ctx := context.Background()

	if _, err := provider.CreateFolder(ctx, "Team 5"); err != nil {
		t.Fatalf("CreateFolder failed: %v", err)
	}

	entries, err := submissions.BuildReport(ctx)
	if err != nil {
		t.Fatalf("BuildReport failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}

	entry := entries[0]
	if entry.FileCount != 0 {
		t.Errorf("Expected file_count 0, got %d", entry.FileCount)
	}
	if entry.LastModified != nil {
		t.Errorf("Expected no last_modified, got %q", *entry.LastModified)
	}
	if entry.LoginIDs == nil || len(entry.LoginIDs) != 0 {
		t.Errorf("Expected an empty login_ids slice, got %v", entry.LoginIDs)
	}
}

func TestBuildReport_MalformedTeamName(t *testing.T) {
	provider := storage.NewMemoryProvider()
	submissions := NewSubmissionService(provider)
	ctx := context.Background()

	if _, err := provider.CreateFolder(ctx, "Advisors"); err != nil {
		t.Fatalf("CreateFolder failed: %v", err)
	}

	if _, err := submissions.BuildReport(ctx); err == nil {
		t.Error("Expected an error for a team name without a numeric component")
	}
}

func TestTeamNumber(t *testing.T) {
	tests := []struct {
		team     string
		expected int
		wantErr  bool
	}{
		{"Team 3", 3, false},
		{"Team 12", 12, false},
		{"Team 40", 40, false},
		{"Team", 0, true},
		{"Team x", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := teamNumber(tt.team)
		if tt.wantErr {
			if err == nil {
				t.Errorf("teamNumber(%q) expected an error", tt.team)
			}
			continue
		}
		if err != nil {
			t.Errorf("teamNumber(%q) failed: %v", tt.team, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("teamNumber(%q) = %d, expected %d", tt.team, got, tt.expected)
		}
	}
}

func TestLastModified_IsStringMaximum(t *testing.T) {
	children := []storage.FileMeta{
		{ModifiedTime: "2026-01-15T08:00:00Z"},
		{ModifiedTime: "2026-02-01T00:00:00Z"},
		{ModifiedTime: "2025-12-31T23:59:59Z"},
	}
	if got := lastModified(children); got != "2026-02-01T00:00:00Z" {
		t.Errorf("lastModified = %q", got)
	}
	if got := lastModified(nil); got != "" {
		t.Errorf("lastModified(nil) = %q, expected empty", got)
	}
}

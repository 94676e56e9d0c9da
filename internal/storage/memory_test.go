package storage

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestMemoryProvider_FolderLifecycle(t *testing.T) {
	provider := NewMemoryProvider()
	ctx := context.Background()

	found, err := provider.FindFolders(ctx, "Team 1")
	if err != nil {
		t.Fatalf("FindFolders failed: %v", err)
	}
	if len(found) != 0 {
		t.Fatalf("Expected no folders, got %d", len(found))
	}

	created, err := provider.CreateFolder(ctx, "Team 1")
	if err != nil {
		t.Fatalf("CreateFolder failed: %v", err)
	}
	if created.ID == "" || created.Name != "Team 1" {
		t.Errorf("Unexpected folder meta: %+v", created)
	}

	found, err = provider.FindFolders(ctx, "Team 1")
	if err != nil {
		t.Fatalf("FindFolders failed: %v", err)
	}
	if len(found) != 1 || found[0].ID != created.ID {
		t.Errorf("Expected the created folder back, got %+v", found)
	}

	all, err := provider.ListFolders(ctx)
	if err != nil {
		t.Fatalf("ListFolders failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("Expected 1 folder, got %d", len(all))
	}
}

func TestMemoryProvider_FileLifecycle(t *testing.T) {
	provider := NewMemoryProvider()
	ctx := context.Background()

	folder, err := provider.CreateFolder(ctx, "Team 2")
	if err != nil {
		t.Fatalf("CreateFolder failed: %v", err)
	}

	uploaded, err := provider.UploadFile(ctx, folder.ID, "alice.zip", "application/zip", []byte("zipdata"))
	if err != nil {
		t.Fatalf("UploadFile failed: %v", err)
	}
	if _, err := time.Parse(time.RFC3339, uploaded.ModifiedTime); err != nil {
		t.Errorf("ModifiedTime is not RFC 3339: %q", uploaded.ModifiedTime)
	}

	children, err := provider.ListChildren(ctx, folder.ID)
	if err != nil {
		t.Fatalf("ListChildren failed: %v", err)
	}
	if len(children) != 1 || children[0].Name != "alice.zip" {
		t.Fatalf("Unexpected children: %+v", children)
	}

	matches, err := provider.FindFiles(ctx, folder.ID, "alice.zip")
	if err != nil {
		t.Fatalf("FindFiles failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("Expected 1 match, got %d", len(matches))
	}
	if !bytes.Equal(provider.FileData(matches[0].ID), []byte("zipdata")) {
		t.Error("Stored content mismatch")
	}

	if err := provider.DeleteFile(ctx, matches[0].ID); err != nil {
		t.Fatalf("DeleteFile failed: %v", err)
	}
	children, err = provider.ListChildren(ctx, folder.ID)
	if err != nil {
		t.Fatalf("ListChildren failed: %v", err)
	}
	if len(children) != 0 {
		t.Errorf("Expected no children after delete, got %d", len(children))
	}
}

func TestMemoryProvider_UnknownFolder(t *testing.T) {
	provider := NewMemoryProvider()
	ctx := context.Background()

	if _, err := provider.ListChildren(ctx, "missing"); err == nil {
		t.Error("Expected an error for an unknown folder id")
	}
	if _, err := provider.UploadFile(ctx, "missing", "a.zip", "application/zip", nil); err == nil {
		t.Error("Expected an error for an unknown folder id")
	}
	if err := provider.DeleteFile(ctx, "missing"); err == nil {
		t.Error("Expected an error for an unknown file id")
	}
}

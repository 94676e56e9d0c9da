package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/mpetrov/teamdrop/internal/storage"
)

// ErrArchiveExists reports that a submission archive for the login id is
// already present and the caller did not ask to replace it. Handlers
// answer it with a plain "already exists" response rather than a failure.
var ErrArchiveExists = errors.New("archive already exists")

// UploadedFile is one file from the multipart upload.
type UploadedFile struct {
	Name string
	Data []byte
}

// SubmissionService orchestrates ingest and reporting against the
// storage provider.
type SubmissionService struct {
	provider storage.Provider
}

// NewSubmissionService creates a new submission service
func NewSubmissionService(provider storage.Provider) *SubmissionService {
	return &SubmissionService{provider: provider}
}

// Ingest zips the uploaded files and stores the archive as
// "<loginID>.zip" in the team's folder, creating the folder on first
// use. With replace set, any previous archive for the login id is
// deleted first; without it, an existing archive surfaces as
// ErrArchiveExists. Returns the provider-assigned id of the new archive.
//
// The delete and the upload are two separate provider calls. A failure
// between them leaves the team without an archive for that login id.
func (s *SubmissionService) Ingest(ctx context.Context, team, loginID string, files []UploadedFile, replace bool) (string, error) {
	folderID, err := s.getOrCreateTeamFolder(ctx, team)
	if err != nil {
		return "", err
	}

	existing, err := s.provider.FindFiles(ctx, folderID, ArchiveName(loginID))
	if err != nil {
		return "", fmt.Errorf("failed to check for existing archive: %v", err)
	}
	if len(existing) > 0 {
		if !replace {
			return "", ErrArchiveExists
		}
		for _, file := range existing {
			if err := s.provider.DeleteFile(ctx, file.ID); err != nil {
				return "", fmt.Errorf("failed to delete previous archive: %v", err)
			}
		}
	}

	data, err := buildArchive(loginID, files)
	if err != nil {
		return "", err
	}

	meta, err := s.provider.UploadFile(ctx, folderID, ArchiveName(loginID), "application/zip", data)
	if err != nil {
		return "", fmt.Errorf("failed to upload archive: %v", err)
	}
	log.Printf("Stored archive %s for team %s (file_id: %s)", meta.Name, team, meta.ID)

	return meta.ID, nil
}

// getOrCreateTeamFolder resolves the team's folder under the root,
// creating it on first ingest. Concurrent first ingests for the same
// team can race and create duplicate folders; later lookups then pick
// whichever the provider lists first.
func (s *SubmissionService) getOrCreateTeamFolder(ctx context.Context, team string) (string, error) {
	folders, err := s.provider.FindFolders(ctx, team)
	if err != nil {
		return "", fmt.Errorf("failed to look up team folder: %v", err)
	}
	if len(folders) > 0 {
		return folders[0].ID, nil
	}

	folder, err := s.provider.CreateFolder(ctx, team)
	if err != nil {
		return "", fmt.Errorf("failed to create team folder: %v", err)
	}
	log.Printf("Created team folder %s (id: %s)", team, folder.ID)
	return folder.ID, nil
}

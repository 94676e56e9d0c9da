package storage

import "context"

// FileMeta is the metadata record the provider returns for both files
// and folders. ModifiedTime is an RFC 3339 UTC string, so comparing two
// values as strings orders them chronologically.
type FileMeta struct {
	ID           string
	Name         string
	ModifiedTime string
	Parents      []string
}

// Provider is the storage collaborator shared by all endpoints. Folder
// operations are always relative to the configured root folder.
type Provider interface {
	// FindFolders returns the folders directly under the root whose name
	// matches exactly.
	FindFolders(ctx context.Context, name string) ([]FileMeta, error)

	// ListFolders returns every folder directly under the root.
	ListFolders(ctx context.Context) ([]FileMeta, error)

	// CreateFolder creates a new folder under the root.
	CreateFolder(ctx context.Context, name string) (FileMeta, error)

	// ListChildren returns all direct children of a folder, unfiltered by type.
	ListChildren(ctx context.Context, folderID string) ([]FileMeta, error)

	// FindFiles returns the children of a folder whose name matches exactly.
	FindFiles(ctx context.Context, folderID, name string) ([]FileMeta, error)

	// UploadFile stores data as a new file inside a folder.
	UploadFile(ctx context.Context, folderID, name, contentType string, data []byte) (FileMeta, error)

	// DeleteFile removes a file by its provider-assigned id.
	DeleteFile(ctx context.Context, fileID string) error
}

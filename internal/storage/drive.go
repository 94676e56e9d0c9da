package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const folderMimeType = "application/vnd.google-apps.folder"

// DriveProvider stores submissions in a shared Google Drive folder using
// a service account.
type DriveProvider struct {
	service *drive.Service
	rootID  string
}

// NewDriveProvider creates a Drive client from service-account JSON. The
// client only sees files it created itself (drive.file scope), which is
// enough because this service owns every team folder.
func NewDriveProvider(ctx context.Context, credentialsJSON []byte, rootID string) (*DriveProvider, error) {
	service, err := drive.NewService(ctx,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(drive.DriveFileScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Drive client: %v", err)
	}

	return &DriveProvider{service: service, rootID: rootID}, nil
}

func (d *DriveProvider) FindFolders(ctx context.Context, name string) ([]FileMeta, error) {
	query := fmt.Sprintf("mimeType='%s' and name='%s' and '%s' in parents",
		folderMimeType, escapeQuery(name), d.rootID)
	return d.list(ctx, query)
}

func (d *DriveProvider) ListFolders(ctx context.Context) ([]FileMeta, error) {
	query := fmt.Sprintf("mimeType='%s' and '%s' in parents", folderMimeType, d.rootID)
	return d.list(ctx, query)
}

func (d *DriveProvider) CreateFolder(ctx context.Context, name string) (FileMeta, error) {
	folder, err := d.service.Files.Create(&drive.File{
		Name:     name,
		MimeType: folderMimeType,
		Parents:  []string{d.rootID},
	}).Fields("id, name, modifiedTime").Context(ctx).Do()
	if err != nil {
		return FileMeta{}, fmt.Errorf("failed to create folder %s: %v", name, err)
	}

	return FileMeta{
		ID:           folder.Id,
		Name:         folder.Name,
		ModifiedTime: folder.ModifiedTime,
		Parents:      []string{d.rootID},
	}, nil
}

func (d *DriveProvider) ListChildren(ctx context.Context, folderID string) ([]FileMeta, error) {
	return d.list(ctx, fmt.Sprintf("'%s' in parents", folderID))
}

func (d *DriveProvider) FindFiles(ctx context.Context, folderID, name string) ([]FileMeta, error) {
	query := fmt.Sprintf("name = '%s' and '%s' in parents", escapeQuery(name), folderID)
	return d.list(ctx, query)
}

func (d *DriveProvider) UploadFile(ctx context.Context, folderID, name, contentType string, data []byte) (FileMeta, error) {
	file, err := d.service.Files.Create(&drive.File{
		Name:     name,
		MimeType: contentType,
		Parents:  []string{folderID},
	}).Media(bytes.NewReader(data), googleapi.ContentType(contentType)).
		Fields("id, name, modifiedTime").Context(ctx).Do()
	if err != nil {
		return FileMeta{}, fmt.Errorf("failed to upload %s: %v", name, err)
	}

	return FileMeta{
		ID:           file.Id,
		Name:         file.Name,
		ModifiedTime: file.ModifiedTime,
		Parents:      []string{folderID},
	}, nil
}

func (d *DriveProvider) DeleteFile(ctx context.Context, fileID string) error {
	if err := d.service.Files.Delete(fileID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete file %s: %v", fileID, err)
	}
	return nil
}

func (d *DriveProvider) list(ctx context.Context, query string) ([]FileMeta, error) {
	var metas []FileMeta

	call := d.service.Files.List().Q(query).
		Fields("nextPageToken, files(id, name, modifiedTime, parents)").
		PageSize(1000)
	err := call.Pages(ctx, func(page *drive.FileList) error {
		for _, file := range page.Files {
			metas = append(metas, FileMeta{
				ID:           file.Id,
				Name:         file.Name,
				ModifiedTime: file.ModifiedTime,
				Parents:      file.Parents,
			})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query Drive: %v", err)
	}

	return metas, nil
}

// escapeQuery escapes single quotes so names can be embedded in a Drive
// query string.
func escapeQuery(s string) string {
	return strings.ReplaceAll(s, `'`, `\'`)
}

package service

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
)

// The archive naming scheme and the login-id parsing that reverses it
// live side by side here so they cannot drift apart: ArchiveName and
// entryName decide what gets written, LoginIDFromName reads it back when
// building the report.

// ArchiveName is the object name of a submission archive for one login id.
func ArchiveName(loginID string) string {
	return loginID + ".zip"
}

// entryName prefixes an uploaded filename with the login id inside the
// archive.
func entryName(loginID, filename string) string {
	return loginID + "_" + filename
}

// LoginIDFromName extracts the login id from a child filename: the part
// before the first underscore, with the archive extension stripped for
// names like "u1.zip" that carry no underscore at all.
func LoginIDFromName(name string) string {
	id, _, _ := strings.Cut(name, "_")
	return strings.TrimSuffix(id, ".zip")
}

// buildArchive packages the uploaded files into a single in-memory zip.
// Identical entry names are not deduplicated; the archive keeps both
// entries and extractors let the last one win.
func buildArchive(loginID string, files []UploadedFile) ([]byte, error) {
	var buf bytes.Buffer
	zipWriter := zip.NewWriter(&buf)

	for _, file := range files {
		entry, err := zipWriter.Create(entryName(loginID, file.Name))
		if err != nil {
			return nil, fmt.Errorf("failed to create zip entry for %s: %v", file.Name, err)
		}
		if _, err := entry.Write(file.Data); err != nil {
			return nil, fmt.Errorf("failed to write zip entry for %s: %v", file.Name, err)
		}
	}

	if err := zipWriter.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize zip: %v", err)
	}
	return buf.Bytes(), nil
}

package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryProvider keeps folders and files in process memory. It backs the
// "memory" storage backend for local development and the test suites.
type MemoryProvider struct {
	mu      sync.Mutex
	folders map[string]*memFolder
	files   map[string]*memFile
	clock   func() time.Time

	// Injectable failures for exercising error paths.
	UploadErr error
	DeleteErr error
	ListErr   error
}

type memFolder struct {
	id   string
	name string
}

type memFile struct {
	id           string
	folderID     string
	name         string
	contentType  string
	modifiedTime string
	data         []byte
}

func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		folders: make(map[string]*memFolder),
		files:   make(map[string]*memFile),
		clock:   time.Now,
	}
}

// SetClock overrides the timestamp source for deterministic tests.
func (m *MemoryProvider) SetClock(clock func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clock = clock
}

func (m *MemoryProvider) FindFolders(ctx context.Context, name string) ([]FileMeta, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var metas []FileMeta
	for _, folder := range m.folders {
		if folder.name == name {
			metas = append(metas, FileMeta{ID: folder.id, Name: folder.name})
		}
	}
	return metas, nil
}

func (m *MemoryProvider) ListFolders(ctx context.Context) ([]FileMeta, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ListErr != nil {
		return nil, m.ListErr
	}

	var metas []FileMeta
	for _, folder := range m.folders {
		metas = append(metas, FileMeta{ID: folder.id, Name: folder.name})
	}
	return metas, nil
}

func (m *MemoryProvider) CreateFolder(ctx context.Context, name string) (FileMeta, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	folder := &memFolder{id: uuid.NewString(), name: name}
	m.folders[folder.id] = folder
	return FileMeta{ID: folder.id, Name: folder.name}, nil
}

func (m *MemoryProvider) ListChildren(ctx context.Context, folderID string) ([]FileMeta, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ListErr != nil {
		return nil, m.ListErr
	}
	if _, ok := m.folders[folderID]; !ok {
		return nil, fmt.Errorf("folder not found: %s", folderID)
	}

	var metas []FileMeta
	for _, file := range m.files {
		if file.folderID == folderID {
			metas = append(metas, file.meta())
		}
	}
	return metas, nil
}

func (m *MemoryProvider) FindFiles(ctx context.Context, folderID, name string) ([]FileMeta, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var metas []FileMeta
	for _, file := range m.files {
		if file.folderID == folderID && file.name == name {
			metas = append(metas, file.meta())
		}
	}
	return metas, nil
}

func (m *MemoryProvider) UploadFile(ctx context.Context, folderID, name, contentType string, data []byte) (FileMeta, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.UploadErr != nil {
		return FileMeta{}, m.UploadErr
	}
	if _, ok := m.folders[folderID]; !ok {
		return FileMeta{}, fmt.Errorf("folder not found: %s", folderID)
	}

	file := &memFile{
		id:           uuid.NewString(),
		folderID:     folderID,
		name:         name,
		contentType:  contentType,
		modifiedTime: m.clock().UTC().Format(time.RFC3339),
		data:         append([]byte(nil), data...),
	}
	m.files[file.id] = file
	return file.meta(), nil
}

func (m *MemoryProvider) DeleteFile(ctx context.Context, fileID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	if _, ok := m.files[fileID]; !ok {
		return fmt.Errorf("file not found: %s", fileID)
	}
	delete(m.files, fileID)
	return nil
}

// FileData returns a stored file's content, for assertions in tests.
func (m *MemoryProvider) FileData(fileID string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()

	if file, ok := m.files[fileID]; ok {
		return append([]byte(nil), file.data...)
	}
	return nil
}

// FolderCount reports how many folders exist under the root.
func (m *MemoryProvider) FolderCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.folders)
}

// FileCount reports how many files exist across all folders.
func (m *MemoryProvider) FileCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.files)
}

// SetModifiedTime rewrites a stored file's timestamp, for report tests.
func (m *MemoryProvider) SetModifiedTime(fileID, modifiedTime string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if file, ok := m.files[fileID]; ok {
		file.modifiedTime = modifiedTime
	}
}

func (f *memFile) meta() FileMeta {
	return FileMeta{
		ID:           f.id,
		Name:         f.name,
		ModifiedTime: f.modifiedTime,
		Parents:      []string{f.folderID},
	}
}

package history

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/doeshing/qrgen/internal/domain"
	"github.com/doeshing/qrgen/internal/pkg/filesystem"
	"github.com/doeshing/qrgen/internal/pkg/logger"
	"github.com/doeshing/qrgen/internal/ports"
)

// FileStore keeps the whole history as one indented JSON array.
// It assumes a single writer: every Save overwrites the document with the
// caller's snapshot, so concurrent processes can lose updates.
type FileStore struct {
	path string
	now  func() time.Time
}

// NewFileStore creates a store backed by path (domain.DefaultHistoryFile when empty).
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = domain.DefaultHistoryFile
	}
	return &FileStore{path: path, now: time.Now}
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

// fileRecord mirrors domain.HistoryRecord with pointers so missing fields are detectable.
type fileRecord struct {
	Text      *string   `json:"Text"`
	FilePath  *string   `json:"FilePath"`
	CreatedAt time.Time `json:"CreatedAt,omitzero"`
}

// Load implements ports.HistoryRepository. A missing file, an empty file or a
// literal null is an empty log; anything else that is not an array of
// records fails with domain.ErrCorruptHistory.
func (f *FileStore) Load(ctx context.Context) (domain.HistoryLog, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.HistoryLog{}, nil
		}
		return nil, goerr.Wrap(domain.ErrIO, "failed to read history",
			goerr.V("path", f.path), goerr.V("cause", err.Error()))
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return domain.HistoryLog{}, nil
	}

	var raw []fileRecord
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, goerr.Wrap(domain.ErrCorruptHistory, "history is not a JSON array of records",
			goerr.V("path", f.path), goerr.V("cause", err.Error()))
	}

	log := make(domain.HistoryLog, 0, len(raw))
	for i, rec := range raw {
		if rec.Text == nil || rec.FilePath == nil {
			return nil, goerr.Wrap(domain.ErrCorruptHistory, "history record is missing Text or FilePath",
				goerr.V("path", f.path), goerr.V("index", i))
		}
		log = append(log, domain.HistoryRecord{Text: *rec.Text, FilePath: *rec.FilePath, CreatedAt: rec.CreatedAt})
	}

	logger.From(ctx).Debug("history loaded", "path", f.path, "records", len(log))
	return log, nil
}

// Save implements ports.HistoryRepository.
func (f *FileStore) Save(ctx context.Context, log domain.HistoryLog) error {
	if log == nil {
		log = domain.HistoryLog{}
	}
	data, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return goerr.Wrap(err, "failed to marshal history")
	}

	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, domain.DirectoryPermissions); err != nil {
			return goerr.Wrap(domain.ErrIO, "failed to create history directory",
				goerr.V("dir", dir), goerr.V("cause", err.Error()))
		}
	}

	if err := filesystem.WriteFileAtomic(f.path, data, domain.FilePermissions); err != nil {
		return goerr.Wrap(domain.ErrIO, "failed to write history",
			goerr.V("path", f.path), goerr.V("cause", err.Error()))
	}

	logger.From(ctx).Debug("history saved", "path", f.path, "records", len(log))
	return nil
}

// Add implements ports.HistoryRepository: load, append, save.
func (f *FileStore) Add(ctx context.Context, text, filePath string) error {
	log, err := f.Load(ctx)
	if err != nil {
		return err
	}
	log = append(log, domain.HistoryRecord{Text: text, FilePath: filePath, CreatedAt: f.now().UTC()})
	return f.Save(ctx, log)
}

var _ ports.HistoryRepository = (*FileStore)(nil)

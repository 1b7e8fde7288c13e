package filesystem

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// WriteFileAtomic writes data to a temp file next to path, fsyncs it and
// renames it over path. The previous content survives a failed write.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmpPath := filepath.Join(dir, "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")

	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, perm)
	if err != nil {
		return goerr.Wrap(err, "failed to create temp file", goerr.V("path", tmpPath))
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return goerr.Wrap(err, "failed to write temp file", goerr.V("path", tmpPath))
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return goerr.Wrap(err, "failed to sync temp file", goerr.V("path", tmpPath))
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return goerr.Wrap(err, "failed to close temp file", goerr.V("path", tmpPath))
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return goerr.Wrap(err, "failed to replace file", goerr.V("path", path))
	}
	return nil
}

package filesystem_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/doeshing/qrgen/internal/pkg/filesystem"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")

	gt.NoError(t, filesystem.WriteFileAtomic(path, []byte("first"), 0o644))
	gt.NoError(t, filesystem.WriteFileAtomic(path, []byte("second"), 0o644))

	data, err := os.ReadFile(path)
	gt.NoError(t, err)
	gt.Equal(t, string(data), "second")

	entries, err := os.ReadDir(dir)
	gt.NoError(t, err)
	gt.A(t, entries).Length(1)
}

func TestWriteFileAtomicMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "doc.json")
	gt.Error(t, filesystem.WriteFileAtomic(path, []byte("x"), 0o644))
}

func TestExpandPath(t *testing.T) {
	gt.Equal(t, filesystem.ExpandPath("/abs/p"), "/abs/p")
	gt.Equal(t, filesystem.ExpandPath("a/../b"), "b")
	gt.Equal(t, filesystem.ExpandPath("~/x"), filepath.Join(filesystem.UserHomeDir(), "x"))
}

package history_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	apphistory "github.com/doeshing/qrgen/internal/application/history"
	"github.com/doeshing/qrgen/internal/domain"
	"github.com/doeshing/qrgen/internal/infrastructure/history"
)

// countingRepo wraps a FileStore and counts writes.
type countingRepo struct {
	*history.FileStore
	saves int
}

func (c *countingRepo) Save(ctx context.Context, log domain.HistoryLog) error {
	c.saves++
	return c.FileStore.Save(ctx, log)
}

func setup(t *testing.T, records ...domain.HistoryRecord) (*apphistory.Service, *countingRepo) {
	t.Helper()
	repo := &countingRepo{FileStore: history.NewFileStore(filepath.Join(t.TempDir(), "h.json"))}
	if len(records) > 0 {
		gt.NoError(t, repo.FileStore.Save(context.Background(), records))
	}
	return apphistory.NewService(repo), repo
}

func TestAddThenFind(t *testing.T) {
	ctx := context.Background()
	svc, repo := setup(t)

	gt.NoError(t, repo.Add(ctx, "foo", "a.png"))

	rec, ok, err := svc.Find(ctx, "a.png")
	gt.NoError(t, err)
	gt.True(t, ok)
	gt.Equal(t, rec.Text, "foo")

	_, ok, err = svc.Find(ctx, "b.png")
	gt.NoError(t, err)
	gt.False(t, ok)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc, repo := setup(t,
		domain.HistoryRecord{Text: "foo", FilePath: "a.png"},
		domain.HistoryRecord{Text: "bar", FilePath: "b.png"},
		domain.HistoryRecord{Text: "baz", FilePath: "c.png"},
	)

	n, err := svc.Delete(ctx, "a.png", "missing.png", "c.png")
	gt.NoError(t, err)
	gt.Equal(t, n, 2)
	gt.Equal(t, repo.saves, 1)

	log, err := svc.List(ctx, 0)
	gt.NoError(t, err)
	gt.A(t, log).Length(1)
	_, ok := log.FindByPath("a.png")
	gt.False(t, ok)

	// removing a path that is not there is a no-op and does not write
	n, err = svc.Delete(ctx, "a.png")
	gt.NoError(t, err)
	gt.Equal(t, n, 0)
	gt.Equal(t, repo.saves, 1)
}

func TestRename(t *testing.T) {
	ctx := context.Background()
	svc, repo := setup(t,
		domain.HistoryRecord{Text: "foo", FilePath: "a.png"},
		domain.HistoryRecord{Text: "other", FilePath: "b.png"},
	)

	ok, err := svc.Rename(ctx, "a.png", "bar")
	gt.NoError(t, err)
	gt.True(t, ok)

	ok, err = svc.Rename(ctx, "a.png", "")
	gt.NoError(t, err)
	gt.False(t, ok)

	ok, err = svc.Rename(ctx, "zzz.png", "bar")
	gt.NoError(t, err)
	gt.False(t, ok)
	gt.Equal(t, repo.saves, 1)

	log, err := svc.List(ctx, 0)
	gt.NoError(t, err)
	gt.Equal(t, log[0].Text, "bar")
	gt.Equal(t, log[1].Text, "other")
}

func TestSearchAndList(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t,
		domain.HistoryRecord{Text: "foobar", FilePath: "1.png"},
		domain.HistoryRecord{Text: "baz", FilePath: "foo/2.png"},
		domain.HistoryRecord{Text: "qux", FilePath: "3.png"},
	)

	got, err := svc.Search(ctx, "FOO", 0)
	gt.NoError(t, err)
	gt.A(t, got).Length(2)
	gt.Equal(t, got[0].FilePath, "1.png")
	gt.Equal(t, got[1].FilePath, "foo/2.png")

	got, err = svc.Search(ctx, "", 0)
	gt.NoError(t, err)
	gt.A(t, got).Length(3)

	got, err = svc.List(ctx, 2)
	gt.NoError(t, err)
	gt.A(t, got).Length(2)
	gt.Equal(t, got[0].FilePath, "foo/2.png")
	gt.Equal(t, got[1].FilePath, "3.png")
}

func TestClearAndExport(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t,
		domain.HistoryRecord{Text: "a", FilePath: "a.png"},
		domain.HistoryRecord{Text: "b", FilePath: "b.png"},
	)

	dest := filepath.Join(t.TempDir(), "export.json")
	n, err := svc.Export(ctx, dest)
	gt.NoError(t, err)
	gt.Equal(t, n, 2)

	data, err := os.ReadFile(dest)
	gt.NoError(t, err)
	var exported []map[string]any
	gt.NoError(t, json.Unmarshal(data, &exported))
	gt.A(t, exported).Length(2)
	gt.Equal(t, exported[1]["FilePath"], any("b.png"))

	gt.NoError(t, svc.Clear(ctx))
	log, err := svc.List(ctx, 0)
	gt.NoError(t, err)
	gt.A(t, log).Length(0)
}

func TestCorruptHistoryPropagates(t *testing.T) {
	ctx := context.Background()
	svc, repo := setup(t)
	gt.NoError(t, os.WriteFile(repo.Path(), []byte(`{"not":"an array"}`), 0o644))

	_, err := svc.List(ctx, 0)
	gt.True(t, errors.Is(err, domain.ErrCorruptHistory))

	_, err = svc.Delete(ctx, "a.png")
	gt.True(t, errors.Is(err, domain.ErrCorruptHistory))
	gt.Equal(t, repo.saves, 0)
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	existing := filepath.Join(t.TempDir(), "exists.png")
	gt.NoError(t, os.WriteFile(existing, []byte("x"), 0o644))

	svc, _ := setup(t,
		domain.HistoryRecord{Text: "hello", FilePath: existing},
		domain.HistoryRecord{Text: "WIFI:T:WPA;S:a;P:b;H:false;;", FilePath: "/nonexistent/wifi.png"},
		domain.HistoryRecord{Text: "https://tiktok.com/@alice", FilePath: "/nonexistent/social.png"},
		domain.HistoryRecord{Text: "hello again", FilePath: existing},
	)

	stats, err := svc.Stats(ctx)
	gt.NoError(t, err)
	gt.Equal(t, stats.Total, 4)
	gt.Equal(t, stats.ByKind[domain.PayloadText], 2)
	gt.Equal(t, stats.ByKind[domain.PayloadWiFi], 1)
	gt.Equal(t, stats.ByKind[domain.PayloadSocial], 1)
	gt.Equal(t, stats.MissingFiles, 2)
	gt.Equal(t, stats.UniquePaths, 3)
}

func TestClassify(t *testing.T) {
	gt.Equal(t, apphistory.Classify("https://linkedin.com/in/bob"), domain.PayloadSocial)
	gt.Equal(t, apphistory.Classify("https://example.com"), domain.PayloadText)
	gt.Equal(t, apphistory.Classify("WIFI:T:nopass;S:x;P:;H:false;;"), domain.PayloadWiFi)
}

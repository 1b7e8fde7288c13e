// Package history implements the history use cases on top of a
// ports.HistoryRepository. Each mutating call is one complete
// load-modify-save transaction against the backing store.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/doeshing/qrgen/internal/domain"
	"github.com/doeshing/qrgen/internal/pkg/logger"
	"github.com/doeshing/qrgen/internal/ports"
)

// Service exposes history queries and mutations.
type Service struct {
	Repo ports.HistoryRepository
}

// NewService wraps repo.
func NewService(repo ports.HistoryRepository) *Service {
	return &Service{Repo: repo}
}

// List returns the most recent limit records, oldest first. limit <= 0 returns all.
func (s *Service) List(ctx context.Context, limit int) (domain.HistoryLog, error) {
	log, err := s.Repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return tail(log, limit), nil
}

// Search filters by case-insensitive substring on text or path.
func (s *Service) Search(ctx context.Context, query string, limit int) (domain.HistoryLog, error) {
	log, err := s.Repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return tail(log.Search(query), limit), nil
}

// Find returns the record saved at path.
func (s *Service) Find(ctx context.Context, path string) (domain.HistoryRecord, bool, error) {
	log, err := s.Repo.Load(ctx)
	if err != nil {
		return domain.HistoryRecord{}, false, err
	}
	rec, ok := log.FindByPath(path)
	if !ok {
		return domain.HistoryRecord{}, false, nil
	}
	return *rec, true, nil
}

// Rename changes the text of the record at path. It reports false, without
// writing, when text is blank or no record matches.
func (s *Service) Rename(ctx context.Context, path, text string) (bool, error) {
	log, err := s.Repo.Load(ctx)
	if err != nil {
		return false, err
	}
	if !log.Rename(path, text) {
		return false, nil
	}
	if err := s.Repo.Save(ctx, log); err != nil {
		return false, err
	}
	logger.From(ctx).Info("history record renamed", "path", path)
	return true, nil
}

// Delete removes the first record for each path and returns how many were
// removed. Unknown paths are skipped. The store is written once.
func (s *Service) Delete(ctx context.Context, paths ...string) (int, error) {
	log, err := s.Repo.Load(ctx)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, p := range paths {
		if log.Remove(p) {
			removed++
		}
	}
	if removed == 0 {
		return 0, nil
	}
	if err := s.Repo.Save(ctx, log); err != nil {
		return 0, err
	}
	logger.From(ctx).Info("history records deleted", "count", removed)
	return removed, nil
}

// Clear empties the log.
func (s *Service) Clear(ctx context.Context) error {
	return s.Repo.Save(ctx, domain.HistoryLog{})
}

// Export writes the log as an indented JSON array to dest.
func (s *Service) Export(ctx context.Context, dest string) (int, error) {
	log, err := s.Repo.Load(ctx)
	if err != nil {
		return 0, err
	}
	data, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return 0, goerr.Wrap(err, "failed to marshal history")
	}
	if err := os.WriteFile(dest, data, domain.FilePermissions); err != nil {
		return 0, goerr.Wrap(domain.ErrIO, "failed to export history",
			goerr.V("dest", dest), goerr.V("cause", err.Error()))
	}
	return len(log), nil
}

// Stats summarises the log.
type Stats struct {
	Total        int
	ByKind       map[domain.PayloadKind]int
	MissingFiles int
	UniquePaths  int
}

// Stats counts records by payload kind and checks which image files still exist.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	log, err := s.Repo.Load(ctx)
	if err != nil {
		return Stats{}, err
	}
	stats := Stats{Total: len(log), ByKind: make(map[domain.PayloadKind]int)}
	seen := make(map[string]struct{}, len(log))
	for _, rec := range log {
		stats.ByKind[Classify(rec.Text)]++
		if _, dup := seen[rec.FilePath]; dup {
			continue
		}
		seen[rec.FilePath] = struct{}{}
		if _, err := os.Stat(rec.FilePath); errors.Is(err, fs.ErrNotExist) {
			stats.MissingFiles++
		}
	}
	stats.UniquePaths = len(seen)
	return stats, nil
}

// Classify guesses how a stored payload was produced.
func Classify(text string) domain.PayloadKind {
	switch {
	case strings.HasPrefix(text, "WIFI:"):
		return domain.PayloadWiFi
	case isSocialURL(text):
		return domain.PayloadSocial
	default:
		return domain.PayloadText
	}
}

func isSocialURL(text string) bool {
	for _, network := range domain.SocialNetworks() {
		prefix, _ := domain.SocialPayload(network, "x")
		if strings.HasPrefix(text, strings.TrimSuffix(prefix, "x")) {
			return true
		}
	}
	return false
}

func tail(log domain.HistoryLog, limit int) domain.HistoryLog {
	if limit > 0 && len(log) > limit {
		return log[len(log)-limit:]
	}
	return log
}

package domain

import (
	"strings"
	"time"
)

// HistoryRecord captures one saved QR code. FilePath is the lookup key.
type HistoryRecord struct {
	Text      string    `json:"Text"`
	FilePath  string    `json:"FilePath"`
	CreatedAt time.Time `json:"CreatedAt,omitzero"`
}

// HistoryLog is the ordered list of records, oldest first.
type HistoryLog []HistoryRecord

// FindByPath returns the first record whose FilePath equals path exactly.
func (l HistoryLog) FindByPath(path string) (*HistoryRecord, bool) {
	idx := l.indexOf(path)
	if idx < 0 {
		return nil, false
	}
	return &l[idx], true
}

// Remove drops the first record matching path. It reports whether anything was removed.
func (l *HistoryLog) Remove(path string) bool {
	idx := l.indexOf(path)
	if idx < 0 {
		return false
	}
	*l = append((*l)[:idx], (*l)[idx+1:]...)
	return true
}

// Rename replaces the text of the record matching path. Blank text is ignored.
func (l HistoryLog) Rename(path, text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	rec, ok := l.FindByPath(path)
	if !ok {
		return false
	}
	rec.Text = text
	return true
}

// Search returns records whose text or path contains query, ignoring case.
// The result is a new slice; the receiver is not modified.
func (l HistoryLog) Search(query string) HistoryLog {
	needle := strings.ToLower(strings.TrimSpace(query))
	out := make(HistoryLog, 0, len(l))
	for _, rec := range l {
		if needle == "" ||
			strings.Contains(strings.ToLower(rec.Text), needle) ||
			strings.Contains(strings.ToLower(rec.FilePath), needle) {
			out = append(out, rec)
		}
	}
	return out
}

func (l HistoryLog) indexOf(path string) int {
	for i := range l {
		if l[i].FilePath == path {
			return i
		}
	}
	return -1
}

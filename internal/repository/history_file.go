package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"TrendScan/internal/domain/models"
	applogger "TrendScan/pkg/logger"
)

const historyFileName = "filtered_pairs_history.json"

// FileHistoryStore keeps every cycle record in one JSON array on disk.
type FileHistoryStore struct {
	path string
	mu   sync.Mutex
	l    *applogger.Logger
}

func NewFileHistoryStore(outputDir string, l *applogger.Logger) *FileHistoryStore {
	return &FileHistoryStore{path: filepath.Join(outputDir, historyFileName), l: l}
}

// Path is the history file location.
func (s *FileHistoryStore) Path() string { return s.path }

// Append adds rec to the end of the history file.
func (s *FileHistoryStore) Append(_ context.Context, rec *models.CycleRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.load()
	records = append(records, *rec)

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("history %s: %w", s.path, err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (s *FileHistoryStore) Recent(_ context.Context, limit int) ([]models.CycleRecord, error) {
	s.mu.Lock()
	records := s.load()
	s.mu.Unlock()

	n := len(records)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]models.CycleRecord, n)
	for i := 0; i < n; i++ {
		out[i] = records[len(records)-1-i]
	}
	return out, nil
}

// load reads the history. A missing, unreadable or corrupt file is an empty history.
func (s *FileHistoryStore) load() []models.CycleRecord {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.warn("history unreadable, starting empty", err)
		}
		return nil
	}

	var records []models.CycleRecord
	if err := json.Unmarshal(data, &records); err != nil {
		s.warn("history corrupt, starting empty", err)
		return nil
	}
	return records
}

func (s *FileHistoryStore) warn(msg string, err error) {
	if s.l != nil {
		s.l.Warn(msg, applogger.String("path", s.path), applogger.Error(err))
	}
}

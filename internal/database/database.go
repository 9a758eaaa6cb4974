package database

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"jotter/internal/database/models"
)

// Store holds all service state in memory and mirrors it to a single JSON
// file on every mutation. One lock serializes all writers.
type Store struct {
	mu   sync.RWMutex
	path string
	log  *zap.Logger
	data *models.Snapshot
}

// New loads the snapshot at path if one exists. A missing file starts the
// store empty; an unreadable or corrupt file also starts it empty, with a
// warning, so a bad data file never prevents startup.
func New(path string, log *zap.Logger) *Store {
	s := &Store{
		path: path,
		log:  log,
		data: models.NewSnapshot(),
	}
	s.load()
	return s
}

func (s *Store) load() {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return
	}
	if err != nil {
		s.log.Warn("could not read data file, starting empty",
			zap.String("path", s.path), zap.Error(err))
		return
	}
	snap := models.NewSnapshot()
	if err := json.Unmarshal(raw, snap); err != nil {
		s.log.Warn("data file is corrupt, starting empty",
			zap.String("path", s.path), zap.Error(err))
		return
	}
	if snap.Notes == nil {
		snap.Notes = make(map[string][]models.Note)
	}
	if snap.Passwords == nil {
		snap.Passwords = make(map[string]models.PasswordTable)
	}
	s.data = snap
}

// Update runs fn against the state under the write lock and, if fn succeeds,
// rewrites the snapshot file. A failed write is logged and swallowed: the
// in-memory mutation stands and disk catches up on the next successful save.
func (s *Store) Update(fn func(d *models.Snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(s.data); err != nil {
		return err
	}
	if err := s.save(); err != nil {
		s.log.Error("failed to write data file",
			zap.String("path", s.path), zap.Error(err))
	}
	return nil
}

// View runs fn against the state under the read lock.
func (s *Store) View(fn func(d *models.Snapshot)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.data)
}

func (s *Store) save() error {
	raw, err := json.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("error encoding snapshot: %v", err)
	}
	return writeFileAtomic(s.path, raw, 0o644)
}

func (s *Store) Health() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	notes := 0
	for _, collection := range s.data.Notes {
		notes += len(collection)
	}
	return map[string]string{
		"status": "up",
		"users":  strconv.Itoa(len(s.data.Notes)),
		"notes":  strconv.Itoa(notes),
	}
}

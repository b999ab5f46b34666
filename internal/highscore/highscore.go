// Package highscore persists the best distance flown across runs.
package highscore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Record is the file content.
type Record struct {
	Best      float32   `yaml:"best"`
	RunID     string    `yaml:"run_id,omitempty"`
	UpdatedAt time.Time `yaml:"updated_at,omitempty"`
}

// Store keeps the record in memory and writes it back when it improves.
// A Store with an empty path never touches the disk.
type Store struct {
	path   string
	record Record
	now    func() time.Time
}

// Open reads the record at path. A missing file is an empty record.
func Open(path string) (*Store, error) {
	s := &Store{path: path, now: time.Now}
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read high score: %w", err)
	}
	if err := yaml.Unmarshal(data, &s.record); err != nil {
		return nil, fmt.Errorf("decode high score %s: %w", path, err)
	}
	return s, nil
}

func (s *Store) Best() float32 {
	return s.record.Best
}

func (s *Store) Record() Record {
	return s.record
}

// Submit records distance when it beats the best and reports whether it did.
func (s *Store) Submit(distance float32, run uuid.UUID) (bool, error) {
	if distance <= s.record.Best {
		return false, nil
	}
	s.record = Record{Best: distance, RunID: run.String(), UpdatedAt: s.now().UTC()}
	if err := s.save(); err != nil {
		return true, err
	}
	return true, nil
}

func (s *Store) save() error {
	if s.path == "" {
		return nil
	}
	data, err := yaml.Marshal(&s.record)
	if err != nil {
		return fmt.Errorf("encode high score: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".highscore-*")
	if err != nil {
		return fmt.Errorf("write high score: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write high score: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write high score: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("write high score: %w", err)
	}
	return nil
}

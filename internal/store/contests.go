package store

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/acmcompass/compass/internal/track"
)

// ContestStore owns the contests container file. It shares the
// problems container's load mechanics: full migration on every read,
// rewrite when shape changed, backup-and-reset on corruption.
type ContestStore struct {
	mu     sync.Mutex
	path   string
	logger *zap.Logger
}

// NewContestStore returns a store over the container at path. A nil
// logger disables logging.
func NewContestStore(path string, logger *zap.Logger) *ContestStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContestStore{path: path, logger: logger}
}

// LoadAll reads the container, migrating and rewriting it if needed.
func (s *ContestStore) LoadAll() ([]track.Contest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readAndMigrate()
}

func (s *ContestStore) readAndMigrate() ([]track.Contest, error) {
	data, err := readContainer(s.path)
	if err != nil {
		return nil, err
	}

	records, err := DecodeRecords(data)
	if err != nil {
		backup, berr := backupCorrupt(s.path, data)
		if berr != nil {
			return nil, berr
		}
		if werr := writeContainer(s.path, []byte(emptyContainer)); werr != nil {
			return nil, werr
		}
		s.logger.Warn("contests container corrupt, backed up and reset",
			zap.String("path", s.path),
			zap.String("backup", backup),
			zap.Error(err))
		records = nil
	}

	contests := make([]track.Contest, 0, len(records))
	changed := false
	for _, raw := range records {
		c, migrated := NormalizeContest(raw)
		if migrated {
			changed = true
		}
		contests = append(contests, c)
	}

	if changed {
		if err := s.saveLocked(contests); err != nil {
			return nil, err
		}
		s.logger.Info("migrated contests container",
			zap.String("path", s.path),
			zap.Int("count", len(contests)))
	}

	return contests, nil
}

// SaveAll rewrites the container with the given contests.
func (s *ContestStore) SaveAll(contests []track.Contest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(contests)
}

func (s *ContestStore) saveLocked(contests []track.Contest) error {
	if contests == nil {
		contests = []track.Contest{}
	}
	data, err := EncodeContainer(contests)
	if err != nil {
		return err
	}
	return writeContainer(s.path, data)
}

// FindByID returns the contest with the given ID.
func (s *ContestStore) FindByID(id string) (track.Contest, error) {
	contests, err := s.LoadAll()
	if err != nil {
		return track.Contest{}, err
	}
	for _, c := range contests {
		if c.ID == id {
			return c, nil
		}
	}
	return track.Contest{}, fmt.Errorf("contest %s: %w", id, ErrNotFound)
}

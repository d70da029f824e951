package store

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/acmcompass/compass/internal/track"
)

// ProblemStore owns the problems container file and its solution side
// files. Every load runs the full migration pipeline, so a container
// written by any earlier version reads correctly and is rewritten in
// the current schema on the spot.
type ProblemStore struct {
	mu        sync.Mutex
	path      string
	solutions *SolutionStore
	logger    *zap.Logger
}

// NewProblemStore returns a store over the container at path with
// solution side files managed by solutions. A nil logger disables
// logging.
func NewProblemStore(path string, solutions *SolutionStore, logger *zap.Logger) *ProblemStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProblemStore{path: path, solutions: solutions, logger: logger}
}

// Solutions exposes the side-file store for handlers that read or
// write markdown directly.
func (s *ProblemStore) Solutions() *SolutionStore {
	return s.solutions
}

// LoadAll reads the container, migrating and rewriting it if needed,
// and returns every problem decorated with its has_solution flag.
func (s *ProblemStore) LoadAll() ([]track.ProblemView, error) {
	s.mu.Lock()
	problems, err := s.readAndMigrate()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	views := make([]track.ProblemView, 0, len(problems))
	for _, p := range problems {
		views = append(views, track.ProblemView{
			Problem:     p,
			HasSolution: s.solutions.Exists(p.ID),
		})
	}
	return views, nil
}

// readAndMigrate is the lock-held load path: read the container,
// normalize every record, extract legacy inline solutions to side
// files, and rewrite the container when anything changed shape.
//
// A corrupt container is backed up and reset to empty rather than
// failing the load; the backup keeps the bad bytes recoverable.
func (s *ProblemStore) readAndMigrate() ([]track.Problem, error) {
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
		s.logger.Warn("problems container corrupt, backed up and reset",
			zap.String("path", s.path),
			zap.String("backup", backup),
			zap.Error(err))
		records = nil
	}

	problems := make([]track.Problem, 0, len(records))
	changed := false
	for _, raw := range records {
		p, solution, migrated := NormalizeProblem(raw)
		if migrated {
			changed = true
		}
		if solution != "" && p.ID != "" {
			if err := s.solutions.Put(p.ID, solution); err != nil {
				s.logger.Warn("failed to extract legacy solution",
					zap.String("id", p.ID),
					zap.Error(err))
			}
		}
		problems = append(problems, p)
	}

	if changed {
		if err := s.saveLocked(problems); err != nil {
			return nil, err
		}
		s.logger.Info("migrated problems container",
			zap.String("path", s.path),
			zap.Int("count", len(problems)))
	}

	return problems, nil
}

// SaveAll rewrites the container with the given views, stripping the
// derived has_solution flag so only canonical fields persist.
func (s *ProblemStore) SaveAll(views []track.ProblemView) error {
	problems := make([]track.Problem, 0, len(views))
	for _, v := range views {
		problems = append(problems, v.Problem)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(problems)
}

// saveLocked encodes and atomically writes the container. Callers hold
// the store mutex.
func (s *ProblemStore) saveLocked(problems []track.Problem) error {
	if problems == nil {
		problems = []track.Problem{}
	}
	data, err := EncodeContainer(problems)
	if err != nil {
		return err
	}
	return writeContainer(s.path, data)
}

// FindByID returns the problem with the given ID.
func (s *ProblemStore) FindByID(id string) (track.ProblemView, error) {
	views, err := s.LoadAll()
	if err != nil {
		return track.ProblemView{}, err
	}
	for _, v := range views {
		if v.ID == id {
			return v, nil
		}
	}
	return track.ProblemView{}, fmt.Errorf("problem %s: %w", id, ErrNotFound)
}

// ExportRecord is a problem with its solution markdown inlined, the
// shape used by dataset export and import.
type ExportRecord struct {
	track.Problem
	SolutionMarkdown string `json:"solution_markdown,omitempty"`
}

// Export returns every problem with its solution markdown inlined,
// suitable for a single-file dataset dump.
func (s *ProblemStore) Export() ([]ExportRecord, error) {
	views, err := s.LoadAll()
	if err != nil {
		return nil, err
	}
	records := make([]ExportRecord, 0, len(views))
	for _, v := range views {
		rec := ExportRecord{Problem: v.Problem}
		if v.HasSolution {
			markdown, err := s.solutions.Read(v.ID)
			if err != nil {
				return nil, err
			}
			rec.SolutionMarkdown = markdown
		}
		records = append(records, rec)
	}
	return records, nil
}

// Import replaces the entire dataset with the given raw records,
// backing up the current container first. Records pass through the
// same normalization as a container load, and inline solutions land in
// side files. Returns the number of problems imported.
func (s *ProblemStore) Import(records []map[string]any) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := readContainer(s.path)
	if err != nil {
		return 0, err
	}
	backup := siblingPath(s.path, ".bak.json")
	if err := writeContainer(backup, current); err != nil {
		return 0, fmt.Errorf("failed to back up container: %w", err)
	}

	problems := make([]track.Problem, 0, len(records))
	for _, raw := range records {
		p, solution, _ := NormalizeProblem(raw)
		if p.ID != "" {
			if err := s.solutions.Put(p.ID, solution); err != nil {
				s.logger.Warn("failed to write imported solution",
					zap.String("id", p.ID),
					zap.Error(err))
			}
		}
		problems = append(problems, p)
	}

	if err := s.saveLocked(problems); err != nil {
		return 0, err
	}
	s.logger.Info("imported problems dataset",
		zap.String("backup", backup),
		zap.Int("count", len(problems)))
	return len(problems), nil
}

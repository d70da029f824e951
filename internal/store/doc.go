// Package store persists the problem and contest collections as JSON
// container files with per-problem solution side-files.
//
// # Architecture
//
// Each collection lives in one container file holding the full ordered
// record list:
//
//	data/
//	    ├── problems.json        → ProblemStore
//	    ├── contests.json        → ContestStore
//	    └── solutions/<id>.md    → SolutionStore (one file per problem)
//
// A store serializes every operation on its collection behind a single
// mutex and replaces the container wholesale on save (temp file plus
// rename), so readers never observe a partial write.
//
// # Self-healing loads
//
// Every load runs each raw record through normalization
// (NormalizeProblem / NormalizeContest), which upgrades records of any
// prior schema vintage: legacy inline solutions are extracted to
// side-files, deprecated fields dropped, defaults filled. When any
// record changes shape the container is rewritten immediately, so the
// on-disk file converges to the current schema after the first load
// following an upgrade.
//
// Unparsable containers are not fatal either: the bad bytes are kept
// under a sibling .backup.json name and the container resets to empty.
// Callers of LoadAll never see corruption or legacy data; only real I/O
// failure surfaces as an error.
//
// # Concurrency
//
// The two collections lock independently. Solution side-files are
// mutated only while the owning problem store's lock is held; the
// post-load has_solution probe intentionally runs lock-free and
// tolerates one momentarily stale flag.
package store

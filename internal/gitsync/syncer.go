package gitsync

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Report is the outcome of one sync operation. The transcript carries
// the full git output in execution order and is always present, even
// on failure, so the caller can show what happened.
type Report struct {
	OK bool `json:"ok"`

	// NoChanges is set when a push found nothing to commit. The
	// operation still succeeded.
	NoChanges bool `json:"no_changes,omitempty"`

	// Hint suggests the next action when the operation could not
	// proceed, e.g. initializing the repository first.
	Hint string `json:"hint,omitempty"`

	Transcript string `json:"output"`
}

// Syncer drives git against the data directory. All commands run with
// the working directory pinned there, so only tracker data is ever
// staged or pushed.
//
// A Syncer is safe to construct cheaply; configuration is re-read from
// the cache on every operation so concurrent CLI and server use see
// each other's changes.
type Syncer struct {
	dir     string
	cfgPath string
	runner  Runner
	logger  *zap.Logger
}

// New returns a Syncer over the data directory dir with its config
// cache at cfgPath. A nil runner uses the system git binary; a nil
// logger disables logging.
func New(dir, cfgPath string, runner Runner, logger *zap.Logger) *Syncer {
	if runner == nil {
		runner = &ExecRunner{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Syncer{dir: dir, cfgPath: cfgPath, runner: runner, logger: logger}
}

// Config returns the current persisted configuration.
func (s *Syncer) Config() Config {
	return LoadConfig(s.cfgPath)
}

func (s *Syncer) run(ctx context.Context, args ...string) Result {
	res := s.runner.Run(ctx, s.dir, args...)
	s.logger.Debug("git command",
		zap.String("cmd", res.Cmd),
		zap.Int("exit", res.ExitCode))
	return res
}

// isRepo reports whether the data directory is inside a git work tree.
func (s *Syncer) isRepo(ctx context.Context) bool {
	res := s.run(ctx, "rev-parse", "--is-inside-work-tree")
	return res.OK() && strings.TrimSpace(res.Stdout) == "true"
}

// Init creates the repository if needed, points origin at remote, and
// persists the configuration. Empty remote or branch keep the
// previously configured values.
func (s *Syncer) Init(ctx context.Context, remote, branch string) (Report, error) {
	cfg := LoadConfig(s.cfgPath)
	remote = strings.TrimSpace(remote)
	if remote == "" {
		remote = cfg.Remote
	}
	branch = strings.TrimSpace(branch)
	if branch == "" {
		branch = cfg.Branch
	}

	t := &transcript{}
	if s.isRepo(ctx) {
		t.line("ℹ repository already initialized")
	} else if err := s.initRepo(ctx, t, branch); err != nil {
		return Report{Transcript: t.String()}, err
	}

	if remote != "" {
		if err := s.configureRemote(ctx, t, remote); err != nil {
			return Report{Transcript: t.String()}, err
		}
	}

	if _, err := SaveConfig(s.cfgPath, Config{Remote: remote, Branch: branch}); err != nil {
		return Report{Transcript: t.String()}, err
	}

	t.line("✓ repository ready on branch %s", branch)
	s.logger.Info("sync repository initialized",
		zap.String("branch", branch),
		zap.String("remote", remote))
	return Report{OK: true, Transcript: t.String()}, nil
}

// initRepo runs git init, falling back to init plus checkout -b for
// git versions without the -b flag.
func (s *Syncer) initRepo(ctx context.Context, t *transcript, branch string) error {
	res := s.run(ctx, "init", "-b", branch)
	t.result(res)
	if res.OK() {
		return nil
	}

	res = s.run(ctx, "init")
	t.result(res)
	if !res.OK() {
		return toolErr("init", res)
	}

	res = s.run(ctx, "checkout", "-b", branch)
	t.result(res)
	if !res.OK() {
		return toolErr("checkout", res)
	}
	return nil
}

// configureRemote sets origin to remote, adding it when absent.
func (s *Syncer) configureRemote(ctx context.Context, t *transcript, remote string) error {
	var res Result
	if s.run(ctx, "remote", "get-url", "origin").OK() {
		res = s.run(ctx, "remote", "set-url", "origin", remote)
	} else {
		res = s.run(ctx, "remote", "add", "origin", remote)
	}
	t.result(res)
	if !res.OK() {
		return toolErr("remote", res)
	}
	return nil
}

// ensureRemote prepares a push or pull: the repository must exist
// (created on the spot if not) and origin must resolve. A remote known
// only to the config cache is restored into the repository.
func (s *Syncer) ensureRemote(ctx context.Context, t *transcript) (Config, error) {
	cfg := LoadConfig(s.cfgPath)

	if !s.isRepo(ctx) {
		if err := s.initRepo(ctx, t, cfg.Branch); err != nil {
			return cfg, err
		}
	}

	if s.run(ctx, "remote", "get-url", "origin").OK() {
		return cfg, nil
	}
	if cfg.Remote != "" {
		if err := s.configureRemote(ctx, t, cfg.Remote); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	t.line("✗ remote not configured")
	return cfg, ErrRemoteNotConfigured
}

// Push stages the entire data directory, commits, and pushes to
// origin. An empty message gets a timestamped default. When the
// staging area comes up empty the push is skipped and the report's
// NoChanges flag is set; that is a success, not an error.
func (s *Syncer) Push(ctx context.Context, message string) (Report, error) {
	t := &transcript{}
	cfg, err := s.ensureRemote(ctx, t)
	if err != nil {
		return Report{Transcript: t.String()}, err
	}

	if strings.TrimSpace(message) == "" {
		message = fmt.Sprintf("update data (%s)", time.Now().Format("2006-01-02 15:04:05"))
	}

	res := s.run(ctx, "add", "-A")
	t.result(res)
	if !res.OK() {
		return Report{Transcript: t.String()}, toolErr("add", res)
	}

	res = s.run(ctx, "diff", "--cached", "--name-only")
	t.result(res)
	if !res.OK() {
		return Report{Transcript: t.String()}, toolErr("diff", res)
	}
	if strings.TrimSpace(res.Stdout) == "" {
		t.line("ℹ no changes to push")
		return Report{OK: true, NoChanges: true, Transcript: t.String()}, nil
	}

	res = s.run(ctx, "commit", "-m", message)
	t.result(res)
	if !res.OK() {
		return Report{Transcript: t.String()}, toolErr("commit", res)
	}

	res = s.run(ctx, "push", "origin", cfg.Branch)
	t.result(res)
	if !res.OK() {
		// first push to a fresh branch needs the upstream set
		res = s.run(ctx, "push", "-u", "origin", cfg.Branch)
		t.result(res)
		if !res.OK() {
			return Report{Transcript: t.String()}, toolErr("push", res)
		}
	}

	t.line("✓ pushed to origin %s", cfg.Branch)
	s.touchConfig(cfg)
	s.logger.Info("pushed data", zap.String("branch", cfg.Branch))
	return Report{OK: true, Transcript: t.String()}, nil
}

// Pull fetches and merges from origin. Divergent first-time histories
// (a freshly initialized local repo against an existing remote) retry
// with --allow-unrelated-histories.
func (s *Syncer) Pull(ctx context.Context) (Report, error) {
	t := &transcript{}
	cfg, err := s.ensureRemote(ctx, t)
	if err != nil {
		return Report{Transcript: t.String()}, err
	}

	res := s.run(ctx, "pull", "origin", cfg.Branch)
	t.result(res)
	if !res.OK() {
		res = s.run(ctx, "pull", "origin", cfg.Branch, "--allow-unrelated-histories")
		t.result(res)
		if !res.OK() {
			return Report{Transcript: t.String()}, toolErr("pull", res)
		}
	}

	t.line("✓ pulled from origin %s", cfg.Branch)
	s.touchConfig(cfg)
	s.logger.Info("pulled data", zap.String("branch", cfg.Branch))
	return Report{OK: true, Transcript: t.String()}, nil
}

// Status reports the current branch, remote, and working tree state.
// A missing repository is reported in the transcript with a hint, not
// as an error.
func (s *Syncer) Status(ctx context.Context) (Report, error) {
	t := &transcript{}
	cfg := LoadConfig(s.cfgPath)

	if !s.isRepo(ctx) {
		t.line("✗ not a git repository: %s", s.dir)
		return Report{
			Hint:       "run sync init to create the repository",
			Transcript: t.String(),
		}, nil
	}

	if res := s.run(ctx, "rev-parse", "--abbrev-ref", "HEAD"); res.OK() {
		t.line("branch: %s", strings.TrimSpace(res.Stdout))
	}

	if res := s.run(ctx, "remote", "get-url", "origin"); res.OK() {
		t.line("remote: %s", strings.TrimSpace(res.Stdout))
	} else {
		t.line("remote: not configured")
	}

	if cfg.LastUpdated != "" {
		t.line("last sync: %s", cfg.LastUpdated)
	}

	res := s.run(ctx, "status", "--short")
	if !res.OK() {
		return Report{Transcript: t.String()}, toolErr("status", res)
	}
	if strings.TrimSpace(res.Stdout) == "" {
		t.line("✓ working tree clean")
	} else {
		t.raw(res.Stdout)
	}

	return Report{OK: true, Transcript: t.String()}, nil
}

// touchConfig refreshes LastUpdated after a successful sync. Failure
// to write the cache never fails the sync that already happened.
func (s *Syncer) touchConfig(cfg Config) {
	if _, err := SaveConfig(s.cfgPath, cfg); err != nil {
		s.logger.Warn("failed to update sync config", zap.Error(err))
	}
}

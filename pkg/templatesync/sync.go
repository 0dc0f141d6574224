// Package templatesync pulls the template directory from its remote
// repository before rendering.
//
// Synchronization shells out to the git executable. Its presence is checked
// once, when a Syncer is created, so a missing git fails fast with a clear
// message instead of surfacing later as an obscure exec error.
package templatesync

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/yaml2config/pkg/errors"
	"github.com/arthur-debert/yaml2config/pkg/logging"
)

const (
	// DefaultRemote is pulled from when no remote is configured
	DefaultRemote = "origin"

	// DefaultBranch is pulled when no branch is configured
	DefaultBranch = "master"
)

// lookPath is replaced in tests to simulate a missing git
var lookPath = exec.LookPath

// Options selects what to pull
type Options struct {
	Remote string
	Branch string
}

// Syncer updates one checkout
type Syncer struct {
	dir    string
	remote string
	branch string
	git    string
	logger zerolog.Logger
}

// New checks that git is available and returns a Syncer for dir
func New(dir string, opts Options) (*Syncer, error) {
	git, err := lookPath("git")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrSyncUnavailable,
			"cannot update templates: git is not available on PATH")
	}

	if opts.Remote == "" {
		opts.Remote = DefaultRemote
	}
	if opts.Branch == "" {
		opts.Branch = DefaultBranch
	}

	return &Syncer{
		dir:    dir,
		remote: opts.Remote,
		branch: opts.Branch,
		git:    git,
		logger: logging.GetLogger("templatesync"),
	}, nil
}

// Sync pulls the configured branch into the checkout. The directory is
// verified to be the top level of a git work tree before anything runs that
// could modify it.
func (s *Syncer) Sync(ctx context.Context) error {
	done := logging.LogOperationStart(s.logger, "sync")
	defer done()

	if err := s.verifyCheckout(ctx); err != nil {
		return err
	}

	s.logger.Info().
		Str("dir", s.dir).
		Str("remote", s.remote).
		Str("branch", s.branch).
		Msg("Pulling templates")

	if _, stderr, err := s.run(ctx, "pull", "--no-edit", s.remote, s.branch); err != nil {
		return errors.Wrapf(commandError(err, stderr), errors.ErrSyncFailed,
			"failed to pull %s/%s into %s", s.remote, s.branch, s.dir).
			WithDetail("path", s.dir)
	}

	return nil
}

// verifyCheckout fails unless s.dir is the root of a git work tree
func (s *Syncer) verifyCheckout(ctx context.Context) error {
	stdout, stderr, err := s.run(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return errors.Wrapf(commandError(err, stderr), errors.ErrSyncNotRepo,
			"template directory %s is not a git repository", s.dir).
			WithDetail("path", s.dir)
	}

	top := strings.TrimSpace(stdout)
	if !samePath(top, s.dir) {
		return errors.Newf(errors.ErrSyncNotRepo,
			"template directory %s is not a git repository (it is inside %s)", s.dir, top).
			WithDetail("path", s.dir)
	}
	return nil
}

// run executes git in s.dir and captures its output
func (s *Syncer) run(ctx context.Context, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, s.git, args...)
	cmd.Dir = s.dir
	cmd.Env = os.Environ()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	s.logger.Debug().
		Str("command", s.git).
		Strs("args", args).
		Str("workingDir", s.dir).
		Msg("Executing command")

	err := cmd.Run()
	if err != nil {
		s.logger.Debug().
			Err(err).
			Strs("args", args).
			Str("stdout", stdout.String()).
			Str("stderr", stderr.String()).
			Msg("Command execution failed")
	}
	return stdout.String(), stderr.String(), err
}

// commandError folds git's stderr into the exec error
func commandError(err error, stderr string) error {
	msg := strings.TrimSpace(stderr)
	if msg == "" {
		return err
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func samePath(a, b string) bool {
	ra, err := filepath.EvalSymlinks(a)
	if err != nil {
		ra = filepath.Clean(a)
	}
	rb, err := filepath.EvalSymlinks(b)
	if err != nil {
		rb = filepath.Clean(b)
	}
	return ra == rb
}

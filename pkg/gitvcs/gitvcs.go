// Package gitvcs implements the repository sync service on top of the git
// command-line tool.
//
// For every dependency record the service can ensure a working copy exists
// under the dependency root (cloning it if missing, updating it otherwise),
// pin it to an exact revision, resolve a semver tag constraint against the
// repository's tags, and report the per-dependency sync status together with
// the currently checked-out revision.
//
// All git interaction shells out to the `git` binary; no repository state is
// kept in memory between calls. Remote lookups (tag listings) go through a
// [cache.Cache] so repeated status runs over large trees stay fast.
package gitvcs

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/arborpm/arbor/pkg/cache"
	"github.com/arborpm/arbor/pkg/errors"
)

// Options configures a sync service.
type Options struct {
	Git      string               // git binary to invoke (default: "git")
	Cache    cache.Cache          // remote lookup cache (default: null cache)
	Keyer    cache.Keyer          // cache key generator (default: DefaultKeyer)
	CacheTTL time.Duration        // lifetime of cached lookups (default: cache.DefaultTTL)
	Logger   func(string, ...any) // progress/warning callback (optional)
}

// withDefaults returns a copy of Options with zero values replaced.
func (o Options) withDefaults() Options {
	opts := o
	if opts.Git == "" {
		opts.Git = "git"
	}
	if opts.Cache == nil {
		opts.Cache = cache.NewNullCache()
	}
	if opts.Keyer == nil {
		opts.Keyer = cache.NewDefaultKeyer()
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = cache.DefaultTTL
	}
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	return opts
}

// Service syncs dependency working copies using the git binary.
type Service struct {
	opts Options
}

// NewService creates a sync service.
func NewService(opts Options) *Service {
	return &Service{opts: opts.withDefaults()}
}

// runGit executes a git command in dir and returns trimmed combined output.
func (s *Service) runGit(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, s.opts.Git, args...)
	cmd.Dir = dir

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	text := strings.TrimSpace(out.String())
	if err != nil {
		if execErr, ok := err.(*exec.Error); ok && execErr.Err == exec.ErrNotFound {
			return text, errors.Wrap(errors.ErrCodeGitMissing, err, "git binary %q not found", s.opts.Git)
		}
		if ctx.Err() != nil {
			return text, ctx.Err()
		}
		return text, errors.Wrap(errors.ErrCodeGit, err, "git %s: %s", strings.Join(args, " "), firstLine(text))
	}
	return text, nil
}

// firstLine keeps error messages single-line even when git prints a page.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

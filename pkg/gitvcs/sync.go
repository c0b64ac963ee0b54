package gitvcs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/arborpm/arbor/pkg/deps"
	"github.com/arborpm/arbor/pkg/errors"
	"github.com/arborpm/arbor/pkg/observability"
)

// CloneOrUpdateAll ensures a working copy exists at rootDir/Folder for every
// record in the list, cloning from the record's URL if missing and updating
// otherwise. A record with a pin is checked out at that exact revision after
// the update; a record with a version constraint (and no pin) is checked out
// at the best matching tag.
//
// One dependency failing does not abort the others: the failure is reported
// through the logger and the record is left for the status query to surface
// as not up to date.
func (s *Service) CloneOrUpdateAll(ctx context.Context, list deps.List, rootDir string) error {
	if len(list) == 0 {
		return nil
	}
	if err := os.MkdirAll(rootDir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create dependency directory %s", rootDir)
	}

	for _, dep := range list {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.cloneOrUpdate(ctx, dep, rootDir); err != nil {
			if errors.Is(err, errors.ErrCodeGitMissing) {
				return err // nothing else can succeed without a git binary
			}
			s.opts.Logger("sync %s failed: %v", dep.Name, err)
		}
	}
	return nil
}

func (s *Service) cloneOrUpdate(ctx context.Context, dep deps.Dependency, rootDir string) (err error) {
	observability.Sync().OnSyncStart(ctx, dep.Name, dep.URL)
	start := time.Now()
	defer func() {
		observability.Sync().OnSyncComplete(ctx, dep.Name, dep.URL, time.Since(start), err)
	}()

	workdir := filepath.Join(rootDir, dep.Folder)

	if !isWorkingCopy(workdir) {
		if err := s.clone(ctx, dep, rootDir, workdir); err != nil {
			return err
		}
	} else if err := s.update(ctx, dep, workdir); err != nil {
		return err
	}

	return s.checkoutTarget(ctx, dep, workdir)
}

// clone creates the working copy via a staging directory, so an interrupted
// clone never leaves a half-populated folder under the dependency root.
func (s *Service) clone(ctx context.Context, dep deps.Dependency, rootDir, workdir string) error {
	staging := filepath.Join(rootDir, fmt.Sprintf(".%s-%s", dep.Folder, uuid.NewString()[:8]))
	defer os.RemoveAll(staging)

	args := []string{"clone"}
	if dep.Branch != "" {
		args = append(args, "--branch", dep.Branch)
	}
	args = append(args, dep.URL, staging)

	s.opts.Logger("cloning %s from %s", dep.Name, dep.URL)
	if _, err := s.runGit(ctx, rootDir, args...); err != nil {
		return err
	}
	return os.Rename(staging, workdir)
}

// update fetches new history and tags for an existing working copy.
func (s *Service) update(ctx context.Context, dep deps.Dependency, workdir string) error {
	s.opts.Logger("updating %s", dep.Name)
	_, err := s.runGit(ctx, workdir, "fetch", "--tags", "--prune", "origin")
	return err
}

// checkoutTarget moves the working copy to the record's target revision:
// the pin if set, otherwise the best tag for the version constraint,
// otherwise the tip of the tracked branch.
func (s *Service) checkoutTarget(ctx context.Context, dep deps.Dependency, workdir string) error {
	switch {
	case dep.HasPin():
		observability.Sync().OnCheckout(ctx, dep.Name, dep.Pin)
		if _, err := s.runGit(ctx, workdir, "checkout", "--quiet", dep.Pin); err != nil {
			return errors.Wrap(errors.ErrCodeGitCheckout, err, "checkout pin %s for %s", dep.Pin, dep.Name)
		}
		return nil

	case dep.Version != "":
		tag, err := s.ResolveTag(ctx, dep.URL, dep.Version)
		if err != nil {
			return err
		}
		s.opts.Logger("resolved %s %s -> %s", dep.Name, dep.Version, tag)
		observability.Sync().OnCheckout(ctx, dep.Name, tag)
		if _, err := s.runGit(ctx, workdir, "checkout", "--quiet", tag); err != nil {
			return errors.Wrap(errors.ErrCodeGitCheckout, err, "checkout tag %s for %s", tag, dep.Name)
		}
		return nil

	case dep.Branch != "":
		observability.Sync().OnCheckout(ctx, dep.Name, dep.Branch)
		if _, err := s.runGit(ctx, workdir, "checkout", "--quiet", dep.Branch); err != nil {
			return errors.Wrap(errors.ErrCodeGitCheckout, err, "checkout branch %s for %s", dep.Branch, dep.Name)
		}
		_, err := s.runGit(ctx, workdir, "merge", "--ff-only", "origin/"+dep.Branch)
		return err

	default:
		return nil // no target declared, leave the working copy alone
	}
}

// isWorkingCopy reports whether dir looks like an existing git checkout.
func isWorkingCopy(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil && info.IsDir()
}

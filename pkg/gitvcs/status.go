package gitvcs

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/arborpm/arbor/pkg/deps"
)

// Status describes the sync state of one working copy.
type Status string

const (
	StatusUpToDate Status = "up-to-date" // working copy matches its target revision
	StatusAhead    Status = "ahead"      // local commits not on the remote branch
	StatusBehind   Status = "behind"     // remote commits not yet merged locally
	StatusDiverged Status = "diverged"   // both local and remote commits exist
	StatusMissing  Status = "missing"    // working copy does not exist
	StatusUnknown  Status = "unknown"    // state could not be determined
)

// Result is the per-dependency outcome of a status query.
type Result struct {
	Name     string
	Status   Status
	Revision string // currently checked-out revision, "" if unknown
}

// StatusAll queries the sync state of every record in the list.
// A record whose working copy is absent reports StatusMissing with an empty
// revision; failures querying one record degrade it to StatusUnknown rather
// than aborting the rest.
func (s *Service) StatusAll(ctx context.Context, list deps.List, rootDir string) []Result {
	results := make([]Result, 0, len(list))
	for _, dep := range list {
		results = append(results, s.status(ctx, dep, rootDir))
	}
	return results
}

func (s *Service) status(ctx context.Context, dep deps.Dependency, rootDir string) Result {
	workdir := filepath.Join(rootDir, dep.Folder)
	if _, err := os.Stat(workdir); os.IsNotExist(err) {
		return Result{Name: dep.Name, Status: StatusMissing}
	}
	if !isWorkingCopy(workdir) {
		return Result{Name: dep.Name, Status: StatusUnknown}
	}

	head, err := s.runGit(ctx, workdir, "rev-parse", "HEAD")
	if err != nil {
		s.opts.Logger("status %s: %v", dep.Name, err)
		return Result{Name: dep.Name, Status: StatusUnknown}
	}

	res := Result{Name: dep.Name, Revision: head}
	res.Status = s.compare(ctx, dep, workdir, head)
	return res
}

// compare determines the working copy's state relative to its target.
// Pinned records compare HEAD against the pin; branch-tracked records use
// ahead/behind counts against the remote branch.
func (s *Service) compare(ctx context.Context, dep deps.Dependency, workdir, head string) Status {
	if dep.HasPin() {
		pinRev, err := s.runGit(ctx, workdir, "rev-parse", "--verify", dep.Pin+"^{commit}")
		if err != nil {
			return StatusUnknown
		}
		if pinRev == head {
			return StatusUpToDate
		}
		return StatusDiverged
	}

	if dep.Branch == "" {
		return StatusUpToDate
	}

	counts, err := s.runGit(ctx, workdir, "rev-list", "--count", "--left-right",
		"origin/"+dep.Branch+"...HEAD")
	if err != nil {
		return StatusUnknown
	}
	behind, ahead, ok := parseLeftRight(counts)
	if !ok {
		return StatusUnknown
	}

	switch {
	case ahead > 0 && behind > 0:
		return StatusDiverged
	case ahead > 0:
		return StatusAhead
	case behind > 0:
		return StatusBehind
	default:
		return StatusUpToDate
	}
}

// parseLeftRight parses `git rev-list --count --left-right` output, which is
// two tab-separated counts: commits only on the left ref, commits only on HEAD.
func parseLeftRight(out string) (left, right int, ok bool) {
	fields := strings.Fields(out)
	if len(fields) != 2 {
		return 0, 0, false
	}
	l, err1 := strconv.Atoi(fields[0])
	r, err2 := strconv.Atoi(fields[1])
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return l, r, true
}

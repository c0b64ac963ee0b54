package gitvcs

import (
	"context"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/arborpm/arbor/pkg/errors"
	"github.com/arborpm/arbor/pkg/observability"
)

// ResolveTag resolves a semver constraint against the tags of the remote
// repository at url and returns the name of the highest matching tag.
//
// Tag listings are fetched with `git ls-remote --tags` and cached, so
// resolving several records against the same repository costs one network
// round-trip per TTL window.
func (s *Service) ResolveTag(ctx context.Context, url, constraint string) (string, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidVersion, err, "invalid version constraint %q", constraint)
	}

	tags, err := s.remoteTags(ctx, url)
	if err != nil {
		return "", err
	}

	tag, ok := bestMatch(tags, c)
	if !ok {
		err := errors.New(errors.ErrCodeTagNotFound, "no tag of %s satisfies %q", url, constraint)
		observability.Sync().OnTagResolve(ctx, url, constraint, "", err)
		return "", err
	}
	observability.Sync().OnTagResolve(ctx, url, constraint, tag, nil)
	return tag, nil
}

// remoteTags lists the tag names of the repository at url, newest lookup
// cached under the keyer's tags key.
func (s *Service) remoteTags(ctx context.Context, url string) ([]string, error) {
	key := s.opts.Keyer.TagsKey(url)

	if data, hit, err := s.opts.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, key)
		return splitLines(string(data)), nil
	}
	observability.Cache().OnCacheMiss(ctx, key)

	out, err := s.runGit(ctx, "", "ls-remote", "--tags", "--refs", url)
	if err != nil {
		return nil, err
	}

	tags := parseLsRemoteTags(out)
	payload := []byte(strings.Join(tags, "\n"))
	if err := s.opts.Cache.Set(ctx, key, payload, s.opts.CacheTTL); err != nil {
		s.opts.Logger("cache tags for %s: %v", url, err)
	} else {
		observability.Cache().OnCacheSet(ctx, key, len(payload))
	}
	return tags, nil
}

// parseLsRemoteTags extracts tag names from `git ls-remote --tags --refs`
// output, which is lines of "<sha>\trefs/tags/<name>".
func parseLsRemoteTags(out string) []string {
	var tags []string
	for _, line := range splitLines(out) {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue
		}
		name, ok := strings.CutPrefix(fields[1], "refs/tags/")
		if !ok {
			continue
		}
		tags = append(tags, name)
	}
	return tags
}

// bestMatch picks the highest semver tag satisfying the constraint.
// Tags that do not parse as semver (release branches, dates, etc.) are
// ignored rather than treated as errors.
func bestMatch(tags []string, c *semver.Constraints) (string, bool) {
	type candidate struct {
		tag     string
		version *semver.Version
	}

	var matches []candidate
	for _, tag := range tags {
		v, err := semver.NewVersion(tag)
		if err != nil {
			continue
		}
		if c.Check(v) {
			matches = append(matches, candidate{tag: tag, version: v})
		}
	}
	if len(matches) == 0 {
		return "", false
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].version.LessThan(matches[j].version)
	})
	return matches[len(matches)-1].tag, true
}

func splitLines(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

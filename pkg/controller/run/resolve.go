package run

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/hashicorp/go-version"
	"github.com/hashpin/hashpin/pkg/github"
	"github.com/sirupsen/logrus"
)

// ResolvedVersion is the outcome of resolving one repository identity.
// CommitHash is always a full length commit SHA, never a shortened form.
// DisplayVersion is a tag name, or a branch name when the repository has
// neither releases nor tags.
type ResolvedVersion struct {
	RepoOwner      string
	RepoName       string
	DisplayVersion string
	CommitHash     string
}

// ResolutionError is a per-reference resolution failure. It is collected by
// the caller and never aborts the remaining references.
type ResolutionError struct {
	RepoOwner string
	RepoName  string
	Err       error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve the latest version of %s/%s: %v", e.RepoOwner, e.RepoName, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

var errNoCandidates = errors.New("no release, tag, or default branch commit was found")

const (
	listPerPage  = 100
	maxListPages = 10
)

// semverPattern gates which tags participate in semantic version selection.
// Only strict major.minor.patch values (optionally prefixed with a case
// insensitive "v" and suffixed with prerelease or build metadata) qualify.
var semverPattern = regexp.MustCompile(`^[vV]?\d+\.\d+\.\d+(?:-[0-9A-Za-z.-]+)?(?:\+[0-9A-Za-z.-]+)?$`)

func parseSemver(s string) (*version.Version, bool) {
	if !semverPattern.MatchString(s) {
		return nil, false
	}
	if strings.HasPrefix(s, "V") {
		s = "v" + s[1:]
	}
	v, err := version.NewVersion(s)
	if err != nil {
		return nil, false
	}
	return v, true
}

// resolve determines the latest version of a repository and the commit hash
// it points to. It falls back from releases to tags to the default branch
// head, stopping at the first tier that yields a usable candidate.
// Results are not memoized; every call issues its own API requests.
func (c *Controller) resolve(ctx context.Context, logE *logrus.Entry, owner, repo string) (*ResolvedVersion, error) {
	rv, err := c.resolveFromReleases(ctx, logE, owner, repo)
	if err != nil {
		return nil, &ResolutionError{RepoOwner: owner, RepoName: repo, Err: err}
	}
	if rv != nil {
		return rv, nil
	}
	rv, err = c.resolveFromTags(ctx, owner, repo)
	if err != nil {
		return nil, &ResolutionError{RepoOwner: owner, RepoName: repo, Err: err}
	}
	if rv != nil {
		return rv, nil
	}
	rv, err = c.resolveFromDefaultBranch(ctx, owner, repo)
	if err != nil {
		return nil, &ResolutionError{RepoOwner: owner, RepoName: repo, Err: err}
	}
	if rv == nil {
		return nil, &ResolutionError{RepoOwner: owner, RepoName: repo, Err: errNoCandidates}
	}
	return rv, nil
}

// resolveFromReleases selects the maximum stable semver release and resolves
// the commit hash its tag points to. It returns (nil, nil) when no release
// has a valid stable semver tag.
func (c *Controller) resolveFromReleases(ctx context.Context, logE *logrus.Entry, owner, repo string) (*ResolvedVersion, error) {
	opts := &github.ListOptions{
		PerPage: listPerPage,
	}
	var latest *version.Version
	latestTag := ""
	for range maxListPages {
		releases, resp, err := c.repositoriesService.ListReleases(ctx, owner, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("list releases: %w", err)
		}
		for _, release := range releases {
			if release.GetDraft() || release.GetPrerelease() {
				continue
			}
			tag := release.GetTagName()
			v, ok := parseSemver(tag)
			if !ok {
				logE.WithField("tag", tag).Debug("the release tag is not a semver")
				continue
			}
			if latest == nil || v.GreaterThan(latest) {
				latest = v
				latestTag = tag
			}
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	if latestTag == "" {
		return nil, nil //nolint:nilnil
	}
	sha, err := c.tagCommitSHA(ctx, owner, repo, latestTag)
	if err != nil {
		return nil, err
	}
	return &ResolvedVersion{
		RepoOwner:      owner,
		RepoName:       repo,
		DisplayVersion: latestTag,
		CommitHash:     sha,
	}, nil
}

// tagCommitSHA resolves the commit a tag points to.
// An annotated tag reference points at a tag object, which must be
// dereferenced once more to reach the target commit.
func (c *Controller) tagCommitSHA(ctx context.Context, owner, repo, tag string) (string, error) {
	ref, _, err := c.gitService.GetRef(ctx, owner, repo, "tags/"+tag)
	if err != nil {
		return "", fmt.Errorf("get a tag reference: %w", err)
	}
	obj := ref.GetObject()
	if obj.GetType() != "tag" {
		return obj.GetSHA(), nil
	}
	tagObj, _, err := c.gitService.GetTag(ctx, owner, repo, obj.GetSHA())
	if err != nil {
		return "", fmt.Errorf("get a tag object: %w", err)
	}
	return tagObj.GetObject().GetSHA(), nil
}

// resolveFromTags selects the maximum valid semver tag, or the most recently
// created tag in API order when no tag is a valid semver. Tag list entries
// are pre-resolved to commits, so no dereference is needed.
// It returns (nil, nil) when the repository has no tags at all.
func (c *Controller) resolveFromTags(ctx context.Context, owner, repo string) (*ResolvedVersion, error) {
	opts := &github.ListOptions{
		PerPage: listPerPage,
	}
	var latest *version.Version
	var latestTag *github.RepositoryTag
	var newestTag *github.RepositoryTag
	for range maxListPages {
		tags, resp, err := c.repositoriesService.ListTags(ctx, owner, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("list tags: %w", err)
		}
		for _, tag := range tags {
			if newestTag == nil {
				newestTag = tag
			}
			v, ok := parseSemver(tag.GetName())
			if !ok {
				continue
			}
			if latest == nil || v.GreaterThan(latest) {
				latest = v
				latestTag = tag
			}
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	if latestTag == nil {
		latestTag = newestTag
	}
	if latestTag == nil {
		return nil, nil //nolint:nilnil
	}
	return &ResolvedVersion{
		RepoOwner:      owner,
		RepoName:       repo,
		DisplayVersion: latestTag.GetName(),
		CommitHash:     latestTag.GetCommit().GetSHA(),
	}, nil
}

// resolveFromDefaultBranch resolves the head commit of the repository's
// default branch. The display version is the branch name itself, signaling
// that the repository has no proper pinned version.
func (c *Controller) resolveFromDefaultBranch(ctx context.Context, owner, repo string) (*ResolvedVersion, error) {
	repoData, _, err := c.repositoriesService.Get(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("get the repository: %w", err)
	}
	branch := repoData.GetDefaultBranch()
	if branch == "" {
		return nil, nil //nolint:nilnil
	}
	sha, _, err := c.repositoriesService.GetCommitSHA1(ctx, owner, repo, "heads/"+branch, "")
	if err != nil {
		return nil, fmt.Errorf("get the default branch head commit: %w", err)
	}
	return &ResolvedVersion{
		RepoOwner:      owner,
		RepoName:       repo,
		DisplayVersion: branch,
		CommitHash:     sha,
	}, nil
}

package run

import (
	"context"

	"github.com/hashpin/hashpin/pkg/github"
)

// RepositoriesService is the narrow surface of the GitHub Repositories API
// the resolver needs.
type RepositoriesService interface {
	ListReleases(ctx context.Context, owner, repo string, opts *github.ListOptions) ([]*github.RepositoryRelease, *github.Response, error)
	ListTags(ctx context.Context, owner, repo string, opts *github.ListOptions) ([]*github.RepositoryTag, *github.Response, error)
	GetCommitSHA1(ctx context.Context, owner, repo, ref, lastSHA string) (string, *github.Response, error)
	Get(ctx context.Context, owner, repo string) (*github.Repository, *github.Response, error)
}

// GitService is the narrow surface of the GitHub Git API the resolver needs
// to dereference tag references to commits.
type GitService interface {
	GetRef(ctx context.Context, owner, repo, ref string) (*github.Reference, *github.Response, error)
	GetTag(ctx context.Context, owner, repo, sha string) (*github.Tag, *github.Response, error)
}

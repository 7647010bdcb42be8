package run

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/hashpin/hashpin/pkg/config"
	"github.com/hashpin/hashpin/pkg/github"
	"github.com/spf13/afero"
)

const testSHA = "1111111111111111111111111111111111111111"

func newProcessTestController(repoSvc RepositoriesService, gitSvc GitService, fs afero.Fs, param *ParamRun) *Controller {
	return &Controller{
		repositoriesService: repoSvc,
		gitService:          gitSvc,
		fs:                  fs,
		cfg:                 &config.Config{},
		param:               param,
		logger:              NewLogger(io.Discard),
	}
}

func newResolvableService() (*fakeRepositoriesService, *fakeGitService) {
	repoSvc := &fakeRepositoriesService{
		releases: []*github.RepositoryRelease{
			{TagName: github.Ptr("v4.9.0")},
		},
	}
	gitSvc := &fakeGitService{
		refs: map[string]*github.Reference{
			"tags/v4.9.0": {Object: &github.GitObject{Type: github.Ptr("commit"), SHA: github.Ptr(testSHA)}},
		},
	}
	return repoSvc, gitSvc
}

func TestController_processFile(t *testing.T) { //nolint:funlen
	t.Parallel()
	workflow := `jobs:
  build:
    steps:
      - uses: actions/checkout@v4
      - run: make build
      - uses: a/b@v1 # skip-pinning
`

	t.Run("pins references and writes the file", func(t *testing.T) {
		t.Parallel()
		fs := afero.NewMemMapFs()
		if err := afero.WriteFile(fs, "wf.yaml", []byte(workflow), 0o644); err != nil {
			t.Fatal(err)
		}
		repoSvc, gitSvc := newResolvableService()
		ctrl := newProcessTestController(repoSvc, gitSvc, fs, &ParamRun{Stderr: io.Discard})
		result, err := ctrl.processFile(t.Context(), testLogE(), "wf.yaml")
		if err != nil {
			t.Fatal(err)
		}
		if result.Updated != 1 {
			t.Fatalf("wanted 1 updated reference, got %d", result.Updated)
		}
		if repoSvc.listReleasesCalls != 1 {
			t.Fatalf("the opted out reference must not be resolved: %d calls", repoSvc.listReleasesCalls)
		}
		content, err := afero.ReadFile(fs, "wf.yaml")
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(content), "      - uses: actions/checkout@"+testSHA+" # tag v4.9.0") {
			t.Fatalf("the file wasn't patched:\n%s", content)
		}
		if !strings.Contains(string(content), "a/b@v1 # skip-pinning") {
			t.Fatalf("the opted out line must be preserved:\n%s", content)
		}
	})

	t.Run("check mode doesn't write files", func(t *testing.T) {
		t.Parallel()
		fs := afero.NewMemMapFs()
		if err := afero.WriteFile(fs, "wf.yaml", []byte(workflow), 0o644); err != nil {
			t.Fatal(err)
		}
		repoSvc, gitSvc := newResolvableService()
		ctrl := newProcessTestController(repoSvc, gitSvc, fs, &ParamRun{Check: true, Stderr: io.Discard})
		result, err := ctrl.processFile(t.Context(), testLogE(), "wf.yaml")
		if err != nil {
			t.Fatal(err)
		}
		if result.Updated != 1 {
			t.Fatalf("wanted 1 reference to update, got %d", result.Updated)
		}
		content, err := afero.ReadFile(fs, "wf.yaml")
		if err != nil {
			t.Fatal(err)
		}
		if string(content) != workflow {
			t.Fatal("the file must not be updated in check mode")
		}
	})

	t.Run("structural failure precedes network activity", func(t *testing.T) {
		t.Parallel()
		fs := afero.NewMemMapFs()
		if err := afero.WriteFile(fs, "wf.yaml", []byte("name: test\non: push\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		repoSvc, gitSvc := newResolvableService()
		ctrl := newProcessTestController(repoSvc, gitSvc, fs, &ParamRun{Stderr: io.Discard})
		if _, err := ctrl.processFile(t.Context(), testLogE(), "wf.yaml"); !errors.Is(err, errNoJobs) {
			t.Fatalf("wanted errNoJobs, got %v", err)
		}
		if repoSvc.listReleasesCalls != 0 {
			t.Fatalf("no network call must be issued: %d calls", repoSvc.listReleasesCalls)
		}
	})

	t.Run("a resolution failure doesn't abort the batch", func(t *testing.T) {
		t.Parallel()
		fs := afero.NewMemMapFs()
		if err := afero.WriteFile(fs, "wf.yaml", []byte(`jobs:
  build:
    steps:
      - uses: actions/checkout@v4
      - uses: acme/toolkit/dist/setup@v1
`), 0o644); err != nil {
			t.Fatal(err)
		}
		repoSvc := &fakeRepositoriesService{
			releasesErr: errors.New("API rate limit exceeded"),
		}
		ctrl := newProcessTestController(repoSvc, &fakeGitService{}, fs, &ParamRun{Stderr: io.Discard})
		result, err := ctrl.processFile(t.Context(), testLogE(), "wf.yaml")
		if err != nil {
			t.Fatal(err)
		}
		if len(result.Failures) != 2 {
			t.Fatalf("wanted 2 collected failures, got %d", len(result.Failures))
		}
		if result.Updated != 0 {
			t.Fatalf("wanted 0 updated references, got %d", result.Updated)
		}
	})

	t.Run("cancellation truncates the work list cleanly", func(t *testing.T) {
		t.Parallel()
		fs := afero.NewMemMapFs()
		if err := afero.WriteFile(fs, "wf.yaml", []byte(workflow), 0o644); err != nil {
			t.Fatal(err)
		}
		repoSvc, gitSvc := newResolvableService()
		ctrl := newProcessTestController(repoSvc, gitSvc, fs, &ParamRun{Stderr: io.Discard})
		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		result, err := ctrl.processFile(ctx, testLogE(), "wf.yaml")
		if err != nil {
			t.Fatal(err)
		}
		if result.Updated != 0 {
			t.Fatalf("wanted 0 updated references, got %d", result.Updated)
		}
		if repoSvc.listReleasesCalls != 0 {
			t.Fatalf("no new work must start after cancellation: %d calls", repoSvc.listReleasesCalls)
		}
		content, err := afero.ReadFile(fs, "wf.yaml")
		if err != nil {
			t.Fatal(err)
		}
		if string(content) != workflow {
			t.Fatal("the file must not be touched after cancellation")
		}
	})

	t.Run("ignored actions are filtered before resolution", func(t *testing.T) {
		t.Parallel()
		fs := afero.NewMemMapFs()
		if err := afero.WriteFile(fs, "wf.yaml", []byte(workflow), 0o644); err != nil {
			t.Fatal(err)
		}
		repoSvc, gitSvc := newResolvableService()
		ctrl := newProcessTestController(repoSvc, gitSvc, fs, &ParamRun{Stderr: io.Discard})
		ia := &config.IgnoreAction{Name: "actions/.*"}
		if err := ia.Init(); err != nil {
			t.Fatal(err)
		}
		ctrl.cfg = &config.Config{IgnoreActions: []*config.IgnoreAction{ia}}
		result, err := ctrl.processFile(t.Context(), testLogE(), "wf.yaml")
		if err != nil {
			t.Fatal(err)
		}
		if result.Updated != 0 {
			t.Fatalf("wanted 0 updated references, got %d", result.Updated)
		}
		if repoSvc.listReleasesCalls != 0 {
			t.Fatalf("the ignored reference must not be resolved: %d calls", repoSvc.listReleasesCalls)
		}
	})
}

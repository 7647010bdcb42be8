package run

import (
	"errors"
	"testing"
)

func Test_validateWorkflow(t *testing.T) {
	t.Parallel()
	data := []struct {
		name    string
		content string
		isErr   bool
		noJobs  bool
	}{
		{
			name: "workflow with jobs",
			content: `name: test
jobs:
  build:
    runs-on: ubuntu-latest
`,
		},
		{
			name: "composite action with runs",
			content: `name: setup
runs:
  using: composite
`,
		},
		{
			name: "parseable but no jobs",
			content: `name: test
on: push
`,
			isErr:  true,
			noJobs: true,
		},
		{
			name:    "not parseable as YAML",
			content: "jobs: [unclosed",
			isErr:   true,
		},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			err := validateWorkflow([]byte(d.content))
			if !d.isErr {
				if err != nil {
					t.Fatal(err)
				}
				return
			}
			if err == nil {
				t.Fatal("an error must be returned")
			}
			if d.noJobs != errors.Is(err, errNoJobs) {
				t.Fatalf("wanted errNoJobs == %v, got %v", d.noJobs, err)
			}
		})
	}
}

package list

import (
	"bytes"
	"testing"

	"github.com/hashpin/hashpin/pkg/config"
	"github.com/spf13/afero"
)

func TestController_listFile(t *testing.T) {
	t.Parallel()
	workflow := `jobs:
  build:
    steps:
      - uses: actions/checkout@11bd71901bbe5b1630ceea73d27597364c9af683 # tag v4.2.2
      - uses: acme/toolkit/dist/setup@v1
`
	data := []struct {
		name  string
		param *Param
		exp   string
	}{
		{
			name:  "default format",
			param: &Param{},
			exp: `wf.yaml:4	actions/checkout@11bd71901bbe5b1630ceea73d27597364c9af683
wf.yaml:5	acme/toolkit/dist/setup@v1
`,
		},
		{
			name: "template",
			param: &Param{
				LineTemplate: "{{.RepoOwner}}/{{.RepoName}} pinned={{.Pinned}}",
			},
			exp: `actions/checkout pinned=true
acme/toolkit pinned=false
`,
		},
		{
			name: "owner filter",
			param: &Param{
				Owner: "acme",
			},
			exp: `wf.yaml:5	acme/toolkit/dist/setup@v1
`,
		},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			fs := afero.NewMemMapFs()
			if err := afero.WriteFile(fs, "wf.yaml", []byte(workflow), 0o644); err != nil {
				t.Fatal(err)
			}
			stdout := &bytes.Buffer{}
			ctrl := New(fs, &config.Config{}, d.param, stdout)
			tmpl, err := ctrl.parseTemplate()
			if err != nil {
				t.Fatal(err)
			}
			if err := ctrl.listFile("wf.yaml", tmpl); err != nil {
				t.Fatal(err)
			}
			if stdout.String() != d.exp {
				t.Fatalf("wanted %q, got %q", d.exp, stdout.String())
			}
		})
	}
}

package run

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hashpin/hashpin/pkg/config"
	"github.com/spf13/afero"
)

func TestController_searchFiles(t *testing.T) {
	t.Parallel()
	data := []struct {
		name  string
		files []string
		param *ParamRun
		cfg   *config.Config
		exp   []string
	}{
		{
			name: "positional arguments win",
			files: []string{
				".github/workflows/test.yaml",
			},
			param: &ParamRun{
				WorkflowFilePaths: []string{"foo.yaml"},
			},
			cfg: &config.Config{},
			exp: []string{"foo.yaml"},
		},
		{
			name: "default patterns",
			files: []string{
				".github/workflows/test.yaml",
				".github/workflows/release.yml",
				"foo/action.yaml",
				"README.md",
			},
			param: &ParamRun{},
			cfg:   &config.Config{},
			exp: []string{
				".github/workflows/release.yml",
				".github/workflows/test.yaml",
				"foo/action.yaml",
			},
		},
		{
			name: "config patterns",
			files: []string{
				".github/workflows/test.yaml",
				"custom/pipeline.yaml",
			},
			param: &ParamRun{},
			cfg: &config.Config{
				Files: []*config.File{
					{Pattern: "custom/*.yaml"},
				},
			},
			exp: []string{"custom/pipeline.yaml"},
		},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			fs := afero.NewMemMapFs()
			for _, f := range d.files {
				if err := afero.WriteFile(fs, f, []byte(""), 0o644); err != nil {
					t.Fatal(err)
				}
			}
			ctrl := &Controller{
				fs:    fs,
				cfg:   d.cfg,
				param: d.param,
			}
			got, err := ctrl.searchFiles()
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(d.exp, got); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

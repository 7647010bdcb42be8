package run

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// defaultPatterns is the default search set: GitHub Actions workflow files
// and composite action files up to three directories deep.
var defaultPatterns = []string{
	".github/workflows/*.yml",
	".github/workflows/*.yaml",
	"action.yml",
	"action.yaml",
	"*/action.yml",
	"*/action.yaml",
	"*/*/action.yml",
	"*/*/action.yaml",
	"*/*/*/action.yml",
	"*/*/*/action.yaml",
}

func (c *Controller) searchFiles() ([]string, error) {
	if len(c.param.WorkflowFilePaths) != 0 {
		return c.param.WorkflowFilePaths, nil
	}
	if len(c.cfg.Files) > 0 {
		return c.searchFilesByConfig()
	}
	return c.glob(defaultPatterns)
}

func (c *Controller) searchFilesByConfig() ([]string, error) {
	configFileDir := filepath.Dir(c.param.ConfigFilePath)
	patterns := make([]string, 0, len(c.cfg.Files))
	for _, file := range c.cfg.Files {
		patterns = append(patterns, filepath.Join(configFileDir, file.Pattern))
	}
	return c.glob(patterns)
}

func (c *Controller) glob(patterns []string) ([]string, error) {
	files := []string{}
	for _, pattern := range patterns {
		matches, err := afero.Glob(c.fs, pattern)
		if err != nil {
			return nil, fmt.Errorf("search files with the glob %s: %w", pattern, err)
		}
		files = append(files, matches...)
	}
	return files, nil
}

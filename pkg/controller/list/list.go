package list

import (
	"fmt"
	"path/filepath"
	"text/template"

	"github.com/hashpin/hashpin/pkg/controller/run"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
)

// ReferenceInfo is the value rendered for each extracted reference.
type ReferenceInfo struct {
	FullPath   string // owner/repo or owner/repo/path
	RepoOwner  string
	RepoName   string
	Ref        string // tag, branch, or commit SHA currently pinned
	Comment    string
	Pinned     bool // whether the ref is a full commit hash
	FilePath   string
	FileName   string
	LineNumber int
}

func (c *Controller) List(logE *logrus.Entry) error {
	paths, err := c.searchFiles()
	if err != nil {
		return fmt.Errorf("search target files: %w", err)
	}
	tmpl, err := c.parseTemplate()
	if err != nil {
		return err
	}
	for _, p := range paths {
		logE := logE.WithField("workflow_file", p)
		if err := c.listFile(p, tmpl); err != nil {
			logerr.WithError(logE, err).Error("list action references in a file")
		}
	}
	return nil
}

func (c *Controller) parseTemplate() (*template.Template, error) {
	if c.param.LineTemplate == "" {
		return nil, nil //nolint:nilnil
	}
	tmpl, err := template.New("line").Parse(c.param.LineTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse the line template: %w", err)
	}
	return tmpl, nil
}

func (c *Controller) listFile(p string, tmpl *template.Template) error {
	content, err := afero.ReadFile(c.fs, p)
	if err != nil {
		return fmt.Errorf("read a workflow file: %w", err)
	}
	for _, ref := range run.ExtractReferences(string(content)) {
		if c.param.Owner != "" && ref.RepoOwner != c.param.Owner {
			continue
		}
		info := &ReferenceInfo{
			FullPath:   ref.FullPath,
			RepoOwner:  ref.RepoOwner,
			RepoName:   ref.RepoName,
			Ref:        ref.CurrentRef,
			Comment:    ref.Comment,
			Pinned:     len(ref.CurrentRef) == 40, //nolint:mnd
			FilePath:   p,
			FileName:   filepath.Base(p),
			LineNumber: ref.LineIndex + 1,
		}
		if err := c.output(info, tmpl); err != nil {
			return err
		}
	}
	return nil
}

func (c *Controller) output(info *ReferenceInfo, tmpl *template.Template) error {
	if tmpl != nil {
		if err := tmpl.Execute(c.stdout, info); err != nil {
			return fmt.Errorf("render the line template: %w", err)
		}
		fmt.Fprintln(c.stdout)
		return nil
	}
	fmt.Fprintf(c.stdout, "%s:%d\t%s@%s\n", info.FilePath, info.LineNumber, info.FullPath, info.Ref)
	return nil
}

func (c *Controller) searchFiles() ([]string, error) {
	if len(c.param.WorkflowFilePaths) != 0 {
		return c.param.WorkflowFilePaths, nil
	}
	if c.cfg != nil && len(c.cfg.Files) > 0 {
		return c.searchFilesByGlob()
	}
	return c.glob(defaultPatterns())
}

func defaultPatterns() []string {
	return []string{
		".github/workflows/*.yml",
		".github/workflows/*.yaml",
		"action.yml",
		"action.yaml",
		"*/action.yml",
		"*/action.yaml",
	}
}

func (c *Controller) searchFilesByGlob() ([]string, error) {
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

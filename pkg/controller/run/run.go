package run

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/hashpin/hashpin/pkg/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
)

// ErrReferencesNotPinned is returned in check mode when rewrites are needed.
var ErrReferencesNotPinned = errors.New("action references aren't pinned to the latest commit hashes")

// FileResult summarizes processing of one workflow file. Partial success is
// the default outcome: per-reference failures are collected here and never
// abort the remaining references.
type FileResult struct {
	Path     string
	Updated  int
	Failures []*ResolutionError
}

func (c *Controller) Run(ctx context.Context, logE *logrus.Entry) error {
	if err := c.readConfig(); err != nil {
		return err
	}
	paths, err := c.searchFiles()
	if err != nil {
		return fmt.Errorf("search target files: %w", err)
	}

	updated := 0
	failures := 0
	broken := false
	for _, p := range paths {
		logE := logE.WithField("workflow_file", p)
		result, err := c.processFile(ctx, logE, p)
		if err != nil {
			broken = true
			logerr.WithError(logE, err).Error("process a workflow file")
			continue
		}
		updated += result.Updated
		failures += len(result.Failures)
		for _, failure := range result.Failures {
			logerr.WithError(logE.WithField("action", failure.RepoOwner+"/"+failure.RepoName), failure).Error("resolve an action reference")
		}
	}

	switch {
	case updated == 0 && failures == 0 && !broken:
		logE.Info("all action references are pinned")
	case c.param.Check:
		logE.WithField("num_of_unpinned_references", updated).Info("found references to pin")
	default:
		logE.WithField("num_of_updated_references", updated).Info("pinned action references")
	}
	if failures > 0 || broken {
		return errors.New("some action references could not be processed")
	}
	if c.param.Check && updated > 0 {
		return ErrReferencesNotPinned
	}
	return nil
}

func (c *Controller) readConfig() error {
	p, err := c.cfgFinder.Find(c.param.ConfigFilePath)
	if err != nil {
		return fmt.Errorf("find a configuration file: %w", err)
	}
	c.param.ConfigFilePath = p
	cfg := &config.Config{}
	if err := c.cfgReader.Read(cfg, p); err != nil {
		return fmt.Errorf("read a configuration file: %w", err)
	}
	c.cfg = cfg
	return nil
}

// processFile runs the full pipeline for one file: structural gate, extract,
// filter, resolve, decide, patch, write. The patch step runs once, after the
// loop, so cancellation yields a smaller decision set, never a corrupted
// file.
func (c *Controller) processFile(ctx context.Context, logE *logrus.Entry, p string) (*FileResult, error) {
	content, err := afero.ReadFile(c.fs, p)
	if err != nil {
		return nil, fmt.Errorf("read a workflow file: %w", err)
	}
	if err := validateWorkflow(content); err != nil {
		return nil, err
	}
	text := string(content)
	result := &FileResult{Path: p}
	decisions := []*Decision{}
	for _, ref := range ExtractReferences(text) {
		logE := logE.WithFields(logrus.Fields{
			"action": ref.FullPath,
			"line":   ref.LineIndex + 1,
		})
		if ref.SkipRewrite {
			logE.Debug("the reference opts out of pinning")
			continue
		}
		if c.ignored(ref) {
			logE.Debug("the reference is ignored by the configuration")
			continue
		}
		if ctx.Err() != nil {
			// Cancellation truncates the work list before new API calls.
			break
		}
		rv, err := c.resolve(ctx, logE, ref.RepoOwner, ref.RepoName)
		if err != nil {
			var rerr *ResolutionError
			if !errors.As(err, &rerr) {
				rerr = &ResolutionError{RepoOwner: ref.RepoOwner, RepoName: ref.RepoName, Err: err}
			}
			result.Failures = append(result.Failures, rerr)
			continue
		}
		d := newDecision(ref, rv)
		if d == nil {
			logE.Debug("the reference is already pinned")
			continue
		}
		decisions = append(decisions, d)
		c.logger.Diff(p, ref.LineIndex+1, ref.Line, d.NewLine)
	}
	if len(decisions) == 0 {
		return result, nil
	}
	result.Updated = len(decisions)
	if c.param.Check {
		return result, nil
	}
	if err := c.writeFile(p, applyDecisions(text, decisions)); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Controller) ignored(ref *Reference) bool {
	for _, ia := range c.cfg.IgnoreActions {
		if ia.Match(ref.FullPath, ref.CurrentRef) {
			return true
		}
	}
	return false
}

func (c *Controller) writeFile(p, text string) error {
	mode := fs.FileMode(0o644) //nolint:mnd
	if stat, err := c.fs.Stat(p); err == nil {
		mode = stat.Mode()
	}
	if err := afero.WriteFile(c.fs, p, []byte(text), mode); err != nil {
		return fmt.Errorf("write a workflow file: %w", err)
	}
	return nil
}

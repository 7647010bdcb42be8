// Package config defines the hashpin configuration file.
// The configuration controls which files are scanned and which action
// references are exempt from pinning.
package config

import (
	"errors"
	"fmt"
	"path"
	"regexp"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Version       int             `json:"version,omitempty" jsonschema:"enum=1"`
	Files         []*File         `json:"files,omitempty" jsonschema:"description=Target files. If files are passed via positional command line arguments, this is ignored"`
	IgnoreActions []*IgnoreAction `json:"ignore_actions,omitempty" yaml:"ignore_actions" jsonschema:"description=Action references that hashpin leaves untouched"`
}

type File struct {
	Pattern string `json:"pattern" jsonschema:"description=A glob pattern of target files"`
}

func (f *File) Init() error {
	if f.Pattern == "" {
		return errors.New("pattern is required")
	}
	if _, err := path.Match(f.Pattern, "a"); err != nil {
		return fmt.Errorf("parse pattern as a glob: %w", err)
	}
	return nil
}

// IgnoreAction exempts references from pinning.
// Name and Ref are regular expressions matched against the whole value.
type IgnoreAction struct {
	Name       string `json:"name" jsonschema:"description=A regular expression of action names"`
	Ref        string `json:"ref,omitempty" jsonschema:"description=A regular expression of refs. If empty, all refs match"`
	nameRegexp *regexp.Regexp
	refRegexp  *regexp.Regexp
}

func (ia *IgnoreAction) Init() error {
	if ia.Name == "" {
		return errors.New("name is required")
	}
	r, err := regexp.Compile("^" + ia.Name + "$")
	if err != nil {
		return fmt.Errorf("compile name as a regular expression: %w", err)
	}
	ia.nameRegexp = r
	if ia.Ref == "" {
		return nil
	}
	r, err = regexp.Compile("^" + ia.Ref + "$")
	if err != nil {
		return fmt.Errorf("compile ref as a regular expression: %w", err)
	}
	ia.refRegexp = r
	return nil
}

func (ia *IgnoreAction) Match(name, ref string) bool {
	if !ia.nameRegexp.MatchString(name) {
		return false
	}
	if ia.refRegexp == nil {
		return true
	}
	return ia.refRegexp.MatchString(ref)
}

func getConfigPath(fs afero.Fs) (string, error) {
	for _, p := range []string{".hashpin.yaml", ".github/hashpin.yaml", ".hashpin.yml", ".github/hashpin.yml"} {
		f, err := afero.Exists(fs, p)
		if err != nil {
			return "", fmt.Errorf("check if %s exists: %w", p, err)
		}
		if f {
			return p, nil
		}
	}
	return "", nil
}

type Finder struct {
	fs afero.Fs
}

func NewFinder(fs afero.Fs) *Finder {
	return &Finder{fs: fs}
}

func (f *Finder) Find(configFilePath string) (string, error) {
	if configFilePath != "" {
		return configFilePath, nil
	}
	return getConfigPath(f.fs)
}

type Reader struct {
	fs afero.Fs
}

func NewReader(fs afero.Fs) *Reader {
	return &Reader{fs: fs}
}

func (r *Reader) Read(cfg *Config, configFilePath string) error {
	if configFilePath == "" {
		return nil
	}
	f, err := r.fs.Open(configFilePath)
	if err != nil {
		return fmt.Errorf("open a configuration file: %w", err)
	}
	defer f.Close()
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("decode a configuration file as YAML: %w", err)
	}
	for _, file := range cfg.Files {
		if err := file.Init(); err != nil {
			return fmt.Errorf("initialize file: %w", err)
		}
	}
	for _, ia := range cfg.IgnoreActions {
		if err := ia.Init(); err != nil {
			return fmt.Errorf("initialize ignore_action: %w", err)
		}
	}
	return nil
}

// Package run implements the core logic for pinning action references.
// It extracts action references from workflow files, resolves each
// repository's latest version and the commit hash it points to through the
// GitHub API, decides which references need a rewrite, and patches the
// files in place while preserving every unrelated line byte for byte.
package run

import (
	"io"

	"github.com/hashpin/hashpin/pkg/config"
	"github.com/spf13/afero"
)

type Controller struct {
	repositoriesService RepositoriesService
	gitService          GitService
	fs                  afero.Fs
	cfg                 *config.Config
	param               *ParamRun
	cfgFinder           ConfigFinder
	cfgReader           ConfigReader
	logger              *Logger
}

type ConfigFinder interface {
	Find(configFilePath string) (string, error)
}

type ConfigReader interface {
	Read(cfg *config.Config, configFilePath string) error
}

type ParamRun struct {
	WorkflowFilePaths []string
	ConfigFilePath    string
	Check             bool
	Stderr            io.Writer
}

func New(repositoriesService RepositoriesService, gitService GitService, fs afero.Fs, cfgFinder ConfigFinder, cfgReader ConfigReader, param *ParamRun) *Controller {
	return &Controller{
		repositoriesService: repositoriesService,
		gitService:          gitService,
		fs:                  fs,
		cfg:                 &config.Config{},
		param:               param,
		cfgFinder:           cfgFinder,
		cfgReader:           cfgReader,
		logger:              NewLogger(param.Stderr),
	}
}

// Package list implements the 'hashpin list' command.
// It prints every action reference extracted from workflow files, with an
// optional text/template output format.
package list

import (
	"io"

	"github.com/hashpin/hashpin/pkg/config"
	"github.com/spf13/afero"
)

type Controller struct {
	fs     afero.Fs
	cfg    *config.Config
	param  *Param
	stdout io.Writer
}

type Param struct {
	WorkflowFilePaths []string
	ConfigFilePath    string
	Owner             string
	LineTemplate      string
}

func New(fs afero.Fs, cfg *config.Config, param *Param, stdout io.Writer) *Controller {
	return &Controller{
		fs:     fs,
		cfg:    cfg,
		param:  param,
		stdout: stdout,
	}
}

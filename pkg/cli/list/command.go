// Package list implements the 'hashpin list' command wiring.
package list

import (
	"context"
	"fmt"
	"io"

	"github.com/hashpin/hashpin/pkg/cli/flag"
	"github.com/hashpin/hashpin/pkg/config"
	"github.com/hashpin/hashpin/pkg/controller/list"
	"github.com/hashpin/hashpin/pkg/log"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

func New(logE *logrus.Entry, gf *flag.GlobalFlags, stdout io.Writer) *cli.Command {
	r := &runner{
		logE:   logE,
		gf:     gf,
		stdout: stdout,
	}
	return r.Command()
}

type runner struct {
	logE   *logrus.Entry
	gf     *flag.GlobalFlags
	stdout io.Writer
}

func (r *runner) Command() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List action references in workflow files",
		Description: `List action references extracted from workflow files.

$ hashpin list

The output format can be customized with a Go template.

e.g.

$ hashpin list -f '{{.FullPath}}@{{.Ref}} ({{.FilePath}}:{{.LineNumber}})'
`,
		Action: r.action,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Go template for each output line",
			},
			&cli.StringFlag{
				Name:  "owner",
				Usage: "Only list references whose repository owner matches",
			},
		},
	}
}

func (r *runner) action(_ context.Context, c *cli.Command) error {
	log.SetLevel(r.gf.LogLevel, r.logE)
	fs := afero.NewOsFs()
	cfgPath, err := config.NewFinder(fs).Find(r.gf.Config)
	if err != nil {
		return fmt.Errorf("find a configuration file: %w", err)
	}
	cfg := &config.Config{}
	if err := config.NewReader(fs).Read(cfg, cfgPath); err != nil {
		return fmt.Errorf("read a configuration file: %w", err)
	}
	ctrl := list.New(fs, cfg, &list.Param{
		WorkflowFilePaths: c.Args().Slice(),
		ConfigFilePath:    cfgPath,
		Owner:             c.String("owner"),
		LineTemplate:      c.String("format"),
	}, r.stdout)
	return ctrl.List(r.logE) //nolint:wrapcheck
}

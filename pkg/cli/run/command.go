// Package run implements the 'hashpin run' command wiring.
package run

import (
	"context"
	"io"

	"github.com/hashpin/hashpin/pkg/cli/flag"
	"github.com/hashpin/hashpin/pkg/config"
	"github.com/hashpin/hashpin/pkg/controller/run"
	"github.com/hashpin/hashpin/pkg/github"
	"github.com/hashpin/hashpin/pkg/log"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

func New(logE *logrus.Entry, gf *flag.GlobalFlags, stderr io.Writer) *cli.Command {
	r := &runner{
		logE:   logE,
		gf:     gf,
		stderr: stderr,
	}
	return r.Command()
}

type runner struct {
	logE   *logrus.Entry
	gf     *flag.GlobalFlags
	stderr io.Writer
}

func (r *runner) Command() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Pin action references to commit hashes",
		Description: `If no argument is passed, hashpin searches workflow files from .github/workflows.

$ hashpin run

You can also pass workflow file paths as arguments.

e.g.

$ hashpin run .github/actions/foo/action.yaml .github/actions/bar/action.yaml
`,
		Action: r.action,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "check",
				Usage: "Exit with a non-zero status code if references aren't pinned. If this is true, files aren't updated",
			},
		},
	}
}

func (r *runner) action(ctx context.Context, c *cli.Command) error {
	log.SetLevel(r.gf.LogLevel, r.logE)
	gh := github.New(ctx, r.logE)
	fs := afero.NewOsFs()
	ctrl := run.New(gh.Repositories, gh.Git, fs, config.NewFinder(fs), config.NewReader(fs), &run.ParamRun{
		WorkflowFilePaths: c.Args().Slice(),
		ConfigFilePath:    r.gf.Config,
		Check:             c.Bool("check"),
		Stderr:            r.stderr,
	})
	return ctrl.Run(ctx, r.logE) //nolint:wrapcheck
}

// Package initcmd implements the 'hashpin init' command wiring.
package initcmd

import (
	"context"

	"github.com/hashpin/hashpin/pkg/cli/flag"
	"github.com/hashpin/hashpin/pkg/controller/initcmd"
	"github.com/hashpin/hashpin/pkg/log"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

func New(logE *logrus.Entry, gf *flag.GlobalFlags) *cli.Command {
	r := &runner{
		logE: logE,
		gf:   gf,
	}
	return r.Command()
}

type runner struct {
	logE *logrus.Entry
	gf   *flag.GlobalFlags
}

func (r *runner) Command() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Create a configuration file if it doesn't exist",
		Description: `Create a configuration file if it doesn't exist.

$ hashpin init # create .hashpin.yaml
$ hashpin init -c .github/hashpin.yaml
`,
		Action: r.action,
	}
}

func (r *runner) action(_ context.Context, _ *cli.Command) error {
	log.SetLevel(r.gf.LogLevel, r.logE)
	ctrl := initcmd.New(afero.NewOsFs())
	return ctrl.Init(r.gf.Config) //nolint:wrapcheck
}

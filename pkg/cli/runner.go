// Package cli wires the urfave/cli commands to the controllers.
package cli

import (
	"context"
	"io"

	"github.com/hashpin/hashpin/pkg/cli/flag"
	"github.com/hashpin/hashpin/pkg/cli/initcmd"
	"github.com/hashpin/hashpin/pkg/cli/list"
	"github.com/hashpin/hashpin/pkg/cli/run"
	"github.com/hashpin/hashpin/pkg/cli/token"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

type Runner struct {
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	LDFlags *LDFlags
	LogE    *logrus.Entry
}

type LDFlags struct {
	Version string
	Commit  string
	Date    string
}

func (r *Runner) Run(ctx context.Context, args ...string) error {
	gf := &flag.GlobalFlags{}
	cmd := &cli.Command{
		Name:                  "hashpin",
		Usage:                 "Pin action references in CI workflow files to commit hashes. https://github.com/hashpin/hashpin",
		Version:               r.LDFlags.Version + " (" + r.LDFlags.Commit + ")",
		Flags:                 gf.Flags(),
		EnableShellCompletion: true,
		Commands: []*cli.Command{
			run.New(r.LogE, gf, r.Stderr),
			list.New(r.LogE, gf, r.Stdout),
			initcmd.New(r.LogE, gf),
			token.New(r.LogE),
			r.newVersionCommand(),
		},
	}
	return cmd.Run(ctx, args) //nolint:wrapcheck
}

// Package token implements the 'hashpin token' command for GitHub token
// management. Tokens are stored in the operating system's native credential
// store, which is a safer place than shell configuration files.
package token

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashpin/hashpin/pkg/github"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

func New(logE *logrus.Entry) *cli.Command {
	r := &runner{
		logE: logE,
	}
	return r.Command()
}

type runner struct {
	logE *logrus.Entry
}

func (r *runner) Command() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "Manage the GitHub Access token in the OS keyring",
		Commands: []*cli.Command{
			{
				Name:   "set",
				Usage:  "Store a GitHub Access token in the OS keyring. The token is read from stdin",
				Action: r.set,
			},
			{
				Name:   "remove",
				Usage:  "Remove the GitHub Access token from the OS keyring",
				Action: r.remove,
			},
		},
	}
}

func (r *runner) set(_ context.Context, _ *cli.Command) error {
	fmt.Fprint(os.Stderr, "Enter a GitHub Access token: ")
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("read a token from stdin: %w", err)
		}
		return nil
	}
	token := strings.TrimSpace(scanner.Text())
	if token == "" {
		return nil
	}
	if err := github.NewTokenManager().SetToken(token); err != nil {
		return err //nolint:wrapcheck
	}
	r.logE.Info("stored the GitHub Access token in the keyring")
	return nil
}

func (r *runner) remove(_ context.Context, _ *cli.Command) error {
	if err := github.NewTokenManager().RemoveToken(); err != nil {
		return err //nolint:wrapcheck
	}
	r.logE.Info("removed the GitHub Access token from the keyring")
	return nil
}

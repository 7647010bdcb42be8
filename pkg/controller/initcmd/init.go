// Package initcmd implements the 'hashpin init' command, which scaffolds a
// configuration file.
package initcmd

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
)

const (
	templateConfig = `# hashpin - https://github.com/hashpin/hashpin
version: 1
# files:
#   - pattern: .github/workflows/*.yaml
#   - pattern: "*/action.yaml"

ignore_actions:
# - name: actions/.*
#   ref: main
# - name: acme/tools/\.github/workflows/deploy\.yml
`
	filePermission os.FileMode = 0o644
)

type Controller struct {
	fs afero.Fs
}

func New(fs afero.Fs) *Controller {
	return &Controller{fs: fs}
}

func (c *Controller) Init(configFilePath string) error {
	if configFilePath == "" {
		configFilePath = ".hashpin.yaml"
	}
	f, err := afero.Exists(c.fs, configFilePath)
	if err != nil {
		return fmt.Errorf("check if a configuration file exists: %w", err)
	}
	if f {
		return nil
	}
	if err := afero.WriteFile(c.fs, configFilePath, []byte(templateConfig), filePermission); err != nil {
		return fmt.Errorf("create a configuration file: %w", err)
	}
	return nil
}

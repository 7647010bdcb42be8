package run

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

var errNoJobs = errors.New("the file has no jobs or runs section")

// validateWorkflow is a coarse structural gate, not schema validation.
// It distinguishes a file that is not parseable as YAML from one that parses
// but has no jobs section (or runs section, for composite action files).
// It runs before any network activity.
func validateWorkflow(content []byte) error {
	var doc map[string]any
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return fmt.Errorf("parse the file as YAML: %w", err)
	}
	if _, ok := doc["jobs"]; ok {
		return nil
	}
	if _, ok := doc["runs"]; ok {
		return nil
	}
	return errNoJobs
}

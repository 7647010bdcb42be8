package run

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

type colorFunc func(a ...interface{}) string

// Logger writes human readable change output to stderr, keeping stdout free
// for machine readable output.
type Logger struct {
	stderr io.Writer
	red    colorFunc
	green  colorFunc
}

func NewLogger(stderr io.Writer) *Logger {
	return &Logger{
		stderr: stderr,
		red:    color.New(color.FgRed).SprintFunc(),
		green:  color.New(color.FgGreen).SprintFunc(),
	}
}

// Diff prints one rewritten line as a colored unified-diff style pair.
func (l *Logger) Diff(file string, lineNumber int, oldLine, newLine string) {
	fmt.Fprintf(l.stderr, `%s:%d
%s
%s
`, file, lineNumber, l.red("- "+oldLine), l.green("+ "+newLine))
}

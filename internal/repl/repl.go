// Package repl is an interactive shell over the checker: it loads
// already-lowered core modules from JSON files and reports the scheme
// assigned to each top-level binding, or the diagnostic raised.
package repl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/corelang/corecheck/internal/core"
	"github.com/corelang/corecheck/internal/diagnostic"
	"github.com/corelang/corecheck/internal/types"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
	dim   = color.New(color.Faint).SprintFunc()
)

// REPL is a readline loop that checks core modules on demand.
type REPL struct {
	render *diagnostic.Renderer
}

// New creates a REPL whose diagnostics are colored when useColor is set;
// the package-level prompt and output colors above do not read useColor.
func New(useColor bool) *REPL {
	return &REPL{render: diagnostic.NewRenderer(useColor)}
}

const historyFileName = ".corecheck_history"

// Start runs the read-eval-print loop, reading lines from the terminal via
// liner and writing results to out, until EOF or :quit.
func (r *REPL) Start(out io.Writer) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetMultiLineMode(false)

	historyPath := filepath.Join(os.TempDir(), historyFileName)
	if f, err := os.Open(historyPath); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(historyPath); err == nil {
			_, _ = line.WriteHistory(f)
			f.Close()
		}
	}()

	line.SetCompleter(func(input string) []string {
		var out []string
		for _, cmd := range []string{":help", ":load", ":quit"} {
			if strings.HasPrefix(cmd, input) {
				out = append(out, cmd)
			}
		}
		return out
	})

	fmt.Fprintf(out, "%s\n", bold("corecheck"))
	fmt.Fprintln(out, dim("Type :load <file>.json to check a module, :help for commands, :quit to exit"))

	for {
		input, err := line.Prompt("corecheck> ")
		if err == io.EOF {
			fmt.Fprintln(out, green("goodbye"))
			return
		}
		if err != nil {
			fmt.Fprintln(out, err)
			return
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)
		r.dispatch(input, out)
	}
}

func (r *REPL) dispatch(input string, out io.Writer) {
	switch {
	case input == ":quit":
		fmt.Fprintln(out, green("goodbye"))
		os.Exit(0)
	case input == ":help":
		fmt.Fprintln(out, ":load <file>.json   check a core module file")
		fmt.Fprintln(out, ":quit               exit")
	case strings.HasPrefix(input, ":load "):
		path := strings.TrimSpace(strings.TrimPrefix(input, ":load "))
		r.load(path, out)
	default:
		fmt.Fprintln(out, dim("unrecognized command, type :help"))
	}
}

func (r *REPL) load(path string, out io.Writer) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(out, r.render.RenderError(err))
		return
	}
	mod, err := core.DecodeModule(data)
	if err != nil {
		fmt.Fprintln(out, r.render.RenderError(err))
		return
	}
	bindings, err := types.CheckModule(mod)
	if err != nil {
		fmt.Fprintln(out, r.render.Render(err))
		return
	}
	for _, b := range bindings {
		fmt.Fprintf(out, "%s : %s\n", cyan(b.Name), b.Scheme.String())
	}
}

// Package diagnostic renders a checker failure for a terminal. It is
// explicitly not a surface-syntax renderer: it never prints a source
// snippet or a caret under an offending token, since the checker
// operates on an already-lowered core tree with no source text attached
// beyond a position. It prints the code, location, message, and hint.
package diagnostic

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/corelang/corecheck/internal/types"
)

// Renderer formats a *types.Diagnostic (or any error) for output,
// optionally colorizing it.
type Renderer struct {
	useColor bool
}

// NewRenderer creates a Renderer; useColor is typically wired from
// config.Config.Color or an isatty check at the call site.
func NewRenderer(useColor bool) *Renderer {
	return &Renderer{useColor: useColor}
}

// Render formats err, specializing on *types.Diagnostic to show its
// code, location, message, and hint; any other error is printed plain.
func (r *Renderer) Render(err error) string {
	d, ok := err.(*types.Diagnostic)
	if !ok {
		return r.RenderError(err)
	}

	red := plain
	yellow := plain
	dim := plain
	bold := plain
	if r.useColor {
		redC := color.New(color.FgRed, color.Bold)
		yellowC := color.New(color.FgYellow)
		dimC := color.New(color.Faint)
		boldC := color.New(color.Bold)
		for _, c := range []*color.Color{redC, yellowC, dimC, boldC} {
			c.EnableColor()
		}
		red, yellow, dim, bold = redC.SprintFunc(), yellowC.SprintFunc(), dimC.SprintFunc(), boldC.SprintFunc()
	}

	out := fmt.Sprintf("%s %s: %s", red("error["+string(d.Code)+"]"), bold(d.Location.String()), d.Message)
	if d.Hint != "" {
		out += "\n  " + yellow("hint: ") + dim(d.Hint)
	}
	return out
}

// RenderError formats a plain (non-Diagnostic) error, such as a file
// read or JSON decode failure upstream of the checker.
func (r *Renderer) RenderError(err error) string {
	if r.useColor {
		return color.New(color.FgRed).Sprint("error: ") + err.Error()
	}
	return "error: " + err.Error()
}

func plain(args ...interface{}) string {
	return fmt.Sprint(args...)
}

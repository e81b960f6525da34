// Command corecheck type-checks already-lowered core module JSON files.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/corelang/corecheck/internal/config"
	"github.com/corelang/corecheck/internal/core"
	"github.com/corelang/corecheck/internal/diagnostic"
	"github.com/corelang/corecheck/internal/repl"
	"github.com/corelang/corecheck/internal/types"
)

// Version info, set by ldflags during build.
var (
	Version = "dev"
	Commit  = "unknown"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
)

func main() {
	var (
		versionFlag = flag.Bool("version", false, "print version information")
		helpFlag    = flag.Bool("help", false, "show help")
		configFlag  = flag.String("config", "", "path to a corecheck.yaml config file")
	)
	flag.Parse()

	if *versionFlag {
		fmt.Printf("%s %s (%s)\n", bold("corecheck"), Version, Commit)
		return
	}
	if *helpFlag || flag.NArg() == 0 {
		printHelp()
		return
	}

	cfg := config.Default()
	if *configFlag != "" {
		loaded, err := config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	render := diagnostic.NewRenderer(cfg.Color)

	switch flag.Arg(0) {
	case "check":
		if flag.NArg() < 2 {
			fmt.Fprintln(os.Stderr, "usage: corecheck check <file>.json")
			os.Exit(1)
		}
		checkFile(flag.Arg(1), render)

	case "repl":
		repl.New(cfg.Color).Start(os.Stdout)

	default:
		printHelp()
		os.Exit(1)
	}
}

func checkFile(path string, render *diagnostic.Renderer) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, render.RenderError(err))
		os.Exit(1)
	}

	mod, err := core.DecodeModule(data)
	if err != nil {
		fmt.Fprintln(os.Stderr, render.RenderError(err))
		os.Exit(1)
	}

	bindings, err := types.CheckModule(mod)
	if err != nil {
		fmt.Fprintln(os.Stderr, render.Render(err))
		os.Exit(1)
	}

	for _, b := range bindings {
		fmt.Printf("%s : %s\n", cyan(b.Name), b.Scheme.String())
	}
	fmt.Println(green("ok"))
}

func printHelp() {
	fmt.Println(bold("corecheck") + " - type-check a lowered core module")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  corecheck check <file>.json   check a core module file")
	fmt.Println("  corecheck repl                start an interactive session")
	fmt.Println()
	fmt.Println("Flags:")
	flag.PrintDefaults()
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/funvibe/tjcore/internal/analyzer"
	"github.com/funvibe/tjcore/internal/config"
	"github.com/funvibe/tjcore/internal/diagnostics"
	"github.com/funvibe/tjcore/internal/evaluator"
	"github.com/funvibe/tjcore/internal/gc"
	"github.com/funvibe/tjcore/internal/pipeline"
	"github.com/funvibe/tjcore/internal/typesystem"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const usage = `Usage: tjcore [-debug] [-config FILE] <command> [args]

Commands:
  check UNIT...    analyze unit files and report diagnostics
  type EXPR...     parse type expressions and show their structure
  runs             list persisted analysis runs
  show RUN-ID      render the diagnostics of a persisted run
  heap [N]         exercise the collector with N frames of bindings
`

// cli holds what every command needs.
type cli struct {
	cfg    *config.Config
	stdout io.Writer
	stderr io.Writer
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r)
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			os.Exit(1)
		}
	}()
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	configPath := ""
	debugMode := false
	for len(args) > 0 && strings.HasPrefix(args[0], "-") {
		switch args[0] {
		case "-debug", "--debug":
			debugMode = true
		case "-config", "--config":
			if len(args) < 2 {
				fmt.Fprintln(stderr, "-config needs a file")
				return 2
			}
			configPath = args[1]
			args = args[1:]
		case "-help", "--help", "-h":
			fmt.Fprint(stdout, usage)
			return 0
		default:
			fmt.Fprintf(stderr, "unknown flag %s\n%s", args[0], usage)
			return 2
		}
		args = args[1:]
	}
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return 1
	}
	if debugMode || cfg.Analysis.Debug {
		config.SetDebug(true)
	}
	c := &cli{cfg: cfg, stdout: stdout, stderr: stderr}

	switch args[0] {
	case "check":
		return c.handleCheck(args[1:])
	case "type":
		return c.handleType(args[1:])
	case "runs":
		return c.handleRuns()
	case "show":
		return c.handleShow(args[1:])
	case "heap":
		return c.handleHeap(args[1:])
	case "help":
		fmt.Fprint(stdout, usage)
		return 0
	}
	fmt.Fprintf(stderr, "unknown command %q\n%s", args[0], usage)
	return 2
}

// loadConfig reads path, or tjcore.yaml found upward from the working
// directory, or falls back to the defaults.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		found, err := config.FindConfig(".")
		if err != nil {
			return nil, err
		}
		if found == "" {
			return config.Default(), nil
		}
		path = found
	}
	config.Debugf("using config %s", path)
	return config.LoadConfig(path)
}

func (c *cli) openStore() (*diagnostics.Store, error) {
	if c.cfg.Diagnostics.Store == "" {
		return nil, nil
	}
	return diagnostics.OpenStore(c.cfg.Diagnostics.Store)
}

func (c *cli) handleCheck(paths []string) int {
	if len(paths) == 0 {
		fmt.Fprintln(c.stderr, "check: no unit files given")
		return 2
	}
	store, err := c.openStore()
	if err != nil {
		fmt.Fprintf(c.stderr, "Error: %s\n", err)
		return 1
	}
	if store != nil {
		defer store.Close()
	}

	failed := false
	var units []*pipeline.Unit
	var names []string
	for _, path := range paths {
		unit, err := pipeline.LoadUnit(path)
		if err != nil {
			fmt.Fprintf(c.stderr, "Error: %s\n", err)
			failed = true
			continue
		}
		units = append(units, unit)
		names = append(names, path)
	}

	// Units are independent; analyze them concurrently and report in
	// command-line order.
	results := make([]*pipeline.PipelineContext, len(units))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, unit := range units {
		i, unit := i, unit
		g.Go(func() error {
			p := pipeline.New(&pipeline.UnitProcessor{Unit: unit}).
				Then(analyzer.Processors()...).
				Then(&pipeline.PersistProcessor{Store: store})
			results[i] = p.Run(pipeline.NewPipelineContext(unit.Label, c.cfg))
			return nil
		})
	}
	g.Wait()

	renderer := diagnostics.NewRenderer(c.stdout, c.cfg.Diagnostics.Color)
	for i, ctx := range results {
		renderer.Files[diagnostics.FileID(units[i].File)] = names[i]
		if err := renderer.RenderAll(ctx.Diagnostics); err != nil {
			fmt.Fprintf(c.stderr, "Error: %s\n", err)
			return 1
		}
		for _, err := range ctx.Errors {
			fmt.Fprintf(c.stderr, "- %s\n", err)
		}
		if ctx.RunID != uuid.Nil {
			fmt.Fprintf(c.stdout, "saved run %s\n", ctx.RunID)
		}
		if ctx.Failed() {
			failed = true
		}
	}
	if failed {
		return 1
	}
	return 0
}

func (c *cli) handleType(exprs []string) int {
	status := 0
	for _, src := range exprs {
		t, err := typesystem.Parse(src)
		if err != nil {
			fmt.Fprintf(c.stderr, "%s\n", err)
			status = 1
			continue
		}
		vars := typesystem.FreeTypeVariables(t)
		names := make([]string, len(vars))
		for i, v := range vars {
			names[i] = v.Name
		}
		fmt.Fprintf(c.stdout, "%s :: %s", t, t.Kind())
		if len(names) > 0 {
			fmt.Fprintf(c.stdout, " forall %s", strings.Join(names, " "))
		}
		fmt.Fprintf(c.stdout, " #%08x\n", typesystem.Hash(t))
	}
	return status
}

func (c *cli) handleRuns() int {
	store, err := c.openStore()
	if err != nil {
		fmt.Fprintf(c.stderr, "Error: %s\n", err)
		return 1
	}
	if store == nil {
		fmt.Fprintln(c.stderr, "runs: diagnostics.store is not configured")
		return 1
	}
	defer store.Close()

	runs, err := store.Runs(context.Background())
	if err != nil {
		fmt.Fprintf(c.stderr, "Error: %s\n", err)
		return 1
	}
	for _, r := range runs {
		fmt.Fprintf(c.stdout, "%s  %-20s %4d diagnostic(s)  %s\n", r.ID, r.Label, r.Count, humanize.Time(r.CreatedAt))
	}
	return 0
}

func (c *cli) handleShow(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(c.stderr, "show: expected one run id")
		return 2
	}
	id, err := uuid.Parse(args[0])
	if err != nil {
		fmt.Fprintf(c.stderr, "show: %s\n", err)
		return 2
	}
	store, err := c.openStore()
	if err != nil {
		fmt.Fprintf(c.stderr, "Error: %s\n", err)
		return 1
	}
	if store == nil {
		fmt.Fprintln(c.stderr, "show: diagnostics.store is not configured")
		return 1
	}
	defer store.Close()

	diags, err := store.LoadRun(context.Background(), id)
	if err != nil {
		fmt.Fprintf(c.stderr, "Error: %s\n", err)
		return 1
	}
	if err := diagnostics.NewRenderer(c.stdout, c.cfg.Diagnostics.Color).RenderAll(diags); err != nil {
		fmt.Fprintf(c.stderr, "Error: %s\n", err)
		return 1
	}
	return 0
}

// handleHeap opens n nested frames, each binding a vector that references
// the previous frame's vector, closes the inner half and collects through
// the gc builtins.
func (c *cli) handleHeap(args []string) int {
	n := 100
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 1 {
			fmt.Fprintf(c.stderr, "heap: invalid frame count %q\n", args[0])
			return 2
		}
		n = v
	}

	heap := gc.New(gc.WithConfig(c.cfg.GC))
	builtins := evaluator.NewBuiltins()
	evaluator.RegisterGCBuiltins(builtins, heap)

	frames := []*evaluator.Frame{evaluator.NewFrame(heap)}
	prev := frames[0].Bind("seed", &evaluator.Integer{Value: 0})
	for i := 1; i < n; i++ {
		frame := evaluator.NewEnclosedFrame(frames[len(frames)-1])
		prev = frame.Bind("link", &evaluator.Vec{Elements: []evaluator.Value{
			&evaluator.Integer{Value: int64(i)},
			&evaluator.Reference{ID: prev},
		}})
		frames = append(frames, frame)
	}
	// Close from the innermost frame outward; the global frame stays open.
	f := frames[len(frames)-1]
	for closed := 0; closed < len(frames)-len(frames)/2 && f.Outer() != nil; closed++ {
		f.Close()
		f = f.Outer()
	}

	for _, name := range []string{"gc.count", "gc.collect", "gc.stats"} {
		v, err := builtins.Call(name)
		if err != nil {
			fmt.Fprintf(c.stderr, "Error: %s\n", err)
			return 1
		}
		fmt.Fprintf(c.stdout, "%s => %s\n", name, v.Inspect())
	}
	if config.DebugEnabled() {
		heap.Dump(c.stderr)
	}
	return 0
}

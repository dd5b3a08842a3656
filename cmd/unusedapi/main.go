package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/stephengroombbc/unusedapi/internal/analyzer"
	"github.com/stephengroombbc/unusedapi/internal/baseline"
	"github.com/stephengroombbc/unusedapi/internal/index"
	"github.com/stephengroombbc/unusedapi/internal/output"
	"github.com/stephengroombbc/unusedapi/internal/progress"
	"github.com/stephengroombbc/unusedapi/pkg/config"
	"github.com/stephengroombbc/unusedapi/pkg/models"
	"github.com/stephengroombbc/unusedapi/pkg/project"
	"github.com/urfave/cli/v2"
)

var (
	version = "dev"
	commit  = "none"    //nolint:unused // set via ldflags at build time
	date    = "unknown" //nolint:unused // set via ldflags at build time
)

func main() {
	app := &cli.App{
		Name:    "unusedapi",
		Usage:   "Detect public API never used outside its own module",
		Version: version,
		Description: `Unusedapi reads a compile commands database and a semantic index store,
collects every publicly visible declaration and every symbol reference per
compilation unit, and reports declarations no other module ever touches.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (TOML, YAML, or JSON)",
				EnvVars: []string{"UNUSEDAPI_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, json, markdown",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write output to file",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Report units that degrade to empty results",
			},
		},
		Commands: []*cli.Command{
			analyzeCmd(),
			baselineCmd(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

// getCompileCommandsPath returns the database path from positional args,
// defaulting to compile_commands.json in the working directory.
func getCompileCommandsPath(c *cli.Context) string {
	if c.Args().Len() > 0 {
		return c.Args().First()
	}
	return "compile_commands.json"
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		return config.Load(path)
	}
	return config.LoadOrDefault()
}

func analyzeCmd() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Aliases:   []string{"run"},
		Usage:     "Report publicly visible declarations unused outside their module",
		ArgsUsage: "[compile_commands.json]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "index-store",
				Aliases:  []string{"i"},
				Usage:    "Path to the semantic index store",
				Required: true,
			},
			&cli.StringSliceFlag{
				Name:  "exclude-module",
				Usage: "Module names to skip when reporting",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Collection worker count (0 = 2x CPU count)",
			},
			&cli.StringFlag{
				Name:  "baseline",
				Usage: "Suppress violations recorded in this baseline file",
			},
		},
		Action: runAnalyzeCmd,
	}
}

func runAnalyzeCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	severity, err := cfg.Severity()
	if err != nil {
		return err
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	analysis, err := runAnalysis(c, cfg, formatter)
	if err != nil {
		return err
	}

	baselinePath := c.String("baseline")
	if baselinePath == "" {
		baselinePath = cfg.Baseline.Path
	}
	if baselinePath != "" {
		b, err := baseline.Load(baselinePath)
		if err != nil {
			return err
		}
		filtered := b.Filter(analysis.Violations)
		analysis.Violations = filtered
		analysis.Summary.TotalViolations = len(filtered)
		analysis.Summary.ByModule = make(map[string]int)
		for _, v := range filtered {
			analysis.Summary.ByModule[v.Module]++
		}
	}

	if err := formatter.Output(output.NewViolationReport(analysis, severity)); err != nil {
		return err
	}

	if severity == models.SeverityError && len(analysis.Violations) > 0 {
		formatter.Error("%d unused public declarations", len(analysis.Violations))
		return cli.Exit("", 1)
	}
	return nil
}

func baselineCmd() *cli.Command {
	return &cli.Command{
		Name:      "baseline",
		Usage:     "Record current violations so later runs report only new ones",
		ArgsUsage: "[compile_commands.json]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "index-store",
				Aliases:  []string{"i"},
				Usage:    "Path to the semantic index store",
				Required: true,
			},
			&cli.StringSliceFlag{
				Name:  "exclude-module",
				Usage: "Module names to skip when recording",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Collection worker count (0 = 2x CPU count)",
			},
			&cli.StringFlag{
				Name:  "write",
				Usage: "Baseline file to write",
			},
		},
		Action: runBaselineCmd,
	}
}

func runBaselineCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	path := c.String("write")
	if path == "" {
		path = cfg.Baseline.Path
	}
	if path == "" {
		return fmt.Errorf("no baseline path: pass --write or set baseline.path in config")
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	analysis, err := runAnalysis(c, cfg, formatter)
	if err != nil {
		return err
	}

	if err := baseline.New(analysis.Violations).Write(path); err != nil {
		return err
	}
	formatter.Success("Recorded %d violations to %s", len(analysis.Violations), path)
	return nil
}

// newFormatter builds the output formatter from flags and config. The format
// flag wins over the config value; either is fatal when unrecognized.
func newFormatter(c *cli.Context, cfg *config.Config) (*output.Formatter, error) {
	name := c.String("format")
	if name == "" {
		name = cfg.Output.Format
	}
	format, err := output.ParseFormat(name)
	if err != nil {
		return nil, err
	}
	colored := cfg.Output.Color && !c.Bool("no-color")
	return output.NewFormatter(format, c.String("output"), colored)
}

// runAnalysis loads the compilation database, wires the analyzer to the index
// store, and runs collection and resolution with a progress bar.
func runAnalysis(c *cli.Context, cfg *config.Config, formatter *output.Formatter) (*models.UnusedAPIAnalysis, error) {
	units, err := project.LoadCompileCommands(getCompileCommandsPath(c))
	if err != nil {
		return nil, err
	}
	if len(units) == 0 {
		formatter.Warning("No compilation units found")
	}

	adapter, err := index.NewFixtureAdapter(c.String("index-store"))
	if err != nil {
		return nil, err
	}

	workers := cfg.Analysis.Workers
	if c.IsSet("workers") {
		workers = c.Int("workers")
	}
	excluded := append(cfg.Analysis.ExcludedModules, c.StringSlice("exclude-module")...)

	a := analyzer.New(adapter).
		WithWorkers(workers).
		WithExcludedModules(excluded)

	if cfg.Output.Verbose || c.Bool("verbose") {
		a.WithWarnings(func(path, reason string) {
			formatter.Warning("%s: %s", path, reason)
		})
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	tracker := progress.NewTracker("Analyzing units...", len(units))
	analysis, err := a.AnalyzeProjectWithProgress(ctx, units, tracker.Tick)
	if err != nil {
		tracker.FinishError(err)
		return nil, fmt.Errorf("analysis failed: %w", err)
	}
	tracker.FinishSuccess()
	return analysis, nil
}

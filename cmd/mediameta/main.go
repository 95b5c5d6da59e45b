// Package main provides the CLI entry point for mediameta.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/five82/mediameta/internal/config"
	"github.com/five82/mediameta/internal/discovery"
	coreerrors "github.com/five82/mediameta/internal/errors"
	"github.com/five82/mediameta/internal/ffprobe"
	"github.com/five82/mediameta/internal/logging"
	"github.com/five82/mediameta/internal/metadata"
	"github.com/five82/mediameta/internal/processing"
	"github.com/five82/mediameta/internal/reporter"
	"github.com/five82/mediameta/internal/util"
)

const appName = "mediameta"

// appVersion is overridden at build time with -ldflags "-X main.appVersion=...".
var appVersion = "0.1.0"

// errFilesFailed signals that at least one file was reported as an error.
var errFilesFailed = errors.New("one or more files could not be inspected")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errFilesFailed) && !coreerrors.IsCancelled(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// cliArgs holds the parsed command-line flags.
type cliArgs struct {
	configPath string
	logFile    string
	verbose    bool

	checksum   bool
	tags       bool
	allTags    bool
	scan       bool
	format     string
	ffprobe    string
	jobs       int
	recursive  bool
	noProgress bool
	noColor    bool
}

func newRootCmd() *cobra.Command {
	return newRootCmdWithArgs(&cliArgs{})
}

func newRootCmdWithArgs(a *cliArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:   appName + " [flags] FILE...",
		Short: "Show a normalized summary of media files",
		Long: `Show a normalized summary of media files: container format, duration,
bit rate, streams, scan type, and optionally tags and a SHA-256 digest.

Settings are read from $MEDIAMETA_CONFIG or <user config dir>/mediameta/config.yaml
when present; flags override the file.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd.Flags(), a)
			if err != nil {
				return err
			}
			return runInspect(cfg, a, args)
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&a.checksum, "checksum", "c", false, "Include a SHA-256 digest of each file")
	f.BoolVarP(&a.tags, "tags", "t", false, "Include container and stream tags, without housekeeping tags")
	f.BoolVarP(&a.allTags, "all-tags", "A", false, "Include every container and stream tag (implies --tags)")
	f.BoolVar(&a.scan, "scan", false, "Decode frames when the scan type is not stated by the stream")
	f.StringVar(&a.format, "format", string(config.FormatText), "Output format: text, json, yaml")
	f.StringVar(&a.configPath, "config", "", "Config file (default $MEDIAMETA_CONFIG or the user config dir)")
	f.StringVar(&a.ffprobe, "ffprobe", config.DefaultFFprobePath, "ffprobe executable")
	f.IntVarP(&a.jobs, "jobs", "j", config.DefaultJobs, fmt.Sprintf("Files to inspect at once (1-%d)", config.MaxJobs))
	f.BoolVarP(&a.recursive, "recursive", "r", false, "Inspect media files found in directories")
	f.BoolVar(&a.noProgress, "no-progress", false, "Disable the checksum progress bar")
	f.BoolVar(&a.noColor, "no-color", false, "Disable colored output")
	f.BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose output for troubleshooting")
	f.StringVar(&a.logFile, "log-file", "", "Write debug logs to this file")

	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			info := util.GetSystemInfo()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s version %s\n", appName, appVersion)
			fmt.Fprintf(out, "%s/%s, %d logical cores\n", info.OS, info.Arch, info.NumCPU)
		},
	}
}

// resolveConfig loads the config file and applies the flags that were set on
// the command line.
func resolveConfig(flags *pflag.FlagSet, a *cliArgs) (*config.Config, error) {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return nil, err
	}

	if flags.Changed("checksum") {
		cfg.IncludeChecksum = a.checksum
	}
	if flags.Changed("tags") {
		cfg.IncludeTags = a.tags
	}
	if flags.Changed("all-tags") {
		cfg.IncludeAllTags = a.allTags
	}
	if flags.Changed("scan") {
		cfg.DecodeFrames = a.scan
	}
	if flags.Changed("format") {
		format, err := config.ParseFormat(a.format)
		if err != nil {
			return nil, err
		}
		cfg.Format = format
	}
	if flags.Changed("ffprobe") {
		cfg.FFprobePath = a.ffprobe
	}
	if flags.Changed("jobs") {
		cfg.Jobs = a.jobs
	}
	if flags.Changed("recursive") {
		cfg.Recursive = a.recursive
	}
	if a.noProgress {
		cfg.Progress = false
	}
	if a.noColor {
		cfg.NoColor = true
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func runInspect(cfg *config.Config, a *cliArgs, inputs []string) error {
	if cfg.NoColor {
		color.NoColor = true
	}

	if a.verbose {
		logging.Init(logging.LevelDebug, os.Stderr)
	}

	terminal := reporter.NewTerminalReporter(a.verbose)
	rep := reporter.NewCompositeReporter(newFormatReporter(cfg.Format), terminal)

	if a.logFile != "" {
		logger, err := logging.Setup(a.logFile, a.verbose)
		if err != nil {
			return fmt.Errorf("failed to setup logging: %w", err)
		}
		defer func() { _ = logger.Close() }()
		terminal.Verbose(fmt.Sprintf("Writing log to %s", logger.FilePath()))
	}

	logging.Debug("Configuration",
		"format", cfg.Format,
		"checksum", cfg.IncludeChecksum,
		"tags", cfg.IncludeTags,
		"all_tags", cfg.IncludeAllTags,
		"decode_frames", cfg.DecodeFrames,
		"ffprobe", cfg.FFprobePath,
		"jobs", cfg.Jobs,
		"recursive", cfg.Recursive,
	)

	found := discovery.ExpandPaths(inputs, cfg.Recursive, discoveryLogger{})
	for _, err := range found.Errors {
		terminal.Error(reporter.ReporterError{Message: err.Error()})
	}
	if found.SkippedCount > 0 {
		terminal.Verbose(fmt.Sprintf("Skipped %d non-media file(s)", found.SkippedCount))
	}

	builder := metadata.NewBuilder(ffprobe.NewOpener(cfg.FFprobePath))
	if cfg.Progress && reporter.IsTerminal(os.Stderr) {
		builder.WithProgress(reporter.ChecksumProgress(os.Stderr))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := processing.InspectFiles(ctx, builder, found.Files, processing.Options{
		Inspect: cfg.InspectOptions(),
		Jobs:    cfg.Jobs,
	}, rep)
	if err != nil {
		return err
	}

	if processing.Failed(results) > 0 || len(found.Errors) > 0 {
		return errFilesFailed
	}
	return nil
}

func newFormatReporter(format config.Format) reporter.Reporter {
	switch format {
	case config.FormatJSON:
		return reporter.NewJSONReporter()
	case config.FormatYAML:
		return reporter.NewYAMLReporter()
	default:
		return reporter.NewTextReporter()
	}
}

// discoveryLogger forwards discovery messages to the global logger.
type discoveryLogger struct{}

func (discoveryLogger) Info(format string, args ...any) {
	logging.Info(fmt.Sprintf(format, args...))
}

func (discoveryLogger) Debug(format string, args ...any) {
	logging.Debug(fmt.Sprintf(format, args...))
}

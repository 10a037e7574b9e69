// Package main provides the CLI entrypoint for record-mapper.
//
// record-mapper maps arrays of source records into result records:
//   - map: read JSON or YAML documents, clamp and rename per a profile
//   - check: validate profile files
//   - init-profile: write a profile with every default spelled out
//   - bench: compare the mapping strategies
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"go.uber.org/zap"

	"record-mapper/internal/bench"
	"record-mapper/internal/config"
	"record-mapper/internal/logging"
	"record-mapper/internal/match"
	"record-mapper/internal/pipeline"
	"record-mapper/internal/profile"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

var (
	errUsage = errors.New("usage")
	commands = []string{"map", "check", "init-profile", "bench", "help"}
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], config.Load(), os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// env bundles the process streams and configuration for a command.
type env struct {
	cfg    config.Config
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *zap.Logger
}

func run(ctx context.Context, args []string, cfg config.Config, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return exitUsage
	}

	var logger *zap.Logger
	if cfg.Log.File != "" {
		logger = logging.New(cfg.Log)
	} else {
		logger = logging.NewWithWriter(cfg.Log, stderr)
	}
	defer func() { _ = logger.Sync() }()

	e := &env{cfg: cfg, stdin: stdin, stdout: stdout, stderr: stderr, logger: logger}

	var err error

	switch args[0] {
	case "map":
		err = e.mapCmd(ctx, args[1:])
	case "check":
		err = e.checkCmd(args[1:])
	case "init-profile":
		err = e.initProfileCmd(args[1:])
	case "bench":
		err = e.benchCmd(ctx, args[1:])
	case "help", "-h", "-help", "--help":
		usage(stdout)
		return exitOK
	default:
		fmt.Fprintf(stderr, "unknown command %q%s\n", args[0], match.Hint(args[0], commands))
		usage(stderr)

		return exitUsage
	}

	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errUsage), errors.Is(err, flag.ErrHelp):
		return exitUsage
	default:
		logger.Error("command failed", zap.String("command", args[0]), zap.Error(err))
		return exitError
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "record-mapper - map source records into clamped result records")
	fmt.Fprintln(w, "Commands: map | check | init-profile | bench")
	fmt.Fprintln(w, "Run 'record-mapper <command> -h' for command flags")
}

func (e *env) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)

	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}

		return fmt.Errorf("%w: %w", errUsage, err)
	}

	return nil
}

func (e *env) mapCmd(ctx context.Context, args []string) error {
	fs := e.flagSet("map")
	profilePath := fs.String("profile", e.cfg.Profile, "mapping profile (YAML); defaults apply when empty")
	format := fs.String("format", "", "input format: json or yaml (default: from file extension, json for stdin)")
	outFormat := fs.String("out-format", "", "output format: json or yaml (default: input format)")
	outPath := fs.String("o", "", "output file (default: stdout)")
	workers := fs.Int("workers", 0, "override the profile's worker count")

	if err := parseFlags(fs, args); err != nil {
		return err
	}

	if fs.NArg() > 1 {
		fmt.Fprintln(e.stderr, "map takes at most one input file")
		return errUsage
	}

	inPath := fs.Arg(0)

	input, err := e.readInput(inPath)
	if err != nil {
		return err
	}

	inFormat := pipeline.FormatJSON
	if inPath != "" && inPath != "-" {
		inFormat = pipeline.FormatFromPath(inPath)
	}

	if *format != "" {
		if inFormat, err = pipeline.ParseFormat(*format); err != nil {
			return err
		}
	}

	var outFmt pipeline.Format
	if *outFormat != "" {
		if outFmt, err = pipeline.ParseFormat(*outFormat); err != nil {
			return err
		}
	}

	runner, err := pipeline.NewRunner(e.logger)
	if err != nil {
		return err
	}

	req := pipeline.Request{Input: input, InputFormat: inFormat, OutputFormat: outFmt}

	var out []byte

	switch {
	case *profilePath != "" && *workers == 0:
		out, err = runner.RunProfile(ctx, *profilePath, req)
	default:
		req.Settings, err = e.settings(*profilePath)
		if err != nil {
			return err
		}

		if *workers > 0 {
			req.Settings.Workers = *workers
		}

		out, err = runner.Run(ctx, req)
	}

	if err != nil {
		return err
	}

	return e.writeOutput(*outPath, out)
}

func (e *env) settings(path string) (profile.Settings, error) {
	if path == "" {
		return profile.DefaultSettings(), nil
	}

	p, err := profile.LoadFile(path)
	if err != nil {
		return profile.Settings{}, err
	}

	return profile.Resolve(p, path)
}

func (e *env) readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(e.stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}

		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input %s: %w", path, err)
	}

	return data, nil
}

func (e *env) writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := e.stdout.Write(data)
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output %s: %w", path, err)
	}

	return nil
}

func (e *env) checkCmd(args []string) error {
	fs := e.flagSet("check")

	if err := parseFlags(fs, args); err != nil {
		return err
	}

	paths := fs.Args()
	if len(paths) == 0 && e.cfg.Profile != "" {
		paths = []string{e.cfg.Profile}
	}

	if len(paths) == 0 {
		fmt.Fprintln(e.stderr, "check needs at least one profile file")
		return errUsage
	}

	failed := 0

	for _, path := range paths {
		p, err := profile.LoadFile(path)
		if err != nil {
			fmt.Fprintf(e.stdout, "%s: error: %v\n", path, err)
			failed++

			continue
		}

		d := profile.Validate(p, path)
		for _, diag := range d.All() {
			fmt.Fprintf(e.stdout, "%s: %s\n", diag.Severity, diag)
		}

		if d.HasErrors() {
			failed++
			continue
		}

		fmt.Fprintf(e.stdout, "%s: ok\n", path)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d profiles invalid", failed, len(paths))
	}

	return nil
}

func (e *env) initProfileCmd(args []string) error {
	fs := e.flagSet("init-profile")
	force := fs.Bool("force", false, "overwrite an existing file")

	if err := parseFlags(fs, args); err != nil {
		return err
	}

	if fs.NArg() != 1 {
		fmt.Fprintln(e.stderr, "init-profile takes exactly one file name")
		return errUsage
	}

	path := fs.Arg(0)

	if _, err := os.Stat(path); err == nil && !*force {
		return fmt.Errorf("%s already exists, use -force to overwrite", path)
	}

	if err := profile.WriteFile(profile.Default(), path); err != nil {
		return err
	}

	e.logger.Info("profile written", zap.String("path", path))

	return nil
}

func (e *env) benchCmd(ctx context.Context, args []string) error {
	def := bench.DefaultConfig()

	fs := e.flagSet("bench")
	warmup := fs.Int("warmup", def.Warmup, "warmup iterations per case")
	iterations := fs.Int("iterations", def.Iterations, "measured iterations per case")
	size := fs.Int("size", def.Size, "records per batch")
	workers := fs.Int("workers", def.Workers, "workers of the parallel case")
	seed := fs.Uint64("seed", 0, "random seed for the batch")
	cases := fs.String("cases", strings.Join(def.Cases, ","), "comma separated cases: "+strings.Join(bench.AllCases, ", "))
	asJSON := fs.Bool("json", false, "print reports as JSON")

	if err := parseFlags(fs, args); err != nil {
		return err
	}

	cfg := bench.Config{
		Warmup:     *warmup,
		Iterations: *iterations,
		Size:       *size,
		Workers:    *workers,
		Seed:       *seed,
		Cases:      splitList(*cases),
	}

	reports, err := bench.Run(ctx, cfg, e.logger)
	if err != nil {
		return err
	}

	if *asJSON {
		enc := json.NewEncoder(e.stdout)
		enc.SetIndent("", "  ")

		return enc.Encode(reports)
	}

	tw := tabwriter.NewWriter(e.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CASE\tITERATIONS\tTOTAL\tPER OP")

	for _, r := range reports {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", r.Case, r.Iterations, r.Total, r.PerOp)
	}

	return tw.Flush()
}

func splitList(s string) []string {
	var out []string

	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}

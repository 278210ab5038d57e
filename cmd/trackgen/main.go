// trackgen generates procedural running tracks and queries positions on them.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/runtrack/internal/config"
	"github.com/Faultbox/runtrack/internal/export"
	"github.com/Faultbox/runtrack/internal/logger"
	"github.com/Faultbox/runtrack/internal/runner"
	"github.com/Faultbox/runtrack/internal/track"
	"github.com/Faultbox/runtrack/internal/watch"
	"github.com/Faultbox/runtrack/pkg/math"
)

// Simulation tick for the run command.
const tickRate = 60

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "generate", "gen":
		cmdGenerate(args)
	case "place":
		cmdPlace(args)
	case "run":
		cmdRun(args)
	case "watch":
		cmdWatch(args)
	case "init":
		cmdInit(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`trackgen - procedural running track generator

Usage:
  trackgen <command> [options] [args]

Commands:
  generate                           Generate a track and write it out
  place <lateral> <longitudinal>     Print the pose at a virtual position
  run <seconds> [lateral-speed]      Simulate a runner and print where it ends
  watch                              Regenerate whenever the config file changes
  init [file]                        Write the effective config (default: user config dir)

Options:
  -config <file>   Config file (default ./trackgen.yaml, then user config dir)
  -points <n>      Number of track points
  -seed <n>        Random seed (0 = unseeded)
  -width <w>       Path width
  -out <file>      Output file (default stdout)
  -format <fmt>    Output format: obj, pb or yaml
  -debug           Enable debug logging

Examples:
  trackgen generate -points 200 -seed 42 -out track.obj
  trackgen generate -format yaml -seed 7
  trackgen place -seed 7 -- -1.5 20
  trackgen run -seed 7 10 0.5
  trackgen init -points 120 ./trackgen.yaml`)
}

// setup parses shared flags, loads config and starts logging.
// It returns the positional arguments left after the flags.
func setup(args []string) (*config.Config, []string) {
	rest, err := config.ParseFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := initLogger(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	logger.Sugar.Debugf("Config: %+v", cfg)
	return cfg, rest
}

func initLogger(cfg *config.Config) error {
	opts := logger.Options{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Console: true,
	}
	if cfg.Logging.LogFile != "" {
		opts.File = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	return logger.InitWithOptions(opts)
}

func newGenerator(cfg *config.Config) (*track.Generator, error) {
	gen := track.NewGenerator(cfg.TrackParams(), track.NewRandom(cfg.Track.Seed))
	if err := gen.SetPointCount(cfg.Track.PointCount); err != nil {
		return nil, err
	}
	return gen, nil
}

func cmdGenerate(args []string) {
	cfg, _ := setup(args)
	defer logger.Sync()

	gen, err := newGenerator(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := writeTrack(cfg.Output, gen); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// writeTrack writes the generator's current track in the configured format.
func writeTrack(out config.OutputConfig, gen *track.Generator) error {
	var w io.Writer = os.Stdout
	if out.Path != "" {
		f, err := os.Create(out.Path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	var err error
	switch out.Format {
	case config.FormatOBJ:
		err = export.WriteOBJ(w, gen.Mesh())
	case config.FormatPB:
		_, err = w.Write(export.EncodeMesh(gen.Mesh()))
	case config.FormatYAML:
		err = export.WriteWaypointsYAML(w, gen.Path())
	default:
		err = fmt.Errorf("unknown format %q", out.Format)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", out.Format, err)
	}

	mesh := gen.Mesh()
	logger.Info("Track written",
		zap.String("format", out.Format),
		zap.String("path", out.Path),
		zap.Int("waypoints", gen.Path().Len()),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Float32("length", gen.Path().Length()))
	return nil
}

func cmdPlace(args []string) {
	cfg, rest := setup(args)
	defer logger.Sync()

	if len(rest) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: trackgen place [options] <lateral> <longitudinal>")
		os.Exit(1)
	}

	lateral, err := parseFloat(rest[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: lateral: %v\n", err)
		os.Exit(1)
	}
	longitudinal, err := parseFloat(rest[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: longitudinal: %v\n", err)
		os.Exit(1)
	}

	gen, err := newGenerator(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	pl, err := gen.Place(lateral, longitudinal)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Segment:  %d\n", pl.Segment)
	fmt.Printf("Position: %.4f %.4f %.4f\n", pl.Position.X, pl.Position.Y, pl.Position.Z)
	fmt.Printf("Forward:  %.4f %.4f %.4f\n", pl.Forward.X, pl.Forward.Y, pl.Forward.Z)
	fmt.Printf("Right:    %.4f %.4f %.4f\n", pl.Right.X, pl.Right.Y, pl.Right.Z)
	fmt.Println("Model:")
	printMatrix(pl.Transform())
}

// printMatrix prints m row by row.
func printMatrix(m math.Mat4) {
	for row := 0; row < 4; row++ {
		fmt.Printf("  %9.4f %9.4f %9.4f %9.4f\n", m[row], m[4+row], m[8+row], m[12+row])
	}
}

func cmdRun(args []string) {
	cfg, rest := setup(args)
	defer logger.Sync()

	if len(rest) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: trackgen run [options] <seconds> [lateral-speed]")
		os.Exit(1)
	}

	seconds, err := parseFloat(rest[0])
	if err != nil || seconds < 0 {
		fmt.Fprintf(os.Stderr, "Error: invalid duration %q\n", rest[0])
		os.Exit(1)
	}
	var lateralSpeed float32
	if len(rest) > 1 {
		if lateralSpeed, err = parseFloat(rest[1]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: lateral speed: %v\n", err)
			os.Exit(1)
		}
	}

	gen, err := newGenerator(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	r, err := simulate(gen.Path(), cfg.Runner, seconds, lateralSpeed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	pos, fwd := r.Position(), r.Forward()
	fmt.Printf("Distance: %.4f / %.4f\n", r.Distance(), gen.Path().Length())
	fmt.Printf("Segment:  %d\n", r.Segment())
	fmt.Printf("Position: %.4f %.4f %.4f\n", pos.X, pos.Y, pos.Z)
	fmt.Printf("Forward:  %.4f %.4f %.4f\n", fwd.X, fwd.Y, fwd.Z)
	fmt.Printf("Lateral:  %.4f\n", r.Lateral())
	fmt.Printf("Running:  %v\n", r.Running())
}

// simulate advances a runner over path at a fixed tick for the given duration.
func simulate(path *track.Path, cfg runner.Config, seconds, lateralSpeed float32) (*runner.Runner, error) {
	r, err := runner.New(path, cfg)
	if err != nil {
		return nil, err
	}
	r.SetLateralSpeed(lateralSpeed)
	r.Start()

	frames := int(seconds * tickRate)
	dt := float32(1) / tickRate
	for i := 0; i < frames && r.Running(); i++ {
		r.Update(dt)
	}

	logger.Debug("Simulation finished",
		zap.Int("frames", frames),
		zap.Int("segment", r.Segment()),
		zap.Float32("distance", r.Distance()))
	return r, nil
}

func cmdWatch(args []string) {
	cfg, _ := setup(args)
	defer logger.Sync()

	path := config.ResolvedPath()
	if path == "" {
		fmt.Fprintln(os.Stderr, "Error: watch needs a config file (-config or ./trackgen.yaml)")
		os.Exit(1)
	}
	if cfg.Output.Path == "" {
		fmt.Fprintln(os.Stderr, "Error: watch needs an output file (-out or output.path)")
		os.Exit(1)
	}

	regenerate := func(cfg *config.Config) {
		gen, err := newGenerator(cfg)
		if err != nil {
			logger.Error("Generation failed", zap.Error(err))
			return
		}
		if err := writeTrack(cfg.Output, gen); err != nil {
			logger.Error("Write failed", zap.Error(err))
		}
	}

	regenerate(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Watching config", zap.String("path", path))
	err := watch.File(ctx, path, func() {
		next, err := config.LoadFile(path)
		if err != nil {
			logger.Warn("Ignoring config change", zap.Error(err))
			return
		}
		regenerate(next)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func cmdInit(args []string) {
	cfg, rest := setup(args)
	defer logger.Sync()

	var err error
	target := filepath.Join(config.ConfigDir(), config.FileName)
	if len(rest) > 0 {
		target = rest[0]
		err = cfg.SaveTo(target)
	} else {
		err = cfg.Save()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s\n", target)
}

func parseFloat(s string) (float32, error) {
	v, err := strconv.ParseFloat(s, 32)
	return float32(v), err
}

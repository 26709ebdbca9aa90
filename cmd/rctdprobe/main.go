// SPDX-License-Identifier: MIT

// Command rctdprobe builds the two-archetype reference and the four mixed
// spots, deconvolves them and reports whether the weights read as cell
// fractions or as RNA proportions.
//
// Usage:
//
//	rctdprobe [-config file.yaml] [-mode full|doublet|multi] [-workers n]
//	          [-replicates n] [-noise-seed n] [-tol x] [-png out.png]
//	          [-html out.html] [-v]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/katalvlaran/rctdprobe/deconv"
	"github.com/katalvlaran/rctdprobe/probe"
	"github.com/katalvlaran/rctdprobe/report"
)

type cliOptions struct {
	configPath string
	mode       string
	workers    int
	replicates int
	noiseSeed  uint64
	tol        float64
	pngPath    string
	htmlPath   string
	verbose    bool

	set map[string]bool // flags given explicitly
}

func main() {
	opts, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("rctdprobe: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err = run(ctx, opts, os.Stdout, os.Stderr); err != nil {
		stop()
		log.Fatalf("rctdprobe: %v", err)
	}
}

func parseFlags(fs *flag.FlagSet, args []string) (cliOptions, error) {
	var opts cliOptions
	fs.StringVar(&opts.configPath, "config", "", "YAML file with scenario and deconv overrides")
	fs.StringVar(&opts.mode, "mode", string(deconv.ModeFull), "deconvolution mode: full, doublet or multi")
	fs.IntVar(&opts.workers, "workers", 1, "maximum concurrent spot fits")
	fs.IntVar(&opts.replicates, "replicates", 2, "reference instances per cell type")
	fs.Uint64Var(&opts.noiseSeed, "noise-seed", 0, "resample spot counts from Poisson with this seed (0 = exact counts)")
	fs.Float64Var(&opts.tol, "tol", 0.05, "absolute tolerance for a hypothesis match")
	fs.StringVar(&opts.pngPath, "png", "", "write a bar chart PNG to this path")
	fs.StringVar(&opts.htmlPath, "html", "", "write an HTML chart page to this path")
	fs.BoolVar(&opts.verbose, "v", false, "log progress to stderr")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [options]\n\n", filepath.Base(os.Args[0]))
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	opts.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })

	return opts, nil
}

// resolve merges defaults, the config file and explicit flags, in that order.
func resolve(opts cliOptions, logOut io.Writer) (probe.Scenario, deconv.Config, error) {
	fc, err := loadConfig(opts.configPath)
	if err != nil {
		return probe.Scenario{}, deconv.Config{}, err
	}
	sc, cfg := fc.scenario(), fc.Deconv

	if opts.set["mode"] {
		if cfg.Mode, err = deconv.ParseMode(opts.mode); err != nil {
			return sc, cfg, err
		}
	}
	if opts.set["workers"] {
		cfg.MaxCores = opts.workers
	}
	if opts.set["replicates"] {
		sc.Replicates = opts.replicates
	}
	if opts.set["noise-seed"] {
		sc.Noise, sc.NoiseSeed = opts.noiseSeed != 0, opts.noiseSeed
	}
	if opts.set["tol"] {
		sc.Tolerance = opts.tol
	}
	if opts.verbose {
		lg := log.New(logOut, "rctdprobe: ", 0)
		sc.Logger, cfg.Logger = lg, lg
	}
	if err = cfg.Validate(); err != nil {
		return sc, cfg, err
	}

	return sc, cfg, sc.Validate()
}

func run(ctx context.Context, opts cliOptions, stdout, stderr io.Writer) error {
	sc, cfg, err := resolve(opts, stderr)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	res, err := probe.Execute(ctx, sc, deconv.New(deconv.WithConfig(cfg)))
	if err != nil {
		return err
	}
	if err = report.WriteText(stdout, res); err != nil {
		return fmt.Errorf("text report: %w", err)
	}
	if opts.pngPath != "" {
		if err = writeFile(opts.pngPath, func(w io.Writer) error { return report.WritePNG(w, res) }); err != nil {
			return fmt.Errorf("png: %w", err)
		}
	}
	if opts.htmlPath != "" {
		if err = writeFile(opts.htmlPath, func(w io.Writer) error { return report.WriteHTML(w, res) }); err != nil {
			return fmt.Errorf("html: %w", err)
		}
	}

	return report.WriteEnvironment(stdout)
}

func writeFile(path string, render func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = render(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

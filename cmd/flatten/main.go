// Command flatten converts the curves of a job file into polylines.
//
// Usage:
//
//	flatten [-o out] [-format svg|json|png] [-log-level level] job.yaml
//
// The job file, YAML or TOML, lists the shapes and the tolerance to flatten
// them with. The result is written as an SVG document with one path per
// shape, as JSON, or as a PNG rendering of the polylines.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"honnef.co/go/flatten"
	"honnef.co/go/flatten/internal/config"
	"honnef.co/go/flatten/internal/log"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "flatten:", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) (err error) {
	fs := flag.NewFlagSet("flatten", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		output   = fs.String("o", "-", "output file, - for standard output")
		format   = fs.String("format", "", "output format, overrides the job: svg, json or png")
		logLevel = fs.String("log-level", "", "log level, overrides the job: debug, info, warn or error")
	)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: flatten [flags] job.(yaml|toml)")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("expected exactly one job file")
	}

	job, err := config.Load(fs.Arg(0))
	if err != nil {
		return err
	}
	if *format != "" {
		job.Output.Format = strings.ToLower(*format)
		if err := job.Validate(); err != nil {
			return err
		}
	}
	if *logLevel != "" {
		job.Logging.Level = *logLevel
	}

	logger, closeLog := log.New(log.Options{
		Level:     job.Logging.Level,
		Format:    job.Logging.Format,
		AddSource: job.Logging.Source,
		File:      job.Logging.File,
	}, stderr)
	defer func() {
		if cerr := closeLog(); err == nil {
			err = cerr
		}
	}()
	flatten.SetLogger(logger)
	defer flatten.SetLogger(nil)

	tol, err := job.Tolerance.Tolerance()
	if err != nil {
		return err
	}
	logger.Debug("loaded job", "path", fs.Arg(0), "shapes", len(job.Shapes), "tolerance", tol.Distance)

	shapes := make([]shape, len(job.Shapes))
	total := 0
	for i, spec := range job.Shapes {
		s, err := flattenShape(spec, tol)
		if err != nil {
			return fmt.Errorf("shape %d: %w", i, err)
		}
		logger.Info("flattened shape", "index", i, "kind", spec.Kind, "points", s.points(), "radii_grown", s.radiiGrown)
		shapes[i] = s
		total += s.points()
	}

	w := stdout
	if *output != "-" {
		f, err := os.Create(*output)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}
	if err := write(w, shapes, job.Output); err != nil {
		return fmt.Errorf("write %s: %w", job.Output.Format, err)
	}
	logger.Info("wrote output", "format", job.Output.Format, "file", *output, "points", total)
	return nil
}

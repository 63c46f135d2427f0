// Package config loads flatten job files.
//
// A job lists shapes to flatten together with the tolerance and output
// settings. Jobs are YAML (.yaml, .yml) or TOML (.toml) files. Angles in job
// files are in degrees. Fields missing from a file keep their defaults, and
// environment variables override both.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"honnef.co/go/flatten"
	"honnef.co/go/flatten/svgpath"
)

// ErrInvalid is wrapped by all validation errors.
var ErrInvalid = errors.New("invalid job")

type ToleranceConfig struct {
	Distance float64 `yaml:"distance" toml:"distance"`
	// ApproximationScale, if positive, replaces Distance with 0.5/scale.
	ApproximationScale float64 `yaml:"approximation_scale" toml:"approximation_scale"`
	Angle              float64 `yaml:"angle" toml:"angle"`
	CuspLimit          float64 `yaml:"cusp_limit" toml:"cusp_limit"`
}

type OutputConfig struct {
	Format      string  `yaml:"format" toml:"format"` // "svg", "json" or "png"
	Width       int     `yaml:"width" toml:"width"`
	Height      int     `yaml:"height" toml:"height"`
	StrokeWidth float64 `yaml:"stroke_width" toml:"stroke_width"`
	Margin      float64 `yaml:"margin" toml:"margin"`
	Precision   int     `yaml:"precision" toml:"precision"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
	Source bool   `yaml:"source" toml:"source"`
	File   string `yaml:"file" toml:"file"`
}

// ShapeSpec describes a single shape. Which fields apply depends on Kind:
//
//	cubic:  points (4)
//	quad:   points (3)
//	arc:    center, radii, start, sweep, rotation, approximation, flatness
//	svgarc: points (from, to), radii, rotation, large_arc, clockwise
//	ellipse: center, radii, clockwise, scale
//	path:   d (SVG path data)
type ShapeSpec struct {
	Kind          string      `yaml:"kind" toml:"kind"`
	Points        [][]float64 `yaml:"points" toml:"points"`
	Center        []float64   `yaml:"center" toml:"center"`
	Radii         []float64   `yaml:"radii" toml:"radii"`
	Start         float64     `yaml:"start" toml:"start"`
	Sweep         float64     `yaml:"sweep" toml:"sweep"`
	Rotation      float64     `yaml:"rotation" toml:"rotation"`
	LargeArc      bool        `yaml:"large_arc" toml:"large_arc"`
	Clockwise     bool        `yaml:"clockwise" toml:"clockwise"`
	Approximation string      `yaml:"approximation" toml:"approximation"`
	Flatness      float64     `yaml:"flatness" toml:"flatness"`
	Scale         float64     `yaml:"scale" toml:"scale"`
	D             string      `yaml:"d" toml:"d"`
}

type Job struct {
	Tolerance ToleranceConfig `yaml:"tolerance" toml:"tolerance"`
	Output    OutputConfig    `yaml:"output" toml:"output"`
	Logging   LoggingConfig   `yaml:"logging" toml:"logging"`
	Shapes    []ShapeSpec     `yaml:"shapes" toml:"shapes"`
}

// Defaults returns a job without shapes.
func Defaults() Job {
	return Job{
		Tolerance: ToleranceConfig{
			Distance:  flatten.DefaultDistanceTolerance,
			Angle:     Degrees(flatten.DefaultAngleTolerance),
			CuspLimit: Degrees(flatten.DefaultCuspLimit),
		},
		Output: OutputConfig{
			Format:      "svg",
			Width:       512,
			Height:      512,
			StrokeWidth: 1,
			Margin:      8,
			Precision:   3,
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// Env var names used as overrides.
const (
	EnvDistanceTolerance = "FLATTEN_DISTANCE_TOLERANCE"
	EnvAngleTolerance    = "FLATTEN_ANGLE_TOLERANCE"
	EnvOutputFormat      = "FLATTEN_OUTPUT_FORMAT"
	EnvLogLevel          = "FLATTEN_LOG_LEVEL"
	EnvLogFormat         = "FLATTEN_LOG_FORMAT"
	EnvLogSource         = "FLATTEN_LOG_SOURCE"
	EnvLogFile           = "FLATTEN_LOG_FILE"
)

var shapeKinds = []string{"cubic", "quad", "arc", "svgarc", "ellipse", "path"}

// Load reads the job file at path, applies environment overrides and
// validates the result.
func Load(path string) (Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Job{}, err
	}
	job, err := Parse(data, strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return Job{}, fmt.Errorf("%s: %w", path, err)
	}
	return job, nil
}

// Parse decodes a job in the given format ("yaml", "yml" or "toml") on top of
// the defaults, applies environment overrides and validates the result.
func Parse(data []byte, format string) (Job, error) {
	job := Defaults()
	switch strings.ToLower(format) {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &job); err != nil {
			return Job{}, fmt.Errorf("decode YAML: %w", err)
		}
	case "toml":
		if err := toml.Unmarshal(data, &job); err != nil {
			return Job{}, fmt.Errorf("decode TOML: %w", err)
		}
	default:
		return Job{}, fmt.Errorf("unsupported job format %q", format)
	}
	job.normalize()
	if err := applyEnvOverrides(&job); err != nil {
		return Job{}, err
	}
	if err := job.Validate(); err != nil {
		return Job{}, err
	}
	return job, nil
}

func (job *Job) normalize() {
	job.Output.Format = strings.ToLower(strings.TrimSpace(job.Output.Format))
	job.Logging.Level = strings.ToLower(strings.TrimSpace(job.Logging.Level))
	job.Logging.Format = strings.ToLower(strings.TrimSpace(job.Logging.Format))
	job.Logging.File = strings.TrimSpace(job.Logging.File)
	for i := range job.Shapes {
		s := &job.Shapes[i]
		s.Kind = strings.ToLower(strings.TrimSpace(s.Kind))
		s.Approximation = strings.ToLower(strings.TrimSpace(s.Approximation))
	}
}

func applyEnvOverrides(job *Job) error {
	if v := strings.TrimSpace(os.Getenv(EnvDistanceTolerance)); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDistanceTolerance, err)
		}
		job.Tolerance.Distance = f
		job.Tolerance.ApproximationScale = 0
	}
	if v := strings.TrimSpace(os.Getenv(EnvAngleTolerance)); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvAngleTolerance, err)
		}
		job.Tolerance.Angle = f
	}
	if v := strings.TrimSpace(os.Getenv(EnvOutputFormat)); v != "" {
		job.Output.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		job.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		job.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		lv := strings.ToLower(v)
		job.Logging.Source = lv == "1" || lv == "true" || lv == "on" || lv == "yes"
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		job.Logging.File = v
	}
	return nil
}

// Validate reports the first problem with the job. All returned errors wrap
// ErrInvalid.
func (job Job) Validate() error {
	if _, err := job.Tolerance.Tolerance(); err != nil {
		return fmt.Errorf("%w: tolerance: %w", ErrInvalid, err)
	}
	if err := job.Output.validate(); err != nil {
		return err
	}
	if len(job.Shapes) == 0 {
		return fmt.Errorf("%w: no shapes", ErrInvalid)
	}
	for i, s := range job.Shapes {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("shapes[%d]: %w", i, err)
		}
	}
	return nil
}

func (out OutputConfig) validate() error {
	switch out.Format {
	case "svg", "json":
	case "png":
		if out.Width <= 0 || out.Height <= 0 {
			return fmt.Errorf("%w: output: image size %dx%d", ErrInvalid, out.Width, out.Height)
		}
		if !(out.StrokeWidth > 0) || math.IsInf(out.StrokeWidth, 0) {
			return fmt.Errorf("%w: output: stroke width %g", ErrInvalid, out.StrokeWidth)
		}
		if !(out.Margin >= 0) {
			return fmt.Errorf("%w: output: margin %g", ErrInvalid, out.Margin)
		}
	default:
		return fmt.Errorf("%w: output: unknown format %q", ErrInvalid, out.Format)
	}
	if out.Precision < 0 {
		return fmt.Errorf("%w: output: precision %d", ErrInvalid, out.Precision)
	}
	return nil
}

// Tolerance converts the configuration to radians and validates it.
func (tc ToleranceConfig) Tolerance() (flatten.Tolerance, error) {
	tol := flatten.Tolerance{
		Distance:  tc.Distance,
		Angle:     Radians(tc.Angle),
		CuspLimit: Radians(tc.CuspLimit),
	}
	if tc.ApproximationScale > 0 {
		d, err := flatten.ApproximationScaleToDistance(tc.ApproximationScale)
		if err != nil {
			return flatten.Tolerance{}, err
		}
		tol.Distance = d
	}
	if err := tol.Validate(); err != nil {
		return flatten.Tolerance{}, err
	}
	return tol, nil
}

// Validate checks that the fields required by s.Kind are present and
// well-formed.
func (s ShapeSpec) Validate() error {
	if !slices.Contains(shapeKinds, s.Kind) {
		return fmt.Errorf("%w: unknown shape kind %q", ErrInvalid, s.Kind)
	}
	wantPoints := map[string]int{"cubic": 4, "quad": 3, "svgarc": 2}[s.Kind]
	if len(s.Points) != wantPoints {
		return fmt.Errorf("%w: %s needs %d points, got %d", ErrInvalid, s.Kind, wantPoints, len(s.Points))
	}
	for i, p := range s.Points {
		if err := checkPair(fmt.Sprintf("points[%d]", i), p); err != nil {
			return err
		}
	}
	if s.Kind == "arc" || s.Kind == "ellipse" {
		if err := checkPair("center", s.Center); err != nil {
			return err
		}
	}
	if s.Kind == "arc" || s.Kind == "svgarc" || s.Kind == "ellipse" {
		if err := checkPair("radii", s.Radii); err != nil {
			return err
		}
	}
	if s.Kind == "path" {
		if strings.TrimSpace(s.D) == "" {
			return fmt.Errorf("%w: path needs d", ErrInvalid)
		}
		if _, err := svgpath.Parse(s.D); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalid, err)
		}
	}
	if s.Approximation != "" {
		if _, err := flatten.ParseApproximation(s.Approximation); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalid, err)
		}
	}
	if s.Flatness < 0 {
		return fmt.Errorf("%w: negative flatness %g", ErrInvalid, s.Flatness)
	}
	if s.Scale < 0 {
		return fmt.Errorf("%w: negative scale %g", ErrInvalid, s.Scale)
	}
	return nil
}

func checkPair(name string, v []float64) error {
	if len(v) != 2 {
		return fmt.Errorf("%w: %s needs 2 coordinates, got %d", ErrInvalid, name, len(v))
	}
	return nil
}

// Pt converts a coordinate pair to a point. v must have two elements.
func Pt(v []float64) flatten.Point { return flatten.Pt(v[0], v[1]) }

// Vec converts a coordinate pair to a vector. v must have two elements.
func Vec(v []float64) flatten.Vec2 { return flatten.Vec(v[0], v[1]) }

func Radians(deg float64) float64 { return deg * math.Pi / 180 }

func Degrees(rad float64) float64 { return rad * 180 / math.Pi }

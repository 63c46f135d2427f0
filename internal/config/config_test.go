package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"honnef.co/go/flatten"
)

const yamlJob = `
tolerance:
  distance: 0.25
  angle: 10
output:
  format: PNG
  width: 200
  height: 100
shapes:
  - kind: cubic
    points: [[0, 0], [30, 100], [70, -100], [100, 0]]
  - kind: arc
    center: [50, 50]
    radii: [40, 20]
    start: 0
    sweep: 270
    approximation: Quadratic
  - kind: svgarc
    points: [[0, 0], [100, 0]]
    radii: [50, 50]
    clockwise: true
  - kind: ellipse
    center: [0, 0]
    radii: [10, 5]
    scale: 2
  - kind: path
    d: M0 0 H10 V10 Z
`

const tomlJob = `
[tolerance]
distance = 0.1
cusp_limit = 5.0

[output]
format = "json"

[[shapes]]
kind = "quad"
points = [[0.0, 0.0], [50.0, 100.0], [100.0, 0.0]]

[[shapes]]
kind = "arc"
center = [0.0, 0.0]
radii = [10.0, 10.0]
sweep = -90.0
`

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvDistanceTolerance, EnvAngleTolerance, EnvOutputFormat, EnvLogLevel, EnvLogFormat, EnvLogSource, EnvLogFile} {
		t.Setenv(k, "")
	}
}

func TestParseYAML(t *testing.T) {
	clearEnv(t)
	job, err := Parse([]byte(yamlJob), "yaml")
	require.NoError(t, err)

	assert.Equal(t, 0.25, job.Tolerance.Distance)
	assert.Equal(t, 10.0, job.Tolerance.Angle)
	assert.Equal(t, "png", job.Output.Format)
	assert.Equal(t, 200, job.Output.Width)
	assert.Equal(t, 100, job.Output.Height)
	// Not in the file, so the default survives.
	assert.Equal(t, Defaults().Output.StrokeWidth, job.Output.StrokeWidth)
	assert.Equal(t, "info", job.Logging.Level)

	require.Len(t, job.Shapes, 5)
	assert.Equal(t, [][]float64{{0, 0}, {30, 100}, {70, -100}, {100, 0}}, job.Shapes[0].Points)
	assert.Equal(t, "quadratic", job.Shapes[1].Approximation)
	assert.Equal(t, 270.0, job.Shapes[1].Sweep)
	assert.True(t, job.Shapes[2].Clockwise)
	assert.Equal(t, 2.0, job.Shapes[3].Scale)
	assert.Equal(t, "M0 0 H10 V10 Z", job.Shapes[4].D)
}

func TestParseTOML(t *testing.T) {
	clearEnv(t)
	job, err := Parse([]byte(tomlJob), "toml")
	require.NoError(t, err)

	assert.Equal(t, 0.1, job.Tolerance.Distance)
	assert.Equal(t, 5.0, job.Tolerance.CuspLimit)
	assert.Equal(t, Defaults().Tolerance.Angle, job.Tolerance.Angle)
	assert.Equal(t, "json", job.Output.Format)
	require.Len(t, job.Shapes, 2)
	assert.Equal(t, "quad", job.Shapes[0].Kind)
	assert.Equal(t, -90.0, job.Shapes[1].Sweep)
}

func TestParseUnknownFormat(t *testing.T) {
	_, err := Parse([]byte(yamlJob), "ini")
	assert.Error(t, err)
}

func TestParseMalformed(t *testing.T) {
	clearEnv(t)
	_, err := Parse([]byte("tolerance: [1, 2"), "yaml")
	assert.Error(t, err)
	_, err = Parse([]byte("[tolerance\ndistance = 1"), "toml")
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	yml := filepath.Join(dir, "job.yml")
	require.NoError(t, os.WriteFile(yml, []byte(yamlJob), 0o600))
	job, err := Load(yml)
	require.NoError(t, err)
	assert.Len(t, job.Shapes, 5)

	tml := filepath.Join(dir, "job.toml")
	require.NoError(t, os.WriteFile(tml, []byte(tomlJob), 0o600))
	job, err = Load(tml)
	require.NoError(t, err)
	assert.Len(t, job.Shapes, 2)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	txt := filepath.Join(dir, "job.txt")
	require.NoError(t, os.WriteFile(txt, []byte(yamlJob), 0o600))
	_, err = Load(txt)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvDistanceTolerance, "0.01")
	t.Setenv(EnvAngleTolerance, " 3 ")
	t.Setenv(EnvOutputFormat, "SVG")
	t.Setenv(EnvLogLevel, "DEBUG")
	t.Setenv(EnvLogSource, "yes")
	t.Setenv(EnvLogFile, "/tmp/flatten.log")

	job, err := Parse([]byte(yamlJob), "yaml")
	require.NoError(t, err)
	assert.Equal(t, 0.01, job.Tolerance.Distance)
	assert.Equal(t, 3.0, job.Tolerance.Angle)
	assert.Equal(t, "svg", job.Output.Format)
	assert.Equal(t, "debug", job.Logging.Level)
	assert.True(t, job.Logging.Source)
	assert.Equal(t, "/tmp/flatten.log", job.Logging.File)
}

func TestEnvOverrideMalformed(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvDistanceTolerance, "fine")
	_, err := Parse([]byte(yamlJob), "yaml")
	assert.ErrorContains(t, err, EnvDistanceTolerance)
}

func TestToleranceConversion(t *testing.T) {
	tol, err := ToleranceConfig{Distance: 0.5, Angle: 90, CuspLimit: 180}.Tolerance()
	require.NoError(t, err)
	assert.InDelta(t, math.Pi/2, tol.Angle, 1e-15)
	assert.InDelta(t, math.Pi, tol.CuspLimit, 1e-15)

	tol, err = ToleranceConfig{Distance: 0.5, ApproximationScale: 4}.Tolerance()
	require.NoError(t, err)
	assert.Equal(t, 0.125, tol.Distance)

	_, err = ToleranceConfig{Distance: 0}.Tolerance()
	assert.ErrorIs(t, err, flatten.ErrInvalidArgument)

	tol, err = Defaults().Tolerance.Tolerance()
	require.NoError(t, err)
	assert.InDelta(t, flatten.DefaultAngleTolerance, tol.Angle, 1e-15)
}

func TestValidate(t *testing.T) {
	valid := func() Job {
		job := Defaults()
		job.Shapes = []ShapeSpec{{Kind: "quad", Points: [][]float64{{0, 0}, {1, 1}, {2, 0}}}}
		return job
	}
	require.NoError(t, valid().Validate())

	tests := map[string]func(*Job){
		"no shapes":        func(j *Job) { j.Shapes = nil },
		"bad tolerance":    func(j *Job) { j.Tolerance.Distance = -1 },
		"negative angle":   func(j *Job) { j.Tolerance.Angle = -1 },
		"unknown format":   func(j *Job) { j.Output.Format = "pdf" },
		"empty png":        func(j *Job) { j.Output.Format = "png"; j.Output.Width = 0 },
		"png stroke":       func(j *Job) { j.Output.Format = "png"; j.Output.StrokeWidth = 0 },
		"negative prec":    func(j *Job) { j.Output.Precision = -1 },
		"unknown kind":     func(j *Job) { j.Shapes[0].Kind = "spiral" },
		"too few points":   func(j *Job) { j.Shapes[0].Points = j.Shapes[0].Points[:2] },
		"short coordinate": func(j *Job) { j.Shapes[0].Points[1] = []float64{1} },
		"approximation":    func(j *Job) { j.Shapes[0].Approximation = "spline" },
		"flatness":         func(j *Job) { j.Shapes[0].Flatness = -1 },
		"scale":            func(j *Job) { j.Shapes[0].Scale = -1 },
		"arc without center": func(j *Job) {
			j.Shapes[0] = ShapeSpec{Kind: "arc", Radii: []float64{1, 1}}
		},
		"ellipse without radii": func(j *Job) {
			j.Shapes[0] = ShapeSpec{Kind: "ellipse", Center: []float64{1, 1}}
		},
		"path without data": func(j *Job) {
			j.Shapes[0] = ShapeSpec{Kind: "path", D: " "}
		},
		"malformed path": func(j *Job) {
			j.Shapes[0] = ShapeSpec{Kind: "path", D: "M0 0 L1"}
		},
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			job := valid()
			mutate(&job)
			assert.ErrorIs(t, job.Validate(), ErrInvalid)
		})
	}
}

func TestAngleConversion(t *testing.T) {
	assert.InDelta(t, math.Pi, Radians(180), 1e-15)
	assert.InDelta(t, 90, Degrees(math.Pi/2), 1e-12)
}

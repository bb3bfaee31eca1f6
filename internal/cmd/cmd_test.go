package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	toml "github.com/pelletier/go-toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v3"

	"github.com/Alia5/structgen/internal/codegen/resolver"
)

const pointLineHCL = `
model {
  name = "demo"
}

type "Line" {
  field "a" {
    type = "Point"
  }
  field "b" {
    type = "Point"
  }
}

type "Point" {
  field "x" {
    type = "i32"
  }
  field "y" {
    type = "i32"
  }
}
`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestGenerateThenCheck(t *testing.T) {
	src := writeFile(t, t.TempDir(), "demo.hcl", pointLineHCL)
	out := t.TempDir()
	target := Target{Output: out, Lang: "all"}

	require.NoError(t, (&Generate{Files: []string{src}, Target: target}).Run(testLogger()))

	data, err := os.ReadFile(filepath.Join(out, "demo_interface.rs"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "pub struct Point {")
	assert.FileExists(t, filepath.Join(out, "demo_interface.hxx"))
	assert.FileExists(t, filepath.Join(out, "demo_interface.h"))

	check := &Check{Files: []string{src}, Target: target}
	require.NoError(t, check.Run(testLogger()))

	require.NoError(t, os.WriteFile(filepath.Join(out, "demo_interface.hxx"), []byte("// hand edited\n"), 0o644))
	assert.EqualError(t, check.Run(testLogger()), "1 generated file(s) out of date, rerun structgen generate")
}

func TestGenerateSingleLanguage(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "demo.hcl", pointLineHCL)

	require.NoError(t, (&Generate{Files: []string{src}, Target: Target{Lang: "c"}}).Run(testLogger()))
	assert.FileExists(t, filepath.Join(dir, "demo_interface.h"))
	assert.NoFileExists(t, filepath.Join(dir, "demo_interface.hxx"))
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "demo.hcl", pointLineHCL)
	require.NoError(t, (&Validate{Files: []string{good}}).Run(testLogger()))

	cyclic := writeFile(t, dir, "loop.yaml", `
model: {name: loop}
types:
  A:
    fields: [{name: b, type: B}]
  B:
    fields: [{name: a, type: A}]
`)
	err := (&Validate{Files: []string{cyclic}}).Run(testLogger())
	var cyc *resolver.CyclicDependencyError
	require.ErrorAs(t, err, &cyc)
	assert.Equal(t, []string{"A", "B", "A"}, cyc.Cycle)
	assert.Empty(t, mustGlob(t, filepath.Join(dir, "*_interface.*")))
}

func mustGlob(t *testing.T, pattern string) []string {
	t.Helper()
	m, err := filepath.Glob(pattern)
	require.NoError(t, err)
	return m
}

func TestConfigInit(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "nested", "generate.yaml")
	c := &ConfigInit{Command: "generate", Format: "yaml", Output: dest}
	require.NoError(t, c.Run())

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, "cpp", got["lang"])
	assert.Equal(t, "", got["output"])
	assert.Equal(t, false, got["fingerprint"])
	assert.Equal(t, 0, got["jobs"])
	assert.NotContains(t, got, "files")
	assert.NotContains(t, got, "idl")
	assert.Contains(t, string(data), "# Target language: c, cpp, rust, or 'all' (one of: c, cpp, rust, all)\nlang: cpp\n")

	assert.EqualError(t, c.Run(), "destination exists; use --force to overwrite")
	c.Force = true
	assert.NoError(t, c.Run())
}

func TestConfigInitFormats(t *testing.T) {
	dir := t.TempDir()

	jsonDest := filepath.Join(dir, "check.json")
	require.NoError(t, (&ConfigInit{Command: "check", Format: "json", Output: jsonDest}).Run())
	data, err := os.ReadFile(jsonDest)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, map[string]any{
		"output":      "",
		"lang":        "cpp",
		"banner":      "",
		"fingerprint": false,
		"jobs":        float64(0),
	}, got)

	tomlDest := filepath.Join(dir, "check.toml")
	require.NoError(t, (&ConfigInit{Command: "check", Format: "toml", Output: tomlDest}).Run())
	tree, err := toml.LoadFile(tomlDest)
	require.NoError(t, err)
	assert.Equal(t, "cpp", tree.Get("lang"))
	assert.Equal(t, int64(0), tree.Get("jobs"))
	assert.False(t, tree.Has("idl"))
	data, err = os.ReadFile(tomlDest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "one of: c, cpp, rust, all")
}

func TestCollectFlagsSkipsArguments(t *testing.T) {
	flags := collectFlags(reflect.TypeOf(Generate{}), nil)
	var keys []string
	for _, f := range flags {
		keys = append(keys, strings.Join(f.Path, "."))
	}
	assert.Equal(t, []string{"output", "lang", "banner", "fingerprint", "jobs"}, keys)
	assert.Equal(t, []string{"c", "cpp", "rust", "all"}, flags[1].Enum)

	var withPrefix struct {
		Files []string `arg:""`
		Log   struct {
			Level string `default:"info"`
		} `embed:"" prefix:"log."`
	}
	flags = collectFlags(reflect.TypeOf(withPrefix), nil)
	require.Len(t, flags, 1)
	assert.Equal(t, []string{"log", "level"}, flags[0].Path)
	assert.Equal(t, map[string]any{"log": map[string]any{"level": "info"}}, nest(flags))
}

func TestConfigInitUnknownFormat(t *testing.T) {
	c := &ConfigInit{Command: "check", Format: "ini", Output: filepath.Join(t.TempDir(), "x")}
	assert.EqualError(t, c.Run(), "unsupported format: ini")
}

func TestVersion(t *testing.T) {
	var cli struct {
		Version Version `cmd:""`
	}
	var out bytes.Buffer
	parser, err := kong.New(&cli, kong.Writers(&out, &out))
	require.NoError(t, err)
	ctx, err := parser.Parse([]string{"version"})
	require.NoError(t, err)
	require.NoError(t, ctx.Run())
	assert.Equal(t, "structgen 0.0.1-dev\n", out.String())
}

package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Alia5/structgen/internal/codegen/model"
	"github.com/Alia5/structgen/internal/codegen/render"
	"github.com/Alia5/structgen/internal/idl"
)

// Generator loads interface files and writes the rendered headers to disk.
type Generator struct {
	outputDir   string
	logger      *slog.Logger
	opts        render.Options
	fingerprint bool
	jobs        int
}

// Config holds the knobs the CLI exposes.
type Config struct {
	// OutputDir receives every file. Empty writes next to each interface file.
	OutputDir string
	Banner    string
	// Fingerprint stamps the source file digest into the header.
	Fingerprint bool
	// Jobs bounds concurrent renders; <= 0 is unbounded.
	Jobs int
}

func New(cfg Config, logger *slog.Logger) *Generator {
	return &Generator{
		outputDir:   cfg.OutputDir,
		logger:      logger,
		opts:        render.Options{Banner: cfg.Banner},
		fingerprint: cfg.Fingerprint,
		jobs:        cfg.Jobs,
	}
}

// Source is a parsed interface file.
type Source struct {
	Path   string
	Model  *model.Model
	Digest string
}

// Output is one rendered file that has not been written yet.
type Output struct {
	Path   string
	Lang   string
	Model  string
	Text   string
	Digest string
}

// LoadAll parses every interface file. The first failure aborts.
func (g *Generator) LoadAll(paths []string) ([]Source, error) {
	if len(paths) == 0 {
		return nil, errors.New("no interface files given")
	}
	sources := make([]Source, 0, len(paths))
	for _, p := range paths {
		m, data, err := idl.ReadFile(p)
		if err != nil {
			return nil, err
		}
		g.logger.Debug("Loaded interface", "file", p, "model", m.Name, "structs", m.Len())
		sources = append(sources, Source{Path: p, Model: m, Digest: Digest(string(data))})
	}
	return sources, nil
}

// Plan renders every source for every language in memory. Nothing touches
// the disk, so a failure anywhere leaves existing files alone.
func (g *Generator) Plan(ctx context.Context, sources []Source, langs []string) ([]Output, error) {
	type target struct {
		src  Source
		lang string
	}
	if len(langs) == 0 {
		return nil, errors.New("no target languages given")
	}
	var (
		jobs    []Job
		targets []target
	)
	for _, src := range sources {
		for _, lang := range langs {
			jobs = append(jobs, Job{Model: src.Model, Lang: lang})
			targets = append(targets, target{src: src, lang: lang})
		}
	}

	// Fingerprints differ per source, so each source gets its own batch when
	// they are enabled.
	var results []Result
	if g.fingerprint {
		for i := 0; i < len(jobs); i += len(langs) {
			opts := g.opts
			opts.Fingerprint = targets[i].src.Digest
			batch, err := GenerateAll(ctx, jobs[i:i+len(langs)], opts, g.jobs)
			if err != nil {
				return nil, err
			}
			results = append(results, batch...)
		}
	} else {
		var err error
		if results, err = GenerateAll(ctx, jobs, g.opts, g.jobs); err != nil {
			return nil, err
		}
	}

	outputs := make([]Output, 0, len(results))
	owners := make(map[string]string, len(results))
	for i, res := range results {
		src := targets[i].src
		name, err := FileName(res.Model.Name, res.Lang)
		if err != nil {
			return nil, err
		}
		dir := g.outputDir
		if dir == "" {
			dir = filepath.Dir(src.Path)
		}
		path := filepath.Join(dir, name)
		if prev, ok := owners[path]; ok {
			return nil, fmt.Errorf("%s and %s would both write %s", prev, src.Path, path)
		}
		owners[path] = src.Path

		outputs = append(outputs, Output{
			Path:   path,
			Lang:   res.Lang,
			Model:  res.Model.Name,
			Text:   res.Text,
			Digest: Digest(res.Text),
		})
	}
	return outputs, nil
}

// GenAll generates every registered language for the given files.
func (g *Generator) GenAll(ctx context.Context, paths []string) error {
	return g.Generate(ctx, paths, Languages())
}

// GenerateLang generates one language for the given files.
func (g *Generator) GenerateLang(ctx context.Context, paths []string, lang string) error {
	if _, err := Dialect(lang); err != nil {
		return err
	}
	return g.Generate(ctx, paths, []string{lang})
}

// Generate loads, renders and then writes. Files are written only after
// every render succeeded, and replaced only after every file was staged.
func (g *Generator) Generate(ctx context.Context, paths []string, langs []string) error {
	g.logger.Info("Generating headers", "files", len(paths), "languages", langs)

	sources, err := g.LoadAll(paths)
	if err != nil {
		return err
	}
	outputs, err := g.Plan(ctx, sources, langs)
	if err != nil {
		return err
	}

	if err := writeAll(outputs); err != nil {
		return err
	}
	for _, out := range outputs {
		g.logger.Info("Wrote header", "model", out.Model, "language", out.Lang, "file", out.Path, "blake2b", out.Digest)
	}

	g.logger.Info("Generation complete", "outputs", len(outputs))
	return nil
}

// writeAll stages every output as a temp file beside its destination and
// renames them into place only once all of them were written. A failed
// stage removes the temp files and leaves existing outputs untouched.
func writeAll(outputs []Output) error {
	staged := make([]string, 0, len(outputs))
	discard := func(paths []string) {
		for _, p := range paths {
			_ = os.Remove(p)
		}
	}

	for _, out := range outputs {
		tmp, err := stage(out)
		if err != nil {
			discard(staged)
			return err
		}
		staged = append(staged, tmp)
	}

	for i, out := range outputs {
		if err := os.Rename(staged[i], out.Path); err != nil {
			discard(staged[i:])
			return fmt.Errorf("write %s: %w", out.Path, err)
		}
	}
	return nil
}

func stage(out Output) (string, error) {
	dir := filepath.Dir(out.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	if fi, err := os.Stat(out.Path); err == nil && fi.IsDir() {
		return "", fmt.Errorf("write %s: destination is a directory", out.Path)
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(out.Path)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("write %s: %w", out.Path, err)
	}
	_, werr := f.WriteString(out.Text)
	cerr := f.Close()
	if err := errors.Join(werr, cerr, os.Chmod(f.Name(), 0o644)); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write %s: %w", out.Path, err)
	}
	return f.Name(), nil
}

// Drift describes an output file that does not match what would be generated.
type Drift struct {
	Path string
	// Have is the digest of the file on disk; empty when it is missing.
	Have string
	Want string
}

func (d Drift) String() string {
	if d.Have == "" {
		return fmt.Sprintf("%s: missing (want %s)", d.Path, d.Want)
	}
	return fmt.Sprintf("%s: stale (have %s, want %s)", d.Path, d.Have, d.Want)
}

// Check regenerates in memory and compares against the files on disk.
func (g *Generator) Check(ctx context.Context, paths []string, langs []string) ([]Drift, error) {
	sources, err := g.LoadAll(paths)
	if err != nil {
		return nil, err
	}
	outputs, err := g.Plan(ctx, sources, langs)
	if err != nil {
		return nil, err
	}

	var drifts []Drift
	for _, out := range outputs {
		data, err := os.ReadFile(out.Path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			drifts = append(drifts, Drift{Path: out.Path, Want: out.Digest})
			continue
		case err != nil:
			return nil, fmt.Errorf("read %s: %w", out.Path, err)
		}
		have := Digest(string(data))
		if have != out.Digest {
			drifts = append(drifts, Drift{Path: out.Path, Have: have, Want: out.Digest})
			continue
		}
		g.logger.Debug("Header up to date", "file", out.Path, "blake2b", have)
	}
	return drifts, nil
}

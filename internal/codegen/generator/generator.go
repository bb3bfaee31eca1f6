package generator

import (
	"context"
	"encoding/hex"
	"fmt"
	"sort"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/sync/errgroup"

	cgen "github.com/Alia5/structgen/internal/codegen/generator/c"
	"github.com/Alia5/structgen/internal/codegen/generator/cpp"
	"github.com/Alia5/structgen/internal/codegen/generator/rust"
	"github.com/Alia5/structgen/internal/codegen/model"
	"github.com/Alia5/structgen/internal/codegen/render"
	"github.com/Alia5/structgen/internal/codegen/resolver"
)

// DefaultLang is the target used when none is requested.
const DefaultLang = "cpp"

var dialects = map[string]*render.Dialect{
	"cpp":  cpp.Dialect,
	"c":    cgen.Dialect,
	"rust": rust.Dialect,
}

// Languages returns the registered target names, sorted.
func Languages() []string {
	langs := make([]string, 0, len(dialects))
	for k := range dialects {
		langs = append(langs, k)
	}
	sort.Strings(langs)
	return langs
}

// Dialect returns the registered dialect for lang.
func Dialect(lang string) (*render.Dialect, error) {
	d, ok := dialects[lang]
	if !ok {
		return nil, fmt.Errorf("unsupported language '%s' (supported: %v)", lang, Languages())
	}
	return d, nil
}

// Generate runs the whole pipeline for one model: validate, order, render.
// It returns the complete document or an error, never partial text.
func Generate(m *model.Model, lang string, opts render.Options) (string, error) {
	d, err := Dialect(lang)
	if err != nil {
		return "", err
	}
	if err := m.Validate(); err != nil {
		return "", err
	}
	order, err := resolver.Order(m)
	if err != nil {
		return "", err
	}
	return render.Render(m, order, d, opts)
}

// Job is one independent unit of batch generation.
type Job struct {
	Model *model.Model
	Lang  string
}

// Result pairs a job with its rendered document.
type Result struct {
	Job
	Text string
}

// GenerateAll renders every job with at most limit runs in flight (limit <= 0
// means unbounded). Results keep the order of jobs. The first failure cancels
// the jobs not yet started and is returned; no results are returned then.
func GenerateAll(ctx context.Context, jobs []Job, opts render.Options, limit int) ([]Result, error) {
	results := make([]Result, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			text, err := Generate(job.Model, job.Lang, opts)
			if err != nil {
				return fmt.Errorf("model %s (%s): %w", job.Model.Name, job.Lang, err)
			}
			results[i] = Result{Job: job, Text: text}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Digest returns the hex BLAKE2b-256 digest of a generated document.
func Digest(text string) string {
	sum := blake2b.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// FileName returns the conventional output file name for a model and target,
// e.g. "demo_interface.hxx".
func FileName(modelName, lang string) (string, error) {
	d, err := Dialect(lang)
	if err != nil {
		return "", err
	}
	return modelName + "_interface." + d.Extension, nil
}

package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ArticlesBench/internal/domain"
)

func sampleResult(variant string, alpha float64) domain.Result {
	return domain.Result{
		Variant: variant,
		Model: domain.Assignment{
			Family: "MultinomialNB",
			Params: []domain.Param{{Name: "alpha", Value: alpha}, {Name: "fit_prior", Value: true}},
		},
		Accuracy: 0.756,
		Report:   "report-body\n",
		Elapsed:  1234 * time.Millisecond,
	}
}

func TestFormatBlock(t *testing.T) {
	t.Parallel()

	got := FormatBlock(sampleResult("raw", 0.5))
	want := "\n--- Модель: MultinomialNB ({'alpha': 0.5, 'fit_prior': True}) ---\n" +
		"Accuracy: 0.76\n" +
		"Время: 1.23 сек.\n" +
		"report-body\n" +
		"\n==================================================\n"
	if got != want {
		t.Fatalf("unexpected block:\n%q\nwant\n%q", got, want)
	}
}

func TestReporterKeepsOrderAndGroups(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := New(&buf)

	steps := []struct {
		variant string
		alpha   float64
	}{{"raw", 0.5}, {"raw", 1.0}, {"normalized", 0.5}}

	current := ""
	for _, s := range steps {
		if s.variant != current {
			if err := r.BeginVariant(s.variant); err != nil {
				t.Fatalf("BeginVariant: %v", err)
			}
			current = s.variant
		}
		if err := r.Add(sampleResult(s.variant, s.alpha)); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "\n==== raw ====\n\n--- Модель: MultinomialNB ({'alpha': 0.5") {
		t.Fatalf("unexpected report start: %q", out[:80])
	}
	if strings.Index(out, "==== normalized ====") < strings.Index(out, "'alpha': 1.0") {
		t.Fatal("variants were reordered")
	}

	results := r.Results()
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	grouped := r.ByVariant()
	if len(grouped["raw"]) != 2 || len(grouped["normalized"]) != 1 {
		t.Fatalf("unexpected grouping: %v", grouped)
	}
}

func TestReporterFlushesEachBlock(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "model_results.txt")
	r, err := Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer r.Close()

	if err := r.BeginVariant("raw"); err != nil {
		t.Fatalf("BeginVariant: %v", err)
	}
	if err := r.Add(sampleResult("raw", 0.5)); err != nil {
		t.Fatalf("Add: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.HasSuffix(string(raw), strings.Repeat("=", 50)+"\n") {
		t.Fatalf("block not flushed to disk: %q", raw)
	}
}

// Package report appends evaluation results to a text report as they arrive.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"ArticlesBench/internal/domain"
	"ArticlesBench/internal/ports"
)

const separatorWidth = 50

// Reporter writes one block per result and keeps every result in memory.
type Reporter struct {
	out     *bufio.Writer
	closer  io.Closer
	results []domain.Result
	variant string
}

var _ ports.ResultSink = (*Reporter)(nil)

// New wraps w; Close closes w when it implements io.Closer.
func New(w io.Writer) *Reporter {
	r := &Reporter{out: bufio.NewWriter(w)}
	if c, ok := w.(io.Closer); ok {
		r.closer = c
	}
	return r
}

// Create truncates or creates the report file at path.
func Create(path string) (*Reporter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create report %s: %w", path, err)
	}
	return New(f), nil
}

// BeginVariant writes the dataset variant header.
func (r *Reporter) BeginVariant(name string) error {
	r.variant = name
	return r.write(fmt.Sprintf("\n==== %s ====\n", name))
}

// Add appends a model block and flushes it so partial runs stay on disk.
func (r *Reporter) Add(result domain.Result) error {
	if result.Variant == "" {
		result.Variant = r.variant
	}
	r.results = append(r.results, result)
	return r.write(FormatBlock(result))
}

// FormatBlock renders one model block.
func FormatBlock(result domain.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n--- Модель: %s ---\n", result.Model.String())
	fmt.Fprintf(&b, "Accuracy: %.2f\n", result.Accuracy)
	fmt.Fprintf(&b, "Время: %.2f сек.\n", result.Elapsed.Seconds())
	b.WriteString(result.Report)
	b.WriteString("\n" + strings.Repeat("=", separatorWidth) + "\n")
	return b.String()
}

// Results returns every result in arrival order.
func (r *Reporter) Results() []domain.Result {
	return append([]domain.Result(nil), r.results...)
}

// ByVariant groups results by variant, keeping arrival order inside each group.
func (r *Reporter) ByVariant() map[string][]domain.Result {
	grouped := make(map[string][]domain.Result)
	for _, res := range r.results {
		grouped[res.Variant] = append(grouped[res.Variant], res)
	}
	return grouped
}

// Close flushes buffered output and closes the underlying writer.
func (r *Reporter) Close() error {
	flushErr := r.out.Flush()
	if r.closer != nil {
		if err := r.closer.Close(); err != nil && flushErr == nil {
			return fmt.Errorf("close report: %w", err)
		}
	}
	if flushErr != nil {
		return fmt.Errorf("flush report: %w", flushErr)
	}
	return nil
}

func (r *Reporter) write(s string) error {
	if _, err := r.out.WriteString(s); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if err := r.out.Flush(); err != nil {
		return fmt.Errorf("flush report: %w", err)
	}
	return nil
}

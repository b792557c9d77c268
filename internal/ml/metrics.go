package ml

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const reportDigits = 2

// Accuracy is the fraction of exact matches; it is zero for empty input.
func Accuracy(yTrue, yPred []int) float64 {
	if len(yTrue) == 0 {
		return 0
	}
	var hits int
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			hits++
		}
	}
	return float64(hits) / float64(len(yTrue))
}

// ClassScore holds per-class precision, recall, F1 and support.
type ClassScore struct {
	Name      string
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// ClassScores computes one score per label name; label i corresponds to code i.
// Undefined ratios are reported as zero.
func ClassScores(yTrue, yPred []int, names []string) []ClassScore {
	tp := make([]int, len(names))
	predicted := make([]int, len(names))
	support := make([]int, len(names))
	for i := range yTrue {
		if t := yTrue[i]; t >= 0 && t < len(names) {
			support[t]++
			if yPred[i] == t {
				tp[t]++
			}
		}
		if p := yPred[i]; p >= 0 && p < len(names) {
			predicted[p]++
		}
	}

	scores := make([]ClassScore, len(names))
	for k, name := range names {
		s := ClassScore{Name: name, Support: support[k]}
		if predicted[k] > 0 {
			s.Precision = float64(tp[k]) / float64(predicted[k])
		}
		if support[k] > 0 {
			s.Recall = float64(tp[k]) / float64(support[k])
		}
		if denom := predicted[k] + support[k]; denom > 0 {
			s.F1 = 2 * float64(tp[k]) / float64(denom)
		}
		scores[k] = s
	}
	return scores
}

// ClassificationReport renders per-class scores followed by accuracy, macro
// and weighted averages in fixed-width columns.
func ClassificationReport(yTrue, yPred []int, names []string) string {
	scores := ClassScores(yTrue, yPred, names)

	const lastHeading = "weighted avg"
	width := len(lastHeading)
	for _, name := range names {
		width = max(width, utf8.RuneCountInString(name))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%*s  %9s %9s %9s %9s\n\n", width, "", "precision", "recall", "f1-score", "support")
	for _, s := range scores {
		writeRow(&b, width, s)
	}
	b.WriteString("\n")

	var total int
	var macroP, macroR, macroF, wP, wR, wF float64
	for _, s := range scores {
		total += s.Support
		macroP += s.Precision
		macroR += s.Recall
		macroF += s.F1
		wP += s.Precision * float64(s.Support)
		wR += s.Recall * float64(s.Support)
		wF += s.F1 * float64(s.Support)
	}
	if n := float64(len(scores)); n > 0 {
		macroP, macroR, macroF = macroP/n, macroR/n, macroF/n
	}
	if total > 0 {
		t := float64(total)
		wP, wR, wF = wP/t, wR/t, wF/t
	}

	fmt.Fprintf(&b, "%*s  %9s %9s %9.*f %9d\n", width, "accuracy", "", "", reportDigits, Accuracy(yTrue, yPred), total)
	writeRow(&b, width, ClassScore{Name: "macro avg", Precision: macroP, Recall: macroR, F1: macroF, Support: total})
	writeRow(&b, width, ClassScore{Name: lastHeading, Precision: wP, Recall: wR, F1: wF, Support: total})
	return b.String()
}

func writeRow(b *strings.Builder, width int, s ClassScore) {
	fmt.Fprintf(b, "%*s  %9.*f %9.*f %9.*f %9d\n",
		width, s.Name,
		reportDigits, s.Precision,
		reportDigits, s.Recall,
		reportDigits, s.F1,
		s.Support)
}

package sentimen

import (
	"context"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Metrics captures how an analyzer performs on a labeled set.
type Metrics struct {
	Total          int
	Correct        int
	Confusion      map[Sentiment]map[Sentiment]int // expected -> predicted -> count
	PerClass       map[Sentiment]ClassMetrics
	MeanConfidence float64
}

// ClassMetrics contains per-label validation metrics.
type ClassMetrics struct {
	Precision float64
	Recall    float64
	F1Score   float64
	Support   int
}

// Accuracy returns the accuracy as a value in [0,1].
func (m Metrics) Accuracy() float64 {
	if m.Total == 0 {
		return 0
	}
	return float64(m.Correct) / float64(m.Total)
}

// Labels returns every label seen as expected or predicted, sorted.
func (m Metrics) Labels() []Sentiment {
	seen := make(map[Sentiment]bool)
	for exp, row := range m.Confusion {
		seen[exp] = true
		for pred := range row {
			seen[pred] = true
		}
	}
	out := make([]Sentiment, 0, len(seen))
	for l := range seen {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Evaluate analyzes every sample and compares the label with the expected
// one. Empty samples are reported as errors.
func Evaluate(ctx context.Context, a *Analyzer, samples []LabeledComment) (Metrics, error) {
	m := Metrics{
		Confusion: make(map[Sentiment]map[Sentiment]int),
		PerClass:  make(map[Sentiment]ClassMetrics),
	}
	confidences := make([]float64, 0, len(samples))

	for i, s := range samples {
		if err := ctx.Err(); err != nil {
			return m, err
		}
		p, err := a.Analyze(s.Text)
		if err != nil {
			return m, fmt.Errorf("sample %d: %w", i, err)
		}
		m.Total++
		if p.Label == s.Label {
			m.Correct++
		}
		if m.Confusion[s.Label] == nil {
			m.Confusion[s.Label] = make(map[Sentiment]int)
		}
		m.Confusion[s.Label][p.Label]++
		confidences = append(confidences, p.Confidence)
	}

	if len(confidences) > 0 {
		m.MeanConfidence = stat.Mean(confidences, nil)
	}

	for _, label := range m.Labels() {
		var tp, fp, fn int
		for exp, row := range m.Confusion {
			for pred, n := range row {
				switch {
				case exp == label && pred == label:
					tp += n
				case pred == label:
					fp += n
				case exp == label:
					fn += n
				}
			}
		}
		cm := ClassMetrics{Support: tp + fn}
		if tp+fp > 0 {
			cm.Precision = float64(tp) / float64(tp+fp)
		}
		if tp+fn > 0 {
			cm.Recall = float64(tp) / float64(tp+fn)
		}
		if cm.Precision+cm.Recall > 0 {
			cm.F1Score = 2 * cm.Precision * cm.Recall / (cm.Precision + cm.Recall)
		}
		m.PerClass[label] = cm
	}
	return m, nil
}

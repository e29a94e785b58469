package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/ulasan-id/sentimen"
)

func labelText(s sentimen.Sentiment) string {
	switch s {
	case sentimen.Positive:
		return "Positif"
	case sentimen.Negative:
		return "Negatif"
	default:
		return string(s)
	}
}

func printPrediction(w io.Writer, p sentimen.Prediction, details bool) {
	fmt.Fprintf(w, "Sentimen: %s (Keyakinan: %.2f%%)\n", labelText(p.Label), p.Confidence)
	if details {
		fmt.Fprintf(w, "    Teks Asli: %s\n", p.Original)
		fmt.Fprintf(w, "    Teks Setelah Preprocessing (Stemming): %s\n", p.Normalized)
	}
}

func printSentences(w io.Writer, sents []sentimen.SentencePrediction) {
	fmt.Fprintln(w, "Per kalimat:")
	for i, s := range sents {
		fmt.Fprintf(w, "  %d. [%s %.2f%%] %s\n", i+1, labelText(s.Label), s.Confidence, s.Text)
	}
}

func printMetrics(w io.Writer, m sentimen.Metrics) {
	fmt.Fprintf(w, "Jumlah data: %d\n", m.Total)
	fmt.Fprintf(w, "Akurasi: %.2f%%\n", m.Accuracy()*100)
	fmt.Fprintf(w, "Rata-rata keyakinan: %.2f%%\n", m.MeanConfidence)

	labels := m.Labels()
	fmt.Fprintln(w, "Per kelas:")
	for _, l := range labels {
		c := m.PerClass[l]
		fmt.Fprintf(w, "  %-10s precision=%.3f recall=%.3f f1=%.3f support=%d\n",
			l, c.Precision, c.Recall, c.F1Score, c.Support)
	}

	fmt.Fprintln(w, "Confusion matrix (baris = label, kolom = prediksi):")
	for _, exp := range labels {
		fmt.Fprintf(w, "  %-10s", exp)
		for _, pred := range labels {
			fmt.Fprintf(w, " %6d", m.Confusion[exp][pred])
		}
		fmt.Fprintln(w)
	}
}

func writeResultCSV(path string, preds []sentimen.Prediction) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create result file: %w", err)
	}
	defer f.Close()

	classes := probabilityColumns(preds)
	writer := csv.NewWriter(f)
	header := []string{"text", "normalized", "label", "confidence"}
	for _, c := range classes {
		header = append(header, "p_"+string(c))
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, p := range preds {
		row := []string{p.Original, p.Normalized, string(p.Label), fmt.Sprintf("%.2f", p.Confidence)}
		for _, c := range classes {
			row = append(row, fmt.Sprintf("%.4f", p.Probabilities[c]))
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush result: %w", err)
	}
	return nil
}

func probabilityColumns(preds []sentimen.Prediction) []sentimen.Sentiment {
	seen := make(map[sentimen.Sentiment]bool)
	for _, p := range preds {
		for c := range p.Probabilities {
			seen[c] = true
		}
	}
	out := make([]sentimen.Sentiment, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

package main

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulasan-id/sentimen"
)

// readComments reads one comment per line, or the text column of a CSV file.
func readComments(path, column string, stdin io.Reader) ([]string, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		records, err := readCSV(r)
		if err != nil {
			return nil, err
		}
		idx, err := columnIndex(records, column)
		if err != nil {
			return nil, err
		}
		var out []string
		for _, rec := range records[1:] {
			if idx < len(rec) && strings.TrimSpace(rec[idx]) != "" {
				out = append(out, rec[idx])
			}
		}
		return out, nil
	}

	var out []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if line := sc.Text(); strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out, sc.Err()
}

// readLabeled reads a CSV file with a text column and a label column.
func readLabeled(path, column string) ([]sentimen.LabeledComment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := readCSV(f)
	if err != nil {
		return nil, err
	}
	textIdx, err := columnIndex(records, column)
	if err != nil {
		return nil, err
	}
	labelIdx, err := columnIndex(records, "label")
	if err != nil {
		return nil, err
	}

	var out []sentimen.LabeledComment
	for i, rec := range records[1:] {
		if textIdx >= len(rec) || labelIdx >= len(rec) {
			return nil, fmt.Errorf("row %d: too few columns", i+2)
		}
		if strings.TrimSpace(rec[textIdx]) == "" {
			continue
		}
		out = append(out, sentimen.LabeledComment{
			Text:  rec[textIdx],
			Label: sentimen.Sentiment(strings.ToLower(strings.TrimSpace(rec[labelIdx]))),
		})
	}
	return out, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty csv")
	}
	return records, nil
}

func columnIndex(records [][]string, name string) (int, error) {
	for i, h := range records[0] {
		if strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")), name) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("column %q not found", name)
}

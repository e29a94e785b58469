package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const artifactDir = "../../testdata/artifacts"

func testOptions() cliOptions {
	return cliOptions{
		configPath:  filepath.Join(os.TempDir(), "sentimen-test-missing.json"),
		artifactDir: artifactDir,
		textColumn:  "text",
	}
}

func TestRunSingleComment(t *testing.T) {
	opts := testOptions()
	opts.text = "Bagus, suka sekali!!!"
	opts.details = true

	var out bytes.Buffer
	code := run(opts, strings.NewReader(""), &out)
	require.Equal(t, exitOK, code, out.String())
	assert.Contains(t, out.String(), "Sentimen: Positif")
	assert.Contains(t, out.String(), "Keyakinan:")
	assert.Contains(t, out.String(), "Teks Asli: Bagus, suka sekali!!!")
}

func TestRunSentences(t *testing.T) {
	opts := testOptions()
	opts.text = "Filmnya bagus. Tapi aktornya jelek dan buruk."
	opts.sentences = true

	var out bytes.Buffer
	code := run(opts, strings.NewReader(""), &out)
	require.Equal(t, exitOK, code, out.String())
	assert.Contains(t, out.String(), "Per kalimat:")
	assert.Contains(t, out.String(), "[Negatif")
}

func TestRunEmptyComment(t *testing.T) {
	opts := testOptions()
	opts.text = "   "

	var out bytes.Buffer
	code := run(opts, strings.NewReader(""), &out)
	assert.Equal(t, exitInput, code)
	assert.Contains(t, out.String(), "Mohon masukkan teks komentar terlebih dahulu.")
}

func TestRunMissingArtifacts(t *testing.T) {
	opts := testOptions()
	opts.artifactDir = t.TempDir()
	opts.text = "bagus"

	var out bytes.Buffer
	code := run(opts, strings.NewReader(""), &out)
	assert.Equal(t, exitUnavailable, code)
	assert.Contains(t, out.String(), "tidak ditemukan")
	assert.Contains(t, out.String(), "sentiment_model.json")
}

func TestRunInputFileToCSV(t *testing.T) {
	opts := testOptions()
	opts.inputPath = "../../testdata/comments.txt"
	opts.outputPath = filepath.Join(t.TempDir(), "out", "hasil.csv")

	var out bytes.Buffer
	code := run(opts, strings.NewReader(""), &out)
	require.Equal(t, exitOK, code, out.String())

	f, err := os.Open(opts.outputPath)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 4)
	assert.Equal(t, []string{"text", "normalized", "label", "confidence", "p_negative", "p_positive"}, rows[0])
	assert.Equal(t, "positive", rows[1][2])
	assert.Equal(t, "negative", rows[2][2])
	assert.Equal(t, "negative", rows[3][2])
}

func TestRunStdin(t *testing.T) {
	opts := testOptions()
	opts.inputPath = "-"

	var out bytes.Buffer
	code := run(opts, strings.NewReader("bagus sekali\nkecewa berat\n"), &out)
	require.Equal(t, exitOK, code, out.String())
	assert.Contains(t, out.String(), "1. Sentimen: Positif")
	assert.Contains(t, out.String(), "2. Sentimen: Negatif")
}

func TestRunEvaluate(t *testing.T) {
	opts := testOptions()
	opts.evalPath = "../../testdata/eval.csv"

	var out bytes.Buffer
	code := run(opts, strings.NewReader(""), &out)
	require.Equal(t, exitOK, code, out.String())
	assert.Contains(t, out.String(), "Jumlah data: 4")
	assert.Contains(t, out.String(), "Akurasi: 100.00%")
}

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{"-artifacts", "models", "filmnya", "bagus"})
	require.NoError(t, err)
	assert.Equal(t, "models", opts.artifactDir)
	assert.Equal(t, "filmnya bagus", opts.text)
	assert.Equal(t, "text", opts.textColumn)

	opts, err = parseFlags([]string{"-text", "  Bagus sekali!  "})
	require.NoError(t, err)
	assert.Equal(t, "  Bagus sekali!  ", opts.text, "comment is kept as submitted")

	_, err = parseFlags([]string{"-no-such-flag"})
	assert.Error(t, err)
}

func TestRunKeepsOriginalText(t *testing.T) {
	opts := testOptions()
	opts.text = "  Bagus, suka sekali!!!\t"
	opts.details = true

	var out bytes.Buffer
	code := run(opts, strings.NewReader(""), &out)
	require.Equal(t, exitOK, code, out.String())
	assert.Contains(t, out.String(), "Teks Asli:   Bagus, suka sekali!!!\t\n")
	assert.Contains(t, out.String(), "Sentimen: Positif")
}

func TestReadCommentsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "komentar.csv")
	data := "\ufeffid,Text\n1,bagus\n2,\n3,\"jelek, sekali\"\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	got, err := readComments(path, "text", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"bagus", "jelek, sekali"}, got)

	_, err = readComments(path, "komentar", nil)
	assert.Error(t, err)
}

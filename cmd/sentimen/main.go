package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulasan-id/sentimen"
)

const (
	exitOK = iota
	exitUsage
	exitUnavailable
	exitInput
)

type cliOptions struct {
	configPath  string
	artifactDir string
	text        string
	inputPath   string
	textColumn  string
	outputPath  string
	evalPath    string
	sentences   bool
	details     bool
	jsonLog     bool
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		log.Printf("sentimen: %v", err)
		os.Exit(exitUsage)
	}
	os.Exit(run(opts, os.Stdin, os.Stdout))
}

func parseFlags(args []string) (cliOptions, error) {
	var opts cliOptions
	fs := flag.NewFlagSet("sentimen", flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", "", "Path to sentimen.json (default: ./sentimen.json)")
	fs.StringVar(&opts.artifactDir, "artifacts", "", "Directory holding the model and vectorizer artifacts")
	fs.StringVar(&opts.text, "text", "", "Comment to analyze")
	fs.StringVar(&opts.inputPath, "input", "", "Text file (one comment per line) or CSV file to analyze; - reads stdin")
	fs.StringVar(&opts.textColumn, "text-column", "text", "CSV column holding the comment")
	fs.StringVar(&opts.outputPath, "output", "", "CSV file to write batch results to")
	fs.StringVar(&opts.evalPath, "eval", "", "Labeled CSV (text,label) to evaluate the model against")
	fs.BoolVar(&opts.sentences, "sentences", false, "Also report sentiment per sentence")
	fs.BoolVar(&opts.details, "details", false, "Show the original and preprocessed text")
	fs.BoolVar(&opts.jsonLog, "json-log", false, "Write logs as JSON")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [-text COMMENT | -input FILE | -eval FILE] [options]\n\n", filepath.Base(os.Args[0]))
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	// The comment is kept as submitted. The analyzer rejects blank text.
	opts.inputPath = strings.TrimSpace(opts.inputPath)
	opts.evalPath = strings.TrimSpace(opts.evalPath)
	if strings.TrimSpace(opts.text) == "" && opts.inputPath == "" && opts.evalPath == "" && fs.NArg() > 0 {
		opts.text = strings.Join(fs.Args(), " ")
	}
	return opts, nil
}

func run(opts cliOptions, stdin io.Reader, stdout io.Writer) int {
	cfg, err := sentimen.LoadConfig(opts.configPath)
	if err != nil {
		log.Printf("sentimen: load config: %v", err)
		return exitUsage
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		log.Printf("sentimen: %v", err)
		return exitUsage
	}
	if opts.artifactDir != "" {
		cfg.ArtifactDir = opts.artifactDir
	}
	if opts.jsonLog {
		cfg.Log.JSON = true
	}

	logger, err := sentimen.NewLogger(cfg.Log)
	if err != nil {
		log.Printf("sentimen: init logger: %v", err)
		return exitUsage
	}
	defer logger.Close()

	analyzer, err := sentimen.NewAnalyzerFromConfig(cfg, logger)
	if err != nil {
		fmt.Fprintln(stdout, describeError(err, cfg))
		fmt.Fprintln(stdout, "Aplikasi tidak dapat berjalan karena model gagal dimuat.")
		return exitUnavailable
	}

	ctx := context.Background()
	switch {
	case opts.evalPath != "":
		err = evaluate(ctx, analyzer, opts, stdout)
	case opts.inputPath != "":
		err = analyzeFile(ctx, analyzer, opts, stdin, stdout)
	default:
		err = analyzeOne(analyzer, opts, stdout)
	}
	if err != nil {
		fmt.Fprintln(stdout, describeError(err, cfg))
		return exitInput
	}
	return exitOK
}

func analyzeOne(a *sentimen.Analyzer, opts cliOptions, w io.Writer) error {
	p, err := a.Analyze(opts.text)
	if err != nil {
		return err
	}
	printPrediction(w, p, opts.details)

	if opts.sentences {
		sents, err := a.AnalyzeSentences(opts.text)
		if err != nil {
			return err
		}
		printSentences(w, sents)
	}
	return nil
}

func analyzeFile(ctx context.Context, a *sentimen.Analyzer, opts cliOptions, stdin io.Reader, w io.Writer) error {
	comments, err := readComments(opts.inputPath, opts.textColumn, stdin)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	if len(comments) == 0 {
		return sentimen.ErrEmptyInput
	}

	preds, err := a.AnalyzeAll(ctx, comments)
	if err != nil {
		return err
	}

	if opts.outputPath != "" {
		if err := writeResultCSV(opts.outputPath, preds); err != nil {
			return err
		}
		fmt.Fprintf(w, "Hasil analisis disimpan di %s\n", opts.outputPath)
		return nil
	}
	for i, p := range preds {
		fmt.Fprintf(w, "%d. ", i+1)
		printPrediction(w, p, opts.details)
	}
	return nil
}

func evaluate(ctx context.Context, a *sentimen.Analyzer, opts cliOptions, w io.Writer) error {
	samples, err := readLabeled(opts.evalPath, opts.textColumn)
	if err != nil {
		return fmt.Errorf("read labeled data: %w", err)
	}
	m, err := sentimen.Evaluate(ctx, a, samples)
	if err != nil {
		return err
	}
	printMetrics(w, m)
	return nil
}

func describeError(err error, cfg sentimen.Config) string {
	var notFound *sentimen.ArtifactNotFoundError
	var loadErr *sentimen.ArtifactLoadError
	var stemErr *sentimen.StemmerInitError
	switch {
	case errors.Is(err, sentimen.ErrEmptyInput):
		return "Mohon masukkan teks komentar terlebih dahulu."
	case errors.As(err, &notFound):
		return fmt.Sprintf("File model atau vectorizer tidak ditemukan: %s. Pastikan '%s' dan '%s' berada di folder %s.",
			strings.Join(notFound.Names, ", "), cfg.ModelFile, cfg.VectorizerFile, cfg.ArtifactDir)
	case errors.As(err, &loadErr):
		return fmt.Sprintf("Terjadi kesalahan saat memuat model: %v", loadErr.Err)
	case errors.As(err, &stemErr):
		return fmt.Sprintf("Gagal menginisialisasi Sastrawi Stemmer: %v", stemErr.Err)
	default:
		return fmt.Sprintf("Terjadi kesalahan: %v", err)
	}
}

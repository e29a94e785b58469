package sentimen

import (
	"context"
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gopkg.in/neurosnap/sentences.v1"
)

// indonesianAbbrevs are common Indonesian abbreviations whose trailing
// period does not end a sentence.
var indonesianAbbrevs = []string{
	"dll", "dsb", "dst", "dkk", "yg", "dgn", "utk", "tdk", "krn", "sdh",
	"blm", "tsb", "spt", "jl", "no", "tgl", "hlm", "bpk", "sdr",
	"dr", "drs", "ir", "prof", "pt", "cv", "rp",
}

func newSegmenter() *sentences.DefaultSentenceTokenizer {
	storage := sentences.NewStorage()
	for _, abbr := range indonesianAbbrevs {
		storage.AbbrevTypes.Add(abbr)
	}
	return sentences.NewSentenceTokenizer(storage)
}

// Analyzer classifies comments. It owns the normalizer and the artifact
// pair for the life of the process and is safe for concurrent use.
type Analyzer struct {
	normalizer *Normalizer
	artifacts  *Artifacts
	segmenter  *sentences.DefaultSentenceTokenizer
	logger     Logger
}

// An AnalyzerOpt configures an Analyzer.
type AnalyzerOpt func(*Analyzer)

// UsingLogger sets the analyzer's logger.
func UsingLogger(logger Logger) AnalyzerOpt {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// NewAnalyzer returns an Analyzer over loaded artifacts.
func NewAnalyzer(artifacts *Artifacts, normalizer *Normalizer, opts ...AnalyzerOpt) (*Analyzer, error) {
	if artifacts == nil || artifacts.Classifier == nil || artifacts.Vectorizer == nil {
		return nil, fmt.Errorf("sentimen: analyzer needs loaded artifacts")
	}
	if normalizer == nil {
		return nil, fmt.Errorf("sentimen: analyzer needs a normalizer")
	}

	a := &Analyzer{
		normalizer: normalizer,
		artifacts:  artifacts,
		segmenter:  newSegmenter(),
		logger:     NopLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// NewAnalyzerFromConfig builds the stemmer, loads the artifacts and returns
// an Analyzer, as the command does at startup.
func NewAnalyzerFromConfig(cfg Config, logger Logger) (*Analyzer, error) {
	cfg.ApplyDefaults()
	if logger == nil {
		logger = NopLogger()
	}

	stemOpts := []StemmerOpt{WithRootWords(cfg.ExtraRootWords...)}
	if cfg.DictionaryFile != "" {
		stemOpts = append(stemOpts, WithDictionaryFile(cfg.DictionaryFile))
	}
	stemmer, err := NewSastrawiStemmer(stemOpts...)
	if err != nil {
		logger.Error("stemmer init failed", "error", err)
		return nil, err
	}

	var normOpts []NormalizerOpt
	if !cfg.DisableCache {
		ttl, err := cfg.CacheDuration()
		if err != nil {
			return nil, err
		}
		normOpts = append(normOpts, WithCache(NewMemoryCache(ttl)))
	}

	loader := LoaderFromDisk(cfg.ArtifactDir,
		UsingModelFile(cfg.ModelFile),
		UsingVectorizerFile(cfg.VectorizerFile),
		UsingLoaderLogger(logger))
	artifacts, err := loader.Load()
	if err != nil {
		return nil, err
	}

	return NewAnalyzer(artifacts, NewNormalizer(stemmer, normOpts...), UsingLogger(logger))
}

// Normalizer returns the analyzer's normalizer.
func (a *Analyzer) Normalizer() *Normalizer { return a.normalizer }

// Analyze normalizes raw, vectorizes it and classifies it. It returns
// ErrEmptyInput when raw has no non-space characters.
func (a *Analyzer) Analyze(raw string) (Prediction, error) {
	if strings.TrimSpace(raw) == "" {
		return Prediction{}, ErrEmptyInput
	}

	normalized := a.normalizer.Normalize(raw)
	p := a.classify(normalized)
	p.Original = raw

	a.logger.Debug("comment analyzed",
		"label", string(p.Label),
		"confidence", p.Confidence,
		"normalized", normalized)
	return p, nil
}

func (a *Analyzer) classify(normalized string) Prediction {
	x := a.artifacts.Vectorizer.Transform(normalized)
	clf := a.artifacts.Classifier

	label := clf.Predict(x)
	proba := clf.PredictProba(x)

	probs := make(map[Sentiment]float64, len(proba))
	for i, c := range clf.Classes() {
		probs[c] = proba[i]
	}

	return Prediction{
		Label:         label,
		Confidence:    floats.Max(proba) * 100,
		Probabilities: probs,
		Normalized:    normalized,
	}
}

// AnalyzeAll analyzes every comment in order. It stops at the first empty
// comment or when ctx is done.
func (a *Analyzer) AnalyzeAll(ctx context.Context, comments []string) ([]Prediction, error) {
	out := make([]Prediction, 0, len(comments))
	for i, c := range comments {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		p, err := a.Analyze(c)
		if err != nil {
			return out, fmt.Errorf("comment %d: %w", i, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// AnalyzeSentences splits raw into sentences and analyzes each one.
// Sentences with no text are skipped.
func (a *Analyzer) AnalyzeSentences(raw string) ([]SentencePrediction, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrEmptyInput
	}

	var out []SentencePrediction
	for _, s := range a.segmenter.Tokenize(raw) {
		text := strings.TrimSpace(s.Text)
		if text == "" {
			continue
		}
		p, err := a.Analyze(text)
		if err != nil {
			return nil, err
		}
		out = append(out, SentencePrediction{
			Prediction: p,
			Text:       text,
			Start:      s.Start,
			End:        s.End,
		})
	}
	return out, nil
}

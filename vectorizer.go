package sentimen

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Vectorizer maps a normalized comment to a feature row using a vocabulary
// fitted ahead of time. Implementations never refit.
type Vectorizer interface {
	Transform(doc string) FeatureVector
	Dim() int
}

// VectorizerArtifact is the persisted form of a fitted TF-IDF vectorizer.
// Field names follow scikit-learn's TfidfVectorizer.
type VectorizerArtifact struct {
	Type              string         `json:"type"`
	Vocabulary        map[string]int `json:"vocabulary"`
	IDF               []float64      `json:"idf"`
	NgramRange        [2]int         `json:"ngram_range"`
	Lowercase         bool           `json:"lowercase"`
	Norm              string         `json:"norm"`
	UseIDF            bool           `json:"use_idf"`
	SublinearTF       bool           `json:"sublinear_tf"`
	Binary            bool           `json:"binary"`
	StripAccents      string         `json:"strip_accents,omitempty"`
	TokenPattern      string         `json:"token_pattern,omitempty"`
	StopWords         []string       `json:"stop_words,omitempty"`
	StopWordsLanguage string         `json:"stop_words_language,omitempty"`
}

const vectorizerTypeTFIDF = "tfidf"

// TFIDFVectorizer applies a fitted vocabulary and idf weights.
type TFIDFVectorizer struct {
	vocabulary   map[string]int
	idf          []float64
	minN, maxN   int
	lowercase    bool
	norm         string
	useIDF       bool
	sublinearTF  bool
	binary       bool
	stripAccents string
	tokenizer    Tokenizer
	stop         *stopWordFilter
}

// NewTFIDFVectorizer validates a and builds a vectorizer from it.
func NewTFIDFVectorizer(a VectorizerArtifact) (*TFIDFVectorizer, error) {
	if a.Type != "" && a.Type != vectorizerTypeTFIDF {
		return nil, fmt.Errorf("unsupported vectorizer type %q", a.Type)
	}
	if len(a.Vocabulary) == 0 {
		return nil, fmt.Errorf("empty vocabulary")
	}
	dim := len(a.Vocabulary)
	if a.UseIDF && len(a.IDF) != dim {
		return nil, fmt.Errorf("idf has %d weights for %d terms", len(a.IDF), dim)
	}
	for term, idx := range a.Vocabulary {
		if idx < 0 || idx >= dim {
			return nil, fmt.Errorf("term %q has index %d outside [0,%d)", term, idx, dim)
		}
	}

	minN, maxN := a.NgramRange[0], a.NgramRange[1]
	if minN == 0 && maxN == 0 {
		minN, maxN = 1, 1
	}
	if minN < 1 || maxN < minN {
		return nil, fmt.Errorf("invalid ngram range [%d,%d]", minN, maxN)
	}

	switch a.Norm {
	case "", "l1", "l2":
	default:
		return nil, fmt.Errorf("unsupported norm %q", a.Norm)
	}
	switch a.StripAccents {
	case "", "ascii", "unicode":
	default:
		return nil, fmt.Errorf("unsupported strip_accents %q", a.StripAccents)
	}

	tok, err := NewTokenizer(a.TokenPattern)
	if err != nil {
		return nil, fmt.Errorf("token pattern: %w", err)
	}

	return &TFIDFVectorizer{
		vocabulary:   a.Vocabulary,
		idf:          a.IDF,
		minN:         minN,
		maxN:         maxN,
		lowercase:    a.Lowercase,
		norm:         a.Norm,
		useIDF:       a.UseIDF,
		sublinearTF:  a.SublinearTF,
		binary:       a.Binary,
		stripAccents: a.StripAccents,
		tokenizer:    tok,
		stop:         newStopWordFilter(a.StopWords, a.StopWordsLanguage),
	}, nil
}

// Dim returns the vocabulary size.
func (v *TFIDFVectorizer) Dim() int { return len(v.vocabulary) }

// Transform returns the TF-IDF row for doc.
func (v *TFIDFVectorizer) Transform(doc string) FeatureVector {
	counts := make(map[int]float64)
	for _, term := range v.Analyze(doc) {
		if idx, ok := v.vocabulary[term]; ok {
			counts[idx]++
		}
	}

	out := FeatureVector{Dim: v.Dim()}
	if len(counts) == 0 {
		return out
	}
	out.Indices = make([]int, 0, len(counts))
	for idx := range counts {
		out.Indices = append(out.Indices, idx)
	}
	sort.Ints(out.Indices)

	out.Values = make([]float64, len(out.Indices))
	for k, idx := range out.Indices {
		tf := counts[idx]
		switch {
		case v.binary:
			tf = 1
		case v.sublinearTF:
			tf = 1 + math.Log(tf)
		}
		if v.useIDF {
			tf *= v.idf[idx]
		}
		out.Values[k] = tf
	}

	normalizeRow(out.Values, v.norm)
	return out
}

// Analyze returns the terms of doc that are looked up in the vocabulary.
func (v *TFIDFVectorizer) Analyze(doc string) []string {
	if v.lowercase {
		doc = strings.ToLower(doc)
	}
	doc = stripAccents(doc, v.stripAccents)
	tokens := v.stop.filter(v.tokenizer.Tokenize(doc))
	return wordNgrams(tokens, v.minN, v.maxN)
}

func normalizeRow(values []float64, kind string) {
	var n float64
	switch kind {
	case "l2":
		for _, x := range values {
			n += x * x
		}
		n = math.Sqrt(n)
	case "l1":
		for _, x := range values {
			n += math.Abs(x)
		}
	default:
		return
	}
	if n == 0 {
		return
	}
	for i := range values {
		values[i] /= n
	}
}

func stripAccents(s, kind string) string {
	var t transform.Transformer
	switch kind {
	case "unicode":
		t = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	case "ascii":
		t = transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(func(r rune) bool {
			return r > unicode.MaxASCII
		})))
	default:
		return s
	}
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

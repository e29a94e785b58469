package sentimen

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Normalizer turns a raw comment into the stemmed form the vectorizer was
// fitted on.
type Normalizer struct {
	stemmer Stemmer
	cache   Cache
}

// A NormalizerOpt configures a Normalizer.
type NormalizerOpt func(*Normalizer)

// WithCache memoizes Normalize results in c.
func WithCache(c Cache) NormalizerOpt {
	return func(n *Normalizer) {
		n.cache = c
	}
}

// NewNormalizer returns a Normalizer that stems with s.
func NewNormalizer(s Stemmer, opts ...NormalizerOpt) *Normalizer {
	n := &Normalizer{stemmer: s}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize lowercases text, deletes decimal digits, deletes ASCII
// punctuation and stems what is left. The steps run in that order.
func (n *Normalizer) Normalize(text string) string {
	if text == "" {
		return ""
	}
	if n.cache != nil {
		if out, ok := n.cache.Get(text); ok {
			return out
		}
	}

	out := stemText(n.stemmer, n.Clean(text))

	if n.cache != nil {
		n.cache.Set(text, out)
	}
	return out
}

// Clean applies every step of Normalize except stemming.
func (n *Normalizer) Clean(text string) string {
	// Transformers keep state between calls, so the chain is built per call.
	t := transform.Chain(
		cases.Lower(language.Und),
		runes.Remove(runes.Predicate(unicode.IsDigit)),
		runes.Remove(runes.Predicate(isASCIIPunct)),
	)
	out, _, err := transform.String(t, text)
	if err != nil {
		return fallbackClean(text)
	}
	return out
}

func isASCIIPunct(r rune) bool {
	return r < unicode.MaxASCII && strings.ContainsRune(asciiPunctuation, r)
}

func fallbackClean(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || isASCIIPunct(r) {
			return -1
		}
		return r
	}, strings.ToLower(text))
}

package sentimen

import (
	"regexp"
	"strings"
	"unicode"
)

// DefaultTokenPattern is the word pattern TF-IDF vectorizers are usually
// fitted with: runs of two or more word characters.
const DefaultTokenPattern = `(?u)\b\w\w+\b`

// Tokenizer splits a document into terms.
type Tokenizer interface {
	Tokenize(string) []string
}

// wordTokenizer finds maximal runs of word runes (letters, digits, '_').
type wordTokenizer struct {
	minLen int
}

func (t wordTokenizer) Tokenize(text string) []string {
	var toks []string
	start, n := -1, 0
	for i, r := range text {
		if isWordRune(r) {
			if start < 0 {
				start, n = i, 0
			}
			n++
			continue
		}
		if start >= 0 && n >= t.minLen {
			toks = append(toks, text[start:i])
		}
		start = -1
	}
	if start >= 0 && n >= t.minLen {
		toks = append(toks, text[start:])
	}
	return toks
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

// regexpTokenizer returns every match of a pattern. A pattern with one
// capture group yields the group instead of the whole match.
type regexpTokenizer struct {
	re *regexp.Regexp
}

func (t regexpTokenizer) Tokenize(text string) []string {
	if t.re.NumSubexp() == 0 {
		return t.re.FindAllString(text, -1)
	}
	var toks []string
	for _, m := range t.re.FindAllStringSubmatch(text, -1) {
		toks = append(toks, m[1])
	}
	return toks
}

// NewTokenizer returns the tokenizer for a vectorizer token pattern. The
// default pattern is matched on Unicode word runes; anything else goes
// through regexp.
func NewTokenizer(pattern string) (Tokenizer, error) {
	if pattern == "" || pattern == DefaultTokenPattern {
		return wordTokenizer{minLen: 2}, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return regexpTokenizer{re: re}, nil
}

// wordNgrams joins consecutive tokens into n-grams for every n in
// [minN, maxN], shortest first, as scikit-learn does.
func wordNgrams(tokens []string, minN, maxN int) []string {
	if maxN <= 1 {
		return tokens
	}
	out := make([]string, 0, len(tokens)*(maxN-minN+1))
	if minN == 1 {
		out = append(out, tokens...)
		minN = 2
	}
	for n := minN; n <= maxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			out = append(out, strings.Join(tokens[i:i+n], " "))
		}
	}
	return out
}

package sentimen

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/RadhiFadlillah/go-sastrawi"
)

// Stemmer reduces a single Indonesian word to its root form.
type Stemmer interface {
	Stem(word string) string
}

// StemmerFunc adapts a plain function to the Stemmer interface.
type StemmerFunc func(word string) string

// Stem calls f(word).
func (f StemmerFunc) Stem(word string) string { return f(word) }

type stemmerOpts struct {
	add      []string
	remove   []string
	dictFile string
}

// A StemmerOpt changes the dictionary used by NewSastrawiStemmer.
type StemmerOpt func(*stemmerOpts)

// WithRootWords adds words to the root word dictionary.
func WithRootWords(words ...string) StemmerOpt {
	return func(o *stemmerOpts) {
		o.add = append(o.add, words...)
	}
}

// WithoutRootWords removes words from the root word dictionary.
func WithoutRootWords(words ...string) StemmerOpt {
	return func(o *stemmerOpts) {
		o.remove = append(o.remove, words...)
	}
}

// WithDictionaryFile adds the root words listed in path, one per line.
// Blank lines and lines starting with '#' are ignored.
func WithDictionaryFile(path string) StemmerOpt {
	return func(o *stemmerOpts) {
		o.dictFile = path
	}
}

type sastrawiStemmer struct {
	stemmer Stemmer
}

// NewSastrawiStemmer builds a Sastrawi stemmer over the bundled root word
// dictionary. Any failure is reported as a *StemmerInitError.
func NewSastrawiStemmer(opts ...StemmerOpt) (Stemmer, error) {
	var o stemmerOpts
	for _, opt := range opts {
		opt(&o)
	}

	dict := sastrawi.DefaultDictionary()
	if o.dictFile != "" {
		words, err := readWordList(o.dictFile)
		if err != nil {
			return nil, &StemmerInitError{Err: err}
		}
		dict.Add(words...)
	}
	dict.Add(o.add...)
	dict.Remove(o.remove...)

	if dict.Count() == 0 {
		return nil, &StemmerInitError{Err: errors.New("empty root word dictionary")}
	}
	return &sastrawiStemmer{stemmer: sastrawi.NewStemmer(dict)}, nil
}

func (s *sastrawiStemmer) Stem(word string) string {
	return s.stemmer.Stem(word)
}

func readWordList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dictionary: %w", err)
	}
	defer f.Close()

	var words []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, strings.ToLower(line))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read dictionary: %w", err)
	}
	return words, nil
}

// stemText runs the stemmer over a whole string the way Sastrawi does:
// anything outside [a-z0-9 -] becomes a space, spaces are collapsed and
// every word is stemmed and joined back with single spaces.
func stemText(s Stemmer, text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}

	words := strings.Fields(b.String())
	for i, w := range words {
		words[i] = s.Stem(w)
	}
	return strings.Join(words, " ")
}

package sentimen

import (
	"strings"
	"sync"

	"github.com/bbalet/stopwords"
)

// stopWordFilter reports whether a term should be dropped before n-grams
// are built. Explicit words always apply; a language code additionally
// applies the bbalet/stopwords list for that language.
type stopWordFilter struct {
	words    map[string]struct{}
	langCode string

	mu   sync.RWMutex
	seen map[string]bool
}

func newStopWordFilter(words []string, langCode string) *stopWordFilter {
	if len(words) == 0 && langCode == "" {
		return nil
	}
	f := &stopWordFilter{
		words:    make(map[string]struct{}, len(words)),
		langCode: strings.ToLower(langCode),
		seen:     make(map[string]bool),
	}
	for _, w := range words {
		f.words[w] = struct{}{}
	}
	return f
}

func (f *stopWordFilter) isStopWord(term string) bool {
	if _, ok := f.words[term]; ok {
		return true
	}
	if f.langCode == "" {
		return false
	}

	f.mu.RLock()
	stop, ok := f.seen[term]
	f.mu.RUnlock()
	if ok {
		return stop
	}

	// The library only exposes cleaning, so a term is a stop word when
	// cleaning it leaves nothing behind.
	stop = strings.TrimSpace(stopwords.CleanString(term, f.langCode, false)) == ""

	f.mu.Lock()
	f.seen[term] = stop
	f.mu.Unlock()
	return stop
}

func (f *stopWordFilter) filter(tokens []string) []string {
	if f == nil {
		return tokens
	}
	out := tokens[:0]
	for _, t := range tokens {
		if !f.isStopWord(t) {
			out = append(out, t)
		}
	}
	return out
}

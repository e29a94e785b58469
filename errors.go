package sentimen

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyInput is returned by the analyzer when a comment is empty or holds
// only whitespace.
var ErrEmptyInput = errors.New("sentimen: no input provided")

// ArtifactNotFoundError reports artifacts that are missing from storage.
type ArtifactNotFoundError struct {
	Names []string // Missing artifact file names, model first.
}

func (e *ArtifactNotFoundError) Error() string {
	return "sentimen: artifact not found: " + strings.Join(e.Names, ", ")
}

// ArtifactLoadError reports an artifact that exists but could not be
// decoded or does not fit its counterpart.
type ArtifactLoadError struct {
	Name string
	Err  error
}

func (e *ArtifactLoadError) Error() string {
	return fmt.Sprintf("sentimen: load %s: %v", e.Name, e.Err)
}

func (e *ArtifactLoadError) Unwrap() error { return e.Err }

// StemmerInitError reports a stemmer that could not be built. Without a
// stemmer no comment can be normalized.
type StemmerInitError struct {
	Err error
}

func (e *StemmerInitError) Error() string {
	return fmt.Sprintf("sentimen: stemmer init: %v", e.Err)
}

func (e *StemmerInitError) Unwrap() error { return e.Err }

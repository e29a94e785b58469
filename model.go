package sentimen

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
)

// Default artifact file names, relative to the artifact directory.
const (
	DefaultModelFile      = "sentiment_model.json"
	DefaultVectorizerFile = "tfidf_vectorizer.json"
)

// Artifacts holds a trained classifier and the vectorizer it was trained
// with. Both are read-only once loaded.
type Artifacts struct {
	Classifier Classifier
	Vectorizer Vectorizer
}

// A Loader reads the artifact pair from a file system. Storage is read at
// most once; every call to Load returns the same result.
type Loader struct {
	fsys           fs.FS
	modelFile      string
	vectorizerFile string
	logger         Logger

	once      sync.Once
	artifacts *Artifacts
	err       error
}

// A LoaderOpt configures a Loader.
type LoaderOpt func(*Loader)

// UsingModelFile sets the classifier artifact name.
func UsingModelFile(name string) LoaderOpt {
	return func(l *Loader) {
		l.modelFile = name
	}
}

// UsingVectorizerFile sets the vectorizer artifact name.
func UsingVectorizerFile(name string) LoaderOpt {
	return func(l *Loader) {
		l.vectorizerFile = name
	}
}

// UsingLoaderLogger sets the logger used to report loads.
func UsingLoaderLogger(logger Logger) LoaderOpt {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader returns a Loader reading from fsys.
func NewLoader(fsys fs.FS, opts ...LoaderOpt) *Loader {
	l := &Loader{
		fsys:           fsys,
		modelFile:      DefaultModelFile,
		vectorizerFile: DefaultVectorizerFile,
		logger:         NopLogger(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoaderFromDisk returns a Loader reading from the directory dir.
func LoaderFromDisk(dir string, opts ...LoaderOpt) *Loader {
	return NewLoader(os.DirFS(dir), opts...)
}

// Load returns the artifact pair, reading it on the first call.
func (l *Loader) Load() (*Artifacts, error) {
	l.once.Do(func() {
		l.artifacts, l.err = l.load()
		if l.err != nil {
			l.logger.Error("artifact load failed", "error", l.err)
			return
		}
		l.logger.Info("artifacts loaded",
			"model", l.modelFile,
			"vectorizer", l.vectorizerFile,
			"features", l.artifacts.Vectorizer.Dim(),
			"classes", len(l.artifacts.Classifier.Classes()))
	})
	return l.artifacts, l.err
}

func (l *Loader) load() (*Artifacts, error) {
	var missing []string
	for _, name := range []string{l.modelFile, l.vectorizerFile} {
		if _, err := fs.Stat(l.fsys, name); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				missing = append(missing, name)
				continue
			}
			return nil, &ArtifactLoadError{Name: name, Err: err}
		}
	}
	if len(missing) > 0 {
		return nil, &ArtifactNotFoundError{Names: missing}
	}

	var ca ClassifierArtifact
	if err := readArtifact(l.fsys, l.modelFile, &ca); err != nil {
		return nil, err
	}
	clf, err := NewClassifier(ca)
	if err != nil {
		return nil, &ArtifactLoadError{Name: l.modelFile, Err: err}
	}

	var va VectorizerArtifact
	if err := readArtifact(l.fsys, l.vectorizerFile, &va); err != nil {
		return nil, err
	}
	vec, err := NewTFIDFVectorizer(va)
	if err != nil {
		return nil, &ArtifactLoadError{Name: l.vectorizerFile, Err: err}
	}

	return NewArtifacts(clf, vec)
}

// NewArtifacts pairs a classifier with a vectorizer, checking that the
// classifier expects the vectorizer's feature count.
func NewArtifacts(clf Classifier, vec Vectorizer) (*Artifacts, error) {
	if clf == nil || vec == nil {
		return nil, &ArtifactLoadError{Name: "artifacts", Err: errors.New("classifier and vectorizer are required")}
	}
	if n := NumFeatures(clf); n >= 0 && n != vec.Dim() {
		return nil, &ArtifactLoadError{
			Name: "artifacts",
			Err:  fmt.Errorf("classifier expects %d features, vectorizer produces %d", n, vec.Dim()),
		}
	}
	return &Artifacts{Classifier: clf, Vectorizer: vec}, nil
}

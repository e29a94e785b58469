package sentimen

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

var testVocabulary = map[string]int{
	"bagus":  0,
	"suka":   1,
	"sekali": 2,
	"buruk":  3,
	"benci":  4,
	"kecewa": 5,
	"film":   6,
	"jelek":  7,
}

func testVectorizerArtifact() VectorizerArtifact {
	return VectorizerArtifact{
		Type:       vectorizerTypeTFIDF,
		Vocabulary: testVocabulary,
		IDF:        []float64{1.5, 1.4, 1.2, 1.6, 1.8, 1.7, 1.1, 1.6},
		NgramRange: [2]int{1, 1},
		Lowercase:  true,
		Norm:       "l2",
		UseIDF:     true,
	}
}

func testClassifierArtifact() ClassifierArtifact {
	return ClassifierArtifact{
		Type:      classifierLogistic,
		Classes:   []string{"negative", "positive"},
		Coef:      [][]float64{{2.5, 2.0, 0.3, -2.5, -2.8, -2.2, 0.0, -2.4}},
		Intercept: []float64{0.0},
	}
}

// identityStemmer leaves words untouched so tests do not depend on the
// root word dictionary.
var identityStemmer = StemmerFunc(func(w string) string { return w })

func testArtifacts(t *testing.T) *Artifacts {
	t.Helper()
	clf, err := NewClassifier(testClassifierArtifact())
	require.NoError(t, err)
	vec, err := NewTFIDFVectorizer(testVectorizerArtifact())
	require.NoError(t, err)
	a, err := NewArtifacts(clf, vec)
	require.NoError(t, err)
	return a
}

func testAnalyzer(t *testing.T, opts ...NormalizerOpt) *Analyzer {
	t.Helper()
	a, err := NewAnalyzer(testArtifacts(t), NewNormalizer(identityStemmer, opts...))
	require.NoError(t, err)
	return a
}

// writeTestArtifacts stores the fixture pair in a temporary directory under
// the given file names and returns the directory.
func writeTestArtifacts(t *testing.T, modelFile, vectorizerFile string) string {
	t.Helper()
	dir := t.TempDir()
	if modelFile != "" {
		require.NoError(t, WriteArtifact(filepath.Join(dir, modelFile), testClassifierArtifact()))
	}
	if vectorizerFile != "" {
		require.NoError(t, WriteArtifact(filepath.Join(dir, vectorizerFile), testVectorizerArtifact()))
	}
	return dir
}

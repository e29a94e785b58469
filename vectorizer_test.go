package sentimen

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVectorizer(t *testing.T, mutate func(*VectorizerArtifact)) *TFIDFVectorizer {
	t.Helper()
	a := testVectorizerArtifact()
	if mutate != nil {
		mutate(&a)
	}
	v, err := NewTFIDFVectorizer(a)
	require.NoError(t, err)
	return v
}

func TestTransformL2(t *testing.T) {
	v := newTestVectorizer(t, nil)
	x := v.Transform("bagus suka sekali")

	norm := math.Sqrt(1.5*1.5 + 1.4*1.4 + 1.2*1.2)
	assert.Equal(t, 8, x.Dim)
	assert.Equal(t, []int{0, 1, 2}, x.Indices)
	assert.InDeltaSlice(t, []float64{1.5 / norm, 1.4 / norm, 1.2 / norm}, x.Values, 1e-12)

	var sq float64
	for _, val := range x.Values {
		sq += val * val
	}
	assert.InDelta(t, 1.0, sq, 1e-12)
}

func TestTransformTermFrequency(t *testing.T) {
	tests := []struct {
		desc   string
		mutate func(*VectorizerArtifact)
		bagus  float64
		jelek  float64
	}{
		{"raw counts", nil, 2 * 1.5, 1.6},
		{"sublinear", func(a *VectorizerArtifact) { a.SublinearTF = true }, (1 + math.Log(2)) * 1.5, 1.6},
		{"binary", func(a *VectorizerArtifact) { a.Binary = true }, 1.5, 1.6},
		{"no idf", func(a *VectorizerArtifact) { a.UseIDF = false }, 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			v := newTestVectorizer(t, tt.mutate)
			x := v.Transform("bagus jelek bagus")
			n := math.Hypot(tt.bagus, tt.jelek)
			require.Equal(t, []int{0, 7}, x.Indices)
			assert.InDelta(t, tt.bagus/n, x.Values[0], 1e-12)
			assert.InDelta(t, tt.jelek/n, x.Values[1], 1e-12)
		})
	}
}

func TestTransformNorms(t *testing.T) {
	l1 := newTestVectorizer(t, func(a *VectorizerArtifact) { a.Norm = "l1" })
	x := l1.Transform("bagus jelek")
	assert.InDeltaSlice(t, []float64{1.5 / 3.1, 1.6 / 3.1}, x.Values, 1e-12)

	none := newTestVectorizer(t, func(a *VectorizerArtifact) { a.Norm = "" })
	x = none.Transform("bagus jelek")
	assert.InDeltaSlice(t, []float64{1.5, 1.6}, x.Values, 1e-12)
}

func TestTransformOutOfVocabulary(t *testing.T) {
	v := newTestVectorizer(t, nil)
	for _, doc := range []string{"", "xyz tidak ada", "a b c"} {
		x := v.Transform(doc)
		assert.Equal(t, 8, x.Dim)
		assert.Zero(t, x.NNZ(), "doc %q", doc)
	}
}

func TestTransformNgrams(t *testing.T) {
	v, err := NewTFIDFVectorizer(VectorizerArtifact{
		Vocabulary: map[string]int{"tidak bagus": 0, "bagus": 1, "tidak": 2},
		NgramRange: [2]int{1, 2},
	})
	require.NoError(t, err)

	x := v.Transform("tidak bagus")
	assert.Equal(t, []int{0, 1, 2}, x.Indices)
	assert.Equal(t, []float64{1, 1, 1}, x.Values)

	assert.Equal(t, []string{"tidak", "bagus", "tidak bagus"}, v.Analyze("tidak bagus"))
}

func TestTransformStopWords(t *testing.T) {
	explicit := newTestVectorizer(t, func(a *VectorizerArtifact) { a.StopWords = []string{"sekali"} })
	assert.Equal(t, []int{0}, explicit.Transform("bagus sekali").Indices)

	lang := newTestVectorizer(t, func(a *VectorizerArtifact) {
		a.Vocabulary = map[string]int{"yang": 0, "bagus": 1}
		a.IDF = []float64{1, 1}
		a.StopWordsLanguage = "id"
	})
	assert.Equal(t, []string{"bagus"}, lang.Analyze("yang bagus"))
	assert.Equal(t, []int{1}, lang.Transform("yang bagus").Indices)
}

func TestTransformStripAccents(t *testing.T) {
	unicodeStrip := newTestVectorizer(t, func(a *VectorizerArtifact) {
		a.Vocabulary = map[string]int{"cafe": 0, "naive": 1}
		a.IDF = []float64{1, 1}
		a.StripAccents = "unicode"
	})
	assert.Equal(t, []int{0, 1}, unicodeStrip.Transform("Café naïve").Indices)

	asciiStrip := newTestVectorizer(t, func(a *VectorizerArtifact) {
		a.Vocabulary = map[string]int{"cafe": 0, "naive": 1}
		a.IDF = []float64{1, 1}
		a.StripAccents = "ascii"
	})
	assert.Equal(t, []int{0, 1}, asciiStrip.Transform("café NAÏVE").Indices)
}

func TestTransformTokenPattern(t *testing.T) {
	v := newTestVectorizer(t, func(a *VectorizerArtifact) {
		a.Vocabulary = map[string]int{"a": 0, "bagus": 1}
		a.IDF = []float64{1, 1}
		a.TokenPattern = `\b\w+\b`
	})
	assert.Equal(t, []int{0, 1}, v.Transform("a bagus").Indices)

	def := newTestVectorizer(t, func(a *VectorizerArtifact) {
		a.Vocabulary = map[string]int{"a": 0, "bagus": 1}
		a.IDF = []float64{1, 1}
	})
	assert.Equal(t, []int{1}, def.Transform("a bagus").Indices)
}

func TestNewTFIDFVectorizerErrors(t *testing.T) {
	tests := []struct {
		desc   string
		mutate func(*VectorizerArtifact)
	}{
		{"wrong type", func(a *VectorizerArtifact) { a.Type = "count" }},
		{"empty vocabulary", func(a *VectorizerArtifact) { a.Vocabulary = nil }},
		{"idf length", func(a *VectorizerArtifact) { a.IDF = a.IDF[:3] }},
		{"index out of range", func(a *VectorizerArtifact) {
			a.Vocabulary = map[string]int{"bagus": 0, "jelek": 9}
			a.IDF = []float64{1, 1}
		}},
		{"ngram range", func(a *VectorizerArtifact) { a.NgramRange = [2]int{2, 1} }},
		{"norm", func(a *VectorizerArtifact) { a.Norm = "max" }},
		{"strip accents", func(a *VectorizerArtifact) { a.StripAccents = "all" }},
		{"token pattern", func(a *VectorizerArtifact) { a.TokenPattern = "([" }},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			a := testVectorizerArtifact()
			a.Vocabulary = map[string]int{}
			for k, v := range testVocabulary {
				a.Vocabulary[k] = v
			}
			tt.mutate(&a)
			_, err := NewTFIDFVectorizer(a)
			assert.Error(t, err)
		})
	}
}

func TestFeatureVectorAccess(t *testing.T) {
	x := FeatureVector{Dim: 4, Indices: []int{1, 3}, Values: []float64{0.5, 2}}
	assert.Equal(t, 2, x.NNZ())
	assert.Equal(t, 2.0, x.At(3))
	assert.Equal(t, 0.0, x.At(2))
	assert.InDelta(t, 0.5*3+2*4, x.dot([]float64{9, 3, 9, 4}), 1e-12)
}

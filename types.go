package sentimen

// Sentiment is a class label reported by a classifier.
type Sentiment string

// Labels used by the shipped models.
const (
	Positive Sentiment = "positive"
	Negative Sentiment = "negative"
)

// IsPositive reports whether s is the positive label.
func (s Sentiment) IsPositive() bool { return s == Positive }

// A Prediction is the outcome of analyzing one comment.
type Prediction struct {
	Label         Sentiment             // Class reported by the classifier.
	Confidence    float64               // Highest class probability as a percentage (0-100).
	Probabilities map[Sentiment]float64 // Probability per class (0.0-1.0).
	Original      string                // The comment as submitted.
	Normalized    string                // The comment after normalization.
}

// A SentencePrediction is a Prediction for one sentence of a longer comment.
type SentencePrediction struct {
	Prediction
	Text  string // The sentence's text.
	Start int    // Start position in the original comment
	End   int    // End position in the original comment
}

// A LabeledComment pairs a comment with its expected label.
type LabeledComment struct {
	Text  string
	Label Sentiment
}

// FeatureVector is a sparse row produced by a Vectorizer.
//
// Indices are strictly increasing and every index is below Dim.
type FeatureVector struct {
	Dim     int
	Indices []int
	Values  []float64
}

// NNZ returns the number of stored entries.
func (v FeatureVector) NNZ() int { return len(v.Indices) }

// At returns the value at index i.
func (v FeatureVector) At(i int) float64 {
	for k, idx := range v.Indices {
		if idx == i {
			return v.Values[k]
		}
		if idx > i {
			break
		}
	}
	return 0
}

// dot returns the inner product of v and a dense weight row.
func (v FeatureVector) dot(w []float64) float64 {
	var s float64
	for k, idx := range v.Indices {
		s += w[idx] * v.Values[k]
	}
	return s
}

package sentimen

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Classifier scores feature rows produced by a Vectorizer.
type Classifier interface {
	// Classes returns the labels in the order PredictProba reports them.
	Classes() []Sentiment
	Predict(x FeatureVector) Sentiment
	PredictProba(x FeatureVector) []float64
}

// ClassifierArtifact is the persisted form of a trained linear model.
// Field names follow scikit-learn's estimator attributes.
type ClassifierArtifact struct {
	Type       string      `json:"type"`
	Classes    []string    `json:"classes"`
	Coef       [][]float64 `json:"coef,omitempty"`
	Intercept  []float64   `json:"intercept,omitempty"`
	MultiClass string      `json:"multi_class,omitempty"`

	ClassLogPrior  []float64   `json:"class_log_prior,omitempty"`
	FeatureLogProb [][]float64 `json:"feature_log_prob,omitempty"`
}

const (
	classifierLogistic      = "logistic_regression"
	classifierMultinomialNB = "multinomial_nb"
)

// NewClassifier builds the classifier described by a.
func NewClassifier(a ClassifierArtifact) (Classifier, error) {
	if len(a.Classes) < 2 {
		return nil, fmt.Errorf("need at least 2 classes, got %d", len(a.Classes))
	}
	switch a.Type {
	case classifierLogistic:
		return newLogisticRegression(a)
	case classifierMultinomialNB:
		return newMultinomialNB(a)
	default:
		return nil, fmt.Errorf("unsupported classifier type %q", a.Type)
	}
}

// NumFeatures returns the feature count a classifier expects, or -1 when it
// cannot tell.
func NumFeatures(c Classifier) int {
	switch m := c.(type) {
	case *LogisticRegression:
		_, n := m.coef.Dims()
		return n
	case *MultinomialNB:
		_, n := m.featureLogProb.Dims()
		return n
	}
	return -1
}

// LogisticRegression is a fitted binary or multiclass logistic model.
type LogisticRegression struct {
	classes     []Sentiment
	coef        *mat.Dense
	intercept   *mat.VecDense
	ovr         bool
	multinomial bool
}

func newLogisticRegression(a ClassifierArtifact) (*LogisticRegression, error) {
	coef, err := denseRows(a.Coef)
	if err != nil {
		return nil, fmt.Errorf("coef: %w", err)
	}
	rows, _ := coef.Dims()
	k := len(a.Classes)
	if (k == 2 && rows != 1 && rows != 2) || (k > 2 && rows != k) {
		return nil, fmt.Errorf("coef has %d rows for %d classes", rows, k)
	}
	intercept := a.Intercept
	if intercept == nil {
		intercept = make([]float64, rows)
	}
	if len(intercept) != rows {
		return nil, fmt.Errorf("intercept has %d values for %d coef rows", len(intercept), rows)
	}

	switch a.MultiClass {
	case "", "auto", "multinomial", "ovr":
	default:
		return nil, fmt.Errorf("unsupported multi_class %q", a.MultiClass)
	}

	return &LogisticRegression{
		classes:     toSentiments(a.Classes),
		coef:        coef,
		intercept:   mat.NewVecDense(rows, append([]float64(nil), intercept...)),
		ovr:         a.MultiClass == "ovr",
		multinomial: a.MultiClass == "multinomial",
	}, nil
}

// Classes returns the model's labels.
func (m *LogisticRegression) Classes() []Sentiment { return m.classes }

// DecisionFunction returns the raw score per coefficient row.
func (m *LogisticRegression) DecisionFunction(x FeatureVector) []float64 {
	return decision(m.coef, m.intercept, x)
}

// Predict returns the label with the highest decision score.
func (m *LogisticRegression) Predict(x FeatureVector) Sentiment {
	d := m.DecisionFunction(x)
	if len(d) == 1 {
		if d[0] > 0 {
			return m.classes[1]
		}
		return m.classes[0]
	}
	return m.classes[floats.MaxIdx(d)]
}

// PredictProba returns class probabilities aligned with Classes.
func (m *LogisticRegression) PredictProba(x FeatureVector) []float64 {
	d := m.DecisionFunction(x)
	if len(d) == 1 {
		// A multinomial fit scores the pair as softmax([-d, d]).
		if m.multinomial {
			d[0] *= 2
		}
		p := expit(d[0])
		return []float64{1 - p, p}
	}
	if m.ovr {
		for i := range d {
			d[i] = expit(d[i])
		}
		if sum := floats.Sum(d); sum > 0 {
			floats.Scale(1/sum, d)
		}
		return d
	}
	return softmax(d)
}

// MultinomialNB is a fitted multinomial naive Bayes model.
type MultinomialNB struct {
	classes        []Sentiment
	featureLogProb *mat.Dense
	classLogPrior  *mat.VecDense
}

func newMultinomialNB(a ClassifierArtifact) (*MultinomialNB, error) {
	flp, err := denseRows(a.FeatureLogProb)
	if err != nil {
		return nil, fmt.Errorf("feature_log_prob: %w", err)
	}
	rows, _ := flp.Dims()
	if rows != len(a.Classes) {
		return nil, fmt.Errorf("feature_log_prob has %d rows for %d classes", rows, len(a.Classes))
	}
	if len(a.ClassLogPrior) != rows {
		return nil, fmt.Errorf("class_log_prior has %d values for %d classes", len(a.ClassLogPrior), rows)
	}
	return &MultinomialNB{
		classes:        toSentiments(a.Classes),
		featureLogProb: flp,
		classLogPrior:  mat.NewVecDense(rows, append([]float64(nil), a.ClassLogPrior...)),
	}, nil
}

// Classes returns the model's labels.
func (m *MultinomialNB) Classes() []Sentiment { return m.classes }

// Predict returns the class with the highest joint log likelihood.
func (m *MultinomialNB) Predict(x FeatureVector) Sentiment {
	return m.classes[floats.MaxIdx(decision(m.featureLogProb, m.classLogPrior, x))]
}

// PredictProba returns class probabilities aligned with Classes.
func (m *MultinomialNB) PredictProba(x FeatureVector) []float64 {
	return softmax(decision(m.featureLogProb, m.classLogPrior, x))
}

// decision computes w·x + b for every row of w.
func decision(w *mat.Dense, b *mat.VecDense, x FeatureVector) []float64 {
	rows, _ := w.Dims()
	out := make([]float64, rows)
	for i := 0; i < rows; i++ {
		out[i] = x.dot(w.RawRowView(i)) + b.AtVec(i)
	}
	return out
}

func softmax(d []float64) []float64 {
	lse := floats.LogSumExp(d)
	out := make([]float64, len(d))
	for i, v := range d {
		out[i] = math.Exp(v - lse)
	}
	return out
}

func expit(x float64) float64 {
	if x >= 0 {
		return 1 / (1 + math.Exp(-x))
	}
	e := math.Exp(x)
	return e / (1 + e)
}

func denseRows(rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("empty matrix")
	}
	n := len(rows[0])
	data := make([]float64, 0, len(rows)*n)
	for i, r := range rows {
		if len(r) != n {
			return nil, fmt.Errorf("row %d has %d columns, want %d", i, len(r), n)
		}
		data = append(data, r...)
	}
	return mat.NewDense(len(rows), n, data), nil
}

func toSentiments(labels []string) []Sentiment {
	out := make([]Sentiment, len(labels))
	for i, l := range labels {
		out[i] = Sentiment(l)
	}
	return out
}

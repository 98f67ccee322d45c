// Package intent implements the TF-IDF + multinomial naive Bayes intent
// classifier. A Model is fitted once from a Table and is read-only after.
package intent

import (
	"math"
	"sort"
	"strings"

	"job-assistant/internal/common/errors"
	"job-assistant/internal/nlp/normalize"
)

// alpha is the additive (Laplace) smoothing applied to per-class term weights.
const alpha = 1.0

// Model is a fitted classifier. Safe for concurrent use.
type Model struct {
	vocab    map[string]int
	idf      []float64
	classes  []Label
	logPrior []float64
	logLik   [][]float64 // [class][term]
}

// Prediction is a classification with the posterior probability of the
// winning label.
type Prediction struct {
	Label      Label   `json:"intent"`
	Confidence float64 `json:"confidence"`
}

// Train normalizes every pattern, fits the TF-IDF space over all of them and
// fits the naive Bayes classifier on the resulting vectors.
func Train(table Table) (*Model, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}

	var (
		docs   [][]string
		labels []Label
	)
	for _, in := range table {
		for _, p := range in.Patterns {
			docs = append(docs, terms(normalize.Text(p)))
			labels = append(labels, in.Label)
		}
	}

	m := &Model{vocab: make(map[string]int)}
	m.fitVocabulary(docs)
	if len(m.vocab) == 0 {
		return nil, errors.NewConfigurationError("intent patterns produce an empty vocabulary")
	}
	m.fitIDF(docs)
	m.fitBayes(docs, labels)
	return m, nil
}

// terms keeps tokens of two or more letters.
func terms(normalized string) []string {
	toks := strings.Fields(normalized)
	out := toks[:0]
	for _, t := range toks {
		if len(t) >= 2 {
			out = append(out, t)
		}
	}
	return out
}

func (m *Model) fitVocabulary(docs [][]string) {
	var words []string
	seen := make(map[string]struct{})
	for _, d := range docs {
		for _, w := range d {
			if _, ok := seen[w]; !ok {
				seen[w] = struct{}{}
				words = append(words, w)
			}
		}
	}
	sort.Strings(words)
	for i, w := range words {
		m.vocab[w] = i
	}
}

// fitIDF uses the smoothed form ln((1+n)/(1+df)) + 1.
func (m *Model) fitIDF(docs [][]string) {
	df := make([]float64, len(m.vocab))
	for _, d := range docs {
		counted := make(map[int]struct{})
		for _, w := range d {
			j := m.vocab[w]
			if _, ok := counted[j]; !ok {
				counted[j] = struct{}{}
				df[j]++
			}
		}
	}
	n := float64(len(docs))
	m.idf = make([]float64, len(df))
	for j := range df {
		m.idf[j] = math.Log((1+n)/(1+df[j])) + 1
	}
}

func (m *Model) fitBayes(docs [][]string, labels []Label) {
	classIdx := make(map[Label]int)
	for _, l := range labels {
		classIdx[l] = 0
	}
	for l := range classIdx {
		m.classes = append(m.classes, l)
	}
	sort.Slice(m.classes, func(i, j int) bool { return m.classes[i] < m.classes[j] })
	for i, l := range m.classes {
		classIdx[l] = i
	}

	nFeatures := len(m.vocab)
	counts := make([]float64, len(m.classes))
	featureCount := make([][]float64, len(m.classes))
	for c := range featureCount {
		featureCount[c] = make([]float64, nFeatures)
	}

	for i, d := range docs {
		c := classIdx[labels[i]]
		counts[c]++
		for j, v := range m.vectorize(d) {
			featureCount[c][j] += v
		}
	}

	total := float64(len(docs))
	m.logPrior = make([]float64, len(m.classes))
	m.logLik = make([][]float64, len(m.classes))
	for c := range m.classes {
		m.logPrior[c] = math.Log(counts[c] / total)

		sum := 0.0
		for _, v := range featureCount[c] {
			sum += v + alpha
		}
		m.logLik[c] = make([]float64, nFeatures)
		for j, v := range featureCount[c] {
			m.logLik[c][j] = math.Log(v+alpha) - math.Log(sum)
		}
	}
}

// vectorize returns the sparse l2-normalized tf-idf row of a term list.
// Unknown terms are skipped.
func (m *Model) vectorize(doc []string) map[int]float64 {
	row := make(map[int]float64)
	for _, w := range doc {
		if j, ok := m.vocab[w]; ok {
			row[j]++
		}
	}
	norm := 0.0
	for j, tf := range row {
		v := tf * m.idf[j]
		row[j] = v
		norm += v * v
	}
	if norm == 0 {
		return row
	}
	norm = math.Sqrt(norm)
	for j := range row {
		row[j] /= norm
	}
	return row
}

// jointLogLikelihood scores every class for the normalized text.
func (m *Model) jointLogLikelihood(text string) []float64 {
	x := m.vectorize(terms(normalize.Text(text)))
	scores := make([]float64, len(m.classes))
	for c := range m.classes {
		s := m.logPrior[c]
		for j, v := range x {
			s += v * m.logLik[c][j]
		}
		scores[c] = s
	}
	return scores
}

// Classify returns the most probable label. Ties go to the label that sorts
// first; text with no known terms gets the highest-prior label.
func (m *Model) Classify(text string) Label {
	return m.Predict(text).Label
}

// Predict is Classify plus the posterior probability of the chosen label.
func (m *Model) Predict(text string) Prediction {
	scores := m.jointLogLikelihood(text)

	best := 0
	for c := 1; c < len(scores); c++ {
		if scores[c] > scores[best] {
			best = c
		}
	}

	// log-sum-exp relative to the max keeps the posterior finite.
	denom := 0.0
	for _, s := range scores {
		denom += math.Exp(s - scores[best])
	}

	return Prediction{
		Label:      m.classes[best],
		Confidence: 1 / denom,
	}
}

// Labels returns the trained classes in tie-break order.
func (m *Model) Labels() []Label {
	out := make([]Label, len(m.classes))
	copy(out, m.classes)
	return out
}

// VocabularySize reports the number of distinct terms learned.
func (m *Model) VocabularySize() int {
	return len(m.vocab)
}

package services

import (
	"math"
	"regexp"
	"strings"
)

var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// tfidfVectorizer fits smooth-idf TF-IDF weights over a small corpus and
// returns L2-normalised sparse vectors, one per document.
type tfidfVectorizer struct {
	stopWords map[string]bool
	minGram   int
	maxGram   int
}

func newTFIDFVectorizer(stopWords map[string]bool, minGram, maxGram int) *tfidfVectorizer {
	return &tfidfVectorizer{stopWords: stopWords, minGram: minGram, maxGram: maxGram}
}

func (v *tfidfVectorizer) analyze(doc string) []string {
	var tokens []string
	for _, tok := range tokenPattern.FindAllString(strings.ToLower(doc), -1) {
		if !v.stopWords[tok] {
			tokens = append(tokens, tok)
		}
	}

	var terms []string
	for n := v.minGram; n <= v.maxGram; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			terms = append(terms, strings.Join(tokens[i:i+n], " "))
		}
	}
	return terms
}

func (v *tfidfVectorizer) FitTransform(docs []string) []map[string]float64 {
	counts := make([]map[string]float64, len(docs))
	df := make(map[string]int)

	for i, doc := range docs {
		tf := make(map[string]float64)
		for _, term := range v.analyze(doc) {
			tf[term]++
		}
		for term := range tf {
			df[term]++
		}
		counts[i] = tf
	}

	n := float64(len(docs))
	for _, tf := range counts {
		var norm float64
		for term, c := range tf {
			w := c * (math.Log((1+n)/(1+float64(df[term]))) + 1)
			tf[term] = w
			norm += w * w
		}
		if norm == 0 {
			continue
		}
		norm = math.Sqrt(norm)
		for term := range tf {
			tf[term] /= norm
		}
	}
	return counts
}

// cosineSimilarity assumes both vectors are already L2-normalised.
func cosineSimilarity(a, b map[string]float64) float64 {
	if len(a) > len(b) {
		a, b = b, a
	}
	var dot float64
	for term, w := range a {
		dot += w * b[term]
	}
	return dot
}

package services

import (
	"context"
	"math"
	"strings"
)

// tfidfOracle is the offline similarity strategy: a term-frequency /
// inverse-document-frequency vector space built jointly over the job
// description and every resume in the batch, with cosine similarity of each
// resume vector against the job vector. It needs no API key, at the cost of
// scores that only mean anything relative to the batch they came from.
type tfidfOracle struct{}

func NewTFIDFOracle() SimilarityOracle {
	return &tfidfOracle{}
}

func (o *tfidfOracle) Scores(_ context.Context, jobText string, resumeTexts []string) ([]float64, error) {
	corpus := make([]string, 0, len(resumeTexts)+1)
	corpus = append(corpus, jobText)
	corpus = append(corpus, resumeTexts...)

	vectors := vectorizeTFIDF(corpus)

	jobVec := vectors[0]
	scores := make([]float64, len(resumeTexts))
	for i, vec := range vectors[1:] {
		if resumeTexts[i] == "" {
			continue
		}
		scores[i] = math.Max(0, sparseCosine(jobVec, vec)*100)
	}

	return scores, nil
}

// englishStopWords mirrors the usual vectorizer stop-word list, trimmed to
// the terms that actually show up in resumes and job descriptions.
var englishStopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "been": true, "but": true, "by": true, "for": true,
	"from": true, "has": true, "have": true, "he": true, "her": true,
	"his": true, "i": true, "in": true, "is": true, "it": true, "its": true,
	"me": true, "my": true, "of": true, "on": true, "or": true, "our": true,
	"she": true, "that": true, "the": true, "their": true, "them": true,
	"they": true, "this": true, "to": true, "was": true, "we": true,
	"were": true, "will": true, "with": true, "you": true, "your": true,
}

// vectorizeTFIDF builds one sparse tf-idf vector per document using smoothed
// idf: log((1+n)/(1+df)) + 1, l2-normalized at comparison time.
func vectorizeTFIDF(corpus []string) []map[string]float64 {
	n := len(corpus)

	termFreqs := make([]map[string]float64, n)
	docFreq := make(map[string]int)

	for i, doc := range corpus {
		tf := make(map[string]float64)
		for _, term := range strings.Fields(doc) {
			if englishStopWords[term] {
				continue
			}
			tf[term]++
		}
		for term := range tf {
			docFreq[term]++
		}
		termFreqs[i] = tf
	}

	vectors := make([]map[string]float64, n)
	for i, tf := range termFreqs {
		vec := make(map[string]float64, len(tf))
		for term, freq := range tf {
			idf := math.Log(float64(1+n)/float64(1+docFreq[term])) + 1
			vec[term] = freq * idf
		}
		vectors[i] = vec
	}

	return vectors
}

func sparseCosine(a, b map[string]float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	var dot float64
	for term, av := range a {
		if bv, ok := b[term]; ok {
			dot += av * bv
		}
	}

	var normA, normB float64
	for _, v := range a {
		normA += v * v
	}
	for _, v := range b {
		normB += v * v
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

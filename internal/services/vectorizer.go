package services

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/unicode/norm"
	"gonum.org/v1/gonum/floats"
)

// TextVectorizer maps free text into a fixed TF-IDF vector space built from
// the internship corpus. The vocabulary is sorted alphabetically so that the
// same corpus always yields the same vectors.
type TextVectorizer struct {
	logger *logrus.Logger

	terms []string
	vocab map[string]int
	idf   []float64
}

func NewTextVectorizer(logger *logrus.Logger) *TextVectorizer {
	return &TextVectorizer{logger: logger}
}

// Fit builds the vocabulary and document-frequency weights from the corpus.
// Terms that appear in many documents are down-weighted with a smoothed
// inverse document frequency: ln((1+n)/(1+df)) + 1.
func (v *TextVectorizer) Fit(docs []string) error {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, tok := range tokenize(doc) {
			seen[tok] = struct{}{}
		}
		for tok := range seen {
			df[tok]++
		}
	}

	if len(docs) == 0 || len(df) == 0 {
		return &ConfigurationError{Reason: "empty corpus: no terms to build a vocabulary from"}
	}

	terms := make([]string, 0, len(df))
	for t := range df {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	vocab := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	n := float64(len(docs))
	for i, t := range terms {
		vocab[t] = i
		idf[i] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}

	v.terms = terms
	v.vocab = vocab
	v.idf = idf

	v.logger.WithFields(logrus.Fields{
		"documents":  len(docs),
		"vocabulary": len(terms),
	}).Debug("Text vectorizer fitted")

	return nil
}

// Transform maps any text into the fitted space. Terms outside the
// vocabulary contribute nothing; the result is L2-normalized so that
// identical texts have cosine similarity exactly 1.
func (v *TextVectorizer) Transform(text string) []float64 {
	vec := make([]float64, len(v.terms))
	for _, tok := range tokenize(text) {
		if i, ok := v.vocab[tok]; ok {
			vec[i] += v.idf[i]
		}
	}
	if n := floats.Norm(vec, 2); n > 0 {
		floats.Scale(1/n, vec)
	}
	return vec
}

func (v *TextVectorizer) Dimensions() int {
	return len(v.terms)
}

// tokenize lower-cases NFKC-normalized text and splits it into letter/digit
// runs of at least two characters, dropping common English stop words.
func tokenize(text string) []string {
	text = strings.ToLower(norm.NFKC.String(text))

	var tokens []string
	var b strings.Builder
	var runeCount int
	flush := func() {
		if runeCount >= 2 {
			tok := b.String()
			if !stopWords[tok] {
				tokens = append(tokens, tok)
			}
		}
		b.Reset()
		runeCount = 0
	}
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			runeCount++
		} else {
			flush()
		}
	}
	flush()
	return tokens
}

var stopWords = initializeStopWords()

func initializeStopWords() map[string]bool {
	words := []string{
		"a", "an", "and", "are", "as", "at", "be", "but", "by", "do",
		"each", "for", "from", "had", "has", "have", "he", "how", "if",
		"in", "is", "it", "its", "many", "of", "on", "or", "our", "out",
		"said", "she", "so", "some", "that", "the", "their", "them",
		"then", "these", "they", "this", "to", "up", "was", "we", "what",
		"which", "will", "with", "you", "your",
	}

	stopWordMap := make(map[string]bool, len(words))
	for _, w := range words {
		stopWordMap[w] = true
	}
	return stopWordMap
}

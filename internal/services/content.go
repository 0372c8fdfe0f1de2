package services

import (
	"sort"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/talentgrid/internmatch/pkg/models"
)

// ItemScore pairs an internship with its content similarity to a student
// profile. Index is the catalog position, which doubles as the tie-breaker.
type ItemScore struct {
	OpportunityID string
	Score         float64
	Index         int
}

// ContentScorer ranks the internship catalog by lexical similarity between a
// student's skill profile and each internship's profile text. Fitted once
// per session; scoring calls are read-only and safe to run concurrently.
type ContentScorer struct {
	logger     *logrus.Logger
	vectorizer *TextVectorizer

	catalog []models.Opportunity
	vectors [][]float64
	index   map[string]int
}

func NewContentScorer(logger *logrus.Logger) *ContentScorer {
	return &ContentScorer{
		logger:     logger,
		vectorizer: NewTextVectorizer(logger),
	}
}

// Fit builds the vector space from the catalog's profile texts and stores
// one vector per internship, in catalog order.
func (s *ContentScorer) Fit(catalog []models.Opportunity) error {
	profiles := make([]string, len(catalog))
	for i, opp := range catalog {
		profiles[i] = opp.Profile
	}

	if err := s.vectorizer.Fit(profiles); err != nil {
		return err
	}

	vectors := make([][]float64, len(catalog))
	index := make(map[string]int, len(catalog))
	for i, opp := range catalog {
		vectors[i] = s.vectorizer.Transform(opp.Profile)
		index[opp.ID] = i
	}

	s.catalog = catalog
	s.vectors = vectors
	s.index = index

	s.logger.WithFields(logrus.Fields{
		"internships": len(catalog),
		"dimensions":  s.vectorizer.Dimensions(),
	}).Info("Content model trained")

	return nil
}

// Scores returns one cosine similarity per catalog item, in catalog order.
// A profile sharing no vocabulary with the corpus scores zero everywhere.
func (s *ContentScorer) Scores(profile string) []float64 {
	userVec := s.vectorizer.Transform(profile)
	scores := make([]float64, len(s.vectors))
	for i, itemVec := range s.vectors {
		// Both vectors are L2-normalized, so cosine reduces to a dot product.
		sim := floats.Dot(userVec, itemVec)
		if sim < 0 {
			sim = 0
		} else if sim > 1 {
			sim = 1
		}
		scores[i] = sim
	}
	return scores
}

// TopN returns the n best content matches, highest first. Equal scores keep
// catalog order so results are reproducible.
func (s *ContentScorer) TopN(profile string, n int) []ItemScore {
	if n <= 0 {
		return nil
	}
	scores := s.Scores(profile)

	ranked := make([]ItemScore, len(scores))
	for i, score := range scores {
		ranked[i] = ItemScore{OpportunityID: s.catalog[i].ID, Score: score, Index: i}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

func (s *ContentScorer) Catalog() []models.Opportunity {
	return s.catalog
}

// Opportunity looks up a catalog item by ID.
func (s *ContentScorer) Opportunity(id string) (models.Opportunity, bool) {
	i, ok := s.index[id]
	if !ok {
		return models.Opportunity{}, false
	}
	return s.catalog[i], true
}

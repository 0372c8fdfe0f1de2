package services

import (
	"fmt"
	"math"
	"sort"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/talentgrid/internmatch/internal/config"
	"github.com/talentgrid/internmatch/pkg/models"
)

// ratingSentinel marks an unrated (student, internship) cell in the rating
// matrix. It never collides with a real rating because ratings are validated
// into [min,max] with min >= 1 before they enter the matrix.
const ratingSentinel = 0

// similarityEpsilon keeps the weighted average defined when a student has no
// similarity mass at all.
const similarityEpsilon = 1e-9

// neighborhoodModel is one fully built training artifact: the dense rating
// matrix plus the student-student cosine similarity matrix. Models are
// immutable after construction and replaced wholesale on retrain.
type neighborhoodModel struct {
	students     []string
	items        []string
	studentIndex map[string]int
	itemIndex    map[string]int
	ratings      *mat.Dense
	similarity   *mat.Dense
}

// NeighborhoodScorer predicts ratings for (student, internship) pairs from
// other students' rating history, weighted by student-student similarity.
// Reads go through an atomic model handle, so Predict stays safe while a
// retrain builds the next model.
type NeighborhoodScorer struct {
	logger *logrus.Logger
	rating config.RatingConfig

	model atomic.Pointer[neighborhoodModel]
}

func NewNeighborhoodScorer(rating config.RatingConfig, logger *logrus.Logger) *NeighborhoodScorer {
	return &NeighborhoodScorer{logger: logger, rating: rating}
}

// Fit pivots rating events into the dense matrix, computes pairwise student
// similarity, and publishes the new model in one swap. On error the previous
// model keeps serving untouched.
func (s *NeighborhoodScorer) Fit(events []models.RatingEvent) error {
	if len(events) == 0 {
		return &TrainingError{Reason: "empty rating history"}
	}

	studentSet := make(map[string]struct{})
	itemSet := make(map[string]struct{})
	for _, ev := range events {
		if ev.Rating < s.rating.Min || ev.Rating > s.rating.Max {
			return &TrainingError{Reason: fmt.Sprintf(
				"rating %d for (%s, %s) is outside [%d,%d]",
				ev.Rating, ev.StudentID, ev.OpportunityID, s.rating.Min, s.rating.Max)}
		}
		if ev.StudentID == "" || ev.OpportunityID == "" {
			return &TrainingError{Reason: "rating event with empty student or internship id"}
		}
		studentSet[ev.StudentID] = struct{}{}
		itemSet[ev.OpportunityID] = struct{}{}
	}

	// Sorted index ordering keeps training bit-identical across runs.
	students := sortedKeys(studentSet)
	items := sortedKeys(itemSet)

	studentIndex := make(map[string]int, len(students))
	for i, id := range students {
		studentIndex[id] = i
	}
	itemIndex := make(map[string]int, len(items))
	for i, id := range items {
		itemIndex[id] = i
	}

	ratings := mat.NewDense(len(students), len(items), nil)
	for _, ev := range events {
		ratings.Set(studentIndex[ev.StudentID], itemIndex[ev.OpportunityID], float64(ev.Rating))
	}

	similarity := rowCosineSimilarity(ratings)

	s.model.Store(&neighborhoodModel{
		students:     students,
		items:        items,
		studentIndex: studentIndex,
		itemIndex:    itemIndex,
		ratings:      ratings,
		similarity:   similarity,
	})

	s.logger.WithFields(logrus.Fields{
		"students":    len(students),
		"internships": len(items),
		"ratings":     len(events),
	}).Info("Collaborative model trained")

	return nil
}

// Trained reports whether at least one fit has succeeded.
func (s *NeighborhoodScorer) Trained() bool {
	return s.model.Load() != nil
}

// Predict returns the similarity-weighted average of other students' ratings
// for the internship, clamped to the rating scale. Unknown students or
// internships get the neutral default rather than an error; cold starts are
// expected here.
func (s *NeighborhoodScorer) Predict(studentID, opportunityID string) float64 {
	m := s.model.Load()
	if m == nil {
		return s.rating.Neutral
	}

	ui, ok := m.studentIndex[studentID]
	if !ok {
		return s.rating.Neutral
	}
	ii, ok := m.itemIndex[opportunityID]
	if !ok {
		return s.rating.Neutral
	}

	var num, den float64
	for j := range m.students {
		if j == ui {
			continue
		}
		sim := m.similarity.At(ui, j)
		num += sim * m.ratings.At(j, ii)
		den += math.Abs(sim)
	}

	pred := num / (den + similarityEpsilon)
	return clamp(pred, float64(s.rating.Min), float64(s.rating.Max))
}

// PredictNormalized maps Predict onto [0,1] for fusion with content scores.
func (s *NeighborhoodScorer) PredictNormalized(studentID, opportunityID string) float64 {
	return s.Predict(studentID, opportunityID) / float64(s.rating.Max)
}

// TopUnrated predicts a rating for every internship the student has not
// rated and returns the n highest, stable-ordered. An unknown student gets
// an empty result.
func (s *NeighborhoodScorer) TopUnrated(studentID string, n int) []models.PredictedRating {
	m := s.model.Load()
	if m == nil {
		return nil
	}
	ui, ok := m.studentIndex[studentID]
	if !ok {
		return nil
	}

	var predictions []models.PredictedRating
	for ii, itemID := range m.items {
		if m.ratings.At(ui, ii) != ratingSentinel {
			continue
		}
		predictions = append(predictions, models.PredictedRating{
			OpportunityID: itemID,
			Rating:        s.Predict(studentID, itemID),
		})
	}

	sort.SliceStable(predictions, func(i, j int) bool {
		return predictions[i].Rating > predictions[j].Rating
	})

	if n >= 0 && n < len(predictions) {
		predictions = predictions[:n]
	}
	return predictions
}

// rowCosineSimilarity computes pairwise cosine similarity between matrix
// rows. Sentinel zeros stay in: students with no internships in common end
// up near zero through the dot product alone.
func rowCosineSimilarity(m *mat.Dense) *mat.Dense {
	rows, cols := m.Dims()

	vecs := make([][]float64, rows)
	norms := make([]float64, rows)
	for i := 0; i < rows; i++ {
		vecs[i] = mat.Row(make([]float64, cols), i, m)
		norms[i] = floats.Norm(vecs[i], 2)
	}

	sim := mat.NewDense(rows, rows, nil)
	for i := 0; i < rows; i++ {
		sim.Set(i, i, 1)
		for j := i + 1; j < rows; j++ {
			var v float64
			if norms[i] > 0 && norms[j] > 0 {
				v = floats.Dot(vecs[i], vecs[j]) / (norms[i] * norms[j])
			}
			sim.Set(i, j, v)
			sim.Set(j, i, v)
		}
	}
	return sim
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/talentgrid/internmatch/internal/config"
	"github.com/talentgrid/internmatch/pkg/models"
)

// Dataset is everything the engine trains from, loaded before serving starts.
type Dataset struct {
	Students      []models.Student
	Opportunities []models.Opportunity
	Feedback      []models.RatingEvent
}

// Load reads all three source files. Feedback rows with out-of-range ratings
// are dropped here, matching the cleaning the engine expects upstream.
func Load(cfg config.DataConfig, rating config.RatingConfig, logger *logrus.Logger) (*Dataset, error) {
	students, err := LoadStudents(cfg.StudentsFile, logger)
	if err != nil {
		return nil, fmt.Errorf("load students: %w", err)
	}
	opportunities, err := LoadOpportunities(cfg.OpportunitiesFile, logger)
	if err != nil {
		return nil, fmt.Errorf("load internships: %w", err)
	}
	feedback, err := LoadFeedback(cfg.FeedbackFile, rating, logger)
	if err != nil {
		return nil, fmt.Errorf("load feedback: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"students":    len(students),
		"internships": len(opportunities),
		"ratings":     len(feedback),
	}).Info("Source data loaded")

	return &Dataset{Students: students, Opportunities: opportunities, Feedback: feedback}, nil
}

// LoadStudents reads the student roster and builds each matching profile
// from the skills and domain-interest columns.
func LoadStudents(path string, logger *logrus.Logger) ([]models.Student, error) {
	rows, header, err := readTable(path)
	if err != nil {
		return nil, err
	}

	var students []models.Student
	for i, row := range rows {
		get := fieldGetter(header, row)

		year, _ := strconv.Atoi(get("year"))
		cgpa, _ := strconv.ParseFloat(get("cgpa"), 64)

		s := models.Student{
			ID:                 get("student_id"),
			Name:               get("name"),
			Branch:             get("branch"),
			Year:               year,
			CGPA:               cgpa,
			Skills:             get("skills"),
			DomainInterest:     get("domain_interest"),
			LocationPreference: get("location_preference"),
			PastInternships:    get("past_internships"),
		}
		if s.ID == "" {
			logger.WithField("line", i+2).Warn("Skipping student row without id")
			continue
		}
		// "None" is the roster's empty marker for past internships.
		if s.PastInternships == "None" {
			s.PastInternships = ""
		}
		s.Profile = joinProfile(s.Skills, s.DomainInterest)
		students = append(students, s)
	}
	return students, nil
}

// LoadOpportunities reads the internship catalog and builds each profile
// from required skills, domain and role.
func LoadOpportunities(path string, logger *logrus.Logger) ([]models.Opportunity, error) {
	rows, header, err := readTable(path)
	if err != nil {
		return nil, err
	}

	var opportunities []models.Opportunity
	for i, row := range rows {
		get := fieldGetter(header, row)

		duration, _ := strconv.Atoi(get("duration_months"))
		stipend, _ := strconv.Atoi(get("stipend"))
		rating, _ := strconv.ParseFloat(get("rating"), 64)
		reviews, _ := strconv.Atoi(get("total_reviews"))

		o := models.Opportunity{
			ID:             get("internship_id"),
			Company:        get("company"),
			Domain:         get("domain"),
			Role:           get("role"),
			RequiredSkills: get("required_skills"),
			Location:       get("location"),
			DurationMonths: duration,
			Stipend:        stipend,
			Rating:         rating,
			TotalReviews:   reviews,
			Description:    get("description"),
		}
		if o.ID == "" {
			logger.WithField("line", i+2).Warn("Skipping internship row without id")
			continue
		}
		o.Profile = joinProfile(o.RequiredSkills, o.Domain, o.Role)
		opportunities = append(opportunities, o)
	}
	return opportunities, nil
}

// LoadFeedback reads the rating history. Rows with unparseable or
// out-of-range ratings are dropped with a warning; they never reach the
// rating matrix.
func LoadFeedback(path string, rating config.RatingConfig, logger *logrus.Logger) ([]models.RatingEvent, error) {
	rows, header, err := readTable(path)
	if err != nil {
		if os.IsNotExist(err) {
			// A missing feedback file is a valid cold start.
			return nil, nil
		}
		return nil, err
	}

	var events []models.RatingEvent
	for i, row := range rows {
		get := fieldGetter(header, row)

		value, err := strconv.Atoi(get("rating"))
		if err != nil || value < rating.Min || value > rating.Max {
			logger.WithFields(logrus.Fields{
				"line":   i + 2,
				"rating": get("rating"),
			}).Warn("Skipping feedback row with invalid rating")
			continue
		}

		ev := models.RatingEvent{
			StudentID:      get("student_id"),
			OpportunityID:  get("internship_id"),
			Rating:         value,
			Comment:        get("feedback_text"),
			CompletionDate: get("completion_date"),
			WouldRecommend: get("would_recommend"),
		}
		if ev.StudentID == "" || ev.OpportunityID == "" {
			logger.WithField("line", i+2).Warn("Skipping feedback row without ids")
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

func readTable(path string) (rows [][]string, header map[string]int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	head, err := r.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("%s: empty file", path)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%s: read header: %w", path, err)
	}

	header = make(map[string]int, len(head))
	for i, name := range head {
		header[strings.TrimSpace(name)] = i
	}

	rows, err = r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, header, nil
}

func fieldGetter(header map[string]int, row []string) func(string) string {
	return func(name string) string {
		i, ok := header[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
}

func joinProfile(parts ...string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, " ")
}

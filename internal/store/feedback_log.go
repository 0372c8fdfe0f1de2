package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/talentgrid/internmatch/pkg/models"
)

var feedbackHeader = []string{
	"student_id", "internship_id", "rating", "feedback_text", "completion_date", "would_recommend",
}

// FeedbackLog is the durable, append-only rating history. Rows are flushed
// per append; there is no update or delete path.
type FeedbackLog struct {
	mu   sync.Mutex
	path string
}

// OpenFeedbackLog opens the log at path, writing the header first if the
// file does not exist yet.
func OpenFeedbackLog(path string) (*FeedbackLog, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("create feedback log: %w", err)
		}
		w := csv.NewWriter(f)
		if err := w.Write(feedbackHeader); err != nil {
			f.Close()
			return nil, fmt.Errorf("write feedback header: %w", err)
		}
		w.Flush()
		if err := f.Close(); err != nil {
			return nil, err
		}
	}
	return &FeedbackLog{path: path}, nil
}

// Append writes one rating event to the end of the log.
func (l *FeedbackLog) Append(ev models.RatingEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open feedback log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	record := []string{
		ev.StudentID,
		ev.OpportunityID,
		strconv.Itoa(ev.Rating),
		ev.Comment,
		ev.CompletionDate,
		ev.WouldRecommend,
	}
	if err := w.Write(record); err != nil {
		return fmt.Errorf("append feedback: %w", err)
	}
	w.Flush()
	return w.Error()
}

package exam

import (
	"context"
	"time"

	"examhub-server/models"
)

// PassThreshold is the minimum percentage counted as a pass.
const PassThreshold = 60.0

// ResultRecorder is the append-only persistence boundary for exam results.
type ResultRecorder interface {
	SaveResult(ctx context.Context, result *models.ExamResult) error
}

// Grade maps a percentage to a letter grade. Lower bounds are inclusive:
// exactly 90.0 is an "A", exactly 60.0 a "D".
func Grade(percentage float64) string {
	switch {
	case percentage >= 90:
		return "A"
	case percentage >= 80:
		return "B"
	case percentage >= 70:
		return "C"
	case percentage >= PassThreshold:
		return "D"
	default:
		return "F"
	}
}

// Passed reports whether a percentage meets the pass threshold.
func Passed(percentage float64) bool { return percentage >= PassThreshold }

// Submit scores the session, marks it submitted and hands the result to the
// recorder. An unanswered question counts as incorrect.
//
// When persistence fails, the computed result is still returned together
// with a *StorageError: the submission stands and the caller decides whether
// to warn the user or retry the save.
func (s *Session) Submit(ctx context.Context, recorder ResultRecorder) (models.ExamResult, error) {
	if s.Submitted {
		return models.ExamResult{}, &SessionClosedError{StudentID: s.Student.StudentID}
	}

	score := 0
	for _, q := range s.Questions {
		if s.Answers[q.ID] == q.CorrectAnswer {
			score++
		}
	}
	total := len(s.Questions) // non-empty, guaranteed by NewSession
	now := time.Now()

	elapsed := int(now.Sub(s.StartedAt).Seconds())
	if elapsed < 0 {
		elapsed = 0 // clock skew
	}

	result := models.ExamResult{
		StudentDBID:    s.Student.ID,
		CategoryID:     s.Category.ID,
		Score:          score,
		TotalQuestions: total,
		Percentage:     100.0 * float64(score) / float64(total),
		TimeTaken:      elapsed,
		SubmittedAt:    now,
		StudentName:    s.Student.FullName,
		StudentID:      s.Student.StudentID,
		CategoryName:   s.Category.Name,
	}

	s.Submitted = true

	if err := recorder.SaveResult(ctx, &result); err != nil {
		return result, &StorageError{Op: "save exam result", Err: err}
	}
	return result, nil
}

// Review builds the per-question breakdown for a submitted session.
func (s *Session) Review() []models.QuestionReview {
	review := make([]models.QuestionReview, 0, len(s.Questions))
	for _, q := range s.Questions {
		chosen := s.Answers[q.ID]
		review = append(review, models.QuestionReview{
			QuestionText:  q.QuestionText,
			YourAnswer:    chosen,
			YourOption:    q.Option(chosen),
			CorrectAnswer: q.CorrectAnswer,
			CorrectOption: q.Option(q.CorrectAnswer),
			Correct:       chosen == q.CorrectAnswer,
		})
	}
	return review
}

package models

import (
	"time"
)

// Category groups questions under a unique name.
type Category struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	QuestionCount int    `json:"question_count,omitempty"` // For API response
}

// Question is a four-option multiple choice question. The correct label is
// never serialized to exam takers; session views use QuestionView instead.
type Question struct {
	ID            int    `json:"id"`
	QuestionText  string `json:"question_text"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	OptionD       string `json:"option_d"`
	CorrectAnswer string `json:"-"` // 'A', 'B', 'C' or 'D'
	CategoryID    int    `json:"category_id"`
	CategoryName  string `json:"category_name,omitempty"`
	Difficulty    string `json:"difficulty_level"`
}

// Option returns the option text for a label, or "" for an unknown label.
func (q Question) Option(label string) string {
	switch label {
	case "A":
		return q.OptionA
	case "B":
		return q.OptionB
	case "C":
		return q.OptionC
	case "D":
		return q.OptionD
	}
	return ""
}

// Student is an exam taker. StudentID is the external-facing identifier
// (e.g. "S12345") and is unique; ID is the database row id.
type Student struct {
	ID        int     `json:"id"`
	StudentID string  `json:"student_id"`
	FullName  string  `json:"full_name"`
	Email     *string `json:"email,omitempty"`
}

// ExamResult is one submitted exam attempt. Append-only: rows are never
// updated or deleted. Grade and pass status are derived from Percentage at
// render time, never stored.
type ExamResult struct {
	ID             int       `json:"id"`
	StudentDBID    int       `json:"-"`
	CategoryID     int       `json:"category_id"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	Percentage     float64   `json:"percentage"`
	TimeTaken      int       `json:"time_taken_seconds"`
	SubmittedAt    time.Time `json:"submitted_at"`

	// Joined fields for history views.
	StudentName  string `json:"student_name,omitempty"`
	StudentID    string `json:"student_id,omitempty"`
	CategoryName string `json:"category_name,omitempty"`
}

// RegisterRequest registers a student (idempotent on student_id).
type RegisterRequest struct {
	StudentID string `json:"student_id" binding:"required"`
	FullName  string `json:"full_name" binding:"required"`
	Email     string `json:"email"`
}

// RegisterResponse returns the student record plus a bearer token for the
// exam session endpoints.
type RegisterResponse struct {
	Student Student `json:"student"`
	Token   string  `json:"token"`
}

// StartExamRequest starts a new exam session for a category.
type StartExamRequest struct {
	CategoryID int `json:"category_id" binding:"required"`
}

// QuestionView is a question as shown to the exam taker: no correct label.
type QuestionView struct {
	ID           int    `json:"id"`
	QuestionText string `json:"question_text"`
	OptionA      string `json:"option_a"`
	OptionB      string `json:"option_b"`
	OptionC      string `json:"option_c"`
	OptionD      string `json:"option_d"`
	Difficulty   string `json:"difficulty_level"`
}

// SessionView is the session state rendered after start/navigation calls.
type SessionView struct {
	CategoryID     int          `json:"category_id"`
	CategoryName   string       `json:"category_name"`
	Position       int          `json:"position"` // 0-based
	TotalQuestions int          `json:"total_questions"`
	Answered       int          `json:"answered"`
	Selected       string       `json:"selected,omitempty"` // prior answer for the current question, if any
	Question       QuestionView `json:"question"`
}

// AnswerRequest records an answer for one question of the active session.
type AnswerRequest struct {
	QuestionID int    `json:"question_id" binding:"required"`
	Answer     string `json:"answer" binding:"required"`
}

// QuestionReview is the per-question breakdown revealed at submission.
type QuestionReview struct {
	QuestionText  string `json:"question_text"`
	YourAnswer    string `json:"your_answer,omitempty"` // label; empty when unanswered
	YourOption    string `json:"your_option,omitempty"`
	CorrectAnswer string `json:"correct_answer"`
	CorrectOption string `json:"correct_option"`
	Correct       bool   `json:"correct"`
}

// SubmitResponse is the scored outcome of a session.
type SubmitResponse struct {
	Score            int              `json:"score"`
	TotalQuestions   int              `json:"total_questions"`
	Percentage       float64          `json:"percentage"`
	Grade            string           `json:"grade"`
	Passed           bool             `json:"passed"`
	TimeTakenSeconds int              `json:"time_taken_seconds"`
	SubmittedAt      time.Time        `json:"submitted_at"`
	Review           []QuestionReview `json:"review"`
	StorageWarning   string           `json:"storage_warning,omitempty"` // set when the result could not be persisted
}

// HistoryEntry is one row of the results history with derived grade/pass.
type HistoryEntry struct {
	ExamResult
	Grade  string `json:"grade"`
	Passed bool   `json:"passed"`
}

// OverallStats are derived aggregates over the full result history.
type OverallStats struct {
	TotalExams        int     `json:"total_exams"`
	AveragePercentage float64 `json:"average_percentage"`
	HighestPercentage float64 `json:"highest_percentage"`
	Passed            int     `json:"passed"`
}

// AdminCategoryRequest creates a category.
type AdminCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// AdminQuestionRequest adds a question to an existing category. The catalog
// may grow over time; historical results keep their own totals.
type AdminQuestionRequest struct {
	CategoryID    int    `json:"category_id" binding:"required"`
	QuestionText  string `json:"question_text" binding:"required"`
	OptionA       string `json:"option_a" binding:"required"`
	OptionB       string `json:"option_b" binding:"required"`
	OptionC       string `json:"option_c" binding:"required"`
	OptionD       string `json:"option_d" binding:"required"`
	CorrectAnswer string `json:"correct_answer" binding:"required,oneof=A B C D"`
	Difficulty    string `json:"difficulty_level"`
}

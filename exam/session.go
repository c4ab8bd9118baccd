package exam

import (
	"time"

	"examhub-server/models"
)

// Labels accepted as answers.
var validLabels = map[string]bool{"A": true, "B": true, "C": true, "D": true}

// ValidLabel reports whether label is one of A, B, C or D.
func ValidLabel(label string) bool { return validLabels[label] }

// Session is one exam attempt by one student against one category's question
// set. The question sequence is snapshotted at session start and never
// reordered; the catalog may grow afterwards without affecting the session.
//
// A Session is owned by a single logical thread of control; concurrent access
// is coordinated by the Manager, not by the Session itself.
type Session struct {
	Student   models.Student
	Category  models.Category
	Questions []models.Question
	Position  int            // 0-based, always within [0, len(Questions)-1]
	Answers   map[int]string // question id -> selected label; no entry when unanswered
	StartedAt time.Time
	Submitted bool
}

// NewSession starts a session at question 0 with an empty answer map.
// The caller is expected to hand in a non-empty question set; an empty one
// is rejected here regardless.
func NewSession(student models.Student, category models.Category, questions []models.Question) (*Session, error) {
	if len(questions) == 0 {
		return nil, &InvalidInputError{Field: "questions", Reason: "category has no questions"}
	}
	return &Session{
		Student:   student,
		Category:  category,
		Questions: questions,
		Position:  0,
		Answers:   make(map[int]string),
		StartedAt: time.Now(),
	}, nil
}

// RecordAnswer stores the selected label for a question of this session,
// overwriting any prior answer for it.
func (s *Session) RecordAnswer(questionID int, label string) error {
	if s.Submitted {
		return &SessionClosedError{StudentID: s.Student.StudentID}
	}
	if !ValidLabel(label) {
		return &InvalidInputError{Field: "answer", Reason: "label must be one of A, B, C, D"}
	}
	if !s.hasQuestion(questionID) {
		return &InvalidInputError{Field: "question_id", Reason: "question does not belong to this session"}
	}
	s.Answers[questionID] = label
	return nil
}

// Next advances to the following question. At the last question it fails
// with a BoundaryError and leaves the position unchanged; it never wraps.
func (s *Session) Next() error {
	if s.Submitted {
		return &SessionClosedError{StudentID: s.Student.StudentID}
	}
	if s.Position >= len(s.Questions)-1 {
		return &BoundaryError{Position: s.Position, Limit: len(s.Questions) - 1}
	}
	s.Position++
	return nil
}

// Previous moves back one question. At question 0 it fails with a
// BoundaryError and leaves the position unchanged.
func (s *Session) Previous() error {
	if s.Submitted {
		return &SessionClosedError{StudentID: s.Student.StudentID}
	}
	if s.Position <= 0 {
		return &BoundaryError{Position: s.Position, Limit: len(s.Questions) - 1}
	}
	s.Position--
	return nil
}

// Restart clears all answers and returns to question 0. Student, category
// and question sequence are preserved. Only a submitted session rejects it.
func (s *Session) Restart() error {
	if s.Submitted {
		return &SessionClosedError{StudentID: s.Student.StudentID}
	}
	s.Position = 0
	s.Answers = make(map[int]string)
	return nil
}

// CurrentQuestion returns the question at the current position.
func (s *Session) CurrentQuestion() models.Question {
	return s.Questions[s.Position]
}

// Answered returns how many questions have a recorded answer.
func (s *Session) Answered() int {
	return len(s.Answers)
}

func (s *Session) hasQuestion(questionID int) bool {
	for _, q := range s.Questions {
		if q.ID == questionID {
			return true
		}
	}
	return false
}

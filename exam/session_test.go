package exam

import (
	"errors"
	"testing"

	"examhub-server/models"
)

func mathQuestions() []models.Question {
	// Correct answers: B, A, A, B, A.
	labels := []string{"B", "A", "A", "B", "A"}
	qs := make([]models.Question, len(labels))
	for i, correct := range labels {
		qs[i] = models.Question{
			ID:            i + 1,
			QuestionText:  "math question",
			OptionA:       "option a",
			OptionB:       "option b",
			OptionC:       "option c",
			OptionD:       "option d",
			CorrectAnswer: correct,
			CategoryID:    2,
			Difficulty:    "Medium",
		}
	}
	return qs
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	student := models.Student{ID: 1, StudentID: "S12345", FullName: "John Smith"}
	category := models.Category{ID: 2, Name: "Mathematics"}
	sess, err := NewSession(student, category, mathQuestions())
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return sess
}

func TestNewSessionRejectsEmptyQuestionSet(t *testing.T) {
	_, err := NewSession(models.Student{StudentID: "S1"}, models.Category{ID: 1}, nil)
	var invalid *InvalidInputError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidInputError, got %v", err)
	}
	if invalid.Field != "questions" {
		t.Errorf("expected offending field %q, got %q", "questions", invalid.Field)
	}
}

func TestNewSessionInitialState(t *testing.T) {
	sess := newTestSession(t)
	if sess.Position != 0 {
		t.Errorf("expected position 0, got %d", sess.Position)
	}
	if len(sess.Answers) != 0 {
		t.Errorf("expected empty answer map, got %d entries", len(sess.Answers))
	}
	if sess.Submitted {
		t.Error("new session must not be submitted")
	}
	if sess.StartedAt.IsZero() {
		t.Error("start time not recorded")
	}
}

func TestRecordAnswer(t *testing.T) {
	tests := []struct {
		name       string
		questionID int
		label      string
		wantErr    bool
	}{
		{"valid label A", 1, "A", false},
		{"valid label D", 5, "D", false},
		{"lowercase label rejected", 1, "a", true},
		{"unknown label rejected", 1, "E", true},
		{"empty label rejected", 1, "", true},
		{"question outside session rejected", 99, "A", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sess := newTestSession(t)
			err := sess.RecordAnswer(tc.questionID, tc.label)
			if tc.wantErr {
				var invalid *InvalidInputError
				if !errors.As(err, &invalid) {
					t.Fatalf("expected InvalidInputError, got %v", err)
				}
				if len(sess.Answers) != 0 {
					t.Error("failed recording must not mutate the answer map")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := sess.Answers[tc.questionID]; got != tc.label {
				t.Errorf("expected answer %q recorded, got %q", tc.label, got)
			}
		})
	}
}

func TestRecordAnswerOverwrites(t *testing.T) {
	sess := newTestSession(t)
	if err := sess.RecordAnswer(1, "A"); err != nil {
		t.Fatal(err)
	}
	if err := sess.RecordAnswer(1, "C"); err != nil {
		t.Fatal(err)
	}
	if got := sess.Answers[1]; got != "C" {
		t.Errorf("expected second answer to win, got %q", got)
	}
	if sess.Answered() != 1 {
		t.Errorf("expected 1 answered question, got %d", sess.Answered())
	}
}

func TestNavigationBounds(t *testing.T) {
	sess := newTestSession(t)

	// Previous at index 0 fails and leaves the position unchanged.
	err := sess.Previous()
	var boundary *BoundaryError
	if !errors.As(err, &boundary) {
		t.Fatalf("expected BoundaryError, got %v", err)
	}
	if sess.Position != 0 {
		t.Errorf("position changed on failed Previous: %d", sess.Position)
	}

	// Walk forward to the last question.
	for i := 0; i < len(sess.Questions)-1; i++ {
		if err := sess.Next(); err != nil {
			t.Fatalf("Next at %d: %v", i, err)
		}
	}
	if sess.Position != len(sess.Questions)-1 {
		t.Fatalf("expected last index, got %d", sess.Position)
	}

	// Next at the last index fails and leaves the position unchanged.
	err = sess.Next()
	if !errors.As(err, &boundary) {
		t.Fatalf("expected BoundaryError, got %v", err)
	}
	if sess.Position != len(sess.Questions)-1 {
		t.Errorf("position changed on failed Next: %d", sess.Position)
	}

	if err := sess.Previous(); err != nil {
		t.Fatalf("Previous from last index: %v", err)
	}
	if sess.Position != len(sess.Questions)-2 {
		t.Errorf("expected position %d, got %d", len(sess.Questions)-2, sess.Position)
	}
}

func TestCurrentQuestionFollowsPosition(t *testing.T) {
	sess := newTestSession(t)
	if got := sess.CurrentQuestion().ID; got != 1 {
		t.Errorf("expected question 1, got %d", got)
	}
	if err := sess.Next(); err != nil {
		t.Fatal(err)
	}
	if got := sess.CurrentQuestion().ID; got != 2 {
		t.Errorf("expected question 2, got %d", got)
	}
}

func TestRestart(t *testing.T) {
	sess := newTestSession(t)
	if err := sess.RecordAnswer(1, "B"); err != nil {
		t.Fatal(err)
	}
	if err := sess.RecordAnswer(2, "A"); err != nil {
		t.Fatal(err)
	}
	if err := sess.Next(); err != nil {
		t.Fatal(err)
	}

	if err := sess.Restart(); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	if sess.Position != 0 {
		t.Errorf("expected position reset to 0, got %d", sess.Position)
	}
	if len(sess.Answers) != 0 {
		t.Errorf("expected answers cleared, got %d entries", len(sess.Answers))
	}
	if sess.Student.StudentID != "S12345" || sess.Category.ID != 2 || len(sess.Questions) != 5 {
		t.Error("restart must preserve student, category and question sequence")
	}

	// Restarting an untouched session is also fine.
	if err := sess.Restart(); err != nil {
		t.Fatalf("Restart on clean session: %v", err)
	}
}

func TestMutationsAfterSubmitFail(t *testing.T) {
	sess := newTestSession(t)
	sess.Submitted = true

	assertClosed := func(name string, err error) {
		t.Helper()
		var closed *SessionClosedError
		if !errors.As(err, &closed) {
			t.Fatalf("%s: expected SessionClosedError, got %v", name, err)
		}
	}

	assertClosed("RecordAnswer", sess.RecordAnswer(1, "A"))
	assertClosed("Next", sess.Next())
	assertClosed("Previous", sess.Previous())
	assertClosed("Restart", sess.Restart())
}

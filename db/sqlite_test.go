package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"examhub-server/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	ctx := context.Background()
	store, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "exam_test.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(store.Close)
	if err := store.CreateSchema(ctx); err != nil {
		t.Fatalf("CreateSchema: %v", err)
	}
	return store
}

func seedCategory(t *testing.T, store *SQLiteStore) (models.Category, []models.Question) {
	t.Helper()
	ctx := context.Background()
	cat, err := store.CreateCategory(ctx, "Mathematics", "Algebra and friends")
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	labels := []string{"B", "A", "A"}
	var questions []models.Question
	for _, correct := range labels {
		q, err := store.AddQuestion(ctx, models.Question{
			QuestionText:  "sample",
			OptionA:       "a",
			OptionB:       "b",
			OptionC:       "c",
			OptionD:       "d",
			CorrectAnswer: correct,
			CategoryID:    cat.ID,
		})
		if err != nil {
			t.Fatalf("AddQuestion: %v", err)
		}
		questions = append(questions, q)
	}
	return cat, questions
}

func TestSQLiteCatalog(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	cat, questions := seedCategory(t, store)

	cats, err := store.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(cats) != 1 || cats[0].Name != "Mathematics" || cats[0].QuestionCount != 3 {
		t.Errorf("unexpected categories: %+v", cats)
	}

	count, err := store.CountQuestions(ctx, cat.ID)
	if err != nil {
		t.Fatalf("CountQuestions: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 questions, got %d", count)
	}

	got, err := store.ListQuestions(ctx, cat.ID)
	if err != nil {
		t.Fatalf("ListQuestions: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(got))
	}
	// Insertion order is preserved.
	for i := range got {
		if got[i].ID != questions[i].ID {
			t.Errorf("question %d out of order: got id %d, expected %d", i, got[i].ID, questions[i].ID)
		}
	}
	if got[0].CorrectAnswer != "B" || got[0].Difficulty != "Medium" || got[0].CategoryName != "Mathematics" {
		t.Errorf("unexpected first question: %+v", got[0])
	}

	if _, err := store.GetCategory(ctx, 9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing category, got %v", err)
	}
}

func TestSQLiteRegisterStudentIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	email := "john@example.com"
	first, err := store.RegisterStudent(ctx, "S12345", "John Smith", &email)
	if err != nil {
		t.Fatalf("RegisterStudent: %v", err)
	}
	second, err := store.RegisterStudent(ctx, "S12345", "Someone Else", nil)
	if err != nil {
		t.Fatalf("second RegisterStudent: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("re-registration created a new row: %d != %d", second.ID, first.ID)
	}
	if second.FullName != "John Smith" {
		t.Errorf("re-registration overwrote the record: %+v", second)
	}
	if second.Email == nil || *second.Email != email {
		t.Errorf("expected original email preserved, got %v", second.Email)
	}

	if _, err := store.GetStudent(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing student, got %v", err)
	}
}

func TestSQLiteResultsAppendOnlyAndOrdered(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	cat, _ := seedCategory(t, store)
	student, err := store.RegisterStudent(ctx, "S1", "Jane", nil)
	if err != nil {
		t.Fatalf("RegisterStudent: %v", err)
	}

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 3; i++ {
		r := models.ExamResult{
			StudentDBID:    student.ID,
			CategoryID:     cat.ID,
			Score:          i,
			TotalQuestions: 3,
			Percentage:     100.0 * float64(i) / 3.0,
			TimeTaken:      42,
			SubmittedAt:    base.Add(time.Duration(i) * time.Second),
		}
		if err := store.SaveResult(ctx, &r); err != nil {
			t.Fatalf("SaveResult %d: %v", i, err)
		}
		if r.ID == 0 {
			t.Fatal("SaveResult did not set the row id")
		}
	}

	results, err := store.ListResults(ctx)
	if err != nil {
		t.Fatalf("ListResults: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	// Most recent first.
	if results[0].Score != 2 || results[2].Score != 0 {
		t.Errorf("results not ordered newest first: %+v", results)
	}
	if results[0].StudentName != "Jane" || results[0].CategoryName != "Mathematics" {
		t.Errorf("missing joined fields: %+v", results[0])
	}
	if !results[0].SubmittedAt.Equal(base.Add(2 * time.Second)) {
		t.Errorf("submitted_at round trip mismatch: %v", results[0].SubmittedAt)
	}

	mine, err := store.ListStudentResults(ctx, student.ID)
	if err != nil {
		t.Fatalf("ListStudentResults: %v", err)
	}
	if len(mine) != 3 {
		t.Errorf("expected 3 student results, got %d", len(mine))
	}
}

package db

import (
	"context"
	"errors"

	"examhub-server/models"
)

// ErrNotFound is returned when a looked-up row does not exist.
var ErrNotFound = errors.New("not found")

// Store is the persistence boundary: the read-only question catalog, the
// student registry and the append-only exam result history. Results are
// only ever inserted and listed, never updated or deleted.
type Store interface {
	CreateSchema(ctx context.Context) error

	// Catalog.
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id int) (models.Category, error)
	CreateCategory(ctx context.Context, name, description string) (models.Category, error)
	ListQuestions(ctx context.Context, categoryID int) ([]models.Question, error)
	CountQuestions(ctx context.Context, categoryID int) (int, error)
	AddQuestion(ctx context.Context, q models.Question) (models.Question, error)

	// Students. RegisterStudent is idempotent on the external student id:
	// re-registering returns the existing record untouched.
	RegisterStudent(ctx context.Context, studentID, fullName string, email *string) (models.Student, error)
	GetStudent(ctx context.Context, studentID string) (models.Student, error)

	// Results.
	SaveResult(ctx context.Context, result *models.ExamResult) error
	ListResults(ctx context.Context) ([]models.ExamResult, error)
	ListStudentResults(ctx context.Context, studentDBID int) ([]models.ExamResult, error)

	Close()
}

package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"examhub-server/models"
)

// PGStore is the PostgreSQL-backed Store.
type PGStore struct {
	pool *pgxpool.Pool
}

// InitDB initializes the PostgreSQL connection pool and verifies it.
func InitDB(ctx context.Context, connString string) (*PGStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Connected to PostgreSQL database")
	return &PGStore{pool: pool}, nil
}

func (s *PGStore) Close() { s.pool.Close() }

// CreateSchema sets up the tables. In a production environment, use a proper
// migration tool (e.g. golang-migrate).
func (s *PGStore) CreateSchema(ctx context.Context) error {
	schemaSQL := `
	CREATE TABLE IF NOT EXISTS categories (
		id SERIAL PRIMARY KEY,
		name VARCHAR(255) UNIQUE NOT NULL,
		description TEXT,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS questions (
		id SERIAL PRIMARY KEY,
		question_text TEXT NOT NULL,
		option_a TEXT NOT NULL,
		option_b TEXT NOT NULL,
		option_c TEXT NOT NULL,
		option_d TEXT NOT NULL,
		correct_answer CHAR(1) NOT NULL CHECK (correct_answer IN ('A', 'B', 'C', 'D')),
		category_id INT NOT NULL,
		difficulty_level VARCHAR(50) DEFAULT 'Medium',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (category_id) REFERENCES categories(id)
	);

	CREATE TABLE IF NOT EXISTS students (
		id SERIAL PRIMARY KEY,
		student_id VARCHAR(255) UNIQUE NOT NULL,
		full_name VARCHAR(255) NOT NULL,
		email VARCHAR(255),
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS exam_results (
		id SERIAL PRIMARY KEY,
		student_id INT NOT NULL,
		category_id INT NOT NULL,
		score INT NOT NULL,
		total_questions INT NOT NULL,
		percentage DOUBLE PRECISION NOT NULL,
		time_taken INT NOT NULL DEFAULT 0,
		submitted_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (student_id) REFERENCES students(id),
		FOREIGN KEY (category_id) REFERENCES categories(id)
	);
	`
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("error executing schema SQL: %w", err)
	}
	return nil
}

// ListCategories returns all categories with their question counts, ordered
// by name.
func (s *PGStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT c.id, c.name, COALESCE(c.description, ''), COUNT(q.id)
		FROM categories c
		LEFT JOIN questions q ON q.category_id = c.id
		GROUP BY c.id
		ORDER BY c.name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.QuestionCount); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *PGStore) GetCategory(ctx context.Context, id int) (models.Category, error) {
	var c models.Category
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, COALESCE(description, '') FROM categories WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Category{}, ErrNotFound
	}
	if err != nil {
		return models.Category{}, fmt.Errorf("failed to query category %d: %w", id, err)
	}
	return c, nil
}

func (s *PGStore) CreateCategory(ctx context.Context, name, description string) (models.Category, error) {
	var c models.Category
	err := s.pool.QueryRow(ctx, `
		INSERT INTO categories (name, description) VALUES ($1, $2) RETURNING id, name, COALESCE(description, '')
	`, name, description).Scan(&c.ID, &c.Name, &c.Description)
	if err != nil {
		return models.Category{}, fmt.Errorf("failed to insert category %s: %w", name, err)
	}
	return c, nil
}

// ListQuestions returns a category's questions in insertion order. This is
// the ordering sessions snapshot at start time.
func (s *PGStore) ListQuestions(ctx context.Context, categoryID int) ([]models.Question, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT q.id, q.question_text, q.option_a, q.option_b, q.option_c, q.option_d,
		       q.correct_answer, q.category_id, c.name, q.difficulty_level
		FROM questions q
		JOIN categories c ON q.category_id = c.id
		WHERE q.category_id = $1
		ORDER BY q.id
	`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions for category %d: %w", categoryID, err)
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.QuestionText, &q.OptionA, &q.OptionB, &q.OptionC, &q.OptionD,
			&q.CorrectAnswer, &q.CategoryID, &q.CategoryName, &q.Difficulty); err != nil {
			return nil, fmt.Errorf("failed to scan question row: %w", err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func (s *PGStore) CountQuestions(ctx context.Context, categoryID int) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM questions WHERE category_id = $1`, categoryID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count questions for category %d: %w", categoryID, err)
	}
	return count, nil
}

func (s *PGStore) AddQuestion(ctx context.Context, q models.Question) (models.Question, error) {
	if q.Difficulty == "" {
		q.Difficulty = "Medium"
	}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO questions (question_text, option_a, option_b, option_c, option_d, correct_answer, category_id, difficulty_level)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id
	`, q.QuestionText, q.OptionA, q.OptionB, q.OptionC, q.OptionD, q.CorrectAnswer, q.CategoryID, q.Difficulty).Scan(&q.ID)
	if err != nil {
		return models.Question{}, fmt.Errorf("failed to insert question: %w", err)
	}
	return q, nil
}

// RegisterStudent inserts the student unless the external id already exists,
// then returns the stored record. Same external id never creates a second row.
func (s *PGStore) RegisterStudent(ctx context.Context, studentID, fullName string, email *string) (models.Student, error) {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO students (student_id, full_name, email)
		VALUES ($1, $2, $3)
		ON CONFLICT (student_id) DO NOTHING
	`, studentID, fullName, email)
	if err != nil {
		return models.Student{}, fmt.Errorf("failed to upsert student %s: %w", studentID, err)
	}
	return s.GetStudent(ctx, studentID)
}

func (s *PGStore) GetStudent(ctx context.Context, studentID string) (models.Student, error) {
	var st models.Student
	err := s.pool.QueryRow(ctx, `
		SELECT id, student_id, full_name, email FROM students WHERE student_id = $1
	`, studentID).Scan(&st.ID, &st.StudentID, &st.FullName, &st.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Student{}, ErrNotFound
	}
	if err != nil {
		return models.Student{}, fmt.Errorf("failed to query student %s: %w", studentID, err)
	}
	return st, nil
}

// SaveResult appends one exam result. Rows are never updated or deleted.
func (s *PGStore) SaveResult(ctx context.Context, result *models.ExamResult) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO exam_results (student_id, category_id, score, total_questions, percentage, time_taken, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id
	`, result.StudentDBID, result.CategoryID, result.Score, result.TotalQuestions,
		result.Percentage, result.TimeTaken, result.SubmittedAt).Scan(&result.ID)
	if err != nil {
		return fmt.Errorf("failed to insert exam result: %w", err)
	}
	return nil
}

const resultColumns = `
	er.id, er.student_id, er.category_id, er.score, er.total_questions,
	er.percentage, er.time_taken, er.submitted_at,
	s.full_name, s.student_id, c.name
`

// ListResults returns the full history, most recent first.
func (s *PGStore) ListResults(ctx context.Context) ([]models.ExamResult, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+resultColumns+`
		FROM exam_results er
		JOIN students s ON er.student_id = s.id
		JOIN categories c ON er.category_id = c.id
		ORDER BY er.submitted_at DESC, er.id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query exam results: %w", err)
	}
	defer rows.Close()
	return scanResults(rows)
}

func (s *PGStore) ListStudentResults(ctx context.Context, studentDBID int) ([]models.ExamResult, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+resultColumns+`
		FROM exam_results er
		JOIN students s ON er.student_id = s.id
		JOIN categories c ON er.category_id = c.id
		WHERE er.student_id = $1
		ORDER BY er.submitted_at DESC, er.id DESC
	`, studentDBID)
	if err != nil {
		return nil, fmt.Errorf("failed to query exam results for student %d: %w", studentDBID, err)
	}
	defer rows.Close()
	return scanResults(rows)
}

func scanResults(rows pgx.Rows) ([]models.ExamResult, error) {
	var results []models.ExamResult
	for rows.Next() {
		var r models.ExamResult
		if err := rows.Scan(&r.ID, &r.StudentDBID, &r.CategoryID, &r.Score, &r.TotalQuestions,
			&r.Percentage, &r.TimeTaken, &r.SubmittedAt,
			&r.StudentName, &r.StudentID, &r.CategoryName); err != nil {
			return nil, fmt.Errorf("failed to scan exam result row: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	_ "modernc.org/sqlite" // driver: sqlite

	"examhub-server/models"
)

// SQLiteStore is the SQLite-backed Store (the default backend).
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the SQLite database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		path = "exam_system.db"
	}
	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database %s: %w", path, err)
	}
	log.Printf("Connected to SQLite database %s", path)
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() { _ = s.db.Close() }

func (s *SQLiteStore) CreateSchema(ctx context.Context) error {
	schemaSQL := `
	CREATE TABLE IF NOT EXISTS categories (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT UNIQUE NOT NULL,
		description TEXT,
		created_at INTEGER NOT NULL DEFAULT (unixepoch())
	);

	CREATE TABLE IF NOT EXISTS questions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		question_text TEXT NOT NULL,
		option_a TEXT NOT NULL,
		option_b TEXT NOT NULL,
		option_c TEXT NOT NULL,
		option_d TEXT NOT NULL,
		correct_answer TEXT NOT NULL CHECK (correct_answer IN ('A', 'B', 'C', 'D')),
		category_id INTEGER NOT NULL REFERENCES categories(id),
		difficulty_level TEXT DEFAULT 'Medium',
		created_at INTEGER NOT NULL DEFAULT (unixepoch())
	);

	CREATE TABLE IF NOT EXISTS students (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		student_id TEXT UNIQUE NOT NULL,
		full_name TEXT NOT NULL,
		email TEXT,
		created_at INTEGER NOT NULL DEFAULT (unixepoch())
	);

	CREATE TABLE IF NOT EXISTS exam_results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		student_id INTEGER NOT NULL REFERENCES students(id),
		category_id INTEGER NOT NULL REFERENCES categories(id),
		score INTEGER NOT NULL,
		total_questions INTEGER NOT NULL,
		percentage REAL NOT NULL,
		time_taken INTEGER NOT NULL DEFAULT 0,
		submitted_at INTEGER NOT NULL
	);
	`
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("error executing schema SQL: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
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

func (s *SQLiteStore) GetCategory(ctx context.Context, id int) (models.Category, error) {
	var c models.Category
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, COALESCE(description, '') FROM categories WHERE id = ?
	`, id).Scan(&c.ID, &c.Name, &c.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Category{}, ErrNotFound
	}
	if err != nil {
		return models.Category{}, fmt.Errorf("failed to query category %d: %w", id, err)
	}
	return c, nil
}

func (s *SQLiteStore) CreateCategory(ctx context.Context, name, description string) (models.Category, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (name, description) VALUES (?, ?)
	`, name, description)
	if err != nil {
		return models.Category{}, fmt.Errorf("failed to insert category %s: %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Category{}, fmt.Errorf("failed to read category id: %w", err)
	}
	return models.Category{ID: int(id), Name: name, Description: description}, nil
}

func (s *SQLiteStore) ListQuestions(ctx context.Context, categoryID int) ([]models.Question, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT q.id, q.question_text, q.option_a, q.option_b, q.option_c, q.option_d,
		       q.correct_answer, q.category_id, c.name, q.difficulty_level
		FROM questions q
		JOIN categories c ON q.category_id = c.id
		WHERE q.category_id = ?
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

func (s *SQLiteStore) CountQuestions(ctx context.Context, categoryID int) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM questions WHERE category_id = ?`, categoryID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count questions for category %d: %w", categoryID, err)
	}
	return count, nil
}

func (s *SQLiteStore) AddQuestion(ctx context.Context, q models.Question) (models.Question, error) {
	if q.Difficulty == "" {
		q.Difficulty = "Medium"
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO questions (question_text, option_a, option_b, option_c, option_d, correct_answer, category_id, difficulty_level)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, q.QuestionText, q.OptionA, q.OptionB, q.OptionC, q.OptionD, q.CorrectAnswer, q.CategoryID, q.Difficulty)
	if err != nil {
		return models.Question{}, fmt.Errorf("failed to insert question: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Question{}, fmt.Errorf("failed to read question id: %w", err)
	}
	q.ID = int(id)
	return q, nil
}

func (s *SQLiteStore) RegisterStudent(ctx context.Context, studentID, fullName string, email *string) (models.Student, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO students (student_id, full_name, email) VALUES (?, ?, ?)
	`, studentID, fullName, email)
	if err != nil {
		return models.Student{}, fmt.Errorf("failed to upsert student %s: %w", studentID, err)
	}
	return s.GetStudent(ctx, studentID)
}

func (s *SQLiteStore) GetStudent(ctx context.Context, studentID string) (models.Student, error) {
	var st models.Student
	var email sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, student_id, full_name, email FROM students WHERE student_id = ?
	`, studentID).Scan(&st.ID, &st.StudentID, &st.FullName, &email)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Student{}, ErrNotFound
	}
	if err != nil {
		return models.Student{}, fmt.Errorf("failed to query student %s: %w", studentID, err)
	}
	if email.Valid {
		st.Email = &email.String
	}
	return st, nil
}

func (s *SQLiteStore) SaveResult(ctx context.Context, result *models.ExamResult) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO exam_results (student_id, category_id, score, total_questions, percentage, time_taken, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, result.StudentDBID, result.CategoryID, result.Score, result.TotalQuestions,
		result.Percentage, result.TimeTaken, result.SubmittedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to insert exam result: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read exam result id: %w", err)
	}
	result.ID = int(id)
	return nil
}

func (s *SQLiteStore) ListResults(ctx context.Context) ([]models.ExamResult, error) {
	return s.queryResults(ctx, `
		SELECT er.id, er.student_id, er.category_id, er.score, er.total_questions,
		       er.percentage, er.time_taken, er.submitted_at,
		       s.full_name, s.student_id, c.name
		FROM exam_results er
		JOIN students s ON er.student_id = s.id
		JOIN categories c ON er.category_id = c.id
		ORDER BY er.submitted_at DESC, er.id DESC
	`)
}

func (s *SQLiteStore) ListStudentResults(ctx context.Context, studentDBID int) ([]models.ExamResult, error) {
	return s.queryResults(ctx, `
		SELECT er.id, er.student_id, er.category_id, er.score, er.total_questions,
		       er.percentage, er.time_taken, er.submitted_at,
		       s.full_name, s.student_id, c.name
		FROM exam_results er
		JOIN students s ON er.student_id = s.id
		JOIN categories c ON er.category_id = c.id
		WHERE er.student_id = ?
		ORDER BY er.submitted_at DESC, er.id DESC
	`, studentDBID)
}

func (s *SQLiteStore) queryResults(ctx context.Context, query string, args ...any) ([]models.ExamResult, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query exam results: %w", err)
	}
	defer rows.Close()

	var results []models.ExamResult
	for rows.Next() {
		var r models.ExamResult
		var submittedAt int64
		if err := rows.Scan(&r.ID, &r.StudentDBID, &r.CategoryID, &r.Score, &r.TotalQuestions,
			&r.Percentage, &r.TimeTaken, &submittedAt,
			&r.StudentName, &r.StudentID, &r.CategoryName); err != nil {
			return nil, fmt.Errorf("failed to scan exam result row: %w", err)
		}
		r.SubmittedAt = time.Unix(submittedAt, 0).UTC()
		results = append(results, r)
	}
	return results, rows.Err()
}

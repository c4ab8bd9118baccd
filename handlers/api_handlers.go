package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"examhub-server/config"
	"examhub-server/db"
	"examhub-server/exam"
	"examhub-server/middleware"
	"examhub-server/models"
	"examhub-server/utils"
)

// statusForError maps core error kinds to HTTP status codes. Boundary and
// closed-session failures are expected client-driven no-ops, not server
// faults.
func statusForError(err error) int {
	var invalid *exam.InvalidInputError
	var boundary *exam.BoundaryError
	var closed *exam.SessionClosedError
	switch {
	case errors.As(err, &invalid):
		return http.StatusBadRequest
	case errors.As(err, &boundary):
		return http.StatusConflict
	case errors.As(err, &closed):
		return http.StatusConflict
	case errors.Is(err, exam.ErrNoActiveSession):
		return http.StatusNotFound
	case errors.Is(err, db.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Register registers a student (idempotent on student_id) and issues a
// bearer token for the exam endpoints.
// POST /api/v1/register
func Register(store db.Store, authCfg config.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		student, err := store.RegisterStudent(c.Request.Context(), req.StudentID, req.FullName, utils.StringPtr(req.Email))
		if err != nil {
			log.Printf("Error registering student %s: %v", req.StudentID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register student"})
			return
		}

		token, err := middleware.IssueStudentToken(authCfg.JWTSigningKey, authCfg.Issuer, student.StudentID, student.FullName, authCfg.TokenTTL)
		if err != nil {
			log.Printf("Error issuing token for student %s: %v", student.StudentID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
			return
		}

		c.JSON(http.StatusOK, models.RegisterResponse{Student: student, Token: token})
	}
}

// GetCategories lists available categories with question counts.
// GET /api/v1/categories
func GetCategories(store db.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := store.ListCategories(c.Request.Context())
		if err != nil {
			log.Printf("Error querying categories: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve categories"})
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

// StartExamSession snapshots a category's questions and starts a session.
// Any previous session for the student is replaced.
// POST /api/v1/exam_sessions
func StartExamSession(store db.Store, sessions *exam.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.StartExamRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		studentID := c.GetString("student_id") // Set by JWT middleware

		student, err := store.GetStudent(c.Request.Context(), studentID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Student not registered"})
				return
			}
			log.Printf("Error fetching student %s: %v", studentID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load student"})
			return
		}

		category, err := store.GetCategory(c.Request.Context(), req.CategoryID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
				return
			}
			log.Printf("Error fetching category %d: %v", req.CategoryID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load category"})
			return
		}

		questions, err := store.ListQuestions(c.Request.Context(), category.ID)
		if err != nil {
			log.Printf("Error fetching questions for category %d: %v", category.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load questions"})
			return
		}

		sess, err := sessions.Start(student, category, questions)
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, sessionView(sess))
	}
}

// GetCurrentQuestion returns the session state at the current position.
// GET /api/v1/exam_sessions/current
func GetCurrentQuestion(sessions *exam.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := sessions.Get(c.GetString("student_id"))
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, sessionView(sess))
	}
}

// RecordAnswer records (or overwrites) an answer for one question.
// POST /api/v1/exam_sessions/answers
func RecordAnswer(sessions *exam.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.AnswerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		sess, err := sessions.Get(c.GetString("student_id"))
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		if err := sess.RecordAnswer(req.QuestionID, req.Answer); err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, sessionView(sess))
	}
}

// NextQuestion advances the session position.
// POST /api/v1/exam_sessions/next
func NextQuestion(sessions *exam.Manager) gin.HandlerFunc {
	return navigate(sessions, func(s *exam.Session) error { return s.Next() })
}

// PreviousQuestion moves the session position back.
// POST /api/v1/exam_sessions/previous
func PreviousQuestion(sessions *exam.Manager) gin.HandlerFunc {
	return navigate(sessions, func(s *exam.Session) error { return s.Previous() })
}

// RestartSession clears all answers and returns to the first question.
// POST /api/v1/exam_sessions/restart
func RestartSession(sessions *exam.Manager) gin.HandlerFunc {
	return navigate(sessions, func(s *exam.Session) error { return s.Restart() })
}

func navigate(sessions *exam.Manager, move func(*exam.Session) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := sessions.Get(c.GetString("student_id"))
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		if err := move(sess); err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, sessionView(sess))
	}
}

// SubmitExamSession scores the session, persists the result and returns the
// scored outcome with a per-question review. If persistence fails the result
// is still returned, with a storage warning for the client to surface.
// POST /api/v1/exam_sessions/submit
func SubmitExamSession(store db.Store, sessions *exam.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		studentID := c.GetString("student_id")
		sess, err := sessions.Get(studentID)
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}

		result, err := sess.Submit(c.Request.Context(), store)
		var storageWarning string
		if err != nil {
			var storage *exam.StorageError
			if !errors.As(err, &storage) {
				c.JSON(statusForError(err), gin.H{"error": err.Error()})
				return
			}
			// The submission stands; the caller may retry the save later.
			log.Printf("Error persisting result for student %s: %v", studentID, err)
			storageWarning = "result could not be saved; your score is shown but will not appear in history"
		}

		c.JSON(http.StatusOK, models.SubmitResponse{
			Score:            result.Score,
			TotalQuestions:   result.TotalQuestions,
			Percentage:       result.Percentage,
			Grade:            exam.Grade(result.Percentage),
			Passed:           exam.Passed(result.Percentage),
			TimeTakenSeconds: result.TimeTaken,
			SubmittedAt:      result.SubmittedAt,
			Review:           sess.Review(),
			StorageWarning:   storageWarning,
		})
	}
}

// GetHistory lists all exam results, most recent first.
// GET /api/v1/results
func GetHistory(store db.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		results, err := store.ListResults(c.Request.Context())
		if err != nil {
			log.Printf("Error querying exam results: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve results"})
			return
		}
		c.JSON(http.StatusOK, historyEntries(results))
	}
}

// GetMyHistory lists the authenticated student's exam results.
// GET /api/v1/results/me
func GetMyHistory(store db.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		studentID := c.GetString("student_id")
		student, err := store.GetStudent(c.Request.Context(), studentID)
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": "Student not registered"})
			return
		}
		results, err := store.ListStudentResults(c.Request.Context(), student.ID)
		if err != nil {
			log.Printf("Error querying results for student %s: %v", studentID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve results"})
			return
		}
		c.JSON(http.StatusOK, historyEntries(results))
	}
}

// GetStats returns aggregate statistics over the full result history.
// GET /api/v1/results/stats
func GetStats(store db.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		results, err := store.ListResults(c.Request.Context())
		if err != nil {
			log.Printf("Error querying exam results for stats: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve results"})
			return
		}
		c.JSON(http.StatusOK, exam.ComputeStats(results))
	}
}

func sessionView(sess *exam.Session) models.SessionView {
	q := sess.CurrentQuestion()
	return models.SessionView{
		CategoryID:     sess.Category.ID,
		CategoryName:   sess.Category.Name,
		Position:       sess.Position,
		TotalQuestions: len(sess.Questions),
		Answered:       sess.Answered(),
		Selected:       sess.Answers[q.ID],
		Question: models.QuestionView{
			ID:           q.ID,
			QuestionText: q.QuestionText,
			OptionA:      q.OptionA,
			OptionB:      q.OptionB,
			OptionC:      q.OptionC,
			OptionD:      q.OptionD,
			Difficulty:   q.Difficulty,
		},
	}
}

func historyEntries(results []models.ExamResult) []models.HistoryEntry {
	entries := make([]models.HistoryEntry, 0, len(results))
	for _, r := range results {
		entries = append(entries, models.HistoryEntry{
			ExamResult: r,
			Grade:      exam.Grade(r.Percentage),
			Passed:     exam.Passed(r.Percentage),
		})
	}
	return entries
}

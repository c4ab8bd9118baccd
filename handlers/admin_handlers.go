package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"examhub-server/db"
	"examhub-server/exam"
	"examhub-server/ingestion"
	"examhub-server/models"
)

// AdminCreateCategory creates a category. Categories are immutable after
// creation; there is no update or delete.
// POST /admin/categories
func AdminCreateCategory(store db.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.AdminCategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		category, err := store.CreateCategory(c.Request.Context(), req.Name, req.Description)
		if err != nil {
			log.Printf("Error creating category %s: %v", req.Name, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
			return
		}
		c.JSON(http.StatusCreated, category)
	}
}

// AdminAddQuestion appends a question to an existing category. Growing a
// category never invalidates historical results: each result carries the
// question count its session was started with.
// POST /admin/questions
func AdminAddQuestion(store db.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.AdminQuestionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if !exam.ValidLabel(req.CorrectAnswer) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "correct_answer must be one of A, B, C, D"})
			return
		}
		if _, err := store.GetCategory(c.Request.Context(), req.CategoryID); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
				return
			}
			log.Printf("Error fetching category %d: %v", req.CategoryID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load category"})
			return
		}

		question, err := store.AddQuestion(c.Request.Context(), models.Question{
			QuestionText:  req.QuestionText,
			OptionA:       req.OptionA,
			OptionB:       req.OptionB,
			OptionC:       req.OptionC,
			OptionD:       req.OptionD,
			CorrectAnswer: req.CorrectAnswer,
			CategoryID:    req.CategoryID,
			Difficulty:    req.Difficulty,
		})
		if err != nil {
			log.Printf("Error inserting question: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to insert question"})
			return
		}
		c.JSON(http.StatusCreated, question)
	}
}

// TriggerSeed re-runs question bank ingestion from the configured seed file
// (or the built-in bank). Existing categories are left untouched.
// POST /admin/seed
func TriggerSeed(store db.Store, seedFile string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := ingestion.SeedFromConfig(c.Request.Context(), store, seedFile); err != nil {
			log.Printf("Error seeding question bank: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		categories, err := store.ListCategories(c.Request.Context())
		if err != nil {
			log.Printf("Error listing categories after seed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Seed succeeded but listing categories failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"seeded": true, "categories": categories})
	}
}

// AdminStudentHistory lists a specific student's exam results.
// GET /admin/students/:student_id/history
func AdminStudentHistory(store db.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		studentID := c.Param("student_id")
		student, err := store.GetStudent(c.Request.Context(), studentID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
				return
			}
			log.Printf("Error fetching student %s: %v", studentID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load student"})
			return
		}
		results, err := store.ListStudentResults(c.Request.Context(), student.ID)
		if err != nil {
			log.Printf("Error querying results for student %s: %v", studentID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve results"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"student": student, "results": historyEntries(results)})
	}
}

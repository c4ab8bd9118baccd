package ingestion

import (
	"context"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"examhub-server/db"
	"examhub-server/models"
)

// Bank is a question bank file: categories with their questions.
type Bank struct {
	Categories []BankCategory `yaml:"categories"`
}

// BankCategory is one category entry of a bank file.
type BankCategory struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Questions   []BankQuestion `yaml:"questions"`
}

// BankQuestion is one question entry of a bank file.
type BankQuestion struct {
	Text       string `yaml:"text"`
	OptionA    string `yaml:"option_a"`
	OptionB    string `yaml:"option_b"`
	OptionC    string `yaml:"option_c"`
	OptionD    string `yaml:"option_d"`
	Correct    string `yaml:"correct"`
	Difficulty string `yaml:"difficulty"`
}

// ParseBankFile reads and validates a YAML question bank.
func ParseBankFile(path string) (Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Bank{}, fmt.Errorf("failed to read question bank %s: %w", path, err)
	}
	var bank Bank
	if err := yaml.Unmarshal(data, &bank); err != nil {
		return Bank{}, fmt.Errorf("failed to parse question bank %s: %w", path, err)
	}
	if err := ValidateBank(bank); err != nil {
		return Bank{}, fmt.Errorf("invalid question bank %s: %w", path, err)
	}
	return bank, nil
}

// ValidateBank checks every category and question of a bank. The correct
// label must be one of A-D and point at a non-empty option.
func ValidateBank(bank Bank) error {
	if len(bank.Categories) == 0 {
		return fmt.Errorf("bank has no categories")
	}
	seen := make(map[string]bool)
	for ci, cat := range bank.Categories {
		if cat.Name == "" {
			return fmt.Errorf("category %d has no name", ci)
		}
		if seen[cat.Name] {
			return fmt.Errorf("duplicate category %q", cat.Name)
		}
		seen[cat.Name] = true
		for qi, q := range cat.Questions {
			if err := validateQuestion(q); err != nil {
				return fmt.Errorf("category %q question %d: %w", cat.Name, qi+1, err)
			}
		}
	}
	return nil
}

func validateQuestion(q BankQuestion) error {
	if q.Text == "" {
		return fmt.Errorf("question text is empty")
	}
	options := map[string]string{"A": q.OptionA, "B": q.OptionB, "C": q.OptionC, "D": q.OptionD}
	for label, text := range options {
		if text == "" {
			return fmt.Errorf("option %s is empty", label)
		}
	}
	if options[q.Correct] == "" {
		return fmt.Errorf("correct answer %q is not one of A, B, C, D", q.Correct)
	}
	return nil
}

// Seed loads a bank into the store. Categories that already exist by name
// are skipped entirely, so re-running a seed never duplicates questions.
func Seed(ctx context.Context, store db.Store, bank Bank) error {
	existing, err := store.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("failed to list existing categories: %w", err)
	}
	byName := make(map[string]bool, len(existing))
	for _, c := range existing {
		byName[c.Name] = true
	}

	for _, cat := range bank.Categories {
		if byName[cat.Name] {
			log.Printf("Seed: category %q already present, skipping", cat.Name)
			continue
		}
		created, err := store.CreateCategory(ctx, cat.Name, cat.Description)
		if err != nil {
			return fmt.Errorf("failed to create category %q: %w", cat.Name, err)
		}
		for qi, q := range cat.Questions {
			difficulty := q.Difficulty
			if difficulty == "" {
				difficulty = "Medium"
			}
			_, err := store.AddQuestion(ctx, models.Question{
				QuestionText:  q.Text,
				OptionA:       q.OptionA,
				OptionB:       q.OptionB,
				OptionC:       q.OptionC,
				OptionD:       q.OptionD,
				CorrectAnswer: q.Correct,
				CategoryID:    created.ID,
				Difficulty:    difficulty,
			})
			if err != nil {
				return fmt.Errorf("failed to insert question %d of category %q: %w", qi+1, cat.Name, err)
			}
		}
		log.Printf("Seed: created category %q with %d questions", cat.Name, len(cat.Questions))
	}
	return nil
}

// SeedFromConfig seeds from the configured bank file, or the built-in bank
// when no file is configured.
func SeedFromConfig(ctx context.Context, store db.Store, seedFile string) error {
	bank := DefaultBank()
	if seedFile != "" {
		parsed, err := ParseBankFile(seedFile)
		if err != nil {
			return err
		}
		bank = parsed
	}
	return Seed(ctx, store, bank)
}

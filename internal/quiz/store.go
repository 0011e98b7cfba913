package quiz

import (
	"context"
	"errors"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrQuestionNotFound = errors.New("question not found")
)

// QuestionStore is the question-bank boundary: category and question reads
// for quiz sessions, plus the administrative bank operations.
type QuestionStore interface {
	ListCategories(ctx context.Context) ([]Category, error)
	GetCategoryByName(ctx context.Context, name string) (Category, error)
	CreateCategory(ctx context.Context, name, displayName string) (Category, error)

	ListQuestions(ctx context.Context, categoryID int64) ([]Question, error)
	GetQuestion(ctx context.Context, id int64) (Question, error)
	CreateQuestion(ctx context.Context, q Question) (Question, error)
	UpdateQuestion(ctx context.Context, q Question) error
	SetQuestionImage(ctx context.Context, id int64, imageKey string) error
	DeleteQuestion(ctx context.Context, id int64) error
	DeleteCategoryQuestions(ctx context.Context, categoryID int64) error
	ListAllQuestions(ctx context.Context) ([]BankQuestion, error)
}

// ResultStore persists outcomes. SaveResult must write the Result and all
// of its AnswerRecords atomically; a partial write would corrupt the
// pass-rate statistics.
type ResultStore interface {
	SaveResult(ctx context.Context, r Result, records []AnswerRecord) (Result, error)
	ListPassedResults(ctx context.Context) ([]ResultView, error)
	ListPassedByCategory(ctx context.Context, categoryID int64) ([]ResultView, error)
	Stats(ctx context.Context) (Stats, error)
}

// BankQuestion is a question joined with its category, for the printable
// admin bank view.
type BankQuestion struct {
	Question
	CategoryName    string `json:"category_name"`
	CategoryDisplay string `json:"category_display"`
}

// ResultView is a result joined with student and category names, for the
// admin review screens.
type ResultView struct {
	Result
	CategoryName    string `json:"category_name"`
	CategoryDisplay string `json:"category_display"`
}

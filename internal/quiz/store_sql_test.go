package quiz_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/maharah-edu/quizserver/internal/db"
	"github.com/maharah-edu/quizserver/internal/quiz"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbh, err := db.Open(context.Background(), db.DriverSQLite, "file:"+t.TempDir()+"/quiz.db")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { dbh.Close() })
	return dbh
}

func seedCategory(t *testing.T, store *quiz.SQLStore, name string) quiz.Category {
	t.Helper()
	cat, err := store.CreateCategory(context.Background(), name, name+" display")
	if err != nil {
		t.Fatalf("create category %q: %v", name, err)
	}
	return cat
}

func TestCategoryAndQuestionCRUD(t *testing.T) {
	ctx := context.Background()
	store := quiz.NewSQLStore(openTestDB(t))

	math := seedCategory(t, store, "math")
	seedCategory(t, store, "science")

	cats, err := store.ListCategories(ctx)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(cats) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(cats))
	}

	if _, err := store.GetCategoryByName(ctx, "history"); !errors.Is(err, quiz.ErrCategoryNotFound) {
		t.Fatalf("missing category error = %v, want ErrCategoryNotFound", err)
	}

	q, err := store.CreateQuestion(ctx, quiz.Question{
		CategoryID:   math.ID,
		Text:         "7 x 2 = ?",
		Options:      []string{"14", "20", "12", "10"},
		CorrectIndex: 0,
	})
	if err != nil {
		t.Fatalf("create question: %v", err)
	}
	if q.ID == 0 {
		t.Fatal("created question has no id")
	}

	got, err := store.GetQuestion(ctx, q.ID)
	if err != nil {
		t.Fatalf("get question: %v", err)
	}
	if got.Text != q.Text || len(got.Options) != 4 || got.CorrectIndex != 0 {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	got.Text = "seven times two?"
	got.CorrectIndex = 0
	if err := store.UpdateQuestion(ctx, got); err != nil {
		t.Fatalf("update question: %v", err)
	}
	updated, err := store.GetQuestion(ctx, q.ID)
	if err != nil {
		t.Fatalf("get updated question: %v", err)
	}
	if updated.Text != "seven times two?" {
		t.Fatalf("update did not stick: %q", updated.Text)
	}

	if err := store.SetQuestionImage(ctx, q.ID, "questions/1/image.png"); err != nil {
		t.Fatalf("set image: %v", err)
	}

	bank, err := store.ListAllQuestions(ctx)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(bank) != 1 || bank[0].CategoryName != "math" {
		t.Fatalf("bank view mismatch: %+v", bank)
	}

	if err := store.DeleteQuestion(ctx, q.ID); err != nil {
		t.Fatalf("delete question: %v", err)
	}
	if err := store.DeleteQuestion(ctx, q.ID); !errors.Is(err, quiz.ErrQuestionNotFound) {
		t.Fatalf("double delete error = %v, want ErrQuestionNotFound", err)
	}
}

func TestDeleteCategoryQuestions(t *testing.T) {
	ctx := context.Background()
	store := quiz.NewSQLStore(openTestDB(t))
	math := seedCategory(t, store, "math")

	for i := 0; i < 3; i++ {
		if _, err := store.CreateQuestion(ctx, quiz.Question{
			CategoryID:   math.ID,
			Text:         "q",
			Options:      []string{"a", "b"},
			CorrectIndex: 0,
		}); err != nil {
			t.Fatalf("create question: %v", err)
		}
	}

	if err := store.DeleteCategoryQuestions(ctx, math.ID); err != nil {
		t.Fatalf("delete category questions: %v", err)
	}
	qs, err := store.ListQuestions(ctx, math.ID)
	if err != nil {
		t.Fatalf("list questions: %v", err)
	}
	if len(qs) != 0 {
		t.Fatalf("expected empty pool after wipe, got %d", len(qs))
	}
}

func TestSaveResultWritesResultAndAnswersTogether(t *testing.T) {
	ctx := context.Background()
	dbh := openTestDB(t)
	store := quiz.NewSQLStore(dbh)
	math := seedCategory(t, store, "math")

	sel := 1
	records := []quiz.AnswerRecord{
		{QuestionID: 10, SelectedIndex: &sel, Correct: true},
		{QuestionID: 11, SelectedIndex: nil, Correct: false},
	}
	saved, err := store.SaveResult(ctx, quiz.Result{
		StudentName:    "Huda",
		CategoryID:     math.ID,
		Score:          1,
		TotalQuestions: 2,
		Percentage:     50,
		Passed:         false,
		CreatedAt:      time.Now().UTC(),
	}, records)
	if err != nil {
		t.Fatalf("save result: %v", err)
	}
	if saved.ID == "" || saved.StudentID == "" {
		t.Fatalf("saved result missing ids: %+v", saved)
	}

	var answers int
	if err := dbh.QueryRow(
		`SELECT COUNT(*) FROM answers WHERE result_id=$1`, saved.ID).Scan(&answers); err != nil {
		t.Fatalf("count answers: %v", err)
	}
	if answers != 2 {
		t.Fatalf("expected 2 answer rows, got %d", answers)
	}

	// Same student name must reuse the student row.
	again, err := store.SaveResult(ctx, quiz.Result{
		StudentName:    "Huda",
		CategoryID:     math.ID,
		Score:          2,
		TotalQuestions: 2,
		Percentage:     100,
		Passed:         true,
	}, nil)
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if again.StudentID != saved.StudentID {
		t.Fatalf("student duplicated: %q vs %q", again.StudentID, saved.StudentID)
	}
}

func TestPassedListingsAndStats(t *testing.T) {
	ctx := context.Background()
	store := quiz.NewSQLStore(openTestDB(t))
	math := seedCategory(t, store, "math")
	reading := seedCategory(t, store, "reading")

	save := func(student string, cat int64, passed bool) {
		t.Helper()
		pct := 50.0
		score := 1
		if passed {
			pct, score = 100.0, 2
		}
		if _, err := store.SaveResult(ctx, quiz.Result{
			StudentName:    student,
			CategoryID:     cat,
			Score:          score,
			TotalQuestions: 2,
			Percentage:     pct,
			Passed:         passed,
		}, nil); err != nil {
			t.Fatalf("save %s: %v", student, err)
		}
	}

	save("Amal", math.ID, true)
	save("Badr", math.ID, false)
	save("Celine", reading.ID, true)

	passed, err := store.ListPassedResults(ctx)
	if err != nil {
		t.Fatalf("list passed: %v", err)
	}
	if len(passed) != 2 {
		t.Fatalf("expected 2 passed results, got %d", len(passed))
	}

	byMath, err := store.ListPassedByCategory(ctx, math.ID)
	if err != nil {
		t.Fatalf("list passed by category: %v", err)
	}
	if len(byMath) != 1 || byMath[0].StudentName != "Amal" || byMath[0].CategoryName != "math" {
		t.Fatalf("math passed listing mismatch: %+v", byMath)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Passed != 2 || stats.TotalAttempts != 3 {
		t.Fatalf("stats mismatch: %+v", stats)
	}
	// 2 of 3 students passed, rounded.
	if stats.PassRate != 67 {
		t.Fatalf("pass rate = %d, want 67", stats.PassRate)
	}
}

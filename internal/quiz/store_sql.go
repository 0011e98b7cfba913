package quiz

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// SQLStore implements QuestionStore and ResultStore over database/sql.
// Placeholders are $n, which both wired drivers (modernc sqlite, pgx)
// accept.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, name_display FROM categories ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.DisplayName); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *SQLStore) GetCategoryByName(ctx context.Context, name string) (Category, error) {
	var c Category
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, name_display FROM categories WHERE name=$1`, name).
		Scan(&c.ID, &c.Name, &c.DisplayName)
	if errors.Is(err, sql.ErrNoRows) {
		return Category{}, ErrCategoryNotFound
	}
	return c, err
}

func (s *SQLStore) CreateCategory(ctx context.Context, name, displayName string) (Category, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO categories (name, name_display) VALUES ($1,$2) RETURNING id`,
		name, displayName).Scan(&id)
	if err != nil {
		return Category{}, err
	}
	return Category{ID: id, Name: name, DisplayName: displayName}, nil
}

func (s *SQLStore) ListQuestions(ctx context.Context, categoryID int64) ([]Question, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, category_id, text, options_json, correct_index, image_key
		 FROM questions WHERE category_id=$1 ORDER BY id`, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *SQLStore) GetQuestion(ctx context.Context, id int64) (Question, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, category_id, text, options_json, correct_index, image_key
		 FROM questions WHERE id=$1`, id)
	q, err := scanQuestion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Question{}, ErrQuestionNotFound
	}
	return q, err
}

func (s *SQLStore) CreateQuestion(ctx context.Context, q Question) (Question, error) {
	oj, err := json.Marshal(q.Options)
	if err != nil {
		return Question{}, err
	}
	err = s.db.QueryRowContext(ctx,
		`INSERT INTO questions (category_id, text, options_json, correct_index, image_key)
		 VALUES ($1,$2,$3,$4,$5) RETURNING id`,
		q.CategoryID, q.Text, string(oj), q.CorrectIndex, q.ImageKey).Scan(&q.ID)
	if err != nil {
		return Question{}, err
	}
	return q, nil
}

func (s *SQLStore) UpdateQuestion(ctx context.Context, q Question) error {
	oj, err := json.Marshal(q.Options)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE questions SET text=$1, options_json=$2, correct_index=$3 WHERE id=$4`,
		q.Text, string(oj), q.CorrectIndex, q.ID)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, ErrQuestionNotFound)
}

func (s *SQLStore) SetQuestionImage(ctx context.Context, id int64, imageKey string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE questions SET image_key=$1 WHERE id=$2`, imageKey, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, ErrQuestionNotFound)
}

func (s *SQLStore) DeleteQuestion(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM questions WHERE id=$1`, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, ErrQuestionNotFound)
}

func (s *SQLStore) DeleteCategoryQuestions(ctx context.Context, categoryID int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM questions WHERE category_id=$1`, categoryID)
	return err
}

func (s *SQLStore) ListAllQuestions(ctx context.Context) ([]BankQuestion, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT q.id, q.category_id, q.text, q.options_json, q.correct_index, q.image_key,
		        c.name, c.name_display
		 FROM questions q JOIN categories c ON c.id = q.category_id
		 ORDER BY c.id, q.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []BankQuestion
	for rows.Next() {
		var b BankQuestion
		var oj string
		if err := rows.Scan(&b.ID, &b.CategoryID, &b.Text, &oj, &b.CorrectIndex, &b.ImageKey,
			&b.CategoryName, &b.CategoryDisplay); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(oj), &b.Options); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// SaveResult upserts the student by name and writes the result row plus all
// answer records in one transaction. Either everything commits or nothing
// does.
func (s *SQLStore) SaveResult(ctx context.Context, r Result, records []AnswerRecord) (Result, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Result{}, err
	}
	defer tx.Rollback()

	var studentID string
	err = tx.QueryRowContext(ctx, `SELECT id FROM students WHERE name=$1`, r.StudentName).Scan(&studentID)
	if errors.Is(err, sql.ErrNoRows) {
		studentID = uuid.NewString()
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO students (id, name) VALUES ($1,$2)`, studentID, r.StudentName); err != nil {
			return Result{}, err
		}
	} else if err != nil {
		return Result{}, err
	}

	r.ID = uuid.NewString()
	r.StudentID = studentID
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO results (id, student_id, category_id, score, total_questions, percentage, passed, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		r.ID, r.StudentID, r.CategoryID, r.Score, r.TotalQuestions, r.Percentage, r.Passed,
		r.CreatedAt.Unix()); err != nil {
		return Result{}, err
	}
	for _, rec := range records {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO answers (result_id, question_id, selected_index, correct)
			 VALUES ($1,$2,$3,$4)`,
			r.ID, rec.QuestionID, rec.SelectedIndex, rec.Correct); err != nil {
			return Result{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return Result{}, err
	}
	return r, nil
}

func (s *SQLStore) ListPassedResults(ctx context.Context) ([]ResultView, error) {
	return s.queryResults(ctx,
		`SELECT r.id, r.student_id, st.name, r.category_id, r.score, r.total_questions,
		        r.percentage, r.passed, r.created_at, c.name, c.name_display
		 FROM results r
		 JOIN students st ON st.id = r.student_id
		 JOIN categories c ON c.id = r.category_id
		 WHERE r.passed
		 ORDER BY r.created_at DESC`)
}

func (s *SQLStore) ListPassedByCategory(ctx context.Context, categoryID int64) ([]ResultView, error) {
	return s.queryResults(ctx,
		`SELECT r.id, r.student_id, st.name, r.category_id, r.score, r.total_questions,
		        r.percentage, r.passed, r.created_at, c.name, c.name_display
		 FROM results r
		 JOIN students st ON st.id = r.student_id
		 JOIN categories c ON c.id = r.category_id
		 WHERE r.passed AND r.category_id=$1
		 ORDER BY r.created_at DESC`, categoryID)
}

func (s *SQLStore) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT student_id) FROM results WHERE passed`).Scan(&st.Passed); err != nil {
		return Stats{}, err
	}
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM results`).Scan(&st.TotalAttempts); err != nil {
		return Stats{}, err
	}
	var students int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM students`).Scan(&students); err != nil {
		return Stats{}, err
	}
	if students > 0 {
		st.PassRate = int(float64(st.Passed)/float64(students)*100 + 0.5)
	}
	return st, nil
}

func (s *SQLStore) queryResults(ctx context.Context, query string, args ...any) ([]ResultView, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ResultView
	for rows.Next() {
		var v ResultView
		var created int64
		if err := rows.Scan(&v.ID, &v.StudentID, &v.StudentName, &v.CategoryID, &v.Score,
			&v.TotalQuestions, &v.Percentage, &v.Passed, &created,
			&v.CategoryName, &v.CategoryDisplay); err != nil {
			return nil, err
		}
		v.CreatedAt = time.Unix(created, 0).UTC()
		out = append(out, v)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row rowScanner) (Question, error) {
	var q Question
	var oj string
	if err := row.Scan(&q.ID, &q.CategoryID, &q.Text, &oj, &q.CorrectIndex, &q.ImageKey); err != nil {
		return Question{}, err
	}
	if err := json.Unmarshal([]byte(oj), &q.Options); err != nil {
		return Question{}, err
	}
	return q, nil
}

func affectedOrNotFound(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/maharah-edu/quizserver/internal/audit"
	"github.com/maharah-edu/quizserver/internal/quiz"
)

// QuizConfig carries the sampling and scoring knobs handlers need.
type QuizConfig struct {
	SampleCount             int
	PerCategoryCount        int
	PassThreshold           float64
	ComprehensiveCategories []string
}

func ListCategoriesHandler(store quiz.QuestionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cats, err := store.ListCategories(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if cats == nil {
			cats = []quiz.Category{}
		}
		_ = json.NewEncoder(w).Encode(cats)
	}
}

type quizResponse struct {
	Category  string                 `json:"category"`
	Questions []quiz.SampledQuestion `json:"questions"`
}

// TakeQuizHandler samples a session for one category, or for the
// comprehensive selector when the path category is "comprehensive". The
// response carries the full session payload, correct text included; the
// client echoes it back on submit.
func TakeQuizHandler(store quiz.QuestionStore, cfg QuizConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "category")

		var session *quiz.Session
		if name == quiz.CategoryComprehensive {
			pools, err := comprehensivePools(r.Context(), store, cfg.ComprehensiveCategories)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			session = quiz.NewSampler().BuildComprehensiveSession(pools, cfg.PerCategoryCount)
		} else {
			cat, err := store.GetCategoryByName(r.Context(), name)
			if errors.Is(err, quiz.ErrCategoryNotFound) {
				http.Error(w, "category not found", http.StatusNotFound)
				return
			}
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			pool, err := store.ListQuestions(r.Context(), cat.ID)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			count := cfg.SampleCount
			if v := r.URL.Query().Get("count"); v != "" {
				if n, err := strconv.Atoi(v); err == nil && n > 0 {
					count = n
				}
			}
			session = quiz.NewSampler().BuildSession(pool, count)
		}

		// A zero-question session is a reportable state, not an error.
		resp := quizResponse{Category: name, Questions: session.Questions}
		if resp.Questions == nil {
			resp.Questions = []quiz.SampledQuestion{}
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func comprehensivePools(ctx context.Context, store quiz.QuestionStore, names []string) ([][]quiz.Question, error) {
	var pools [][]quiz.Question
	for _, name := range names {
		cat, err := store.GetCategoryByName(ctx, name)
		if errors.Is(err, quiz.ErrCategoryNotFound) {
			continue // a configured category with no row contributes nothing
		}
		if err != nil {
			return nil, err
		}
		pool, err := store.ListQuestions(ctx, cat.ID)
		if err != nil {
			return nil, err
		}
		pools = append(pools, pool)
	}
	return pools, nil
}

type submittedQuestion struct {
	QuestionID  int64    `json:"question_id"`
	Text        string   `json:"text"`
	Options     []string `json:"options"`
	CorrectText string   `json:"correct_text"`
	Selected    *int     `json:"selected"`
}

type submitRequest struct {
	StudentName string              `json:"student_name"`
	Category    string              `json:"category"`
	Questions   []submittedQuestion `json:"questions"`
}

type submitResponse struct {
	Result     quiz.Result `json:"result"`
	Passed     bool        `json:"passed"`
	Percentage float64     `json:"percentage"`
}

// SubmitResultHandler scores the echoed session, persists the result with
// its answer records atomically, and appends an audit event.
func SubmitResultHandler(qs quiz.QuestionStore, rs quiz.ResultStore, events *audit.EventRepo, cfg QuizConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req submitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.StudentName == "" || req.Category == "" {
			http.Error(w, "student_name and category required", http.StatusBadRequest)
			return
		}

		cat, err := qs.GetCategoryByName(r.Context(), req.Category)
		if errors.Is(err, quiz.ErrCategoryNotFound) {
			http.Error(w, "category not found", http.StatusBadRequest)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		session, err := sessionFromRequest(req.Questions)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		scorer := quiz.NewScorer(cfg.PassThreshold)
		outcome, records, err := scorer.Score(session)
		if errors.Is(err, quiz.ErrSessionSubmitted) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		result := quiz.AssembleResult(outcome, req.StudentName, cat.ID, time.Now().UTC())
		saved, err := rs.SaveResult(r.Context(), result, records)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		if events != nil {
			data, _ := json.Marshal(saved)
			_ = events.Append(r.Context(), audit.Event{
				Type:     audit.EventTypeResultRecorded,
				Key:      saved.ID,
				DataJSON: string(data),
			})
		}

		_ = json.NewEncoder(w).Encode(submitResponse{
			Result:     saved,
			Passed:     saved.Passed,
			Percentage: saved.Percentage,
		})
	}
}

func sessionFromRequest(questions []submittedQuestion) (*quiz.Session, error) {
	sampled := make([]quiz.SampledQuestion, len(questions))
	for i, q := range questions {
		sampled[i] = quiz.SampledQuestion{
			QuestionID:  q.QuestionID,
			Text:        q.Text,
			Options:     q.Options,
			CorrectText: q.CorrectText,
		}
	}
	session := quiz.NewSession(sampled)
	for i, q := range questions {
		if q.Selected == nil {
			continue
		}
		if err := session.Answer(i, *q.Selected); err != nil {
			return nil, err
		}
	}
	return session, nil
}

func StatsHandler(rs quiz.ResultStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := rs.Stats(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(st)
	}
}

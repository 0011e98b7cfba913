package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"path"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/maharah-edu/quizserver/internal/quiz"
	"github.com/maharah-edu/quizserver/internal/storage"
)

func CreateCategoryHandler(store quiz.QuestionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name        string `json:"name"`
			DisplayName string `json:"name_display"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.Name == "" || req.DisplayName == "" {
			http.Error(w, "name and name_display required", http.StatusBadRequest)
			return
		}
		cat, err := store.CreateCategory(r.Context(), req.Name, req.DisplayName)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(cat)
	}
}

type questionRequest struct {
	CategoryID   int64    `json:"category_id"`
	Text         string   `json:"text"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
}

func (q questionRequest) validate() error {
	if q.Text == "" {
		return errors.New("text required")
	}
	if len(q.Options) < 2 {
		return errors.New("at least two options required")
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return errors.New("correct_index out of range")
	}
	return nil
}

func CreateQuestionHandler(store quiz.QuestionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req questionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.CategoryID == 0 {
			http.Error(w, "category_id required", http.StatusBadRequest)
			return
		}
		if err := req.validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		q, err := store.CreateQuestion(r.Context(), quiz.Question{
			CategoryID:   req.CategoryID,
			Text:         req.Text,
			Options:      req.Options,
			CorrectIndex: req.CorrectIndex,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(q)
	}
}

func UpdateQuestionHandler(store quiz.QuestionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "questionID")
		if err != nil {
			http.Error(w, "bad question id", http.StatusBadRequest)
			return
		}
		var req questionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if err := req.validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		err = store.UpdateQuestion(r.Context(), quiz.Question{
			ID:           id,
			Text:         req.Text,
			Options:      req.Options,
			CorrectIndex: req.CorrectIndex,
		})
		if errors.Is(err, quiz.ErrQuestionNotFound) {
			http.Error(w, "question not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]bool{"success": true})
	}
}

func DeleteQuestionHandler(store quiz.QuestionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "questionID")
		if err != nil {
			http.Error(w, "bad question id", http.StatusBadRequest)
			return
		}
		err = store.DeleteQuestion(r.Context(), id)
		if errors.Is(err, quiz.ErrQuestionNotFound) {
			http.Error(w, "question not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]bool{"success": true})
	}
}

func DeleteCategoryQuestionsHandler(store quiz.QuestionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "categoryID")
		if err != nil {
			http.Error(w, "bad category id", http.StatusBadRequest)
			return
		}
		if err := store.DeleteCategoryQuestions(r.Context(), id); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]bool{"success": true})
	}
}

func ListCategoryQuestionsHandler(store quiz.QuestionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "categoryID")
		if err != nil {
			http.Error(w, "bad category id", http.StatusBadRequest)
			return
		}
		qs, err := store.ListQuestions(r.Context(), id)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if qs == nil {
			qs = []quiz.Question{}
		}
		_ = json.NewEncoder(w).Encode(qs)
	}
}

func ListAllQuestionsHandler(store quiz.QuestionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qs, err := store.ListAllQuestions(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if qs == nil {
			qs = []quiz.BankQuestion{}
		}
		_ = json.NewEncoder(w).Encode(qs)
	}
}

func PassedResultsHandler(rs quiz.ResultStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		results, err := rs.ListPassedResults(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if results == nil {
			results = []quiz.ResultView{}
		}
		_ = json.NewEncoder(w).Encode(results)
	}
}

func PassedByCategoryHandler(rs quiz.ResultStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "categoryID")
		if err != nil {
			http.Error(w, "bad category id", http.StatusBadRequest)
			return
		}
		results, err := rs.ListPassedByCategory(r.Context(), id)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if results == nil {
			results = []quiz.ResultView{}
		}
		_ = json.NewEncoder(w).Encode(results)
	}
}

// UploadQuestionImageHandler stores the uploaded file in the blob store and
// records its key on the question row.
func UploadQuestionImageHandler(store quiz.QuestionStore, bs storage.BlobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "questionID")
		if err != nil {
			http.Error(w, "bad question id", http.StatusBadRequest)
			return
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file required", http.StatusBadRequest)
			return
		}
		defer f.Close()

		key := "questions/" + strconv.FormatInt(id, 10) + "/image" + path.Ext(hdr.Filename)
		if _, err := bs.Put(key, f); err != nil {
			http.Error(w, "store error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		err = store.SetQuestionImage(r.Context(), id, key)
		if errors.Is(err, quiz.ErrQuestionNotFound) {
			http.Error(w, "question not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"key": key})
	}
}

func idParam(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

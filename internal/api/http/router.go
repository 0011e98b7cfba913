package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/maharah-edu/quizserver/internal/audit"
	"github.com/maharah-edu/quizserver/internal/auth"
	"github.com/maharah-edu/quizserver/internal/quiz"
	"github.com/maharah-edu/quizserver/internal/rbac"
	"github.com/maharah-edu/quizserver/internal/storage"
)

// Deps is everything the API surface needs wired in.
type Deps struct {
	Questions quiz.QuestionStore
	Results   quiz.ResultStore
	Events    *audit.EventRepo
	Blobs     storage.BlobStore
	Auth      *auth.AuthService
	Admin     auth.AdminCredentials
	Quiz      QuizConfig
}

// Mount attaches every API route onto r. The student flow is public;
// the bank and review surfaces require an admin token.
func Mount(r chi.Router, d Deps) {
	r.Route("/api", func(api chi.Router) {
		api.Post("/admin/login", auth.AdminLoginHandler(d.Auth, d.Admin))

		// Student flow: anonymous, no authentication.
		api.Get("/categories", ListCategoriesHandler(d.Questions))
		api.Get("/quiz/{category}", TakeQuizHandler(d.Questions, d.Quiz))
		api.Post("/results", SubmitResultHandler(d.Questions, d.Results, d.Events, d.Quiz))
		api.Get("/stats", StatsHandler(d.Results))

		api.Route("/assets", func(ar chi.Router) {
			MountAssets(ar, d.Blobs)
		})

		// Admin surface (JWT → role in context → RBAC).
		api.Group(func(pr chi.Router) {
			pr.Use(auth.JWTMiddleware(d.Auth))

			pr.With(rbac.Require("category:create")).
				Post("/categories", CreateCategoryHandler(d.Questions))

			pr.With(rbac.Require("question:create")).
				Post("/questions", CreateQuestionHandler(d.Questions))
			pr.With(rbac.Require("question:update")).
				Put("/questions/{questionID}", UpdateQuestionHandler(d.Questions))
			pr.With(rbac.Require("question:delete")).
				Delete("/questions/{questionID}", DeleteQuestionHandler(d.Questions))
			pr.With(rbac.Require("question:delete")).
				Delete("/categories/{categoryID}/questions", DeleteCategoryQuestionsHandler(d.Questions))
			pr.With(rbac.Require("question:list")).
				Get("/questions/category/{categoryID}", ListCategoryQuestionsHandler(d.Questions))
			pr.With(rbac.Require("question:list")).
				Get("/admin/questions", ListAllQuestionsHandler(d.Questions))
			pr.With(rbac.Require("question:update")).
				Post("/questions/{questionID}/image", UploadQuestionImageHandler(d.Questions, d.Blobs))

			pr.With(rbac.RequireAny("result:view-passed", "result:view-all")).
				Get("/results/passed", PassedResultsHandler(d.Results))
			pr.With(rbac.RequireAny("result:view-passed", "result:view-all")).
				Get("/results/category/{categoryID}", PassedByCategoryHandler(d.Results))
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
}

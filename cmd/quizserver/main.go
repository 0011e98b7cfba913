package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	api "github.com/maharah-edu/quizserver/internal/api/http"
	"github.com/maharah-edu/quizserver/internal/audit"
	"github.com/maharah-edu/quizserver/internal/auth"
	"github.com/maharah-edu/quizserver/internal/config"
	"github.com/maharah-edu/quizserver/internal/db"
	"github.com/maharah-edu/quizserver/internal/quiz"
	"github.com/maharah-edu/quizserver/internal/storage"
)

func main() {
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	store := quiz.NewSQLStore(dbh)

	if err := bootstrapCategories(ctx, store, cfg.ComprehensiveCategories); err != nil {
		log.Fatalf("bootstrap categories: %v", err)
	}

	bs, err := storage.NewFSStore(cfg.BlobBasePath)
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}

	authSvc := auth.NewAuthService(cfg.AuthSecret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	api.Mount(r, api.Deps{
		Questions: store,
		Results:   store,
		Events:    audit.NewEventRepo(dbh),
		Blobs:     bs,
		Auth:      authSvc,
		Admin: auth.AdminCredentials{
			Username: cfg.AdminUser,
			PassHash: cfg.AdminPassHash,
		},
		Quiz: api.QuizConfig{
			SampleCount:             cfg.SampleCount,
			PerCategoryCount:        cfg.PerCategoryCount,
			PassThreshold:           cfg.PassThreshold,
			ComprehensiveCategories: cfg.ComprehensiveCategories,
		},
	})

	log.Printf("quizserver listening on %s", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatalf("http server: %v", err)
	}
}

// bootstrapCategories creates missing rows for the configured subject
// categories and the comprehensive marker, so result submissions always
// have a category to reference.
func bootstrapCategories(ctx context.Context, store quiz.QuestionStore, subjects []string) error {
	names := append(append([]string{}, subjects...), quiz.CategoryComprehensive)
	for _, name := range names {
		_, err := store.GetCategoryByName(ctx, name)
		if errors.Is(err, quiz.ErrCategoryNotFound) {
			if _, err := store.CreateCategory(ctx, name, name); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

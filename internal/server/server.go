// Package server assembles the fiber app: middleware, pages, JSON API,
// health and metrics.
package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/KumarAkash26/BOOK-RECOMMENDER-WITH-AI-QUIZ-GENERATOR/internal/catalog"
	"github.com/KumarAkash26/BOOK-RECOMMENDER-WITH-AI-QUIZ-GENERATOR/internal/config"
	"github.com/KumarAkash26/BOOK-RECOMMENDER-WITH-AI-QUIZ-GENERATOR/internal/middleware"
	"github.com/KumarAkash26/BOOK-RECOMMENDER-WITH-AI-QUIZ-GENERATOR/internal/quiz"
	"github.com/KumarAkash26/BOOK-RECOMMENDER-WITH-AI-QUIZ-GENERATOR/internal/web"
)

// New wires every route. snap is shared read-only by all handlers.
func New(cfg *config.Config, snap *catalog.Snapshot, svc *quiz.Service) *fiber.App {
	app := fiber.New(fiber.Config{
		Views:                 web.NewViews(),
		DisableStartupMessage: cfg.IsProd(),
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.Recover())
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecureHeaders())
	app.Use(middleware.RequestLog())

	flash := web.NewFlash(cfg.SessionCookieName)
	ch := catalog.NewHandler(snap, flash)
	qh := quiz.NewHandler(cfg, svc, flash)
	limit := middleware.RateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		name, state := svc.Source()
		return c.JSON(fiber.Map{"status": "ok", "provider": name, "breaker": state})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Get("/", ch.Index)
	app.Get("/recommend", ch.RecommendPage)
	app.Post("/recommend_books", ch.Recommend)
	app.Get("/generate_mcq", qh.Form)
	app.Post("/generate_mcq", limit, qh.Generate)

	api := app.Group("/api/v1")
	api.Get("/books/popular", ch.APIPopular)
	api.Get("/books/recommend", ch.APIRecommend)
	api.Post("/mcq", limit, qh.APIGenerate)

	return app
}

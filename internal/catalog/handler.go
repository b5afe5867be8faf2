package catalog

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/KumarAkash26/BOOK-RECOMMENDER-WITH-AI-QUIZ-GENERATOR/internal/metrics"
	"github.com/KumarAkash26/BOOK-RECOMMENDER-WITH-AI-QUIZ-GENERATOR/internal/middleware"
	"github.com/KumarAkash26/BOOK-RECOMMENDER-WITH-AI-QUIZ-GENERATOR/internal/telemetry"
	"github.com/KumarAkash26/BOOK-RECOMMENDER-WITH-AI-QUIZ-GENERATOR/internal/web"
)

var validate = validator.New()

type recommendForm struct {
	Title string `form:"user_input" query:"title" validate:"required,max=300"`
}

type Handler struct {
	snap  *Snapshot
	flash *web.Flash
}

func NewHandler(snap *Snapshot, flash *web.Flash) *Handler {
	return &Handler{snap: snap, flash: flash}
}

func (h *Handler) Index(c *fiber.Ctx) error {
	return c.Render("index.html", fiber.Map{
		"Title": "Popular",
		"Flash": h.flash.Pop(c),
		"Books": h.snap.Popular(),
	})
}

func (h *Handler) RecommendPage(c *fiber.Ctx) error {
	return c.Render("recommend.html", fiber.Map{
		"Title":  "Recommend",
		"Flash":  h.flash.Pop(c),
		"Titles": h.snap.Titles(),
	})
}

func (h *Handler) Recommend(c *fiber.Ctx) error {
	var f recommendForm
	if err := c.BodyParser(&f); err != nil {
		_ = h.flash.Add(c, "Please enter a book title.")
		return c.Redirect("/recommend")
	}
	f.Title = strings.TrimSpace(f.Title)
	if err := validate.Struct(f); err != nil {
		_ = h.flash.Add(c, "Please enter a book title.")
		return c.Redirect("/recommend")
	}

	books, err := h.recommend(c, f.Title)
	if err != nil {
		_ = h.flash.Add(c, "We don't know that book yet. Try another title.")
		return c.Redirect("/recommend")
	}
	return c.Render("recommend.html", fiber.Map{
		"Title":  "Recommend",
		"Query":  f.Title,
		"Titles": h.snap.Titles(),
		"Books":  books,
	})
}

// APIPopular serves GET /api/v1/books/popular.
func (h *Handler) APIPopular(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"books": h.snap.Popular()})
}

// APIRecommend serves GET /api/v1/books/recommend?title=.
func (h *Handler) APIRecommend(c *fiber.Ctx) error {
	var f recommendForm
	if err := c.QueryParser(&f); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid query"})
	}
	f.Title = strings.TrimSpace(f.Title)
	if err := validate.Struct(f); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title is required"})
	}

	books, err := h.recommend(c, f.Title)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown title", "books": []Book{}})
	}
	return c.JSON(fiber.Map{"title": f.Title, "books": books})
}

func (h *Handler) recommend(c *fiber.Ctx, title string) ([]Book, error) {
	log := telemetry.L().With().Str("req_id", middleware.RequestIDFrom(c)).Str("title", title).Logger()

	books, err := h.snap.Recommend(title, DefaultRecommendations)
	if errors.Is(err, ErrUnknownTitle) {
		metrics.RecommendTotal.WithLabelValues("unknown_title").Inc()
		log.Info().Msg("recommend_unknown_title")
		return nil, err
	}
	if err != nil {
		metrics.RecommendTotal.WithLabelValues("error").Inc()
		log.Error().Err(err).Msg("recommend_failed")
		return nil, err
	}
	metrics.RecommendTotal.WithLabelValues("ok").Inc()
	log.Debug().Int("books", len(books)).Msg("recommend_ok")
	return books, nil
}

package quiz

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/KumarAkash26/BOOK-RECOMMENDER-WITH-AI-QUIZ-GENERATOR/internal/config"
	"github.com/KumarAkash26/BOOK-RECOMMENDER-WITH-AI-QUIZ-GENERATOR/internal/mcq"
	"github.com/KumarAkash26/BOOK-RECOMMENDER-WITH-AI-QUIZ-GENERATOR/internal/middleware"
	"github.com/KumarAkash26/BOOK-RECOMMENDER-WITH-AI-QUIZ-GENERATOR/internal/providers"
	"github.com/KumarAkash26/BOOK-RECOMMENDER-WITH-AI-QUIZ-GENERATOR/internal/telemetry"
	"github.com/KumarAkash26/BOOK-RECOMMENDER-WITH-AI-QUIZ-GENERATOR/internal/web"
)

const failedMsg = "Failed to generate MCQs. Please try again."

var validate = validator.New()

type generateForm struct {
	Topic        string `form:"topic" json:"topic" validate:"required,max=200"`
	NumQuestions int    `form:"num_questions" json:"num_questions" validate:"required,min=1"`
}

type Handler struct {
	cfg   *config.Config
	svc   *Service
	flash *web.Flash
}

// BuildClient picks the generation source named by cfg.GenerationProvider and
// wraps it in a circuit breaker.
func BuildClient(cfg *config.Config) providers.Client {
	var c providers.Client
	switch cfg.GenerationProvider {
	case "openai":
		o := providers.NewOpenAI(cfg.OpenAIKey, cfg.OpenAIModel, "", cfg.GenerationTimeout, cfg.GenerationRPS, cfg.GenerationBurst)
		o.DryRun = cfg.GenerationDryRun
		c = o
	case "anthropic", "claude":
		a := providers.NewAnthropic(cfg.AnthropicKey, cfg.AnthropicModel, "", cfg.GenerationTimeout, cfg.GenerationRPS, cfg.GenerationBurst)
		a.DryRun = cfg.GenerationDryRun
		c = a
	default:
		g := providers.NewGemini(cfg.GoogleAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL, cfg.GenerationTimeout, cfg.GenerationRPS, cfg.GenerationBurst)
		g.DryRun = cfg.GenerationDryRun
		c = g
	}
	return providers.NewBreaker(c, cfg.BreakerMaxFailures, cfg.BreakerCooldown)
}

func NewHandler(cfg *config.Config, svc *Service, flash *web.Flash) *Handler {
	return &Handler{cfg: cfg, svc: svc, flash: flash}
}

func (h *Handler) Form(c *fiber.Ctx) error {
	return c.Render("generate_mcq.html", fiber.Map{
		"Title":            "Quiz Generator",
		"Flash":            h.flash.Pop(c),
		"MaxQuestions":     h.cfg.MCQMaxQuestions,
		"DefaultQuestions": h.cfg.MCQDefaultQuestions,
	})
}

func (h *Handler) Generate(c *fiber.Ctx) error {
	var f generateForm
	if err := c.BodyParser(&f); err != nil {
		_ = h.flash.Add(c, "Please enter a topic and a number of questions.")
		return c.Redirect("/generate_mcq")
	}
	if msg := h.check(&f); msg != "" {
		_ = h.flash.Add(c, msg)
		return c.Redirect("/generate_mcq")
	}

	qs, err := h.svc.Generate(c.UserContext(), f.Topic, f.NumQuestions)
	if err != nil || len(qs) == 0 {
		h.logFailure(c, err)
		_ = h.flash.Add(c, failedMsg)
		return c.Redirect("/generate_mcq")
	}
	return c.Render("mcq.html", fiber.Map{
		"Title":     "Quiz",
		"Topic":     f.Topic,
		"Questions": qs,
	})
}

// APIGenerate serves POST /api/v1/mcq.
func (h *Handler) APIGenerate(c *fiber.Ctx) error {
	var f generateForm
	if err := c.BodyParser(&f); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body", "questions": []mcq.Question{}})
	}
	if msg := h.check(&f); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg, "questions": []mcq.Question{}})
	}

	qs, err := h.svc.Generate(c.UserContext(), f.Topic, f.NumQuestions)
	if err != nil || len(qs) == 0 {
		h.logFailure(c, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": failedMsg, "questions": []mcq.Question{}})
	}
	return c.JSON(fiber.Map{"topic": f.Topic, "questions": qs})
}

// check trims and validates f, returning a user-facing message or "".
func (h *Handler) check(f *generateForm) string {
	f.Topic = strings.TrimSpace(f.Topic)
	if err := validate.Struct(f); err != nil {
		return "Please enter a topic and a number of questions."
	}
	if h.cfg.MCQMaxQuestions > 0 && f.NumQuestions > h.cfg.MCQMaxQuestions {
		return "Please ask for fewer questions."
	}
	return ""
}

func (h *Handler) logFailure(c *fiber.Ctx, err error) {
	log := telemetry.L().With().Str("req_id", middleware.RequestIDFrom(c)).Logger()
	switch {
	case err == nil:
		log.Warn().Msg("mcq_no_questions")
	case errors.Is(err, mcq.ErrMissingCredential):
		log.Error().Err(err).Msg("mcq_missing_credential")
	default:
		log.Error().Err(err).Str("kind", mcq.Kind(err)).Msg("mcq_generate_error")
	}
}

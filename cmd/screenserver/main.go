// Command screenserver exposes the scoring engine over HTTP: POST /v1/score
// compares a query entity against a single candidate, POST /v1/merge folds
// a batch of entity records believed to describe the same subject.
package main

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/sanctionsscore/core/internal/explain"
	"github.com/sanctionsscore/core/pkg/entity"
	"github.com/sanctionsscore/core/pkg/merge"
	"github.com/sanctionsscore/core/pkg/scoring"
	"github.com/sanctionsscore/core/pkg/trace"
)

// apiError is the JSON error shape returned to callers.
type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeError(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(apiError{Error: code, Message: message})
}

type scoreRequest struct {
	Query      entity.Entity          `json:"query"`
	Candidate  entity.Entity          `json:"candidate"`
	Similarity *scoring.SimilarityConfig `json:"similarity,omitempty"`
	Scoring    *scoring.ScoringConfig    `json:"scoring,omitempty"`
	Explain    bool                      `json:"explain"`
}

type scoreResponse struct {
	Score           float64                  `json:"score"`
	Breakdown       scoring.ScoreBreakdown   `json:"breakdown"`
	TypesConsistent bool                     `json:"typesConsistent"`
	Explanation     string                   `json:"explanation,omitempty"`
}

func handleScore(c fiber.Ctx) error {
	var req scoreRequest
	if err := c.Bind().Body(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "invalid_request", err.Error())
	}

	cfg, err := scoring.ResolveFromEnvironment(req.Similarity, req.Scoring, nil)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "invalid_config", err.Error())
	}

	scorer := scoring.NewEntityScorer(cfg)

	var ctx = trace.ScoringContext(trace.NewDisabled())
	if req.Explain {
		ctx = trace.NewEnabled(nil)
	}

	start := time.Now()
	result := scorer.Score(ctx, req.Query, req.Candidate)
	duration := time.Since(start)

	resp := scoreResponse{
		Score:           result.Score,
		Breakdown:       result.Breakdown,
		TypesConsistent: result.TypesConsistent,
	}
	if req.Explain {
		t := ctx.ToTrace(c.Locals("requestId").(string), float64(duration.Milliseconds()))
		resp.Explanation = explain.Explain(result.Breakdown, t)
	}

	return c.JSON(resp)
}

type mergeRequest struct {
	Records []entity.Entity `json:"records"`
}

type mergeResponse struct {
	Merged []entity.Entity `json:"merged"`
}

func handleMerge(c fiber.Ctx) error {
	var req mergeRequest
	if err := c.Bind().Body(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "invalid_request", err.Error())
	}
	if len(req.Records) == 0 {
		return writeError(c, fiber.StatusBadRequest, "empty_records", "records must not be empty")
	}

	merger := merge.NewEntityMerger()
	merged := merger.Merge(req.Records)

	return c.JSON(mergeResponse{Merged: merged})
}

func requestIDMiddleware(c fiber.Ctx) error {
	id := c.Get("X-Request-Id")
	if id == "" {
		id = uuid.NewString()
	}
	c.Locals("requestId", id)
	c.Set("X-Request-Id", id)
	return c.Next()
}

func newApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "screenserver",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	app.Use(requestIDMiddleware)

	app.Get("/healthz", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/v1")
	v1.Post("/score", handleScore)
	v1.Post("/merge", handleMerge)

	return app
}

func main() {
	addr := os.Getenv("SCREENSERVER_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	if configDir := os.Getenv("SCREENSERVER_CONFIG_DIR"); configDir != "" {
		if err := scoring.LoadWeights(configDir); err != nil {
			log.Fatalf("screenserver: loading scoring weights: %v", err)
		}
	}

	app := newApp()
	log.Printf("screenserver: listening on %s", addr)
	if err := app.Listen(addr); err != nil {
		log.Fatalf("screenserver: %v", err)
	}
}

// handlers/leaderboard_routes.go
package handlers

import (
	"errors"

	"quiz-platform/middleware"
	"quiz-platform/models"
	"quiz-platform/services"

	"github.com/gofiber/fiber/v2"
)

func SetupLeaderboardRoutes(app *fiber.App, leaderboard *services.LeaderboardClient) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Get("/leaderboard", middleware.RequireUser(), func(c *fiber.Ctx) error {
		topScores, err := leaderboard.GetTopScores(c.Context())
		if err != nil {
			return leaderboardError(c, err)
		}
		return c.JSON(fiber.Map{
			"top_scores":             topScores,
			"scores_after_top_three": services.ScoresAfterTopThree(topScores),
		})
	})

	// Destructive score management is ADMIN-only.
	secured.Delete("/api/scores",
		middleware.RequireUser(),
		middleware.RequireRole(models.RoleAdmin),
		func(c *fiber.Ctx) error {
			if err := leaderboard.DeleteAllScores(c.Context()); err != nil {
				return leaderboardError(c, err)
			}
			return c.SendStatus(fiber.StatusNoContent)
		})

	secured.Delete("/api/scores/:id",
		middleware.RequireUser(),
		middleware.RequireRole(models.RoleAdmin),
		func(c *fiber.Ctx) error {
			if err := leaderboard.DeleteScore(c.Context(), c.Params("id")); err != nil {
				return leaderboardError(c, err)
			}
			return c.SendStatus(fiber.StatusNoContent)
		})
}

func leaderboardError(c *fiber.Ctx, err error) error {
	if errors.Is(err, models.ErrLeaderboardUnavailable) {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

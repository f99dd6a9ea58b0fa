// handlers/quiz_routes.go
package handlers

import (
	"errors"

	"quiz-platform/middleware"
	"quiz-platform/models"
	"quiz-platform/services"
	"quiz-platform/utils"

	"github.com/gofiber/fiber/v2"
)

func SetupQuizRoutes(app *fiber.App, quizService *services.QuizService) {
	// 🔓 Public listing — no user context, but still behind Gateway auth
	app.Get("/quizzes", func(c *fiber.Ctx) error {
		category := models.Category(c.Query("category"))
		if category != "" && !category.Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown category"})
		}

		if category != "" {
			quizzes, err := quizService.GetAllByCategory(c.Context(), category)
			if err != nil {
				return quizError(c, err)
			}
			return c.JSON(quizzes)
		}

		// No filter: one listing per category, quizzes-page style.
		byCategory := fiber.Map{}
		for _, cat := range models.Categories {
			quizzes, err := quizService.GetAllByCategory(c.Context(), cat)
			if err != nil {
				return quizError(c, err)
			}
			byCategory[string(cat)] = quizzes
		}
		return c.JSON(byCategory)
	})

	// 🔐 Secured routes — require user context (userID, role)
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Get("/quizzes/:id", middleware.RequireUser(), func(c *fiber.Ctx) error {
		quiz, err := quizService.GetByID(c.Params("id"))
		if err != nil {
			return quizError(c, err)
		}
		return c.JSON(quiz)
	})

	secured.Post("/quizzes",
		middleware.RequireUser(),
		middleware.RequireRole(models.RoleQuizmaster, models.RoleAdmin),
		func(c *fiber.Ctx) error {
			var req services.NewQuizRequest
			if err := c.BodyParser(&req); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed quiz payload"})
			}

			userID := c.Locals("user_id").(string)
			quiz, err := quizService.CreateQuiz(c.Context(), req, userID)
			if err != nil {
				return quizError(c, err)
			}
			return c.Status(fiber.StatusCreated).JSON(quiz)
		})

	// Cover image upload → R2 (small, public asset)
	secured.Post("/quizzes/:id/image",
		middleware.RequireUser(),
		middleware.RequireRole(models.RoleQuizmaster, models.RoleAdmin),
		func(c *fiber.Ctx) error {
			if !utils.R2Enabled() {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "image storage not configured"})
			}
			quiz, err := quizService.GetByID(c.Params("id"))
			if err != nil {
				return quizError(c, err)
			}

			imageFile, err := c.FormFile("image")
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "image file is required"})
			}
			key := utils.QuizImageKey(quiz.Name, imageFile.Filename)
			imageURL, err := utils.UploadFileToR2(imageFile, key)
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).
					JSON(fiber.Map{"error": "failed to upload quiz image"})
			}

			if err := quizService.SetImageURL(c.Context(), quiz.ID, imageURL); err != nil {
				return quizError(c, err)
			}
			return c.JSON(fiber.Map{"image_url": imageURL})
		})

	secured.Post("/quizzes/:id/submit", middleware.RequireUser(), func(c *fiber.Ctx) error {
		var attempt services.QuizAttempt
		if err := c.BodyParser(&attempt); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed attempt payload"})
		}
		attempt.QuizID = c.Params("id")

		userID := c.Locals("user_id").(string)
		result, err := quizService.SubmitQuiz(c.Context(), attempt, userID)
		if err != nil {
			return quizError(c, err)
		}
		return c.JSON(result)
	})

	secured.Delete("/quizzes/:id",
		middleware.RequireUser(),
		middleware.RequireRole(models.RoleAdmin),
		func(c *fiber.Ctx) error {
			if err := quizService.DeleteQuiz(c.Context(), c.Params("id")); err != nil {
				return quizError(c, err)
			}
			return c.SendStatus(fiber.StatusNoContent)
		})
}

func quizError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, models.ErrQuizNotFound), errors.Is(err, models.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, models.ErrValidationFailed), errors.Is(err, models.ErrInvalidAttempt):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}

// handlers/user_routes.go
package handlers

import (
	"errors"

	"quiz-platform/middleware"
	"quiz-platform/models"
	"quiz-platform/services"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App, userService *services.UserService, quizService *services.QuizService) {
	app.Post("/register", func(c *fiber.Ctx) error {
		var req services.RegisterRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed register payload"})
		}
		user, err := userService.Register(req)
		if err != nil {
			return userError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(user)
	})

	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Get("/profile", middleware.RequireUser(), func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		user, err := userService.GetByID(userID)
		if err != nil {
			return userError(c, err)
		}

		successPercent, err := userService.AverageSuccessPercent(user)
		if err != nil {
			return userError(c, err)
		}
		recentQuizzes, err := quizService.GetAllByUser(user.ID)
		if err != nil {
			return userError(c, err)
		}

		return c.JSON(fiber.Map{
			"user":                    user,
			"average_success_percent": successPercent,
			"recent_quizzes":          recentQuizzes,
		})
	})

	secured.Put("/profile", middleware.RequireUser(), func(c *fiber.Ctx) error {
		var req services.EditProfileRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed profile payload"})
		}
		userID := c.Locals("user_id").(string)
		user, err := userService.UpdateProfile(userID, req)
		if err != nil {
			return userError(c, err)
		}
		return c.JSON(user)
	})

	secured.Get("/users",
		middleware.RequireUser(),
		middleware.RequireRole(models.RoleAdmin),
		func(c *fiber.Ctx) error {
			users, err := userService.GetAllUsers()
			if err != nil {
				return userError(c, err)
			}
			return c.JSON(users)
		})

	secured.Delete("/users/:username",
		middleware.RequireUser(),
		middleware.RequireRole(models.RoleAdmin),
		func(c *fiber.Ctx) error {
			if err := userService.DeleteUser(c.Params("username")); err != nil {
				return userError(c, err)
			}
			return c.SendStatus(fiber.StatusNoContent)
		})
}

func userError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, models.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, models.ErrUsernameTaken):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, models.ErrValidationFailed), errors.Is(err, models.ErrPasswordMismatch):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}

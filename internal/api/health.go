package api

import (
	"github.com/elkmoss/gritbot/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Handler serves the operational endpoints; the bot itself has no inbound
// HTTP surface beyond this.
type Handler struct {
	database *gorm.DB
}

func NewHandler(database *gorm.DB) *Handler {
	return &Handler{database: database}
}

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	var users, pendingTasks, badges int64
	err := firstError(
		handler.database.Model(&models.User{}).Count(&users).Error,
		handler.database.Model(&models.Task{}).Where("completed = ?", false).Count(&pendingTasks).Error,
		handler.database.Model(&models.Badge{}).Count(&badges).Error,
	)
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "degraded",
			"error":  err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"status":        "ok",
		"users":         users,
		"pending_tasks": pendingTasks,
		"badges":        badges,
	})
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

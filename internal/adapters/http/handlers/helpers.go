package handlers

import (
	"bu-ethesis/internal/pkg/flash"

	"github.com/gofiber/fiber/v2"
)

// parseID reads the :id route param; anything but a positive integer is treated as unknown
func parseID(c *fiber.Ctx) (uint, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

// redirectWithFlash queues a message for the next view and answers 303
func redirectWithFlash(c *fiber.Ctx, location, category, message string) error {
	flash.Set(c, category, message)
	return c.Redirect(location, fiber.StatusSeeOther)
}

// formState is the view state returned alongside a rejected submission
func formState(category, message string, values interface{}) fiber.Map {
	return fiber.Map{
		"flash": &flash.Message{Category: category, Message: message},
		"form":  values,
	}
}

package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/dataquality/pkg/api/stats"
)

func Stats(collector *stats.Collector) fiber.Handler {
	return func(c *fiber.Ctx) error {
		current := collector.Current()
		if current == nil {
			c.Status(fiber.StatusServiceUnavailable)
			return c.JSON(fiber.Map{
				"error": "Stats have not been calculated yet",
			})
		}

		return c.JSON(current)
	}
}

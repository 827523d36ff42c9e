package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/dataquality/pkg/siri_vm"
)

func SiriVMRouter(router fiber.Router) {
	router.Post("/validate", validateSiriVM)
}

func validateSiriVM(c *fiber.Ctx) error {
	siri, err := siri_vm.ParseBytes(c.Body())
	if err != nil {
		c.Status(fiber.StatusUnprocessableEntity)
		return c.JSON(fiber.Map{
			"valid": false,
			"error": err.Error(),
		})
	}

	header := siri.Header()

	return c.JSON(fiber.Map{
		"valid":              true,
		"version":            header.Version,
		"producer_ref":       header.ProducerRef,
		"response_timestamp": header.ServiceDeliveryResponseTimestamp,
		"vehicle_activities": len(siri.VehicleActivities()),
	})
}

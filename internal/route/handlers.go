package route

import (
	"errors"

	"backend-citywalk/internal/store"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(svc.List(c.UserContext()))
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		rt, err := svc.Get(c.UserContext(), c.Params("id"))
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Route not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(rt)
	})
}

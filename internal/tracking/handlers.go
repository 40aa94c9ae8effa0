package tracking

import (
	"errors"

	"backend-citywalk/internal/metrics"
	"backend-citywalk/internal/model"
	"backend-citywalk/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const userIDParam = "user_id"

const malformedBodyDetail = "request body is not a valid track"

// invalidBodyDetail keeps decoder internals out of the response.
func invalidBodyDetail(err error) string {
	if errors.Is(err, model.ErrInvalidTimestamp) {
		return model.ErrInvalidTimestamp.Error()
	}
	return malformedBodyDetail
}

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(svc.List(c.UserContext(), queryUserID(c)))
	})

	r.Post("/", func(c *fiber.Ctx) error {
		var req model.Track
		if err := c.BodyParser(&req); err != nil {
			metrics.RecordTrackRejected(metrics.ReasonInvalidBody)
			return fiber.NewError(fiber.StatusBadRequest, invalidBodyDetail(err))
		}
		if err := validation.ValidateStruct(&req); err != nil {
			metrics.RecordTrackRejected(metrics.ReasonInvalidBody)
			return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		}

		resp, err := svc.Ingest(c.UserContext(), req, queryUserID(c))
		if errors.Is(err, ErrIdentityMismatch) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusAccepted).JSON(resp)
	})
}

// queryUserID distinguishes an absent user_id from an empty one: "?user_id="
// is present and only matches tracks whose user_id is "".
func queryUserID(c *fiber.Ctx) *string {
	args := c.Context().QueryArgs()
	if !args.Has(userIDParam) {
		return nil
	}
	v := string(args.Peek(userIDParam))
	return &v
}

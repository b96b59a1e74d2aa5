package handlers

import (
	"errors"
	"strconv"

	"github.com/dcabrera/music_academy/ledger"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var validate = validator.New()

func actorID(c *fiber.Ctx) uuid.UUID {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	id, _ := uuid.Parse(claims["user_id"].(string))
	return id
}

// pageWindow turns page/page_size query values into a limit and
// offset, falling back to page 1 and the default size on junk input.
func pageWindow(pageStr, sizeStr string, defaultSize int) (limit, offset int) {
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}
	size, err := strconv.Atoi(sizeStr)
	if err != nil || size < 1 {
		size = defaultSize
	}
	return size, (page - 1) * size
}

// ledgerError maps the ledger error taxonomy onto HTTP statuses. The
// error message already names the offending limit or resource.
func ledgerError(c *fiber.Ctx, err error) error {
	var (
		validationErr  *ledger.ValidationError
		overpayErr     *ledger.OverpaymentError
		stateErr       *ledger.InvalidStateError
		conflictErr    *ledger.ScheduleConflictError
		capacityErr    *ledger.CapacityError
		concurrencyErr *ledger.ConcurrencyConflictError
	)
	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &overpayErr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":       err.Error(),
			"max_allowed": overpayErr.MaxAllowed.StringFixed(2),
		})
	case errors.As(err, &stateErr):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &conflictErr):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":                  err.Error(),
			"conflicting_schedule":   conflictErr.ScheduleID,
			"conflicting_day":        conflictErr.Day,
			"conflicting_start_time": conflictErr.StartTime,
			"conflicting_end_time":   conflictErr.EndTime,
		})
	case errors.As(err, &capacityErr):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &concurrencyErr):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error(), "retry": true})
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Record not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
}

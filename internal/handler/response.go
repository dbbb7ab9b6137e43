package handler

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"go-retail-analytics/internal/model"
	"go-retail-analytics/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dateOnly = "2006-01-02"

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "message": message})
}

// respondError maps service errors onto HTTP statuses. Anything unknown is
// returned to fiber so ErrorHandler logs it and answers 500.
func respondError(c *fiber.Ctx, err error) error {
	var (
		ve    *service.ValidationError
		nf    *service.NotFoundError
		stock *service.InsufficientStockError
		ae    *service.AuthError
	)

	switch {
	case errors.As(err, &ve):
		return fail(c, fiber.StatusBadRequest, ve.Error())
	case errors.As(err, &nf):
		return fail(c, fiber.StatusNotFound, nf.Error())
	case errors.As(err, &stock):
		return fail(c, fiber.StatusBadRequest, stock.Error())
	case errors.As(err, &ae):
		if ae.Forbidden {
			return fail(c, fiber.StatusForbidden, ae.Error())
		}
		return fail(c, fiber.StatusUnauthorized, ae.Error())
	}
	return err
}

// ErrorHandler renders fiber errors as-is and hides everything else behind
// a generic 500.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return fail(c, fe.Code, fe.Message)
		}

		log.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return fail(c, fiber.StatusInternalServerError, "Internal server error")
	}
}

func parseID(c *fiber.Ctx, resource string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, &service.NotFoundError{Resource: resource, ID: c.Params("id")}
	}
	return id, nil
}

// parseDate accepts RFC 3339 timestamps or plain dates. A plain end date
// covers the whole day.
func parseDate(value string, endOfDay bool) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		t = t.UTC()
		return &t, nil
	}

	t, err := time.Parse(dateOnly, value)
	if err != nil {
		return nil, &service.ValidationError{Message: "invalid date " + strconv.Quote(value) + ", use YYYY-MM-DD or RFC 3339"}
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

func parseDateRange(c *fiber.Ctx) (*time.Time, *time.Time, error) {
	start, err := parseDate(c.Query("startDate"), false)
	if err != nil {
		return nil, nil, err
	}
	end, err := parseDate(c.Query("endDate"), true)
	if err != nil {
		return nil, nil, err
	}
	return start, end, nil
}

// parseBranch treats "" and "All" as no filter and rejects unknown stores.
func parseBranch(c *fiber.Ctx) (model.Branch, error) {
	b := model.Branch(c.Query("branch"))
	if b == "" || b == model.BranchAll || b.Valid() {
		return b, nil
	}
	return "", &service.ValidationError{Message: "invalid branch " + strconv.Quote(string(b))}
}

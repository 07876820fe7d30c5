// Package problem writes RFC 7807 problem documents to Fiber responses.
package problem

import (
	"github.com/gofiber/fiber/v2"
	"github.com/moogar0880/problems"
)

// MediaType is the content type of every problem response.
const MediaType = "application/problem+json"

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// ValidationProblem is a problem document listing the rejected fields.
type ValidationProblem struct {
	*problems.Problem
	Errors []FieldError `json:"errors"`
}

// New builds a problem for status whose instance is the request path.
func New(c *fiber.Ctx, status int, detail string) *problems.Problem {
	p := problems.NewDetailedProblem(status, detail)
	p.Instance = c.Path()
	return p
}

// Write sends a problem document with the given status and detail.
func Write(c *fiber.Ctx, status int, detail string) error {
	return send(c, status, New(c, status, detail))
}

// WriteValidation sends a 400 problem listing the rejected fields.
func WriteValidation(c *fiber.Ctx, detail string, fields []FieldError) error {
	return send(c, fiber.StatusBadRequest, &ValidationProblem{
		Problem: New(c, fiber.StatusBadRequest, detail),
		Errors:         fields,
	})
}

func send(c *fiber.Ctx, status int, body interface{}) error {
	if err := c.Status(status).JSON(body); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, MediaType)
	return nil
}
